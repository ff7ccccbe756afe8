package landing

import (
	"github.com/builld/web/internal/services/web/content"
	"github.com/builld/web/internal/services/web/routepath"
	webtemplates "github.com/builld/web/internal/services/web/templates"
)

type service struct {
	content  ContentSource
	endpoint string
}

func newService(source ContentSource, apiBase string) service {
	return service{content: source, endpoint: routepath.APIURL(apiBase, routepath.APIContact)}
}

// site returns the current content, falling back to the embedded defaults.
func (s service) site() content.Site {
	if s.content == nil {
		return content.Default()
	}
	return s.content.Site()
}

func (s service) page(sent bool) webtemplates.LandingPage {
	site := s.site()
	return webtemplates.LandingPage{
		Site: site,
		Form: webtemplates.ContactFormView{
			Endpoint: s.endpoint,
			Stages:   site.PlanNames(),
			Sent:     sent,
		},
	}
}
