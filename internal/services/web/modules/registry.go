package modules

import (
	"github.com/builld/web/internal/services/web/modules/contact"
	"github.com/builld/web/internal/services/web/modules/landing"
)

// DefaultPageModules returns the HTML page modules.
func DefaultPageModules(deps Dependencies) []Module {
	return []Module{
		landing.New(deps.Content, deps.Base),
		contact.NewForm(deps.Submitter, deps.Content, deps.Base, deps.Logger),
	}
}

// DefaultAPIModules returns the JSON modules mounted under /api/.
func DefaultAPIModules(deps Dependencies) []Module {
	return []Module{
		contact.NewAPI(deps.Submitter, deps.Logger),
	}
}
