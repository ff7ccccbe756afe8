package landing

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/builld/web/internal/services/web/platform/pagerender"
	"github.com/builld/web/internal/services/web/platform/publichandler"
	"github.com/builld/web/internal/services/web/routepath"
	webtemplates "github.com/builld/web/internal/services/web/templates"
)

type handlers struct {
	publichandler.Base
	service service
}

func newHandlers(s service, base publichandler.Base) handlers {
	return handlers{Base: base, service: s}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	sent := r.URL.Query().Get(routepath.ContactSentQuery) == "sent"
	page := h.service.page(sent)
	h.WritePage(w, r, pagerender.Page{
		Chrome: true,
		Body: func(loc webtemplates.Localizer) templ.Component {
			return webtemplates.Landing(page, loc)
		},
	})
}

func (h handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
