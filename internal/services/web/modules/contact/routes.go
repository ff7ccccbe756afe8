package contact

import (
	"net/http"

	"github.com/builld/web/internal/services/web/platform/httpx"
	"github.com/builld/web/internal/services/web/routepath"
)

func registerAPIRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodPost+" "+routepath.APIContact, h.handleAPISubmit)
	mux.HandleFunc(http.MethodOptions+" "+routepath.APIContact, h.handlePreflight)
	mux.HandleFunc(routepath.APIContact, httpx.MethodNotAllowed(http.MethodPost, http.MethodOptions))
	mux.HandleFunc(routepath.APIPrefix, h.handleAPINotFound)
}

func registerFormRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodPost+" "+routepath.Contact, h.handleFormSubmit)
	mux.HandleFunc(http.MethodPost+" "+routepath.ContactPrefix+"{$}", h.handleFormSubmit)
	mux.HandleFunc(http.MethodGet+" "+routepath.Contact, h.handleFormRedirect)
	mux.HandleFunc(http.MethodGet+" "+routepath.ContactPrefix+"{$}", h.handleFormRedirect)
	mux.HandleFunc(routepath.ContactPrefix, h.WriteNotFound)
}
