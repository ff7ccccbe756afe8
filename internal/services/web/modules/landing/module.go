// Package landing serves the single-page marketing site, the health probe and
// the not-found page.
package landing

import (
	"net/http"

	"github.com/builld/web/internal/services/web/content"
	"github.com/builld/web/internal/services/web/module"
	"github.com/builld/web/internal/services/web/platform/publichandler"
	"github.com/builld/web/internal/services/web/routepath"
)

// ContentSource supplies the current site content.
type ContentSource interface {
	Site() content.Site
}

// Module provides the landing page routes.
type Module struct {
	content ContentSource
	base    publichandler.Base
}

// New returns a landing module rendering content through base.
func New(source ContentSource, base publichandler.Base) Module {
	return Module{content: source, base: base}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "landing" }

// Healthy reports whether the module has a content source.
func (m Module) Healthy() bool {
	return m.content != nil
}

// Mount wires landing route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	svc := newService(m.content, m.base.Shell().APIBase)
	h := newHandlers(svc, m.base)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
