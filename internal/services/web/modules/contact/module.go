// Package contact serves the contact endpoint and the HTML form fallback.
package contact

import (
	"context"
	"log"
	"net/http"
	"strings"

	domain "github.com/builld/web/internal/contact"
	"github.com/builld/web/internal/services/web/content"
	"github.com/builld/web/internal/services/web/module"
	"github.com/builld/web/internal/services/web/platform/publichandler"
	"github.com/builld/web/internal/services/web/routepath"
)

// Submitter delivers a submission and returns the acknowledgement message.
type Submitter interface {
	Submit(ctx context.Context, sub domain.Submission) (string, error)
}

// ContentSource supplies the landing content re-rendered around form errors.
type ContentSource interface {
	Site() content.Site
}

// Module provides one contact surface: the JSON endpoint or the form fallback.
type Module struct {
	id             string
	prefix         string
	registerRoutes func(*http.ServeMux, handlers)
	submitter      Submitter
	content        ContentSource
	base           publichandler.Base
	logger         *log.Logger
}

// NewAPI returns the JSON endpoint module mounted under /api/.
func NewAPI(submitter Submitter, logger *log.Logger) Module {
	return Module{
		id:             "contact-api",
		prefix:         routepath.APIPrefix,
		registerRoutes: registerAPIRoutes,
		submitter:      submitter,
		logger:         logger,
	}
}

// NewForm returns the form fallback module mounted at /contact.
func NewForm(submitter Submitter, source ContentSource, base publichandler.Base, logger *log.Logger) Module {
	return Module{
		id:             "contact-form",
		prefix:         routepath.ContactPrefix,
		registerRoutes: registerFormRoutes,
		submitter:      submitter,
		content:        source,
		base:           base,
		logger:         logger,
	}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (m Module) ID() string {
	id := strings.TrimSpace(m.id)
	if id == "" {
		return "contact"
	}
	return id
}

// Healthy reports whether the module can deliver submissions.
func (m Module) Healthy() bool {
	return m.submitter != nil
}

// Mount wires the contact routes under the module prefix.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	svc := newService(m.submitter)
	h := newHandlers(svc, m.content, m.base, m.logger)
	if m.registerRoutes != nil {
		m.registerRoutes(mux, h)
	} else {
		registerAPIRoutes(mux, h)
	}
	prefix := strings.TrimSpace(m.prefix)
	if prefix == "" {
		prefix = routepath.APIPrefix
	}
	return module.Mount{Prefix: prefix, Handler: mux}, nil
}
