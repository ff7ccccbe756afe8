// Package publichandler provides a shared base for public web module handlers.
// It centralizes error handling and page rendering that would otherwise be
// duplicated across modules.
package publichandler

import (
	"log"
	"net/http"

	apperrors "github.com/builld/web/internal/services/web/platform/errors"
	"github.com/builld/web/internal/services/web/platform/httpx"
	"github.com/builld/web/internal/services/web/platform/pagerender"
	"github.com/builld/web/internal/services/web/platform/weberror"
)

// Base provides shared error handling and page rendering for public modules.
// Embed it in handler structs to get WritePage, WriteNotFound and WriteError.
type Base struct {
	shell  pagerender.Shell
	logger *log.Logger
}

// Option configures a Base.
type Option func(*Base)

// WithLogger sets the logger used for server-side failures.
func WithLogger(logger *log.Logger) Option {
	return func(b *Base) { b.logger = logger }
}

// NewBase builds a public handler base with the given options.
func NewBase(shell pagerender.Shell, opts ...Option) Base {
	b := Base{shell: shell}
	for _, o := range opts {
		o(&b)
	}
	return b
}

// Shell returns the layout settings used for every page.
func (b Base) Shell() pagerender.Shell {
	return b.shell
}

// WritePage renders a full page, falling back to the error page when
// rendering fails.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, page pagerender.Page) {
	if err := pagerender.WritePage(w, r, b.shell, page); err != nil {
		b.WriteError(w, r, err)
	}
}

// WriteNotFound renders the localized 404 page.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, b.shell)
}

// WriteError renders a user-safe error response: error pages for not-found
// and server errors, plain-text status messages for everything else.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	if w == nil {
		return
	}
	if apperrors.HTTPStatus(err) >= http.StatusInternalServerError {
		b.logf(r, err)
	}
	weberror.WriteModuleError(w, r, err, b.shell)
}

func (b Base) logf(r *http.Request, err error) {
	logger := b.logger
	if logger == nil {
		logger = log.Default()
	}
	path, requestID := "", ""
	if r != nil {
		if r.URL != nil {
			path = r.URL.Path
		}
		requestID = r.Header.Get(httpx.RequestIDHeader)
	}
	logger.Printf("web handler failed path=%s request_id=%s err=%v", path, requestID, err)
}
