// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	flashnotice "github.com/builld/web/internal/services/web/platform/flash"
	"github.com/builld/web/internal/services/web/platform/httpx"
	webi18n "github.com/builld/web/internal/services/web/platform/i18n"
	"github.com/builld/web/internal/services/web/platform/requestmeta"
	webtemplates "github.com/builld/web/internal/services/web/templates"
)

// Shell carries the site-wide layout settings shared by every page.
type Shell struct {
	// APIBase is the external API origin the browser runtime posts to.
	APIBase string
	// WASMPath is the browser runtime module path; empty disables it.
	WASMPath string
	Policy   requestmeta.SchemePolicy
}

// Page describes one full-document response.
type Page struct {
	Title       string
	Description string
	StatusCode  int
	// Chrome renders the navigation header and page indicator.
	Chrome bool
	// Body builds the page content once the request language is known.
	Body func(loc webtemplates.Localizer) templ.Component
	// Toast replaces any pending flash notice.
	Toast *webtemplates.Toast
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WritePage renders page inside the site layout. A pending flash notice is
// consumed and shown as a toast.
func WritePage(w http.ResponseWriter, r *http.Request, shell Shell, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}

	loc, lang := webi18n.ResolveLocalizer(w, r)
	var body templ.Component = emptyComponent{}
	if page.Body != nil {
		if built := page.Body(loc); built != nil {
			body = built
		}
	}

	notice := resolveFlashToast(w, r, shell.Policy, loc)
	if page.Toast != nil {
		notice = page.Toast
	}
	layout := webtemplates.Layout(webtemplates.PageContext{
		Title:        page.Title,
		Description:  page.Description,
		Lang:         lang,
		CanonicalURL: canonicalURL(r, shell.Policy),
		APIBase:      shell.APIBase,
		WASMPath:     shell.WASMPath,
		Loc:          loc,
		Toast:        notice,
		Chrome:       page.Chrome,
	})

	var buf bytes.Buffer
	if err := layout.Render(templ.WithChildren(httpx.RequestContext(r), body), &buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}

func canonicalURL(r *http.Request, policy requestmeta.SchemePolicy) string {
	if r == nil || r.URL == nil {
		return ""
	}
	origin := requestmeta.Origin(r, policy)
	if origin == "" {
		return ""
	}
	return origin + r.URL.Path
}

func resolveFlashToast(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy, loc webi18n.Localizer) *webtemplates.Toast {
	notice, ok := flashnotice.Take(w, r, policy)
	if !ok {
		return nil
	}
	message := strings.TrimSpace(webi18n.T(loc, notice.MessageKey))
	if message == "" {
		return nil
	}
	var description string
	if notice.DescriptionKey != "" {
		description = strings.TrimSpace(webi18n.T(loc, notice.DescriptionKey))
	}
	opts := notice.Options(description)
	return &webtemplates.Toast{
		Type:        opts.Type,
		Position:    opts.Position,
		Message:     message,
		Description: opts.Description,
		Duration:    opts.Duration,
	}
}
