package weberror

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/builld/web/internal/platform/i18n/catalog"
	apperrors "github.com/builld/web/internal/services/web/platform/errors"
	"github.com/builld/web/internal/services/web/platform/pagerender"
)

func TestWriteModuleErrorRendersAppErrorPageForNotFound(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	rr := httptest.NewRecorder()
	WriteModuleError(rr, req, apperrors.E(apperrors.KindNotFound, "missing"), pagerender.Shell{})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	body := rr.Body.String()
	for _, marker := range []string{`id="app-not-found"`, `Page Not Found | Builld`, `href="/"`} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing marker %q: %q", marker, body)
		}
	}
}

func TestWriteModuleErrorRendersServerErrorPage(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	WriteModuleError(rr, req, errors.New("db exploded"), pagerender.Shell{})
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `id="app-error-state"`) {
		t.Fatalf("body missing app error state marker: %q", body)
	}
	if strings.Contains(body, "db exploded") {
		t.Fatalf("body leaked internal error text: %q", body)
	}
}

func TestWriteModuleErrorWritesPlainTextForBadRequest(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/contact", nil)
	rr := httptest.NewRecorder()
	WriteModuleError(rr, req, apperrors.E(apperrors.KindInvalidInput, "bad form"), pagerender.Shell{})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	body := rr.Body.String()
	if !strings.Contains(body, http.StatusText(http.StatusBadRequest)) {
		t.Fatalf("body = %q, want generic bad-request message", body)
	}
	// User-facing errors must not leak raw internal strings.
	if strings.Contains(body, "bad form") {
		t.Fatalf("body leaked internal error text: %q", body)
	}
}

func TestWriteAppErrorNormalizesStatus(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	WriteAppError(rr, req, http.StatusTeapot, pagerender.Shell{})
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}

func TestHandlers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.Handler
		status  int
		marker  string
	}{
		{name: "not found", handler: NotFound(pagerender.Shell{}), status: http.StatusNotFound, marker: `id="app-not-found"`},
		{name: "internal error", handler: InternalError(pagerender.Shell{}), status: http.StatusInternalServerError, marker: `id="app-error-state"`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rr := httptest.NewRecorder()
			tc.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
			if rr.Code != tc.status {
				t.Fatalf("status = %d, want %d", rr.Code, tc.status)
			}
			if !strings.Contains(rr.Body.String(), tc.marker) {
				t.Fatalf("body missing %q", tc.marker)
			}
		})
	}
}

func TestPublicMessage(t *testing.T) {
	t.Parallel()

	loc := catalog.Printer(catalog.BaseLocale)
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "localized key", err: apperrors.EK(apperrors.KindUnavailable, "web.contact.failed", "sink down"), want: "Failed to send message. Please try again."},
		{name: "status text fallback", err: apperrors.E(apperrors.KindValidation, "nope"), want: http.StatusText(http.StatusUnprocessableEntity)},
		{name: "unknown error", err: errors.New("boom"), want: http.StatusText(http.StatusInternalServerError)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := PublicMessage(loc, tc.err); got != tc.want {
				t.Fatalf("PublicMessage() = %q, want %q", got, tc.want)
			}
		})
	}
}
