package pagerender

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	flashnotice "github.com/builld/web/internal/services/web/platform/flash"
	webi18n "github.com/builld/web/internal/services/web/platform/i18n"
	"github.com/builld/web/internal/services/web/platform/requestmeta"
	webtemplates "github.com/builld/web/internal/services/web/templates"
	"github.com/builld/web/internal/site/toast"
)

func TestWritePageRendersFullDocument(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "http://builld.test/", nil)
	rr := httptest.NewRecorder()

	err := WritePage(rr, req, Shell{APIBase: "https://api.builld.test", WASMPath: "/wasm/site.wasm"}, Page{
		Title:      "Builld",
		StatusCode: http.StatusAccepted,
		Chrome:     true,
		Body:       fixedBody(`<section id="fragment-root">ok</section>`),
	})
	if err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	if rr.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusAccepted)
	}
	if got := rr.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Fatalf("content-type = %q, want %q", got, "text/html; charset=utf-8")
	}
	body := rr.Body.String()
	if !strings.HasPrefix(strings.ToLower(body), "<!doctype html>") {
		t.Fatalf("expected full document: %q", body)
	}
	for _, marker := range []string{
		`id="main"`,
		`id="fragment-root"`,
		`data-api-base="https://api.builld.test"`,
		`data-wasm="/wasm/site.wasm"`,
		`<link rel="canonical" href="http://builld.test/">`,
		`data-page-indicator`,
	} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing marker %q: %q", marker, body)
		}
	}
}

func TestWritePageDefaultsStatusAndBody(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	if err := WritePage(rr, req, Shell{}, Page{}); err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if strings.Contains(body, "data-wasm") {
		t.Fatalf("expected runtime disabled without wasm path: %q", body)
	}
	if strings.Contains(body, "data-page-indicator") {
		t.Fatalf("expected no chrome: %q", body)
	}
}

func TestWritePagePassesLocalizerToBody(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	err := WritePage(rr, req, Shell{}, Page{
		Body: func(loc webtemplates.Localizer) templ.Component {
			return textComponent(webi18n.T(loc, "web.hero.cta"))
		},
	})
	if err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	if body := rr.Body.String(); !strings.Contains(body, "Let's build") {
		t.Fatalf("body missing localized copy: %q", body)
	}
}

func TestWritePageRendersToastFromFlashNotice(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	setFlashCookie(t, req, flashnotice.Success("web.contact.sent_toast", "web.contact.sent_toast_body"))
	rr := httptest.NewRecorder()

	if err := WritePage(rr, req, Shell{}, Page{Body: fixedBody(`ok`)}); err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	body := rr.Body.String()
	for _, marker := range []string{
		`data-toast-type="success"`,
		`Message sent successfully!`,
		`We&#39;ll get back to you soon.`,
	} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing marker %q: %q", marker, body)
		}
	}
	if !responseHasCookieName(rr, flashnotice.CookieName) {
		t.Fatalf("response missing %q clear cookie", flashnotice.CookieName)
	}
}

func TestWritePageCarriesFlashPlacement(t *testing.T) {
	t.Parallel()

	notice := flashnotice.Failure("web.contact.failed")
	notice.Position = toast.BottomCenter
	notice.Duration = 7 * time.Second
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	setFlashCookie(t, req, notice)
	rr := httptest.NewRecorder()

	if err := WritePage(rr, req, Shell{}, Page{Body: fixedBody(`ok`)}); err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	body := rr.Body.String()
	for _, marker := range []string{
		`data-toast-position="bottom-center"`,
		`data-toast-type="error"`,
		`data-toast-duration="7000"`,
		`Failed to send message. Please try again.`,
	} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing marker %q: %q", marker, body)
		}
	}
	if strings.Contains(body, "toast-description") {
		t.Fatalf("unexpected description line: %q", body)
	}
}

func TestWritePageExplicitToastReplacesFlash(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	setFlashCookie(t, req, flashnotice.Success("web.contact.sent_toast", ""))
	rr := httptest.NewRecorder()

	err := WritePage(rr, req, Shell{}, Page{
		Body:  fixedBody(`ok`),
		Toast: &webtemplates.Toast{Type: toast.Warning, Message: "Heads up"},
	})
	if err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Heads up") || strings.Contains(body, "Message sent successfully!") {
		t.Fatalf("expected explicit toast only: %q", body)
	}
	if !responseHasCookieName(rr, flashnotice.CookieName) {
		t.Fatalf("expected pending notice consumed")
	}
}

func TestWritePageWithoutFlashLeavesCookiesAlone(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	if err := WritePage(rr, req, Shell{}, Page{Body: fixedBody(`ok`)}); err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	if strings.Contains(rr.Body.String(), "data-toast-type") {
		t.Fatalf("unexpected toast markup")
	}
	if responseHasCookieName(rr, flashnotice.CookieName) {
		t.Fatalf("unexpected %q cookie", flashnotice.CookieName)
	}
}

func TestWritePagePersistsExplicitLanguage(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/?lang=en", nil)
	rr := httptest.NewRecorder()
	if err := WritePage(rr, req, Shell{}, Page{}); err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	if !responseHasCookieName(rr, webi18n.LangCookieName) {
		t.Fatalf("response missing %q cookie", webi18n.LangCookieName)
	}
	if body := rr.Body.String(); !strings.Contains(body, `lang="en-US"`) {
		t.Fatalf("body missing resolved lang: %q", body)
	}
}

func fixedBody(markup string) func(webtemplates.Localizer) templ.Component {
	return func(webtemplates.Localizer) templ.Component {
		return textComponent(markup)
	}
}

func setFlashCookie(t *testing.T, req *http.Request, notice flashnotice.Notice) {
	t.Helper()
	seed := httptest.NewRecorder()
	flashnotice.Write(seed, req, notice, requestmeta.SchemePolicy{})
	setCookieHeader := strings.TrimSpace(seed.Header().Get("Set-Cookie"))
	if setCookieHeader == "" {
		t.Fatalf("expected flash cookie header")
	}
	cookie, err := http.ParseSetCookie(setCookieHeader)
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	req.AddCookie(cookie)
}

func responseHasCookieName(rr *httptest.ResponseRecorder, name string) bool {
	if rr == nil {
		return false
	}
	for _, cookie := range rr.Result().Cookies() {
		if cookie != nil && cookie.Name == name {
			return true
		}
	}
	return false
}

type textComponent string

func (c textComponent) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, string(c))
	return err
}
