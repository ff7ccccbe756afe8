// Package i18n resolves the request language and the printer used to render
// catalog copy.
package i18n

import (
	"net/http"
	"strings"
	"time"

	"github.com/builld/web/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the visitor's language preference.
	LangCookieName = "builld_lang"
)

// Localizer exposes translated formatting used by templates and handlers.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// Supported returns the catalog locales as language tags, base locale first.
func Supported() []language.Tag {
	tags := []language.Tag{language.MustParse(catalog.BaseLocale)}
	for _, locale := range catalog.Default().Locales() {
		if locale == catalog.BaseLocale {
			continue
		}
		if tag, err := language.Parse(locale); err == nil {
			tags = append(tags, tag)
		}
	}
	return tags
}

// ResolveTag determines the best supported tag for the request. The bool
// reports whether the choice came from the query parameter and should be
// persisted.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	supported := Supported()
	if r == nil {
		return supported[0], false
	}
	matcher := language.NewMatcher(supported)
	if raw := strings.TrimSpace(r.URL.Query().Get(LangParam)); raw != "" {
		if tag, err := language.Parse(raw); err == nil {
			return match(matcher, supported, tag), true
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, err := language.Parse(strings.TrimSpace(cookie.Value)); err == nil {
			return match(matcher, supported, tag), false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			return match(matcher, supported, tags...), false
		}
	}
	return supported[0], false
}

func match(matcher language.Matcher, supported []language.Tag, tags ...language.Tag) language.Tag {
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No || idx < 0 || idx >= len(supported) {
		return supported[0]
	}
	return supported[idx]
}

// ResolveLocalizer resolves a printer and language string for a request,
// persisting an explicit ?lang= choice as a cookie.
func ResolveLocalizer(w http.ResponseWriter, r *http.Request) (*message.Printer, string) {
	tag, persist := ResolveTag(r)
	if persist && w != nil {
		http.SetCookie(w, &http.Cookie{
			Name:     LangCookieName,
			Value:    tag.String(),
			Path:     "/",
			MaxAge:   int((365 * 24 * time.Hour).Seconds()),
			SameSite: http.SameSiteLaxMode,
		})
	}
	return catalog.Printer(tag.String()), tag.String()
}

// T returns a translated string or the key itself when loc is nil.
func T(loc Localizer, key string, args ...any) string {
	if loc != nil {
		return loc.Sprintf(key, args...)
	}
	return key
}
