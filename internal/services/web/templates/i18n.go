package templates

import (
	webi18n "github.com/builld/web/internal/services/web/platform/i18n"
	g "maragu.dev/gomponents"
)

// Localizer provides translated strings for page components.
type Localizer = webi18n.Localizer

// T returns a translated string or the key when loc is nil.
func T(loc Localizer, key string, args ...any) string {
	return webi18n.T(loc, key, args...)
}

func text(loc Localizer, key string, args ...any) g.Node {
	return g.Text(T(loc, key, args...))
}
