package templates

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/builld/web/internal/services/web/routepath"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const (
	appErrorTitleKey    = "core.error.title"
	appErrorBodyKey     = "core.error.body"
	appErrorReloadKey   = "core.error.reload"
	notFoundCodeKey     = "core.notfound.code"
	notFoundTitleKey    = "core.notfound.title"
	notFoundBodyKey     = "core.notfound.body"
	notFoundHomeLinkKey = "core.notfound.home"
)

// AppErrorPageTitle returns the browser page title for error pages.
func AppErrorPageTitle(statusCode int, loc Localizer) string {
	if normalizeAppErrorStatus(statusCode) == http.StatusNotFound {
		return T(loc, notFoundTitleKey) + " | " + T(loc, "core.brand")
	}
	return T(loc, appErrorTitleKey) + " | " + T(loc, "core.brand")
}

// AppErrorState renders the whole-page error screen for statusCode.
func AppErrorState(statusCode int, loc Localizer) templ.Component {
	return Component(func(context.Context) g.Node {
		if normalizeAppErrorStatus(statusCode) == http.StatusNotFound {
			return notFoundState(loc)
		}
		return serverErrorState(loc)
	})
}

func serverErrorState(loc Localizer) g.Node {
	return Div(
		ID("app-error-state"),
		Class("error-state"),
		Role("alert"),
		H1(Class("error-title"), text(loc, appErrorTitleKey)),
		P(Class("error-body"), text(loc, appErrorBodyKey)),
		// A GET to the current URL; works without the browser runtime.
		g.El("form",
			Method("get"),
			Button(Type("submit"), Class("btn btn-primary"), Data("reload", ""), text(loc, appErrorReloadKey)),
		),
	)
}

func notFoundState(loc Localizer) g.Node {
	return Div(
		ID("app-not-found"),
		Class("error-state"),
		P(Class("error-code"), text(loc, notFoundCodeKey)),
		H1(Class("error-title"), text(loc, notFoundTitleKey)),
		P(Class("error-body"), text(loc, notFoundBodyKey)),
		A(Class("btn btn-primary"), Href(routepath.Root), text(loc, notFoundHomeLinkKey)),
	)
}

func normalizeAppErrorStatus(statusCode int) int {
	if statusCode == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
