package templates

import (
	"context"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/builld/web/internal/services/web/routepath"
	"github.com/builld/web/internal/site/section"
	"github.com/builld/web/internal/site/toast"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// PageContext provides shared layout context for pages.
type PageContext struct {
	Title        string
	Description  string
	Lang         string
	CanonicalURL string
	// APIBase is the external API origin the browser runtime posts to. Empty
	// keeps requests same-origin.
	APIBase string
	// WASMPath points at the browser runtime module; empty disables it.
	WASMPath string
	Loc      Localizer
	Toast    *Toast
	// Chrome renders the navigation header and page indicator.
	Chrome bool
}

// Toast is a server-rendered notice shown once on page load. The browser
// runtime hands it to the notifier with the same position and duration.
type Toast struct {
	Type        toast.Type
	Position    toast.Position
	Message     string
	Description string
	Duration    time.Duration
}

// Layout renders the document shell around the children in ctx.
func Layout(page PageContext) templ.Component {
	return Component(func(ctx context.Context) g.Node {
		lang := page.Lang
		if lang == "" {
			lang = "en-US"
		}
		title := page.Title
		if title == "" {
			title = T(page.Loc, "core.tagline")
		}
		description := page.Description
		if description == "" {
			description = T(page.Loc, "core.meta.description")
		}
		return Doctype(
			HTML(
				Lang(lang),
				Head(
					Meta(Charset("utf-8")),
					Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
					g.El("title", g.Text(title)),
					Meta(Name("description"), Content(description)),
					g.If(page.CanonicalURL != "", Link(Rel("canonical"), Href(page.CanonicalURL))),
					Meta(g.Attr("property", "og:title"), Content(title)),
					Meta(g.Attr("property", "og:description"), Content(description)),
					Link(Rel("stylesheet"), Href("/static/site.css")),
					Script(Src("/static/site.js"), Defer()),
				),
				Body(
					Class("site"),
					Data("api-base", page.APIBase),
					g.If(page.WASMPath != "", Data("wasm", page.WASMPath)),
					g.If(page.Chrome, siteHeader(page.Loc)),
					g.If(page.Chrome, pageIndicator(page.Loc)),
					Main(ID("main"), children(ctx)),
					toastRegion(page.Loc, page.Toast),
				),
			),
		)
	})
}

func siteHeader(loc Localizer) g.Node {
	return Header(
		Class("site-header"),
		A(Class("site-logo"), Href(routepath.SectionAnchor(section.Hero)), Data("scroll-to", section.Hero.String()), text(loc, "core.brand")),
		Nav(
			Class("site-nav"),
			Aria("label", T(loc, "core.brand")),
			Ul(g.Group(g.Map(section.Nav(), func(s section.Section) g.Node {
				return Li(navLink(loc, s, "site-nav-link"))
			}))),
		),
	)
}

func pageIndicator(loc Localizer) g.Node {
	return Nav(
		Class("page-indicator"),
		Data("page-indicator", ""),
		Aria("hidden", "true"),
		g.Group(g.Map(section.Nav(), func(s section.Section) g.Node {
			return A(
				Class("page-indicator-dot"),
				Href(routepath.SectionAnchor(s)),
				Data("nav-section", s.String()),
				Data("scroll-to", s.String()),
				g.Attr("title", T(loc, s.NavLabelKey())),
				g.Attr("tabindex", "-1"),
			)
		})),
	)
}

func navLink(loc Localizer, s section.Section, class string) g.Node {
	return A(
		Class(class),
		Href(routepath.SectionAnchor(s)),
		Data("nav-section", s.String()),
		Data("scroll-to", s.String()),
		text(loc, s.NavLabelKey()),
	)
}

func toastRegion(loc Localizer, notice *Toast) g.Node {
	position := toast.TopRight
	if notice != nil && notice.Position.Valid() {
		position = notice.Position
	}
	return Div(
		ID("toast-region"),
		Class("toast-region toast-"+string(position)),
		Data("toast-position", string(position)),
		Aria("live", "polite"),
		g.Iff(notice != nil, func() g.Node { return toastNode(loc, *notice) }),
	)
}

func toastNode(loc Localizer, notice Toast) g.Node {
	kind := notice.Type
	if !kind.Valid() {
		kind = toast.Info
	}
	duration := notice.Duration
	if duration <= 0 {
		duration = toast.DefaultDuration
	}
	return Div(
		Class("toast toast-"+string(kind)),
		Role("status"),
		Data("toast-type", string(kind)),
		Data("toast-duration", strconv.FormatInt(duration.Milliseconds(), 10)),
		Div(
			Class("toast-body"),
			P(Class("toast-message"), g.Text(notice.Message)),
			g.If(notice.Description != "", P(Class("toast-description"), g.Text(notice.Description))),
		),
		Button(
			Type("button"),
			Class("toast-close"),
			Data("toast-close", ""),
			Aria("label", T(loc, "core.toast.close")),
			g.Raw("&times;"),
		),
		Div(Class("toast-progress"), Data("toast-progress", "")),
	)
}
