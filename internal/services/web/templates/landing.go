package templates

import (
	"context"
	"strconv"

	"github.com/a-h/templ"
	"github.com/builld/web/internal/services/web/content"
	"github.com/builld/web/internal/services/web/routepath"
	"github.com/builld/web/internal/site/section"
	"github.com/builld/web/internal/site/stepper"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// LandingPage is the data behind the single landing page.
type LandingPage struct {
	Site content.Site
	Form ContactFormView
}

// Landing renders every section of the landing page in scroll order.
func Landing(page LandingPage, loc Localizer) templ.Component {
	return Component(func(context.Context) g.Node {
		return g.Group([]g.Node{
			splashScreen(loc),
			heroSection(loc),
			aboutSection(loc),
			processIntro(loc),
			processSteps(page.Site.ProcessCards, loc),
			servicesSection(page.Site.Plans, loc),
			contactSection(page.Site.Contact, page.Form, loc),
		})
	})
}

func sectionRoot(s section.Section, class string, nodes ...g.Node) g.Node {
	return Section(
		ID(s.ElementID()),
		Class("snap-section "+class),
		Data("section", s.String()),
		g.Group(nodes),
	)
}

func scrollLink(loc Localizer, target section.Section, class string, key string) g.Node {
	return A(
		Class(class),
		Href(routepath.SectionAnchor(target)),
		Data("scroll-to", target.String()),
		text(loc, key),
	)
}

func splashScreen(loc Localizer) g.Node {
	return Div(
		ID(section.Splash.ElementID()),
		Class("splash"),
		Data("section", section.Splash.String()),
		Role("progressbar"),
		Aria("valuemin", "0"),
		Aria("valuemax", "100"),
		Aria("valuenow", "0"),
		Div(Class("splash-logo"), text(loc, "core.brand")),
		Div(Class("splash-track"), Div(Class("splash-bar"), Data("splash-bar", ""))),
		Span(Class("splash-percent"), Data("splash-percent", ""), g.Text("0%")),
	)
}

func heroSection(loc Localizer) g.Node {
	return sectionRoot(section.Hero, "hero",
		H1(
			Class("hero-title"),
			Span(Class("hero-word"), text(loc, "web.hero.build")),
			Span(Class("hero-amp"), g.Text("&")),
			Span(Class("hero-word"), text(loc, "web.hero.launch")),
			Span(Class("hero-accent"), text(loc, "web.hero.weeks")),
			Span(Class("hero-strike"), text(loc, "web.hero.months")),
		),
		P(Class("hero-lead"), text(loc, "web.hero.lead")),
		scrollLink(loc, section.Contact, "btn btn-primary", "web.hero.cta"),
	)
}

func aboutSection(loc Localizer) g.Node {
	return sectionRoot(section.About, "about",
		H2(Class("section-heading"), text(loc, "web.about.heading")),
		P(Class("section-lead"), text(loc, "web.about.body")),
	)
}

func processIntro(loc Localizer) g.Node {
	return sectionRoot(section.Process, "process-intro",
		P(Class("eyebrow"), text(loc, "web.process.eyebrow")),
		H2(Class("section-heading"), text(loc, "web.process.heading")),
		P(Class("section-lead"), text(loc, "web.process.body")),
	)
}

func processSteps(cards []content.ProcessCard, loc Localizer) g.Node {
	nodes := make([]g.Node, 0, len(cards))
	for idx, card := range cards {
		index := idx + 1
		nodes = append(nodes, Div(
			Class("process-card process-card-"+strconv.Itoa(index)),
			Data("card-index", strconv.Itoa(index)),
			g.If(index == 1, Aria("current", "step")),
			Span(Class("process-card-number"), g.Text(strconv.Itoa(index))),
			H3(Class("process-card-title"), g.Text(card.Title)),
			P(Class("process-card-body"), g.Text(card.Description)),
		))
	}
	return sectionRoot(section.ProcessSteps, "process-steps",
		Div(
			Class("stepper"),
			Data("stepper", ""),
			Data("card-count", strconv.Itoa(stepper.CardCount)),
			Div(Class("stepper-stack"), g.Group(nodes)),
			Div(
				Class("stepper-finale"),
				Data("stepper-finale", ""),
				g.Attr("hidden"),
				text(loc, "web.process.finale"),
			),
			Div(
				Class("stepper-controls"),
				Button(Type("button"), Class("stepper-prev"), Data("stepper-prev", ""), Aria("label", T(loc, "web.process.prev")), g.Raw("&larr;")),
				Span(Class("stepper-autoplay"), Data("stepper-autoplay", ""), text(loc, "web.process.autoplay_hint")),
				Button(Type("button"), Class("stepper-next"), Data("stepper-next", ""), Aria("label", T(loc, "web.process.next")), g.Raw("&rarr;")),
			),
		),
	)
}

func servicesSection(plans []content.Plan, loc Localizer) g.Node {
	periods := content.Periods()
	return sectionRoot(section.Services, "services",
		H2(Class("section-heading"), text(loc, "web.services.heading")),
		P(Class("section-lead"), text(loc, "web.services.lead")),
		Div(
			Class("period-toggle"),
			Role("group"),
			g.Group(g.Map(periods, func(period content.Period) g.Node {
				return Button(
					Type("button"),
					Class("period-option"),
					Data("period", string(period)),
					Aria("pressed", strconv.FormatBool(period == content.PeriodMonthly)),
					text(loc, "web.services."+string(period)),
				)
			})),
		),
		Div(Class("plans"), g.Group(g.Map(plans, func(plan content.Plan) g.Node {
			return planCard(plan, periods, loc)
		}))),
	)
}

func planCard(plan content.Plan, periods []content.Period, loc Localizer) g.Node {
	tone := "plan-dark"
	if plan.Light {
		tone = "plan-light"
	}
	return Div(
		Class("plan "+tone),
		Data("plan", plan.Name),
		H3(Class("plan-name"), g.Text(plan.Name)),
		P(Class("plan-description"), g.Text(plan.Description)),
		H4(Class("plan-subheading"), text(loc, "web.services.one_time")),
		Ul(Class("plan-services"), g.Group(g.Map(plan.OneTimeServices, func(service content.Service) g.Node {
			return Li(
				Span(Class("plan-service-name"), g.Text(service.Name)),
				Span(Class("plan-service-price"), text(loc, "web.services.price", service.Price)),
			)
		}))),
		Div(
			Class("plan-total"),
			Span(text(loc, "web.services.total")),
			Strong(Data("plan-total", strconv.Itoa(plan.OneTimeTotal())), text(loc, "web.services.price", plan.OneTimeTotal())),
		),
		g.If(len(plan.SubscriptionServices) > 0, g.El("details",
			Class("plan-optional"),
			g.El("summary", text(loc, "web.services.subscription")),
			Ul(g.Group(g.Map(plan.SubscriptionServices, func(name string) g.Node {
				return Li(g.Text(name))
			}))),
		)),
		Div(Class("plan-pricing"), g.Group(g.Map(periods, func(period content.Period) g.Node {
			return Span(
				Class("plan-price"),
				Data("period", string(period)),
				g.If(period != content.PeriodMonthly, g.Attr("hidden")),
				text(loc, "web.services.per_month", plan.Pricing.For(period)),
			)
		}))),
		A(
			Class("btn btn-plan"),
			Href(routepath.SectionAnchor(section.Contact)),
			Data("scroll-to", section.Contact.String()),
			Data("plan-select", plan.Name),
			text(loc, "web.services.cta"),
		),
	)
}

func contactSection(details content.ContactDetails, form ContactFormView, loc Localizer) g.Node {
	return sectionRoot(section.Contact, "contact",
		Div(
			Class("contact-copy"),
			H2(Class("section-heading"), text(loc, "web.contact.heading")),
			P(Class("section-lead"), text(loc, "web.contact.lead")),
			g.If(len(details.Emails) > 0, Div(
				Class("contact-detail"),
				H3(text(loc, "web.contact.email_heading")),
				g.Group(g.Map(details.Emails, func(email string) g.Node {
					return P(A(Href("mailto:"+email), g.Text(email)))
				})),
			)),
			g.If(len(details.Phones) > 0, Div(
				Class("contact-detail"),
				H3(text(loc, "web.contact.phone_heading")),
				g.Group(g.Map(details.Phones, func(phone string) g.Node {
					return P(g.Text(phone))
				})),
			)),
		),
		contactForm(form, loc),
	)
}
