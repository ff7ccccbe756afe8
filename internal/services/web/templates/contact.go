package templates

import (
	"github.com/builld/web/internal/contact"
	"github.com/builld/web/internal/services/web/routepath"
	"github.com/builld/web/internal/site/section"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// ContactFormView is the server-rendered state of the contact form.
type ContactFormView struct {
	// Endpoint is the JSON endpoint the browser runtime posts to.
	Endpoint string
	Values   contact.Submission
	Errors   contact.FieldErrors
	Stages   []string
	Sent     bool
}

func contactForm(view ContactFormView, loc Localizer) g.Node {
	if view.Sent {
		return Div(
			ID("contact-success"),
			Class("contact-panel contact-success"),
			Role("status"),
			H3(text(loc, "web.contact.sent_title")),
			P(text(loc, "web.contact.sent_body")),
			A(
				Class("btn btn-secondary"),
				Href(routepath.LandingSection(section.Contact)),
				Data("send-another", ""),
				text(loc, "web.contact.send_another"),
			),
		)
	}
	endpoint := view.Endpoint
	if endpoint == "" {
		endpoint = routepath.APIContact
	}
	return g.El("form",
		ID("contact-form"),
		Class("contact-panel contact-form"),
		Action(routepath.Contact),
		Method("post"),
		g.Attr("novalidate"),
		Data("endpoint", endpoint),
		formField(contact.FieldEmail, "web.contact.email_label", view, loc, func(attrs g.Node) g.Node {
			return Input(
				attrs,
				Type("email"),
				g.Attr("autocomplete", "email"),
				Placeholder(T(loc, "web.contact.email_placeholder")),
				Value(view.Values.Email),
			)
		}),
		formField(contact.FieldPhoneNumber, "web.contact.phone_label", view, loc, func(attrs g.Node) g.Node {
			return Input(
				attrs,
				Type("tel"),
				g.Attr("autocomplete", "tel"),
				Placeholder("+1 555 123 4567"),
				Value(view.Values.PhoneNumber),
			)
		}),
		formField(contact.FieldBusinessStage, "web.contact.stage_label", view, loc, func(attrs g.Node) g.Node {
			return Select(
				attrs,
				Option(Value(""), text(loc, "web.contact.stage_placeholder")),
				g.Group(g.Map(view.Stages, func(stage string) g.Node {
					return Option(Value(stage), g.If(stage == view.Values.BusinessStage, Selected()), g.Text(stage))
				})),
			)
		}),
		formField(contact.FieldChallenge, "web.contact.challenge_label", view, loc, func(attrs g.Node) g.Node {
			return Textarea(
				attrs,
				g.Attr("rows", "4"),
				Placeholder(T(loc, "web.contact.challenge_placeholder")),
				g.Text(view.Values.Challenge),
			)
		}),
		Button(
			Type("submit"),
			Class("btn btn-primary contact-submit"),
			Data("label-idle", T(loc, "web.contact.submit")),
			Data("label-busy", T(loc, "web.contact.sending")),
			text(loc, "web.contact.submit"),
		),
	)
}

// formField wraps control with its label and error slot. The control receives
// the field's id and name so the browser runtime can find it by field name.
func formField(field contact.Field, labelKey string, view ContactFormView, loc Localizer, control func(attrs g.Node) g.Node) g.Node {
	name := string(field)
	message, invalid := view.Errors[field]
	errorID := name + "-error"
	return Div(
		Class("form-field"),
		Data("field", name),
		g.El("label", For(name), text(loc, labelKey)),
		control(g.Group([]g.Node{
			ID(name),
			Name(name),
			Required(),
			g.If(invalid, Aria("invalid", "true")),
			g.If(invalid, Aria("describedby", errorID)),
		})),
		P(
			ID(errorID),
			Class("field-error"),
			Data("field-error", name),
			g.If(!invalid, g.Attr("hidden")),
			g.Text(message),
		),
	)
}
