// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strings"

	"github.com/builld/web/internal/site/section"
)

const (
	Root          = "/"
	Health        = "/up"
	StaticPrefix  = "/static/"
	WASMPrefix    = "/wasm/"
	APIPrefix     = "/api/"
	APIContact    = "/api/contact"
	ContactPrefix = "/contact/"
	Contact       = "/contact"
)

// ContactSentQuery marks the landing page render that follows a successful
// form fallback submission.
const ContactSentQuery = "contact"

// SectionAnchor returns the in-page fragment link for s.
func SectionAnchor(s section.Section) string {
	return "#" + s.ElementID()
}

// LandingSection returns the landing page URL scrolled to s.
func LandingSection(s section.Section) string {
	return Root + SectionAnchor(s)
}

// ContactSent returns the redirect target after a fallback form submission.
func ContactSent() string {
	query := url.Values{}
	query.Set(ContactSentQuery, "sent")
	return Root + "?" + query.Encode() + SectionAnchor(section.Contact)
}

// APIURL joins an external API base with an API path. An empty base keeps the
// path same-origin.
func APIURL(base string, path string) string {
	return strings.TrimRight(strings.TrimSpace(base), "/") + path
}
