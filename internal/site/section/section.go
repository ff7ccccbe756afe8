// Package section names the scrollable regions of the landing page.
package section

import (
	"fmt"
	"strings"
)

// Section identifies one full-height region of the page.
type Section string

const (
	Splash       Section = "splash"
	Hero         Section = "hero"
	About        Section = "about"
	Process      Section = "process"
	ProcessSteps Section = "process-steps"
	Services     Section = "services"
	Contact      Section = "contact"
)

// ElementPrefix prefixes every section root element id.
const ElementPrefix = "section-"

var all = []Section{Splash, Hero, About, Process, ProcessSteps, Services, Contact}

var nav = []Section{Hero, About, Process, Services, Contact}

// All returns every section in page order.
func All() []Section {
	return append([]Section(nil), all...)
}

// Nav returns the sections shown in navigation, in page order.
func Nav() []Section {
	return append([]Section(nil), nav...)
}

// Valid reports whether s is a known section.
func (s Section) Valid() bool {
	for _, candidate := range all {
		if candidate == s {
			return true
		}
	}
	return false
}

// ElementID returns the DOM id of the section root.
func (s Section) ElementID() string {
	return ElementPrefix + string(s)
}

// NavLabelKey returns the catalog key of the navigation label.
func (s Section) NavLabelKey() string {
	return "core.nav." + string(s.Normalize())
}

// Normalize maps sub-sections onto the navigation entry that highlights them.
func (s Section) Normalize() Section {
	if s == ProcessSteps {
		return Process
	}
	return s
}

func (s Section) String() string {
	return string(s)
}

// Parse accepts a section name or its element id.
func Parse(raw string) (Section, error) {
	value := strings.TrimPrefix(strings.TrimSpace(raw), ElementPrefix)
	s := Section(value)
	if !s.Valid() {
		return "", fmt.Errorf("unknown section %q", raw)
	}
	return s, nil
}
