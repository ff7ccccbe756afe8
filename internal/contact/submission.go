// Package contact validates and records contact form submissions.
package contact

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Submission is the payload of the contact form.
type Submission struct {
	Email         string `json:"email"`
	PhoneNumber   string `json:"phoneNumber"`
	BusinessStage string `json:"businessStage"`
	Challenge     string `json:"challenge"`
}

// Field names a form input. Values match the JSON field names.
type Field string

const (
	FieldEmail         Field = "email"
	FieldPhoneNumber   Field = "phoneNumber"
	FieldBusinessStage Field = "businessStage"
	FieldChallenge     Field = "challenge"
)

// Form validation messages.
const (
	MsgEmailRequired     = "Email is required"
	MsgEmailInvalid      = "Invalid email format"
	MsgPhoneRequired     = "Phone number is required"
	MsgPhoneInvalid      = "Please enter a valid phone number"
	MsgStageRequired     = "Please select a business stage"
	MsgChallengeRequired = "Please describe your biggest challenge"
)

// Endpoint responses.
const (
	MsgFieldsRequired = "All fields are required (email, phoneNumber, challenge)"
	MsgInvalidBody    = "Invalid request body"
	MsgSuccess        = "Thank you for your message! We'll get back to you soon."
	MsgInternal       = "Internal server error. Please try again later."
)

// BusinessStages are the selectable plans.
var BusinessStages = []string{"LaunchPad", "Ignite"}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether email has the shape local@domain.tld.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// NormalizePhone trims the number and adds a leading + when missing.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" || strings.HasPrefix(phone, "+") {
		return phone
	}
	return "+" + phone
}

// ValidPhone reports whether phone is a valid international number once
// normalized.
func ValidPhone(phone string) bool {
	normalized := NormalizePhone(phone)
	if normalized == "" {
		return false
	}
	number, err := phonenumbers.Parse(normalized, "")
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(number)
}

// FieldErrors maps a field to its validation message.
type FieldErrors map[Field]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, string(field))
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e[Field(field)]))
	}
	return "invalid submission: " + strings.Join(parts, "; ")
}

// Validate applies the form rules. It returns nil when every field passes.
func (s Submission) Validate() FieldErrors {
	errs := FieldErrors{}
	switch email := strings.TrimSpace(s.Email); {
	case email == "":
		errs[FieldEmail] = MsgEmailRequired
	case !ValidEmail(email):
		errs[FieldEmail] = MsgEmailInvalid
	}
	switch {
	case strings.TrimSpace(s.PhoneNumber) == "":
		errs[FieldPhoneNumber] = MsgPhoneRequired
	case !ValidPhone(s.PhoneNumber):
		errs[FieldPhoneNumber] = MsgPhoneInvalid
	}
	if strings.TrimSpace(s.BusinessStage) == "" {
		errs[FieldBusinessStage] = MsgStageRequired
	}
	if strings.TrimSpace(s.Challenge) == "" {
		errs[FieldChallenge] = MsgChallengeRequired
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// InvalidError is a submission rejected by the endpoint checks.
type InvalidError struct {
	Message string
}

func (e *InvalidError) Error() string {
	return e.Message
}

// CheckRequired applies the endpoint checks: email, phone number and
// challenge present, and the email well formed.
func (s Submission) CheckRequired() error {
	if s.Email == "" || s.PhoneNumber == "" || s.Challenge == "" {
		return &InvalidError{Message: MsgFieldsRequired}
	}
	if !ValidEmail(s.Email) {
		return &InvalidError{Message: MsgEmailInvalid}
	}
	return nil
}

// Trimmed returns s with surrounding whitespace removed from every field.
func (s Submission) Trimmed() Submission {
	return Submission{
		Email:         strings.TrimSpace(s.Email),
		PhoneNumber:   strings.TrimSpace(s.PhoneNumber),
		BusinessStage: strings.TrimSpace(s.BusinessStage),
		Challenge:     strings.TrimSpace(s.Challenge),
	}
}
