package contactform

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/builld/web/internal/contact"
	"github.com/builld/web/internal/site/toast"
)

// Toast copy.
const (
	MsgSentFallback    = "Message sent successfully!"
	MsgSentDetail      = "We'll get back to you as soon as possible."
	MsgSendFailed      = "Failed to send message. Please try again."
	MsgReadyForAnother = "Ready for a new message"
)

// ErrBusy is returned by Submit while a submission is in flight.
var ErrBusy = errors.New("contact form: submission in progress")

// Notifier shows toasts.
type Notifier interface {
	Show(message string, opts toast.Options) toast.Toast
}

// View is the visible face of the form.
type View string

const (
	ViewForm    View = "form"
	ViewSuccess View = "success"
)

// State is a snapshot of the form.
type State struct {
	Values          contact.Submission
	Errors          contact.FieldErrors
	Submitting      bool
	View            View
	ResponseMessage string
}

// Form is the contact form controller.
type Form struct {
	submitter Submitter
	toasts    Notifier
	onChange  func(State)

	mu    sync.Mutex
	state State
}

// NewForm returns an empty form. onChange may be nil.
func NewForm(submitter Submitter, toasts Notifier, onChange func(State)) *Form {
	return &Form{
		submitter: submitter,
		toasts:    toasts,
		onChange:  onChange,
		state:     State{View: ViewForm},
	}
}

// State returns the current snapshot.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// SetField updates one input and clears its error.
func (f *Form) SetField(field contact.Field, value string) {
	f.mu.Lock()
	switch field {
	case contact.FieldEmail:
		f.state.Values.Email = value
	case contact.FieldPhoneNumber:
		f.state.Values.PhoneNumber = value
	case contact.FieldBusinessStage:
		f.state.Values.BusinessStage = value
	case contact.FieldChallenge:
		f.state.Values.Challenge = value
	default:
		f.mu.Unlock()
		return
	}
	if _, ok := f.state.Errors[field]; ok {
		errs := contact.FieldErrors{}
		for k, v := range f.state.Errors {
			if k != field {
				errs[k] = v
			}
		}
		f.state.Errors = nil
		if len(errs) > 0 {
			f.state.Errors = errs
		}
	}
	f.publishLocked()
}

// Submit validates and sends the current values. It returns ErrBusy while a
// submission is in flight, contact.FieldErrors when validation fails, and the
// submitter error when delivery fails.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.state.Submitting {
		f.mu.Unlock()
		return ErrBusy
	}
	values := f.state.Values.Trimmed()
	if errs := values.Validate(); errs != nil {
		f.state.Errors = errs
		f.publishLocked()
		return errs
	}
	values.PhoneNumber = contact.NormalizePhone(values.PhoneNumber)
	f.state.Errors = nil
	f.state.Submitting = true
	f.publishLocked()

	message, err := f.submitter.Submit(ctx, values)

	f.mu.Lock()
	f.state.Submitting = false
	if err != nil {
		f.publishLocked()
		f.toasts.Show(failureMessage(err), toast.Options{Type: toast.Error, Position: toast.BottomRight})
		return err
	}
	f.state.Values = contact.Submission{}
	f.state.View = ViewSuccess
	f.state.ResponseMessage = message
	f.publishLocked()

	if strings.TrimSpace(message) == "" {
		message = MsgSentFallback
	}
	f.toasts.Show(message, toast.Options{Type: toast.Success, Position: toast.BottomRight, Description: MsgSentDetail})
	return nil
}

// SendAnother leaves the success view for a blank form.
func (f *Form) SendAnother() {
	f.mu.Lock()
	if f.state.View != ViewSuccess {
		f.mu.Unlock()
		return
	}
	f.state = State{View: ViewForm}
	f.publishLocked()
	f.toasts.Show(MsgReadyForAnother, toast.Options{Type: toast.Info, Position: toast.BottomRight})
}

func failureMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	var invalid *contact.InvalidError
	if errors.As(err, &invalid) && invalid.Message != "" {
		return invalid.Message
	}
	return MsgSendFailed
}

func (f *Form) snapshotLocked() State {
	state := f.state
	if state.Errors != nil {
		errs := make(contact.FieldErrors, len(state.Errors))
		for k, v := range state.Errors {
			errs[k] = v
		}
		state.Errors = errs
	}
	return state
}

func (f *Form) publishLocked() {
	state := f.snapshotLocked()
	f.mu.Unlock()
	if f.onChange != nil {
		f.onChange(state)
	}
}
