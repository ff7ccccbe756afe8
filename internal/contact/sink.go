package contact

import (
	"context"
	"html"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// Record is an accepted submission.
type Record struct {
	ID         string
	Submission Submission
	ReceivedAt time.Time
}

// Sink receives accepted submissions.
type Sink interface {
	Record(ctx context.Context, record Record) error
}

var (
	sanitizerOnce sync.Once
	sanitizer     *bluemonday.Policy
)

// Sanitize strips markup from free text before it is logged or stored. The
// result is plain text; entities escaped by the policy are decoded again.
func Sanitize(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	sanitizerOnce.Do(func() {
		sanitizer = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(sanitizer.Sanitize(trimmed)))
}

// Sanitized returns s with every field passed through Sanitize.
func (s Submission) Sanitized() Submission {
	return Submission{
		Email:         Sanitize(s.Email),
		PhoneNumber:   Sanitize(s.PhoneNumber),
		BusinessStage: Sanitize(s.BusinessStage),
		Challenge:     Sanitize(s.Challenge),
	}
}

// LogSink writes each record as one key=value log line.
type LogSink struct {
	Logger *log.Logger
}

// Record logs record.
func (s LogSink) Record(_ context.Context, record Record) error {
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}
	sub := record.Submission
	logger.Printf(
		"contact submission id=%s email=%q phone=%q stage=%q challenge=%q timestamp=%s",
		record.ID,
		sub.Email,
		sub.PhoneNumber,
		sub.BusinessStage,
		sub.Challenge,
		record.ReceivedAt.UTC().Format(time.RFC3339),
	)
	return nil
}

// MultiSink records to every sink in order and stops at the first error.
type MultiSink []Sink

// Record forwards record to each sink.
func (m MultiSink) Record(ctx context.Context, record Record) error {
	for _, sink := range m {
		if sink == nil {
			continue
		}
		if err := sink.Record(ctx, record); err != nil {
			return err
		}
	}
	return nil
}
