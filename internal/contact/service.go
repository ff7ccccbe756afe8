package contact

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service accepts submissions for the contact endpoint.
type Service struct {
	sink  Sink
	delay time.Duration
	now   func() time.Time
	newID func() string
}

// Option customises a Service.
type Option func(*Service)

// WithDelay sets the processing delay applied before a success reply.
func WithDelay(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.delay = d
		}
	}
}

// WithClock overrides the record timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides record id generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// NewService returns a service recording to sink. A nil sink logs only.
func NewService(sink Sink, opts ...Option) *Service {
	if sink == nil {
		sink = LogSink{}
	}
	s := &Service{
		sink:  sink,
		delay: time.Second,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit checks, records and acknowledges sub. The checks run on the
// sanitized fields, so markup-only values count as missing. Rejections are
// *InvalidError.
func (s *Service) Submit(ctx context.Context, sub Submission) (string, error) {
	clean := sub.Sanitized()
	if err := clean.CheckRequired(); err != nil {
		return "", err
	}
	record := Record{
		ID:         s.newID(),
		Submission: clean,
		ReceivedAt: s.now().UTC(),
	}
	if err := s.sink.Record(ctx, record); err != nil {
		return "", fmt.Errorf("record submission: %w", err)
	}
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	return MsgSuccess, nil
}
