package contact

import (
	"context"
	"sync"

	domain "github.com/builld/web/internal/contact"
	"github.com/builld/web/internal/services/web/content"
)

type fakeSubmitter struct {
	mu      sync.Mutex
	subs    []domain.Submission
	message string
	err     error
}

func (f *fakeSubmitter) Submit(_ context.Context, sub domain.Submission) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, sub)
	if f.err != nil {
		return "", f.err
	}
	return f.message, nil
}

func (f *fakeSubmitter) submissions() []domain.Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Submission(nil), f.subs...)
}

type recordingSink struct {
	mu      sync.Mutex
	records []domain.Record
}

func (s *recordingSink) Record(_ context.Context, record domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

type staticContent struct{}

func (staticContent) Site() content.Site { return content.Default() }
