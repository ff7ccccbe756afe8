// Package content loads the landing page copy that is data rather than
// translation: plans, process cards and contact details.
package content

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/builld/web/internal/site/stepper"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// FileName is the content file looked up in an override directory.
const FileName = "site.yaml"

//go:embed site.yaml
var embeddedSite []byte

// Period is one subscription billing period.
type Period string

const (
	PeriodMonthly   Period = "monthly"
	PeriodQuarterly Period = "quarterly"
	PeriodYearly    Period = "yearly"
)

// Periods lists billing periods in display order.
func Periods() []Period {
	return []Period{PeriodMonthly, PeriodQuarterly, PeriodYearly}
}

// Service is one priced one-time deliverable.
type Service struct {
	Name  string `yaml:"name"`
	Price int    `yaml:"price"`
}

// Pricing holds the per-month subscription price for each billing period.
type Pricing struct {
	Monthly   int `yaml:"monthly"`
	Quarterly int `yaml:"quarterly"`
	Yearly    int `yaml:"yearly"`
}

// For returns the monthly price billed under period.
func (p Pricing) For(period Period) int {
	switch period {
	case PeriodQuarterly:
		return p.Quarterly
	case PeriodYearly:
		return p.Yearly
	default:
		return p.Monthly
	}
}

// Plan is one pricing plan card.
type Plan struct {
	Name                 string    `yaml:"name"`
	Description          string    `yaml:"description"`
	Light                bool      `yaml:"light"`
	OneTimeServices      []Service `yaml:"one_time_services"`
	SubscriptionServices []string  `yaml:"subscription_services"`
	Pricing              Pricing   `yaml:"pricing"`
}

// OneTimeTotal sums the one-time service prices.
func (p Plan) OneTimeTotal() int {
	total := 0
	for _, service := range p.OneTimeServices {
		total += service.Price
	}
	return total
}

// ProcessCard is one card of the process stepper.
type ProcessCard struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// ContactDetails lists the studio's public contact points.
type ContactDetails struct {
	Emails []string `yaml:"emails"`
	Phones []string `yaml:"phones"`
}

// Site is the complete landing page content.
type Site struct {
	Plans        []Plan         `yaml:"plans"`
	ProcessCards []ProcessCard  `yaml:"process_cards"`
	Contact      ContactDetails `yaml:"contact"`
}

// PlanNames returns plan names in display order.
func (s Site) PlanNames() []string {
	names := make([]string, 0, len(s.Plans))
	for _, plan := range s.Plans {
		names = append(names, plan.Name)
	}
	return names
}

// Parse decodes and validates site content. Unknown fields are rejected.
func Parse(data []byte) (Site, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	var site Site
	if err := decoder.Decode(&site); err != nil {
		if errors.Is(err, io.EOF) {
			return Site{}, fmt.Errorf("content is empty")
		}
		return Site{}, fmt.Errorf("decode content: %w", err)
	}
	if err := site.validate(); err != nil {
		return Site{}, err
	}
	return site, nil
}

func (s Site) validate() error {
	if len(s.Plans) == 0 {
		return fmt.Errorf("content requires at least one plan")
	}
	seen := make(map[string]struct{}, len(s.Plans))
	for idx, plan := range s.Plans {
		name := strings.TrimSpace(plan.Name)
		if name == "" {
			return fmt.Errorf("plan %d: name is required", idx)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("plan %q is duplicated", name)
		}
		seen[name] = struct{}{}
		for _, period := range Periods() {
			if plan.Pricing.For(period) <= 0 {
				return fmt.Errorf("plan %q: %s price must be positive", name, period)
			}
		}
		for _, service := range plan.OneTimeServices {
			if service.Price < 0 {
				return fmt.Errorf("plan %q: service %q has a negative price", name, service.Name)
			}
		}
	}
	if len(s.ProcessCards) != stepper.CardCount {
		return fmt.Errorf("content requires %d process cards, got %d", stepper.CardCount, len(s.ProcessCards))
	}
	for idx, card := range s.ProcessCards {
		if strings.TrimSpace(card.Title) == "" {
			return fmt.Errorf("process card %d: title is required", idx+1)
		}
	}
	return nil
}

var defaultSite = mustParseEmbedded()

func mustParseEmbedded() Site {
	site, err := Parse(embeddedSite)
	if err != nil {
		panic(fmt.Sprintf("parse embedded content: %v", err))
	}
	return site
}

// Default returns the embedded site content.
func Default() Site {
	return defaultSite
}

// LoadFile reads and parses one content file.
func LoadFile(path string) (Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Site{}, fmt.Errorf("read content %s: %w", path, err)
	}
	site, err := Parse(data)
	if err != nil {
		return Site{}, fmt.Errorf("parse content %s: %w", path, err)
	}
	return site, nil
}

// Store serves the current site content and swaps it when the override file
// changes.
type Store struct {
	dir     string
	logger  *log.Logger
	current atomic.Pointer[Site]
}

// NewStore returns a store seeded from dir/site.yaml when present, or the
// embedded content otherwise. An empty dir disables overrides.
func NewStore(dir string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{dir: strings.TrimSpace(dir), logger: logger}
	site := Default()
	if s.dir != "" {
		loaded, err := LoadFile(s.path())
		switch {
		case err == nil:
			site = loaded
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, err
		}
	}
	s.current.Store(&site)
	return s, nil
}

// Site returns the current content.
func (s *Store) Site() Site {
	if s == nil {
		return Default()
	}
	return *s.current.Load()
}

func (s *Store) path() string {
	return filepath.Join(s.dir, FileName)
}

// Watch reloads the override file on change until ctx is done. A removed file
// restores the embedded content; an invalid file keeps the previous content.
func (s *Store) Watch(ctx context.Context) error {
	if s == nil || s.dir == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create content watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("watch content dir %s: %w", s.dir, err)
	}
	s.logger.Printf("content watcher started dir=%s", s.dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != FileName {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			s.reload()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Printf("content watcher error dir=%s err=%v", s.dir, err)
		}
	}
}

func (s *Store) reload() {
	site, err := LoadFile(s.path())
	if errors.Is(err, os.ErrNotExist) {
		site, err = Default(), nil
	}
	if err != nil {
		s.logger.Printf("content reload rejected path=%s err=%v", s.path(), err)
		return
	}
	s.current.Store(&site)
	s.logger.Printf("content reloaded path=%s plans=%d", s.path(), len(site.Plans))
}
