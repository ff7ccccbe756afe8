// Package web parses landing site flags and launches the web service.
package web

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	domain "github.com/builld/web/internal/contact"
	contactsqlite "github.com/builld/web/internal/contact/storage/sqlite"
	entrypoint "github.com/builld/web/internal/platform/cmd"
	"github.com/builld/web/internal/platform/timeouts"
	webservice "github.com/builld/web/internal/services/web"
	"github.com/builld/web/internal/services/web/content"
	contactmodule "github.com/builld/web/internal/services/web/modules/contact"
	"github.com/builld/web/internal/services/web/platform/requestmeta"
	"github.com/builld/web/internal/site/contactform"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr     string        `env:"BUILLD_WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	APIBase      string        `env:"BUILLD_API_URL"`
	CORSOrigin   string        `env:"BUILLD_WEB_CORS_ORIGIN"`
	ContactDelay time.Duration `env:"BUILLD_WEB_CONTACT_DELAY" envDefault:"1s"`
	ContactDB    string        `env:"BUILLD_WEB_CONTACT_DB_PATH"`
	ContentDir   string        `env:"BUILLD_WEB_CONTENT_DIR"`
	WASMDir      string        `env:"BUILLD_WEB_WASM_DIR"`
	// TrustForwardedProto honors X-Forwarded-Proto behind a TLS proxy.
	TrustForwardedProto bool `env:"BUILLD_WEB_TRUST_FORWARDED_PROTO"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.APIBase, "api-url", cfg.APIBase, "External API base URL; empty serves the contact endpoint locally")
	fs.StringVar(&cfg.CORSOrigin, "cors-origin", cfg.CORSOrigin, "Allowed origin for /api/ responses; empty allows any")
	fs.DurationVar(&cfg.ContactDelay, "contact-delay", cfg.ContactDelay, "Artificial delay before acknowledging a contact submission")
	fs.StringVar(&cfg.ContactDB, "contact-db", cfg.ContactDB, "SQLite path for recorded contact submissions")
	fs.StringVar(&cfg.ContentDir, "content-dir", cfg.ContentDir, "Directory watched for a site.yaml content override")
	fs.StringVar(&cfg.WASMDir, "wasm-dir", cfg.WASMDir, "Directory holding site.wasm and wasm_exec.js")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "Honor X-Forwarded-Proto when resolving the request scheme")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.ContactDelay < 0 {
		return Config{}, errors.New("contact delay must not be negative")
	}
	return cfg, nil
}

// Run starts the landing site server.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		return run(ctx, cfg)
	})
}

func run(ctx context.Context, cfg Config) error {
	logger := log.Default()
	store, err := content.NewStore(cfg.ContentDir, logger)
	if err != nil {
		return fmt.Errorf("load site content: %w", err)
	}
	submitter, closeSubmitter, err := newSubmitter(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeSubmitter(); err != nil {
			logger.Printf("close contact sink: %v", err)
		}
	}()

	server, err := webservice.NewServer(ctx, webservice.Config{
		HTTPAddr:   cfg.HTTPAddr,
		APIBase:    cfg.APIBase,
		CORSOrigin: cfg.CORSOrigin,
		WASMDir:    cfg.WASMDir,
		Content:    store,
		Submitter:  submitter,
		Policy:     requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto},
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}
	defer server.Close()

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	go func() {
		if err := store.Watch(watchCtx); err != nil {
			logger.Printf("content watcher stopped: %v", err)
		}
	}()

	logger.Printf("web server listening addr=%s api_base=%q wasm=%t", server.Addr(), cfg.APIBase, strings.TrimSpace(cfg.WASMDir) != "")
	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}

// newSubmitter picks the contact delivery path. An external API base forwards
// submissions over HTTP; otherwise they are handled in-process and recorded to
// the log and, when configured, SQLite.
func newSubmitter(ctx context.Context, cfg Config, logger *log.Logger) (contactmodule.Submitter, func() error, error) {
	noop := func() error { return nil }
	if base := strings.TrimSpace(cfg.APIBase); base != "" {
		client := contactform.NewClient(base, &http.Client{Timeout: timeouts.ContactRequest})
		return client, noop, nil
	}

	sinks := domain.MultiSink{domain.LogSink{Logger: logger}}
	closer := noop
	if path := strings.TrimSpace(cfg.ContactDB); path != "" {
		store, err := contactsqlite.Open(ctx, path)
		if err != nil {
			return nil, nil, fmt.Errorf("open contact store: %w", err)
		}
		sinks = append(sinks, store)
		closer = store.Close
	}
	return domain.NewService(sinks, domain.WithDelay(cfg.ContactDelay)), closer, nil
}
