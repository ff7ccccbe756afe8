package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/builld/web/internal/platform/timeouts"
	webapp "github.com/builld/web/internal/services/web/app"
	"github.com/builld/web/internal/services/web/modules"
	"github.com/builld/web/internal/services/web/modules/contact"
	"github.com/builld/web/internal/services/web/modules/landing"
	"github.com/builld/web/internal/services/web/platform/httpx"
	"github.com/builld/web/internal/services/web/platform/observability"
	"github.com/builld/web/internal/services/web/platform/pagerender"
	"github.com/builld/web/internal/services/web/platform/publichandler"
	"github.com/builld/web/internal/services/web/platform/requestmeta"
	"github.com/builld/web/internal/services/web/platform/weberror"
	"github.com/builld/web/internal/services/web/routepath"
	webstatic "github.com/builld/web/internal/services/web/static"
	statichttp "github.com/builld/web/internal/services/web/transport/http"
	"github.com/builld/web/internal/services/web/transport/httpmux"
)

// wasmModule is the browser runtime file name under the wasm prefix.
const wasmModule = "site.wasm"

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr string
	// APIBase is the external API origin embedded in pages for the browser
	// runtime. Empty keeps contact requests same-origin.
	APIBase string
	// CORSOrigin is the allowed origin for /api/ responses. Empty allows any.
	CORSOrigin string
	// WASMDir holds site.wasm and wasm_exec.js. Empty disables the runtime.
	WASMDir string
	// Content supplies landing copy; nil serves the built-in defaults.
	Content   landing.ContentSource
	Submitter contact.Submitter
	Policy    requestmeta.SchemePolicy
	Logger    *log.Logger
}

// Server hosts the web HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// NewHandler builds the root handler from the default module registry.
func NewHandler(cfg Config) (http.Handler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	shell := pagerender.Shell{
		APIBase: strings.TrimSpace(cfg.APIBase),
		Policy:  cfg.Policy,
	}
	if strings.TrimSpace(cfg.WASMDir) != "" {
		shell.WASMPath = routepath.WASMPrefix + wasmModule
	}
	deps := modules.Dependencies{
		Content:   cfg.Content,
		Submitter: cfg.Submitter,
		Base:      publichandler.NewBase(shell, publichandler.WithLogger(logger)),
		Logger:    logger,
	}
	h, err := webapp.BuildRootHandler(webapp.Config{
		PageModules:         modules.DefaultPageModules(deps),
		APIModules:          modules.DefaultAPIModules(deps),
		CORSOrigin:          cfg.CORSOrigin,
		RequestSchemePolicy: cfg.Policy,
	})
	if err != nil {
		return nil, err
	}
	rootMux := http.NewServeMux()
	httpmux.MountStatic(rootMux, webstatic.FS, statichttp.WithStaticMime)
	httpmux.MountWASM(rootMux, cfg.WASMDir, statichttp.WithStaticMime)
	httpmux.MountModules(rootMux, h)
	return httpx.Chain(rootMux,
		httpx.RecoverPanic(weberror.InternalError(shell)),
		httpx.RequestID(),
		observability.RequestLogger(logger),
	), nil
}

// NewServer validates config and constructs a web server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.httpAddr
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
