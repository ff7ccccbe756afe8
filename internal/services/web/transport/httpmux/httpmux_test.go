package httpmux

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestMountStaticServesStaticPrefix(t *testing.T) {
	t.Parallel()

	rootMux := http.NewServeMux()
	staticFS := fstest.MapFS{"site.css": &fstest.MapFile{Data: []byte("body{}")}}
	MountStatic(rootMux, staticFS, func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Static", "1")
			next.ServeHTTP(w, r)
		})
	})

	rr := httptest.NewRecorder()
	rootMux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/site.css", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Body.String(); got != "body{}" {
		t.Fatalf("body = %q", got)
	}
	if rr.Header().Get("X-Static") != "1" {
		t.Fatalf("expected mime wrapper to run")
	}
}

func TestMountStaticIgnoresNilInputs(t *testing.T) {
	t.Parallel()

	MountStatic(nil, fstest.MapFS{}, nil)
	rootMux := http.NewServeMux()
	MountStatic(rootMux, nil, nil)
	rr := httptest.NewRecorder()
	rootMux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/site.css", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestMountWASMServesDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "site.wasm"), []byte("\x00asm"), 0o600); err != nil {
		t.Fatalf("write wasm: %v", err)
	}
	rootMux := http.NewServeMux()
	MountWASM(rootMux, dir, nil)

	rr := httptest.NewRecorder()
	rootMux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/wasm/site.wasm", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Body.String(); got != "\x00asm" {
		t.Fatalf("body = %q", got)
	}
}

func TestMountWASMSkipsEmptyDir(t *testing.T) {
	t.Parallel()

	rootMux := http.NewServeMux()
	MountWASM(rootMux, "  ", nil)
	MountModules(rootMux, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	rootMux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/wasm/site.wasm", nil))
	if rr.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want module fallthrough %d", rr.Code, http.StatusTeapot)
	}
}

func TestMountModulesServesRoot(t *testing.T) {
	t.Parallel()

	rootMux := http.NewServeMux()
	MountModules(rootMux, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("module:" + r.URL.Path))
	}))

	rr := httptest.NewRecorder()
	rootMux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/anything", nil))
	if got := rr.Body.String(); got != "module:/anything" {
		t.Fatalf("body = %q", got)
	}
}
