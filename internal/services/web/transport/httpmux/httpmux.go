// Package httpmux wires asset and module routes into the root mux.
package httpmux

import (
	"io/fs"
	"net/http"
	"strings"

	routepath "github.com/builld/web/internal/services/web/routepath"
)

// MountStatic wires the shared static route into the root mux.
func MountStatic(rootMux *http.ServeMux, staticFS fs.FS, withStaticMime func(http.Handler) http.Handler) {
	if rootMux == nil || staticFS == nil {
		return
	}
	mountFiles(rootMux, routepath.StaticPrefix, http.FS(staticFS), withStaticMime)
}

// MountWASM serves the browser runtime from dir. An empty dir leaves the route
// unmounted so requests fall through to the not-found page.
func MountWASM(rootMux *http.ServeMux, dir string, withStaticMime func(http.Handler) http.Handler) {
	dir = strings.TrimSpace(dir)
	if rootMux == nil || dir == "" {
		return
	}
	mountFiles(rootMux, routepath.WASMPrefix, http.Dir(dir), withStaticMime)
}

// MountModules wires the composed module handler under root.
func MountModules(rootMux *http.ServeMux, modules http.Handler) {
	if rootMux == nil || modules == nil {
		return
	}
	rootMux.Handle(routepath.Root, modules)
}

func mountFiles(rootMux *http.ServeMux, prefix string, files http.FileSystem, withStaticMime func(http.Handler) http.Handler) {
	handler := http.StripPrefix(prefix, http.FileServer(files))
	if withStaticMime != nil {
		handler = withStaticMime(handler)
	}
	rootMux.Handle(http.MethodGet+" "+prefix, handler)
}
