package app

import "net/http"

// BuildRootHandler composes a root mux using the configured module groups.
func BuildRootHandler(cfg Config) (http.Handler, error) {
	return Compose(ComposeInput{
		PageModules:         cfg.PageModules,
		APIModules:          cfg.APIModules,
		CORSOrigin:          cfg.CORSOrigin,
		RequestSchemePolicy: cfg.RequestSchemePolicy,
	})
}
