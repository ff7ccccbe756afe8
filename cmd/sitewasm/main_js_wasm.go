//go:build js && wasm

// Package main is the browser runtime of the landing site. Build it with
// GOOS=js GOARCH=wasm and serve it from the web service's wasm directory.
package main

import (
	"context"

	"github.com/builld/web/internal/site/browser"
)

func main() {
	app := browser.New()
	app.Run(context.Background())
	// The runtime lives as long as the page.
	select {}
}
