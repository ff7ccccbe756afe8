//go:build !(js && wasm)

// Package main is the browser runtime of the landing site. Build it with
// GOOS=js GOARCH=wasm and serve it from the web service's wasm directory.
package main

import "github.com/builld/web/internal/platform/config"

func main() {
	config.Exitf("sitewasm runs in the browser: build with GOOS=js GOARCH=wasm")
}
