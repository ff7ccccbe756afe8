// Package web hosts the browser-facing landing site.
//
// It composes the landing and contact modules behind the shared middleware
// chain, serves embedded static assets and the optional browser runtime, and
// owns the HTTP server lifecycle.
package web
