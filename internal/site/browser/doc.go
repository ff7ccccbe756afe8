// Package browser binds the landing page state machines to the document when
// compiled for js/wasm. The view helpers are portable so they can be tested
// natively.
package browser
