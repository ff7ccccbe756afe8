// Package timeouts defines shared timeout constants used across the service.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// ContactRequest caps one contact submission round trip from the form client.
const ContactRequest = 10 * time.Second

// ContactProcessing is the default artificial delay of the contact endpoint.
const ContactProcessing = time.Second
