// Package contactform runs the contact form: field validation, submission to
// the contact endpoint and the toast feedback.
package contactform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/builld/web/internal/contact"
)

// EndpointPath is the contact endpoint relative to the API base.
const EndpointPath = "/api/contact"

const maxResponseBytes = 64 << 10

// Response is the endpoint reply body.
type Response struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// APIError is a non-2xx reply. Message is the server-provided text, if any.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("contact endpoint returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("contact endpoint returned status %d: %s", e.StatusCode, e.Message)
}

// Submitter delivers a submission and returns the acknowledgement message.
type Submitter interface {
	Submit(ctx context.Context, sub contact.Submission) (string, error)
}

// Client posts submissions to the contact endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

var _ Submitter = (*Client)(nil)

// NewClient targets apiBase + EndpointPath. An empty apiBase keeps the
// request same-origin.
func NewClient(apiBase string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:   Endpoint(apiBase),
		httpClient: httpClient,
	}
}

// Endpoint joins apiBase and EndpointPath.
func Endpoint(apiBase string) string {
	return strings.TrimRight(strings.TrimSpace(apiBase), "/") + EndpointPath
}

// Endpoint returns the target URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Submit posts sub as JSON. Non-2xx replies return *APIError.
func (c *Client) Submit(ctx context.Context, sub contact.Submission) (string, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return "", fmt.Errorf("encode submission: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build contact request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("post contact: %w", err)
	}
	defer resp.Body.Close()

	var reply Response
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&reply)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(reply.Message)}
	}
	if decodeErr != nil && !errors.Is(decodeErr, io.EOF) {
		return "", fmt.Errorf("decode contact response: %w", decodeErr)
	}
	return reply.Message, nil
}
