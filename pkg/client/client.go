/*
Copyright 2024-2025 the Unikorn Authors.
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package client provides a session backed HTTP client for the booking
// service.
//
// Every call is checked against the status code the endpoint is expected to
// answer with, a mismatch is returned as a *StatusError carrying both codes,
// the response body and the trace ID of the request.  Nothing is retried.
//
// A client owns its Session, so tests that run in parallel should each build
// their own.
package client

//go:generate mockgen -source=client.go -destination=mock/interfaces.go -package=mock

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-logr/logr"

	"github.com/nscaledev/booker/pkg/booking"
)

// Doer sends HTTP requests, *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ResponseValidator checks raw bodies before they are decoded.
type ResponseValidator interface {
	ValidateBookingResponse(body []byte) error
	ValidateBooking(body []byte) error
	ValidateBookingIDs(body []byte) error
}

// Client talks to the booking service.
type Client struct {
	options   *Options
	doer      Doer
	session   *Session
	endpoints *Endpoints
	logger    logr.Logger
	validator ResponseValidator
}

// Option customizes a client.
type Option func(*Client)

// WithLogger sets where the client logs to, by default it is silent.
func WithLogger(logger logr.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDoer replaces the HTTP client, the timeout option is then the doer's
// responsibility.
func WithDoer(doer Doer) Option {
	return func(c *Client) {
		c.doer = doer
	}
}

// WithValidator validates response bodies against a schema before decoding.
func WithValidator(validator ResponseValidator) Option {
	return func(c *Client) {
		c.validator = validator
	}
}

// New returns a client with a fresh session.
func New(options *Options, opts ...Option) (*Client, error) {
	if options == nil {
		return nil, fmt.Errorf("%w: options are required", ErrInvalidOptions)
	}

	o := *options
	o.Expected = o.Expected.withDefaults()

	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}

	session, err := newSession(o.BaseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		options:   &o,
		session:   session,
		endpoints: NewEndpoints(),
		logger:    logr.Discard(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.doer == nil {
		c.doer = &http.Client{
			Timeout: o.Timeout,
		}
	}

	return c, nil
}

// BaseURL returns where the client sends requests.
func (c *Client) BaseURL() string {
	return c.session.baseURL
}

// Expected returns the status codes the client checks for.
func (c *Client) Expected() ExpectedStatus {
	return c.options.Expected
}

// SetAuthToken replaces the session token, an empty token clears it.
func (c *Client) SetAuthToken(token string) {
	c.session.setToken(token)
}

// AuthToken returns the session token.
func (c *Client) AuthToken() string {
	return c.session.token
}

// SetBasicAuth authorizes mutating calls with credentials rather than a
// token, nil clears them.
func (c *Client) SetBasicAuth(credentials *booking.Credentials) {
	c.session.basic = credentials
}

// Authorized reports whether the session can make mutating calls.
func (c *Client) Authorized() bool {
	return c.session.authorized()
}

// RawRequest describes an arbitrary call, used where the typed operations
// are too strict, e.g. submitting malformed payloads.
type RawRequest struct {
	Method string
	Path   string
	Query  url.Values
	// Body is marshaled to JSON when not nil.
	Body any
	// ExpectedStatus is checked when non-zero.
	ExpectedStatus int
	// Authorize adds basic credentials when the session has them.
	Authorize bool
}

// RawResponse is what came back.
type RawResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	TraceID    string
}

// Request performs an arbitrary call within the session.
func (c *Client) Request(ctx context.Context, r RawRequest) (*RawResponse, error) {
	return c.doRequest(ctx, r)
}

// logError logs a transport error with trace context.
func (c *Client) logError(method, path string, duration time.Duration, traceID string, err error, context string) {
	c.logger.Error(err, context, "method", method, "path", path, "duration", duration, "traceID", traceID)
}

// logUnexpectedStatus logs an unexpected HTTP status code.
func (c *Client) logUnexpectedStatus(method, path string, expectedStatus, actualStatus int, body, traceID string) {
	c.logger.Info("unexpected status", "method", method, "path", path, "expected", expectedStatus, "got", actualStatus, "body", body, "traceID", traceID)
}

//nolint:cyclop
func (c *Client) doRequest(ctx context.Context, r RawRequest) (*RawResponse, error) {
	fullURL := c.session.baseURL + r.Path
	if len(r.Query) > 0 {
		fullURL += "?" + r.Query.Encode()
	}

	var body io.Reader

	if r.Body != nil {
		data, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	c.session.apply(req, r.Authorize)

	// Add W3C Trace Context headers
	traceParent := createTraceParent()
	traceID := extractTraceID(traceParent)

	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", traceState)

	start := time.Now()
	resp, err := c.doer.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logError(r.Method, r.Path, duration, traceID, err, "http request failed")

		return nil, &TransportError{Method: r.Method, Path: r.Path, TraceID: traceID, Err: err}
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logError(r.Method, r.Path, duration, traceID, err, "reading response body")

		return nil, &TransportError{Method: r.Method, Path: r.Path, TraceID: traceID, Err: fmt.Errorf("reading response body: %w", err)}
	}

	c.session.store(req.URL, resp)

	if c.options.LogRequests {
		c.logger.Info("request", "method", r.Method, "path", r.Path, "status", resp.StatusCode, "duration", duration, "traceID", traceID)
	}

	if c.options.LogResponses && len(respBody) > 0 {
		c.logger.Info("response", "method", r.Method, "path", r.Path, "body", string(respBody))
	}

	raw := &RawResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
		TraceID:    traceID,
	}

	if r.ExpectedStatus > 0 && resp.StatusCode != r.ExpectedStatus {
		c.logUnexpectedStatus(r.Method, r.Path, r.ExpectedStatus, resp.StatusCode, string(respBody), traceID)

		return raw, &StatusError{
			Method:   r.Method,
			Path:     r.Path,
			Expected: r.ExpectedStatus,
			Actual:   resp.StatusCode,
			Body:     string(respBody),
			TraceID:  traceID,
		}
	}

	return raw, nil
}
