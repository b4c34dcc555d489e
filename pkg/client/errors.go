/*
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

package client

import (
	"errors"
	"fmt"
	"net"
	"net/http"
)

var (
	// ErrTransport is matched by every TransportError.
	ErrTransport = errors.New("transport failure")

	// ErrUnexpectedStatus is matched by every StatusError.
	ErrUnexpectedStatus = errors.New("unexpected status code")

	// ErrUnauthorized is raised when a mutating call is attempted without
	// a token or credentials, or the service rejects them.
	ErrUnauthorized = errors.New("not authorized")

	ErrAuthentication = errors.New("authentication failed")
	ErrHealthCheck    = errors.New("health check failed")
	ErrCreation       = errors.New("booking creation failed")
	ErrNotFound       = errors.New("booking not found")
	ErrUpdate         = errors.New("booking update failed")
	ErrDeletion       = errors.New("booking deletion failed")

	// ErrInvalidOptions is returned when a client cannot be constructed.
	ErrInvalidOptions = errors.New("invalid client options")
)

// StatusError is returned when the service answers with a status code other
// than the one expected.
type StatusError struct {
	Method   string
	Path     string
	Expected int
	Actual   int
	Body     string
	TraceID  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status code: expected %d, got %d, body: %s (trace ID: %s)", e.Method, e.Path, e.Expected, e.Actual, e.Body, e.TraceID)
}

func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrUnexpectedStatus:
		return true
	case ErrUnauthorized:
		return e.Actual == http.StatusUnauthorized || e.Actual == http.StatusForbidden
	}

	return false
}

// TransportError is returned when no response was received at all, this
// includes timeouts and context cancellation.
type TransportError struct {
	Method  string
	Path    string
	TraceID string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: http request failed: %v (trace ID: %s)", e.Method, e.Path, e.Err, e.TraceID)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// Timeout reports whether the failure was a timeout.
func (e *TransportError) Timeout() bool {
	var nerr net.Error

	return errors.As(e.Err, &nerr) && nerr.Timeout()
}

// classify tags status mismatches with the operation that failed, anything
// else is passed through untouched.
func classify(op, err error) error {
	var serr *StatusError
	if errors.As(err, &serr) {
		return fmt.Errorf("%w: %w", op, err)
	}

	return err
}
