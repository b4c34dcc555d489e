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

// Package schema validates booking service payloads against the OpenAPI
// description of the service.
//
// Validation visits the whole document and reports every violation rather
// than stopping at the first one, so a single failing test shows everything
// that is wrong with a response.
package schema

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed booking.yaml
var document []byte

// Names of the component schemas that can be validated against.
const (
	BookingResponse = "BookingResponse"
	Booking         = "Booking"
	BookingIDs      = "BookingIDs"
	AuthResponse    = "AuthResponse"
)

var (
	// ErrSchemaValidation is matched by every SchemaValidationError.
	ErrSchemaValidation = errors.New("schema validation failed")

	// ErrUnknownSchema is returned when asked to validate against a schema
	// that is not described.
	ErrUnknownSchema = errors.New("unknown schema")
)

// Violation is a single point of non-conformance.
type Violation struct {
	// Path is a JSON pointer to the offending value.
	Path string
	// Reason describes the violation.
	Reason string
}

func (v Violation) String() string {
	return v.Path + ": " + v.Reason
}

// SchemaValidationError lists every violation found in a payload.
type SchemaValidationError struct {
	Schema     string
	Violations []Violation
}

func (e *SchemaValidationError) Error() string {
	reasons := make([]string, len(e.Violations))

	for i := range e.Violations {
		reasons[i] = e.Violations[i].String()
	}

	return fmt.Sprintf("payload does not conform to %s: %s", e.Schema, strings.Join(reasons, "; "))
}

func (e *SchemaValidationError) Is(target error) bool {
	return target == ErrSchemaValidation
}

// Validator checks payloads against the service's component schemas.
type Validator struct {
	schemas openapi3.Schemas
}

// New loads the embedded service description.
func New() (*Validator, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("loading service description: %w", err)
	}

	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("validating service description: %w", err)
	}

	return &Validator{
		schemas: doc.Components.Schemas,
	}, nil
}

// Validate checks a raw JSON body against the named schema.
func (v *Validator) Validate(name string, body []byte) error {
	ref, ok := v.schemas[name]
	if !ok || ref.Value == nil {
		return fmt.Errorf("%w: %s", ErrUnknownSchema, name)
	}

	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return &SchemaValidationError{
			Schema: name,
			Violations: []Violation{
				{Path: "/", Reason: fmt.Sprintf("malformed JSON: %v", err)},
			},
		}
	}

	err := ref.Value.VisitJSON(value, openapi3.MultiErrors())
	if err == nil {
		return nil
	}

	return &SchemaValidationError{
		Schema:     name,
		Violations: collect(nil, err),
	}
}

// ValidateBookingResponse checks the body returned by a create.
func (v *Validator) ValidateBookingResponse(body []byte) error {
	return v.Validate(BookingResponse, body)
}

// ValidateBooking checks the body returned by a read or update.
func (v *Validator) ValidateBooking(body []byte) error {
	return v.Validate(Booking, body)
}

// ValidateBookingIDs checks the body returned by a list.
func (v *Validator) ValidateBookingIDs(body []byte) error {
	return v.Validate(BookingIDs, body)
}

// ValidateAuthResponse checks the body returned by a token request.
func (v *Validator) ValidateAuthResponse(body []byte) error {
	return v.Validate(AuthResponse, body)
}

// collect flattens nested multi errors into violations.
func collect(violations []Violation, err error) []Violation {
	switch e := err.(type) { //nolint:errorlint
	case openapi3.MultiError:
		for _, inner := range e {
			violations = collect(violations, inner)
		}

		return violations
	case *openapi3.SchemaError:
		reason := e.Reason
		if reason == "" {
			reason = fmt.Sprintf("does not match %q", e.SchemaField)
		}

		return append(violations, Violation{
			Path:   "/" + strings.Join(e.JSONPointer(), "/"),
			Reason: reason,
		})
	}

	return append(violations, Violation{Path: "/", Reason: err.Error()})
}
