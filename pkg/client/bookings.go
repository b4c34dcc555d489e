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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/nscaledev/booker/pkg/booking"
)

// Authenticate exchanges credentials for a token and stores it in the
// session for every subsequent call.
func (c *Client) Authenticate(ctx context.Context, credentials booking.Credentials) error {
	resp, err := c.doRequest(ctx, RawRequest{
		Method:         http.MethodPost,
		Path:           c.endpoints.Auth(),
		Body:           credentials,
		ExpectedStatus: c.options.Expected.Auth,
	})
	if err != nil {
		return classify(ErrAuthentication, err)
	}

	var result booking.AuthResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return fmt.Errorf("%w: unmarshaling auth response: %w", ErrAuthentication, err)
	}

	if result.Token == "" {
		reason := result.Reason
		if reason == "" {
			reason = string(resp.Body)
		}

		return fmt.Errorf("%w: no token in response: %s (trace ID: %s)", ErrAuthentication, reason, resp.TraceID)
	}

	c.session.setToken(result.Token)

	c.logger.V(1).Info("authenticated", "username", credentials.Username)

	return nil
}

// Ping checks the service is up and returns the status it answered with.
func (c *Client) Ping(ctx context.Context) (int, error) {
	resp, err := c.doRequest(ctx, RawRequest{
		Method:         http.MethodGet,
		Path:           c.endpoints.Ping(),
		ExpectedStatus: c.options.Expected.Ping,
	})
	if err != nil {
		var serr *StatusError
		if errors.As(err, &serr) {
			return serr.Actual, classify(ErrHealthCheck, err)
		}

		return 0, err
	}

	return resp.StatusCode, nil
}

// requireAuthorization stops mutating calls before they reach the wire when
// the session has neither token nor credentials.
func (c *Client) requireAuthorization(op error) error {
	if !c.session.authorized() {
		return fmt.Errorf("%w: %w: authenticate or set basic credentials first", op, ErrUnauthorized)
	}

	return nil
}

// Create submits a new booking.
func (c *Client) Create(ctx context.Context, b booking.Booking) (*booking.BookingResponse, error) {
	if err := c.requireAuthorization(ErrCreation); err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, RawRequest{
		Method:         http.MethodPost,
		Path:           c.endpoints.CreateBooking(),
		Body:           b,
		ExpectedStatus: c.options.Expected.Create,
	})
	if err != nil {
		return nil, classify(ErrCreation, err)
	}

	if c.validator != nil {
		if err := c.validator.ValidateBookingResponse(resp.Body); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCreation, err)
		}
	}

	var result booking.BookingResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("unmarshaling booking response: %w", err)
	}

	return &result, nil
}

// Get reads a booking.
func (c *Client) Get(ctx context.Context, id int) (*booking.Booking, error) {
	resp, err := c.doRequest(ctx, RawRequest{
		Method:         http.MethodGet,
		Path:           c.endpoints.GetBooking(id),
		ExpectedStatus: c.options.Expected.Get,
	})
	if err != nil {
		var serr *StatusError
		if errors.As(err, &serr) && serr.Actual == http.StatusNotFound {
			return nil, fmt.Errorf("%w: booking %d: %w", ErrNotFound, id, err)
		}

		return nil, err
	}

	return c.decodeBooking(resp)
}

// ListIDs returns the identifiers of bookings matching the filter.
func (c *Client) ListIDs(ctx context.Context, filter booking.Filter) ([]int, error) {
	resp, err := c.doRequest(ctx, RawRequest{
		Method:         http.MethodGet,
		Path:           c.endpoints.ListBookings(),
		Query:          filter.Values(),
		ExpectedStatus: c.options.Expected.List,
	})
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}

	if c.validator != nil {
		if err := c.validator.ValidateBookingIDs(resp.Body); err != nil {
			return nil, fmt.Errorf("listing bookings: %w", err)
		}
	}

	var entries []booking.BookingID
	if err := json.Unmarshal(resp.Body, &entries); err != nil {
		return nil, fmt.Errorf("unmarshaling booking list: %w", err)
	}

	ids := make([]int, len(entries))

	for i := range entries {
		ids[i] = entries[i].BookingID
	}

	return ids, nil
}

// Update replaces a booking.
func (c *Client) Update(ctx context.Context, id int, b booking.Booking) (*booking.Booking, error) {
	if err := c.requireAuthorization(ErrUpdate); err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, RawRequest{
		Method:         http.MethodPut,
		Path:           c.endpoints.UpdateBooking(id),
		Body:           b,
		ExpectedStatus: c.options.Expected.Update,
		Authorize:      true,
	})
	if err != nil {
		return nil, classify(ErrUpdate, err)
	}

	return c.decodeBooking(resp)
}

// PartialUpdate changes only the fields set in the patch.
func (c *Client) PartialUpdate(ctx context.Context, id int, patch booking.Patch) (*booking.Booking, error) {
	if err := c.requireAuthorization(ErrUpdate); err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, RawRequest{
		Method:         http.MethodPatch,
		Path:           c.endpoints.PartialUpdateBooking(id),
		Body:           patch,
		ExpectedStatus: c.options.Expected.PartialUpdate,
		Authorize:      true,
	})
	if err != nil {
		return nil, classify(ErrUpdate, err)
	}

	return c.decodeBooking(resp)
}

// Delete removes a booking and reports whether it was deleted.
func (c *Client) Delete(ctx context.Context, id int) (bool, error) {
	if err := c.requireAuthorization(ErrDeletion); err != nil {
		return false, err
	}

	_, err := c.doRequest(ctx, RawRequest{
		Method:         http.MethodDelete,
		Path:           c.endpoints.DeleteBooking(id),
		ExpectedStatus: c.options.Expected.Delete,
		Authorize:      true,
	})
	if err != nil {
		return false, classify(ErrDeletion, err)
	}

	return true, nil
}

func (c *Client) decodeBooking(resp *RawResponse) (*booking.Booking, error) {
	if c.validator != nil {
		if err := c.validator.ValidateBooking(resp.Body); err != nil {
			return nil, err
		}
	}

	var result booking.Booking
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("unmarshaling booking: %w", err)
	}

	return &result, nil
}
