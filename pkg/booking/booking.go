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

// Package booking defines the wire types of the booking service.
package booking

import (
	"net/url"
	"strconv"
	"time"

	"github.com/google/go-cmp/cmp"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Date is a calendar date serialized as YYYY-MM-DD.
type Date = openapi_types.Date

// NewDate returns the given calendar date.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(openapi_types.DateFormat, s)
	if err != nil {
		return Date{}, err
	}

	return Date{Time: t}, nil
}

// DateOf truncates a point in time to its UTC calendar date.
func DateOf(t time.Time) Date {
	t = t.UTC()

	return NewDate(t.Year(), t.Month(), t.Day())
}

// BookingDates is the stay period, checkin must precede checkout.
type BookingDates struct {
	Checkin  Date `json:"checkin"`
	Checkout Date `json:"checkout"`
}

// Booking is a reservation as submitted to, and echoed by, the service.
type Booking struct {
	FirstName       string       `json:"firstname" validate:"required"`
	LastName        string       `json:"lastname" validate:"required"`
	TotalPrice      int          `json:"totalprice" validate:"gte=0"`
	DepositPaid     bool         `json:"depositpaid"`
	BookingDates    BookingDates `json:"bookingdates"`
	AdditionalNeeds string       `json:"additionalneeds,omitempty"`
}

// BookingResponse is returned when a booking is created.
type BookingResponse struct {
	BookingID int     `json:"bookingid"`
	Booking   Booking `json:"booking"`
}

// BookingID is a single entry returned by the list endpoint.
type BookingID struct {
	BookingID int `json:"bookingid"`
}

// Patch is a partial update, nil fields are left untouched.
type Patch struct {
	FirstName       *string       `json:"firstname,omitempty"`
	LastName        *string       `json:"lastname,omitempty"`
	TotalPrice      *int          `json:"totalprice,omitempty"`
	DepositPaid     *bool         `json:"depositpaid,omitempty"`
	BookingDates    *BookingDates `json:"bookingdates,omitempty"`
	AdditionalNeeds *string       `json:"additionalneeds,omitempty"`
}

// Apply returns a copy of the booking with the patch applied.
func (p Patch) Apply(b Booking) Booking {
	if p.FirstName != nil {
		b.FirstName = *p.FirstName
	}

	if p.LastName != nil {
		b.LastName = *p.LastName
	}

	if p.TotalPrice != nil {
		b.TotalPrice = *p.TotalPrice
	}

	if p.DepositPaid != nil {
		b.DepositPaid = *p.DepositPaid
	}

	if p.BookingDates != nil {
		b.BookingDates = *p.BookingDates
	}

	if p.AdditionalNeeds != nil {
		b.AdditionalNeeds = *p.AdditionalNeeds
	}

	return b
}

// Filter narrows down the list endpoint.
type Filter struct {
	FirstName string
	LastName  string
	Checkin   *Date
	Checkout  *Date
}

// Values encodes the filter as query parameters.
func (f Filter) Values() url.Values {
	values := url.Values{}

	if f.FirstName != "" {
		values.Set("firstname", f.FirstName)
	}

	if f.LastName != "" {
		values.Set("lastname", f.LastName)
	}

	if f.Checkin != nil {
		values.Set("checkin", f.Checkin.String())
	}

	if f.Checkout != nil {
		values.Set("checkout", f.Checkout.String())
	}

	return values
}

// Credentials are used to obtain a token or for basic authentication.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is the body of a token request.  The service answers bad
// credentials with a 200 and a reason rather than a token.
type AuthResponse struct {
	Token  string `json:"token,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Diff returns a human readable difference between two bookings, or an
// empty string when they are equal.
func Diff(want, got Booking) string {
	return cmp.Diff(want, got)
}

// IDString formats a booking ID for use in a path.
func IDString(id int) string {
	return strconv.Itoa(id)
}
