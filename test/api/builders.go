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

package api

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/nscaledev/booker/pkg/booking"
	"github.com/nscaledev/booker/pkg/generator"
)

func generateRandomName(prefix string) string {
	bytes := make([]byte, 4) // 8 hex characters
	_, _ = rand.Read(bytes)

	return fmt.Sprintf("%s-%s", prefix, hex.EncodeToString(bytes))
}

func GenerateTestID() string {
	return generateRandomName("test")
}

// BookingPayloadBuilder builds booking payloads for testing.
type BookingPayloadBuilder struct {
	payload booking.Booking
}

// NewBookingPayload creates a builder seeded with a random, valid booking.
func NewBookingPayload() *BookingPayloadBuilder {
	return &BookingPayloadBuilder{
		payload: generator.New(generator.Options{}).Booking(),
	}
}

// NewFixedBookingPayload creates a builder seeded with the canonical booking.
func NewFixedBookingPayload() *BookingPayloadBuilder {
	return &BookingPayloadBuilder{
		payload: generator.Fixed(),
	}
}

// WithUniqueLastName tags the last name so list filters only match bookings
// this spec created.
func (b *BookingPayloadBuilder) WithUniqueLastName() *BookingPayloadBuilder {
	b.payload.LastName = generateRandomName(b.payload.LastName)
	return b
}

// WithFirstName sets the first name.
func (b *BookingPayloadBuilder) WithFirstName(name string) *BookingPayloadBuilder {
	b.payload.FirstName = name
	return b
}

// WithLastName sets the last name.
func (b *BookingPayloadBuilder) WithLastName(name string) *BookingPayloadBuilder {
	b.payload.LastName = name
	return b
}

// WithTotalPrice sets the price.
func (b *BookingPayloadBuilder) WithTotalPrice(price int) *BookingPayloadBuilder {
	b.payload.TotalPrice = price
	return b
}

// WithDepositPaid sets the deposit flag.
func (b *BookingPayloadBuilder) WithDepositPaid(paid bool) *BookingPayloadBuilder {
	b.payload.DepositPaid = paid
	return b
}

// WithDates sets the stay.
func (b *BookingPayloadBuilder) WithDates(checkin, checkout booking.Date) *BookingPayloadBuilder {
	b.payload.BookingDates = booking.BookingDates{
		Checkin:  checkin,
		Checkout: checkout,
	}

	return b
}

// WithAdditionalNeeds sets the free text, pass an empty string to omit it.
func (b *BookingPayloadBuilder) WithAdditionalNeeds(needs string) *BookingPayloadBuilder {
	b.payload.AdditionalNeeds = needs
	return b
}

// Build returns the completed booking.
func (b *BookingPayloadBuilder) Build() booking.Booking {
	return b.payload
}
