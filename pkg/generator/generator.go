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

// Package generator produces booking records for tests.
package generator

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/nscaledev/booker/pkg/booking"
)

const (
	DefaultCheckinOffset = 10
	DefaultStayLength    = 5
	DefaultPriceDigits   = 3
	DefaultSentenceWords = 6
)

type Options struct {
	// Seed makes output deterministic when non-zero.
	Seed uint64

	// CheckinOffset is the number of days from today until checkin.
	CheckinOffset int

	// StayLength is the number of nights, at least one.
	StayLength int

	// PriceDigits bounds the total price to 10^PriceDigits - 1.
	PriceDigits int

	// Now returns the current time, defaults to time.Now.
	Now func() time.Time
}

// Generator produces random bookings.  It is not safe for concurrent use,
// give each parallel test its own.
type Generator struct {
	faker   *gofakeit.Faker
	options Options
}

// New returns a generator, zero option values take defaults.
func New(options Options) *Generator {
	if options.CheckinOffset == 0 {
		options.CheckinOffset = DefaultCheckinOffset
	}

	if options.StayLength < 1 {
		options.StayLength = DefaultStayLength
	}

	if options.PriceDigits < 1 {
		options.PriceDigits = DefaultPriceDigits
	}

	if options.Now == nil {
		options.Now = time.Now
	}

	return &Generator{
		faker:   gofakeit.New(options.Seed),
		options: options,
	}
}

func (g *Generator) maxPrice() int {
	limit := 1

	for range g.options.PriceDigits {
		limit *= 10
	}

	return limit - 1
}

// Dates returns the stay period relative to today.
func (g *Generator) Dates() booking.BookingDates {
	today := booking.DateOf(g.options.Now())
	checkin := today.AddDate(0, 0, g.options.CheckinOffset)
	checkout := checkin.AddDate(0, 0, g.options.StayLength)

	return booking.BookingDates{
		Checkin:  booking.Date{Time: checkin},
		Checkout: booking.Date{Time: checkout},
	}
}

// Booking returns a random booking.
func (g *Generator) Booking() booking.Booking {
	return booking.Booking{
		FirstName:       g.faker.FirstName(),
		LastName:        g.faker.LastName(),
		TotalPrice:      g.faker.Number(0, g.maxPrice()),
		DepositPaid:     g.faker.Bool(),
		BookingDates:    g.Dates(),
		AdditionalNeeds: g.faker.Sentence(DefaultSentenceWords),
	}
}

// Name returns a random first name.
func (g *Generator) Name() string {
	return g.faker.FirstName()
}

// Fixed returns the canonical booking used by deterministic scenarios.
func Fixed() booking.Booking {
	return booking.Booking{
		FirstName:   "Ivan",
		LastName:    "Ivanovich",
		TotalPrice:  111,
		DepositPaid: true,
		BookingDates: booking.BookingDates{
			Checkin:  booking.NewDate(2025, time.February, 1),
			Checkout: booking.NewDate(2025, time.February, 10),
		},
		AdditionalNeeds: "Dinner",
	}
}
