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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nscaledev/booker/pkg/booking"
	"github.com/nscaledev/booker/pkg/client"
)

// AuthenticatedClient returns a new client that has exchanged the configured
// credentials for a token.
func AuthenticatedClient(ctx context.Context, config *TestConfig) *client.Client {
	c, err := NewAPIClientWithConfig(config)
	Expect(err).NotTo(HaveOccurred(), "Should create API client")

	Expect(c.Authenticate(ctx, config.Credentials)).To(Succeed(), "Should obtain an auth token")

	return c
}

// CreateBookingWithCleanup creates a booking and schedules its deletion.
// The client must be authorized for both.
func CreateBookingWithCleanup(c *client.Client, ctx context.Context, payload booking.Booking) (*booking.BookingResponse, int) {
	created, err := c.Create(ctx, payload)
	Expect(err).NotTo(HaveOccurred(), "Should create booking")
	Expect(created.BookingID).To(BeNumerically(">", 0), "Booking ID should be positive")

	bookingID := created.BookingID

	GinkgoWriter.Printf("Created booking with ID: %d\n", bookingID)

	// Schedule cleanup - this runs whether the test passes or fails so we don't need to clean up manually
	DeferCleanup(func(ctx SpecContext) {
		GinkgoWriter.Printf("Cleaning up booking: %d\n", bookingID)

		_, deleteErr := c.Delete(ctx, bookingID)

		switch {
		case deleteErr == nil:
			GinkgoWriter.Printf("Successfully deleted booking: %d\n", bookingID)
		case errors.Is(deleteErr, client.ErrUnexpectedStatus):
			// Specs that delete their own booking leave nothing to clean up.
			GinkgoWriter.Printf("Booking %d already gone: %v\n", bookingID, deleteErr)
		default:
			GinkgoWriter.Printf("Warning: Failed to delete booking %d: %v\n", bookingID, deleteErr)
		}
	})

	return created, bookingID
}

// VerifyBookingEcho verifies the service returned exactly what was submitted.
func VerifyBookingEcho(want, got booking.Booking) {
	Expect(booking.Diff(want, got)).To(BeEmpty(), "Booking should echo the submitted fields (-want +got)")
}

// VerifyBookingIDsPresent verifies every expected ID is in the list.
func VerifyBookingIDsPresent(ids []int, expected ...int) {
	for _, id := range expected {
		Expect(ids).To(ContainElement(id), "Expected booking ID %d to be present in the list", id)
	}
}
