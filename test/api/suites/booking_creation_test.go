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

//nolint:testpackage,revive // test package in suites is standard for these tests
package suites

import (
	"encoding/json"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nscaledev/booker/pkg/client"
	"github.com/nscaledev/booker/test/api"
)

var _ = Describe("Booking Creation", Label("feature:create"), func() {
	BeforeEach(func() {
		Expect(apiClient.Authenticate(ctx, config.Credentials)).To(Succeed())
	})

	Context("When creating a booking with random data", func() {
		It("should echo the submitted booking with a new ID", Label("story:random"), func() {
			By("Generating a booking")
			payload := api.NewBookingPayload().Build()
			Expect(payload.Validate()).To(Succeed(), "Generated booking should be valid")
			Expect(payload.BookingDates.Checkin.Before(payload.BookingDates.Checkout.Time)).To(BeTrue())

			By("Submitting it")
			created, _ := api.CreateBookingWithCleanup(apiClient, ctx, payload)

			By("Comparing the echo field by field")
			api.VerifyBookingEcho(payload, created.Booking)
		})

		It("should allocate distinct IDs", Label("story:random"), func() {
			_, first := api.CreateBookingWithCleanup(apiClient, ctx, api.NewBookingPayload().Build())
			_, second := api.CreateBookingWithCleanup(apiClient, ctx, api.NewBookingPayload().Build())

			Expect(first).NotTo(Equal(second))
		})

		It("should accept a booking without additional needs", Label("story:random"), func() {
			payload := api.NewBookingPayload().WithAdditionalNeeds("").Build()

			created, _ := api.CreateBookingWithCleanup(apiClient, ctx, payload)
			api.VerifyBookingEcho(payload, created.Booking)
		})
	})

	Context("When creating the canonical booking", func() {
		It("should store it verbatim", Label("story:fixed"), func() {
			payload := api.NewFixedBookingPayload().Build()

			created, bookingID := api.CreateBookingWithCleanup(apiClient, ctx, payload)

			Expect(created.Booking.FirstName).To(Equal("Ivan"))
			Expect(created.Booking.LastName).To(Equal("Ivanovich"))
			Expect(created.Booking.TotalPrice).To(Equal(111))
			Expect(created.Booking.DepositPaid).To(BeTrue())
			Expect(created.Booking.BookingDates.Checkin.String()).To(Equal("2025-02-01"))
			Expect(created.Booking.BookingDates.Checkout.String()).To(Equal("2025-02-10"))
			Expect(created.Booking.AdditionalNeeds).To(Equal("Dinner"))

			By("Reading it back")
			fetched, err := apiClient.Get(ctx, bookingID)
			Expect(err).NotTo(HaveOccurred())
			api.VerifyBookingEcho(payload, *fetched)
		})
	})

	Context("When creating an empty booking", func() {
		It("should be rejected with a server error", Label("story:boundary"), func() {
			resp, err := apiClient.Request(ctx, client.RawRequest{
				Method:         http.MethodPost,
				Path:           client.NewEndpoints().CreateBooking(),
				Body:           map[string]any{},
				ExpectedStatus: http.StatusInternalServerError,
			})
			Expect(err).NotTo(HaveOccurred(), "Empty booking should be rejected (expected HTTP 500)")

			By("Checking no booking was allocated")
			var result map[string]any
			if json.Unmarshal(resp.Body, &result) == nil {
				Expect(result).NotTo(HaveKey("bookingid"))
			}
		})
	})
})
