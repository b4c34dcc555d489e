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
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nscaledev/booker/pkg/booking"
	"github.com/nscaledev/booker/pkg/client"
	"github.com/nscaledev/booker/test/api"
)

var _ = Describe("Booking Retrieval", Label("feature:read"), func() {
	var (
		payload   booking.Booking
		bookingID int
	)

	BeforeEach(func() {
		Expect(apiClient.Authenticate(ctx, config.Credentials)).To(Succeed())

		payload = api.NewBookingPayload().WithUniqueLastName().Build()
		_, bookingID = api.CreateBookingWithCleanup(apiClient, ctx, payload)
	})

	Context("When reading a booking", func() {
		It("should return the stored booking", Label("story:get"), func() {
			fetched, err := apiClient.Get(ctx, bookingID)
			Expect(err).NotTo(HaveOccurred(), "Should read booking %d (HTTP 200)", bookingID)
			api.VerifyBookingEcho(payload, *fetched)
		})

		It("should return the same booking on every read", Label("story:idempotence"), func() {
			first, err := apiClient.Get(ctx, bookingID)
			Expect(err).NotTo(HaveOccurred())

			second, err := apiClient.Get(ctx, bookingID)
			Expect(err).NotTo(HaveOccurred())

			api.VerifyBookingEcho(*first, *second)
		})

		It("should not require authentication", Label("story:get"), func() {
			anonymous, err := api.NewAPIClientWithConfig(config)
			Expect(err).NotTo(HaveOccurred())

			_, err = anonymous.Get(ctx, bookingID)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Context("When reading a deleted booking", func() {
		It("should return not found", Label("story:not-found"), func() {
			deleted, err := apiClient.Delete(ctx, bookingID)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeTrue())

			fetched, err := apiClient.Get(ctx, bookingID)
			Expect(err).To(MatchError(client.ErrNotFound), "Expected HTTP 404")
			Expect(fetched).To(BeNil())
			Expect(err.Error()).To(ContainSubstring("404"))
		})
	})

	Context("When listing bookings", func() {
		It("should include the booking in the unfiltered list", Label("story:list"), func() {
			ids, err := apiClient.ListIDs(ctx, booking.Filter{})
			Expect(err).NotTo(HaveOccurred())
			api.VerifyBookingIDsPresent(ids, bookingID)
		})

		It("should filter by name", Label("story:list"), func() {
			ids, err := apiClient.ListIDs(ctx, booking.Filter{
				FirstName: payload.FirstName,
				LastName:  payload.LastName,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(ids).To(ConsistOf(bookingID), "Only this spec's booking carries the unique last name")
		})

		It("should return nothing for an unknown name", Label("story:list"), func() {
			ids, err := apiClient.ListIDs(ctx, booking.Filter{LastName: api.GenerateTestID()})
			Expect(err).NotTo(HaveOccurred())
			Expect(ids).To(BeEmpty())
		})

		It("should filter by check-in date", Label("story:list"), func() {
			before := booking.DateOf(payload.BookingDates.Checkin.AddDate(0, 0, -1))

			ids, err := apiClient.ListIDs(ctx, booking.Filter{
				LastName: payload.LastName,
				Checkin:  &before,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(ids).To(ContainElement(bookingID))
		})

		It("should exclude bookings starting before the check-in filter", Label("story:list"), func() {
			after := booking.DateOf(payload.BookingDates.Checkout.Add(24 * time.Hour))

			ids, err := apiClient.ListIDs(ctx, booking.Filter{
				LastName: payload.LastName,
				Checkin:  &after,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(ids).NotTo(ContainElement(bookingID))
		})
	})
})
