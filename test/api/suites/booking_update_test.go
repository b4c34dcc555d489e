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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nscaledev/booker/pkg/booking"
	"github.com/nscaledev/booker/pkg/client"
	"github.com/nscaledev/booker/test/api"

	"k8s.io/utils/ptr"
)

var _ = Describe("Booking Update", Label("feature:update"), func() {
	var (
		original  booking.Booking
		bookingID int
	)

	BeforeEach(func() {
		Expect(apiClient.Authenticate(ctx, config.Credentials)).To(Succeed())

		original = api.NewBookingPayload().Build()
		_, bookingID = api.CreateBookingWithCleanup(apiClient, ctx, original)
	})

	Context("When replacing a booking", func() {
		It("should store and echo the replacement", Label("story:put"), func() {
			replacement := api.NewBookingPayload().Build()

			By("Replacing every field")
			updated, err := apiClient.Update(ctx, bookingID, replacement)
			Expect(err).NotTo(HaveOccurred(), "Should update booking %d (HTTP 200)", bookingID)
			api.VerifyBookingEcho(replacement, *updated)

			By("Reading it back")
			fetched, err := apiClient.Get(ctx, bookingID)
			Expect(err).NotTo(HaveOccurred())
			api.VerifyBookingEcho(replacement, *fetched)
		})

		It("should fail for a booking that does not exist", Label("story:put"), func() {
			deleted, err := apiClient.Delete(ctx, bookingID)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeTrue())

			_, err = apiClient.Update(ctx, bookingID, original)
			Expect(err).To(MatchError(client.ErrUpdate))
			Expect(err).To(MatchError(client.ErrUnexpectedStatus))
		})
	})

	Context("When partially updating a booking", func() {
		It("should change only the given fields", Label("story:patch"), func() {
			patch := booking.Patch{
				FirstName:  ptr.To("James"),
				TotalPrice: ptr.To(original.TotalPrice + 1),
			}

			updated, err := apiClient.PartialUpdate(ctx, bookingID, patch)
			Expect(err).NotTo(HaveOccurred(), "Should patch booking %d (HTTP 200)", bookingID)

			By("Comparing against the original with the patch applied")
			api.VerifyBookingEcho(patch.Apply(original), *updated)
			Expect(updated.FirstName).To(Equal("James"))
			Expect(updated.LastName).To(Equal(original.LastName))
		})

		It("should change the stay", Label("story:patch"), func() {
			dates := booking.BookingDates{
				Checkin:  booking.DateOf(original.BookingDates.Checkin.AddDate(0, 0, 1)),
				Checkout: booking.DateOf(original.BookingDates.Checkout.AddDate(0, 0, 2)),
			}

			updated, err := apiClient.PartialUpdate(ctx, bookingID, booking.Patch{BookingDates: &dates})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.BookingDates.Checkin.String()).To(Equal(dates.Checkin.String()))
			Expect(updated.BookingDates.Checkout.String()).To(Equal(dates.Checkout.String()))
		})
	})
})
