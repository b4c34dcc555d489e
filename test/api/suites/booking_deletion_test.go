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
)

var _ = Describe("Booking Deletion", Label("feature:delete"), func() {
	var bookingID int

	BeforeEach(func() {
		Expect(apiClient.Authenticate(ctx, config.Credentials)).To(Succeed())

		_, bookingID = api.CreateBookingWithCleanup(apiClient, ctx, api.NewBookingPayload().WithUniqueLastName().Build())
	})

	Context("When deleting a booking", func() {
		It("should remove it", Label("story:delete"), func() {
			By("Deleting the booking")
			deleted, err := apiClient.Delete(ctx, bookingID)
			Expect(err).NotTo(HaveOccurred(), "Should delete booking %d (expected HTTP %d)", bookingID, config.DeleteStatus)
			Expect(deleted).To(BeTrue())

			By("Checking it can no longer be read")
			_, err = apiClient.Get(ctx, bookingID)
			Expect(err).To(MatchError(client.ErrNotFound))

			By("Checking it is no longer listed")
			ids, err := apiClient.ListIDs(ctx, booking.Filter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(ids).NotTo(ContainElement(bookingID))
		})

		It("should fail the second time", Label("story:delete"), func() {
			_, err := apiClient.Delete(ctx, bookingID)
			Expect(err).NotTo(HaveOccurred())

			deleted, err := apiClient.Delete(ctx, bookingID)
			Expect(err).To(MatchError(client.ErrDeletion))
			Expect(deleted).To(BeFalse())
		})
	})
})
