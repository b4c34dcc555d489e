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

var _ = Describe("Authentication", Label("feature:auth"), func() {
	Context("When exchanging credentials for a token", func() {
		It("should return a token for valid credentials", Label("story:token"), func() {
			By("Authenticating with the configured credentials")
			err := apiClient.Authenticate(ctx, config.Credentials)
			Expect(err).NotTo(HaveOccurred(), "Should authenticate (HTTP 200 with token)")

			By("Checking the session holds the token")
			Expect(apiClient.AuthToken()).NotTo(BeEmpty())
			Expect(apiClient.Authorized()).To(BeTrue())
		})

		It("should reject invalid credentials", Label("story:token"), func() {
			err := apiClient.Authenticate(ctx, booking.Credentials{
				Username: config.Credentials.Username,
				Password: api.GenerateTestID(),
			})
			Expect(err).To(MatchError(client.ErrAuthentication))
			Expect(err.Error()).To(ContainSubstring("Bad credentials"), "Error should carry the service's reason")
			Expect(apiClient.Authorized()).To(BeFalse(), "A failed exchange should not authorize the session")
		})

		It("should issue independent sessions", Label("story:session"), func() {
			other, err := api.NewAPIClientWithConfig(config)
			Expect(err).NotTo(HaveOccurred())

			Expect(apiClient.Authenticate(ctx, config.Credentials)).To(Succeed())
			Expect(other.Authorized()).To(BeFalse(), "Tokens should not leak between clients")
		})
	})

	Context("When reusing a token", func() {
		It("should authorize every subsequent mutation", Label("story:session"), func() {
			Expect(apiClient.Authenticate(ctx, config.Credentials)).To(Succeed())

			By("Creating a booking with the session token")
			_, bookingID := api.CreateBookingWithCleanup(apiClient, ctx, api.NewBookingPayload().Build())

			By("Updating it with the same token")
			updated, err := apiClient.PartialUpdate(ctx, bookingID, booking.Patch{AdditionalNeeds: ptr.To("Breakfast")})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.AdditionalNeeds).To(Equal("Breakfast"))
		})
	})
})
