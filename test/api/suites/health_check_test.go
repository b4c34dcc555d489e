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
	"errors"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nscaledev/booker/pkg/client"
)

var _ = Describe("Health Check", Label("feature:health"), func() {
	Context("When pinging the service", func() {
		It("should answer with the configured status", Label("story:ping"), func() {
			By("Sending a ping")
			status, err := apiClient.Ping(ctx)
			Expect(err).NotTo(HaveOccurred(), "Ping should succeed (expected HTTP %d)", config.PingStatus)
			Expect(status).To(Equal(config.PingStatus))
		})

		It("should not require authentication", Label("story:ping"), func() {
			Expect(apiClient.Authorized()).To(BeFalse())

			_, err := apiClient.Ping(ctx)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should report the actual status when it differs", Label("story:ping"), func() {
			options := config.ClientOptions()
			options.Expected.Ping = http.StatusTeapot

			c, err := client.New(options)
			Expect(err).NotTo(HaveOccurred())

			status, err := c.Ping(ctx)
			Expect(err).To(MatchError(client.ErrHealthCheck))
			Expect(status).To(Equal(config.PingStatus))

			var serr *client.StatusError
			Expect(errors.As(err, &serr)).To(BeTrue())
			Expect(serr.Expected).To(Equal(http.StatusTeapot))
			Expect(serr.TraceID).NotTo(BeEmpty(), "Errors should carry a trace ID")
		})
	})
})
