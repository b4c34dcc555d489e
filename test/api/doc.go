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

// Package api provides integration test utilities for the booking API.
//
// # Environments
//
// The suites select a deployment with ENVIRONMENT (TEST or PROD), each of
// which resolves its base URL from TEST_BASE_URL or PROD_BASE_URL.  When
// ENVIRONMENT is unset the suites start an in-process fake of the service
// instead, so they can run anywhere without credentials.  Configuration may
// also be placed in test/.env.
//
// # Clients
//
// Every spec gets its own client and therefore its own session, the token
// obtained by one spec is never visible to another.  Clients log through
// GinkgoLogr, so request traces only appear for failing specs unless ginkgo
// is run verbosely, and validate every response body against the booking
// schema before it is decoded.
//
// # Cleanup
//
// Bookings created through CreateBookingWithCleanup are deleted when the spec
// ends, whether it passed or not.
package api
