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
	"fmt"
	"sync"

	"github.com/onsi/ginkgo/v2"

	"github.com/nscaledev/booker/pkg/client"
	"github.com/nscaledev/booker/pkg/schema"
)

//nolint:gochecknoglobals
var (
	validatorOnce sync.Once
	validator     *schema.Validator
	validatorErr  error
)

// Validator returns the shared schema validator, it is safe for concurrent use
// so one instance serves every spec.
func Validator() (*schema.Validator, error) {
	validatorOnce.Do(func() {
		validator, validatorErr = schema.New()
	})

	return validator, validatorErr
}

// NewAPIClientWithConfig returns a client with a fresh, unauthenticated
// session that logs to the GinkgoWriter and validates response bodies.
func NewAPIClientWithConfig(config *TestConfig) (*client.Client, error) {
	v, err := Validator()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	return client.New(config.ClientOptions(), client.WithLogger(ginkgo.GinkgoLogr), client.WithValidator(v))
}
