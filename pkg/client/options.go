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

package client

import (
	"net/http"
	"time"

	"github.com/spf13/pflag"
)

const DefaultTimeout = 30 * time.Second

// ExpectedStatus is the status code each endpoint answers with on success.
// The service under test answers ping and delete with 201 Created, so these
// are configurable rather than assumed.
type ExpectedStatus struct {
	Auth          int
	Ping          int
	Create        int
	Get           int
	List          int
	Update        int
	PartialUpdate int
	Delete        int
}

// DefaultExpectedStatus returns the codes used by the booking service.
func DefaultExpectedStatus() ExpectedStatus {
	return ExpectedStatus{
		Auth:          http.StatusOK,
		Ping:          http.StatusCreated,
		Create:        http.StatusOK,
		Get:           http.StatusOK,
		List:          http.StatusOK,
		Update:        http.StatusOK,
		PartialUpdate: http.StatusOK,
		Delete:        http.StatusCreated,
	}
}

// withDefaults fills in any unset codes.
func (s ExpectedStatus) withDefaults() ExpectedStatus {
	d := DefaultExpectedStatus()

	fill := func(v *int, def int) {
		if *v == 0 {
			*v = def
		}
	}

	fill(&s.Auth, d.Auth)
	fill(&s.Ping, d.Ping)
	fill(&s.Create, d.Create)
	fill(&s.Get, d.Get)
	fill(&s.List, d.List)
	fill(&s.Update, d.Update)
	fill(&s.PartialUpdate, d.PartialUpdate)
	fill(&s.Delete, d.Delete)

	return s
}

// Options control how the client talks to the service.
type Options struct {
	// BaseURL is where the service lives.
	BaseURL string

	// Timeout is applied to every call, a timed out call is not retried.
	Timeout time.Duration

	// Expected are the per endpoint success codes.
	Expected ExpectedStatus

	// LogRequests logs every request with its status and duration.
	LogRequests bool

	// LogResponses logs every response body.
	LogResponses bool
}

// NewOptions returns options with defaults applied.
func NewOptions(baseURL string) *Options {
	return &Options{
		BaseURL:  baseURL,
		Timeout:  DefaultTimeout,
		Expected: DefaultExpectedStatus(),
	}
}

func (o *Options) AddFlags(f *pflag.FlagSet) {
	defaults := DefaultExpectedStatus()

	f.StringVar(&o.BaseURL, "base-url", "", "Booking service base URL, overrides the environment's URL")
	f.DurationVar(&o.Timeout, "request-timeout", DefaultTimeout, "Timeout applied to each request")
	f.IntVar(&o.Expected.Ping, "ping-status", defaults.Ping, "Status code expected from the health check")
	f.IntVar(&o.Expected.Delete, "delete-status", defaults.Delete, "Status code expected from a booking delete")
	f.BoolVar(&o.LogRequests, "log-requests", false, "Log each request")
	f.BoolVar(&o.LogResponses, "log-responses", false, "Log each response body")
}
