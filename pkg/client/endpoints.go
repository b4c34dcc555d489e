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

package client

import (
	"fmt"
	"net/url"
	"strconv"
)

// Endpoints contains all API endpoint patterns.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// Authentication endpoints.
func (e *Endpoints) Auth() string {
	return "/auth"
}

// Health endpoints.
func (e *Endpoints) Ping() string {
	return "/ping"
}

// Booking endpoints.
func (e *Endpoints) ListBookings() string {
	return "/booking"
}

func (e *Endpoints) CreateBooking() string {
	return "/booking"
}

func (e *Endpoints) GetBooking(id int) string {
	return fmt.Sprintf("/booking/%s", url.PathEscape(strconv.Itoa(id)))
}

func (e *Endpoints) UpdateBooking(id int) string {
	return fmt.Sprintf("/booking/%s", url.PathEscape(strconv.Itoa(id)))
}

func (e *Endpoints) PartialUpdateBooking(id int) string {
	return fmt.Sprintf("/booking/%s", url.PathEscape(strconv.Itoa(id)))
}

func (e *Endpoints) DeleteBooking(id int) string {
	return fmt.Sprintf("/booking/%s", url.PathEscape(strconv.Itoa(id)))
}
