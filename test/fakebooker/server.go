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

// Package fakebooker is an in-process imitation of the booking service so
// the suites can run without a deployed environment.  It reproduces the
// service's quirks: ping and delete answer 201, bad credentials answer 200
// with a reason, an incomplete booking is a 500, and mutating a missing
// booking is a 405.
package fakebooker

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"

	"github.com/nscaledev/booker/pkg/booking"
	"github.com/nscaledev/booker/pkg/schema"
)

// DefaultCredentials are accepted by a new server.
//
//nolint:gochecknoglobals
var DefaultCredentials = booking.Credentials{
	Username: "admin",
	Password: "password123",
}

// Server holds the bookings in memory.
type Server struct {
	lock sync.Mutex

	bookings    map[int]booking.Booking
	nextID      int
	tokens      map[string]struct{}
	credentials booking.Credentials

	validator *schema.Validator
	logger    logr.Logger
}

// New returns an empty server.
func New(logger logr.Logger) (*Server, error) {
	validator, err := schema.New()
	if err != nil {
		return nil, err
	}

	return &Server{
		bookings:    map[int]booking.Booking{},
		nextID:      1,
		tokens:      map[string]struct{}{},
		credentials: DefaultCredentials,
		validator:   validator,
		logger:      logger,
	}, nil
}

// NewTestServer starts a server on a loopback port, the caller must close it.
func NewTestServer(logger logr.Logger) (*Server, *httptest.Server, error) {
	s, err := New(logger)
	if err != nil {
		return nil, nil, err
	}

	return s, httptest.NewServer(s.Handler()), nil
}

// Handler returns the service's routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Post("/auth", s.createToken)
	r.Get("/ping", s.ping)

	r.Route("/booking", func(r chi.Router) {
		r.Get("/", s.listBookings)
		r.Post("/", s.createBooking)
		r.Get("/{id}", s.getBooking)
		r.Put("/{id}", s.updateBooking)
		r.Patch("/{id}", s.partialUpdateBooking)
		r.Delete("/{id}", s.deleteBooking)
	})

	return r
}

// Seed stores a booking directly and returns its ID.
func (s *Server) Seed(b booking.Booking) int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.insert(b)
}

// Len returns the number of stored bookings.
func (s *Server) Len() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return len(s.bookings)
}

func (s *Server) insert(b booking.Booking) int {
	id := s.nextID
	s.nextID++
	s.bookings[id] = b

	return id
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.V(1).Info("fake booking service", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "traceparent", r.Header.Get("Traceparent"))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)

	_, _ = io.WriteString(w, http.StatusText(status))
}

func newToken() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

func (s *Server) createToken(w http.ResponseWriter, r *http.Request) {
	var credentials booking.Credentials
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil || credentials != s.credentials {
		writeJSON(w, http.StatusOK, booking.AuthResponse{Reason: "Bad credentials"})
		return
	}

	token := newToken()

	s.lock.Lock()
	s.tokens[token] = struct{}{}
	s.lock.Unlock()

	writeJSON(w, http.StatusOK, booking.AuthResponse{Token: token})
}

func (s *Server) ping(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusCreated)
}

// authorized accepts either a known token cookie or the basic credentials.
func (s *Server) authorized(r *http.Request) bool {
	if username, password, ok := r.BasicAuth(); ok {
		return username == s.credentials.Username && password == s.credentials.Password
	}

	cookie, err := r.Cookie("token")
	if err != nil {
		return false
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	_, ok := s.tokens[cookie.Value]

	return ok
}

func bookingID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, false
	}

	return id, true
}

// matches implements the list filters, dates match on or after the value.
func matches(b booking.Booking, query map[string][]string) bool {
	get := func(key string) string {
		if values := query[key]; len(values) > 0 {
			return values[0]
		}

		return ""
	}

	if v := get("firstname"); v != "" && v != b.FirstName {
		return false
	}

	if v := get("lastname"); v != "" && v != b.LastName {
		return false
	}

	if v := get("checkin"); v != "" {
		date, err := booking.ParseDate(v)
		if err != nil || b.BookingDates.Checkin.Before(date.Time) {
			return false
		}
	}

	if v := get("checkout"); v != "" {
		date, err := booking.ParseDate(v)
		if err != nil || b.BookingDates.Checkout.Before(date.Time) {
			return false
		}
	}

	return true
}

func (s *Server) listBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	s.lock.Lock()

	ids := make([]int, 0, len(s.bookings))

	for id, b := range s.bookings {
		if matches(b, query) {
			ids = append(ids, id)
		}
	}

	s.lock.Unlock()

	slices.Sort(ids)

	result := make([]booking.BookingID, len(ids))

	for i, id := range ids {
		result[i] = booking.BookingID{BookingID: id}
	}

	writeJSON(w, http.StatusOK, result)
}

// decodeBooking reads a complete booking, anything short of that is rejected.
func (s *Server) decodeBooking(r *http.Request) (booking.Booking, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return booking.Booking{}, false
	}

	if err := s.validator.Validate(schema.Booking, body); err != nil {
		s.logger.V(1).Info("rejecting booking", "error", err.Error())
		return booking.Booking{}, false
	}

	var b booking.Booking
	if err := json.Unmarshal(body, &b); err != nil {
		return booking.Booking{}, false
	}

	return b, true
}

func (s *Server) createBooking(w http.ResponseWriter, r *http.Request) {
	b, ok := s.decodeBooking(r)
	if !ok {
		writeText(w, http.StatusInternalServerError)
		return
	}

	s.lock.Lock()
	id := s.insert(b)
	s.lock.Unlock()

	writeJSON(w, http.StatusOK, booking.BookingResponse{BookingID: id, Booking: b})
}

func (s *Server) getBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		writeText(w, http.StatusNotFound)
		return
	}

	s.lock.Lock()
	b, ok := s.bookings[id]
	s.lock.Unlock()

	if !ok {
		writeText(w, http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, b)
}

// lookup authorizes a mutation and finds its target, writing the failure
// response when either is missing.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (int, booking.Booking, bool) {
	if !s.authorized(r) {
		writeText(w, http.StatusForbidden)
		return 0, booking.Booking{}, false
	}

	id, ok := bookingID(r)
	if !ok {
		writeText(w, http.StatusMethodNotAllowed)
		return 0, booking.Booking{}, false
	}

	s.lock.Lock()
	b, ok := s.bookings[id]
	s.lock.Unlock()

	if !ok {
		writeText(w, http.StatusMethodNotAllowed)
		return 0, booking.Booking{}, false
	}

	return id, b, true
}

func (s *Server) updateBooking(w http.ResponseWriter, r *http.Request) {
	id, _, ok := s.lookup(w, r)
	if !ok {
		return
	}

	b, ok := s.decodeBooking(r)
	if !ok {
		writeText(w, http.StatusBadRequest)
		return
	}

	s.lock.Lock()
	s.bookings[id] = b
	s.lock.Unlock()

	writeJSON(w, http.StatusOK, b)
}

func (s *Server) partialUpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, current, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var patch booking.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeText(w, http.StatusBadRequest)
		return
	}

	b := patch.Apply(current)

	s.lock.Lock()
	s.bookings[id] = b
	s.lock.Unlock()

	writeJSON(w, http.StatusOK, b)
}

func (s *Server) deleteBooking(w http.ResponseWriter, r *http.Request) {
	id, _, ok := s.lookup(w, r)
	if !ok {
		return
	}

	s.lock.Lock()
	delete(s.bookings, id)
	s.lock.Unlock()

	writeText(w, http.StatusCreated)
}
