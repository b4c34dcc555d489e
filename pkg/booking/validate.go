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

package booking

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid is returned when a booking fails local validation.
var ErrInvalid = errors.New("invalid booking")

//nolint:gochecknoglobals
var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()

		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}

			return name
		})

		validate.RegisterStructValidation(validateBookingDates, BookingDates{})
	})

	return validate
}

func validateBookingDates(sl validator.StructLevel) {
	dates, ok := sl.Current().Interface().(BookingDates)
	if !ok {
		return
	}

	if dates.Checkin.IsZero() {
		sl.ReportError(dates.Checkin, "checkin", "Checkin", "required", "")
	}

	if dates.Checkout.IsZero() {
		sl.ReportError(dates.Checkout, "checkout", "Checkout", "required", "")
	}

	if !dates.Checkin.IsZero() && !dates.Checkout.IsZero() && !dates.Checkin.Before(dates.Checkout.Time) {
		sl.ReportError(dates.Checkout, "checkout", "Checkout", "aftercheckin", dates.Checkin.String())
	}
}

// Validate checks the booking before it is submitted and reports every
// violation found.
func (b Booking) Validate() error {
	err := validatorInstance().Struct(b)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	messages := make([]string, 0, len(verrs))

	for _, fe := range verrs {
		messages = append(messages, describe(fe))
	}

	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(messages, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Booking.")

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gte":
		return fmt.Sprintf("%s must be at least %s, got %v", field, fe.Param(), fe.Value())
	case "aftercheckin":
		return fmt.Sprintf("%s must be after checkin %s, got %v", field, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
