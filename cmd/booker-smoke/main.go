/*
Copyright 2025 the Unikorn Authors.
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

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/nscaledev/booker/pkg/booking"
	"github.com/nscaledev/booker/pkg/client"
	"github.com/nscaledev/booker/pkg/environment"
	"github.com/nscaledev/booker/pkg/generator"
	"github.com/nscaledev/booker/pkg/schema"

	"k8s.io/utils/ptr"
)

var errEcho = errors.New("booking was not echoed verbatim")

type smokeOptions struct {
	credentials booking.Credentials
	seed        uint64
	fixed       bool
	debug       bool
}

func (o *smokeOptions) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.credentials.Username, "username", getWithDefault("BOOKER_USERNAME", "admin"), "Username to authenticate with")
	f.StringVar(&o.credentials.Password, "password", getWithDefault("BOOKER_PASSWORD", "password123"), "Password to authenticate with")
	f.Uint64Var(&o.seed, "seed", 0, "Seed for generated bookings, zero picks one at random")
	f.BoolVar(&o.fixed, "fixed", false, "Submit the canonical booking rather than a generated one")
	f.BoolVar(&o.debug, "debug", false, "Enable debug logging")
}

func getWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func newLogger(debug bool) (logr.Logger, error) {
	config := zap.NewProductionConfig()

	if debug {
		config = zap.NewDevelopmentConfig()
	}

	zapLogger, err := config.Build()
	if err != nil {
		return logr.Discard(), err
	}

	return zapr.NewLogger(zapLogger), nil
}

// run walks a booking through its whole lifecycle, stopping at the first
// failure.
//
//nolint:cyclop
func run(ctx context.Context, logger logr.Logger, c *client.Client, o *smokeOptions) error {
	status, err := c.Ping(ctx)
	if err != nil {
		return err
	}

	logger.Info("service is up", "status", status)

	if err := c.Authenticate(ctx, o.credentials); err != nil {
		return err
	}

	submitted := generator.Fixed()

	if !o.fixed {
		submitted = generator.New(generator.Options{Seed: o.seed}).Booking()
	}

	created, err := c.Create(ctx, submitted)
	if err != nil {
		return err
	}

	id := created.BookingID

	logger.Info("created booking", "id", id)

	if diff := booking.Diff(submitted, created.Booking); diff != "" {
		return fmt.Errorf("%w on create (-want +got):\n%s", errEcho, diff)
	}

	fetched, err := c.Get(ctx, id)
	if err != nil {
		return err
	}

	if diff := booking.Diff(submitted, *fetched); diff != "" {
		return fmt.Errorf("%w on read (-want +got):\n%s", errEcho, diff)
	}

	patch := booking.Patch{
		TotalPrice: ptr.To(submitted.TotalPrice + 1),
	}

	patched, err := c.PartialUpdate(ctx, id, patch)
	if err != nil {
		return err
	}

	if diff := booking.Diff(patch.Apply(submitted), *patched); diff != "" {
		return fmt.Errorf("%w on partial update (-want +got):\n%s", errEcho, diff)
	}

	if _, err := c.Delete(ctx, id); err != nil {
		return err
	}

	if _, err := c.Get(ctx, id); !errors.Is(err, client.ErrNotFound) {
		return fmt.Errorf("booking %d still readable after delete: %w", id, err)
	}

	logger.Info("deleted booking", "id", id)

	return nil
}

func main() {
	// A missing .env is fine, variables may come from the process.
	_ = godotenv.Load()

	options := client.NewOptions("")
	options.AddFlags(pflag.CommandLine)

	var smoke smokeOptions

	smoke.AddFlags(pflag.CommandLine)

	pflag.Parse()

	logger, err := newLogger(smoke.debug)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if options.BaseURL == "" {
		env, baseURL, err := environment.NewResolver().FromEnv()
		if err != nil {
			logger.Error(err, "no base URL given and environment cannot be resolved")
			os.Exit(1)
		}

		logger.Info("resolved environment", "environment", env, "baseURL", baseURL)

		options.BaseURL = baseURL
	}

	validator, err := schema.New()
	if err != nil {
		logger.Error(err, "failed to load schema")
		os.Exit(1)
	}

	c, err := client.New(options, client.WithLogger(logger.WithName("client")), client.WithValidator(validator))
	if err != nil {
		logger.Error(err, "failed to create client")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, logger, c, &smoke); err != nil {
		logger.Error(err, "smoke test failed")
		cancel()
		os.Exit(1) //nolint:gocritic
	}

	logger.Info("smoke test passed", "baseURL", c.BaseURL())
}
