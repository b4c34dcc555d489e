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
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/nscaledev/booker/pkg/booking"
	"github.com/nscaledev/booker/pkg/client"
	"github.com/nscaledev/booker/pkg/environment"
)

const (
	defaultUsername = "admin"
	defaultPassword = "password123"
)

type TestConfig struct {
	// Environment is empty when the suites run against the fake service.
	Environment    environment.Environment
	BaseURL        string
	Credentials    booking.Credentials
	RequestTimeout time.Duration
	PingStatus     int
	DeleteStatus   int
	DebugLogging   bool
	LogRequests    bool
	LogResponses   bool
}

// Hermetic reports whether no deployed environment was selected.
func (c *TestConfig) Hermetic() bool {
	return c.Environment == ""
}

// ClientOptions returns the options a client for this configuration needs.
func (c *TestConfig) ClientOptions() *client.Options {
	options := client.NewOptions(c.BaseURL)
	options.Timeout = c.RequestTimeout
	options.Expected.Ping = c.PingStatus
	options.Expected.Delete = c.DeleteStatus
	options.LogRequests = c.LogRequests || c.DebugLogging
	options.LogResponses = c.LogResponses || c.DebugLogging

	return options
}

// LoadTestConfig loads configuration from environment variables and .env files.
// When ENVIRONMENT is unset the base URL is left empty for the caller to
// point at a fake service, otherwise it is resolved and an error is returned
// if the environment is misconfigured.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	expected := client.DefaultExpectedStatus()

	config := &TestConfig{
		Credentials: booking.Credentials{
			Username: getWithDefault("BOOKER_USERNAME", defaultUsername),
			Password: getWithDefault("BOOKER_PASSWORD", defaultPassword),
		},
		RequestTimeout: getDurationWithDefault("REQUEST_TIMEOUT", client.DefaultTimeout),
		PingStatus:     getIntWithDefault("PING_STATUS", expected.Ping),
		DeleteStatus:   getIntWithDefault("DELETE_STATUS", expected.Delete),
		DebugLogging:   getBoolWithDefault("DEBUG_LOGGING", false),
		LogRequests:    getBoolWithDefault("LOG_REQUESTS", false),
		LogResponses:   getBoolWithDefault("LOG_RESPONSES", false),
	}

	if os.Getenv(environment.SelectorVariable) == "" {
		return config, nil
	}

	env, baseURL, err := environment.NewResolver().FromEnv()
	if err != nil {
		return nil, fmt.Errorf("resolving environment: %w", err)
	}

	config.Environment = env
	config.BaseURL = baseURL

	return config, nil
}

func getWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

func getIntWithDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func loadEnvFile() {
	envPaths := []string{
		"../../../test/.env", // From test/api/suites directory
		"../../test/.env",    // From test/api directory
	}

	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	// Load never overrides variables already set in the process.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}
