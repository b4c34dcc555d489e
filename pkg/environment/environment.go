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

// Package environment maps a named deployment environment to the base URL
// of the booking service deployed there.
package environment

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Environment is a named deployment of the booking service.
type Environment string

const (
	Test Environment = "TEST"
	Prod Environment = "PROD"
)

const (
	// SelectorVariable names the environment to run against.
	SelectorVariable = "ENVIRONMENT"

	TestBaseURLVariable = "TEST_BASE_URL"
	ProdBaseURLVariable = "PROD_BASE_URL"
)

// ConfigurationError is returned when the environment is not set up correctly.
type ConfigurationError struct {
	// Variable is the process variable at fault.
	Variable string
	// Reason describes what is wrong with it.
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Variable, e.Reason)
}

// baseURLVariables is the closed set of supported environments.
var baseURLVariables = map[Environment]string{
	Test: TestBaseURLVariable,
	Prod: ProdBaseURLVariable,
}

// Parse converts an identifier into an Environment.
func Parse(s string) (Environment, error) {
	env := Environment(strings.ToUpper(strings.TrimSpace(s)))

	if _, ok := baseURLVariables[env]; !ok {
		if s == "" {
			return "", &ConfigurationError{Variable: SelectorVariable, Reason: "not set"}
		}

		return "", &ConfigurationError{Variable: SelectorVariable, Reason: fmt.Sprintf("unsupported environment value %q", s)}
	}

	return env, nil
}

// Resolver reads environment configuration.
type Resolver struct {
	// Lookup returns a configuration value and whether it is set.
	Lookup func(key string) (string, bool)
}

// NewResolver returns a resolver backed by the process environment.
func NewResolver() *Resolver {
	return &Resolver{
		Lookup: os.LookupEnv,
	}
}

func (r *Resolver) lookup(key string) string {
	lookup := r.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	value, _ := lookup(key)

	return strings.TrimSpace(value)
}

// Selected returns the environment named by the selector variable.
func (r *Resolver) Selected() (Environment, error) {
	return Parse(r.lookup(SelectorVariable))
}

// Resolve returns the base URL for the given environment.
func (r *Resolver) Resolve(env Environment) (string, error) {
	variable, ok := baseURLVariables[env]
	if !ok {
		return "", &ConfigurationError{Variable: SelectorVariable, Reason: fmt.Sprintf("unsupported environment %q", env)}
	}

	value := r.lookup(variable)
	if value == "" {
		return "", &ConfigurationError{Variable: variable, Reason: "not set"}
	}

	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", &ConfigurationError{Variable: variable, Reason: fmt.Sprintf("%q is not an absolute URL", value)}
	}

	return strings.TrimSuffix(value, "/"), nil
}

// FromEnv resolves the selected environment and its base URL in one step.
func (r *Resolver) FromEnv() (Environment, string, error) {
	env, err := r.Selected()
	if err != nil {
		return "", "", err
	}

	baseURL, err := r.Resolve(env)
	if err != nil {
		return "", "", err
	}

	return env, baseURL, nil
}
