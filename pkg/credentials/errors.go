// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package credentials

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMode is returned when AUTH_CREDENTIAL_MODE holds an unrecognised value
	ErrInvalidMode = errors.New("invalid credential mode")

	// ErrMissingValue is returned when a requested key is absent or empty
	ErrMissingValue = errors.New("missing config value")

	// ErrReferenceNotSet is returned in system mode when the referenced variable is absent or empty
	ErrReferenceNotSet = errors.New("referenced variable not set")

	// ErrInvalidEnvFile is returned when the env file exists but cannot be read or parsed
	ErrInvalidEnvFile = errors.New("invalid env file")
)

// ConfigurationError is the single error kind produced by the resolver.
// It always wraps one of the sentinel errors above.
type ConfigurationError struct {
	// Key is the configuration key being resolved, if any
	Key string
	// Reference is the ambient variable named by Key in system mode, if any
	Reference string
	// Source is the env file path for load failures
	Source string
	// Value is the offending value for mode validation failures
	Value string
	// Err is the underlying sentinel, possibly wrapped
	Err error
}

func (e *ConfigurationError) Error() string {
	switch {
	case errors.Is(e.Err, ErrInvalidMode):
		return fmt.Sprintf("invalid %s: %q, must be %q or %q", ModeKey, e.Value, DirectMode, IndirectMode)
	case errors.Is(e.Err, ErrReferenceNotSet):
		return fmt.Sprintf("system environment variable %q (from %s) is not set", e.Reference, e.Key)
	case errors.Is(e.Err, ErrMissingValue):
		return fmt.Sprintf("missing config value for %s", e.Key)
	case e.Source != "":
		return fmt.Sprintf("failed to load env file %s: %v", e.Source, e.Err)
	default:
		return fmt.Sprintf("configuration error: %v", e.Err)
	}
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IsConfigurationError reports whether err is, or wraps, a ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}
