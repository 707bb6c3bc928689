// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package credentials

import (
	"strings"

	"github.com/stacklok/toolhive-core/env"
)

// ModeKey is the configuration key selecting how values are resolved.
const ModeKey = "AUTH_CREDENTIAL_MODE"

// Mode represents an enum of the supported value resolution strategies.
type Mode string

const (
	// DirectMode returns configured values as-is.
	DirectMode Mode = "env"

	// IndirectMode treats configured values as the names of ambient
	// environment variables holding the actual values.
	IndirectMode Mode = "system"
)

// ParseMode validates a raw AUTH_CREDENTIAL_MODE value.
// When set is false the key is absent and DirectMode is selected. A set but
// empty value is invalid. Only lower-casing is applied.
func ParseMode(raw string, set bool) (Mode, error) {
	if !set {
		return DirectMode, nil
	}

	switch mode := Mode(strings.ToLower(raw)); mode {
	case DirectMode, IndirectMode:
		return mode, nil
	default:
		return "", &ConfigurationError{Key: ModeKey, Value: string(mode), Err: ErrInvalidMode}
	}
}

// apply turns a raw configured value into the final value for key.
// raw must already be known to be non-empty.
func (m Mode) apply(key, raw string, ambient env.Reader) (string, error) {
	switch m {
	case IndirectMode:
		resolved := ambient.Getenv(raw)
		if resolved == "" {
			return "", &ConfigurationError{Key: key, Reference: raw, Err: ErrReferenceNotSet}
		}
		return resolved, nil
	case DirectMode:
		return raw, nil
	default:
		return "", &ConfigurationError{Key: ModeKey, Value: string(m), Err: ErrInvalidMode}
	}
}
