// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package credentials

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/subosito/gotenv"

	"github.com/stacklok/azcreds/pkg/logger"
	"github.com/stacklok/toolhive-core/env"
)

// DefaultEnvFile is the env file read when no path is given.
const DefaultEnvFile = ".env"

// Store holds the key/value pairs loaded from an env file.
// It is never modified after loading.
type Store map[string]string

// LoadStore reads a dotenv file. A file that does not exist yields an empty
// store; a file that exists but cannot be read or parsed is an error.
func LoadStore(path string) (Store, error) {
	if path == "" {
		path = DefaultEnvFile
	}
	path = filepath.Clean(path)

	// #nosec G304: the env file path is chosen by the operator.
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Infof("env file %s not found, using ambient environment only", path)
			return Store{}, nil
		}
		return nil, &ConfigurationError{Source: path, Err: fmt.Errorf("%w: %w", ErrInvalidEnvFile, err)}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &ConfigurationError{Source: path, Err: fmt.Errorf("%w: %w", ErrInvalidEnvFile, err)}
	}
	if info.IsDir() {
		return nil, &ConfigurationError{Source: path, Err: fmt.Errorf("%w: is a directory", ErrInvalidEnvFile)}
	}

	store, err := ParseStore(f)
	if err != nil {
		return nil, &ConfigurationError{Source: path, Err: err}
	}

	logger.Debugf("loaded %d entries from env file %s", len(store), path)
	return store, nil
}

// ParseStore parses dotenv content from r.
func ParseStore(r io.Reader) (Store, error) {
	parsed, err := gotenv.StrictParse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEnvFile, err)
	}
	return Store(parsed), nil
}

// lookup returns the merged value for key. A non-empty ambient value takes
// precedence over the file value.
func (s Store) lookup(key string, ambient env.Reader) string {
	if v := ambient.Getenv(key); v != "" {
		return v
	}
	return s[key]
}

// mode selects the resolution mode. A non-empty ambient value wins; otherwise
// a key present in the file is validated even when empty. Only an absent key
// defaults to DirectMode.
func (s Store) mode(ambient env.Reader) (Mode, error) {
	if v := ambient.Getenv(ModeKey); v != "" {
		return ParseMode(v, true)
	}
	v, ok := s[ModeKey]
	return ParseMode(v, ok)
}

// Snapshot is a fixed, map-backed env.Reader.
type Snapshot map[string]string

// Getenv returns the value of key, or "" if it is not set.
func (s Snapshot) Getenv(key string) string {
	return s[key]
}

// SnapshotFromEnviron builds a Snapshot from KEY=VALUE pairs as returned by os.Environ.
func SnapshotFromEnviron(environ []string) Snapshot {
	snapshot := make(Snapshot, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		snapshot[key] = value
	}
	return snapshot
}
