// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package logger provides the process-wide logger for azcreds.
//
// It wraps a *slog.Logger built by toolhive-core/logging. Library code logs
// through the package-level helpers; secrets must never be passed to them.
package logger

import (
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"

	"github.com/spf13/viper"

	"github.com/stacklok/toolhive-core/env"
	"github.com/stacklok/toolhive-core/logging"
)

// UnstructuredLogsEnvVar selects plain text output when true (the default).
const UnstructuredLogsEnvVar = "UNSTRUCTURED_LOGS"

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(logging.New())
}

// Get returns the underlying *slog.Logger for injection into structs.
func Get() *slog.Logger {
	return current.Load()
}

// Set replaces the process logger. Intended for tests capturing output.
func Set(l *slog.Logger) {
	current.Store(l)
}

// Debugf logs a formatted message at debug level.
func Debugf(msg string, args ...any) {
	Get().Debug(fmt.Sprintf(msg, args...))
}

// Debugw logs a message at debug level with key-value pairs.
func Debugw(msg string, keysAndValues ...any) {
	Get().Debug(msg, keysAndValues...)
}

// Infof logs a formatted message at info level.
func Infof(msg string, args ...any) {
	Get().Info(fmt.Sprintf(msg, args...))
}

// Errorf logs a formatted message at error level.
func Errorf(msg string, args ...any) {
	Get().Error(fmt.Sprintf(msg, args...))
}

// Initialize configures the process logger from the OS environment and the
// viper "debug" setting.
func Initialize() {
	InitializeWithEnv(&env.OSReader{})
}

// InitializeWithEnv is Initialize with an injected environment reader.
func InitializeWithEnv(envReader env.Reader) {
	var opts []logging.Option

	if unstructuredLogsWithEnv(envReader) {
		opts = append(opts, logging.WithFormat(logging.FormatText))
	}
	if viper.GetBool("debug") {
		opts = append(opts, logging.WithLevel(slog.LevelDebug))
	}

	current.Store(logging.New(opts...))
}

func unstructuredLogsWithEnv(envReader env.Reader) bool {
	unstructured, err := strconv.ParseBool(envReader.Getenv(UnstructuredLogsEnvVar))
	if err != nil {
		// unset or unparseable
		return true
	}
	return unstructured
}
