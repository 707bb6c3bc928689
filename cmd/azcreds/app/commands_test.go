// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/stacklok/azcreds/pkg/credentials"
	"github.com/stacklok/toolhive-core/env"
)

const fullEnvFile = `AZURE_TENANT_ID=t1
AZURE_CLIENT_ID=c1
AZURE_CLIENT_SECRET=s1
AZURE_AI_PROJECT_ENDPOINT=https://project.services.ai.azure.com/api/projects/demo
AZURE_OPENAI_ENDPOINT=https://example.openai.azure.com/
AZURE_OPENAI_API_KEY=key-123
AZURE_OPENAI_API_VERSION=2024-10-21
`

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// runCommand executes the CLI with args and returns what it wrote to stdout.
func runCommand(t *testing.T, envReader env.Reader, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(viper.Reset)

	var out bytes.Buffer
	rootCmd := NewRootCmdWithEnv(envReader)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestResolveCommand(t *testing.T) { //nolint:paralleltest // uses global viper
	path := writeEnvFile(t, fullEnvFile)

	out, err := runCommand(t, credentials.Snapshot{}, "--env-file", path, "resolve", "AZURE_CLIENT_ID")
	require.NoError(t, err)
	assert.Equal(t, "c1\n", out)

	_, err = runCommand(t, credentials.Snapshot{}, "--env-file", path, "resolve", "AZURE_UNKNOWN")
	require.Error(t, err)
	assert.True(t, errors.Is(err, credentials.ErrMissingValue))
}

func TestEndpointCommand_SystemMode(t *testing.T) { //nolint:paralleltest // uses global viper
	path := writeEnvFile(t, "AUTH_CREDENTIAL_MODE=system\nAZURE_AI_PROJECT_ENDPOINT=ENDPOINT_VAR\n")

	out, err := runCommand(t, credentials.Snapshot{"ENDPOINT_VAR": "https://x"}, "--env-file", path, "endpoint")
	require.NoError(t, err)
	assert.Equal(t, "https://x\n", out)

	_, err = runCommand(t, credentials.Snapshot{}, "--env-file", path, "endpoint")
	assert.ErrorIs(t, err, credentials.ErrReferenceNotSet)
}

func TestInvalidModeFailsEveryCommand(t *testing.T) { //nolint:paralleltest // uses global viper
	path := writeEnvFile(t, "AUTH_CREDENTIAL_MODE=bogus\n")

	for _, args := range [][]string{{"endpoint"}, {"credentials"}, {"openai"}, {"check"}, {"resolve", "X"}} {
		_, err := runCommand(t, credentials.Snapshot{}, append([]string{"--env-file", path}, args...)...)
		assert.ErrorIs(t, err, credentials.ErrInvalidMode, "args %v", args)
	}
}

func TestCredentialsCommand(t *testing.T) { //nolint:paralleltest // uses global viper
	path := writeEnvFile(t, fullEnvFile)

	out, err := runCommand(t, credentials.Snapshot{}, "--env-file", path, "credentials")
	require.NoError(t, err)
	assert.Contains(t, out, "Tenant ID:     t1")
	assert.Contains(t, out, "Client ID:     c1")
	assert.Contains(t, out, "Client secret: "+credentials.RedactedValue)
	assert.Contains(t, out, "https://login.microsoftonline.com/t1/oauth2/v2.0/token")
	assert.NotContains(t, out, "s1\n")
}

func TestOpenAICommand(t *testing.T) { //nolint:paralleltest // uses global viper
	path := writeEnvFile(t, fullEnvFile)

	t.Run("text redacts the key", func(t *testing.T) {
		out, err := runCommand(t, credentials.Snapshot{}, "--env-file", path, "openai")
		require.NoError(t, err)
		assert.Contains(t, out, "Endpoint:    https://example.openai.azure.com/")
		assert.Contains(t, out, "API key:     [REDACTED]")
		assert.NotContains(t, out, "key-123")
	})

	t.Run("json with secrets and deployment", func(t *testing.T) {
		out, err := runCommand(t, credentials.Snapshot{}, "--env-file", path,
			"openai", "--format", "json", "--show-secrets", "--deployment", "gpt-4.1-nano")
		require.NoError(t, err)

		var got map[string]string
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, map[string]string{
			"endpoint":             "https://example.openai.azure.com/",
			"api_key":              "key-123",
			"api_version":          "2024-10-21",
			"chat_completions_url": "https://example.openai.azure.com/openai/deployments/gpt-4.1-nano/chat/completions?api-version=2024-10-21",
		}, got)
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := runCommand(t, credentials.Snapshot{}, "--env-file", path, "openai", "--format", "yaml")
		require.NoError(t, err)

		var got map[string]string
		require.NoError(t, yaml.Unmarshal([]byte(out), &got))
		assert.Equal(t, credentials.RedactedValue, got["api_key"])
		assert.Equal(t, "2024-10-21", got["api_version"])
		assert.NotContains(t, got, "chat_completions_url")
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := runCommand(t, credentials.Snapshot{}, "--env-file", path, "openai", "--format", "xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `invalid format "xml"`)
	})
}

func TestCheckCommand(t *testing.T) { //nolint:paralleltest // uses global viper
	t.Run("all keys resolve", func(t *testing.T) {
		path := writeEnvFile(t, fullEnvFile)

		out, err := runCommand(t, credentials.Snapshot{}, "--env-file", path, "check")
		require.NoError(t, err)
		assert.Contains(t, out, "mode: env\n")
		for _, key := range credentials.RequiredKeys {
			assert.Contains(t, out, key+": ok\n")
		}
		assert.NotContains(t, out, "s1")
	})

	t.Run("missing keys are reported", func(t *testing.T) {
		path := writeEnvFile(t, "AZURE_TENANT_ID=t1\n")

		out, err := runCommand(t, credentials.Snapshot{}, "--env-file", path, "check")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "6 of 7 configuration keys failed to resolve")
		assert.Contains(t, out, "AZURE_TENANT_ID: ok\n")
		assert.Contains(t, out, "AZURE_CLIENT_ID: error: missing config value for AZURE_CLIENT_ID\n")
	})
}

func TestRenderStatusTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := renderStatusTable(&buf, credentials.IndirectMode, []keyStatus{
		{Key: "AZURE_TENANT_ID"},
		{Key: "AZURE_CLIENT_ID", Err: errors.New("missing config value for AZURE_CLIENT_ID")},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Credential mode: system")
	assert.Contains(t, out, "AZURE_TENANT_ID")
	assert.Contains(t, out, "AZURE_CLIENT_ID")
	assert.Contains(t, out, "missing")
}

func TestVersionCommand(t *testing.T) { //nolint:paralleltest // uses global viper
	out, err := runCommand(t, credentials.Snapshot{}, "version", "--json")
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.NotEmpty(t, got["version"])
	assert.NotEmpty(t, got["go_version"])
}

// failingWriter rejects every write.
type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRenderers_PropagateWriteErrors(t *testing.T) {
	t.Parallel()

	statuses := []keyStatus{{Key: "AZURE_TENANT_ID"}}
	cfg := openAIOutput{OpenAIConfig: credentials.OpenAIConfig{Endpoint: "https://e", APIKey: "k", APIVersion: "v"}}

	tests := []struct {
		name   string
		render func(io.Writer) error
	}{
		{"status lines", func(w io.Writer) error { return renderStatuses(w, credentials.DirectMode, statuses) }},
		{"status table", func(w io.Writer) error { return renderStatusTable(w, credentials.DirectMode, statuses) }},
		{"openai text", func(w io.Writer) error { return printOpenAIConfig(w, cfg, formatText) }},
		{"openai json", func(w io.Writer) error { return printOpenAIConfig(w, cfg, formatJSON) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Error(t, tt.render(failingWriter{}))
		})
	}
}
