// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package credentials

import (
	"errors"
	"fmt"
	"net/url"
)

// OpenAIConfig holds the settings needed to call an Azure OpenAI deployment.
type OpenAIConfig struct {
	Endpoint   string `json:"endpoint" yaml:"endpoint"`
	APIKey     string `json:"api_key" yaml:"api_key"`
	APIVersion string `json:"api_version" yaml:"api_version"`
}

// AsMap returns the config keyed by endpoint, api_key and api_version.
func (c *OpenAIConfig) AsMap() map[string]string {
	return map[string]string{
		"endpoint":    c.Endpoint,
		"api_key":     c.APIKey,
		"api_version": c.APIVersion,
	}
}

// Redacted returns a copy with the API key masked.
func (c *OpenAIConfig) Redacted() OpenAIConfig {
	out := *c
	if out.APIKey != "" {
		out.APIKey = RedactedValue
	}
	return out
}

// ChatCompletionsURL builds the chat completions URL for a model deployment.
func (c *OpenAIConfig) ChatCompletionsURL(deployment string) (string, error) {
	if deployment == "" {
		return "", errors.New("deployment name cannot be empty")
	}

	base, err := url.Parse(c.Endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", c.Endpoint, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("invalid endpoint %q: scheme and host are required", c.Endpoint)
	}

	base = base.JoinPath("openai", "deployments", deployment, "chat", "completions")
	base.RawQuery = url.Values{"api-version": []string{c.APIVersion}}.Encode()
	return base.String(), nil
}
