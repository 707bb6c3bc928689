// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/stacklok/azcreds/pkg/credentials"
	"github.com/stacklok/toolhive-core/env"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type openAIOutput struct {
	credentials.OpenAIConfig `yaml:",inline"`
	ChatCompletionsURL       string `json:"chat_completions_url,omitempty" yaml:"chat_completions_url,omitempty"`
}

func newOpenAICommand(envReader env.Reader) *cobra.Command {
	var (
		format      string
		showSecrets bool
		deployment  string
	)

	cmd := &cobra.Command{
		Use:   "openai",
		Short: "Show the Azure OpenAI configuration",
		Long: `Resolve the Azure OpenAI endpoint, API key and API version.

The API key is redacted unless --show-secrets is given. With --deployment the
chat completions URL for that model deployment is shown as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			resolver, err := loadResolver(envReader)
			if err != nil {
				return err
			}
			cfg, err := resolver.OpenAIConfig()
			if err != nil {
				return err
			}

			out := openAIOutput{OpenAIConfig: *cfg}
			if !showSecrets {
				out.OpenAIConfig = cfg.Redacted()
			}
			if deployment != "" {
				out.ChatCompletionsURL, err = cfg.ChatCompletionsURL(deployment)
				if err != nil {
					return fmt.Errorf("failed to build chat completions URL: %w", err)
				}
			}

			return printOpenAIConfig(cmd.OutOrStdout(), out, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", formatText, "Output format (text, json or yaml)")
	cmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "Print the API key instead of redacting it")
	cmd.Flags().StringVar(&deployment, "deployment", "", "Model deployment used to build the chat completions URL")

	return cmd
}

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("invalid format %q, must be one of %s, %s, %s", format, formatText, formatJSON, formatYAML)
	}
}

func printOpenAIConfig(w io.Writer, out openAIOutput, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	default:
		text := fmt.Sprintf("Endpoint:    %s\nAPI key:     %s\nAPI version: %s\n", out.Endpoint, out.APIKey, out.APIVersion)
		if out.ChatCompletionsURL != "" {
			text += fmt.Sprintf("Chat URL:    %s\n", out.ChatCompletionsURL)
		}
		if _, err := io.WriteString(w, text); err != nil {
			return err
		}
	}
	return nil
}
