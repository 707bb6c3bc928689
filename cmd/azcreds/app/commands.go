// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package app provides the entry point for the azcreds command-line application.
package app

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stacklok/azcreds/pkg/credentials"
	"github.com/stacklok/azcreds/pkg/logger"
	"github.com/stacklok/toolhive-core/env"
)

const envFileKey = "env-file"

// NewRootCmd creates the root command reading the OS environment.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithEnv(&env.OSReader{})
}

// NewRootCmdWithEnv creates the root command with an injected ambient environment.
func NewRootCmdWithEnv(envReader env.Reader) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "azcreds",
		DisableAutoGenTag: true,
		Short:             "Resolve Azure credentials and endpoints from env configuration",
		Long: `azcreds resolves Azure service principal credentials, the Azure AI project endpoint
and Azure OpenAI settings from a dotenv file merged with the process environment.

AUTH_CREDENTIAL_MODE controls how values are read:
  - env:    values in the configuration are used as-is (default)
  - system: values in the configuration name environment variables holding the real values`,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				logger.Errorf("Error displaying help: %v", err)
			}
		},
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger.InitializeWithEnv(envReader)
		},
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")
	if err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		logger.Errorf("Error binding debug flag: %v", err)
	}

	rootCmd.PersistentFlags().String(envFileKey, credentials.DefaultEnvFile, "Path to the dotenv file")
	if err := viper.BindPFlag(envFileKey, rootCmd.PersistentFlags().Lookup(envFileKey)); err != nil {
		logger.Errorf("Error binding env-file flag: %v", err)
	}

	rootCmd.AddCommand(
		newResolveCommand(envReader),
		newEndpointCommand(envReader),
		newCredentialsCommand(envReader),
		newOpenAICommand(envReader),
		newCheckCommand(envReader),
		newVersionCmd(),
	)

	rootCmd.SilenceUsage = true

	return rootCmd
}

// loadResolver builds a resolver from the configured env file.
func loadResolver(envReader env.Reader) (*credentials.Resolver, error) {
	envFile := viper.GetString(envFileKey)
	logger.Debugf("loading configuration from %s", envFile)
	return credentials.New(envFile, envReader)
}
