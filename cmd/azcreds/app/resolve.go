// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stacklok/azcreds/pkg/credentials"
	"github.com/stacklok/toolhive-core/env"
)

func newResolveCommand(envReader env.Reader) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <key>",
		Short: "Resolve a single configuration key",
		Long: `Resolve a single configuration key and print its value.

In system mode the configured value is treated as the name of an environment
variable and the value of that variable is printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, err := loadResolver(envReader)
			if err != nil {
				return err
			}
			value, err := resolver.Resolve(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
			return err
		},
	}
}

func newEndpointCommand(envReader env.Reader) *cobra.Command {
	return &cobra.Command{
		Use:   "endpoint",
		Short: "Print the Azure AI project endpoint",
		Long:  fmt.Sprintf("Resolve %s and print it.", credentials.ProjectEndpointKey),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resolver, err := loadResolver(envReader)
			if err != nil {
				return err
			}
			endpoint, err := resolver.ProjectEndpoint()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), endpoint)
			return err
		},
	}
}

func newCredentialsCommand(envReader env.Reader) *cobra.Command {
	return &cobra.Command{
		Use:   "credentials",
		Short: "Show the service principal credential",
		Long: `Resolve the tenant ID, client ID and client secret and show the resulting
credential. The client secret is never printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resolver, err := loadResolver(envReader)
			if err != nil {
				return err
			}
			cred, err := resolver.Credentials()
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(),
				"Tenant ID:     %s\nClient ID:     %s\nClient secret: %s\nToken URL:     %s\n",
				cred.TenantID, cred.ClientID, credentials.RedactedValue, cred.TokenURL())
			return err
		},
	}
}
