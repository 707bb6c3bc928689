// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/stacklok/azcreds/pkg/credentials"
	"github.com/stacklok/azcreds/pkg/logger"
	"github.com/stacklok/toolhive-core/env"
)

// keyStatus is the outcome of resolving one configuration key.
type keyStatus struct {
	Key string
	Err error
}

func newCheckCommand(envReader env.Reader) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that every required key resolves",
		Long: `Resolve every configuration key used by azcreds and report which ones are
missing. Values are never printed. No network calls are made.

The command exits with a non-zero status if any key fails to resolve.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resolver, err := loadResolver(envReader)
			if err != nil {
				return err
			}

			statuses := checkKeys(resolver)
			if err := renderStatuses(cmd.OutOrStdout(), resolver.Mode(), statuses); err != nil {
				return err
			}

			failed := 0
			for _, s := range statuses {
				if s.Err != nil {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d configuration keys failed to resolve", failed, len(statuses))
			}

			logger.Debugf("all %d configuration keys resolved", len(statuses))
			return nil
		},
	}
}

func checkKeys(resolver *credentials.Resolver) []keyStatus {
	statuses := make([]keyStatus, 0, len(credentials.RequiredKeys))
	for _, key := range credentials.RequiredKeys {
		_, err := resolver.Resolve(key)
		statuses = append(statuses, keyStatus{Key: key, Err: err})
	}
	return statuses
}

func renderStatuses(w io.Writer, mode credentials.Mode, statuses []keyStatus) error {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return renderStatusTable(w, mode, statuses)
	}

	if _, err := fmt.Fprintf(w, "mode: %s\n", mode); err != nil {
		return err
	}
	for _, s := range statuses {
		line := fmt.Sprintf("%s: ok\n", s.Key)
		if s.Err != nil {
			line = fmt.Sprintf("%s: error: %v\n", s.Key, s.Err)
		}
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}

func renderStatusTable(w io.Writer, mode credentials.Mode, statuses []keyStatus) error {
	if _, err := fmt.Fprintf(w, "Credential mode: %s\n", mode); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Options(
		tablewriter.WithHeader([]string{"Key", "Status", "Detail"}),
		tablewriter.WithRendition(
			tw.Rendition{
				Borders: tw.Border{
					Left:   tw.State(1),
					Top:    tw.State(1),
					Right:  tw.State(1),
					Bottom: tw.State(1),
				},
			},
		),
		tablewriter.WithAlignment(tw.MakeAlign(3, tw.AlignLeft)),
	)

	for _, s := range statuses {
		status, detail := "✅ OK", ""
		if s.Err != nil {
			status, detail = "❌ Error", s.Err.Error()
		}
		if err := table.Append([]string{s.Key, status, detail}); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}
