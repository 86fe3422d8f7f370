// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"github.com/spf13/cobra"
)

// newVersionCmd creates the version subcommand.
func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the ucg version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Println(formatVersion())
			return nil
		},
	}
	return cmd
}

func formatVersion() string {
	return version + " (commit " + commit + ", built " + date + ")"
}
