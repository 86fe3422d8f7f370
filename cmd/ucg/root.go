// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var logFormat string

// NewRootCmd builds the ucg root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ucg",
		Short: "UCG - a small purely-functional configuration language",
		Long: `ucg evaluates a .ucg configuration source file and renders its
designated output as JSON, YAML, or TOML.`,
	}

	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "json", "log output format (json|text)")
	cmd.AddCommand(NewBuildCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

func NewBuildCmd() *cobra.Command   { return newBuildCmd() }
func NewVersionCmd() *cobra.Command { return newVersionCmd() }
