// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/holomush/ucg/internal/logging"
	"github.com/holomush/ucg/internal/ucg/convert"
	"github.com/holomush/ucg/internal/ucg/eval"
	"github.com/holomush/ucg/internal/ucg/parser"
	"github.com/holomush/ucg/pkg/errutil"
)

// buildConfig holds configuration for the build command.
type buildConfig struct {
	validate bool
	strict   bool
	outName  string
}

// newBuildCmd creates the build subcommand with all flags configured.
func newBuildCmd() *cobra.Command {
	cfg := &buildConfig{}

	cmd := &cobra.Command{
		Use:   "build <file>",
		Short: "Evaluate a UCG source file and render its output",
		Long:  `Parse and evaluate a .ucg file, then write its designated output in the requested format.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, cfg, args[0])
		},
	}

	cmd.Flags().BoolVar(&cfg.validate, "validate", false, "run assert statements and report their results (assert statements are skipped without this flag)")
	cmd.Flags().BoolVar(&cfg.strict, "strict", true, "fail on undeclared environment variable lookups instead of returning NULL (pass --strict=false to permit them)")
	cmd.Flags().StringVar(&cfg.outName, "out", "json", "output format (json|yaml|toml)")

	return cmd
}

// runBuild executes the build command.
func runBuild(cmd *cobra.Command, cfg *buildConfig, path string) error {
	logging.SetDefault("ucg", version, logFormat)
	logger := slog.Default().With("run_id", ulid.Make().String())

	conv, ok := convert.ByName(cfg.outName)
	if !ok {
		err := fmt.Errorf("unknown output format %q", cfg.outName)
		errutil.LogError(logger, "unsupported output format", err)
		return err
	}

	src, err := os.ReadFile(path)
	if err != nil {
		errutil.LogError(logger, "reading source file", err)
		return err
	}

	stmts, err := parser.Parse(path, src)
	if err != nil {
		errutil.LogError(logger, "parsing source file", err)
		return err
	}

	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		errutil.LogError(logger, "resolving source directory", err)
		return err
	}

	ev := eval.NewRootEvaluator(dir, cfg.validate, cfg.strict)
	if err := ev.EvalFile(stmts); err != nil {
		errutil.LogError(logger, "evaluating source file", err)
		return err
	}

	if cfg.validate {
		fmt.Fprintln(cmd.OutOrStdout(), ev.Assert.Summary())
		if !ev.Assert.Success {
			return fmt.Errorf("validation failed:\n%s", ev.Assert.Failures())
		}
	}

	if err := conv.Convert(ev.Output, cmd.OutOrStdout()); err != nil {
		errutil.LogError(logger, "converting output", err)
		return err
	}

	return nil
}
