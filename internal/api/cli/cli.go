// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package cli runs api handlers as cobra commands.
package cli

import (
	"io"

	"github.com/cmatts/genealogy/internal/api"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// IO provides input/output streams for CLI commands.
type IO struct {
	In  io.Reader // stdin
	Out io.Writer // stdout
	Err io.Writer // stderr
}

type Deps interface {
	SetIO(IO)
}

// ParseArgs populates an input from positional arguments.
type ParseArgs[I api.Message] func(in *I, args []string) error

// SkipArgs is a ParseArgs that sets no arguments.
func SkipArgs[I api.Message](*I, []string) error {
	return nil
}

// RunE constructs a cobra.Command.RunE that parses positional arguments into
// cfg, validates it, initializes deps and runs handler.
func RunE[I api.Message, O any, D Deps](
	cfg *I,
	parseArgs ParseArgs[I],
	initDeps api.InitT[D],
	handler api.HandlerT[I, O, D],
) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := parseArgs(cfg, args); err != nil {
			return err
		}
		if err := (*cfg).Validate(); err != nil {
			return err
		}
		deps, err := initDeps(cmd.Context())
		if err != nil {
			return errors.Wrap(err, "initializing dependencies")
		}
		deps.SetIO(IO{
			In:  cmd.InOrStdin(),
			Out: cmd.OutOrStdout(),
			Err: cmd.ErrOrStderr(),
		})
		_, err = handler(cmd.Context(), *cfg, deps)
		return err
	}
}
