// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package facts

import (
	"context"
	"encoding/json"
	"flag"
	"io"

	"github.com/cmatts/genealogy/internal/api/cli"
	"github.com/cmatts/genealogy/internal/api/genealogyservice"
	"github.com/cmatts/genealogy/pkg/genealogy/schema"
	"github.com/cmatts/genealogy/pkg/genealogy/store"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Config holds all configuration for the facts command.
type Config struct {
	PersonID string
	Store    store.Config
}

// Validate ensures the configuration is valid.
func (c Config) Validate() error {
	if c.PersonID == "" {
		return errors.New("person id is required")
	}
	return c.Store.Validate()
}

// Deps holds dependencies for the command.
type Deps struct {
	IO cli.IO
	genealogyservice.ReaderDeps
	Closer io.Closer
}

func (d *Deps) SetIO(cio cli.IO) { d.IO = cio }

// InitDeps opens the store named by cfg.
func InitDeps(ctx context.Context, cfg Config) (*Deps, error) {
	rw, closer, err := cfg.Store.Open(ctx)
	if err != nil {
		return nil, err
	}
	return &Deps{ReaderDeps: genealogyservice.ReaderDeps{Store: rw}, Closer: closer}, nil
}

// Handler prints the facts recorded for a person as JSON.
func Handler(ctx context.Context, cfg Config, deps *Deps) (*schema.FactsResponse, error) {
	defer deps.Closer.Close()
	resp, err := genealogyservice.Facts(ctx, schema.FactsRequest{PersonID: cfg.PersonID}, &deps.ReaderDeps)
	if err != nil {
		return nil, errors.Wrapf(err, "finding facts for %s", cfg.PersonID)
	}
	enc := json.NewEncoder(deps.IO.Out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return nil, errors.Wrap(err, "encoding facts")
	}
	return resp, nil
}

// Command creates a new facts command instance.
func Command() *cobra.Command {
	cfg := Config{}
	cmd := &cobra.Command{
		Use:   "facts <person-id> [--backend <name> ...]",
		Short: "Print the facts recorded for a person",
		Args:  cobra.ExactArgs(1),
		RunE: cli.RunE(
			&cfg,
			func(cfg *Config, args []string) error {
				cfg.PersonID = args[0]
				return nil
			},
			func(ctx context.Context) (*Deps, error) { return InitDeps(ctx, cfg) },
			Handler,
		),
	}
	cmd.Flags().AddGoFlagSet(flagSet(cmd.Name(), &cfg))
	return cmd
}

func flagSet(name string, cfg *Config) *flag.FlagSet {
	set := flag.NewFlagSet(name, flag.ContinueOnError)
	cfg.Store.RegisterFlags(set)
	return set
}
