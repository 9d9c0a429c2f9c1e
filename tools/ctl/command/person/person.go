// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package person

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

// Config holds all configuration for the person command.
type Config struct {
	ID    string
	Store store.Config
}

// Validate ensures the configuration is valid.
func (c Config) Validate() error {
	if c.ID == "" {
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

// Handler prints the person record as JSON.
func Handler(ctx context.Context, cfg Config, deps *Deps) (*schema.Person, error) {
	defer deps.Closer.Close()
	p, err := genealogyservice.Person(ctx, schema.PersonRequest{ID: cfg.ID}, &deps.ReaderDeps)
	if err != nil {
		return nil, errors.Wrapf(err, "finding person %s", cfg.ID)
	}
	enc := json.NewEncoder(deps.IO.Out)
	enc.SetIndent("", "  ")
	return p, errors.Wrap(enc.Encode(p), "encoding person")
}

// Command creates a new person command instance.
func Command() *cobra.Command {
	cfg := Config{}
	cmd := &cobra.Command{
		Use:   "person <id> [--backend <name> ...]",
		Short: "Print a person record",
		Args:  cobra.ExactArgs(1),
		RunE: cli.RunE(
			&cfg,
			func(cfg *Config, args []string) error {
				cfg.ID = args[0]
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
