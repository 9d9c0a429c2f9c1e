// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package people

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/cmatts/genealogy/internal/api/cli"
	"github.com/cmatts/genealogy/internal/api/genealogyservice"
	"github.com/cmatts/genealogy/pkg/genealogy/schema"
	"github.com/cmatts/genealogy/pkg/genealogy/store"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Config holds all configuration for the people command.
type Config struct {
	Format string
	Store  store.Config
}

// Validate ensures the configuration is valid.
func (c Config) Validate() error {
	if c.Format != "" && c.Format != "text" && c.Format != "json" {
		return errors.Errorf("invalid format: %s. Expected one of 'text' or 'json'", c.Format)
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

// Handler lists everyone in the store ordered by name.
func Handler(ctx context.Context, cfg Config, deps *Deps) (*schema.PeopleResponse, error) {
	defer deps.Closer.Close()
	resp, err := genealogyservice.People(ctx, schema.PeopleRequest{}, &deps.ReaderDeps)
	if err != nil {
		return nil, errors.Wrap(err, "listing people")
	}
	switch cfg.Format {
	case "", "text":
		for _, p := range resp.People {
			fmt.Fprintf(deps.IO.Out, "%-6s %s\n", p.ID, p.Name)
		}
	case "json":
		enc := json.NewEncoder(deps.IO.Out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			return nil, errors.Wrap(err, "encoding people")
		}
	}
	return resp, nil
}

// Command creates a new people command instance.
func Command() *cobra.Command {
	cfg := Config{}
	cmd := &cobra.Command{
		Use:   "people [--format=text|json] [--backend <name> ...]",
		Short: "List everyone ordered by name",
		Args:  cobra.NoArgs,
		RunE: cli.RunE(
			&cfg,
			cli.SkipArgs[Config],
			func(ctx context.Context) (*Deps, error) { return InitDeps(ctx, cfg) },
			Handler,
		),
	}
	cmd.Flags().AddGoFlagSet(flagSet(cmd.Name(), &cfg))
	return cmd
}

func flagSet(name string, cfg *Config) *flag.FlagSet {
	set := flag.NewFlagSet(name, flag.ContinueOnError)
	set.StringVar(&cfg.Format, "format", "", "format of the output (text|json)")
	cfg.Store.RegisterFlags(set)
	return set
}
