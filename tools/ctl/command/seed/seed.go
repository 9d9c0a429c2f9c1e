// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package seed

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cmatts/genealogy/internal/api/cli"
	"github.com/cmatts/genealogy/pkg/genealogy/store"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Config holds all configuration for the seed command.
type Config struct {
	Path  string
	Store store.Config
}

// Validate ensures the configuration is valid.
func (c Config) Validate() error {
	if c.Path == "" {
		return errors.New("snapshot path is required")
	}
	if _, err := store.FormatOf(c.Path); err != nil {
		return err
	}
	return c.Store.Validate()
}

// Deps holds dependencies for the command.
type Deps struct {
	IO     cli.IO
	Store  store.Writer
	Closer io.Closer
}

func (d *Deps) SetIO(cio cli.IO) { d.IO = cio }

// InitDeps opens the store named by cfg.
func InitDeps(ctx context.Context, cfg Config) (*Deps, error) {
	rw, closer, err := cfg.Store.Open(ctx)
	if err != nil {
		return nil, err
	}
	return &Deps{Store: rw, Closer: closer}, nil
}

// Result summarizes a seeding run.
type Result struct {
	People int
	Facts  int
}

// readSnapshot decodes the snapshot at path, assigning fresh ids to facts
// that have none.
func readSnapshot(path string) (*store.Snapshot, error) {
	format, err := store.FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening snapshot")
	}
	defer f.Close()
	snap, err := store.DecodeSnapshot(f, format)
	if err != nil {
		return nil, err
	}
	for i := range snap.Facts {
		if snap.Facts[i].ID == "" {
			snap.Facts[i].ID = uuid.NewString()
		}
	}
	if err := snap.Validate(); err != nil {
		return nil, errors.Wrapf(err, "validating %s", path)
	}
	return snap, nil
}

// Handler loads a snapshot file into the configured store.
func Handler(ctx context.Context, cfg Config, deps *Deps) (*Result, error) {
	defer deps.Closer.Close()
	snap, err := readSnapshot(cfg.Path)
	if err != nil {
		return nil, err
	}
	log.Printf("Seeding %d people and %d facts from %s", len(snap.People), len(snap.Facts), cfg.Path)
	if err := store.Load(ctx, deps.Store, *snap); err != nil {
		return nil, err
	}
	fmt.Fprintf(deps.IO.Out, "seeded %d people, %d facts\n", len(snap.People), len(snap.Facts))
	return &Result{People: len(snap.People), Facts: len(snap.Facts)}, nil
}

// Command creates a new seed command instance.
func Command() *cobra.Command {
	cfg := Config{}
	cmd := &cobra.Command{
		Use:   "seed <snapshot.json|yaml|toml> --backend <name> ...",
		Short: "Load a snapshot file into a store",
		Args:  cobra.ExactArgs(1),
		RunE: cli.RunE(
			&cfg,
			func(cfg *Config, args []string) error {
				cfg.Path = args[0]
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
