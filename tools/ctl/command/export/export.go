// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package export

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/cmatts/genealogy/internal/api/cli"
	"github.com/cmatts/genealogy/pkg/genealogy/store"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Config holds all configuration for the export command.
type Config struct {
	// Destination is a local path or a gs://bucket/object URL.
	Destination string
	Store       store.Config
}

// Validate ensures the configuration is valid.
func (c Config) Validate() error {
	if c.Destination == "" {
		return errors.New("destination is required")
	}
	if _, err := store.FormatOf(c.Destination); err != nil {
		return err
	}
	if bucket, object, ok := gcsLocation(c.Destination); ok && (bucket == "" || object == "") {
		return errors.Errorf("invalid GCS destination: %s", c.Destination)
	}
	return c.Store.Validate()
}

// gcsLocation splits a gs://bucket/object destination.
func gcsLocation(dest string) (bucket, object string, ok bool) {
	rest, ok := strings.CutPrefix(dest, "gs://")
	if !ok {
		return "", "", false
	}
	bucket, object, _ = strings.Cut(rest, "/")
	return bucket, object, true
}

// Deps holds dependencies for the command.
type Deps struct {
	IO     cli.IO
	Store  store.Reader
	Closer io.Closer
	// WriteGCS uploads a snapshot to GCS.
	WriteGCS func(ctx context.Context, bucket, object string, snap store.Snapshot) error
}

func (d *Deps) SetIO(cio cli.IO) { d.IO = cio }

// InitDeps opens the store named by cfg.
func InitDeps(ctx context.Context, cfg Config) (*Deps, error) {
	rw, closer, err := cfg.Store.Open(ctx)
	if err != nil {
		return nil, err
	}
	return &Deps{
		Store:  rw,
		Closer: closer,
		WriteGCS: func(ctx context.Context, bucket, object string, snap store.Snapshot) error {
			client, err := gcs.NewClient(ctx)
			if err != nil {
				return errors.Wrap(err, "creating gcs client")
			}
			defer client.Close()
			return store.WriteSnapshot(ctx, client, bucket, object, snap)
		},
	}, nil
}

// Result summarizes an export.
type Result struct {
	People int
	Facts  int
}

// Handler dumps the configured store to a snapshot file.
func Handler(ctx context.Context, cfg Config, deps *Deps) (*Result, error) {
	defer deps.Closer.Close()
	snap, err := store.Dump(ctx, deps.Store)
	if err != nil {
		return nil, err
	}
	log.Printf("Exporting %d people and %d facts to %s", len(snap.People), len(snap.Facts), cfg.Destination)
	if bucket, object, ok := gcsLocation(cfg.Destination); ok {
		err = deps.WriteGCS(ctx, bucket, object, *snap)
	} else {
		err = store.WriteSnapshotFile(cfg.Destination, *snap)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "writing %s", cfg.Destination)
	}
	fmt.Fprintf(deps.IO.Out, "exported %d people, %d facts\n", len(snap.People), len(snap.Facts))
	return &Result{People: len(snap.People), Facts: len(snap.Facts)}, nil
}

// Command creates a new export command instance.
func Command() *cobra.Command {
	cfg := Config{}
	cmd := &cobra.Command{
		Use:   "export <path|gs://bucket/object> --backend <name> ...",
		Short: "Dump a store to a JSON, YAML or TOML snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: cli.RunE(
			&cfg,
			func(cfg *Config, args []string) error {
				cfg.Destination = args[0]
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
