// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"flag"
	"io"
	"os"

	gcs "cloud.google.com/go/storage"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/pkg/errors"
)

// Backend names a store implementation.
type Backend string

const (
	BackendMemory     Backend = "memory"
	BackendFirestore  Backend = "firestore"
	BackendGCS        Backend = "gcs"
	BackendFilesystem Backend = "fs"
	BackendSQLite     Backend = "sqlite"
)

// Config selects and configures a store backend.
type Config struct {
	Backend Backend
	// Firestore
	Project string
	Prefix  string
	// GCS
	Bucket string
	Object string
	// Filesystem
	Dir string
	// SQLite
	DB string
	// Memory: optional snapshot file to preload.
	Snapshot string
	// Cache memoizes person lookups.
	Cache bool
}

// RegisterFlags registers the flags for configuring a store.
func (cfg *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.Func("backend", "store backend [memory, firestore, gcs, fs, sqlite] (default memory)", func(s string) error {
		cfg.Backend = Backend(s)
		return nil
	})
	fs.StringVar(&cfg.Project, "project", "", "GCP project ID for the firestore backend")
	fs.StringVar(&cfg.Prefix, "collection-prefix", "", "prefix for firestore collection names")
	fs.StringVar(&cfg.Bucket, "bucket", "", "GCS bucket holding the snapshot for the gcs backend")
	fs.StringVar(&cfg.Object, "object", "people.json", "GCS snapshot object for the gcs backend")
	fs.StringVar(&cfg.Dir, "dir", "", "root directory for the fs backend")
	fs.StringVar(&cfg.DB, "db", "", "database file for the sqlite backend")
	fs.StringVar(&cfg.Snapshot, "snapshot", "", "snapshot file preloaded into the memory backend")
	fs.BoolVar(&cfg.Cache, "cache", false, "whether to cache person lookups")
}

func (cfg Config) backend() Backend {
	if cfg.Backend == "" {
		return BackendMemory
	}
	return cfg.Backend
}

// Validate ensures the selected backend has what it needs.
func (cfg Config) Validate() error {
	switch cfg.backend() {
	case BackendMemory:
	case BackendFirestore:
		if cfg.Project == "" {
			return errors.New("firestore backend requires --project")
		}
	case BackendGCS:
		if cfg.Bucket == "" || cfg.Object == "" {
			return errors.New("gcs backend requires --bucket and --object")
		}
	case BackendFilesystem:
		if cfg.Dir == "" {
			return errors.New("fs backend requires --dir")
		}
	case BackendSQLite:
		if cfg.DB == "" {
			return errors.New("sqlite backend requires --db")
		}
	default:
		return errors.Errorf("unknown backend: %s", cfg.Backend)
	}
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open creates the configured store. The returned Closer releases any
// client or database handle it holds.
func (cfg Config) Open(ctx context.Context) (ReadWriter, io.Closer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	rw, closer, err := cfg.open(ctx)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Cache {
		rw = NewCached(rw)
	}
	return rw, closer, nil
}

func (cfg Config) open(ctx context.Context) (ReadWriter, io.Closer, error) {
	switch cfg.backend() {
	case BackendFirestore:
		f, err := NewFirestore(ctx, cfg.Project, cfg.Prefix)
		if err != nil {
			return nil, nil, err
		}
		return f, f, nil
	case BackendGCS:
		client, err := gcs.NewClient(ctx)
		if err != nil {
			return nil, nil, errors.Wrap(err, "creating gcs client")
		}
		g, err := NewGCSSnapshot(ctx, client, cfg.Bucket, cfg.Object)
		if err != nil {
			client.Close()
			return nil, nil, err
		}
		return g, client, nil
	case BackendFilesystem:
		return NewFilesystem(osfs.New(cfg.Dir)), nopCloser{}, nil
	case BackendSQLite:
		s, err := NewSQLite(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		if cfg.Snapshot == "" {
			return NewMemory(Snapshot{}), nopCloser{}, nil
		}
		snap, err := ReadSnapshotFile(cfg.Snapshot)
		if err != nil {
			return nil, nil, err
		}
		return NewMemory(*snap), nopCloser{}, nil
	}
}

// ReadSnapshotFile decodes and validates a local snapshot file.
func ReadSnapshotFile(path string) (*Snapshot, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening snapshot")
	}
	defer f.Close()
	snap, err := DecodeSnapshot(f, format)
	if err != nil {
		return nil, err
	}
	if err := snap.Validate(); err != nil {
		return nil, errors.Wrapf(err, "validating %s", path)
	}
	return snap, nil
}

// WriteSnapshotFile encodes snap into a local file.
func WriteSnapshotFile(path string, snap Snapshot) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating snapshot")
	}
	if err := EncodeSnapshot(f, snap, format); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "closing snapshot")
}
