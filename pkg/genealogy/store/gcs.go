// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"

	gcs "cloud.google.com/go/storage"
	"github.com/cmatts/genealogy/pkg/genealogy/schema"
	"github.com/pkg/errors"
)

// GCSSnapshot is a read-only store over a snapshot object in GCS. The
// object is read once, when the store is created.
type GCSSnapshot struct {
	*Memory
	bucket, object string
}

var _ ReadWriter = &GCSSnapshot{}

// NewGCSSnapshot reads gs://bucket/object. The snapshot format is taken
// from the object's extension.
func NewGCSSnapshot(ctx context.Context, client *gcs.Client, bucket, object string) (*GCSSnapshot, error) {
	snap, err := ReadSnapshot(ctx, client, bucket, object)
	if err != nil {
		return nil, err
	}
	return &GCSSnapshot{Memory: NewMemory(*snap), bucket: bucket, object: object}, nil
}

func (g *GCSSnapshot) readOnly() error {
	return errors.Errorf("gs://%s/%s is read-only", g.bucket, g.object)
}

// WritePerson always fails; use WriteSnapshot to replace the object.
func (g *GCSSnapshot) WritePerson(context.Context, schema.Person) error { return g.readOnly() }

// WriteFact always fails; use WriteSnapshot to replace the object.
func (g *GCSSnapshot) WriteFact(context.Context, schema.Fact) error { return g.readOnly() }

// ReadSnapshot downloads and decodes a snapshot object.
func ReadSnapshot(ctx context.Context, client *gcs.Client, bucket, object string) (*Snapshot, error) {
	format, err := FormatOf(object)
	if err != nil {
		return nil, err
	}
	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err == gcs.ErrObjectNotExist {
		return nil, errors.Errorf("snapshot gs://%s/%s does not exist", bucket, object)
	} else if err != nil {
		return nil, errors.Wrapf(err, "creating reader for gs://%s/%s", bucket, object)
	}
	defer r.Close()
	snap, err := DecodeSnapshot(r, format)
	if err != nil {
		return nil, err
	}
	if err := snap.Validate(); err != nil {
		return nil, errors.Wrapf(err, "validating gs://%s/%s", bucket, object)
	}
	return snap, nil
}

// WriteSnapshot encodes snap and uploads it as gs://bucket/object.
func WriteSnapshot(ctx context.Context, client *gcs.Client, bucket, object string, snap Snapshot) error {
	format, err := FormatOf(object)
	if err != nil {
		return err
	}
	w := client.Bucket(bucket).Object(object).NewWriter(ctx)
	switch format {
	case JSON:
		w.ContentType = "application/json"
	case YAML:
		w.ContentType = "application/yaml"
	case TOML:
		w.ContentType = "application/toml"
	}
	if err := EncodeSnapshot(w, snap, format); err != nil {
		w.Close()
		return err
	}
	return errors.Wrapf(w.Close(), "uploading gs://%s/%s", bucket, object)
}
