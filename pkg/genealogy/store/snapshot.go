// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"bytes"
	"encoding/json"
	"io"
	"path"
	"strings"

	"github.com/cmatts/genealogy/pkg/genealogy/schema"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Snapshot is a complete set of people and facts.
type Snapshot struct {
	People []schema.Person `json:"people" yaml:"people" toml:"people"`
	Facts  []schema.Fact   `json:"facts,omitempty" yaml:"facts,omitempty" toml:"facts,omitempty"`
}

// Format is the encoding of a snapshot file.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
)

// FormatOf infers the snapshot format from a file or object name.
func FormatOf(name string) (Format, error) {
	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return "", errors.Errorf("unsupported snapshot extension %q", ext)
	}
}

// DecodeSnapshot reads a snapshot in format f from r. The result is not
// validated.
func DecodeSnapshot(r io.Reader, f Format) (*Snapshot, error) {
	var snap Snapshot
	var err error
	switch f {
	case JSON:
		err = json.NewDecoder(r).Decode(&snap)
	case YAML:
		err = yaml.NewDecoder(r).Decode(&snap)
		if err == io.EOF {
			err = nil
		}
	case TOML:
		err = toml.NewDecoder(r).Decode(&snap)
	default:
		return nil, errors.Errorf("unknown format %q", f)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s snapshot", f)
	}
	return &snap, nil
}

// EncodeSnapshot writes snap to w in format f.
func EncodeSnapshot(w io.Writer, snap Snapshot, f Format) error {
	var err error
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(snap)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(snap); err == nil {
			err = enc.Close()
		}
	case TOML:
		err = toml.NewEncoder(w).Encode(snap)
	default:
		return errors.Errorf("unknown format %q", f)
	}
	return errors.Wrapf(err, "encoding %s snapshot", f)
}

// MarshalSnapshot encodes snap into a byte slice.
func MarshalSnapshot(snap Snapshot, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, snap, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Validate checks that every record has an id and ids are unique.
func (s Snapshot) Validate() error {
	people := make(map[string]bool)
	for i, p := range s.People {
		if p.ID == "" {
			return errors.Errorf("person %d has no id", i)
		}
		if people[p.ID] {
			return errors.Errorf("duplicate person id %s", p.ID)
		}
		people[p.ID] = true
	}
	facts := make(map[string]bool)
	for i, f := range s.Facts {
		if f.ID == "" {
			return errors.Errorf("fact %d has no id", i)
		}
		if facts[f.ID] {
			return errors.Errorf("duplicate fact id %s", f.ID)
		}
		facts[f.ID] = true
	}
	return nil
}
