// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cmatts/genealogy/pkg/genealogy/schema"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/pkg/errors"
)

const (
	peopleDir = "people"
	factsDir  = "facts"
)

// FilesystemStore keeps one JSON file per record:
//
//	people/<id>.json
//	facts/<id>.json
type FilesystemStore struct {
	fs billy.Filesystem
}

var _ ReadWriter = &FilesystemStore{}

func NewFilesystem(fs billy.Filesystem) *FilesystemStore {
	return &FilesystemStore{fs: fs}
}

func recordPath(dir, id string) string {
	return filepath.Join(dir, id+".json")
}

func readRecord[T any](fs billy.Filesystem, path string) (*T, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var t T
	if err := json.NewDecoder(f).Decode(&t); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return &t, nil
}

func writeRecord(fs billy.Filesystem, path string, v any) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "creating directory")
	}
	f, err := fs.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating file")
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(v)
}

// walk decodes every record under dir, stopping at the first error.
func walk[T any](bfs billy.Filesystem, dir string, fn func(T)) error {
	err := util.Walk(bfs, dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		t, err := readRecord[T](bfs, path)
		if err != nil {
			return err
		}
		fn(*t)
		return nil
	})
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (f *FilesystemStore) FindPerson(_ context.Context, id string) (*schema.Person, error) {
	if id == "" || filepath.Base(id) != id {
		return nil, notFound("person", id)
	}
	p, err := readRecord[schema.Person](f.fs, recordPath(peopleDir, id))
	if errors.Is(err, os.ErrNotExist) {
		return nil, notFound("person", id)
	} else if err != nil {
		return nil, errors.Wrapf(err, "reading person %s", id)
	}
	return p, nil
}

func (f *FilesystemStore) FindByParent(_ context.Context, id string, role schema.Role) ([]schema.Person, error) {
	out := []schema.Person{}
	if id == "" {
		return out, nil
	}
	err := walk(f.fs, peopleDir, func(p schema.Person) {
		if role.Of(p) == id {
			out = append(out, p)
		}
	})
	if err != nil {
		return nil, errors.Wrap(err, "exploring people dir")
	}
	return out, nil
}

func (f *FilesystemStore) FindPeople(context.Context) ([]schema.Person, error) {
	out := []schema.Person{}
	if err := walk(f.fs, peopleDir, func(p schema.Person) { out = append(out, p) }); err != nil {
		return nil, errors.Wrap(err, "exploring people dir")
	}
	sortPeopleByName(out)
	return out, nil
}

func (f *FilesystemStore) FindFacts(_ context.Context, personID string) ([]schema.Fact, error) {
	out := []schema.Fact{}
	err := walk(f.fs, factsDir, func(fact schema.Fact) {
		if fact.PersonID == personID {
			out = append(out, fact)
		}
	})
	if err != nil {
		return nil, errors.Wrap(err, "exploring facts dir")
	}
	sortFacts(out)
	return out, nil
}

func (f *FilesystemStore) WritePerson(_ context.Context, p schema.Person) error {
	if p.ID == "" || filepath.Base(p.ID) != p.ID {
		return errors.Errorf("invalid person id %q", p.ID)
	}
	return errors.Wrapf(writeRecord(f.fs, recordPath(peopleDir, p.ID), p), "writing person %s", p.ID)
}

func (f *FilesystemStore) WriteFact(_ context.Context, fact schema.Fact) error {
	if fact.ID == "" || filepath.Base(fact.ID) != fact.ID {
		return errors.Errorf("invalid fact id %q", fact.ID)
	}
	return errors.Wrapf(writeRecord(f.fs, recordPath(factsDir, fact.ID), fact), "writing fact %s", fact.ID)
}
