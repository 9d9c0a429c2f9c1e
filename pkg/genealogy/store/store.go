// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package store provides access to stored people and facts.
package store

import (
	"cmp"
	"context"
	"slices"

	"github.com/cmatts/genealogy/pkg/genealogy/schema"
	"github.com/pkg/errors"
)

// Reader provides lookups over people and facts.
type Reader interface {
	// FindPerson returns an error wrapping schema.ErrNotFound when no person
	// has the given id.
	FindPerson(ctx context.Context, id string) (*schema.Person, error)
	// FindByParent returns everyone whose parent in slot role is id, in no
	// particular order. An empty id matches nobody.
	FindByParent(ctx context.Context, id string, role schema.Role) ([]schema.Person, error)
	// FindPeople returns everyone, ordered by name.
	FindPeople(ctx context.Context) ([]schema.Person, error)
	// FindFacts returns the facts attached to a person, ordered by year.
	FindFacts(ctx context.Context, personID string) ([]schema.Fact, error)
}

// Writer stores single records, replacing any record with the same id.
type Writer interface {
	WritePerson(ctx context.Context, p schema.Person) error
	WriteFact(ctx context.Context, f schema.Fact) error
}

// ReadWriter is a Reader that can also be written to.
type ReadWriter interface {
	Reader
	Writer
}

// Load writes every record of snap to w.
func Load(ctx context.Context, w Writer, snap Snapshot) error {
	for _, p := range snap.People {
		if err := w.WritePerson(ctx, p); err != nil {
			return errors.Wrapf(err, "writing person %s", p.ID)
		}
	}
	for _, f := range snap.Facts {
		if err := w.WriteFact(ctx, f); err != nil {
			return errors.Wrapf(err, "writing fact %s", f.ID)
		}
	}
	return nil
}

// Dump reads every person and their facts from r.
func Dump(ctx context.Context, r Reader) (*Snapshot, error) {
	people, err := r.FindPeople(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing people")
	}
	snap := &Snapshot{People: people}
	for _, p := range people {
		facts, err := r.FindFacts(ctx, p.ID)
		if err != nil {
			return nil, errors.Wrapf(err, "listing facts for %s", p.ID)
		}
		snap.Facts = append(snap.Facts, facts...)
	}
	return snap, nil
}

func notFound(kind, id string) error {
	return errors.Wrapf(schema.ErrNotFound, "%s %s", kind, id)
}

func sortPeopleByName(people []schema.Person) {
	slices.SortStableFunc(people, func(a, b schema.Person) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
}

// sortFacts orders facts by year with unknown years last, then by id.
func sortFacts(facts []schema.Fact) {
	year := func(f schema.Fact) (int, int) {
		if f.Year == nil {
			return 1, 0
		}
		return 0, *f.Year
	}
	slices.SortStableFunc(facts, func(a, b schema.Fact) int {
		au, ay := year(a)
		bu, by := year(b)
		return cmp.Or(cmp.Compare(au, bu), cmp.Compare(ay, by), cmp.Compare(a.ID, b.ID))
	})
}
