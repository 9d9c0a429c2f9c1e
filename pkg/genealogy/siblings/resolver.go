// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package siblings resolves the full and step siblings of a person.
package siblings

import (
	"context"
	"fmt"
	"slices"

	"github.com/cmatts/genealogy/pkg/genealogy/schema"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Store is the read access the resolver needs from a person store.
type Store interface {
	// FindPerson returns an error wrapping schema.ErrNotFound when no person
	// has the given id.
	FindPerson(ctx context.Context, id string) (*schema.Person, error)
	// FindByParent returns everyone whose parent in slot role is id. An empty
	// id matches nobody.
	FindByParent(ctx context.Context, id string, role schema.Role) ([]schema.Person, error)
}

// DanglingReferenceError reports a parent id that no stored person has.
type DanglingReferenceError struct {
	ID string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("dangling parent reference: no person with id %q", e.ID)
}

const defaultConcurrency = 8

// Resolver finds the siblings of people held in a Store.
type Resolver struct {
	Store Store
	// Concurrency bounds the number of parallel parent lookups.
	Concurrency int
	Options     Options
}

// NewResolver creates a Resolver with default options.
func NewResolver(s Store) *Resolver {
	return &Resolver{Store: s, Concurrency: defaultConcurrency}
}

// Resolve returns the siblings and parents of the person with the given id.
//
// An unknown id yields an empty result. A parent id referenced by a
// candidate that cannot be found yields a *DanglingReferenceError.
func (r *Resolver) Resolve(ctx context.Context, id string) (*schema.Siblings, error) {
	target, err := r.Store.FindPerson(ctx, id)
	if errors.Is(err, schema.ErrNotFound) {
		return schema.NewSiblings(), nil
	} else if err != nil {
		return nil, errors.Wrapf(err, "finding person %s", id)
	}
	pool, err := r.candidates(ctx, *target)
	if err != nil {
		return nil, err
	}
	parents, err := r.parents(ctx, append(pool, *target))
	if err != nil {
		return nil, err
	}
	s := Classify(*target, pool, r.Options)
	s.Parents = parents
	return s, nil
}

// candidates returns the deduplicated union of everyone sharing the
// target's father or mother.
func (r *Resolver) candidates(ctx context.Context, target schema.Person) ([]schema.Person, error) {
	results := make([][]schema.Person, len(schema.Roles))
	eg, eCtx := errgroup.WithContext(ctx)
	for i, role := range schema.Roles {
		parent := role.Of(target)
		if parent == "" {
			continue
		}
		eg.Go(func() error {
			found, err := r.Store.FindByParent(eCtx, parent, role)
			if err != nil {
				return errors.Wrapf(err, "finding people by %s %s", role, parent)
			}
			results[i] = found
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return union(results...), nil
}

func union(lists ...[]schema.Person) []schema.Person {
	var out []schema.Person
	seen := make(map[string]bool)
	for _, l := range lists {
		for _, p := range l {
			if !seen[p.ID] {
				seen[p.ID] = true
				out = append(out, p)
			}
		}
	}
	return out
}

// parents resolves every distinct parent id referenced by people.
func (r *Resolver) parents(ctx context.Context, people []schema.Person) ([]schema.Person, error) {
	var ids []string
	for _, p := range people {
		for _, id := range p.ParentIDs() {
			if !slices.Contains(ids, id) {
				ids = append(ids, id)
			}
		}
	}
	parents := make([]schema.Person, len(ids))
	eg, eCtx := errgroup.WithContext(ctx)
	eg.SetLimit(max(r.Concurrency, 1))
	for i, id := range ids {
		eg.Go(func() error {
			p, err := r.Store.FindPerson(eCtx, id)
			if errors.Is(err, schema.ErrNotFound) {
				return &DanglingReferenceError{ID: id}
			} else if err != nil {
				return errors.Wrapf(err, "finding parent %s", id)
			}
			parents[i] = *p
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	sortByID(parents)
	return parents, nil
}
