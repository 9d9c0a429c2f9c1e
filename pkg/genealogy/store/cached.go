// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"

	"github.com/cmatts/genealogy/internal/cache"
	"github.com/cmatts/genealogy/pkg/genealogy/schema"
)

// Cached wraps a ReadWriter and memoizes FindPerson. Parent records are
// looked up once per sibling query, so repeated queries within one family
// hit the cache. Writes through Cached invalidate the written id.
type Cached struct {
	ReadWriter
	people cache.Coalescing[string, schema.Person]
}

var _ ReadWriter = &Cached{}

func NewCached(rw ReadWriter) *Cached {
	return &Cached{ReadWriter: rw}
}

type personResult struct {
	p   schema.Person
	err error
}

// FindPerson returns the cached record for id. Concurrent callers share one
// backend read, which runs detached from any single caller's cancellation;
// each caller still stops waiting when its own ctx is done.
func (c *Cached) FindPerson(ctx context.Context, id string) (*schema.Person, error) {
	fetchCtx := context.WithoutCancel(ctx)
	done := make(chan personResult, 1)
	go func() {
		p, err := c.people.GetOrSet(id, func() (schema.Person, error) {
			p, err := c.ReadWriter.FindPerson(fetchCtx, id)
			if err != nil {
				return schema.Person{}, err
			}
			return *p, nil
		})
		done <- personResult{p, err}
	}()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return nil, r.err
		}
		return &r.p, nil
	}
}

func (c *Cached) WritePerson(ctx context.Context, p schema.Person) error {
	defer c.people.Del(p.ID)
	return c.ReadWriter.WritePerson(ctx, p)
}
