// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"sync"

	"github.com/cmatts/genealogy/pkg/genealogy/schema"
)

// Memory is an in-process ReadWriter.
type Memory struct {
	mu     sync.RWMutex
	people map[string]schema.Person
	facts  map[string]schema.Fact
}

var _ ReadWriter = &Memory{}

// NewMemory creates a Memory store holding the records of snap.
func NewMemory(snap Snapshot) *Memory {
	m := &Memory{
		people: make(map[string]schema.Person),
		facts:  make(map[string]schema.Fact),
	}
	for _, p := range snap.People {
		m.people[p.ID] = p
	}
	for _, f := range snap.Facts {
		m.facts[f.ID] = f
	}
	return m
}

func (m *Memory) FindPerson(_ context.Context, id string) (*schema.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.people[id]
	if !ok {
		return nil, notFound("person", id)
	}
	return &p, nil
}

func (m *Memory) FindByParent(_ context.Context, id string, role schema.Role) ([]schema.Person, error) {
	if id == "" {
		return []schema.Person{}, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []schema.Person{}
	for _, p := range m.people {
		if role.Of(p) == id {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *Memory) FindPeople(context.Context) ([]schema.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]schema.Person, 0, len(m.people))
	for _, p := range m.people {
		out = append(out, p)
	}
	sortPeopleByName(out)
	return out, nil
}

func (m *Memory) FindFacts(_ context.Context, personID string) ([]schema.Fact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []schema.Fact{}
	for _, f := range m.facts {
		if f.PersonID == personID {
			out = append(out, f)
		}
	}
	sortFacts(out)
	return out, nil
}

func (m *Memory) WritePerson(_ context.Context, p schema.Person) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.people[p.ID] = p
	return nil
}

func (m *Memory) WriteFact(_ context.Context, f schema.Fact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.facts[f.ID] = f
	return nil
}
