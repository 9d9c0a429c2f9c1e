// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package siblings

import (
	"context"
	"slices"
	"sync"
	"testing"

	"github.com/cmatts/genealogy/internal/genealogytest"
	"github.com/cmatts/genealogy/pkg/genealogy/schema"
	"github.com/cmatts/genealogy/pkg/genealogy/store"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"
)

func fixtureStore() *store.Memory {
	return store.NewMemory(store.Snapshot{People: genealogytest.AllPeople(), Facts: genealogytest.AllFacts()})
}

func TestResolve(t *testing.T) {
	r := NewResolver(fixtureStore())
	for _, tc := range genealogytest.Expected() {
		t.Run(tc.ID, func(t *testing.T) {
			got, err := r.Resolve(context.Background(), tc.ID)
			if err != nil {
				t.Fatalf("Resolve(%s): %v", tc.ID, err)
			}
			if diff := cmp.Diff(tc.Want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Resolve(%s) returned diff (-want +got):\n%s", tc.ID, diff)
			}
		})
	}
}

func TestResolveLegacyOrdering(t *testing.T) {
	r := NewResolver(fixtureStore())
	r.Options = Options{UnknownParentFirst: true, IncludeTarget: true}
	for _, tc := range genealogytest.ExpectedLegacy() {
		t.Run(tc.ID, func(t *testing.T) {
			got, err := r.Resolve(context.Background(), tc.ID)
			if err != nil {
				t.Fatalf("Resolve(%s): %v", tc.ID, err)
			}
			if diff := cmp.Diff(tc.Want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Resolve(%s) returned diff (-want +got):\n%s", tc.ID, diff)
			}
		})
	}
}

func TestResolveUnknownPerson(t *testing.T) {
	got, err := NewResolver(fixtureStore()).Resolve(context.Background(), "99")
	if err != nil {
		t.Fatalf("Resolve(99): %v", err)
	}
	if diff := cmp.Diff(schema.NewSiblings(), got); diff != "" {
		t.Errorf("Resolve(99) returned diff (-want +got):\n%s", diff)
	}
}

func TestResolveDanglingReference(t *testing.T) {
	s := fixtureStore()
	ctx := context.Background()
	// Mother 17 is referenced by many people but no longer exists.
	snap, err := store.Dump(ctx, s)
	if err != nil {
		t.Fatalf("Dump(): %v", err)
	}
	snap.People = slices.DeleteFunc(snap.People, func(p schema.Person) bool { return p.ID == "17" })
	_, err = NewResolver(store.NewMemory(*snap)).Resolve(ctx, "1")
	var dangling *DanglingReferenceError
	if !errors.As(err, &dangling) {
		t.Fatalf("Resolve(1) = %v, want DanglingReferenceError", err)
	}
	if dangling.ID != "17" {
		t.Errorf("DanglingReferenceError.ID = %q, want %q", dangling.ID, "17")
	}
}

// faultyStore fails lookups for chosen ids and counts parent queries.
type faultyStore struct {
	*store.Memory
	failFind    map[string]error
	failByRole  map[schema.Role]error
	mu          sync.Mutex
	parentCalls []string
}

func (f *faultyStore) FindPerson(ctx context.Context, id string) (*schema.Person, error) {
	if err := f.failFind[id]; err != nil {
		return nil, err
	}
	return f.Memory.FindPerson(ctx, id)
}

func (f *faultyStore) FindByParent(ctx context.Context, id string, role schema.Role) ([]schema.Person, error) {
	f.mu.Lock()
	f.parentCalls = append(f.parentCalls, role.String()+":"+id)
	f.mu.Unlock()
	if err := f.failByRole[role]; err != nil {
		return nil, err
	}
	return f.Memory.FindByParent(ctx, id, role)
}

func TestResolveStoreErrors(t *testing.T) {
	boom := errors.New("backend unavailable")
	tests := []struct {
		name  string
		store *faultyStore
	}{
		{"target lookup", &faultyStore{Memory: fixtureStore(), failFind: map[string]error{"1": boom}}},
		{"parent lookup", &faultyStore{Memory: fixtureStore(), failFind: map[string]error{"20": boom}}},
		{"mother query", &faultyStore{Memory: fixtureStore(), failByRole: map[schema.Role]error{schema.Mother: boom}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewResolver(tc.store).Resolve(context.Background(), "1")
			if !errors.Is(err, boom) {
				t.Errorf("Resolve(1) = %v, want wrapped %v", err, boom)
			}
			var dangling *DanglingReferenceError
			if errors.As(err, &dangling) {
				t.Errorf("Resolve(1) = %v, infrastructure failure reported as dangling reference", err)
			}
		})
	}
}

func TestResolveSkipsUnknownParentQueries(t *testing.T) {
	tests := []struct {
		id   string
		want []string
	}{
		{"1", []string{"father:16", "mother:17"}},
		{"3", []string{"father:16"}},
		{"8", []string{"mother:17"}},
		{"22", nil},
	}
	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			s := &faultyStore{Memory: fixtureStore()}
			if _, err := NewResolver(s).Resolve(context.Background(), tc.id); err != nil {
				t.Fatalf("Resolve(%s): %v", tc.id, err)
			}
			slices.Sort(s.parentCalls)
			if diff := cmp.Diff(tc.want, s.parentCalls); diff != "" {
				t.Errorf("parent queries diff (-want +got):\n%s", diff)
			}
		})
	}
}

// TestResolveProperties checks the partition, coverage and ordering
// properties for every fixture person.
func TestResolveProperties(t *testing.T) {
	ctx := context.Background()
	s := fixtureStore()
	r := NewResolver(s)
	for _, target := range genealogytest.AllPeople() {
		t.Run(target.ID, func(t *testing.T) {
			got, err := r.Resolve(ctx, target.ID)
			if err != nil {
				t.Fatalf("Resolve(%s): %v", target.ID, err)
			}
			seen := make(map[string]bool)
			for _, list := range [][]schema.Person{got.FullSiblings, got.StepByFather, got.StepByMother} {
				for _, p := range list {
					if p.ID == target.ID {
						t.Errorf("target %s listed as its own sibling", target.ID)
					}
					if seen[p.ID] {
						t.Errorf("%s appears in more than one sibling list", p.ID)
					}
					seen[p.ID] = true
				}
			}
			want := make(map[string]bool)
			for _, role := range schema.Roles {
				found, err := s.FindByParent(ctx, role.Of(target), role)
				if err != nil {
					t.Fatalf("FindByParent(): %v", err)
				}
				for _, p := range found {
					if p.ID != target.ID {
						want[p.ID] = true
					}
				}
			}
			if diff := cmp.Diff(want, seen, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("sibling ids differ from candidate pool (-want +got):\n%s", diff)
			}
			assertSorted(t, "fullSiblings", got.FullSiblings, fullKey)
			assertSorted(t, "stepByFather", got.StepByFather, stepKey(schema.Mother, false))
			assertSorted(t, "stepByMother", got.StepByMother, stepKey(schema.Father, false))
			for i := 1; i < len(got.Parents); i++ {
				if CompareIDs(got.Parents[i-1].ID, got.Parents[i].ID) >= 0 {
					t.Errorf("parents not strictly ordered at %d: %s, %s", i, got.Parents[i-1].ID, got.Parents[i].ID)
				}
			}
		})
	}
}

func assertSorted(t *testing.T, name string, people []schema.Person, key func(schema.Person) sortKey) {
	t.Helper()
	for i := 1; i < len(people); i++ {
		if compareKeys(key(people[i-1]), key(people[i])) > 0 {
			t.Errorf("%s out of order at %d: %s after %s", name, i, people[i].ID, people[i-1].ID)
		}
	}
}

func TestResolveWithCachedStore(t *testing.T) {
	r := NewResolver(store.NewCached(fixtureStore()))
	for _, tc := range genealogytest.Expected() {
		got, err := r.Resolve(context.Background(), tc.ID)
		if err != nil {
			t.Fatalf("Resolve(%s): %v", tc.ID, err)
		}
		if diff := cmp.Diff(tc.Want, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("Resolve(%s) returned diff (-want +got):\n%s", tc.ID, diff)
		}
	}
}
