// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package siblings

import (
	"testing"

	"github.com/cmatts/genealogy/pkg/genealogy/schema"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func person(id, father, mother string, born int) schema.Person {
	p := schema.Person{ID: id, Name: "p" + id}
	if father != "" {
		p.FatherID = schema.Ptr(father)
	}
	if mother != "" {
		p.MotherID = schema.Ptr(mother)
	}
	if born != 0 {
		p.YearOfBirth = schema.Ptr(born)
	}
	return p
}

func ids(people []schema.Person) []string {
	out := []string{}
	for _, p := range people {
		out = append(out, p.ID)
	}
	return out
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		target       schema.Person
		pool         []schema.Person
		opts         Options
		wantFull     []string
		wantByFather []string
		wantByMother []string
	}{
		{
			name:   "partition by shared parent",
			target: person("1", "f", "m", 1900),
			pool: []schema.Person{
				person("1", "f", "m", 1900),
				person("2", "f", "m", 1890),
				person("3", "f", "x", 1900),
				person("4", "y", "m", 1900),
			},
			wantFull:     []string{"2"},
			wantByFather: []string{"3"},
			wantByMother: []string{"4"},
		},
		{
			name:   "unknown parents compare equal",
			target: person("a", "", "", 0),
			pool: []schema.Person{
				person("b", "", "", 0),
				person("c", "f", "", 0),
				person("d", "", "m", 0),
			},
			wantFull:     []string{"b"},
			wantByFather: []string{"d"},
			wantByMother: []string{"c"},
		},
		{
			name:   "candidate sharing neither parent is discarded",
			target: person("1", "f", "m", 0),
			pool: []schema.Person{
				person("2", "g", "n", 0),
				person("3", "", "", 0),
				person("4", "f", "m", 0),
			},
			wantFull: []string{"4"},
		},
		{
			name:   "duplicates keep first occurrence",
			target: person("1", "f", "m", 0),
			pool: []schema.Person{
				person("2", "f", "m", 1900),
				person("2", "f", "m", 1800),
				person("3", "f", "m", 1850),
			},
			wantFull: []string{"3", "2"},
		},
		{
			name:   "unknown birth year sorts last then by id",
			target: person("1", "f", "m", 0),
			pool: []schema.Person{
				person("b", "f", "m", 0),
				person("a", "f", "m", 0),
				person("c", "f", "m", 1950),
				person("d", "f", "m", 1900),
			},
			wantFull: []string{"d", "c", "a", "b"},
		},
		{
			name:   "ids order lexically",
			target: person("1", "f", "m", 0),
			pool: []schema.Person{
				person("8", "f", "m", 1900),
				person("12", "f", "m", 1900),
			},
			wantFull: []string{"12", "8"},
		},
		{
			name:   "step siblings group by other parent, unknown last",
			target: person("1", "16", "17", 1900),
			pool: []schema.Person{
				person("3", "16", "", 1900),
				person("4", "16", "20", 1900),
				person("5", "16", "21", 1900),
				person("6", "16", "21", 1890),
				person("7", "16", "", 1900),
				person("9", "16", "21", 0),
			},
			wantByFather: []string{"4", "6", "5", "9", "3", "7"},
		},
		{
			name:   "step siblings with unknown other parent first",
			target: person("1", "16", "17", 1900),
			pool: []schema.Person{
				person("3", "16", "", 1900),
				person("4", "16", "20", 1900),
				person("5", "16", "21", 1900),
				person("6", "16", "21", 1890),
				person("7", "16", "", 1900),
			},
			opts:         Options{UnknownParentFirst: true},
			wantByFather: []string{"3", "7", "4", "6", "5"},
		},
		{
			name:   "step by mother groups by father",
			target: person("1", "16", "17", 1900),
			pool: []schema.Person{
				person("8", "", "17", 1900),
				person("9", "18", "17", 1900),
				person("10", "19", "17", 1900),
				person("11", "19", "17", 1890),
				person("12", "", "17", 1900),
			},
			wantByMother: []string{"9", "11", "10", "12", "8"},
		},
		{
			name:     "include target",
			target:   person("8", "", "17", 1900),
			pool:     []schema.Person{person("12", "", "17", 1900), person("8", "", "17", 1900)},
			opts:     Options{IncludeTarget: true},
			wantFull: []string{"12", "8"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.target, tc.pool, tc.opts)
			for _, c := range []struct {
				list string
				want []string
				got  []schema.Person
			}{
				{"FullSiblings", tc.wantFull, got.FullSiblings},
				{"StepByFather", tc.wantByFather, got.StepByFather},
				{"StepByMother", tc.wantByMother, got.StepByMother},
			} {
				if diff := cmp.Diff(c.want, ids(c.got), cmpopts.EquateEmpty()); diff != "" {
					t.Errorf("%s diff (-want +got):\n%s", c.list, diff)
				}
			}
			if len(got.Parents) != 0 {
				t.Errorf("Classify() set Parents = %v, want empty", got.Parents)
			}
		})
	}
}

func TestCompareKeysIsTotal(t *testing.T) {
	people := []schema.Person{
		person("1", "16", "", 0),
		person("2", "16", "", 1900),
		person("3", "16", "20", 0),
		person("4", "16", "20", 1900),
		person("5", "16", "21", 1890),
		person("12", "16", "21", 1890),
	}
	for _, unknownFirst := range []bool{false, true} {
		key := stepKey(schema.Mother, unknownFirst)
		for _, a := range people {
			if compareKeys(key(a), key(a)) != 0 {
				t.Errorf("compareKeys(%s, %s) != 0", a.ID, a.ID)
			}
			for _, b := range people {
				ab, ba := compareKeys(key(a), key(b)), compareKeys(key(b), key(a))
				if ab != -ba {
					t.Errorf("compareKeys not antisymmetric for %s, %s: %d, %d", a.ID, b.ID, ab, ba)
				}
				if a.ID != b.ID && ab == 0 {
					t.Errorf("compareKeys(%s, %s) = 0 for distinct ids", a.ID, b.ID)
				}
				for _, c := range people {
					if ab < 0 && compareKeys(key(b), key(c)) < 0 && compareKeys(key(a), key(c)) >= 0 {
						t.Errorf("compareKeys not transitive for %s < %s < %s", a.ID, b.ID, c.ID)
					}
				}
			}
		}
	}
}
