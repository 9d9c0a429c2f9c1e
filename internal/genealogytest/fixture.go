// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package genealogytest provides the reference family used across tests.
package genealogytest

import (
	"strconv"

	"github.com/cmatts/genealogy/pkg/genealogy/schema"
)

type personRow struct {
	name           string
	father, mother string
	born, died     int
}

// Person ids are the 1-based row numbers. Empty parents and zero years are
// unknown.
var peopleRows = []personRow{
	{"Mr Test", "16", "17", 1900, 1990},
	{"Mr Test1", "16", "17", 1890, 1990},
	{"Mr Test2", "16", "", 1900, 1990},
	{"Mr Test3", "16", "20", 1900, 1990},
	{"Mr Test4", "16", "21", 1900, 1990},
	{"Mr Test5", "16", "21", 1890, 1990},
	{"Mr Test6", "16", "", 1900, 1990},
	{"Mr Test10", "", "17", 1900, 1990},
	{"Mr Test11", "18", "17", 1900, 1990},
	{"Mr Test12", "19", "17", 1900, 1990},
	{"Mr Test13", "19", "17", 1890, 1990},
	{"Mr Test14", "", "17", 1900, 1990},
	{"Mr Test15", "14", "15", 1900, 1990},
	{"Mr Test16", "", "", 1880, 0},
	{"Mr Test17", "", "", 0, 1920},
	{"Mr Test20", "", "", 0, 0},
	{"Mr Test21", "", "", 0, 0},
	{"Mr Test22", "", "", 0, 0},
	{"Mr Test23", "", "", 0, 0},
	{"Mr Test24", "", "", 0, 0},
	{"Mr Test25", "", "", 0, 0},
	{"First Person", "", "", 0, 0},
}

type factRow struct {
	person      string
	year        int
	image       string
	source      string
	description string
}

var factRows = []factRow{
	{"1", 1901, "resource2", "", "fact1"},
	{"1", 1902, "resource1", "", "fact2"},
	{"1", 1892, "", "source1", "fact3"},
	{"2", 1852, "resource3", "", "fact4"},
	{"3", 1872, "resource4", "", "fact5"},
	{"21", 1872, "Original", "", "some facts"},
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optInt(i int) *int {
	if i == 0 {
		return nil
	}
	return &i
}

// Person returns fixture person i (1-based).
func Person(i int) schema.Person {
	r := peopleRows[i-1]
	return schema.Person{
		ID:          strconv.Itoa(i),
		Name:        r.name,
		YearOfBirth: optInt(r.born),
		YearOfDeath: optInt(r.died),
		FatherID:    optString(r.father),
		MotherID:    optString(r.mother),
	}
}

// People returns fixture persons with the given ids, in order.
func People(ids ...int) []schema.Person {
	out := make([]schema.Person, 0, len(ids))
	for _, i := range ids {
		out = append(out, Person(i))
	}
	return out
}

// AllPeople returns every fixture person ordered by id number.
func AllPeople() []schema.Person {
	out := make([]schema.Person, 0, len(peopleRows))
	for i := range peopleRows {
		out = append(out, Person(i+1))
	}
	return out
}

// PeopleCount is the number of fixture people.
func PeopleCount() int { return len(peopleRows) }

// Fact returns fixture fact i (1-based).
func Fact(i int) schema.Fact {
	r := factRows[i-1]
	return schema.Fact{
		ID:          strconv.Itoa(i),
		PersonID:    r.person,
		Year:        optInt(r.year),
		Image:       r.image,
		Source:      r.source,
		Description: r.description,
	}
}

// AllFacts returns every fixture fact ordered by id number.
func AllFacts() []schema.Fact {
	out := make([]schema.Fact, 0, len(factRows))
	for i := range factRows {
		out = append(out, Fact(i+1))
	}
	return out
}
