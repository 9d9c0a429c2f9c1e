// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package schema defines the genealogy records and the messages exchanged
// between the genealogy service and its clients.
package schema

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrNotFound is returned by stores when no record exists for an id.
var ErrNotFound = errors.New("not found")

// Person is a single genealogical record.
//
// A nil FatherID or MotherID means the parent is unknown, not absent.
type Person struct {
	ID          string  `firestore:"id" json:"id" yaml:"id" toml:"id"`
	Name        string  `firestore:"name" json:"name" yaml:"name" toml:"name"`
	YearOfBirth *int    `firestore:"yearOfBirth" json:"yearOfBirth,omitempty" yaml:"yearOfBirth,omitempty" toml:"yearOfBirth,omitempty"`
	YearOfDeath *int    `firestore:"yearOfDeath" json:"yearOfDeath,omitempty" yaml:"yearOfDeath,omitempty" toml:"yearOfDeath,omitempty"`
	FatherID    *string `firestore:"fatherId" json:"fatherId,omitempty" yaml:"fatherId,omitempty" toml:"fatherId,omitempty"`
	MotherID    *string `firestore:"motherId" json:"motherId,omitempty" yaml:"motherId,omitempty" toml:"motherId,omitempty"`
}

// ParentIDs returns the known parent ids of p, father first.
func (p Person) ParentIDs() []string {
	var ids []string
	for _, r := range Roles {
		if id := r.Of(p); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Fact is a dated annotation attached to a person.
type Fact struct {
	ID          string `firestore:"id" json:"id" yaml:"id" toml:"id"`
	PersonID    string `firestore:"personId" json:"personId" yaml:"personId" toml:"personId"`
	Year        *int   `firestore:"year" json:"year,omitempty" yaml:"year,omitempty" toml:"year,omitempty"`
	Image       string `firestore:"image" json:"image,omitempty" yaml:"image,omitempty" toml:"image,omitempty"`
	Source      string `firestore:"source" json:"source,omitempty" yaml:"source,omitempty" toml:"source,omitempty"`
	Description string `firestore:"description" json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
}

// Role identifies one of the two parent slots of a Person.
type Role int

const (
	Father Role = iota
	Mother
)

// Roles lists both parent slots in canonical order.
var Roles = []Role{Father, Mother}

// Field returns the attribute name under which the parent id is stored.
func (r Role) Field() string {
	switch r {
	case Father:
		return "fatherId"
	case Mother:
		return "motherId"
	default:
		panic(errors.Errorf("unknown role: %d", r))
	}
}

func (r Role) String() string {
	return strings.TrimSuffix(r.Field(), "Id")
}

// Of returns the parent id p holds in slot r, or "" when unknown.
func (r Role) Of(p Person) string {
	var id *string
	switch r {
	case Father:
		id = p.FatherID
	case Mother:
		id = p.MotherID
	}
	if id == nil {
		return ""
	}
	return *id
}

// ParseRole converts "father" or "mother" into a Role.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(s) {
	case "father":
		return Father, nil
	case "mother":
		return Mother, nil
	default:
		return 0, errors.Errorf("unknown role: %q", s)
	}
}

// Siblings is the classified, ordered sibling set of one person.
type Siblings struct {
	FullSiblings []Person `json:"fullSiblings"`
	StepByFather []Person `json:"stepByFather"`
	StepByMother []Person `json:"stepByMother"`
	Parents      []Person `json:"parents"`
}

// NewSiblings returns a Siblings value with all four lists empty.
func NewSiblings() *Siblings {
	return &Siblings{
		FullSiblings: []Person{},
		StepByFather: []Person{},
		StepByMother: []Person{},
		Parents:      []Person{},
	}
}

// Empty reports whether no siblings or parents were found.
func (s Siblings) Empty() bool {
	return len(s.FullSiblings) == 0 && len(s.StepByFather) == 0 && len(s.StepByMother) == 0 && len(s.Parents) == 0
}

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T {
	return &v
}
