// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package siblings

import (
	"cmp"
	"slices"
	"strings"

	"github.com/cmatts/genealogy/pkg/genealogy/schema"
)

// sortKey is the full ordering tuple of a person within one sibling list.
// Unknown values are encoded in the bucket fields so that a plain
// lexicographic comparison of the tuple gives the required order.
type sortKey struct {
	otherBucket  int    // position of the other parent's bucket
	otherID      string // other parent id, "" when unknown
	birthUnknown int    // 1 when year of birth is unknown
	birth        int
	id           string
}

const (
	bucketUnknownFirst = 0
	bucketKnown        = 1
	bucketUnknownLast  = 2
)

func compareKeys(a, b sortKey) int {
	return cmp.Or(
		cmp.Compare(a.otherBucket, b.otherBucket),
		CompareIDs(a.otherID, b.otherID),
		cmp.Compare(a.birthUnknown, b.birthUnknown),
		cmp.Compare(a.birth, b.birth),
		CompareIDs(a.id, b.id),
	)
}

// CompareIDs is the total order on person ids: lexical byte order.
func CompareIDs(a, b string) int {
	return strings.Compare(a, b)
}

func birthKey(p schema.Person) sortKey {
	k := sortKey{id: p.ID}
	if p.YearOfBirth == nil {
		k.birthUnknown = 1
	} else {
		k.birth = *p.YearOfBirth
	}
	return k
}

// fullKey orders full siblings by year of birth, then id.
func fullKey(p schema.Person) sortKey {
	return birthKey(p)
}

// stepKey orders step siblings by the parent they do not share with the
// target, then by year of birth and id.
func stepKey(other schema.Role, unknownFirst bool) func(schema.Person) sortKey {
	return func(p schema.Person) sortKey {
		k := birthKey(p)
		switch id := other.Of(p); {
		case id != "":
			k.otherBucket, k.otherID = bucketKnown, id
		case unknownFirst:
			k.otherBucket = bucketUnknownFirst
		default:
			k.otherBucket = bucketUnknownLast
		}
		return k
	}
}

func sortBy(people []schema.Person, key func(schema.Person) sortKey) {
	slices.SortStableFunc(people, func(a, b schema.Person) int {
		return compareKeys(key(a), key(b))
	})
}

func sortByID(people []schema.Person) {
	slices.SortStableFunc(people, func(a, b schema.Person) int {
		return CompareIDs(a.ID, b.ID)
	})
}
