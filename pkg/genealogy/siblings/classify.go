// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package siblings

import (
	"github.com/cmatts/genealogy/pkg/genealogy/schema"
)

// Options controls the ordering of the classified lists.
type Options struct {
	// UnknownParentFirst sorts step siblings whose other parent is unknown
	// before all step siblings with a known other parent. By default they
	// sort last.
	UnknownParentFirst bool
	// IncludeTarget lists the target among its own full siblings, as the
	// legacy datastore listings did.
	IncludeTarget bool
}

type class int

const (
	unrelated class = iota
	full
	stepByFather
	stepByMother
)

func sameParent(r schema.Role, a, b schema.Person) bool {
	return r.Of(a) == r.Of(b)
}

func classify(target, c schema.Person) class {
	father := sameParent(schema.Father, target, c)
	mother := sameParent(schema.Mother, target, c)
	switch {
	case father && mother:
		return full
	case father:
		return stepByFather
	case mother:
		return stepByMother
	default:
		return unrelated
	}
}

// Classify partitions pool into full and step siblings of target and sorts
// each group. Duplicate ids and candidates sharing neither parent are
// dropped, as is the target unless opts.IncludeTarget is set. Parents is
// left empty.
//
// Two unknown parents in the same slot compare equal, so people with no
// recorded parents are full siblings of each other.
func Classify(target schema.Person, pool []schema.Person, opts Options) *schema.Siblings {
	s := schema.NewSiblings()
	seen := map[string]bool{target.ID: true}
	if opts.IncludeTarget {
		s.FullSiblings = append(s.FullSiblings, target)
	}
	for _, c := range pool {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		switch classify(target, c) {
		case full:
			s.FullSiblings = append(s.FullSiblings, c)
		case stepByFather:
			s.StepByFather = append(s.StepByFather, c)
		case stepByMother:
			s.StepByMother = append(s.StepByMother, c)
		}
	}
	sortBy(s.FullSiblings, fullKey)
	sortBy(s.StepByFather, stepKey(schema.Mother, opts.UnknownParentFirst))
	sortBy(s.StepByMother, stepKey(schema.Father, opts.UnknownParentFirst))
	return s
}
