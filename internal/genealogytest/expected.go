// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package genealogytest

import (
	"github.com/cmatts/genealogy/pkg/genealogy/schema"
)

// Expectation is the resolved siblings of one fixture person.
type Expectation struct {
	ID   string
	Want *schema.Siblings
}

func siblings(full, byFather, byMother, parents []int) *schema.Siblings {
	return &schema.Siblings{
		FullSiblings: People(full...),
		StepByFather: People(byFather...),
		StepByMother: People(byMother...),
		Parents:      People(parents...),
	}
}

// Expected lists resolution results under the default options: the target
// is excluded and step siblings with an unknown other parent sort last.
func Expected() []Expectation {
	return []Expectation{
		{"1", siblings([]int{2}, []int{4, 6, 5, 3, 7}, []int{9, 11, 10, 12, 8}, []int{16, 17, 18, 19, 20, 21})},
		{"3", siblings([]int{7}, []int{2, 1, 4, 6, 5}, nil, []int{16, 17, 20, 21})},
		{"8", siblings([]int{12}, nil, []int{2, 1, 9, 11, 10}, []int{16, 17, 18, 19})},
		{"13", siblings(nil, nil, nil, []int{14, 15})},
		{"22", siblings(nil, nil, nil, nil)},
	}
}

// ExpectedLegacy lists resolution results with the target included among
// its full siblings and unknown other parents sorted first, the ordering
// selected by the legacy resolver options.
func ExpectedLegacy() []Expectation {
	return []Expectation{
		{"1", siblings([]int{2, 1}, []int{3, 7, 4, 6, 5}, []int{12, 8, 9, 11, 10}, []int{16, 17, 18, 19, 20, 21})},
		{"3", siblings([]int{3, 7}, []int{2, 1, 4, 6, 5}, nil, []int{16, 17, 20, 21})},
		{"8", siblings([]int{12, 8}, nil, []int{2, 1, 9, 11, 10}, []int{16, 17, 18, 19})},
	}
}
