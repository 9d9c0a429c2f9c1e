// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"github.com/pkg/errors"
)

// SiblingsRequest asks for the siblings of a single person.
type SiblingsRequest struct {
	ID string `form:"id,required"`
	// UnknownParentFirst orders step siblings with an unknown other parent
	// ahead of those whose other parent is known.
	UnknownParentFirst bool `form:"unknown_parent_first"`
	// IncludeTarget lists the requested person among its own full siblings.
	IncludeTarget bool `form:"include_target"`
}

func (r SiblingsRequest) Validate() error {
	if r.ID == "" {
		return errors.New("empty id")
	}
	return nil
}

// PersonRequest asks for a single person record.
type PersonRequest struct {
	ID string `form:"id,required"`
}

func (r PersonRequest) Validate() error {
	if r.ID == "" {
		return errors.New("empty id")
	}
	return nil
}

// PeopleRequest asks for every person, ordered by name.
type PeopleRequest struct{}

func (PeopleRequest) Validate() error { return nil }

// PeopleResponse lists people ordered by name.
type PeopleResponse struct {
	People []Person `json:"people"`
}

// FactsRequest asks for the facts attached to a person.
type FactsRequest struct {
	PersonID string `form:"person,required"`
}

func (r FactsRequest) Validate() error {
	if r.PersonID == "" {
		return errors.New("empty person id")
	}
	return nil
}

// FactsResponse lists facts ordered by year.
type FactsResponse struct {
	Facts []Fact `json:"facts"`
}

type VersionRequest struct{}

func (VersionRequest) Validate() error { return nil }

type VersionResponse struct {
	Version string `json:"version"`
}
