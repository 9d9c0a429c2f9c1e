// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package genealogyservice

import (
	"context"
	"os"

	"github.com/cmatts/genealogy/pkg/genealogy/schema"
	"github.com/cmatts/genealogy/pkg/genealogy/store"
)

type ReaderDeps struct {
	Store store.Reader
}

// Person returns a single person record.
func Person(ctx context.Context, req schema.PersonRequest, deps *ReaderDeps) (*schema.Person, error) {
	p, err := deps.Store.FindPerson(ctx, req.ID)
	if err != nil {
		return nil, asStatus(err)
	}
	return p, nil
}

// People lists everyone ordered by name.
func People(ctx context.Context, _ schema.PeopleRequest, deps *ReaderDeps) (*schema.PeopleResponse, error) {
	people, err := deps.Store.FindPeople(ctx)
	if err != nil {
		return nil, asStatus(err)
	}
	return &schema.PeopleResponse{People: people}, nil
}

// Facts lists the facts recorded for a person ordered by year. An unknown
// person has no facts.
func Facts(ctx context.Context, req schema.FactsRequest, deps *ReaderDeps) (*schema.FactsResponse, error) {
	facts, err := deps.Store.FindFacts(ctx, req.PersonID)
	if err != nil {
		return nil, asStatus(err)
	}
	return &schema.FactsResponse{Facts: facts}, nil
}

type VersionDeps struct{}

func Version(ctx context.Context, _ schema.VersionRequest, _ *VersionDeps) (*schema.VersionResponse, error) {
	return &schema.VersionResponse{Version: os.Getenv("K_REVISION")}, nil
}
