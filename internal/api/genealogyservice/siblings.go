// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package genealogyservice implements the genealogy API actions.
package genealogyservice

import (
	"context"

	"github.com/cmatts/genealogy/internal/api"
	"github.com/cmatts/genealogy/pkg/genealogy/schema"
	"github.com/cmatts/genealogy/pkg/genealogy/siblings"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type SiblingsDeps struct {
	Store siblings.Store
	// Concurrency bounds parallel parent lookups. Zero uses the resolver default.
	Concurrency int
}

// Siblings resolves the full and step siblings of the requested person.
// An unknown person yields empty lists rather than an error.
func Siblings(ctx context.Context, req schema.SiblingsRequest, deps *SiblingsDeps) (*schema.Siblings, error) {
	r := siblings.NewResolver(deps.Store)
	if deps.Concurrency > 0 {
		r.Concurrency = deps.Concurrency
	}
	r.Options = siblings.Options{
		UnknownParentFirst: req.UnknownParentFirst,
		IncludeTarget:      req.IncludeTarget,
	}
	s, err := r.Resolve(ctx, req.ID)
	if err != nil {
		return nil, asStatus(err)
	}
	return s, nil
}

// asStatus maps resolution and store failures onto status codes.
func asStatus(err error) error {
	var dangling *siblings.DanglingReferenceError
	switch {
	case errors.As(err, &dangling):
		return api.AsStatus(codes.DataLoss, err)
	case errors.Is(err, schema.ErrNotFound):
		return api.AsStatus(codes.NotFound, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(errors.Cause(err)).Err()
	default:
		return api.AsStatus(codes.Internal, err)
	}
}
