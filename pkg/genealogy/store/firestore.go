// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/cmatts/genealogy/pkg/genealogy/schema"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	peopleCollection = "people"
	factsCollection  = "facts"
)

// FirestoreStore is a ReadWriter backed by two Firestore collections.
type FirestoreStore struct {
	client *firestore.Client
	prefix string
}

var _ ReadWriter = &FirestoreStore{}

// NewFirestore creates a FirestoreStore for the given project. Collection
// names are prefixed with prefix.
//
// Setting FIRESTORE_EMULATOR_HOST points the client at a local emulator.
func NewFirestore(ctx context.Context, project, prefix string) (*FirestoreStore, error) {
	if project == "" {
		return nil, errors.New("empty project provided")
	}
	client, err := firestore.NewClient(ctx, project)
	if err != nil {
		return nil, errors.Wrap(err, "creating firestore client")
	}
	return NewFirestoreFromClient(client, prefix), nil
}

// NewFirestoreFromClient wraps an existing client.
func NewFirestoreFromClient(client *firestore.Client, prefix string) *FirestoreStore {
	return &FirestoreStore{client: client, prefix: prefix}
}

func (f *FirestoreStore) people() *firestore.CollectionRef {
	return f.client.Collection(f.prefix + peopleCollection)
}

func (f *FirestoreStore) facts() *firestore.CollectionRef {
	return f.client.Collection(f.prefix + factsCollection)
}

// Close releases the underlying client.
func (f *FirestoreStore) Close() error {
	return f.client.Close()
}

func (f *FirestoreStore) FindPerson(ctx context.Context, id string) (*schema.Person, error) {
	if id == "" {
		return nil, notFound("person", id)
	}
	doc, err := f.people().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, notFound("person", id)
	} else if err != nil {
		return nil, errors.Wrapf(err, "getting person %s", id)
	}
	var p schema.Person
	if err := doc.DataTo(&p); err != nil {
		return nil, errors.Wrapf(err, "decoding person %s", id)
	}
	if p.ID == "" {
		p.ID = doc.Ref.ID
	}
	return &p, nil
}

func (f *FirestoreStore) FindByParent(ctx context.Context, id string, role schema.Role) ([]schema.Person, error) {
	if id == "" {
		return []schema.Person{}, nil
	}
	q := f.people().Where(role.Field(), "==", id)
	people, err := collect[schema.Person](ctx, q)
	if err != nil {
		return nil, errors.Wrapf(err, "querying people by %s", role)
	}
	return people, nil
}

func (f *FirestoreStore) FindPeople(ctx context.Context) ([]schema.Person, error) {
	people, err := collect[schema.Person](ctx, f.people().OrderBy("name", firestore.Asc))
	if err != nil {
		return nil, errors.Wrap(err, "querying people")
	}
	sortPeopleByName(people)
	return people, nil
}

func (f *FirestoreStore) FindFacts(ctx context.Context, personID string) ([]schema.Fact, error) {
	if personID == "" {
		return []schema.Fact{}, nil
	}
	facts, err := collect[schema.Fact](ctx, f.facts().Where("personId", "==", personID))
	if err != nil {
		return nil, errors.Wrap(err, "querying facts")
	}
	sortFacts(facts)
	return facts, nil
}

func (f *FirestoreStore) WritePerson(ctx context.Context, p schema.Person) error {
	_, err := f.people().Doc(p.ID).Set(ctx, p)
	return errors.Wrapf(err, "setting person %s", p.ID)
}

func (f *FirestoreStore) WriteFact(ctx context.Context, fact schema.Fact) error {
	_, err := f.facts().Doc(fact.ID).Set(ctx, fact)
	return errors.Wrapf(err, "setting fact %s", fact.ID)
}

// collect runs q and decodes every matching document.
func collect[T any](ctx context.Context, q firestore.Query) ([]T, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()
	out := []T{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		var t T
		if err := doc.DataTo(&t); err != nil {
			return nil, errors.Wrapf(err, "decoding %s", doc.Ref.ID)
		}
		out = append(out, t)
	}
}
