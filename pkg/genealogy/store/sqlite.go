// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"

	"github.com/cmatts/genealogy/pkg/genealogy/schema"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS people (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	year_of_birth INTEGER,
	year_of_death INTEGER,
	father_id     TEXT,
	mother_id     TEXT
);
CREATE INDEX IF NOT EXISTS people_father ON people (father_id);
CREATE INDEX IF NOT EXISTS people_mother ON people (mother_id);
CREATE TABLE IF NOT EXISTS facts (
	id          TEXT PRIMARY KEY,
	person_id   TEXT NOT NULL,
	year        INTEGER,
	image       TEXT NOT NULL DEFAULT '',
	source      TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS facts_person ON facts (person_id);
`

const personColumns = `id, name, year_of_birth, year_of_death, father_id, mother_id`

// SQLiteStore is a ReadWriter backed by a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

var _ ReadWriter = &SQLiteStore{}

// NewSQLite opens (creating if needed) the database at path.
func NewSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("empty database path provided")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening sqlite")
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating tables")
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// parentColumn maps a role to its column. Only these two literals are ever
// interpolated into a query.
func parentColumn(r schema.Role) (string, error) {
	switch r {
	case schema.Father:
		return "father_id", nil
	case schema.Mother:
		return "mother_id", nil
	default:
		return "", errors.Errorf("unknown role: %d", r)
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPerson(row scanner) (*schema.Person, error) {
	var p schema.Person
	var born, died sql.NullInt64
	var father, mother sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &born, &died, &father, &mother); err != nil {
		return nil, err
	}
	p.YearOfBirth = fromNullInt(born)
	p.YearOfDeath = fromNullInt(died)
	p.FatherID = fromNullString(father)
	p.MotherID = fromNullString(mother)
	return &p, nil
}

func (s *SQLiteStore) queryPeople(ctx context.Context, query string, args ...any) ([]schema.Person, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []schema.Person{}
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scanning person")
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) FindPerson(ctx context.Context, id string) (*schema.Person, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+personColumns+` FROM people WHERE id = ?`, id)
	p, err := scanPerson(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("person", id)
	} else if err != nil {
		return nil, errors.Wrapf(err, "selecting person %s", id)
	}
	return p, nil
}

func (s *SQLiteStore) FindByParent(ctx context.Context, id string, role schema.Role) ([]schema.Person, error) {
	if id == "" {
		return []schema.Person{}, nil
	}
	col, err := parentColumn(role)
	if err != nil {
		return nil, err
	}
	people, err := s.queryPeople(ctx, `SELECT `+personColumns+` FROM people WHERE `+col+` = ?`, id)
	if err != nil {
		return nil, errors.Wrapf(err, "selecting people by %s", role)
	}
	return people, nil
}

func (s *SQLiteStore) FindPeople(ctx context.Context) ([]schema.Person, error) {
	people, err := s.queryPeople(ctx, `SELECT `+personColumns+` FROM people ORDER BY name, id`)
	if err != nil {
		return nil, errors.Wrap(err, "selecting people")
	}
	sortPeopleByName(people)
	return people, nil
}

func (s *SQLiteStore) FindFacts(ctx context.Context, personID string) ([]schema.Fact, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, person_id, year, image, source, description FROM facts WHERE person_id = ?`, personID)
	if err != nil {
		return nil, errors.Wrap(err, "selecting facts")
	}
	defer rows.Close()
	out := []schema.Fact{}
	for rows.Next() {
		var f schema.Fact
		var year sql.NullInt64
		if err := rows.Scan(&f.ID, &f.PersonID, &year, &f.Image, &f.Source, &f.Description); err != nil {
			return nil, errors.Wrap(err, "scanning fact")
		}
		f.Year = fromNullInt(year)
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "reading facts")
	}
	sortFacts(out)
	return out, nil
}

func (s *SQLiteStore) WritePerson(ctx context.Context, p schema.Person) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO people (`+personColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, toNullInt(p.YearOfBirth), toNullInt(p.YearOfDeath), toNullString(p.FatherID), toNullString(p.MotherID))
	return errors.Wrapf(err, "writing person %s", p.ID)
}

func (s *SQLiteStore) WriteFact(ctx context.Context, f schema.Fact) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO facts (id, person_id, year, image, source, description) VALUES (?, ?, ?, ?, ?, ?)`,
		f.ID, f.PersonID, toNullInt(f.Year), f.Image, f.Source, f.Description)
	return errors.Wrapf(err, "writing fact %s", f.ID)
}

func fromNullInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	i := int(n.Int64)
	return &i
}

func toNullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

func fromNullString(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	return &n.String
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
