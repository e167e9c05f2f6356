package registry

import (
	"context"
	"database/sql"

	"attestguard/pkg/serviceerror"
)

const serviceName = "SQL Database"

// PostgresStore reads the doctors_riziv table.
//
// Schema:
//
//	CREATE TABLE doctors_riziv (
//	    riziv_number TEXT PRIMARY KEY,
//	    first_name   TEXT,
//	    last_name    TEXT NOT NULL,
//	    city         TEXT NOT NULL DEFAULT ''
//	)
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed registry store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) LookupByRiziv(ctx context.Context, rizivNumber string) (*Entry, error) {
	var entry Entry
	var firstName sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT riziv_number, first_name, last_name, city FROM doctors_riziv WHERE riziv_number = $1`,
		rizivNumber,
	).Scan(&entry.RizivNumber, &firstName, &entry.LastName, &entry.City)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, serviceerror.Classify(serviceName, err)
	}
	entry.FirstName = firstName.String
	return &entry, nil
}

func (s *PostgresStore) SearchByLastName(ctx context.Context, lastName string) ([]*Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT riziv_number, first_name, last_name, city FROM doctors_riziv WHERE last_name ILIKE '%' || $1 || '%'`,
		lastName,
	)
	if err != nil {
		return nil, serviceerror.Classify(serviceName, err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (s *PostgresStore) SearchByLastNameAndCity(ctx context.Context, lastName, city string) ([]*Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT riziv_number, first_name, last_name, city FROM doctors_riziv
		 WHERE last_name ILIKE '%' || $1 || '%' AND city ILIKE '%' || $2 || '%'`,
		lastName, city,
	)
	if err != nil {
		return nil, serviceerror.Classify(serviceName, err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]*Entry, error) {
	var entries []*Entry
	for rows.Next() {
		var entry Entry
		var firstName sql.NullString
		if err := rows.Scan(&entry.RizivNumber, &firstName, &entry.LastName, &entry.City); err != nil {
			return nil, serviceerror.Classify(serviceName, err)
		}
		entry.FirstName = firstName.String
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, serviceerror.Classify(serviceName, err)
	}
	return entries, nil
}
