package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"

	"attestguard/pkg/serviceerror"
)

// Open connects to PostgreSQL and verifies the connection with a bounded ping.
// Failures are classified so the caller can render them without inspecting
// driver errors.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, serviceerror.Configuration("SQL Database", "POSTGRES_DSN is not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, serviceerror.Classify("SQL Database", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, serviceerror.Classify("SQL Database", err)
	}

	return db, nil
}
