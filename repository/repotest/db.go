// Package repotest provides an in-memory database for repository tests.
// The schema mirrors the Postgres one; all repository SQL is written to
// run on both engines.
package repotest

import (
	"database/sql"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // test database driver
)

const schema = `
CREATE TABLE users (
    id    INTEGER PRIMARY KEY,
    name  TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE
);

CREATE TABLE requests (
    id           INTEGER PRIMARY KEY,
    description  TEXT NOT NULL,
    requestor_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created      TIMESTAMP NOT NULL
);

CREATE TABLE items (
    id          INTEGER PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT NOT NULL,
    available   BOOLEAN NOT NULL,
    owner_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    request_id  INTEGER REFERENCES requests(id) ON DELETE SET NULL
);

CREATE TABLE bookings (
    id         INTEGER PRIMARY KEY,
    start_date TIMESTAMP NOT NULL,
    end_date   TIMESTAMP NOT NULL,
    item_id    INTEGER NOT NULL REFERENCES items(id) ON DELETE CASCADE,
    booker_id  INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    status     TEXT NOT NULL CHECK (status IN ('WAITING', 'APPROVED', 'REJECTED'))
);

CREATE TABLE comments (
    id        INTEGER PRIMARY KEY,
    text      TEXT NOT NULL,
    item_id   INTEGER NOT NULL REFERENCES items(id) ON DELETE CASCADE,
    author_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created   TIMESTAMP NOT NULL
);
`

// NewDB creates a fresh in-memory database with the schema applied.
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()

	raw, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	// One in-memory database per connection, so keep a single one.
	raw.SetMaxOpenConns(1)

	if _, err := raw.Exec("PRAGMA foreign_keys=ON"); err != nil {
		raw.Close()
		t.Fatalf("enabling foreign keys: %v", err)
	}
	if _, err := raw.Exec(schema); err != nil {
		raw.Close()
		t.Fatalf("creating test schema: %v", err)
	}

	db := sqlx.NewDb(raw, "sqlite")
	t.Cleanup(func() { db.Close() })

	return db
}
