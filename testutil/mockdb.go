package testutil

import (
	"database/sql"
	"testing"

	"github.com/mwinters-dev/chatstate/internal"
	_ "modernc.org/sqlite"
)

// CreateInMemoryDB creates an in-memory SQLite database with the appKV schema
func CreateInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}

	if err := internal.EnsureSchema(db); err != nil {
		db.Close()
		t.Fatalf("Failed to create appKV table: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// CreateInMemoryKV creates a KV slot over an in-memory database
func CreateInMemoryKV(t *testing.T) *internal.KV {
	t.Helper()
	return internal.NewKV(CreateInMemoryDB(t))
}

// InsertRaw inserts a raw key/value pair into the appKV table
func InsertRaw(t *testing.T, db *sql.DB, key, value string) {
	t.Helper()
	insertSQL := "INSERT INTO appKV (key, value) VALUES (?, ?)"
	if _, err := db.Exec(insertSQL, key, value); err != nil {
		t.Fatalf("Failed to insert %s: %v", key, err)
	}
}

// SeedSnapshot marshals a snapshot and stores it under the state key
func SeedSnapshot(t *testing.T, kv *internal.KV, snap internal.PersistedState) {
	t.Helper()
	data := JSONMarshal(t, snap)
	if err := kv.Put(internal.StateKey, string(data)); err != nil {
		t.Fatalf("Failed to seed snapshot: %v", err)
	}
}

// CreateArchiveFixture creates an on-disk state database seeded with the
// given snapshot and returns its path
func CreateArchiveFixture(t *testing.T, dir string, snap internal.PersistedState) string {
	t.Helper()
	path := dir + "/state.db"
	db, err := internal.OpenArchive(path)
	if err != nil {
		t.Fatalf("Failed to open archive fixture: %v", err)
	}
	defer func() { _ = db.Close() }()

	kv := internal.NewKV(db)
	SeedSnapshot(t, kv, snap)
	return path
}
