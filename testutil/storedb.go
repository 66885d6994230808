package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// CreateInMemoryStoreDB creates an in-memory SQLite database with the
// chatStore table for testing
func CreateInMemoryStoreDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS chatStore (
		key TEXT PRIMARY KEY,
		value TEXT
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		t.Fatalf("Failed to create chatStore table: %v", err)
	}

	return db
}

// SeedStoreValue inserts one key-value pair into the chatStore table
func SeedStoreValue(t *testing.T, db *sql.DB, key, value string) {
	t.Helper()
	if _, err := db.Exec("INSERT INTO chatStore (key, value) VALUES (?, ?)", key, value); err != nil {
		t.Fatalf("Failed to seed store value: %v", err)
	}
}
