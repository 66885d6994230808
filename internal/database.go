package internal

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// chatStoreSchema is the key-value table backing the chat store
const chatStoreSchema = `
CREATE TABLE IF NOT EXISTS chatStore (
	key TEXT PRIMARY KEY,
	value TEXT
)`

// OpenStoreDB opens (creating if needed) the sqlite database holding
// the chat store
func OpenStoreDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if _, err := db.Exec(chatStoreSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create chatStore table: %w", err)
	}

	return db, nil
}

// GetStoreValue reads one value from the chatStore table. Missing keys
// return ok=false, not an error.
func GetStoreValue(db *sql.DB, key string) (string, bool, error) {
	var value sql.NullString
	err := db.QueryRow("SELECT value FROM chatStore WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query failed: %w", err)
	}
	if !value.Valid {
		return "", false, nil
	}
	return value.String, true, nil
}

// PutStoreValue upserts one value into the chatStore table
func PutStoreValue(db *sql.DB, key, value string) error {
	_, err := db.Exec(
		"INSERT INTO chatStore (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	if err != nil {
		return fmt.Errorf("upsert failed: %w", err)
	}
	return nil
}

// DeleteStoreValue removes one key from the chatStore table
func DeleteStoreValue(db *sql.DB, key string) error {
	if _, err := db.Exec("DELETE FROM chatStore WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	return nil
}
