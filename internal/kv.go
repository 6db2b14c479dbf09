package internal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DefaultQuota is the per-value size limit of the KV slot, sized like a
// browser local-storage quota.
const DefaultQuota = 5 << 20 // 5 MiB

// DefaultArchivePath returns the default location of the state database under
// the user's home directory.
func DefaultArchivePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".chatstate", "state.db"), nil
}

// OpenArchive opens (creating if needed) the SQLite database backing the KV
// slot and ensures its schema.
func OpenArchive(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, &StorageError{Path: path, Op: "open", Err: err}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}

	if err := EnsureSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureSchema creates the appKV table if it does not exist.
func EnsureSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS appKV (
		key TEXT PRIMARY KEY,
		value TEXT
	)`
	if _, err := db.Exec(schema); err != nil {
		return &StorageError{Op: "schema", Err: err}
	}
	return nil
}

// KV is a synchronous, size-limited key-value slot over the appKV table.
type KV struct {
	db    *sql.DB
	quota int
}

// NewKV wraps a database with the default quota.
func NewKV(db *sql.DB) *KV {
	return &KV{db: db, quota: DefaultQuota}
}

// SetQuota overrides the per-value size limit. Values of n < 1 are ignored.
func (kv *KV) SetQuota(n int) {
	if n >= 1 {
		kv.quota = n
	}
}

// Get reads the value under key. ok is false when the key is absent.
func (kv *KV) Get(key string) (value string, ok bool, err error) {
	var v sql.NullString
	row := kv.db.QueryRow("SELECT value FROM appKV WHERE key = ?", key)
	if err := row.Scan(&v); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, &StorageError{Op: "read", Path: key, Err: err}
	}
	if !v.Valid {
		return "", false, nil
	}
	return v.String, true, nil
}

// Put writes value under key, replacing any previous value. Values larger
// than the quota are rejected with a QuotaError.
func (kv *KV) Put(key, value string) error {
	if len(value) > kv.quota {
		return &QuotaError{Key: key, Size: len(value), Limit: kv.quota}
	}

	query := "INSERT INTO appKV (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value"
	if _, err := kv.db.Exec(query, key, value); err != nil {
		return &StorageError{Op: "write", Path: key, Err: err}
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (kv *KV) Delete(key string) error {
	if _, err := kv.db.Exec("DELETE FROM appKV WHERE key = ?", key); err != nil {
		return &StorageError{Op: "delete", Path: key, Err: err}
	}
	return nil
}

// KeyInfo describes one stored key for inspection tooling.
type KeyInfo struct {
	Key  string
	Size int
}

// Keys lists all stored keys with their value sizes, ordered by key.
func (kv *KV) Keys() ([]KeyInfo, error) {
	rows, err := kv.db.Query("SELECT key, length(value) FROM appKV ORDER BY key")
	if err != nil {
		return nil, &StorageError{Op: "read", Err: err}
	}
	defer rows.Close()

	var infos []KeyInfo
	for rows.Next() {
		var info KeyInfo
		var size sql.NullInt64
		if err := rows.Scan(&info.Key, &size); err != nil {
			return nil, &StorageError{Op: "read", Err: err}
		}
		info.Size = int(size.Int64)
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "read", Err: err}
	}
	return infos, nil
}
