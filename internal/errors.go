package internal

import "fmt"

// StorageError represents errors accessing the state database
type StorageError struct {
	Path string
	Op   string // "open", "schema", "read", "write", "delete"
	Err  error
}

func (e *StorageError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("storage error: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// QuotaError is returned when a value exceeds the KV slot's size limit
type QuotaError struct {
	Key   string
	Size  int
	Limit int
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("quota exceeded for %s: %d bytes (limit %d)", e.Key, e.Size, e.Limit)
}

// SnapshotError represents errors serializing or parsing a persisted snapshot
type SnapshotError struct {
	Key string
	Err error
}

func (e *SnapshotError) Error() string {
	return fmt.Sprintf("snapshot error [%s]: %v", e.Key, e.Err)
}

func (e *SnapshotError) Unwrap() error {
	return e.Err
}
