package internal

import (
	"errors"
	"strings"
	"testing"
)

func TestStorageError(t *testing.T) {
	originalErr := errors.New("permission denied")
	err := &StorageError{
		Path: "/test/path",
		Op:   "open",
		Err:  originalErr,
	}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "storage error") {
		t.Errorf("StorageError.Error() should contain 'storage error', got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "/test/path") {
		t.Errorf("StorageError.Error() should contain path, got: %q", errorMsg)
	}

	if !errors.Is(err, originalErr) {
		t.Error("StorageError.Unwrap() should return original error")
	}

	// Pathless variant still renders the op.
	short := &StorageError{Op: "schema", Err: originalErr}
	if !strings.Contains(short.Error(), "schema") {
		t.Errorf("StorageError.Error() without path = %q", short.Error())
	}
}

func TestQuotaError(t *testing.T) {
	err := &QuotaError{Key: StateKey, Size: 6 << 20, Limit: 5 << 20}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "quota exceeded") {
		t.Errorf("QuotaError.Error() should contain 'quota exceeded', got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, StateKey) {
		t.Errorf("QuotaError.Error() should contain key, got: %q", errorMsg)
	}
}

func TestSnapshotError(t *testing.T) {
	originalErr := errors.New("unexpected end of JSON input")
	err := &SnapshotError{Key: StateKey, Err: originalErr}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "snapshot error") {
		t.Errorf("SnapshotError.Error() should contain 'snapshot error', got: %q", errorMsg)
	}

	if !errors.Is(err, originalErr) {
		t.Error("SnapshotError.Unwrap() should return original error")
	}
}
