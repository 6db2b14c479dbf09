package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwinters-dev/chatstate/testutil"
)

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateArchiveFixture(t, dir, testutil.SnapshotFixture(2))
	outDir := filepath.Join(dir, "out")

	err := runCommand(t, path, "export", "--format", "jsonl", "--out", outDir)
	if err != nil {
		t.Fatalf("export command failed: %v", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("reading output dir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("exported %d files, want 2", len(entries))
	}
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "session_") || !strings.HasSuffix(e.Name(), ".jsonl") {
			t.Errorf("unexpected output file %q", e.Name())
		}
	}
}

func TestExportCommand_SingleSession(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateArchiveFixture(t, dir, testutil.SnapshotFixture(3))
	outDir := filepath.Join(dir, "out")

	err := runCommand(t, path, "export", "--format", "md", "--out", outDir, "--session-id", "session-2")
	if err != nil {
		t.Fatalf("export command failed: %v", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("reading output dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "session_session-2.md" {
		t.Errorf("output = %v, want only session-2 as markdown", entries)
	}

	data, err := os.ReadFile(filepath.Join(outDir, entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "# Conversation 2") {
		t.Errorf("exported markdown missing title header:\n%s", data)
	}
}

func TestExportCommand_InvalidFormat(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateArchiveFixture(t, dir, testutil.SnapshotFixture(1))

	err := runCommand(t, path, "export", "--format", "csv", "--out", filepath.Join(dir, "out"))
	if err == nil {
		t.Fatal("export with unsupported format succeeded, want error")
	}
	if !strings.Contains(err.Error(), "unsupported format") {
		t.Errorf("error = %v, want unsupported-format", err)
	}
}
