package cmd

import (
	"testing"
	"time"

	"github.com/mwinters-dev/chatstate/testutil"
)

func TestListCommand(t *testing.T) {
	path := testutil.CreateArchiveFixture(t, t.TempDir(), testutil.SnapshotFixture(2))

	if err := runCommand(t, path, "list"); err != nil {
		t.Fatalf("list command failed: %v", err)
	}
}

func TestListCommand_EmptyDatabase(t *testing.T) {
	if err := runCommand(t, t.TempDir()+"/state.db", "list"); err != nil {
		t.Fatalf("list on empty database failed: %v", err)
	}
}

func TestFormatRelativeDate(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{
			name: "zero time",
			t:    time.Time{},
			want: "—",
		},
		{
			name: "today",
			t:    now.Add(-2 * time.Hour),
			want: now.Add(-2 * time.Hour).Format("Today 15:04"),
		},
		{
			name: "this week",
			t:    now.Add(-3 * 24 * time.Hour),
			want: now.Add(-3 * 24 * time.Hour).Format("Mon 15:04"),
		},
		{
			name: "this year",
			t:    now.Add(-60 * 24 * time.Hour),
			want: now.Add(-60 * 24 * time.Hour).Format("Jan 02 15:04"),
		},
		{
			name: "older",
			t:    now.Add(-2 * 365 * 24 * time.Hour),
			want: now.Add(-2 * 365 * 24 * time.Hour).Format("2006-01-02"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatRelativeDate(tt.t); got != tt.want {
				t.Errorf("formatRelativeDate() = %q, want %q", got, tt.want)
			}
		})
	}
}
