package testutil

import (
	"fmt"
	"time"

	"github.com/mwinters-dev/chatstate/internal"
)

// NewTestSession creates a session fixture with a deterministic creation time
func NewTestSession(id, title string) internal.Session {
	return internal.Session{
		ID:        id,
		Title:     title,
		CreatedAt: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

// NewTestMessage creates a message fixture
func NewTestMessage(role internal.Role, content string) internal.Message {
	return internal.Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
	}
}

// NewTestTab creates a tab fixture referencing the given session
func NewTestTab(id, sessionID, title string) internal.ChatTab {
	return internal.ChatTab{
		ID:        id,
		SessionID: sessionID,
		Title:     title,
	}
}

// SnapshotFixture builds a persisted snapshot with n sessions, each holding a
// short user/assistant exchange, plus one open tab on the first session
func SnapshotFixture(n int) internal.PersistedState {
	snap := internal.PersistedState{
		Version:     internal.SnapshotVersion,
		CurrentView: internal.ViewChat,
		ChatHistory: make(map[string][]internal.Message, n),
	}

	base := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("session-%d", i+1)
		snap.Sessions = append(snap.Sessions, internal.Session{
			ID:        id,
			Title:     fmt.Sprintf("Conversation %d", i+1),
			CreatedAt: base.Add(-time.Duration(i) * time.Hour),
		})
		snap.ChatHistory[id] = []internal.Message{
			{Role: internal.RoleUser, Content: "Hello", Timestamp: base.Add(-time.Duration(i) * time.Hour)},
			{Role: internal.RoleAssistant, Content: "Hi there", Timestamp: base.Add(-time.Duration(i)*time.Hour + time.Minute)},
		}
	}

	if n > 0 {
		snap.CurrentSessionID = snap.Sessions[0].ID
		snap.Tabs = []internal.ChatTab{NewTestTab("tab-1", snap.Sessions[0].ID, snap.Sessions[0].Title)}
		snap.ActiveTabID = "tab-1"
	}
	return snap
}

// SeededStore builds a store preloaded with sessions s1..sn titled
// "Conversation i"; the most recently created session (s1) is current
func SeededStore(n int) (*internal.Store, []string) {
	store := internal.NewStore()
	ids := make([]string, 0, n)
	// Insert oldest-first so session-1 ends up at the head of the registry.
	for i := n; i >= 1; i-- {
		id := fmt.Sprintf("session-%d", i)
		store.CreateSessionWithID(id, fmt.Sprintf("Conversation %d", i))
		ids = append([]string{id}, ids...)
	}
	return store, ids
}
