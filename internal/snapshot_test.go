package internal

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"
)

func TestBuildSnapshot(t *testing.T) {
	s := NewStore()
	id := s.CreateSession()
	s.OpenTab(id)
	s.AddMessage(Message{Role: RoleUser, Content: "hello"})
	s.SetActiveModel("sparrow-lite")

	snap := BuildSnapshot(s.Snapshot())

	if snap.Version != SnapshotVersion {
		t.Errorf("version = %d, want %d", snap.Version, SnapshotVersion)
	}
	if snap.CurrentSessionID != id || len(snap.Sessions) != 1 {
		t.Errorf("snapshot sessions = %+v, current %q", snap.Sessions, snap.CurrentSessionID)
	}
	if len(snap.ChatHistory[id]) != 1 {
		t.Errorf("snapshot history = %+v", snap.ChatHistory)
	}
	if len(snap.Tabs) != 1 || snap.ActiveTabID == "" {
		t.Errorf("snapshot tabs = %+v, active %q", snap.Tabs, snap.ActiveTabID)
	}
	if snap.ActiveModel != "sparrow-lite" {
		t.Errorf("active model = %q", snap.ActiveModel)
	}
}

func TestBuildSnapshot_CapsPersistedHistories(t *testing.T) {
	base := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	st := NewState()
	total := MaxPersistedHistories + 5
	for i := 0; i < total; i++ {
		id := fmt.Sprintf("session-%d", i)
		st.Sessions = append(st.Sessions, Session{ID: id, Title: "T", CreatedAt: base})
		// Higher index means a more recent last message.
		st.ChatHistory[id] = []Message{{
			Role:      RoleUser,
			Content:   "m",
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}}
	}

	snap := BuildSnapshot(st)

	if len(snap.ChatHistory) != MaxPersistedHistories {
		t.Fatalf("persisted histories = %d, want %d", len(snap.ChatHistory), MaxPersistedHistories)
	}
	// All sessions survive; only cold histories are dropped.
	if len(snap.Sessions) != total {
		t.Errorf("persisted sessions = %d, want %d", len(snap.Sessions), total)
	}
	// The most recently active sessions win.
	for i := total - MaxPersistedHistories; i < total; i++ {
		if _, ok := snap.ChatHistory[fmt.Sprintf("session-%d", i)]; !ok {
			t.Errorf("history for session-%d dropped, want kept", i)
		}
	}
	if _, ok := snap.ChatHistory["session-0"]; ok {
		t.Error("coldest history survived the cap")
	}
	// The live map is untouched.
	if len(st.ChatHistory) != total {
		t.Errorf("live histories = %d, want %d", len(st.ChatHistory), total)
	}
}

func TestRehydrate(t *testing.T) {
	snap := PersistedState{
		Version:          SnapshotVersion,
		CurrentView:      ViewChat,
		SidebarCollapsed: true,
		ActiveModel:      "sparrow-lite",
		Sessions:         []Session{CreateTestSession("s-1", "Kept")},
		CurrentSessionID: "s-1",
		ChatHistory: map[string][]Message{
			"s-1": {CreateTestMessage(RoleUser, "hello")},
		},
		Tabs:        []ChatTab{{ID: "t-1", SessionID: "s-1", Title: "Kept"}},
		ActiveTabID: "t-1",
	}
	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatal(err)
	}

	st := Rehydrate(data)

	if len(st.Sessions) != 1 || st.Sessions[0].ID != "s-1" {
		t.Errorf("sessions = %+v, want s-1 restored", st.Sessions)
	}
	if st.CurrentSessionID != "s-1" {
		t.Errorf("current session = %q, want s-1", st.CurrentSessionID)
	}
	if len(st.ChatHistory["s-1"]) != 1 {
		t.Errorf("history = %+v, want restored", st.ChatHistory)
	}
	if !st.View.SidebarCollapsed || st.View.ActiveModel != "sparrow-lite" {
		t.Errorf("view flags = %+v, want restored", st.View)
	}

	// Forced resets: view home, no tabs, no active tab.
	if st.View.CurrentView != ViewHome {
		t.Errorf("view = %q, want forced to %q", st.View.CurrentView, ViewHome)
	}
	if len(st.Tabs) != 0 || st.ActiveTabID != "" {
		t.Errorf("tabs = %+v active %q, want cleared", st.Tabs, st.ActiveTabID)
	}
}

func TestRehydrate_EmptyAndUnreadable(t *testing.T) {
	for name, data := range map[string][]byte{
		"empty":   nil,
		"garbage": []byte("not json at all"),
		"array":   []byte(`[1, 2, 3]`),
	} {
		st := Rehydrate(data)
		if len(st.Sessions) != 0 || st.CurrentSessionID != "" || st.View.CurrentView != ViewHome {
			t.Errorf("%s: Rehydrate did not fall back to defaults: %+v", name, st)
		}
		if st.ChatHistory == nil {
			t.Errorf("%s: history map not initialized", name)
		}
	}
}

func TestRehydrate_PartiallyCorruptFieldLeavesNoFragment(t *testing.T) {
	// The sessions array starts with a valid entry and breaks on the second.
	// The whole field must fall back; the valid prefix may not leak through.
	data := []byte(`{
		"version": 1,
		"sessions": [
			{"id": "s-1", "title": "Valid", "createdAt": "2026-01-15T10:00:00Z"},
			{"id": 42}
		],
		"currentSessionId": "s-1"
	}`)

	st := Rehydrate(data)

	if len(st.Sessions) != 0 {
		t.Errorf("sessions = %+v, want empty after mid-array corruption", st.Sessions)
	}
	if st.CurrentSessionID != "s-1" {
		t.Errorf("current session = %q, want sibling field still loaded", st.CurrentSessionID)
	}
}

func TestRehydrate_CorruptFieldFallsBackIndividually(t *testing.T) {
	// sessions is malformed; the rest of the snapshot must still load.
	data := []byte(`{
		"version": 1,
		"sessions": "not-an-array",
		"currentSessionId": "s-1",
		"sidebarCollapsed": true,
		"chatHistory": {"s-1": [{"role": "user", "content": "hi", "timestamp": "2026-01-15T10:30:00Z"}]}
	}`)

	st := Rehydrate(data)

	if len(st.Sessions) != 0 {
		t.Errorf("sessions = %+v, want default from corrupt field", st.Sessions)
	}
	if st.CurrentSessionID != "s-1" {
		t.Errorf("current session = %q, want s-1 despite sibling corruption", st.CurrentSessionID)
	}
	if !st.View.SidebarCollapsed {
		t.Error("sidebar flag lost to sibling corruption")
	}
	if len(st.ChatHistory["s-1"]) != 1 {
		t.Errorf("history = %+v, want loaded despite sibling corruption", st.ChatHistory)
	}
}
