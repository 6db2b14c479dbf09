package internal

import (
	"encoding/json"
	"sort"
	"time"
)

// Storage keys. StateKey holds the JSON snapshot; SidebarKey holds a single
// boolean readable before the main snapshot is parsed.
const (
	StateKey   = "chatstate"
	SidebarKey = "chatstate.sidebarCollapsed"
)

// SnapshotVersion is bumped on schema changes. Rehydration is tolerant of
// mismatches: each field falls back to its default individually.
const SnapshotVersion = 1

// MaxPersistedHistories bounds the snapshot size: only the chat histories of
// the sessions with the most recent last-message timestamps are written. The
// live in-memory map and the session/tab lists are not affected.
const MaxPersistedHistories = 20

// PersistedState is the JSON record stored under StateKey.
type PersistedState struct {
	Version          int                  `json:"version"`
	CurrentView      View                 `json:"currentView"`
	SidebarCollapsed bool                 `json:"sidebarCollapsed"`
	ActiveModel      string               `json:"activeModel,omitempty"`
	Sessions         []Session            `json:"sessions"`
	CurrentSessionID string               `json:"currentSessionId"`
	ChatHistory      map[string][]Message `json:"chatHistory"`
	Tabs             []ChatTab            `json:"tabs"`
	ActiveTabID      string               `json:"activeTabId"`
}

// BuildSnapshot converts live state into its persisted form. Histories beyond
// the MaxPersistedHistories most recently active sessions are dropped from
// the snapshot only; everything else is copied as-is.
func BuildSnapshot(st State) PersistedState {
	snap := PersistedState{
		Version:          SnapshotVersion,
		CurrentView:      st.View.CurrentView,
		SidebarCollapsed: st.View.SidebarCollapsed,
		ActiveModel:      st.View.ActiveModel,
		Sessions:         append([]Session(nil), st.Sessions...),
		CurrentSessionID: st.CurrentSessionID,
		ChatHistory:      capHistories(st.ChatHistory),
		Tabs:             append([]ChatTab(nil), st.Tabs...),
		ActiveTabID:      st.ActiveTabID,
	}
	return snap
}

// capHistories deep-copies the history map, keeping only the
// MaxPersistedHistories sessions with the newest last-message timestamp.
func capHistories(histories map[string][]Message) map[string][]Message {
	type entry struct {
		id   string
		last time.Time
	}
	entries := make([]entry, 0, len(histories))
	for id, msgs := range histories {
		var last time.Time
		if len(msgs) > 0 {
			last = msgs[len(msgs)-1].Timestamp
		}
		entries = append(entries, entry{id: id, last: last})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].last.After(entries[j].last)
	})
	if len(entries) > MaxPersistedHistories {
		entries = entries[:MaxPersistedHistories]
	}

	out := make(map[string][]Message, len(entries))
	for _, e := range entries {
		out[e.id] = append([]Message(nil), histories[e.id]...)
	}
	return out
}

// Rehydrate rebuilds state from a persisted snapshot. The merge is
// field-by-field over default state: a corrupt or missing field falls back to
// its default without aborting the rest. Three fields are then forcibly
// reset regardless of what was persisted: the view returns to home and the
// tab list and active tab are cleared, so every start is tab-less and on the
// home view while sessions and histories survive.
func Rehydrate(data []byte) State {
	st := NewState()
	if len(data) == 0 {
		return st
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		LogWarn("discarding unreadable snapshot: %v", err)
		return st
	}

	decodeField(fields, "sidebarCollapsed", &st.View.SidebarCollapsed)
	decodeField(fields, "activeModel", &st.View.ActiveModel)
	decodeField(fields, "sessions", &st.Sessions)
	decodeField(fields, "currentSessionId", &st.CurrentSessionID)

	var histories map[string][]Message
	if decodeField(fields, "chatHistory", &histories) && histories != nil {
		st.ChatHistory = histories
	}

	// Forced resets: persisted currentView, tabs, and activeTabId are
	// deliberately ignored.
	st.View.CurrentView = ViewHome
	st.Tabs = nil
	st.ActiveTabID = ""
	return st
}

// decodeField unmarshals one snapshot field, leaving the destination's
// default in place on absence or error. Decoding goes through a temporary so
// a field that fails partway (a valid prefix of a corrupt array, say) never
// leaks partial data into dst. Reports whether dst was written.
func decodeField[T any](fields map[string]json.RawMessage, name string, dst *T) bool {
	raw, ok := fields[name]
	if !ok {
		return false
	}
	var tmp T
	if err := json.Unmarshal(raw, &tmp); err != nil {
		LogWarn("snapshot field %q is corrupt, using default: %v", name, err)
		return false
	}
	*dst = tmp
	return true
}
