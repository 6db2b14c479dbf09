package internal

import (
	"time"

	"github.com/google/uuid"
)

// CreateSession inserts a new session with the default title at the head of
// the registry, makes it current, and returns its id. If the registry now
// exceeds MaxSessions the oldest entries are evicted with their histories and
// any tabs referencing them.
func (s *Store) CreateSession() string {
	id := uuid.NewString()
	s.mutate(func(st *State) []Topic {
		sess := Session{ID: id, Title: DefaultSessionTitle, CreatedAt: time.Now()}
		st.Sessions = append([]Session{sess}, st.Sessions...)
		st.CurrentSessionID = id

		topics := []Topic{TopicSessions}
		return append(topics, evictOverflow(st)...)
	})
	return id
}

// CreateSessionWithID is the idempotent insert used by external sync sources.
// If id already exists only the current-session pointer moves; the existing
// entry is left untouched. Otherwise the session is inserted at the head with
// a sanitized title and made current.
func (s *Store) CreateSessionWithID(id, title string) {
	if id == "" {
		return
	}
	s.mutate(func(st *State) []Topic {
		if sessionIndex(st.Sessions, id) >= 0 {
			if st.CurrentSessionID == id {
				return nil
			}
			st.CurrentSessionID = id
			return []Topic{TopicSessions}
		}

		sess := Session{ID: id, Title: SanitizeTitle(title), CreatedAt: time.Now()}
		st.Sessions = append([]Session{sess}, st.Sessions...)
		st.CurrentSessionID = id

		topics := []Topic{TopicSessions}
		return append(topics, evictOverflow(st)...)
	})
}

// DeleteSession removes the session, its history, and every tab referencing
// it (pin state does not protect a tab from its session's deletion). If the
// session was current the first remaining session is selected; if the active
// tab was removed the first remaining tab becomes active.
func (s *Store) DeleteSession(id string) {
	s.mutate(func(st *State) []Topic {
		idx := sessionIndex(st.Sessions, id)
		if idx < 0 {
			return nil
		}

		st.Sessions = append(st.Sessions[:idx], st.Sessions[idx+1:]...)
		_, hadHistory := st.ChatHistory[id]
		delete(st.ChatHistory, id)

		if st.CurrentSessionID == id {
			if len(st.Sessions) > 0 {
				st.CurrentSessionID = st.Sessions[0].ID
			} else {
				st.CurrentSessionID = ""
			}
		}

		topics := []Topic{TopicSessions}
		if hadHistory {
			topics = append(topics, TopicHistory)
		}
		if removeTabsForSessions(st, map[string]bool{id: true}) {
			topics = append(topics, TopicTabs)
		}
		return topics
	})
}

// SelectSession sets the current session. Unknown ids are a silent no-op.
func (s *Store) SelectSession(id string) {
	s.mutate(func(st *State) []Topic {
		if sessionIndex(st.Sessions, id) < 0 || st.CurrentSessionID == id {
			return nil
		}
		st.CurrentSessionID = id
		return []Topic{TopicSessions}
	})
}

// UpdateSessionTitle sanitizes the title, writes it to the session, and
// mirrors it onto any open tab referencing the session.
func (s *Store) UpdateSessionTitle(id, title string) {
	s.mutate(func(st *State) []Topic {
		idx := sessionIndex(st.Sessions, id)
		if idx < 0 {
			return nil
		}

		clean := SanitizeTitle(title)
		st.Sessions[idx].Title = clean

		topics := []Topic{TopicSessions}
		if mirrorTabTitles(st, id, clean) {
			topics = append(topics, TopicTabs)
		}
		return topics
	})
}

// HydrateSessions merges a remote-sourced session list into the registry.
// Remote entries win by id; purely local sessions (absent from the remote
// list) are preserved after them. The current selection survives the merge
// when still valid, otherwise the first merged entry is selected.
func (s *Store) HydrateSessions(remote []Session) {
	s.mutate(func(st *State) []Topic {
		merged := make([]Session, 0, len(remote)+len(st.Sessions))
		seen := make(map[string]bool, len(remote))
		for _, sess := range remote {
			if sess.ID == "" || seen[sess.ID] {
				continue
			}
			sess.Title = SanitizeTitle(sess.Title)
			merged = append(merged, sess)
			seen[sess.ID] = true
		}
		for _, sess := range st.Sessions {
			if !seen[sess.ID] {
				merged = append(merged, sess)
			}
		}
		registryChanged := !sessionsEqual(st.Sessions, merged)
		st.Sessions = merged

		prevCurrent := st.CurrentSessionID
		if sessionIndex(st.Sessions, st.CurrentSessionID) < 0 {
			if len(st.Sessions) > 0 {
				st.CurrentSessionID = st.Sessions[0].ID
			} else {
				st.CurrentSessionID = ""
			}
		}

		var topics []Topic
		if registryChanged || st.CurrentSessionID != prevCurrent {
			topics = append(topics, TopicSessions)
		}
		topics = append(topics, evictOverflow(st)...)

		// Remote entries may carry renamed titles; keep open tabs in sync.
		tabsChanged := false
		for _, sess := range st.Sessions {
			if mirrorTabTitles(st, sess.ID, sess.Title) {
				tabsChanged = true
			}
		}
		if tabsChanged && !containsTopic(topics, TopicTabs) {
			topics = append(topics, TopicTabs)
		}
		return topics
	})
}

// evictOverflow truncates the registry to MaxSessions, dropping from the tail
// (insertion order, not last-use), and cascades removal of the evicted
// sessions' histories and tabs. Returns the extra topics it dirtied.
func evictOverflow(st *State) []Topic {
	if len(st.Sessions) <= MaxSessions {
		return nil
	}

	evicted := make(map[string]bool)
	for _, sess := range st.Sessions[MaxSessions:] {
		evicted[sess.ID] = true
	}
	st.Sessions = st.Sessions[:MaxSessions:MaxSessions]

	var topics []Topic
	historyRemoved := false
	for id := range evicted {
		if _, ok := st.ChatHistory[id]; ok {
			delete(st.ChatHistory, id)
			historyRemoved = true
		}
	}
	if historyRemoved {
		topics = append(topics, TopicHistory)
	}
	if removeTabsForSessions(st, evicted) {
		topics = append(topics, TopicTabs)
	}
	return topics
}

// removeTabsForSessions drops every tab whose session is in ids. If the
// active tab is removed the first remaining tab becomes active (or none).
// Reports whether the tab list changed.
func removeTabsForSessions(st *State, ids map[string]bool) bool {
	kept := st.Tabs[:0]
	activeRemoved := false
	removed := false
	for _, tab := range st.Tabs {
		if ids[tab.SessionID] {
			removed = true
			if tab.ID == st.ActiveTabID {
				activeRemoved = true
			}
			continue
		}
		kept = append(kept, tab)
	}
	if !removed {
		return false
	}

	st.Tabs = kept
	if activeRemoved {
		if len(st.Tabs) > 0 {
			st.ActiveTabID = st.Tabs[0].ID
		} else {
			st.ActiveTabID = ""
		}
	}
	return true
}

// mirrorTabTitles copies title onto every tab referencing sessionID and
// reports whether any tab changed.
func mirrorTabTitles(st *State, sessionID, title string) bool {
	changed := false
	for i := range st.Tabs {
		if st.Tabs[i].SessionID == sessionID && st.Tabs[i].Title != title {
			st.Tabs[i].Title = title
			changed = true
		}
	}
	return changed
}

func sessionsEqual(a, b []Session) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sessionIndex(sessions []Session, id string) int {
	if id == "" {
		return -1
	}
	for i := range sessions {
		if sessions[i].ID == id {
			return i
		}
	}
	return -1
}

func containsTopic(topics []Topic, t Topic) bool {
	for _, topic := range topics {
		if topic == t {
			return true
		}
	}
	return false
}
