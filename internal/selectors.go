package internal

import "sort"

// CurrentSessionID returns the current session id, or "" when none is
// selected.
func (s *Store) CurrentSessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CurrentSessionID
}

// CurrentSession returns the current session. ok is false when nothing is
// selected or when the pointer dangles (possible on corrupt snapshots or a
// sync/select race; callers must tolerate it rather than assume the registry
// invariant).
func (s *Store) CurrentSession() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := sessionIndex(s.state.Sessions, s.state.CurrentSessionID)
	if idx < 0 {
		return Session{}, false
	}
	return s.state.Sessions[idx], true
}

// CurrentMessages returns a copy of the current session's message list.
func (s *Store) CurrentMessages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.CurrentSessionID == "" {
		return nil
	}
	return append([]Message(nil), s.state.ChatHistory[s.state.CurrentSessionID]...)
}

// SessionsByRecency returns all sessions sorted newest-first by creation
// time. Ties keep registry order, which is itself most-recent-first.
func (s *Store) SessionsByRecency() []Session {
	s.mu.Lock()
	sessions := append([]Session(nil), s.state.Sessions...)
	s.mu.Unlock()

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
	return sessions
}

// MessageCount returns the history length for a session, 0 for unknown ids.
func (s *Store) MessageCount(sessionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.ChatHistory[sessionID])
}

// Tabs returns a copy of the open tab list in order.
func (s *Store) Tabs() []ChatTab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ChatTab(nil), s.state.Tabs...)
}

// ActiveTabID returns the active tab id, or "" when no tab is open.
func (s *Store) ActiveTabID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ActiveTabID
}

// ViewState returns the current view flags.
func (s *Store) ViewState() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.View
}

// Transcript bundles a session with its messages for export and display.
func (s *Store) Transcript(sessionID string) (Transcript, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := sessionIndex(s.state.Sessions, sessionID)
	if idx < 0 {
		return Transcript{}, false
	}
	return Transcript{
		Session:  s.state.Sessions[idx],
		Messages: append([]Message(nil), s.state.ChatHistory[sessionID]...),
	}, true
}
