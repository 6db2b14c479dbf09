package internal

import "github.com/google/uuid"

// OpenTab opens a session into a tab and returns the tab id. If a tab for the
// session already exists it is reactivated instead of duplicated (at most one
// tab per session). The session becomes current either way. Opening an
// unknown session is a no-op and returns "".
func (s *Store) OpenTab(sessionID string) string {
	var tabID string
	s.mutate(func(st *State) []Topic {
		idx := sessionIndex(st.Sessions, sessionID)
		if idx < 0 {
			return nil
		}

		for _, tab := range st.Tabs {
			if tab.SessionID == sessionID {
				tabID = tab.ID
				if st.ActiveTabID == tab.ID && st.CurrentSessionID == sessionID {
					return nil
				}
				st.ActiveTabID = tab.ID
				st.CurrentSessionID = sessionID
				return []Topic{TopicTabs, TopicSessions}
			}
		}

		tab := ChatTab{
			ID:        uuid.NewString(),
			SessionID: sessionID,
			Title:     st.Sessions[idx].Title,
		}
		tabID = tab.ID
		st.Tabs = append(st.Tabs, tab)
		st.ActiveTabID = tab.ID
		st.CurrentSessionID = sessionID
		return []Topic{TopicTabs, TopicSessions}
	})
	return tabID
}

// CloseTab removes an unpinned tab. Closing a pinned or unknown tab is a
// no-op. When the active tab closes, the replacement is picked by clamping
// the closed tab's index into the remaining list; with no tabs left the
// current session falls back to the first registry entry.
func (s *Store) CloseTab(tabID string) {
	s.mutate(func(st *State) []Topic {
		idx := tabIndex(st.Tabs, tabID)
		if idx < 0 || st.Tabs[idx].IsPinned {
			return nil
		}

		wasActive := st.ActiveTabID == tabID
		st.Tabs = append(st.Tabs[:idx], st.Tabs[idx+1:]...)

		topics := []Topic{TopicTabs}
		if !wasActive {
			return topics
		}

		if len(st.Tabs) == 0 {
			st.ActiveTabID = ""
			if len(st.Sessions) > 0 {
				st.CurrentSessionID = st.Sessions[0].ID
			} else {
				st.CurrentSessionID = ""
			}
			return append(topics, TopicSessions)
		}

		next := idx
		if next > len(st.Tabs)-1 {
			next = len(st.Tabs) - 1
		}
		st.ActiveTabID = st.Tabs[next].ID
		st.CurrentSessionID = st.Tabs[next].SessionID
		return append(topics, TopicSessions)
	})
}

// SwitchTab activates the tab, makes its session current, and forces the
// navigation view to the chat view. Unknown tab ids are a no-op.
func (s *Store) SwitchTab(tabID string) {
	s.mutate(func(st *State) []Topic {
		idx := tabIndex(st.Tabs, tabID)
		if idx < 0 {
			return nil
		}

		st.ActiveTabID = tabID
		st.CurrentSessionID = st.Tabs[idx].SessionID

		topics := []Topic{TopicTabs, TopicSessions}
		if st.View.CurrentView != ViewChat {
			st.View.CurrentView = ViewChat
			topics = append(topics, TopicView)
		}
		return topics
	})
}

// ReorderTabs moves the tab at from to position to. Indices are validated,
// not clamped: either index outside [0, len) leaves the order unchanged.
func (s *Store) ReorderTabs(from, to int) {
	s.mutate(func(st *State) []Topic {
		n := len(st.Tabs)
		if from < 0 || from >= n || to < 0 || to >= n || from == to {
			return nil
		}

		tab := st.Tabs[from]
		st.Tabs = append(st.Tabs[:from], st.Tabs[from+1:]...)
		st.Tabs = append(st.Tabs[:to], append([]ChatTab{tab}, st.Tabs[to:]...)...)
		return []Topic{TopicTabs}
	})
}

// TogglePinTab flips the tab's pin flag. Position and active status are
// unaffected; pinning only shields the tab from CloseTab.
func (s *Store) TogglePinTab(tabID string) {
	s.mutate(func(st *State) []Topic {
		idx := tabIndex(st.Tabs, tabID)
		if idx < 0 {
			return nil
		}
		st.Tabs[idx].IsPinned = !st.Tabs[idx].IsPinned
		return []Topic{TopicTabs}
	})
}

func tabIndex(tabs []ChatTab, id string) int {
	if id == "" {
		return -1
	}
	for i := range tabs {
		if tabs[i].ID == id {
			return i
		}
	}
	return -1
}
