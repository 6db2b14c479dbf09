package internal

import "time"

// AddMessage appends a message to the current session's history. Without a
// current session this is a silent no-op. Content is capped at
// MaxContentLength runes and the history at MaxMessagesPerSession entries,
// dropping the oldest. The first user message appended to an empty session
// auto-titles the session (and any tab open for it) from its content.
func (s *Store) AddMessage(msg Message) {
	s.mutate(func(st *State) []Topic {
		cur := st.CurrentSessionID
		if cur == "" {
			return nil
		}

		msg.Content = SanitizeContent(msg.Content)
		if msg.Timestamp.IsZero() {
			msg.Timestamp = time.Now()
		}

		topics := []Topic{TopicHistory}

		hist := st.ChatHistory[cur]
		if msg.Role == RoleUser && len(hist) == 0 {
			title := DeriveTitle(msg.Content)
			if idx := sessionIndex(st.Sessions, cur); idx >= 0 {
				st.Sessions[idx].Title = title
				topics = append(topics, TopicSessions)
			}
			if mirrorTabTitles(st, cur, title) {
				topics = append(topics, TopicTabs)
			}
		}

		hist = append(hist, msg)
		if len(hist) > MaxMessagesPerSession {
			hist = hist[len(hist)-MaxMessagesPerSession:]
		}
		st.ChatHistory[cur] = hist
		return topics
	})
}

// UpdateLastMessage concatenates delta onto the last message of the current
// session, re-applying the content cap. Supports streaming responses that
// grow incrementally. No current session or an empty history is a no-op.
func (s *Store) UpdateLastMessage(delta string) {
	s.mutate(func(st *State) []Topic {
		cur := st.CurrentSessionID
		if cur == "" {
			return nil
		}
		hist := st.ChatHistory[cur]
		if len(hist) == 0 {
			return nil
		}

		last := &hist[len(hist)-1]
		last.Content = SanitizeContent(last.Content + delta)
		return []Topic{TopicHistory}
	})
}

// ClearHistory empties the current session's message list. The session and
// its tab survive; a later first user message will re-title the session.
func (s *Store) ClearHistory() {
	s.mutate(func(st *State) []Topic {
		cur := st.CurrentSessionID
		if cur == "" {
			return nil
		}
		st.ChatHistory[cur] = []Message{}
		return []Topic{TopicHistory}
	})
}
