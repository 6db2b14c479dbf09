package internal

import (
	"fmt"
	"time"
)

// CreateTestMessage creates a message fixture for tests
func CreateTestMessage(role Role, content string) Message {
	return Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
	}
}

// CreateTestSession creates a session fixture for tests
func CreateTestSession(id, title string) Session {
	return Session{
		ID:        id,
		Title:     title,
		CreatedAt: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

// seedSessions inserts n sessions named session-1..session-n so that
// session-1 sits at the head of the registry and is current
func seedSessions(s *Store, n int) []string {
	ids := make([]string, n)
	for i := n; i >= 1; i-- {
		id := fmt.Sprintf("session-%d", i)
		s.CreateSessionWithID(id, fmt.Sprintf("Conversation %d", i))
		ids[i-1] = id
	}
	return ids
}
