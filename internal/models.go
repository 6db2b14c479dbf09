package internal

import "time"

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// IsValid returns true if the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	default:
		return false
	}
}

// View identifies the active navigation surface of the application.
type View string

const (
	ViewHome     View = "home"
	ViewChat     View = "chat"
	ViewSettings View = "settings"
)

// Capacity bounds enforced by the store. All character limits are rune counts.
const (
	MaxSessions           = 50
	MaxMessagesPerSession = 500
	MaxContentLength      = 100_000
	MaxTitleLength        = 100
	DerivedTitleLength    = 30
)

// DefaultSessionTitle is assigned to new sessions and to any title that
// sanitizes down to the empty string.
const DefaultSessionTitle = "New Chat"

// Session represents one conversation thread in the registry
type Session struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
}

// Message represents a single chat message
type Message struct {
	Role      Role      `json:"role" yaml:"role"`
	Content   string    `json:"content" yaml:"content"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Model     string    `json:"model,omitempty" yaml:"model,omitempty"`
}

// ChatTab is a window onto one session. Tabs do not own their session: the
// session outlives the tab, and deleting the session removes the tab.
type ChatTab struct {
	ID        string `json:"id" yaml:"id"`
	SessionID string `json:"sessionId" yaml:"session_id"`
	Title     string `json:"title" yaml:"title"`
	IsPinned  bool   `json:"isPinned" yaml:"is_pinned"`
}

// ViewState tracks navigation and chrome flags. No cross-entity invariants.
type ViewState struct {
	CurrentView      View   `json:"currentView" yaml:"current_view"`
	SidebarCollapsed bool   `json:"sidebarCollapsed" yaml:"sidebar_collapsed"`
	ActiveModel      string `json:"activeModel,omitempty" yaml:"active_model,omitempty"`
}

// Transcript bundles a session with its message history, the unit consumed
// by the export package and the show command.
type Transcript struct {
	Session  Session   `json:"session" yaml:"session"`
	Messages []Message `json:"messages" yaml:"messages"`
}
