package internal

import "sync"

// Topic is a coarse slice of store state that consumers can subscribe to.
// Notifications are per-topic so a view-flag change does not wake listeners
// that only care about the session list.
type Topic string

const (
	TopicView     Topic = "view"
	TopicSessions Topic = "sessions"
	TopicHistory  Topic = "history"
	TopicTabs     Topic = "tabs"
)

// State is the complete in-memory application state. Sessions are ordered
// most-recent-first; eviction always drops from the tail.
type State struct {
	View             ViewState
	Sessions         []Session
	CurrentSessionID string
	ChatHistory      map[string][]Message
	Tabs             []ChatTab
	ActiveTabID      string
}

// NewState returns the default initial state: no sessions, no tabs, home view.
func NewState() State {
	return State{
		View:        ViewState{CurrentView: ViewHome},
		ChatHistory: make(map[string][]Message),
	}
}

// Store is the authoritative holder of application state. Every operation is
// an atomic transition under one mutex; guard failures (unknown ids, missing
// current session, pinned tabs) are silent no-ops, never errors, so UI event
// handlers can call operations unconditionally.
type Store struct {
	mu    sync.Mutex
	state State

	listenersMu sync.Mutex
	listeners   map[Topic]map[int]func()
	nextListen  int

	persister *Persister
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		state:     NewState(),
		listeners: make(map[Topic]map[int]func()),
	}
}

// NewPersistedStore creates a store hydrated from the persister's slot and
// attaches the persister for snapshot writes. Load failures fall back to
// default state; the store itself never surfaces them.
func NewPersistedStore(p *Persister) *Store {
	s := NewStore()
	if p != nil {
		s.state = p.Load()
		s.persister = p
	}
	return s
}

// AttachPersister wires a persister into an existing store. Subsequent state
// transitions trigger best-effort snapshot writes.
func (s *Store) AttachPersister(p *Persister) {
	s.mu.Lock()
	s.persister = p
	s.mu.Unlock()
}

// Subscribe registers fn for change notifications on topic and returns an
// unsubscribe function. Listeners run synchronously after the transition
// commits; a panicking listener is recovered and logged, never propagated.
func (s *Store) Subscribe(topic Topic, fn func()) func() {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	if s.listeners[topic] == nil {
		s.listeners[topic] = make(map[int]func())
	}
	id := s.nextListen
	s.nextListen++
	s.listeners[topic][id] = fn

	return func() {
		s.listenersMu.Lock()
		defer s.listenersMu.Unlock()
		delete(s.listeners[topic], id)
	}
}

// mutate applies fn to the state under the lock. fn reports which topics it
// changed; an empty result means the operation was a guarded no-op and nothing
// is notified or persisted. Snapshot writes are scheduled while the lock is
// still held so the persister sees them in transition order.
func (s *Store) mutate(fn func(st *State) []Topic) {
	s.mu.Lock()
	topics := fn(&s.state)
	if s.persister != nil && len(topics) > 0 {
		s.persister.SaveAsync(BuildSnapshot(s.state))
	}
	s.mu.Unlock()

	if len(topics) == 0 {
		return
	}
	s.notify(topics)
}

// notify invokes the listeners registered for the changed topics.
func (s *Store) notify(topics []Topic) {
	s.listenersMu.Lock()
	var fns []func()
	for _, topic := range topics {
		for _, fn := range s.listeners[topic] {
			fns = append(fns, fn)
		}
	}
	s.listenersMu.Unlock()

	for _, fn := range fns {
		safeNotify(fn)
	}
}

// safeNotify shields the store from listener panics
func safeNotify(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			LogWarn("state listener panicked: %v", r)
		}
	}()
	fn()
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyState(s.state)
}

func copyState(st State) State {
	out := st
	out.Sessions = append([]Session(nil), st.Sessions...)
	out.Tabs = append([]ChatTab(nil), st.Tabs...)
	out.ChatHistory = make(map[string][]Message, len(st.ChatHistory))
	for id, msgs := range st.ChatHistory {
		out.ChatHistory[id] = append([]Message(nil), msgs...)
	}
	return out
}
