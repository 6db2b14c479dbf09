package internal

import "testing"

func TestOpenTab(t *testing.T) {
	s := NewStore()
	ids := seedSessions(s, 2)

	tabID := s.OpenTab(ids[1])

	tabs := s.Tabs()
	if len(tabs) != 1 {
		t.Fatalf("tabs = %d, want 1", len(tabs))
	}
	if tabs[0].ID != tabID || tabs[0].SessionID != ids[1] {
		t.Errorf("tab = %+v, want bound to %s", tabs[0], ids[1])
	}
	if s.ActiveTabID() != tabID {
		t.Errorf("active tab = %q, want %q", s.ActiveTabID(), tabID)
	}
	if s.CurrentSessionID() != ids[1] {
		t.Errorf("current session = %q, want %q", s.CurrentSessionID(), ids[1])
	}
}

func TestOpenTab_ReusesExistingTab(t *testing.T) {
	s := NewStore()
	ids := seedSessions(s, 2)
	first := s.OpenTab(ids[0])
	s.OpenTab(ids[1])

	got := s.OpenTab(ids[0])

	if got != first {
		t.Errorf("reopened tab id = %q, want existing %q", got, first)
	}
	if len(s.Tabs()) != 2 {
		t.Errorf("tabs = %d, want no duplicate tab per session", len(s.Tabs()))
	}
	if s.ActiveTabID() != first {
		t.Errorf("active tab = %q, want refocused %q", s.ActiveTabID(), first)
	}
}

func TestOpenTab_UnknownSessionIsNoOp(t *testing.T) {
	s := NewStore()
	seedSessions(s, 1)

	if got := s.OpenTab("missing"); got != "" {
		t.Errorf("OpenTab(missing) = %q, want empty", got)
	}
	if len(s.Tabs()) != 0 {
		t.Errorf("tabs = %d, want 0", len(s.Tabs()))
	}
}

func TestCloseTab_ReactivatesNeighbor(t *testing.T) {
	s := NewStore()
	ids := seedSessions(s, 3)
	tabA := s.OpenTab(ids[0])
	tabB := s.OpenTab(ids[1])
	tabC := s.OpenTab(ids[2])
	_ = tabA

	s.SwitchTab(tabB)
	s.CloseTab(tabB)

	// The tab that slid into the closed index takes focus.
	if s.ActiveTabID() != tabC {
		t.Errorf("active tab = %q, want %q", s.ActiveTabID(), tabC)
	}
	if s.CurrentSessionID() != ids[2] {
		t.Errorf("current session = %q, want %q", s.CurrentSessionID(), ids[2])
	}
}

func TestCloseTab_LastIndexClampsToNewTail(t *testing.T) {
	s := NewStore()
	ids := seedSessions(s, 2)
	tabA := s.OpenTab(ids[0])
	tabB := s.OpenTab(ids[1])

	s.CloseTab(tabB)

	if s.ActiveTabID() != tabA {
		t.Errorf("active tab = %q, want clamped to %q", s.ActiveTabID(), tabA)
	}
	if s.CurrentSessionID() != ids[0] {
		t.Errorf("current session = %q, want %q", s.CurrentSessionID(), ids[0])
	}
}

func TestCloseTab_LastTabFallsBackToFirstSession(t *testing.T) {
	s := NewStore()
	ids := seedSessions(s, 3)
	tab := s.OpenTab(ids[2])

	s.CloseTab(tab)

	if got := s.ActiveTabID(); got != "" {
		t.Errorf("active tab = %q, want empty", got)
	}
	if s.CurrentSessionID() != ids[0] {
		t.Errorf("current session = %q, want first registry session %q", s.CurrentSessionID(), ids[0])
	}
	if len(s.Tabs()) != 0 {
		t.Errorf("tabs = %d, want 0", len(s.Tabs()))
	}
}

func TestCloseTab_PinnedIsNoOp(t *testing.T) {
	s := NewStore()
	ids := seedSessions(s, 1)
	tab := s.OpenTab(ids[0])
	s.TogglePinTab(tab)

	s.CloseTab(tab)

	if len(s.Tabs()) != 1 {
		t.Fatal("pinned tab closed")
	}
	if s.ActiveTabID() != tab {
		t.Errorf("active tab = %q, want unchanged %q", s.ActiveTabID(), tab)
	}
}

func TestCloseTab_UnknownIDIsNoOp(t *testing.T) {
	s := NewStore()
	ids := seedSessions(s, 1)
	tab := s.OpenTab(ids[0])

	s.CloseTab("missing")

	if len(s.Tabs()) != 1 || s.ActiveTabID() != tab {
		t.Errorf("state changed by closing unknown tab")
	}
}

func TestSwitchTab(t *testing.T) {
	s := NewStore()
	ids := seedSessions(s, 2)
	tabA := s.OpenTab(ids[0])
	s.OpenTab(ids[1])
	s.SetCurrentView(ViewSettings)

	s.SwitchTab(tabA)

	if s.ActiveTabID() != tabA {
		t.Errorf("active tab = %q, want %q", s.ActiveTabID(), tabA)
	}
	if s.CurrentSessionID() != ids[0] {
		t.Errorf("current session = %q, want %q", s.CurrentSessionID(), ids[0])
	}
	if got := s.ViewState().CurrentView; got != ViewChat {
		t.Errorf("view = %q, want switch to force %q", got, ViewChat)
	}
}

func TestSwitchTab_UnknownIDIsNoOp(t *testing.T) {
	s := NewStore()
	ids := seedSessions(s, 1)
	tab := s.OpenTab(ids[0])

	s.SwitchTab("missing")

	if s.ActiveTabID() != tab {
		t.Errorf("active tab = %q, want unchanged %q", s.ActiveTabID(), tab)
	}
}

func TestReorderTabs(t *testing.T) {
	s := NewStore()
	ids := seedSessions(s, 3)
	tabA := s.OpenTab(ids[0])
	tabB := s.OpenTab(ids[1])
	tabC := s.OpenTab(ids[2])

	s.ReorderTabs(0, 2)

	tabs := s.Tabs()
	want := []string{tabB, tabC, tabA}
	for i, w := range want {
		if tabs[i].ID != w {
			t.Errorf("tabs[%d] = %q, want %q", i, tabs[i].ID, w)
		}
	}
}

func TestReorderTabs_InvalidIndicesAreNoOps(t *testing.T) {
	s := NewStore()
	ids := seedSessions(s, 2)
	tabA := s.OpenTab(ids[0])
	tabB := s.OpenTab(ids[1])

	for _, c := range []struct{ from, to int }{
		{-1, 0},
		{0, -1},
		{2, 0},
		{0, 2},
	} {
		s.ReorderTabs(c.from, c.to)
		tabs := s.Tabs()
		if tabs[0].ID != tabA || tabs[1].ID != tabB {
			t.Fatalf("ReorderTabs(%d, %d) mutated order", c.from, c.to)
		}
	}
}

func TestTogglePinTab(t *testing.T) {
	s := NewStore()
	ids := seedSessions(s, 1)
	tab := s.OpenTab(ids[0])

	s.TogglePinTab(tab)
	if !s.Tabs()[0].IsPinned {
		t.Error("tab not pinned after toggle")
	}

	s.TogglePinTab(tab)
	if s.Tabs()[0].IsPinned {
		t.Error("tab still pinned after second toggle")
	}

	// Unknown id leaves the pin state alone.
	s.TogglePinTab("missing")
	if s.Tabs()[0].IsPinned {
		t.Error("unknown id mutated pin state")
	}
}
