package internal

// SetCurrentView switches the navigation view.
func (s *Store) SetCurrentView(v View) {
	s.mutate(func(st *State) []Topic {
		if st.View.CurrentView == v {
			return nil
		}
		st.View.CurrentView = v
		return []Topic{TopicView}
	})
}

// SetSidebarCollapsed sets the sidebar flag. The flag is additionally written
// to its own persisted key so it can be read synchronously at startup before
// the main snapshot rehydrates.
func (s *Store) SetSidebarCollapsed(collapsed bool) {
	s.setSidebar(func(bool) bool { return collapsed })
}

// ToggleSidebar flips the sidebar flag.
func (s *Store) ToggleSidebar() {
	s.setSidebar(func(cur bool) bool { return !cur })
}

func (s *Store) setSidebar(next func(bool) bool) {
	s.mutate(func(st *State) []Topic {
		v := next(st.View.SidebarCollapsed)
		if st.View.SidebarCollapsed == v {
			return nil
		}
		st.View.SidebarCollapsed = v
		// Scheduled inside the mutation so flag writes carry transition order.
		if s.persister != nil {
			s.persister.SaveSidebarAsync(v)
		}
		return []Topic{TopicView}
	})
}

// SetActiveModel records the model label shown in the chrome.
func (s *Store) SetActiveModel(model string) {
	s.mutate(func(st *State) []Topic {
		if st.View.ActiveModel == model {
			return nil
		}
		st.View.ActiveModel = model
		return []Topic{TopicView}
	})
}
