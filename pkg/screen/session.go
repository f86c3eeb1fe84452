package screen

import "sync"

// Session is the state holder for a single viewer: one Screen plus the
// current page. Navigation is the only mutator.
type Session struct {
	screen *Screen

	mu   sync.Mutex
	page int
}

// NewSession starts a session on page 1.
func NewSession(s *Screen) *Session {
	return &Session{screen: s, page: 1}
}

// Page returns the current page number.
func (s *Session) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// Next advances one page when possible and returns the resulting view.
func (s *Session) Next() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = s.screen.Next(s.page)
	return s.screen.View(s.page)
}

// Previous goes back one page when possible and returns the resulting view.
func (s *Session) Previous() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = s.screen.Previous(s.page)
	return s.screen.View(s.page)
}

// View returns the view for the current page.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen.View(s.page)
}
