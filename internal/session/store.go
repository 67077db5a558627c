// Package session holds the application's UI-visible state: the
// authenticated worker, active list filters, current page and the
// auto-refresh toggle. A single Store is created at the composition
// root and passed to whichever component needs it; there is no
// package-level singleton.
package session

import (
	"sync"

	"github.com/ravshan77/shikoyatlar-web/internal/models"
)

// State is a point-in-time copy of the store, safe to read without
// holding the lock.
type State struct {
	Session     *models.Session
	Filters     models.Filters
	Page        int
	AutoRefresh bool
}

// Store is the single source of truth for session and query state.
type Store struct {
	mu          sync.Mutex
	session     *models.Session
	filters     models.Filters
	page        int
	autoRefresh bool
}

// NewStore returns a Store in the unauthenticated zero state: no
// session, no filters, page 1, auto-refresh on.
func NewStore() *Store {
	return &Store{page: 1, autoRefresh: true}
}

// Session returns the current worker session, if any.
func (s *Store) Session() (models.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return models.Session{}, false
	}
	return *s.session, true
}

// Authenticated reports whether a worker session is present. This is
// the auth gate: data views must not render without it.
func (s *Store) Authenticated() bool {
	_, ok := s.Session()
	return ok
}

// SetSession installs the worker session after a successful code
// exchange.
func (s *Store) SetSession(sess models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy := sess
	s.session = &copy
}

// Filters returns the active list filters.
func (s *Store) Filters() models.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// SetFilters replaces the active filters and resets the page to 1:
// changing the result set invalidates the user's position within it.
func (s *Store) SetFilters(f models.Filters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = f
	s.page = 1
}

// Page returns the current 1-based page.
func (s *Store) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// SetPage moves to the given page, leaving filters untouched. Values
// below 1 clamp to 1; the upper bound is server-reported and enforced
// by the view layer.
func (s *Store) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if page < 1 {
		page = 1
	}
	s.page = page
}

// AutoRefresh returns the polling toggle.
func (s *Store) AutoRefresh() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autoRefresh
}

// SetAutoRefresh flips the polling toggle.
func (s *Store) SetAutoRefresh(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoRefresh = on
}

// Reset restores the unauthenticated zero state. Used on logout so no
// stale authenticated data survives.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.filters = models.Filters{}
	s.page = 1
	s.autoRefresh = true
}

// Snapshot returns a consistent copy of the whole store state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State{
		Filters:     s.filters,
		Page:        s.page,
		AutoRefresh: s.autoRefresh,
	}
	if s.session != nil {
		copy := *s.session
		st.Session = &copy
	}
	return st
}
