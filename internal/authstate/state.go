// Package authstate owns the authentication state of each browsing context,
// shared by every component rendering for it.
package authstate

import "sync"

// State is a last-write-wins boolean cell. The zero value is a valid,
// unauthenticated state.
type State struct {
	mutex         sync.RWMutex
	authenticated bool
	onChange      func(authenticated bool)
}

func (s *State) IsAuthenticated() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.authenticated
}

func (s *State) SetAuthenticated(authenticated bool) {
	s.mutex.Lock()
	s.authenticated = authenticated
	onChange := s.onChange
	s.mutex.Unlock()

	if onChange != nil {
		onChange(authenticated)
	}
}

func New() *State {
	return &State{}
}
