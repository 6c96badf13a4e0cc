package authstate

import (
	"github.com/bornholm/masthead/internal/syncx"
)

// Registry hands out the State of each browsing context. Only authenticated
// contexts are retained: an unknown context gets a transient unauthenticated
// State, which is registered once raised and dropped again once lowered.
type Registry struct {
	states syncx.Map[string, *State]
}

func (r *Registry) State(browserID string) *State {
	if state, exists := r.states.Load(browserID); exists {
		return state
	}

	state := New()
	state.onChange = func(authenticated bool) {
		r.track(browserID, state, authenticated)
	}

	return state
}

func (r *Registry) track(browserID string, state *State, authenticated bool) {
	if authenticated {
		r.states.LoadOrStore(browserID, state)
		return
	}

	r.states.Delete(browserID)
}

// Stats counts the browsing contexts currently retained and how many of them
// are authenticated.
func (r *Registry) Stats() (total int, authenticated int) {
	r.states.Range(func(_ string, state *State) bool {
		total++
		if state.IsAuthenticated() {
			authenticated++
		}

		return true
	})

	return total, authenticated
}

func NewRegistry() *Registry {
	return &Registry{}
}
