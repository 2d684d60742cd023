package board

import "sync"

// Registry hands out one Store per user and keeps it for the process lifetime.
type Registry struct {
	mu     sync.Mutex
	stores map[uint]*Store
}

func NewRegistry() *Registry {
	return &Registry{stores: make(map[uint]*Store)}
}

// For returns the user's store, creating it on first use.
func (r *Registry) For(userID uint) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.stores[userID]
	if !ok {
		s = NewStore()
		r.stores[userID] = s
	}
	return s
}
