package brush

import "sync"

// Store owns the authoritative brush state. Updates are applied one at a
// time; subscribers are notified after the lock is released.
type Store struct {
	mu     sync.Mutex
	state  State
	nextID int
	subs   map[int]func(State)
}

// NewStore creates a store holding the initial state.
func NewStore(initial State) *Store {
	return &Store{
		state: initial,
		subs:  make(map[int]func(State)),
	}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Update applies fn to the current state and notifies subscribers with the
// result. It satisfies UpdateFunc.
func (s *Store) Update(fn Updater) {
	s.mu.Lock()
	s.state = fn(s.state)
	next := s.state
	subs := make([]func(State), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(next)
	}
}

// Set replaces the state outright.
func (s *Store) Set(state State) {
	s.Update(func(State) State { return state })
}

// Subscribe registers fn to be called after every update.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
