package session

import (
	"slices"
	"sync"
)

// Registry tracks every joined session by connection id.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: map[string]*Session{}}
}

// Admit adds s and removes every other session with the same identity and
// display name. The removed sessions are returned so the caller can kick them.
func (r *Registry) Admit(s *Session) []*Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	var evicted []*Session
	for id, other := range r.sessions {
		if id != s.ConnID && other.matches(s) {
			delete(r.sessions, id)
			evicted = append(evicted, other)
		}
	}
	r.sessions[s.ConnID] = s

	return evicted
}

// Remove drops the session and reports whether it was still registered.
func (r *Registry) Remove(connID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[connID]; !ok {
		return false
	}
	delete(r.sessions, connID)
	return true
}

func (r *Registry) Get(connID string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[connID]
	return s, ok
}

// Roster returns the sorted display names of everyone in room.
func (r *Registry) Roster(room string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := []string{}
	for _, s := range r.sessions {
		if s.Room == room {
			names = append(names, s.DisplayName)
		}
	}
	slices.Sort(names)
	return names
}

// Rooms returns every room with at least one session, sorted.
func (r *Registry) Rooms() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := map[string]bool{}
	for _, s := range r.sessions {
		seen[s.Room] = true
	}
	rooms := make([]string, 0, len(seen))
	for room := range seen {
		rooms = append(rooms, room)
	}
	slices.Sort(rooms)
	return rooms
}

// Len is the number of joined sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
