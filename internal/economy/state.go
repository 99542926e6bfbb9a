package economy

import (
	"fmt"
	"maps"
	"time"
)

// State is one identity's authoritative economy. It is only touched from the
// identity's owner goroutine, see Store.Do.
type State struct {
	Identity     string
	Gold         int64
	Inventory    map[string]int64
	Rod          string
	Accessory    string
	Enhancement  int
	Skill        int
	LastDraw     time.Time
	ExploreReady time.Time
	// Aquarium is the fish shown off to other players, empty when none.
	Aquarium string

	pending Pending
}

// NewState returns the zeroed state used for identities without a stored record.
func NewState(identity string) *State {
	return &State{
		Identity:  identity,
		Inventory: map[string]int64{},
	}
}

// Count returns how many of an item the identity holds.
func (s *State) Count(item string) int64 {
	return s.Inventory[item]
}

// Add increases an item count. Non-positive amounts are ignored.
func (s *State) Add(item string, n int64) {
	if n <= 0 {
		return
	}
	s.Inventory[item] += n
}

// Remove decreases an item count, deleting the key when it reaches zero.
func (s *State) Remove(item string, n int64) error {
	if n <= 0 {
		return fmt.Errorf("invalid quantity %d", n)
	}
	have := s.Inventory[item]
	if have < n {
		return fmt.Errorf("%w: have %d %s, need %d", ErrInsufficient, have, item, n)
	}
	if have == n {
		delete(s.Inventory, item)
		return nil
	}
	s.Inventory[item] = have - n
	return nil
}

// Spend deducts gold.
func (s *State) Spend(amount int64) error {
	if amount < 0 {
		return fmt.Errorf("invalid amount %d", amount)
	}
	if s.Gold < amount {
		return fmt.Errorf("%w: have %d gold, need %d", ErrInsufficient, s.Gold, amount)
	}
	s.Gold -= amount
	return nil
}

// Snapshot is a detached copy of a State, safe to hand to other goroutines.
type Snapshot struct {
	Identity     string
	Gold         int64
	Inventory    map[string]int64
	Rod          string
	Accessory    string
	Enhancement  int
	Skill        int
	LastDraw     time.Time
	ExploreReady time.Time
	Aquarium     string
}

func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Identity:     s.Identity,
		Gold:         s.Gold,
		Inventory:    maps.Clone(s.Inventory),
		Rod:          s.Rod,
		Accessory:    s.Accessory,
		Enhancement:  s.Enhancement,
		Skill:        s.Skill,
		LastDraw:     s.LastDraw,
		ExploreReady: s.ExploreReady,
		Aquarium:     s.Aquarium,
	}
}

// FromSnapshot rebuilds a State from a stored record. Zero counts are dropped.
func FromSnapshot(snap Snapshot) *State {
	st := NewState(snap.Identity)
	st.Gold = max(snap.Gold, 0)
	for item, n := range snap.Inventory {
		st.Add(item, n)
	}
	st.Rod = snap.Rod
	st.Accessory = snap.Accessory
	st.Enhancement = max(snap.Enhancement, 0)
	st.Skill = max(snap.Skill, 0)
	st.LastDraw = snap.LastDraw
	st.ExploreReady = snap.ExploreReady
	st.Aquarium = snap.Aquarium
	return st
}
