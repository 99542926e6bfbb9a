package economy

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/pixil98/go-fishing/internal/catalog"
)

const DefaultLoadTimeout = 5 * time.Second

// Loader fetches a stored record. found is false when the identity has never been saved.
type Loader func(ctx context.Context, identity string) (snap Snapshot, found bool, err error)

// Store keeps every resident State behind its own goroutine. All reads and
// writes for an identity are funneled through that goroutine, so mutations for
// one identity never interleave while different identities run in parallel.
type Store struct {
	mu     sync.Mutex
	owners map[string]*owner

	cat         *catalog.Catalog
	loader      Loader
	loadTimeout time.Duration

	stopped  chan struct{}
	stopOnce sync.Once
}

type owner struct {
	work chan request
}

type request struct {
	fn   func(*State) error
	done chan error
}

func NewStore(cat *catalog.Catalog, opts ...StoreOpt) *Store {
	s := &Store{
		owners:      map[string]*owner{},
		cat:         cat,
		loadTimeout: DefaultLoadTimeout,
		stopped:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Stop terminates all owners. Further calls to Do return ErrStopped.
func (s *Store) Stop() {
	s.stopOnce.Do(func() { close(s.stopped) })
}

// Do runs fn against the identity's state on the identity's owner goroutine.
// The state is warm-loaded on first use. Once fn has been handed to the owner
// it runs to completion even if ctx is cancelled.
func (s *Store) Do(ctx context.Context, identity string, fn func(*State) error) error {
	o, err := s.owner(identity)
	if err != nil {
		return err
	}

	req := request{fn: fn, done: make(chan error, 1)}
	select {
	case o.work <- req:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.stopped:
		return ErrStopped
	}

	return <-req.done
}

// Ensure makes the identity resident, loading it if needed.
func (s *Store) Ensure(ctx context.Context, identity string) error {
	return s.Do(ctx, identity, func(*State) error { return nil })
}

// Snapshot copies a resident or freshly loaded state.
func (s *Store) Snapshot(ctx context.Context, identity string) (Snapshot, error) {
	var snap Snapshot
	err := s.Do(ctx, identity, func(st *State) error {
		snap = st.Snapshot()
		return nil
	})
	return snap, err
}

// Lookup returns an identity's state without making it resident.
func (s *Store) Lookup(ctx context.Context, identity string) (Snapshot, bool, error) {
	if s.Resident(identity) {
		snap, err := s.Snapshot(ctx, identity)
		return snap, err == nil, err
	}
	if s.loader == nil {
		return Snapshot{}, false, nil
	}
	return s.loader(ctx, identity)
}

// Resident reports whether the identity has an owner goroutine.
func (s *Store) Resident(identity string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.owners[identity]
	return ok
}

// Identities lists all resident identities in sorted order.
func (s *Store) Identities() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.owners))
	for id := range s.owners {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Store) owner(identity string) (*owner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	select {
	case <-s.stopped:
		return nil, ErrStopped
	default:
	}

	if o, ok := s.owners[identity]; ok {
		return o, nil
	}

	o := &owner{work: make(chan request)}
	s.owners[identity] = o
	go s.run(identity, o)

	return o, nil
}

func (s *Store) run(identity string, o *owner) {
	st := s.load(identity)
	for {
		select {
		case <-s.stopped:
			return
		case req := <-o.work:
			req.done <- apply(st, req.fn)
		}
	}
}

func (s *Store) load(identity string) *State {
	if s.loader == nil {
		return NewState(identity)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.loadTimeout)
	defer cancel()

	snap, found, err := s.loader(ctx, identity)
	if err != nil {
		slog.WarnContext(ctx, "loading economy state, starting fresh", "identity", identity, "error", err)
		return NewState(identity)
	}
	if !found {
		return NewState(identity)
	}

	snap.Identity = identity
	st := FromSnapshot(snap)
	st.Reequip(s.cat)
	return st
}

func apply(st *State, fn func(*State) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic applying mutation for %s: %v", st.Identity, r)
		}
	}()
	return fn(st)
}
