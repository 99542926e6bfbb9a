package command

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pixil98/go-fishing/internal/catalog"
	"github.com/pixil98/go-fishing/internal/economy"
	"github.com/pixil98/go-fishing/internal/persist"
	"github.com/pixil98/go-testutil"
)

type memoryStore struct {
	persist.Offline

	mu     sync.Mutex
	saved  map[string]economy.Snapshot
	closed bool
}

func (m *memoryStore) SaveEconomy(_ context.Context, snap economy.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return persist.ErrUnavailable
	}
	if m.saved == nil {
		m.saved = map[string]economy.Snapshot{}
	}
	m.saved[snap.Identity] = snap
	return nil
}

func (m *memoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *memoryStore) gold(identity string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved[identity].Gold
}

func TestEconomyWorker_WaitsForSessions(t *testing.T) {
	tests := map[string]struct {
		closeSessions bool
		drainTimeout  time.Duration
		expGold       int64
	}{
		"late change is saved": {closeSessions: true, drainTimeout: 5 * time.Second, expGold: 77},
		"drain times out":      {drainTimeout: 50 * time.Millisecond},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cat, err := catalog.New(catalog.DefaultTable())
			if err != nil {
				t.Fatalf("building catalog: %v", err)
			}
			durable := &memoryStore{}
			states := economy.NewStore(cat)
			t.Cleanup(states.Stop)
			syncer := persist.NewSynchronizer(states, durable)

			sessions := make(chan struct{})
			w := newEconomyWorker(states, syncer, durable, sessions)
			w.drainTimeout = tt.drainTimeout

			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- w.Start(ctx) }()
			cancel()

			// A connection closing during shutdown changes state after the queue was flushed.
			if tt.closeSessions {
				err = states.Do(context.Background(), "u1", func(st *economy.State) error {
					st.Gold = 77
					return nil
				})
				if err != nil {
					t.Fatalf("mutating state: %v", err)
				}
				syncer.Schedule(context.Background(), "u1")
				close(sessions)
			}

			select {
			case err := <-done:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			case <-time.After(10 * time.Second):
				t.Fatal("economy worker did not stop")
			}

			testutil.AssertEqual(t, "saved gold", durable.gold("u1"), tt.expGold)
			testutil.AssertEqual(t, "closed", durable.closed, true)
		})
	}
}
