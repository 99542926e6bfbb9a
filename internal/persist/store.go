package persist

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/pixil98/go-fishing/internal/economy"
)

// ErrUnavailable is returned by a Store that cannot currently reach its backend.
var ErrUnavailable = errors.New("durable store unavailable")

// ChatEntry is one line of room chat.
type ChatEntry struct {
	Room        string    `json:"room"`
	Identity    string    `json:"identity"`
	DisplayName string    `json:"displayName"`
	Text        string    `json:"text"`
	At          time.Time `json:"at"`
}

// Store is the durable home of economy records and the chat log.
type Store interface {
	LoadEconomy(ctx context.Context, identity string) (economy.Snapshot, bool, error)
	SaveEconomy(ctx context.Context, snap economy.Snapshot) error
	AppendChat(ctx context.Context, entry ChatEntry) error
	// ChatHistory returns the newest limit lines spoken by identity, oldest first.
	ChatHistory(ctx context.Context, identity string, limit int) ([]ChatEntry, error)
	// ChatRooms lists every room that has chat on record.
	ChatRooms(ctx context.Context) ([]string, error)
	Close() error
}

// Offline is used when no durable store could be opened. Every call reports ErrUnavailable.
type Offline struct{}

func (Offline) LoadEconomy(context.Context, string) (economy.Snapshot, bool, error) {
	return economy.Snapshot{}, false, ErrUnavailable
}

func (Offline) SaveEconomy(context.Context, economy.Snapshot) error {
	return ErrUnavailable
}

func (Offline) AppendChat(context.Context, ChatEntry) error {
	return ErrUnavailable
}

func (Offline) ChatHistory(context.Context, string, int) ([]ChatEntry, error) {
	return nil, ErrUnavailable
}

func (Offline) ChatRooms(context.Context) ([]string, error) {
	return nil, ErrUnavailable
}

func (Offline) Close() error {
	return nil
}

// Loader adapts a Store for warm-loading. An unavailable store behaves as if
// the identity had never been saved.
func Loader(st Store) economy.Loader {
	return func(ctx context.Context, identity string) (economy.Snapshot, bool, error) {
		snap, found, err := st.LoadEconomy(ctx, identity)
		if errors.Is(err, ErrUnavailable) {
			slog.DebugContext(ctx, "durable store unavailable, starting fresh", "identity", identity)
			return economy.Snapshot{}, false, nil
		}
		return snap, found, err
	}
}
