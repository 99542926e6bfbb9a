package messaging

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Bus is the subset of NatsServer the broadcaster needs.
type Bus interface {
	Publish(subject string, data []byte) error
	Subscribe(handler func(data []byte), subjects ...string) (func(), error)
}

// envelope wraps an already encoded frame with fan-out metadata.
type envelope struct {
	Exclude string          `json:"exclude,omitempty"`
	Frame   json.RawMessage `json:"frame"`
}

// Broadcaster fans frames out to rooms and single sessions over the bus.
type Broadcaster struct {
	bus Bus
}

func NewBroadcaster(bus Bus) *Broadcaster {
	return &Broadcaster{bus: bus}
}

// RoomSubject is the subject every member of room listens on. Room names are
// free text, so they are hex encoded into a single subject token.
func RoomSubject(room string) string {
	return "room." + hex.EncodeToString([]byte(room))
}

// SessionSubject is the subject only the given connection listens on.
func SessionSubject(connID string) string {
	return "session." + connID
}

// ToRoom delivers frame to every member of room except the exclude connection.
func (b *Broadcaster) ToRoom(room string, frame []byte, exclude string) error {
	data, err := json.Marshal(envelope{Exclude: exclude, Frame: frame})
	if err != nil {
		return fmt.Errorf("encoding envelope: %w", err)
	}
	if err := b.bus.Publish(RoomSubject(room), data); err != nil {
		return fmt.Errorf("publishing to room %q: %w", room, err)
	}
	return nil
}

// ToSession delivers frame to a single connection.
func (b *Broadcaster) ToSession(connID string, frame []byte) error {
	data, err := json.Marshal(envelope{Frame: frame})
	if err != nil {
		return fmt.Errorf("encoding envelope: %w", err)
	}
	if err := b.bus.Publish(SessionSubject(connID), data); err != nil {
		return fmt.Errorf("publishing to session %s: %w", connID, err)
	}
	return nil
}

// Listen subscribes connID to its room and session subjects. deliver is
// called from a single bus goroutine in publish order and must not block.
// The returned function drops both subscriptions.
func (b *Broadcaster) Listen(room, connID string, deliver func(frame []byte)) (func(), error) {
	handler := func(data []byte) {
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			slog.Warn("dropping malformed broadcast", "conn", connID, "error", err)
			return
		}
		if env.Exclude == connID {
			return
		}
		deliver(env.Frame)
	}

	return b.bus.Subscribe(handler, RoomSubject(room), SessionSubject(connID))
}
