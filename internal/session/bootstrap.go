package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pixil98/go-fishing/internal/protocol"
)

// Economy makes sure an identity has a resident economy record.
type Economy interface {
	Ensure(ctx context.Context, identity string) error
}

// Fanout delivers encoded frames to rooms and single connections.
type Fanout interface {
	Listen(room, connID string, deliver func(frame []byte)) (func(), error)
	ToRoom(room string, frame []byte, exclude string) error
	ToSession(connID string, frame []byte) error
}

// Scheduler queues an identity for durable persistence.
type Scheduler interface {
	Schedule(ctx context.Context, identity string)
}

// Bootstrapper joins connections to rooms and tears them down on disconnect.
type Bootstrapper struct {
	registry *Registry
	economy  Economy
	fanout   Fanout
	persist  Scheduler
	now      func() time.Time
}

func NewBootstrapper(reg *Registry, econ Economy, fan Fanout, sched Scheduler, opts ...BootstrapperOpt) *Bootstrapper {
	b := &Bootstrapper{
		registry: reg,
		economy:  econ,
		fanout:   fan,
		persist:  sched,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Join registers a new session for connID. When the request carries no
// identity the remote address stands in for one. Any existing session with
// the same identity and display name is kicked.
func (b *Bootstrapper) Join(ctx context.Context, connID, remoteAddr string, req protocol.Request) (*Session, error) {
	identity := strings.TrimSpace(req.Identity)
	if identity == "" {
		identity = remoteAddr
	}
	name := strings.TrimSpace(req.DisplayName)
	room := strings.TrimSpace(req.Room)
	if identity == "" || name == "" || room == "" {
		return nil, ErrIncompleteIdentity
	}

	if err := b.economy.Ensure(ctx, identity); err != nil {
		return nil, fmt.Errorf("preparing economy for %s: %w", identity, err)
	}

	sess := New(connID, identity, name, room)
	unsub, err := b.fanout.Listen(room, connID, sess.Deliver)
	if err != nil {
		return nil, fmt.Errorf("subscribing %s to room %q: %w", connID, room, err)
	}
	sess.unsub = unsub

	for _, old := range b.registry.Admit(sess) {
		slog.Info("session taken over", "identity", identity, "displayName", name, "old", old.ConnID, "new", connID)
		old.Kick()
	}

	roster := b.registry.Roster(room)
	b.toSession(sess, protocol.FullRoster(room, roster))

	b.broadcast(room, connID, protocol.JoinNotice(protocol.Notice{
		Room:        room,
		Identity:    identity,
		DisplayName: name,
		Text:        fmt.Sprintf("[%s] %s joined the room.", b.stamp(), name),
	}))
	b.broadcast(room, connID, protocol.FullRoster(room, roster))

	slog.Info("session joined", "conn", connID, "identity", identity, "displayName", name, "room", room, "sessions", b.registry.Len())
	return sess, nil
}

// Leave tears down a session whose connection has closed. Sessions that
// were taken over are already gone from the registry, so the room is only
// told about sessions that were still present.
func (b *Bootstrapper) Leave(ctx context.Context, sess *Session) {
	if sess == nil {
		return
	}
	sess.close()

	if b.registry.Remove(sess.ConnID) {
		b.broadcast(sess.Room, "", protocol.LeaveNotice(protocol.Notice{
			Room:        sess.Room,
			Identity:    sess.Identity,
			DisplayName: sess.DisplayName,
			Text:        fmt.Sprintf("[%s] %s left the room.", b.stamp(), sess.DisplayName),
		}))
		b.broadcast(sess.Room, "", protocol.FullRoster(sess.Room, b.registry.Roster(sess.Room)))
	}

	b.persist.Schedule(ctx, sess.Identity)
	slog.Info("session left", "conn", sess.ConnID, "identity", sess.Identity, "room", sess.Room, "sessions", b.registry.Len())
}

func (b *Bootstrapper) broadcast(room, exclude string, f protocol.Frame) {
	frame, err := protocol.Encode(f)
	if err != nil {
		slog.Error("encoding room frame", "room", room, "type", f.Type, "error", err)
		return
	}
	if err := b.fanout.ToRoom(room, frame, exclude); err != nil {
		slog.Warn("publishing room frame", "room", room, "type", f.Type, "error", err)
	}
}

// toSession sends f over the session subject, handing it to sess directly
// when the bus refuses it.
func (b *Bootstrapper) toSession(sess *Session, f protocol.Frame) {
	frame, err := protocol.Encode(f)
	if err != nil {
		slog.Error("encoding session frame", "conn", sess.ConnID, "type", f.Type, "error", err)
		return
	}
	if err := b.fanout.ToSession(sess.ConnID, frame); err != nil {
		slog.Warn("publishing session frame", "conn", sess.ConnID, "type", f.Type, "error", err)
		sess.Deliver(frame)
	}
}

func (b *Bootstrapper) stamp() string {
	return b.now().Format(time.TimeOnly)
}
