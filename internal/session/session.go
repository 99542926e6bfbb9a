package session

import (
	"errors"
	"log/slog"
	"sync"
)

const DefaultBufferSize = 64

var (
	// ErrNotJoined is returned for requests that need a joined session.
	ErrNotJoined = errors.New("connection has not joined a room")
	// ErrIncompleteIdentity is returned when a join lacks a display name or room.
	ErrIncompleteIdentity = errors.New("display name and room are required")
	// ErrTakenOver ends a connection whose session was claimed by a newer one.
	ErrTakenOver = errors.New("session taken over by another connection")
)

// Session is one joined websocket connection.
type Session struct {
	ConnID      string
	Identity    string
	DisplayName string
	Room        string

	msgs chan []byte
	done chan struct{}

	kickOnce  sync.Once
	closeOnce sync.Once
	unsub     func()
}

func New(connID, identity, displayName, room string) *Session {
	return &Session{
		ConnID:      connID,
		Identity:    identity,
		DisplayName: displayName,
		Room:        room,
		msgs:        make(chan []byte, DefaultBufferSize),
		done:        make(chan struct{}),
	}
}

// Kick tells the connection loop that another connection took over. Safe to call repeatedly.
func (s *Session) Kick() {
	s.kickOnce.Do(func() { close(s.done) })
}

// Done is closed once the session has been kicked.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Messages carries encoded frames addressed to this session.
func (s *Session) Messages() <-chan []byte {
	return s.msgs
}

// Deliver queues a frame for the connection without blocking. Frames for a
// connection that has fallen this far behind are dropped.
func (s *Session) Deliver(frame []byte) {
	select {
	case s.msgs <- frame:
	default:
		slog.Warn("session buffer full, dropping frame", "conn", s.ConnID, "identity", s.Identity)
	}
}

// matches reports whether o is the same (identity, display name) pair.
func (s *Session) matches(o *Session) bool {
	return s.Identity == o.Identity && s.DisplayName == o.DisplayName
}

func (s *Session) close() {
	s.closeOnce.Do(func() {
		if s.unsub != nil {
			s.unsub()
		}
	})
}
