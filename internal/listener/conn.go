package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pixil98/go-fishing/internal/protocol"
	"github.com/pixil98/go-fishing/internal/session"
)

const (
	DefaultWriteTimeout = 10 * time.Second
	DefaultReadLimit    = 64 * 1024
)

const takeoverMessage = "Another connection has taken over your session."

// Joiner admits connections into rooms and tears them down again.
type Joiner interface {
	Join(ctx context.Context, connID, remoteAddr string, req protocol.Request) (*session.Session, error)
	Leave(ctx context.Context, sess *session.Session)
}

// Dispatcher handles frames from joined sessions.
type Dispatcher interface {
	Dispatch(ctx context.Context, sess *session.Session, req protocol.Request)
}

// ConnectionManager upgrades HTTP requests to websockets and runs one loop
// per connection.
type ConnectionManager struct {
	joiner     Joiner
	dispatcher Dispatcher
	upgrader   websocket.Upgrader

	writeTimeout time.Duration
	readLimit    int64

	wg          sync.WaitGroup
	connCtx     context.Context
	cancelConns context.CancelFunc
}

func NewConnectionManager(j Joiner, d Dispatcher, opts ...ConnectionManagerOpt) *ConnectionManager {
	ctx, cancel := context.WithCancel(context.Background())
	m := &ConnectionManager{
		joiner:     j,
		dispatcher: d,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		writeTimeout: DefaultWriteTimeout,
		readLimit:    DefaultReadLimit,
		connCtx:      ctx,
		cancelConns:  cancel,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// ServeHTTP upgrades the request and blocks until the connection ends.
func (m *ConnectionManager) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if m.connCtx.Err() != nil {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}

	ws, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("upgrading websocket", "remote", r.RemoteAddr, "error", err)
		return
	}

	m.wg.Add(1)
	defer m.wg.Done()
	defer func() {
		if err := ws.Close(); err != nil {
			slog.Debug("closing websocket", "remote", r.RemoteAddr, "error", err)
		}
	}()

	c := &connection{
		id:           uuid.NewString(),
		remoteAddr:   r.RemoteAddr,
		ws:           ws,
		writeTimeout: m.writeTimeout,
	}
	ws.SetReadLimit(m.readLimit)

	if err := m.run(m.connCtx, c); err != nil && !errors.Is(err, context.Canceled) {
		slog.Info("connection ended", "conn", c.id, "remote", c.remoteAddr, "error", err)
	}
}

// Stop cancels every open connection and waits for their loops to finish.
func (m *ConnectionManager) Stop() {
	m.cancelConns()
	m.wg.Wait()
}

type connection struct {
	id           string
	remoteAddr   string
	ws           *websocket.Conn
	writeTimeout time.Duration
	sess         *session.Session
}

func (m *ConnectionManager) run(ctx context.Context, c *connection) error {
	quit := make(chan struct{})
	defer close(quit)

	input := make(chan []byte)
	inputErr := make(chan error, 1)
	go func() {
		defer close(input)
		for {
			_, data, err := c.ws.ReadMessage()
			if err != nil {
				inputErr <- err
				return
			}
			select {
			case input <- data:
			case <-quit:
				return
			}
		}
	}()

	defer func() {
		if c.sess != nil {
			m.joiner.Leave(context.WithoutCancel(ctx), c.sess)
		}
	}()

	if err := c.send(protocol.RequestIdentity()); err != nil {
		return err
	}

	for {
		// Both are nil until the connection has joined, which disables the cases.
		var msgs <-chan []byte
		var done <-chan struct{}
		if c.sess != nil {
			msgs = c.sess.Messages()
			done = c.sess.Done()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-done:
			if err := c.send(protocol.Chat(takeoverMessage)); err != nil {
				slog.Warn("writing takeover notice", "conn", c.id, "error", err)
			}
			return session.ErrTakenOver

		case frame := <-msgs:
			if err := c.write(frame); err != nil {
				return err
			}

		case data, ok := <-input:
			if !ok {
				select {
				case err := <-inputErr:
					if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
						return nil
					}
					return err
				default:
					return nil
				}
			}
			if err := m.handle(ctx, c, data); err != nil {
				return err
			}
		}
	}
}

// handle processes one inbound frame. Only write failures end the connection.
func (m *ConnectionManager) handle(ctx context.Context, c *connection, data []byte) error {
	req, err := protocol.Decode(data)
	if err != nil {
		slog.DebugContext(ctx, "dropping frame", "conn", c.id, "error", err)
		return nil
	}

	if req.Type == protocol.TypeJoin {
		if c.sess != nil {
			slog.DebugContext(ctx, "ignoring repeated join", "conn", c.id)
			return nil
		}
		sess, err := m.joiner.Join(ctx, c.id, c.remoteAddr, req)
		switch {
		case errors.Is(err, session.ErrIncompleteIdentity):
			return c.send(protocol.RequestIdentity())
		case err != nil:
			slog.ErrorContext(ctx, "joining room", "conn", c.id, "error", err)
			return c.send(protocol.Chat("Unable to join right now. Please try again."))
		}
		c.sess = sess
		return nil
	}

	sess, err := c.joined()
	if err != nil {
		slog.DebugContext(ctx, "dropping frame", "conn", c.id, "type", req.Type, "error", err)
		return nil
	}

	m.dispatcher.Dispatch(ctx, sess, req)
	return nil
}

func (c *connection) joined() (*session.Session, error) {
	if c.sess == nil {
		return nil, session.ErrNotJoined
	}
	return c.sess, nil
}

func (c *connection) send(f protocol.Frame) error {
	frame, err := protocol.Encode(f)
	if err != nil {
		return err
	}
	return c.write(frame)
}

func (c *connection) write(frame []byte) error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
		return fmt.Errorf("setting write deadline: %w", err)
	}
	if err := c.ws.WriteMessage(websocket.TextMessage, frame); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}
