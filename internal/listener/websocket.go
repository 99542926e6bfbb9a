package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/gorilla/mux"
)

const DefaultShutdownTimeout = 5 * time.Second

// WebsocketListener serves the websocket endpoint, the chat history API and a health check.
type WebsocketListener struct {
	addr    string
	cm      *ConnectionManager
	ready   <-chan struct{}
	router  *mux.Router
	stopped chan struct{}
}

// NewWebsocketListener builds the HTTP routes. When ready is non-nil Start
// waits for it to close before accepting connections.
func NewWebsocketListener(addr string, cm *ConnectionManager, history History, ready <-chan struct{}) *WebsocketListener {
	l := &WebsocketListener{
		addr:    addr,
		cm:      cm,
		ready:   ready,
		stopped: make(chan struct{}),
	}

	r := mux.NewRouter()
	r.Handle("/ws", cm).Methods(http.MethodGet)
	r.HandleFunc("/health", health).Methods(http.MethodGet)
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/chatlogs/{identity}", chatLogs(history)).Methods(http.MethodGet)
	api.HandleFunc("/chatrooms", chatRooms(history)).Methods(http.MethodGet)
	l.router = r

	return l
}

// Stopped is closed once Start has returned and every connection loop,
// and with it every session teardown, has finished.
func (l *WebsocketListener) Stopped() <-chan struct{} {
	return l.stopped
}

// Handler exposes the routes, mainly for httptest.
func (l *WebsocketListener) Handler() http.Handler {
	return l.router
}

func (l *WebsocketListener) Start(ctx context.Context) error {
	defer close(l.stopped)

	if l.ready != nil {
		select {
		case <-l.ready:
		case <-ctx.Done():
			return nil
		}
	}

	ln, err := net.Listen("tcp", l.addr)
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("address %s is already in use (another server running?)", l.addr)
		}
		return fmt.Errorf("listening on %s: %w", l.addr, err)
	}

	srv := &http.Server{
		Handler:           l.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan struct{})
	shutdown := make(chan struct{})
	go func() {
		defer close(shutdown)
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Warn("shutting down http server", "error", err)
			}
			l.cm.Stop()
		case <-done:
		}
	}()

	slog.Info("websocket listener started", "address", ln.Addr().String())
	err = srv.Serve(ln)
	close(done)
	<-shutdown
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving http on %s: %w", l.addr, err)
	}

	return nil
}

func health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
