package listener

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pixil98/go-fishing/internal/persist"
)

// ChatHistoryLimit caps the lines returned for one identity.
const ChatHistoryLimit = 100

// History reads recorded chat back out of the durable store.
type History interface {
	ChatHistory(ctx context.Context, identity string, limit int) ([]persist.ChatEntry, error)
	ChatRooms(ctx context.Context) ([]string, error)
}

type chatLogsResponse struct {
	Success bool                `json:"success"`
	Logs    []persist.ChatEntry `json:"logs"`
}

type chatRoomsResponse struct {
	Success bool     `json:"success"`
	Rooms   []string `json:"rooms"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func chatLogs(h History) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := mux.Vars(r)["identity"]
		logs, err := h.ChatHistory(r.Context(), identity, ChatHistoryLimit)
		if err != nil {
			writeHistoryError(w, r, "reading chat history", err)
			return
		}
		if logs == nil {
			logs = []persist.ChatEntry{}
		}
		writeJSON(w, http.StatusOK, chatLogsResponse{Success: true, Logs: logs})
	}
}

func chatRooms(h History) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rooms, err := h.ChatRooms(r.Context())
		if err != nil {
			writeHistoryError(w, r, "reading chat rooms", err)
			return
		}
		if rooms == nil {
			rooms = []string{}
		}
		writeJSON(w, http.StatusOK, chatRoomsResponse{Success: true, Rooms: rooms})
	}
}

// writeHistoryError answers 503 while the durable store is unavailable and
// 500 for anything else.
func writeHistoryError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, persist.ErrUnavailable) {
		status = http.StatusServiceUnavailable
	}
	slog.WarnContext(r.Context(), msg, "path", r.URL.Path, "status", status, "error", err)
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("writing json response", "error", err)
	}
}
