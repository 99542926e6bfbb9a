package listener

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pixil98/go-fishing/internal/catalog"
	"github.com/pixil98/go-fishing/internal/commands"
	"github.com/pixil98/go-fishing/internal/economy"
	"github.com/pixil98/go-fishing/internal/game"
	"github.com/pixil98/go-fishing/internal/messaging"
	"github.com/pixil98/go-fishing/internal/persist"
	"github.com/pixil98/go-fishing/internal/protocol"
	"github.com/pixil98/go-fishing/internal/session"
	"github.com/pixil98/go-testutil"
)

type constRand struct{}

func (constRand) Float64() float64 { return 0.1 }
func (constRand) IntN(int) int     { return 0 }

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type stack struct {
	url   string
	store *economy.Store
}

func newStack(t *testing.T) *stack {
	t.Helper()

	bus, err := messaging.NewNatsServer(messaging.WithPort(-1), messaging.WithStartTimeout(5*time.Second))
	if err != nil {
		t.Fatalf("creating nats server: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	busDone := make(chan error, 1)
	go func() { busDone <- bus.Start(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-busDone
	})
	select {
	case <-bus.Ready():
	case err := <-busDone:
		t.Fatalf("nats server exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for nats server")
	}

	cat, err := catalog.New(catalog.DefaultTable())
	if err != nil {
		t.Fatalf("building catalog: %v", err)
	}
	store := economy.NewStore(cat)
	t.Cleanup(store.Stop)

	syncer := persist.NewSynchronizer(store, persist.Offline{})
	fanout := messaging.NewBroadcaster(bus)
	registry := session.NewRegistry()
	boot := session.NewBootstrapper(registry, store, fanout, syncer)
	resolver := game.NewResolver(cat, catalog.DefaultBalance(), game.WithRand(constRand{}))
	disp := commands.NewDispatcher(resolver, store, fanout, registry, persist.Offline{}, syncer)

	cm := NewConnectionManager(boot, disp)
	l := NewWebsocketListener("", cm, persist.Offline{}, bus.Ready())
	srv := httptest.NewServer(l.Handler())
	t.Cleanup(srv.Close)
	t.Cleanup(cm.Stop)

	return &stack{url: srv.URL, store: store}
}

func (s *stack) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(s.url, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dialing: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	expectType(t, conn, protocol.TypeRequestIdentity)
	return conn
}

func send(t *testing.T, conn *websocket.Conn, req protocol.Request) {
	t.Helper()
	if err := conn.WriteJSON(req); err != nil {
		t.Fatalf("writing frame: %v", err)
	}
}

func read(t *testing.T, conn *websocket.Conn) envelope {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatalf("setting deadline: %v", err)
	}
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("reading frame: %v", err)
	}
	return env
}

func expectType(t *testing.T, conn *websocket.Conn, typ string) envelope {
	t.Helper()
	env := read(t, conn)
	testutil.AssertEqual(t, "frame type", env.Type, typ)
	return env
}

// waitFor reads until a frame of typ satisfies match. Lines from other
// players in the room may arrive in between.
func waitFor(t *testing.T, conn *websocket.Conn, typ string, match func(json.RawMessage) bool) json.RawMessage {
	t.Helper()
	var seen []string
	for range 20 {
		env := read(t, conn)
		if env.Type == typ && match(env.Payload) {
			return env.Payload
		}
		seen = append(seen, env.Type+" "+string(env.Payload))
	}
	t.Fatalf("no matching %s frame, saw %v", typ, seen)
	return nil
}

func waitForChat(t *testing.T, conn *websocket.Conn, substr string) string {
	t.Helper()
	payload := waitFor(t, conn, protocol.TypeChatResult, func(p json.RawMessage) bool {
		var res protocol.ChatResult
		return json.Unmarshal(p, &res) == nil && strings.Contains(res.Text, substr)
	})
	var res protocol.ChatResult
	if err := json.Unmarshal(payload, &res); err != nil {
		t.Fatalf("decoding chat: %v", err)
	}
	return res.Text
}

// readChats collects the next n chat lines in arrival order.
func readChats(t *testing.T, conn *websocket.Conn, n int) []string {
	t.Helper()
	var out []string
	for len(out) < n {
		env := read(t, conn)
		if env.Type != protocol.TypeChatResult {
			continue
		}
		var res protocol.ChatResult
		if err := json.Unmarshal(env.Payload, &res); err != nil {
			t.Fatalf("decoding chat: %v", err)
		}
		out = append(out, res.Text)
	}
	return out
}

func join(t *testing.T, conn *websocket.Conn, identity, name, room string) protocol.Roster {
	t.Helper()
	send(t, conn, protocol.Request{Type: protocol.TypeJoin, Identity: identity, DisplayName: name, Room: room})
	env := expectType(t, conn, protocol.TypeFullRoster)
	var roster protocol.Roster
	if err := json.Unmarshal(env.Payload, &roster); err != nil {
		t.Fatalf("decoding roster: %v", err)
	}
	return roster
}

func TestWebsocket_Health(t *testing.T) {
	s := newStack(t)

	resp, err := http.Get(s.url + "/health")
	if err != nil {
		t.Fatalf("requesting health: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}

	testutil.AssertEqual(t, "status", resp.StatusCode, http.StatusOK)
	testutil.AssertEqual(t, "body", strings.TrimSpace(string(body)), `{"status":"ok"}`)
}

func TestWebsocket_Join(t *testing.T) {
	tests := map[string]struct {
		req        protocol.Request
		expType    string
		expMembers []string
	}{
		"complete": {
			req:        protocol.Request{Type: protocol.TypeJoin, Identity: "u1", DisplayName: "Alice", Room: "dock"},
			expType:    protocol.TypeFullRoster,
			expMembers: []string{"Alice"},
		},
		"no identity uses remote address": {
			req:        protocol.Request{Type: protocol.TypeJoin, DisplayName: "Alice", Room: "dock"},
			expType:    protocol.TypeFullRoster,
			expMembers: []string{"Alice"},
		},
		"missing room": {
			req:     protocol.Request{Type: protocol.TypeJoin, Identity: "u1", DisplayName: "Alice"},
			expType: protocol.TypeRequestIdentity,
		},
		"blank name": {
			req:     protocol.Request{Type: protocol.TypeJoin, Identity: "u1", DisplayName: "   ", Room: "dock"},
			expType: protocol.TypeRequestIdentity,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := newStack(t)
			conn := s.dial(t)

			send(t, conn, tt.req)
			env := expectType(t, conn, tt.expType)
			if tt.expMembers == nil {
				return
			}
			var roster protocol.Roster
			if err := json.Unmarshal(env.Payload, &roster); err != nil {
				t.Fatalf("decoding roster: %v", err)
			}
			testutil.AssertEqual(t, "members", slices.Equal(roster.Members, tt.expMembers), true)
		})
	}
}

func TestWebsocket_FramesBeforeJoinAreDropped(t *testing.T) {
	s := newStack(t)
	conn := s.dial(t)

	send(t, conn, protocol.Request{Type: protocol.TypeChatOrCommand, Text: "fish"})
	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("writing: %v", err)
	}

	// The next frame is the join response, nothing was produced for the two above.
	roster := join(t, conn, "u1", "Alice", "dock")
	testutil.AssertEqual(t, "room", roster.Room, "dock")
}

func TestWebsocket_PurchaseEndToEnd(t *testing.T) {
	s := newStack(t)
	conn := s.dial(t)
	join(t, conn, "u1", "Alice", "dock")

	err := s.store.Do(context.Background(), "u1", func(st *economy.State) error {
		st.Gold = 10000
		return nil
	})
	if err != nil {
		t.Fatalf("seeding gold: %v", err)
	}

	send(t, conn, protocol.Request{Type: protocol.TypePurchase, ItemName: "Old Rod", Price: 10000})
	got := readChats(t, conn, 2)
	testutil.AssertEqual(t, "reply", slices.Contains(got, "You bought Old Rod for 10,000 gold. You have 0 gold left."), true)
	testutil.AssertEqual(t, "skill up", slices.ContainsFunc(got, func(s string) bool {
		return strings.HasSuffix(s, "Alice's fishing skill rose to 1!")
	}), true)

	send(t, conn, protocol.Request{Type: protocol.TypeInfoRequest, TargetIdentity: "u1"})
	payload := waitFor(t, conn, protocol.TypeUserInfoSnapshot, func(json.RawMessage) bool { return true })
	var info protocol.UserInfo
	if err := json.Unmarshal(payload, &info); err != nil {
		t.Fatalf("decoding info: %v", err)
	}
	testutil.AssertEqual(t, "gold", info.Gold, int64(0))
	testutil.AssertEqual(t, "skill", info.FishingSkill, 1)
	testutil.AssertEqual(t, "rod", info.Rod, "Old Rod")
	testutil.AssertEqual(t, "owned", info.Inventory["Old Rod"], int64(1))

	send(t, conn, protocol.Request{Type: protocol.TypePurchase, ItemName: "Old Rod", Price: 10000})
	testutil.AssertEqual(t, "duplicate", waitForChat(t, conn, "Old Rod"), "You already own Old Rod.")
}

func TestWebsocket_DrawTwice(t *testing.T) {
	s := newStack(t)
	conn := s.dial(t)
	join(t, conn, "u1", "Alice", "dock")

	send(t, conn, protocol.Request{Type: protocol.TypeChatOrCommand, Text: "fish"})
	waitForChat(t, conn, "Alice caught a Taco Octopus!")

	send(t, conn, protocol.Request{Type: protocol.TypeChatOrCommand, Text: "fish"})
	testutil.AssertEqual(t, "cooldown", waitForChat(t, conn, "fish again"), "You can fish again in 300 seconds.")

	snap, err := s.store.Snapshot(context.Background(), "u1")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	testutil.AssertEqual(t, "caught once", snap.Inventory["Taco Octopus"], int64(1))
}

func TestWebsocket_RoomBroadcast(t *testing.T) {
	s := newStack(t)
	alice := s.dial(t)
	join(t, alice, "u1", "Alice", "dock")
	bob := s.dial(t)
	roster := join(t, bob, "u2", "Bob", "dock")
	testutil.AssertEqual(t, "members", slices.Equal(roster.Members, []string{"Alice", "Bob"}), true)

	waitFor(t, alice, protocol.TypeJoinNotice, func(p json.RawMessage) bool {
		var n protocol.Notice
		return json.Unmarshal(p, &n) == nil && n.DisplayName == "Bob"
	})

	send(t, bob, protocol.Request{Type: protocol.TypeChatOrCommand, Text: "hello dock"})
	waitForChat(t, alice, "Bob: hello dock")
	waitForChat(t, bob, "Bob: hello dock")

	if err := bob.Close(); err != nil {
		t.Fatalf("closing bob: %v", err)
	}
	waitFor(t, alice, protocol.TypeLeaveNotice, func(p json.RawMessage) bool {
		var n protocol.Notice
		return json.Unmarshal(p, &n) == nil && n.DisplayName == "Bob"
	})
}

func TestWebsocket_ReplyFollowsRoomLine(t *testing.T) {
	s := newStack(t)
	conn := s.dial(t)
	join(t, conn, "u1", "Alice", "dock")

	err := s.store.Do(context.Background(), "u1", func(st *economy.State) error {
		st.Gold = 10000
		return nil
	})
	if err != nil {
		t.Fatalf("seeding gold: %v", err)
	}

	send(t, conn, protocol.Request{Type: protocol.TypePurchase, ItemName: "Old Rod"})
	got := readChats(t, conn, 2)
	testutil.AssertEqual(t, "reply first", got[0], "You bought Old Rod for 10,000 gold. You have 0 gold left.")
	testutil.AssertEqual(t, "room line second", strings.HasSuffix(got[1], "Alice's fishing skill rose to 1!"), true)

	send(t, conn, protocol.Request{Type: protocol.TypeChatOrCommand, Text: "rooms"})
	testutil.AssertEqual(t, "rooms", waitForChat(t, conn, "rooms"), "Active rooms: dock (1).")
}

func TestWebsocket_DuplicateJoinEvicts(t *testing.T) {
	s := newStack(t)
	first := s.dial(t)
	join(t, first, "u1", "Alice", "dock")

	second := s.dial(t)
	roster := join(t, second, "u1", "Alice", "dock")
	testutil.AssertEqual(t, "members", slices.Equal(roster.Members, []string{"Alice"}), true)

	testutil.AssertEqual(t, "notice", waitForChat(t, first, "taken over"), takeoverMessage)
	if err := first.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatalf("setting deadline: %v", err)
	}
	for {
		if _, _, err := first.ReadMessage(); err != nil {
			break
		}
	}

	send(t, second, protocol.Request{Type: protocol.TypeChatOrCommand, Text: "fish"})
	waitForChat(t, second, "Alice caught")
}
