package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pixil98/go-fishing/internal/economy"
	"github.com/pixil98/go-fishing/internal/game"
	"github.com/pixil98/go-fishing/internal/persist"
	"github.com/pixil98/go-fishing/internal/protocol"
	"github.com/pixil98/go-fishing/internal/session"
)

const genericFailure = "Something went wrong. Please try again."

// Economy runs resolvers against an identity's authoritative state.
type Economy interface {
	Do(ctx context.Context, identity string, fn func(*economy.State) error) error
	Lookup(ctx context.Context, identity string) (economy.Snapshot, bool, error)
}

// Fanout publishes encoded frames to a room or a single connection.
type Fanout interface {
	ToRoom(room string, frame []byte, exclude string) error
	ToSession(connID string, frame []byte) error
}

// Directory lists the rooms with joined sessions.
type Directory interface {
	Rooms() []string
	Roster(room string) []string
}

// ChatLog records plain chat lines.
type ChatLog interface {
	AppendChat(ctx context.Context, entry persist.ChatEntry) error
}

// Scheduler queues an identity for durable persistence.
type Scheduler interface {
	Schedule(ctx context.Context, identity string)
}

// Dispatcher routes decoded frames from a joined session to the resolvers
// and fans the results out.
type Dispatcher struct {
	resolver *game.Resolver
	economy  Economy
	fanout   Fanout
	rooms    Directory
	chat     ChatLog
	persist  Scheduler
	routes   []route
	now      func() time.Time
}

func NewDispatcher(r *game.Resolver, econ Economy, fan Fanout, dir Directory, chat ChatLog, sched Scheduler, opts ...DispatcherOpt) *Dispatcher {
	d := &Dispatcher{
		resolver: r,
		economy:  econ,
		fanout:   fan,
		rooms:    dir,
		chat:     chat,
		persist:  sched,
		now:      time.Now,
	}
	d.routes = d.buildRoutes()

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Dispatch handles one frame. Join frames belong to the bootstrapper and are
// ignored here, as are unknown types.
func (d *Dispatcher) Dispatch(ctx context.Context, sess *session.Session, req protocol.Request) {
	var err error
	switch req.Type {
	case protocol.TypeChatOrCommand:
		err = d.chatOrCommand(ctx, sess, req.Text)
	case protocol.TypePurchase:
		err = d.mutate(ctx, sess, func(st *economy.State) (game.Outcome, error) {
			return d.resolver.Purchase(st, sess.DisplayName, req.ItemName, req.Price)
		})
	case protocol.TypeInfoRequest:
		err = d.info(ctx, sess, req.TargetIdentity)
	case protocol.TypeShopRequest:
		d.shop(sess)
	default:
		slog.DebugContext(ctx, "dropping frame", "conn", sess.ConnID, "type", req.Type)
		return
	}

	if err != nil {
		d.fail(ctx, sess, req.Type, err)
	}
}

func (d *Dispatcher) chatOrCommand(ctx context.Context, sess *session.Session, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	for _, rt := range d.routes {
		m := rt.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		slog.DebugContext(ctx, "running command", "conn", sess.ConnID, "command", rt.name)
		return rt.run(ctx, sess, m[1:])
	}

	return d.say(ctx, sess, text)
}

// say broadcasts plain chat and records it in the room's chat log.
func (d *Dispatcher) say(ctx context.Context, sess *session.Session, text string) error {
	now := d.now()
	d.toRoom(sess.Room, "", fmt.Sprintf("[%s] %s: %s", now.Format(time.TimeOnly), sess.DisplayName, text))

	err := d.chat.AppendChat(ctx, persist.ChatEntry{
		Room:        sess.Room,
		Identity:    sess.Identity,
		DisplayName: sess.DisplayName,
		Text:        text,
		At:          now,
	})
	if err != nil {
		slog.WarnContext(ctx, "appending chat log", "room", sess.Room, "identity", sess.Identity, "error", err)
	}
	return nil
}

// mutate runs fn on the actor's owner goroutine and publishes the outcome.
func (d *Dispatcher) mutate(ctx context.Context, sess *session.Session, fn func(*economy.State) (game.Outcome, error)) error {
	var out game.Outcome
	err := d.economy.Do(ctx, sess.Identity, func(st *economy.State) error {
		var err error
		out, err = fn(st)
		return err
	})
	if err != nil {
		return err
	}

	d.publish(sess, out)
	if out.Mutated {
		d.persist.Schedule(ctx, sess.Identity)
	}
	return nil
}

func (d *Dispatcher) publish(sess *session.Session, out game.Outcome) {
	for _, line := range out.Reply {
		d.reply(sess, line)
	}
	for _, line := range out.Room {
		d.toRoom(sess.Room, "", line)
	}
	for _, line := range out.Others {
		d.toRoom(sess.Room, sess.ConnID, line)
	}
}

func (d *Dispatcher) info(ctx context.Context, sess *session.Session, target string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		target = sess.Identity
	}

	snap, ok, err := d.economy.Lookup(ctx, target)
	if err != nil {
		return fmt.Errorf("looking up %s: %w", target, err)
	}
	if !ok {
		return game.NewUserError(fmt.Sprintf("No player found with id %s.", target))
	}

	info := protocol.UserInfo{
		Identity:     target,
		Inventory:    snap.Inventory,
		Gold:         snap.Gold,
		FishingSkill: snap.Skill,
		Enhancement:  snap.Enhancement,
		Rod:          snap.Rod,
		Accessory:    snap.Accessory,
		Aquarium:     snap.Aquarium,
	}
	if !snap.ExploreReady.IsZero() {
		ready := snap.ExploreReady
		info.ExploreReady = &ready
	}
	d.send(sess, protocol.Info(info))
	return nil
}

func (d *Dispatcher) shop(sess *session.Session) {
	rods, accessories := d.resolver.Shop()
	d.send(sess, protocol.Shop(protocol.ShopCatalog{
		Rods:        shopItems(rods),
		Accessories: shopItems(accessories),
	}))
}

func shopItems(entries []game.ShopEntry) []protocol.ShopItem {
	items := make([]protocol.ShopItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, protocol.ShopItem{Name: e.Name, Price: e.Price, Tier: e.Tier, Requires: e.Requires})
	}
	return items
}

// fail reports an error to the sender. User errors are shown verbatim,
// anything else is logged and replaced by a generic line.
func (d *Dispatcher) fail(ctx context.Context, sess *session.Session, reqType string, err error) {
	var userErr *game.UserError
	if errors.As(err, &userErr) {
		d.reply(sess, userErr.Message)
		return
	}

	slog.ErrorContext(ctx, "handling request", "conn", sess.ConnID, "identity", sess.Identity, "type", reqType, "error", err)
	d.reply(sess, genericFailure)
}

func (d *Dispatcher) reply(sess *session.Session, text string) {
	d.send(sess, protocol.Chat(text))
}

// send goes over the session subject so replies keep their order relative to
// room lines. The frame is handed to the session directly when the bus is down.
func (d *Dispatcher) send(sess *session.Session, f protocol.Frame) {
	frame, err := protocol.Encode(f)
	if err != nil {
		slog.Error("encoding reply", "conn", sess.ConnID, "type", f.Type, "error", err)
		return
	}
	if err := d.fanout.ToSession(sess.ConnID, frame); err != nil {
		slog.Warn("publishing reply", "conn", sess.ConnID, "type", f.Type, "error", err)
		sess.Deliver(frame)
	}
}

// roomList describes every occupied room with its head count.
func (d *Dispatcher) roomList() string {
	rooms := d.rooms.Rooms()
	if len(rooms) == 0 {
		return "Nobody is fishing right now."
	}
	parts := make([]string, 0, len(rooms))
	for _, room := range rooms {
		parts = append(parts, fmt.Sprintf("%s (%d)", room, len(d.rooms.Roster(room))))
	}
	return "Active rooms: " + strings.Join(parts, ", ") + "."
}

func (d *Dispatcher) toRoom(room, exclude, text string) {
	frame, err := protocol.Encode(protocol.Chat(text))
	if err != nil {
		slog.Error("encoding room line", "room", room, "error", err)
		return
	}
	if err := d.fanout.ToRoom(room, frame, exclude); err != nil {
		slog.Warn("publishing room line", "room", room, "error", err)
	}
}
