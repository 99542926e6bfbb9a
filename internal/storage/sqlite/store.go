// Package sqlite keeps economy records and the chat log in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/pixil98/go-fishing/internal/economy"
	"github.com/pixil98/go-fishing/internal/persist"
	"github.com/pixil98/go-fishing/internal/storage/sqlite/migrations"
)

var _ persist.Store = (*Store)(nil)

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}
	if err := migrate(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) LoadEconomy(ctx context.Context, identity string) (economy.Snapshot, bool, error) {
	var (
		snap         economy.Snapshot
		inventory    string
		lastDraw     int64
		exploreReady int64
	)

	err := s.db.QueryRowContext(ctx, `
SELECT identity, gold, inventory, rod, accessory, enhancement, skill, last_draw_at, explore_ready_at, aquarium
FROM economy WHERE identity = ?`, identity).Scan(
		&snap.Identity,
		&snap.Gold,
		&inventory,
		&snap.Rod,
		&snap.Accessory,
		&snap.Enhancement,
		&snap.Skill,
		&lastDraw,
		&exploreReady,
		&snap.Aquarium,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return economy.Snapshot{}, false, nil
	}
	if err != nil {
		return economy.Snapshot{}, false, classify(fmt.Errorf("loading economy %q: %w", identity, err))
	}

	if err := json.Unmarshal([]byte(inventory), &snap.Inventory); err != nil {
		return economy.Snapshot{}, false, fmt.Errorf("decoding inventory of %q: %w", identity, err)
	}
	snap.LastDraw = fromMillis(lastDraw)
	snap.ExploreReady = fromMillis(exploreReady)

	return snap, true, nil
}

// SaveEconomy upserts the full record for snap.Identity.
func (s *Store) SaveEconomy(ctx context.Context, snap economy.Snapshot) error {
	if snap.Identity == "" {
		return fmt.Errorf("identity is required")
	}

	inventory := snap.Inventory
	if inventory == nil {
		inventory = map[string]int64{}
	}
	encoded, err := json.Marshal(inventory)
	if err != nil {
		return fmt.Errorf("encoding inventory: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO economy (
    identity, gold, inventory, rod, accessory, enhancement, skill, last_draw_at, explore_ready_at, aquarium, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(identity) DO UPDATE SET
    gold = excluded.gold,
    inventory = excluded.inventory,
    rod = excluded.rod,
    accessory = excluded.accessory,
    enhancement = excluded.enhancement,
    skill = excluded.skill,
    last_draw_at = excluded.last_draw_at,
    explore_ready_at = excluded.explore_ready_at,
    aquarium = excluded.aquarium,
    updated_at = excluded.updated_at`,
		snap.Identity,
		snap.Gold,
		string(encoded),
		snap.Rod,
		snap.Accessory,
		snap.Enhancement,
		snap.Skill,
		toMillis(snap.LastDraw),
		toMillis(snap.ExploreReady),
		snap.Aquarium,
		toMillis(time.Now()),
	)
	if err != nil {
		return classify(fmt.Errorf("saving economy %q: %w", snap.Identity, err))
	}
	return nil
}

func (s *Store) AppendChat(ctx context.Context, entry persist.ChatEntry) error {
	at := entry.At
	if at.IsZero() {
		at = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO chat_logs (room, identity, display_name, text, created_at) VALUES (?, ?, ?, ?, ?)`,
		entry.Room,
		entry.Identity,
		entry.DisplayName,
		entry.Text,
		toMillis(at),
	)
	if err != nil {
		return classify(fmt.Errorf("appending chat: %w", err))
	}
	return nil
}

// ChatHistory returns the newest limit lines spoken by identity, oldest first.
func (s *Store) ChatHistory(ctx context.Context, identity string, limit int) ([]persist.ChatEntry, error) {
	if limit <= 0 {
		return []persist.ChatEntry{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT room, identity, display_name, text, created_at FROM (
    SELECT id, room, identity, display_name, text, created_at
    FROM chat_logs WHERE identity = ?
    ORDER BY created_at DESC, id DESC
    LIMIT ?
) ORDER BY created_at, id`, identity, limit)
	if err != nil {
		return nil, classify(fmt.Errorf("querying chat history of %q: %w", identity, err))
	}
	defer func() { _ = rows.Close() }()

	entries := []persist.ChatEntry{}
	for rows.Next() {
		var (
			e  persist.ChatEntry
			at int64
		)
		if err := rows.Scan(&e.Room, &e.Identity, &e.DisplayName, &e.Text, &at); err != nil {
			return nil, fmt.Errorf("scanning chat line: %w", err)
		}
		e.At = fromMillis(at)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(fmt.Errorf("reading chat history of %q: %w", identity, err))
	}
	return entries, nil
}

// ChatRooms lists every room with chat on record, sorted by name.
func (s *Store) ChatRooms(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT room FROM chat_logs ORDER BY room`)
	if err != nil {
		return nil, classify(fmt.Errorf("querying chat rooms: %w", err))
	}
	defer func() { _ = rows.Close() }()

	rooms := []string{}
	for rows.Next() {
		var room string
		if err := rows.Scan(&room); err != nil {
			return nil, fmt.Errorf("scanning chat room: %w", err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(fmt.Errorf("reading chat rooms: %w", err))
	}
	return rooms, nil
}

// classify marks errors that mean the database cannot be reached right now.
func classify(err error) error {
	if errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %w", persist.ErrUnavailable, err)
	}

	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() & 0xff {
		case sqlite3lib.SQLITE_BUSY, sqlite3lib.SQLITE_LOCKED, sqlite3lib.SQLITE_CANTOPEN, sqlite3lib.SQLITE_IOERR:
			return fmt.Errorf("%w: %w", persist.ErrUnavailable, err)
		}
	}

	if strings.Contains(err.Error(), "database is closed") {
		return fmt.Errorf("%w: %w", persist.ErrUnavailable, err)
	}

	return err
}

// Zero times are stored as 0.
func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
