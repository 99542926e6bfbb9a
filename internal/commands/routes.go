package commands

import (
	"context"
	"regexp"
	"strconv"

	"github.com/pixil98/go-fishing/internal/economy"
	"github.com/pixil98/go-fishing/internal/game"
	"github.com/pixil98/go-fishing/internal/session"
)

const sellUsage = `Usage: "sell <item> <quantity>" or "sell all".`

// route maps one free text command onto its handler. args holds the
// pattern's capture groups.
type route struct {
	name    string
	pattern *regexp.Regexp
	run     func(ctx context.Context, sess *session.Session, args []string) error
}

func (d *Dispatcher) buildRoutes() []route {
	return []route{
		{
			name:    "fish",
			pattern: regexp.MustCompile(`(?i)^fish$`),
			run: func(ctx context.Context, sess *session.Session, _ []string) error {
				return d.mutate(ctx, sess, func(st *economy.State) (game.Outcome, error) {
					return d.resolver.Fish(st, sess.DisplayName)
				})
			},
		},
		{
			name:    "sell all",
			pattern: regexp.MustCompile(`(?i)^sell\s*all$`),
			run: func(ctx context.Context, sess *session.Session, _ []string) error {
				return d.mutate(ctx, sess, func(st *economy.State) (game.Outcome, error) {
					return d.resolver.SellAll(st, sess.DisplayName)
				})
			},
		},
		{
			name:    "sell",
			pattern: regexp.MustCompile(`(?i)^sell\s+(.+?)\s+(\d+)$`),
			run: func(ctx context.Context, sess *session.Session, args []string) error {
				qty, err := quantity(args[1])
				if err != nil {
					return err
				}
				return d.mutate(ctx, sess, func(st *economy.State) (game.Outcome, error) {
					return d.resolver.Sell(st, sess.DisplayName, args[0], qty)
				})
			},
		},
		{
			name:    "sell usage",
			pattern: regexp.MustCompile(`(?i)^sell$`),
			run: func(_ context.Context, sess *session.Session, _ []string) error {
				d.reply(sess, sellUsage)
				return nil
			},
		},
		{
			name:    "decompose",
			pattern: regexp.MustCompile(`(?i)^decompose\s+(.+?)\s+(\d+)(?:\s+(\S+))?$`),
			run: func(ctx context.Context, sess *session.Session, args []string) error {
				qty, err := quantity(args[1])
				if err != nil {
					return err
				}
				return d.mutate(ctx, sess, func(st *economy.State) (game.Outcome, error) {
					return d.resolver.Decompose(st, args[0], qty, args[2])
				})
			},
		},
		{
			name:    "decompose choice",
			pattern: regexp.MustCompile(`(?i)^decompose\s+(\S+)$`),
			run: func(ctx context.Context, sess *session.Session, args []string) error {
				return d.mutate(ctx, sess, func(st *economy.State) (game.Outcome, error) {
					return d.resolver.ChooseDecomposition(st, args[0])
				})
			},
		},
		{
			name:    "inventory",
			pattern: regexp.MustCompile(`(?i)^inventory$`),
			run: func(ctx context.Context, sess *session.Session, _ []string) error {
				var snap economy.Snapshot
				err := d.economy.Do(ctx, sess.Identity, func(st *economy.State) error {
					snap = st.Snapshot()
					return nil
				})
				if err != nil {
					return err
				}
				d.reply(sess, d.resolver.RenderInventory(snap, sess.DisplayName))
				return nil
			},
		},
		{
			name:    "explore",
			pattern: regexp.MustCompile(`(?i)^explore\s+(.+)$`),
			run: func(ctx context.Context, sess *session.Session, args []string) error {
				return d.mutate(ctx, sess, func(st *economy.State) (game.Outcome, error) {
					return d.resolver.Explore(st, args[0])
				})
			},
		},
		{
			name:    "fight",
			pattern: regexp.MustCompile(`(?i)^fight$`),
			run: func(ctx context.Context, sess *session.Session, _ []string) error {
				return d.mutate(ctx, sess, func(st *economy.State) (game.Outcome, error) {
					return d.resolver.Fight(st, sess.DisplayName)
				})
			},
		},
		{
			name:    "flee",
			pattern: regexp.MustCompile(`(?i)^flee$`),
			run: func(ctx context.Context, sess *session.Session, _ []string) error {
				return d.mutate(ctx, sess, func(st *economy.State) (game.Outcome, error) {
					return d.resolver.Flee(st)
				})
			},
		},
		{
			name:    "enhance",
			pattern: regexp.MustCompile(`(?i)^enhance\s+(.+?)\s+(\d+)$`),
			run: func(ctx context.Context, sess *session.Session, args []string) error {
				qty, err := quantity(args[1])
				if err != nil {
					return err
				}
				return d.mutate(ctx, sess, func(st *economy.State) (game.Outcome, error) {
					return d.resolver.Enhance(st, sess.DisplayName, args[0], qty)
				})
			},
		},
		{
			name:    "equip",
			pattern: regexp.MustCompile(`(?i)^equip\s+(.+)$`),
			run: func(ctx context.Context, sess *session.Session, args []string) error {
				return d.mutate(ctx, sess, func(st *economy.State) (game.Outcome, error) {
					return d.resolver.Equip(st, args[0])
				})
			},
		},
		{
			name:    "aquarium set",
			pattern: regexp.MustCompile(`(?i)^aquarium\s+(.+)$`),
			run: func(ctx context.Context, sess *session.Session, args []string) error {
				return d.mutate(ctx, sess, func(st *economy.State) (game.Outcome, error) {
					return d.resolver.SetAquarium(st, sess.DisplayName, args[0])
				})
			},
		},
		{
			name:    "aquarium",
			pattern: regexp.MustCompile(`(?i)^aquarium$`),
			run: func(ctx context.Context, sess *session.Session, _ []string) error {
				snap, _, err := d.economy.Lookup(ctx, sess.Identity)
				if err != nil {
					return err
				}
				d.publish(sess, d.resolver.Aquarium(snap))
				return nil
			},
		},
		{
			name:    "rooms",
			pattern: regexp.MustCompile(`(?i)^rooms$`),
			run: func(_ context.Context, sess *session.Session, _ []string) error {
				d.reply(sess, d.roomList())
				return nil
			},
		},
		{
			name:    "shop",
			pattern: regexp.MustCompile(`(?i)^shop$`),
			run: func(_ context.Context, sess *session.Session, _ []string) error {
				d.reply(sess, d.resolver.RenderShop())
				return nil
			},
		},
	}
}

// quantity parses a command count. The patterns only admit digits, so the
// only failures are zero and overflow.
func quantity(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, game.NewUserError("Quantity must be a positive number.")
	}
	return n, nil
}
