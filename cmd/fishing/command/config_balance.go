package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-fishing/internal/catalog"
)

// BalanceConfig overrides individual game constants. Unset fields keep
// their defaults.
type BalanceConfig struct {
	DrawCooldown    string    `json:"draw_cooldown"`
	RareChance      *float64  `json:"rare_chance"`
	CatchWeights    []float64 `json:"catch_weights"`
	ExploreCooldown string    `json:"explore_cooldown"`
	FleeCooldown    string    `json:"flee_cooldown"`
	MaxPhases       int       `json:"max_phases"`
}

func (c *BalanceConfig) validate() error {
	b, err := c.build()
	if err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return fmt.Errorf("balance: %w", err)
	}
	return nil
}

func (c *BalanceConfig) build() (catalog.Balance, error) {
	b := catalog.DefaultBalance()
	el := errors.NewErrorList()

	durations := []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"draw_cooldown", c.DrawCooldown, &b.DrawCooldown},
		{"explore_cooldown", c.ExploreCooldown, &b.ExploreCooldown},
		{"flee_cooldown", c.FleeCooldown, &b.FleeCooldown},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			el.Add(fmt.Errorf("balance: parsing %s: %w", d.name, err))
			continue
		}
		*d.dst = v
	}

	if c.RareChance != nil {
		b.RareChance = *c.RareChance
	}
	if len(c.CatchWeights) > 0 {
		b.CatchWeights = c.CatchWeights
	}
	if c.MaxPhases > 0 {
		b.MaxPhases = c.MaxPhases
	}

	return b, el.Err()
}
