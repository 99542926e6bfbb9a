package catalog

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

// Rarity is one step of the explore rarity roll. Cumulative values must increase and end at 1.
type Rarity struct {
	Prefix     string
	Cumulative float64
	Multiplier float64
}

// Balance holds the tunable game constants.
type Balance struct {
	DrawCooldown   time.Duration
	RareChance     float64
	CatchWeights   []float64
	WindowWidth    int
	WindowMaxStart int

	ExploreCooldown time.Duration
	FleeCooldown    time.Duration
	Rarities        []Rarity
	EnemyBaseHP     int64
	EnemyHPPerRank  int64
	MaxPhases       int

	AttackBase         int64
	AttackPerSkill     int64
	AttackSpread       float64
	RodTierBoost       float64
	AccessoryTierBoost float64
	EnhancementBoost   float64

	EnhanceBaseChance float64
	EnhanceStep       float64
	EnhanceMinChance  float64
}

func DefaultBalance() Balance {
	return Balance{
		DrawCooldown:   5 * time.Minute,
		RareChance:     0.005,
		CatchWeights:   []float64{38.5, 25, 15, 8, 5, 3, 2, 1, 0.7, 0.3, 1},
		WindowWidth:    9,
		WindowMaxStart: 30,

		ExploreCooldown: 10 * time.Minute,
		FleeCooldown:    2 * time.Minute,
		Rarities: []Rarity{
			{Prefix: "Wild", Cumulative: 0.70, Multiplier: 1.0},
			{Prefix: "Fierce", Cumulative: 0.90, Multiplier: 1.5},
			{Prefix: "Ancient", Cumulative: 0.98, Multiplier: 2.0},
			{Prefix: "Abyssal", Cumulative: 1.0, Multiplier: 3.0},
		},
		EnemyBaseHP:    100,
		EnemyHPPerRank: 40,
		MaxPhases:      5,

		AttackBase:         20,
		AttackPerSkill:     10,
		AttackSpread:       2.0,
		RodTierBoost:       0.1,
		AccessoryTierBoost: 0.05,
		EnhancementBoost:   0.1,

		EnhanceBaseChance: 90,
		EnhanceStep:       10,
		EnhanceMinChance:  10,
	}
}

func (b *Balance) Validate() error {
	el := errors.NewErrorList()

	if b.DrawCooldown < 0 {
		el.Add(fmt.Errorf("draw cooldown must not be negative"))
	}
	if b.RareChance < 0 || b.RareChance > 1 {
		el.Add(fmt.Errorf("rare chance must be between 0 and 1"))
	}
	if len(b.CatchWeights) == 0 {
		el.Add(fmt.Errorf("catch weights are required"))
	}
	for i, w := range b.CatchWeights {
		if w < 0 {
			el.Add(fmt.Errorf("catch weight %d must not be negative", i))
		}
	}
	if b.WindowWidth < 1 {
		el.Add(fmt.Errorf("window width must be at least 1"))
	}
	if b.WindowMaxStart < 0 {
		el.Add(fmt.Errorf("window max start must not be negative"))
	}
	if b.ExploreCooldown < 0 || b.FleeCooldown < 0 {
		el.Add(fmt.Errorf("explore and flee cooldowns must not be negative"))
	}
	if len(b.Rarities) == 0 {
		el.Add(fmt.Errorf("at least one rarity is required"))
	} else if last := b.Rarities[len(b.Rarities)-1]; last.Cumulative != 1 {
		el.Add(fmt.Errorf("last rarity must have a cumulative probability of 1"))
	}
	prev := 0.0
	for _, r := range b.Rarities {
		if r.Cumulative <= prev {
			el.Add(fmt.Errorf("rarity %q: cumulative probabilities must increase", r.Prefix))
		}
		if r.Multiplier <= 0 {
			el.Add(fmt.Errorf("rarity %q: multiplier must be positive", r.Prefix))
		}
		prev = r.Cumulative
	}
	if b.EnemyBaseHP < 1 {
		el.Add(fmt.Errorf("enemy base hp must be at least 1"))
	}
	if b.MaxPhases < 1 {
		el.Add(fmt.Errorf("max phases must be at least 1"))
	}
	if b.AttackBase < 1 {
		el.Add(fmt.Errorf("attack base must be at least 1"))
	}
	if b.AttackSpread < 1 {
		el.Add(fmt.Errorf("attack spread must be at least 1"))
	}

	return el.Err()
}
