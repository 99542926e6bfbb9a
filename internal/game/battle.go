package game

import (
	"fmt"
	"math"
	"strings"

	"github.com/pixil98/go-fishing/internal/catalog"
	"github.com/pixil98/go-fishing/internal/economy"
)

// Explore spends one material to track down an enemy based on the material's fish.
func (r *Resolver) Explore(st *economy.State, material string) (Outcome, error) {
	var out Outcome

	if b, ok := st.PendingBattle(); ok {
		return out, NewUserError(fmt.Sprintf(`You are already facing a %s. Type "fight" or "flee".`, b.Enemy))
	}
	f, ok := r.cat.FishForMaterial(material)
	if !ok {
		return out, NewUserError(fmt.Sprintf("%s cannot be used to explore.", material))
	}

	now := r.now()
	if remaining := st.ExploreReady.Sub(now); remaining > 0 {
		out.reply(render("explore_cooldown", tdata{"Seconds": ceilSeconds(remaining)}))
		return out, nil
	}
	if err := st.Remove(f.Material, 1); err != nil {
		return out, NewUserError(fmt.Sprintf("You need a %s to explore.", f.Material))
	}

	rarity := r.rollRarity()
	hp := int64(math.Floor(float64(r.balance.EnemyBaseHP+r.balance.EnemyHPPerRank*int64(f.Rank)) * rarity.Multiplier))
	hp = max(hp, 1)
	enemy := strings.TrimSpace(rarity.Prefix + " " + f.Name)

	if d, ok := st.PendingDecomposition(); ok {
		out.reply(render("decompose_cancelled", tdata{"Item": d.Item, "Qty": d.Quantity}))
	}
	st.AwaitBattle(&economy.Battle{
		Material:   f.Material,
		Enemy:      enemy,
		HP:         hp,
		InitialHP:  hp,
		SourceFish: f.Name,
		SourceRank: f.Rank,
		Multiplier: rarity.Multiplier,
	})
	st.ExploreReady = now.Add(r.balance.ExploreCooldown)

	out.Mutated = true
	out.reply(render("encounter", tdata{"Material": f.Material, "Enemy": enemy, "HP": hp}))
	return out, nil
}

func (r *Resolver) rollRarity() catalog.Rarity {
	roll := r.rand.Float64()
	for _, rarity := range r.balance.Rarities {
		if roll < rarity.Cumulative {
			return rarity
		}
	}
	return r.balance.Rarities[len(r.balance.Rarities)-1]
}

// Phase is one round of a simulated battle.
type Phase struct {
	Damage    int64
	Remaining int64
}

// BattleResult is the full record of a simulated battle.
type BattleResult struct {
	Phases  []Phase
	Victory bool
}

// SimulateBattle runs up to maxPhases rounds against hp, stopping as soon as hp hits zero.
func SimulateBattle(hp int64, maxPhases int, attack func() int64) BattleResult {
	var res BattleResult
	for range maxPhases {
		dmg := max(attack(), 0)
		hp = max(hp-dmg, 0)
		res.Phases = append(res.Phases, Phase{Damage: dmg, Remaining: hp})
		if hp == 0 {
			res.Victory = true
			break
		}
	}
	return res
}

// Attack rolls one phase of the actor's damage.
func (r *Resolver) Attack(st *economy.State) int64 {
	b := r.balance
	low := b.AttackBase + b.AttackPerSkill*int64(st.Skill)
	high := int64(math.Floor(float64(low) * b.AttackSpread))
	raw := low + int64(r.rand.IntN(int(high-low)+1))

	accTier := 0
	if acc := st.EquippedAccessory(r.cat); acc != nil {
		accTier = acc.Tier
	}
	boosted := float64(raw) *
		(1 + b.RodTierBoost*float64(st.RodTier(r.cat))) *
		(1 + b.AccessoryTierBoost*float64(accTier)) *
		(1 + b.EnhancementBoost*float64(st.Enhancement))

	return max(int64(math.Floor(boosted)), 1)
}

// Fight resolves the pending battle. The encounter is cleared whatever the result.
func (r *Resolver) Fight(st *economy.State, name string) (Outcome, error) {
	var out Outcome

	b, ok := st.PendingBattle()
	if !ok {
		return out, NewUserError(`There is nothing to fight. Try "explore <material>" first.`)
	}
	st.ClearPending()
	out.Mutated = true

	res := SimulateBattle(b.HP, r.balance.MaxPhases, func() int64 { return r.Attack(st) })
	for i, p := range res.Phases {
		out.reply(render("phase", tdata{"Phase": i + 1, "Damage": p.Damage, "Enemy": b.Enemy, "HP": p.Remaining, "Initial": b.InitialHP}))
	}

	if !res.Victory {
		out.reply(render("defeat", tdata{"Enemy": b.Enemy, "Phases": len(res.Phases)}))
		return out, nil
	}

	reward := max(int64(math.Floor(float64(b.SourceRank+1)*b.Multiplier)), 1)
	st.Add(r.cat.RewardItem(), reward)
	st.Reequip(r.cat)
	out.reply(render("victory", tdata{"Enemy": b.Enemy, "Reward": reward, "Item": r.cat.RewardItem()}))
	out.Room = append(out.Room, render("victory_public", tdata{"Time": r.stamp(), "Name": name, "Enemy": b.Enemy}))
	return out, nil
}

// Flee abandons the pending battle and shortens the explore cooldown.
func (r *Resolver) Flee(st *economy.State) (Outcome, error) {
	var out Outcome

	b, ok := st.PendingBattle()
	if !ok {
		return out, NewUserError("There is nothing to flee from.")
	}
	st.ClearPending()

	now := r.now()
	if ready := now.Add(r.balance.FleeCooldown); st.ExploreReady.After(ready) {
		st.ExploreReady = ready
	}

	out.Mutated = true
	out.reply(render("fled", tdata{"Enemy": b.Enemy, "Seconds": max(ceilSeconds(st.ExploreReady.Sub(now)), 0)}))
	return out, nil
}
