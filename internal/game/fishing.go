package game

import (
	"time"

	"github.com/pixil98/go-fishing/internal/catalog"
	"github.com/pixil98/go-fishing/internal/economy"
)

// Fish draws one reward for the actor if the draw cooldown has elapsed.
func (r *Resolver) Fish(st *economy.State, name string) (Outcome, error) {
	var out Outcome
	now := r.now()

	if !st.LastDraw.IsZero() {
		if remaining := r.DrawCooldown(st) - now.Sub(st.LastDraw); remaining > 0 {
			out.reply(render("draw_cooldown", tdata{"Seconds": ceilSeconds(remaining)}))
			return out, nil
		}
	}

	fish, rare := r.drawFish(st.Skill)
	st.Add(fish.Name, 1)
	st.LastDraw = now
	st.Reequip(r.cat)

	tmpl := "caught"
	if rare {
		tmpl = "caught_rare"
	}
	out.Room = append(out.Room, render(tmpl, tdata{"Time": r.stamp(), "Name": name, "Fish": fish.Name}))
	out.Mutated = true
	return out, nil
}

// DrawCooldown is the base cooldown minus the equipped accessory's reduction.
func (r *Resolver) DrawCooldown(st *economy.State) time.Duration {
	cd := r.balance.DrawCooldown
	if acc := st.EquippedAccessory(r.cat); acc != nil {
		cd -= acc.CooldownReduction()
	}
	return max(cd, 0)
}

// DrawWindow returns the [start, end) slice of the regular fish list a skill level can reach.
// The opening window, used below skill 2, reaches one fish further than the
// width so that skill 2 only drops the first fish.
func (r *Resolver) DrawWindow(skill int) (int, int) {
	n := len(r.cat.RegularFish())
	start := min(max(skill-1, 0), r.balance.WindowMaxStart, n-1)
	end := start + r.balance.WindowWidth
	if start == 0 {
		end++
	}
	return start, min(end, n)
}

func (r *Resolver) drawFish(skill int) (*catalog.Fish, bool) {
	if r.rand.Float64() < r.balance.RareChance {
		return r.cat.RareFish(), true
	}

	regular := r.cat.RegularFish()
	start, end := r.DrawWindow(skill)

	total := 0.0
	for i := start; i < end; i++ {
		total += r.catchWeight(i - start)
	}

	roll := r.rand.Float64() * total
	cumulative := 0.0
	for i := start; i < end; i++ {
		cumulative += r.catchWeight(i - start)
		if roll < cumulative {
			return &regular[i], false
		}
	}
	return &regular[end-1], false
}

// catchWeight is the weight for a position inside the draw window.
func (r *Resolver) catchWeight(pos int) float64 {
	w := r.balance.CatchWeights
	if pos < len(w) {
		return w[pos]
	}
	return w[len(w)-1]
}
