package game

import (
	"fmt"

	"github.com/pixil98/go-fishing/internal/economy"
)

// EnhanceChance is the success percentage for enhancing from the given level.
func (r *Resolver) EnhanceChance(level int) float64 {
	b := r.balance
	return max(b.EnhanceMinChance, b.EnhanceBaseChance-b.EnhanceStep*float64(level))
}

// Enhance consumes materials for a chance to raise the equipped rod's enhancement level.
func (r *Resolver) Enhance(st *economy.State, name, material string, qty int64) (Outcome, error) {
	var out Outcome

	if qty <= 0 {
		return out, NewUserError("Quantity must be a positive number.")
	}
	if st.Rod == "" {
		return out, NewUserError("You need a rod equipped to enhance it.")
	}
	it, ok := r.cat.Lookup(material)
	if !ok {
		return out, NewUserError(fmt.Sprintf("There is no item called %s.", material))
	}
	if it.Kind.Equipment() {
		return out, NewUserError("Rods and accessories cannot be used for enhancement.")
	}
	if have := st.Count(it.Name); have < qty {
		return out, NewUserError(fmt.Sprintf("You only have %d %s.", have, it.Name))
	}

	chance := r.EnhanceChance(st.Enhancement)
	if err := st.Remove(it.Name, qty); err != nil {
		return out, fmt.Errorf("removing enhancement materials: %w", err)
	}
	out.Mutated = true

	if r.rand.Float64()*100 >= chance {
		out.reply(render("enhance_failed", tdata{"Chance": chance, "Qty": qty, "Material": it.Name}))
		return out, nil
	}

	st.Enhancement++
	out.Room = append(out.Room, render("enhanced", tdata{"Time": r.stamp(), "Name": name, "Rod": st.Rod, "Level": st.Enhancement}))
	return out, nil
}
