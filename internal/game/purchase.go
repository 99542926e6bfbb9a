package game

import (
	"fmt"

	"github.com/pixil98/go-fishing/internal/catalog"
	"github.com/pixil98/go-fishing/internal/display"
	"github.com/pixil98/go-fishing/internal/economy"
)

// Purchase buys a rod or accessory. price is the client's view of the price;
// zero means the client did not send one, any other value must match the catalog.
func (r *Resolver) Purchase(st *economy.State, name, itemName string, price int64) (Outcome, error) {
	var out Outcome

	it, ok := r.cat.Lookup(itemName)
	if !ok || !it.Kind.Equipment() {
		return out, NewUserError(fmt.Sprintf("%s is not sold in the shop.", itemName))
	}

	var cost int64
	var tier int
	var requires string
	switch it.Kind {
	case catalog.KindRod:
		cost, tier, requires = it.Rod.Price, it.Rod.Tier, it.Rod.Requires
	case catalog.KindAccessory:
		cost, tier, requires = it.Accessory.Price, it.Accessory.Tier, it.Accessory.Requires
	}

	if tier == 0 || st.Count(it.Name) > 0 {
		return out, NewUserError(fmt.Sprintf("You already own %s.", it.Name))
	}
	if requires != "" && st.Count(requires) == 0 {
		return out, NewUserError(fmt.Sprintf("You need %s before you can buy %s.", requires, it.Name))
	}
	if price != 0 && price != cost {
		return out, NewUserError(fmt.Sprintf("%s costs %s gold, not %s.", it.Name, display.Gold(cost), display.Gold(price)))
	}
	if st.Gold < cost {
		return out, NewUserError(fmt.Sprintf("%s costs %s gold but you only have %s.", it.Name, display.Gold(cost), display.Gold(st.Gold)))
	}

	if err := st.Spend(cost); err != nil {
		return out, fmt.Errorf("spending gold: %w", err)
	}
	st.Add(it.Name, 1)
	st.Reequip(r.cat)
	out.Mutated = true
	out.reply(render("bought", tdata{"Item": it.Name, "Price": cost, "Gold": st.Gold}))

	if it.Kind == catalog.KindRod {
		st.Skill++
		out.Room = append(out.Room, render("skill_up", tdata{"Time": r.stamp(), "Name": name, "Skill": st.Skill}))
	}

	return out, nil
}
