package game

import (
	"fmt"

	"github.com/pixil98/go-fishing/internal/catalog"
	"github.com/pixil98/go-fishing/internal/economy"
)

// Equip puts an owned rod or accessory in its slot. Naming the tier 0 entry empties the slot.
// The next purchase or reward re-equips the best owned gear.
func (r *Resolver) Equip(st *economy.State, itemName string) (Outcome, error) {
	var out Outcome

	it, ok := r.cat.Lookup(itemName)
	if !ok || !it.Kind.Equipment() {
		return out, NewUserError(fmt.Sprintf("%s is not a rod or accessory.", itemName))
	}

	tier := 0
	switch it.Kind {
	case catalog.KindRod:
		tier = it.Rod.Tier
	case catalog.KindAccessory:
		tier = it.Accessory.Tier
	}
	if tier > 0 && st.Count(it.Name) == 0 {
		return out, NewUserError(fmt.Sprintf("You do not own %s.", it.Name))
	}

	slot := ""
	if tier > 0 {
		slot = it.Name
	}
	switch it.Kind {
	case catalog.KindRod:
		if st.Rod == slot {
			return out, NewUserError(fmt.Sprintf("%s is already equipped.", it.Name))
		}
		st.Rod = slot
	case catalog.KindAccessory:
		if st.Accessory == slot {
			return out, NewUserError(fmt.Sprintf("%s is already equipped.", it.Name))
		}
		st.Accessory = slot
	}

	out.Mutated = true
	out.reply(render("equipped", tdata{"Item": it.Name}))
	return out, nil
}

// SetAquarium displays a held fish in the player's aquarium.
func (r *Resolver) SetAquarium(st *economy.State, name, fishName string) (Outcome, error) {
	var out Outcome

	f, ok := r.cat.Fish(fishName)
	if !ok {
		return out, NewUserError(fmt.Sprintf("There is no fish called %s.", fishName))
	}
	if st.Count(f.Name) == 0 {
		return out, NewUserError(fmt.Sprintf("You do not have any %s.", f.Name))
	}

	st.Aquarium = f.Name
	out.Mutated = true
	out.reply(render("aquarium_set", tdata{"Fish": f.Name}))
	out.Others = append(out.Others, render("aquarium_public", tdata{"Time": r.stamp(), "Name": name, "Fish": f.Name}))
	return out, nil
}

// Aquarium describes the fish on display.
func (r *Resolver) Aquarium(snap economy.Snapshot) Outcome {
	var out Outcome
	out.reply(render("aquarium", tdata{"Fish": snap.Aquarium}))
	return out
}
