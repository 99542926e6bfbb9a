package game

import (
	"fmt"
	"math"
	"math/big"
	"sort"

	"github.com/pixil98/go-fishing/internal/catalog"
	"github.com/pixil98/go-fishing/internal/economy"
)

// Earnings is floor(price * qty * (1 + bonusPercent/100)), computed exactly.
// ok is false when the result does not fit in an int64.
func Earnings(price, qty, bonusPercent int64) (int64, bool) {
	v := new(big.Int).Mul(big.NewInt(price), big.NewInt(qty))
	v.Mul(v, big.NewInt(100+bonusPercent))
	v.Quo(v, big.NewInt(100))
	if !v.IsInt64() {
		return 0, false
	}
	return v.Int64(), true
}

func (r *Resolver) sellBonus(st *economy.State) int64 {
	if acc := st.EquippedAccessory(r.cat); acc != nil {
		return acc.SellBonusPercent
	}
	return 0
}

func credit(st *economy.State, amount int64) error {
	if amount > math.MaxInt64-st.Gold {
		return NewUserError("That would make you richer than the bank can count.")
	}
	st.Gold += amount
	return nil
}

// Sell sells qty of one fish.
func (r *Resolver) Sell(st *economy.State, name, itemName string, qty int64) (Outcome, error) {
	var out Outcome

	if qty <= 0 {
		return out, NewUserError("Quantity must be a positive number.")
	}
	it, ok := r.cat.Lookup(itemName)
	if !ok {
		return out, NewUserError(fmt.Sprintf("There is no item called %s.", itemName))
	}
	if it.Kind.Equipment() {
		return out, NewUserError("Rods and accessories cannot be sold.")
	}
	if it.Kind != catalog.KindFish {
		return out, NewUserError(fmt.Sprintf("Nobody wants to buy %s.", it.Name))
	}
	if have := st.Count(it.Name); have < qty {
		return out, NewUserError(fmt.Sprintf("You only have %d %s.", have, it.Name))
	}

	earned, ok := Earnings(it.Fish.Price, qty, r.sellBonus(st))
	if !ok {
		return out, NewUserError("That sale is too large.")
	}
	if err := credit(st, earned); err != nil {
		return out, err
	}
	if err := st.Remove(it.Name, qty); err != nil {
		return out, fmt.Errorf("removing sold items: %w", err)
	}

	out.Mutated = true
	out.Room = append(out.Room, render("sold", tdata{"Time": r.stamp(), "Name": name, "Qty": qty, "Item": it.Name, "Earned": earned}))
	return out, nil
}

// SellAll sells every fish except the reserved rare fish.
func (r *Resolver) SellAll(st *economy.State, name string) (Outcome, error) {
	var out Outcome

	var names []string
	for item := range st.Inventory {
		if f, ok := r.cat.Fish(item); ok && !f.Branching {
			names = append(names, item)
		}
	}
	if len(names) == 0 {
		return out, NewUserError("You have nothing to sell.")
	}
	sort.Strings(names)

	bonus := r.sellBonus(st)
	var total int64
	sold := make([]string, 0, len(names))
	for _, item := range names {
		f, _ := r.cat.Fish(item)
		qty := st.Count(item)
		earned, ok := Earnings(f.Price, qty, bonus)
		if !ok || earned > math.MaxInt64-total {
			return out, NewUserError("That sale is too large.")
		}
		total += earned
		sold = append(sold, fmt.Sprintf("%d %s", qty, item))
	}
	if err := credit(st, total); err != nil {
		return out, err
	}
	for _, item := range names {
		delete(st.Inventory, item)
	}

	out.Mutated = true
	out.reply(render("sold_all", tdata{"Items": sold, "Earned": total}))
	out.Others = append(out.Others, render("sold_all_public", tdata{"Time": r.stamp(), "Name": name, "Earned": total}))
	return out, nil
}
