package game

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-fishing/internal/economy"
)

// Decompose turns fish into their material. The branching fish needs an
// option; without one the request is parked until the actor picks one.
func (r *Resolver) Decompose(st *economy.State, itemName string, qty int64, option string) (Outcome, error) {
	var out Outcome

	if qty <= 0 {
		return out, NewUserError("Quantity must be a positive number.")
	}
	f, ok := r.cat.Fish(itemName)
	if !ok {
		return out, NewUserError(fmt.Sprintf("%s cannot be decomposed.", itemName))
	}
	if have := st.Count(f.Name); have < qty {
		return out, NewUserError(fmt.Sprintf("You only have %d %s.", have, f.Name))
	}

	if !f.Branching {
		if err := st.Remove(f.Name, qty); err != nil {
			return out, fmt.Errorf("removing decomposed items: %w", err)
		}
		st.Add(f.Material, qty)
		out.Mutated = true
		out.reply(render("decomposed", tdata{"Qty": qty, "Item": f.Name, "Material": f.Material}))
		return out, nil
	}

	br := r.cat.Branching()
	switch strings.ToLower(strings.TrimSpace(option)) {
	case "":
		if st.Phase() == economy.AwaitingBattleDecision {
			return out, NewUserError(`Finish your battle first: type "fight" or "flee".`)
		}
		st.AwaitDecomposition(f.Name, qty)
		out.reply(render("decompose_choice", tdata{"Item": f.Name, "Qty": qty, "Shard": br.ShardOption, "Event": br.EventOption}))
		return out, nil

	case strings.ToLower(br.ShardOption):
		if err := st.Remove(f.Name, qty); err != nil {
			return out, fmt.Errorf("removing decomposed items: %w", err)
		}
		st.Add(r.cat.ShardItem(), qty)
		out.reply(render("decomposed", tdata{"Qty": qty, "Item": f.Name, "Material": r.cat.ShardItem()}))

	case strings.ToLower(br.EventOption):
		if err := st.Remove(f.Name, qty); err != nil {
			return out, fmt.Errorf("removing decomposed items: %w", err)
		}
		symbols := make([]string, 0, qty)
		for range qty {
			s := br.Symbols[r.rand.IntN(len(br.Symbols))]
			st.Add(r.cat.SymbolItem(s), 1)
			symbols = append(symbols, s)
		}
		out.reply(render("decomposed_symbols", tdata{"Qty": qty, "Item": f.Name, "Symbols": symbols}))

	default:
		return out, NewUserError(fmt.Sprintf("%q is not a valid option. Choose %s or %s.", option, br.ShardOption, br.EventOption))
	}

	if st.Phase() == economy.AwaitingDecompositionChoice {
		st.ClearPending()
	}
	out.Mutated = true
	return out, nil
}

// ChooseDecomposition completes a parked branching decomposition with an option.
func (r *Resolver) ChooseDecomposition(st *economy.State, option string) (Outcome, error) {
	pending, ok := st.PendingDecomposition()
	if !ok {
		return Outcome{}, NewUserError("Usage: decompose <item> <quantity> [option]")
	}
	return r.Decompose(st, pending.Item, pending.Quantity, option)
}
