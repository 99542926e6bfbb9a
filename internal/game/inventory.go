package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pixil98/go-fishing/internal/catalog"
	"github.com/pixil98/go-fishing/internal/display"
	"github.com/pixil98/go-fishing/internal/economy"
)

// RenderInventory formats an identity's holdings for display.
func (r *Resolver) RenderInventory(snap economy.Snapshot, name string) string {
	rod := snap.Rod
	if rod == "" {
		rod = r.cat.Rods()[0].Name
	}
	if snap.Enhancement > 0 {
		rod = fmt.Sprintf("%s +%d", rod, snap.Enhancement)
	}
	acc := snap.Accessory
	if acc == "" {
		acc = r.cat.Accessories()[0].Name
	}

	var fish, other, equipment []string
	names := make([]string, 0, len(snap.Inventory))
	for item := range snap.Inventory {
		names = append(names, item)
	}
	sort.Strings(names)
	for _, item := range names {
		entry := fmt.Sprintf("%s x%d", item, snap.Inventory[item])
		switch kind := r.cat.Kind(item); {
		case kind == catalog.KindFish:
			fish = append(fish, entry)
		case kind.Equipment():
			equipment = append(equipment, item)
		default:
			other = append(other, entry)
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s's inventory\n", name)
	if len(names) == 0 {
		sb.WriteString("Your bag is empty.\n")
	}
	if len(fish) > 0 {
		fmt.Fprintf(&sb, "Fish: %s\n", strings.Join(fish, ", "))
	}
	if len(other) > 0 {
		fmt.Fprintf(&sb, "Items: %s\n", strings.Join(other, ", "))
	}
	if len(equipment) > 0 {
		fmt.Fprintf(&sb, "Equipment: %s\n", strings.Join(equipment, ", "))
	}
	fmt.Fprintf(&sb, "Gold: %s\n", display.Gold(snap.Gold))
	fmt.Fprintf(&sb, "Fishing skill: %d\n", snap.Skill)
	fmt.Fprintf(&sb, "Rod: %s\n", rod)
	fmt.Fprintf(&sb, "Accessory: %s", acc)

	return display.Wrap(sb.String())
}

// ShopEntry is one purchasable item.
type ShopEntry struct {
	Name     string
	Price    int64
	Tier     int
	Requires string
}

// Shop lists every rod and accessory above tier 0.
func (r *Resolver) Shop() (rods []ShopEntry, accessories []ShopEntry) {
	for _, rod := range r.cat.Rods() {
		if rod.Tier > 0 {
			rods = append(rods, ShopEntry{Name: rod.Name, Price: rod.Price, Tier: rod.Tier, Requires: rod.Requires})
		}
	}
	for _, acc := range r.cat.Accessories() {
		if acc.Tier > 0 {
			accessories = append(accessories, ShopEntry{Name: acc.Name, Price: acc.Price, Tier: acc.Tier, Requires: acc.Requires})
		}
	}
	return rods, accessories
}

// RenderShop formats the shop for a chat line.
func (r *Resolver) RenderShop() string {
	rods, accessories := r.Shop()

	var sb strings.Builder
	sb.WriteString("Rods:\n")
	for _, e := range rods {
		fmt.Fprintf(&sb, "  %d. %s - %s gold\n", e.Tier, e.Name, display.Gold(e.Price))
	}
	sb.WriteString("Accessories:\n")
	for _, e := range accessories {
		fmt.Fprintf(&sb, "  %d. %s - %s gold\n", e.Tier, e.Name, display.Gold(e.Price))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
