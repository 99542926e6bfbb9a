package economy

import "github.com/pixil98/go-fishing/internal/catalog"

// Reequip equips the highest tier rod and accessory present in the inventory.
// Tier 0 entries are never in an inventory, so an empty slot means bare hands / none.
func (s *State) Reequip(cat *catalog.Catalog) {
	s.Rod = ""
	for _, r := range cat.Rods() {
		if r.Tier > 0 && s.Count(r.Name) > 0 {
			s.Rod = r.Name
		}
	}

	s.Accessory = ""
	for _, a := range cat.Accessories() {
		if a.Tier > 0 && s.Count(a.Name) > 0 {
			s.Accessory = a.Name
		}
	}
}

// RodTier is the tier of the equipped rod, 0 for bare hands.
func (s *State) RodTier(cat *catalog.Catalog) int {
	if r, ok := cat.Rod(s.Rod); ok {
		return r.Tier
	}
	return 0
}

// EquippedAccessory returns the equipped accessory, nil when none is worn.
func (s *State) EquippedAccessory(cat *catalog.Catalog) *catalog.Accessory {
	if a, ok := cat.Accessory(s.Accessory); ok && a.Tier > 0 {
		return a
	}
	return nil
}
