package catalog

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pixil98/go-errors"
)

// Kind classifies every name the catalog knows about.
type Kind int

const (
	KindUnknown Kind = iota
	KindFish
	KindMaterial
	KindRod
	KindAccessory
	KindCurrency
	KindSymbol
)

func (k Kind) String() string {
	switch k {
	case KindFish:
		return "fish"
	case KindMaterial:
		return "material"
	case KindRod:
		return "rod"
	case KindAccessory:
		return "accessory"
	case KindCurrency:
		return "currency"
	case KindSymbol:
		return "symbol"
	default:
		return "unknown"
	}
}

// Equipment reports whether items of this kind can be equipped.
func (k Kind) Equipment() bool {
	return k == KindRod || k == KindAccessory
}

type Fish struct {
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Material  string `json:"material"`
	Branching bool   `json:"branching,omitempty"`

	// Rank is the position in the catalog's fish list.
	Rank int `json:"-"`
}

type Rod struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Requires string `json:"requires,omitempty"`
	Tier     int    `json:"tier"`
}

type Accessory struct {
	Name                string `json:"name"`
	Price               int64  `json:"price"`
	Requires            string `json:"requires,omitempty"`
	Tier                int    `json:"tier"`
	CooldownReductionMs int64  `json:"cooldown_reduction_ms"`
	SellBonusPercent    int64  `json:"sell_bonus_percent"`
}

// CooldownReduction is how much the accessory shortens the draw cooldown.
func (a *Accessory) CooldownReduction() time.Duration {
	return time.Duration(a.CooldownReductionMs) * time.Millisecond
}

// Branching describes the options offered when the branching fish is decomposed.
type Branching struct {
	ShardOption  string   `json:"shard_option"`
	EventOption  string   `json:"event_option"`
	SymbolPrefix string   `json:"symbol_prefix"`
	Symbols      []string `json:"symbols"`
}

// Table is the on-disk form of a catalog.
type Table struct {
	Fish        []Fish      `json:"fish"`
	Rods        []Rod       `json:"rods"`
	Accessories []Accessory `json:"accessories"`
	Branching   Branching   `json:"branching"`
	RewardItem  string      `json:"reward_item"`
}

func (t *Table) Validate() error {
	el := errors.NewErrorList()

	if len(t.Fish) == 0 {
		el.Add(fmt.Errorf("at least one fish is required"))
	}
	branching := 0
	for i, f := range t.Fish {
		if f.Name == "" {
			el.Add(fmt.Errorf("fish %d: name is required", i))
		}
		if f.Material == "" {
			el.Add(fmt.Errorf("fish %d: material is required", i))
		}
		if f.Price < 0 {
			el.Add(fmt.Errorf("fish %q: price must not be negative", f.Name))
		}
		if f.Branching {
			branching++
		}
	}
	if branching != 1 {
		el.Add(fmt.Errorf("exactly one branching fish is required, found %d", branching))
	}
	el.Add(validateTiers("rod", t.Rods, func(r Rod) (string, string, int) { return r.Name, r.Requires, r.Tier }))
	el.Add(validateTiers("accessory", t.Accessories, func(a Accessory) (string, string, int) { return a.Name, a.Requires, a.Tier }))
	if t.Branching.ShardOption == "" || t.Branching.EventOption == "" {
		el.Add(fmt.Errorf("branching options are required"))
	}
	if len(t.Branching.Symbols) == 0 {
		el.Add(fmt.Errorf("branching symbols are required"))
	}
	if t.RewardItem == "" {
		el.Add(fmt.Errorf("reward_item is required"))
	}

	return el.Err()
}

// validateTiers checks that tiers start at 0 and each tier above 1 requires the one below it.
func validateTiers[T any](label string, items []T, fields func(T) (string, string, int)) error {
	el := errors.NewErrorList()

	byTier := map[int]string{}
	for _, it := range items {
		name, _, tier := fields(it)
		if _, dup := byTier[tier]; dup {
			el.Add(fmt.Errorf("%s tier %d is defined twice", label, tier))
		}
		byTier[tier] = name
	}
	for i := range len(items) {
		if _, ok := byTier[i]; !ok {
			el.Add(fmt.Errorf("%s tier %d is missing", label, i))
		}
	}
	for _, it := range items {
		name, requires, tier := fields(it)
		if tier > 1 && requires != byTier[tier-1] {
			el.Add(fmt.Errorf("%s %q must require %q", label, name, byTier[tier-1]))
		}
	}

	return el.Err()
}

// Item is the result of a name lookup.
type Item struct {
	Name      string
	Kind      Kind
	Fish      *Fish
	Rod       *Rod
	Accessory *Accessory
}

// Catalog is an immutable, indexed view of a Table.
type Catalog struct {
	fish        []Fish
	regular     []Fish
	rare        *Fish
	rods        []Rod
	accessories []Accessory
	branching   Branching
	reward      string

	index      map[string]Item
	byMaterial map[string]*Fish
}

// New indexes a table. Names are matched case-insensitively.
func New(t *Table) (*Catalog, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("validating catalog: %w", err)
	}

	c := &Catalog{
		fish:        append([]Fish(nil), t.Fish...),
		rods:        append([]Rod(nil), t.Rods...),
		accessories: append([]Accessory(nil), t.Accessories...),
		branching:   t.Branching,
		reward:      t.RewardItem,
		index:       map[string]Item{},
		byMaterial:  map[string]*Fish{},
	}
	sort.Slice(c.rods, func(i, j int) bool { return c.rods[i].Tier < c.rods[j].Tier })
	sort.Slice(c.accessories, func(i, j int) bool { return c.accessories[i].Tier < c.accessories[j].Tier })

	el := errors.NewErrorList()
	add := func(it Item) {
		key := normalize(it.Name)
		if existing, ok := c.index[key]; ok && existing.Kind != it.Kind {
			el.Add(fmt.Errorf("%q is both a %s and a %s", it.Name, existing.Kind, it.Kind))
			return
		}
		c.index[key] = it
	}

	for i := range c.fish {
		f := &c.fish[i]
		f.Rank = i
		add(Item{Name: f.Name, Kind: KindFish, Fish: f})
		add(Item{Name: f.Material, Kind: KindMaterial})
		if f.Branching {
			c.rare = f
			continue
		}
		c.regular = append(c.regular, *f)
		c.byMaterial[normalize(f.Material)] = f
	}
	for i := range c.rods {
		add(Item{Name: c.rods[i].Name, Kind: KindRod, Rod: &c.rods[i]})
	}
	for i := range c.accessories {
		add(Item{Name: c.accessories[i].Name, Kind: KindAccessory, Accessory: &c.accessories[i]})
	}
	for _, s := range c.branching.Symbols {
		add(Item{Name: c.SymbolItem(s), Kind: KindSymbol})
	}
	add(Item{Name: c.reward, Kind: KindCurrency})

	if err := el.Err(); err != nil {
		return nil, err
	}

	return c, nil
}

func normalize(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// Lookup resolves a user supplied name to its catalog entry.
func (c *Catalog) Lookup(name string) (Item, bool) {
	it, ok := c.index[normalize(name)]
	return it, ok
}

// Kind returns the kind for a name, KindUnknown when it is not in the catalog.
func (c *Catalog) Kind(name string) Kind {
	return c.index[normalize(name)].Kind
}

func (c *Catalog) Fish(name string) (*Fish, bool) {
	it, ok := c.Lookup(name)
	if !ok || it.Kind != KindFish {
		return nil, false
	}
	return it.Fish, true
}

func (c *Catalog) Rod(name string) (*Rod, bool) {
	it, ok := c.Lookup(name)
	if !ok || it.Kind != KindRod {
		return nil, false
	}
	return it.Rod, true
}

func (c *Catalog) Accessory(name string) (*Accessory, bool) {
	it, ok := c.Lookup(name)
	if !ok || it.Kind != KindAccessory {
		return nil, false
	}
	return it.Accessory, true
}

// AllFish returns every fish in rank order, including the branching fish.
func (c *Catalog) AllFish() []Fish {
	return c.fish
}

// RegularFish returns the drawable fish in rank order, excluding the branching fish.
func (c *Catalog) RegularFish() []Fish {
	return c.regular
}

// RareFish is the branching fish, which is also the reserved rare draw.
func (c *Catalog) RareFish() *Fish {
	return c.rare
}

// FishForMaterial maps an explore material back to the fish it comes from.
func (c *Catalog) FishForMaterial(material string) (*Fish, bool) {
	f, ok := c.byMaterial[normalize(material)]
	return f, ok
}

// Rods returns all rods ordered by tier. Index 0 is bare hands.
func (c *Catalog) Rods() []Rod {
	return c.rods
}

// Accessories returns all accessories ordered by tier. Index 0 is "none".
func (c *Catalog) Accessories() []Accessory {
	return c.accessories
}

func (c *Catalog) Branching() Branching {
	return c.branching
}

// RewardItem is the currency granted for winning a battle.
func (c *Catalog) RewardItem() string {
	return c.reward
}

// ShardItem is the material granted by the branching fish's shard option.
func (c *Catalog) ShardItem() string {
	return c.rare.Material
}

// SymbolItem is the inventory name for a random symbol.
func (c *Catalog) SymbolItem(symbol string) string {
	if c.branching.SymbolPrefix == "" {
		return symbol
	}
	return c.branching.SymbolPrefix + " " + symbol
}
