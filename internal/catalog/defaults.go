package catalog

// DefaultTable returns the built-in catalog.
func DefaultTable() *Table {
	return &Table{
		Fish: []Fish{
			{Name: "Taco Octopus", Price: 300, Material: "Octopus Leg"},
			{Name: "Grass Mackerel", Price: 700, Material: "Mackerel Scale"},
			{Name: "Dango Carp", Price: 1500, Material: "Dango"},
			{Name: "Butter Squid", Price: 8000, Material: "Butter Slice"},
			{Name: "Soy Shrimp", Price: 15000, Material: "Soy Dish"},
			{Name: "Corn Fish", Price: 30000, Material: "Corn Kernel"},
			{Name: "Sardine Pie", Price: 40000, Material: "Butter"},
			{Name: "Ice Shark", Price: 50000, Material: "Ice Chip"},
			{Name: "Squall Squid", Price: 60000, Material: "Squid Ink"},
			{Name: "Hundred-Year Turtle", Price: 100000, Material: "Old Pine"},
			{Name: "Gosfish", Price: 150000, Material: "Pepper"},
			{Name: "Phantom Fish", Price: 230000, Material: "Oyster"},
			{Name: "Bite Dog", Price: 470000, Material: "Hot Sauce"},
			{Name: "Pumpkin Whale", Price: 700000, Material: "Pumpkin Slice"},
			{Name: "Viking Clam", Price: 1250000, Material: "Stamen"},
			{Name: "Angel Jellyfish", Price: 2440000, Material: "Pretzel"},
			{Name: "Devil Pufferfish", Price: 4100000, Material: "Venom"},
			{Name: "Seven-Star Eel", Price: 6600000, Material: "Eel Tail"},
			{Name: "Doctor Black", Price: 9320000, Material: "Eisbein"},
			{Name: "Sea Dragon", Price: 14400000, Material: "Heaven's Serpent"},
			{Name: "Mecha Hot King Crab", Price: 27950000, Material: "Crab Claw"},
			{Name: "Lamprey", Price: 46400000, Material: "Isigny Butter"},
			{Name: "Last Leaf", Price: 76500000, Material: "Lavender Oil"},
			{Name: "Ice Breather", Price: 131200000, Material: "Sherbet"},
			{Name: "Sea God", Price: 288000000, Material: "Magic Essence"},
			{Name: "Pinky Fish", Price: 418600000, Material: "Whipped Cream"},
			{Name: "Contopus", Price: 731560000, Material: "Waffle Machine"},
			{Name: "Deep One", Price: 1026400000, Material: "Verjuice"},
			{Name: "Cthulu", Price: 1477500000, Material: "Anchovy"},
			{Name: "Stamen Lily", Price: 2092000000, Material: "Pink Mellow"},
			{Name: "Damus", Price: 2633200000, Material: "Wild Garlic"},
			{Name: "Guardian", Price: 3427900000, Material: "Grenouille"},
			{Name: "Sun Starfish", Price: 6483100000, Material: "Cedar Plank"},
			{Name: "Big Father Penguin", Price: 9887600000, Material: "Ceviche"},
			{Name: "Crane Turtle", Price: 15124000000, Material: "Tapas"},
			{Name: "CSP-765 Assembled Fish", Price: 19580000000, Material: "Truffle Risotto"},
			{Name: "Dead Cage", Price: 25420000000, Material: "Caviar Sauce"},
			{Name: "Dark Ammonite", Price: 31780000000, Material: "Foie Gras Espuma"},
			{Name: "Shell Lady", Price: 38240000000, Material: "Champagne Jelly"},
			{Name: "Ten-Barrel Whale", Price: 45360000000, Material: "Gold Leaf Macaron"},
			{Name: "Starfish", Price: 100, Material: "Star Shard", Branching: true},
		},
		Rods: []Rod{
			{Name: "Bare Hands", Tier: 0},
			{Name: "Old Rod", Price: 10000, Tier: 1},
			{Name: "Common Rod", Price: 60000, Requires: "Old Rod", Tier: 2},
			{Name: "Sturdy Rod", Price: 140000, Requires: "Common Rod", Tier: 3},
			{Name: "Silver Rod", Price: 370000, Requires: "Sturdy Rod", Tier: 4},
			{Name: "Gold Rod", Price: 820000, Requires: "Silver Rod", Tier: 5},
			{Name: "Steel Rod", Price: 2390000, Requires: "Gold Rod", Tier: 6},
			{Name: "Sapphire Rod", Price: 6100000, Requires: "Steel Rod", Tier: 7},
			{Name: "Ruby Rod", Price: 15000000, Requires: "Sapphire Rod", Tier: 8},
			{Name: "Diamond Rod", Price: 45000000, Requires: "Ruby Rod", Tier: 9},
			{Name: "Red Diamond Rod", Price: 100000000, Requires: "Diamond Rod", Tier: 10},
			{Name: "Cherry Blossom Rod", Price: 300000000, Requires: "Red Diamond Rod", Tier: 11},
			{Name: "Flower Bud Rod", Price: 732000000, Requires: "Cherry Blossom Rod", Tier: 12},
			{Name: "Lantern Rod", Price: 1980000000, Requires: "Flower Bud Rod", Tier: 13},
			{Name: "Coral Lamp Rod", Price: 4300000000, Requires: "Lantern Rod", Tier: 14},
			{Name: "Picnic Rod", Price: 8800000000, Requires: "Coral Lamp Rod", Tier: 15},
			{Name: "Witch Broom", Price: 25000000000, Requires: "Picnic Rod", Tier: 16},
			{Name: "Ether Rod", Price: 64800000000, Requires: "Witch Broom", Tier: 17},
			{Name: "Star Shard Rod", Price: 147600000000, Requires: "Ether Rod", Tier: 18},
			{Name: "Fox Tail Rod", Price: 320000000000, Requires: "Star Shard Rod", Tier: 19},
			{Name: "Chocolate Roll Rod", Price: 780000000000, Requires: "Fox Tail Rod", Tier: 20},
			{Name: "Pumpkin Ghost Rod", Price: 2800000000000, Requires: "Chocolate Roll Rod", Tier: 21},
			{Name: "Pink Bunny Rod", Price: 6100000000000, Requires: "Pumpkin Ghost Rod", Tier: 22},
			{Name: "Hollow Rod", Price: 15100000000000, Requires: "Pink Bunny Rod", Tier: 23},
			{Name: "Foxfire Rod", Price: 40400000000000, Requires: "Hollow Rod", Tier: 24},
		},
		Accessories: []Accessory{
			{Name: "None", Tier: 0},
			{Name: "Old Ring", Price: 8000, Tier: 1, CooldownReductionMs: 15000, SellBonusPercent: 5},
			{Name: "Silver Necklace", Price: 32000, Requires: "Old Ring", Tier: 2, CooldownReductionMs: 30000, SellBonusPercent: 10},
			{Name: "Gold Earrings", Price: 72000, Requires: "Silver Necklace", Tier: 3, CooldownReductionMs: 45000, SellBonusPercent: 15},
			{Name: "Magic Pendant", Price: 128000, Requires: "Gold Earrings", Tier: 4, CooldownReductionMs: 60000, SellBonusPercent: 20},
			{Name: "Emerald Brooch", Price: 200000, Requires: "Magic Pendant", Tier: 5, CooldownReductionMs: 75000, SellBonusPercent: 25},
			{Name: "Topaz Earrings", Price: 360000, Requires: "Emerald Brooch", Tier: 6, CooldownReductionMs: 90000, SellBonusPercent: 30},
			{Name: "Amethyst Bracelet", Price: 640000, Requires: "Topaz Earrings", Tier: 7, CooldownReductionMs: 105000, SellBonusPercent: 35},
			{Name: "Platinum Tiara", Price: 980000, Requires: "Amethyst Bracelet", Tier: 8, CooldownReductionMs: 120000, SellBonusPercent: 40},
			{Name: "Mandragora Herb", Price: 1400000, Requires: "Platinum Tiara", Tier: 9, CooldownReductionMs: 135000, SellBonusPercent: 45},
			{Name: "Ether Sapling", Price: 2000000, Requires: "Mandragora Herb", Tier: 10, CooldownReductionMs: 150000, SellBonusPercent: 50},
			{Name: "Nightmare Statue", Price: 3800000, Requires: "Ether Sapling", Tier: 11, CooldownReductionMs: 165000, SellBonusPercent: 55},
			{Name: "Macaron Medal", Price: 6400000, Requires: "Nightmare Statue", Tier: 12, CooldownReductionMs: 180000, SellBonusPercent: 60},
			{Name: "Radiant Mana Core", Price: 10000000, Requires: "Macaron Medal", Tier: 13, CooldownReductionMs: 210000, SellBonusPercent: 80},
		},
		Branching: Branching{
			ShardOption:  "shard",
			EventOption:  "event",
			SymbolPrefix: "Letter",
			Symbols:      []string{"A", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M", "O", "P", "R", "S", "T", "Y"},
		},
		RewardItem: "Amber",
	}
}
