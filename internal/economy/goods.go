// Package economy defines the goods traded between tiles and the bundles and
// inventories that carry them.
package economy

// Good names a tradeable or consumable resource.
type Good string

// Category groups goods by how they enter the economy.
type Category int

const (
	Unknown Category = iota
	Natural
	BuildingMaterial
	Harvestable
	Production
	Weapon
	Immaterial
	Inhabitant
)

var categoryNames = [...]string{"unknown", "natural", "building material", "harvestable", "production", "weapon", "immaterial", "inhabitant"}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// Natural goods are deposits found in the world.
const (
	CoalRepo      Good = "CoalRepo"
	CopperOreRepo Good = "CopperOreRepo"
	FreshWater    Good = "FreshWater"
	GemStoneRepo  Good = "GemStoneRepo"
	IronOreRepo   Good = "IronOreRepo"
	MarbleRepo    Good = "MarbleRepo"
	SaltRepo      Good = "SaltRepo"
	SilverOreRepo Good = "SilverOreRepo"
	StoneRepo     Good = "StoneRepo"
	Whale         Good = "Whale"
	WildFish      Good = "WildFish"
)

// Building materials pay for construction.
const (
	Tool     Good = "Tool"
	Wood     Good = "Wood"
	Marble   Good = "Marble"
	Brick    Good = "Brick"
	Stone    Good = "Stone"
	Bells    Good = "Bells"
	Engineer Good = "Engineer"
)

// Harvestable goods grow on resource tiles.
const (
	Cattle         Good = "Cattle"
	CocoaPlant     Good = "CocoaPlant"
	CottonPlant    Good = "CottonPlant"
	Ears           Good = "Ears"
	FlowerPlant    Good = "FlowerPlant"
	Game           Good = "Game"
	Grape          Good = "Grape"
	HempPlant      Good = "HempPlant"
	HopsPlant      Good = "HopsPlant"
	IndigoPlant    Good = "IndigoPlant"
	PeltAnimal     Good = "PeltAnimal"
	PotatoPlant    Good = "PotatoPlant"
	Sheep          Good = "Sheep"
	SilkWorm       Good = "SilkWorm"
	SpicePlant     Good = "SpicePlant"
	SugarCanePlant Good = "SugarCanePlant"
	TobaccoPlant   Good = "TobaccoPlant"
	Tree           Good = "Tree"
	UntamedHorse   Good = "UntamedHorse"
)

// Production goods are made by buildings.
const (
	Alcohol     Good = "Alcohol"
	Amber       Good = "Amber"
	Beer        Good = "Beer"
	Bees        Good = "Bees"
	Book        Good = "Book"
	Bread       Good = "Bread"
	BronzeBar   Good = "BronzeBar"
	Ceramic     Good = "Ceramic"
	Clay        Good = "Clay"
	Cloth       Good = "Cloth"
	Clothes     Good = "Clothes"
	Coal        Good = "Coal"
	Cocoa       Good = "Cocoa"
	CopperBar   Good = "CopperBar"
	CopperOre   Good = "CopperOre"
	Cotton      Good = "Cotton"
	Finery      Good = "Finery"
	Fish        Good = "Fish"
	Flour       Good = "Flour"
	Flowers     Good = "Flowers"
	Food        Good = "Food"
	GemStone    Good = "GemStone"
	GoldBar     Good = "GoldBar"
	Wheat       Good = "Wheat"
	GunPowder   Good = "GunPowder"
	Hemp        Good = "Hemp"
	Honey       Good = "Honey"
	Hops        Good = "Hops"
	Horse       Good = "Horse"
	Indigo      Good = "Indigo"
	Ink         Good = "Ink"
	Instrument  Good = "Instrument"
	IronBar     Good = "IronBar"
	IronOre     Good = "IronOre"
	Jewellery   Good = "Jewellery"
	LampOil     Good = "LampOil"
	Leather     Good = "Leather"
	Meat        Good = "Meat"
	Paper       Good = "Paper"
	Pelt        Good = "Pelt"
	Perfume     Good = "Perfume"
	Pigment     Good = "Pigment"
	Porcelain   Good = "Porcelain"
	Potato      Good = "Potato"
	RawHide     Good = "RawHide"
	Rope        Good = "Rope"
	Sails       Good = "Sails"
	Salt        Good = "Salt"
	Silk        Good = "Silk"
	SilverBar   Good = "SilverBar"
	SilverOre   Good = "SilverOre"
	Slag        Good = "Slag"
	Spices      Good = "Spices"
	Spirit      Good = "Spirit"
	Sugar       Good = "Sugar"
	SugarCane   Good = "SugarCane"
	TinBar      Good = "TinBar"
	Tobacco     Good = "Tobacco"
	TobaccoLeaf Good = "TobaccoLeaf"
	WhaleTallow Good = "WhaleTallow"
	Wine        Good = "Wine"
	Wool        Good = "Wool"
)

const (
	Pike     Good = "Pike"
	Sword    Good = "Sword"
	Armor    Good = "Armor"
	Musket   Good = "Musket"
	Cannon   Good = "Cannon"
	Mortar   Good = "Mortar"
	WarHorse Good = "WarHorse"
)

const (
	Culture   Good = "Culture"
	Education Good = "Education"
	Faith     Good = "Faith"
	Hygiene   Good = "Hygiene"
	Money     Good = "Money"
	Prestige  Good = "Prestige"
)

const (
	Pioneer    Good = "Pioneer"
	Settler    Good = "Settler"
	Citizen    Good = "Citizen"
	Merchant   Good = "Merchant"
	Aristocrat Good = "Aristocrat"
)

var catalog = map[Category][]Good{
	Natural:          {CoalRepo, CopperOreRepo, FreshWater, GemStoneRepo, IronOreRepo, MarbleRepo, SaltRepo, SilverOreRepo, StoneRepo, Whale, WildFish},
	BuildingMaterial: {Tool, Wood, Marble, Brick, Stone, Bells, Engineer},
	Harvestable: {Cattle, CocoaPlant, CottonPlant, Ears, FlowerPlant, Game, Grape, HempPlant, HopsPlant, IndigoPlant,
		PeltAnimal, PotatoPlant, Sheep, SilkWorm, SpicePlant, SugarCanePlant, TobaccoPlant, Tree, UntamedHorse},
	Production: {Alcohol, Amber, Beer, Bees, Book, Bread, BronzeBar, Ceramic, Clay, Cloth, Clothes, Coal, Cocoa,
		CopperBar, CopperOre, Cotton, Finery, Fish, Flour, Flowers, Food, GemStone, GoldBar, Wheat, GunPowder, Hemp,
		Honey, Hops, Horse, Indigo, Ink, Instrument, IronBar, IronOre, Jewellery, LampOil, Leather, Meat, Paper, Pelt,
		Perfume, Pigment, Porcelain, Potato, RawHide, Rope, Sails, Salt, Silk, SilverBar, SilverOre, Slag, Spices,
		Spirit, Sugar, SugarCane, TinBar, Tobacco, TobaccoLeaf, WhaleTallow, Wine, Wool},
	Weapon:     {Pike, Sword, Armor, Musket, Cannon, Mortar, WarHorse},
	Immaterial: {Culture, Education, Faith, Hygiene, Money, Prestige},
	Inhabitant: {Pioneer, Settler, Citizen, Merchant, Aristocrat},
}

var categoryOf = func() map[Good]Category {
	m := make(map[Good]Category)
	for c, goods := range catalog {
		for _, g := range goods {
			m[g] = c
		}
	}
	return m
}()

// Category returns the group g belongs to, or Unknown.
func (g Good) Category() Category {
	return categoryOf[g]
}

// Valid reports whether g is part of the catalog.
func (g Good) Valid() bool {
	_, ok := categoryOf[g]
	return ok
}

// InCategory lists the goods of c in catalog order.
func InCategory(c Category) []Good {
	return append([]Good(nil), catalog[c]...)
}

// All lists every good, grouped by category.
func All() []Good {
	var out []Good
	for c := Natural; c <= Inhabitant; c++ {
		out = append(out, catalog[c]...)
	}
	return out
}

// CostGoods are the goods a construction may be charged in.
func CostGoods() []Good {
	return append(InCategory(BuildingMaterial), Money)
}

// IsCostGood reports whether g can pay for construction.
func IsCostGood(g Good) bool {
	return g == Money || g.Category() == BuildingMaterial
}
