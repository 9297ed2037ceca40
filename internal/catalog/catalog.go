// Package catalog holds one immutable record per tile type with the game's
// balance values.
package catalog

import (
	"fmt"

	"github.com/talgya/hexecon/internal/economy"
	"github.com/talgya/hexecon/internal/hex"
	"github.com/talgya/hexecon/internal/tiles"
)

// Tile keys.
const (
	KeyGrass            tiles.Key = "Grass"
	KeyWater            tiles.Key = "Water"
	KeyMountain         tiles.Key = "Mountain"
	KeyFishSchool       tiles.Key = "FishSchool"
	KeyForest           tiles.Key = "Forest"
	KeyLumberjack       tiles.Key = "Lumberjack"
	KeyChapel           tiles.Key = "Chapel"
	KeyWarehouse        tiles.Key = "Warehouse"
	KeyPioneer          tiles.Key = "Pioneer"
	KeySheepPasture     tiles.Key = "SheepPasture"
	KeySheepFarm        tiles.Key = "SheepFarm"
	KeyWeaver           tiles.Key = "Weaver"
	KeyMechanicalWeaver tiles.Key = "MechanicalWeaver"
	KeyPotatoField      tiles.Key = "PotatoField"
	KeyPotatoFarm       tiles.Key = "PotatoFarm"
	KeyFoodMarket       tiles.Key = "FoodMarket"
	KeyHunter           tiles.Key = "Hunter"
	KeyTanner           tiles.Key = "Tanner"
	KeyInn              tiles.Key = "Inn"
	KeyDistillery       tiles.Key = "Distillery"
	KeyFisher           tiles.Key = "Fisher"
	KeyQuarry           tiles.Key = "Quarry"
	// KeyMarket is civic but has no tile yet.
	KeyMarket tiles.Key = "Market"
)

var (
	IsWarehouse = tiles.AnyOf(KeyWarehouse)
	IsCivic     = tiles.AnyOf(KeyWarehouse, KeyPioneer, KeyChapel, KeyInn, KeyMarket)
	// IsRoadPoint matches tiles a road may start or end on.
	IsRoadPoint = tiles.Not(tiles.AnyOf(KeyGrass, KeyMountain, KeyForest, KeyWater, KeyFishSchool))
)

// Buildable reports whether c is grass inside a warehouse's reach.
func Buildable(v tiles.View, c hex.Coord) bool {
	return tiles.IsAt(v, c, KeyGrass) && v.HasWarehouse(c)
}

func buildableNextTo(check tiles.Checker) func(tiles.View, hex.Coord) bool {
	return func(v tiles.View, c hex.Coord) bool {
		if !Buildable(v, c) {
			return false
		}
		n := c.Neighbors()
		return check.Any(v, n[:])
	}
}

// reachability scores c by the tiles of key inside from's influence.
func reachability(from tiles.Influencer, key tiles.Key, scale float64) func(tiles.View, hex.Coord) (tiles.Productivity, error) {
	return func(v tiles.View, c hex.Coord) (tiles.Productivity, error) {
		return tiles.FromReachability(v, from.Influence(c), key, scale)
	}
}

func q(g economy.Good, amount float64) economy.Quantity { return economy.Q(g, amount) }

func of(qs ...economy.Quantity) economy.Bundle { return economy.Of(qs...) }

func formulas(good economy.Good, alternatives ...economy.Bundle) map[economy.Good][]economy.Bundle {
	return map[economy.Good][]economy.Bundle{good: alternatives}
}

// Natural tiles.
var (
	Grass    = &tiles.Natural{Name: KeyGrass}
	Water    = &tiles.Natural{Name: KeyWater}
	Mountain = &tiles.Natural{Name: KeyMountain}
)

var FishSchool = &tiles.Resource{
	Name: KeyFishSchool,
	Economy: tiles.Economy{
		Production: of(q(economy.WildFish, 5)),
		Formula:    formulas(economy.WildFish, nil),
	},
}

var Forest = &tiles.Building{
	Name: KeyForest,
	Cost: of(q(economy.Money, 10)),
	Rule: Buildable,
	Economy: tiles.Economy{
		Production: of(q(economy.Tree, 10), q(economy.Game, 5)),
		Formula: map[economy.Good][]economy.Bundle{
			economy.Tree: {nil},
			economy.Game: {nil},
		},
		Range: 1,
		SiteProductivity: func(v tiles.View, c hex.Coord) (tiles.Productivity, error) {
			dense, err := tiles.FromReachability(v, hex.Range(c, 1), KeyForest, 3)
			if err != nil {
				return 0, err
			}
			return tiles.Max(0.5, float64(dense))
		},
	},
}

var Lumberjack = &tiles.Building{
	Name: KeyLumberjack,
	Cost: of(q(economy.Money, 100), q(economy.Tool, 5)),
	Rule: Buildable,
	Economy: tiles.Economy{
		Consumption: of(q(economy.Tree, 20), q(economy.Money, 20)),
		Production:  of(q(economy.Wood, 10)),
		Formula:     formulas(economy.Wood, of(q(economy.Tree, 5), q(economy.Money, 5))),
		// adjacent cells are always connected, so at range 1 a road would
		// never matter to a lumberjack
		Range:       2,
	},
}

var Chapel = &tiles.Building{
	Name: KeyChapel,
	Cost: of(q(economy.Money, 100), q(economy.Wood, 20), q(economy.Tool, 5)),
	Rule: Buildable,
	Economy: tiles.Economy{
		Consumption: of(q(economy.Money, 10)),
		Production:  of(q(economy.Faith, 1)),
		Formula:     formulas(economy.Faith, of(q(economy.Money, 10))),
		Range:       4,
	},
}

// Warehouse stores building materials and money for its territory. The
// consumed amounts double as its storage capacity.
var Warehouse = &tiles.Building{
	Name: KeyWarehouse,
	Cost: of(q(economy.Money, 500), q(economy.Wood, 30), q(economy.Tool, 10)),
	Rule: func(v tiles.View, c hex.Coord) bool {
		return tiles.IsAt(v, c, KeyGrass)
	},
	Economy: tiles.Economy{
		Consumption: of(
			q(economy.Tool, 200),
			q(economy.Wood, 200),
			q(economy.Marble, 200),
			q(economy.Brick, 200),
			q(economy.Stone, 200),
			q(economy.Money, 5000),
		),
		Initial: of(q(economy.Money, 1000), q(economy.Wood, 50), q(economy.Tool, 20)),
		Range:   5,
	},
}

var Pioneer = &tiles.Building{
	Name: KeyPioneer,
	Cost: of(q(economy.Money, 100), q(economy.Wood, 3)),
	Rule: buildableNextTo(IsCivic),
	Housing: &tiles.Housing{
		Requires: of(q(economy.Food, 0.4), q(economy.Leather, 0.4)),
		Wants: of(
			q(economy.Food, 0.9),
			q(economy.Leather, 0.9),
			q(economy.Cloth, 0.4),
			q(economy.Alcohol, 0.4),
			q(economy.Faith, 0.4),
		),
		Upgrade:        of(q(economy.Money, 500), q(economy.Wood, 50), q(economy.Tool, 10), q(economy.Stone, 20)),
		MaxInhabitants: 20,
	},
	Economy: tiles.Economy{
		Consumption: of(
			q(economy.Food, 10),
			q(economy.Leather, 10),
			q(economy.Cloth, 10),
			q(economy.Alcohol, 10),
			q(economy.Faith, 10),
		),
		Production: of(q(economy.Money, 10)),
		Formula: formulas(economy.Money,
			of(q(economy.Food, 20), q(economy.Leather, 5)),
			of(q(economy.Cloth, 10)),
			of(q(economy.Alcohol, 2)),
			of(q(economy.Faith, 5)),
		),
		Range: 4,
	},
}

var SheepFarm = &tiles.Building{
	Name: KeySheepFarm,
	Cost: of(q(economy.Money, 500), q(economy.Wood, 20), q(economy.Tool, 7)),
	Rule: Buildable,
	Economy: tiles.Economy{
		Consumption:          of(q(economy.Sheep, 20), q(economy.Money, 20)),
		Production:           of(q(economy.Wool, 10)),
		Formula:              formulas(economy.Wool, of(q(economy.Sheep, 2), q(economy.Money, 2))),
		Range:                3,
		InstanceProductivity: tiles.FromStock,
	},
}

var SheepPasture = &tiles.Building{
	Name: KeySheepPasture,
	Cost: of(q(economy.Money, 50)),
	Rule: Buildable,
	Economy: tiles.Economy{
		Production: of(q(economy.Sheep, 10)),
		Formula:    formulas(economy.Sheep, nil),
		Range:      SheepFarm.Range,
	},
}

var Weaver = &tiles.Building{
	Name: KeyWeaver,
	Cost: of(q(economy.Money, 900), q(economy.Wood, 10), q(economy.Tool, 10)),
	Rule: Buildable,
	Economy: tiles.Economy{
		Consumption:          of(q(economy.Wool, 20), q(economy.Money, 200)),
		Production:           of(q(economy.Cloth, 10)),
		Formula:              formulas(economy.Cloth, of(q(economy.Wool, 2), q(economy.Money, 2))),
		Range:                6,
		InstanceProductivity: tiles.FromStock,
	},
}

var MechanicalWeaver = &tiles.Building{
	Name: KeyMechanicalWeaver,
	Cost: of(q(economy.Money, 1500), q(economy.Wood, 20), q(economy.Tool, 20), q(economy.Stone, 10), q(economy.Brick, 30)),
	Rule: Buildable,
	Economy: tiles.Economy{
		Consumption: of(q(economy.Wool, 120), q(economy.Cotton, 240)),
		Production:  of(q(economy.Cloth, 60)),
		Formula:     formulas(economy.Cloth, of(q(economy.Wool, 2), q(economy.Cotton, 5))),
		Range:       6,
	},
}

var PotatoFarm = &tiles.Building{
	Name: KeyPotatoFarm,
	Cost: of(q(economy.Money, 500), q(economy.Wood, 20), q(economy.Tool, 7)),
	Rule: Buildable,
	Economy: tiles.Economy{
		Consumption: of(q(economy.PotatoPlant, 20)),
		Production:  of(q(economy.Potato, 10)),
		Formula:     formulas(economy.Potato, of(q(economy.PotatoPlant, 2))),
		Range:       3,
	},
}

var PotatoField = &tiles.Building{
	Name: KeyPotatoField,
	Cost: of(q(economy.Money, 50)),
	Rule: Buildable,
	Economy: tiles.Economy{
		Production: of(q(economy.PotatoPlant, 3)),
		Formula:    formulas(economy.PotatoPlant, nil),
		Range:      SheepFarm.Range,
	},
}

var FoodMarket = &tiles.Building{
	Name: KeyFoodMarket,
	Cost: of(q(economy.Money, 500), q(economy.Wood, 20), q(economy.Tool, 7)),
	Rule: Buildable,
	Economy: tiles.Economy{
		Consumption: of(q(economy.Potato, 50), q(economy.Fish, 50), q(economy.Bread, 50), q(economy.Meat, 50)),
		Production:  of(q(economy.Food, 200)),
		Formula: formulas(economy.Food,
			of(q(economy.Potato, 5)),
			of(q(economy.Fish, 2)),
			of(q(economy.Bread, 3)),
			of(q(economy.Meat, 1)),
		),
		Range: 6,
	},
}

var Hunter = &tiles.Building{
	Name: KeyHunter,
	Cost: of(q(economy.Wood, 10), q(economy.Tool, 2), q(economy.Money, 100)),
	Rule: Buildable,
	Economy: tiles.Economy{
		Consumption: of(q(economy.Game, 20), q(economy.Money, 20)),
		Production:  of(q(economy.Meat, 10), q(economy.RawHide, 5)),
		Formula: map[economy.Good][]economy.Bundle{
			economy.Meat:    {of(q(economy.Game, 1), q(economy.Money, 2))},
			economy.RawHide: {of(q(economy.Game, 1), q(economy.Money, 2))},
		},
		Range:                Lumberjack.Range,
		InstanceProductivity: tiles.FromStock,
	},
}

var Tanner = &tiles.Building{
	Name: KeyTanner,
	Cost: of(q(economy.Wood, 10), q(economy.Tool, 5), q(economy.Money, 300)),
	Rule: Buildable,
	Economy: tiles.Economy{
		Consumption:          of(q(economy.RawHide, 10), q(economy.Money, 200)),
		Production:           of(q(economy.Leather, 200)),
		Formula:              formulas(economy.Leather, of(q(economy.RawHide, 2), q(economy.Money, 5))),
		Range:                Lumberjack.Range,
		InstanceProductivity: tiles.FromStock,
	},
}

var Inn = &tiles.Building{
	Name: KeyInn,
	Cost: of(q(economy.Money, 500), q(economy.Wood, 20), q(economy.Tool, 7), q(economy.Stone, 10)),
	Rule: Buildable,
	Economy: tiles.Economy{
		Consumption: of(q(economy.Spirit, 50), q(economy.Beer, 50)),
		Production:  of(q(economy.Alcohol, 100)),
		Formula:     formulas(economy.Alcohol, of(q(economy.Spirit, 1)), of(q(economy.Beer, 1))),
		Range:       6,
	},
}

var Distillery = &tiles.Building{
	Name: KeyDistillery,
	Cost: of(q(economy.Money, 500), q(economy.Wood, 20), q(economy.Tool, 7), q(economy.Stone, 10)),
	Rule: Buildable,
	Economy: tiles.Economy{
		Consumption: of(q(economy.Potato, 50), q(economy.Wheat, 50), q(economy.SugarCane, 50)),
		Production:  of(q(economy.Spirit, 100)),
		Formula: formulas(economy.Spirit,
			of(q(economy.Potato, 5)),
			of(q(economy.Wheat, 10)),
			of(q(economy.SugarCane, 3)),
		),
		Range: 6,
	},
}

var Fisher = &tiles.Building{
	Name: KeyFisher,
	Cost: of(q(economy.Money, 500), q(economy.Wood, 20), q(economy.Tool, 7)),
	Rule: func(v tiles.View, c hex.Coord) bool {
		return v.HasWarehouse(c) && tiles.IsAt(v, c, KeyWater)
	},
	Economy: tiles.Economy{
		Consumption:          of(q(economy.WildFish, 10), q(economy.Money, 20)),
		Production:           of(q(economy.Fish, 10)),
		Formula:              formulas(economy.Fish, of(q(economy.WildFish, 2), q(economy.Money, 4))),
		Range:                1,
		InstanceProductivity: tiles.FromStock,
	},
}

var Quarry = &tiles.Building{
	Name: KeyQuarry,
	Cost: of(q(economy.Money, 10)),
	Rule: buildableNextTo(tiles.AnyOf(KeyMountain)),
	Economy: tiles.Economy{
		Consumption:          of(q(economy.Money, 10)),
		Production:           of(q(economy.Stone, 10)),
		Formula:              formulas(economy.Stone, of(q(economy.Money, 2))),
		Range:                1,
		InstanceProductivity: tiles.FromStock,
	},
}

func init() {
	// these refer to other records, which must exist first
	SheepFarm.SiteProductivity = reachability(SheepFarm, KeySheepPasture, 2)
	Hunter.SiteProductivity = reachability(Hunter, KeyForest, 1)
	Fisher.SiteProductivity = reachability(Fisher, KeyFishSchool, 2)

	for _, t := range all {
		byKey[t.Key()] = t
		if c, ok := tiles.AsConstructable(t); ok {
			constructable = append(constructable, c)
		}
	}
}

var (
	all = []tiles.Tile{
		Grass, FishSchool, Mountain, Water,
		Forest, Lumberjack, Chapel, Warehouse, Pioneer, SheepPasture, SheepFarm, Weaver, MechanicalWeaver,
		PotatoField, PotatoFarm, FoodMarket, Hunter, Tanner, Inn, Distillery, Fisher, Quarry,
	}
	byKey         = make(map[tiles.Key]tiles.Tile)
	constructable []tiles.Constructable
)

// Lookup returns the tile with the given key.
func Lookup(key tiles.Key) (tiles.Tile, error) {
	t, ok := byKey[key]
	if !ok {
		return nil, fmt.Errorf("catalog: unknown tile %q", key)
	}
	return t, nil
}

// Constructable returns the constructable tile with the given key.
func Constructable(key tiles.Key) (tiles.Constructable, bool) {
	t, ok := byKey[key]
	if !ok {
		return nil, false
	}
	return tiles.AsConstructable(t)
}

// Keys lists every tile key, natural tiles first.
func Keys() []tiles.Key {
	out := make([]tiles.Key, len(all))
	for i, t := range all {
		out[i] = t.Key()
	}
	return out
}

// All lists every tile in Keys order.
func All() []tiles.Tile {
	return append([]tiles.Tile(nil), all...)
}

// ConstructableTiles lists the tiles a player can build.
func ConstructableTiles() []tiles.Constructable {
	return append([]tiles.Constructable(nil), constructable...)
}

// BaseTileFor returns the terrain under t, the tile a cell reverts to when t
// is removed.
func BaseTileFor(t tiles.Tile) tiles.Tile {
	switch t.Key() {
	case KeyGrass, KeyWater, KeyMountain:
		return t
	case KeyFisher, KeyFishSchool:
		return Water
	}
	if _, ok := tiles.AsConstructable(t); ok {
		return Grass
	}
	return Water
}
