package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hexecon/internal/economy"
	"github.com/talgya/hexecon/internal/hex"
	"github.com/talgya/hexecon/internal/tiles"
)

type view struct {
	cells      map[hex.Coord]tiles.Instance
	warehouses bool
}

func (v view) Instance(c hex.Coord) (tiles.Instance, bool) {
	inst, ok := v.cells[c]
	return inst, ok
}

func (v view) Connected(a, b hex.Coord) bool { return hex.Distance(a, b) <= 1 }
func (v view) HasWarehouse(hex.Coord) bool   { return v.warehouses }

func grassPatch(radius int) view {
	v := view{cells: make(map[hex.Coord]tiles.Instance), warehouses: true}
	for _, c := range hex.Range(hex.Zero, radius) {
		v.cells[c] = Grass.NewInstance(c)
	}
	return v
}

func TestLookup(t *testing.T) {
	assert.Len(t, Keys(), 22)
	for _, k := range Keys() {
		tile, err := Lookup(k)
		require.NoError(t, err)
		assert.Equal(t, k, tile.Key())
	}
	_, err := Lookup("Castle")
	assert.Error(t, err)

	_, ok := Constructable(KeyGrass)
	assert.False(t, ok)
	_, ok = Constructable(KeyFishSchool)
	assert.False(t, ok)
	lj, ok := Constructable(KeyLumberjack)
	require.True(t, ok)
	assert.Same(t, Lumberjack, lj)
	assert.Len(t, ConstructableTiles(), 18)
}

func TestBaseTileFor(t *testing.T) {
	assert.Same(t, Grass, BaseTileFor(Grass))
	assert.Same(t, Mountain, BaseTileFor(Mountain))
	assert.Same(t, Grass, BaseTileFor(Lumberjack))
	assert.Same(t, Water, BaseTileFor(Fisher))
	assert.Same(t, Water, BaseTileFor(FishSchool))
}

func TestEveryStatefulTileIsConsistent(t *testing.T) {
	for _, tile := range All() {
		s, ok := tiles.AsStateful(tile)
		if !ok {
			continue
		}
		t.Run(string(tile.Key()), func(t *testing.T) {
			state := s.InitialState()
			for _, g := range s.Consumes().Union(s.Produces()).Goods() {
				assert.True(t, state.Stocks(g), "%s is stocked", g)
			}
			for _, g := range s.Produces().Goods() {
				assert.NotEmpty(t, s.Formulas(g), "%s has a formula", g)
			}
			for _, g := range s.Consumes().Union(s.Produces()).Goods() {
				assert.True(t, g.Valid(), "%s is a known good", g)
			}
		})
	}
}

func TestPlacementRules(t *testing.T) {
	v := grassPatch(3)
	center := hex.Zero

	assert.True(t, Buildable(v, center))
	assert.True(t, Lumberjack.Allowed(v, center))
	assert.False(t, Pioneer.Allowed(v, center), "pioneers need a civic neighbour")
	assert.False(t, Quarry.Allowed(v, center))
	assert.False(t, Fisher.Allowed(v, center))

	n := center.Neighbors()
	v.cells[n[0]] = Warehouse.NewInstance(n[0])
	v.cells[n[3]] = Mountain.NewInstance(n[3])
	assert.True(t, Pioneer.Allowed(v, center))
	assert.True(t, Quarry.Allowed(v, center))

	v.cells[center] = Water.NewInstance(center)
	assert.True(t, Fisher.Allowed(v, center))
	assert.False(t, Lumberjack.Allowed(v, center))

	v.warehouses = false
	assert.False(t, Buildable(v, n[1]))
	assert.True(t, Warehouse.Allowed(v, n[1]), "warehouses found new territory")
}

func TestLumberjackReachesPastItsNeighbors(t *testing.T) {
	lj := hex.Zero
	area := Lumberjack.Influence(lj)
	far := hex.FromOffset(2, 0)
	require.Equal(t, 2, hex.Distance(lj, far))
	assert.Contains(t, area, far, "a tile two steps away needs a road to deliver")
	assert.Equal(t, Lumberjack.Range, Hunter.Range)
	assert.Equal(t, Lumberjack.Range, Tanner.Range)
}

func TestCheckers(t *testing.T) {
	w := Warehouse.NewInstance(hex.Zero)
	assert.True(t, IsWarehouse(w))
	assert.True(t, IsCivic(w))
	assert.True(t, IsRoadPoint(w))
	assert.False(t, IsRoadPoint(Forest.NewInstance(hex.Zero)))
	assert.False(t, IsRoadPoint(Grass.NewInstance(hex.Zero)))
	assert.True(t, IsRoadPoint(Lumberjack.NewInstance(hex.Zero)))
}

func TestSiteProductivity(t *testing.T) {
	v := grassPatch(3)
	center := hex.Zero

	p, err := Forest.BaseProductivity(v, center)
	require.NoError(t, err)
	assert.Equal(t, tiles.Productivity(0.5), p, "lonely forests grow at half speed")

	n := center.Neighbors()
	for _, c := range append([]hex.Coord{center}, n[:3]...) {
		v.cells[c] = Forest.NewInstance(c)
	}
	p, err = Forest.BaseProductivity(v, center)
	require.NoError(t, err)
	assert.Equal(t, tiles.Simple(), p)

	p, err = Hunter.BaseProductivity(v, n[4])
	require.NoError(t, err)
	assert.Equal(t, tiles.Simple(), p)

	p, err = SheepFarm.BaseProductivity(v, center)
	require.NoError(t, err)
	assert.Zero(t, p)
	v.cells[n[5]] = SheepPasture.NewInstance(n[5])
	p, err = SheepFarm.BaseProductivity(v, center)
	require.NoError(t, err)
	assert.Equal(t, tiles.Productivity(0.5), p)
}

func TestWarehouseStock(t *testing.T) {
	si, ok := tiles.StatefulOf(Warehouse.NewInstance(hex.Zero))
	require.True(t, ok)
	assert.Equal(t, 1000.0, si.State[economy.Money])
	assert.Equal(t, 50.0, si.State[economy.Wood])
	assert.Zero(t, si.State[economy.Stone])
	assert.True(t, si.State.Stocks(economy.Stone))
	assert.True(t, Warehouse.Produces().Empty())
}
