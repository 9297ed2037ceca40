package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hexecon/internal/catalog"
	"github.com/talgya/hexecon/internal/economy"
	"github.com/talgya/hexecon/internal/hex"
	"github.com/talgya/hexecon/internal/tiles"
)

func TestBuildCharges(t *testing.T) {
	m := newTestMatch(t, 12, 12)
	w := build(t, m, catalog.KeyWarehouse, hex.FromOffset(2, 2))
	assert.Equal(t, 1000.0, w.State[economy.Money], "the first warehouse is free")

	build(t, m, catalog.KeyLumberjack, hex.FromOffset(3, 3))
	assert.Equal(t, 900.0, w.State[economy.Money])
	assert.Equal(t, 15.0, w.State[economy.Tool])

	second := build(t, m, catalog.KeyWarehouse, hex.FromOffset(5, 2))
	assert.Equal(t, 400.0, w.State[economy.Money])
	assert.Equal(t, 20.0, w.State[economy.Wood])
	assert.Equal(t, 5.0, w.State[economy.Tool])
	assert.Equal(t, 1000.0, second.State[economy.Money])
}

func TestBuildRejects(t *testing.T) {
	m := newTestMatch(t, 12, 12)

	_, err := m.Build(catalog.KeyLumberjack, hex.FromOffset(2, 2))
	assert.ErrorIs(t, err, ErrNotAllowed, "no warehouse yet")

	w := build(t, m, catalog.KeyWarehouse, hex.FromOffset(2, 2))

	_, err = m.Build(catalog.KeyWarehouse, hex.FromOffset(10, 10))
	assert.ErrorIs(t, err, ErrCannotAfford, "only the first warehouse is free")
	_, err = m.Build(catalog.KeyLumberjack, hex.FromOffset(11, 11))
	assert.ErrorIs(t, err, ErrNotAllowed)
	_, err = m.Build(catalog.KeyLumberjack, w.Coord())
	assert.ErrorIs(t, err, ErrNotAllowed, "cell taken")
	_, err = m.Build(catalog.KeyGrass, hex.FromOffset(3, 3))
	assert.ErrorIs(t, err, ErrNotConstructable)
	_, err = m.Build("Castle", hex.FromOffset(3, 3))
	assert.ErrorIs(t, err, ErrNotConstructable)

	w.State[economy.Tool] = 0
	assert.False(t, m.CanAfford(hex.FromOffset(3, 3), catalog.Lumberjack.Costs()))
	_, err = m.Build(catalog.KeyLumberjack, hex.FromOffset(3, 3))
	assert.ErrorIs(t, err, ErrCannotAfford)
	assert.Equal(t, 1000.0, w.State[economy.Money], "nothing charged")
	inst, _ := m.Map.Get(hex.FromOffset(3, 3))
	assert.True(t, tiles.Is(inst, catalog.KeyGrass))
}

func TestBuildRoad(t *testing.T) {
	m := newTestMatch(t, 12, 12)
	w := build(t, m, catalog.KeyWarehouse, hex.FromOffset(2, 2))
	lj := build(t, m, catalog.KeyLumberjack, hex.FromOffset(6, 2))
	assert.False(t, m.Connected(w.Coord(), lj.Coord()))

	plan, err := m.PlanRoad(w.Coord(), lj.Coord())
	require.NoError(t, err)
	assert.Equal(t, w.Coord(), plan.Start())
	assert.Equal(t, lj.Coord(), plan.End())

	r, err := m.BuildRoad(w.Coord(), lj.Coord())
	require.NoError(t, err)
	assert.True(t, r.Equal(plan))
	assert.True(t, m.Map.Roads.HasRoad(r))
	assert.True(t, m.Connected(w.Coord(), lj.Coord()))

	_, err = m.BuildRoad(w.Coord(), hex.FromOffset(9, 9))
	assert.ErrorIs(t, err, ErrNotRoadPoint)
}

func TestNoMatch(t *testing.T) {
	var none *Match
	_, err := none.Build(catalog.KeyWarehouse, hex.Zero)
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.ErrorIs(t, none.Tick(), ErrNoMatch)
	assert.Nil(t, none.Territory(hex.Zero))
	assert.False(t, none.Active())

	m := newTestMatch(t, 3, 3)
	si := stateOf(t, m.Map.Create(hex.Zero, catalog.Forest))
	m.Close()
	m.Close()
	assert.False(t, m.Active())
	assert.True(t, si.Closed())
	_, err = m.Build(catalog.KeyWarehouse, hex.FromOffset(1, 1))
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.ErrorIs(t, m.AutoTick(si), ErrNoMatch)
	_, err = m.BuildRoad(hex.Zero, hex.FromOffset(1, 1))
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.Nil(t, m.GlobalTerritory())
}

func TestTotals(t *testing.T) {
	m := newTestMatch(t, 6, 6)
	build(t, m, catalog.KeyWarehouse, hex.FromOffset(1, 1))
	build(t, m, catalog.KeyLumberjack, hex.FromOffset(3, 3))

	totals := m.Totals()
	assert.Equal(t, 900.0, totals[economy.Money])
	assert.Equal(t, 15.0, totals[economy.Tool])
	assert.Equal(t, 50.0, totals[economy.Wood])
	assert.Zero(t, totals[economy.Tree])
}
