package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hexecon/internal/catalog"
	"github.com/talgya/hexecon/internal/economy"
	"github.com/talgya/hexecon/internal/hex"
	"github.com/talgya/hexecon/internal/roads"
	"github.com/talgya/hexecon/internal/tiles"
	"github.com/talgya/hexecon/internal/world"
)

func newTestMatch(t *testing.T, cols, rows int) *Match {
	t.Helper()
	m := world.NewMap()
	for i := 0; i < cols; i++ {
		for j := 0; j < rows; j++ {
			m.Create(hex.FromOffset(i, j), catalog.Grass)
		}
	}
	match := NewMatch(m)
	t.Cleanup(match.Close)
	return match
}

func stateOf(t *testing.T, inst tiles.Instance) *tiles.StatefulInstance {
	t.Helper()
	si, ok := tiles.StatefulOf(inst)
	require.True(t, ok, "%v is stateful", inst)
	return si
}

func build(t *testing.T, m *Match, key tiles.Key, c hex.Coord) *tiles.StatefulInstance {
	t.Helper()
	inst, err := m.Build(key, c)
	require.NoError(t, err)
	return stateOf(t, inst)
}

func tick(t *testing.T, m *Match, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, m.Tick())
	}
}

func TestForestRoadLumberjack(t *testing.T) {
	m := newTestMatch(t, 12, 12)
	w := hex.FromOffset(4, 1)
	lj := hex.FromOffset(4, 4)
	mid := hex.FromOffset(5, 4)
	forest := hex.FromOffset(6, 4)
	require.Equal(t, 3, hex.Distance(w, lj))
	require.Equal(t, 2, hex.Distance(lj, forest))

	build(t, m, catalog.KeyWarehouse, w)
	lumberjack := build(t, m, catalog.KeyLumberjack, lj)
	build(t, m, catalog.KeyForest, forest)

	r, err := roads.New(lj, mid, forest)
	require.NoError(t, err)
	m.Map.Roads.CreateRoad(r)

	tick(t, m, 3)
	assert.Equal(t, 2.0, lumberjack.State[economy.Wood])
	assert.Equal(t, 20.0, lumberjack.State[economy.Money], "money comes from the warehouse without a road")

	tick(t, m, 1)
	assert.Equal(t, 4.0, lumberjack.State[economy.Wood])

	require.True(t, m.Map.Roads.DelRoad(r))
	tick(t, m, 2)
	plateau := lumberjack.State[economy.Wood]
	assert.Less(t, plateau, 10.0)
	tick(t, m, 5)
	assert.Equal(t, plateau, lumberjack.State[economy.Wood])
	assert.Zero(t, lumberjack.State[economy.Tree])
}

func TestProducerConvergesToTarget(t *testing.T) {
	m := newTestMatch(t, 3, 3)
	si := stateOf(t, m.Map.Create(hex.FromOffset(1, 1), catalog.Lumberjack))
	si.State[economy.Tree] = 1000
	si.State[economy.Money] = 1000

	require.NoError(t, m.AutoTick(si))
	assert.Equal(t, 10.0, si.State[economy.Wood])
	assert.Equal(t, 950.0, si.State[economy.Tree])
	assert.Equal(t, 950.0, si.State[economy.Money])

	require.NoError(t, m.AutoTick(si))
	assert.Equal(t, 10.0, si.State[economy.Wood], "full producers stop")
}

func TestZeroInputNeverProduces(t *testing.T) {
	m := newTestMatch(t, 3, 3)
	lj := stateOf(t, m.Map.Create(hex.FromOffset(1, 1), catalog.Lumberjack))
	for range 5 {
		require.NoError(t, m.AutoTick(lj))
	}
	assert.Zero(t, lj.State[economy.Wood])

	// no pasture means zero site productivity: the inputs are still used up
	farm := stateOf(t, m.Map.Create(hex.FromOffset(0, 0), catalog.SheepFarm))
	farm.State[economy.Sheep] = 20
	farm.State[economy.Money] = 20
	require.NoError(t, m.produce(farm))
	assert.Zero(t, farm.State[economy.Wool])
	assert.Zero(t, farm.State[economy.Sheep])
	assert.Zero(t, farm.State[economy.Money])
}

func TestStockProducerYieldsLessEachStep(t *testing.T) {
	m := newTestMatch(t, 3, 3)
	quarry := stateOf(t, m.Map.Create(hex.FromOffset(1, 1), catalog.Quarry))
	quarry.State[economy.Money] = 10

	// each step reads the stock left after its own inputs: 0.8+0.6+0.4+0.2+0
	require.NoError(t, m.produce(quarry))
	assert.InDelta(t, 2.0, quarry.State[economy.Stone], 1e-9)
	assert.Zero(t, quarry.State[economy.Money])

	require.NoError(t, m.produce(quarry))
	assert.InDelta(t, 2.0, quarry.State[economy.Stone], 1e-9, "nothing left to work with")
}

func TestAllFormulasTriedInOrder(t *testing.T) {
	m := newTestMatch(t, 3, 3)
	pioneer := stateOf(t, m.Map.Create(hex.FromOffset(1, 1), catalog.Pioneer))
	pioneer.State[economy.Cloth] = 10
	pioneer.State[economy.Faith] = 5

	require.NoError(t, m.AutoTick(pioneer))
	assert.Equal(t, 2.0, pioneer.State[economy.Money])
	assert.Zero(t, pioneer.State[economy.Cloth])
	assert.Zero(t, pioneer.State[economy.Faith])
}

func TestDeliveryNeedsConnection(t *testing.T) {
	m := newTestMatch(t, 8, 3)
	lj := stateOf(t, m.Map.Create(hex.FromOffset(1, 1), catalog.Lumberjack))
	near := stateOf(t, m.Map.Create(hex.FromOffset(2, 1), catalog.Forest))
	far := stateOf(t, m.Map.Create(hex.FromOffset(3, 1), catalog.Forest))
	near.State[economy.Tree] = 6
	far.State[economy.Tree] = 30

	m.deliver(lj)
	assert.Equal(t, 6.0, lj.State[economy.Tree], "adjacent tiles are connected")
	assert.Equal(t, 30.0, far.State[economy.Tree])

	r, err := roads.New(hex.FromOffset(1, 1), hex.FromOffset(2, 1), hex.FromOffset(3, 1))
	require.NoError(t, err)
	m.Map.Roads.CreateRoad(r)
	m.deliver(lj)
	assert.Equal(t, 20.0, lj.State[economy.Tree])
	assert.Equal(t, 16.0, far.State[economy.Tree])
}

func TestDeletedInstanceStopsTicking(t *testing.T) {
	m := newTestMatch(t, 6, 6)
	build(t, m, catalog.KeyWarehouse, hex.FromOffset(1, 1))
	lj := build(t, m, catalog.KeyLumberjack, hex.FromOffset(3, 3))

	_, ok := m.Map.Delete(lj.Coord())
	require.True(t, ok)
	tick(t, m, 2)
	assert.Zero(t, lj.State[economy.Money])
}

func TestSignificant(t *testing.T) {
	assert.Equal(t, 0.33, significant(1.0/3, 2))
	assert.Equal(t, 1.0, significant(1, 2))
	assert.Equal(t, 120.0, significant(123, 2))
	assert.Zero(t, significant(0, 2))
}
