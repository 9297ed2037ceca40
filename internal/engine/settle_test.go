package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hexecon/internal/catalog"
	"github.com/talgya/hexecon/internal/economy"
	"github.com/talgya/hexecon/internal/hex"
	"github.com/talgya/hexecon/internal/tiles"
	"github.com/talgya/hexecon/internal/world"
)

func TestSettle(t *testing.T) {
	m := newTestMatch(t, 12, 12)
	s, err := m.Settle()
	require.NoError(t, err)

	assert.True(t, tiles.IsAt(m, s.Warehouse, catalog.KeyWarehouse))
	assert.True(t, tiles.IsAt(m, s.Lumberjack, catalog.KeyLumberjack))
	assert.True(t, tiles.IsAt(m, s.Forest, catalog.KeyForest))
	assert.True(t, m.Connected(s.Lumberjack, s.Forest))
	assert.Equal(t, 3, hex.Distance(s.Warehouse, s.Lumberjack))

	inst, _ := m.Map.Get(s.Lumberjack)
	lj := stateOf(t, inst)
	tick(t, m, 4)
	assert.Positive(t, lj.State[economy.Wood], "the starter economy produces")
}

func TestSettleNoSite(t *testing.T) {
	m := newTestMatch(t, 3, 3)
	_, err := m.Settle()
	assert.ErrorIs(t, err, ErrNoSite)
	assert.Empty(t, m.GlobalTerritory().Warehouses(), "nothing is built when no site fits")
}

func TestSettleGenerated(t *testing.T) {
	m, err := Generate(world.SmallTestConfig())
	require.NoError(t, err)
	t.Cleanup(m.Close)

	s, err := m.Settle()
	if err != nil {
		assert.ErrorIs(t, err, ErrNoSite)
		return
	}
	assert.True(t, m.HasWarehouse(s.Forest))
	assert.True(t, m.HasWarehouse(s.Lumberjack))
}
