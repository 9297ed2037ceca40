package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hexecon/internal/catalog"
	"github.com/talgya/hexecon/internal/hex"
	"github.com/talgya/hexecon/internal/observe"
	"github.com/talgya/hexecon/internal/roads"
	"github.com/talgya/hexecon/internal/tiles"
)

func grassMap(cols, rows int) *Map {
	m := NewMap()
	for i := 0; i < cols; i++ {
		for j := 0; j < rows; j++ {
			m.Create(hex.FromOffset(i, j), catalog.Grass)
		}
	}
	return m
}

type recorded struct {
	kind observe.Kind
	key  tiles.Key
}

func record(m *Map) *[]recorded {
	var got []recorded
	m.Listen(func(e Event) {
		got = append(got, recorded{e.Kind, e.Instance.Tile().Key()})
	})
	return &got
}

func TestSetAndDelete(t *testing.T) {
	m := grassMap(3, 3)
	events := record(m)
	c := hex.FromOffset(1, 1)

	lj := m.Create(c, catalog.Lumberjack)
	assert.Equal(t, []recorded{{observe.Update, catalog.KeyLumberjack}}, *events)

	*events = nil
	var closed bool
	si, ok := tiles.StatefulOf(lj)
	require.True(t, ok)
	si.OnClose(func() { closed = true })

	m.Create(c, catalog.Chapel)
	assert.True(t, closed, "replaced buildings are closed")
	assert.Equal(t, []recorded{
		{observe.Delete, catalog.KeyLumberjack},
		{observe.Create, catalog.KeyGrass},
		{observe.Update, catalog.KeyChapel},
	}, *events)

	*events = nil
	removed, ok := m.Delete(c)
	require.True(t, ok)
	assert.True(t, tiles.Is(removed, catalog.KeyChapel))
	inst, err := m.At(c)
	require.NoError(t, err)
	assert.True(t, tiles.Is(inst, catalog.KeyGrass))
	assert.Equal(t, []recorded{
		{observe.Delete, catalog.KeyChapel},
		{observe.Create, catalog.KeyGrass},
	}, *events)
}

func TestDeleteKeepsNaturalTiles(t *testing.T) {
	m := grassMap(2, 2)
	events := record(m)

	_, ok := m.Delete(hex.Zero)
	assert.False(t, ok)
	_, ok = m.Delete(hex.FromOffset(7, 7))
	assert.False(t, ok)
	assert.Empty(t, *events)
	assert.Equal(t, 4, m.Len())

	_, err := m.At(hex.FromOffset(7, 7))
	assert.ErrorIs(t, err, hex.ErrNoElement)
}

func TestFisherRevertsToWater(t *testing.T) {
	m := NewMap()
	c := hex.Zero
	m.Create(c, catalog.Fisher)
	m.Delete(c)
	inst, ok := m.Get(c)
	require.True(t, ok)
	assert.True(t, tiles.Is(inst, catalog.KeyWater))
}

func TestReplacingResourceClosesIt(t *testing.T) {
	m := NewMap()
	fish := m.Create(hex.Zero, catalog.FishSchool)
	si, _ := tiles.StatefulOf(fish)

	m.Create(hex.Zero, catalog.Water)
	assert.True(t, si.Closed())
}

func TestSliceAndFilter(t *testing.T) {
	m := grassMap(4, 4)
	m.Create(hex.FromOffset(2, 2), catalog.Forest)

	s := m.Slice(hex.FromOffset(1, 1), hex.FromOffset(2, 3))
	assert.Equal(t, 6, s.Len())

	forests := m.Filter(func(inst tiles.Instance, _ hex.Coord) bool {
		return tiles.Is(inst, catalog.KeyForest)
	})
	assert.Equal(t, []hex.Coord{hex.FromOffset(2, 2)}, forests.Coordinates())

	counts := TileCounts(m)
	assert.Equal(t, 15, counts[catalog.KeyGrass])
	assert.Equal(t, 1, counts[catalog.KeyForest])
}

func TestDimensions(t *testing.T) {
	d, err := hex.NewDimensions(10, 10)
	require.NoError(t, err)

	w, h := NewMap().Dimensions(d)
	assert.Zero(t, w)
	assert.Zero(t, h)

	// corner of offset (1,1) is (15,8)
	w, h = grassMap(1, 1).Dimensions(d)
	assert.Equal(t, 25.0, w)
	assert.Equal(t, 18.0, h)

	// corner of offset (3,3) is (35,23); odd column count, no half tile
	w, h = grassMap(3, 3).Dimensions(d)
	assert.Equal(t, 45.0, w)
	assert.Equal(t, 33.0, h)

	// corner of offset (4,3) is (45,23); even column count adds half a tile
	w, h = grassMap(4, 3).Dimensions(d)
	assert.Equal(t, 55.0, w)
	assert.Equal(t, 38.0, h)
}

func TestGround(t *testing.T) {
	m := grassMap(3, 1)
	m.Create(hex.FromOffset(1, 0), catalog.Forest)
	m.Create(hex.FromOffset(2, 0), catalog.Lumberjack)

	assert.Equal(t, roads.Open, m.Ground(hex.FromOffset(0, 0)))
	assert.Equal(t, roads.Rough, m.Ground(hex.FromOffset(1, 0)))
	assert.Equal(t, roads.Occupied, m.Ground(hex.FromOffset(2, 0)))
	assert.Equal(t, roads.Blocked, m.Ground(hex.FromOffset(5, 5)))

	m.Create(hex.FromOffset(0, 0), catalog.Water)
	assert.Equal(t, roads.Blocked, m.Ground(hex.FromOffset(0, 0)))
}

func TestClose(t *testing.T) {
	m := grassMap(2, 2)
	events := record(m)
	si, _ := tiles.StatefulOf(m.Create(hex.Zero, catalog.Lumberjack))
	m.Close()

	assert.True(t, si.Closed())
	*events = nil
	m.Create(hex.FromOffset(1, 1), catalog.Chapel)
	assert.Empty(t, *events, "listeners are dropped")
}
