package world

import (
	"fmt"
	"math"

	"github.com/talgya/hexecon/internal/catalog"
	"github.com/talgya/hexecon/internal/hex"
	"github.com/talgya/hexecon/internal/observe"
	"github.com/talgya/hexecon/internal/roads"
	"github.com/talgya/hexecon/internal/tiles"
)

// Event reports a change to the instance at Coord.
type Event struct {
	Kind     observe.Kind
	Coord    hex.Coord
	Instance tiles.Instance
}

func (e Event) EventKind() observe.Kind { return e.Kind }

// Map holds the placed tile instances and the road network laid over them.
type Map struct {
	cells  *hex.Index[tiles.Instance]
	Roads  *roads.Network
	events observe.Registry[Event]
}

// NewMap creates an empty map with an empty road network.
func NewMap() *Map {
	return &Map{
		cells: hex.NewIndex[tiles.Instance](nil),
		Roads: roads.NewNetwork(),
	}
}

// Listen subscribes fn to create, update and delete events.
func (m *Map) Listen(fn observe.Listener[Event], kinds ...observe.Kind) observe.Remove {
	return m.events.Listen(fn, kinds...)
}

// Get returns the instance at c.
func (m *Map) Get(c hex.Coord) (tiles.Instance, bool) {
	return m.cells.Get(c)
}

// At is Get for callers that treat a missing cell as an error.
func (m *Map) At(c hex.Coord) (tiles.Instance, error) {
	return m.cells.At(c)
}

// Set places inst at c. A constructable instance already there is deleted
// first, which reverts the cell to its base tile; any other instance is
// closed and replaced.
func (m *Map) Set(c hex.Coord, inst tiles.Instance) {
	current, existed := m.cells.Get(c)
	if existed {
		if _, ok := tiles.AsConstructable(current.Tile()); ok {
			m.Delete(c)
		} else {
			current.Close()
		}
	}
	m.cells.Set(c, inst)
	kind := observe.Create
	if existed {
		kind = observe.Update
	}
	m.events.Fire(Event{Kind: kind, Coord: c, Instance: inst})
}

// Delete removes a constructable instance from c, closes it and puts the
// base tile back. Natural tiles and resources are never deleted; the
// returned bool reports whether anything was removed.
func (m *Map) Delete(c hex.Coord) (tiles.Instance, bool) {
	current, ok := m.cells.Get(c)
	if !ok {
		return nil, false
	}
	if _, ok := tiles.AsConstructable(current.Tile()); !ok {
		return current, false
	}
	current.Close()
	m.cells.Delete(c, nil)
	m.events.Fire(Event{Kind: observe.Delete, Coord: c, Instance: current})
	m.Create(c, catalog.BaseTileFor(current.Tile()))
	return current, true
}

// Create instantiates tile at c and places it.
func (m *Map) Create(c hex.Coord, tile tiles.Tile) tiles.Instance {
	inst := tile.NewInstance(c)
	m.Set(c, inst)
	return inst
}

// Slice returns the instances in the offset rectangle from start to stop.
func (m *Map) Slice(start, stop hex.Coord) *hex.Index[tiles.Instance] {
	return m.cells.Slice(start, stop)
}

// Filter returns the instances for which keep is true.
func (m *Map) Filter(keep func(inst tiles.Instance, c hex.Coord) bool) *hex.Index[tiles.Instance] {
	return m.cells.Filter(keep)
}

func (m *Map) Coordinates() []hex.Coord                { return m.cells.Coordinates() }
func (m *Map) Values() []tiles.Instance                { return m.cells.Values() }
func (m *Map) Len() int                                { return m.cells.Len() }
func (m *Map) Each(fn func(tiles.Instance, hex.Coord)) { m.cells.Each(fn) }

// Dimensions returns the pixel size of the whole map for the given tile size:
// the corner of the tile one past the last column and row, plus one tile and,
// for an even column count, the half tile of the shifted rows. An empty map
// has no size.
func (m *Map) Dimensions(tile *hex.Dimensions) (width, height float64) {
	cols, rows := m.cells.Columns(), m.cells.Rows()
	if cols == 0 || rows == 0 {
		return 0, 0
	}
	w, h := float64(tile.Width()), float64(tile.Height())
	x, y := tile.ToWorld(hex.FromOffset(cols, rows))
	width = float64(x) + w
	height = float64(y) + h
	if cols&1 == 0 {
		height += math.Round(h / 2)
	}
	return width, height
}

// Ground classifies c for road planning.
func (m *Map) Ground(c hex.Coord) roads.Ground {
	inst, ok := m.cells.Get(c)
	if !ok {
		return roads.Blocked
	}
	switch {
	case tiles.Is(inst, catalog.KeyGrass):
		return roads.Open
	case tiles.Is(inst, catalog.KeyForest):
		return roads.Rough
	case catalog.IsRoadPoint(inst):
		return roads.Occupied
	}
	return roads.Blocked
}

// Close drops every listener and closes the road network and all instances.
func (m *Map) Close() {
	m.events.Close()
	m.Roads.Close()
	m.cells.Each(func(inst tiles.Instance, _ hex.Coord) {
		inst.Close()
	})
}

// String returns a summary of the map.
func (m *Map) String() string {
	return fmt.Sprintf("Map(%dx%d, tiles=%d, roads=%d)", m.cells.Columns(), m.cells.Rows(), m.cells.Len(), len(m.Roads.Roads()))
}

// TileCounts returns how many instances of each tile the map holds.
func TileCounts(m *Map) map[tiles.Key]int {
	counts := make(map[tiles.Key]int)
	m.cells.Each(func(inst tiles.Instance, _ hex.Coord) {
		counts[inst.Tile().Key()]++
	})
	return counts
}
