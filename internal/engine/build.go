package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/talgya/hexecon/internal/catalog"
	"github.com/talgya/hexecon/internal/economy"
	"github.com/talgya/hexecon/internal/hex"
	"github.com/talgya/hexecon/internal/roads"
	"github.com/talgya/hexecon/internal/tiles"
)

var (
	// ErrNotAllowed is returned when a tile's placement rule rejects a cell.
	ErrNotAllowed = errors.New("engine: placement not allowed")
	// ErrCannotAfford is returned when the territory lacks the costs.
	ErrCannotAfford = errors.New("engine: cannot afford")
	// ErrNotRoadPoint is returned when a road would start or end on a tile
	// that cannot hold one.
	ErrNotRoadPoint = errors.New("engine: not a road point")
)

// CanAfford reports whether the territory at c holds costs. Without a
// territory only the very first warehouse is affordable, and it is free.
func (m *Match) CanAfford(c hex.Coord, costs economy.Bundle) bool {
	if m.check() != nil {
		return false
	}
	t := m.Territory(c)
	if t == nil {
		return len(m.GlobalTerritory().Warehouses()) == 0
	}
	defer t.Close()
	for _, cost := range costs {
		if cost.Amount > t.Get(cost.Good) {
			return false
		}
	}
	return true
}

// Build places the constructable tile key at c and charges its costs to the
// territory there.
func (m *Match) Build(key tiles.Key, c hex.Coord) (tiles.Instance, error) {
	if err := m.check(); err != nil {
		return nil, err
	}
	tile, ok := catalog.Constructable(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotConstructable, key)
	}
	if !tile.Allowed(m, c) {
		slog.Warn("build rejected", "tile", key, "coord", c, "reason", "placement")
		return nil, fmt.Errorf("%w: %s at %s", ErrNotAllowed, key, c)
	}
	if !m.CanAfford(c, tile.Costs()) {
		slog.Warn("build rejected", "tile", key, "coord", c, "reason", "costs", "costs", tile.Costs())
		return nil, fmt.Errorf("%w: %s costs %s", ErrCannotAfford, key, tile.Costs())
	}

	if t := m.Territory(c); t != nil {
		for _, cost := range tile.Costs() {
			if _, err := t.Withdraw(cost.Good, cost.Amount); err != nil {
				t.Close()
				return nil, fmt.Errorf("charging %s: %w", key, err)
			}
		}
		t.Close()
	}

	inst := m.Map.Create(c, tile)
	slog.Info("built", "tile", key, "coord", c, "turn", m.Clock.Turn())
	return inst, nil
}

// IsRoadPoint reports whether a road may start or end at c.
func (m *Match) IsRoadPoint(c hex.Coord) bool {
	return catalog.IsRoadPoint.At(m, c)
}

// PlanRoad finds the road BuildRoad would lay from one tile to another.
func (m *Match) PlanRoad(from, to hex.Coord) (roads.Road, error) {
	if err := m.check(); err != nil {
		return roads.Road{}, err
	}
	return m.Map.Roads.Plan(from, to, m.Map)
}

// BuildRoad lays the cheapest road between two road points.
func (m *Match) BuildRoad(from, to hex.Coord) (roads.Road, error) {
	if err := m.check(); err != nil {
		return roads.Road{}, err
	}
	for _, c := range []hex.Coord{from, to} {
		if !m.IsRoadPoint(c) {
			slog.Warn("road rejected", "from", from, "to", to, "reason", "road point", "coord", c)
			return roads.Road{}, fmt.Errorf("%w: %s", ErrNotRoadPoint, c)
		}
	}
	r, err := m.PlanRoad(from, to)
	if err != nil {
		slog.Warn("road rejected", "from", from, "to", to, "error", err)
		return roads.Road{}, err
	}
	m.Map.Roads.CreateRoad(r)
	slog.Info("road built", "road", r.String(), "turn", m.Clock.Turn())
	return r, nil
}
