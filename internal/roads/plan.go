package roads

import (
	"fmt"

	"github.com/talgya/hexecon/internal/hex"
	"github.com/talgya/hexecon/internal/path"
)

// Ground classifies what a road would be laid on.
type Ground int

const (
	// Blocked cells (off the map, water, mountains) cannot carry a road.
	Blocked Ground = iota
	// Open ground such as grass.
	Open
	// Rough ground such as forest.
	Rough
	// Occupied cells hold a building; a road may only end there.
	Occupied
)

// Step costs used by the planner.
const (
	CostRoad  = 0.25
	CostOpen  = 1.0
	CostRough = 2.0
)

// Terrain tells the planner what lies at a coordinate.
type Terrain interface {
	Ground(c hex.Coord) Ground
}

// TerrainFunc adapts a function to Terrain.
type TerrainFunc func(c hex.Coord) Ground

func (f TerrainFunc) Ground(c hex.Coord) Ground { return f(c) }

// Plan finds the cheapest road from origin to goal. Existing roads are the
// cheapest ground, then open and rough ground.
func (n *Network) Plan(origin, goal hex.Coord, terrain Terrain) (Road, error) {
	steps := path.Search(origin, goal, path.Graph[hex.Coord, hex.Hash]{
		Neighbors: func(step hex.Coord) []hex.Coord {
			var out []hex.Coord
			for _, nb := range step.Neighbors() {
				if n.passable(nb, goal, terrain) {
					out = append(out, nb)
				}
			}
			return out
		},
		Equal: hex.Coord.Equal,
		Cost: func(step hex.Coord) float64 {
			return n.stepCost(step, terrain)
		},
		Heuristic: func(a, b hex.Coord) float64 { return float64(hex.Distance(a, b)) * CostRoad },
		Key:       hex.Coord.Hash,
	})
	r, err := New(steps...)
	if err != nil {
		return Road{}, fmt.Errorf("%w from %s to %s", ErrNoRoute, origin, goal)
	}
	return r, nil
}

func (n *Network) passable(c, goal hex.Coord, terrain Terrain) bool {
	if n.Has(c) || c == goal {
		return terrain.Ground(c) != Blocked
	}
	g := terrain.Ground(c)
	return g == Open || g == Rough
}

func (n *Network) stepCost(c hex.Coord, terrain Terrain) float64 {
	if n.Has(c) {
		return CostRoad
	}
	if terrain.Ground(c) == Rough {
		return CostRough
	}
	return CostOpen
}
