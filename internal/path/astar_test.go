package path

import (
	"container/heap"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hexecon/internal/hex"
)

// terrainGraph walks a hex patch where blocked cells cannot be entered.
func terrainGraph(cells map[hex.Coord]float64) Graph[hex.Coord, hex.Hash] {
	return Graph[hex.Coord, hex.Hash]{
		Neighbors: func(c hex.Coord) []hex.Coord {
			var out []hex.Coord
			for _, n := range c.Neighbors() {
				if _, ok := cells[n]; ok {
					out = append(out, n)
				}
			}
			return out
		},
		Equal:     hex.Coord.Equal,
		Cost:      func(c hex.Coord) float64 { return cells[c] },
		Heuristic: func(c, goal hex.Coord) float64 { return float64(hex.Distance(c, goal)) * 0.25 },
		Key:       hex.Coord.Hash,
	}
}

func pathCost(cells map[hex.Coord]float64, p []hex.Coord) float64 {
	total := 0.0
	for _, c := range p[1:] {
		total += cells[c]
	}
	return total
}

// cheapest enumerates every simple path; only usable on tiny fixtures.
func cheapest(cells map[hex.Coord]float64, from, to hex.Coord) float64 {
	best := math.Inf(1)
	visited := map[hex.Coord]bool{from: true}
	var walk func(c hex.Coord, cost float64)
	walk = func(c hex.Coord, cost float64) {
		if cost >= best {
			return
		}
		if c == to {
			best = cost
			return
		}
		for _, n := range c.Neighbors() {
			w, ok := cells[n]
			if !ok || visited[n] {
				continue
			}
			visited[n] = true
			walk(n, cost+w)
			visited[n] = false
		}
	}
	walk(from, 0)
	return best
}

func TestSearch_OriginIsGoal(t *testing.T) {
	cells := map[hex.Coord]float64{hex.Zero: 1}
	got := Search(hex.Zero, hex.Zero, terrainGraph(cells))
	assert.Equal(t, []hex.Coord{hex.Zero}, got)
}

func TestSearch_Disconnected(t *testing.T) {
	goal := hex.FromOffset(5, 5)
	cells := map[hex.Coord]float64{hex.Zero: 1, goal: 1}
	got := Search(hex.Zero, goal, terrainGraph(cells))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSearch_MinimalCost(t *testing.T) {
	cells := make(map[hex.Coord]float64)
	weights := []float64{1, 2, 0.25, 1, 2}
	for i, c := range hex.Range(hex.Zero, 2) {
		cells[c] = weights[i%len(weights)]
	}
	// a wall of expensive cells through the middle
	for _, c := range []hex.Coord{{X: 0, Y: 1, Z: -1}, {X: 1, Y: 0, Z: -1}} {
		cells[c] = 8
	}

	g := terrainGraph(cells)
	for _, from := range hex.Range(hex.Zero, 2) {
		for _, to := range hex.Range(hex.Zero, 2) {
			p := Search(from, to, g)
			require.NotEmpty(t, p, "%s -> %s", from, to)
			assert.Equal(t, from, p[0])
			assert.Equal(t, to, p[len(p)-1])
			for i := 1; i < len(p); i++ {
				assert.Equal(t, 1, hex.Distance(p[i-1], p[i]), "steps are adjacent")
			}
			assert.InDelta(t, cheapest(cells, from, to), pathCost(cells, p), 1e-9, "%s -> %s", from, to)
		}
	}
}

func pushItem(q *queue[string], s string, priority float64) {
	heap.Push(q, &item[string]{step: s, priority: priority})
}

func popItem(q *queue[string]) string {
	return heap.Pop(q).(*item[string]).step
}

func TestSearch_KeyCollapsesEqualSteps(t *testing.T) {
	// steps are pointers; two distinct pointers to the same cell are one node
	type step struct{ c hex.Coord }
	g := Graph[*step, hex.Hash]{
		Neighbors: func(s *step) []*step {
			var out []*step
			for _, n := range s.c.Neighbors() {
				if hex.Distance(n, hex.Zero) <= 2 {
					out = append(out, &step{n})
				}
			}
			return out
		},
		Equal:     func(a, b *step) bool { return a.c == b.c },
		Cost:      func(*step) float64 { return 1 },
		Heuristic: func(s, goal *step) float64 { return float64(hex.Distance(s.c, goal.c)) },
		Key:       func(s *step) hex.Hash { return s.c.Hash() },
	}
	goal := &step{hex.Coord{X: 2, Y: -2, Z: 0}}
	p := Search(&step{hex.Zero}, goal, g)
	require.Len(t, p, 3)
	assert.Equal(t, goal.c, p[2].c)
}

func TestQueue_StableForEqualPriorities(t *testing.T) {
	q := &queue[string]{}
	for _, s := range []string{"a", "b", "c"} {
		pushItem(q, s, 1)
	}
	pushItem(q, "z", 0)
	var order []string
	for q.Len() > 0 {
		order = append(order, popItem(q))
	}
	assert.Equal(t, []string{"z", "a", "b", "c"}, order)
}
