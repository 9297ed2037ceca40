package roads

import (
	"errors"
	"fmt"

	"github.com/talgya/hexecon/internal/hex"
	"github.com/talgya/hexecon/internal/observe"
	"github.com/talgya/hexecon/internal/path"
)

var ErrNoRoute = errors.New("roads: no route")

// Event reports a change to the roads running through one coordinate.
type Event struct {
	Kind  observe.Kind
	Road  Road
	Coord hex.Coord
}

func (e Event) EventKind() observe.Kind { return e.Kind }

// Network stores, per coordinate, the roads running through it.
type Network struct {
	cells  *hex.Index[[]Road]
	known  map[CircularHash]struct{}
	events observe.Registry[Event]
}

// NewNetwork returns an empty network.
func NewNetwork() *Network {
	return &Network{
		cells: hex.NewIndex[[]Road](nil),
		known: make(map[CircularHash]struct{}),
	}
}

// Listen registers fn for road events of the given kinds, or all kinds.
func (n *Network) Listen(fn observe.Listener[Event], kinds ...observe.Kind) observe.Remove {
	return n.events.Listen(fn, kinds...)
}

// Close drops all listeners.
func (n *Network) Close() {
	n.events.Close()
}

// Get returns the roads through c.
func (n *Network) Get(c hex.Coord) []Road {
	roads, _ := n.cells.Get(c)
	return append([]Road(nil), roads...)
}

// Has reports whether any road runs through c.
func (n *Network) Has(c hex.Coord) bool {
	return n.cells.Has(c)
}

// HasRoad reports whether r, in either direction, is part of the network.
func (n *Network) HasRoad(r Road) bool {
	_, ok := n.known[r.CircularHash()]
	return ok
}

// Roads returns every registered road once, in coordinate order.
func (n *Network) Roads() []Road {
	var out []Road
	seen := make(map[CircularHash]struct{})
	for _, roads := range n.cells.Values() {
		for _, r := range roads {
			h := r.CircularHash()
			if _, dup := seen[h]; dup {
				continue
			}
			seen[h] = struct{}{}
			out = append(out, r)
		}
	}
	return out
}

// Coordinates lists every coordinate with at least one road.
func (n *Network) Coordinates() []hex.Coord {
	return n.cells.Coordinates()
}

// Set replaces the roads through c. Roads not yet stored at c fire create,
// the others fire update, and roads dropped from c are deleted from the
// whole network.
func (n *Network) Set(c hex.Coord, roads []Road) {
	if len(roads) == 0 {
		n.Delete(c)
		return
	}
	current, _ := n.cells.Get(c)
	currentHashes := make(map[CircularHash]struct{}, len(current))
	for _, r := range current {
		currentHashes[r.CircularHash()] = struct{}{}
	}
	hashes := make(map[CircularHash]struct{}, len(roads))
	var created, updated []Road
	for _, r := range roads {
		h := r.CircularHash()
		hashes[h] = struct{}{}
		if _, ok := currentHashes[h]; ok {
			updated = append(updated, r)
		} else {
			created = append(created, r)
		}
	}

	stored := make([]Road, 0, len(roads))
	stored = append(stored, created...)
	stored = append(stored, updated...)
	n.cells.Set(c, stored)
	for _, r := range created {
		n.events.Fire(Event{Kind: observe.Create, Road: r, Coord: c})
	}
	for _, r := range updated {
		n.events.Fire(Event{Kind: observe.Update, Road: r, Coord: c})
	}

	for _, r := range current {
		if _, kept := hashes[r.CircularHash()]; !kept {
			n.DelRoad(r)
		}
	}
}

// Delete removes every road through c from the network.
func (n *Network) Delete(c hex.Coord) []Road {
	current, ok := n.cells.Get(c)
	if !ok {
		return nil
	}
	for _, r := range current {
		n.DelRoad(r)
	}
	n.cells.Delete(c, nil)
	return current
}

// CreateRoad adds r to the network unless it is already known.
func (n *Network) CreateRoad(r Road) Road {
	if n.HasRoad(r) {
		return r
	}
	for _, step := range r.steps {
		current, _ := n.cells.Get(step)
		n.Set(step, append([]Road{r}, current...))
	}
	n.known[r.CircularHash()] = struct{}{}
	return r
}

// DelRoad removes r from the network. It reports false if r was unknown.
func (n *Network) DelRoad(r Road) bool {
	h := r.CircularHash()
	if _, ok := n.known[h]; !ok {
		return false
	}
	// forget the road first so nested Set/Delete calls skip it
	delete(n.known, h)
	for _, step := range r.steps {
		n.subtract(step, h)
		n.events.Fire(Event{Kind: observe.Delete, Road: r, Coord: step})
	}
	return true
}

func (n *Network) subtract(c hex.Coord, h CircularHash) {
	current, _ := n.cells.Get(c)
	var rest []Road
	for _, r := range current {
		if r.CircularHash() != h {
			rest = append(rest, r)
		}
	}
	if len(rest) == 0 {
		n.Delete(c)
		return
	}
	n.Set(c, rest)
}

// RoadType returns the faces of c that roads leave through. ok is false when
// no road runs through c. It panics if a stored road does not contain c or
// steps off the grid, which means the network is corrupt.
func (n *Network) RoadType(c hex.Coord) (t Type, ok bool) {
	roads, _ := n.cells.Get(c)
	if len(roads) == 0 {
		return 0, false
	}
	var faces []hex.Face
	for _, r := range roads {
		i := r.Index(c)
		if i < 0 {
			panic(fmt.Sprintf("roads: %s stored at %s does not contain it", r, c))
		}
		for _, j := range []int{i - 1, i + 1} {
			if j < 0 || j >= len(r.steps) {
				continue
			}
			f, err := hex.TouchingFace(c, r.steps[j])
			if err != nil {
				panic(fmt.Sprintf("roads: %s: %v", r, err))
			}
			faces = append(faces, f)
		}
	}
	return TypeOf(faces...), true
}

// IsConnected reports whether from and to are adjacent or linked by roads.
func (n *Network) IsConnected(from, to hex.Coord) bool {
	if hex.Distance(from, to) == 1 {
		return true
	}
	return len(path.Search(from, to, n.roadGraph())) >= 2
}

func (n *Network) roadGraph() path.Graph[hex.Coord, hex.Hash] {
	return path.Graph[hex.Coord, hex.Hash]{
		Neighbors: func(step hex.Coord) []hex.Coord {
			var out []hex.Coord
			roads, _ := n.cells.Get(step)
			for _, r := range roads {
				i := r.Index(step)
				if i > 0 {
					out = append(out, r.steps[i-1])
				}
				if i >= 0 && i+1 < len(r.steps) {
					out = append(out, r.steps[i+1])
				}
			}
			return out
		},
		Equal:     hex.Coord.Equal,
		Cost:      func(hex.Coord) float64 { return 1 },
		Heuristic: func(a, b hex.Coord) float64 { return float64(hex.Distance(a, b)) },
		Key:       hex.Coord.Hash,
	}
}
