package engine

import (
	"errors"
	"fmt"

	"github.com/talgya/hexecon/internal/catalog"
	"github.com/talgya/hexecon/internal/economy"
	"github.com/talgya/hexecon/internal/hex"
	"github.com/talgya/hexecon/internal/observe"
	"github.com/talgya/hexecon/internal/tiles"
	"github.com/talgya/hexecon/internal/world"
)

// ErrShortfall is returned when a territory cannot absorb a whole write.
// The part that fit is kept.
var ErrShortfall = errors.New("engine: territory cannot cover the amount")

// Territory is a group of warehouses that share their stock. Goods a
// warehouse stores are read from the warehouses; any other good is read from
// its producers inside the warehouses' reach.
//
// A territory follows the map through a live subscription and must be
// closed.
type Territory struct {
	m *Match

	// reachable territories
	members []*tiles.StatefulInstance
	// the global territory
	index *hex.Index[*tiles.StatefulInstance]

	remove observe.Remove
}

// Territory returns the territory of the first warehouse covering c, or nil
// when no warehouse does.
func (m *Match) Territory(c hex.Coord) *Territory {
	if m.check() != nil {
		return nil
	}
	w, ok := m.FindWarehouse(c)
	if !ok {
		return nil
	}
	return m.reachableTerritory(w)
}

// TerritoryOf returns the territory inst belongs to. A warehouse seeds its
// own territory.
func (m *Match) TerritoryOf(inst tiles.Instance) *Territory {
	if m.check() != nil {
		return nil
	}
	if catalog.IsWarehouse(inst) {
		if w, ok := tiles.StatefulOf(inst); ok {
			return m.reachableTerritory(w)
		}
	}
	return m.Territory(inst.Coord())
}

// GlobalTerritory returns the territory of every warehouse on the map. It
// lives as long as the match.
func (m *Match) GlobalTerritory() *Territory {
	if m.check() != nil {
		return nil
	}
	if m.global != nil {
		return m.global
	}
	t := &Territory{m: m, index: hex.NewIndex[*tiles.StatefulInstance](nil)}
	m.Map.Each(func(inst tiles.Instance, c hex.Coord) {
		if w, ok := tiles.StatefulOf(inst); ok && catalog.IsWarehouse(w) {
			t.index.Set(c, w)
		}
	})
	t.remove = m.Map.Listen(func(e world.Event) {
		if !catalog.IsWarehouse(e.Instance) {
			return
		}
		if e.Kind == observe.Delete {
			t.index.Delete(e.Coord, nil)
			return
		}
		if w, ok := tiles.StatefulOf(e.Instance); ok {
			t.index.Set(e.Coord, w)
		}
	})
	m.global = t
	return t
}

func (m *Match) reachableTerritory(seed *tiles.StatefulInstance) *Territory {
	t := &Territory{m: m, members: m.bfsWarehouses(seed)}
	t.remove = m.Map.Listen(func(e world.Event) {
		if !catalog.IsWarehouse(e.Instance) {
			return
		}
		if e.Kind == observe.Delete {
			t.members = without(t.members, e.Instance)
		}
		if len(t.members) > 0 {
			// full rescan from the oldest surviving member
			t.members = m.bfsWarehouses(t.members[0])
		}
	})
	return t
}

// bfsWarehouses collects every warehouse reachable from seed by hopping
// between warehouses that cover each other.
func (m *Match) bfsWarehouses(seed *tiles.StatefulInstance) []*tiles.StatefulInstance {
	found := []*tiles.StatefulInstance{seed}
	seen := map[*tiles.StatefulInstance]bool{seed: true}
	for i := 0; i < len(found); i++ {
		for _, c := range catalog.Warehouse.Influence(found[i].Coord()) {
			inst, ok := m.Map.Get(c)
			if !ok || !catalog.IsWarehouse(inst) {
				continue
			}
			w, ok := tiles.StatefulOf(inst)
			if ok && !seen[w] {
				seen[w] = true
				found = append(found, w)
			}
		}
	}
	return found
}

func without(members []*tiles.StatefulInstance, inst tiles.Instance) []*tiles.StatefulInstance {
	out := members[:0:0]
	for _, w := range members {
		if tiles.Instance(w) != inst {
			out = append(out, w)
		}
	}
	return out
}

// Warehouses returns the member warehouses.
func (t *Territory) Warehouses() []*tiles.StatefulInstance {
	if t.index != nil {
		return t.index.Values()
	}
	return append([]*tiles.StatefulInstance(nil), t.members...)
}

// Has reports whether w is a member.
func (t *Territory) Has(w tiles.Instance) bool {
	for _, member := range t.Warehouses() {
		if tiles.Instance(member) == w {
			return true
		}
	}
	return false
}

// warehouseGood reports whether warehouses store g.
func warehouseGood(g economy.Good) bool {
	return catalog.Warehouse.Consumes().Has(g)
}

// sources lists the instances holding the territory's stock of g, in the
// order writes visit them.
func (t *Territory) sources(g economy.Good) []*tiles.StatefulInstance {
	warehouses := t.Warehouses()
	if warehouseGood(g) {
		return warehouses
	}

	var out []*tiles.StatefulInstance
	seen := make(map[hex.Coord]bool)
	add := func(c hex.Coord) {
		if seen[c] {
			return
		}
		seen[c] = true
		inst, ok := t.m.Map.Get(c)
		if !ok || !tiles.IsProducing(inst.Tile(), g) {
			return
		}
		if si, ok := tiles.StatefulOf(inst); ok {
			out = append(out, si)
		}
	}

	if t.index != nil {
		for _, c := range t.m.Map.Coordinates() {
			add(c)
		}
		return out
	}
	for _, w := range warehouses {
		for _, c := range catalog.Warehouse.Influence(w.Coord()) {
			add(c)
		}
	}
	return out
}

// Get returns the territory's total stock of g.
func (t *Territory) Get(g economy.Good) float64 {
	total := 0.0
	for _, si := range t.sources(g) {
		total += si.State[g]
	}
	return total
}

// Set changes the stock of g to value by withdrawing or depositing the
// difference.
func (t *Territory) Set(g economy.Good, value float64) (residual float64, err error) {
	diff := t.Get(g) - value
	switch {
	case diff > 0:
		return t.Withdraw(g, diff)
	case diff < 0:
		return t.Deposit(g, -diff)
	}
	return 0, nil
}

// Withdraw takes amount of g, emptying the last members first. It returns
// the part that could not be taken.
func (t *Territory) Withdraw(g economy.Good, amount float64) (residual float64, err error) {
	sources := t.sources(g)
	for i := len(sources) - 1; i >= 0 && amount > 0; i-- {
		take := min(amount, sources[i].State[g])
		sources[i].State[g] -= take
		amount -= take
	}
	if amount > 0 {
		return amount, fmt.Errorf("%w: %v %s missing", ErrShortfall, amount, g)
	}
	return 0, nil
}

// Deposit stores amount of g, filling the first members first up to what
// each can hold. It returns the part that did not fit.
func (t *Territory) Deposit(g economy.Good, amount float64) (residual float64, err error) {
	for _, si := range t.sources(g) {
		if amount <= 0 {
			break
		}
		room := capacity(si, g) - si.State[g]
		if room <= 0 {
			continue
		}
		put := min(amount, room)
		si.State[g] += put
		amount -= put
	}
	if amount > 0 {
		return amount, fmt.Errorf("%w: no room for %v %s", ErrShortfall, amount, g)
	}
	return 0, nil
}

// capacity is the most of g an instance holds: its consumption or
// production target.
func capacity(si *tiles.StatefulInstance, g economy.Good) float64 {
	tile := si.Stateful()
	c, _ := tile.Consumes().Get(g)
	p, _ := tile.Produces().Get(g)
	return max(c, p)
}

// Close releases the map subscription.
func (t *Territory) Close() {
	if t.remove != nil {
		t.remove()
		t.remove = nil
	}
}
