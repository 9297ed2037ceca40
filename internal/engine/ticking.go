package engine

import (
	"fmt"
	"strconv"

	"github.com/talgya/hexecon/internal/catalog"
	"github.com/talgya/hexecon/internal/economy"
	"github.com/talgya/hexecon/internal/hex"
	"github.com/talgya/hexecon/internal/tiles"
)

// AutoTick runs one turn of si: it first produces as much as its stock
// allows, then tops up what it consumes from reachable tiles.
func (m *Match) AutoTick(si *tiles.StatefulInstance) error {
	if err := m.check(); err != nil {
		return err
	}
	if err := m.produce(si); err != nil {
		return fmt.Errorf("%s: %w", si, err)
	}
	m.deliver(si)
	return nil
}

// produce applies formulas until a whole pass over the produced goods makes
// no progress. Within a pass every formula of an unfilled good is tried.
// Inputs are taken before the instance productivity is read, so a tile
// working off its stock yields less with every step.
func (m *Match) produce(si *tiles.StatefulInstance) error {
	tile := si.Stateful()
	if tile.Produces().Empty() {
		return nil
	}
	base, err := tile.BaseProductivity(m, si.Coord())
	if err != nil {
		return err
	}

	for progress := true; progress; {
		progress = false
		for _, target := range tile.Produces() {
			if !si.Below(target.Good, target.Amount) {
				continue
			}
			for _, formula := range tile.Formulas(target.Good) {
				if !si.State.Covers(formula) {
					continue
				}
				si.State.Minus(formula)
				p, err := tile.Productivity(si)
				if err != nil {
					return err
				}
				yield := significant(float64(base)*float64(p), 2)
				si.State[target.Good] += yield
				// a free formula only counts when it yields
				if !formula.Empty() || yield > 0 {
					progress = true
				}
			}
		}
	}
	return nil
}

// deliver pulls every unfilled consumed good from the tiles that can supply
// it. Money for anything but a warehouse comes from the territory and needs
// no road.
func (m *Match) deliver(si *tiles.StatefulInstance) {
	tile := si.Stateful()
	if tile.Consumes().Empty() {
		return
	}

	var reachable []*tiles.StatefulInstance
	for _, c := range m.reachableFrom(si.Coord(), tile.Influence(si.Coord())) {
		inst, _ := m.Map.Get(c)
		if from, ok := tiles.StatefulOf(inst); ok {
			reachable = append(reachable, from)
		}
	}

	for _, target := range tile.Consumes() {
		g := target.Good
		if !si.Below(g, target.Amount) {
			continue
		}
		if g == economy.Money && !catalog.IsWarehouse(si) {
			if t := m.TerritoryOf(si); t != nil {
				need := target.Amount - si.State[g]
				taken := min(need, t.Get(g))
				residual, _ := t.Withdraw(g, taken)
				si.State[g] += taken - residual
				t.Close()
			}
			continue
		}
		for _, from := range reachable {
			if !tiles.IsProducing(from.Tile(), g) && !catalog.IsWarehouse(from) {
				continue
			}
			if !from.State.Stocks(g) {
				continue
			}
			transfer(si, from, g, target.Amount)
		}
	}
}

// transfer moves up to the shortfall of g from one instance to another.
func transfer(to, from *tiles.StatefulInstance, g economy.Good, target float64) {
	diff := target - to.State[g]
	if diff <= 0 {
		return
	}
	amount := min(diff, from.State[g])
	to.State[g] += amount
	from.State[g] -= amount
}

// significant rounds v to the given number of significant digits.
func significant(v float64, digits int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', digits, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// reachableFrom lists the coordinates in area that are road-connected to c.
func (m *Match) reachableFrom(c hex.Coord, area []hex.Coord) []hex.Coord {
	var out []hex.Coord
	for _, a := range area {
		if a != c && m.Map.Roads.IsConnected(c, a) {
			out = append(out, a)
		}
	}
	return out
}
