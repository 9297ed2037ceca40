package tiles

import (
	"fmt"

	"github.com/talgya/hexecon/internal/economy"
	"github.com/talgya/hexecon/internal/hex"
)

// Instance is a tile placed at a coordinate.
type Instance interface {
	Tile() Tile
	Coord() hex.Coord
	// Close releases whatever the instance registered while it was placed.
	Close()
}

type basicInstance struct {
	tile  Tile
	coord hex.Coord
}

func (i *basicInstance) Tile() Tile       { return i.tile }
func (i *basicInstance) Coord() hex.Coord { return i.coord }
func (i *basicInstance) Close()           {}

func (i *basicInstance) String() string {
	return fmt.Sprintf("%s@%s", i.tile.Key(), i.coord)
}

// StatefulInstance is an instance with its own stock of goods.
type StatefulInstance struct {
	tile    Stateful
	coord   hex.Coord
	State   economy.Inventory
	closers []func()
	closed  bool
}

func newStatefulInstance(t Stateful, c hex.Coord) *StatefulInstance {
	return &StatefulInstance{tile: t, coord: c, State: t.InitialState()}
}

func (i *StatefulInstance) Tile() Tile         { return i.tile }
func (i *StatefulInstance) Stateful() Stateful { return i.tile }
func (i *StatefulInstance) Coord() hex.Coord   { return i.coord }

// OnClose registers fn to run when the instance is closed. Registering on a
// closed instance runs fn at once.
func (i *StatefulInstance) OnClose(fn func()) {
	if i.closed {
		fn()
		return
	}
	i.closers = append(i.closers, fn)
}

// Close runs the registered closers once, in reverse order.
func (i *StatefulInstance) Close() {
	if i.closed {
		return
	}
	i.closed = true
	for j := len(i.closers) - 1; j >= 0; j-- {
		i.closers[j]()
	}
	i.closers = nil
}

// Closed reports whether Close has run.
func (i *StatefulInstance) Closed() bool { return i.closed }

// Below reports whether the stock of g is under the target amount.
func (i *StatefulInstance) Below(g economy.Good, target float64) bool {
	return i.State[g] < target
}

func (i *StatefulInstance) String() string {
	return fmt.Sprintf("%s@%s", i.tile.Key(), i.coord)
}

// StatefulOf returns inst as a stateful instance if it is one.
func StatefulOf(inst Instance) (*StatefulInstance, bool) {
	si, ok := inst.(*StatefulInstance)
	return si, ok
}
