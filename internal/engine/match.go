package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/talgya/hexecon/internal/catalog"
	"github.com/talgya/hexecon/internal/economy"
	"github.com/talgya/hexecon/internal/hex"
	"github.com/talgya/hexecon/internal/observe"
	"github.com/talgya/hexecon/internal/tiles"
	"github.com/talgya/hexecon/internal/world"
)

// ErrNoMatch is returned by operations on a nil or closed match.
var ErrNoMatch = errors.New("engine: no match active")

// Match bundles everything one game needs: the map, the clock, player
// interaction and the tile size used to project the map to pixels.
type Match struct {
	ID          uuid.UUID
	Map         *world.Map
	Clock       *Clock
	Interaction *Interaction
	Tiles       *hex.Dimensions

	global    *Territory
	removeMap observe.Remove
	closed    bool
}

var _ tiles.View = (*Match)(nil)

// NewMatch starts a match on m. Every stateful instance on the map, now or
// later, ticks with the match clock until it is closed.
func NewMatch(m *world.Map) *Match {
	match := &Match{
		ID:          uuid.New(),
		Map:         m,
		Clock:       NewClock(),
		Interaction: NewInteraction(),
		Tiles:       hex.UnitDimensions(),
	}
	match.removeMap = m.Listen(func(e world.Event) {
		match.startTicking(e.Instance)
	}, observe.Create, observe.Update)
	m.Each(func(inst tiles.Instance, _ hex.Coord) {
		match.startTicking(inst)
	})

	slog.Info("match started", "id", match.ID, "map", m.String())
	return match
}

// Generate builds a world from cfg and starts a match on it.
func Generate(cfg world.GenConfig) (*Match, error) {
	m, err := world.Generate(cfg)
	if err != nil {
		return nil, fmt.Errorf("generating world: %w", err)
	}
	return NewMatch(m), nil
}

func (m *Match) startTicking(inst tiles.Instance) {
	si, ok := tiles.StatefulOf(inst)
	if !ok {
		return
	}
	remove := m.Clock.ListenTick(TickerFunc(func() error {
		return m.AutoTick(si)
	}))
	si.OnClose(func() { remove() })
}

func (m *Match) check() error {
	if m == nil || m.closed {
		return ErrNoMatch
	}
	return nil
}

// Active reports whether m can still be played.
func (m *Match) Active() bool { return m.check() == nil }

// Close stops the match and closes its map, clock, interaction and
// territory. Closing twice is harmless.
func (m *Match) Close() {
	if m.check() != nil {
		return
	}
	m.closed = true
	m.removeMap()
	if m.global != nil {
		m.global.Close()
	}
	m.Map.Close()
	m.Clock.Close()
	m.Interaction.Close()
	slog.Info("match closed", "id", m.ID, "turn", m.Clock.Turn())
}

// Tick advances the match by one turn.
func (m *Match) Tick() error {
	if err := m.check(); err != nil {
		return err
	}
	return m.Clock.Tick()
}

// Instance returns the instance at c.
func (m *Match) Instance(c hex.Coord) (tiles.Instance, bool) {
	return m.Map.Get(c)
}

// Connected reports whether goods can travel between a and b.
func (m *Match) Connected(a, b hex.Coord) bool {
	return m.Map.Roads.IsConnected(a, b)
}

// FindWarehouse returns the first warehouse whose reach covers c.
func (m *Match) FindWarehouse(c hex.Coord) (*tiles.StatefulInstance, bool) {
	for _, wc := range catalog.Warehouse.Influence(c) {
		inst, ok := m.Map.Get(wc)
		if ok && catalog.IsWarehouse(inst) {
			return tiles.StatefulOf(inst)
		}
	}
	return nil, false
}

// HasWarehouse reports whether a warehouse covers c.
func (m *Match) HasWarehouse(c hex.Coord) bool {
	_, ok := m.FindWarehouse(c)
	return ok
}

// Totals sums the stock of every stateful instance on the map.
func (m *Match) Totals() economy.Inventory {
	totals := make(economy.Inventory)
	m.Map.Each(func(inst tiles.Instance, _ hex.Coord) {
		si, ok := tiles.StatefulOf(inst)
		if !ok {
			return
		}
		for g, v := range si.State {
			totals[g] += v
		}
	})
	return totals
}
