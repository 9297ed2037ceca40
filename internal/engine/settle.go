package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/talgya/hexecon/internal/catalog"
	"github.com/talgya/hexecon/internal/hex"
	"github.com/talgya/hexecon/internal/roads"
	"github.com/talgya/hexecon/internal/tiles"
)

// ErrNoSite is returned by Settle when no part of the map fits a starter
// economy.
var ErrNoSite = errors.New("engine: no site for a starter economy")

// Starter is a freshly founded economy: a warehouse, a lumberjack and a
// forest joined to the lumberjack by a track.
type Starter struct {
	Warehouse  hex.Coord
	Lumberjack hex.Coord
	Forest     hex.Coord
	Track      roads.Road
}

// Settle founds a starter economy on the first grass patch, in coordinate
// order, that has room for it. The match must not have a warehouse yet.
func (m *Match) Settle() (Starter, error) {
	if err := m.check(); err != nil {
		return Starter{}, err
	}
	for _, w := range m.Map.Coordinates() {
		s, ok := m.site(w)
		if !ok {
			continue
		}
		return s, m.found(&s)
	}
	return Starter{}, ErrNoSite
}

// site looks for lumberjack and forest cells around a warehouse at w.
func (m *Match) site(w hex.Coord) (Starter, bool) {
	grass := func(c hex.Coord) bool { return tiles.IsAt(m, c, catalog.KeyGrass) }
	if !grass(w) {
		return Starter{}, false
	}
	for _, lj := range hex.Range(w, 3) {
		if hex.Distance(w, lj) != 3 || !grass(lj) {
			continue
		}
		for _, f := range hex.Range(lj, 2) {
			if hex.Distance(lj, f) != 2 || !grass(f) {
				continue
			}
			if hex.Distance(w, f) > catalog.Warehouse.Range {
				continue
			}
			if _, err := m.PlanRoad(lj, f); err != nil {
				continue
			}
			return Starter{Warehouse: w, Lumberjack: lj, Forest: f}, true
		}
	}
	return Starter{}, false
}

func (m *Match) found(s *Starter) error {
	for _, b := range []struct {
		key tiles.Key
		c   hex.Coord
	}{
		{catalog.KeyWarehouse, s.Warehouse},
		{catalog.KeyLumberjack, s.Lumberjack},
		{catalog.KeyForest, s.Forest},
	} {
		if _, err := m.Build(b.key, b.c); err != nil {
			return fmt.Errorf("settling: %w", err)
		}
	}

	// forests are no road points, so the track is laid directly
	r, err := m.PlanRoad(s.Lumberjack, s.Forest)
	if err != nil {
		return fmt.Errorf("settling: %w", err)
	}
	s.Track = m.Map.Roads.CreateRoad(r)
	slog.Info("settled", "warehouse", s.Warehouse, "lumberjack", s.Lumberjack, "forest", s.Forest)
	return nil
}
