// Package tiles defines what can stand on a map cell: the capability levels a
// tile type may have and the instances placed on the map.
//
// Capabilities are layered:
//
//	Tile           key and instance factory
//	Constructable  costs, placement rule, influence area
//	Stateful       consumption, production, formulas, productivity
//	Standard       Constructable and Stateful
//
// The interfaces are sealed; Natural, Resource and Building are the only
// implementations.
package tiles

import (
	"github.com/talgya/hexecon/internal/economy"
	"github.com/talgya/hexecon/internal/hex"
)

// Key identifies a tile type.
type Key string

// View is the read-only part of a match that tile rules need.
type View interface {
	Instance(c hex.Coord) (Instance, bool)
	Connected(a, b hex.Coord) bool
	HasWarehouse(c hex.Coord) bool
}

type Tile interface {
	Key() Key
	NewInstance(c hex.Coord) Instance
	sealed()
}

// Influencer describes the area a tile reads from.
type Influencer interface {
	Influence(c hex.Coord) []hex.Coord
}

type Constructable interface {
	Tile
	Influencer
	Costs() economy.Bundle
	Allowed(v View, c hex.Coord) bool
}

type Stateful interface {
	Tile
	Influencer
	Consumes() economy.Bundle
	Produces() economy.Bundle
	// Formulas lists the alternative inputs for one unit of g, in order.
	// An empty bundle means g is made from nothing.
	Formulas(g economy.Good) []economy.Bundle
	InitialState() economy.Inventory
	Productivity(inst *StatefulInstance) (Productivity, error)
	BaseProductivity(v View, c hex.Coord) (Productivity, error)
}

type Standard interface {
	Constructable
	Stateful
}

var (
	_ Tile     = (*Natural)(nil)
	_ Stateful = (*Resource)(nil)
	_ Standard = (*Building)(nil)
)

// Natural is terrain. It produces nothing and cannot be built.
type Natural struct {
	Name Key
}

func (n *Natural) Key() Key { return n.Name }

func (n *Natural) NewInstance(c hex.Coord) Instance {
	return &basicInstance{tile: n, coord: c}
}

func (*Natural) sealed() {}

// Economy holds the stateful part shared by resources and buildings.
type Economy struct {
	Consumption economy.Bundle
	Production  economy.Bundle
	// Formula maps each produced good to its alternative input bundles.
	Formula map[economy.Good][]economy.Bundle
	// Initial is the starting stock. Goods of Consumption and Production that it
	// omits start at zero.
	Initial economy.Bundle
	// Range is the influence radius around the tile.
	Range int

	InstanceProductivity func(inst *StatefulInstance) (Productivity, error)
	SiteProductivity     func(v View, c hex.Coord) (Productivity, error)
}

func (e *Economy) consumes() economy.Bundle { return e.Consumption }
func (e *Economy) produces() economy.Bundle { return e.Production }

func (e *Economy) formulas(g economy.Good) []economy.Bundle {
	return e.Formula[g]
}

func (e *Economy) initialState() economy.Inventory {
	zero := make(economy.Bundle, 0, len(e.Consumption)+len(e.Production))
	for _, q := range e.Consumption.Union(e.Production) {
		zero = append(zero, economy.Q(q.Good, 0))
	}
	return economy.NewInventory(e.Initial, zero)
}

func (e *Economy) influence(c hex.Coord) []hex.Coord {
	return hex.Range(c, e.Range)
}

func (e *Economy) productivity(inst *StatefulInstance) (Productivity, error) {
	if e.InstanceProductivity == nil {
		return Simple(), nil
	}
	return e.InstanceProductivity(inst)
}

func (e *Economy) baseProductivity(v View, c hex.Coord) (Productivity, error) {
	if e.SiteProductivity == nil {
		return Simple(), nil
	}
	return e.SiteProductivity(v, c)
}

// Resource is a stateful tile that grows on its own and cannot be built,
// such as a fish school.
type Resource struct {
	Name Key
	Economy
}

func (r *Resource) Key() Key { return r.Name }

func (r *Resource) NewInstance(c hex.Coord) Instance {
	return newStatefulInstance(r, c)
}

func (*Resource) sealed() {}

func (r *Resource) Influence(c hex.Coord) []hex.Coord        { return r.influence(c) }
func (r *Resource) Consumes() economy.Bundle                 { return r.consumes() }
func (r *Resource) Produces() economy.Bundle                 { return r.produces() }
func (r *Resource) InitialState() economy.Inventory          { return r.initialState() }
func (r *Resource) Formulas(g economy.Good) []economy.Bundle { return r.formulas(g) }

func (r *Resource) Productivity(inst *StatefulInstance) (Productivity, error) {
	return r.productivity(inst)
}

func (r *Resource) BaseProductivity(v View, c hex.Coord) (Productivity, error) {
	return r.baseProductivity(v, c)
}

// Housing describes the needs of an inhabitant building. Requires and Wants
// are fill ratios of the consumed goods.
type Housing struct {
	Requires       economy.Bundle
	Wants          economy.Bundle
	Upgrade        economy.Bundle
	MaxInhabitants int
}

// Needs reports whether the stock meets the required and the wanted fill
// ratios of consumes.
func (h *Housing) Needs(state economy.Inventory, consumes economy.Bundle) (required, wanted bool) {
	met := func(ratios economy.Bundle) bool {
		for _, q := range ratios {
			target, ok := consumes.Get(q.Good)
			if !ok || target == 0 {
				continue
			}
			if state[q.Good]/target < q.Amount {
				return false
			}
		}
		return true
	}
	return met(h.Requires), met(h.Wants)
}

// Building is a constructable stateful tile, the common case.
type Building struct {
	Name Key
	Cost economy.Bundle
	// Rule decides where the building may be placed. Nil allows anywhere.
	Rule func(v View, c hex.Coord) bool
	// Housing is set for inhabitant buildings.
	Housing *Housing
	Economy
}

func (b *Building) Key() Key { return b.Name }

func (b *Building) NewInstance(c hex.Coord) Instance {
	return newStatefulInstance(b, c)
}

func (*Building) sealed() {}

func (b *Building) Costs() economy.Bundle { return b.Cost }

func (b *Building) Allowed(v View, c hex.Coord) bool {
	return b.Rule == nil || b.Rule(v, c)
}

func (b *Building) Influence(c hex.Coord) []hex.Coord        { return b.influence(c) }
func (b *Building) Consumes() economy.Bundle                 { return b.consumes() }
func (b *Building) Produces() economy.Bundle                 { return b.produces() }
func (b *Building) InitialState() economy.Inventory          { return b.initialState() }
func (b *Building) Formulas(g economy.Good) []economy.Bundle { return b.formulas(g) }

func (b *Building) Productivity(inst *StatefulInstance) (Productivity, error) {
	return b.productivity(inst)
}

func (b *Building) BaseProductivity(v View, c hex.Coord) (Productivity, error) {
	return b.baseProductivity(v, c)
}

// AsConstructable returns t as a Constructable if it is one.
func AsConstructable(t Tile) (Constructable, bool) {
	c, ok := t.(Constructable)
	return c, ok
}

// AsStateful returns t as a Stateful if it is one.
func AsStateful(t Tile) (Stateful, bool) {
	s, ok := t.(Stateful)
	return s, ok
}

// AsStandard returns t as a Standard if it is one.
func AsStandard(t Tile) (Standard, bool) {
	s, ok := t.(Standard)
	return s, ok
}

// IsProducing reports whether t is stateful and produces any of goods.
func IsProducing(t Tile, goods ...economy.Good) bool {
	s, ok := AsStateful(t)
	if !ok {
		return false
	}
	for _, g := range goods {
		if s.Produces().Has(g) {
			return true
		}
	}
	return false
}

// IsConsuming reports whether t is stateful and consumes any of goods.
func IsConsuming(t Tile, goods ...economy.Good) bool {
	s, ok := AsStateful(t)
	if !ok {
		return false
	}
	for _, g := range goods {
		if s.Consumes().Has(g) {
			return true
		}
	}
	return false
}
