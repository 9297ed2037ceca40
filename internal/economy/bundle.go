package economy

import (
	"fmt"
	"strings"
)

// Quantity is an amount of one good.
type Quantity struct {
	Good   Good    `json:"good" yaml:"good"`
	Amount float64 `json:"amount" yaml:"amount"`
}

// Q is shorthand for a Quantity literal.
func Q(g Good, amount float64) Quantity {
	return Quantity{Good: g, Amount: amount}
}

// Bundle is an ordered set of quantities. The declaration order is the order
// in which ticking visits goods. A nil Bundle means "nothing".
type Bundle []Quantity

// Of builds a bundle. It panics if a good appears twice, since bundles are
// declared once in tile tables.
func Of(qs ...Quantity) Bundle {
	seen := make(map[Good]struct{}, len(qs))
	for _, q := range qs {
		if _, dup := seen[q.Good]; dup {
			panic(fmt.Sprintf("economy: %s listed twice in bundle", q.Good))
		}
		seen[q.Good] = struct{}{}
	}
	return append(Bundle(nil), qs...)
}

// Empty reports whether the bundle holds nothing.
func (b Bundle) Empty() bool { return len(b) == 0 }

// Get returns the amount of g and whether g is part of the bundle.
func (b Bundle) Get(g Good) (float64, bool) {
	for _, q := range b {
		if q.Good == g {
			return q.Amount, true
		}
	}
	return 0, false
}

// Has reports whether g is part of the bundle.
func (b Bundle) Has(g Good) bool {
	_, ok := b.Get(g)
	return ok
}

// Goods lists the bundle's goods in order.
func (b Bundle) Goods() []Good {
	out := make([]Good, len(b))
	for i, q := range b {
		out[i] = q.Good
	}
	return out
}

// Total sums all amounts.
func (b Bundle) Total() float64 {
	sum := 0.0
	for _, q := range b {
		sum += q.Amount
	}
	return sum
}

// Union returns b followed by the goods of o that b lacks.
func (b Bundle) Union(o Bundle) Bundle {
	out := append(Bundle(nil), b...)
	for _, q := range o {
		if !b.Has(q.Good) {
			out = append(out, q)
		}
	}
	return out
}

func (b Bundle) String() string {
	if b.Empty() {
		return "nothing"
	}
	parts := make([]string, len(b))
	for i, q := range b {
		parts[i] = fmt.Sprintf("%s:%g", q.Good, q.Amount)
	}
	return strings.Join(parts, " ")
}

// Inventory is the mutable per-good state of a tile instance. A good absent
// from the map is not stocked at all, which differs from a stock of zero.
type Inventory map[Good]float64

// NewInventory stocks every good of the given bundles, using the first
// bundle's amount when a good appears in several.
func NewInventory(bundles ...Bundle) Inventory {
	inv := make(Inventory)
	for _, b := range bundles {
		for _, q := range b {
			if _, ok := inv[q.Good]; !ok {
				inv[q.Good] = q.Amount
			}
		}
	}
	return inv
}

// Stocks reports whether g is tracked by the inventory.
func (inv Inventory) Stocks(g Good) bool {
	_, ok := inv[g]
	return ok
}

func (inv Inventory) Clone() Inventory {
	out := make(Inventory, len(inv))
	for g, v := range inv {
		out[g] = v
	}
	return out
}

// Covers reports whether every quantity of b is in stock.
func (inv Inventory) Covers(b Bundle) bool {
	for _, q := range b {
		if inv[q.Good] < q.Amount {
			return false
		}
	}
	return true
}

// Plus adds b to the inventory.
func (inv Inventory) Plus(b Bundle) {
	for _, q := range b {
		inv[q.Good] += q.Amount
	}
}

// Minus removes b from the inventory. Callers check Covers first.
func (inv Inventory) Minus(b Bundle) {
	for _, q := range b {
		inv[q.Good] -= q.Amount
	}
}

// Bundle returns the inventory as a bundle ordered like order, followed by any
// remaining goods in catalog order.
func (inv Inventory) Bundle(order Bundle) Bundle {
	var out Bundle
	seen := make(map[Good]struct{}, len(inv))
	for _, q := range order {
		if v, ok := inv[q.Good]; ok {
			out = append(out, Q(q.Good, v))
			seen[q.Good] = struct{}{}
		}
	}
	for _, g := range All() {
		if _, done := seen[g]; done {
			continue
		}
		if v, ok := inv[g]; ok {
			out = append(out, Q(g, v))
		}
	}
	return out
}
