package tiles

import (
	"errors"
	"fmt"
	"math"

	"github.com/talgya/hexecon/internal/hex"
)

var (
	ErrProductivity = errors.New("tiles: productivity out of range")
	ErrScale        = errors.New("tiles: reachability scale below 1")
)

// Productivity scales production and lies in [0, 1].
type Productivity float64

// NewProductivity validates v.
func NewProductivity(v float64) (Productivity, error) {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return 0, fmt.Errorf("%w: %v", ErrProductivity, v)
	}
	return Productivity(v), nil
}

// Simple is full productivity.
func Simple() Productivity { return 1 }

// Max returns the largest of vs as a productivity.
func Max(vs ...float64) (Productivity, error) {
	if len(vs) == 0 {
		return 0, fmt.Errorf("%w: no values", ErrProductivity)
	}
	m := vs[0]
	for _, v := range vs[1:] {
		m = math.Max(m, v)
	}
	return NewProductivity(m)
}

// FromStock multiplies the fill ratio of every consumed good.
func FromStock(inst *StatefulInstance) (Productivity, error) {
	p := 1.0
	for _, q := range inst.Stateful().Consumes() {
		p *= inst.State[q.Good] / q.Amount
	}
	return NewProductivity(p)
}

// FromReachability counts the cells of area holding key, divided by scale and
// capped at 1. A scale of 2 means one such cell gives half productivity.
func FromReachability(v View, area []hex.Coord, key Key, scale float64) (Productivity, error) {
	if scale < 1 {
		return 0, fmt.Errorf("%w: %v", ErrScale, scale)
	}
	n := 0
	for _, c := range area {
		if IsAt(v, c, key) {
			n++
		}
	}
	return NewProductivity(math.Min(1, float64(n)/scale))
}
