// Package roads models roads on the hex grid and the network that links them.
package roads

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/talgya/hexecon/internal/hex"
)

var (
	ErrInvalidRoad = errors.New("roads: coordinates do not form a road")
	ErrInvalidType = errors.New("roads: not a road type")
)

// Road is an ordered, non-looping chain of at least two adjacent coordinates.
// Roads are immutable; two roads are equal when their steps are equal in order.
type Road struct {
	steps []hex.Coord
}

// New validates steps and returns them as a Road.
func New(steps ...hex.Coord) (Road, error) {
	if len(steps) < 2 {
		return Road{}, fmt.Errorf("%w: %d steps", ErrInvalidRoad, len(steps))
	}
	seen := make(map[hex.Coord]struct{}, len(steps))
	for i, s := range steps {
		if _, dup := seen[s]; dup {
			return Road{}, fmt.Errorf("%w: %s visited twice", ErrInvalidRoad, s)
		}
		seen[s] = struct{}{}
		if i > 0 && hex.Distance(steps[i-1], s) != 1 {
			return Road{}, fmt.Errorf("%w: %s and %s are not adjacent", ErrInvalidRoad, steps[i-1], s)
		}
	}
	return Road{steps: append([]hex.Coord(nil), steps...)}, nil
}

// Steps returns a copy of the road's coordinates.
func (r Road) Steps() []hex.Coord {
	return append([]hex.Coord(nil), r.steps...)
}

func (r Road) Len() int { return len(r.steps) }

// Start and End return the first and last step.
func (r Road) Start() hex.Coord { return r.steps[0] }
func (r Road) End() hex.Coord   { return r.steps[len(r.steps)-1] }

// Index returns the position of c on the road, or -1.
func (r Road) Index(c hex.Coord) int {
	for i, s := range r.steps {
		if s == c {
			return i
		}
	}
	return -1
}

// Contains reports whether c is a step of the road.
func (r Road) Contains(c hex.Coord) bool {
	return r.Index(c) >= 0
}

// Equal reports whether both roads have the same steps in the same order.
func (r Road) Equal(o Road) bool {
	if len(r.steps) != len(o.steps) {
		return false
	}
	for i := range r.steps {
		if r.steps[i] != o.steps[i] {
			return false
		}
	}
	return true
}

// Reverse returns the road walked from the other end.
func (r Road) Reverse() Road {
	out := make([]hex.Coord, len(r.steps))
	for i, s := range r.steps {
		out[len(out)-1-i] = s
	}
	return Road{steps: out}
}

func (r Road) String() string {
	parts := make([]string, len(r.steps))
	for i, s := range r.steps {
		parts[i] = s.String()
	}
	return "road[" + strings.Join(parts, " ") + "]"
}

// Hash identifies a road including its direction.
type Hash string

// CircularHash identifies a road regardless of its direction.
type CircularHash string

func (r Road) Hash() Hash {
	return hashOf(r.steps, false)
}

// CircularHash is the smaller of the forward and backward hashes, so a road
// and its reverse share it.
func (r Road) CircularHash() CircularHash {
	fwd, back := hashOf(r.steps, false), hashOf(r.steps, true)
	if back < fwd {
		return CircularHash(back)
	}
	return CircularHash(fwd)
}

func hashOf(steps []hex.Coord, reverse bool) Hash {
	var b strings.Builder
	for i := range steps {
		s := steps[i]
		if reverse {
			s = steps[len(steps)-1-i]
		}
		if i > 0 {
			b.WriteByte('$')
		}
		b.WriteString(strconv.FormatUint(uint64(s.Hash()), 10))
	}
	return Hash(b.String())
}

// Type is a 6-bit mask of the hex faces a road leaves a tile through.
type Type uint8

const allFaces = 0b111111

// NewType validates v as a road type.
func NewType(v int) (Type, error) {
	if v <= 0 || v&allFaces != v {
		return 0, fmt.Errorf("%w: %d", ErrInvalidType, v)
	}
	return Type(v), nil
}

// TypeOf builds the type touching the given faces. It panics when no face is
// given or a face is out of range.
func TypeOf(faces ...hex.Face) Type {
	v := 0
	for _, f := range faces {
		v |= 1 << f
	}
	t, err := NewType(v)
	if err != nil {
		panic(err)
	}
	return t
}

// AllTypes lists every road type in ascending order.
func AllTypes() []Type {
	out := make([]Type, 0, allFaces)
	for v := 1; v <= allFaces; v++ {
		out = append(out, Type(v))
	}
	return out
}

// Has reports whether the type touches face f.
func (t Type) Has(f hex.Face) bool {
	return t&(1<<f) != 0
}

func (t Type) String() string {
	return fmt.Sprintf("%06b", uint8(t))
}
