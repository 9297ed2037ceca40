// Package hex provides cube coordinates for a pointy-top hex grid, the
// offset projection used for sparse storage, and pixel conversions.
package hex

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNotCoordinate is returned when cube components do not sum to zero.
	ErrNotCoordinate = errors.New("hex: values are not a cube coordinate")
	// ErrNotAdjacent is returned by TouchingFace for coordinates that do not share a face.
	ErrNotAdjacent = errors.New("hex: coordinates are not touching")
)

// Coord is a cube coordinate. X+Y+Z is always 0.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Zero is the origin of the grid.
var Zero = Coord{}

// New returns the coordinate (x, y, z) or ErrNotCoordinate.
func New(x, y, z int) (Coord, error) {
	if x+y+z != 0 {
		return Coord{}, fmt.Errorf("%w: (%d, %d, %d)", ErrNotCoordinate, x, y, z)
	}
	return Coord{X: x, Y: y, Z: z}, nil
}

// From rounds fractional cube components to the nearest coordinate.
// Two axes are rounded and the axis with the largest rounding error is
// recomputed from the other two, which keeps repeated conversions from drifting.
func From(x, y, z float64) Coord {
	rx := roundHalfUp(x)
	ry := roundHalfUp(y)
	rz := roundHalfUp(z)

	xDiff := math.Abs(rx - x)
	yDiff := math.Abs(ry - y)
	zDiff := math.Abs(rz - z)
	if xDiff > yDiff && xDiff > zDiff {
		rx = -ry - rz
	} else if yDiff > zDiff {
		ry = -rx - rz
	} else {
		rz = -rx - ry
	}
	return Coord{X: int(rx), Y: int(ry), Z: int(rz)}
}

func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// FromOffset converts an odd-row offset address to a cube coordinate.
func FromOffset(col, row int) Coord {
	x := col - (row-(row&1))/2
	z := row
	return Coord{X: x, Y: -x - z, Z: z}
}

// Offset returns the (column, row) address of c.
func (c Coord) Offset() (int, int) {
	col := c.X + (c.Z-(c.Z&1))/2
	return col, c.Z
}

// Hash identifies a coordinate by its packed offset address.
type Hash uint32

// Hash packs the offset pair into 32 bits. Columns and rows must fit in 16
// bits each; larger maps collide.
func (c Coord) Hash() Hash {
	col, row := c.Offset()
	return Hash(uint32(col)<<16 | uint32(row)&0xffff)
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.X, c.Y, c.Z)
}

// Equal reports whether c and o are the same coordinate.
func (c Coord) Equal(o Coord) bool {
	return c == o
}

func (c Coord) Plus(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y, Z: c.Z + o.Z}
}

func (c Coord) Minus(o Coord) Coord {
	return Coord{X: c.X - o.X, Y: c.Y - o.Y, Z: c.Z - o.Z}
}

// Scale multiplies c by factor and rounds back onto the grid.
func (c Coord) Scale(factor float64) Coord {
	return From(float64(c.X)*factor, float64(c.Y)*factor, float64(c.Z)*factor)
}

// directions are the six unit offsets in face order.
var directions = [6]Coord{
	{X: 1, Y: -1, Z: 0},
	{X: 1, Y: 0, Z: -1},
	{X: 0, Y: 1, Z: -1},
	{X: -1, Y: 1, Z: 0},
	{X: -1, Y: 0, Z: 1},
	{X: 0, Y: -1, Z: 1},
}

// Directions returns the six unit offsets.
func Directions() [6]Coord {
	return directions
}

// Neighbors returns the six adjacent coordinates.
func (c Coord) Neighbors() [6]Coord {
	var result [6]Coord
	for i, dir := range directions {
		result[i] = c.Plus(dir)
	}
	return result
}

// Distance returns the hex distance between two coordinates: the largest
// absolute difference of the three cube components.
func Distance(a, b Coord) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y), abs(a.Z-b.Z))
}

// Range returns every coordinate within steps of center, center included.
func Range(center Coord, steps int) []Coord {
	return rangeOf(center, steps, true)
}

// RangeWithout is Range without the center itself.
func RangeWithout(center Coord, steps int) []Coord {
	return rangeOf(center, steps, false)
}

func rangeOf(center Coord, steps int, includeOrigin bool) []Coord {
	if steps < 0 {
		return nil
	}
	results := make([]Coord, 0, 3*steps*(steps+1)+1)
	for x := -steps; x <= steps; x++ {
		for y := max(-steps, -x-steps); y <= min(steps, -x+steps); y++ {
			offset := Coord{X: x, Y: y, Z: -x - y}
			if includeOrigin || offset != Zero {
				results = append(results, center.Plus(offset))
			}
		}
	}
	return results
}

// Face indexes one of the six sides of a hex, 0 through 5.
type Face uint8

// TouchingFace returns the face of a that touches b.
func TouchingFace(a, b Coord) (Face, error) {
	if Distance(a, b) != 1 {
		return 0, fmt.Errorf("%w: %s and %s", ErrNotAdjacent, a, b)
	}
	d := a.Minus(b)
	switch {
	case d.X == 0 && d.Y < 0:
		return 5, nil
	case d.X == 0:
		return 2, nil
	case d.X < 0 && d.Y == 0:
		return 4, nil
	case d.X < 0:
		return 3, nil
	case d.Y == 0:
		return 1, nil
	default:
		return 0, nil
	}
}

// Difference returns the coordinates of a that are not in b, in a's order.
func Difference(a, b []Coord) []Coord {
	exclude := make(map[Coord]struct{}, len(b))
	for _, c := range b {
		exclude[c] = struct{}{}
	}
	var out []Coord
	for _, c := range a {
		if _, ok := exclude[c]; !ok {
			out = append(out, c)
		}
	}
	return out
}

// Union returns b followed by the coordinates of a missing from b.
func Union(a, b []Coord) []Coord {
	out := make([]Coord, 0, len(a)+len(b))
	out = append(out, b...)
	return append(out, Difference(a, b)...)
}

// Intersection returns the coordinates present in both a and b.
func Intersection(a, b []Coord) []Coord {
	keep := make(map[Coord]struct{}, len(b))
	for _, c := range b {
		keep[c] = struct{}{}
	}
	var out []Coord
	for _, c := range a {
		if _, ok := keep[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
