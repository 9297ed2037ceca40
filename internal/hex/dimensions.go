package hex

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrAxis is returned for tile sizes below one pixel.
	ErrAxis = errors.New("hex: tile axis must be >= 1")
	// ErrNotPointy is returned when width and height differ.
	ErrNotPointy = errors.New("hex: only equal-sided pointy hexes are supported")
)

// Axis is a tile width or height in pixels, always >= 1.
type Axis float64

// NewAxis validates a tile dimension.
func NewAxis(v float64) (Axis, error) {
	if math.IsNaN(v) || v < 1 {
		return 0, fmt.Errorf("%w: %v", ErrAxis, v)
	}
	return Axis(v), nil
}

// Dimensions is the pixel size of a single tile.
type Dimensions struct {
	width  Axis
	height Axis
}

// NewDimensions returns tile dimensions for a pointy hex of the given size.
func NewDimensions(width, height float64) (*Dimensions, error) {
	d := &Dimensions{}
	if err := d.SetSize(width, height); err != nil {
		return nil, err
	}
	return d, nil
}

// UnitDimensions is a 1x1 tile.
func UnitDimensions() *Dimensions {
	return &Dimensions{width: 1, height: 1}
}

func (d *Dimensions) Width() Axis  { return d.width }
func (d *Dimensions) Height() Axis { return d.height }

// SetSize changes the tile size. The previous size is kept on error.
func (d *Dimensions) SetSize(width, height float64) error {
	w, err := NewAxis(width)
	if err != nil {
		return fmt.Errorf("width: %w", err)
	}
	h, err := NewAxis(height)
	if err != nil {
		return fmt.Errorf("height: %w", err)
	}
	if w != h {
		return fmt.Errorf("%w: %vx%v", ErrNotPointy, width, height)
	}
	d.width, d.height = w, h
	return nil
}

// ToWorld returns the pixel position of the top-left corner of c's tile.
func (d *Dimensions) ToWorld(c Coord) (int, int) {
	w := float64(d.width)
	h := float64(d.height)
	col, row := c.Offset()
	x := roundHalfUp(float64(row&1)*w/2 + float64(col)*w)
	y := roundHalfUp(float64(row) * 0.75 * h)
	return int(x), int(y)
}

// FromWorld returns the coordinate whose tile covers the pixel (worldX, worldY).
// Each column is cut into parts two rows high; a part has an upper overflow
// shared with the previous row, a main body, and a lower band split between
// the part's row and the next one.
func (d *Dimensions) FromWorld(worldX, worldY float64) Coord {
	w := float64(d.width)
	h := float64(d.height)
	partHeight := 1.5 * h
	partX := int(math.Floor(worldX / w))
	partY := int(math.Floor(worldY / partHeight))
	ix := math.Mod(worldX, w)
	iy := math.Mod(worldY, partHeight)
	row := 2 * partY

	switch {
	case iy > h:
		// below the main body
		if ix < w/2 {
			return FromOffset(partX-1, row+1)
		}
		return FromOffset(partX, row+1)
	case iy <= h/4:
		// upper overflow
		if ix < w/2 {
			if ix/2 <= iy {
				return FromOffset(partX-1, row-1)
			}
			return FromOffset(partX, row)
		}
		if ix/2 > iy {
			return FromOffset(partX, row-1)
		}
		return FromOffset(partX, row)
	default:
		return FromOffset(partX, row)
	}
}

// Rectangle returns the coordinates covering the pixel rectangle at
// (worldX, worldY) with the given size, column by column.
func (d *Dimensions) Rectangle(worldX, worldY, width, height float64, clipEnds bool) []Coord {
	minI, minJ := d.FromWorld(worldX, worldY).Offset()
	maxI, maxJ := d.FromWorld(worldX+width, worldY+height).Offset()
	if clipEnds {
		maxI--
		maxJ--
	}
	var coords []Coord
	for i := minI; i <= maxI; i++ {
		for j := minJ; j <= maxJ; j++ {
			coords = append(coords, FromOffset(i, j))
		}
	}
	return coords
}
