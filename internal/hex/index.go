package hex

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNoElement is returned by Index.At for empty cells.
var ErrNoElement = errors.New("hex: no element at coordinate")

type offset struct {
	col, row int
}

// Index is a sparse grid of elements addressed by coordinate. Enumeration is
// column-major (column, then row, ascending) and cached between writes.
// An Index is not safe for concurrent use.
type Index[E any] struct {
	cells map[offset]E

	coords []Coord // cached, nil when stale
	values []E     // cached, nil when stale
}

// NewIndex creates an index holding the given elements.
func NewIndex[E any](elements map[Coord]E) *Index[E] {
	idx := &Index[E]{cells: make(map[offset]E, len(elements))}
	for c, e := range elements {
		idx.Set(c, e)
	}
	return idx
}

func keyOf(c Coord) offset {
	col, row := c.Offset()
	return offset{col: col, row: row}
}

func (idx *Index[E]) invalidate() {
	idx.coords = nil
	idx.values = nil
}

// Get returns the element at c.
func (idx *Index[E]) Get(c Coord) (E, bool) {
	e, ok := idx.cells[keyOf(c)]
	return e, ok
}

// Has reports whether c holds an element.
func (idx *Index[E]) Has(c Coord) bool {
	_, ok := idx.cells[keyOf(c)]
	return ok
}

// At is Get for cells that must be occupied.
func (idx *Index[E]) At(c Coord) (E, error) {
	e, ok := idx.cells[keyOf(c)]
	if !ok {
		return e, fmt.Errorf("%w %s", ErrNoElement, c)
	}
	return e, nil
}

// Set stores e at c, replacing any previous element.
func (idx *Index[E]) Set(c Coord, e E) {
	if idx.cells == nil {
		idx.cells = make(map[offset]E)
	}
	idx.cells[keyOf(c)] = e
	idx.invalidate()
}

// Delete removes the element at c and hands it to destructor, if any.
func (idx *Index[E]) Delete(c Coord, destructor func(E)) (E, bool) {
	k := keyOf(c)
	e, ok := idx.cells[k]
	if !ok {
		return e, false
	}
	delete(idx.cells, k)
	idx.invalidate()
	if destructor != nil {
		destructor(e)
	}
	return e, true
}

// Len returns the number of occupied cells.
func (idx *Index[E]) Len() int {
	return len(idx.cells)
}

func (idx *Index[E]) sortedKeys() []offset {
	keys := make([]offset, 0, len(idx.cells))
	for k := range idx.cells {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].col != keys[j].col {
			return keys[i].col < keys[j].col
		}
		return keys[i].row < keys[j].row
	})
	return keys
}

func (idx *Index[E]) refresh() {
	if idx.coords != nil && idx.values != nil {
		return
	}
	keys := idx.sortedKeys()
	idx.coords = make([]Coord, len(keys))
	idx.values = make([]E, len(keys))
	for i, k := range keys {
		idx.coords[i] = FromOffset(k.col, k.row)
		idx.values[i] = idx.cells[k]
	}
}

// Coordinates returns the occupied coordinates. The slice is a copy.
func (idx *Index[E]) Coordinates() []Coord {
	idx.refresh()
	return append([]Coord(nil), idx.coords...)
}

// Values returns the elements in coordinate order. The slice is a copy.
func (idx *Index[E]) Values() []E {
	idx.refresh()
	return append([]E(nil), idx.values...)
}

// Each calls fn for every element in coordinate order. fn may mutate the
// index; the iteration works on a snapshot taken before the first call.
func (idx *Index[E]) Each(fn func(e E, c Coord)) {
	idx.refresh()
	coords := idx.coords
	values := idx.values
	for i := range coords {
		fn(values[i], coords[i])
	}
}

// Slice returns a new index with the elements whose offset address lies in
// the rectangle spanned by start and stop, inclusive.
func (idx *Index[E]) Slice(start, stop Coord) *Index[E] {
	startI, startJ := start.Offset()
	stopI, stopJ := stop.Offset()
	out := &Index[E]{cells: make(map[offset]E)}
	for k, e := range idx.cells {
		if k.col >= startI && k.col <= stopI && k.row >= startJ && k.row <= stopJ {
			out.cells[k] = e
		}
	}
	return out
}

// Filter returns a new index with the elements for which keep returns true.
func (idx *Index[E]) Filter(keep func(e E, c Coord) bool) *Index[E] {
	out := &Index[E]{cells: make(map[offset]E)}
	idx.Each(func(e E, c Coord) {
		if keep(e, c) {
			out.cells[keyOf(c)] = e
		}
	})
	return out
}

// Columns returns one past the largest occupied column, or 0 when empty.
func (idx *Index[E]) Columns() int {
	n := 0
	for k := range idx.cells {
		n = max(n, k.col+1)
	}
	return n
}

// Rows returns one past the largest occupied row, or 0 when empty.
func (idx *Index[E]) Rows() int {
	n := 0
	for k := range idx.cells {
		n = max(n, k.row+1)
	}
	return n
}
