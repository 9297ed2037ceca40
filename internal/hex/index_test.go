package hex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_SetGetDelete(t *testing.T) {
	idx := NewIndex[string](nil)
	c := FromOffset(3, 4)

	_, ok := idx.Get(c)
	assert.False(t, ok)
	_, err := idx.At(c)
	assert.ErrorIs(t, err, ErrNoElement)

	idx.Set(c, "a")
	got, err := idx.At(c)
	require.NoError(t, err)
	assert.Equal(t, "a", got)
	assert.True(t, idx.Has(c))
	assert.Equal(t, 1, idx.Len())

	var destroyed []string
	old, ok := idx.Delete(c, func(s string) { destroyed = append(destroyed, s) })
	assert.True(t, ok)
	assert.Equal(t, "a", old)
	assert.Equal(t, []string{"a"}, destroyed)
	assert.False(t, idx.Has(c))

	_, ok = idx.Delete(c, func(string) { t.Fatal("destructor called for empty cell") })
	assert.False(t, ok)
}

func TestIndex_EnumerationIsColumnMajorAndRefreshedOnWrite(t *testing.T) {
	idx := NewIndex(map[Coord]int{
		FromOffset(1, 0): 10,
		FromOffset(0, 1): 1,
		FromOffset(0, 0): 0,
	})
	assert.Equal(t, []int{0, 1, 10}, idx.Values())
	assert.Equal(t, []Coord{FromOffset(0, 0), FromOffset(0, 1), FromOffset(1, 0)}, idx.Coordinates())

	idx.Set(FromOffset(0, 2), 2)
	assert.Equal(t, []int{0, 1, 2, 10}, idx.Values())

	idx.Delete(FromOffset(0, 1), nil)
	assert.Equal(t, []int{0, 2, 10}, idx.Values())

	values := idx.Values()
	values[0] = 99
	assert.Equal(t, []int{0, 2, 10}, idx.Values(), "callers get a copy")
}

func TestIndex_EachToleratesMutation(t *testing.T) {
	idx := NewIndex(map[Coord]int{FromOffset(0, 0): 1, FromOffset(0, 1): 2, FromOffset(0, 2): 3})
	visited := 0
	idx.Each(func(v int, c Coord) {
		visited++
		idx.Delete(c, nil)
	})
	assert.Equal(t, 3, visited)
	assert.Equal(t, 0, idx.Len())
}

func TestIndex_SliceAndFilter(t *testing.T) {
	idx := NewIndex[int](nil)
	for col := 0; col < 5; col++ {
		for row := 0; row < 5; row++ {
			idx.Set(FromOffset(col, row), col*10+row)
		}
	}
	assert.Equal(t, 5, idx.Columns())
	assert.Equal(t, 5, idx.Rows())

	sub := idx.Slice(FromOffset(1, 1), FromOffset(2, 3))
	assert.Equal(t, []int{11, 12, 13, 21, 22, 23}, sub.Values())

	even := idx.Filter(func(v int, _ Coord) bool { return v%2 == 0 })
	for _, v := range even.Values() {
		assert.Zero(t, v%2)
	}
	assert.Equal(t, 15, even.Len())
}

func TestDimensions_FromWorldInvertsToWorld(t *testing.T) {
	d, err := NewDimensions(64, 64)
	require.NoError(t, err)
	half := float64(d.Width()) / 2
	for col := 0; col < 12; col++ {
		for row := 0; row < 12; row++ {
			c := FromOffset(col, row)
			x, y := d.ToWorld(c)
			got := d.FromWorld(float64(x)+half, float64(y)+half)
			assert.Equal(t, c, got, "offset (%d, %d)", col, row)
		}
	}
}

func TestDimensions_Validation(t *testing.T) {
	_, err := NewDimensions(0.5, 0.5)
	assert.ErrorIs(t, err, ErrAxis)
	_, err = NewDimensions(32, 48)
	assert.ErrorIs(t, err, ErrNotPointy)

	d := UnitDimensions()
	require.Error(t, d.SetSize(10, 20))
	assert.Equal(t, Axis(1), d.Width(), "size unchanged after a failed SetSize")
}

func TestDimensions_Rectangle(t *testing.T) {
	d, err := NewDimensions(10, 10)
	require.NoError(t, err)
	coords := d.Rectangle(5, 5, 30, 30, false)
	assert.NotEmpty(t, coords)
	assert.Contains(t, coords, FromOffset(0, 0))
	clipped := d.Rectangle(5, 5, 30, 30, true)
	assert.Less(t, len(clipped), len(coords))
}
