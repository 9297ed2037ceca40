package tiles

import "github.com/talgya/hexecon/internal/hex"

// Checker tests an instance, typically for its tile key.
type Checker func(inst Instance) bool

// Is reports whether inst is a tile of any of keys. A nil instance is never
// a match.
func Is(inst Instance, keys ...Key) bool {
	if inst == nil {
		return false
	}
	k := inst.Tile().Key()
	for _, want := range keys {
		if k == want {
			return true
		}
	}
	return false
}

// IsAt reports whether the instance at c is a tile of any of keys.
func IsAt(v View, c hex.Coord, keys ...Key) bool {
	inst, ok := v.Instance(c)
	return ok && Is(inst, keys...)
}

// AnyOf matches instances of any of keys.
func AnyOf(keys ...Key) Checker {
	return func(inst Instance) bool { return Is(inst, keys...) }
}

// Not inverts a checker. A nil instance still never matches.
func Not(check Checker) Checker {
	return func(inst Instance) bool { return inst != nil && !check(inst) }
}

// At applies check to the instance at c.
func (check Checker) At(v View, c hex.Coord) bool {
	inst, ok := v.Instance(c)
	return ok && check(inst)
}

// Any reports whether check matches any of coords.
func (check Checker) Any(v View, coords []hex.Coord) bool {
	for _, c := range coords {
		if check.At(v, c) {
			return true
		}
	}
	return false
}
