// Package tables holds the immutable lookup tables shared by the generation
// stages. Nothing in this package is mutated after program start.
package tables

// Rung maps every roll up to and including UpTo onto Value.
type Rung[T any] struct {
	UpTo  int
	Value T
}

// Ladder is an ordered threshold table: the first rung whose UpTo is at least
// the roll wins, and rolls above every rung fall through to Top.
type Ladder[T any] struct {
	Rungs []Rung[T]
	Top   T
}

func (l Ladder[T]) Lookup(roll int) T {
	for _, r := range l.Rungs {
		if roll <= r.UpTo {
			return r.Value
		}
	}
	return l.Top
}

// FloatRung maps every value below Below onto Value.
type FloatRung[T any] struct {
	Below float64
	Value T
}

// FloatLadder is the float counterpart of Ladder with exclusive upper bounds.
type FloatLadder[T any] struct {
	Rungs []FloatRung[T]
	Top   T
}

func (l FloatLadder[T]) Lookup(v float64) T {
	for _, r := range l.Rungs {
		if v < r.Below {
			return r.Value
		}
	}
	return l.Top
}

// Clamp bounds i to [lo, hi].
func Clamp(i, lo, hi int) int {
	if i < lo {
		return lo
	}
	if i > hi {
		return hi
	}
	return i
}
