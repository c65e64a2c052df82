// Package dice implements the polyhedral dice used by every generation stage.
package dice

import (
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"
)

// ErrInvalidDiceSpec indicates a die specification has invalid fields.
var ErrInvalidDiceSpec = errors.New("dice must have positive sides and count")

// Source yields uniform integers in [0, n).
type Source interface {
	Intn(n int) int
}

// Roller is the capability consumed by the generation stages.
type Roller interface {
	Roll(sides, count, modifier int) int
}

// Spec describes a die to roll, how many times, and a flat modifier.
type Spec struct {
	Sides    int
	Count    int
	Modifier int
}

func (s Spec) String() string {
	switch {
	case s.Modifier > 0:
		return fmt.Sprintf("%dd%d+%d", s.Count, s.Sides, s.Modifier)
	case s.Modifier < 0:
		return fmt.Sprintf("%dd%d%d", s.Count, s.Sides, s.Modifier)
	default:
		return fmt.Sprintf("%dd%d", s.Count, s.Sides)
	}
}

// Engine rolls dice against an injected Source. An Engine is not safe for
// concurrent use; give each goroutine its own.
type Engine struct {
	src Source
}

func NewEngine(src Source) *Engine {
	return &Engine{src: src}
}

// NewSeeded returns an engine backed by a math/rand source with the given seed.
func NewSeeded(seed int64) *Engine {
	return NewEngine(rand.New(rand.NewSource(seed)))
}

// Validate reports whether sides and count describe a rollable set of dice.
func Validate(sides, count int) error {
	if sides < 1 || count < 1 {
		return fmt.Errorf("%w: %dd%d", ErrInvalidDiceSpec, count, sides)
	}
	return nil
}

// Roll sums count uniform draws in [1, sides] and adds modifier.
// It panics on an invalid spec; callers at an input boundary use RollChecked.
func (e *Engine) Roll(sides, count, modifier int) int {
	if err := Validate(sides, count); err != nil {
		panic(err)
	}

	total := modifier
	for i := 0; i < count; i++ {
		total += e.src.Intn(sides) + 1
	}
	return total
}

// RollChecked rolls spec and returns ErrInvalidDiceSpec instead of panicking.
func (e *Engine) RollChecked(spec Spec) (int, error) {
	if err := Validate(spec.Sides, spec.Count); err != nil {
		return 0, err
	}
	return e.Roll(spec.Sides, spec.Count, spec.Modifier), nil
}

// D6 is shorthand for Roll(6, count, modifier).
func (e *Engine) D6(count, modifier int) int {
	return e.Roll(6, count, modifier)
}

// D6 rolls count six-sided dice plus modifier on any Roller.
func D6(r Roller, count, modifier int) int {
	return r.Roll(6, count, modifier)
}

// DeriveSeed mixes a parent seed and a salt into an independent child seed.
func DeriveSeed(seed int64, salt string) int64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(seed))

	h := sha256.New()
	h.Write(buf[:])
	h.Write([]byte(salt))
	sum := h.Sum(nil)

	return int64(binary.LittleEndian.Uint64(sum[:8]))
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
