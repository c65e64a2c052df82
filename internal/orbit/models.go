// Package orbit lays out the orbits around a star and decides what occupies
// each of them.
package orbit

import "errors"

var ErrCapacityExceeded = errors.New("orbit capacity exceeded")

type SizeClass string

const (
	Empty          SizeClass = "empty"
	AsteroidBelt   SizeClass = "asteroid_belt"
	Tiny           SizeClass = "tiny"
	Small          SizeClass = "small"
	Standard       SizeClass = "standard"
	Large          SizeClass = "large"
	SmallGasGiant  SizeClass = "small_gas_giant"
	MediumGasGiant SizeClass = "medium_gas_giant"
	LargeGasGiant  SizeClass = "large_gas_giant"
)

func (s SizeClass) IsGasGiant() bool {
	return s == SmallGasGiant || s == MediumGasGiant || s == LargeGasGiant
}

func (s SizeClass) IsTerrestrial() bool {
	return s == Tiny || s == Small || s == Standard || s == Large
}

func (s SizeClass) Occupied() bool {
	return s != Empty && s != ""
}

type Arrangement string

const (
	NoGasGiant   Arrangement = "none"
	Conventional Arrangement = "conventional"
	Eccentric    Arrangement = "eccentric"
	Epistellar   Arrangement = "epistellar"
)

// Limits cap the number of orbits and occupied orbits per star.
type Limits struct {
	MaxOrbits int `json:"max_orbits"`
	MaxWorlds int `json:"max_worlds"`
}

var DefaultLimits = Limits{MaxOrbits: 32, MaxWorlds: 16}

type FirstGasGiant struct {
	Present bool    `json:"present"`
	Radius  float64 `json:"radius"`
}

type Slot struct {
	Index     int       `json:"index"`
	Radius    float64   `json:"radius"`
	SizeClass SizeClass `json:"size_class"`
	Forbidden bool      `json:"forbidden,omitempty"`
}

// Spacing is the ordered set of candidate orbital radii (AU) and the index of
// the radius everything else was stepped from.
type Spacing struct {
	Radii       []float64 `json:"radii"`
	AnchorIndex int       `json:"anchor_index"`
}

type Layout struct {
	Arrangement     Arrangement   `json:"arrangement"`
	FirstGasGiant   FirstGasGiant `json:"first_gas_giant"`
	Slots           []Slot        `json:"slots"`
	FirstWorldIndex int           `json:"first_world_index"`
}

// Worlds returns the occupied slots in order.
func (l Layout) Worlds() []Slot {
	var out []Slot
	for _, s := range l.Slots {
		if s.SizeClass.Occupied() {
			out = append(out, s)
		}
	}
	return out
}
