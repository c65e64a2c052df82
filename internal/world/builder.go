package world

import (
	"fmt"
	"math"

	"starforge/internal/dice"
	"starforge/internal/orbit"
	"starforge/internal/tables"
)

// Temperate band for liquid surface water, kelvin.
const (
	frozenBelowK = 240.0
	hotAboveK    = 320.0
)

var pressureTable = tables.Ladder[PressureCategory]{
	Rungs: []tables.Rung[PressureCategory]{
		{UpTo: 6, Value: PressureVeryThin},
		{UpTo: 8, Value: PressureThin},
		{UpTo: 12, Value: PressureStandard},
		{UpTo: 15, Value: PressureDense},
		{UpTo: 17, Value: PressureVeryDense},
	},
	Top: PressureSuperdense,
}

type BuildInput struct {
	Slot orbit.Slot
	// StellarLuminosity of the star the world orbits, solar units.
	StellarLuminosity float64
}

// Build rolls the physical description of the world in a slot. Surface maps
// are produced separately by MapWorld.
func Build(r dice.Roller, in BuildInput) (World, error) {
	if !in.Slot.SizeClass.Occupied() {
		return World{}, fmt.Errorf("%w: slot %d is empty", ErrInputOutOfRange, in.Slot.Index)
	}
	if !(in.Slot.Radius > 0) || in.StellarLuminosity < 0 {
		return World{}, fmt.Errorf("%w: radius %v, luminosity %v", ErrInputOutOfRange, in.Slot.Radius, in.StellarLuminosity)
	}

	w := World{
		SlotIndex:            in.Slot.Index,
		SizeClass:            in.Slot.SizeClass,
		OrbitalRadius:        in.Slot.Radius,
		BlackbodyTemperature: BlackbodyTemperature(in.StellarLuminosity, in.Slot.Radius),
		Pressure:             PressureNone,
	}
	w.DiameterKM = RollDiameter(r, in.Slot.SizeClass)

	if !in.Slot.SizeClass.IsTerrestrial() {
		return w, nil
	}

	w.HydrographicCoverage = RollHydrographics(r, in.Slot.SizeClass, w.BlackbodyTemperature)
	w.Pressure = RollPressure(r, in.Slot.SizeClass, w.BlackbodyTemperature)
	w.Breathable = RollBreathable(r, w)
	w.HabitabilityModifier = HabitabilityModifier(w.Breathable, w.Pressure)

	return w, nil
}

// BlackbodyTemperature in kelvin at distance AU from a star of the given luminosity.
func BlackbodyTemperature(luminosity, distance float64) float64 {
	if distance <= 0 {
		return 0
	}
	return 278 * math.Pow(luminosity, 0.25) / math.Sqrt(distance)
}

// RollDiameter returns a diameter in km. Asteroid belts have none.
func RollDiameter(r dice.Roller, size orbit.SizeClass) float64 {
	var earths float64
	switch size {
	case orbit.Tiny:
		earths = float64(dice.D6(r, 2, 2)) * 0.02
	case orbit.Small:
		earths = float64(dice.D6(r, 2, 8)) * 0.025
	case orbit.Standard:
		earths = float64(dice.D6(r, 2, 24)) * 0.03
	case orbit.Large:
		earths = float64(dice.D6(r, 2, 36)) * 0.03
	case orbit.SmallGasGiant:
		earths = float64(dice.D6(r, 2, 4)) * 0.5
	case orbit.MediumGasGiant:
		earths = float64(dice.D6(r, 2, 12)) * 0.5
	case orbit.LargeGasGiant:
		earths = float64(dice.D6(r, 2, 18)) * 0.5
	default:
		return 0
	}
	return math.Round(earths * tables.EarthDiameterKM)
}

// RollHydrographics returns the fraction of the surface covered by liquid water.
func RollHydrographics(r dice.Roller, size orbit.SizeClass, temperature float64) float64 {
	var tenths int
	switch {
	case size == orbit.Tiny:
		return 0
	case size == orbit.Small:
		if temperature >= frozenBelowK {
			return 0
		}
		tenths = dice.D6(r, 2, -2) / 2
	case temperature < frozenBelowK:
		tenths = dice.D6(r, 2, -10)
	case temperature > hotAboveK:
		tenths = dice.D6(r, 2, -7)
	case size == orbit.Large:
		tenths = dice.D6(r, 1, 6)
	default:
		tenths = dice.D6(r, 1, 4)
	}
	return float64(tables.Clamp(tenths, 0, 10)) / 10
}

func RollPressure(r dice.Roller, size orbit.SizeClass, temperature float64) PressureCategory {
	switch size {
	case orbit.Tiny:
		return PressureNone
	case orbit.Small:
		return PressureTrace
	}

	modifier := 0
	if size == orbit.Large {
		modifier += 2
	}
	if temperature > hotAboveK {
		modifier += 4
	}
	return pressureTable.Lookup(dice.D6(r, 3, modifier))
}

// RollBreathable decides whether a terrestrial world's atmosphere can be
// breathed unassisted.
func RollBreathable(r dice.Roller, w World) bool {
	if w.SizeClass != orbit.Standard && w.SizeClass != orbit.Large {
		return false
	}
	if w.BlackbodyTemperature < frozenBelowK || w.BlackbodyTemperature > hotAboveK {
		return false
	}
	if w.HydrographicCoverage < 0.2 {
		return false
	}
	switch w.Pressure {
	case PressureVeryThin, PressureThin, PressureStandard, PressureDense, PressureVeryDense:
	default:
		return false
	}
	return dice.D6(r, 3, 0) >= 11
}

// HabitabilityModifier scores a breathable atmosphere by its pressure.
func HabitabilityModifier(breathable bool, pressure PressureCategory) int {
	if !breathable {
		return 0
	}
	switch pressure {
	case PressureVeryThin:
		return 1
	case PressureThin:
		return 2
	case PressureStandard, PressureDense:
		return 3
	case PressureVeryDense, PressureSuperdense:
		return 1
	default:
		return 0
	}
}
