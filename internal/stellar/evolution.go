package stellar

import (
	"math"

	"starforge/internal/dice"
	"starforge/internal/tables"
)

// Escape velocity of one solar mass at one solar radius, km/s.
const solarEscapeVelocity = 617.7

func LookupEvolution(mass float64) (Evolution, bool) {
	row, ok := tables.EvolutionForMass(mass)
	if !ok {
		return Evolution{}, false
	}
	return fromRow(row), true
}

func fromRow(row tables.EvolutionRow) Evolution {
	return Evolution{
		Type:             row.Type,
		TableTemperature: row.Temperature,
		LMin:             row.LMin,
		LMax:             row.LMax,
		MSpan:            row.MSpan,
		SSpan:            row.SSpan,
		GSpan:            row.GSpan,
	}
}

// RollStar generates a random main-sequence star. Mass comes from a 3d6 roll
// refined by 1d6 over the evolution table, age from 3d6 in billions of years.
func RollStar(r dice.Roller) RolledStar {
	massRoll := dice.D6(r, 3, 0)
	refine := 0
	if dice.D6(r, 1, 0) > 3 {
		refine = 1
	}
	row := tables.EvolutionAt((massRoll-3)*2 + refine)

	age := float64(dice.D6(r, 3, -3))*0.8 + 0.1

	return RolledStar{
		SpectralType: row.Type + "V",
		Mass:         row.Mass,
		Age:          age,
		Luminosity:   LuminosityAtAge(fromRow(row), age),
		Evolution:    fromRow(row),
	}
}

// LuminosityAtAge interpolates between LMin and LMax over the main-sequence
// span. Stars without a span keep LMin forever.
func LuminosityAtAge(e Evolution, age float64) float64 {
	if e.MSpan <= 0 || e.LMax <= e.LMin {
		return e.LMin
	}
	progress := math.Max(0, math.Min(1, age/e.MSpan))
	return e.LMin + progress*(e.LMax-e.LMin)
}

// EscapeVelocity in km/s for mass and radius in solar units.
func EscapeVelocity(mass, radius float64) float64 {
	if mass <= 0 || radius <= 0 {
		return 0
	}
	return solarEscapeVelocity * math.Sqrt(mass/radius)
}

// RollRotationVelocity returns an equatorial rotation velocity in km/s.
// Hot stars spin far faster than the magnetically braked cool ones.
func RollRotationVelocity(r dice.Roller, letter string) float64 {
	switch letter {
	case "O", "B":
		return float64(dice.D6(r, 3, 0)) * 15
	case "A":
		return float64(dice.D6(r, 3, 0)) * 10
	case "F":
		return float64(dice.D6(r, 3, 0)) * 3
	default:
		return float64(dice.D6(r, 1, 0)) * 0.5
	}
}
