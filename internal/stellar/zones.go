package stellar

import (
	"fmt"
	"math"

	"starforge/internal/tables"
)

// ComputeZones derives the inner limit, outer limit and snow line (AU) for a
// star of the given mass and luminosity (solar units).
func ComputeZones(mass, luminosity float64) (Zones, error) {
	if !(mass > 0) || !(luminosity > 0) {
		return Zones{}, fmt.Errorf("%w: mass %v, luminosity %v", ErrInputOutOfRange, mass, luminosity)
	}

	lMin := luminosity
	if row, ok := tables.EvolutionForMass(mass); ok {
		lMin = row.LMin
	}

	z := Zones{
		InnerLimit: math.Max(0.1*mass, 0.01*math.Sqrt(luminosity)),
		OuterLimit: 40 * mass,
		SnowLine:   4.85 * math.Sqrt(lMin),
	}
	z.HasSnowLine = z.SnowLine > z.InnerLimit && z.SnowLine < z.OuterLimit

	return z, nil
}

// ComputeForbiddenZone derives the companion separation extremes from the
// average orbital radius (AU) and eccentricity, and the band no planet can
// stably occupy: one third of the closest approach out to three times the
// farthest separation.
func ComputeForbiddenZone(averageOrbitalRadius, eccentricity float64) (ForbiddenZone, error) {
	if !(averageOrbitalRadius > 0) || eccentricity < 0 || eccentricity >= 1 {
		return ForbiddenZone{}, fmt.Errorf("%w: radius %v, eccentricity %v", ErrInputOutOfRange, averageOrbitalRadius, eccentricity)
	}

	minSep := averageOrbitalRadius * (1 - eccentricity)
	maxSep := averageOrbitalRadius * (1 + eccentricity)

	return ForbiddenZone{
		MinSeparation: minSep,
		MaxSeparation: maxSep,
		Inner:         minSep / 3,
		Outer:         maxSep * 3,
	}, nil
}

// WidestForbiddenZone merges companion forbidden zones into the single band a
// primary has to avoid.
func WidestForbiddenZone(zones []ForbiddenZone) (ForbiddenZone, bool) {
	var merged ForbiddenZone
	found := false

	for _, z := range zones {
		if z.IsZero() {
			continue
		}
		if !found {
			merged = z
			found = true
			continue
		}
		merged.MinSeparation = math.Min(merged.MinSeparation, z.MinSeparation)
		merged.MaxSeparation = math.Max(merged.MaxSeparation, z.MaxSeparation)
		merged.Inner = math.Min(merged.Inner, z.Inner)
		merged.Outer = math.Max(merged.Outer, z.Outer)
	}

	return merged, found
}

// OrbitalPeriod returns the period in years of two bodies of the given masses
// (solar units) separated by averageOrbitalRadius AU.
func OrbitalPeriod(averageOrbitalRadius, primaryMass, companionMass float64) float64 {
	total := primaryMass + companionMass
	if total <= 0 || averageOrbitalRadius <= 0 {
		return 0
	}
	return math.Sqrt(math.Pow(averageOrbitalRadius, 3) / total)
}
