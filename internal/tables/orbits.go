package tables

var orbitSpacing = Ladder[float64]{
	Rungs: []Rung[float64]{
		{UpTo: 4, Value: 1.4},
		{UpTo: 6, Value: 1.5},
		{UpTo: 8, Value: 1.6},
		{UpTo: 12, Value: 1.7},
		{UpTo: 14, Value: 1.8},
		{UpTo: 16, Value: 1.9},
	},
	Top: 2.0,
}

// OrbitSpacingRatio maps a 3d6 roll onto the ratio between adjacent orbits.
func OrbitSpacingRatio(roll int) float64 {
	return orbitSpacing.Lookup(roll)
}

// MinOrbitSeparationAU is the smallest gap allowed between adjacent orbits.
const MinOrbitSeparationAU = 0.15
