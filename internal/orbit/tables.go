package orbit

import "starforge/internal/tables"

var arrangementTable = tables.Ladder[Arrangement]{
	Rungs: []tables.Rung[Arrangement]{
		{UpTo: 10, Value: NoGasGiant},
		{UpTo: 12, Value: Conventional},
		{UpTo: 14, Value: Eccentric},
	},
	Top: Epistellar,
}

var gasGiantSizeTable = tables.Ladder[SizeClass]{
	Rungs: []tables.Rung[SizeClass]{
		{UpTo: 10, Value: SmallGasGiant},
		{UpTo: 16, Value: MediumGasGiant},
	},
	Top: LargeGasGiant,
}

var orbitContentsTable = tables.Ladder[SizeClass]{
	Rungs: []tables.Rung[SizeClass]{
		{UpTo: 3, Value: Empty},
		{UpTo: 6, Value: AsteroidBelt},
		{UpTo: 8, Value: Tiny},
		{UpTo: 11, Value: Small},
		{UpTo: 15, Value: Standard},
	},
	Top: Large,
}

// Highest 3d6 roll that still places a gas giant, inside and beyond the snow line.
var gasGiantThresholds = map[Arrangement][2]int{
	NoGasGiant:   {0, 0},
	Conventional: {0, 15},
	Eccentric:    {8, 14},
	Epistellar:   {6, 14},
}

const (
	gasGiantSizeBonus      = 4
	forbiddenZonePenalty   = -6
	gasGiantOutwardPenalty = -6
	gasGiantInwardPenalty  = -3
	limitAdjacentPenalty   = -3
)

func gasGiantThreshold(a Arrangement, insideSnowLine bool) int {
	t := gasGiantThresholds[a]
	if insideSnowLine {
		return t[0]
	}
	return t[1]
}
