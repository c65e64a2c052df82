package world

import (
	"fmt"
	"math"

	"starforge/internal/dice"
	"starforge/internal/tables"
)

// MaxMappableDiameterKM is the largest world the hex tables cover.
const MaxMappableDiameterKM = 30499.0

var movementTable = tables.Ladder[MovementType]{
	Rungs: []tables.Rung[MovementType]{
		{UpTo: 5, Value: Converging},
		{UpTo: 8, Value: Transverse},
	},
	Top: Diverging,
}

// Mapper maps world surfaces with its own roller. Like the roller, a Mapper is
// not safe for concurrent use.
type Mapper struct {
	roller dice.Roller
}

func NewMapper(r dice.Roller) *Mapper {
	return &Mapper{roller: r}
}

func (m *Mapper) MapWorld(diameterKM, coverage float64) (SurfaceMap, error) {
	return MapWorld(m.roller, diameterKM, coverage)
}

// MapWorld sizes the hex map of a world and rolls its tectonics and terrain
// features. Feature counts never exceed the hexes available to them.
func MapWorld(r dice.Roller, diameterKM, coverage float64) (SurfaceMap, error) {
	if math.IsNaN(diameterKM) || diameterKM < 0 || diameterKM > MaxMappableDiameterKM {
		return SurfaceMap{}, fmt.Errorf("%w: diameter %v km", ErrInputOutOfRange, diameterKM)
	}
	if math.IsNaN(coverage) || coverage < 0 || coverage > 1 {
		return SurfaceMap{}, fmt.Errorf("%w: hydrographic coverage %v", ErrInputOutOfRange, coverage)
	}

	perSide := tables.HexesPerSide(int(math.Round(diameterKM / 1000)))
	total := tables.TotalHexes(perSide)
	water := WaterHexCount(total, coverage)

	m := SurfaceMap{
		UWPSize:         UWPSize(diameterKM),
		UWPHydrographic: UWPHydrographic(coverage),
		HexesPerSide:    perSide,
		TotalHexes:      total,
		WaterHexes:      water,
		LandHexes:       total - water,
	}

	m.Tectonics = Tectonics{
		PlateCount:  PlateCount(r, m.UWPHydrographic, m.UWPSize),
		PlateSizeKM: PlateSize(r, diameterKM),
		Movement:    RollMovement(r),
	}

	if m.WaterHexes > 0 {
		waterRoll := dice.D6(r, 2, m.UWPHydrographic)
		m.Features.MajorOceans = MajorOceans(r, waterRoll)
		m.Features.MinorOceans = MinorOceans(r, waterRoll)
		m.Features.SmallSeas = SmallSeas(r, waterRoll)
		m.Features.ScatteredLakes = ScatteredLakes(r, waterRoll)
		trim(m.WaterHexes, &m.Features.ScatteredLakes, &m.Features.SmallSeas, &m.Features.MinorOceans, &m.Features.MajorOceans)
	}

	if m.LandHexes > 0 {
		landRoll := dice.D6(r, 2, m.UWPHydrographic+tables.LandRollOffset)
		m.Features.MajorContinents = MajorContinents(r, landRoll)
		m.Features.MinorContinents = MinorContinents(r, landRoll)
		m.Features.MajorIslands = MajorIslands(r, landRoll)
		m.Features.Archipelagoes = Archipelagoes(r, landRoll)
		trim(m.LandHexes, &m.Features.Archipelagoes, &m.Features.MajorIslands, &m.Features.MinorContinents, &m.Features.MajorContinents)
	}

	return m, nil
}

// trim lowers counts, smallest features first, until they fit in budget.
func trim(budget int, counts ...*int) {
	sum := 0
	for _, c := range counts {
		sum += *c
	}
	for _, c := range counts {
		if sum <= budget {
			return
		}
		cut := min(*c, sum-budget)
		*c -= cut
		sum -= cut
	}
}

func UWPSize(diameterKM float64) int {
	return tables.UWPSize(diameterKM)
}

func UWPHydrographic(coverage float64) int {
	return tables.UWPHydrographic(int(math.Round(coverage * 100)))
}

func WaterHexCount(total int, coverage float64) int {
	return int(math.Round(float64(total) * coverage))
}

func LandHexCount(total, water int) int {
	return total - water
}

func PlateCount(r dice.Roller, hydrographic, size int) int {
	return max(1, hydrographic+size-dice.D6(r, 2, 0))
}

// PlateSize is the typical plate width in km.
func PlateSize(r dice.Roller, diameterKM float64) int {
	ratio := int(math.Round(diameterKM / tables.EarthDiameterKM * 100))
	return 2 * ratio * tables.PlateSizeCoefficient(dice.D6(r, 1, 0))
}

func RollMovement(r dice.Roller) MovementType {
	return movementTable.Lookup(dice.D6(r, 2, 0))
}

func MajorOceans(r dice.Roller, waterRoll int) int {
	switch {
	case waterRoll <= 6:
		return 0
	case waterRoll >= 19:
		return 1
	}
	return max(0, dice.D6(r, 1, -tables.MajorOceanAddition(waterRoll)))
}

func MinorOceans(r dice.Roller, waterRoll int) int {
	if waterRoll <= 6 {
		return 0
	}
	mult, add := tables.MinorOceanCoefficients(waterRoll)
	if mult < 1 {
		return 0
	}
	return max(0, dice.D6(r, mult, -add))
}

func SmallSeas(r dice.Roller, waterRoll int) int {
	switch {
	case waterRoll < 5:
		return 0
	case waterRoll == 5:
		return max(0, dice.D6(r, 1, -3))
	case waterRoll == 6:
		return max(0, dice.D6(r, 2, -3))
	}
	return max(0, dice.D6(r, 3, -3))
}

func ScatteredLakes(r dice.Roller, waterRoll int) int {
	switch {
	case waterRoll < 3:
		return 0
	case waterRoll <= 4:
		return 1
	}
	return dice.D6(r, 2, 0)
}

func MajorContinents(r dice.Roller, landRoll int) int {
	mult, add, ok := tables.MajorContinentCoefficients(landRoll - tables.LandRollBase)
	if !ok {
		return 0
	}
	return max(0, dice.D6(r, mult, add))
}

func MinorContinents(r dice.Roller, landRoll int) int {
	mult, add, ok := tables.MinorContinentCoefficients(landRoll - tables.LandRollBase)
	if !ok {
		return 0
	}
	return max(0, dice.D6(r, mult, add))
}

func MajorIslands(r dice.Roller, landRoll int) int {
	switch {
	case landRoll < 30:
		return max(0, dice.D6(r, 3, -3))
	case landRoll == 30:
		return dice.D6(r, 2, 0)
	case landRoll == 31:
		return max(0, dice.D6(r, 1, -3))
	}
	return 0
}

func Archipelagoes(r dice.Roller, landRoll int) int {
	switch {
	case landRoll < 32:
		return dice.D6(r, 2, 0)
	case landRoll <= 34:
		return 1
	}
	return 0
}
