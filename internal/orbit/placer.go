package orbit

import (
	"fmt"

	"starforge/internal/dice"
	"starforge/internal/stellar"
	"starforge/internal/tables"
)

// RollArrangement picks how the system's gas giants are distributed. A star
// without a snow line has none.
func RollArrangement(r dice.Roller, zones stellar.Zones) Arrangement {
	if !zones.HasSnowLine {
		return NoGasGiant
	}
	return arrangementTable.Lookup(dice.D6(r, 3, 0))
}

// PlaceFirstGasGiant positions the innermost gas giant for an arrangement.
// Conventional giants sit just beyond the snow line, eccentric ones inside it
// and epistellar ones hug the inner limit.
func PlaceFirstGasGiant(r dice.Roller, zones stellar.Zones, arrangement Arrangement) FirstGasGiant {
	if !zones.HasSnowLine {
		return FirstGasGiant{}
	}

	var radius float64
	switch arrangement {
	case Conventional:
		radius = (float64(dice.D6(r, 2, -2))*0.05 + 1) * zones.SnowLine
	case Eccentric:
		radius = float64(dice.D6(r, 1, 0)) * 0.125 * zones.SnowLine
	case Epistellar:
		radius = (float64(dice.D6(r, 1, 0))*0.1 + 1) * zones.InnerLimit
	default:
		return FirstGasGiant{}
	}

	if radius < zones.InnerLimit || radius > zones.OuterLimit {
		return FirstGasGiant{}
	}
	return FirstGasGiant{Present: true, Radius: radius}
}

type SpacingInput struct {
	Zones stellar.Zones
	// Anchor is the first gas giant's radius, or zero to derive one from the
	// outer limit.
	Anchor float64
}

// SpaceOrbits steps outward and inward from the anchor by rolled spacing
// ratios, keeping every orbit inside the star's limits.
func SpaceOrbits(r dice.Roller, in SpacingInput) Spacing {
	inner, outer := in.Zones.InnerLimit, in.Zones.OuterLimit
	if !(outer > inner) || inner <= 0 {
		return Spacing{AnchorIndex: -1}
	}

	anchor := in.Anchor
	if anchor <= 0 {
		anchor = outer / (float64(dice.D6(r, 1, 0))*0.05 + 1)
	}
	if anchor < inner || anchor > outer {
		return Spacing{AnchorIndex: -1}
	}

	var inward []float64
	for cur := anchor; ; {
		next := cur / tables.OrbitSpacingRatio(dice.D6(r, 3, 0))
		if cur-next < tables.MinOrbitSeparationAU {
			next = cur - tables.MinOrbitSeparationAU
		}
		if next < inner {
			break
		}
		inward = append(inward, next)
		cur = next
	}

	radii := make([]float64, 0, len(inward)+8)
	for i := len(inward) - 1; i >= 0; i-- {
		radii = append(radii, inward[i])
	}
	anchorIndex := len(radii)
	radii = append(radii, anchor)

	for cur := anchor; ; {
		next := cur * tables.OrbitSpacingRatio(dice.D6(r, 3, 0))
		if next-cur < tables.MinOrbitSeparationAU {
			next = cur + tables.MinOrbitSeparationAU
		}
		if next > outer {
			break
		}
		radii = append(radii, next)
		cur = next
	}

	return Spacing{Radii: radii, AnchorIndex: anchorIndex}
}

type FillInput struct {
	Spacing          Spacing
	Zones            stellar.Zones
	ForbiddenZone    stellar.ForbiddenZone
	HasForbiddenZone bool
	Arrangement      Arrangement
	FirstGasGiant    FirstGasGiant
	Limits           Limits
}

// FillOrbits decides the contents of every orbit. Gas giants are placed first
// so that the rocky pass can react to them.
func FillOrbits(r dice.Roller, in FillInput) (Layout, error) {
	limits := in.Limits
	if limits == (Limits{}) {
		limits = DefaultLimits
	}

	radii := in.Spacing.Radii
	if len(radii) > limits.MaxOrbits {
		return Layout{}, fmt.Errorf("%w: %d orbits, limit %d", ErrCapacityExceeded, len(radii), limits.MaxOrbits)
	}

	slots := make([]Slot, len(radii))
	for i, radius := range radii {
		slots[i] = Slot{
			Index:     i,
			Radius:    radius,
			SizeClass: Empty,
			Forbidden: in.HasForbiddenZone && in.ForbiddenZone.Contains(radius),
		}
	}

	arrangement := in.Arrangement
	if arrangement == "" {
		arrangement = NoGasGiant
	}
	layout := Layout{Arrangement: arrangement, FirstGasGiant: in.FirstGasGiant, FirstWorldIndex: -1}

	anchor := in.Spacing.AnchorIndex
	if layout.FirstGasGiant.Present {
		if anchor < 0 || anchor >= len(slots) || slots[anchor].Forbidden {
			layout.FirstGasGiant = FirstGasGiant{}
		} else {
			slots[anchor].SizeClass = gasGiantSizeTable.Lookup(dice.D6(r, 3, gasGiantSizeBonus))
		}
	}

	if in.Zones.HasSnowLine && arrangement != NoGasGiant {
		placeGasGiants(r, slots, in.Zones.SnowLine, arrangement)
	}

	placeContents(r, slots, in)

	worlds := 0
	for _, s := range slots {
		if s.SizeClass.Occupied() {
			worlds++
		}
	}
	if worlds > limits.MaxWorlds {
		return Layout{}, fmt.Errorf("%w: %d worlds, limit %d", ErrCapacityExceeded, worlds, limits.MaxWorlds)
	}

	layout.Slots = slots
	layout.FirstWorldIndex = firstWorldIndex(slots)
	if layout.FirstGasGiant.Present {
		layout.FirstWorldIndex = anchor
	}
	return layout, nil
}

func placeGasGiants(r dice.Roller, slots []Slot, snowLine float64, arrangement Arrangement) {
	firstBeyond := -1
	for i, s := range slots {
		if s.Radius >= snowLine {
			firstBeyond = i
			break
		}
	}

	for i := range slots {
		s := &slots[i]
		if s.Forbidden || s.SizeClass.Occupied() {
			continue
		}

		inside := s.Radius < snowLine
		if dice.D6(r, 3, 0) > gasGiantThreshold(arrangement, inside) {
			continue
		}

		bonus := 0
		if inside || i == firstBeyond {
			bonus = gasGiantSizeBonus
		}
		s.SizeClass = gasGiantSizeTable.Lookup(dice.D6(r, 3, bonus))
	}
}

func placeContents(r dice.Roller, slots []Slot, in FillInput) {
	last := len(slots) - 1

	for i := range slots {
		s := &slots[i]
		if s.Forbidden || s.SizeClass.Occupied() {
			continue
		}

		modifier := 0
		if in.HasForbiddenZone && adjacentToForbiddenZone(slots, i, in.ForbiddenZone) {
			modifier += forbiddenZonePenalty
		}
		if i < last && slots[i+1].SizeClass.IsGasGiant() {
			modifier += gasGiantOutwardPenalty
		}
		if i > 0 && slots[i-1].SizeClass.IsGasGiant() {
			modifier += gasGiantInwardPenalty
		}
		if i == 0 || i == last {
			modifier += limitAdjacentPenalty
		}

		s.SizeClass = orbitContentsTable.Lookup(dice.D6(r, 3, modifier))
	}
}

// adjacentToForbiddenZone reports whether a forbidden-zone edge lies between
// slot i and one of its neighbours.
func adjacentToForbiddenZone(slots []Slot, i int, fz stellar.ForbiddenZone) bool {
	between := func(a, b float64) bool {
		return (fz.Inner > a && fz.Inner <= b) || (fz.Outer >= a && fz.Outer < b)
	}

	if i > 0 && between(slots[i-1].Radius, slots[i].Radius) {
		return true
	}
	if i < len(slots)-1 && between(slots[i].Radius, slots[i+1].Radius) {
		return true
	}
	return false
}

// firstWorldIndex is the innermost occupied slot. FillOrbits overrides it
// with the first gas giant's slot when one was placed.
func firstWorldIndex(slots []Slot) int {
	for _, s := range slots {
		if s.SizeClass.Occupied() {
			return s.Index
		}
	}
	return -1
}
