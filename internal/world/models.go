// Package world builds the physical description of each placed world and maps
// the surfaces of the terrestrial ones onto an icosahedral hex grid.
package world

import (
	"errors"

	"starforge/internal/orbit"
)

var ErrInputOutOfRange = errors.New("world input out of range")

type PressureCategory string

const (
	PressureNone       PressureCategory = "none"
	PressureTrace      PressureCategory = "trace"
	PressureVeryThin   PressureCategory = "very_thin"
	PressureThin       PressureCategory = "thin"
	PressureStandard   PressureCategory = "standard"
	PressureDense      PressureCategory = "dense"
	PressureVeryDense  PressureCategory = "very_dense"
	PressureSuperdense PressureCategory = "superdense"
)

type MovementType string

const (
	Converging MovementType = "converging"
	Transverse MovementType = "transverse"
	Diverging  MovementType = "diverging"
)

type Tectonics struct {
	PlateCount  int          `json:"plate_count"`
	PlateSizeKM int          `json:"plate_size_km"`
	Movement    MovementType `json:"movement"`
}

type Features struct {
	MajorOceans     int `json:"major_oceans"`
	MinorOceans     int `json:"minor_oceans"`
	SmallSeas       int `json:"small_seas"`
	ScatteredLakes  int `json:"scattered_lakes"`
	MajorContinents int `json:"major_continents"`
	MinorContinents int `json:"minor_continents"`
	MajorIslands    int `json:"major_islands"`
	Archipelagoes   int `json:"archipelagoes"`
}

func (f Features) WaterFeatures() int {
	return f.MajorOceans + f.MinorOceans + f.SmallSeas + f.ScatteredLakes
}

func (f Features) LandFeatures() int {
	return f.MajorContinents + f.MinorContinents + f.MajorIslands + f.Archipelagoes
}

type SurfaceMap struct {
	UWPSize         int       `json:"uwp_size"`
	UWPHydrographic int       `json:"uwp_hydrographic"`
	HexesPerSide    int       `json:"hexes_per_side"`
	TotalHexes      int       `json:"total_hexes"`
	WaterHexes      int       `json:"water_hexes"`
	LandHexes       int       `json:"land_hexes"`
	Features        Features  `json:"features"`
	Tectonics       Tectonics `json:"tectonics"`
}

type World struct {
	SlotIndex            int              `json:"slot_index"`
	SizeClass            orbit.SizeClass  `json:"size_class"`
	OrbitalRadius        float64          `json:"orbital_radius"`
	DiameterKM           float64          `json:"diameter_km"`
	BlackbodyTemperature float64          `json:"blackbody_temperature"`
	HydrographicCoverage float64          `json:"hydrographic_coverage"`
	Pressure             PressureCategory `json:"pressure"`
	Breathable           bool             `json:"breathable"`
	HabitabilityModifier int              `json:"habitability_modifier"`
	Surface              *SurfaceMap      `json:"surface,omitempty"`
}
