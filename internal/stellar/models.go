// Package stellar classifies stars and derives their physical parameters and
// orbital zones.
package stellar

import "errors"

var (
	ErrInputOutOfRange = errors.New("stellar input out of range")
	ErrPresetRequired  = errors.New("spectral type has no table entry; mass, radius and temperature presets are required")
)

// Presets override table lookups verbatim when set.
type Presets struct {
	Mass        *float64 `json:"mass,omitempty" yaml:"mass,omitempty"`
	Radius      *float64 `json:"radius,omitempty" yaml:"radius,omitempty"`
	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
}

func (p Presets) Complete() bool {
	return p.Mass != nil && p.Radius != nil && p.Temperature != nil
}

type ClassifyInput struct {
	SpectralType string
	Luminosity   float64
	Presets      Presets
}

type Classification struct {
	HarvardLetter          string  `json:"harvard_letter"`
	YerkesClass            string  `json:"yerkes_class"`
	YerkesIndex            int     `json:"yerkes_index"`
	NumericValue           float64 `json:"numeric_value"`
	Subtype                int     `json:"subtype"`
	Designation            string  `json:"designation"`
	PresetFallbackRequired bool    `json:"preset_fallback_required"`
}

type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Physical parameters in solar units, kelvin and km/s.
type Physical struct {
	Mass             float64 `json:"mass"`
	Radius           float64 `json:"radius"`
	Temperature      float64 `json:"temperature"`
	Luminosity       float64 `json:"luminosity"`
	Age              float64 `json:"age"`
	RotationVelocity float64 `json:"rotation_velocity"`
	EscapeVelocity   float64 `json:"escape_velocity"`
	Color            Color   `json:"color"`
}

type Classified struct {
	Classification Classification `json:"classification"`
	Physical       Physical       `json:"physical"`
}

type Zones struct {
	InnerLimit  float64 `json:"inner_limit"`
	OuterLimit  float64 `json:"outer_limit"`
	SnowLine    float64 `json:"snow_line"`
	HasSnowLine bool    `json:"has_snow_line"`
}

// ForbiddenZone is the band around a star where a companion's gravity
// prevents stable orbits.
type ForbiddenZone struct {
	MinSeparation float64 `json:"min_separation"`
	MaxSeparation float64 `json:"max_separation"`
	Inner         float64 `json:"inner"`
	Outer         float64 `json:"outer"`
}

func (f ForbiddenZone) Contains(radius float64) bool {
	return radius >= f.Inner && radius <= f.Outer
}

func (f ForbiddenZone) IsZero() bool {
	return f == ForbiddenZone{}
}

// Evolution holds the main-sequence constants for a star's mass.
type Evolution struct {
	Type             string  `json:"type"`
	TableTemperature float64 `json:"table_temperature"`
	LMin             float64 `json:"l_min"`
	LMax             float64 `json:"l_max"`
	MSpan            float64 `json:"m_span"`
	SSpan            float64 `json:"s_span"`
	GSpan            float64 `json:"g_span"`
}

// RolledStar is a randomly generated main-sequence star.
type RolledStar struct {
	SpectralType string    `json:"spectral_type"`
	Mass         float64   `json:"mass"`
	Age          float64   `json:"age"`
	Luminosity   float64   `json:"luminosity"`
	Evolution    Evolution `json:"evolution"`
}
