package system

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"starforge/internal/catalog"
	"starforge/internal/dice"
	"starforge/internal/orbit"
	"starforge/internal/stellar"
	"starforge/internal/world"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid system input")
	ErrNotFound     = errors.New("system not found")
)

// CompanionOrbit places a companion star relative to the primary.
type CompanionOrbit struct {
	AverageRadius float64 `json:"average_radius" yaml:"average_radius"`
	Eccentricity  float64 `json:"eccentricity" yaml:"eccentricity"`
}

// StarInput describes one star of a request. Age is in billions of years and
// is rolled when zero.
type StarInput struct {
	SpectralType string          `json:"spectral_type,omitempty" yaml:"spectral_type,omitempty"`
	Luminosity   float64         `json:"luminosity,omitempty" yaml:"luminosity,omitempty"`
	Presets      stellar.Presets `json:"presets" yaml:"presets,omitempty"`
	Age          float64         `json:"age,omitempty" yaml:"age,omitempty"`
	Random       bool            `json:"random,omitempty" yaml:"random,omitempty"`
	Companion    *CompanionOrbit `json:"companion,omitempty" yaml:"companion,omitempty"`
	Catalog      *catalog.Row    `json:"catalog,omitempty" yaml:"catalog,omitempty"`
}

// Request is a generation request as received from clients. A missing seed
// is filled with a random one.
type Request struct {
	Name  string      `json:"name" yaml:"name"`
	Seed  *int64      `json:"seed,omitempty" yaml:"seed,omitempty"`
	Stars []StarInput `json:"stars" yaml:"stars"`
}

// Input is a fully seeded, reproducible generation input.
type Input struct {
	Name  string      `json:"name"`
	Seed  int64       `json:"seed"`
	Stars []StarInput `json:"stars"`
}

func (r Request) Input() (Input, error) {
	in := Input{Name: strings.TrimSpace(r.Name), Stars: r.Stars}
	if r.Seed != nil {
		in.Seed = *r.Seed
		return in, nil
	}

	seed, err := dice.NewSeed()
	if err != nil {
		return Input{}, err
	}
	in.Seed = seed
	return in, nil
}

// Companion holds the orbit of a non-primary star around the primary.
type Companion struct {
	AverageOrbitalRadius float64 `json:"average_orbital_radius"`
	Eccentricity         float64 `json:"eccentricity"`
	MinSeparation        float64 `json:"min_separation"`
	MaxSeparation        float64 `json:"max_separation"`
	InnerForbiddenZone   float64 `json:"inner_forbidden_zone"`
	OuterForbiddenZone   float64 `json:"outer_forbidden_zone"`
	OrbitalPeriod        float64 `json:"orbital_period"`
}

// Star is one generated star. ForbiddenZone is the band its own orbits avoid.
type Star struct {
	Index           int                    `json:"index"`
	Catalog         *catalog.Row           `json:"catalog,omitempty"`
	Classification  stellar.Classification `json:"classification"`
	Physical        stellar.Physical       `json:"physical"`
	Evolution       *stellar.Evolution     `json:"evolution,omitempty"`
	Zones           stellar.Zones          `json:"zones"`
	Companion       *Companion             `json:"companion,omitempty"`
	ForbiddenZone   *stellar.ForbiddenZone `json:"forbidden_zone,omitempty"`
	Arrangement     orbit.Arrangement      `json:"arrangement"`
	FirstGasGiant   orbit.FirstGasGiant    `json:"first_gas_giant"`
	Orbits          []orbit.Slot           `json:"orbits"`
	FirstWorldIndex int                    `json:"first_world_index"`
	Worlds          []world.World          `json:"worlds"`
}

type System struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Seed      int64     `json:"seed"`
	Stars     []Star    `json:"stars"`
	ExportKey string    `json:"export_key,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *System) WorldCount() int {
	n := 0
	for _, star := range s.Stars {
		n += len(star.Worlds)
	}
	return n
}

// Summary is the listing view of a stored system.
type Summary struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Seed               int64     `json:"seed"`
	PrimaryDesignation string    `json:"primary_designation"`
	StarCount          int       `json:"star_count"`
	WorldCount         int       `json:"world_count"`
	CreatedAt          time.Time `json:"created_at"`
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
