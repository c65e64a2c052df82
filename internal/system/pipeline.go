package system

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"starforge/internal/dice"
	"starforge/internal/orbit"
	"starforge/internal/stellar"
	"starforge/internal/world"

	"golang.org/x/sync/errgroup"
)

type GeneratorConfig struct {
	Limits   orbit.Limits
	MaxStars int
}

// Generator runs the generation stages for every star of a system. Each star
// and each world draws from its own engine derived from the system seed, so
// results do not depend on the order the work is done in.
type Generator struct {
	limits   orbit.Limits
	maxStars int
	logger   *slog.Logger
}

func NewGenerator(cfg GeneratorConfig, logger *slog.Logger) *Generator {
	limits := cfg.Limits
	if limits.MaxOrbits <= 0 || limits.MaxWorlds <= 0 {
		limits = orbit.DefaultLimits
	}
	maxStars := cfg.MaxStars
	if maxStars <= 0 {
		maxStars = 4
	}

	return &Generator{
		limits:   limits,
		maxStars: maxStars,
		logger:   logger,
	}
}

func (g *Generator) Generate(ctx context.Context, in Input) (*System, error) {
	logger := g.logger.With("component", "system_generator", "operation", "generate", "seed", in.Seed, "star_count", len(in.Stars))
	logger.Debug("Generating system")

	if err := g.validate(in); err != nil {
		return nil, err
	}

	forbidden, err := forbiddenZones(in.Stars)
	if err != nil {
		return nil, err
	}

	stars := make([]Star, len(in.Stars))
	group, gctx := errgroup.WithContext(ctx)
	for i := range in.Stars {
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			star, err := g.generateStar(in.Seed, i, in.Stars[i], forbidden[i])
			if err != nil {
				return fmt.Errorf("star %d: %w", i, err)
			}
			stars[i] = star
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		logger.Debug("System generation failed", "error", err)
		return nil, err
	}

	primaryMass := stars[0].Physical.Mass
	for i := 1; i < len(stars); i++ {
		co := in.Stars[i].Companion
		fz := forbidden[i]
		stars[i].Companion = &Companion{
			AverageOrbitalRadius: co.AverageRadius,
			Eccentricity:         co.Eccentricity,
			MinSeparation:        fz.MinSeparation,
			MaxSeparation:        fz.MaxSeparation,
			InnerForbiddenZone:   fz.Inner,
			OuterForbiddenZone:   fz.Outer,
			OrbitalPeriod:        stellar.OrbitalPeriod(co.AverageRadius, primaryMass, stars[i].Physical.Mass),
		}
	}

	sys := &System{
		Name:  systemName(in, stars[0]),
		Seed:  in.Seed,
		Stars: stars,
	}

	logger.Info("System generated", "name", sys.Name, "world_count", sys.WorldCount())
	return sys, nil
}

func (g *Generator) validate(in Input) error {
	if len(in.Stars) == 0 {
		return invalidInput("at least one star is required")
	}
	if len(in.Stars) > g.maxStars {
		return invalidInput("%d stars requested, at most %d allowed", len(in.Stars), g.maxStars)
	}

	for i, s := range in.Stars {
		switch {
		case i == 0 && s.Companion != nil:
			return invalidInput("the primary star cannot have a companion orbit")
		case i > 0 && s.Companion == nil:
			return invalidInput("star %d needs a companion orbit", i)
		case !s.Random && strings.TrimSpace(s.SpectralType) == "":
			return invalidInput("star %d needs a spectral type or random generation", i)
		case s.Age < 0 || math.IsNaN(s.Age):
			return invalidInput("star %d has age %v", i, s.Age)
		}
	}
	return nil
}

// forbiddenZones returns, per star, the band its own orbits must avoid. Each
// companion avoids its own separation band and the primary avoids the widest
// band across its companions.
func forbiddenZones(stars []StarInput) ([]*stellar.ForbiddenZone, error) {
	zones := make([]*stellar.ForbiddenZone, len(stars))
	var companions []stellar.ForbiddenZone

	for i := 1; i < len(stars); i++ {
		co := stars[i].Companion
		fz, err := stellar.ComputeForbiddenZone(co.AverageRadius, co.Eccentricity)
		if err != nil {
			return nil, fmt.Errorf("star %d: %w", i, err)
		}
		zones[i] = &fz
		companions = append(companions, fz)
	}

	if widest, ok := stellar.WidestForbiddenZone(companions); ok {
		zones[0] = &widest
	}
	return zones, nil
}

func (g *Generator) generateStar(seed int64, index int, in StarInput, forbidden *stellar.ForbiddenZone) (Star, error) {
	r := dice.NewSeeded(dice.DeriveSeed(seed, fmt.Sprintf("star-%d", index)))

	resolved, err := resolveStar(r, in)
	if err != nil {
		return Star{}, err
	}

	physical := resolved.classified.Physical
	zones, err := stellar.ComputeZones(physical.Mass, physical.Luminosity)
	if err != nil {
		return Star{}, err
	}

	layout, err := placeOrbits(r, orbitInput{zones: zones, forbidden: forbidden, limits: g.limits})
	if err != nil {
		return Star{}, err
	}

	worlds, err := buildWorlds(worldInput{seed: seed, starIndex: index, luminosity: physical.Luminosity, slots: layout.Slots})
	if err != nil {
		return Star{}, err
	}

	return Star{
		Index:           index,
		Catalog:         in.Catalog,
		Classification:  resolved.classified.Classification,
		Physical:        physical,
		Evolution:       resolved.evolution,
		Zones:           zones,
		ForbiddenZone:   forbidden,
		Arrangement:     layout.Arrangement,
		FirstGasGiant:   layout.FirstGasGiant,
		Orbits:          layout.Slots,
		FirstWorldIndex: layout.FirstWorldIndex,
		Worlds:          worlds,
	}, nil
}

type resolvedStar struct {
	classified stellar.Classified
	evolution  *stellar.Evolution
}

// resolveStar classifies a star from its input or rolls a random one, then
// fills in age, rotation and escape velocity.
func resolveStar(r dice.Roller, in StarInput) (resolvedStar, error) {
	spectral, luminosity, age := in.SpectralType, in.Luminosity, in.Age
	var evolution *stellar.Evolution

	if in.Random {
		rolled := stellar.RollStar(r)
		spectral, luminosity = rolled.SpectralType, rolled.Luminosity
		if age == 0 {
			age = rolled.Age
		}
		evolution = &rolled.Evolution
	}

	classified, err := stellar.Classify(stellar.ClassifyInput{
		SpectralType: spectral,
		Luminosity:   luminosity,
		Presets:      in.Presets,
	})
	if err != nil {
		return resolvedStar{}, err
	}

	p := &classified.Physical
	if evolution == nil {
		if e, ok := stellar.LookupEvolution(p.Mass); ok {
			evolution = &e
		}
	}
	if age == 0 {
		age = float64(dice.D6(r, 3, -3))*0.8 + 0.1
		if evolution != nil && evolution.MSpan > 0 {
			age = math.Min(age, evolution.MSpan)
		}
	}

	p.Age = age
	p.RotationVelocity = stellar.RollRotationVelocity(r, classified.Classification.HarvardLetter)
	p.EscapeVelocity = stellar.EscapeVelocity(p.Mass, p.Radius)

	return resolvedStar{classified: classified, evolution: evolution}, nil
}

type orbitInput struct {
	zones     stellar.Zones
	forbidden *stellar.ForbiddenZone
	limits    orbit.Limits
}

func placeOrbits(r dice.Roller, in orbitInput) (orbit.Layout, error) {
	arrangement := orbit.RollArrangement(r, in.zones)
	first := orbit.PlaceFirstGasGiant(r, in.zones, arrangement)
	spacing := orbit.SpaceOrbits(r, orbit.SpacingInput{Zones: in.zones, Anchor: first.Radius})

	fill := orbit.FillInput{
		Spacing:       spacing,
		Zones:         in.zones,
		Arrangement:   arrangement,
		FirstGasGiant: first,
		Limits:        in.limits,
	}
	if in.forbidden != nil {
		fill.ForbiddenZone = *in.forbidden
		fill.HasForbiddenZone = true
	}

	return orbit.FillOrbits(r, fill)
}

type worldInput struct {
	seed       int64
	starIndex  int
	luminosity float64
	slots      []orbit.Slot
}

func buildWorlds(in worldInput) ([]world.World, error) {
	worlds := make([]world.World, 0, len(in.slots))

	for _, slot := range in.slots {
		if !slot.SizeClass.Occupied() {
			continue
		}

		r := dice.NewSeeded(dice.DeriveSeed(in.seed, fmt.Sprintf("star-%d-world-%d", in.starIndex, slot.Index)))
		w, err := world.Build(r, world.BuildInput{Slot: slot, StellarLuminosity: in.luminosity})
		if err != nil {
			return nil, fmt.Errorf("world %d: %w", slot.Index, err)
		}

		if slot.SizeClass.IsTerrestrial() {
			surface, err := world.NewMapper(r).MapWorld(w.DiameterKM, w.HydrographicCoverage)
			if err != nil {
				return nil, fmt.Errorf("world %d: %w", slot.Index, err)
			}
			w.Surface = &surface
		}

		worlds = append(worlds, w)
	}

	return worlds, nil
}

func systemName(in Input, primary Star) string {
	switch {
	case in.Name != "":
		return in.Name
	case primary.Catalog != nil:
		return primary.Catalog.Name()
	case primary.Classification.Designation != "":
		return fmt.Sprintf("%s-%d", primary.Classification.Designation, uint64(in.Seed)%100000)
	default:
		return fmt.Sprintf("System-%d", uint64(in.Seed)%100000)
	}
}
