package system

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"reflect"
	"testing"

	"starforge/internal/orbit"
	"starforge/internal/stellar"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestGenerator() *Generator {
	return NewGenerator(GeneratorConfig{}, testLogger())
}

func ptr[T any](v T) *T {
	return &v
}

func sunInput(seed int64) Input {
	return Input{
		Name:  "Sol",
		Seed:  seed,
		Stars: []StarInput{{SpectralType: "G2V", Luminosity: 1}},
	}
}

func TestGenerateSunLikeSystem(t *testing.T) {
	sys, err := newTestGenerator().Generate(context.Background(), sunInput(42))
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if sys.Name != "Sol" || sys.Seed != 42 || len(sys.Stars) != 1 {
		t.Fatalf("unexpected system header: %+v", sys)
	}

	star := sys.Stars[0]
	if star.Classification.Designation != "G3V" {
		t.Errorf("designation = %s, want G3V", star.Classification.Designation)
	}
	if star.Evolution == nil {
		t.Error("expected evolution constants for a tabled mass")
	}
	if star.Physical.Age <= 0 || star.Physical.EscapeVelocity <= 0 || star.Physical.RotationVelocity <= 0 {
		t.Errorf("derived physical values missing: %+v", star.Physical)
	}
	if star.Companion != nil || star.ForbiddenZone != nil {
		t.Error("a single star has neither a companion orbit nor a forbidden zone")
	}
	if len(star.Orbits) > orbit.DefaultLimits.MaxOrbits || len(star.Worlds) > orbit.DefaultLimits.MaxWorlds {
		t.Fatalf("%d orbits, %d worlds", len(star.Orbits), len(star.Worlds))
	}

	for _, w := range star.Worlds {
		if w.SizeClass.IsTerrestrial() {
			if w.Surface == nil {
				t.Fatalf("terrestrial world %d has no surface map", w.SlotIndex)
			}
			if w.Surface.WaterHexes+w.Surface.LandHexes != w.Surface.TotalHexes {
				t.Fatalf("world %d: hex counts do not add up", w.SlotIndex)
			}
		} else if w.Surface != nil {
			t.Fatalf("%s world %d has a surface map", w.SizeClass, w.SlotIndex)
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	in := Input{
		Seed: 7,
		Stars: []StarInput{
			{SpectralType: "G2V", Luminosity: 1},
			{SpectralType: "K0V", Luminosity: 0.5, Companion: &CompanionOrbit{AverageRadius: 10, Eccentricity: 0.2}},
		},
	}

	a, err := newTestGenerator().Generate(context.Background(), in)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	b, err := newTestGenerator().Generate(context.Background(), in)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("identical inputs produced different systems")
	}

	c, err := newTestGenerator().Generate(context.Background(), Input{Seed: 8, Stars: in.Stars})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if reflect.DeepEqual(a.Stars, c.Stars) {
		t.Fatal("different seeds produced identical systems")
	}
}

func TestGenerateBinaryForbiddenZones(t *testing.T) {
	in := Input{
		Seed: 3,
		Stars: []StarInput{
			{SpectralType: "G2V", Luminosity: 1},
			{SpectralType: "K0V", Luminosity: 0.5, Companion: &CompanionOrbit{AverageRadius: 10, Eccentricity: 0.2}},
		},
	}

	sys, err := newTestGenerator().Generate(context.Background(), in)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	companion := sys.Stars[1].Companion
	if companion == nil {
		t.Fatal("expected companion orbit on the second star")
	}
	if math.Abs(companion.MinSeparation-8) > 1e-9 || math.Abs(companion.MaxSeparation-12) > 1e-9 {
		t.Errorf("separation = %v..%v, want 8..12", companion.MinSeparation, companion.MaxSeparation)
	}
	if companion.OrbitalPeriod <= 0 {
		t.Errorf("orbital period = %v", companion.OrbitalPeriod)
	}

	fz := sys.Stars[0].ForbiddenZone
	if fz == nil {
		t.Fatal("expected a forbidden zone on the primary")
	}
	if math.Abs(fz.Inner-8.0/3) > 1e-9 || math.Abs(fz.Outer-36) > 1e-9 {
		t.Errorf("forbidden zone = %v..%v, want 2.667..36", fz.Inner, fz.Outer)
	}

	for _, slot := range sys.Stars[0].Orbits {
		if fz.Contains(slot.Radius) && slot.SizeClass.Occupied() {
			t.Errorf("slot at %v AU inside the forbidden zone holds %s", slot.Radius, slot.SizeClass)
		}
	}
}

func TestGenerateRandomStars(t *testing.T) {
	generated := 0
	for seed := int64(0); seed < 60; seed++ {
		in := Input{Seed: seed, Stars: []StarInput{{Random: true}}}
		sys, err := newTestGenerator().Generate(context.Background(), in)
		if errors.Is(err, orbit.ErrCapacityExceeded) || errors.Is(err, stellar.ErrPresetRequired) {
			continue
		}
		if err != nil {
			t.Fatalf("seed %d: Generate returned error: %v", seed, err)
		}
		generated++

		star := sys.Stars[0]
		if star.Physical.Age <= 0 {
			t.Errorf("seed %d: rolled star has age %v", seed, star.Physical.Age)
		}
		if star.Evolution == nil {
			t.Errorf("seed %d: rolled star has no evolution constants", seed)
		}
	}
	if generated == 0 {
		t.Fatal("no random system could be generated")
	}
}

func TestGenerateRejectsInvalidInput(t *testing.T) {
	companion := &CompanionOrbit{AverageRadius: 10, Eccentricity: 0.1}

	tests := []struct {
		name string
		in   Input
		want error
	}{
		{name: "no stars", in: Input{}, want: ErrInvalidInput},
		{name: "primary with companion orbit", in: Input{Stars: []StarInput{{SpectralType: "G2V", Luminosity: 1, Companion: companion}}}, want: ErrInvalidInput},
		{name: "companion without orbit", in: Input{Stars: []StarInput{{SpectralType: "G2V", Luminosity: 1}, {SpectralType: "M5V", Luminosity: 0.001}}}, want: ErrInvalidInput},
		{name: "missing spectral type", in: Input{Stars: []StarInput{{Luminosity: 1}}}, want: ErrInvalidInput},
		{name: "negative age", in: Input{Stars: []StarInput{{SpectralType: "G2V", Luminosity: 1, Age: -1}}}, want: ErrInvalidInput},
		{name: "too many stars", in: Input{Stars: []StarInput{
			{Random: true},
			{Random: true, Companion: companion},
			{Random: true, Companion: companion},
			{Random: true, Companion: companion},
			{Random: true, Companion: companion},
		}}, want: ErrInvalidInput},
		{name: "zero luminosity", in: Input{Stars: []StarInput{{SpectralType: "G2V"}}}, want: stellar.ErrInputOutOfRange},
		{name: "eccentricity of one", in: Input{Stars: []StarInput{{SpectralType: "G2V", Luminosity: 1}, {SpectralType: "M5V", Luminosity: 0.001, Companion: &CompanionOrbit{AverageRadius: 5, Eccentricity: 1}}}}, want: stellar.ErrInputOutOfRange},
		{name: "untabled type without presets", in: Input{Stars: []StarInput{{SpectralType: "DA2", Luminosity: 0.003}}}, want: stellar.ErrPresetRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestGenerator().Generate(context.Background(), tt.in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestGenerateWithPresetFallback(t *testing.T) {
	in := Input{
		Seed: 11,
		Stars: []StarInput{{
			SpectralType: "DA2",
			Luminosity:   0.003,
			Presets:      stellar.Presets{Mass: ptr(0.6), Radius: ptr(0.012), Temperature: ptr(25000.0)},
		}},
	}

	sys, err := newTestGenerator().Generate(context.Background(), in)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	star := sys.Stars[0]
	if !star.Classification.PresetFallbackRequired {
		t.Error("expected the preset fallback flag")
	}
	if star.Physical.Mass != 0.6 || star.Physical.Temperature != 25000 {
		t.Errorf("presets not applied: %+v", star.Physical)
	}
}

func TestGenerateReportsCapacity(t *testing.T) {
	g := NewGenerator(GeneratorConfig{Limits: orbit.Limits{MaxOrbits: 2, MaxWorlds: 1}}, testLogger())

	_, err := g.Generate(context.Background(), sunInput(1))
	if !errors.Is(err, orbit.ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
}

func TestGenerateHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newTestGenerator().Generate(ctx, sunInput(1)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSystemNameFallbacks(t *testing.T) {
	sys, err := newTestGenerator().Generate(context.Background(), Input{Seed: 123456, Stars: []StarInput{{SpectralType: "G2V", Luminosity: 1}}})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if sys.Name != "G3V-23456" {
		t.Errorf("name = %q, want G3V-23456", sys.Name)
	}
}
