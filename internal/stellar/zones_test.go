package stellar

import (
	"errors"
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeZones(t *testing.T) {
	tests := []struct {
		name        string
		mass, lum   float64
		inner       float64
		outer       float64
		hasSnowLine bool
	}{
		{name: "sun", mass: 1, lum: 1, inner: 0.1, outer: 40, hasSnowLine: true},
		{name: "red dwarf", mass: 0.1, lum: 0.0012, inner: 0.01, outer: 4, hasSnowLine: true},
		{name: "blue giant", mass: 10, lum: 1e5, inner: 0.01 * math.Sqrt(1e5), outer: 400, hasSnowLine: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z, err := ComputeZones(tt.mass, tt.lum)
			if err != nil {
				t.Fatalf("ComputeZones returned error: %v", err)
			}
			if !approx(z.InnerLimit, tt.inner) || !approx(z.OuterLimit, tt.outer) {
				t.Fatalf("unexpected limits: %+v", z)
			}
			if z.HasSnowLine != tt.hasSnowLine {
				t.Fatalf("HasSnowLine = %v, want %v (%+v)", z.HasSnowLine, tt.hasSnowLine, z)
			}
			if z.HasSnowLine && !(z.InnerLimit < z.SnowLine && z.SnowLine < z.OuterLimit) {
				t.Fatalf("snow line outside limits: %+v", z)
			}
		})
	}
}

func TestComputeZonesUsesMinimumLuminosity(t *testing.T) {
	z, err := ComputeZones(1, 1.5)
	if err != nil {
		t.Fatalf("ComputeZones returned error: %v", err)
	}
	if want := 4.85 * math.Sqrt(0.68); !approx(z.SnowLine, want) {
		t.Fatalf("expected snow line %v from LMin, got %v", want, z.SnowLine)
	}
}

func TestComputeZonesRejectsBadInput(t *testing.T) {
	if _, err := ComputeZones(0, 1); !errors.Is(err, ErrInputOutOfRange) {
		t.Fatalf("expected ErrInputOutOfRange, got %v", err)
	}
	if _, err := ComputeZones(1, -1); !errors.Is(err, ErrInputOutOfRange) {
		t.Fatalf("expected ErrInputOutOfRange, got %v", err)
	}
}

func TestComputeForbiddenZone(t *testing.T) {
	fz, err := ComputeForbiddenZone(10, 0.2)
	if err != nil {
		t.Fatalf("ComputeForbiddenZone returned error: %v", err)
	}
	if !approx(fz.MinSeparation, 8) || !approx(fz.MaxSeparation, 12) {
		t.Fatalf("expected separations 8 and 12, got %+v", fz)
	}
	if !approx(fz.Inner, 8.0/3) || !approx(fz.Outer, 36) {
		t.Fatalf("expected forbidden zone [2.67, 36], got %+v", fz)
	}
	if !fz.Contains(10) || fz.Contains(1) || fz.Contains(40) {
		t.Fatal("Contains does not match the band")
	}

	for _, e := range []float64{-0.1, 1, 1.5} {
		if _, err := ComputeForbiddenZone(10, e); !errors.Is(err, ErrInputOutOfRange) {
			t.Errorf("eccentricity %v: expected ErrInputOutOfRange, got %v", e, err)
		}
	}
}

func TestWidestForbiddenZone(t *testing.T) {
	near, _ := ComputeForbiddenZone(1, 0)
	far, _ := ComputeForbiddenZone(50, 0.5)

	merged, ok := WidestForbiddenZone([]ForbiddenZone{{}, near, far})
	if !ok {
		t.Fatal("expected a merged zone")
	}
	if !approx(merged.Inner, near.Inner) || !approx(merged.Outer, far.Outer) {
		t.Fatalf("unexpected merged zone: %+v", merged)
	}

	if _, ok := WidestForbiddenZone(nil); ok {
		t.Fatal("expected no zone for no companions")
	}
}

func TestOrbitalPeriod(t *testing.T) {
	if got := OrbitalPeriod(1, 1, 0); !approx(got, 1) {
		t.Fatalf("expected one year, got %v", got)
	}
	if got := OrbitalPeriod(4, 1, 1); !approx(got, math.Sqrt(32)) {
		t.Fatalf("expected sqrt(32), got %v", got)
	}
}
