package world

import (
	"errors"
	"testing"

	"starforge/internal/dice"
)

func TestMapWorldEarth(t *testing.T) {
	// Every die shows 4.
	m, err := NewMapper(dice.Fixed(4)).MapWorld(12742, 0.70)
	if err != nil {
		t.Fatalf("MapWorld returned error: %v", err)
	}

	if m.UWPSize != 8 || m.UWPHydrographic != 7 {
		t.Errorf("UWP size/hydro = %d/%d, want 8/7", m.UWPSize, m.UWPHydrographic)
	}
	if m.HexesPerSide != 8 || m.TotalHexes != 642 {
		t.Errorf("hexes per side/total = %d/%d, want 8/642", m.HexesPerSide, m.TotalHexes)
	}
	if m.WaterHexes != 449 || m.LandHexes != 193 {
		t.Errorf("water/land = %d/%d, want 449/193", m.WaterHexes, m.LandHexes)
	}

	wantTectonics := Tectonics{PlateCount: 7, PlateSizeKM: 4000, Movement: Transverse}
	if m.Tectonics != wantTectonics {
		t.Errorf("tectonics = %+v, want %+v", m.Tectonics, wantTectonics)
	}

	want := Features{
		MajorOceans:     2,
		MinorOceans:     5,
		SmallSeas:       9,
		ScatteredLakes:  8,
		MajorContinents: 0,
		MinorContinents: 1,
		MajorIslands:    9,
		Archipelagoes:   8,
	}
	if m.Features != want {
		t.Errorf("features = %+v, want %+v", m.Features, want)
	}
}

func TestMapWorldRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name     string
		diameter float64
		coverage float64
	}{
		{name: "negative diameter", diameter: -1, coverage: 0.5},
		{name: "oversized world", diameter: 30500, coverage: 0.5},
		{name: "negative coverage", diameter: 12742, coverage: -0.1},
		{name: "coverage above one", diameter: 12742, coverage: 1.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MapWorld(dice.Fixed(3), tt.diameter, tt.coverage)
			if !errors.Is(err, ErrInputOutOfRange) {
				t.Fatalf("expected ErrInputOutOfRange, got %v", err)
			}
		})
	}
}

func TestMapWorldCoverageExtremes(t *testing.T) {
	dry, err := MapWorld(dice.NewSeeded(7), 9000, 0)
	if err != nil {
		t.Fatalf("MapWorld returned error: %v", err)
	}
	if dry.WaterHexes != 0 || dry.Features.WaterFeatures() != 0 {
		t.Errorf("dry world has %d water hexes and %d water features", dry.WaterHexes, dry.Features.WaterFeatures())
	}
	if dry.LandHexes != dry.TotalHexes {
		t.Errorf("dry world land %d, total %d", dry.LandHexes, dry.TotalHexes)
	}

	wet, err := MapWorld(dice.NewSeeded(7), 9000, 1)
	if err != nil {
		t.Fatalf("MapWorld returned error: %v", err)
	}
	if wet.WaterHexes != wet.TotalHexes || wet.LandHexes != 0 {
		t.Errorf("ocean world water/land = %d/%d, total %d", wet.WaterHexes, wet.LandHexes, wet.TotalHexes)
	}
	if wet.Features.LandFeatures() != 0 {
		t.Errorf("ocean world has %d land features", wet.Features.LandFeatures())
	}
}

func TestMapWorldInvariants(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		for _, km := range []float64{0, 1500, 6000, 12742, 18000, 30499} {
			for _, coverage := range []float64{0, 0.05, 0.3, 0.7, 0.95, 1} {
				m, err := MapWorld(dice.NewSeeded(seed), km, coverage)
				if err != nil {
					t.Fatalf("seed %d: MapWorld(%v, %v) returned error: %v", seed, km, coverage, err)
				}
				if m.WaterHexes+m.LandHexes != m.TotalHexes {
					t.Fatalf("seed %d: water %d + land %d != total %d", seed, m.WaterHexes, m.LandHexes, m.TotalHexes)
				}
				if m.Tectonics.PlateCount < 1 {
					t.Fatalf("seed %d: %d plates", seed, m.Tectonics.PlateCount)
				}
				if m.Features.WaterFeatures() > m.WaterHexes {
					t.Fatalf("seed %d: %d water features on %d water hexes", seed, m.Features.WaterFeatures(), m.WaterHexes)
				}
				if m.Features.LandFeatures() > m.LandHexes {
					t.Fatalf("seed %d: %d land features on %d land hexes", seed, m.Features.LandFeatures(), m.LandHexes)
				}
				f := m.Features
				for _, c := range []int{f.MajorOceans, f.MinorOceans, f.SmallSeas, f.ScatteredLakes, f.MajorContinents, f.MinorContinents, f.MajorIslands, f.Archipelagoes} {
					if c < 0 {
						t.Fatalf("seed %d: negative feature count in %+v", seed, f)
					}
				}
			}
		}
	}
}

func TestMapWorldIsIdempotentForIdenticalRolls(t *testing.T) {
	a, err := MapWorld(dice.NewSeeded(42), 11000, 0.55)
	if err != nil {
		t.Fatalf("MapWorld returned error: %v", err)
	}
	b, err := MapWorld(dice.NewSeeded(42), 11000, 0.55)
	if err != nil {
		t.Fatalf("MapWorld returned error: %v", err)
	}
	if a != b {
		t.Fatalf("maps differ:\n%+v\n%+v", a, b)
	}
}

func TestWaterFeatureThresholds(t *testing.T) {
	r := dice.Fixed(4)

	tests := []struct {
		name string
		fn   func(dice.Roller, int) int
		roll int
		want int
	}{
		{name: "major oceans dry", fn: MajorOceans, roll: 3, want: 0},
		{name: "major oceans at 6", fn: MajorOceans, roll: 6, want: 0},
		{name: "major oceans flooded", fn: MajorOceans, roll: 20, want: 1},
		{name: "major oceans 1d6-5", fn: MajorOceans, roll: 7, want: 0},
		{name: "major oceans 1d6-2", fn: MajorOceans, roll: 15, want: 2},
		{name: "minor oceans dry", fn: MinorOceans, roll: 6, want: 0},
		{name: "minor oceans 2d6-3", fn: MinorOceans, roll: 15, want: 5},
		{name: "small seas none", fn: SmallSeas, roll: 4, want: 0},
		{name: "small seas 1d6-3", fn: SmallSeas, roll: 5, want: 1},
		{name: "small seas 2d6-3", fn: SmallSeas, roll: 6, want: 5},
		{name: "small seas 3d6-3", fn: SmallSeas, roll: 10, want: 9},
		{name: "lakes none", fn: ScatteredLakes, roll: 2, want: 0},
		{name: "lakes single", fn: ScatteredLakes, roll: 4, want: 1},
		{name: "lakes 2d6", fn: ScatteredLakes, roll: 5, want: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(r, tt.roll); got != tt.want {
				t.Fatalf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLandFeatureThresholds(t *testing.T) {
	r := dice.Fixed(4)

	tests := []struct {
		name string
		fn   func(dice.Roller, int) int
		roll int
		want int
	}{
		{name: "major continents 1d6-3", fn: MajorContinents, roll: 16, want: 1},
		{name: "major continents 2d6-4", fn: MajorContinents, roll: 18, want: 4},
		{name: "major continents too wet", fn: MajorContinents, roll: 31, want: 0},
		{name: "minor continents 2d6-3", fn: MinorContinents, roll: 19, want: 5},
		{name: "minor continents too wet", fn: MinorContinents, roll: 36, want: 0},
		{name: "major islands 3d6-3", fn: MajorIslands, roll: 29, want: 9},
		{name: "major islands 2d6", fn: MajorIslands, roll: 30, want: 8},
		{name: "major islands 1d6-3", fn: MajorIslands, roll: 31, want: 1},
		{name: "major islands none", fn: MajorIslands, roll: 32, want: 0},
		{name: "archipelagoes 2d6", fn: Archipelagoes, roll: 31, want: 8},
		{name: "archipelagoes single", fn: Archipelagoes, roll: 34, want: 1},
		{name: "archipelagoes none", fn: Archipelagoes, roll: 35, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(r, tt.roll); got != tt.want {
				t.Fatalf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFeatureCountsClampAtZero(t *testing.T) {
	r := dice.Fixed(1)
	if got := MajorOceans(r, 7); got != 0 {
		t.Errorf("MajorOceans = %d, want 0", got)
	}
	if got := SmallSeas(r, 5); got != 0 {
		t.Errorf("SmallSeas = %d, want 0", got)
	}
	if got := MajorContinents(r, 18); got != 0 {
		t.Errorf("MajorContinents = %d, want 0", got)
	}
	if got := MajorIslands(r, 31); got != 0 {
		t.Errorf("MajorIslands = %d, want 0", got)
	}
}

func TestTectonics(t *testing.T) {
	if got := PlateCount(dice.Fixed(6), 0, 0); got != 1 {
		t.Errorf("PlateCount floor = %d, want 1", got)
	}
	if got := PlateCount(dice.Fixed(1), 10, 12); got != 20 {
		t.Errorf("PlateCount = %d, want 20", got)
	}
	if got := PlateSize(dice.Fixed(1), 6371); got != 500 {
		t.Errorf("PlateSize = %d, want 500", got)
	}

	movements := []struct {
		face int
		want MovementType
	}{
		{face: 1, want: Converging},
		{face: 3, want: Transverse},
		{face: 4, want: Transverse},
		{face: 5, want: Diverging},
	}
	for _, tt := range movements {
		if got := RollMovement(dice.Fixed(tt.face)); got != tt.want {
			t.Errorf("RollMovement(2d6 = %d) = %s, want %s", 2*tt.face, got, tt.want)
		}
	}
}

func TestUWPDigits(t *testing.T) {
	if got := UWPSize(12742); got != 8 {
		t.Errorf("UWPSize(12742) = %d, want 8", got)
	}
	if got := UWPSize(500); got != 0 {
		t.Errorf("UWPSize(500) = %d, want 0", got)
	}
	if got := UWPHydrographic(0.70); got != 7 {
		t.Errorf("UWPHydrographic(0.70) = %d, want 7", got)
	}
	if got := UWPHydrographic(1); got != 10 {
		t.Errorf("UWPHydrographic(1) = %d, want 10", got)
	}
	if got := LandHexCount(642, WaterHexCount(642, 0.5)); got != 321 {
		t.Errorf("LandHexCount = %d, want 321", got)
	}
}

func TestTrim(t *testing.T) {
	a, b, c := 3, 4, 1
	trim(5, &a, &b, &c)
	if a != 0 || b != 4 || c != 1 {
		t.Fatalf("got %d %d %d, want 0 4 1", a, b, c)
	}

	a, b, c = 3, 4, 1
	trim(2, &a, &b, &c)
	if a != 0 || b != 1 || c != 1 {
		t.Fatalf("got %d %d %d, want 0 1 1", a, b, c)
	}

	a, b, c = 1, 1, 1
	trim(10, &a, &b, &c)
	if a != 1 || b != 1 || c != 1 {
		t.Fatalf("trim changed counts under budget: %d %d %d", a, b, c)
	}
}
