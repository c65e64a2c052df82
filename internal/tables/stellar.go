package tables

// yerkesClasses lists luminosity classes from brightest to faintest. The
// position in this list is the Yerkes index used by the other stellar tables.
var yerkesClasses = [...]string{"Ia", "Ib", "II", "III", "IV", "V", "VI"}

const YerkesClassCount = len(yerkesClasses)

func YerkesClass(index int) string {
	if index < 0 || index >= YerkesClassCount {
		return ""
	}
	return yerkesClasses[index]
}

// HarvardLetters with physical-parameter tables, hottest first.
const HarvardLetters = "OBAFGKM"

// Boundaries of the luminosity bands (solar units) for each Harvard letter,
// brightest first: band i spans [bounds[i+1], bounds[i]].
var luminosityBounds = map[byte][YerkesClassCount + 1]float64{
	'O': {1e7, 2e6, 1e6, 6e5, 4e5, 2e5, 2e4, 5e3},
	'B': {1e6, 3e5, 1.5e5, 8e4, 4e4, 2e4, 40, 5},
	'A': {3e5, 3e4, 5e3, 500, 100, 40, 6, 1},
	'F': {2e5, 1e4, 1.5e3, 150, 20, 9, 1.4, 0.3},
	'G': {2e5, 1e4, 1e3, 100, 5, 2, 0.3, 0.05},
	'K': {3e5, 4e4, 5e3, 500, 5, 0.7, 0.08, 0.01},
	'M': {5e5, 8e4, 1e4, 1e3, 10, 0.15, 1e-4, 1e-5},
}

// LuminosityBand returns the [min, max] luminosity for a letter and Yerkes index.
func LuminosityBand(letter byte, yerkes int) (lo, hi float64, ok bool) {
	bounds, found := luminosityBounds[letter]
	if !found || yerkes < 0 || yerkes >= YerkesClassCount {
		return 0, 0, false
	}
	return bounds[yerkes+1], bounds[yerkes], true
}

// ParameterRange holds the hot (subtype 0) and cool (subtype 9) ends of the
// mass and radius for one spectral cell, in solar units.
type ParameterRange struct {
	MassHot, MassCool     float64
	RadiusHot, RadiusCool float64
}

var temperatureRanges = map[byte][2]float64{
	'O': {45000, 30000},
	'B': {30000, 10500},
	'A': {10000, 7400},
	'F': {7300, 6000},
	'G': {6000, 5300},
	'K': {5300, 3900},
	'M': {3900, 2300},
}

// TemperatureRange returns the hot and cool effective temperatures in kelvin.
func TemperatureRange(letter byte) (hot, cool float64, ok bool) {
	r, found := temperatureRanges[letter]
	return r[0], r[1], found
}

var parameterRanges = map[byte][YerkesClassCount]ParameterRange{
	'O': {
		{MassHot: 90, MassCool: 40, RadiusHot: 30, RadiusCool: 25},
		{MassHot: 70, MassCool: 35, RadiusHot: 25, RadiusCool: 20},
		{MassHot: 60, MassCool: 30, RadiusHot: 20, RadiusCool: 17},
		{MassHot: 55, MassCool: 28, RadiusHot: 18, RadiusCool: 14},
		{MassHot: 50, MassCool: 25, RadiusHot: 15, RadiusCool: 11},
		{MassHot: 60, MassCool: 18, RadiusHot: 12, RadiusCool: 7},
		{MassHot: 30, MassCool: 15, RadiusHot: 6, RadiusCool: 4},
	},
	'B': {
		{MassHot: 40, MassCool: 20, RadiusHot: 60, RadiusCool: 80},
		{MassHot: 30, MassCool: 12, RadiusHot: 45, RadiusCool: 60},
		{MassHot: 20, MassCool: 8, RadiusHot: 25, RadiusCool: 35},
		{MassHot: 18, MassCool: 6, RadiusHot: 15, RadiusCool: 8},
		{MassHot: 15, MassCool: 4, RadiusHot: 8, RadiusCool: 3.5},
		{MassHot: 16, MassCool: 2.4, RadiusHot: 7.4, RadiusCool: 2},
		{MassHot: 8, MassCool: 1.8, RadiusHot: 3.5, RadiusCool: 1.4},
	},
	'A': {
		{MassHot: 20, MassCool: 15, RadiusHot: 110, RadiusCool: 150},
		{MassHot: 14, MassCool: 10, RadiusHot: 80, RadiusCool: 110},
		{MassHot: 10, MassCool: 6, RadiusHot: 40, RadiusCool: 60},
		{MassHot: 5, MassCool: 3, RadiusHot: 4, RadiusCool: 8},
		{MassHot: 3, MassCool: 2, RadiusHot: 3, RadiusCool: 2.8},
		{MassHot: 2.9, MassCool: 1.6, RadiusHot: 2.3, RadiusCool: 1.5},
		{MassHot: 1.8, MassCool: 1.3, RadiusHot: 1.4, RadiusCool: 1.1},
	},
	'F': {
		{MassHot: 15, MassCool: 12, RadiusHot: 150, RadiusCool: 200},
		{MassHot: 10, MassCool: 8, RadiusHot: 100, RadiusCool: 150},
		{MassHot: 6, MassCool: 5, RadiusHot: 60, RadiusCool: 80},
		{MassHot: 3, MassCool: 2.5, RadiusHot: 5, RadiusCool: 10},
		{MassHot: 2, MassCool: 1.6, RadiusHot: 2.8, RadiusCool: 2.2},
		{MassHot: 1.6, MassCool: 1.1, RadiusHot: 1.7, RadiusCool: 1.1},
		{MassHot: 1.1, MassCool: 0.9, RadiusHot: 1, RadiusCool: 0.9},
	},
	'G': {
		{MassHot: 12, MassCool: 12, RadiusHot: 200, RadiusCool: 300},
		{MassHot: 10, MassCool: 9, RadiusHot: 150, RadiusCool: 220},
		{MassHot: 5, MassCool: 5, RadiusHot: 80, RadiusCool: 110},
		{MassHot: 2.5, MassCool: 3, RadiusHot: 6, RadiusCool: 12},
		{MassHot: 1.5, MassCool: 1.2, RadiusHot: 1.9, RadiusCool: 2.6},
		{MassHot: 1.1, MassCool: 0.9, RadiusHot: 1.1, RadiusCool: 0.85},
		{MassHot: 0.8, MassCool: 0.7, RadiusHot: 0.8, RadiusCool: 0.7},
	},
	'K': {
		{MassHot: 13, MassCool: 13, RadiusHot: 300, RadiusCool: 500},
		{MassHot: 10, MassCool: 10, RadiusHot: 220, RadiusCool: 400},
		{MassHot: 6, MassCool: 6, RadiusHot: 110, RadiusCool: 200},
		{MassHot: 3, MassCool: 2, RadiusHot: 12, RadiusCool: 40},
		{MassHot: 1.3, MassCool: 1.1, RadiusHot: 2.6, RadiusCool: 3},
		{MassHot: 0.88, MassCool: 0.6, RadiusHot: 0.85, RadiusCool: 0.6},
		{MassHot: 0.7, MassCool: 0.5, RadiusHot: 0.7, RadiusCool: 0.5},
	},
	'M': {
		{MassHot: 15, MassCool: 20, RadiusHot: 500, RadiusCool: 1500},
		{MassHot: 12, MassCool: 15, RadiusHot: 400, RadiusCool: 1000},
		{MassHot: 8, MassCool: 10, RadiusHot: 200, RadiusCool: 500},
		{MassHot: 1.8, MassCool: 1.2, RadiusHot: 40, RadiusCool: 200},
		{MassHot: 0.7, MassCool: 0.6, RadiusHot: 2, RadiusCool: 1.5},
		{MassHot: 0.6, MassCool: 0.08, RadiusHot: 0.6, RadiusCool: 0.1},
		{MassHot: 0.3, MassCool: 0.08, RadiusHot: 0.3, RadiusCool: 0.1},
	},
}

// Parameters returns the mass and radius range for a spectral cell.
func Parameters(letter byte, yerkes int) (ParameterRange, bool) {
	cells, found := parameterRanges[letter]
	if !found || yerkes < 0 || yerkes >= YerkesClassCount {
		return ParameterRange{}, false
	}
	return cells[yerkes], true
}

// EvolutionRow is one line of the stellar evolution table. Spans are in
// billions of years; a zero span means the phase does not occur within the
// age of the universe.
type EvolutionRow struct {
	Mass        float64
	Type        string
	Temperature float64
	LMin        float64
	LMax        float64
	MSpan       float64
	SSpan       float64
	GSpan       float64
}

var evolution = [...]EvolutionRow{
	{Mass: 0.10, Type: "M7", Temperature: 3100, LMin: 0.0012, LMax: 0.0012},
	{Mass: 0.15, Type: "M6", Temperature: 3200, LMin: 0.0036, LMax: 0.0036},
	{Mass: 0.20, Type: "M5", Temperature: 3200, LMin: 0.0079, LMax: 0.0079},
	{Mass: 0.25, Type: "M4", Temperature: 3300, LMin: 0.015, LMax: 0.015},
	{Mass: 0.30, Type: "M4", Temperature: 3300, LMin: 0.024, LMax: 0.024},
	{Mass: 0.35, Type: "M3", Temperature: 3400, LMin: 0.037, LMax: 0.037},
	{Mass: 0.40, Type: "M2", Temperature: 3500, LMin: 0.054, LMax: 0.054},
	{Mass: 0.45, Type: "M1", Temperature: 3600, LMin: 0.07, LMax: 0.08, MSpan: 70},
	{Mass: 0.50, Type: "M0", Temperature: 3800, LMin: 0.09, LMax: 0.11, MSpan: 59},
	{Mass: 0.55, Type: "K8", Temperature: 4000, LMin: 0.11, LMax: 0.15, MSpan: 50},
	{Mass: 0.60, Type: "K6", Temperature: 4200, LMin: 0.13, LMax: 0.20, MSpan: 42},
	{Mass: 0.65, Type: "K5", Temperature: 4400, LMin: 0.15, LMax: 0.25, MSpan: 37},
	{Mass: 0.70, Type: "K4", Temperature: 4600, LMin: 0.19, LMax: 0.35, MSpan: 30},
	{Mass: 0.75, Type: "K2", Temperature: 4900, LMin: 0.23, LMax: 0.48, MSpan: 24},
	{Mass: 0.80, Type: "K0", Temperature: 5200, LMin: 0.28, LMax: 0.65, MSpan: 20},
	{Mass: 0.85, Type: "G8", Temperature: 5400, LMin: 0.36, LMax: 0.84, MSpan: 17},
	{Mass: 0.90, Type: "G6", Temperature: 5500, LMin: 0.45, LMax: 1.0, MSpan: 14},
	{Mass: 0.95, Type: "G4", Temperature: 5700, LMin: 0.56, LMax: 1.3, MSpan: 12, SSpan: 1.8, GSpan: 1.1},
	{Mass: 1.00, Type: "G2", Temperature: 5800, LMin: 0.68, LMax: 1.6, MSpan: 10, SSpan: 1.6, GSpan: 1.0},
	{Mass: 1.05, Type: "G1", Temperature: 5900, LMin: 0.87, LMax: 1.9, MSpan: 8.8, SSpan: 1.4, GSpan: 0.8},
	{Mass: 1.10, Type: "G0", Temperature: 6000, LMin: 1.1, LMax: 2.2, MSpan: 7.7, SSpan: 1.2, GSpan: 0.7},
	{Mass: 1.15, Type: "F9", Temperature: 6100, LMin: 1.4, LMax: 2.6, MSpan: 6.7, SSpan: 1.0, GSpan: 0.6},
	{Mass: 1.20, Type: "F8", Temperature: 6300, LMin: 1.7, LMax: 3.0, MSpan: 5.9, SSpan: 0.9, GSpan: 0.6},
	{Mass: 1.25, Type: "F7", Temperature: 6400, LMin: 2.1, LMax: 3.5, MSpan: 5.2, SSpan: 0.8, GSpan: 0.5},
	{Mass: 1.30, Type: "F6", Temperature: 6500, LMin: 2.5, LMax: 3.9, MSpan: 4.6, SSpan: 0.7, GSpan: 0.4},
	{Mass: 1.35, Type: "F5", Temperature: 6600, LMin: 3.1, LMax: 4.5, MSpan: 4.1, SSpan: 0.6, GSpan: 0.4},
	{Mass: 1.40, Type: "F4", Temperature: 6700, LMin: 3.7, LMax: 5.1, MSpan: 3.7, SSpan: 0.6, GSpan: 0.4},
	{Mass: 1.45, Type: "F3", Temperature: 6900, LMin: 4.3, LMax: 5.7, MSpan: 3.3, SSpan: 0.5, GSpan: 0.3},
	{Mass: 1.50, Type: "F2", Temperature: 7000, LMin: 5.1, LMax: 6.5, MSpan: 3.0, SSpan: 0.5, GSpan: 0.3},
	{Mass: 1.60, Type: "F0", Temperature: 7300, LMin: 6.7, LMax: 8.2, MSpan: 2.5, SSpan: 0.4, GSpan: 0.2},
	{Mass: 1.70, Type: "A9", Temperature: 7500, LMin: 8.6, LMax: 10, MSpan: 2.1, SSpan: 0.3, GSpan: 0.2},
	{Mass: 1.80, Type: "A7", Temperature: 7800, LMin: 11, LMax: 13, MSpan: 1.8, SSpan: 0.3, GSpan: 0.2},
	{Mass: 1.90, Type: "A6", Temperature: 8000, LMin: 13, LMax: 16, MSpan: 1.5, SSpan: 0.2, GSpan: 0.1},
	{Mass: 2.00, Type: "A5", Temperature: 8200, LMin: 16, LMax: 20, MSpan: 1.3, SSpan: 0.2, GSpan: 0.1},
}

const EvolutionRowCount = len(evolution)

// EvolutionAt returns the row at index i, clamped to the table.
func EvolutionAt(i int) EvolutionRow {
	return evolution[Clamp(i, 0, EvolutionRowCount-1)]
}

// EvolutionForMass returns the heaviest row not exceeding mass. ok is false
// when mass falls outside the table.
func EvolutionForMass(mass float64) (EvolutionRow, bool) {
	if mass < evolution[0].Mass || mass > evolution[EvolutionRowCount-1].Mass+0.05 {
		return EvolutionRow{}, false
	}

	row := evolution[0]
	for _, r := range evolution {
		if r.Mass > mass+1e-9 {
			break
		}
		row = r
	}
	return row, true
}
