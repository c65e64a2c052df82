package stellar

import (
	"fmt"
	"math"
	"strings"

	"starforge/internal/tables"
)

// Letters recognised in a spectral string. Only those in
// tables.HarvardLetters have physical-parameter tables.
const knownLetters = "OBAFGKMDCSWLTY"

// HarvardLetter returns the first upper-case spectral letter in spectralType,
// skipping lower-case prefixes such as "sd". It returns 0 when none is found.
func HarvardLetter(spectralType string) byte {
	for i := 0; i < len(spectralType); i++ {
		c := spectralType[i]
		if c >= 'A' && c <= 'Z' {
			if strings.IndexByte(knownLetters, c) >= 0 {
				return c
			}
			return 0
		}
	}
	return 0
}

// YerkesIndex finds the luminosity band for letter, searching from the
// brightest class down. A luminosity on a shared boundary resolves to the
// lower index.
func YerkesIndex(letter byte, luminosity float64) (int, bool) {
	for i := 0; i < tables.YerkesClassCount; i++ {
		lo, hi, ok := tables.LuminosityBand(letter, i)
		if !ok {
			return -1, false
		}
		if luminosity >= lo && luminosity <= hi {
			return i, true
		}
	}
	return -1, false
}

// NumericValue places luminosity inside its band on a log scale: the bright
// edge is 0 and the faint edge approaches 10.
func NumericValue(letter byte, yerkes int, luminosity float64) float64 {
	lo, hi, ok := tables.LuminosityBand(letter, yerkes)
	if !ok {
		return 0
	}

	t := (math.Log10(hi) - math.Log10(luminosity)) / (math.Log10(hi) - math.Log10(lo))
	return math.Max(0, math.Min(9.9, t*10))
}

// Classify resolves the Harvard letter, Yerkes class and subtype of a star and
// extrapolates its mass, radius and temperature. Presets replace the looked-up
// values. When the letter has no table entry the presets must be complete.
func Classify(in ClassifyInput) (Classified, error) {
	if !(in.Luminosity > 0) || math.IsInf(in.Luminosity, 0) {
		return Classified{}, fmt.Errorf("%w: luminosity %v", ErrInputOutOfRange, in.Luminosity)
	}

	letter := HarvardLetter(in.SpectralType)
	c := Classification{YerkesIndex: -1}
	if letter != 0 {
		c.HarvardLetter = string(letter)
	}

	yerkes, ok := YerkesIndex(letter, in.Luminosity)
	if !ok {
		c.PresetFallbackRequired = true
		if !in.Presets.Complete() {
			return Classified{Classification: c}, fmt.Errorf("%w: %q", ErrPresetRequired, in.SpectralType)
		}
		c.Designation = strings.TrimSpace(in.SpectralType)

		p := Physical{
			Mass:        *in.Presets.Mass,
			Radius:      *in.Presets.Radius,
			Temperature: *in.Presets.Temperature,
			Luminosity:  in.Luminosity,
		}
		p.Color = BlackbodyColor(p.Temperature)
		return Classified{Classification: c, Physical: p}, nil
	}

	numeric := NumericValue(letter, yerkes, in.Luminosity)
	c.YerkesIndex = yerkes
	c.YerkesClass = tables.YerkesClass(yerkes)
	c.NumericValue = numeric
	c.Subtype = tables.Clamp(int(math.Floor(numeric)), 0, 9)
	c.Designation = fmt.Sprintf("%c%d%s", letter, c.Subtype, c.YerkesClass)

	p := extrapolate(letter, yerkes, numeric)
	p.Luminosity = in.Luminosity
	if in.Presets.Mass != nil {
		p.Mass = *in.Presets.Mass
	}
	if in.Presets.Radius != nil {
		p.Radius = *in.Presets.Radius
	}
	if in.Presets.Temperature != nil {
		p.Temperature = *in.Presets.Temperature
	}
	p.Color = BlackbodyColor(p.Temperature)

	return Classified{Classification: c, Physical: p}, nil
}

func extrapolate(letter byte, yerkes int, numeric float64) Physical {
	frac := numeric / 10
	lerp := func(hot, cool float64) float64 {
		return hot + (cool-hot)*frac
	}

	params, _ := tables.Parameters(letter, yerkes)
	hot, cool, _ := tables.TemperatureRange(letter)

	return Physical{
		Mass:        lerp(params.MassHot, params.MassCool),
		Radius:      lerp(params.RadiusHot, params.RadiusCool),
		Temperature: lerp(hot, cool),
	}
}
