package stellar

import "math"

// BlackbodyColor approximates the sRGB color of a black body at the given
// temperature in kelvin. Valid roughly between 1000 K and 40000 K; values
// outside are clamped.
func BlackbodyColor(kelvin float64) Color {
	t := math.Max(1000, math.Min(40000, kelvin)) / 100

	var r, g, b float64
	if t <= 66 {
		r = 255
		g = 99.4708025861*math.Log(t) - 161.1195681661
	} else {
		r = 329.698727446 * math.Pow(t-60, -0.1332047592)
		g = 288.1221695283 * math.Pow(t-60, -0.0755148492)
	}

	switch {
	case t >= 66:
		b = 255
	case t <= 19:
		b = 0
	default:
		b = 138.5177312231*math.Log(t-10) - 305.0447927307
	}

	return Color{R: channel(r), G: channel(g), B: channel(b)}
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, v))))
}
