package color

import "math"

// Range of color temperatures the Kelvin model is fitted for.
const (
	KelvinModelMin = 1000
	KelvinModelMax = 40000
)

// KelvinToRGB returns the approximate display white point of a black body
// at temperature k (in Kelvin).
//
// Temperatures outside [KelvinModelMin, KelvinModelMax] are clamped. The
// model works on 100K buckets and uses a piecewise power/logarithm fit per
// channel; components are clamped to [0,255] and truncated.
func KelvinToRGB(k int) ColorU8 {
	r, g, b := kelvinComponents(k)
	return ColorU8{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
}

func kelvinComponents(k int) (r, g, b float64) {
	if k < KelvinModelMin {
		k = KelvinModelMin
	} else if k > KelvinModelMax {
		k = KelvinModelMax
	}

	t := float64((k + 50) / 100)

	if t <= 66 {
		r = 255
		g = 99.4708025861*math.Log(t) - 161.1195681661
	} else {
		r = 329.698727446 * math.Pow(t-60, -0.1332047592)
		g = 288.1221695283 * math.Pow(t-60, -0.0755148492)
	}

	switch {
	case t <= 19:
		b = 0
	case t >= 66:
		b = 255
	default:
		b = 138.5177312231*math.Log(t-10) - 305.0447927307
	}

	return clampComponent(r), clampComponent(g), clampComponent(b)
}

func clampComponent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
