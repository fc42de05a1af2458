package color

import (
	"errors"
	"math"

	"github.com/gogpu/pixelshader/internal/fixed"
)

// Channel indexes one plane of a Curve.
type Channel int

const (
	// Red is the first plane.
	Red Channel = iota
	// Green is the second plane.
	Green
	// Blue is the third plane.
	Blue

	channelCount
)

// PresetSize is the size of a preset table: one 256-byte map per channel,
// laid out red, green, blue.
const PresetSize = 256 * int(channelCount)

// ErrPresetLength is returned when a preset table is not PresetSize bytes.
var ErrPresetLength = errors.New("color: preset table must be 768 bytes")

// exposureSlope is the steepness of the logistic used for exposure.
const exposureSlope = 0.75

// Curve is a three-plane lookup table mapping input intensity to output
// intensity per channel. The memory layout matches a flat 768-byte table:
// red at [0,256), green at [256,512), blue at [512,768).
type Curve [channelCount][256]uint8

// CurveParams are the inputs of BuildCurve.
//
// Contrast is a fixed-point ratio (fixed.One leaves values unchanged) where
// zero means "no adjustment" rather than "flatten". Brightness is an additive
// offset in byte units. Exposure is a fixed-point offset in logistic space.
// Temperature is in Kelvin; zero means "no white balance".
type CurveParams struct {
	Preset      []byte
	Contrast    int
	Brightness  int
	Exposure    int
	Temperature int
}

// IsIdentity reports whether p produces the identity curve.
func (p CurveParams) IsIdentity() bool {
	return p.Preset == nil && p.Contrast == 0 && p.Brightness == 0 &&
		p.Exposure == 0 && p.Temperature == 0
}

// IdentityCurve returns a curve mapping every intensity to itself.
func IdentityCurve() *Curve {
	c := new(Curve)
	for i := range 256 {
		c[Red][i] = uint8(i)
		c[Green][i] = uint8(i)
		c[Blue][i] = uint8(i)
	}
	return c
}

// BuildCurve derives a lookup table from p.
//
// Every input intensity is mapped independently through, in order:
// exposure, white balance, brightness, contrast and the preset remap.
func BuildCurve(p CurveParams) (*Curve, error) {
	if p.Preset != nil && len(p.Preset) != PresetSize {
		return nil, ErrPresetLength
	}

	white := White
	if p.Temperature != 0 {
		white = KelvinToRGB(p.Temperature)
	}
	wb := [channelCount]int{int(white.R), int(white.G), int(white.B)}

	c := new(Curve)
	for i := range 256 {
		v := ApplyExposure(i, p.Exposure)

		for ch := Red; ch < channelCount; ch++ {
			out := fixed.ClampByte(v * wb[ch] / 255)

			if p.Brightness != 0 {
				out = fixed.ClampByte(int(out) + p.Brightness)
			}

			if p.Contrast != 0 {
				out = fixed.ClampByte(fixed.Mix(128, int(out), p.Contrast))
			}

			if p.Preset != nil {
				out = p.Preset[256*int(ch)+int(out)]
			}

			c[ch][i] = out
		}
	}

	return c, nil
}

// ApplyExposure maps intensity through a logistic round trip shifted by
// exposure (fixed point). An exposure of zero returns intensity unchanged.
func ApplyExposure(intensity, exposure int) int {
	if exposure == 0 {
		return intensity
	}

	// Keep away from the logistic's singularities at 0 and 1.
	if intensity <= 0 {
		intensity = 1
	} else if intensity >= 255 {
		intensity = 254
	}

	x := float64(intensity) / 255
	e := float64(exposure) / fixed.One

	inv := math.Log(1/x-1) / -exposureSlope
	result := 1 / (1 + math.Exp(-exposureSlope*(inv+e)))

	if result <= 0 {
		return 0
	}
	if result >= 1 {
		return 255
	}
	return int(result * 255)
}

// Lookup maps one pixel through the curve.
func (c *Curve) Lookup(r, g, b uint8) (uint8, uint8, uint8) {
	return c[Red][r], c[Green][g], c[Blue][b]
}

// Table returns the 256-entry plane for ch.
func (c *Curve) Table(ch Channel) []uint8 {
	return c[ch][:]
}

// Bytes returns a flat copy of the curve in preset layout.
func (c *Curve) Bytes() []byte {
	out := make([]byte, 0, PresetSize)
	for ch := Red; ch < channelCount; ch++ {
		out = append(out, c[ch][:]...)
	}
	return out
}
