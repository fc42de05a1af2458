// Package color builds the per-channel lookup tables used by color kernels.
//
// A Curve maps every 8-bit input intensity to an output intensity for each of
// the red, green and blue channels. Curves are derived from five photographic
// adjustments (exposure, white balance, brightness, contrast and an optional
// preset table) and are applied per pixel with three array lookups.
package color

// ColorU8 represents a color with uint8 components in [0,255].
type ColorU8 struct {
	R, G, B, A uint8
}

// White is opaque white, the neutral white point.
var White = ColorU8{R: 255, G: 255, B: 255, A: 255}

// Packed returns the color as a 24-bit 0xRRGGBB value.
func (c ColorU8) Packed() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// FromPacked unpacks a 0xRRGGBB value into an opaque color.
func FromPacked(rgb uint32) ColorU8 {
	return ColorU8{
		R: uint8(rgb >> 16),
		G: uint8(rgb >> 8),
		B: uint8(rgb),
		A: 255,
	}
}
