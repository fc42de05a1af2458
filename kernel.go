package pixelshader

import (
	"github.com/gogpu/pixelshader/internal/blend"
	"github.com/gogpu/pixelshader/internal/color"
	"github.com/gogpu/pixelshader/internal/fixed"
)

// kernelKind tags the variant stored in a kernel.
type kernelKind uint8

const (
	kindNone kernelKind = iota
	kindColor
	kindVignette
)

// String returns the name of the kind, used in log output.
func (k kernelKind) String() string {
	switch k {
	case kindColor:
		return "color"
	case kindVignette:
		return "vignette"
	default:
		return "none"
	}
}

// kernel is one stage of a Shader. Only the payload matching kind is used.
type kernel struct {
	kind     kernelKind
	color    colorKernel
	vignette vignetteKernel
}

// colorKernel accumulates tone adjustments and caches the curve built
// from them.
//
// Every mutation bumps version. The curve is rebuilt on first use when
// built != version; a kernel that never changed has no curve.
type colorKernel struct {
	exposure    int // fixed point, logistic offset
	contrast    int // fixed point ratio, 0 = unchanged
	brightness  int // byte units
	temperature int // Kelvin, 0 = unchanged
	saturation  int // fixed point ratio, fixed.One = unchanged
	monoMix     [3]int

	preset []byte
	curve  *color.Curve

	version uint64
	built   uint64
}

// vignetteKernel composites one row of overlay onto every scanline.
type vignetteKernel struct {
	overlay Image
	mode    blend.Mode
}

func newColorKernel(monoMix [3]int) *kernel {
	return &kernel{
		kind: kindColor,
		color: colorKernel{
			saturation: fixed.One,
			monoMix:    monoMix,
		},
	}
}

func newVignetteKernel(overlay Image, mode blend.Mode) *kernel {
	return &kernel{
		kind: kindVignette,
		vignette: vignetteKernel{
			overlay: overlay,
			mode:    mode,
		},
	}
}

// touch records a parameter change.
func (c *colorKernel) touch() {
	c.version++
}

// stale reports whether the cached curve is out of date.
func (c *colorKernel) stale() bool {
	return c.built != c.version
}

func (c *colorKernel) params() color.CurveParams {
	return color.CurveParams{
		Preset:      c.preset,
		Contrast:    c.contrast,
		Brightness:  c.brightness,
		Exposure:    c.exposure,
		Temperature: c.temperature,
	}
}

// rebuild replaces the cached curve with one built from the current
// parameters. Identity parameters leave no curve.
func (c *colorKernel) rebuild() error {
	p := c.params()
	if p.IsIdentity() {
		c.curve = nil
		c.built = c.version
		return nil
	}

	curve, err := color.BuildCurve(p)
	if err != nil {
		return err
	}
	c.curve = curve
	c.built = c.version
	return nil
}

// release drops everything the kernel holds.
func (k *kernel) release() {
	k.color.curve = nil
	k.color.preset = nil
	k.vignette.overlay = nil
	k.kind = kindNone
}
