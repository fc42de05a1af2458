package pixelshader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gogpu/pixelshader/internal/color"
	"github.com/gogpu/pixelshader/internal/fixed"
)

// PresetSize is the size of a preset table: 256 output values for red,
// then green, then blue.
const PresetSize = color.PresetSize

// Color temperatures in Kelvin.
const (
	// TemperatureNeutral is the white point of white balance 0.
	TemperatureNeutral = 6500

	// TemperatureMin is the white point of white balance -1.
	TemperatureMin = 1000

	// TemperatureMax is the white point of white balance +1.
	TemperatureMax = 20000
)

// Shader is an ordered pipeline of effect kernels.
//
// Color adjustments (Saturation, Exposure, Contrast, Brightness,
// Temperature, WhiteBalance) update the last kernel when it is a color
// kernel without a preset and append a new one otherwise. Preset and
// Vignette always append.
// Kernels run in insertion order.
//
// Thread safety: a Shader is not safe for concurrent mutation. Once fully
// configured and prepared (see Prepare), it may be applied to different
// scanlines from several goroutines.
//
// A nil *Shader applies as a no-op; its mutators return ErrNilShader.
type Shader struct {
	kernels []*kernel

	monoMix [3]int
	workers int
}

// New creates an empty shader.
func New(opts ...Option) *Shader {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Shader{
		kernels: make([]*kernel, 0, 8),
		monoMix: o.monoMix,
		workers: o.workers,
	}
}

// Len returns the number of kernels in the pipeline.
func (s *Shader) Len() int {
	if s == nil {
		return 0
	}
	return len(s.kernels)
}

// Release drops every kernel together with its curves, presets and overlay
// references. The shader stays usable and empty.
func (s *Shader) Release() {
	if s == nil {
		return
	}
	for _, k := range s.kernels {
		k.release()
	}
	s.kernels = s.kernels[:0]
}

func (s *Shader) append(k *kernel) {
	s.kernels = append(s.kernels, k)
	Logger().Debug("pixelshader: kernel appended",
		"kind", k.kind, "index", len(s.kernels)-1)
}

// activeColor returns the color kernel that color adjustments apply to:
// the trailing kernel if it is an adjustment kernel, otherwise a newly
// appended one. Preset kernels are never merge targets, so adjustments
// made after a preset apply to its output.
func (s *Shader) activeColor() (*colorKernel, error) {
	if s == nil {
		return nil, ErrNilShader
	}
	if n := len(s.kernels); n > 0 {
		if last := s.kernels[n-1]; last.kind == kindColor && last.color.preset == nil {
			return &last.color, nil
		}
	}
	k := newColorKernel(s.monoMix)
	s.append(k)
	return &k.color, nil
}

// Saturation multiplies the saturation ratio of the active color kernel.
// 0 converts to gray, 1 leaves colors unchanged, above 1 intensifies them.
// Repeated calls compound.
func (s *Shader) Saturation(ratio float32) error {
	c, err := s.activeColor()
	if err != nil {
		return err
	}
	c.saturation = int(float32(c.saturation) * ratio)
	c.touch()
	return nil
}

// Exposure adds an exposure offset, in logistic stops, to the active color
// kernel. Repeated calls accumulate.
func (s *Shader) Exposure(delta float32) error {
	c, err := s.activeColor()
	if err != nil {
		return err
	}
	c.exposure += fixed.FromFloat(delta)
	c.touch()
	return nil
}

// Contrast adds to the contrast ratio of the active color kernel.
// The accumulated total is the ratio applied around mid gray: 1 keeps
// values, above 1 spreads them apart. A total of exactly 0 skips the step.
// Repeated calls accumulate.
func (s *Shader) Contrast(delta float32) error {
	c, err := s.activeColor()
	if err != nil {
		return err
	}
	c.contrast += fixed.FromFloat(delta)
	c.touch()
	return nil
}

// Brightness adds delta*255 to every channel. Repeated calls accumulate.
func (s *Shader) Brightness(delta float32) error {
	c, err := s.activeColor()
	if err != nil {
		return err
	}
	c.brightness += int(255 * delta)
	c.touch()
	return nil
}

// Temperature sets the white point of the active color kernel in Kelvin.
// Values <= 0 select TemperatureNeutral; other values are clamped to
// [TemperatureMin, TemperatureMax] and rounded.
func (s *Shader) Temperature(kelvin float32) error {
	c, err := s.activeColor()
	if err != nil {
		return err
	}
	c.temperature = clampTemperature(kelvin)
	c.touch()
	return nil
}

func clampTemperature(kelvin float32) int {
	switch {
	case kelvin <= 0:
		return TemperatureNeutral
	case kelvin < TemperatureMin:
		return TemperatureMin
	case kelvin > TemperatureMax:
		return TemperatureMax
	default:
		return int(float64(kelvin) + 0.5)
	}
}

// WhiteBalance sets the white point from a normalized value: -1 is
// TemperatureMin, 0 is TemperatureNeutral and +1 is TemperatureMax, with
// linear interpolation in between. Values outside [-1, 1] are clamped.
func (s *Shader) WhiteBalance(balance float32) error {
	return s.Temperature(whiteBalanceKelvin(balance))
}

func whiteBalanceKelvin(balance float32) float32 {
	if balance <= 0 {
		if balance <= -1 {
			return TemperatureMin
		}
		return TemperatureNeutral + balance*(TemperatureNeutral-TemperatureMin)
	}
	if balance >= 1 {
		return TemperatureMax
	}
	return TemperatureNeutral + balance*(TemperatureMax-TemperatureNeutral)
}

// Preset reads a PresetSize table from r and appends a color kernel that
// remaps every channel through it. Bytes past the table are not read.
//
// On error the pipeline is left unchanged.
func (s *Shader) Preset(r io.Reader) error {
	if s == nil {
		return ErrNilShader
	}
	if r == nil {
		return ErrNilReader
	}

	table := make([]byte, PresetSize)
	n, err := io.ReadFull(r, table)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			err = fmt.Errorf("%w: got %d of %d bytes", ErrPresetSize, n, PresetSize)
		} else {
			err = fmt.Errorf("pixelshader: read preset: %w", err)
		}
		Logger().Warn("pixelshader: preset rejected", "err", err)
		return err
	}

	k := newColorKernel(s.monoMix)
	k.color.preset = table
	k.color.touch()
	s.append(k)
	return nil
}

// PresetFile loads a preset table from a file. See Preset.
func (s *Shader) PresetFile(path string) error {
	if s == nil {
		return ErrNilShader
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("pixelshader: open preset: %w", err)
	}
	defer func() { _ = f.Close() }()

	return s.Preset(f)
}

// Vignette appends a kernel compositing overlay onto the image with mode.
// The overlay is stretched to the image by nearest row and column.
// The shader keeps a reference to overlay until Release.
func (s *Shader) Vignette(overlay Image, mode ComposeMode) error {
	if s == nil {
		return ErrNilShader
	}
	if overlay == nil {
		Logger().Warn("pixelshader: overlay rejected", "err", ErrNilImage)
		return ErrNilImage
	}
	if !mode.IsValid() {
		err := fmt.Errorf("%w: %d", ErrInvalidCompose, int(mode))
		Logger().Warn("pixelshader: overlay rejected", "err", err)
		return err
	}

	s.append(newVignetteKernel(overlay, mode))
	return nil
}

// Prepare builds every out-of-date curve now instead of on first use.
// A prepared shader can be applied from several goroutines until it is
// mutated again.
func (s *Shader) Prepare() error {
	if s == nil {
		return nil
	}
	for i, k := range s.kernels {
		if err := s.prepareKernel(i, k); err != nil {
			return err
		}
	}
	return nil
}

func (s *Shader) prepareKernel(i int, k *kernel) error {
	if k.kind != kindColor || !k.color.stale() {
		return nil
	}
	c := &k.color
	if err := c.rebuild(); err != nil {
		return fmt.Errorf("pixelshader: kernel %d: %w", i, err)
	}
	Logger().Debug("pixelshader: curve rebuilt",
		"kernel", i,
		"exposure", c.exposure,
		"contrast", c.contrast,
		"brightness", c.brightness,
		"temperature", c.temperature,
		"preset", c.preset != nil,
		"identity", c.curve == nil)
	return nil
}
