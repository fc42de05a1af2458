// Package recipe describes a pixelshader pipeline as a YAML document.
//
// A recipe lists steps in pipeline order. Each step names exactly one
// operation:
//
//	luminance: [306, 601, 117]  # optional desaturation weights
//	workers: 4                  # optional, for ApplyParallel
//	steps:
//	  - exposure: 0.5
//	  - contrast: 1.2
//	  - whitebalance: -0.2
//	  - preset: presets/film.lut
//	  - vignette:
//	      image: vignette.png
//	      mode: over
//
// Relative file paths are resolved against the directory of the recipe
// file.
package recipe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/pixelshader"
	"github.com/gogpu/pixelshader/bitmap"
	"github.com/gogpu/pixelshader/internal/cache"
)

// Errors returned while reading or building a recipe.
var (
	// ErrInvalidStep is returned for a step that names zero or several
	// operations.
	ErrInvalidStep = errors.New("recipe: step must name exactly one operation")

	// ErrLuminance is returned when luminance does not hold three weights.
	ErrLuminance = errors.New("recipe: luminance needs 3 weights")
)

// DefaultMode is the compose mode used by vignette steps without one.
const DefaultMode = "over"

// Recipe is an ordered list of pipeline steps.
type Recipe struct {
	Luminance []int  `yaml:"luminance,omitempty"`
	Workers   int    `yaml:"workers,omitempty"`
	Steps     []Step `yaml:"steps"`

	// BaseDir resolves relative preset and image paths. Load sets it to the
	// recipe's directory.
	BaseDir string `yaml:"-"`
}

// Step is one pipeline operation. Exactly one field is set.
type Step struct {
	Saturation   *float32  `yaml:"saturation,omitempty"`
	Exposure     *float32  `yaml:"exposure,omitempty"`
	Contrast     *float32  `yaml:"contrast,omitempty"`
	Brightness   *float32  `yaml:"brightness,omitempty"`
	Temperature  *float32  `yaml:"temperature,omitempty"`
	WhiteBalance *float32  `yaml:"whitebalance,omitempty"`
	Preset       string    `yaml:"preset,omitempty"`
	Vignette     *Vignette `yaml:"vignette,omitempty"`
}

// Vignette attaches an overlay image.
type Vignette struct {
	Image string `yaml:"image"`
	Mode  string `yaml:"mode,omitempty"`
}

// Load reads and validates a recipe file.
func Load(path string) (*Recipe, error) {
	b, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("recipe: read: %w", err)
	}
	r, err := Parse(b)
	if err != nil {
		return nil, err
	}
	r.BaseDir = filepath.Dir(path)
	return r, nil
}

// Parse decodes and validates a recipe. Unknown keys are an error.
func Parse(data []byte) (*Recipe, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var r Recipe
	if err := dec.Decode(&r); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("recipe: parse: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Save writes the recipe as YAML.
func (r *Recipe) Save(path string) error {
	b, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("recipe: marshal: %w", err)
	}
	return os.WriteFile(path, b, 0o644)
}

// Validate checks every step without touching the file system.
func (r *Recipe) Validate() error {
	if r.Luminance != nil && len(r.Luminance) != 3 {
		return fmt.Errorf("%w, got %d", ErrLuminance, len(r.Luminance))
	}
	for i, s := range r.Steps {
		if err := s.validate(); err != nil {
			return fmt.Errorf("recipe: step %d: %w", i, err)
		}
	}
	return nil
}

// Build creates a shader and applies every step in order. opts are applied
// after the recipe's own luminance and workers settings.
func (r *Recipe) Build(opts ...pixelshader.Option) (*pixelshader.Shader, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	var all []pixelshader.Option
	if r.Luminance != nil {
		all = append(all, pixelshader.WithLuminanceWeights(r.Luminance[0], r.Luminance[1], r.Luminance[2]))
	}
	if r.Workers != 0 {
		all = append(all, pixelshader.WithWorkers(r.Workers))
	}
	s := pixelshader.New(append(all, opts...)...)

	a := newAssets()
	for i, step := range r.Steps {
		if err := r.apply(s, a, step); err != nil {
			s.Release()
			return nil, fmt.Errorf("recipe: step %d (%s): %w", i, step.Op(), err)
		}
	}

	st := a.overlays.Stats()
	pixelshader.Logger().Debug("recipe: shader built",
		"steps", len(r.Steps), "kernels", s.Len(),
		"overlays", st.Len, "overlay_hits", st.Hits)
	return s, nil
}

// assets shares files referenced by several steps of one build. Overlays
// are read-only during application, so kernels may share one bitmap.
type assets struct {
	overlays *cache.Cache[string, *bitmap.Bitmap]
	presets  *cache.Cache[string, []byte]
}

func newAssets() *assets {
	return &assets{
		overlays: cache.New[string, *bitmap.Bitmap](0),
		presets:  cache.New[string, []byte](0),
	}
}

func (a *assets) overlay(path string) (*bitmap.Bitmap, error) {
	return a.overlays.Load(filepath.Clean(path), func() (*bitmap.Bitmap, error) {
		return bitmap.Load(path)
	})
}

func (a *assets) preset(path string) ([]byte, error) {
	return a.presets.Load(filepath.Clean(path), func() ([]byte, error) {
		b, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("recipe: open preset: %w", err)
		}
		return b, nil
	})
}

func (r *Recipe) apply(s *pixelshader.Shader, a *assets, step Step) error {
	switch {
	case step.Saturation != nil:
		return s.Saturation(*step.Saturation)
	case step.Exposure != nil:
		return s.Exposure(*step.Exposure)
	case step.Contrast != nil:
		return s.Contrast(*step.Contrast)
	case step.Brightness != nil:
		return s.Brightness(*step.Brightness)
	case step.Temperature != nil:
		return s.Temperature(*step.Temperature)
	case step.WhiteBalance != nil:
		return s.WhiteBalance(*step.WhiteBalance)
	case step.Preset != "":
		table, err := a.preset(r.Resolve(step.Preset))
		if err != nil {
			return err
		}
		return s.Preset(bytes.NewReader(table))
	case step.Vignette != nil:
		mode, err := pixelshader.ParseComposeMode(step.Vignette.mode())
		if err != nil {
			return err
		}
		overlay, err := a.overlay(r.Resolve(step.Vignette.Image))
		if err != nil {
			return err
		}
		return s.Vignette(overlay, mode)
	default:
		return ErrInvalidStep
	}
}

// Resolve returns path joined to BaseDir unless it is absolute.
func (r *Recipe) Resolve(path string) string {
	if filepath.IsAbs(path) || r.BaseDir == "" {
		return path
	}
	return filepath.Join(r.BaseDir, path)
}

// Op returns the name of the step's operation, or "" if none is set.
func (s Step) Op() string {
	switch {
	case s.Saturation != nil:
		return "saturation"
	case s.Exposure != nil:
		return "exposure"
	case s.Contrast != nil:
		return "contrast"
	case s.Brightness != nil:
		return "brightness"
	case s.Temperature != nil:
		return "temperature"
	case s.WhiteBalance != nil:
		return "whitebalance"
	case s.Preset != "":
		return "preset"
	case s.Vignette != nil:
		return "vignette"
	default:
		return ""
	}
}

func (s Step) validate() error {
	n := 0
	for _, set := range []bool{
		s.Saturation != nil,
		s.Exposure != nil,
		s.Contrast != nil,
		s.Brightness != nil,
		s.Temperature != nil,
		s.WhiteBalance != nil,
		s.Preset != "",
		s.Vignette != nil,
	} {
		if set {
			n++
		}
	}
	if n != 1 {
		return fmt.Errorf("%w, got %d", ErrInvalidStep, n)
	}

	if v := s.Vignette; v != nil {
		if v.Image == "" {
			return errors.New("vignette needs an image")
		}
		if _, err := pixelshader.ParseComposeMode(v.mode()); err != nil {
			return err
		}
	}
	return nil
}

func (v *Vignette) mode() string {
	if v.Mode == "" {
		return DefaultMode
	}
	return v.Mode
}

// Saturation returns a saturation step.
func Saturation(v float32) Step { return Step{Saturation: &v} }

// Exposure returns an exposure step.
func Exposure(v float32) Step { return Step{Exposure: &v} }

// Contrast returns a contrast step.
func Contrast(v float32) Step { return Step{Contrast: &v} }

// Brightness returns a brightness step.
func Brightness(v float32) Step { return Step{Brightness: &v} }

// Temperature returns a temperature step.
func Temperature(v float32) Step { return Step{Temperature: &v} }

// WhiteBalance returns a white balance step.
func WhiteBalance(v float32) Step { return Step{WhiteBalance: &v} }

// Preset returns a preset step.
func Preset(path string) Step { return Step{Preset: path} }

// VignetteStep returns a vignette step.
func VignetteStep(image, mode string) Step {
	return Step{Vignette: &Vignette{Image: image, Mode: mode}}
}
