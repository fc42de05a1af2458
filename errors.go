package pixelshader

import "errors"

// Errors returned by Shader methods.
var (
	// ErrNilShader is returned by mutators called on a nil *Shader.
	ErrNilShader = errors.New("pixelshader: nil shader")

	// ErrNilImage is returned when a vignette overlay or target image is nil.
	ErrNilImage = errors.New("pixelshader: nil image")

	// ErrNilReader is returned by Preset for a nil source.
	ErrNilReader = errors.New("pixelshader: nil preset source")

	// ErrPresetSize is returned when a preset source holds fewer than
	// PresetSize bytes.
	ErrPresetSize = errors.New("pixelshader: short preset table")

	// ErrBytesPerPixel is returned when a scanline's bytes per pixel is not
	// supported by a kernel (3 or 4 for color, 1 to 4 for vignette).
	ErrBytesPerPixel = errors.New("pixelshader: bytes per pixel out of range")

	// ErrBufferTooSmall is returned when a scanline buffer is shorter than
	// the pixels it is said to hold.
	ErrBufferTooSmall = errors.New("pixelshader: scanline buffer too small")

	// ErrInvalidCompose is returned by Vignette for an unknown compose mode.
	ErrInvalidCompose = errors.New("pixelshader: invalid compose mode")

	// ErrSelfOverlay is returned when an image is shaded by a pipeline that
	// uses the same image as a vignette overlay.
	ErrSelfOverlay = errors.New("pixelshader: image is its own vignette overlay")
)
