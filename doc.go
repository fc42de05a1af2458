// Package pixelshader applies composable per-pixel effects to raster images.
//
// # Overview
//
// A [Shader] is an ordered pipeline of effect kernels. Color kernels adjust
// saturation, exposure, contrast, brightness and white balance, or remap
// channels through a preset table. Vignette kernels blend a second image
// onto every scanline. Kernels run in the order they were added.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/pixelshader"
//	    "github.com/gogpu/pixelshader/bitmap"
//	)
//
//	img, _ := bitmap.Load("photo.jpg")
//	mask, _ := bitmap.Load("vignette.png")
//
//	s := pixelshader.New()
//	s.Exposure(0.5)
//	s.Contrast(1.2)
//	s.WhiteBalance(-0.2)
//	s.Vignette(mask, pixelshader.ComposeOver)
//
//	s.ApplyToImage(img)
//	img.Save("out.png")
//
// # Merging rule
//
// Color adjustments update the last kernel when it is a color kernel
// without a preset and append a new one otherwise, so consecutive
// adjustments collapse into a single curve. Preset and Vignette always
// append, so an adjustment made after a preset is applied on top of the
// preset's output.
//
// # Curves
//
// Each color kernel caches a 3x256 lookup table built from its exposure,
// white balance, brightness, contrast and preset, in that order. The table
// is rebuilt lazily on the first scanline after a change, or eagerly by
// [Shader.Prepare].
//
// # Concurrency
//
// Configure a shader from one goroutine. After [Shader.Prepare] it can be
// applied to different scanlines concurrently; [Shader.ApplyParallel] does
// this for a whole image.
//
// # Fixed point
//
// Ratios are stored with a 10-bit fraction (1024 = 1.0) and multiplied with
// truncation, so results are reproducible bit for bit across platforms.
package pixelshader

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
