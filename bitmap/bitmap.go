// Package bitmap provides lockable in-memory pixel buffers.
//
// A Bitmap stores rows of 1 to 4 bytes per pixel in a contiguous byte slice
// with an optional row pitch. It satisfies the image contract consumed by
// the pixelshader package: exclusive Lock/Unlock around writes, shared
// RLock/RUnlock for readers such as vignette overlays.
package bitmap

import (
	"errors"
	"sync"
)

// Common errors for bitmap operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("bitmap: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("bitmap: invalid format")

	// ErrInvalidStride is returned when pitch is less than minimum required.
	ErrInvalidStride = errors.New("bitmap: pitch too small for width")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("bitmap: data buffer too small")

	// ErrOutOfBounds is returned when pixel coordinates are outside bitmap bounds.
	ErrOutOfBounds = errors.New("bitmap: coordinates out of bounds")
)

// Bitmap is a pixel buffer guarded by a read/write lock.
//
// Thread safety: the accessors themselves do not lock. Writers hold Lock
// while touching Buffer or Row contents, readers hold RLock.
type Bitmap struct {
	mu sync.RWMutex

	data   []byte
	width  int
	height int
	stride int
	format Format
}

// New creates a zeroed bitmap with the given dimensions and format.
func New(width, height int, format Format) (*Bitmap, error) {
	return NewWithStride(width, height, format, format.RowBytes(width))
}

// NewWithStride creates a zeroed bitmap with a custom row pitch.
// Pitch must be at least format.RowBytes(width).
func NewWithStride(width, height int, format Format, stride int) (*Bitmap, error) {
	if err := validate(width, height, format, stride); err != nil {
		return nil, err
	}
	return &Bitmap{
		data:   make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

// FromRaw wraps existing pixel data without copying.
// The caller must keep data alive for the lifetime of the Bitmap.
func FromRaw(data []byte, width, height int, format Format, stride int) (*Bitmap, error) {
	if err := validate(width, height, format, stride); err != nil {
		return nil, err
	}
	required := stride * height
	if len(data) < required {
		return nil, ErrDataTooSmall
	}
	return &Bitmap{
		data:   data[:required],
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

func validate(width, height int, format Format, stride int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidDimensions
	}
	if !format.IsValid() {
		return ErrInvalidFormat
	}
	if stride < format.RowBytes(width) {
		return ErrInvalidStride
	}
	return nil
}

// Clone creates a deep copy of the bitmap. The lock state is not copied.
func (b *Bitmap) Clone() *Bitmap {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data := make([]byte, len(b.data))
	copy(data, b.data)

	return &Bitmap{
		data:   data,
		width:  b.width,
		height: b.height,
		stride: b.stride,
		format: b.format,
	}
}

// Lock acquires exclusive access to the pixel data.
// It never fails; the error return lets other images report lock failures.
func (b *Bitmap) Lock() error {
	b.mu.Lock()
	return nil
}

// Unlock releases exclusive access.
func (b *Bitmap) Unlock() {
	b.mu.Unlock()
}

// RLock acquires shared read access to the pixel data.
func (b *Bitmap) RLock() {
	b.mu.RLock()
}

// RUnlock releases shared read access.
func (b *Bitmap) RUnlock() {
	b.mu.RUnlock()
}

// Buffer returns the raw pixel data. Row y starts at y*Pitch().
func (b *Bitmap) Buffer() []byte {
	return b.data
}

// Width returns the bitmap width in pixels.
func (b *Bitmap) Width() int {
	return b.width
}

// Height returns the bitmap height in pixels.
func (b *Bitmap) Height() int {
	return b.height
}

// Pitch returns the number of bytes per row (including padding).
func (b *Bitmap) Pitch() int {
	return b.stride
}

// Bpp returns the number of bytes per pixel.
func (b *Bitmap) Bpp() int {
	return b.format.BytesPerPixel()
}

// Format returns the pixel format.
func (b *Bitmap) Format() Format {
	return b.format
}

// Row returns the pixel bytes of row y without padding.
// Returns nil if y is out of bounds.
func (b *Bitmap) Row(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	start := y * b.stride
	return b.data[start : start+b.format.RowBytes(b.width)]
}

// PixelOffset returns the byte offset of pixel (x, y) in the data slice.
// Returns -1 if coordinates are out of bounds.
func (b *Bitmap) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.stride + x*b.format.BytesPerPixel()
}

// GetRGBA returns the color at (x, y) as straight (r, g, b, a).
// Gray formats return r=g=b; formats without alpha return a=255.
// Returns (0,0,0,0) if coordinates are out of bounds.
func (b *Bitmap) GetRGBA(x, y int) (r, g, bl, a uint8) {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return 0, 0, 0, 0
	}
	p := b.data[off:]

	switch b.format {
	case FormatGray8:
		return p[0], p[0], p[0], 255
	case FormatGrayAlpha8:
		return p[0], p[0], p[0], p[1]
	case FormatRGB8:
		return p[0], p[1], p[2], 255
	case FormatRGBA8:
		return p[0], p[1], p[2], p[3]
	default:
		return 0, 0, 0, 0
	}
}

// SetRGBA sets the color at (x, y).
// Gray formats store the luminance 0.299*R + 0.587*G + 0.114*B.
func (b *Bitmap) SetRGBA(x, y int, r, g, bl, a uint8) error {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return ErrOutOfBounds
	}
	p := b.data[off:]

	switch b.format {
	case FormatGray8:
		p[0] = luminance(r, g, bl)
	case FormatGrayAlpha8:
		p[0] = luminance(r, g, bl)
		p[1] = a
	case FormatRGB8:
		p[0], p[1], p[2] = r, g, bl
	case FormatRGBA8:
		p[0], p[1], p[2], p[3] = r, g, bl, a
	}
	return nil
}

func luminance(r, g, b uint8) uint8 {
	return uint8((int(r)*299 + int(g)*587 + int(b)*114) / 1000)
}

// Clear sets all pixels to zero.
func (b *Bitmap) Clear() {
	clear(b.data)
}

// Fill sets all pixels to the given color.
func (b *Bitmap) Fill(r, g, bl, a uint8) {
	if b.height == 0 {
		return
	}
	// Fill the first row then copy it down.
	for x := range b.width {
		_ = b.SetRGBA(x, 0, r, g, bl, a)
	}
	first := b.Row(0)
	for y := 1; y < b.height; y++ {
		copy(b.Row(y), first)
	}
}
