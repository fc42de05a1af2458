package bitmap

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	// Decoders registered with image.Decode.
	_ "golang.org/x/image/webp"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when a file extension has no encoder.
	ErrUnsupportedFormat = errors.New("bitmap: unsupported format")
)

// DefaultJPEGQuality is the quality Save uses for .jpg and .jpeg files.
const DefaultJPEGQuality = 90

// Load reads and decodes an image file.
// Supported formats: PNG, JPEG, GIF, BMP, TIFF, WebP.
func Load(path string) (*Bitmap, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("bitmap: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// Decode decodes an image from r, detecting the format from its header.
// The result is always FormatRGBA8.
func Decode(r io.Reader) (*Bitmap, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("bitmap: decode: %w", err)
	}
	b := FromImage(img)
	if b == nil {
		return nil, ErrInvalidDimensions
	}
	return b, nil
}

// FromImage copies a standard library image into a new RGBA8 bitmap with
// straight alpha. Returns nil for an empty image.
func FromImage(img image.Image) *Bitmap {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	b, err := New(width, height, FormatRGBA8)
	if err != nil {
		return nil
	}

	// Fast path: NRGBA has the same layout.
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := range height {
			start := (y+bounds.Min.Y-nrgba.Rect.Min.Y)*nrgba.Stride + (bounds.Min.X-nrgba.Rect.Min.X)*4
			copy(b.Row(y), nrgba.Pix[start:start+width*4])
		}
		return b
	}

	// Everything else is converted (and un-premultiplied) by draw.
	dst := &image.NRGBA{
		Pix:    b.data,
		Stride: b.stride,
		Rect:   image.Rect(0, 0, width, height),
	}
	draw.Copy(dst, image.Point{}, img, bounds, draw.Src, nil)
	return b
}

// ToImage converts the bitmap to a standard library image.
// Gray8 returns *image.Gray; every other format returns *image.NRGBA.
func (b *Bitmap) ToImage() image.Image {
	rect := image.Rect(0, 0, b.width, b.height)

	switch b.format {
	case FormatGray8:
		gray := image.NewGray(rect)
		for y := range b.height {
			copy(gray.Pix[y*gray.Stride:], b.Row(y))
		}
		return gray

	case FormatRGBA8:
		nrgba := image.NewNRGBA(rect)
		for y := range b.height {
			copy(nrgba.Pix[y*nrgba.Stride:], b.Row(y))
		}
		return nrgba

	default:
		nrgba := image.NewNRGBA(rect)
		for y := range b.height {
			for x := range b.width {
				r, g, bl, a := b.GetRGBA(x, y)
				off := y*nrgba.Stride + x*4
				nrgba.Pix[off] = r
				nrgba.Pix[off+1] = g
				nrgba.Pix[off+2] = bl
				nrgba.Pix[off+3] = a
			}
		}
		return nrgba
	}
}

// Save encodes the bitmap to a file, choosing the codec from the extension:
// .png, .jpg/.jpeg, .gif, .bmp, .tif/.tiff.
func (b *Bitmap) Save(path string) error {
	enc, err := encoderFor(path)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("bitmap: create file: %w", err)
	}

	if err := enc(f, b.ToImage()); err != nil {
		_ = f.Close()
		return fmt.Errorf("bitmap: encode %s: %w", filepath.Ext(path), err)
	}

	return f.Close()
}

type encodeFunc func(io.Writer, image.Image) error

func encoderFor(path string) (encodeFunc, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png":
		return png.Encode, nil
	case ".jpg", ".jpeg":
		return func(w io.Writer, m image.Image) error {
			return jpeg.Encode(w, m, &jpeg.Options{Quality: DefaultJPEGQuality})
		}, nil
	case ".gif":
		return func(w io.Writer, m image.Image) error {
			return gif.Encode(w, m, nil)
		}, nil
	case ".bmp":
		return bmp.Encode, nil
	case ".tif", ".tiff":
		return func(w io.Writer, m image.Image) error {
			return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// EncodePNG encodes the bitmap as PNG to w.
func (b *Bitmap) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, b.ToImage()); err != nil {
		return fmt.Errorf("bitmap: encode PNG: %w", err)
	}
	return nil
}

// EncodeJPEG encodes the bitmap as JPEG with the given quality (1-100).
func (b *Bitmap) EncodeJPEG(w io.Writer, quality int) error {
	quality = max(1, min(quality, 100))
	if err := jpeg.Encode(w, b.ToImage(), &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("bitmap: encode JPEG: %w", err)
	}
	return nil
}
