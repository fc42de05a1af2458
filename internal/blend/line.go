package blend

import (
	"errors"
	"fmt"
)

// Scanline errors.
var (
	// ErrBytesPerPixel is returned when a row's bytes per pixel is not 1-4.
	ErrBytesPerPixel = errors.New("blend: bytes per pixel out of range")

	// ErrShortRow is returned when a row slice holds fewer pixels than stated.
	ErrShortRow = errors.New("blend: row buffer too small")
)

// ComposeLine blends the overlay row src into the destination row dst in
// place, for width destination pixels.
//
// Both rows may use 1 (gray), 2 (gray+alpha), 3 (RGB) or 4 (RGBA) bytes per
// pixel. Missing alpha reads as opaque. When srcWidth differs from width the
// overlay is sampled by nearest column: i*(srcWidth-1)/(width-1).
// A non-positive width is a no-op.
func ComposeLine(dst []byte, dstBpp, width int, src []byte, srcBpp, srcWidth int, mode Mode) error {
	fn := GetComposeFunc(mode)
	if fn == nil {
		return fmt.Errorf("%w: %d", ErrInvalidMode, int(mode))
	}
	if !validBpp(dstBpp) || !validBpp(srcBpp) {
		return fmt.Errorf("%w: dst=%d src=%d", ErrBytesPerPixel, dstBpp, srcBpp)
	}
	if width <= 0 {
		return nil
	}
	if srcWidth <= 0 || len(src) < srcWidth*srcBpp {
		return fmt.Errorf("%w: overlay has %d bytes for %d pixels", ErrShortRow, len(src), srcWidth)
	}
	if len(dst) < width*dstBpp {
		return fmt.Errorf("%w: destination has %d bytes for %d pixels", ErrShortRow, len(dst), width)
	}

	for i := range width {
		si := overlayColumn(i, width, srcWidth)

		sr, sg, sb, sa := loadPixel(src[si*srcBpp:], srcBpp)
		d := dst[i*dstBpp:]
		dr, dg, db, da := loadPixel(d, dstBpp)

		r, g, b, a := fn(sr, sg, sb, sa, dr, dg, db, da)
		storePixel(d, dstBpp, r, g, b, a)
	}

	return nil
}

// overlayColumn maps destination column i to an overlay column.
func overlayColumn(i, width, srcWidth int) int {
	if srcWidth == width {
		return i
	}
	if width <= 1 {
		return 0
	}
	return i * (srcWidth - 1) / (width - 1)
}

func validBpp(bpp int) bool {
	return bpp >= 1 && bpp <= 4
}

// loadPixel expands one pixel of the given layout to RGBA.
func loadPixel(p []byte, bpp int) (r, g, b, a byte) {
	switch bpp {
	case 1:
		return p[0], p[0], p[0], 255
	case 2:
		return p[0], p[0], p[0], p[1]
	case 3:
		return p[0], p[1], p[2], 255
	default:
		return p[0], p[1], p[2], p[3]
	}
}

// storePixel writes RGBA back in the given layout. Gray layouts store the
// rounded mean of the color channels.
func storePixel(p []byte, bpp int, r, g, b, a byte) {
	switch bpp {
	case 1:
		p[0] = grayOf(r, g, b)
	case 2:
		p[0] = grayOf(r, g, b)
		p[1] = a
	case 3:
		p[0], p[1], p[2] = r, g, b
	default:
		p[0], p[1], p[2], p[3] = r, g, b, a
	}
}

func grayOf(r, g, b byte) byte {
	return byte((int(r) + int(g) + int(b) + 1) / 3)
}
