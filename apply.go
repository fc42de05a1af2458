package pixelshader

import (
	"context"
	"fmt"

	"github.com/gogpu/pixelshader/internal/blend"
	"github.com/gogpu/pixelshader/internal/fixed"
	"github.com/gogpu/pixelshader/internal/parallel"
)

// Apply runs every kernel, in order, on one scanline.
//
// buf holds width pixels of bpp bytes. The scanline is row imageY of an
// imageWidth x imageHeight image and starts at column imageX. Color kernels
// transform the width pixels; vignette kernels pick the overlay row from
// imageY and composite imageWidth-imageX pixels.
//
// The first failing kernel stops the pass. Kernels that ran before it have
// already modified buf, so its contents are unspecified after an error.
// A nil or empty shader is a no-op.
func (s *Shader) Apply(buf []byte, width, bpp, imageWidth, imageHeight, imageX, imageY int) error {
	if s == nil || len(s.kernels) == 0 {
		return nil
	}
	if err := s.checkBuffer(buf, width, bpp, imageWidth-imageX); err != nil {
		return err
	}

	for i, k := range s.kernels {
		var err error
		switch k.kind {
		case kindColor:
			err = s.colorScanline(i, k, buf, width, bpp)
		case kindVignette:
			err = vignetteScanline(&k.vignette, buf, bpp, imageWidth, imageHeight, imageX, imageY)
		case kindNone:
		default:
			err = fmt.Errorf("pixelshader: unknown kernel kind %d", k.kind)
		}
		if err != nil {
			Logger().Error("pixelshader: kernel failed",
				"kernel", i, "kind", k.kind, "row", imageY, "err", err)
			return err
		}
	}
	return nil
}

// checkBuffer verifies that buf covers every pixel a kernel will touch.
// Unsupported bpp values are left to the kernels to report.
func (s *Shader) checkBuffer(buf []byte, width, bpp, span int) error {
	if bpp <= 0 {
		return nil
	}
	need := 0
	for _, k := range s.kernels {
		switch {
		case k.kind == kindColor:
			need = max(need, width*bpp)
		case k.kind == kindVignette && k.vignette.overlay != nil:
			need = max(need, span*bpp)
		}
	}
	if len(buf) < need {
		return fmt.Errorf("%w: %d bytes, need %d", ErrBufferTooSmall, len(buf), need)
	}
	return nil
}

// colorScanline applies saturation and then the kernel's curve to width
// pixels. Alpha is not touched.
func (s *Shader) colorScanline(i int, k *kernel, buf []byte, width, bpp int) error {
	if bpp != 3 && bpp != 4 {
		return fmt.Errorf("%w: color kernel needs 3 or 4, got %d", ErrBytesPerPixel, bpp)
	}
	if err := s.prepareKernel(i, k); err != nil {
		return err
	}

	c := &k.color
	sat := c.saturation
	mix := c.monoMix
	curve := c.curve

	for x := range max(width, 0) {
		p := buf[x*bpp : x*bpp+3]
		r, g, b := int(p[0]), int(p[1]), int(p[2])

		if sat != fixed.One {
			lum := (r*mix[0] + g*mix[1] + b*mix[2]) >> fixed.Shift
			if sat <= fixed.Zero {
				l := int(fixed.ClampByte(lum))
				r, g, b = l, l, l
			} else {
				r = int(fixed.ClampByte(fixed.Mix(lum, r, sat)))
				g = int(fixed.ClampByte(fixed.Mix(lum, g, sat)))
				b = int(fixed.ClampByte(fixed.Mix(lum, b, sat)))
			}
		}

		if curve != nil {
			p[0], p[1], p[2] = curve.Lookup(uint8(r), uint8(g), uint8(b))
		} else {
			p[0], p[1], p[2] = uint8(r), uint8(g), uint8(b)
		}
	}
	return nil
}

// vignetteScanline composites the overlay row matching imageY onto buf.
// A kernel without an overlay does nothing.
func vignetteScanline(v *vignetteKernel, buf []byte, bpp, imageWidth, imageHeight, imageX, imageY int) error {
	if bpp <= 0 || bpp > 4 {
		return fmt.Errorf("%w: vignette kernel needs 1 to 4, got %d", ErrBytesPerPixel, bpp)
	}
	ov := v.overlay
	if ov == nil {
		return nil
	}

	if rl, ok := ov.(readLocker); ok {
		rl.RLock()
		defer rl.RUnlock()
	}

	oh := ov.Height()
	if oh <= 0 {
		return nil
	}
	row := overlayRow(imageY, imageHeight, oh)

	data := ov.Buffer()
	start := row * ov.Pitch()
	if start >= len(data) {
		return fmt.Errorf("%w: overlay row %d out of buffer", ErrBufferTooSmall, row)
	}

	if err := blend.ComposeLine(buf, bpp, imageWidth-imageX, data[start:], ov.Bpp(), ov.Width(), v.mode); err != nil {
		return fmt.Errorf("pixelshader: vignette: %w", err)
	}
	return nil
}

// overlayRow maps image row y to an overlay row by nearest scaling.
// Single-row images use overlay row 0.
func overlayRow(y, imageHeight, overlayHeight int) int {
	if imageHeight <= 1 {
		return 0
	}
	row := y * (overlayHeight - 1) / (imageHeight - 1)
	return max(0, min(row, overlayHeight-1))
}

// ApplyToImage runs the shader on every row of img while holding its
// exclusive lock. Rows are processed top to bottom and the first error
// stops the pass. A nil or empty shader is a no-op.
func (s *Shader) ApplyToImage(img Image) error {
	if s == nil || len(s.kernels) == 0 {
		return nil
	}
	if err := s.checkImage(img); err != nil {
		return err
	}

	if err := img.Lock(); err != nil {
		return fmt.Errorf("pixelshader: lock image: %w", err)
	}
	defer img.Unlock()

	buf, w, h, pitch, bpp := img.Buffer(), img.Width(), img.Height(), img.Pitch(), img.Bpp()
	for y := range h {
		if err := s.Apply(rowOf(buf, y, pitch), w, bpp, w, h, 0, y); err != nil {
			return fmt.Errorf("pixelshader: row %d: %w", y, err)
		}
	}

	Logger().Debug("pixelshader: image shaded",
		"width", w, "height", h, "kernels", len(s.kernels))
	return nil
}

// ApplyParallel is ApplyToImage with rows spread over worker goroutines.
// The shader is prepared first so that kernels are only read while rows
// run. Cancelling ctx stops rows that have not started and returns
// ctx.Err(); the image is then partially shaded.
func (s *Shader) ApplyParallel(ctx context.Context, img Image) error {
	if s == nil || len(s.kernels) == 0 {
		return nil
	}
	if err := s.checkImage(img); err != nil {
		return err
	}
	if err := s.Prepare(); err != nil {
		return err
	}

	if err := img.Lock(); err != nil {
		return fmt.Errorf("pixelshader: lock image: %w", err)
	}
	defer img.Unlock()

	pool := parallel.NewWorkerPool(s.workers)
	defer pool.Close()

	buf, w, h, pitch, bpp := img.Buffer(), img.Width(), img.Height(), img.Pitch(), img.Bpp()
	err := pool.Rows(ctx, h, func(y int) error {
		if err := s.Apply(rowOf(buf, y, pitch), w, bpp, w, h, 0, y); err != nil {
			return fmt.Errorf("pixelshader: row %d: %w", y, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	Logger().Debug("pixelshader: image shaded",
		"width", w, "height", h, "kernels", len(s.kernels), "workers", pool.Workers())
	return nil
}

func (s *Shader) checkImage(img Image) error {
	if img == nil {
		return ErrNilImage
	}
	for _, k := range s.kernels {
		if k.kind == kindVignette && sameImage(k.vignette.overlay, img) {
			return ErrSelfOverlay
		}
	}
	return nil
}

// rowOf returns row y of an image buffer, at most pitch bytes long.
func rowOf(buf []byte, y, pitch int) []byte {
	start := y * pitch
	if start >= len(buf) {
		return nil
	}
	return buf[start:min(start+pitch, len(buf))]
}
