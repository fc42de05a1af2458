package bitmap

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		height  int
		format  Format
		wantErr error
	}{
		{"rgba", 10, 5, FormatRGBA8, nil},
		{"gray", 1, 1, FormatGray8, nil},
		{"zero width", 0, 5, FormatRGBA8, ErrInvalidDimensions},
		{"negative height", 3, -1, FormatRGB8, ErrInvalidDimensions},
		{"unknown format", 3, 3, Format(99), ErrInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := New(tt.width, tt.height, tt.format)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if b.Width() != tt.width || b.Height() != tt.height {
				t.Errorf("size = %dx%d, want %dx%d", b.Width(), b.Height(), tt.width, tt.height)
			}
			if b.Pitch() != tt.format.RowBytes(tt.width) {
				t.Errorf("Pitch() = %d, want %d", b.Pitch(), tt.format.RowBytes(tt.width))
			}
			if b.Bpp() != tt.format.BytesPerPixel() {
				t.Errorf("Bpp() = %d", b.Bpp())
			}
			if len(b.Buffer()) != tt.format.ImageBytes(tt.width, tt.height) {
				t.Errorf("len(Buffer()) = %d", len(b.Buffer()))
			}
		})
	}
}

func TestNewWithStride(t *testing.T) {
	b, err := NewWithStride(3, 2, FormatRGB8, 12)
	if err != nil {
		t.Fatalf("NewWithStride() error = %v", err)
	}
	if b.Pitch() != 12 || len(b.Buffer()) != 24 {
		t.Errorf("Pitch() = %d, len = %d; want 12, 24", b.Pitch(), len(b.Buffer()))
	}
	if len(b.Row(1)) != 9 {
		t.Errorf("len(Row(1)) = %d, want 9", len(b.Row(1)))
	}

	if _, err := NewWithStride(3, 2, FormatRGB8, 8); !errors.Is(err, ErrInvalidStride) {
		t.Errorf("short pitch error = %v, want ErrInvalidStride", err)
	}
}

func TestFromRaw(t *testing.T) {
	data := make([]byte, 40)
	b, err := FromRaw(data, 2, 2, FormatRGBA8, 12)
	if err != nil {
		t.Fatalf("FromRaw() error = %v", err)
	}
	if err := b.SetRGBA(1, 1, 1, 2, 3, 4); err != nil {
		t.Fatal(err)
	}
	// Pixel (1,1) lives at 12 + 4 in the caller's slice.
	if data[16] != 1 || data[19] != 4 {
		t.Errorf("FromRaw should not copy: data[16:20] = %v", data[16:20])
	}

	if _, err := FromRaw(data[:10], 2, 2, FormatRGBA8, 8); !errors.Is(err, ErrDataTooSmall) {
		t.Errorf("short data error = %v, want ErrDataTooSmall", err)
	}
}

func TestBitmap_GetSetRGBA(t *testing.T) {
	tests := []struct {
		format     Format
		r, g, b, a uint8
		wr, wg, wb uint8
		wa         uint8
	}{
		{FormatRGBA8, 10, 20, 30, 40, 10, 20, 30, 40},
		{FormatRGB8, 10, 20, 30, 40, 10, 20, 30, 255},
		{FormatGray8, 100, 100, 100, 7, 100, 100, 100, 255},
		{FormatGrayAlpha8, 255, 0, 0, 128, 76, 76, 76, 128},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			bm, _ := New(2, 2, tt.format)
			if err := bm.SetRGBA(1, 0, tt.r, tt.g, tt.b, tt.a); err != nil {
				t.Fatalf("SetRGBA() error = %v", err)
			}
			r, g, b, a := bm.GetRGBA(1, 0)
			if r != tt.wr || g != tt.wg || b != tt.wb || a != tt.wa {
				t.Errorf("GetRGBA() = (%d,%d,%d,%d), want (%d,%d,%d,%d)",
					r, g, b, a, tt.wr, tt.wg, tt.wb, tt.wa)
			}
		})
	}
}

func TestBitmap_OutOfBounds(t *testing.T) {
	b, _ := New(2, 2, FormatRGBA8)
	if err := b.SetRGBA(2, 0, 1, 1, 1, 1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("SetRGBA() error = %v, want ErrOutOfBounds", err)
	}
	if r, g, bl, a := b.GetRGBA(-1, 0); r|g|bl|a != 0 {
		t.Error("GetRGBA out of bounds should return zero")
	}
	if b.Row(2) != nil || b.Row(-1) != nil {
		t.Error("Row out of bounds should return nil")
	}
}

func TestBitmap_Fill(t *testing.T) {
	b, _ := NewWithStride(3, 3, FormatRGBA8, 16)
	b.Fill(9, 8, 7, 6)
	for y := range 3 {
		for x := range 3 {
			if r, g, bl, a := b.GetRGBA(x, y); r != 9 || g != 8 || bl != 7 || a != 6 {
				t.Fatalf("pixel (%d,%d) = (%d,%d,%d,%d)", x, y, r, g, bl, a)
			}
		}
	}
	// Padding stays untouched.
	if b.Buffer()[12] != 0 {
		t.Error("Fill wrote into row padding")
	}

	b.Clear()
	if r, _, _, a := b.GetRGBA(1, 1); r != 0 || a != 0 {
		t.Error("Clear left data behind")
	}
}

func TestBitmap_Clone(t *testing.T) {
	b, _ := New(2, 1, FormatRGB8)
	b.Fill(1, 2, 3, 255)

	c := b.Clone()
	_ = c.SetRGBA(0, 0, 50, 50, 50, 255)

	if r, _, _, _ := b.GetRGBA(0, 0); r != 1 {
		t.Error("Clone shares data with the original")
	}
	if c.Format() != b.Format() || c.Pitch() != b.Pitch() {
		t.Error("Clone changed geometry")
	}
}

func TestBitmap_Locking(t *testing.T) {
	b, _ := New(1, 1, FormatRGBA8)
	if err := b.Lock(); err != nil {
		t.Fatalf("Lock() error = %v", err)
	}
	b.Unlock()

	b.RLock()
	b.RLock()
	b.RUnlock()
	b.RUnlock()

	if err := b.Lock(); err != nil {
		t.Fatalf("Lock() after readers error = %v", err)
	}
	b.Unlock()
}
