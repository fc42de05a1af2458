package blend

import (
	"errors"
	"testing"
)

type rgba struct{ r, g, b, a byte }

func apply(mode Mode, src, dst rgba) rgba {
	fn := GetComposeFunc(mode)
	r, g, b, a := fn(src.r, src.g, src.b, src.a, dst.r, dst.g, dst.b, dst.a)
	return rgba{r, g, b, a}
}

func TestComposeOperators(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		src  rgba
		dst  rgba
		want rgba
	}{
		{"replace", ModeReplace, rgba{1, 2, 3, 4}, rgba{9, 9, 9, 9}, rgba{1, 2, 3, 4}},
		{"over half red on blue", ModeOver, rgba{255, 0, 0, 128}, rgba{0, 0, 255, 255}, rgba{128, 0, 127, 255}},
		{"over transparent overlay", ModeOver, rgba{255, 255, 255, 0}, rgba{10, 20, 30, 255}, rgba{10, 20, 30, 255}},
		{"over opaque overlay", ModeOver, rgba{10, 20, 30, 255}, rgba{200, 200, 200, 255}, rgba{10, 20, 30, 255}},
		{"over both transparent", ModeOver, rgba{10, 20, 30, 0}, rgba{40, 50, 60, 0}, rgba{0, 0, 0, 0}},
		{"under half blue over red", ModeUnder, rgba{255, 0, 0, 255}, rgba{0, 0, 255, 128}, rgba{127, 0, 128, 255}},
		{"plus clamps", ModePlus, rgba{200, 10, 0, 100}, rgba{100, 10, 0, 200}, rgba{255, 20, 0, 255}},
		{"minus clamps", ModeMinus, rgba{200, 10, 0, 100}, rgba{100, 30, 0, 200}, rgba{0, 20, 0, 100}},
		{"add wraps alpha", ModeAdd, rgba{200, 0, 0, 100}, rgba{100, 0, 0, 200}, rgba{255, 0, 0, 44}},
		{"subtract wraps alpha", ModeSubtract, rgba{50, 0, 0, 200}, rgba{100, 0, 0, 100}, rgba{50, 0, 0, 156}},
		{"difference", ModeDifference, rgba{10, 200, 0, 255}, rgba{200, 10, 0, 0}, rgba{190, 190, 0, 255}},
		{"bump keeps dst alpha", ModeBump, rgba{1, 2, 3, 4}, rgba{9, 9, 9, 99}, rgba{1, 2, 3, 99}},
		{"map multiplies alpha", ModeMap, rgba{1, 2, 3, 128}, rgba{9, 9, 9, 200}, rgba{1, 2, 3, 100}},
		{"mix averages", ModeMix, rgba{255, 0, 100, 255}, rgba{0, 0, 51, 0}, rgba{127, 0, 75, 127}},
		{"mult", ModeMult, rgba{128, 255, 0, 255}, rgba{128, 128, 255, 255}, rgba{64, 128, 0, 254}},
		{"luminance white covers", ModeLuminance, rgba{255, 255, 255, 0}, rgba{10, 20, 30, 255}, rgba{255, 255, 255, 255}},
		{"luminance black passes", ModeLuminance, rgba{0, 0, 0, 255}, rgba{10, 20, 30, 255}, rgba{10, 20, 30, 255}},
		{"luminance inverse black covers", ModeLuminanceInv, rgba{0, 0, 0, 0}, rgba{10, 20, 30, 255}, rgba{0, 0, 0, 255}},
		{"luminance inverse white passes", ModeLuminanceInv, rgba{255, 255, 255, 0}, rgba{10, 20, 30, 255}, rgba{10, 20, 30, 255}},
		{"colorize gray", ModeColorize, rgba{255, 128, 0, 0}, rgba{100, 100, 100, 200}, rgba{100, 50, 0, 200}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := apply(tt.mode, tt.src, tt.dst); got != tt.want {
				t.Errorf("%v: got %+v, want %+v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestGetComposeFunc_AllModes(t *testing.T) {
	for _, m := range Modes() {
		if GetComposeFunc(m) == nil {
			t.Errorf("GetComposeFunc(%v) = nil", m)
		}
	}
	if GetComposeFunc(Mode(-1)) != nil || GetComposeFunc(modeCount) != nil {
		t.Error("GetComposeFunc should return nil for unknown modes")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"over", ModeOver},
		{"OVER", ModeOver},
		{"luminance-inv", ModeLuminanceInv},
		{"Luminance_Inv", ModeLuminanceInv},
		{"colorize", ModeColorize},
		{"replace", ModeReplace},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if err != nil {
			t.Errorf("ParseMode(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseMode("screen"); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("ParseMode(screen) error = %v, want ErrInvalidMode", err)
	}
}

func TestMode_StringRoundTrip(t *testing.T) {
	for _, m := range Modes() {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", m.String(), got, err, m)
		}
	}
	if s := Mode(99).String(); s != "Mode(99)" {
		t.Errorf("Mode(99).String() = %q", s)
	}
}
