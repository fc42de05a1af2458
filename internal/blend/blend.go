// Package blend implements the scanline compositing primitive used by
// vignette kernels.
//
// All operators work on straight (non-premultiplied) 8-bit RGBA. The
// destination pixel is modified in place; the overlay pixel is read only.
package blend

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMode is returned for an unknown compose mode.
var ErrInvalidMode = errors.New("blend: invalid compose mode")

// Mode selects how an overlay pixel is combined with a destination pixel.
type Mode int

const (
	// ModeReplace copies the overlay pixel, alpha included.
	ModeReplace Mode = iota
	// ModeOver composites the overlay over the destination.
	ModeOver
	// ModeUnder composites the destination over the overlay.
	ModeUnder
	// ModePlus adds all four channels, clamped.
	ModePlus
	// ModeMinus subtracts the overlay from the destination, clamped.
	ModeMinus
	// ModeAdd adds color channels (clamped) and alpha (wrapping).
	ModeAdd
	// ModeSubtract subtracts color channels (clamped) and alpha (wrapping).
	ModeSubtract
	// ModeDifference takes the absolute difference of every channel.
	ModeDifference
	// ModeBump copies overlay color and keeps destination alpha.
	ModeBump
	// ModeMap copies overlay color and multiplies the alphas.
	ModeMap
	// ModeMix averages every channel.
	ModeMix
	// ModeMult multiplies every channel.
	ModeMult
	// ModeLuminance is ModeOver using the overlay's mean intensity as alpha.
	ModeLuminance
	// ModeLuminanceInv is ModeOver using the inverted mean intensity as alpha.
	ModeLuminanceInv
	// ModeColorize tints the destination's luminance with the overlay color.
	ModeColorize

	modeCount
)

var modeNames = [modeCount]string{
	ModeReplace:      "replace",
	ModeOver:         "over",
	ModeUnder:        "under",
	ModePlus:         "plus",
	ModeMinus:        "minus",
	ModeAdd:          "add",
	ModeSubtract:     "subtract",
	ModeDifference:   "difference",
	ModeBump:         "bump",
	ModeMap:          "map",
	ModeMix:          "mix",
	ModeMult:         "mult",
	ModeLuminance:    "luminance",
	ModeLuminanceInv: "luminanceinv",
	ModeColorize:     "colorize",
}

// IsValid reports whether m is a known mode.
func (m Mode) IsValid() bool {
	return m >= 0 && m < modeCount
}

// String returns the lower-case name of the mode.
func (m Mode) String() string {
	if !m.IsValid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode returns the mode with the given name. Matching ignores case,
// and "-" or "_" separators.
func ParseMode(name string) (Mode, error) {
	key := strings.ToLower(name)
	key = strings.NewReplacer("-", "", "_", "").Replace(key)
	for m, n := range modeNames {
		if n == key {
			return Mode(m), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, name)
}

// Modes returns every known mode in declaration order.
func Modes() []Mode {
	out := make([]Mode, 0, modeCount)
	for m := range modeCount {
		out = append(out, m)
	}
	return out
}

// ComposeFunc combines an overlay pixel (s*) with a destination pixel (d*)
// and returns the new destination pixel.
type ComposeFunc func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

// GetComposeFunc returns the operator for mode, or nil for an unknown mode.
func GetComposeFunc(mode Mode) ComposeFunc {
	switch mode {
	case ModeReplace:
		return composeReplace
	case ModeOver:
		return composeOver
	case ModeUnder:
		return composeUnder
	case ModePlus:
		return composePlus
	case ModeMinus:
		return composeMinus
	case ModeAdd:
		return composeAdd
	case ModeSubtract:
		return composeSubtract
	case ModeDifference:
		return composeDifference
	case ModeBump:
		return composeBump
	case ModeMap:
		return composeMap
	case ModeMix:
		return composeMix
	case ModeMult:
		return composeMult
	case ModeLuminance:
		return composeLuminance
	case ModeLuminanceInv:
		return composeLuminanceInv
	case ModeColorize:
		return composeColorize
	default:
		return nil
	}
}
