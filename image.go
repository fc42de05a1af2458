package pixelshader

import (
	"fmt"
	"reflect"

	"github.com/gogpu/pixelshader/internal/blend"
)

// Image is a lockable pixel buffer. Rows start every Pitch bytes in Buffer
// and hold Width pixels of Bpp bytes each. *bitmap.Bitmap implements it.
//
// Lock grants exclusive access for the duration of a whole-image pass.
type Image interface {
	Lock() error
	Unlock()
	Buffer() []byte
	Width() int
	Height() int
	Pitch() int
	Bpp() int
}

// readLocker is implemented by images that support shared read locks.
// Vignette overlays are read-locked while a row is composited.
type readLocker interface {
	RLock()
	RUnlock()
}

// sameImage reports whether a and b are the same image value.
func sameImage(a, b Image) bool {
	if a == nil || b == nil {
		return false
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// ComposeMode selects how a vignette overlay is blended into the image.
type ComposeMode = blend.Mode

// Compose modes. Overlay (s) and destination (d) use straight alpha.
const (
	// ComposeReplace copies the overlay pixel.
	ComposeReplace = blend.ModeReplace

	// ComposeOver is standard alpha compositing of the overlay over the image.
	ComposeOver = blend.ModeOver

	// ComposeUnder composites the image over the overlay.
	ComposeUnder = blend.ModeUnder

	// ComposePlus adds every channel, clamped.
	ComposePlus = blend.ModePlus

	// ComposeMinus subtracts the overlay from the image, clamped.
	ComposeMinus = blend.ModeMinus

	// ComposeAdd adds color channels (clamped) and alpha (wrapping).
	ComposeAdd = blend.ModeAdd

	// ComposeSubtract subtracts color channels (clamped) and alpha (wrapping).
	ComposeSubtract = blend.ModeSubtract

	// ComposeDifference is |d - s| for every channel.
	ComposeDifference = blend.ModeDifference

	// ComposeBump copies overlay color and keeps image alpha.
	ComposeBump = blend.ModeBump

	// ComposeMap copies overlay color and multiplies alphas.
	ComposeMap = blend.ModeMap

	// ComposeMix averages overlay and image.
	ComposeMix = blend.ModeMix

	// ComposeMult multiplies overlay and image.
	ComposeMult = blend.ModeMult

	// ComposeLuminance uses the overlay's brightness as its coverage.
	ComposeLuminance = blend.ModeLuminance

	// ComposeLuminanceInv uses the overlay's darkness as its coverage.
	ComposeLuminanceInv = blend.ModeLuminanceInv

	// ComposeColorize tints the image's luminance with the overlay color.
	ComposeColorize = blend.ModeColorize
)

// ParseComposeMode returns the compose mode with the given name, such as
// "over" or "luminance-inv". Matching ignores case.
func ParseComposeMode(name string) (ComposeMode, error) {
	m, err := blend.ParseMode(name)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCompose, name)
	}
	return m, nil
}

// ComposeModes returns every compose mode.
func ComposeModes() []ComposeMode {
	return blend.Modes()
}
