// Package fixed provides 10-bit fixed-point arithmetic for the color kernels.
//
// A fixed-point value is a plain int scaled by 1024, so One represents 1.0
// and 512 represents 0.5. Multiplication truncates with an arithmetic right
// shift; no rounding is applied anywhere.
package fixed

const (
	// Shift is the number of fractional bits.
	Shift = 10

	// Zero is 0.0 in fixed point.
	Zero = 0

	// One is 1.0 in fixed point.
	One = 1 << Shift
)

// Int returns the integer part of x.
func Int(x int) int {
	return x >> Shift
}

// Frac returns the fractional bits of x.
func Frac(x int) int {
	return x & (One - 1)
}

// Mul multiplies two fixed-point values.
func Mul(x, y int) int {
	return (x * y) >> Shift
}

// Div divides x by y. The caller must ensure y != 0.
func Div(x, y int) int {
	return (x * One) / y
}

// Mix interpolates linearly between x and y.
// a is the fixed-point ratio: Zero yields x, One yields y.
// Ratios outside [Zero, One] extrapolate.
func Mix(x, y, a int) int {
	return (x*(One-a) + y*a) >> Shift
}

// ClampByte clamps n to [0, 255].
func ClampByte(n int) uint8 {
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}

// FromFloat converts f to fixed point, truncating toward zero.
func FromFloat(f float32) int {
	return int(f * One)
}
