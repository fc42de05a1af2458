package blend

// addClamp adds two bytes and clamps to 255.
func addClamp(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}

// subClamp subtracts b from a, clamping to 0.
func subClamp(a, b byte) byte {
	if b >= a {
		return 0
	}
	return a - b
}

// absDiff returns |a - b|.
func absDiff(a, b byte) byte {
	if a >= b {
		return a - b
	}
	return b - a
}

// avg returns the truncated mean of a and b.
func avg(a, b byte) byte {
	return byte((uint16(a) + uint16(b)) / 2)
}

// mulShift8 approximates a*b/255 as (a*b + 128) >> 8. The result is at
// most one below the exact quotient (255*255 maps to 254).
func mulShift8(a, b byte) byte {
	return byte((uint16(a)*uint16(b) + 128) >> 8)
}

// minByte clamps a non-negative int to 255.
func minByte(x int) byte {
	if x > 255 {
		return 255
	}
	return byte(x)
}
