package blend

// Operators on straight alpha. s* is the overlay pixel, d* the destination.

func composeReplace(sr, sg, sb, sa, _, _, _, _ byte) (byte, byte, byte, byte) {
	return sr, sg, sb, sa
}

// composeOver is the classic "over" operator with overlay alpha sa:
//
//	a_o = a_s + (1-a_s)*a_d
//	c_o = (a_s*c_s + (1-a_s)*a_d*c_d) / a_o
func composeOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return overWithAlpha(int(sa), sr, sg, sb, dr, dg, db, da)
}

func composeUnder(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return overWithAlpha(int(da), dr, dg, db, sr, sg, sb, sa)
}

func composePlus(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return addClamp(dr, sr), addClamp(dg, sg), addClamp(db, sb), addClamp(da, sa)
}

func composeMinus(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return subClamp(dr, sr), subClamp(dg, sg), subClamp(db, sb), subClamp(da, sa)
}

// composeAdd clamps color but lets alpha wrap modulo 256.
func composeAdd(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return addClamp(dr, sr), addClamp(dg, sg), addClamp(db, sb), da + sa
}

// composeSubtract clamps color but lets alpha wrap modulo 256.
func composeSubtract(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return subClamp(dr, sr), subClamp(dg, sg), subClamp(db, sb), da - sa
}

func composeDifference(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return absDiff(dr, sr), absDiff(dg, sg), absDiff(db, sb), absDiff(da, sa)
}

func composeBump(sr, sg, sb, _, _, _, _, da byte) (byte, byte, byte, byte) {
	return sr, sg, sb, da
}

func composeMap(sr, sg, sb, sa, _, _, _, da byte) (byte, byte, byte, byte) {
	return sr, sg, sb, byte(int(da) * int(sa) / 255)
}

func composeMix(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return avg(dr, sr), avg(dg, sg), avg(db, sb), avg(da, sa)
}

func composeMult(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return mulShift8(dr, sr), mulShift8(dg, sg), mulShift8(db, sb), mulShift8(da, sa)
}

// composeLuminance is "over" with the overlay's mean intensity as alpha:
// bright overlay pixels cover, dark ones let the destination through.
func composeLuminance(sr, sg, sb, _, dr, dg, db, da byte) (byte, byte, byte, byte) {
	alpha := (int(sr) + int(sg) + int(sb)) / 3
	return overWithAlpha(alpha, sr, sg, sb, dr, dg, db, da)
}

func composeLuminanceInv(sr, sg, sb, _, dr, dg, db, da byte) (byte, byte, byte, byte) {
	alpha := 255 - (int(sr)+int(sg)+int(sb))/3
	return overWithAlpha(alpha, sr, sg, sb, dr, dg, db, da)
}

// composeColorize scales the overlay color by the destination's Rec. 709
// luminance and keeps destination alpha.
func composeColorize(sr, sg, sb, _, dr, dg, db, da byte) (byte, byte, byte, byte) {
	// 218 + 732 + 74 = 1024
	lum := (218*int(dr) + 732*int(dg) + 74*int(db)) >> 10
	return byte(lum * int(sr) / 255), byte(lum * int(sg) / 255), byte(lum * int(sb) / 255), da
}

// overWithAlpha composites color (sr,sg,sb) with coverage alpha over the
// destination. A fully transparent result is transparent black.
func overWithAlpha(alpha int, sr, sg, sb, dr, dg, db, da byte) (byte, byte, byte, byte) {
	alphaOut := alpha + (255-alpha)*int(da)/255
	if alphaOut <= 0 {
		return 0, 0, 0, 0
	}
	alphaMult := alphaOut - alpha

	return minByte((alpha*int(sr)+alphaMult*int(dr))/alphaOut),
		minByte((alpha*int(sg)+alphaMult*int(dg))/alphaOut),
		minByte((alpha*int(sb)+alphaMult*int(db))/alphaOut),
		minByte(alphaOut)
}
