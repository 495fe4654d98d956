// Package subtle implements the constant-time primitives shared by
// the codecs in this module.
//
// The mask helpers return either 0 or -1 (all bits set) so that
// callers can combine them with & and | instead of branching.
package subtle

import "crypto/subtle"

// ConstantTimeByteEq returns 1 if x == y and 0 otherwise.
func ConstantTimeByteEq(x, y uint8) int {
	return subtle.ConstantTimeByteEq(x, y)
}

// InRangeMask returns -1 if lo <= c <= hi and 0 otherwise.
//
// c, lo, and hi must be in [0, 255].
func InRangeMask(c, lo, hi int) int {
	// lo-1-c is negative iff c >= lo and c-hi-1 is negative iff
	// c <= hi. Both are in [-256, 255], so the AND is negative
	// iff both are, and shifting by 8 smears the sign bit over
	// the whole word.
	return ((lo - 1 - c) & (c - hi - 1)) >> 8
}

// GreaterMask returns -1 if v > t and 0 otherwise.
//
// |v - t| must be less than 256.
func GreaterMask(v, t int) int {
	return (t - v) >> 8
}
