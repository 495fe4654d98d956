package base64

import "github.com/ericlagergren/base64ct/internal/subtle"

// decodePadding returns the length of the padded src with its
// trailing padding removed.
//
// The only valid final blocks are "xxxx", "xxx=", and "xx==".
// bad is non-zero if the final block has any other layout.
//
// The length of src is public. Which characters precede the
// padding is not, so they are only inspected in constant time.
func decodePadding(src []byte, padChar byte) (n, bad int, err error) {
	if len(src)%4 != 0 {
		// Padded Base64 must be a multiple of 4.
		return 0, 0, ErrInvalidEncoding
	}
	if len(src) == 0 {
		return 0, 0, nil
	}
	p0 := subtle.ConstantTimeByteEq(src[len(src)-2], padChar)
	p1 := subtle.ConstantTimeByteEq(src[len(src)-1], padChar)

	// "xx=x" is the only layout where a padding character is
	// followed by something else.
	bad = p0 & (p1 ^ 1)
	return len(src) - p0 - p1, bad, nil
}

// validatePadding reports, in constant time, whether the
// unpadded src contains a padding character.
//
// It returns 1 if it does and 0 otherwise.
//
// Padding characters are never in the alphabet, so decoding
// rejects them too, but only once the decoder reaches them.
func validatePadding(src []byte, padChar byte) int {
	var bad int
	for _, c := range src {
		bad |= subtle.ConstantTimeByteEq(c, padChar)
	}
	return bad
}

// stripPadding validates the padding in src and returns the
// unpadded input.
func (e *Encoding) stripPadding(src []byte) ([]byte, error) {
	if e.padChar == NoPadding {
		return src, nil
	}
	n, bad, err := decodePadding(src, byte(e.padChar))
	if err != nil {
		return nil, err
	}
	bad |= validatePadding(src[:n], byte(e.padChar))
	if bad != 0 {
		return nil, ErrInvalidEncoding
	}
	return src[:n], nil
}
