package base64

import "encoding/binary"

// encodeBlocks encodes src into dst without padding and returns
// the number of characters written, which is always
// RawStdEncoding.EncodedLen(len(src)).
//
// A trailing partial block of 1 or 2 bytes is implicitly padded
// with zero bits and produces 2 or 3 characters.
func (a *alphabet) encodeBlocks(dst, src []byte) (n int) {
	for len(src) >= 3 {
		_ = dst[n+3] // bounds check hint

		v := int(src[0])<<16 | int(src[1])<<8 | int(src[2])
		dst[n+0] = a.encode6(v >> 18 & 0x3f)
		dst[n+1] = a.encode6(v >> 12 & 0x3f)
		dst[n+2] = a.encode6(v >> 6 & 0x3f)
		dst[n+3] = a.encode6(v & 0x3f)

		src = src[3:]
		n += 4
	}

	switch len(src) {
	case 2:
		v := int(src[0])<<16 | int(src[1])<<8
		dst[n+2] = a.encode6(v >> 6 & 0x3f)
		dst[n+1] = a.encode6(v >> 12 & 0x3f)
		dst[n+0] = a.encode6(v >> 18 & 0x3f)
		n += 3
	case 1:
		v := int(src[0]) << 16
		dst[n+1] = a.encode6(v >> 12 & 0x3f)
		dst[n+0] = a.encode6(v >> 18 & 0x3f)
		n += 2
	}
	return n
}

// decodedLen returns the exact number of bytes encoded by n
// unpadded characters.
func decodedLen(n int) (int, error) {
	switch n % 4 {
	case 1:
		// A partial block is either 2 or 3 characters.
		return 0, ErrInvalidLength
	default:
		return n/4*3 + n%4*3/4, nil
	}
}

// decodeBlocks decodes the unpadded src into dst and returns the
// number of bytes written.
//
// If src has an invalid length or dst is too short, decodeBlocks
// returns ErrInvalidLength without writing to dst. Otherwise,
// every character in src is decoded, even after an invalid one
// has been seen, and ErrInvalidEncoding is returned at the end.
// Only the fact that src is corrupt is revealed, not where.
func (e *Encoding) decodeBlocks(dst, src []byte) (n int, err error) {
	want, err := decodedLen(len(src))
	if err != nil {
		return 0, err
	}
	if len(dst) < want {
		return 0, ErrInvalidLength
	}

	a := e.alpha

	// failed is negative if any character is invalid since
	// decode6 returns -1 for invalid characters and [0, 63]
	// otherwise.
	var failed int
	for len(src) >= 4 && len(dst)-n >= 4 {
		c0 := a.decode6(int(src[0]))
		c1 := a.decode6(int(src[1]))
		c2 := a.decode6(int(src[2]))
		c3 := a.decode6(int(src[3]))

		// Writes one extra byte, which is either overwritten by
		// the next block or lies past the decoded data.
		c := uint32(c0)<<26 |
			uint32(c1)<<20 |
			uint32(c2)<<14 |
			uint32(c3)<<8
		binary.BigEndian.PutUint32(dst[n:], c)

		failed |= c0 | c1 | c2 | c3

		src = src[4:]
		n += 3
	}

	for len(src) >= 4 {
		c0 := a.decode6(int(src[0]))
		c1 := a.decode6(int(src[1]))
		c2 := a.decode6(int(src[2]))
		c3 := a.decode6(int(src[3]))

		dst[n+0] = byte(c0<<2 | c1>>4)
		dst[n+1] = byte(c1<<4 | c2>>2)
		dst[n+2] = byte(c2<<6 | c3)

		failed |= c0 | c1 | c2 | c3

		src = src[4:]
		n += 3
	}

	switch len(src) {
	case 3:
		c0 := a.decode6(int(src[0]))
		c1 := a.decode6(int(src[1]))
		c2 := a.decode6(int(src[2]))

		dst[n+0] = byte(c0<<2 | c1>>4)
		dst[n+1] = byte(c1<<4 | c2>>2)

		failed |= c0 | c1 | c2
		if e.strict {
			// Fail if either of the 2 discarded bits is set.
			failed |= -(c2 & 0x3) >> 8
		}
		n += 2
	case 2:
		c0 := a.decode6(int(src[0]))
		c1 := a.decode6(int(src[1]))

		dst[n+0] = byte(c0<<2 | c1>>4)

		failed |= c0 | c1
		if e.strict {
			// Fail if any of the 4 discarded bits is set.
			failed |= -(c1 & 0xf) >> 8
		}
		n++
	}

	if failed < 0 {
		err = ErrInvalidEncoding
	}
	return n, err
}
