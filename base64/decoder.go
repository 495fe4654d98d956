package base64

import (
	"encoding/binary"
	"math"
	"unicode/utf8"

	"github.com/ericlagergren/base64ct/internal/subtle"
)

// Decoder incrementally decodes a contiguous (non-newline
// delimited) Base64-encoded byte slice.
//
// Each call to Decode fills its output buffer exactly or fails,
// which lets callers decode fixed-size fields into small
// buffers. At most one partially consumed block is buffered
// internally. The input is never copied.
//
// A Decoder must not be used concurrently. Once a call to Decode
// fails the input is known to be invalid and the Decoder should
// be discarded.
type Decoder struct {
	enc *Encoding
	// src is the borrowed input. src[off:end] has not been
	// decoded yet. Padding has been stripped from end.
	src []byte
	off int
	end int
	buf blockBuffer
}

// NewDecoder returns a Decoder that decodes src using enc.
//
// If enc is padded, the padding is validated and stripped up
// front: malformed padding returns ErrInvalidEncoding. Input
// that cannot be a whole number of bytes returns
// ErrInvalidLength. Invalid characters are reported by Decode.
func NewDecoder(enc *Encoding, src []byte) (*Decoder, error) {
	unpadded, err := enc.stripPadding(src)
	if err != nil {
		return nil, err
	}
	if _, err := decodedLen(len(unpadded)); err != nil {
		return nil, err
	}
	return &Decoder{
		enc: enc,
		src: src,
		end: len(unpadded),
	}, nil
}

// Decode fills out with decoded data and returns it.
//
// Enough input must remain to fill all of out. Otherwise, or if
// the Decoder is already finished, Decode returns
// ErrInvalidLength. If the input contains a character outside of
// the alphabet, Decode returns ErrInvalidEncoding.
//
// Decode may write to out even when it returns an error.
func (d *Decoder) Decode(out []byte) ([]byte, error) {
	if d.IsFinished() {
		return nil, ErrInvalidLength
	}

	// Drain the leftovers from the previous call.
	n := d.buf.read(out)

	// Decode as many whole blocks as possible directly into out.
	rem := len(out) - n
	aligned := rem - rem%3
	if aligned/3 > math.MaxInt/4 {
		return nil, ErrInvalidLength
	}
	inLen := aligned / 3 * 4
	if inLen > d.end-d.off {
		return nil, ErrInvalidLength
	}
	if inLen > 0 {
		m, err := d.enc.decodeBlocks(out[n:n+aligned], d.src[d.off:d.off+inLen])
		if err != nil {
			return nil, err
		}
		n += m
		d.off += inLen
	}

	// Whatever is left of out is smaller than a block, so decode
	// the next block (or the final partial block) into the
	// buffer and take what fits.
	if n < len(out) && d.off < d.end {
		blk := d.src[d.off:min(d.off+4, d.end)]
		if err := d.buf.fill(d.enc, blk); err != nil {
			return nil, err
		}
		d.off += len(blk)
		n += d.buf.read(out[n:])
	}

	if n != len(out) {
		return nil, ErrInvalidLength
	}
	return out, nil
}

// DecodeUint32 decodes a big-endian uint32, as used by the SSH
// wire format.
func (d *Decoder) DecodeUint32() (uint32, error) {
	var b [4]byte
	if _, err := d.Decode(b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

// DecodeString decodes a uint32 length-prefixed string into buf
// and returns it.
//
// If the length prefix is larger than buf DecodeString returns
// ErrInvalidLength. If the string is not valid UTF-8 it returns
// ErrInvalidText.
func (d *Decoder) DecodeString(buf []byte) (string, error) {
	n, err := d.DecodeUint32()
	if err != nil {
		return "", err
	}
	if uint64(n) > uint64(len(buf)) {
		return "", ErrInvalidLength
	}
	if n == 0 {
		return "", nil
	}
	p, err := d.Decode(buf[:n])
	if err != nil {
		return "", err
	}
	if !utf8.Valid(p) {
		return "", ErrInvalidText
	}
	return string(p), nil
}

// RemainingLen returns the number of decoded bytes that have
// not been returned yet.
func (d *Decoder) RemainingLen() int {
	m := d.end - d.off
	return d.buf.len() + m/4*3 + m%4*3/4
}

// IsFinished reports whether all of the input has been decoded
// and returned.
func (d *Decoder) IsFinished() bool {
	return d.off == d.end && d.buf.empty()
}

// blockBuffer holds the decoded form of a single block that has
// not been completely read.
type blockBuffer struct {
	decoded  [3]byte
	length   int // position <= length <= 3
	position int
}

// fill decodes the block src, which is at most 4 characters,
// into the buffer.
//
// The buffer must be empty.
func (b *blockBuffer) fill(enc *Encoding, src []byte) error {
	n, err := enc.decodeBlocks(b.decoded[:], src)
	if err != nil {
		subtle.Wipe(b.decoded[:])
		return err
	}
	b.length = n
	b.position = 0
	return nil
}

// read copies as much of the buffer as fits into p and returns
// the number of bytes copied.
func (b *blockBuffer) read(p []byte) int {
	n := copy(p, b.decoded[b.position:b.length])
	b.position += n
	if b.empty() {
		subtle.Wipe(b.decoded[:])
	}
	return n
}

func (b *blockBuffer) len() int {
	return b.length - b.position
}

func (b *blockBuffer) empty() bool {
	return b.position == b.length
}
