package base64

import (
	"encoding/base64"
	"errors"
)

const (
	StdPadding = base64.StdPadding // standard padding '='
	NoPadding  = base64.NoPadding  // no padding
)

var (
	// ErrInvalidEncoding is returned when the Base64-encoded
	// input contains a character outside of the alphabet or has
	// malformed padding.
	ErrInvalidEncoding = errors.New("base64: invalid encoding")

	// ErrInvalidLength is returned when the length of the input
	// or output cannot be satisfied exactly.
	ErrInvalidLength = errors.New("base64: invalid length")

	// ErrInvalidText is returned by Decoder.DecodeString when the
	// decoded bytes are not valid UTF-8.
	ErrInvalidText = errors.New("base64: decoded string is not valid UTF-8")
)

const (
	stdAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	urlAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	bcryptAlphabet = "./ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	cryptAlphabet  = "./0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
)

// StdEncoding is the standard Base64 encoding.
//
// It uses the following table:
//
//    ABCDEFGHIJKLMNOPQRSTUVWXYZ
//    abcdefghijklmnopqrstuvwxyz
//    0123456789
//    +/
//
var StdEncoding = NewEncoding(stdAlphabet)

// RawStdEncoding is the unpadded standard Base64 encoding.
//
// It uses the same table as StdEncoding.
var RawStdEncoding = StdEncoding.WithPadding(NoPadding)

// URLEncoding is the base64url Base64 encoding.
//
// It uses the following table:
//
//    ABCDEFGHIJKLMNOPQRSTUVWXYZ
//    abcdefghijklmnopqrstuvwxyz
//    0123456789
//    -_
//
var URLEncoding = NewEncoding(urlAlphabet)

// RawURLEncoding is the unpadded base64url Base64 encoding.
//
// It uses the same table as URLEncoding.
var RawURLEncoding = URLEncoding.WithPadding(NoPadding)

// BcryptEncoding is the unpadded Base64 encoding used by bcrypt.
//
// It uses the following table:
//
//    ./
//    ABCDEFGHIJKLMNOPQRSTUVWXYZ
//    abcdefghijklmnopqrstuvwxyz
//    0123456789
//
var BcryptEncoding = NewEncoding(bcryptAlphabet).WithPadding(NoPadding)

// CryptEncoding is the unpadded Base64 encoding used by crypt(3)
// password hashes.
//
// It uses the following table:
//
//    ./
//    0123456789
//    ABCDEFGHIJKLMNOPQRSTUVWXYZ
//    abcdefghijklmnopqrstuvwxyz
//
var CryptEncoding = NewEncoding(cryptAlphabet).WithPadding(NoPadding)

// Encoding is a particular Base64 encoding.
//
// An Encoding is immutable and safe for concurrent use.
//
// See the package docs for a comparison with encoding/base64.
type Encoding struct {
	alpha   *alphabet
	padChar rune
	strict  bool
}

// NewEncoding returns a padded Encoding defined by the given
// alphabet, which must be a 64-byte string of distinct,
// printable ASCII characters that does not contain the padding
// character '='.
//
// Like encoding/base64, the result uses StdPadding. Use
// WithPadding to change it.
func NewEncoding(alphabet string) *Encoding {
	e := &Encoding{
		alpha:   newAlphabet(alphabet),
		padChar: NoPadding,
	}
	return e.WithPadding(StdPadding)
}

// Strict returns an identical Encoding that operates in "strict"
// mode where all padding bits MUST be zero (see section 3.5 of
// RFC 4648 and golang.org/issues/15656).
func (e Encoding) Strict() *Encoding {
	e.strict = true
	return &e
}

// WithPadding returns an identical Encoding that uses the
// specified padding character, or NoPadding.
//
// The padding character must be less than 0xff and cannot be
// '\r', '\n', or a character in the encoding's alphabet.
func (e Encoding) WithPadding(r rune) *Encoding {
	if r != NoPadding {
		switch {
		case r == '\r', r == '\n', r < 0, r > 0xff:
			panic("base64: invalid padding")
		case e.alpha.contains(int(r)):
			panic("base64: padding contained in alphabet")
		}
	}
	e.padChar = r
	return &e
}

// Padded reports whether the Encoding uses a padding character.
func (e *Encoding) Padded() bool {
	return e.padChar != NoPadding
}

// EncodedLen returns the size in bytes of the Base64 encoding
// of n source bytes.
func (e *Encoding) EncodedLen(n int) int {
	if e.padChar == NoPadding {
		return n/3*4 + (n%3*8+5)/6
	}
	return n/3*4 + (n%3+2)/3*4
}

// DecodedLen returns the maximum length in bytes of n bytes of
// Base64-encoded data.
func (e *Encoding) DecodedLen(n int) int {
	if e.padChar == NoPadding {
		return n/4*3 + n%4*6/8
	}
	return n / 4 * 3
}

// Encode encodes src, writing EncodedLen(len(src)) bytes
// to dst.
//
// Encode runs in constant time for the length of src.
func (e *Encoding) Encode(dst, src []byte) {
	if len(src) == 0 {
		return
	}
	n := e.alpha.encodeBlocks(dst, src)
	if e.padChar != NoPadding {
		// The number of padding characters only depends on
		// len(src).
		for ; n%4 != 0; n++ {
			dst[n] = byte(e.padChar)
		}
	}
}

// AppendEncode appends the Base64-encoded src to dst and returns
// the extended buffer.
//
// AppendEncode runs in constant time for the length of src.
func (e *Encoding) AppendEncode(dst, src []byte) []byte {
	n := e.EncodedLen(len(src))
	if cap(dst)-len(dst) < n {
		buf := make([]byte, len(dst), len(dst)+n)
		copy(buf, dst)
		dst = buf
	}
	e.Encode(dst[len(dst):len(dst)+n], src)
	return dst[:len(dst)+n]
}

// EncodeToString encodes src.
//
// EncodeToString runs in constant time for the length of src.
func (e *Encoding) EncodeToString(src []byte) string {
	dst := make([]byte, e.EncodedLen(len(src)))
	e.Encode(dst, src)
	return string(dst)
}

// Decode decodes src, writing at most DecodedLen(len(src)) bytes
// to dst.
//
// It returns the number of bytes written to dst. If src contains
// a character outside of the alphabet or its padding is
// malformed, Decode returns ErrInvalidEncoding. If src has an
// impossible length or dst is too short, Decode returns
// ErrInvalidLength.
//
// When the only problem is an invalid character Decode still
// writes every decoded byte to dst and returns their count.
//
// Decode runs in constant time for the length of src.
//
// See the package docs for a comparison with encoding/base64.
func (e *Encoding) Decode(dst, src []byte) (int, error) {
	src, err := e.stripPadding(src)
	if err != nil {
		return 0, err
	}
	return e.decodeBlocks(dst, src)
}

// DecodeString decodes src.
//
// It returns all bytes written to dst, even when src contains
// invalid Base64. See Decode for the errors it returns.
//
// DecodeString runs in constant time for the length of src.
//
// See the package docs for a comparison with encoding/base64.
func (e *Encoding) DecodeString(src string) ([]byte, error) {
	dst := make([]byte, e.DecodedLen(len(src)))
	n, err := e.Decode(dst, []byte(src))
	return dst[:n], err
}
