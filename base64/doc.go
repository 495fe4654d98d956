// Package base64 implements constant-time base64 encoding and
// decoding as specified by RFC 4648.
//
// Characters are converted with bitwise arithmetic over the
// alphabet's public character ranges, never with lookup tables
// or branches on the encoded data. This matters when Base64
// carries key material, such as SSH or password hash encodings.
// Timing still depends on the length of the input.
//
// Variants
//
// The standard and URL-safe alphabets are provided in padded
// and unpadded forms, as are the unpadded alphabets used by
// bcrypt and crypt(3). NewEncoding builds other alphabets.
//
// Incremental decoding
//
// Decoder decodes a Base64 slice into caller-sized chunks, each
// of which is filled exactly or the call fails. This suits
// length-prefixed formats like the SSH wire format:
//
//    d, err := base64.NewDecoder(base64.StdEncoding, key)
//    ...
//    var buf [20]byte
//    alg, err := d.DecodeString(buf[:])
//
// Comparison to encoding/base64
//
// This package is almost, but not exactly a drop-in replacement
// for encoding/base64.
//
// Unlike encoding/base64, this package rejects the newline
// characters '\r' and '\n'.
//
// Unlike encoding/base64, this package does not return partial
// Base64-encoded data. For example:
//
//    src := []byte("aGVsb?8=")
//    base64.StdEncoding.Decode(dst, src) // 3, CorruptInputError(5)
//    StdEncoding.Decode(dst, src)        // 5, ErrInvalidEncoding
//
// Given the input "aGVsb?8=" encoding/base64 will return (3,
// CorruptInputError(5)). However, this package will return (5,
// ErrInvalidEncoding).
//
// These restrictions may be lifted in the future.
package base64
