package sshkey

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ericlagergren/base64ct/base64"
)

// ErrFormat is returned when a public key is malformed.
var ErrFormat = errors.New("sshkey: malformed public key")

// PublicKey is an OpenSSH public key.
type PublicKey struct {
	// Algorithm is the key's algorithm.
	Algorithm Algorithm
	// Key is the algorithm-specific key data in wire form. It
	// excludes the algorithm identifier and, for ECDSA keys,
	// the curve identifier.
	Key []byte
	// Comment is the free-form text after the key.
	Comment string
}

// ParseAuthorizedKey parses a public key in the OpenSSH
// authorized_keys format:
//
//    <algorithm> <base64 key> [comment]
//
// Options before the algorithm are not supported.
//
// The algorithm in the first field must match the one encoded
// in the key.
func ParseAuthorizedKey(line []byte) (*PublicKey, error) {
	algField, rest := nextField(line)
	keyField, rest := nextField(rest)
	if len(algField) == 0 || len(keyField) == 0 {
		return nil, ErrFormat
	}

	alg, err := ParseAlgorithm(string(algField))
	if err != nil {
		return nil, err
	}

	d, err := base64.NewDecoder(base64.StdEncoding, keyField)
	if err != nil {
		return nil, fmt.Errorf("sshkey: invalid key: %w", err)
	}
	encAlg, err := DecodeAlgorithm(d)
	if err != nil {
		return nil, err
	}
	if encAlg != alg {
		return nil, fmt.Errorf("%w: %s key labeled as %s", ErrAlgorithm, encAlg, alg)
	}
	if want, ok := alg.Curve(); ok {
		curve, err := DecodeEcdsaCurve(d)
		if err != nil {
			return nil, err
		}
		if curve != want {
			return nil, fmt.Errorf("%w: %s curve for %s", ErrAlgorithm, curve, alg)
		}
	}

	n := d.RemainingLen()
	if n == 0 {
		return nil, ErrFormat
	}
	key := make([]byte, n)
	if _, err := d.Decode(key); err != nil {
		return nil, fmt.Errorf("sshkey: invalid key: %w", err)
	}
	return &PublicKey{
		Algorithm: alg,
		Key:       key,
		Comment:   string(bytes.TrimSpace(rest)),
	}, nil
}

// Marshal returns the key in the SSH wire format.
func (k *PublicKey) Marshal() []byte {
	var b []byte
	b = appendString(b, k.Algorithm.String())
	if c, ok := k.Algorithm.Curve(); ok {
		b = appendString(b, c.String())
	}
	return append(b, k.Key...)
}

// MarshalAuthorizedKey returns the key in the OpenSSH
// authorized_keys format, terminated by a newline.
func (k *PublicKey) MarshalAuthorizedKey() []byte {
	var b []byte
	b = append(b, k.Algorithm.String()...)
	b = append(b, ' ')
	b = base64.StdEncoding.AppendEncode(b, k.Marshal())
	if k.Comment != "" {
		b = append(b, ' ')
		b = append(b, k.Comment...)
	}
	return append(b, '\n')
}

func appendString(b []byte, s string) []byte {
	b = binary.BigEndian.AppendUint32(b, uint32(len(s)))
	return append(b, s...)
}

// nextField returns the first space- or tab-delimited field of
// b and the remainder of b after it.
func nextField(b []byte) (field, rest []byte) {
	b = bytes.TrimLeft(b, " \t")
	if i := bytes.IndexAny(b, " \t\r\n"); i >= 0 {
		return b[:i], b[i:]
	}
	return b, nil
}
