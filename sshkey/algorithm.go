// Package sshkey decodes SSH public key algorithms and OpenSSH
// public keys using the constant-time Base64 decoder.
package sshkey

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/ssh"

	"github.com/ericlagergren/base64ct/base64"
)

// ErrAlgorithm is returned when an algorithm or curve identifier
// is unknown or does not match what was expected.
var ErrAlgorithm = errors.New("sshkey: unknown algorithm")

// Algorithm is an SSH public key algorithm.
type Algorithm int

const (
	// DSA is the Digital Signature Algorithm.
	DSA Algorithm = iota + 1
	// ECDSAP256 is ECDSA with SHA-256 and NIST P-256.
	ECDSAP256
	// ECDSAP384 is ECDSA with SHA-384 and NIST P-384.
	ECDSAP384
	// ECDSAP521 is ECDSA with SHA-512 and NIST P-521.
	ECDSAP521
	// Ed25519 is Ed25519.
	Ed25519
	// RSA is RSA.
	RSA
)

// maxAlgorithmSize is the length of the longest algorithm
// identifier.
const maxAlgorithmSize = 20

// ParseAlgorithm returns the Algorithm with the string
// identifier id.
//
// Supported identifiers are
//
//    ecdsa-sha2-nistp256
//    ecdsa-sha2-nistp384
//    ecdsa-sha2-nistp521
//    ssh-dss
//    ssh-ed25519
//    ssh-rsa
//
func ParseAlgorithm(id string) (Algorithm, error) {
	switch id {
	case ssh.KeyAlgoECDSA256:
		return ECDSAP256, nil
	case ssh.KeyAlgoECDSA384:
		return ECDSAP384, nil
	case ssh.KeyAlgoECDSA521:
		return ECDSAP521, nil
	case ssh.KeyAlgoDSA:
		return DSA, nil
	case ssh.KeyAlgoED25519:
		return Ed25519, nil
	case ssh.KeyAlgoRSA:
		return RSA, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrAlgorithm, id)
	}
}

// DecodeAlgorithm decodes a length-prefixed algorithm identifier
// from d.
func DecodeAlgorithm(d *base64.Decoder) (Algorithm, error) {
	var buf [maxAlgorithmSize]byte
	id, err := d.DecodeString(buf[:])
	if err != nil {
		return 0, fmt.Errorf("sshkey: unable to decode algorithm: %w", err)
	}
	return ParseAlgorithm(id)
}

// String returns the algorithm's string identifier.
func (a Algorithm) String() string {
	switch a {
	case DSA:
		return ssh.KeyAlgoDSA
	case ECDSAP256:
		return ssh.KeyAlgoECDSA256
	case ECDSAP384:
		return ssh.KeyAlgoECDSA384
	case ECDSAP521:
		return ssh.KeyAlgoECDSA521
	case Ed25519:
		return ssh.KeyAlgoED25519
	case RSA:
		return ssh.KeyAlgoRSA
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Algorithm) MarshalText() ([]byte, error) {
	if _, err := ParseAlgorithm(a.String()); err != nil {
		return nil, err
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Algorithm) UnmarshalText(text []byte) error {
	v, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// IsDSA reports whether a is DSA.
func (a Algorithm) IsDSA() bool { return a == DSA }

// IsECDSA reports whether a is ECDSA with any curve.
func (a Algorithm) IsECDSA() bool {
	_, ok := a.Curve()
	return ok
}

// IsEd25519 reports whether a is Ed25519.
func (a Algorithm) IsEd25519() bool { return a == Ed25519 }

// IsRSA reports whether a is RSA.
func (a Algorithm) IsRSA() bool { return a == RSA }

// Curve returns the elliptic curve used by an ECDSA algorithm.
func (a Algorithm) Curve() (EcdsaCurve, bool) {
	switch a {
	case ECDSAP256:
		return NistP256, true
	case ECDSAP384:
		return NistP384, true
	case ECDSAP521:
		return NistP521, true
	default:
		return 0, false
	}
}

// EcdsaCurve is an elliptic curve used with ECDSA.
type EcdsaCurve int

const (
	// NistP256 is NIST P-256 (a.k.a. prime256v1, secp256r1).
	NistP256 EcdsaCurve = iota + 1
	// NistP384 is NIST P-384 (a.k.a. secp384r1).
	NistP384
	// NistP521 is NIST P-521 (a.k.a. secp521r1).
	NistP521
)

// maxCurveSize is the length of the longest curve identifier.
const maxCurveSize = 8

// ParseEcdsaCurve returns the EcdsaCurve with the string
// identifier id: one of nistp256, nistp384, or nistp521.
func ParseEcdsaCurve(id string) (EcdsaCurve, error) {
	switch id {
	case "nistp256":
		return NistP256, nil
	case "nistp384":
		return NistP384, nil
	case "nistp521":
		return NistP521, nil
	default:
		return 0, fmt.Errorf("%w: curve %q", ErrAlgorithm, id)
	}
}

// DecodeEcdsaCurve decodes a length-prefixed curve identifier
// from d.
func DecodeEcdsaCurve(d *base64.Decoder) (EcdsaCurve, error) {
	var buf [maxCurveSize]byte
	id, err := d.DecodeString(buf[:])
	if err != nil {
		return 0, fmt.Errorf("sshkey: unable to decode curve: %w", err)
	}
	return ParseEcdsaCurve(id)
}

// String returns the curve's string identifier.
func (c EcdsaCurve) String() string {
	switch c {
	case NistP256:
		return "nistp256"
	case NistP384:
		return "nistp384"
	case NistP521:
		return "nistp521"
	default:
		return fmt.Sprintf("EcdsaCurve(%d)", int(c))
	}
}
