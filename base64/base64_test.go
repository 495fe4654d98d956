package base64

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	xrand "golang.org/x/exp/rand"
)

type encPair struct {
	name   string
	enc    *Encoding
	stdlib *base64.Encoding
	table  string
}

var encs = []encPair{
	{"StdEncoding", StdEncoding, base64.StdEncoding, stdAlphabet},
	{"RawStdEncoding", RawStdEncoding, base64.RawStdEncoding, stdAlphabet},
	{"URLEncoding", URLEncoding, base64.URLEncoding, urlAlphabet},
	{"RawURLEncoding", RawURLEncoding, base64.RawURLEncoding, urlAlphabet},
	{"BcryptEncoding", BcryptEncoding,
		base64.NewEncoding(bcryptAlphabet).WithPadding(base64.NoPadding),
		bcryptAlphabet},
	{"CryptEncoding", CryptEncoding,
		base64.NewEncoding(cryptAlphabet).WithPadding(base64.NoPadding),
		cryptAlphabet},
}

// TestEncodeStdlib tests Encode against the stdlib.
func TestEncodeStdlib(t *testing.T) {
	for _, e := range encs {
		t.Run(e.name, func(t *testing.T) {
			testStdlibEncode(t, e)
		})
	}
}

func testStdlibEncode(t *testing.T, p encPair) {
	e := p.enc
	stdlib := p.stdlib

	src := make([]byte, 2048)
	want := make([]byte, e.EncodedLen(len(src)))
	got := make([]byte, stdlib.EncodedLen(len(src)))
	if len(want) != len(got) {
		t.Fatalf("expected %d, got %d", len(want), len(got))
	}
	if _, err := rand.Read(src); err != nil {
		t.Fatal(err)
	}
	for i := range src {
		if e.EncodedLen(i) != stdlib.EncodedLen(i) {
			t.Fatalf("#%d: EncodedLen: expected %d, got %d",
				i, stdlib.EncodedLen(i), e.EncodedLen(i))
		}

		stdlib.Encode(want, src[:i])
		want := want[:stdlib.EncodedLen(i)]

		e.Encode(got, src[:i])
		got := got[:e.EncodedLen(i)]
		if !bytes.Equal(want, got) {
			t.Fatalf("#%d: mismatch: %s", i, cmp.Diff(want, got))
		}
	}
}

// TestDecodeStdlib tests Decode against the stdlib.
func TestDecodeStdlib(t *testing.T) {
	for _, e := range encs {
		t.Run(e.name, func(t *testing.T) {
			testStdlibDecode(t, e)
		})
	}
}

func testStdlibDecode(t *testing.T, p encPair) {
	e := p.enc
	stdlib := p.stdlib

	src := make([]byte, 2048)
	if _, err := rand.Read(src); err != nil {
		t.Fatal(err)
	}
	dst := make([]byte, len(src))
	for i := range src {
		s := stdlib.EncodeToString(src[:i])
		if e.DecodedLen(len(s)) != stdlib.DecodedLen(len(s)) {
			t.Fatalf("#%d: DecodedLen: expected %d, got %d",
				i, stdlib.DecodedLen(len(s)), e.DecodedLen(len(s)))
		}
		n, err := e.Decode(dst, []byte(s))
		if err != nil {
			t.Fatalf("#%d: unexpected error: %v", i, err)
		}
		if n != i {
			t.Fatalf("#%d: expected %d bytes, got %d", i, i, n)
		}
		if !bytes.Equal(dst[:n], src[:i]) {
			t.Fatalf("#%d: mismatch: %s", i, cmp.Diff(src[:i], dst[:n]))
		}
	}
}

// TestRoundTrip tests that decoding the encoding of random data
// returns the original data for every variant.
func TestRoundTrip(t *testing.T) {
	d := 2 * time.Second
	if testing.Short() {
		d = 100 * time.Millisecond
	}
	tm := time.NewTimer(d)
	defer tm.Stop()

	seed := uint64(time.Now().UnixNano())
	t.Logf("seed: %#x", seed)
	rng := xrand.New(xrand.NewSource(seed))

	buf := make([]byte, 512)
	for i := 0; ; i++ {
		select {
		case <-tm.C:
			t.Logf("iter: %d", i)
			return
		default:
		}

		src := buf[:rng.Intn(len(buf))]
		rng.Read(src)
		for _, p := range encs {
			s := p.enc.EncodeToString(src)
			got, err := p.enc.DecodeString(s)
			if err != nil {
				t.Fatalf("%s: #%d: unexpected error: %v", p.name, i, err)
			}
			if !bytes.Equal(got, src) {
				t.Fatalf("%s: #%d: mismatch: %s", p.name, i, cmp.Diff(src, got))
			}
		}
	}
}

// TestLookup tests encode6 and decode6.
func TestLookup(t *testing.T) {
	for _, p := range encs {
		a := p.enc.alpha
		for i := 0; i < len(p.table); i++ {
			b64 := a.encode6(i)
			if b64 != p.table[i] {
				t.Fatalf("%s: #%d: expected %q, got %q", p.name, i, p.table[i], b64)
			}
			bin := a.decode6(int(b64))
			if bin != i {
				t.Fatalf("%s: #%d: expected %d got %d", p.name, i, i, bin)
			}
		}
	}
}

// TestRevLookup tests decode6 against every possible byte.
func TestRevLookup(t *testing.T) {
	for _, p := range encs {
		var m [256]int
		for i := range m {
			m[i] = -1
		}
		for i := 0; i < len(p.table); i++ {
			m[p.table[i]] = i
		}
		for i := 0; i < 256; i++ {
			if got := p.enc.alpha.decode6(i); got != m[i] {
				t.Fatalf("%s: %#02x: expected %d, got %d", p.name, i, m[i], got)
			}
		}
	}
}

func TestAlphabetRuns(t *testing.T) {
	for _, tc := range []struct {
		name string
		enc  *Encoding
		runs int
	}{
		{"std", StdEncoding, 5},
		{"url", URLEncoding, 5},
		{"bcrypt", BcryptEncoding, 4},
		// "./0123456789" is a single run.
		{"crypt", CryptEncoding, 3},
	} {
		if got := len(tc.enc.alpha.runs); got != tc.runs {
			t.Fatalf("%s: expected %d runs, got %d", tc.name, tc.runs, got)
		}
	}
}

func TestNewEncoding(t *testing.T) {
	// Reversed alphabet: every character is its own run.
	var b [64]byte
	for i := range b {
		b[i] = stdAlphabet[63-i]
	}
	alpha := string(b[:])
	e := NewEncoding(alpha)
	stdlib := base64.NewEncoding(alpha)

	src := []byte("the quick brown fox jumps over the lazy dog")
	want := stdlib.EncodeToString(src)
	got := e.EncodeToString(src)
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	dec, err := e.DecodeString(got)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(dec, src) {
		t.Fatalf("mismatch: %s", cmp.Diff(src, dec))
	}
}

func TestNewEncodingPanics(t *testing.T) {
	for _, alpha := range []string{
		"",
		stdAlphabet[:63],
		stdAlphabet[:63] + "A",
		stdAlphabet[:63] + "\n",
		stdAlphabet[:63] + " ",
		stdAlphabet[:63] + "=",
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("%q: expected a panic", alpha)
				}
			}()
			NewEncoding(alpha)
		}()
	}
}

func TestWithPadding(t *testing.T) {
	e := RawStdEncoding.WithPadding('*')
	got := e.EncodeToString([]byte("a"))
	if want := "YQ**"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	dec, err := e.DecodeString(got)
	if err != nil {
		t.Fatal(err)
	}
	if string(dec) != "a" {
		t.Fatalf("expected %q, got %q", "a", dec)
	}
	if !e.Padded() || RawStdEncoding.Padded() {
		t.Fatal("Padded does not match padding character")
	}

	for _, r := range []rune{'\r', '\n', 'A', '+', 0x100} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("%q: expected a panic", r)
				}
			}()
			StdEncoding.WithPadding(r)
		}()
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, tc := range []struct {
		enc  *Encoding
		src  string
		want error
	}{
		// Alphabet.
		{StdEncoding, "aGVsb?8=", ErrInvalidEncoding},
		{StdEncoding, "aGVs\nbG8=", ErrInvalidEncoding},
		{StdEncoding, "aGVsbG-_", ErrInvalidEncoding},
		{URLEncoding, "aGVsbG+/", ErrInvalidEncoding},
		{RawStdEncoding, "aGVsbG8=", ErrInvalidEncoding},
		{BcryptEncoding, "aGVsbG+/", ErrInvalidEncoding},
		{CryptEncoding, "aGVs_G8", ErrInvalidEncoding},

		// Padding.
		{StdEncoding, "aGVsbG8", ErrInvalidEncoding},
		{StdEncoding, "aGVsbG", ErrInvalidEncoding},
		{StdEncoding, "aG=s", ErrInvalidEncoding},
		{StdEncoding, "aGV=bG8=", ErrInvalidEncoding},
		{StdEncoding, "aGVsb=8=", ErrInvalidEncoding},
		{StdEncoding, "aGVsbG=8", ErrInvalidEncoding},
		{StdEncoding, "aGVsb===", ErrInvalidEncoding},
		{StdEncoding, "====", ErrInvalidEncoding},
		{StdEncoding, "=", ErrInvalidEncoding},

		// Length.
		{RawStdEncoding, "a", ErrInvalidLength},
		{RawStdEncoding, "aGVsb", ErrInvalidLength},
		{RawURLEncoding, "aGVsbG8aG", ErrInvalidLength},
	} {
		_, err := tc.enc.DecodeString(tc.src)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%q: expected %v, got %v", tc.src, tc.want, err)
		}
	}
}

func TestDecodePartialOutput(t *testing.T) {
	dst := make([]byte, 8)
	n, err := StdEncoding.Decode(dst, []byte("aGVsb?8="))
	if err != ErrInvalidEncoding {
		t.Fatalf("expected %v, got %v", ErrInvalidEncoding, err)
	}
	if n != 5 {
		t.Fatalf("expected 5, got %d", n)
	}
}

func TestDecodeShortBuffer(t *testing.T) {
	dst := make([]byte, 4)
	_, err := StdEncoding.Decode(dst, []byte("aGVsbG8="))
	if err != ErrInvalidLength {
		t.Fatalf("expected %v, got %v", ErrInvalidLength, err)
	}
}

func TestStrict(t *testing.T) {
	for _, tc := range []struct {
		enc *Encoding
		src string
		ok  bool
	}{
		{StdEncoding.Strict(), "YQ==", true},
		{StdEncoding.Strict(), "YR==", false},
		{StdEncoding.Strict(), "YWI=", true},
		{StdEncoding.Strict(), "YWJ=", false},
		{RawURLEncoding.Strict(), "YR", false},
		{RawURLEncoding.Strict(), "YWJ", false},
		{StdEncoding, "YR==", true},
		{RawStdEncoding, "YWJ", true},
	} {
		_, err := tc.enc.DecodeString(tc.src)
		if (err == nil) != tc.ok {
			t.Fatalf("%q: expected ok=%t, got %v", tc.src, tc.ok, err)
		}
	}
}

func TestAppendEncode(t *testing.T) {
	got := StdEncoding.AppendEncode([]byte("key="), []byte("hello"))
	if want := "key=aGVsbG8="; string(got) != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	got = RawURLEncoding.AppendEncode(nil, []byte{0xfb, 0xff})
	if want := "-_8"; string(got) != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestNewEncoder(t *testing.T) {
	src := make([]byte, 5000)
	if _, err := rand.Read(src); err != nil {
		t.Fatal(err)
	}
	for _, p := range encs {
		for _, chunk := range []int{1, 2, 3, 7, 768, 1000, len(src)} {
			var buf bytes.Buffer
			w := NewEncoder(p.enc, &buf)
			for s := src; len(s) > 0; {
				n := chunk
				if n > len(s) {
					n = len(s)
				}
				if _, err := w.Write(s[:n]); err != nil {
					t.Fatal(err)
				}
				s = s[n:]
			}
			if err := w.Close(); err != nil {
				t.Fatal(err)
			}
			if want := p.stdlib.EncodeToString(src); buf.String() != want {
				t.Fatalf("%s: chunk %d: mismatch: %s",
					p.name, chunk, cmp.Diff(want, buf.String()))
			}
			if _, err := w.Write([]byte{1}); err == nil {
				t.Fatalf("%s: expected an error after Close", p.name)
			}
		}
	}
}

var (
	sinkB   byte
	sinkInt int
)

func BenchmarkEncode6(b *testing.B) {
	a := StdEncoding.alpha
	for i := 0; i < b.N; i++ {
		sinkB = a.encode6(i % 64)
	}
}

func BenchmarkDecode6(b *testing.B) {
	a := StdEncoding.alpha
	for i := 0; i < b.N; i++ {
		c := stdAlphabet[i%len(stdAlphabet)]
		sinkInt = a.decode6(int(c))
	}
}

func BenchmarkEncode(b *testing.B) {
	src := make([]byte, 8192)
	dst := make([]byte, StdEncoding.EncodedLen(len(src)))
	b.SetBytes(int64(len(src)))
	for i := 0; i < b.N; i++ {
		StdEncoding.Encode(dst, src)
	}
}

func BenchmarkDecode(b *testing.B) {
	src := make([]byte, 8192)
	enc := []byte(StdEncoding.EncodeToString(src))
	dst := make([]byte, len(src))
	b.SetBytes(int64(len(enc)))
	for i := 0; i < b.N; i++ {
		n, err := StdEncoding.Decode(dst, enc)
		if err != nil {
			b.Fatal(err)
		}
		sinkInt = n
	}
}
