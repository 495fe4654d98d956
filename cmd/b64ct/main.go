// Command b64ct encodes or decodes Base64 in constant time.
//
// Usage:
//
//	b64ct [-variant VARIANT] < INPUT
//	b64ct -d [-variant VARIANT] [-strict] [-chunk N] < INPUT
//
// Without -d,
// b64ct encodes standard input and writes it to standard output
// followed by a newline.
// With -d,
// b64ct decodes standard input.
// Leading and trailing whitespace is ignored,
// but the encoded text must not contain any line breaks.
//
// VARIANT is one of std (the default), raw-std, url, raw-url, bcrypt, or crypt.
//
// With -strict,
// input whose final block has non-zero discarded bits is rejected.
//
// With -chunk N,
// the input is decoded incrementally into an N-byte buffer
// instead of all at once.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ericlagergren/base64ct/base64"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("b64ct: ")

	opts, err := parseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		log.Fatalf("Error parsing args: %s", err)
	}

	if err := run(os.Stdout, os.Stdin, opts); err != nil {
		log.Fatal(err)
	}
}

func run(w io.Writer, r io.Reader, opts options) error {
	if opts.decode {
		src, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		src = bytes.TrimSpace(src)
		if opts.chunk > 0 {
			return decodeChunks(w, src, opts.encoding(), opts.chunk)
		}
		return decode(w, src, opts.encoding())
	}
	return encode(w, r, opts.encoding())
}

func encode(w io.Writer, r io.Reader, enc *base64.Encoding) error {
	e := base64.NewEncoder(enc, w)
	if _, err := io.Copy(e, r); err != nil {
		return fmt.Errorf("encoding: %w", err)
	}
	if err := e.Close(); err != nil {
		return fmt.Errorf("encoding: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func decode(w io.Writer, src []byte, enc *base64.Encoding) error {
	dst := make([]byte, enc.DecodedLen(len(src)))
	n, err := enc.Decode(dst, src)
	if err != nil {
		return fmt.Errorf("decoding: %w", err)
	}
	_, err = w.Write(dst[:n])
	return err
}

// decodeChunks decodes src using a base64.Decoder, writing at
// most size bytes at a time.
func decodeChunks(w io.Writer, src []byte, enc *base64.Encoding, size int) error {
	d, err := base64.NewDecoder(enc, src)
	if err != nil {
		return fmt.Errorf("decoding: %w", err)
	}
	buf := make([]byte, size)
	for !d.IsFinished() {
		p, err := d.Decode(buf[:min(size, d.RemainingLen())])
		if err != nil {
			return fmt.Errorf("decoding: %w", err)
		}
		if _, err := w.Write(p); err != nil {
			return err
		}
	}
	return nil
}
