package main

import (
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ericlagergren/base64ct/base64"
)

var variants = map[string]*base64.Encoding{
	"std":     base64.StdEncoding,
	"raw-std": base64.RawStdEncoding,
	"url":     base64.URLEncoding,
	"raw-url": base64.RawURLEncoding,
	"bcrypt":  base64.BcryptEncoding,
	"crypt":   base64.CryptEncoding,
}

type options struct {
	variant        string
	decode, strict bool
	chunk          int
}

func variantNames() string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func parseArgs(args []string, stderr io.Writer) (opts options, err error) {
	fs := flag.NewFlagSet("b64ct", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.decode, "d", false, "decode instead of encode")
	fs.BoolVar(&opts.strict, "strict", false, "with -d, reject input whose discarded trailing bits are non-zero")
	fs.IntVar(&opts.chunk, "chunk", 0, "with -d, decode incrementally into a buffer of this many bytes")
	fs.StringVar(&opts.variant, "variant", "std", "Base64 variant: one of "+variantNames())
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if _, ok := variants[opts.variant]; !ok {
		return opts, fmt.Errorf("unknown variant %q (want one of %s)", opts.variant, variantNames())
	}
	if opts.chunk < 0 {
		return opts, fmt.Errorf("-chunk must not be negative")
	}
	if !opts.decode && (opts.strict || opts.chunk > 0) {
		return opts, fmt.Errorf("-strict and -chunk require -d")
	}

	return opts, nil
}

// encoding returns the variant selected by opts.
func (opts options) encoding() *base64.Encoding {
	enc := variants[opts.variant]
	if opts.strict {
		enc = enc.Strict()
	}
	return enc
}
