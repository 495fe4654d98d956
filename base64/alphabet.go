package base64

import "github.com/ericlagergren/base64ct/internal/subtle"

// alphabet is a Base64 alphabet compiled into contiguous runs
// of ASCII characters.
//
// For example, the standard alphabet compiles to
//
//    'A'...'Z'  values  0...25
//    'a'...'z'  values 26...51
//    '0'...'9'  values 52...61
//    '+'        value  62
//    '/'        value  63
//
// Converting a symbol or a 6-bit value walks every run and
// combines the results with masks, so neither direction indexes
// memory by its (secret) input. The number of runs is a public
// property of the alphabet.
type alphabet struct {
	// runs are the contiguous character ranges, in value order.
	runs []run
	// base is the shift for values in the first run.
	base int
	// steps adjust the shift for values past each run
	// boundary.
	steps []step
}

// run is a contiguous range of characters.
type run struct {
	lo, hi int // inclusive
	first  int // value of lo
}

// step adds shift to the encoding shift for all values greater
// than threshold.
type step struct {
	threshold int
	shift     int
}

// newAlphabet compiles s.
//
// s must contain 64 distinct, printable ASCII characters.
func newAlphabet(s string) *alphabet {
	if len(s) != 64 {
		panic("base64: alphabet must be 64 bytes long")
	}
	var seen [256]bool
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c <= ' ' || c >= 0x7f:
			panic("base64: alphabet contains a non-printable character")
		case seen[c]:
			panic("base64: alphabet contains a duplicate character")
		}
		seen[c] = true
	}

	a := &alphabet{}
	for i := 0; i < len(s); i++ {
		c := int(s[i])
		if n := len(a.runs); n > 0 && a.runs[n-1].hi+1 == c {
			a.runs[n-1].hi = c
			continue
		}
		a.runs = append(a.runs, run{lo: c, hi: c, first: i})
	}

	a.base = a.runs[0].lo - a.runs[0].first
	for i := 1; i < len(a.runs); i++ {
		prev := a.runs[i-1].lo - a.runs[i-1].first
		cur := a.runs[i].lo - a.runs[i].first
		a.steps = append(a.steps, step{
			threshold: a.runs[i].first - 1,
			shift:     cur - prev,
		})
	}
	return a
}

// encode6 converts the 6-bit value v to its corresponding
// character.
//
// v must be in [0, 63].
//
// See http://0x80.pl/notesen/2016-01-12-sse-base64-encoding.html
func (a *alphabet) encode6(v int) byte {
	// Start with the shift for the first run, then, for every
	// run boundary that v lies beyond, adjust by the difference
	// between the two runs' shifts. The adjustments telescope,
	// leaving the shift of v's own run.
	s := a.base
	for _, st := range a.steps {
		s += subtle.GreaterMask(v, st.threshold) & st.shift
	}
	return byte(v + s)
}

// decode6 converts the character c to its 6-bit value.
//
// If c is not in the alphabet decode6 returns -1.
func (a *alphabet) decode6(c int) int {
	// Runs are disjoint, so at most one mask is set. The +1
	// cancels the initial -1 for a matching run.
	r := -1
	for _, x := range a.runs {
		r += subtle.InRangeMask(c, x.lo, x.hi) & (c - x.lo + x.first + 1)
	}
	return r
}

// contains reports whether c is in the alphabet.
//
// It is only used on public values such as padding characters.
func (a *alphabet) contains(c int) bool {
	return a.decode6(c) != -1
}
