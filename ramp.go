package asciiportrait

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/wbrown/asciiportrait/config"
)

// Ramp is an ordered set of distinct printable characters used to
// quantize brightness. Index 0 stands for the brightest pixels and the
// last index for the darkest, so ramps are written light to dark:
// " .:-=+*#%&@".
type Ramp struct {
	runes []rune
}

// DefaultRamp is the light-to-dark ramp the tool ships with.
var DefaultRamp = MustRamp(config.DefaultRamp)

// NewRamp builds a Ramp from chars. It fails with ErrEmptyRamp when chars
// is empty and with ErrInvalidRamp when a character repeats or is not
// printable (the ASCII space counts as printable).
func NewRamp(chars string) (Ramp, error) {
	if chars == "" {
		return Ramp{}, ErrEmptyRamp
	}
	seen := make(map[rune]bool, len(chars))
	runes := make([]rune, 0, len(chars))
	for _, c := range chars {
		if !unicode.IsPrint(c) {
			return Ramp{}, fmt.Errorf("%w: %U is not printable", ErrInvalidRamp, c)
		}
		if seen[c] {
			return Ramp{}, fmt.Errorf("%w: %q appears more than once", ErrInvalidRamp, c)
		}
		seen[c] = true
		runes = append(runes, c)
	}
	return Ramp{runes: runes}, nil
}

// MustRamp is like NewRamp but panics on error. It is meant for
// package-level literals.
func MustRamp(chars string) Ramp {
	r, err := NewRamp(chars)
	if err != nil {
		panic(err)
	}
	return r
}

// Len returns the number of characters.
func (r Ramp) Len() int {
	return len(r.runes)
}

// At returns the character at index i.
func (r Ramp) At(i int) rune {
	return r.runes[i]
}

// Index maps an intensity (0 black, 255 white) to a ramp index:
// floor((255-p)*N/256), clamped to [0, N-1]. White lands on index 0.
func (r Ramp) Index(p uint8) int {
	n := len(r.runes)
	idx := (255 - int(p)) * n / 256
	return max(0, min(idx, n-1))
}

// Rune returns the character for intensity p.
func (r Ramp) Rune(p uint8) rune {
	return r.runes[r.Index(p)]
}

// Contains reports whether c is one of the ramp's characters.
func (r Ramp) Contains(c rune) bool {
	for _, rc := range r.runes {
		if rc == c {
			return true
		}
	}
	return false
}

// Runes returns a copy of the ramp's characters.
func (r Ramp) Runes() []rune {
	return append([]rune(nil), r.runes...)
}

func (r Ramp) String() string {
	var b strings.Builder
	for _, c := range r.runes {
		b.WriteRune(c)
	}
	return b.String()
}
