// geom/fraction.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package geom holds the Form's exact-rational arithmetic and the
// pixel/fractional rectangle types that sit at the boundary between the
// Form engine and the window mutator (§3, §4.1).
package geom

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// Fraction is a non-negative rational number n/d held in lowest terms,
// d >= 1. Pane coordinates compose by nested scale-and-translate over
// arbitrary Frame definitions; accumulated float error would misalign
// seams between panes, so Fraction never divides during parse-time
// composition and only converts to float64 at the very last step.
type Fraction struct {
	N, D int64
}

// Zero is the additive identity.
var Zero = Fraction{N: 0, D: 1}

// One is the multiplicative identity.
var One = Fraction{N: 1, D: 1}

func gcd[T constraints.Integer](a, b T) T {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

// New builds a reduced Fraction from n/d. d must be positive.
func New(n, d int64) (Fraction, error) {
	if d <= 0 {
		return Fraction{}, fmt.Errorf("fraction: zero or negative denominator %d", d)
	}
	g := gcd(n, d)
	if g == 0 {
		g = 1
	}
	return Fraction{N: n / g, D: d / g}, nil
}

// MustNew is New, panicking on error; used for fixed constants such as
// the 1/2 in FracRect's centre computation, and in tests.
func MustNew(n, d int64) Fraction {
	f, err := New(n, d)
	if err != nil {
		panic(err)
	}
	return f
}

// Parse reads a Fraction from "n" or "n/d" (d > 0), as found in a Pane
// element's x/y/width/height attributes (§4.3).
func Parse(s string) (Fraction, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '/'); i >= 0 {
		n, err := strconv.ParseInt(s[:i], 10, 64)
		if err != nil {
			return Fraction{}, fmt.Errorf("fraction: invalid numerator %q: %w", s, err)
		}
		d, err := strconv.ParseInt(s[i+1:], 10, 64)
		if err != nil {
			return Fraction{}, fmt.Errorf("fraction: invalid denominator %q: %w", s, err)
		}
		return New(n, d)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Fraction{}, fmt.Errorf("fraction: invalid value %q: %w", s, err)
	}
	return New(n, 1)
}

// Add returns (a.N*b.D + b.N*a.D) / (a.D*b.D), reduced.
func Add(a, b Fraction) Fraction {
	f, _ := New(a.N*b.D+b.N*a.D, a.D*b.D)
	return f
}

// Sub returns a - b, reduced.
func Sub(a, b Fraction) Fraction {
	f, _ := New(a.N*b.D-b.N*a.D, a.D*b.D)
	return f
}

// Mul returns (a.N*b.N) / (a.D*b.D), reduced.
func Mul(a, b Fraction) Fraction {
	f, _ := New(a.N*b.N, a.D*b.D)
	return f
}

// Float converts to float64. Deferred until producing a PaneFrac; no
// intermediate Form computation calls this.
func (f Fraction) Float() float64 {
	return float64(f.N) / float64(f.D)
}

func (f Fraction) String() string {
	if f.D == 1 {
		return strconv.FormatInt(f.N, 10)
	}
	return fmt.Sprintf("%d/%d", f.N, f.D)
}

// Less reports whether f < g, compared cross-multiplied to avoid float
// error.
func Less(f, g Fraction) bool {
	return f.N*g.D < g.N*f.D
}

// Equal reports whether f and g denote the same rational value (not
// necessarily the same N, D pair before reduction — though New always
// reduces, so in practice this is just field equality for values built
// through this package).
func Equal(f, g Fraction) bool {
	return f.N*g.D == g.N*f.D
}
