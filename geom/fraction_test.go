// geom/fraction_test.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geom

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		wantN   int64
		wantD   int64
		wantErr bool
	}{
		{"1/2", 1, 2, false},
		{"3", 3, 1, false},
		{"2/4", 1, 2, false},
		{"0/5", 0, 1, false},
		{"1/0", 0, 0, true},
		{"abc", 0, 0, true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err != nil {
			continue
		}
		if got.N != tt.wantN || got.D != tt.wantD {
			t.Errorf("Parse(%q) = %d/%d, want %d/%d", tt.in, got.N, got.D, tt.wantN, tt.wantD)
		}
	}
}

func TestAddMulReduced(t *testing.T) {
	a := MustNew(1, 3)
	b := MustNew(1, 6)
	sum := Add(a, b)
	if sum.N != 1 || sum.D != 2 {
		t.Errorf("Add(1/3, 1/6) = %d/%d, want 1/2", sum.N, sum.D)
	}

	prod := Mul(MustNew(2, 3), MustNew(3, 4))
	if prod.N != 1 || prod.D != 2 {
		t.Errorf("Mul(2/3, 3/4) = %d/%d, want 1/2", prod.N, prod.D)
	}
}

func TestReducedInvariant(t *testing.T) {
	fracs := []Fraction{
		MustNew(4, 8),
		Add(MustNew(1, 3), MustNew(1, 3)),
		Mul(MustNew(5, 7), MustNew(7, 10)),
	}
	for _, f := range fracs {
		if gcd(f.N, f.D) != 1 {
			t.Errorf("fraction %v not reduced", f)
		}
		if f.D < 1 {
			t.Errorf("fraction %v has d < 1", f)
		}
	}
}

func TestMirrorRoundTrip(t *testing.T) {
	r := FracRect{X: MustNew(1, 4), Y: MustNew(1, 8), Width: MustNew(1, 2), Height: MustNew(3, 8)}
	twice := r.MirrorX().MirrorX()
	if !Equal(twice.X, r.X) {
		t.Errorf("double MirrorX not identity: got %v, want %v", twice.X, r.X)
	}
	twiceY := r.MirrorY().MirrorY()
	if !Equal(twiceY.Y, r.Y) {
		t.Errorf("double MirrorY not identity: got %v, want %v", twiceY.Y, r.Y)
	}
}

func TestLinearRealization(t *testing.T) {
	p := PaneFrac{X: 0.25, Y: 0.5, Width: 0.5, Height: 0.25}
	base := PixelRect{X: 0, Y: 0, Width: 1000, Height: 1000}
	for _, alpha := range []float64{0, 0.5, 1} {
		vf := PixelRect{X: 0, Y: 0, Width: base.Width * alpha, Height: base.Height * alpha}
		got := p.Realize(vf)
		wantX := p.X * vf.Width
		wantW := p.Width * vf.Width
		if got.X != wantX || got.Width != wantW {
			t.Errorf("alpha=%v: got x=%v w=%v, want x=%v w=%v", alpha, got.X, got.Width, wantX, wantW)
		}
	}
}
