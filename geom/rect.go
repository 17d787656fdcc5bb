// geom/rect.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geom

// FracRect is a rectangle whose X, Y, Width, Height are Fractions,
// interpreted relative to some enclosing rectangle (initially the unit
// square; §4.5 step 3 composes these by nested scale-and-translate as
// the Shape tree is flattened).
type FracRect struct {
	X, Y, Width, Height Fraction
}

// Compose scales and translates child (itself relative to a unit square)
// into the space of r: the Form resolver's core recursive step, applied
// once per Frame pane as the Shape tree is walked (§4.5 step 3).
func Compose(r, child FracRect) FracRect {
	return FracRect{
		X:      Add(r.X, Mul(child.X, r.Width)),
		Y:      Add(r.Y, Mul(child.Y, r.Height)),
		Width:  Mul(child.Width, r.Width),
		Height: Mul(child.Height, r.Height),
	}
}

// Unit is the full unit square, the starting rectangle for flattening a
// Layout's root Shape.
var Unit = FracRect{X: Zero, Y: Zero, Width: One, Height: One}

// MirrorX replaces r's X with 1 - X - Width, the "flip" mirror mode on
// the horizontal axis (§4.5 step 6). Applying it twice is the identity.
func (r FracRect) MirrorX() FracRect {
	r.X = Sub(Sub(One, r.X), r.Width)
	return r
}

// MirrorY is MirrorX's vertical-axis counterpart.
func (r FracRect) MirrorY() FracRect {
	r.Y = Sub(Sub(One, r.Y), r.Height)
	return r
}

// Area returns width*height as a Fraction, used as the PaneFrac sort's
// primary key (§4.5 step 7).
func (r FracRect) Area() Fraction {
	return Mul(r.Width, r.Height)
}

// CenterX and CenterY give the rectangle's geometric centre, used as the
// PaneFrac sort's secondary key among equal-area panes.
func (r FracRect) CenterX() Fraction {
	return Add(r.X, Mul(r.Width, MustNew(1, 2)))
}

func (r FracRect) CenterY() Fraction {
	return Add(r.Y, Mul(r.Height, MustNew(1, 2)))
}

// PaneFrac is a rectangle in [0,1]^2 display-relative coordinates, the
// unit of output from the Form engine (§3). Unlike FracRect it holds
// float64, fixed at the last step before the window mutator needs
// pixels.
type PaneFrac struct {
	X, Y, Width, Height float64
}

// ToPaneFrac converts r to float64 at the boundary between the Form's
// exact-rational world and everything downstream of it.
func (r FracRect) ToPaneFrac() PaneFrac {
	return PaneFrac{
		X:      r.X.Float(),
		Y:      r.Y.Float(),
		Width:  r.Width.Float(),
		Height: r.Height.Float(),
	}
}

// PixelRect is an absolute-screen-coordinate rectangle, the input to the
// window mutator (§3).
type PixelRect struct {
	X, Y, Width, Height float64
}

// Realize maps p onto viewport vf: x = vf.X + p.X*vf.Width, and
// analogously for y/width/height (§4.2).
func (p PaneFrac) Realize(vf PixelRect) PixelRect {
	return PixelRect{
		X:      vf.X + p.X*vf.Width,
		Y:      vf.Y + p.Y*vf.Height,
		Width:  p.Width * vf.Width,
		Height: p.Height * vf.Height,
	}
}

// ContainsPoint reports whether (x, y) falls within r, used to find the
// display whose area contains a window's centre (§4.2, §4.10).
func (r PixelRect) ContainsPoint(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// TooSmall reports whether r falls below the 100x100 pixel floor panes
// are filtered against after realisation (§4.2).
func (r PixelRect) TooSmall() bool {
	return r.Width < 100 || r.Height < 100
}

// CenterX and CenterY give r's geometric centre in absolute screen
// coordinates.
func (r PixelRect) CenterX() float64 { return r.X + r.Width/2 }
func (r PixelRect) CenterY() float64 { return r.Y + r.Height/2 }
