// form/types.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package form implements the layout DSL: parsing (§4.3), validation
// (§4.4), resolution into a runtime Form (§4.5), and the session-scoped
// pane-cycling and DisplayMove index arithmetic the window mutator
// drives at chord time.
package form

import (
	"github.com/paneboard/paneboard/display"
	"github.com/paneboard/paneboard/geom"
)

// Measure is a named non-negative integer in pixels (§3).
type Measure struct {
	Name  string
	Value int
}

// SizeRef is a Space rule's size attribute: either a decimal literal or
// a reference to a Measure declared in the enclosing Layout's Needs
// list (§6: "Size attributes take either a decimal literal or a Measure
// name").
type SizeRef struct {
	IsMeasure   bool
	Literal     float64
	MeasureName string
}

// Resolve returns the numeric value of s, looking the name up in
// measures when s names one.
func (s SizeRef) Resolve(measures map[string]int) float64 {
	if !s.IsMeasure {
		return s.Literal
	}
	return float64(measures[s.MeasureName])
}

// Rule is one Match or Exclude entry within a Space: its attributes are
// AND-joined (§3).
type Rule struct {
	NameContains string
	Orientation  string // "", "portrait", "landscape", "never"
	MinWidth     *SizeRef
	MinHeight    *SizeRef
	UnderWidth   *SizeRef
	UnderHeight  *SizeRef
}

// Empty reports whether r carries no attributes at all.
func (r Rule) Empty() bool {
	return r.NameContains == "" && r.Orientation == "" &&
		r.MinWidth == nil && r.MinHeight == nil && r.UnderWidth == nil && r.UnderHeight == nil
}

// Space is a named predicate over a display's properties (§3): Match
// rules OR-joined (empty means always-match), Exclude rules OR-joined
// (any match vetoes).
type Space struct {
	Name    string
	Match   []Rule
	Exclude []Rule
}

// Pane is one rectangle of a Frame, in Fractions relative to the
// Frame's own rectangle (§3).
type Pane struct {
	X, Y, Width, Height geom.Fraction
}

// Frame is a named sequence of Panes (§3). Invariant: at least one Pane
// (enforced by the parser).
type Frame struct {
	Name  string
	Panes []Pane
}

// IncludeKind distinguishes a terminal pane from a Layout reference
// (§3). The third form, a conditional drop, is not a kind of its own: it
// is any Include whose Predicate fails.
type IncludeKind int

const (
	IncludeTerminal IncludeKind = iota
	IncludeLayoutRef
)

// IncludePredicate gates an Include: literal pixel thresholds,
// orientation, and display-name substring only — never a symbolic
// Measure (§4.3).
type IncludePredicate struct {
	Orientation  string // "", "portrait", "landscape", "never"
	NameContains string
	MinWidth     *int
	UnderWidth   *int
	MinHeight    *int
	UnderHeight  *int
}

// Include is a leaf directive inside a Shape tree (§3).
type Include struct {
	Kind      IncludeKind
	LayoutRef string // set when Kind == IncludeLayoutRef
	Predicate IncludePredicate
}

// ShapeChild is either a nested *Shape or an *Include.
type ShapeChild interface {
	isShapeChild()
}

func (*Shape) isShapeChild()   {}
func (*Include) isShapeChild() {}

// Shape is a tree node referencing a Frame by name, with one child per
// Pane of that Frame (§3).
type Shape struct {
	Frame     string
	Children  []ShapeChild
	Predicate Rule // optional orientation/size predicate for conditional pruning
}

// Layout is a named Shape-tree root (or roots, for the synthetic
// "multi" case), with an optional Space reference and declared Measure
// needs (§3).
type Layout struct {
	Name  string
	Space string // "" means unconstrained
	Needs []string
	Roots []*Shape // >1 means the synthetic "multi" frame applies (§4.3)
}

// LayoutAction binds a key symbol to a Layout plus traversal order and
// mirroring (§3).
type LayoutAction struct {
	Key      string
	Layout   string
	Traverse string // one of the 8 {x,y}x{f,r}x{x,y}x{f,r} variants, default "xfyf"
	MirrorX  string // "keep" or "flip", default "keep"
	MirrorY  string
}

// DisplayMoveBinding binds a key symbol to a display-move target (§3).
type DisplayMoveBinding struct {
	Key    string
	Target string // "next", "prev", or a literal integer index
	Wrap   bool   // default true
}

// Document is the parse tree produced by Parse and consumed by
// Validate/Resolve (§4.3).
type Document struct {
	Measures []Measure
	Quirks   []display.Quirk
	Spaces   []Space
	Frames   []Frame
	Layouts  []Layout
	Actions  []LayoutAction
	Moves    []DisplayMoveBinding
}
