// form/validator.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package form

import (
	"fmt"

	"github.com/paneboard/paneboard/errkind"
)

// Validate operates on the parse tree, returning a batch of
// human-readable errors (§4.4). An empty result means the document is
// safe to resolve.
func Validate(doc *Document) []error {
	v := &validator{
		measures: make(map[string]bool),
		spaces:   make(map[string]bool),
		frames:   make(map[string]Frame),
		layouts:  make(map[string]Layout),
	}
	for _, m := range doc.Measures {
		v.measures[m.Name] = true
	}
	for _, s := range doc.Spaces {
		v.spaces[s.Name] = true
	}
	for _, f := range doc.Frames {
		v.frames[f.Name] = f
	}
	for _, l := range doc.Layouts {
		v.layouts[l.Name] = l
	}

	for _, l := range doc.Layouts {
		v.checkLayout(l)
	}
	for _, a := range doc.Actions {
		if _, ok := v.layouts[a.Layout]; !ok {
			v.errorf("LayoutAction %q references undefined Layout %q", a.Key, a.Layout)
		}
	}
	return v.errs
}

type validator struct {
	measures map[string]bool
	spaces   map[string]bool
	frames   map[string]Frame
	layouts  map[string]Layout
	errs     []error
}

func (v *validator) errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	v.errs = append(v.errs, fmt.Errorf("%w: %s", errkind.ErrValidation, msg))
}

func (v *validator) checkLayout(l Layout) {
	if l.Space != "" && !v.spaces[l.Space] {
		v.errorf("Layout %q references undefined Space %q", l.Name, l.Space)
	}
	needs := make(map[string]bool, len(l.Needs))
	for _, n := range l.Needs {
		if !v.measures[n] {
			v.errorf("Layout %q Needs references undefined Measure %q", l.Name, n)
		}
		needs[n] = true
	}
	for _, root := range l.Roots {
		v.checkShape(l, root, needs)
	}
}

func (v *validator) checkShape(l Layout, s *Shape, needs map[string]bool) {
	v.checkSizeRef(l, s.Predicate.MinWidth, needs)
	v.checkSizeRef(l, s.Predicate.MinHeight, needs)
	v.checkSizeRef(l, s.Predicate.UnderWidth, needs)
	v.checkSizeRef(l, s.Predicate.UnderHeight, needs)

	frame, ok := v.frames[s.Frame]
	if !ok {
		v.errorf("Layout %q: Shape references undefined Frame %q", l.Name, s.Frame)
		return
	}
	if len(s.Children) != len(frame.Panes) {
		v.errorf("Layout %q: Shape for Frame %q has %d children, frame has %d panes",
			l.Name, s.Frame, len(s.Children), len(frame.Panes))
		// On arity mismatch the subtree is not recursed into (§4.4).
		return
	}
	for _, c := range s.Children {
		switch child := c.(type) {
		case *Shape:
			v.checkShape(l, child, needs)
		case *Include:
			if child.Kind == IncludeLayoutRef {
				if _, ok := v.layouts[child.LayoutRef]; !ok {
					v.errorf("Layout %q: Include references undefined Layout %q", l.Name, child.LayoutRef)
				}
			}
		}
	}
}

func (v *validator) checkSizeRef(l Layout, ref *SizeRef, needs map[string]bool) {
	if ref == nil || !ref.IsMeasure {
		return
	}
	if !needs[ref.MeasureName] {
		v.errorf("Layout %q: Shape predicate references Measure %q missing from Needs", l.Name, ref.MeasureName)
	}
}
