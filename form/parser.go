// form/parser.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package form

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/paneboard/paneboard/display"
	"github.com/paneboard/paneboard/errkind"
	"github.com/paneboard/paneboard/geom"
)

// ParseErr is a byte-positioned parse failure (§4.3).
type ParseErr struct {
	Offset int64
	Msg    string
}

func (e *ParseErr) Error() string {
	return fmt.Sprintf("form: byte %d: %s", e.Offset, e.Msg)
}

func (e *ParseErr) Unwrap() error { return errkind.ErrParse }

func parseErrf(dec *xml.Decoder, format string, args ...any) *ParseErr {
	return &ParseErr{Offset: dec.InputOffset(), Msg: fmt.Sprintf(format, args...)}
}

var validOrientations = map[string]bool{"": true, "portrait": true, "landscape": true, "never": true}
var validTraverse = map[string]bool{
	"xfyf": true, "xfyr": true, "xryf": true, "xryr": true,
	"yfxf": true, "yfxr": true, "yrxf": true, "yrxr": true,
}
var validMirror = map[string]bool{"keep": true, "flip": true}
var validPlatform = map[string]bool{"macos": true, "windows": true, "linux": true}

// Parse reads a Form document from r (§4.3).
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)

	doc := &Document{}

	tok, err := nextStart(dec)
	if err != nil {
		return nil, err
	}
	if tok.Name.Local != "Form" {
		return nil, parseErrf(dec, "expected root <Form>, got <%s>", tok.Name.Local)
	}

	for {
		t, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil, parseErrf(dec, "unexpected end of document inside <Form>")
			}
			return nil, parseErrf(dec, "xml error: %v", err)
		}
		switch se := t.(type) {
		case xml.StartElement:
			if err := parseFormChild(dec, se, doc); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if se.Name.Local == "Form" {
				return doc, nil
			}
			return nil, parseErrf(dec, "unexpected closing </%s>", se.Name.Local)
		}
	}
}

func nextStart(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		t, err := dec.Token()
		if err != nil {
			return xml.StartElement{}, parseErrf(dec, "xml error: %v", err)
		}
		if se, ok := t.(xml.StartElement); ok {
			return se, nil
		}
	}
}

func attr(se xml.StartElement, name string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func requireAttr(dec *xml.Decoder, se xml.StartElement, name string) (string, error) {
	v, ok := attr(se, name)
	if !ok {
		return "", parseErrf(dec, "<%s> missing required attribute %q", se.Name.Local, name)
	}
	return v, nil
}

func parseFormChild(dec *xml.Decoder, se xml.StartElement, doc *Document) error {
	switch se.Name.Local {
	case "Measure":
		m, err := parseMeasure(dec, se)
		if err != nil {
			return err
		}
		doc.Measures = append(doc.Measures, m)
		return skipElement(dec)
	case "DisplayQuirk":
		q, err := parseQuirk(dec, se)
		if err != nil {
			return err
		}
		doc.Quirks = append(doc.Quirks, q)
		return skipElement(dec)
	case "Space":
		s, err := parseSpace(dec, se)
		if err != nil {
			return err
		}
		doc.Spaces = append(doc.Spaces, s)
		return nil
	case "Frame":
		f, err := parseFrame(dec, se)
		if err != nil {
			return err
		}
		doc.Frames = append(doc.Frames, f)
		return nil
	case "Layout":
		l, err := parseLayout(dec, se)
		if err != nil {
			return err
		}
		doc.Layouts = append(doc.Layouts, l)
		return nil
	case "LayoutAction":
		a, err := parseLayoutAction(dec, se)
		if err != nil {
			return err
		}
		doc.Actions = append(doc.Actions, a)
		return skipElement(dec)
	case "DisplayMove":
		m, err := parseDisplayMove(dec, se)
		if err != nil {
			return err
		}
		doc.Moves = append(doc.Moves, m)
		return skipElement(dec)
	default:
		return parseErrf(dec, "unexpected element <%s> inside <Form>", se.Name.Local)
	}
}

// skipElement consumes tokens until the matching end element for the
// start element just read, discarding them; used for leaf elements
// whose children (if any) carry no information we need (e.g. Measure).
func skipElement(dec *xml.Decoder) error {
	depth := 1
	for depth > 0 {
		t, err := dec.Token()
		if err != nil {
			return parseErrf(dec, "xml error: %v", err)
		}
		switch t.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return nil
}

func parseMeasure(dec *xml.Decoder, se xml.StartElement) (Measure, error) {
	name, err := requireAttr(dec, se, "name")
	if err != nil {
		return Measure{}, err
	}
	vs, err := requireAttr(dec, se, "value")
	if err != nil {
		return Measure{}, err
	}
	v, err := strconv.Atoi(vs)
	if err != nil || v < 0 {
		return Measure{}, parseErrf(dec, "Measure %q: invalid non-negative integer value %q", name, vs)
	}
	return Measure{Name: name, Value: v}, nil
}

func parseQuirk(dec *xml.Decoder, se xml.StartElement) (display.Quirk, error) {
	nc, err := requireAttr(dec, se, "nameContains")
	if err != nil {
		return display.Quirk{}, err
	}
	plat, err := requireAttr(dec, se, "platform")
	if err != nil {
		return display.Quirk{}, err
	}
	if !validPlatform[plat] {
		return display.Quirk{}, parseErrf(dec, "DisplayQuirk: unknown platform %q", plat)
	}
	insetStr, err := requireAttr(dec, se, "minBottomInset")
	if err != nil {
		return display.Quirk{}, err
	}
	inset, err := strconv.ParseFloat(insetStr, 64)
	if err != nil {
		return display.Quirk{}, parseErrf(dec, "DisplayQuirk: invalid minBottomInset %q", insetStr)
	}
	return display.Quirk{NameContains: nc, Platform: plat, MinBottomInset: inset}, nil
}

func parseSizeRef(dec *xml.Decoder, se xml.StartElement, name string) (*SizeRef, error) {
	v, ok := attr(se, name)
	if !ok {
		return nil, nil
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return &SizeRef{Literal: f}, nil
	}
	return &SizeRef{IsMeasure: true, MeasureName: v}, nil
}

func parseRule(dec *xml.Decoder, se xml.StartElement) (Rule, error) {
	var r Rule
	r.NameContains, _ = attr(se, "nameContains")
	if o, ok := attr(se, "whenOrientation"); ok {
		if !validOrientations[o] {
			return Rule{}, parseErrf(dec, "<%s>: unknown whenOrientation %q", se.Name.Local, o)
		}
		r.Orientation = o
	}
	var err error
	if r.MinWidth, err = parseSizeRef(dec, se, "minWidth"); err != nil {
		return Rule{}, err
	}
	if r.MinHeight, err = parseSizeRef(dec, se, "minHeight"); err != nil {
		return Rule{}, err
	}
	if r.UnderWidth, err = parseSizeRef(dec, se, "underWidth"); err != nil {
		return Rule{}, err
	}
	if r.UnderHeight, err = parseSizeRef(dec, se, "underHeight"); err != nil {
		return Rule{}, err
	}
	return r, nil
}

func parseSpace(dec *xml.Decoder, se xml.StartElement) (Space, error) {
	name, err := requireAttr(dec, se, "name")
	if err != nil {
		return Space{}, err
	}
	sp := Space{Name: name}

	for {
		t, err := dec.Token()
		if err != nil {
			return Space{}, parseErrf(dec, "xml error: %v", err)
		}
		switch e := t.(type) {
		case xml.StartElement:
			switch e.Name.Local {
			case "Match":
				r, err := parseRule(dec, e)
				if err != nil {
					return Space{}, err
				}
				sp.Match = append(sp.Match, r)
				if err := skipElement(dec); err != nil {
					return Space{}, err
				}
			case "Exclude":
				r, err := parseRule(dec, e)
				if err != nil {
					return Space{}, err
				}
				sp.Exclude = append(sp.Exclude, r)
				if err := skipElement(dec); err != nil {
					return Space{}, err
				}
			default:
				return Space{}, parseErrf(dec, "unexpected element <%s> inside <Space>", e.Name.Local)
			}
		case xml.EndElement:
			if e.Name.Local == "Space" {
				return sp, nil
			}
		}
	}
}

func parseFrame(dec *xml.Decoder, se xml.StartElement) (Frame, error) {
	name, err := requireAttr(dec, se, "name")
	if err != nil {
		return Frame{}, err
	}
	f := Frame{Name: name}

	for {
		t, err := dec.Token()
		if err != nil {
			return Frame{}, parseErrf(dec, "xml error: %v", err)
		}
		switch e := t.(type) {
		case xml.StartElement:
			if e.Name.Local != "Pane" {
				return Frame{}, parseErrf(dec, "unexpected element <%s> inside <Frame>", e.Name.Local)
			}
			p, err := parsePane(dec, e)
			if err != nil {
				return Frame{}, err
			}
			f.Panes = append(f.Panes, p)
			if err := skipElement(dec); err != nil {
				return Frame{}, err
			}
		case xml.EndElement:
			if e.Name.Local == "Frame" {
				if len(f.Panes) == 0 {
					return Frame{}, parseErrf(dec, "Frame %q has no Panes", name)
				}
				return f, nil
			}
		}
	}
}

func parsePane(dec *xml.Decoder, se xml.StartElement) (Pane, error) {
	var p Pane
	fields := []struct {
		name string
		dst  *geom.Fraction
	}{
		{"x", &p.X}, {"y", &p.Y}, {"width", &p.Width}, {"height", &p.Height},
	}
	for _, f := range fields {
		v, err := requireAttr(dec, se, f.name)
		if err != nil {
			return Pane{}, err
		}
		frac, err := geom.Parse(v)
		if err != nil {
			return Pane{}, parseErrf(dec, "Pane %s=%q: %v", f.name, v, err)
		}
		*f.dst = frac
	}
	return p, nil
}

func parseLayout(dec *xml.Decoder, se xml.StartElement) (Layout, error) {
	name, err := requireAttr(dec, se, "name")
	if err != nil {
		return Layout{}, err
	}
	l := Layout{Name: name}
	l.Space, _ = attr(se, "space")

	for {
		t, err := dec.Token()
		if err != nil {
			return Layout{}, parseErrf(dec, "xml error: %v", err)
		}
		switch e := t.(type) {
		case xml.StartElement:
			switch e.Name.Local {
			case "Needs":
				mname, err := requireAttr(dec, e, "measure")
				if err != nil {
					return Layout{}, err
				}
				l.Needs = append(l.Needs, mname)
				if err := skipElement(dec); err != nil {
					return Layout{}, err
				}
			case "Shape":
				s, err := parseShape(dec, e)
				if err != nil {
					return Layout{}, err
				}
				if len(s.Children) == 0 {
					return Layout{}, parseErrf(dec, "Layout %q: top-level Shape has no children", name)
				}
				l.Roots = append(l.Roots, s)
			default:
				return Layout{}, parseErrf(dec, "unexpected element <%s> inside <Layout>", e.Name.Local)
			}
		case xml.EndElement:
			if e.Name.Local == "Layout" {
				if len(l.Roots) == 0 {
					return Layout{}, parseErrf(dec, "Layout %q has no top-level Shape", name)
				}
				return l, nil
			}
		}
	}
}

func parseShape(dec *xml.Decoder, se xml.StartElement) (*Shape, error) {
	frame, err := requireAttr(dec, se, "frame")
	if err != nil {
		return nil, err
	}
	pred, err := parseRule(dec, se)
	if err != nil {
		return nil, err
	}
	s := &Shape{Frame: frame, Predicate: pred}

	for {
		t, err := dec.Token()
		if err != nil {
			return nil, parseErrf(dec, "xml error: %v", err)
		}
		switch e := t.(type) {
		case xml.StartElement:
			child, err := parseShapeChild(dec, e)
			if err != nil {
				return nil, err
			}
			s.Children = append(s.Children, child)
		case xml.EndElement:
			if e.Name.Local == "Shape" {
				return s, nil
			}
		}
	}
}

func parseShapeChild(dec *xml.Decoder, e xml.StartElement) (ShapeChild, error) {
	switch e.Name.Local {
	case "Shape":
		return parseShape(dec, e)
	case "Include":
		inc, err := parseInclude(dec, e)
		if err != nil {
			return nil, err
		}
		if err := skipElement(dec); err != nil {
			return nil, err
		}
		return inc, nil
	case "Leaf": // legacy: unconditional Include
		if err := skipElement(dec); err != nil {
			return nil, err
		}
		return &Include{Kind: IncludeTerminal}, nil
	case "Drop": // legacy: Include with orientation "never" (always elided)
		if err := skipElement(dec); err != nil {
			return nil, err
		}
		return &Include{Kind: IncludeTerminal, Predicate: IncludePredicate{Orientation: "never"}}, nil
	default:
		return nil, parseErrf(dec, "unexpected element <%s> inside <Shape>", e.Name.Local)
	}
}

func parseIntAttr(dec *xml.Decoder, se xml.StartElement, name string) (*int, error) {
	v, ok := attr(se, name)
	if !ok {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, parseErrf(dec, "<%s>: invalid integer %s=%q", se.Name.Local, name, v)
	}
	return &n, nil
}

func parseInclude(dec *xml.Decoder, se xml.StartElement) (*Include, error) {
	inc := &Include{Kind: IncludeTerminal}
	if l, ok := attr(se, "layout"); ok {
		inc.Kind = IncludeLayoutRef
		inc.LayoutRef = l
	}
	if o, ok := attr(se, "whenOrientation"); ok {
		if !validOrientations[o] {
			return nil, parseErrf(dec, "Include: unknown whenOrientation %q", o)
		}
		inc.Predicate.Orientation = o
	}
	inc.Predicate.NameContains, _ = attr(se, "nameContains")
	var err error
	if inc.Predicate.MinWidth, err = parseIntAttr(dec, se, "minWidth"); err != nil {
		return nil, err
	}
	if inc.Predicate.UnderWidth, err = parseIntAttr(dec, se, "underWidth"); err != nil {
		return nil, err
	}
	if inc.Predicate.MinHeight, err = parseIntAttr(dec, se, "minHeight"); err != nil {
		return nil, err
	}
	if inc.Predicate.UnderHeight, err = parseIntAttr(dec, se, "underHeight"); err != nil {
		return nil, err
	}
	return inc, nil
}

func parseLayoutAction(dec *xml.Decoder, se xml.StartElement) (LayoutAction, error) {
	key, err := requireAttr(dec, se, "key")
	if err != nil {
		return LayoutAction{}, err
	}
	layout, err := requireAttr(dec, se, "layout")
	if err != nil {
		return LayoutAction{}, err
	}
	a := LayoutAction{Key: key, Layout: layout, Traverse: "xfyf", MirrorX: "keep", MirrorY: "keep"}
	if t, ok := attr(se, "traverse"); ok {
		if !validTraverse[t] {
			return LayoutAction{}, parseErrf(dec, "LayoutAction %q: unknown traverse %q", key, t)
		}
		a.Traverse = t
	}
	if m, ok := attr(se, "mirrorX"); ok {
		if !validMirror[m] {
			return LayoutAction{}, parseErrf(dec, "LayoutAction %q: unknown mirrorX %q", key, m)
		}
		a.MirrorX = m
	}
	if m, ok := attr(se, "mirrorY"); ok {
		if !validMirror[m] {
			return LayoutAction{}, parseErrf(dec, "LayoutAction %q: unknown mirrorY %q", key, m)
		}
		a.MirrorY = m
	}
	return a, nil
}

func parseDisplayMove(dec *xml.Decoder, se xml.StartElement) (DisplayMoveBinding, error) {
	key, err := requireAttr(dec, se, "key")
	if err != nil {
		return DisplayMoveBinding{}, err
	}
	target, err := requireAttr(dec, se, "target")
	if err != nil {
		return DisplayMoveBinding{}, err
	}
	if target != "next" && target != "prev" {
		if _, err := strconv.Atoi(target); err != nil {
			return DisplayMoveBinding{}, parseErrf(dec, "DisplayMove %q: target must be next, prev, or an integer, got %q", key, target)
		}
	}
	m := DisplayMoveBinding{Key: key, Target: target, Wrap: true}
	if w, ok := attr(se, "wrap"); ok {
		b, err := strconv.ParseBool(w)
		if err != nil {
			return DisplayMoveBinding{}, parseErrf(dec, "DisplayMove %q: invalid wrap %q", key, w)
		}
		m.Wrap = b
	}
	return m, nil
}
