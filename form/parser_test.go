// form/parser_test.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package form

import (
	"strings"
	"testing"
)

const sampleXML = `<Form>
  <Measure name="menuBarHeight" value="25"/>
  <DisplayQuirk nameContains="SomeTV" platform="macos" minBottomInset="60"/>
  <Space name="wide">
    <Match minWidth="1600"/>
  </Space>
  <Frame name="grid2x2">
    <Pane x="0" y="0" width="1/2" height="1/2"/>
    <Pane x="1/2" y="0" width="1/2" height="1/2"/>
    <Pane x="0" y="1/2" width="1/2" height="1/2"/>
    <Pane x="1/2" y="1/2" width="1/2" height="1/2"/>
  </Frame>
  <Layout name="home" space="wide">
    <Shape frame="grid2x2">
      <Include/>
      <Include/>
      <Include/>
      <Include/>
    </Shape>
  </Layout>
  <LayoutAction key="h" layout="home" traverse="xfyf" mirrorX="keep" mirrorY="keep"/>
  <DisplayMove key="right" target="next" wrap="true"/>
</Form>`

func TestParseSample(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleXML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Measures) != 1 || doc.Measures[0].Name != "menuBarHeight" || doc.Measures[0].Value != 25 {
		t.Errorf("Measures = %+v", doc.Measures)
	}
	if len(doc.Quirks) != 1 || doc.Quirks[0].MinBottomInset != 60 {
		t.Errorf("Quirks = %+v", doc.Quirks)
	}
	if len(doc.Spaces) != 1 || len(doc.Spaces[0].Match) != 1 {
		t.Errorf("Spaces = %+v", doc.Spaces)
	}
	if len(doc.Frames) != 1 || len(doc.Frames[0].Panes) != 4 {
		t.Errorf("Frames = %+v", doc.Frames)
	}
	if len(doc.Layouts) != 1 || len(doc.Layouts[0].Roots) != 1 {
		t.Errorf("Layouts = %+v", doc.Layouts)
	}
	if len(doc.Actions) != 1 || doc.Actions[0].Key != "h" {
		t.Errorf("Actions = %+v", doc.Actions)
	}
	if len(doc.Moves) != 1 || doc.Moves[0].Target != "next" {
		t.Errorf("Moves = %+v", doc.Moves)
	}

	if errs := Validate(doc); len(errs) != 0 {
		t.Errorf("unexpected validation errors: %v", errs)
	}
}

func TestParseMissingAttribute(t *testing.T) {
	xml := `<Form><Measure value="1"/></Form>`
	_, err := Parse(strings.NewReader(xml))
	if err == nil {
		t.Fatal("expected error for missing name attribute")
	}
	if _, isPE := err.(*ParseErr); !isPE {
		t.Fatalf("expected *ParseErr, got %T: %v", err, err)
	}
}

func TestParseZeroDenominator(t *testing.T) {
	xml := `<Form><Frame name="f"><Pane x="0" y="0" width="1/0" height="1"/></Frame></Form>`
	_, err := Parse(strings.NewReader(xml))
	if err == nil {
		t.Fatal("expected error for zero denominator")
	}
}

func TestParseUnknownOrientation(t *testing.T) {
	xml := `<Form><Space name="s"><Match whenOrientation="sideways"/></Space></Form>`
	_, err := Parse(strings.NewReader(xml))
	if err == nil {
		t.Fatal("expected error for unknown orientation")
	}
}

func TestParseEmptyFrame(t *testing.T) {
	xml := `<Form><Frame name="empty"></Frame></Form>`
	_, err := Parse(strings.NewReader(xml))
	if err == nil {
		t.Fatal("expected error for empty frame")
	}
}

func TestParseLegacyLeafAndDrop(t *testing.T) {
	xml := `<Form>
  <Frame name="f2">
    <Pane x="0" y="0" width="1" height="1/2"/>
    <Pane x="0" y="1/2" width="1" height="1/2"/>
  </Frame>
  <Layout name="l">
    <Shape frame="f2">
      <Leaf/>
      <Drop/>
    </Shape>
  </Layout>
</Form>`
	doc, err := Parse(strings.NewReader(xml))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	shape := doc.Layouts[0].Roots[0]
	if len(shape.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(shape.Children))
	}
	leaf, ok := shape.Children[0].(*Include)
	if !ok || leaf.Kind != IncludeTerminal || leaf.Predicate.Orientation != "" {
		t.Errorf("Leaf compiled incorrectly: %+v", leaf)
	}
	drop, ok := shape.Children[1].(*Include)
	if !ok || drop.Predicate.Orientation != "never" {
		t.Errorf("Drop compiled incorrectly: %+v", drop)
	}
}

func TestValidateUndefinedReferences(t *testing.T) {
	doc := &Document{
		Layouts: []Layout{{Name: "l", Space: "missing", Needs: []string{"m"}}},
		Actions: []LayoutAction{{Key: "k", Layout: "nope"}},
	}
	errs := Validate(doc)
	if len(errs) < 3 {
		t.Fatalf("expected at least 3 validation errors, got %d: %v", len(errs), errs)
	}
}

func TestValidateArityMismatch(t *testing.T) {
	doc := &Document{
		Frames: []Frame{quadrantFrame()},
		Layouts: []Layout{{Name: "l", Roots: []*Shape{{
			Frame:    "grid2x2",
			Children: []ShapeChild{&Include{Kind: IncludeTerminal}}, // only 1, frame has 4 panes
		}}}},
	}
	errs := Validate(doc)
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 arity error, got %d: %v", len(errs), errs)
	}
}
