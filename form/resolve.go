// form/resolve.go
// Copyright(c) 2022-2026 PaneBoard contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package form

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/paneboard/paneboard/display"
	"github.com/paneboard/paneboard/errkind"
	"github.com/paneboard/paneboard/geom"
	"github.com/paneboard/paneboard/util"
)

// maxIncludeDepth bounds Include-into-Layout recursion defensively;
// the spec does not mandate cycle detection (neither does the source),
// so an implementer must bound depth and treat overrun as a realisation
// failure (§9).
const maxIncludeDepth = 16

// session is the Form's layout-cycling state (§3 "Layout session"):
// optional (current key, next-pane-index), reset whenever the triggering
// modifier chord is released.
type session struct {
	active    bool
	key       string
	nextIndex int
}

// Form is the runtime, resolved form of a Document (§4.5): the layouts'
// Shape trees, Spaces, Frames, Measures, platform-filtered quirks, and
// the key->binding tables, plus the one layout-session slot and an
// optional memoization cache.
type Form struct {
	mu sync.Mutex

	layouts  map[string]Layout
	spaces   map[string]Space
	frames   map[string]Frame
	measures map[string]int
	quirks   []display.Quirk
	actions  map[string]LayoutAction
	moves    map[string]DisplayMoveBinding

	sess  session
	epoch uint64

	cache *lru.Cache[string, []geom.PaneFrac]
}

// cacheSize bounds the memoization cache to a handful of entries per
// distinct (key, display) pair seen recently (§9 open question,
// SPEC_FULL "Form memoization").
const cacheSize = 256

// Empty returns a Form with every key unbound, the fail-closed result of
// a validation failure (§4.4: "the Form resolver produces an empty
// runtime Form... rather than a partially broken one").
func Empty() *Form {
	c, _ := lru.New[string, []geom.PaneFrac](cacheSize)
	return &Form{
		layouts:  map[string]Layout{},
		spaces:   map[string]Space{},
		frames:   map[string]Frame{},
		measures: map[string]int{},
		actions:  map[string]LayoutAction{},
		moves:    map[string]DisplayMoveBinding{},
		cache:    c,
	}
}

// Resolve transforms a validated Document into a runtime Form (§4.5).
// Callers must have already run Validate and confirmed it returned no
// errors; Resolve does not re-validate.
func Resolve(doc *Document, platform string) *Form {
	f := Empty()

	for _, m := range doc.Measures {
		f.measures[m.Name] = m.Value
	}
	for _, s := range doc.Spaces {
		f.spaces[s.Name] = s
	}
	for _, fr := range doc.Frames {
		f.frames[fr.Name] = fr
	}
	for _, l := range doc.Layouts {
		f.layouts[l.Name] = l
	}
	for _, a := range doc.Actions {
		f.actions[a.Key] = a
	}
	for _, m := range doc.Moves {
		f.moves[m.Key] = m
	}
	for _, q := range doc.Quirks {
		if q.Platform == platform {
			f.quirks = append(f.quirks, q)
		}
	}

	return f
}

// Quirks returns the platform-filtered DisplayQuirk list resolved into
// f, for constructing the platform display gatherer at bootstrap.
func (f *Form) Quirks() []display.Quirk {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.quirks
}

// Action reports the LayoutAction bound to key, if any (§4.9 step 10:
// the event pipeline must distinguish a LayoutAction binding from a
// DisplayMove binding before enqueueing the corresponding job).
func (f *Form) Action(key string) (LayoutAction, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.actions[key]
	return a, ok
}

// Move reports the DisplayMoveBinding bound to key, if any.
func (f *Form) Move(key string) (DisplayMoveBinding, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.moves[key]
	return m, ok
}

// ResetSession clears the layout-cycling session, as required when the
// triggering modifier chord is released (§3, §4.9 step 8), and bumps the
// memoization epoch so stale session-index-dependent cache entries are
// no longer consulted.
func (f *Form) ResetSession() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sess = session{}
	f.epoch++
}

// orientationOf classifies a display as landscape (width >= height) or
// portrait.
func orientationOf(props display.Props) string {
	if props.Width >= props.Height {
		return "landscape"
	}
	return "portrait"
}

func evalRule(r Rule, props display.Props, measures map[string]int) bool {
	if r.Empty() {
		return true
	}
	if r.Orientation != "" {
		if r.Orientation == "never" || r.Orientation != orientationOf(props) {
			return false
		}
	}
	if r.NameContains != "" && !strings.Contains(strings.ToLower(props.Name), strings.ToLower(r.NameContains)) {
		return false
	}
	if r.MinWidth != nil && props.Width < r.MinWidth.Resolve(measures) {
		return false
	}
	if r.MinHeight != nil && props.Height < r.MinHeight.Resolve(measures) {
		return false
	}
	if r.UnderWidth != nil && props.Width >= r.UnderWidth.Resolve(measures) {
		return false
	}
	if r.UnderHeight != nil && props.Height >= r.UnderHeight.Resolve(measures) {
		return false
	}
	return true
}

func evalSpace(sp Space, props display.Props, measures map[string]int) bool {
	matched := len(sp.Match) == 0
	for _, r := range sp.Match {
		if evalRule(r, props, measures) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}
	for _, r := range sp.Exclude {
		if evalRule(r, props, measures) {
			return false
		}
	}
	return true
}

func evalIncludePredicate(p IncludePredicate, props display.Props) bool {
	if p.Orientation != "" {
		if p.Orientation == "never" || p.Orientation != orientationOf(props) {
			return false
		}
	}
	if p.NameContains != "" && !strings.Contains(strings.ToLower(props.Name), strings.ToLower(p.NameContains)) {
		return false
	}
	if p.MinWidth != nil && props.Width < float64(*p.MinWidth) {
		return false
	}
	if p.UnderWidth != nil && props.Width >= float64(*p.UnderWidth) {
		return false
	}
	if p.MinHeight != nil && props.Height < float64(*p.MinHeight) {
		return false
	}
	if p.UnderHeight != nil && props.Height >= float64(*p.UnderHeight) {
		return false
	}
	return true
}

// flatten walks s with current rectangle rect, composing and recursing
// per pane, and appends surviving leaf rectangles to out (§4.5 step 3).
func (f *Form) flatten(s *Shape, rect geom.FracRect, props display.Props, depth int, out []geom.FracRect) ([]geom.FracRect, error) {
	if depth > maxIncludeDepth {
		return out, fmt.Errorf("%w: include recursion exceeded %d levels", errkind.ErrCannotComplete, maxIncludeDepth)
	}
	if !evalRule(s.Predicate, props, f.measures) {
		// A failing Shape-level predicate prunes the subtree (§4.5 step 4).
		return out, nil
	}

	frame, ok := f.frames[s.Frame]
	if !ok {
		return out, fmt.Errorf("%w: unknown frame %q", errkind.ErrCannotComplete, s.Frame)
	}
	if len(s.Children) != len(frame.Panes) {
		return out, fmt.Errorf("%w: shape/frame arity mismatch for frame %q", errkind.ErrCannotComplete, s.Frame)
	}

	var err error
	for i, pane := range frame.Panes {
		composed := geom.Compose(rect, geom.FracRect{X: pane.X, Y: pane.Y, Width: pane.Width, Height: pane.Height})
		switch child := s.Children[i].(type) {
		case *Shape:
			out, err = f.flatten(child, composed, props, depth+1, out)
			if err != nil {
				return out, err
			}
		case *Include:
			if !evalIncludePredicate(child.Predicate, props) {
				continue // elided (§4.5 step 3)
			}
			if child.Kind == IncludeLayoutRef {
				ref, ok := f.layouts[child.LayoutRef]
				if !ok {
					return out, fmt.Errorf("%w: include references unknown layout %q", errkind.ErrCannotComplete, child.LayoutRef)
				}
				for _, root := range ref.Roots {
					out, err = f.flatten(root, composed, props, depth+1, out)
					if err != nil {
						return out, err
					}
				}
			} else {
				out = append(out, composed)
			}
		}
	}
	return out, nil
}

// traverseOrder decodes a traverse string like "xfyf" into its primary
// and secondary axis/direction (§4.5 step 7).
type traverseOrder struct {
	primaryAxis    byte // 'x' or 'y'
	primaryForward bool
	secondaryAxis  byte
	secondaryFwd   bool
}

func parseTraverse(s string) traverseOrder {
	if len(s) != 4 {
		return traverseOrder{primaryAxis: 'x', primaryForward: true, secondaryAxis: 'y', secondaryFwd: true}
	}
	return traverseOrder{
		primaryAxis:    s[0],
		primaryForward: s[1] == 'f',
		secondaryAxis:  s[2],
		secondaryFwd:   s[3] == 'f',
	}
}

func centerOn(r geom.FracRect, axis byte) geom.Fraction {
	if axis == 'x' {
		return r.CenterX()
	}
	return r.CenterY()
}

// sortPanes orders rects by area descending, then by (traverse order,
// pane centres) among panes of equal area (§4.5 step 7, §8 sort
// stability property).
func sortPanes(rects []geom.FracRect, t traverseOrder) {
	sort.SliceStable(rects, func(i, j int) bool {
		ai, aj := rects[i].Area(), rects[j].Area()
		if !geom.Equal(ai, aj) {
			return geom.Less(aj, ai) // descending area
		}
		pc := centerOn(rects[i], t.primaryAxis)
		qc := centerOn(rects[j], t.primaryAxis)
		if !geom.Equal(pc, qc) {
			if t.primaryForward {
				return geom.Less(pc, qc)
			}
			return geom.Less(qc, pc)
		}
		sc := centerOn(rects[i], t.secondaryAxis)
		tc := centerOn(rects[j], t.secondaryAxis)
		if t.secondaryFwd {
			return geom.Less(sc, tc)
		}
		return geom.Less(tc, sc)
	})
}

// Realize computes the ordered, mirrored, sorted PaneFrac list for the
// LayoutAction bound to key against the display described by props and
// dispIndex (§4.5). A cache hit is behaviourally identical to
// recomputation: the full display Props (name, width, and height) feed
// the cache key alongside dispIndex and the session epoch, since Space
// evaluation and Include predicates can branch on any of them.
func (f *Form) Realize(key string, props display.Props, dispIndex int) ([]geom.PaneFrac, error) {
	f.mu.Lock()
	action, ok := f.actions[key]
	if !ok {
		f.mu.Unlock()
		return nil, fmt.Errorf("%w: no LayoutAction bound to key %q", errkind.ErrNoTarget, key)
	}
	epoch := f.epoch
	f.mu.Unlock()

	propsHash := util.HashString64(fmt.Sprintf("%s|%g|%g", props.Name, props.Width, props.Height))
	cacheKey := fmt.Sprintf("%s|%d|%d|%016x", key, dispIndex, epoch, propsHash)
	if v, ok := f.cache.Get(cacheKey); ok {
		return v, nil
	}

	f.mu.Lock()
	layout, ok := f.layouts[action.Layout]
	if !ok {
		f.mu.Unlock()
		return nil, fmt.Errorf("%w: LayoutAction %q references unresolved layout %q", errkind.ErrCannotComplete, key, action.Layout)
	}
	if layout.Space != "" {
		sp, ok := f.spaces[layout.Space]
		if !ok || !evalSpace(sp, props, f.measures) {
			f.mu.Unlock()
			return nil, fmt.Errorf("%w: layout %q's space does not match display %q", errkind.ErrNoTarget, layout.Name, props.Name)
		}
	}

	var rects []geom.FracRect
	var err error
	for _, root := range layout.Roots {
		rects, err = f.flatten(root, geom.Unit, props, 0, rects)
		if err != nil {
			f.mu.Unlock()
			return nil, err
		}
	}
	f.mu.Unlock()

	if len(rects) == 0 {
		return nil, fmt.Errorf("%w: layout %q produced no panes for display %q", errkind.ErrCannotComplete, layout.Name, props.Name)
	}

	// Sort by the traverse order using each pane's pre-mirror identity
	// (area is mirror-invariant but a flipped pane's centre moves from c
	// to 1-c, so fixing the order before mirroring keeps the *cycling*
	// order tied to logical pane identity rather than to post-mirror
	// screen position), then mirror each
	// already-ordered rectangle in place. This reproduces §8 scenario 2:
	// with mirrorX=flip, the first pane returned is the one now sitting
	// at the top-right of the screen, i.e. the pre-mirror top-left pane.
	sortPanes(rects, parseTraverse(action.Traverse))

	if action.MirrorX == "flip" {
		for i := range rects {
			rects[i] = rects[i].MirrorX()
		}
	}
	if action.MirrorY == "flip" {
		for i := range rects {
			rects[i] = rects[i].MirrorY()
		}
	}

	panes := make([]geom.PaneFrac, len(rects))
	for i, r := range rects {
		panes[i] = r.ToPaneFrac()
	}

	f.cache.Add(cacheKey, panes)
	return panes, nil
}

// GetNextPane advances the Form's layout session and returns the next
// pane in the cycling order for key (§4.5 "Layout session cycling").
func (f *Form) GetNextPane(key string, props display.Props, dispIndex int) (geom.PaneFrac, error) {
	panes, err := f.Realize(key, props, dispIndex)
	if err != nil {
		return geom.PaneFrac{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var idx int
	if f.sess.active && f.sess.key == key {
		idx = f.sess.nextIndex % len(panes)
		f.sess.nextIndex++
	} else {
		f.sess = session{active: true, key: key, nextIndex: 1}
		idx = 0
	}
	return panes[idx], nil
}

// ExecuteDisplayMove performs the index arithmetic for the DisplayMove
// bound to key (§4.5 "DisplayMove execution", §8 "DisplayMove wrap").
func (f *Form) ExecuteDisplayMove(key string, curIndex, total int) (target int, ok bool, err error) {
	f.mu.Lock()
	mv, bound := f.moves[key]
	f.mu.Unlock()
	if !bound {
		return 0, false, fmt.Errorf("%w: no DisplayMove bound to key %q", errkind.ErrNoTarget, key)
	}
	if total <= 0 {
		return 0, false, nil
	}

	switch mv.Target {
	case "next":
		t := curIndex + 1
		if t >= total {
			if !mv.Wrap {
				return 0, false, nil
			}
			t %= total
		}
		return t, true, nil
	case "prev":
		t := curIndex - 1
		if t < 0 {
			if !mv.Wrap {
				return 0, false, nil
			}
			t = (t + total) % total
		}
		return t, true, nil
	default:
		idx, _ := strconv.Atoi(mv.Target)
		if idx < 0 || idx >= total {
			return 0, false, fmt.Errorf("%w: DisplayMove target index %d out of range [0,%d)", errkind.ErrIndexOutOfRange, idx, total)
		}
		return idx, true, nil
	}
}
