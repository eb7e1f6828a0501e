package view

import (
	"slices"

	"github.com/go-weft/weft/pkg/errors"
	"github.com/go-weft/weft/pkg/scene"
)

// Style is an opaque style handle. The engine only attaches styles to nodes;
// matching and computing derived visual attributes is the style cascade's
// business, outside this package.
type Style interface {
	Name() string
}

// StyleClass is a plain named style.
type StyleClass string

func (c StyleClass) Name() string { return string(c) }

// ElementStyles is the attribute the external style cascade consumes.
type ElementStyles struct {
	Styles []Style
}

// Styled applies a style set to every node produced by the inner view.
// The ElementStyles attribute is only rewritten when the set differs, so an
// unchanged rebuild leaves the attribute untouched.
func Styled(inner View, styles ...Style) View {
	return styledView{inner: inner, styles: styles}
}

type styledView struct {
	inner  View
	styles []Style
}

func (v styledView) Build(s *Session, state *State, prev Span) Span {
	span := v.inner.Build(s, state, prev)
	w := s.World()
	span.EachNode(func(id scene.NodeID) {
		if es, ok := scene.Get[ElementStyles](w, id); ok {
			if !sameStyles(es.Styles, v.styles) {
				es.Styles = slices.Clone(v.styles)
			}
			return
		}
		scene.Insert(w, id, ElementStyles{Styles: slices.Clone(v.styles)})
	})
	return span
}

func (v styledView) Raze(s *Session, state *State, prev Span) {
	v.inner.Raze(s, state, prev)
}

func sameStyles(a, b []Style) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name() != b[i].Name() {
			return false
		}
	}
	return true
}

// Insert attaches an attribute of type T to every node produced by the inner
// view. The insert is idempotent: nodes already carrying a T keep theirs.
func Insert[T any](inner View, value T) View {
	return insertView[T]{inner: inner, value: value}
}

// Reinsert is Insert with replacement: the attribute is written on every
// build even when one is already present.
func Reinsert[T any](inner View, value T) View {
	return insertView[T]{inner: inner, value: value, replace: true}
}

type insertView[T any] struct {
	inner   View
	value   T
	replace bool
}

func (v insertView[T]) Build(s *Session, state *State, prev Span) Span {
	span := v.inner.Build(s, state, prev)
	w := s.World()
	span.EachNode(func(id scene.NodeID) {
		if v.replace || !scene.Has[T](w, id) {
			scene.Insert(w, id, v.value)
		}
	})
	return span
}

func (v insertView[T]) Raze(s *Session, state *State, prev Span) {
	v.inner.Raze(s, state, prev)
}

// InsertBundle attaches a heterogeneous set of attributes to the single node
// produced by the inner view. The bundle is written when the node first
// appears and again whenever the output node id changes, never on an
// unchanged rebuild. Applying a bundle to a fragment is a programming error
// and panics with a shape signal.
func InsertBundle(inner View, attrs ...any) View {
	return bundleView{inner: inner, attrs: attrs}
}

type bundleView struct {
	inner View
	attrs []any
}

type bundleState struct {
	inner State
	last  Span
}

func (v bundleView) Build(s *Session, state *State, prev Span) Span {
	st, ok := (*state).(*bundleState)
	if !ok {
		if !prev.IsEmpty() {
			prev.Despawn(s)
			prev = Empty()
		}
		st = &bundleState{}
		*state = st
	}

	span := v.inner.Build(s, &st.inner, prev)
	if !span.Equal(st.last) {
		st.last = span
		v.apply(s, span)
	}
	return span
}

func (v bundleView) apply(s *Session, span Span) {
	id, ok := span.Node()
	if !ok {
		if span.IsEmpty() {
			return
		}
		panic(errors.Shape("view.InsertBundle", "can only insert a bundle into a single node, got %s", span))
	}
	w := s.World()
	for _, attr := range v.attrs {
		scene.InsertDyn(w, id, attr)
	}
}

func (v bundleView) Raze(s *Session, state *State, prev Span) {
	st, ok := (*state).(*bundleState)
	if !ok {
		prev.Despawn(s)
		return
	}
	v.inner.Raze(s, &st.inner, prev)
	*state = nil
}

// With registers a callback invoked for every node produced by the inner
// view, on every build. Typically used to adjust attributes on the produced
// nodes.
func With(inner View, fn func(*Session, scene.NodeID)) View {
	return withView{inner: inner, fn: fn}
}

type withView struct {
	inner View
	fn    func(*Session, scene.NodeID)
}

func (v withView) Build(s *Session, state *State, prev Span) Span {
	span := v.inner.Build(s, state, prev)
	if v.fn != nil {
		span.EachNode(func(id scene.NodeID) {
			v.fn(s, id)
		})
	}
	return span
}

func (v withView) Raze(s *Session, state *State, prev Span) {
	v.inner.Raze(s, state, prev)
}

// Once registers a callback invoked for each produced node only when that
// node first appears in the output, including when a rebuild replaced the
// node with a fresh one.
func Once(inner View, fn func(*Session, scene.NodeID)) View {
	return onceView{inner: inner, fn: fn}
}

type onceView struct {
	inner View
	fn    func(*Session, scene.NodeID)
}

type onceState struct {
	inner   State
	applied map[scene.NodeID]struct{}
}

func (v onceView) Build(s *Session, state *State, prev Span) Span {
	st, ok := (*state).(*onceState)
	if !ok {
		if !prev.IsEmpty() {
			prev.Despawn(s)
			prev = Empty()
		}
		st = &onceState{applied: make(map[scene.NodeID]struct{})}
		*state = st
	}

	span := v.inner.Build(s, &st.inner, prev)
	next := make(map[scene.NodeID]struct{}, span.Count())
	span.EachNode(func(id scene.NodeID) {
		next[id] = struct{}{}
		if _, seen := st.applied[id]; !seen && v.fn != nil {
			v.fn(s, id)
		}
	})
	st.applied = next
	return span
}

func (v onceView) Raze(s *Session, state *State, prev Span) {
	st, ok := (*state).(*onceState)
	if !ok {
		prev.Despawn(s)
		return
	}
	v.inner.Raze(s, &st.inner, prev)
	*state = nil
}
