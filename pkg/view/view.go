package view

import (
	"github.com/go-weft/weft/pkg/scene"
)

// State is the externalized build state of a single view value. It is
// default-initialized (nil) before the first build, mutated in place by
// every subsequent build, and opaque to everything except the view that
// owns the slot.
type State = any

// View is an immutable description of a subtree to reconcile against the
// scene store.
//
// Build converges the store to the described shape given the state slot and
// the span produced last cycle, and returns the new span. Building the same
// state repeatedly with unchanged inputs is idempotent: it performs no
// shape-changing store operations, only in-place attribute refreshes.
//
// Raze releases all state and destroys every node described by prev,
// recursively razing any nested subtree state. It must be called at most
// once per state value and leaves no dangling nodes behind.
type View interface {
	Build(s *Session, state *State, prev Span) Span
	Raze(s *Session, state *State, prev Span)
}

// Nothing is a view that renders nothing.
type Nothing struct{}

func (Nothing) Build(_ *Session, _ *State, _ Span) Span {
	return Empty()
}

func (Nothing) Raze(_ *Session, _ *State, _ Span) {}

// TextContent is the attribute a text node carries.
type TextContent struct {
	Value string
}

// Text renders a single text node. When the previous build produced a single
// node that still carries a TextContent attribute, the text is mutated in
// place and the node id kept; any other previous shape is destroyed and a
// fresh node spawned. This is the general reconciliation tie-break: reuse
// requires an identical positional slot and a compatible attribute kind, and
// any mismatch forces destroy-then-recreate.
type Text string

func (t Text) Build(s *Session, _ *State, prev Span) Span {
	if id, ok := prev.Node(); ok {
		if tc, ok := scene.Get[TextContent](s.World(), id); ok {
			tc.Value = string(t)
			return prev
		}
	}

	prev.Despawn(s)
	id := s.Spawn()
	scene.Insert(s.World(), id, TextContent{Value: string(t)})
	return NodeOf(id)
}

func (t Text) Raze(s *Session, _ *State, prev Span) {
	prev.Despawn(s)
}
