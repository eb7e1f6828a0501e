package view

import (
	"github.com/go-weft/weft/pkg/errors"
	"github.com/go-weft/weft/pkg/scene"
)

// Bind attaches typed props to a presenter and returns the resulting view.
//
// On first build the view spawns a node under the caller's current node,
// attaches a fresh dependency tracker and a Handle holding the presenter's
// subtree state, and records the node id in its slot. Every build rebinds
// the props, takes the subtree state out of the store, builds it, and puts
// it back; the presenter's output nodes become children of the subtree's own
// node, so the bound view always contributes a single node to its parent.
func Bind[P any](presenter Presenter[P], props P) View {
	return &bindView[P]{presenter: presenter, props: props}
}

type bindView[P any] struct {
	presenter Presenter[P]
	props     P
}

func (b *bindView[P]) Build(s *Session, state *State, prev Span) Span {
	w := s.World()

	id, ok := (*state).(scene.NodeID)
	if !ok || !w.Alive(id) {
		if !prev.IsEmpty() {
			prev.Despawn(s)
		}
		id = s.Spawn()
		scene.Insert(w, id, TrackedValues{})
		scene.Insert(w, id, NewHandle(b.presenter, b.props))
		*state = id
	}

	h, ok := scene.Get[Handle](w, id)
	if !ok {
		// Slot lost its handle; nothing to render this cycle.
		return Empty()
	}
	inner := h.Take()
	if inner == nil {
		// The driver detached this holder for its own rebuild this cycle.
		// The subtree node and its previous output still exist, so the
		// parent keeps its single-node shape.
		return NodeOf(id)
	}
	if !inner.update(b.props) {
		h.Put(inner)
		err := errors.Shape("view.Bind", "subtree holder does not accept props of type %T", b.props)
		err.Node = uint64(id)
		panic(err)
	}

	inner.Build(s, id)

	// The node may have been destroyed by the build itself; only put the
	// state back if the slot still exists.
	if h, ok := scene.Get[Handle](w, id); ok {
		h.Put(inner)
	}
	return NodeOf(id)
}

func (b *bindView[P]) Raze(s *Session, state *State, prev Span) {
	id, ok := (*state).(scene.NodeID)
	if !ok {
		prev.Despawn(s)
		return
	}
	w := s.World()
	if h, ok := scene.Get[Handle](w, id); ok {
		if inner := h.Take(); inner != nil {
			inner.Raze(s, id)
		}
	}
	s.Despawn(id)
	*state = nil
}
