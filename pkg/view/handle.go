package view

import (
	"reflect"

	"github.com/go-weft/weft/pkg/scene"
)

// Presenter is a named subtree factory: given typed props it yields the view
// describing the subtree. Presenters are re-invoked on every build of their
// subtree; per-subtree memory lives in the subtree's externalized state, not
// in the presenter.
type Presenter[P any] func(cx *Cx[P]) View

// SubtreeState is the type-erased contract over one presenter+props+state
// instantiation. It lets a single attribute slot hold "some presenter
// subtree" without the driver knowing the concrete props type.
type SubtreeState interface {
	// Count returns the number of leaf nodes produced by the last build.
	Count() int

	// Nodes returns the span produced by the last build.
	Nodes(prev Span) Span

	// Build re-invokes the presenter and reconciles its view against the
	// cached span, storing the result.
	Build(s *Session, node scene.NodeID)

	// Raze tears down the cached view, its state, and every node it
	// produced. At most once per holder.
	Raze(s *Session, node scene.NodeID)

	// update rebinds the props for the next build. Reports false when the
	// concrete props type does not match this holder.
	update(props any) bool
}

// Handle is the store attribute wrapping a SubtreeState. The driver and the
// presenter view both operate on holders through Take and Put: the state is
// removed from the slot, operated on while the store is freely mutable, and
// put back afterwards.
type Handle struct {
	inner SubtreeState
}

// NewHandle binds a presenter and its props into a fresh, never-built
// handle.
func NewHandle[P any](presenter Presenter[P], props P) Handle {
	return Handle{inner: &viewState[P]{presenter: presenter, props: props}}
}

// Take removes the subtree state from the handle, leaving a placeholder.
// Returns nil when the state is already detached.
func (h *Handle) Take() SubtreeState {
	st := h.inner
	h.inner = nil
	return st
}

// Put returns a detached subtree state to the handle.
func (h *Handle) Put(st SubtreeState) {
	h.inner = st
}

// Count returns the leaf-node count of the last build, or zero while the
// state is detached.
func (h *Handle) Count() int {
	if h.inner == nil {
		return 0
	}
	return h.inner.Count()
}

// viewState binds a concrete presenter, its current props, the presenter's
// externalized per-view state, and the cached span from the previous cycle.
type viewState[P any] struct {
	presenter Presenter[P]
	props     P
	view      View
	state     State
	nodes     Span
}

func (vs *viewState[P]) Count() int {
	return vs.nodes.Count()
}

func (vs *viewState[P]) Nodes(_ Span) Span {
	return vs.nodes
}

func (vs *viewState[P]) update(props any) bool {
	p, ok := props.(P)
	if !ok {
		return false
	}
	vs.props = p
	return true
}

func (vs *viewState[P]) Build(s *Session, node scene.NodeID) {
	w := s.World()
	if tv, ok := scene.Get[TrackedValues](w, node); ok {
		tv.Reset()
	}

	child := s.rescope(node)
	cx := &Cx[P]{Props: vs.props, Scope: Scope{s: child, node: node}}
	next := vs.presenter(cx)
	if next == nil {
		next = Nothing{}
	}

	if vs.view != nil && reflect.TypeOf(vs.view) != reflect.TypeOf(next) {
		// The presenter switched view kinds; the old state cannot be
		// carried across, so tear the old subtree down first.
		vs.view.Raze(child, &vs.state, vs.nodes)
		vs.state = nil
		vs.nodes = Empty()
	}

	vs.view = next
	vs.nodes = next.Build(child, &vs.state, vs.nodes)
}

func (vs *viewState[P]) Raze(s *Session, node scene.NodeID) {
	if vs.view == nil {
		return
	}
	child := s.rescope(node)
	vs.view.Raze(child, &vs.state, vs.nodes)
	vs.view = nil
	vs.state = nil
	vs.nodes = Empty()
}
