package view

import (
	"reflect"

	"github.com/go-weft/weft/pkg/scene"
)

// Scope is the non-generic part of a presenter context. It carries the
// session the presenter runs under and the node whose TrackedValues records
// the presenter's shared-value reads. Hooks like [UseValue] are free
// functions over *Scope because Go methods cannot take type parameters.
type Scope struct {
	s    *Session
	node scene.NodeID
}

// Session returns the session the presenter is running under, scoped to the
// presenter's own node.
func (sc *Scope) Session() *Session {
	return sc.s
}

// Cx is the context passed to presenters: the props bound by the parent plus
// the scope needed to record dependencies while producing the view tree.
type Cx[P any] struct {
	Props P
	Scope
}

// UseValue reads the shared value of type T and records the read in the
// presenter's dependency tracker, so the subtree is rebuilt on cycles where
// that value changed and left alone on cycles where it did not.
func UseValue[T any](sc *Scope) (T, bool) {
	w := sc.s.World()
	if tv, ok := scene.Get[TrackedValues](w, sc.node); ok {
		t := reflect.TypeFor[T]()
		tv.Record(valueProbe{typ: t, seen: w.ValueVersion(t)})
	}
	return scene.Value[T](w)
}
