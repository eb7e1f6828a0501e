package view

import (
	"reflect"

	"github.com/go-weft/weft/pkg/scene"
)

// ValueProbe answers "has the shared value I observed changed since I read
// it." Probes are recorded by presenter reads and evaluated by the driver's
// dirty scan. Evaluation is synchronous and side-effect free.
type ValueProbe interface {
	Changed(w *scene.World) bool
}

// TrackedValues records which shared values a subtree read while its
// presenter last ran. It is attached as an attribute on the same node as
// the subtree's Handle and is empty until the first build. The driver
// rebuilds a subtree only when one of its recorded probes reports a change,
// so unrelated value writes never trigger a rebuild.
type TrackedValues struct {
	probes []ValueProbe
}

// Reset clears the recorded probes. Called at the start of every build so
// the tracker reflects exactly the reads of the latest presenter run.
func (t *TrackedValues) Reset() {
	t.probes = t.probes[:0]
}

// Record adds a probe for a shared value read.
func (t *TrackedValues) Record(p ValueProbe) {
	t.probes = append(t.probes, p)
}

// Changed reports whether any recorded probe observed a change.
func (t *TrackedValues) Changed(w *scene.World) bool {
	for _, p := range t.probes {
		if p.Changed(w) {
			return true
		}
	}
	return false
}

// Len returns the number of recorded probes.
func (t *TrackedValues) Len() int {
	return len(t.probes)
}

// valueProbe compares a value registry version against the version seen at
// read time.
type valueProbe struct {
	typ  reflect.Type
	seen uint64
}

func (p valueProbe) Changed(w *scene.World) bool {
	return w.ValueVersion(p.typ) != p.seen
}
