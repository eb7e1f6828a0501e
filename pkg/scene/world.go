package scene

import (
	"reflect"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/go-weft/weft/pkg/errors"
)

// NodeID addresses a node in the store. The zero value means "no node".
type NodeID uint64

// None is the absent node id.
const None NodeID = 0

// Stats counts shape-changing store operations. The reconciliation tests use
// the deltas to verify that an unchanged build performs zero node creations
// and destructions.
type Stats struct {
	Spawned   uint64
	Despawned uint64
}

type node struct {
	parent   NodeID
	children []NodeID
	attrs    map[reflect.Type]any
}

// World is an in-memory scene-graph store.
//
// World is NOT safe for concurrent use. The engine guarantees exclusive
// access during a cycle by threading a single session context through every
// recursive build; anything else (debug servers, recorders) must consume
// snapshots taken between cycles.
type World struct {
	nodes  map[NodeID]*node
	nextID NodeID
	values map[reflect.Type]*valueEntry
	stats  Stats
	logger *log.Logger
}

// NewWorld creates an empty store. A nil logger falls back to log.Default().
func NewWorld(logger *log.Logger) *World {
	if logger == nil {
		logger = log.Default()
	}
	return &World{
		nodes:  make(map[NodeID]*node),
		values: make(map[reflect.Type]*valueEntry),
		logger: logger,
	}
}

// Logger returns the logger the store reports inconsistencies through.
func (w *World) Logger() *log.Logger {
	return w.logger
}

// Spawn creates a node under parent and returns its id.
// Pass None to create a root node.
func (w *World) Spawn(parent NodeID) NodeID {
	w.nextID++
	id := w.nextID
	w.nodes[id] = &node{parent: parent, attrs: make(map[reflect.Type]any)}
	if p, ok := w.nodes[parent]; ok {
		p.children = append(p.children, id)
	}
	w.stats.Spawned++
	return id
}

// Despawn destroys a node and, recursively, all of its descendants.
// Despawning a dead or absent id is a no-op; a subtree razed after its
// owning node was destroyed by another party must not fail.
func (w *World) Despawn(id NodeID) {
	n, ok := w.nodes[id]
	if !ok {
		return
	}
	if p, ok := w.nodes[n.parent]; ok {
		if i := slices.Index(p.children, id); i >= 0 {
			p.children = slices.Delete(p.children, i, i+1)
		}
	}
	w.despawnSubtree(id)
}

func (w *World) despawnSubtree(id NodeID) {
	n, ok := w.nodes[id]
	if !ok {
		return
	}
	for _, child := range n.children {
		w.despawnSubtree(child)
	}
	delete(w.nodes, id)
	w.stats.Despawned++
}

// Alive reports whether id refers to a live node.
func (w *World) Alive(id NodeID) bool {
	_, ok := w.nodes[id]
	return ok
}

// Parent returns the parent of id, or None.
func (w *World) Parent(id NodeID) NodeID {
	if n, ok := w.nodes[id]; ok {
		return n.parent
	}
	return None
}

// Children returns the ordered child list of id.
func (w *World) Children(id NodeID) []NodeID {
	if n, ok := w.nodes[id]; ok {
		return slices.Clone(n.children)
	}
	return nil
}

// Roots returns all live nodes without a live parent, in id order.
func (w *World) Roots() []NodeID {
	var roots []NodeID
	for id, n := range w.nodes {
		if _, ok := w.nodes[n.parent]; !ok {
			roots = append(roots, id)
		}
	}
	slices.Sort(roots)
	return roots
}

// SingleRoot returns the unique root node. When more than one root exists
// where exactly one was expected, the inconsistency is reported and logged
// and no root is returned.
func (w *World) SingleRoot() (NodeID, bool) {
	roots := w.Roots()
	switch len(roots) {
	case 0:
		return None, false
	case 1:
		return roots[0], true
	default:
		err := errors.Store("scene.SingleRoot", "expected one root, found %d", len(roots))
		errors.Report(err)
		w.logger.Warn("ambiguous scene root", "roots", len(roots))
		return None, false
	}
}

// NodeCount returns the number of live nodes.
func (w *World) NodeCount() int {
	return len(w.nodes)
}

// Stats returns the cumulative spawn/despawn counters.
func (w *World) Stats() Stats {
	return w.stats
}

// AttrTypes returns the sorted type names of the attributes on id.
func (w *World) AttrTypes(id NodeID) []string {
	n, ok := w.nodes[id]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(n.attrs))
	for t := range n.attrs {
		names = append(names, t.String())
	}
	slices.Sort(names)
	return names
}

// Insert attaches an attribute of type T to the node, replacing any existing
// attribute of the same type.
func Insert[T any](w *World, id NodeID, value T) bool {
	n, ok := w.nodes[id]
	if !ok {
		return false
	}
	n.attrs[reflect.TypeFor[T]()] = &value
	return true
}

// InsertDyn attaches an attribute whose type is only known at runtime.
// Used by bundle insertion, where the attribute set is heterogeneous.
func InsertDyn(w *World, id NodeID, value any) bool {
	n, ok := w.nodes[id]
	if !ok || value == nil {
		return false
	}
	rt := reflect.TypeOf(value)
	ptr := reflect.New(rt)
	ptr.Elem().Set(reflect.ValueOf(value))
	n.attrs[rt] = ptr.Interface()
	return true
}

// Get returns a mutable reference to the node's attribute of type T.
func Get[T any](w *World, id NodeID) (*T, bool) {
	n, ok := w.nodes[id]
	if !ok {
		return nil, false
	}
	v, ok := n.attrs[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	return v.(*T), true
}

// Has reports whether the node carries an attribute of type T.
func Has[T any](w *World, id NodeID) bool {
	_, ok := Get[T](w, id)
	return ok
}

// HasDyn reports whether the node carries an attribute of the given type.
func HasDyn(w *World, id NodeID, t reflect.Type) bool {
	n, ok := w.nodes[id]
	if !ok {
		return false
	}
	_, ok = n.attrs[t]
	return ok
}

// Remove detaches the node's attribute of type T.
func Remove[T any](w *World, id NodeID) bool {
	n, ok := w.nodes[id]
	if !ok {
		return false
	}
	t := reflect.TypeFor[T]()
	if _, ok := n.attrs[t]; !ok {
		return false
	}
	delete(n.attrs, t)
	return true
}

// Take detaches and returns the node's attribute of type T.
func Take[T any](w *World, id NodeID) (T, bool) {
	var zero T
	v, ok := Get[T](w, id)
	if !ok {
		return zero, false
	}
	Remove[T](w, id)
	return *v, true
}

// NodesWith returns, in id order, every live node carrying an attribute of
// type T. Cross-subtree order is an iteration convenience, not a contract.
func NodesWith[T any](w *World) []NodeID {
	t := reflect.TypeFor[T]()
	var ids []NodeID
	for id, n := range w.nodes {
		if _, ok := n.attrs[t]; ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}
