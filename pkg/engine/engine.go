// Package engine drives reconciliation cycles over a scene store.
//
// The engine owns no nodes. Once per host scheduling tick it borrows the
// store, finds the subtrees whose tracked dependencies changed, detaches
// their state holders, rebuilds them, and reattaches. The detach step exists
// so the rebuild can hold the store and the holder at the same time without
// the holder still living inside the store.
package engine

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/go-weft/weft/pkg/errors"
	"github.com/go-weft/weft/pkg/scene"
	"github.com/go-weft/weft/pkg/view"
)

// unbuilt marks a root that was mounted this tick and has never been built.
type unbuilt struct{}

// Engine runs reconciliation cycles. Create with New; the zero value is not
// usable.
type Engine struct {
	logger *log.Logger
	stats  *StatsBuffer

	mu       sync.RWMutex
	lastTree []TreeNode
}

// New creates an engine. A nil logger falls back to log.Default().
func New(logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		logger: logger,
		stats:  NewStatsBuffer(defaultStatsCapacity),
	}
}

// Mount spawns a root node for the presenter and attaches its dependency
// tracker, its subtree state holder, and the never-built marker. The root is
// force-built by the next RenderRoots or Update call.
func Mount[P any](e *Engine, w *scene.World, presenter view.Presenter[P], props P) scene.NodeID {
	id := w.Spawn(scene.None)
	scene.Insert(w, id, view.TrackedValues{})
	scene.Insert(w, id, view.NewHandle(presenter, props))
	scene.Insert(w, id, unbuilt{})
	e.logger.Debug("mounted root", "node", id)
	return id
}

// Unmount razes a mounted root: nested subtree state is torn down
// recursively and every node the root produced is destroyed, then the root
// node itself. Unmounting a dead root is a no-op.
func (e *Engine) Unmount(w *scene.World, root scene.NodeID) {
	if !w.Alive(root) {
		return
	}
	if h, ok := scene.Get[view.Handle](w, root); ok {
		if st := h.Take(); st != nil {
			st.Raze(view.NewSession(w, root), root)
		}
	}
	w.Despawn(root)
	e.logger.Debug("unmounted root", "node", root)
}

// RenderRoots force-builds every root mounted since the last cycle.
func (e *Engine) RenderRoots(w *scene.World) CycleStats {
	fresh := scene.NodesWith[unbuilt](w)
	return e.reconcile(w, fresh, len(fresh))
}

// Update runs one three-phase reconciliation cycle: identify dirty subtrees,
// detach their holders, rebuild and reattach. Subtrees are processed
// sequentially in discovery order; order across independent subtrees is an
// implementation detail.
func (e *Engine) Update(w *scene.World) CycleStats {
	tracked := scene.NodesWith[view.TrackedValues](w)
	var dirty []scene.NodeID
	for _, id := range tracked {
		if scene.Has[unbuilt](w, id) {
			dirty = append(dirty, id)
			continue
		}
		tv, ok := scene.Get[view.TrackedValues](w, id)
		if ok && tv.Changed(w) {
			dirty = append(dirty, id)
		}
	}
	return e.reconcile(w, dirty, len(tracked))
}

// reconcile runs the detach and rebuild/reattach phases over the given dirty
// nodes and records cycle stats.
func (e *Engine) reconcile(w *scene.World, dirty []scene.NodeID, scanned int) CycleStats {
	start := time.Now()
	before := w.Stats()

	type detached struct {
		node  scene.NodeID
		state view.SubtreeState
	}

	// Detach: take every dirty holder out of the store so the rebuild can
	// borrow the store exclusively.
	pairs := make([]detached, 0, len(dirty))
	for _, id := range dirty {
		h, ok := scene.Get[view.Handle](w, id)
		if !ok {
			continue // destroyed since identify; skip for this cycle
		}
		st := h.Take()
		if st == nil {
			continue
		}
		pairs = append(pairs, detached{node: id, state: st})
	}

	built, abandoned := 0, 0
	for _, p := range pairs {
		if !w.Alive(p.node) {
			// The node died between detach and reattach. Raze the orphan
			// holder so nested subtree state is released rather than
			// silently leaked.
			p.state.Raze(view.NewSession(w, p.node), p.node)
			abandoned++
			e.logger.Debug("razed abandoned subtree", "node", p.node)
			continue
		}

		if e.buildSubtree(p.state, w, p.node) {
			built++
		} else {
			abandoned++
		}

		if h, ok := scene.Get[view.Handle](w, p.node); ok {
			h.Put(p.state)
		}
		scene.Remove[unbuilt](w, p.node)
	}

	after := w.Stats()
	stats := CycleStats{
		When:      start,
		Scanned:   scanned,
		Dirty:     len(dirty),
		Built:     built,
		Abandoned: abandoned,
		Spawned:   after.Spawned - before.Spawned,
		Despawned: after.Despawned - before.Despawned,
		Duration:  time.Since(start),
	}
	e.stats.Add(stats)
	e.captureTree(w)
	return stats
}

// buildSubtree builds one detached holder. Shape programming-error signals
// abort the subtree loudly: the error is reported and logged and the subtree
// abandoned for this cycle. Any other panic propagates.
func (e *Engine) buildSubtree(st view.SubtreeState, w *scene.World, node scene.NodeID) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			re, isReconcile := r.(*errors.ReconcileError)
			if !isReconcile {
				panic(r)
			}
			if re.Node == 0 {
				re.Node = uint64(node)
			}
			errors.Report(re)
			e.logger.Error("subtree build aborted", "node", node, "err", re)
		}
	}()
	st.Build(view.NewSession(w, node), node)
	return true
}

// Stats returns the engine's cycle stats buffer.
func (e *Engine) Stats() *StatsBuffer {
	return e.stats
}
