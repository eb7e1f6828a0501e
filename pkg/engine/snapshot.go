package engine

import (
	"github.com/go-weft/weft/pkg/scene"
	"github.com/go-weft/weft/pkg/view"
)

// TreeNode is one node of a serialized scene snapshot. Snapshots are taken
// at the end of each cycle so readers (the debug server, recorders) never
// touch the store while the engine might be mutating it.
type TreeNode struct {
	ID       uint64     `json:"id"`
	Text     string     `json:"text,omitempty"`
	Attrs    []string   `json:"attrs,omitempty"`
	Children []TreeNode `json:"children,omitempty"`
}

// captureTree snapshots the current scene under the engine's lock.
func (e *Engine) captureTree(w *scene.World) {
	roots := w.Roots()
	tree := make([]TreeNode, 0, len(roots))
	for _, id := range roots {
		tree = append(tree, snapshotNode(w, id))
	}
	e.mu.Lock()
	e.lastTree = tree
	e.mu.Unlock()
}

func snapshotNode(w *scene.World, id scene.NodeID) TreeNode {
	n := TreeNode{
		ID:    uint64(id),
		Attrs: w.AttrTypes(id),
	}
	if tc, ok := scene.Get[view.TextContent](w, id); ok {
		n.Text = tc.Value
	}
	for _, child := range w.Children(id) {
		n.Children = append(n.Children, snapshotNode(w, child))
	}
	return n
}

// TreeSnapshot returns the scene snapshot captured at the end of the most
// recent cycle.
func (e *Engine) TreeSnapshot() []TreeNode {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastTree
}
