package view

import (
	"github.com/go-weft/weft/pkg/scene"
)

// Session is a scoped, single-owner handle pairing the scene store with the
// node currently being reconciled under. Exactly one session pointer is
// threaded down every recursive Build and Raze frame; all node creation,
// mutation, and destruction during a subtree's reconciliation flows through
// it. Sessions are constructed by the reconciliation driver and re-scoped by
// presenter dispatch; views never retain one past the call they received it
// in.
type Session struct {
	world *scene.World
	node  scene.NodeID
}

// NewSession creates a session over w scoped to the given node.
func NewSession(w *scene.World, node scene.NodeID) *Session {
	return &Session{world: w, node: node}
}

// World exposes the underlying store for attribute access.
func (s *Session) World() *scene.World {
	return s.world
}

// Node returns the node the session is scoped to.
func (s *Session) Node() scene.NodeID {
	return s.node
}

// Spawn creates a new node under the session's current node.
func (s *Session) Spawn() scene.NodeID {
	return s.world.Spawn(s.node)
}

// Despawn destroys a node and its descendants. Dead ids are ignored.
func (s *Session) Despawn(id scene.NodeID) {
	s.world.Despawn(id)
}

// rescope returns a session over the same store scoped to a different node.
func (s *Session) rescope(node scene.NodeID) *Session {
	return &Session{world: s.world, node: node}
}
