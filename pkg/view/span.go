package view

import (
	"fmt"
	"strings"

	"github.com/go-weft/weft/pkg/scene"
)

type spanKind uint8

const (
	spanEmpty spanKind = iota
	spanNode
	spanFragment
)

// Span describes what a build produced: nothing, a single scene node, or an
// ordered fragment of spans. Spans are immutable values; the closed variant
// set makes structural recursion over them trivial.
type Span struct {
	kind     spanKind
	node     scene.NodeID
	children []Span
}

// Empty returns the span of a build that produced nothing.
func Empty() Span {
	return Span{}
}

// NodeOf returns a single-node span. NodeOf(scene.None) is Empty.
func NodeOf(id scene.NodeID) Span {
	if id == scene.None {
		return Span{}
	}
	return Span{kind: spanNode, node: id}
}

// FragmentOf returns a fragment span over the given children.
func FragmentOf(children ...Span) Span {
	return Span{kind: spanFragment, children: children}
}

// IsEmpty reports whether the span holds no variant at all. An empty
// fragment is not IsEmpty; equality is structural.
func (s Span) IsEmpty() bool {
	return s.kind == spanEmpty
}

// Node returns the single node id, if the span is a single-node span.
func (s Span) Node() (scene.NodeID, bool) {
	if s.kind == spanNode {
		return s.node, true
	}
	return scene.None, false
}

// Count returns the total number of leaf nodes in the span.
func (s Span) Count() int {
	switch s.kind {
	case spanNode:
		return 1
	case spanFragment:
		n := 0
		for _, c := range s.children {
			n += c.Count()
		}
		return n
	default:
		return 0
	}
}

// Flatten appends the span's leaf node ids to out in depth-first order and
// returns the extended slice.
func (s Span) Flatten(out []scene.NodeID) []scene.NodeID {
	switch s.kind {
	case spanNode:
		out = append(out, s.node)
	case spanFragment:
		for _, c := range s.children {
			out = c.Flatten(out)
		}
	}
	return out
}

// EachNode calls fn for every leaf node id in depth-first order.
func (s Span) EachNode(fn func(scene.NodeID)) {
	switch s.kind {
	case spanNode:
		fn(s.node)
	case spanFragment:
		for _, c := range s.children {
			c.EachNode(fn)
		}
	}
}

// Equal reports structural equality: fragments are equal iff they have the
// same length and pairwise-equal children.
func (s Span) Equal(o Span) bool {
	if s.kind != o.kind {
		return false
	}
	switch s.kind {
	case spanNode:
		return s.node == o.node
	case spanFragment:
		if len(s.children) != len(o.children) {
			return false
		}
		for i := range s.children {
			if !s.children[i].Equal(o.children[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// Despawn recursively destroys every leaf node through the session. Nodes
// already destroyed by another party are skipped.
func (s Span) Despawn(sn *Session) {
	switch s.kind {
	case spanNode:
		sn.Despawn(s.node)
	case spanFragment:
		for _, c := range s.children {
			c.Despawn(sn)
		}
	}
}

func (s Span) String() string {
	switch s.kind {
	case spanNode:
		return fmt.Sprintf("#%d", s.node)
	case spanFragment:
		parts := make([]string, len(s.children))
		for i, c := range s.children {
			parts[i] = c.String()
		}
		return "[" + strings.Join(parts, " ") + "]"
	default:
		return "()"
	}
}
