package view

import (
	"testing"

	"github.com/go-weft/weft/pkg/scene"
)

// buildAt runs one build of v against a fresh session scoped to parent.
func buildAt(w *scene.World, parent scene.NodeID, v View, state *State, prev Span) Span {
	return v.Build(NewSession(w, parent), state, prev)
}

func TestNothingBuildsEmpty(t *testing.T) {
	w := scene.NewWorld(nil)
	root := w.Spawn(scene.None)

	var st State
	span := buildAt(w, root, Nothing{}, &st, Empty())
	if !span.IsEmpty() {
		t.Errorf("Nothing produced %s, want ()", span)
	}
	if w.NodeCount() != 1 {
		t.Errorf("Nothing spawned nodes: %d", w.NodeCount())
	}
}

func TestTextMutatesInPlace(t *testing.T) {
	w := scene.NewWorld(nil)
	root := w.Spawn(scene.None)

	var st State
	first := buildAt(w, root, Text("A"), &st, Empty())
	id, ok := first.Node()
	if !ok {
		t.Fatalf("Text produced %s, want single node", first)
	}
	before := w.Stats()

	second := buildAt(w, root, Text("B"), &st, first)
	if !second.Equal(first) {
		t.Errorf("rebuild changed the span: %s -> %s", first, second)
	}
	tc, _ := scene.Get[TextContent](w, id)
	if tc.Value != "B" {
		t.Errorf("text = %q, want %q", tc.Value, "B")
	}

	after := w.Stats()
	if after != before {
		t.Errorf("in-place text refresh must not spawn or despawn: %+v -> %+v", before, after)
	}
}

func TestTextReplacesIncompatibleNode(t *testing.T) {
	w := scene.NewWorld(nil)
	root := w.Spawn(scene.None)

	// A previous node of a different attribute kind cannot be patched.
	stale := w.Spawn(root)
	var st State
	span := buildAt(w, root, Text("A"), &st, NodeOf(stale))

	id, ok := span.Node()
	if !ok || id == stale {
		t.Fatalf("expected a fresh node, got %s (stale %d)", span, stale)
	}
	if w.Alive(stale) {
		t.Error("incompatible previous node should be destroyed")
	}
	if tc, ok := scene.Get[TextContent](w, id); !ok || tc.Value != "A" {
		t.Errorf("fresh node text = %v", tc)
	}
}

func TestTextReplacesFragment(t *testing.T) {
	w := scene.NewWorld(nil)
	root := w.Spawn(scene.None)
	a := w.Spawn(root)
	b := w.Spawn(root)

	var st State
	span := buildAt(w, root, Text("A"), &st, FragmentOf(NodeOf(a), NodeOf(b)))
	if _, ok := span.Node(); !ok {
		t.Fatalf("expected single node, got %s", span)
	}
	if w.Alive(a) || w.Alive(b) {
		t.Error("previous fragment nodes should be destroyed")
	}
}

func TestGroupReusesChildrenByPosition(t *testing.T) {
	w := scene.NewWorld(nil)
	root := w.Spawn(scene.None)

	var st State
	three := Group{Text("a"), Text("b"), Text("c")}
	first := three.Build(NewSession(w, root), &st, Empty())
	ids := first.Flatten(nil)
	if len(ids) != 3 {
		t.Fatalf("group of three produced %s", first)
	}

	two := Group{Text("x"), Text("y")}
	second := two.Build(NewSession(w, root), &st, first)
	got := second.Flatten(nil)
	if len(got) != 2 {
		t.Fatalf("group of two produced %s", second)
	}
	if got[0] != ids[0] || got[1] != ids[1] {
		t.Errorf("surviving children should be reused by position: %v -> %v", ids, got)
	}
	if w.Alive(ids[2]) {
		t.Error("dropped third child should be destroyed")
	}
	for i, id := range got {
		tc, _ := scene.Get[TextContent](w, id)
		want := []string{"x", "y"}[i]
		if tc.Value != want {
			t.Errorf("child %d text = %q, want %q", i, tc.Value, want)
		}
	}
}

func TestGroupKindChangeForcesRebuildOfSlot(t *testing.T) {
	w := scene.NewWorld(nil)
	root := w.Spawn(scene.None)

	var st State
	first := Group{Text("a"), Text("b")}.Build(NewSession(w, root), &st, Empty())
	ids := first.Flatten(nil)

	second := Group{Text("a"), Nothing{}}.Build(NewSession(w, root), &st, first)
	got := second.Flatten(nil)
	if len(got) != 1 || got[0] != ids[0] {
		t.Errorf("slot 0 should be reused: %v -> %v", ids, got)
	}
	if w.Alive(ids[1]) {
		t.Error("slot 1 changed kind and its node should be destroyed")
	}
}

func TestGroupRazeDestroysAllChildren(t *testing.T) {
	w := scene.NewWorld(nil)
	root := w.Spawn(scene.None)

	var st State
	g := Group{Text("a"), Group{Text("b"), Text("c")}}
	span := g.Build(NewSession(w, root), &st, Empty())
	ids := span.Flatten(nil)
	if len(ids) != 3 {
		t.Fatalf("nested group produced %s", span)
	}

	g.Raze(NewSession(w, root), &st, span)
	for _, id := range ids {
		if w.Alive(id) {
			t.Errorf("node %d survived raze", id)
		}
	}
	if st != nil {
		t.Error("raze should clear the state slot")
	}
}
