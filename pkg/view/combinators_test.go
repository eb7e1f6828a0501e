package view

import (
	"testing"

	"github.com/go-weft/weft/pkg/errors"
	"github.com/go-weft/weft/pkg/scene"
)

type badge struct {
	Label string
}

type tooltip struct {
	Text string
}

func TestInsertIsIdempotent(t *testing.T) {
	w := scene.NewWorld(nil)
	root := w.Spawn(scene.None)

	var st State
	v := Insert(Text("a"), badge{Label: "new"})
	span := v.Build(NewSession(w, root), &st, Empty())
	id, _ := span.Node()

	got, ok := scene.Get[badge](w, id)
	if !ok || got.Label != "new" {
		t.Fatalf("badge = %+v, %v", got, ok)
	}

	// A value set by someone else survives the next build.
	got.Label = "edited"
	v.Build(NewSession(w, root), &st, span)
	again, _ := scene.Get[badge](w, id)
	if again.Label != "edited" {
		t.Errorf("idempotent insert overwrote the attribute: %q", again.Label)
	}
}

func TestReinsertReplaces(t *testing.T) {
	w := scene.NewWorld(nil)
	root := w.Spawn(scene.None)

	var st State
	v := Reinsert(Text("a"), badge{Label: "fresh"})
	span := v.Build(NewSession(w, root), &st, Empty())
	id, _ := span.Node()

	got, _ := scene.Get[badge](w, id)
	got.Label = "edited"
	v.Build(NewSession(w, root), &st, span)
	again, _ := scene.Get[badge](w, id)
	if again.Label != "fresh" {
		t.Errorf("Reinsert should replace the attribute, got %q", again.Label)
	}
}

func TestInsertRecursesThroughFragments(t *testing.T) {
	w := scene.NewWorld(nil)
	root := w.Spawn(scene.None)

	var st State
	v := Insert(Group{Text("a"), Group{Text("b")}}, badge{Label: "all"})
	span := v.Build(NewSession(w, root), &st, Empty())

	for _, id := range span.Flatten(nil) {
		if !scene.Has[badge](w, id) {
			t.Errorf("node %d missing inserted attribute", id)
		}
	}
}

func TestStyledAttachesStyles(t *testing.T) {
	w := scene.NewWorld(nil)
	root := w.Spawn(scene.None)

	var st State
	v := Styled(Text("a"), StyleClass("title"), StyleClass("bold"))
	span := v.Build(NewSession(w, root), &st, Empty())
	id, _ := span.Node()

	es, ok := scene.Get[ElementStyles](w, id)
	if !ok || len(es.Styles) != 2 {
		t.Fatalf("ElementStyles = %+v, %v", es, ok)
	}
	if es.Styles[0].Name() != "title" || es.Styles[1].Name() != "bold" {
		t.Errorf("styles = %v", es.Styles)
	}

	// An unchanged style set leaves the attribute alone on rebuild.
	v.Build(NewSession(w, root), &st, span)
	es2, _ := scene.Get[ElementStyles](w, id)
	if len(es2.Styles) != 2 {
		t.Errorf("rebuild altered styles: %v", es2.Styles)
	}

	// A different set rewrites it.
	Styled(Text("a"), StyleClass("plain")).Build(NewSession(w, root), &st, span)
	es3, _ := scene.Get[ElementStyles](w, id)
	if len(es3.Styles) != 1 || es3.Styles[0].Name() != "plain" {
		t.Errorf("changed styles not applied: %v", es3.Styles)
	}
}

func TestInsertBundleSingleNode(t *testing.T) {
	w := scene.NewWorld(nil)
	root := w.Spawn(scene.None)

	var st State
	v := InsertBundle(Text("a"), badge{Label: "b"}, tooltip{Text: "t"})
	span := v.Build(NewSession(w, root), &st, Empty())
	id, _ := span.Node()

	if !scene.Has[badge](w, id) || !scene.Has[tooltip](w, id) {
		t.Error("bundle attributes missing")
	}

	// Unchanged output id: the bundle is not re-applied.
	b, _ := scene.Get[badge](w, id)
	b.Label = "edited"
	v.Build(NewSession(w, root), &st, span)
	b2, _ := scene.Get[badge](w, id)
	if b2.Label != "edited" {
		t.Errorf("bundle re-applied on unchanged node: %q", b2.Label)
	}
}

func TestInsertBundlePanicsOnFragment(t *testing.T) {
	w := scene.NewWorld(nil)
	root := w.Spawn(scene.None)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a shape programming-error panic")
		}
		re, ok := r.(*errors.ReconcileError)
		if !ok || re.Kind != errors.KindShape {
			t.Errorf("panic value = %#v, want *ReconcileError KindShape", r)
		}
	}()

	var st State
	InsertBundle(Group{Text("a"), Text("b")}, badge{}).Build(NewSession(w, root), &st, Empty())
}

func TestWithRunsEveryBuild(t *testing.T) {
	w := scene.NewWorld(nil)
	root := w.Spawn(scene.None)

	calls := 0
	var st State
	v := With(Text("a"), func(*Session, scene.NodeID) { calls++ })
	span := v.Build(NewSession(w, root), &st, Empty())
	v.Build(NewSession(w, root), &st, span)

	if calls != 2 {
		t.Errorf("With callback ran %d times, want 2", calls)
	}
}

func TestOnceRunsOnFirstAppearanceOnly(t *testing.T) {
	w := scene.NewWorld(nil)
	root := w.Spawn(scene.None)

	calls := 0
	var st State
	v := Once(Text("a"), func(*Session, scene.NodeID) { calls++ })
	span := v.Build(NewSession(w, root), &st, Empty())
	span = v.Build(NewSession(w, root), &st, span)
	if calls != 1 {
		t.Fatalf("Once ran %d times on a stable node, want 1", calls)
	}

	// Force a replacement: strip the text attribute so the node is no
	// longer reusable, then rebuild.
	id, _ := span.Node()
	scene.Remove[TextContent](w, id)
	v.Build(NewSession(w, root), &st, span)
	if calls != 2 {
		t.Errorf("Once should re-fire for a replacement node, ran %d times", calls)
	}
}
