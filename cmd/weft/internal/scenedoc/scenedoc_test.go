package scenedoc

import (
	"strings"
	"testing"

	"github.com/go-weft/weft/pkg/engine"
	"github.com/go-weft/weft/pkg/scene"
	"github.com/go-weft/weft/pkg/view"
)

const sampleDoc = `
apiVersion: v1
name: greeting
root:
  group:
    - text: hello
      styles: [title]
    - text: world
`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Name != "greeting" {
		t.Errorf("name = %q, want greeting", doc.Name)
	}
	if doc.Root == nil || len(doc.Root.Group) != 2 {
		t.Fatalf("root group = %+v, want 2 children", doc.Root)
	}
	if got := doc.Root.Group[0].Styles; len(got) != 1 || got[0] != "title" {
		t.Errorf("styles = %v, want [title]", got)
	}
}

func TestParseRejects(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{"missing version", "name: x\nroot: {text: hi}", "missing apiVersion"},
		{"bad version", "apiVersion: one\nroot: {text: hi}", "invalid apiVersion"},
		{"wrong major", "apiVersion: v2\nroot: {text: hi}", "unsupported apiVersion"},
		{"missing root", "apiVersion: v1\nname: x", "missing root"},
		{"text and group", "apiVersion: v1\nroot: {text: hi, group: [{text: there}]}", "both text and group"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("err = %v, want %q", err, tc.want)
			}
		})
	}
}

func TestCompileAndMount(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	w := scene.NewWorld(nil)
	e := engine.New(nil)
	root := engine.Mount(e, w, doc.Presenter(), doc)
	e.RenderRoots(w)

	children := w.Children(root)
	if len(children) != 2 {
		t.Fatalf("children = %d, want 2", len(children))
	}
	first, ok := scene.Get[view.TextContent](w, children[0])
	if !ok || first.Value != "hello" {
		t.Errorf("first child text = %+v, want hello", first)
	}
	if !scene.Has[view.ElementStyles](w, children[0]) {
		t.Error("styled node missing ElementStyles")
	}

	// Bumping the revision dirties the document subtree but rebuilding
	// in place must not churn nodes.
	before := w.Stats()
	scene.UpdateValue(w, func(r *Revision) { r.N++ })
	stats := e.Update(w)
	if stats.Built != 1 {
		t.Errorf("built = %d, want 1", stats.Built)
	}
	after := w.Stats()
	if after.Spawned != before.Spawned || after.Despawned != before.Despawned {
		t.Errorf("rebuild churned nodes: %+v -> %+v", before, after)
	}
}
