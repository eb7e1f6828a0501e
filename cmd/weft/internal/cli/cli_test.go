package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-weft/weft/pkg/engine"
)

const testDoc = `
apiVersion: v1
name: greeting
root:
  group:
    - text: hello
      styles: [title]
    - text: world
`

func writeTestDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(testDoc), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRenderTree(t *testing.T) {
	out := renderTree([]engine.TreeNode{{
		ID:    1,
		Attrs: []string{"view.TrackedValues"},
		Children: []engine.TreeNode{
			{ID: 2, Text: "hello"},
			{ID: 3, Text: "world"},
		},
	}})

	for _, want := range []string{"#1", "#2", `"hello"`, "view.TrackedValues", "└─"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "\n") != 3 {
		t.Errorf("want 3 lines, got:\n%s", out)
	}
}

func TestRunCmd(t *testing.T) {
	cmd := newRunCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{writeTestDoc(t), "--cycles", "3"})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), `"hello"`) || !strings.Contains(out.String(), `"world"`) {
		t.Errorf("tree output missing document text:\n%s", out.String())
	}
}

func TestRecordAndSnapshots(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "weft.db")

	record := newRecordCmd()
	record.SetArgs([]string{writeTestDoc(t), "--db", dbPath, "--cycles", "2"})
	if err := record.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("record: %v", err)
	}

	list := newSnapshotsCmd()
	var out bytes.Buffer
	list.SetOut(&out)
	list.SetArgs([]string{"--db", dbPath})
	if err := list.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("snapshots: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "doc: greeting") {
		t.Errorf("missing meta line:\n%s", got)
	}
	if !strings.Contains(got, "cycle 1:") || !strings.Contains(got, "cycle 2:") {
		t.Errorf("missing cycle summaries:\n%s", got)
	}

	show := newSnapshotsCmd()
	var tree bytes.Buffer
	show.SetOut(&tree)
	show.SetArgs([]string{"--db", dbPath, "--cycle", "2"})
	if err := show.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("snapshots --cycle: %v", err)
	}
	if !strings.Contains(tree.String(), `"hello"`) {
		t.Errorf("cycle tree missing text:\n%s", tree.String())
	}
}
