// Package scenedoc loads declarative scene documents from YAML and
// compiles them into presenter functions the engine can mount.
package scenedoc

import (
	"fmt"
	"os"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-weft/weft/pkg/view"
)

// Revision is a shared value bumped by the CLI between cycles so that
// mounted documents pick up a fresh build pass.
type Revision struct {
	N uint64
}

// Doc is a parsed scene document.
type Doc struct {
	APIVersion string `yaml:"apiVersion"`
	Name       string `yaml:"name"`
	Root       *Node  `yaml:"root"`
}

// Node is one element of the document tree. Exactly one of Text or
// Group may be set; Styles apply to whichever it is.
type Node struct {
	Text   *string  `yaml:"text"`
	Group  []Node   `yaml:"group"`
	Styles []string `yaml:"styles"`
}

// Parse decodes and validates a scene document.
func Parse(data []byte) (*Doc, error) {
	var doc Doc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("scenedoc: decode: %w", err)
	}
	if doc.APIVersion == "" {
		return nil, fmt.Errorf("scenedoc: missing apiVersion")
	}
	if !semver.IsValid(doc.APIVersion) {
		return nil, fmt.Errorf("scenedoc: invalid apiVersion %q", doc.APIVersion)
	}
	if semver.Major(doc.APIVersion) != "v1" {
		return nil, fmt.Errorf("scenedoc: unsupported apiVersion %q, want v1", doc.APIVersion)
	}
	if doc.Root == nil {
		return nil, fmt.Errorf("scenedoc: missing root node")
	}
	if err := doc.Root.validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads and parses the document at path.
func Load(path string) (*Doc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenedoc: %w", err)
	}
	return Parse(data)
}

func (n *Node) validate() error {
	if n.Text != nil && len(n.Group) > 0 {
		return fmt.Errorf("scenedoc: node sets both text and group")
	}
	for i := range n.Group {
		if err := n.Group[i].validate(); err != nil {
			return err
		}
	}
	return nil
}

// Presenter compiles the document into a presenter. The presenter
// reads the shared Revision value so bumping it schedules a rebuild.
func (d *Doc) Presenter() view.Presenter[*Doc] {
	return func(cx *view.Cx[*Doc]) view.View {
		view.UseValue[Revision](&cx.Scope)
		return cx.Props.Root.compile()
	}
}

func (n *Node) compile() view.View {
	var v view.View
	switch {
	case n.Text != nil:
		v = view.Text(*n.Text)
	default:
		children := make(view.Group, len(n.Group))
		for i := range n.Group {
			children[i] = n.Group[i].compile()
		}
		v = children
	}
	if len(n.Styles) > 0 {
		styles := make([]view.Style, len(n.Styles))
		for i, name := range n.Styles {
			styles[i] = view.StyleClass(name)
		}
		v = view.Styled(v, styles...)
	}
	return v
}
