package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-weft/weft/pkg/engine"
)

var (
	idStyle   = lipgloss.NewStyle().Faint(true)
	textStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	attrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
)

// renderTree formats an engine tree snapshot as an indented outline.
func renderTree(roots []engine.TreeNode) string {
	var b strings.Builder
	for i := range roots {
		renderNode(&b, &roots[i], "", i == len(roots)-1)
	}
	return b.String()
}

func renderNode(b *strings.Builder, n *engine.TreeNode, prefix string, last bool) {
	branch, childPrefix := "├─ ", prefix+"│  "
	if last {
		branch, childPrefix = "└─ ", prefix+"   "
	}

	b.WriteString(prefix + branch + idStyle.Render(fmt.Sprintf("#%d", n.ID)))
	if n.Text != "" {
		b.WriteString(" " + textStyle.Render(fmt.Sprintf("%q", n.Text)))
	}
	for _, attr := range n.Attrs {
		b.WriteString(" " + attrStyle.Render(attr))
	}
	b.WriteString("\n")

	for i := range n.Children {
		renderNode(b, &n.Children[i], childPrefix, i == len(n.Children)-1)
	}
}
