// Package docs turns page component trees into machine-readable
// documentation artifacts: llms.txt, page.json, and architecture.txt.
package docs

import (
	"sort"
	"strings"

	"github.com/atlasdocs/siteatlas/internal/site"
)

// DefaultMaxDepth caps architecture extraction recursion.
const DefaultMaxDepth = 20

// Markers reports component-level flags during extraction. *site.Registry
// satisfies this interface.
type Markers interface {
	IsImportant(componentID string) bool
	IsComponentHidden(componentID string) bool
}

// AllComponents wraps a Markers implementation so hidden flags are ignored
// while importance still cascades. Used when documentation is configured to
// cover hidden component subtrees too.
type AllComponents struct {
	Markers
}

// IsComponentHidden always reports false.
func (AllComponents) IsComponentHidden(string) bool { return false }

// ArchNode is one node of an extracted component architecture.
type ArchNode struct {
	Type          string      `json:"type"`
	ID            string      `json:"id,omitempty"`
	Important     bool        `json:"important,omitempty"`
	ChildrenCount int         `json:"children_count"`
	Children      []*ArchNode `json:"children,omitempty"`
}

// ExtractArchitecture walks the component tree up to maxDepth levels below
// the root. Importance cascades from a marked component to its entire
// subtree; hidden components and their subtrees are dropped.
func ExtractArchitecture(root *site.Component, m Markers, maxDepth int) *ArchNode {
	if root == nil {
		return nil
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return extractNode(root, m, false, maxDepth)
}

func extractNode(c *site.Component, m Markers, parentImportant bool, remaining int) *ArchNode {
	if c == nil || (m != nil && c.ID != "" && m.IsComponentHidden(c.ID)) {
		return nil
	}
	important := parentImportant || (m != nil && c.ID != "" && m.IsImportant(c.ID))
	node := &ArchNode{
		Type:          c.Type,
		ID:            c.ID,
		Important:     important,
		ChildrenCount: len(c.Children),
	}
	if remaining <= 1 {
		return node
	}
	for _, child := range c.Children {
		if cn := extractNode(child, m, important, remaining-1); cn != nil {
			node.Children = append(node.Children, cn)
		}
	}
	return node
}

// ExtractText collects the non-empty text of every visible component in
// document order. Text inside an important subtree is prefixed with
// "[IMPORTANT] " so downstream consumers can rank it.
func ExtractText(root *site.Component, m Markers) []string {
	var out []string
	collectText(root, m, false, &out)
	return out
}

func collectText(c *site.Component, m Markers, parentImportant bool, out *[]string) {
	if c == nil || (m != nil && c.ID != "" && m.IsComponentHidden(c.ID)) {
		return
	}
	important := parentImportant || (m != nil && c.ID != "" && m.IsImportant(c.ID))
	if text := strings.TrimSpace(c.Text); text != "" {
		if important {
			text = "[IMPORTANT] " + text
		}
		*out = append(*out, text)
	}
	for _, child := range c.Children {
		collectText(child, m, important, out)
	}
}

// CountTypes tallies extracted nodes by component type.
func CountTypes(node *ArchNode) map[string]int {
	counts := make(map[string]int)
	walkArch(node, func(n *ArchNode) { counts[n.Type]++ })
	return counts
}

// CountTotal returns the number of extracted nodes.
func CountTotal(node *ArchNode) int {
	total := 0
	walkArch(node, func(*ArchNode) { total++ })
	return total
}

// Depth returns the number of edges on the longest root-to-leaf path.
func Depth(node *ArchNode) int {
	if node == nil || len(node.Children) == 0 {
		return 0
	}
	max := 0
	for _, child := range node.Children {
		if d := Depth(child); d > max {
			max = d
		}
	}
	return max + 1
}

func walkArch(node *ArchNode, fn func(*ArchNode)) {
	if node == nil {
		return
	}
	fn(node)
	for _, child := range node.Children {
		walkArch(child, fn)
	}
}

func sortedTypes(counts map[string]int) []string {
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
