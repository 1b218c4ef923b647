// File: internal/fleet/tree.go
// Brief: Dimension tree construction and canonical traversal.

package fleet

import (
	"fmt"

	"github.com/patjlm/gcp-hcp-apps/internal/document"
)

// Node is one named entry of a dimension level. Nodes at the last level
// have no children.
type Node struct {
	Name     string
	Children []Node
}

// Tree holds the declared hierarchy: the ordered level names and the nodes
// beneath them.
type Tree struct {
	Levels []string
	Roots  []Node
}

// NewTree builds the hierarchy from the declared sequence. Each level key
// of the sequence holds a list of node declarations ({name: ...} plus an
// optional child-level key). A missing level key simply ends that branch.
func NewTree(levels []string, sequence document.Value) (*Tree, error) {
	if len(levels) == 0 {
		return nil, &ConfigError{Reason: "no dimension levels declared"}
	}
	roots, err := buildNodes(sequence, levels, nil)
	if err != nil {
		return nil, err
	}
	return &Tree{Levels: levels, Roots: roots}, nil
}

func buildNodes(container document.Value, levels []string, ancestors Path) ([]Node, error) {
	if len(levels) == 0 {
		return nil, nil
	}
	list, ok := container.Get(levels[0])
	if !ok {
		return nil, nil
	}
	if list.Kind != document.List {
		return nil, &ConfigError{Reason: fmt.Sprintf("sequence level %q under %q must be a list", levels[0], ancestors)}
	}
	nodes := make([]Node, 0, len(list.Items))
	seen := make(map[string]struct{}, len(list.Items))
	for i, item := range list.Items {
		nameVal, ok := item.Get("name")
		if !ok || nameVal.Kind != document.Scalar {
			return nil, &ConfigError{Reason: fmt.Sprintf("sequence level %q item %d under %q has no name", levels[0], i, ancestors)}
		}
		name, ok := nameVal.Scalar.(string)
		if !ok || name == "" {
			return nil, &ConfigError{Reason: fmt.Sprintf("sequence level %q item %d under %q has a non-string name", levels[0], i, ancestors)}
		}
		if _, dup := seen[name]; dup {
			return nil, &ConfigError{Reason: fmt.Sprintf("duplicate node %q at level %q under %q", name, levels[0], ancestors)}
		}
		seen[name] = struct{}{}
		children, err := buildNodes(item, levels[1:], append(ancestors, name))
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, Node{Name: name, Children: children})
	}
	return nodes, nil
}

// Depth returns the number of declared levels.
func (t *Tree) Depth() int {
	return len(t.Levels)
}

// Walk returns the canonical pre-order enumeration of every path of every
// length: nodes in declaration order, a node's own path before its
// descendants, descendants before the next sibling. Gap detection,
// promotion, and coalescing all iterate this exact sequence.
func (t *Tree) Walk() []Path {
	var out []Path
	var walk func(nodes []Node, ancestors Path)
	walk = func(nodes []Node, ancestors Path) {
		for _, n := range nodes {
			p := make(Path, len(ancestors), len(ancestors)+1)
			copy(p, ancestors)
			p = append(p, n.Name)
			out = append(out, p)
			walk(n.Children, p)
		}
	}
	walk(t.Roots, nil)
	return out
}

// Targets returns only the complete (full-depth) paths of the canonical
// traversal, in canonical order.
func (t *Tree) Targets() []Path {
	var out []Path
	for _, p := range t.Walk() {
		if p.Depth() == t.Depth() {
			out = append(out, p)
		}
	}
	return out
}

// Contains reports whether p names a declared node.
func (t *Tree) Contains(p Path) bool {
	nodes := t.Roots
	for i, seg := range p {
		var found *Node
		for j := range nodes {
			if nodes[j].Name == seg {
				found = &nodes[j]
				break
			}
		}
		if found == nil {
			return false
		}
		if i == len(p)-1 {
			return true
		}
		nodes = found.Children
	}
	return false
}
