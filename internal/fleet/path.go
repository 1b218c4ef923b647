// File: internal/fleet/path.go
// Brief: Dimension paths addressing nodes of the fleet hierarchy.

// Package fleet models the declared deployment hierarchy: the ordered
// dimension levels, the node tree underneath them, and the canonical
// traversal every lifecycle stage shares. The configuration root is always
// an explicit value handed to constructors; nothing reads ambient state.
package fleet

import "strings"

// Path identifies a node through its ancestor chain, one segment per
// dimension level. A path with one segment per declared level is a complete
// deployment target.
type Path []string

func (p Path) String() string {
	return strings.Join(p, "/")
}

// Depth returns the number of levels the path spans.
func (p Path) Depth() int {
	return len(p)
}

// Equal reports whether both paths name the same node.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is p itself or one of its ancestors.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i := range prefix {
		if p[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Prefix returns the ancestor path spanning the first n levels.
func (p Path) Prefix(n int) Path {
	return p[:n]
}

// Covered reports whether p equals, or descends from, any of the given
// paths. This prefix test is the single coverage definition shared by gap
// detection, promotion, and coalescing.
func (p Path) Covered(existing []Path) bool {
	for _, e := range existing {
		if p.HasPrefix(e) {
			return true
		}
	}
	return false
}

// ParsePath splits a slash-separated path argument.
func ParsePath(s string) Path {
	s = strings.Trim(s, "/")
	if s == "" {
		return nil
	}
	return Path(strings.Split(s, "/"))
}
