// File: internal/patch/coalesce.go
// Brief: Bottom-up patch coalescing and final consolidation.

package patch

import (
	"errors"
	"io/fs"
	"os"
	"sort"

	"github.com/go-logr/logr"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/patjlm/gcp-hcp-apps/internal/document"
	"github.com/patjlm/gcp-hcp-apps/internal/fleet"
)

// Coalescer shrinks a patch name's footprint without changing any target's
// resolved output. A fully covered branch collapses to one patch at its
// coarsest covered ancestor; once every top-level branch carries its own
// patch, the content folds permanently into the component's base values.
type Coalescer struct {
	cfg   *fleet.Config
	store *Store
	log   logr.Logger
}

// NewCoalescer returns a Coalescer over the given store.
func NewCoalescer(store *Store, log logr.Logger) *Coalescer {
	return &Coalescer{cfg: store.Config(), store: store, log: log}
}

// Coalesce performs one full coalescing pass for the named patch. Running
// it again without new coverage mutates nothing.
func (c *Coalescer) Coalesce(clusterType, component, name string) error {
	patches, err := c.store.Find(clusterType, component, name)
	if err != nil {
		return err
	}
	if len(patches) == 0 {
		return nil
	}

	walkIndex := make(map[string]int)
	for i, p := range c.cfg.Tree.Walk() {
		walkIndex[p.String()] = i
	}
	byPath := make(map[string]*Patch, len(patches))
	for _, p := range patches {
		byPath[p.Path.String()] = p
	}
	targets := c.cfg.Tree.Targets()

	// Ancestor reduction, coarsest grouping first, so a fully covered
	// branch collapses directly to its coarsest representation in one pass.
	for depth := 1; depth < c.cfg.Depth(); depth++ {
		var roots []fleet.Path
		members := make(map[string][]fleet.Path)
		for _, t := range targets {
			root := t.Prefix(depth)
			key := root.String()
			if _, ok := members[key]; !ok {
				roots = append(roots, root)
			}
			members[key] = append(members[key], t)
		}
		for _, root := range roots {
			existing := patchedPaths(byPath)
			if root.Covered(existing) {
				continue
			}
			allCovered := true
			for _, t := range members[root.String()] {
				if !t.Covered(existing) {
					allCovered = false
					break
				}
			}
			if !allCovered {
				continue
			}
			if err := c.reduce(clusterType, component, name, root, byPath, walkIndex); err != nil {
				return err
			}
		}
	}

	return c.consolidate(clusterType, component, byPath, walkIndex)
}

// reduce replaces every patch under root with a single patch at root,
// seeded from the canonically first descendant.
func (c *Coalescer) reduce(clusterType, component, name string, root fleet.Path, byPath map[string]*Patch, walkIndex map[string]int) error {
	under := patchesUnder(byPath, root, walkIndex)
	seed := under[0]
	if err := c.warnDivergent(root, under); err != nil {
		return err
	}
	dst := patchFile(c.cfg, clusterType, component, name, root)
	if err := copyFile(seed.File(), dst); err != nil {
		return err
	}
	for _, p := range under {
		if err := os.Remove(p.File()); err != nil {
			return err
		}
		delete(byPath, p.Path.String())
	}
	byPath[root.String()] = newPatch(c.cfg, clusterType, component, name, root)
	c.log.Info("coalesced patches", "patch", name, "into", root.String(), "replaced", len(under))
	return nil
}

// consolidate folds the patch into the permanent base values once every
// top-level branch carries its own depth-1 patch, then removes those
// patches.
func (c *Coalescer) consolidate(clusterType, component string, byPath map[string]*Patch, walkIndex map[string]int) error {
	if len(c.cfg.Tree.Roots) == 0 {
		return nil
	}
	for _, n := range c.cfg.Tree.Roots {
		if _, ok := byPath[n.Name]; !ok {
			return nil
		}
	}
	var topLevel []*Patch
	for _, p := range byPath {
		if p.Path.Depth() == 1 {
			topLevel = append(topLevel, p)
		}
	}
	sortCanonical(topLevel, walkIndex)

	seed := topLevel[0]
	if err := c.warnDivergent(nil, topLevel); err != nil {
		return err
	}
	content, err := seed.Content()
	if err != nil {
		return err
	}
	valuesFile := c.cfg.ValuesFile(clusterType, component)
	values, err := document.Load(valuesFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &fleet.ConfigError{File: valuesFile, Reason: "mandatory base values artifact is missing"}
		}
		return err
	}
	if values.IsZero() {
		return &fleet.ConfigError{File: valuesFile, Reason: "mandatory base values artifact is empty"}
	}
	if err := document.Save(document.Merge(values, content), valuesFile); err != nil {
		return err
	}
	for _, p := range topLevel {
		if err := os.Remove(p.File()); err != nil {
			return err
		}
		delete(byPath, p.Path.String())
	}
	c.log.Info("consolidated patch into base values", "patch", seed.Name, "values", valuesFile)
	return nil
}

// warnDivergent reports when the patches being collapsed do not carry the
// same content. The canonically first patch seeds the replacement, so the
// others' differences are about to be dropped; surface them as a unified
// diff instead of silently picking one.
func (c *Coalescer) warnDivergent(root fleet.Path, under []*Patch) error {
	if len(under) < 2 {
		return nil
	}
	seedContent, err := under[0].Content()
	if err != nil {
		return err
	}
	seedYAML, err := document.Marshal(seedContent)
	if err != nil {
		return err
	}
	for _, p := range under[1:] {
		content, err := p.Content()
		if err != nil {
			return err
		}
		if document.Equal(seedContent, content) {
			continue
		}
		otherYAML, err := document.Marshal(content)
		if err != nil {
			return err
		}
		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(seedYAML)),
			B:        difflib.SplitLines(string(otherYAML)),
			FromFile: under[0].File(),
			ToFile:   p.File(),
			Context:  3,
		})
		if err != nil {
			return err
		}
		c.log.Info("divergent patch content; canonically first patch wins",
			"root", root.String(), "kept", under[0].Path.String(), "dropped", p.Path.String(), "diff", diff)
	}
	return nil
}

func patchedPaths(byPath map[string]*Patch) []fleet.Path {
	out := make([]fleet.Path, 0, len(byPath))
	for _, p := range byPath {
		out = append(out, p.Path)
	}
	return out
}

func patchesUnder(byPath map[string]*Patch, root fleet.Path, walkIndex map[string]int) []*Patch {
	var out []*Patch
	for _, p := range byPath {
		if p.Path.HasPrefix(root) {
			out = append(out, p)
		}
	}
	sortCanonical(out, walkIndex)
	return out
}

func sortCanonical(patches []*Patch, walkIndex map[string]int) {
	sort.Slice(patches, func(i, j int) bool {
		return walkIndex[patches[i].Path.String()] < walkIndex[patches[j].Path.String()]
	})
}
