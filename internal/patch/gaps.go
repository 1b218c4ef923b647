// File: internal/patch/gaps.go
// Brief: Rollout-completeness validation.

package patch

import (
	"github.com/patjlm/gcp-hcp-apps/internal/fleet"
)

// DetectGaps verifies that every full-depth target canonically preceding
// the frontier patch's path is covered by (equal to or descending from)
// some existing patch path. Intermediate, non-leaf paths are skipped. An
// empty patch list trivially passes.
func DetectGaps(cfg *fleet.Config, patches []*Patch) error {
	if len(patches) == 0 {
		return nil
	}
	frontier := patches[len(patches)-1]
	covered := pathsOf(patches)
	for _, p := range cfg.Tree.Walk() {
		if p.Equal(frontier.Path) {
			break
		}
		if p.Depth() < cfg.Depth() {
			continue
		}
		if !p.Covered(covered) {
			return &GapError{Frontier: frontier.Path, Missing: p}
		}
	}
	return nil
}

func pathsOf(patches []*Patch) []fleet.Path {
	out := make([]fleet.Path, len(patches))
	for i, p := range patches {
		out[i] = p.Path
	}
	return out
}
