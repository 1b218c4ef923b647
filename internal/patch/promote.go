// File: internal/patch/promote.go
// Brief: Promotion planning and the frontier copy.

package patch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/patjlm/gcp-hcp-apps/internal/fleet"
)

// NextLocation computes the next dimension path to promote to, or ok=false
// when the rollout already covers everything reachable. The scan walks the
// canonical traversal, skips through and including the frontier's path,
// then skips covered paths and paths shallower than the configured minimum
// promotion depth.
func NextLocation(cfg *fleet.Config, patches []*Patch) (fleet.Path, bool) {
	if len(patches) == 0 {
		return nil, false
	}
	frontier := patches[len(patches)-1]
	covered := pathsOf(patches)
	reached := false
	for _, p := range cfg.Tree.Walk() {
		if p.Equal(frontier.Path) {
			reached = true
			continue
		}
		if !reached {
			continue
		}
		if p.Covered(covered) {
			continue
		}
		if p.Depth() < cfg.MinPromotionDepth() {
			continue
		}
		return p, true
	}
	return nil, false
}

// PlanPromotion finds the existing patches, validates the rollout for gaps,
// and returns the next location, or ok=false when there is none.
func (s *Store) PlanPromotion(clusterType, component, name string) (fleet.Path, bool, error) {
	patches, err := s.Find(clusterType, component, name)
	if err != nil {
		return nil, false, err
	}
	if len(patches) == 0 {
		return nil, false, fmt.Errorf("no patches named %q found for %s/%s", name, clusterType, component)
	}
	if err := DetectGaps(s.cfg, patches); err != nil {
		return nil, false, err
	}
	next, ok := NextLocation(s.cfg, patches)
	return next, ok, nil
}

// Promote copies the frontier artifact byte for byte to the next location
// and returns that path; the original stays in place so rollout history
// remains cumulative. A nil path means there was nothing left to promote.
func (s *Store) Promote(clusterType, component, name string) (fleet.Path, error) {
	next, ok, err := s.PlanPromotion(clusterType, component, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	patches, err := s.Find(clusterType, component, name)
	if err != nil {
		return nil, err
	}
	frontier := patches[len(patches)-1]
	dst := patchFile(s.cfg, clusterType, component, name, next)
	if err := copyFile(frontier.File(), dst); err != nil {
		return nil, err
	}
	s.log.Info("promoted patch", "patch", name, "from", frontier.Path.String(), "to", next.String())
	return next, nil
}

// copyFile duplicates src at dst without interpreting its content. It
// refuses to overwrite an existing artifact.
func copyFile(src, dst string) error {
	if _, err := os.Stat(dst); err == nil {
		return &TargetExistsError{File: dst}
	} else if !os.IsNotExist(err) {
		return err
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
