// File: internal/patch/store.go
// Brief: Filesystem discovery of patch artifacts.

package patch

import (
	"os"
	"sort"
	"strings"

	"github.com/go-logr/logr"

	"github.com/patjlm/gcp-hcp-apps/internal/fleet"
)

// Store locates patch artifacts under the configuration root. It holds no
// state of its own; every lookup re-scans the tree.
type Store struct {
	cfg *fleet.Config
	log logr.Logger
}

// NewStore returns a Store bound to the given configuration root.
func NewStore(cfg *fleet.Config, log logr.Logger) *Store {
	return &Store{cfg: cfg, log: log}
}

// Find returns one Patch per dimension path where an artifact with the
// given name exists, in canonical traversal order. The final element is the
// current rollout frontier.
func (s *Store) Find(clusterType, component, name string) ([]*Patch, error) {
	var out []*Patch
	for _, p := range s.cfg.Tree.Walk() {
		file := patchFile(s.cfg, clusterType, component, name, p)
		if _, err := os.Stat(file); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		out = append(out, newPatch(s.cfg, clusterType, component, name, p))
	}
	return out, nil
}

// At returns every patch bound to one dimension path, in ascending name
// order.
func (s *Store) At(clusterType, component string, p fleet.Path) ([]*Patch, error) {
	dir := s.cfg.DimensionDir(clusterType, component, p)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		base := e.Name()
		if !strings.HasPrefix(base, patchPrefix) || !strings.HasSuffix(base, patchSuffix) {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(base, patchPrefix), patchSuffix)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]*Patch, 0, len(names))
	for _, name := range names {
		out = append(out, newPatch(s.cfg, clusterType, component, name, p))
	}
	return out, nil
}

// Config returns the configuration root the store scans.
func (s *Store) Config() *fleet.Config {
	return s.cfg
}
