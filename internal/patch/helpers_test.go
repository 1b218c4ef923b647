package patch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"

	"github.com/patjlm/gcp-hcp-apps/internal/fleet"
)

const (
	testClusterType = "management-cluster"
	testComponent   = "hypershift"
)

const testConfig = `
dimensions:
  - environments
  - sectors
  - regions
sequence:
  environments:
    - name: integration
      sectors:
        - name: sector-1
          regions:
            - name: region-1
            - name: region-2
        - name: sector-2
          regions:
            - name: region-1
    - name: production
      sectors:
        - name: sector-1
          regions:
            - name: region-1
cluster_types:
  - name: management-cluster
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestConfig(t *testing.T) *fleet.Config {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "config.yaml"), testConfig)
	cfg, err := fleet.Load(root)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

func newTestStore(t *testing.T) (*fleet.Config, *Store) {
	t.Helper()
	cfg := newTestConfig(t)
	return cfg, NewStore(cfg, logr.Discard())
}

func addPatch(t *testing.T, cfg *fleet.Config, name, dimPath, content string) {
	t.Helper()
	p := fleet.ParsePath(dimPath)
	writeFile(t, patchFile(cfg, testClusterType, testComponent, name, p), content)
}

func patchExists(cfg *fleet.Config, name, dimPath string) bool {
	p := fleet.ParsePath(dimPath)
	_, err := os.Stat(patchFile(cfg, testClusterType, testComponent, name, p))
	return err == nil
}

func findPatches(t *testing.T, s *Store, name string) []*Patch {
	t.Helper()
	patches, err := s.Find(testClusterType, testComponent, name)
	if err != nil {
		t.Fatalf("find patches: %v", err)
	}
	return patches
}
