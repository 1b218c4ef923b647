package fleet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
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

func loadTestConfig(t *testing.T, content string) *Config {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "config.yaml"), content)
	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

func TestLoadConfig(t *testing.T) {
	cfg := loadTestConfig(t, testConfig)
	if cfg.Depth() != 3 {
		t.Fatalf("depth = %d", cfg.Depth())
	}
	if got := strings.Join(cfg.Dimensions, ","); got != "environments,sectors,regions" {
		t.Fatalf("dimensions = %s", got)
	}
	if len(cfg.ClusterTypes) != 1 || cfg.ClusterTypes[0] != "management-cluster" {
		t.Fatalf("cluster types = %v", cfg.ClusterTypes)
	}
	// Promotion defaults to the second level.
	if cfg.MinPromotionDepth() != 2 {
		t.Fatalf("min promotion depth = %d", cfg.MinPromotionDepth())
	}
}

func TestLoadConfigPromotionLevel(t *testing.T) {
	cfg := loadTestConfig(t, testConfig+"promotion_level: regions\n")
	if cfg.MinPromotionDepth() != 3 {
		t.Fatalf("min promotion depth = %d", cfg.MinPromotionDepth())
	}
}

func TestLoadConfigRejectsUnknownPromotionLevel(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "config.yaml"), testConfig+"promotion_level: nonsense\n")
	if _, err := Load(root); err == nil {
		t.Fatal("expected error for unknown promotion level")
	}
}

func TestWalkCanonicalOrder(t *testing.T) {
	cfg := loadTestConfig(t, testConfig)
	var got []string
	for _, p := range cfg.Tree.Walk() {
		got = append(got, p.String())
	}
	want := []string{
		"integration",
		"integration/sector-1",
		"integration/sector-1/region-1",
		"integration/sector-1/region-2",
		"integration/sector-2",
		"integration/sector-2/region-1",
		"production",
		"production/sector-1",
		"production/sector-1/region-1",
	}
	if len(got) != len(want) {
		t.Fatalf("walk = %v\nwant %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("walk[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestWalkVisitsEveryNodeOnce(t *testing.T) {
	cfg := loadTestConfig(t, testConfig)
	seen := map[string]int{}
	for _, p := range cfg.Tree.Walk() {
		seen[p.String()]++
	}
	for path, n := range seen {
		if n != 1 {
			t.Fatalf("%s visited %d times", path, n)
		}
	}
	// Parents always precede descendants.
	index := map[string]int{}
	for i, p := range cfg.Tree.Walk() {
		index[p.String()] = i
	}
	for path, i := range index {
		segs := strings.Split(path, "/")
		if len(segs) == 1 {
			continue
		}
		parent := strings.Join(segs[:len(segs)-1], "/")
		if index[parent] >= i {
			t.Fatalf("parent %s visited after child %s", parent, path)
		}
	}
}

func TestTargetsAreFullDepth(t *testing.T) {
	cfg := loadTestConfig(t, testConfig)
	targets := cfg.Tree.Targets()
	if len(targets) != 4 {
		t.Fatalf("targets = %v", targets)
	}
	for _, p := range targets {
		if p.Depth() != cfg.Depth() {
			t.Fatalf("target %s has depth %d", p, p.Depth())
		}
	}
}

func TestMissingLevelKeyYieldsEmptyBranch(t *testing.T) {
	cfg := loadTestConfig(t, `
dimensions:
  - environments
  - sectors
sequence:
  environments:
    - name: integration
    - name: production
      sectors:
        - name: sector-1
`)
	var got []string
	for _, p := range cfg.Tree.Walk() {
		got = append(got, p.String())
	}
	want := []string{"integration", "production", "production/sector-1"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("walk = %v, want %v", got, want)
	}
}

func TestDuplicateSiblingNamesRejected(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "config.yaml"), `
dimensions:
  - environments
sequence:
  environments:
    - name: integration
    - name: integration
`)
	_, err := Load(root)
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate node error, got %v", err)
	}
}

func TestPathCoverage(t *testing.T) {
	existing := []Path{
		{"integration", "sector-1"},
		{"production", "sector-1", "region-1"},
	}
	cases := []struct {
		path Path
		want bool
	}{
		{Path{"integration", "sector-1", "region-1"}, true},
		{Path{"integration", "sector-1"}, true},
		{Path{"integration", "sector-2", "region-1"}, false},
		{Path{"integration"}, false},
		{Path{"production", "sector-1", "region-1"}, true},
		{Path{"production", "sector-1"}, false},
	}
	for _, tc := range cases {
		if got := tc.path.Covered(existing); got != tc.want {
			t.Errorf("Covered(%s) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestTreeContains(t *testing.T) {
	cfg := loadTestConfig(t, testConfig)
	if !cfg.Tree.Contains(Path{"integration", "sector-1", "region-2"}) {
		t.Fatal("declared target not found")
	}
	if cfg.Tree.Contains(Path{"integration", "sector-9"}) {
		t.Fatal("undeclared node reported present")
	}
}

func TestComponents(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "config.yaml"), testConfig)
	writeFile(t, filepath.Join(root, "management-cluster", "hypershift", "values.yaml"), "a: 1\n")
	writeFile(t, filepath.Join(root, "management-cluster", "notes.txt"), "not a component\n")
	if err := os.MkdirAll(filepath.Join(root, "management-cluster", "empty-dir"), 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(root)
	if err != nil {
		t.Fatal(err)
	}
	components, err := cfg.Components("management-cluster")
	if err != nil {
		t.Fatal(err)
	}
	if len(components) != 1 || components[0] != "hypershift" {
		t.Fatalf("components = %v", components)
	}
}

func TestParsePath(t *testing.T) {
	if got := ParsePath("/a/b/c/"); got.String() != "a/b/c" {
		t.Fatalf("parsed = %q", got)
	}
	if got := ParsePath(""); got != nil {
		t.Fatalf("empty input should be nil, got %v", got)
	}
}
