// File: cmd/fleetctl/fleetctl_test.go
// Brief: End-to-end tests of the fleetctl commands against a temp tree.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testConfig = `
dimensions:
  - environments
  - sectors
sequence:
  environments:
    - name: integration
      sectors:
        - name: sector-1
        - name: sector-2
    - name: production
      sectors:
        - name: sector-1
cluster_types:
  - name: management-cluster
`

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newConfigRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "config.yaml"), testConfig)
	writeTestFile(t, filepath.Join(root, "management-cluster", "hypershift", "values.yaml"),
		"deployments:\n  hypershift:\n    replicas: 1\n")
	writeTestFile(t, filepath.Join(root, "management-cluster", "defaults.yaml"),
		"deployments:\n  default:\n    replicas: 2\n    logLevel: info\n")
	return root
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTargetsCommand(t *testing.T) {
	root := newConfigRoot(t)
	out, err := runCommand(t, "--config-root", root, "targets")
	if err != nil {
		t.Fatalf("targets: %v", err)
	}
	want := strings.Join([]string{
		"integration",
		"integration/sector-1",
		"integration/sector-2",
		"production",
		"production/sector-1",
		"",
	}, "\n")
	if out != want {
		t.Fatalf("targets output:\n%s\nwant:\n%s", out, want)
	}
}

func TestTargetsCommandFull(t *testing.T) {
	root := newConfigRoot(t)
	out, err := runCommand(t, "--config-root", root, "targets", "--full")
	if err != nil {
		t.Fatalf("targets --full: %v", err)
	}
	want := "integration/sector-1\nintegration/sector-2\nproduction/sector-1\n"
	if out != want {
		t.Fatalf("targets --full output:\n%s\nwant:\n%s", out, want)
	}
}

func TestResolveCommand(t *testing.T) {
	root := newConfigRoot(t)
	out, err := runCommand(t, "--config-root", root,
		"resolve", "management-cluster", "hypershift", "integration/sector-1")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !strings.Contains(out, "replicas: 1") || !strings.Contains(out, "logLevel: info") {
		t.Fatalf("resolved output lacks merged values:\n%s", out)
	}
}

func TestResolveCommandRejectsPartialTarget(t *testing.T) {
	root := newConfigRoot(t)
	if _, err := runCommand(t, "--config-root", root,
		"resolve", "management-cluster", "hypershift", "integration"); err == nil {
		t.Fatal("partial target must be rejected")
	}
}

func TestPromoteAndStatusCommands(t *testing.T) {
	root := newConfigRoot(t)
	writeTestFile(t, filepath.Join(root, "management-cluster", "hypershift", "integration", "sector-1", "patch-fix-tls.yaml"),
		"deployments:\n  hypershift:\n    replicas: 3\n")

	out, err := runCommand(t, "--config-root", root,
		"promote", "management-cluster", "hypershift", "fix-tls", "--no-coalesce")
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if !strings.Contains(out, "Promoted fix-tls to integration/sector-2") {
		t.Fatalf("promote output:\n%s", out)
	}

	out, err = runCommand(t, "--config-root", root,
		"status", "management-cluster", "hypershift", "fix-tls")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "Frontier: integration/sector-2") {
		t.Fatalf("status output:\n%s", out)
	}
	if !strings.Contains(out, "integration/sector-1") {
		t.Fatalf("status must list every patched location:\n%s", out)
	}
}

func TestPromoteCoalescesByDefault(t *testing.T) {
	root := newConfigRoot(t)
	writeTestFile(t, filepath.Join(root, "management-cluster", "hypershift", "integration", "sector-1", "patch-fix-tls.yaml"),
		"deployments:\n  hypershift:\n    replicas: 3\n")

	// Promotion reaches sector-2, which completes integration; the
	// coalescing pass then collapses both patches to the environment.
	if _, err := runCommand(t, "--config-root", root,
		"promote", "management-cluster", "hypershift", "fix-tls"); err != nil {
		t.Fatalf("promote: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "management-cluster", "hypershift", "integration", "patch-fix-tls.yaml")); err != nil {
		t.Fatalf("expected an environment-level patch: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "management-cluster", "hypershift", "integration", "sector-1", "patch-fix-tls.yaml")); !os.IsNotExist(err) {
		t.Fatal("sector patches must be removed after coalescing")
	}
}

func TestStatusCommandNoPatches(t *testing.T) {
	root := newConfigRoot(t)
	out, err := runCommand(t, "--config-root", root,
		"status", "management-cluster", "hypershift", "missing")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, `No patches named "missing"`) {
		t.Fatalf("status output:\n%s", out)
	}
}

func TestDocsCommand(t *testing.T) {
	out, err := runCommand(t, "docs")
	if err != nil {
		t.Fatalf("docs: %v", err)
	}
	if !strings.Contains(out, "promotion") {
		t.Fatalf("docs listing:\n%s", out)
	}
	out, err = runCommand(t, "docs", "promotion")
	if err != nil {
		t.Fatalf("docs promotion: %v", err)
	}
	if !strings.Contains(out, "# Patch promotion") {
		t.Fatalf("docs promotion output:\n%s", out)
	}
	if _, err := runCommand(t, "docs", "nonsense"); err == nil {
		t.Fatal("unknown topic must fail")
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version", "--short")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out) == "" {
		t.Fatal("version output is empty")
	}
}
