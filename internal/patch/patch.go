// File: internal/patch/patch.go
// Brief: Patch artifacts bound to dimension paths.

// Package patch implements the transient-change lifecycle: locating patch
// artifacts along the canonical traversal, validating rollout completeness,
// promoting the frontier forward, and coalescing covered branches back into
// coarser patches and eventually the permanent base values. All state is
// re-derived from the directory tree on every call; nothing is indexed or
// journaled between invocations.
package patch

import (
	"fmt"
	"path/filepath"

	"github.com/patjlm/gcp-hcp-apps/internal/document"
	"github.com/patjlm/gcp-hcp-apps/internal/fleet"
)

const (
	patchPrefix = "patch-"
	patchSuffix = ".yaml"
)

// Patch is one named transient fragment bound to a dimension path. Content
// and metadata are loaded once, on first access, and cached behind an
// explicit loaded flag.
type Patch struct {
	ClusterType string
	Component   string
	Name        string
	Path        fleet.Path

	file     string
	loaded   bool
	content  document.Value
	metadata document.Value
}

func newPatch(cfg *fleet.Config, clusterType, component, name string, p fleet.Path) *Patch {
	return &Patch{
		ClusterType: clusterType,
		Component:   component,
		Name:        name,
		Path:        p,
		file:        patchFile(cfg, clusterType, component, name, p),
	}
}

func patchFile(cfg *fleet.Config, clusterType, component, name string, p fleet.Path) string {
	return filepath.Join(cfg.DimensionDir(clusterType, component, p), patchPrefix+name+patchSuffix)
}

// File returns the artifact location on disk.
func (p *Patch) File() string {
	return p.file
}

func (p *Patch) load() error {
	if p.loaded {
		return nil
	}
	doc, err := document.Load(p.file)
	if err != nil {
		return err
	}
	if !doc.IsZero() && doc.Kind != document.Mapping {
		return fmt.Errorf("%s: patch must be a mapping", p.file)
	}
	if meta, ok := doc.Get("metadata"); ok {
		p.metadata = meta
	}
	p.content = doc.Without("metadata")
	p.loaded = true
	return nil
}

// Content returns the patch's mergeable content with the metadata
// sub-mapping stripped.
func (p *Patch) Content() (document.Value, error) {
	if err := p.load(); err != nil {
		return document.Value{}, err
	}
	return p.content, nil
}

// Metadata returns the free-form metadata sub-mapping; it is never merged.
func (p *Patch) Metadata() (document.Value, error) {
	if err := p.load(); err != nil {
		return document.Value{}, err
	}
	return p.metadata, nil
}

// FieldPaths returns the flattened dotted field paths of the patch content,
// used for conflict reporting between patches merged at the same path.
func (p *Patch) FieldPaths() ([]string, error) {
	content, err := p.Content()
	if err != nil {
		return nil, err
	}
	return document.FieldPaths(content), nil
}
