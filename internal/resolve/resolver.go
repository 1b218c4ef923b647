// File: internal/resolve/resolver.go
// Brief: Layered deep-merge resolution for one deployment target.

// Package resolve produces the effective configuration of a component at a
// complete dimension path: component base values, then per-section
// defaults, then overrides and patches for every ancestor of the target,
// shortest path first. Resolution only reads the tree.
package resolve

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-logr/logr"

	"github.com/patjlm/gcp-hcp-apps/internal/document"
	"github.com/patjlm/gcp-hcp-apps/internal/fleet"
	"github.com/patjlm/gcp-hcp-apps/internal/patch"
)

// Resolver resolves layered configuration values.
type Resolver struct {
	cfg   *fleet.Config
	store *patch.Store
	log   logr.Logger
}

// New returns a Resolver over the given configuration root.
func New(cfg *fleet.Config, store *patch.Store, log logr.Logger) *Resolver {
	return &Resolver{cfg: cfg, store: store, log: log}
}

// Resolve produces the effective configuration of the component at target.
// The target must name every declared dimension level.
func (r *Resolver) Resolve(clusterType, component string, target fleet.Path) (document.Value, error) {
	if target.Depth() != r.cfg.Depth() {
		return document.Value{}, fmt.Errorf("target %q must name all %d dimension levels", target, r.cfg.Depth())
	}
	if !r.cfg.Tree.Contains(target) {
		return document.Value{}, fmt.Errorf("target %q is not declared in the fleet hierarchy", target)
	}

	merged, err := r.baseValues(clusterType, component)
	if err != nil {
		return document.Value{}, err
	}

	for depth := 1; depth <= target.Depth(); depth++ {
		ancestor := target.Prefix(depth)
		merged, err = r.mergeAncestor(clusterType, component, ancestor, merged)
		if err != nil {
			return document.Value{}, err
		}
	}
	return merged, nil
}

// baseValues loads the mandatory component values and folds the section
// defaults underneath each section item.
func (r *Resolver) baseValues(clusterType, component string) (document.Value, error) {
	valuesFile := r.cfg.ValuesFile(clusterType, component)
	values, err := document.Load(valuesFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return document.Value{}, &fleet.ConfigError{File: valuesFile, Reason: "mandatory base values artifact is missing"}
		}
		return document.Value{}, err
	}
	if values.IsZero() || values.Kind != document.Mapping || len(values.Fields) == 0 {
		return document.Value{}, &fleet.ConfigError{File: valuesFile, Reason: "mandatory base values artifact is empty"}
	}

	defaultsFile := r.cfg.DefaultsFile(clusterType)
	defaults, err := document.Load(defaultsFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return document.Value{}, err
	}

	out := document.Value{Kind: document.Mapping}
	for _, section := range values.Fields {
		def, ok := defaults.Get(section.Key)
		if !ok {
			return document.Value{}, &fleet.ConfigError{
				File:   defaultsFile,
				Reason: fmt.Sprintf("no default section for %q used by %s", section.Key, valuesFile),
			}
		}
		defMap, ok := def.Get("default")
		if !ok || defMap.Kind != document.Mapping {
			return document.Value{}, &fleet.ConfigError{
				File:   defaultsFile,
				Reason: fmt.Sprintf("section %q must define a default sub-mapping", section.Key),
			}
		}
		sectionValue := section.Value.Clone()
		if sectionValue.Kind == document.Mapping {
			for i, item := range sectionValue.Fields {
				sectionValue.Fields[i].Value = document.Merge(defMap, item.Value)
			}
		}
		out.Fields = append(out.Fields, document.Field{Key: section.Key, Value: sectionValue})
	}
	return out, nil
}

// mergeAncestor folds in the ancestor's override, then its patches in
// ascending name order. Field-path collisions between patches at this path
// are reported as warnings; the later patch wins.
func (r *Resolver) mergeAncestor(clusterType, component string, ancestor fleet.Path, merged document.Value) (document.Value, error) {
	overrideFile := r.cfg.OverrideFile(clusterType, component, ancestor)
	override, err := document.Load(overrideFile)
	if err == nil {
		merged = document.Merge(merged, override)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return document.Value{}, err
	}

	patches, err := r.store.At(clusterType, component, ancestor)
	if err != nil {
		return document.Value{}, err
	}
	mergedFields := make(map[string]string)
	for _, p := range patches {
		content, err := p.Content()
		if err != nil {
			return document.Value{}, err
		}
		paths, err := p.FieldPaths()
		if err != nil {
			return document.Value{}, err
		}
		for _, fp := range paths {
			if prev, seen := mergedFields[fp]; seen {
				r.log.Info("patch field conflict; later patch wins",
					"path", ancestor.String(), "field", fp, "earlier", prev, "later", p.Name)
			}
			mergedFields[fp] = p.Name
		}
		merged = document.Merge(merged, content)
	}
	return merged, nil
}
