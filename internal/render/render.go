// File: internal/render/render.go
// Brief: Client-only Helm rendering of resolved fleet values.

// Package render turns resolved per-target values into final manifests. It
// assembles the shared template chart in memory and renders it with Helm's
// template engine only; no cluster is contacted.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-logr/logr"
	"gopkg.in/yaml.v3"
	"helm.sh/helm/v3/pkg/chart"
	"helm.sh/helm/v3/pkg/chartutil"
	"helm.sh/helm/v3/pkg/engine"

	"github.com/patjlm/gcp-hcp-apps/internal/document"
	"github.com/patjlm/gcp-hcp-apps/internal/fleet"
	"github.com/patjlm/gcp-hcp-apps/internal/resolve"
)

const chartFileName = "Chart.yaml"

// Renderer renders every cluster type and target of the fleet.
type Renderer struct {
	cfg          *fleet.Config
	resolver     *resolve.Resolver
	log          logr.Logger
	templatesDir string
	outDir       string
}

// New returns a Renderer reading templates from templatesDir and writing
// under outDir.
func New(cfg *fleet.Config, resolver *resolve.Resolver, log logr.Logger, templatesDir, outDir string) *Renderer {
	return &Renderer{cfg: cfg, resolver: resolver, log: log, templatesDir: templatesDir, outDir: outDir}
}

type chartMeta struct {
	APIVersion  string `yaml:"apiVersion"`
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Version     string `yaml:"version"`
}

// RenderAll regenerates the output directory from scratch: every component
// of every cluster type, resolved and rendered at every full-depth target.
func (r *Renderer) RenderAll() error {
	if err := os.RemoveAll(r.outDir); err != nil {
		return err
	}
	for _, clusterType := range r.cfg.ClusterTypes {
		for _, target := range r.cfg.Tree.Targets() {
			if err := r.renderTarget(clusterType, target); err != nil {
				return fmt.Errorf("render %s/%s: %w", clusterType, target, err)
			}
		}
	}
	return nil
}

func (r *Renderer) renderTarget(clusterType string, target fleet.Path) error {
	r.log.Info("rendering target", "clusterType", clusterType, "target", target.String())

	components, err := r.cfg.Components(clusterType)
	if err != nil {
		return err
	}
	var merged document.Value
	for _, component := range components {
		resolved, err := r.resolver.Resolve(clusterType, component, target)
		if err != nil {
			return err
		}
		merged = document.Merge(merged, resolved)
	}

	meta, templates, err := r.loadChart(clusterType, target)
	if err != nil {
		return err
	}
	ch := &chart.Chart{
		Metadata: &chart.Metadata{
			APIVersion:  meta.APIVersion,
			Name:        meta.Name,
			Description: meta.Description,
			Version:     meta.Version,
		},
		Templates: templates,
	}

	vals, _ := merged.Interface().(map[string]any)
	if vals == nil {
		vals = map[string]any{}
	}
	renderValues, err := chartutil.ToRenderValues(ch, vals, chartutil.ReleaseOptions{
		Name:      meta.Name,
		Namespace: "default",
		IsInstall: true,
	}, chartutil.DefaultCapabilities)
	if err != nil {
		return err
	}
	rendered, err := engine.Engine{}.Render(ch, renderValues)
	if err != nil {
		return err
	}

	targetDir := filepath.Join(append([]string{r.outDir, clusterType}, target...)...)
	if err := os.MkdirAll(filepath.Join(targetDir, "templates"), 0o755); err != nil {
		return err
	}

	names := make([]string, 0, len(rendered))
	for name := range rendered {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		content := rendered[name]
		if strings.TrimSpace(content) == "" {
			continue
		}
		out := filepath.Join(targetDir, "templates", filepath.Base(name))
		if err := os.WriteFile(out, []byte(content), 0o644); err != nil {
			return err
		}
	}

	metaOut, err := yaml.Marshal(meta)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(targetDir, chartFileName), metaOut, 0o644); err != nil {
		return err
	}
	return document.Save(merged, filepath.Join(targetDir, "values.yaml"))
}

// loadChart reads Chart.yaml plus every template from the shared templates
// directory, naming the chart after the cluster type.
func (r *Renderer) loadChart(clusterType string, target fleet.Path) (chartMeta, []*chart.File, error) {
	meta := chartMeta{APIVersion: "v2", Version: "0.1.0"}
	raw, err := os.ReadFile(filepath.Join(r.templatesDir, chartFileName))
	if err != nil && !os.IsNotExist(err) {
		return chartMeta{}, nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(raw, &meta); err != nil {
			return chartMeta{}, nil, fmt.Errorf("parse %s: %w", filepath.Join(r.templatesDir, chartFileName), err)
		}
	}
	meta.Name = clusterType + "-apps"
	meta.Description = fmt.Sprintf("Applications for %s in %s", clusterType, target)
	if meta.APIVersion == "" {
		meta.APIVersion = "v2"
	}
	if meta.Version == "" {
		meta.Version = "0.1.0"
	}

	entries, err := os.ReadDir(r.templatesDir)
	if err != nil {
		return chartMeta{}, nil, err
	}
	var files []*chart.File
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == chartFileName {
			continue
		}
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".tpl") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(r.templatesDir, name))
		if err != nil {
			return chartMeta{}, nil, err
		}
		files = append(files, &chart.File{Name: "templates/" + name, Data: data})
	}
	if len(files) == 0 {
		return chartMeta{}, nil, fmt.Errorf("no templates found in %s", r.templatesDir)
	}
	return meta, files, nil
}
