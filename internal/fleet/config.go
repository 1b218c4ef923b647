// File: internal/fleet/config.go
// Brief: Configuration root loading and artifact path layout.

package fleet

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/patjlm/gcp-hcp-apps/internal/document"
)

const (
	configFileName   = "config.yaml"
	valuesFileName   = "values.yaml"
	defaultsFileName = "defaults.yaml"
	overrideFileName = "override.yaml"
)

// Config is the loaded configuration root: the declared hierarchy plus the
// directory layout every component reads from and writes to.
type Config struct {
	Root         string
	Dimensions   []string
	ClusterTypes []string
	Tree         *Tree

	promotionDepth int
}

// Load reads <root>/config.yaml and builds the dimension tree.
func Load(root string) (*Config, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	file := filepath.Join(absRoot, configFileName)
	doc, err := document.Load(file)
	if err != nil {
		return nil, err
	}
	if doc.Kind != document.Mapping {
		return nil, &ConfigError{File: file, Reason: "config must be a mapping"}
	}

	dims, ok := doc.Get("dimensions")
	if !ok || dims.Kind != document.List || len(dims.Items) == 0 {
		return nil, &ConfigError{File: file, Reason: "dimensions must be a non-empty list"}
	}
	levels := make([]string, 0, len(dims.Items))
	for i, item := range dims.Items {
		name, ok := item.Scalar.(string)
		if item.Kind != document.Scalar || !ok || name == "" {
			return nil, &ConfigError{File: file, Reason: fmt.Sprintf("dimensions[%d] must be a string", i)}
		}
		levels = append(levels, name)
	}

	sequence, ok := doc.Get("sequence")
	if !ok || sequence.Kind != document.Mapping {
		return nil, &ConfigError{File: file, Reason: "sequence must be a mapping"}
	}
	tree, err := NewTree(levels, sequence)
	if err != nil {
		if ce, isCfg := err.(*ConfigError); isCfg && ce.File == "" {
			ce.File = file
		}
		return nil, err
	}

	var clusterTypes []string
	if cts, ok := doc.Get("cluster_types"); ok {
		if cts.Kind != document.List {
			return nil, &ConfigError{File: file, Reason: "cluster_types must be a list"}
		}
		for i, item := range cts.Items {
			nameVal, ok := item.Get("name")
			name, isStr := "", false
			if ok {
				name, isStr = nameVal.Scalar.(string)
			}
			if !ok || !isStr || name == "" {
				return nil, &ConfigError{File: file, Reason: fmt.Sprintf("cluster_types[%d].name must be a string", i)}
			}
			clusterTypes = append(clusterTypes, name)
		}
	}

	cfg := &Config{
		Root:         absRoot,
		Dimensions:   levels,
		ClusterTypes: clusterTypes,
		Tree:         tree,
	}
	if err := cfg.setPromotionDepth(doc, file); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setPromotionDepth resolves the optional promotion_level key. Promotion
// never lands on a bare top-level node, so the default is the second level.
func (c *Config) setPromotionDepth(doc document.Value, file string) error {
	level := ""
	if v, ok := doc.Get("promotion_level"); ok {
		s, isStr := v.Scalar.(string)
		if v.Kind != document.Scalar || !isStr {
			return &ConfigError{File: file, Reason: "promotion_level must be a string"}
		}
		level = s
	}
	if level == "" {
		if len(c.Dimensions) > 1 {
			c.promotionDepth = 2
		} else {
			c.promotionDepth = 1
		}
		return nil
	}
	for i, name := range c.Dimensions {
		if name == level {
			c.promotionDepth = i + 1
			return nil
		}
	}
	return &ConfigError{File: file, Reason: fmt.Sprintf("promotion_level %q is not a declared dimension", level)}
}

// Depth returns the number of dimension levels.
func (c *Config) Depth() int {
	return len(c.Dimensions)
}

// MinPromotionDepth returns the minimum path depth a promotion may target.
func (c *Config) MinPromotionDepth() int {
	return c.promotionDepth
}

// ComponentDir returns the directory holding one component's artifacts.
func (c *Config) ComponentDir(clusterType, component string) string {
	return filepath.Join(c.Root, clusterType, component)
}

// ValuesFile returns the component's permanent base values artifact.
func (c *Config) ValuesFile(clusterType, component string) string {
	return filepath.Join(c.ComponentDir(clusterType, component), valuesFileName)
}

// DefaultsFile returns the cluster type's section defaults artifact.
func (c *Config) DefaultsFile(clusterType string) string {
	return filepath.Join(c.Root, clusterType, defaultsFileName)
}

// DimensionDir returns the directory mirroring one dimension path.
func (c *Config) DimensionDir(clusterType, component string, p Path) string {
	return filepath.Join(append([]string{c.ComponentDir(clusterType, component)}, p...)...)
}

// OverrideFile returns the path of the override artifact bound to p.
func (c *Config) OverrideFile(clusterType, component string, p Path) string {
	return filepath.Join(c.DimensionDir(clusterType, component, p), overrideFileName)
}

// Components lists the component directories of a cluster type, identified
// by the presence of a values.yaml.
func (c *Config) Components(clusterType string) ([]string, error) {
	dir := filepath.Join(c.Root, clusterType)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, e.Name(), valuesFileName)); err == nil {
			out = append(out, e.Name())
		}
	}
	return out, nil
}
