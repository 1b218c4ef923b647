// File: internal/document/io.go
// Brief: YAML load/save for configuration artifacts.

package document

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Parse decodes a single YAML document. An empty document yields the zero
// Value.
func Parse(data []byte) (Value, error) {
	var n yaml.Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return Value{}, err
	}
	return FromNode(&n)
}

// Marshal renders v with two-space indentation, preserving mapping order.
func Marshal(v Value) ([]byte, error) {
	if v.IsZero() {
		return nil, nil
	}
	node, err := v.Node()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Load reads and parses the artifact at path. The returned error wraps the
// underlying fs error for missing files and names the file on parse
// failures.
func Load(path string) (Value, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Value{}, fmt.Errorf("load %s: %w", path, err)
	}
	v, err := Parse(raw)
	if err != nil {
		return Value{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return v, nil
}

// Save writes v to path, creating parent directories as needed.
func Save(v Value, path string) error {
	data, err := Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
