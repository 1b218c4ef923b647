// File: internal/document/merge.go
// Brief: Deep-merge rules for layered configuration values.

package document

// Merge deep-merges override on top of base and returns a new value;
// neither input is modified. Two mappings merge key by key, with the
// override winning for scalar and list fields. Keys present in both keep
// the base position; new keys are appended in override order. Any
// non-mapping override (lists included) replaces the base wholesale.
func Merge(base, override Value) Value {
	if override.IsZero() {
		return base.Clone()
	}
	if base.IsZero() {
		return override.Clone()
	}
	if base.Kind != Mapping || override.Kind != Mapping {
		return override.Clone()
	}
	out := Value{Kind: Mapping, Fields: make([]Field, 0, len(base.Fields))}
	for _, f := range base.Fields {
		if ov, ok := override.Get(f.Key); ok {
			out.Fields = append(out.Fields, Field{Key: f.Key, Value: Merge(f.Value, ov)})
			continue
		}
		out.Fields = append(out.Fields, Field{Key: f.Key, Value: f.Value.Clone()})
	}
	for _, f := range override.Fields {
		if base.Has(f.Key) {
			continue
		}
		out.Fields = append(out.Fields, Field{Key: f.Key, Value: f.Value.Clone()})
	}
	return out
}

// FieldPaths returns the dotted paths of every leaf field in document
// order. Lists and scalars are leaves; so is an empty mapping.
func FieldPaths(v Value) []string {
	var out []string
	var walk func(prefix string, v Value)
	walk = func(prefix string, v Value) {
		if v.Kind == Mapping && len(v.Fields) > 0 {
			for _, f := range v.Fields {
				p := f.Key
				if prefix != "" {
					p = prefix + "." + f.Key
				}
				walk(p, f.Value)
			}
			return
		}
		if prefix != "" {
			out = append(out, prefix)
		}
	}
	walk("", v)
	return out
}
