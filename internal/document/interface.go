// File: internal/document/interface.go
// Brief: Conversion to plain Go values for template engines.

package document

// Interface converts v into plain Go values (map[string]any, []any,
// scalars). Mapping order is lost; callers that need deterministic output
// should render the Value directly instead.
func (v Value) Interface() any {
	switch v.Kind {
	case Scalar:
		return v.Scalar
	case List:
		out := make([]any, len(v.Items))
		for i := range v.Items {
			out[i] = v.Items[i].Interface()
		}
		return out
	case Mapping:
		out := make(map[string]any, len(v.Fields))
		for _, f := range v.Fields {
			out[f.Key] = f.Value.Interface()
		}
		return out
	default:
		return nil
	}
}
