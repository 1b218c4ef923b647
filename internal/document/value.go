// File: internal/document/value.go
// Brief: Tagged structural value decoded from YAML documents.

// Package document models configuration artifacts as a typed structural
// value (scalar, ordered list, ordered mapping) so that merge and flatten
// operations stay deterministic and mapping key order survives a
// load/modify/save round trip.
package document

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind discriminates the Value union.
type Kind int

const (
	Invalid Kind = iota
	Scalar
	List
	Mapping
)

func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case List:
		return "list"
	case Mapping:
		return "mapping"
	default:
		return "invalid"
	}
}

// Field is one key/value pair of a mapping. Mapping fields keep the order
// they had in the source document.
type Field struct {
	Key   string
	Value Value
}

// Value is a parsed YAML value. Exactly one of Scalar, Items, or Fields is
// meaningful, selected by Kind. The zero Value (Kind == Invalid) represents
// an absent or empty document.
type Value struct {
	Kind   Kind
	Scalar any
	Items  []Value
	Fields []Field
}

// IsZero reports whether v holds no document at all.
func (v Value) IsZero() bool {
	return v.Kind == Invalid
}

// Get returns the value of the named mapping field.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != Mapping {
		return Value{}, false
	}
	for _, f := range v.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Has reports whether the mapping defines the named field.
func (v Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Without returns a copy of the mapping with the named field removed. Any
// non-mapping value is returned unchanged.
func (v Value) Without(key string) Value {
	if v.Kind != Mapping {
		return v.Clone()
	}
	out := Value{Kind: Mapping}
	for _, f := range v.Fields {
		if f.Key == key {
			continue
		}
		out.Fields = append(out.Fields, Field{Key: f.Key, Value: f.Value.Clone()})
	}
	return out
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.Kind {
	case List:
		out := Value{Kind: List}
		if v.Items != nil {
			out.Items = make([]Value, len(v.Items))
			for i := range v.Items {
				out.Items[i] = v.Items[i].Clone()
			}
		}
		return out
	case Mapping:
		out := Value{Kind: Mapping}
		if v.Fields != nil {
			out.Fields = make([]Field, len(v.Fields))
			for i, f := range v.Fields {
				out.Fields[i] = Field{Key: f.Key, Value: f.Value.Clone()}
			}
		}
		return out
	default:
		return v
	}
}

// Equal reports whether two values are structurally identical, including
// mapping field order.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Scalar:
		return a.Scalar == b.Scalar
	case List:
		if len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !Equal(a.Items[i], b.Items[i]) {
				return false
			}
		}
		return true
	case Mapping:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if a.Fields[i].Key != b.Fields[i].Key {
				return false
			}
			if !Equal(a.Fields[i].Value, b.Fields[i].Value) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// FromNode converts a decoded yaml.Node into a Value.
func FromNode(n *yaml.Node) (Value, error) {
	if n == nil {
		return Value{}, nil
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Value{}, nil
		}
		return FromNode(n.Content[0])
	case yaml.AliasNode:
		return FromNode(n.Alias)
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return Value{}, nil
		}
		var s any
		if err := n.Decode(&s); err != nil {
			return Value{}, fmt.Errorf("decode scalar at line %d: %w", n.Line, err)
		}
		return Value{Kind: Scalar, Scalar: s}, nil
	case yaml.SequenceNode:
		out := Value{Kind: List, Items: make([]Value, 0, len(n.Content))}
		for _, c := range n.Content {
			item, err := FromNode(c)
			if err != nil {
				return Value{}, err
			}
			out.Items = append(out.Items, item)
		}
		return out, nil
	case yaml.MappingNode:
		out := Value{Kind: Mapping, Fields: make([]Field, 0, len(n.Content)/2)}
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode := n.Content[i]
			var key string
			if err := keyNode.Decode(&key); err != nil {
				return Value{}, fmt.Errorf("decode mapping key at line %d: %w", keyNode.Line, err)
			}
			if out.Has(key) {
				return Value{}, fmt.Errorf("duplicate mapping key %q at line %d", key, keyNode.Line)
			}
			val, err := FromNode(n.Content[i+1])
			if err != nil {
				return Value{}, err
			}
			out.Fields = append(out.Fields, Field{Key: key, Value: val})
		}
		return out, nil
	default:
		return Value{}, fmt.Errorf("unsupported YAML node kind %d at line %d", n.Kind, n.Line)
	}
}

// Node converts v back into a yaml.Node tree for encoding.
func (v Value) Node() (*yaml.Node, error) {
	switch v.Kind {
	case Invalid:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case Scalar:
		n := &yaml.Node{}
		if err := n.Encode(v.Scalar); err != nil {
			return nil, fmt.Errorf("encode scalar %v: %w", v.Scalar, err)
		}
		return n, nil
	case List:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Items {
			c, err := item.Node()
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, c)
		}
		return n, nil
	case Mapping:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, f := range v.Fields {
			keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key}
			valNode, err := f.Value.Node()
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, keyNode, valNode)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("cannot encode value of kind %d", v.Kind)
	}
}
