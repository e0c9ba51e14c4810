// Package native converts between the ast node tree and plain Go
// values (map[string]any, []any, and the schema's resolved scalar
// types). It is intentionally thin: unlike a full decode/encode layer
// with struct-tag reflection, it exists only to give callers a quick
// escape hatch to/from idiomatic Go data without themselves walking
// the ast package's node types.
package native

import (
	"fmt"

	"github.com/fearthecowboy/yaml/internal/ast"
)

// ToNative converts a composed ast.Node into plain Go values: Mapping
// becomes map[string]any (non-string keys are rendered with fmt's %v),
// Sequence becomes []any, Scalar becomes its resolved Value, and an
// unresolved Alias becomes nil.
//
// YAML 1.1 "<<" merge keys are expanded here, at native-conversion
// time, matching the teacher's constructMerge (internal/libyaml/
// constructor.go), which runs during Go-value construction rather than
// during node-tree composition. The ast.Mapping itself keeps its
// original "<<" Pair untouched, so a Document composed from source
// carrying a merge key can still be re-stringified back to the same
// "<<" structure; only a ToNative call flattens it.
func ToNative(n ast.Node) any {
	switch v := n.(type) {
	case nil:
		return nil
	case *ast.Scalar:
		return v.Value
	case *ast.Mapping:
		return mappingToNative(v)
	case *ast.Sequence:
		out := make([]any, len(v.Items))
		for i, item := range v.Items {
			out[i] = ToNative(item)
		}
		return out
	case *ast.Alias:
		if v.Target != nil {
			return ToNative(v.Target)
		}
		return nil
	default:
		return nil
	}
}

func mappingToNative(m *ast.Mapping) map[string]any {
	out := make(map[string]any, len(m.Items))
	for _, pair := range m.Items {
		if isMergeKey(pair.Key) {
			continue
		}
		out[scalarString(pair.Key)] = ToNative(pair.Value)
	}
	for _, pair := range m.Items {
		if !isMergeKey(pair.Key) {
			continue
		}
		for _, src := range mergeSources(pair.Value) {
			for k, v := range mappingToNative(src) {
				if _, exists := out[k]; exists {
					continue
				}
				out[k] = v
			}
		}
	}
	return out
}

func scalarString(n ast.Node) string {
	s, ok := n.(*ast.Scalar)
	if !ok {
		return ""
	}
	if str, ok := s.Value.(string); ok {
		return str
	}
	return toString(s.Value)
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
