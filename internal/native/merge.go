package native

import (
	"github.com/fearthecowboy/yaml/internal/ast"
	"github.com/fearthecowboy/yaml/internal/schema"
)

func isMergeKey(n ast.Node) bool {
	s, ok := n.(*ast.Scalar)
	return ok && s.Props.Tag == schema.MergeTag
}

// mergeSources resolves a merge value to the mappings it draws from: a
// single mapping, an alias to one, or a sequence of either.
func mergeSources(v ast.Node) []*ast.Mapping {
	switch n := v.(type) {
	case *ast.Mapping:
		return []*ast.Mapping{n}
	case *ast.Alias:
		if target, ok := n.Target.(*ast.Mapping); ok {
			return []*ast.Mapping{target}
		}
	case *ast.Sequence:
		var out []*ast.Mapping
		for _, item := range n.Items {
			out = append(out, mergeSources(item)...)
		}
		return out
	}
	return nil
}
