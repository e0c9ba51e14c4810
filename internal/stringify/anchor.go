package stringify

import (
	"strconv"

	"github.com/fearthecowboy/yaml/internal/ast"
)

// plan records, for one Stringify call, which nodes need a fresh anchor
// label and which node instance each already-emitted alias resolves to.
// It is built once by planAnchors and then consulted (read-only) during
// emission; per spec.md section 5 it is pass-scoped and discarded with
// the call that built it.
type plan struct {
	labels  map[ast.Node]string // node -> anchor label to introduce
	emitted map[ast.Node]bool   // node -> "has its first occurrence been written yet"
}

// planAnchors walks root once, identifying non-scalar nodes (and
// object-identity scalars such as time.Time) reachable by more than one
// path from root. Each such node is assigned a label: the node's own
// pre-existing anchor if it has one, otherwise a freshly minted
// "{prefix}{N}" skipping any label already used as a user anchor
// elsewhere in the tree. Cycles are broken by not recursing past a
// node's second visit.
func planAnchors(root ast.Node, prefix string) *plan {
	used := map[string]bool{}
	collectExistingAnchors(root, map[ast.Node]bool{}, used)

	counts := map[ast.Node]int{}
	var multi []ast.Node
	visited := map[ast.Node]bool{}

	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		if n == nil {
			return
		}
		switch v := n.(type) {
		case *ast.Mapping:
			counts[n]++
			if counts[n] == 2 {
				multi = append(multi, n)
			}
			if visited[n] {
				return
			}
			visited[n] = true
			for _, p := range v.Items {
				walk(p.Key)
				walk(p.Value)
			}
		case *ast.Sequence:
			counts[n]++
			if counts[n] == 2 {
				multi = append(multi, n)
			}
			if visited[n] {
				return
			}
			visited[n] = true
			for _, item := range v.Items {
				walk(item)
			}
		case *ast.Scalar:
			if v.Value == nil || !isObjectIdentityValue(v.Value) {
				return
			}
			counts[n]++
			if counts[n] == 2 {
				multi = append(multi, n)
			}
		case *ast.Alias:
			// An Alias is itself a second (or later) visit to its Target,
			// introduced by CreateNodeInDocument collapsing a repeated
			// pointer into an Alias at creation time rather than leaving
			// the shared node reachable twice by direct traversal. Count
			// it as such so the target still qualifies for an anchor
			// even though this walk never reaches it through the alias.
			if v.Target != nil {
				counts[v.Target]++
				if counts[v.Target] == 2 {
					multi = append(multi, v.Target)
				}
			}
		}
	}
	walk(root)

	labels := map[ast.Node]string{}
	next := 1
	for _, n := range multi {
		if existing := n.Common().Anchor; existing != "" {
			labels[n] = existing
			continue
		}
		var label string
		for {
			label = prefix + strconv.Itoa(next)
			next++
			if !used[label] {
				break
			}
		}
		used[label] = true
		labels[n] = label
	}

	return &plan{labels: labels, emitted: map[ast.Node]bool{}}
}

func collectExistingAnchors(n ast.Node, visited map[ast.Node]bool, out map[string]bool) {
	if n == nil || visited[n] {
		return
	}
	if anchor := n.Common().Anchor; anchor != "" {
		out[anchor] = true
	}
	switch v := n.(type) {
	case *ast.Mapping:
		visited[n] = true
		for _, p := range v.Items {
			collectExistingAnchors(p.Key, visited, out)
			collectExistingAnchors(p.Value, visited, out)
		}
	case *ast.Sequence:
		visited[n] = true
		for _, item := range v.Items {
			collectExistingAnchors(item, visited, out)
		}
	}
}

// isObjectIdentityValue reports whether v is the kind of scalar whose
// *identity* (not just its value) matters for aliasing purposes: dates
// and other host objects, as opposed to plain strings/numbers/bools
// which re-emit as independent literals even when the same Scalar node
// is referenced twice.
func isObjectIdentityValue(v any) bool {
	switch v.(type) {
	case string, bool, int, int64, uint64, float64:
		return false
	default:
		return true
	}
}

// label returns the anchor label assigned to n, if any, and whether n
// has already been emitted once (meaning this occurrence must be
// written as an alias instead of recursing).
func (p *plan) label(n ast.Node) (label string, needsAnchor bool, alreadyEmitted bool) {
	label, needsAnchor = p.labels[n]
	alreadyEmitted = p.emitted[n]
	return
}

func (p *plan) markEmitted(n ast.Node) { p.emitted[n] = true }
