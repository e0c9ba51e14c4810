package ast

import (
	"reflect"
	"sort"

	"github.com/fearthecowboy/yaml/internal/errcode"
)

// Replacer mirrors JSON's reviver/replacer contract: given a key (a
// string map key, or an int sequence index) and its candidate value, it
// returns the value to actually emit, or (nil, false) to skip the
// entry entirely.
type Replacer func(key any, value any) (any, bool)

// CreateNode builds a node tree from a host Go value: maps become
// Mapping, slices/arrays become Sequence, everything else becomes a
// Scalar. It has no document context, so a cyclic value (a map or
// slice that contains itself, directly or transitively) aborts with an
// errcode.Error rather than installing an anchor/alias pair; callers
// that need cycle support should use a Document's composer-facing
// entry point instead, once one observes the value through
// CreateNodeInDocument.
func CreateNode(value any) Node {
	return createNode(value, map[uintptr]bool{}, nil)
}

// CreateNodeWithReplacer is CreateNode with a Replacer consulted at
// every map entry and sequence item.
func CreateNodeWithReplacer(value any, replacer Replacer) Node {
	return createNode(value, map[uintptr]bool{}, replacer)
}

// CreateNodeInDocument is CreateNode's document-aware counterpart: a
// value whose pointer identity has already been seen becomes an Alias
// to the first occurrence (which is anchored) instead of raising a
// cycle error.
func CreateNodeInDocument(doc *Document, value any) Node {
	seen := map[uintptr]Node{}
	return createNodeShared(doc, value, seen, nil)
}

func createNode(value any, visiting map[uintptr]bool, replacer Replacer) Node {
	if value == nil {
		return &Scalar{Value: nil}
	}
	if n, ok := value.(Node); ok {
		return n
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Map:
		addr := rv.Pointer()
		if addr != 0 {
			if visiting[addr] {
				errcode.Abortf(errcode.Impossible, errcode.Mark{}, "cyclic value passed to CreateNode outside a document context")
			}
			visiting[addr] = true
			defer delete(visiting, addr)
		}
		m := &Mapping{}
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return formatKey(keys[i]) < formatKey(keys[j]) })
		for _, k := range keys {
			kv := k.Interface()
			vv := rv.MapIndex(k).Interface()
			if replacer != nil {
				var keep bool
				vv, keep = replacer(kv, vv)
				if !keep {
					continue
				}
			}
			m.Items = append(m.Items, &Pair{Key: createNode(kv, visiting, nil), Value: createNode(vv, visiting, replacer)})
		}
		return m
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice {
			addr := rv.Pointer()
			if addr != 0 {
				if visiting[addr] {
					errcode.Abortf(errcode.Impossible, errcode.Mark{}, "cyclic value passed to CreateNode outside a document context")
				}
				visiting[addr] = true
				defer delete(visiting, addr)
			}
		}
		seq := &Sequence{}
		for i := 0; i < rv.Len(); i++ {
			vv := rv.Index(i).Interface()
			if replacer != nil {
				var keep bool
				vv, keep = replacer(i, vv)
				if !keep {
					continue
				}
			}
			seq.Items = append(seq.Items, createNode(vv, visiting, replacer))
		}
		return seq
	case reflect.Ptr:
		if rv.IsNil() {
			return &Scalar{Value: nil}
		}
		return createNode(rv.Elem().Interface(), visiting, replacer)
	default:
		return &Scalar{Value: value}
	}
}

func createNodeShared(doc *Document, value any, seen map[uintptr]Node, replacer Replacer) Node {
	if value == nil {
		return &Scalar{Value: nil}
	}
	if n, ok := value.(Node); ok {
		return n
	}

	rv := reflect.ValueOf(value)
	var addr uintptr
	switch rv.Kind() {
	case reflect.Map, reflect.Slice:
		addr = rv.Pointer()
	}
	if addr != 0 {
		if existing, ok := seen[addr]; ok {
			anchor := existing.Common().Anchor
			if anchor == "" {
				anchor = nextAnchorLabel(doc)
				existing.Common().Anchor = anchor
				doc.Anchors[anchor] = existing
			}
			return &Alias{Source: anchor, Target: existing}
		}
	}

	switch rv.Kind() {
	case reflect.Map:
		m := &Mapping{}
		seen[addr] = m
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return formatKey(keys[i]) < formatKey(keys[j]) })
		for _, k := range keys {
			kv := k.Interface()
			vv := rv.MapIndex(k).Interface()
			if replacer != nil {
				var keep bool
				vv, keep = replacer(kv, vv)
				if !keep {
					continue
				}
			}
			m.Items = append(m.Items, &Pair{
				Key:   createNodeShared(doc, kv, seen, nil),
				Value: createNodeShared(doc, vv, seen, replacer),
			})
		}
		return m
	case reflect.Slice, reflect.Array:
		seq := &Sequence{}
		if addr != 0 {
			seen[addr] = seq
		}
		for i := 0; i < rv.Len(); i++ {
			vv := rv.Index(i).Interface()
			if replacer != nil {
				var keep bool
				vv, keep = replacer(i, vv)
				if !keep {
					continue
				}
			}
			seq.Items = append(seq.Items, createNodeShared(doc, vv, seen, replacer))
		}
		return seq
	case reflect.Ptr:
		if rv.IsNil() {
			return &Scalar{Value: nil}
		}
		return createNodeShared(doc, rv.Elem().Interface(), seen, replacer)
	default:
		return &Scalar{Value: value}
	}
}

func nextAnchorLabel(doc *Document) string {
	for i := 1; ; i++ {
		label := anchorLabelFor(i)
		if _, taken := doc.Anchors[label]; !taken {
			return label
		}
	}
}

func anchorLabelFor(i int) string {
	const digits = "0123456789"
	if i < 10 {
		return "a" + string(digits[i])
	}
	return "a" + itoa(i)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var b []byte
	for i > 0 {
		b = append([]byte{byte('0' + i%10)}, b...)
		i /= 10
	}
	return string(b)
}

func formatKey(v reflect.Value) string {
	if v.Kind() == reflect.String {
		return v.String()
	}
	return reflect.TypeOf(v.Interface()).String()
}
