package native

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fearthecowboy/yaml/internal/ast"
	"github.com/fearthecowboy/yaml/internal/schema"
)

func TestToNativeScalar(t *testing.T) {
	assert.Equal(t, int64(42), ToNative(&ast.Scalar{Value: int64(42)}))
	assert.Nil(t, ToNative(nil))
}

func TestToNativeSequence(t *testing.T) {
	seq := &ast.Sequence{Items: []ast.Node{
		&ast.Scalar{Value: "a"},
		&ast.Scalar{Value: int64(1)},
	}}
	assert.Equal(t, []any{"a", int64(1)}, ToNative(seq))
}

func TestToNativeMappingStringKeys(t *testing.T) {
	m := &ast.Mapping{Items: []*ast.Pair{
		{Key: &ast.Scalar{Value: "name"}, Value: &ast.Scalar{Value: "widget"}},
		{Key: &ast.Scalar{Value: "count"}, Value: &ast.Scalar{Value: int64(3)}},
	}}
	assert.Equal(t, map[string]any{"name": "widget", "count": int64(3)}, ToNative(m))
}

// TestToNativeMappingNonStringKeyRendersWithFmtSprint covers a mapping key
// that isn't itself a string scalar, e.g. an integer key.
func TestToNativeMappingNonStringKeyRendersWithFmtSprint(t *testing.T) {
	m := &ast.Mapping{Items: []*ast.Pair{
		{Key: &ast.Scalar{Value: int64(1)}, Value: &ast.Scalar{Value: "one"}},
	}}
	assert.Equal(t, map[string]any{"1": "one"}, ToNative(m))
}

func TestToNativeResolvedAlias(t *testing.T) {
	target := &ast.Scalar{Value: "hi"}
	alias := &ast.Alias{Target: target}
	assert.Equal(t, "hi", ToNative(alias))
}

func TestToNativeUnresolvedAliasIsNil(t *testing.T) {
	alias := &ast.Alias{}
	assert.Nil(t, ToNative(alias))
}

// TestToNativeExpandsMergeKey covers merge-key ("<<") resolution, which
// happens here at native-conversion time rather than during compose, so
// the ast.Mapping itself keeps its original "<<" Pair.
func TestToNativeExpandsMergeKey(t *testing.T) {
	base := &ast.Mapping{Items: []*ast.Pair{
		{Key: &ast.Scalar{Value: "x"}, Value: &ast.Scalar{Value: int64(1)}},
		{Key: &ast.Scalar{Value: "y"}, Value: &ast.Scalar{Value: int64(2)}},
	}}
	derived := &ast.Mapping{Items: []*ast.Pair{
		{
			Key:   &ast.Scalar{Value: "<<", Props: ast.Common{Tag: schema.MergeTag}},
			Value: &ast.Alias{Source: "b", Target: base},
		},
		{Key: &ast.Scalar{Value: "y"}, Value: &ast.Scalar{Value: int64(3)}},
	}}

	got := ToNative(derived)
	assert.Equal(t, map[string]any{"x": int64(1), "y": int64(3)}, got)
}
