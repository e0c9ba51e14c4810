package stringify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fearthecowboy/yaml/internal/ast"
	"github.com/fearthecowboy/yaml/internal/schema"
)

func newDoc(content ast.Node) *ast.Document {
	doc := ast.NewDocument()
	doc.Contents = content
	return doc
}

func TestStringifyBlockMapping(t *testing.T) {
	m := &ast.Mapping{}
	m.Add("name", "widget")
	m.Add("count", int64(3))
	out, err := Stringify(newDoc(m), Options{Schema: schema.Core()})
	require.NoError(t, err)
	assert.Equal(t, "name: widget\ncount: 3\n", out)
}

func TestStringifyBlockSequence(t *testing.T) {
	seq := &ast.Sequence{Items: []ast.Node{
		&ast.Scalar{Value: "a", Style: ast.StylePlain},
		&ast.Scalar{Value: "b", Style: ast.StylePlain},
	}}
	out, err := Stringify(newDoc(seq), Options{Schema: schema.Core()})
	require.NoError(t, err)
	assert.Equal(t, "- a\n- b\n", out)
}

func TestStringifyFlowCollections(t *testing.T) {
	seq := &ast.Sequence{Flow: true, Items: []ast.Node{
		&ast.Scalar{Value: int64(1), Style: ast.StylePlain},
		&ast.Scalar{Value: int64(2), Style: ast.StylePlain},
	}}
	out, err := Stringify(newDoc(seq), Options{Schema: schema.Core()})
	require.NoError(t, err)
	assert.Equal(t, "[ 1, 2 ]\n", out)
}

func TestStringifyEmptyCollections(t *testing.T) {
	out, err := Stringify(newDoc(&ast.Mapping{}), Options{Schema: schema.Core()})
	require.NoError(t, err)
	assert.Equal(t, "{}\n", out)

	out, err = Stringify(newDoc(&ast.Sequence{}), Options{Schema: schema.Core()})
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestStringifySortMapEntries(t *testing.T) {
	m := &ast.Mapping{}
	m.Add("zeta", "z")
	m.Add("alpha", "a")
	out, err := Stringify(newDoc(m), Options{Schema: schema.Core(), SortMapEntries: true})
	require.NoError(t, err)
	assert.Equal(t, "alpha: a\nzeta: z\n", out)
}

func TestStringifyHeadAndLineComments(t *testing.T) {
	m := &ast.Mapping{Items: []*ast.Pair{
		{
			Props: ast.Common{HeadComment: "about a", LineComment: "trailing"},
			Key:   &ast.Scalar{Value: "a", Style: ast.StylePlain},
			Value: &ast.Scalar{Value: int64(1), Style: ast.StylePlain},
		},
	}}
	out, err := Stringify(newDoc(m), Options{Schema: schema.Core()})
	require.NoError(t, err)
	assert.Equal(t, "# about a\na: 1 # trailing\n", out)
}

func TestStringifySingleQuotePreference(t *testing.T) {
	out, err := Stringify(newDoc(&ast.Scalar{Value: "hello world", Style: ast.StylePlain}),
		Options{Schema: schema.Core(), SingleQuote: true})
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", out, "a value that can be plain stays plain even with SingleQuote set")
}

func TestStringifyIndentSeqOption(t *testing.T) {
	m := &ast.Mapping{}
	seq := &ast.Sequence{Items: []ast.Node{
		&ast.Scalar{Value: "a", Style: ast.StylePlain},
	}}
	m.Items = append(m.Items, &ast.Pair{Key: &ast.Scalar{Value: "items", Style: ast.StylePlain}, Value: seq})

	out, err := Stringify(newDoc(m), Options{Schema: schema.Core(), Indent: 2})
	require.NoError(t, err)
	assert.Equal(t, "items:\n- a\n", out)

	out, err = Stringify(newDoc(m), Options{Schema: schema.Core(), Indent: 2, IndentSeq: true})
	require.NoError(t, err)
	assert.Equal(t, "items:\n  - a\n", out)
}

func TestStringifyNullValueOmitsTrailingSpace(t *testing.T) {
	m := &ast.Mapping{Items: []*ast.Pair{
		{Key: &ast.Scalar{Value: "a", Style: ast.StylePlain}, Value: &ast.Scalar{Value: nil, Style: ast.StylePlain}},
	}}
	out, err := Stringify(newDoc(m), Options{Schema: schema.Core()})
	require.NoError(t, err)
	assert.Equal(t, "a:\n", out)
}

// TestStringifySharedSequenceAnchorsFirstOccurrence is the package-level
// counterpart of the root facade's cyclic/shared-reference scenarios:
// the same *ast.Sequence node reached twice must anchor on its first
// emission and alias on its second.
func TestStringifySharedSequenceAnchorsFirstOccurrence(t *testing.T) {
	shared := &ast.Sequence{Items: []ast.Node{&ast.Scalar{Value: "one", Style: ast.StylePlain}}}
	outer := &ast.Sequence{Items: []ast.Node{shared, &ast.Scalar{Value: "two", Style: ast.StylePlain}, shared}}

	out, err := Stringify(newDoc(outer), Options{Schema: schema.Core(), AnchorPrefix: "a"})
	require.NoError(t, err)

	anchorIdx := strings.Index(out, "&a1")
	aliasIdx := strings.Index(out, "*a1")
	require.NotEqual(t, -1, anchorIdx)
	require.NotEqual(t, -1, aliasIdx)
	assert.Less(t, anchorIdx, aliasIdx)
	assert.Equal(t, 1, strings.Count(out, "&a1"))
}

func TestStringifyPreExistingAnchorIsReused(t *testing.T) {
	shared := &ast.Mapping{Props: ast.Common{Anchor: "base"}}
	shared.Add("k", "v")
	outer := &ast.Sequence{Items: []ast.Node{shared, shared}}

	out, err := Stringify(newDoc(outer), Options{Schema: schema.Core()})
	require.NoError(t, err)
	assert.Contains(t, out, "&base")
	assert.Contains(t, out, "*base")
	assert.NotContains(t, out, "&a1")
}

// TestStringifyVerifyAliasOrderRejectsForwardReference covers the
// VerifyAliasOrder option: an alias referencing an anchor that has not
// yet been introduced in document order is an error when this option is
// enabled, since no well-formed document this stringifier itself builds
// should ever need a forward reference.
func TestStringifyVerifyAliasOrderRejectsForwardReference(t *testing.T) {
	dangling := &ast.Alias{Source: "nope"}
	out, err := Stringify(newDoc(dangling), Options{Schema: schema.Core(), VerifyAliasOrder: true})
	assert.Error(t, err)
	assert.Empty(t, out)
}

func TestStringifySimpleKeysRejectsComplexKey(t *testing.T) {
	seqKey := &ast.Sequence{Items: []ast.Node{&ast.Scalar{Value: "x", Style: ast.StylePlain}}}
	m := &ast.Mapping{Items: []*ast.Pair{
		{Key: seqKey, Value: &ast.Scalar{Value: int64(1), Style: ast.StylePlain}},
	}}
	_, err := Stringify(newDoc(m), Options{Schema: schema.Core(), SimpleKeys: true})
	assert.Error(t, err)
}

func TestStringifyComplexKeyUsesExplicitForm(t *testing.T) {
	seqKey := &ast.Sequence{Items: []ast.Node{&ast.Scalar{Value: "x", Style: ast.StylePlain}}}
	m := &ast.Mapping{Items: []*ast.Pair{
		{Key: seqKey, Value: &ast.Scalar{Value: int64(1), Style: ast.StylePlain}},
	}}
	out, err := Stringify(newDoc(m), Options{Schema: schema.Core()})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "? "), "expected explicit key form, got %q", out)
}

func TestStringifyDirectivesEndMarker(t *testing.T) {
	doc := newDoc(&ast.Scalar{Value: "x", Style: ast.StylePlain})
	out, err := Stringify(doc, Options{Schema: schema.Core(), DirectivesEndMarker: true})
	require.NoError(t, err)
	assert.Equal(t, "---\nx\n", out)
}
