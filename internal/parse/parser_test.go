package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fearthecowboy/yaml/internal/errcode"
)

func firstDoc(t *testing.T, src string) *Document {
	t.Helper()
	s := Parse(src)
	require.NotEmpty(t, s.Documents)
	return s.Documents[0]
}

func TestParseBlockMapping(t *testing.T) {
	doc := firstDoc(t, "a: 1\nb: two\n")
	require.Empty(t, doc.Errors)
	root := doc.Root
	require.Equal(t, KindBlockMap, root.Kind)
	require.Len(t, root.Pairs, 2)
	assert.Equal(t, "a", root.Pairs[0].Key.Value)
	assert.Equal(t, "1", root.Pairs[0].Value.Value)
	assert.Equal(t, "b", root.Pairs[1].Key.Value)
	assert.Equal(t, "two", root.Pairs[1].Value.Value)
}

func TestParseBlockSequence(t *testing.T) {
	doc := firstDoc(t, "- a\n- b\n")
	root := doc.Root
	require.Equal(t, KindBlockSeq, root.Kind)
	require.Len(t, root.Items, 2)
	assert.Equal(t, "a", root.Items[0].Value)
	assert.Equal(t, "b", root.Items[1].Value)
}

func TestParseFlowSequence(t *testing.T) {
	doc := firstDoc(t, "[1, 2, 3]")
	root := doc.Root
	require.Equal(t, KindFlowSeq, root.Kind)
	require.Len(t, root.Items, 3)
	assert.Equal(t, "1", root.Items[0].Value)
	assert.Equal(t, "3", root.Items[2].Value)
}

func TestParseFlowMapping(t *testing.T) {
	doc := firstDoc(t, "{a: 1, b: 2}")
	root := doc.Root
	require.Equal(t, KindFlowMap, root.Kind)
	require.Len(t, root.Pairs, 2)
	assert.Equal(t, "a", root.Pairs[0].Key.Value)
	assert.Equal(t, "1", root.Pairs[0].Value.Value)
}

// TestParseFlowKeyDisambiguation covers the rule that a bare scalar
// immediately followed by ':' inside a flow sequence is promoted to a
// single-pair flow mapping.
func TestParseFlowKeyDisambiguation(t *testing.T) {
	doc := firstDoc(t, "[a: 1, b]")
	root := doc.Root
	require.Equal(t, KindFlowSeq, root.Kind)
	require.Len(t, root.Items, 2)
	first := root.Items[0]
	require.Equal(t, KindFlowMap, first.Kind)
	require.Len(t, first.Pairs, 1)
	assert.Equal(t, "a", first.Pairs[0].Key.Value)
	assert.Equal(t, "1", first.Pairs[0].Value.Value)
	assert.Equal(t, "b", root.Items[1].Value)
}

func TestParseDirectiveAndDocumentStartMarker(t *testing.T) {
	doc := firstDoc(t, "%YAML 1.2\n---\na: 1\n")
	assert.Equal(t, 1, doc.Directives.VersionMajor)
	assert.Equal(t, 2, doc.Directives.VersionMinor)
	assert.True(t, doc.Directives.HasVersion)
	assert.True(t, doc.DirectivesEndMarker)
	require.Equal(t, KindBlockMap, doc.Root.Kind)
}

func TestParseMultipleDocuments(t *testing.T) {
	s := Parse("a: 1\n---\nb: 2\n")
	require.Len(t, s.Documents, 2)
	assert.Equal(t, "a", s.Documents[0].Root.Pairs[0].Key.Value)
	assert.Equal(t, "b", s.Documents[1].Root.Pairs[0].Key.Value)
}

func TestParseExplicitKey(t *testing.T) {
	doc := firstDoc(t, "? a\n: 1\n")
	root := doc.Root
	require.Equal(t, KindBlockMap, root.Kind)
	require.Len(t, root.Pairs, 1)
	assert.True(t, root.Pairs[0].Explicit)
	assert.Equal(t, "a", root.Pairs[0].Key.Value)
	assert.Equal(t, "1", root.Pairs[0].Value.Value)
}

func TestParseAliasNode(t *testing.T) {
	doc := firstDoc(t, "*x\n")
	require.Equal(t, KindAlias, doc.Root.Kind)
	assert.Equal(t, "x", doc.Root.AliasName)
}

func TestParseAnchorAndTagOnScalar(t *testing.T) {
	doc := firstDoc(t, "&x !!str hello\n")
	root := doc.Root
	require.Equal(t, KindFlowScalar, root.Kind)
	assert.Equal(t, "x", root.Anchor)
	assert.Equal(t, "!!str", root.Tag)
	assert.Equal(t, "hello", root.Value)
}

func TestParseBlockLiteralScalar(t *testing.T) {
	doc := firstDoc(t, "a: |-\n  line1\n  line2\n")
	root := doc.Root
	require.Equal(t, KindBlockMap, root.Kind)
	val := root.Pairs[0].Value
	require.Equal(t, KindBlockScalar, val.Kind)
	assert.Equal(t, StyleLiteral, val.Style)
	assert.Equal(t, byte('-'), val.Chomp)
	assert.True(t, strings.Contains(val.Value, "line1"))
	assert.True(t, strings.Contains(val.Value, "line2"))
}

func TestParseBlockFoldedScalarStyle(t *testing.T) {
	doc := firstDoc(t, "a: >\n  folded\n")
	val := doc.Root.Pairs[0].Value
	require.Equal(t, KindBlockScalar, val.Kind)
	assert.Equal(t, StyleFolded, val.Style)
}

func TestParseSingleAndDoubleQuotedScalars(t *testing.T) {
	doc := firstDoc(t, "a: 'it''s'\nb: \"x\\ny\"\n")
	root := doc.Root
	assert.Equal(t, StyleSingleQuoted, root.Pairs[0].Value.Style)
	assert.Equal(t, "it's", root.Pairs[0].Value.Value)
	assert.Equal(t, StyleDoubleQuoted, root.Pairs[1].Value.Style)
	assert.Equal(t, "x\ny", root.Pairs[1].Value.Value)
}

// TestParseUnterminatedFlowSequenceRecordsError exercises the lexer/parser
// error-recovery path: reaching EOF inside an open flow sequence records a
// MISSING_CHAR error but still returns the items parsed so far.
func TestParseUnterminatedFlowSequenceRecordsError(t *testing.T) {
	doc := firstDoc(t, "[1, 2")
	require.NotEmpty(t, doc.Errors)
	assert.Equal(t, errcode.MissingChar, doc.Errors[0].Code)
	assert.Len(t, doc.Root.Items, 2)
}

func TestParseEmptySourceYieldsNullRoot(t *testing.T) {
	s := Parse("")
	require.Empty(t, s.Documents)
}

func TestParseNullValueForOmittedMappingValue(t *testing.T) {
	doc := firstDoc(t, "a:\nb: 1\n")
	root := doc.Root
	require.Len(t, root.Pairs, 2)
	assert.Equal(t, KindNull, root.Pairs[0].Value.Kind)
}
