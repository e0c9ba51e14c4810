package yaml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fearthecowboy/yaml/internal/ast"
)

// TestParseSimpleMapping exercises the basic Parse convenience entry
// point against a small block mapping.
func TestParseSimpleMapping(t *testing.T) {
	v, err := Parse("a: 1\nb: two\n")
	require.NoError(t, err)
	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, int64(1), m["a"])
	assert.Equal(t, "two", m["b"])
}

// TestStringifyColonValueNeedsQuoting is scenario 1 from spec.md
// section 8: a value consisting solely of ":" cannot render plain
// (it would be read back as a mapping separator).
func TestStringifyColonValueNeedsQuoting(t *testing.T) {
	out, err := Stringify(map[string]string{"key": ":"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "key: \":\"\n", out)
}

// TestStringifyHexFormat is scenario 3: a Scalar node with Format: HEX
// renders as "0x..".
func TestStringifyHexFormat(t *testing.T) {
	out, err := Stringify(&ast.Scalar{Value: int64(42), Format: ast.FormatHex}, nil)
	require.NoError(t, err)
	assert.Equal(t, "0x2a\n", out)
}

// TestStringifyOctalYAML11 is scenario 4: OCT format under the yaml-1.1
// schema uses a bare leading zero rather than "0o".
func TestStringifyOctalYAML11(t *testing.T) {
	out, err := Stringify(&ast.Scalar{Value: int64(42), Format: ast.FormatOct}, nil, WithSchema("yaml-1.1"))
	require.NoError(t, err)
	assert.Equal(t, "052\n", out)
}

// TestParseYAML11BooleanVocabulary is scenario 5: the yaml-1.1 schema
// resolves the legacy single-letter and on/off boolean spellings.
func TestParseYAML11BooleanVocabulary(t *testing.T) {
	v, err := Parse("[ n, Y, on, off ]", WithSchema("yaml-1.1"))
	require.NoError(t, err)
	assert.Equal(t, []any{false, true, true, false}, v)
}

// TestStringifyTopLevelDocMarker is scenario 6: a top-level plain
// scalar equal to a document marker is promoted to a block literal so
// re-parsing doesn't mistake it for "---".
func TestStringifyTopLevelDocMarker(t *testing.T) {
	out, err := Stringify("---", nil)
	require.NoError(t, err)
	assert.Equal(t, "|-\n  ---\n", out)
}

// TestStringifyUndefinedSentinel covers section 6: stringifying the
// Undefined sentinel returns the documented "no output" empty string.
func TestStringifyUndefinedSentinel(t *testing.T) {
	out, err := Stringify(Undefined, nil)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

// TestCyclicMappingAnchorsItself is scenario 8: a Go map containing
// itself must anchor on first occurrence and alias on the second.
func TestCyclicMappingAnchorsItself(t *testing.T) {
	m := map[string]any{"foo": "bar"}
	m["m"] = m

	doc := NewDocument(m, nil)
	out, err := doc.Stringify()
	require.NoError(t, err)
	assert.Equal(t, "&a1\nfoo: bar\nm: *a1\n", out)
}

// TestSharedSequenceAliasesSecondOccurrence is scenario 2: the same
// sequence object appearing twice by identity anchors the first
// occurrence and aliases the second ("yields &a1 on the first, *a1 on
// the third" per spec.md section 8's table), while a third plain
// string duplicate isn't affected since primitive scalars re-emit as
// independent literals rather than being aliased.
func TestSharedSequenceAliasesSecondOccurrence(t *testing.T) {
	shared := []any{"one"}
	outer := []any{shared, "two", shared}

	doc := NewDocument(outer, nil)
	out, err := doc.Stringify()
	require.NoError(t, err)

	anchorIdx := strings.Index(out, "&a1")
	aliasIdx := strings.Index(out, "*a1")
	require.NotEqual(t, -1, anchorIdx, "expected an &a1 anchor in %q", out)
	require.NotEqual(t, -1, aliasIdx, "expected a *a1 alias in %q", out)
	assert.Less(t, anchorIdx, aliasIdx, "the anchor must be introduced before its alias")
	assert.Equal(t, 1, strings.Count(out, "&a1"), "exactly one occurrence carries the anchor")

	doc2 := ParseDocument(out)
	require.Empty(t, doc2.Errors())
	assert.Equal(t, []any{[]any{"one"}, "two", []any{"one"}}, doc2.ToNative())
}

// TestParseMultipleDocumentsRecordsError covers section 6: a second
// "---" document appends a MULTIPLE_DOCS error rather than failing
// outright.
func TestParseMultipleDocumentsRecordsError(t *testing.T) {
	doc := ParseDocument("a: 1\n---\nb: 2\n")
	require.NotEmpty(t, doc.Errors())
	assert.Equal(t, "MULTIPLE_DOCS", string(doc.Errors()[0].Code))
}

// TestParseEmptyInputYieldsEmptyDocument covers section 6's "empty:
// true marker" behavior for an empty source.
func TestParseEmptyInputYieldsEmptyDocument(t *testing.T) {
	docs := ParseAllDocuments("")
	require.Len(t, docs, 1)
	assert.True(t, docs[0].Empty())
}

// TestRoundTripBlockMappingWithComments exercises a parse -> stringify
// -> parse round trip through the public facade.
func TestRoundTripBlockMappingWithComments(t *testing.T) {
	src := "# leading\nname: widget\ncount: 3\ntags:\n  - a\n  - b\n"
	doc := ParseDocument(src)
	require.Empty(t, doc.Errors())

	out, err := doc.Stringify()
	require.NoError(t, err)

	doc2 := ParseDocument(out)
	require.Empty(t, doc2.Errors())
	assert.Equal(t, doc.ToNative(), doc2.ToNative())
}

// TestStringifySimpleKeysCollapsesExplicitKey is scenario 7: a key that
// was parsed with the explicit "?" indicator but is itself a short
// plain scalar must still collapse to its implicit form under
// SimpleKeys, rather than keeping the source's "? key" rendering.
func TestStringifySimpleKeysCollapsesExplicitKey(t *testing.T) {
	doc := ParseDocument("? ~\n")
	require.Empty(t, doc.Errors())
	doc.cfg = apply([]Option{WithSimpleKeys(true)})

	out, err := doc.Stringify()
	require.NoError(t, err)
	assert.Equal(t, "~: null\n", out)
}

// TestSimpleKeysRejectsComplexKey covers the simpleKeys boundary from
// section 8: a block-collection key cannot render as a simple implicit
// key, so SimpleKeys must reject it.
func TestSimpleKeysRejectsComplexKey(t *testing.T) {
	seqKey := &ast.Sequence{Items: []ast.Node{&ast.Scalar{Value: "x"}}}
	m := &ast.Mapping{Items: []*ast.Pair{{Key: seqKey, Value: &ast.Scalar{Value: int64(1)}}}}
	doc := &Document{inner: &ast.Document{Contents: m}, cfg: apply([]Option{WithSimpleKeys(true)})}
	_, err := doc.Stringify()
	assert.Error(t, err)
}
