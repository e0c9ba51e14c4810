package stringify

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fearthecowboy/yaml/internal/ast"
	"github.com/fearthecowboy/yaml/internal/schema"
)

func TestDesolveScalarTagOmitsWhenImplicitlyResolvable(t *testing.T) {
	doc := ast.NewDocument()
	doc.Contents = &ast.Scalar{
		Props: ast.Common{Tag: schema.IntTag},
		Value: int64(42),
		Style: ast.StylePlain,
	}
	out, err := Stringify(doc, Options{Schema: schema.Core()})
	assert.NoError(t, err)
	assert.Equal(t, "42\n", out)
}

func TestDesolveScalarTagKeptWhenStyleHidesIt(t *testing.T) {
	doc := ast.NewDocument()
	doc.Contents = &ast.Scalar{
		Props: ast.Common{Tag: schema.IntTag},
		Value: int64(42),
		Style: ast.StyleDoubleQuoted,
	}
	out, err := Stringify(doc, Options{Schema: schema.Core()})
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "!!int"), "expected explicit tag, got %q", out)
}

func TestDesolveScalarTagOmittedForPlainString(t *testing.T) {
	doc := ast.NewDocument()
	doc.Contents = &ast.Scalar{
		Props: ast.Common{Tag: schema.StrTag},
		Value: "hello",
		Style: ast.StyleDoubleQuoted,
	}
	out, err := Stringify(doc, Options{Schema: schema.Core()})
	assert.NoError(t, err)
	assert.False(t, strings.Contains(out, "!!str"), "quoted string should not need an explicit !!str tag, got %q", out)
}

func TestDesolveCollectionTagKeptForSet(t *testing.T) {
	doc := ast.NewDocument()
	m := &ast.Mapping{Props: ast.Common{Tag: schema.SetTag}}
	m.Items = append(m.Items, &ast.Pair{
		Key:   &ast.Scalar{Props: ast.Common{Tag: schema.StrTag}, Value: "a", Style: ast.StylePlain},
		Value: &ast.Scalar{Props: ast.Common{Tag: schema.NullTag}, Value: nil, Style: ast.StylePlain},
	})
	doc.Contents = m
	out, err := Stringify(doc, Options{Schema: schema.YAML11()})
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "!!set"), "expected a leading !!set tag, got %q", out)
}

func TestDesolveCollectionTagOmittedForPlainMap(t *testing.T) {
	doc := ast.NewDocument()
	m := &ast.Mapping{Props: ast.Common{Tag: schema.MapTag}}
	m.Items = append(m.Items, &ast.Pair{
		Key:   &ast.Scalar{Props: ast.Common{Tag: schema.StrTag}, Value: "a", Style: ast.StylePlain},
		Value: &ast.Scalar{Props: ast.Common{Tag: schema.IntTag}, Value: int64(1), Style: ast.StylePlain},
	})
	doc.Contents = m
	out, err := Stringify(doc, Options{Schema: schema.Core()})
	assert.NoError(t, err)
	assert.False(t, strings.Contains(out, "!!map"), "plain map should not need an explicit tag, got %q", out)
}

func TestTagHandleShortAndLongForms(t *testing.T) {
	assert.Equal(t, "!!timestamp", tagHandle(schema.TimestampTag))
	assert.Equal(t, "!<tag:example.com,2024:custom>", tagHandle("tag:example.com,2024:custom"))
	assert.Equal(t, "!local", tagHandle("!local"))
}

func TestStringifyExplicitTimestampTag(t *testing.T) {
	doc := ast.NewDocument()
	doc.Contents = &ast.Scalar{
		Props: ast.Common{Tag: schema.TimestampTag},
		Value: time.Date(2002, 12, 14, 0, 0, 0, 0, time.UTC),
		Style: ast.StylePlain,
	}
	out, err := Stringify(doc, Options{Schema: schema.YAML11()})
	assert.NoError(t, err)
	assert.Equal(t, "2002-12-14\n", out)
}
