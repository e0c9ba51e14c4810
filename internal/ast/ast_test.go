package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMappingAddGetSetDelete(t *testing.T) {
	m := &Mapping{}
	m.Add("name", "gopher")
	m.Add("age", 10)

	v, ok := m.Get("name", false)
	assert.True(t, ok)
	assert.Equal(t, "gopher", v)

	m.Set("age", 11)
	v, ok = m.Get("age", false)
	assert.True(t, ok)
	assert.Equal(t, 11, v)

	assert.True(t, m.Has("age"))
	assert.True(t, m.Delete("age"))
	assert.False(t, m.Has("age"))
}

func TestSequenceAddGetSet(t *testing.T) {
	s := &Sequence{}
	s.Add("one")
	s.Add("two")

	v, ok := s.Get(0, false)
	assert.True(t, ok)
	assert.Equal(t, "one", v)

	assert.True(t, s.Set(5, "six"))
	assert.Equal(t, 6, len(s.Items))

	assert.True(t, s.Delete(0))
	assert.Equal(t, 5, len(s.Items))
}

func TestCreateNodeFromNativeValues(t *testing.T) {
	n := CreateNode(map[string]any{"a": 1, "b": []any{1, 2, 3}})
	m, ok := n.(*Mapping)
	assert.True(t, ok)
	assert.Equal(t, 2, len(m.Items))

	v, ok := m.Get("b", false)
	assert.True(t, ok)
	seq, ok := v.(*Sequence)
	assert.True(t, ok)
	assert.Equal(t, 3, len(seq.Items))
}

func TestCreateNodeInDocumentSharesAnchors(t *testing.T) {
	doc := NewDocument()
	shared := map[string]any{"x": 1}
	root := map[string]any{"first": shared, "second": shared}

	n := CreateNodeInDocument(doc, root)
	m := n.(*Mapping)

	firstVal, _ := m.Get("first", true)
	secondVal, _ := m.Get("second", true)

	_, firstIsMapping := firstVal.(*Mapping)
	assert.True(t, firstIsMapping)

	alias, secondIsAlias := secondVal.(*Alias)
	assert.True(t, secondIsAlias)
	assert.Equal(t, firstVal, alias.Target)
}

func TestDiscriminatorPredicates(t *testing.T) {
	var scalar Node = &Scalar{Value: "x"}
	var mapping Node = &Mapping{}
	var seq Node = &Sequence{}
	var alias Node = &Alias{Source: "a1"}
	var pair Node = &Pair{}

	assert.True(t, IsScalar(scalar))
	assert.True(t, IsMap(mapping))
	assert.True(t, IsSeq(seq))
	assert.True(t, IsAlias(alias))
	assert.True(t, IsPair(pair))
	assert.False(t, IsScalar(mapping))
}
