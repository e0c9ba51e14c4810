package parse

import "github.com/fearthecowboy/yaml/internal/errcode"

// Kind identifies the shape of a CST node.
type Kind int

const (
	KindStream Kind = iota
	KindDocument
	KindBlockMap
	KindBlockSeq
	KindFlowMap
	KindFlowSeq
	KindBlockScalar
	KindFlowScalar
	KindAlias
	KindNull // an omitted value, e.g. "key:" with nothing after it
)

// ScalarStyle mirrors the style a flow or block scalar was written in, so
// the composer/stringifier can round-trip it by default.
type ScalarStyle int

const (
	StylePlain ScalarStyle = iota
	StyleSingleQuoted
	StyleDoubleQuoted
	StyleLiteral
	StyleFolded
)

// Pair is a single key/value entry of a BlockMap or FlowMap CST node.
// Key and/or Value may be nil (explicit key with no value, or a bare "?"
// with neither).
type Pair struct {
	Explicit bool // introduced with '?'
	Key      *CST
	Value    *CST
}

// CST is one node of the parser's token tree: the nested structure of
// documents, block/flow collections, and scalars that the composer walks
// to build the typed ast.Document.
type CST struct {
	Kind Kind

	// Collections.
	Items []*CST // BlockSeq / FlowSeq items
	Pairs []*Pair // BlockMap / FlowMap entries

	// Scalars.
	Style ScalarStyle
	Value string // decoded-later raw source text (without quotes/header)
	Chomp byte   // '+', '-', or 0 for clip (block scalars only)
	ExplicitIndent int // 0 if not given in the header
	BlockIndent    int // block scalar only: the indentation column of its parent context

	// Alias.
	AliasName string

	// Node properties, shared across kinds.
	Anchor         string
	Tag            string
	HeadComment    string
	LineComment    string
	SpaceBefore    bool

	Mark errcode.Mark
	End  int
}

// Directives holds the active %YAML / %TAG state for a document.
type Directives struct {
	VersionMajor, VersionMinor int
	HasVersion                 bool
	Tags                       map[string]string // handle -> prefix
}

// NewDirectives returns Directives defaulted to YAML 1.2 with the core
// "!" and "!!" handles.
func NewDirectives() *Directives {
	return &Directives{
		VersionMajor: 1,
		VersionMinor: 2,
		Tags: map[string]string{
			"!":  "!",
			"!!": "tag:yaml.org,2002:",
		},
	}
}

func (d *Directives) clone() *Directives {
	c := &Directives{VersionMajor: d.VersionMajor, VersionMinor: d.VersionMinor, HasVersion: d.HasVersion}
	c.Tags = make(map[string]string, len(d.Tags))
	for k, v := range d.Tags {
		c.Tags[k] = v
	}
	return c
}

// Document is one parsed document's CST plus its directive state and any
// syntactic errors/warnings recorded during best-effort parsing.
type Document struct {
	Root                *CST
	Directives          *Directives
	DirectivesEndMarker bool
	Errors              []*errcode.Error
	Warnings            []*errcode.Error
}

// Stream is the result of parsing a complete source: zero or more
// Documents.
type Stream struct {
	Documents []*Document
}
