// Package yaml implements a YAML 1.1/1.2 processor: parsing YAML source
// into a typed, round-trippable document tree and serializing that tree
// back to YAML text.
//
// The heavy lifting lives in internal/lex (tokenizing), internal/parse
// (block/flow structure), internal/schema (tag resolution), internal/
// compose (token tree -> node tree), internal/ast (the node tree
// itself), and internal/stringify (node tree -> text). This package is
// the thin public facade over all of them, the "trivial glue" spec.md
// section 1 calls out as out of scope for the core.
package yaml

import (
	"github.com/fearthecowboy/yaml/internal/ast"
	"github.com/fearthecowboy/yaml/internal/compose"
	"github.com/fearthecowboy/yaml/internal/errcode"
	"github.com/fearthecowboy/yaml/internal/native"
	"github.com/fearthecowboy/yaml/internal/parse"
	"github.com/fearthecowboy/yaml/internal/stringify"
)

// Document wraps an internal ast.Document with the configuration it was
// built (or will be stringified) with, giving callers a single value to
// hold for both directions of the pipeline.
type Document struct {
	inner *ast.Document
	cfg   *config
}

// Errors reports the document's recorded syntactic/resolution errors.
func (d *Document) Errors() []*errcode.Error { return d.inner.Errors }

// Warnings reports the document's recorded non-fatal warnings.
func (d *Document) Warnings() []*errcode.Error { return d.inner.Warnings }

// Empty reports whether the document came from empty input (parseAll on
// "" yields a single empty-marked document per spec.md section 6).
func (d *Document) Empty() bool { return d.inner.Contents == nil }

// Contents exposes the document's root node for callers that want to
// walk or mutate the tree directly rather than go through ToNative/
// CreateNode.
func (d *Document) Contents() ast.Node { return d.inner.Contents }

// SetContents replaces the document's root node.
func (d *Document) SetContents(n ast.Node) { d.inner.Contents = n }

// ToNative converts the document's contents to a plain Go value
// (map[string]any, []any, or a resolved scalar).
func (d *Document) ToNative() any { return native.ToNative(d.inner.Contents) }

// Stringify serializes this document back to YAML text using the
// options it was constructed or parsed with.
func (d *Document) Stringify() (string, error) {
	return stringify.Stringify(d.inner, d.cfg.stringifyOptions())
}

// logWarnings writes d's warnings to cfg's logger, if logLevel permits.
func logWarnings(cfg *config, d *ast.Document) {
	if cfg.logLevel == LogSilent || cfg.logger == nil {
		return
	}
	for _, w := range d.Warnings {
		cfg.logger.Printf("yaml: warning: %s", w.Error())
	}
}

func parseToDocument(source string, cfg *config) *Document {
	stream := parse.Parse(source)
	var pd *parse.Document
	switch len(stream.Documents) {
	case 0:
		empty := ast.NewDocument()
		empty.Contents = nil
		logWarnings(cfg, empty)
		return &Document{inner: empty, cfg: cfg}
	default:
		pd = stream.Documents[0]
	}

	c := compose.New(cfg.composeOptions())
	doc := c.Compose(pd)

	if len(stream.Documents) > 1 {
		doc.Errors = append(doc.Errors, errcode.New(errcode.MultipleDocs, pd.Root.Mark,
			"source contains more than one document"))
	}
	logWarnings(cfg, doc)
	return &Document{inner: doc, cfg: cfg}
}

// Parse is the convenience entry point: it returns the single document's
// native Go value. The first recorded error is escalated to a returned
// error unless WithLogLevel(LogSilent) was given.
func Parse(source string, opts ...Option) (any, error) {
	cfg := apply(opts)
	doc := parseToDocument(source, cfg)
	if len(doc.inner.Errors) > 0 && cfg.logLevel != LogSilent {
		return nil, doc.inner.Errors[0]
	}
	return doc.ToNative(), nil
}

// ParseDocument parses exactly one document. Multiple documents in
// source append a MULTIPLE_DOCS error to the returned Document rather
// than failing outright, matching spec.md section 6.
func ParseDocument(source string, opts ...Option) *Document {
	return parseToDocument(source, apply(opts))
}

// ParseAllDocuments streams every document in source. Empty input
// returns a single-element slice holding an Empty() document, per
// spec.md section 6's "empty: true marker" behavior.
func ParseAllDocuments(source string, opts ...Option) []*Document {
	cfg := apply(opts)
	stream := parse.Parse(source)
	if len(stream.Documents) == 0 {
		empty := ast.NewDocument()
		logWarnings(cfg, empty)
		return []*Document{{inner: empty, cfg: cfg}}
	}

	docs := make([]*Document, len(stream.Documents))
	for i, pd := range stream.Documents {
		c := compose.New(cfg.composeOptions())
		doc := c.Compose(pd)
		logWarnings(cfg, doc)
		docs[i] = &Document{inner: doc, cfg: cfg}
	}
	return docs
}

// undefined is the sentinel root value used to detect Go's untyped nil
// passed to Stringify, which must produce the documented "no output"
// result rather than emitting an explicit YAML null.
type undefinedType struct{}

// Undefined is the value Stringify treats as "no output", distinguishing
// an absent root from an explicit YAML null (ast.Scalar{Value: nil}).
var Undefined = undefinedType{}

// NewDocument constructs an explicit Document from a host value, via
// ast.CreateNodeInDocument so that repeated pointer identity in value
// becomes an anchor/alias pair instead of an error.
func NewDocument(value any, replacer ast.Replacer, opts ...Option) *Document {
	cfg := apply(opts)
	doc := ast.NewDocument()
	doc.SchemaName = cfg.resolveSchema().Name
	doc.VersionMajor, doc.VersionMinor = cfg.versionMajor, cfg.versionMinor
	if value != Undefined {
		if replacer != nil {
			doc.Contents = ast.CreateNodeWithReplacer(value, replacer)
		} else {
			doc.Contents = ast.CreateNodeInDocument(doc, value)
		}
	}
	return &Document{inner: doc, cfg: cfg}
}

// Stringify is the convenience entry point: it constructs a Document
// from value and serializes it. Stringify(Undefined) returns "" with a
// nil error, the sentinel "no output" spec.md section 6 documents for
// an undefined root.
func Stringify(value any, replacer ast.Replacer, opts ...Option) (string, error) {
	if value == Undefined {
		return "", nil
	}
	doc := NewDocument(value, replacer, opts...)
	return doc.Stringify()
}
