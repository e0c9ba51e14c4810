// Package stringify serializes an ast.Document back to YAML source text:
// choosing scalar style under line-width and context constraints,
// tracking anchor introduction for shared/cyclic structures, folding
// long lines, and nesting block/flow collections.
package stringify

import (
	"github.com/fearthecowboy/yaml/internal/ast"
	"github.com/fearthecowboy/yaml/internal/schema"
)

// Comparator orders two pairs for SortMapEntries; nil falls back to
// lexicographic order on the pair's rendered key text.
type Comparator func(a, b *ast.Pair) bool

// Options configures a single Stringify call, mirroring the teacher's
// EmitterOptions / representer option struct field-for-field against
// spec.md section 4.5. LineWidth's zero value is meaningful ("disable
// folding"), so callers that want the spec's documented default of 80
// must set it explicitly; the root facade does this. Every other field
// here is defaulted by WithDefaults.
type Options struct {
	Schema *schema.Schema

	Indent    int  // spaces per nesting level; default 2, must be > 0
	IndentSeq bool // sequence items add their own indentation step under a mapping key

	LineWidth       int // 0 disables folding entirely
	MinContentWidth int // minimum chars per line inside folded scalars

	DoubleQuotedAsJSON             bool
	DoubleQuotedMinMultiLineLength int

	NullStr  string
	TrueStr  string
	FalseStr string

	DefaultStringType ast.Style
	DefaultKeyType    ast.Style
	HasDefaultKeyType bool // distinguishes "unset" from StylePlain

	SingleQuote bool // prefer single- over double-quoted when both are legal
	SimpleKeys  bool // forbid complex keys entirely

	SortMapEntries bool
	Sort           Comparator

	AnchorPrefix        string
	DirectivesEndMarker bool

	// VerifyAliasOrder checks, before emission, that every Alias in the
	// tree resolves to a node that will actually have been emitted
	// earlier in document order. Open Question (a) in spec.md section 9
	// flags this as optional and off by default upstream; DESIGN.md
	// records the decision to default it on here.
	VerifyAliasOrder bool

	// YAML11 selects 1.1-only rendering rules: OCT format emits a bare
	// leading zero instead of "0o", and HEX on a negative integer emits
	// "-0x.." instead of degrading to decimal.
	YAML11 bool
}

// WithDefaults returns a copy of o with every field whose zero value is
// NOT independently meaningful replaced by its spec-mandated default.
// LineWidth and MinContentWidth are left untouched: 0 is a legitimate,
// meaningful setting for both.
func (o Options) WithDefaults() Options {
	if o.Schema == nil {
		o.Schema = schema.Core()
	}
	if o.Indent <= 0 {
		o.Indent = 2
	}
	if o.NullStr == "" {
		o.NullStr = "null"
	}
	if o.TrueStr == "" {
		o.TrueStr = "true"
	}
	if o.FalseStr == "" {
		o.FalseStr = "false"
	}
	if o.AnchorPrefix == "" {
		o.AnchorPrefix = "a"
	}
	return o
}
