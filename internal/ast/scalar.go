package ast

// Style records the textual style a scalar was (or should be) written
// in, mirroring the teacher's ScalarStyle but named for the source
// rather than the emitter so the stringifier can tell "as composed"
// from "as requested" apart.
type Style int

const (
	StylePlain Style = iota
	StyleSingleQuoted
	StyleDoubleQuoted
	StyleBlockLiteral
	StyleBlockFolded
)

// Format is a formatting hint for numeric scalars: render as hex/octal/
// exponential rather than the schema's default decimal rendering.
type Format int

const (
	FormatNone Format = iota
	FormatHex
	FormatOct
	FormatExp
)

// Scalar is a terminal node: a resolved native Go value (string, int64,
// uint64, float64, bool, nil, or, under the yaml-1.1 schema, time.Time
// and []byte) plus the style/formatting hints the
// stringifier consults when re-emitting it.
type Scalar struct {
	Props Common

	Value any
	Style Style

	Format            Format
	MinFractionDigits int

	// SourceText is the raw plain-scalar text of a null the composer
	// resolved (e.g. "~"), kept so the stringifier can re-emit the same
	// spelling on an unmodified round trip instead of the configured
	// nullStr. The composer does not set it for other values, so bools
	// are re-emitted with trueStr/falseStr. Empty for nodes built via
	// CreateNode or otherwise not sourced from text.
	SourceText string
}

func (s *Scalar) Kind() Kind      { return KindScalar }
func (s *Scalar) Common() *Common { return &s.Props }
