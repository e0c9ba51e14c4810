package yaml

import (
	"log"

	"github.com/fearthecowboy/yaml/internal/ast"
	"github.com/fearthecowboy/yaml/internal/compose"
	"github.com/fearthecowboy/yaml/internal/schema"
	"github.com/fearthecowboy/yaml/internal/stringify"
)

// LogLevel gates which recorded Document.Warnings are also written to
// the configured logger, mirroring spec.md section 6's logLevel option.
type LogLevel int

const (
	LogSilent LogLevel = iota
	LogWarn
	LogError
)

// config is the resolved, private counterpart of the public Option
// functions below — grounded on the teacher's option/option.go Config
// pattern, generalized from two fields to the full parse/stringify
// surface spec.md section 6 enumerates.
type config struct {
	// Parse options.
	schemaName    string
	versionMajor  int
	versionMinor  int
	maxAliasCount int
	strict        bool
	logLevel      LogLevel
	logger        *log.Logger

	// Stringify options.
	indent                         int
	indentSeq                      bool
	lineWidth                      int
	minContentWidth                int
	doubleQuotedAsJSON             bool
	doubleQuotedMinMultiLineLength int
	singleQuote                    bool
	simpleKeys                     bool
	sortMapEntries                 bool
	sortComparator                 stringify.Comparator
	anchorPrefix                   string
	directivesEndMarker            bool
	verifyAliasOrder               bool
	nullStr, trueStr, falseStr     string
	keepUndefined                  bool
}

func newConfig() *config {
	return &config{
		schemaName:       "core",
		versionMajor:     1,
		versionMinor:     2,
		maxAliasCount:    100,
		logLevel:         LogWarn,
		logger:           log.Default(),
		indent:           2,
		lineWidth:        80,
		minContentWidth:  20,
		anchorPrefix:     "a",
		verifyAliasOrder: true,
	}
}

func (c *config) resolveSchema() *schema.Schema {
	switch c.schemaName {
	case "failsafe":
		return schema.Failsafe()
	case "json":
		return schema.JSON()
	case "yaml-1.1":
		return schema.YAML11()
	default:
		return schema.Core()
	}
}

func (c *config) composeOptions() compose.Options {
	return compose.Options{Schema: c.resolveSchema(), MaxAliasCount: c.maxAliasCount}
}

func (c *config) stringifyOptions() stringify.Options {
	return stringify.Options{
		Schema:                         c.resolveSchema(),
		Indent:                         c.indent,
		IndentSeq:                      c.indentSeq,
		LineWidth:                      c.lineWidth,
		MinContentWidth:                c.minContentWidth,
		DoubleQuotedAsJSON:             c.doubleQuotedAsJSON,
		DoubleQuotedMinMultiLineLength: c.doubleQuotedMinMultiLineLength,
		NullStr:                        c.nullStr,
		TrueStr:                        c.trueStr,
		FalseStr:                       c.falseStr,
		DefaultStringType:              ast.StylePlain,
		SingleQuote:                    c.singleQuote,
		SimpleKeys:                     c.simpleKeys,
		SortMapEntries:                 c.sortMapEntries,
		Sort:                           c.sortComparator,
		AnchorPrefix:                   c.anchorPrefix,
		DirectivesEndMarker:            c.directivesEndMarker,
		VerifyAliasOrder:               c.verifyAliasOrder,
		YAML11:                         c.schemaName == "yaml-1.1",
	}.WithDefaults()
}

// Option is a functional option configuring Parse/Stringify/Document,
// grounded on the teacher's option/option.go Option func(*Config) shape.
type Option func(*config)

// Options combines multiple Options into one, letting callers build
// presets the way the teacher's options.go Options() combinator does.
func Options(opts ...Option) Option {
	return func(c *config) {
		for _, o := range opts {
			o(c)
		}
	}
}

func apply(opts []Option) *config {
	c := newConfig()
	for _, o := range opts {
		o(c)
	}
	return c
}

// WithSchema selects the resolution schema: "failsafe", "json", "core",
// or "yaml-1.1".
func WithSchema(name string) Option { return func(c *config) { c.schemaName = name } }

// WithVersion sets the active YAML version for directive defaulting.
func WithVersion(major, minor int) Option {
	return func(c *config) { c.versionMajor, c.versionMinor = major, minor }
}

// WithMaxAliasCount bounds alias-expansion cost (default 100; 0 still
// permits straightforward aliases; negative disables the guard).
func WithMaxAliasCount(n int) Option { return func(c *config) { c.maxAliasCount = n } }

// WithStrict stores the strict flag. The parser does not read it and
// never reports COMMENT_SPACE, so parse results are the same either way.
func WithStrict(strict bool) Option { return func(c *config) { c.strict = strict } }

// WithLogLevel gates whether Document.Warnings are also written to the
// configured logger.
func WithLogLevel(level LogLevel) Option { return func(c *config) { c.logLevel = level } }

// WithLogger overrides the *log.Logger warnings are written to.
func WithLogger(l *log.Logger) Option { return func(c *config) { c.logger = l } }

// WithIndent sets the stringifier's spaces-per-level (default 2).
func WithIndent(n int) Option { return func(c *config) { c.indent = n } }

// WithIndentSeq controls whether block sequence items under a mapping
// key add their own indentation step.
func WithIndentSeq(b bool) Option { return func(c *config) { c.indentSeq = b } }

// WithLineWidth sets the column folding limit (0 disables folding).
func WithLineWidth(n int) Option { return func(c *config) { c.lineWidth = n } }

// WithMinContentWidth sets the minimum characters per folded line.
func WithMinContentWidth(n int) Option { return func(c *config) { c.minContentWidth = n } }

// WithSingleQuote prefers single- over double-quoted style when both
// are legal.
func WithSingleQuote(b bool) Option { return func(c *config) { c.singleQuote = b } }

// WithSimpleKeys forbids any mapping key that cannot render as a short
// implicit line.
func WithSimpleKeys(b bool) Option { return func(c *config) { c.simpleKeys = b } }

// WithSortMapEntries emits mapping pairs in lexicographic key order, or
// per cmp if supplied.
func WithSortMapEntries(cmp stringify.Comparator) Option {
	return func(c *config) {
		c.sortMapEntries = true
		c.sortComparator = cmp
	}
}

// WithAnchorPrefix overrides the "a" prefix used for freshly minted
// anchor labels.
func WithAnchorPrefix(prefix string) Option { return func(c *config) { c.anchorPrefix = prefix } }

// WithDirectivesEndMarker forces a leading "---" marker on stringify.
func WithDirectivesEndMarker(b bool) Option { return func(c *config) { c.directivesEndMarker = b } }

// WithVerifyAliasOrder toggles the default-on alias-order check (Open
// Question (a) in spec.md section 9; DESIGN.md records the decision).
func WithVerifyAliasOrder(b bool) Option { return func(c *config) { c.verifyAliasOrder = b } }

// WithNullStr / WithTrueStr / WithFalseStr override the literal text
// used for null/true/false scalars.
func WithNullStr(s string) Option  { return func(c *config) { c.nullStr = s } }
func WithTrueStr(s string) Option  { return func(c *config) { c.trueStr = s } }
func WithFalseStr(s string) Option { return func(c *config) { c.falseStr = s } }

// WithKeepUndefined stores the keepUndefined flag. CreateNode does not
// read it and never skips nil map/slice entries.
func WithKeepUndefined(b bool) Option { return func(c *config) { c.keepUndefined = b } }
