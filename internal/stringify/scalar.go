package stringify

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fearthecowboy/yaml/internal/ast"
	"github.com/fearthecowboy/yaml/internal/schema"
)

// scalarText renders a Scalar's source text under ctx, choosing a style
// per the precedence spec.md section 4.5 lays out: the node's own Style
// if it still fits the context, else the configured default, else plain
// if legal, else quoted, else a block scalar for genuinely multi-line
// content.
func (s *stringifier) scalarText(sc *ast.Scalar, ctx scalarCtx) string {
	raw, ok := s.renderValue(sc)
	if !ok {
		// A custom/unresolvable tag: fall back to fmt's default text so
		// stringify degrades gracefully instead of panicking.
		raw = fmt.Sprint(sc.Value)
	}

	if sc.Value == nil {
		return s.nullText(sc)
	}

	style := sc.Style
	if ctx.flow && (style == ast.StyleBlockLiteral || style == ast.StyleBlockFolded) {
		style = ast.StylePlain // block scalars are illegal inside flow; degrade
	}

	switch style {
	case ast.StyleSingleQuoted:
		return s.singleQuoted(raw)
	case ast.StyleDoubleQuoted:
		return s.doubleQuoted(raw)
	case ast.StyleBlockLiteral:
		if !ctx.flow {
			return s.blockScalar(raw, ctx, false)
		}
	case ast.StyleBlockFolded:
		if !ctx.flow {
			return s.blockScalar(raw, ctx, true)
		}
	}

	return s.plainOrQuoted(raw, ctx)
}

// nullText renders a null Scalar's text: its original plain-scalar
// spelling if the composer recorded one (round-trip fidelity for an
// unmodified node), otherwise the configured NullStr.
func (s *stringifier) nullText(sc *ast.Scalar) string {
	if sc.Style == ast.StylePlain && sc.SourceText != "" {
		return sc.SourceText
	}
	return s.opts.NullStr
}

// renderValue converts a Scalar's resolved Go value back to its plain
// source text via the schema's tag Stringify hook, honoring Format/
// MinFractionDigits overrides. ok is false for values no registered tag
// can render (the caller falls back to fmt.Sprint).
func (s *stringifier) renderValue(sc *ast.Scalar) (string, bool) {
	if sc.Value == nil {
		return s.nullText(sc), true
	}
	if b, ok := sc.Value.(bool); ok {
		if b {
			return s.opts.TrueStr, true
		}
		return s.opts.FalseStr, true
	}

	if sc.Format != ast.FormatNone {
		if text, ok := s.formatOverride(sc); ok {
			return text, true
		}
	}

	tag := sc.Props.Tag
	if tag == "" {
		tag = schema.StrTag
	}
	if text, ok := s.opts.Schema.Stringify(tag, sc.Value); ok {
		if sc.Format == ast.FormatExp {
			if f, isFloat := sc.Value.(float64); isFloat {
				return formatExp(f), true
			}
		}
		return text, true
	}
	if str, ok := sc.Value.(string); ok {
		return str, true
	}
	return "", false
}

// formatOverride applies HEX/OCT/EXP rendering hints. Non-integer values
// under HEX/OCT, and negative integers under HEX in YAML 1.2 (whose core
// schema has no negative-hex syntax), fall back silently to the normal
// decimal rendering by returning ok=false.
func (s *stringifier) formatOverride(sc *ast.Scalar) (string, bool) {
	switch sc.Format {
	case ast.FormatHex:
		n, ok := asInt64(sc.Value)
		if !ok {
			return "", false
		}
		if n < 0 {
			if !s.opts.YAML11 {
				return "", false
			}
			return "-0x" + strconv.FormatUint(uint64(-n), 16), true
		}
		return "0x" + strconv.FormatUint(uint64(n), 16), true
	case ast.FormatOct:
		n, ok := asInt64(sc.Value)
		if !ok {
			return "", false
		}
		neg := n < 0
		u := uint64(n)
		if neg {
			u = uint64(-n)
		}
		var text string
		if s.opts.YAML11 {
			text = "0" + strconv.FormatUint(u, 8)
		} else {
			text = "0o" + strconv.FormatUint(u, 8)
		}
		if neg {
			text = "-" + text
		}
		return text, true
	case ast.FormatExp:
		f, ok := sc.Value.(float64)
		if !ok {
			return "", false
		}
		return formatExp(f), true
	}
	return "", false
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		if n <= 1<<63-1 {
			return int64(n), true
		}
	}
	return 0, false
}

func formatExp(f float64) string {
	return strconv.FormatFloat(f, 'e', -1, 64)
}

// scalarCtx carries the context a scalar is being rendered in: whether
// the enclosing collection is flow or block, whether this scalar is a
// mapping key, and the indent column content should wrap to.
type scalarCtx struct {
	flow     bool
	isKey    bool
	indent   int
	topLevel bool
}

// plainOrQuoted implements style-selection steps 3-4: plain if legal,
// otherwise single- or double-quoted per SingleQuote and escape needs.
func (s *stringifier) plainOrQuoted(raw string, ctx scalarCtx) string {
	if canBePlain(raw, ctx) && s.fitsWidth(raw, ctx) {
		return raw
	}
	if needsDoubleQuote(raw) {
		return s.doubleQuoted(raw)
	}
	if s.opts.SingleQuote {
		return s.singleQuoted(raw)
	}
	return s.doubleQuoted(raw)
}

// canBePlain implements spec.md section 4.5 step 3's plain-style legality
// rules: non-empty, no leading/trailing space, no embedded ": "/" #", no
// leading indicator character, and (in flow context) no unquoted comma/
// bracket/brace/colon.
func canBePlain(s string, ctx scalarCtx) bool {
	if s == "" {
		return false
	}
	if strings.ContainsAny(s, "\x00\x01\x02\x03\x04\x05\x06\x07\x08\x0b\x0c\x0e\x0f") {
		return false
	}
	if s[0] == ' ' || s[len(s)-1] == ' ' {
		return false
	}
	if strings.Contains(s, "\n") && ctx.flow && ctx.isKey {
		return false // multiline implicit flow key
	}
	if strings.Contains(s, ": ") || strings.HasSuffix(s, ":") {
		return false
	}
	if strings.Contains(s, " #") {
		return false
	}
	if s == "---" || s == "..." || strings.HasPrefix(s, "--- ") || strings.HasPrefix(s, "... ") {
		return false
	}
	switch s[0] {
	case '?', '-', ',', '[', ']', '{', '}', '&', '*', '|', '>', '!', '%', '@', '`', '"', '\'', '#':
		return false
	}
	if ctx.flow {
		if strings.ContainsAny(s, ",[]{}") {
			return false
		}
		if strings.Contains(s, ":") && (strings.HasSuffix(s, ":") || strings.Contains(s, ": ")) {
			return false
		}
	}
	return true
}

func needsDoubleQuote(s string) bool {
	if !utf8.ValidString(s) {
		return true // unpaired surrogate / invalid encoding
	}
	for _, r := range s {
		if r == utf8.RuneError {
			return true
		}
		if r < 0x20 && r != '\n' && r != '\t' {
			return true
		}
	}
	return false
}

func (s *stringifier) fitsWidth(text string, ctx scalarCtx) bool {
	if s.opts.LineWidth <= 0 {
		return true
	}
	if strings.Contains(text, "\n") {
		return false
	}
	return len(text)+ctx.indent <= s.opts.LineWidth
}

func (s *stringifier) singleQuoted(raw string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range raw {
		if r == '\'' {
			b.WriteString("''")
		} else {
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

var doubleQuoteEscapes = map[rune]string{
	'\\': `\\`,
	'"':  `\"`,
	'\n': `\n`,
	'\t': `\t`,
	'\r': `\r`,
	0:    `\0`,
	7:    `\a`,
	8:    `\b`,
	11:   `\v`,
	12:   `\f`,
	27:   `\e`,
	0x85: `\N`,
	0xA0: `\_`,
}

func (s *stringifier) doubleQuoted(raw string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range raw {
		if esc, ok := doubleQuoteEscapes[r]; ok {
			b.WriteString(esc)
			continue
		}
		if r == utf8.RuneError || (r < 0x20) {
			fmt.Fprintf(&b, `\x%02X`, r)
			continue
		}
		if r > 0xFFFF {
			fmt.Fprintf(&b, `\U%08X`, r)
			continue
		}
		if r > 0x7E && r < 0xA0 {
			fmt.Fprintf(&b, `\u%04X`, r)
			continue
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}
