package stringify

import "strings"

// blockScalar renders raw as a "|" (literal) or ">" (folded) block
// scalar at ctx.indent, choosing a chomping indicator from raw's
// trailing newlines and an explicit indentation digit whenever the
// first content line begins with whitespace (otherwise a reader could
// not tell how much of that leading space is indentation).
func (s *stringifier) blockScalar(raw string, ctx scalarCtx, folded bool) string {
	indicator := byte('|')
	if folded {
		indicator = '>'
	}

	chomp := byte(0) // clip
	switch {
	case strings.HasSuffix(raw, "\n\n") || raw == "":
		chomp = '+'
	case !strings.HasSuffix(raw, "\n"):
		chomp = '-'
	}

	body := raw
	trailingNL := strings.HasSuffix(body, "\n")
	body = strings.TrimRight(body, "\n")
	lines := strings.Split(body, "\n")

	needsIndentDigit := len(lines) > 0 && len(lines[0]) > 0 && (lines[0][0] == ' ' || lines[0][0] == '\t')

	indent := ctx.indent + s.opts.Indent
	var header strings.Builder
	header.WriteByte(indicator)
	if needsIndentDigit {
		header.WriteString(itoaDigit(s.opts.Indent))
	}
	if chomp != 0 {
		header.WriteByte(chomp)
	}

	var b strings.Builder
	b.WriteString(header.String())
	for _, line := range lines {
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(" ", indent))
		b.WriteString(line)
	}
	if chomp == '+' && trailingNL {
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(" ", indent))
	}
	return b.String()
}

func itoaDigit(n int) string {
	if n <= 0 || n > 9 {
		return "2"
	}
	return string(byte('0' + n))
}

// foldPlain folds a single plain/quoted scalar's source text at word
// boundaries so no line exceeds LineWidth, re-indenting continuations to
// indent spaces. Used for double-quoted and plain scalars that would
// otherwise overflow; block scalars fold independently in blockScalar's
// caller via the schema-level folded-style decision made in composing.
func (s *stringifier) foldPlain(text string, indent int) string {
	if s.opts.LineWidth <= 0 || len(text) <= s.opts.LineWidth {
		return text
	}
	words := strings.Split(text, " ")
	var b strings.Builder
	lineLen := indent
	pad := strings.Repeat(" ", indent)
	for i, w := range words {
		if i > 0 {
			if lineLen+1+len(w) > s.opts.LineWidth && lineLen > indent+s.opts.MinContentWidth {
				b.WriteString("\n")
				b.WriteString(pad)
				lineLen = indent
			} else {
				b.WriteString(" ")
				lineLen++
			}
		}
		b.WriteString(w)
		lineLen += len(w)
	}
	return b.String()
}
