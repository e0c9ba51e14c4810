package compose

import (
	"strings"

	"github.com/fearthecowboy/yaml/internal/parse"
)

// decodeBlockScalar turns a block scalar CST's raw body text (still
// carrying its full per-line indentation) into the scalar's final
// string value, applying the indentation-stripping, chomping, and (for
// folded style) line-folding rules.
func decodeBlockScalar(n *parse.CST) string {
	lines := splitLines(n.Value)

	indent := n.ExplicitIndent
	if indent > 0 {
		indent += n.BlockIndent
	} else {
		indent = inferContentIndent(lines, n.BlockIndent)
	}

	stripped := make([]string, len(lines))
	for i, line := range lines {
		stripped[i] = stripIndent(line, indent)
	}

	var body string
	if n.Style == parse.StyleFolded {
		body = foldLines(stripped)
	} else {
		body = strings.Join(stripped, "\n")
	}

	return chomp(body, n.Chomp, len(lines) > 0)
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	trailingNewline := strings.HasSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	if trailingNewline {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// inferContentIndent returns the indentation of the first non-empty
// line, which becomes the strip amount when no explicit indentation
// indicator was given in the block scalar header.
func inferContentIndent(lines []string, parentIndent int) int {
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := 0
		for n < len(line) && line[n] == ' ' {
			n++
		}
		return n
	}
	return parentIndent + 1
}

func stripIndent(line string, indent int) string {
	n := 0
	for n < len(line) && n < indent && line[n] == ' ' {
		n++
	}
	return line[n:]
}

// foldLines implements YAML's folded-scalar line-joining: consecutive
// non-blank lines are joined with a single space; a blank line (or a
// more-indented "literal" line) becomes a newline instead.
func foldLines(lines []string) string {
	var b strings.Builder
	prevBlank := true
	for i, line := range lines {
		blank := line == ""
		moreIndented := len(line) > 0 && (line[0] == ' ' || line[0] == '\t')
		if i > 0 {
			switch {
			case blank || prevBlank || moreIndented:
				b.WriteByte('\n')
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteString(line)
		prevBlank = blank
	}
	return b.String()
}

// chomp applies the block scalar's final-line-break handling: '-'
// strips all trailing breaks, '+' keeps them all, and clip (the
// default, chomp==0) keeps exactly one.
func chomp(body string, indicator byte, hadContent bool) string {
	switch indicator {
	case '-':
		return strings.TrimRight(body, "\n")
	case '+':
		if hadContent {
			return body + "\n"
		}
		return body
	default:
		trimmed := strings.TrimRight(body, "\n")
		if hadContent {
			return trimmed + "\n"
		}
		return trimmed
	}
}
