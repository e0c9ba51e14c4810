// Package parse groups the lexer's flat token stream into the nested
// block/flow token tree (the "CST") that reflects YAML's indentation- and
// context-sensitive structure: documents, block maps/sequences, flow
// collections, and block/flow scalars.
package parse

import (
	"strconv"
	"strings"

	"github.com/fearthecowboy/yaml/internal/errcode"
	"github.com/fearthecowboy/yaml/internal/lex"
)

// Parser consumes a lex.Lexer's token stream and assembles a Stream of
// Documents. All syntactic errors are recorded on the owning Document's
// Errors slice with a source Mark and a stable errcode.Code; parsing
// continues best-effort so the composer can still produce a partial tree.
type Parser struct {
	lx   *lex.Lexer
	buf  tokenBuf
	doc  *Document // current document, for error recording

	flowMapKey bool // next parseFlowValue reads a flow-mapping key
}

// tokenBuf is a read position over the tokens pulled from the lexer so
// far. The token slice is shared, so a copy taken with save := p.buf
// and restored with p.buf = save rewinds without losing tokens.
type tokenBuf struct {
	toks *[]lex.Token
	pos  int
}

// New returns a Parser over src.
func New(src string) *Parser {
	return &Parser{lx: lex.New(src), buf: tokenBuf{toks: &[]lex.Token{}}}
}

// Parse scans src into a complete Stream.
func Parse(src string) *Stream {
	p := New(src)
	return p.ParseStream()
}

func (p *Parser) fill(n int) {
	for len(*p.buf.toks)-p.buf.pos <= n {
		tok, ok := p.lx.Next()
		*p.buf.toks = append(*p.buf.toks, tok)
		if !ok {
			break
		}
	}
}

func (p *Parser) peek(n int) lex.Token {
	p.fill(n)
	if p.buf.pos+n < len(*p.buf.toks) {
		return (*p.buf.toks)[p.buf.pos+n]
	}
	return lex.Token{Type: lex.EOF}
}

func (p *Parser) cur() lex.Token { return p.peek(0) }

func (p *Parser) advance() lex.Token {
	t := p.cur()
	if p.buf.pos < len(*p.buf.toks) {
		p.buf.pos++
	}
	return t
}

func (p *Parser) errorf(code errcode.Code, mark errcode.Mark, format string, args ...any) {
	p.doc.Errors = append(p.doc.Errors, errcode.New(code, mark, format, args...))
}

func (p *Parser) warnf(code errcode.Code, mark errcode.Mark, format string, args ...any) {
	p.doc.Warnings = append(p.doc.Warnings, errcode.New(code, mark, format, args...))
}

// skipTrivia consumes spaces, newlines, and comments, tracking blank
// lines and the last comment seen so the caller can attach them to the
// next significant token as HeadComment/SpaceBefore.
func (p *Parser) skipTrivia() (headComment string, spaceBefore bool) {
	var comments []string
	blankLines := 0
	for {
		t := p.cur()
		switch t.Type {
		case lex.Space:
			p.advance()
		case lex.Newline:
			blankLines++
			p.advance()
		case lex.Comment:
			comments = append(comments, strings.TrimPrefix(strings.TrimSpace(t.Source), "#"))
			p.advance()
		default:
			return strings.Join(comments, "\n"), blankLines > 1
		}
	}
}

// skipLineSpaces consumes only spaces (not newlines or comments).
func (p *Parser) skipLineSpaces() {
	for p.cur().Type == lex.Space {
		p.advance()
	}
}

// ParseStream parses the whole source into a Stream of documents.
func (p *Parser) ParseStream() *Stream {
	if p.cur().Type == lex.ByteOrderMark {
		p.advance()
	}
	s := &Stream{}
	for {
		p.skipTrivia()
		if p.cur().Type == lex.EOF {
			break
		}
		doc := p.parseDocument()
		s.Documents = append(s.Documents, doc)
		if p.cur().Type == lex.DocEnd {
			p.advance()
		}
	}
	if len(s.Documents) == 0 {
		s.Documents = nil
	}
	return s
}

func (p *Parser) parseDocument() *Document {
	doc := &Document{Directives: NewDirectives()}
	p.doc = doc

	for {
		p.skipTrivia()
		if p.cur().Type != lex.DirectiveLine {
			break
		}
		t := p.advance()
		body := strings.TrimPrefix(t.Source, "%")
		if ok, warn := applyDirectiveLine(doc.Directives, body); !ok {
			p.warnf(errcode.UnexpectedToken, t.Mark, "%s", warn)
		}
	}

	p.skipTrivia()
	if p.cur().Type == lex.DocStart {
		p.advance()
		doc.DirectivesEndMarker = true
	}

	p.skipTrivia()
	if p.cur().Type == lex.EOF || p.cur().Type == lex.DocEnd || p.cur().Type == lex.DocStart {
		doc.Root = &CST{Kind: KindNull, Mark: p.cur().Mark}
		return doc
	}

	doc.Root = p.parseNode(0)
	return doc
}

// parseNode parses one node (scalar, block/flow collection, or alias)
// whose content must start at column >= minIndent.
func (p *Parser) parseNode(minIndent int) *CST {
	head, spaceBefore := p.skipTrivia()

	var anchor, tag string
	for {
		t := p.cur()
		switch t.Type {
		case lex.Anchor:
			anchor = strings.TrimPrefix(t.Source, "&")
			p.advance()
			p.skipLineSpaces()
			continue
		case lex.Tag:
			tag = t.Source
			p.advance()
			p.skipLineSpaces()
			continue
		}
		break
	}
	if anchor != "" || tag != "" {
		p.skipTrivia()
	}

	n := p.parseNodeBody(minIndent)
	if n.Anchor == "" {
		n.Anchor = anchor
	} else if anchor != "" {
		p.errorf(errcode.MultipleAnchors, n.Mark, "node already has an anchor")
	}
	if n.Tag == "" {
		n.Tag = tag
	} else if tag != "" {
		p.errorf(errcode.MultipleTags, n.Mark, "node already has a tag")
	}
	n.HeadComment = head
	n.SpaceBefore = spaceBefore
	return n
}

func (p *Parser) parseNodeBody(minIndent int) *CST {
	t := p.cur()
	switch t.Type {
	case lex.FlowMapStart:
		return p.parseFlowMap()
	case lex.FlowSeqStart:
		return p.parseFlowSeq()
	case lex.AliasTok:
		p.advance()
		return &CST{Kind: KindAlias, AliasName: strings.TrimPrefix(t.Source, "*"), Mark: t.Mark, End: t.End()}
	case lex.BlockScalarHeader:
		parent := minIndent - 1
		if parent < 0 {
			parent = 0
		}
		return p.parseBlockScalar(parent)
	case lex.SeqItemInd:
		if t.Mark.Column >= minIndent {
			return p.parseBlockSeq(t.Mark.Column)
		}
	case lex.ExplicitKeyInd:
		if t.Mark.Column >= minIndent {
			return p.parseBlockMap(t.Mark.Column)
		}
	case lex.SingleQuotedScalar, lex.DoubleQuotedScalar, lex.Scalar:
		if t.Mark.Column < minIndent {
			break
		}
		save := p.buf
		scalar := p.parseScalarLeaf()
		p.skipLineSpaces()
		if p.cur().Type == lex.MapValueInd {
			p.buf = save
			return p.parseBlockMap(t.Mark.Column)
		}
		return scalar
	}
	if t.Type == lex.EOF || t.Type == lex.DocEnd || t.Type == lex.DocStart || t.Type == lex.FlowMapEnd || t.Type == lex.FlowSeqEnd || t.Type == lex.Comma {
		return &CST{Kind: KindNull, Mark: t.Mark}
	}
	// Fall back to treating it as a (possibly malformed) plain scalar so
	// parsing can keep making progress.
	return p.parseScalarLeaf()
}

func (p *Parser) parseScalarLeaf() *CST {
	t := p.advance()
	switch t.Type {
	case lex.SingleQuotedScalar:
		return &CST{Kind: KindFlowScalar, Style: StyleSingleQuoted, Value: unquoteSingle(t.Source), Mark: t.Mark, End: t.End()}
	case lex.DoubleQuotedScalar:
		return &CST{Kind: KindFlowScalar, Style: StyleDoubleQuoted, Value: unquoteDouble(t.Source), Mark: t.Mark, End: t.End()}
	default:
		return &CST{Kind: KindFlowScalar, Style: StylePlain, Value: strings.TrimSpace(t.Source), Mark: t.Mark, End: t.End()}
	}
}

func (p *Parser) parseBlockSeq(indent int) *CST {
	n := &CST{Kind: KindBlockSeq, Mark: p.cur().Mark}
	for {
		save := p.buf
		head, spaceBefore := p.skipTrivia()
		t := p.cur()
		if t.Type != lex.SeqItemInd || t.Mark.Column != indent {
			p.buf = save
			break
		}
		p.advance()
		p.skipLineSpaces()
		item := p.parseNode(indent + 1)
		if item.HeadComment == "" {
			item.HeadComment = head
		}
		item.SpaceBefore = item.SpaceBefore || spaceBefore
		n.Items = append(n.Items, item)
	}
	return n
}

func (p *Parser) parseBlockMap(indent int) *CST {
	n := &CST{Kind: KindBlockMap, Mark: p.cur().Mark}
	for {
		save := p.buf
		head, spaceBefore := p.skipTrivia()
		t := p.cur()
		if t.Mark.Column != indent {
			p.buf = save
			break
		}
		var pair Pair
		if t.Type == lex.ExplicitKeyInd {
			p.advance()
			p.skipLineSpaces()
			pair.Explicit = true
			pair.Key = p.parseNode(indent + 1)
			save2 := p.buf
			p.skipTrivia()
			if p.cur().Type == lex.MapValueInd {
				p.advance()
				p.skipLineSpaces()
				pair.Value = p.parseNode(indent + 1)
			} else {
				p.buf = save2
			}
		} else if t.Type == lex.SingleQuotedScalar || t.Type == lex.DoubleQuotedScalar || t.Type == lex.Scalar {
			pair.Key = p.parseScalarLeaf()
			p.skipLineSpaces()
			if p.cur().Type != lex.MapValueInd {
				p.errorf(errcode.UnexpectedToken, t.Mark, "expected ':' after mapping key")
				p.buf = save
				break
			}
			p.advance()
			p.skipLineSpaces()
			nt := p.cur()
			if nt.Type == lex.Newline {
				save3 := p.buf
				p.skipTrivia()
				next := p.cur()
				p.buf = save3
				ended := next.Type == lex.EOF || next.Type == lex.DocEnd || next.Type == lex.DocStart
				switch {
				case !ended && next.Mark.Column > indent:
					pair.Value = p.parseNode(indent + 1)
				case next.Type == lex.SeqItemInd && next.Mark.Column == indent:
					pair.Value = p.parseNode(indent)
				default:
					pair.Value = &CST{Kind: KindNull, Mark: nt.Mark}
				}
			} else if nt.Type == lex.EOF || nt.Type == lex.DocEnd || nt.Type == lex.DocStart {
				pair.Value = &CST{Kind: KindNull, Mark: nt.Mark}
			} else {
				pair.Value = p.parseNode(indent + 1)
			}
		} else {
			p.buf = save
			break
		}
		if pair.Key != nil && pair.Key.HeadComment == "" {
			pair.Key.HeadComment = head
		}
		if pair.Key != nil {
			pair.Key.SpaceBefore = pair.Key.SpaceBefore || spaceBefore
		}
		n.Pairs = append(n.Pairs, &pair)
	}
	return n
}

func (p *Parser) parseFlowSeq() *CST {
	start := p.advance() // '['
	n := &CST{Kind: KindFlowSeq, Mark: start.Mark}
	for {
		p.skipTrivia()
		if p.cur().Type == lex.FlowSeqEnd {
			p.advance()
			break
		}
		if p.cur().Type == lex.EOF {
			p.errorf(errcode.MissingChar, p.cur().Mark, "unexpected end of input inside flow sequence")
			break
		}
		item := p.parseFlowValue()
		n.Items = append(n.Items, item)
		p.skipTrivia()
		if p.cur().Type == lex.Comma {
			p.advance()
			continue
		}
		if p.cur().Type == lex.FlowSeqEnd {
			p.advance()
			break
		}
		if p.cur().Type == lex.EOF {
			p.errorf(errcode.MissingChar, p.cur().Mark, "unexpected end of input inside flow sequence")
			break
		}
		p.errorf(errcode.UnexpectedToken, p.cur().Mark, "expected ',' or ']' in flow sequence")
		break
	}
	n.End = p.cur().Mark.Offset
	return n
}

func (p *Parser) parseFlowMap() *CST {
	start := p.advance() // '{'
	n := &CST{Kind: KindFlowMap, Mark: start.Mark}
	for {
		p.skipTrivia()
		if p.cur().Type == lex.FlowMapEnd {
			p.advance()
			break
		}
		if p.cur().Type == lex.EOF {
			p.errorf(errcode.MissingChar, p.cur().Mark, "unexpected end of input inside flow mapping")
			break
		}
		var pair Pair
		p.flowMapKey = true
		if p.cur().Type == lex.ExplicitKeyInd {
			p.advance()
			p.skipTrivia()
			pair.Explicit = true
			pair.Key = p.parseFlowValue()
		} else {
			pair.Key = p.parseFlowValue()
		}
		p.skipTrivia()
		if p.cur().Type == lex.MapValueInd {
			p.advance()
			p.skipTrivia()
			if p.cur().Type == lex.Comma || p.cur().Type == lex.FlowMapEnd {
				pair.Value = &CST{Kind: KindNull, Mark: p.cur().Mark}
			} else {
				pair.Value = p.parseFlowValue()
			}
		}
		n.Pairs = append(n.Pairs, &pair)
		p.skipTrivia()
		if p.cur().Type == lex.Comma {
			p.advance()
			continue
		}
		if p.cur().Type == lex.FlowMapEnd {
			p.advance()
			break
		}
		p.errorf(errcode.UnexpectedToken, p.cur().Mark, "expected ',' or '}' in flow mapping")
		break
	}
	n.End = p.cur().Mark.Offset
	return n
}

// parseFlowValue parses a single flow-context value: a nested flow
// collection, scalar, or alias, with anchor/tag properties. If the value
// is itself a bare scalar immediately followed by ':' it is promoted to
// an implicit single-pair flow mapping per spec's flow-key
// disambiguation rule, except when it is the key of a flow mapping.
func (p *Parser) parseFlowValue() *CST {
	mapKey := p.flowMapKey
	p.flowMapKey = false
	var anchor, tag string
	for {
		switch p.cur().Type {
		case lex.Anchor:
			anchor = strings.TrimPrefix(p.cur().Source, "&")
			p.advance()
			p.skipTrivia()
			continue
		case lex.Tag:
			tag = p.cur().Source
			p.advance()
			p.skipTrivia()
			continue
		}
		break
	}

	var n *CST
	switch p.cur().Type {
	case lex.FlowMapStart:
		n = p.parseFlowMap()
	case lex.FlowSeqStart:
		n = p.parseFlowSeq()
	case lex.AliasTok:
		t := p.advance()
		n = &CST{Kind: KindAlias, AliasName: strings.TrimPrefix(t.Source, "*"), Mark: t.Mark}
	default:
		keyMark := p.cur().Mark
		n = p.parseScalarLeaf()
		p.skipTrivia()
		if !mapKey && p.cur().Type == lex.MapValueInd {
			if keyMark.Offset-n.Mark.Offset > 1024 {
				p.errorf(errcode.KeyOver1024Chars, keyMark, "implicit flow-sequence key exceeds 1024 characters")
			}
			p.advance()
			p.skipTrivia()
			var val *CST
			if p.cur().Type == lex.Comma || p.cur().Type == lex.FlowSeqEnd || p.cur().Type == lex.FlowMapEnd {
				val = &CST{Kind: KindNull, Mark: p.cur().Mark}
			} else {
				val = p.parseFlowValue()
			}
			wrapped := &CST{Kind: KindFlowMap, Mark: n.Mark}
			wrapped.Pairs = []*Pair{{Key: n, Value: val}}
			n = wrapped
		}
	}
	n.Anchor = anchor
	n.Tag = tag
	return n
}

func (p *Parser) parseBlockScalar(indent int) *CST {
	header := p.advance()
	style := StyleLiteral
	if strings.HasPrefix(header.Source, ">") {
		style = StyleFolded
	}
	var chomp byte
	var explicitIndent int
	for _, c := range header.Source[1:] {
		switch {
		case c == '+' || c == '-':
			chomp = byte(c)
		case c >= '0' && c <= '9':
			explicitIndent, _ = strconv.Atoi(string(c))
		}
	}
	if p.cur().Type == lex.Newline {
		p.advance()
	}
	baseIndent := indent
	if explicitIndent > 0 {
		baseIndent = indent + explicitIndent - 1
	}
	body := p.lx.ScanBlockBody(baseIndent)
	*p.buf.toks = (*p.buf.toks)[:p.buf.pos]
	return &CST{
		Kind:           KindBlockScalar,
		Style:          style,
		Value:          body.Source,
		Chomp:          chomp,
		ExplicitIndent: explicitIndent,
		BlockIndent:    indent,
		Mark:           header.Mark,
		End:            body.End(),
	}
}

func unquoteSingle(src string) string {
	inner := src[1 : len(src)-1]
	return strings.ReplaceAll(inner, "''", "'")
}

// unquoteDouble performs the standard YAML double-quote escape decoding.
// Escapes are not valid until here: the lexer only delimits the token.
func unquoteDouble(src string) string {
	inner := src[1 : len(src)-1]
	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c != '\\' || i+1 >= len(inner) {
			b.WriteByte(c)
			continue
		}
		i++
		switch inner[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case 'e':
			b.WriteByte(0x1b)
		case ' ':
			b.WriteByte(' ')
		case 'N':
			b.WriteRune(0x85)
		case '_':
			b.WriteRune(0xA0)
		case 'L':
			b.WriteRune(0x2028)
		case 'P':
			b.WriteRune(0x2029)
		case 'x', 'u', 'U':
			n := map[byte]int{'x': 2, 'u': 4, 'U': 8}[inner[i]]
			if i+n < len(inner) {
				if v, err := strconv.ParseInt(inner[i+1:i+1+n], 16, 32); err == nil {
					b.WriteRune(rune(v))
					i += n
					continue
				}
			}
			b.WriteByte(inner[i])
		case '\n':
			// escaped line break: line folding, no character emitted
		default:
			b.WriteByte(inner[i])
		}
	}
	return b.String()
}
