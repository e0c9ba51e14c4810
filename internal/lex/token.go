// Package lex implements the streaming tokenizer: a character-driven scan
// over YAML source that produces a lazy sequence of typed tokens without
// building any tree structure of its own (that is internal/parse's job).
package lex

import "github.com/fearthecowboy/yaml/internal/errcode"

// Type identifies the lexical class of a Token.
type Type int

const (
	EOF Type = iota
	ByteOrderMark
	DocMode // non-empty content seen before any directive/doc marker
	DocStart
	DocEnd
	FlowMapStart
	FlowMapEnd
	FlowSeqStart
	FlowSeqEnd
	FlowErrorEnd // unterminated quoted scalar
	Comma
	ExplicitKeyInd // '?'
	MapValueInd    // ':'
	SeqItemInd     // '-'
	Anchor         // '&name'
	AliasTok       // '*name'
	Tag            // '!...'
	Newline
	Space
	Comment
	DirectiveLine
	BlockScalarHeader
	BlockScalar
	SingleQuotedScalar
	DoubleQuotedScalar
	Scalar
)

func (t Type) String() string {
	switch t {
	case EOF:
		return "eof"
	case ByteOrderMark:
		return "byte-order-mark"
	case DocMode:
		return "doc-mode"
	case DocStart:
		return "doc-start"
	case DocEnd:
		return "doc-end"
	case FlowMapStart:
		return "flow-map-start"
	case FlowMapEnd:
		return "flow-map-end"
	case FlowSeqStart:
		return "flow-seq-start"
	case FlowSeqEnd:
		return "flow-seq-end"
	case FlowErrorEnd:
		return "flow-error-end"
	case Comma:
		return "comma"
	case ExplicitKeyInd:
		return "explicit-key-ind"
	case MapValueInd:
		return "map-value-ind"
	case SeqItemInd:
		return "seq-item-ind"
	case Anchor:
		return "anchor"
	case AliasTok:
		return "alias"
	case Tag:
		return "tag"
	case Newline:
		return "newline"
	case Space:
		return "space"
	case Comment:
		return "comment"
	case DirectiveLine:
		return "directive-line"
	case BlockScalarHeader:
		return "block-scalar-header"
	case BlockScalar:
		return "block-scalar"
	case SingleQuotedScalar:
		return "single-quoted-scalar"
	case DoubleQuotedScalar:
		return "double-quoted-scalar"
	case Scalar:
		return "scalar"
	default:
		return "unknown"
	}
}

// Token is one lexical unit: a type, its verbatim source text, and the
// byte offset (plus line/column for error reporting) where it begins.
type Token struct {
	Type   Type
	Source string
	Mark   errcode.Mark
}

func (t Token) End() int { return t.Mark.Offset + len(t.Source) }
