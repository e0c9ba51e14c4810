// Package ast defines the typed node tree: the sum type of Document,
// Mapping, Sequence, Pair, Scalar, and Alias that the composer builds
// from a parse.CST and a schema, and that the stringifier walks back
// into YAML text. Every concrete node embeds Common for the properties
// shared across the sum type (tag, anchor, comments, source position).
package ast

import "github.com/fearthecowboy/yaml/internal/errcode"

// Kind discriminates the node sum type.
type Kind int

const (
	KindScalar Kind = iota
	KindMapping
	KindSequence
	KindAlias
	KindPair
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	case KindAlias:
		return "alias"
	case KindPair:
		return "pair"
	default:
		return "unknown"
	}
}

// Node is implemented by every member of the sum type: Scalar, Mapping,
// Sequence, Alias, and Pair.
type Node interface {
	Kind() Kind
	Common() *Common
}

// Common holds the node properties shared across the sum type: the
// scalar or collection's resolved tag, its anchor label (if any),
// leading/trailing comments, the blank-line-precedes flag, and the
// source position it was composed from (zero Mark for synthetic nodes).
// Concrete node types embed it as a named field (Props) rather than
// anonymously, so they can each still define the Common() accessor the
// Node interface requires without a field/method name collision.
type Common struct {
	Tag         string
	Anchor      string
	HeadComment string
	LineComment string
	FootComment string
	SpaceBefore bool
	Mark        errcode.Mark
}

// IsScalar reports whether n is a *Scalar.
func IsScalar(n Node) bool { _, ok := n.(*Scalar); return ok }

// IsMap reports whether n is a *Mapping.
func IsMap(n Node) bool { _, ok := n.(*Mapping); return ok }

// IsSeq reports whether n is a *Sequence.
func IsSeq(n Node) bool { _, ok := n.(*Sequence); return ok }

// IsAlias reports whether n is an *Alias.
func IsAlias(n Node) bool { _, ok := n.(*Alias); return ok }

// IsPair reports whether n is a *Pair.
func IsPair(n Node) bool { _, ok := n.(*Pair); return ok }
