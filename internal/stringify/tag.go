package stringify

import (
	"github.com/fearthecowboy/yaml/internal/ast"
	"github.com/fearthecowboy/yaml/internal/schema"
)

// shortTagForms maps the well-known tag:yaml.org,2002:... URIs to the
// "!!name" shorthand every conforming emitter prefers over the full
// "!<uri>" form.
var shortTagForms = map[string]string{
	schema.StrTag:       "!!str",
	schema.IntTag:       "!!int",
	schema.FloatTag:     "!!float",
	schema.BoolTag:      "!!bool",
	schema.NullTag:      "!!null",
	schema.MapTag:       "!!map",
	schema.SeqTag:       "!!seq",
	schema.SetTag:       "!!set",
	schema.OmapTag:      "!!omap",
	schema.PairsTag:     "!!pairs",
	schema.MergeTag:     "!!merge",
	schema.ValueTag:     "!!value",
	schema.BinaryTag:    "!!binary",
	schema.TimestampTag: "!!timestamp",
}

// tagHandle renders tagName as source text: its "!!shortform" if known,
// otherwise the verbatim "!<uri>" long form, or a bare local tag
// ("!foo") passed straight through.
func tagHandle(tagName string) string {
	if short, ok := shortTagForms[tagName]; ok {
		return short
	}
	if len(tagName) > 0 && tagName[0] == '!' {
		return tagName
	}
	return "!<" + tagName + ">"
}

// desolveScalarTag is the "Desolver" stage spec.md section 4.5/4.4
// describes: it decides whether a Scalar's explicit tag may be omitted
// because the schema's implicit resolution of the rendered plain text
// would reconstruct the same tag on reparse. Quoted and block styles
// never resolve implicitly to anything but !!str, so any non-string tag
// on a non-plain scalar always needs an explicit marker.
func (s *stringifier) desolveScalarTag(tag string, style ast.Style, plainText string) string {
	if tag == "" {
		return ""
	}
	if style == ast.StylePlain {
		implicitTag, _ := s.opts.Schema.Resolve(plainText)
		if implicitTag == tag {
			return ""
		}
	} else if tag == schema.StrTag {
		// Quoted/block scalars implicitly resolve to !!str on reparse.
		return ""
	}
	return tagHandle(tag)
}

// desolveCollectionTag decides whether a Mapping/Sequence's explicit tag
// needs to render: only when it differs from the schema's plain map/seq
// tag (i.e. it is a "!!set"/"!!omap"/"!!pairs" or a custom collection
// tag).
func desolveCollectionTag(tag, defaultTag string) string {
	if tag == "" || tag == defaultTag {
		return ""
	}
	return tagHandle(tag)
}
