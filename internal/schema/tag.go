// Package schema implements the tag registry: the set of recognized
// !!tag URIs, the resolution rule that infers an implicit tag from a
// plain scalar's text, and the stringification rule that renders a
// resolved value back to scalar text. Composer and stringify consult a
// Schema; they never hardcode tag behavior themselves.
package schema

// Tag is one recognized type in a Schema: a canonical tag URI plus the
// functions that resolve a plain scalar's text to it and render a value
// back out. Collection tags (map/seq/set/omap/pairs) use Resolve/Test
// only to decide default Kind and leave scalar decoding unused.
type Tag struct {
	// Name is the tag's canonical URI, e.g. "tag:yaml.org,2002:int".
	Name string

	// Test reports whether a plain scalar's text resolves to this tag.
	// Only used for scalar tags; evaluated in Schema-defined precedence
	// order, first match wins.
	Test func(plain string) bool

	// Resolve converts a plain scalar's text (already known to satisfy
	// Test) into the tag's native value representation.
	Resolve func(plain string) any

	// Stringify renders a native value of this tag back to plain scalar
	// text, for use when the stringifier desolves (omits) the explicit
	// tag and relies on implicit resolution to reproduce it on re-parse.
	Stringify func(v any) (string, bool)
}
