package schema

import (
	"encoding/base64"
	"strings"
)

// Schema is an ordered set of recognized tags plus the collection tags
// used for untagged maps/sequences. Composer calls Resolve to find the
// implicit tag (and decoded value) for a plain scalar; stringify calls
// Stringify to decide whether an explicit tag can be omitted because
// implicit resolution would reconstruct it on reparse.
type Schema struct {
	Name string
	tags []*Tag

	MapTag  string
	SeqTag  string
	NullTag string
}

// Resolve returns the first tag (in schema-defined precedence order)
// whose Test matches plain, along with the decoded value. If nothing
// matches, it falls back to the schema's string tag with the scalar's
// raw text, matching the teacher's "fall through to str" behavior in
// constructor.go's scalar().
func (s *Schema) Resolve(plain string) (tagName string, value any) {
	for _, t := range s.tags {
		if t.Test != nil && t.Test(plain) {
			if t.Resolve == nil {
				return t.Name, plain
			}
			return t.Name, t.Resolve(plain)
		}
	}
	return StrTag, plain
}

// Tag looks up a tag by its canonical URI.
func (s *Schema) Tag(name string) (*Tag, bool) {
	for _, t := range s.tags {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Stringify renders v using the tag it identifies as, for desolving
// (tag-omission) decisions during stringification.
func (s *Schema) Stringify(tagName string, v any) (string, bool) {
	t, ok := s.Tag(tagName)
	if !ok || t.Stringify == nil {
		return "", false
	}
	return t.Stringify(v)
}

func nullTag(names ...string) *Tag {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return &Tag{
		Name:      NullTag,
		Test:      func(plain string) bool { return set[plain] },
		Resolve:   func(plain string) any { return nil },
		Stringify: func(v any) (string, bool) { return "", v == nil },
	}
}

func boolTag(trueWords, falseWords []string) *Tag {
	trueSet := make(map[string]bool, len(trueWords))
	for _, w := range trueWords {
		trueSet[w] = true
	}
	falseSet := make(map[string]bool, len(falseWords))
	for _, w := range falseWords {
		falseSet[w] = true
	}
	return &Tag{
		Name: BoolTag,
		Test: func(plain string) bool { return trueSet[plain] || falseSet[plain] },
		Resolve: func(plain string) any {
			return trueSet[plain]
		},
		Stringify: func(v any) (string, bool) {
			b, ok := v.(bool)
			if !ok {
				return "", false
			}
			if b {
				return "true", true
			}
			return "false", true
		},
	}
}

func intTag() *Tag {
	return &Tag{
		Name: IntTag,
		Test: func(plain string) bool {
			return plainInt.MatchString(plain) || hexInt.MatchString(plain) || octInt.MatchString(plain)
		},
		Resolve: func(plain string) any {
			switch {
			case hexInt.MatchString(plain):
				return parseHexInt(plain)
			case octInt.MatchString(plain):
				return parseOctInt(plain)
			default:
				return parsePlainInt(plain)
			}
		},
		Stringify: func(v any) (string, bool) {
			return defaultIntStringify(v)
		},
	}
}

func yaml11IntTag() *Tag {
	return &Tag{
		Name: IntTag,
		Test: func(plain string) bool {
			return plainInt.MatchString(plain) || hexInt.MatchString(plain) || octInt.MatchString(plain) ||
				yaml11BinInt.MatchString(plain) || yaml11SexagesimalInt.MatchString(plain)
		},
		Resolve: func(plain string) any {
			switch {
			case hexInt.MatchString(plain):
				return parseHexInt(plain)
			case yaml11BinInt.MatchString(plain):
				return parseBinInt(plain)
			case octInt.MatchString(plain):
				return parseOctInt(plain)
			case yaml11SexagesimalInt.MatchString(plain):
				if f, ok := parseSexagesimal(plain); ok {
					return int64(f)
				}
				return nil
			default:
				return parsePlainInt(plain)
			}
		},
		Stringify: func(v any) (string, bool) {
			return defaultIntStringify(v)
		},
	}
}

func defaultIntStringify(v any) (string, bool) {
	switch n := v.(type) {
	case int:
		return itoa(int64(n)), true
	case int64:
		return itoa(n), true
	case uint64:
		return utoa(n), true
	}
	return "", false
}

func floatTag(yaml11 bool) *Tag {
	return &Tag{
		Name: FloatTag,
		Test: func(plain string) bool {
			if yaml11 && base60float.MatchString(plain) {
				return true
			}
			return plainFloat.MatchString(plain) || specialFloat.MatchString(plain) || nanFloat.MatchString(plain)
		},
		Resolve: func(plain string) any {
			switch {
			case yaml11 && base60float.MatchString(plain):
				f, _ := parseSexagesimal(plain)
				return f
			case specialFloat.MatchString(plain):
				if strings.HasPrefix(plain, "-") {
					return negInf()
				}
				return posInf()
			case nanFloat.MatchString(plain):
				return nanVal()
			default:
				return parsePlainFloat(plain)
			}
		},
		Stringify: func(v any) (string, bool) {
			f, ok := v.(float64)
			if !ok {
				return "", false
			}
			return formatFloat(f), true
		},
	}
}

func strTag() *Tag {
	return &Tag{
		Name:    StrTag,
		Test:    func(plain string) bool { return true },
		Resolve: func(plain string) any { return plain },
		Stringify: func(v any) (string, bool) {
			s, ok := v.(string)
			return s, ok
		},
	}
}

// timestampTag recognizes the YAML 1.1 timestamp grammar and resolves it
// to a time.Time, the natural Go counterpart of the spec's "host-specific
// like BigInteger/Date" scalar value. Implicit (untagged) resolution only
// applies under the yaml-1.1 schema; core/json never guess a timestamp.
func timestampTag() *Tag {
	return &Tag{
		Name:      TimestampTag,
		Test:      func(plain string) bool { return yaml11Timestamp.MatchString(plain) || dateOnlyTimestamp.MatchString(plain) },
		Resolve:   parseTimestamp,
		Stringify: formatTimestamp,
	}
}

// binaryTag decodes/encodes "!!binary" scalars as base64, matching
// YAML 1.1's tag:yaml.org,2002:binary. It has no Test: a plain scalar is
// never implicitly read as binary, only an explicit "!!binary" tag
// invokes Resolve/Stringify.
func binaryTag() *Tag {
	return &Tag{
		Name: BinaryTag,
		Test: func(plain string) bool { return false },
		Resolve: func(plain string) any {
			data, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(plain), ""))
			if err != nil {
				return nil
			}
			return data
		},
		Stringify: func(v any) (string, bool) {
			b, ok := v.([]byte)
			if !ok {
				return "", false
			}
			return base64.StdEncoding.EncodeToString(b), true
		},
	}
}

// setCollectionTag, omapCollectionTag, and pairsCollectionTag are
// collection-level tags: Test/Resolve are unused (a mapping or sequence
// node never goes through Schema.Resolve, which only sees plain scalar
// text), they exist only so Schema.Tag can look them up by name when the
// composer/stringifier need to recognize an explicit "!!set"/"!!omap"/
// "!!pairs" tag on a collection node.
func setCollectionTag() *Tag  { return &Tag{Name: SetTag} }
func omapCollectionTag() *Tag { return &Tag{Name: OmapTag} }
func pairsCollectionTag() *Tag { return &Tag{Name: PairsTag} }

func mergeTag() *Tag {
	return &Tag{
		Name: MergeTag,
		Test: func(plain string) bool { return plain == "<<" },
	}
}

func valueTag() *Tag {
	return &Tag{
		Name: ValueTag,
		Test: func(plain string) bool { return plain == "=" },
	}
}

// Failsafe returns the minimal schema required by the YAML spec: every
// scalar resolves to !!str, and only map/seq collection tags exist.
func Failsafe() *Schema {
	return &Schema{
		Name:    "failsafe",
		tags:    []*Tag{strTag()},
		MapTag:  MapTag,
		SeqTag:  SeqTag,
		NullTag: NullTag,
	}
}

// JSON returns the JSON-compatible schema: strict null/bool/int/float
// resolution matching JSON's literal grammar, string otherwise.
func JSON() *Schema {
	return &Schema{
		Name: "json",
		tags: []*Tag{
			nullTag("null"),
			boolTag([]string{"true"}, []string{"false"}),
			intTag(),
			floatTag(false),
			strTag(),
		},
		MapTag:  MapTag,
		SeqTag:  SeqTag,
		NullTag: NullTag,
	}
}

// Core returns the default YAML 1.2 core schema: a relaxed superset of
// JSON's resolution rules (multiple spellings of null/true/false,
// leading-plus and underscore-separated numbers).
func Core() *Schema {
	return &Schema{
		Name: "core",
		tags: []*Tag{
			nullTag("~", "null", "Null", "NULL", ""),
			boolTag(
				[]string{"true", "True", "TRUE"},
				[]string{"false", "False", "FALSE"},
			),
			intTag(),
			floatTag(false),
			strTag(),
		},
		MapTag:  MapTag,
		SeqTag:  SeqTag,
		NullTag: NullTag,
	}
}

// YAML11 returns the YAML 1.1 schema: Core's resolution rules plus the
// legacy y/n/on/off booleans, sexagesimal and octal/binary integers,
// base-60 floats, and the "<<" merge key / "=" value tags.
func YAML11() *Schema {
	return &Schema{
		Name: "yaml-1.1",
		tags: []*Tag{
			nullTag("~", "null", "Null", "NULL", ""),
			boolTag(
				[]string{"y", "Y", "yes", "Yes", "YES", "true", "True", "TRUE", "on", "On", "ON"},
				[]string{"n", "N", "no", "No", "NO", "false", "False", "FALSE", "off", "Off", "OFF"},
			),
			yaml11IntTag(),
			floatTag(true),
			timestampTag(),
			binaryTag(),
			setCollectionTag(),
			omapCollectionTag(),
			pairsCollectionTag(),
			mergeTag(),
			valueTag(),
			strTag(),
		},
		MapTag:  MapTag,
		SeqTag:  SeqTag,
		NullTag: NullTag,
	}
}
