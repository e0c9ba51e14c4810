// Package compose walks a parse.CST (and the active Directives/schema)
// into the typed ast.Document node tree: resolving implicit tags,
// registering anchors, binding aliases, and enforcing the
// alias-expansion guard against the billion-laughs attack. A YAML 1.1
// "<<" merge pair is kept as written; internal/native expands it.
package compose

import (
	"strings"

	"github.com/fearthecowboy/yaml/internal/ast"
	"github.com/fearthecowboy/yaml/internal/errcode"
	"github.com/fearthecowboy/yaml/internal/parse"
	"github.com/fearthecowboy/yaml/internal/schema"
)

// Options configures a Composer beyond the schema itself.
type Options struct {
	Schema *schema.Schema

	// MaxAliasCount bounds alias-expansion cost (the root package passes
	// 100 unless told otherwise): 0 still permits straightforward
	// (non-nested) aliases, negative disables the guard entirely.
	MaxAliasCount int
}

type anchorEntry struct {
	node  ast.Node
	count int
}

// Composer builds one ast.Document from one parse.Document.
type Composer struct {
	opts    Options
	doc     *ast.Document
	anchors map[string]*anchorEntry
	order   []string
}

// New returns a Composer using opts.
func New(opts Options) *Composer {
	if opts.Schema == nil {
		opts.Schema = schema.Core()
	}
	return &Composer{opts: opts}
}

// Compose converts a parsed document into an ast.Document.
func (c *Composer) Compose(pd *parse.Document) *ast.Document {
	doc := ast.NewDocument()
	doc.SchemaName = c.opts.Schema.Name
	doc.DirectivesEndMarker = pd.DirectivesEndMarker
	doc.VersionMajor = pd.Directives.VersionMajor
	doc.VersionMinor = pd.Directives.VersionMinor
	doc.Errors = append(doc.Errors, pd.Errors...)
	doc.Warnings = append(doc.Warnings, pd.Warnings...)

	c.doc = doc
	c.anchors = map[string]*anchorEntry{}
	c.order = nil

	doc.Contents = c.composeNode(pd.Root, pd.Directives)
	c.checkAliasLimits()
	return doc
}

func (c *Composer) errorf(code errcode.Code, mark errcode.Mark, format string, args ...any) {
	c.doc.Errors = append(c.doc.Errors, errcode.New(code, mark, format, args...))
}

func (c *Composer) composeNode(n *parse.CST, dirs *parse.Directives) ast.Node {
	if n == nil {
		return &ast.Scalar{Value: nil}
	}

	var result ast.Node
	switch n.Kind {
	case parse.KindNull:
		result = &ast.Scalar{Value: nil, Props: ast.Common{Tag: schema.NullTag}}
	case parse.KindAlias:
		result = c.composeAlias(n)
	case parse.KindFlowScalar:
		result = c.composeScalar(n, dirs)
	case parse.KindBlockScalar:
		result = c.composeBlockScalar(n)
	case parse.KindBlockMap, parse.KindFlowMap:
		result = c.composeMapping(n, dirs)
	case parse.KindBlockSeq, parse.KindFlowSeq:
		result = c.composeSequence(n, dirs)
	default:
		result = &ast.Scalar{Value: nil}
	}

	common := result.Common()
	common.HeadComment = n.HeadComment
	common.LineComment = n.LineComment
	common.SpaceBefore = n.SpaceBefore
	common.Mark = n.Mark

	if n.Anchor != "" {
		common.Anchor = n.Anchor
		if _, dup := c.anchors[n.Anchor]; dup {
			c.errorf(errcode.MultipleAnchors, n.Mark, "anchor %q redefined", n.Anchor)
		}
		c.anchors[n.Anchor] = &anchorEntry{node: result}
		c.order = append(c.order, n.Anchor)
	}
	return result
}

func (c *Composer) composeAlias(n *parse.CST) ast.Node {
	entry, ok := c.anchors[n.AliasName]
	if !ok {
		c.errorf(errcode.AliasResolutionError, n.Mark, "unknown anchor %q referenced", n.AliasName)
		return &ast.Alias{Source: n.AliasName}
	}
	entry.count++
	return &ast.Alias{Source: n.AliasName, Target: entry.node}
}

func (c *Composer) composeScalar(n *parse.CST, dirs *parse.Directives) *ast.Scalar {
	s := &ast.Scalar{}
	switch n.Style {
	case parse.StyleSingleQuoted:
		s.Style = ast.StyleSingleQuoted
	case parse.StyleDoubleQuoted:
		s.Style = ast.StyleDoubleQuoted
	default:
		s.Style = ast.StylePlain
	}

	explicitTag := resolveTagHandle(n.Tag, dirs)

	if n.Style != parse.StylePlain {
		s.Props.Tag = schema.StrTag
		s.Value = n.Value
		if explicitTag != "" {
			c.applyExplicitTag(s, explicitTag, n)
		}
		return s
	}

	if explicitTag != "" {
		c.applyExplicitTag(s, explicitTag, n)
		if s.Props.Tag == "" {
			s.Props.Tag = explicitTag
			s.Value = n.Value
		}
		return s
	}

	tag, value := c.opts.Schema.Resolve(n.Value)
	s.Props.Tag = tag
	s.Value = value
	if value == nil {
		s.SourceText = n.Value
	}
	return s
}

func (c *Composer) applyExplicitTag(s *ast.Scalar, tagName string, n *parse.CST) {
	t, ok := c.opts.Schema.Tag(tagName)
	if !ok {
		c.errorf(errcode.TagResolveFailed, n.Mark, "unrecognized tag %q", tagName)
		s.Props.Tag = tagName
		s.Value = n.Value
		return
	}
	s.Props.Tag = t.Name
	if t.Resolve != nil {
		s.Value = t.Resolve(n.Value)
	} else {
		s.Value = n.Value
	}
}

func (c *Composer) composeBlockScalar(n *parse.CST) *ast.Scalar {
	s := &ast.Scalar{Props: ast.Common{Tag: schema.StrTag}}
	if n.Style == parse.StyleFolded {
		s.Style = ast.StyleBlockFolded
	} else {
		s.Style = ast.StyleBlockLiteral
	}
	s.Value = decodeBlockScalar(n)
	return s
}

func (c *Composer) composeMapping(n *parse.CST, dirs *parse.Directives) *ast.Mapping {
	m := &ast.Mapping{Flow: n.Kind == parse.KindFlowMap}
	if explicitTag := resolveTagHandle(n.Tag, dirs); explicitTag != "" {
		if explicitTag == schema.SetTag {
			m.Props.Tag = explicitTag
		} else if _, ok := c.opts.Schema.Tag(explicitTag); !ok {
			c.errorf(errcode.TagResolveFailed, n.Mark, "unrecognized tag %q", explicitTag)
		} else {
			m.Props.Tag = explicitTag
		}
	}
	for _, pair := range n.Pairs {
		key := c.composeNode(pair.Key, dirs)
		// An explicit "? key" with nothing after it leaves pair.Value as
		// a nil *parse.CST: the value was never written, as distinct
		// from a value explicitly given as null ("? key\n: ~"). Keep
		// that distinction as a nil ast.Node rather than routing it
		// through composeNode (which synthesizes an explicit null
		// Scalar for every other nil-CST case, e.g. an empty document
		// root) so the stringifier can tell the two apart.
		var value ast.Node
		if pair.Value != nil {
			value = c.composeNode(pair.Value, dirs)
		}
		if ks, ok := key.(*ast.Scalar); ok && ks.Props.Tag == schema.MergeTag {
			m.Items = append(m.Items, &ast.Pair{Key: key, Value: value, Props: ast.Common{Mark: pair.Key.Mark}})
			continue
		}
		if keyIsTooLong(pair.Key) {
			c.errorf(errcode.KeyOver1024Chars, pair.Key.Mark, "implicit mapping key exceeds 1024 characters")
		}
		if !m.Flow && keyIsBlockCollection(pair.Key) {
			c.errorf(errcode.BlockAsImplicitKey, pair.Key.Mark, "block collection may not be used as an implicit mapping key")
		}
		m.Items = append(m.Items, &ast.Pair{Explicit: pair.Explicit, Key: key, Value: value})
	}
	return m
}

func (c *Composer) composeSequence(n *parse.CST, dirs *parse.Directives) *ast.Sequence {
	seq := &ast.Sequence{Flow: n.Kind == parse.KindFlowSeq}
	if explicitTag := resolveTagHandle(n.Tag, dirs); explicitTag != "" {
		if explicitTag == schema.OmapTag || explicitTag == schema.PairsTag {
			seq.Props.Tag = explicitTag
		} else if _, ok := c.opts.Schema.Tag(explicitTag); !ok {
			c.errorf(errcode.TagResolveFailed, n.Mark, "unrecognized tag %q", explicitTag)
		} else {
			seq.Props.Tag = explicitTag
		}
	}
	for _, item := range n.Items {
		seq.Items = append(seq.Items, c.composeNode(item, dirs))
	}
	return seq
}

func keyIsTooLong(key *parse.CST) bool {
	return key != nil && key.Style == parse.StylePlain && key.End-key.Mark.Offset > 1024
}

func keyIsBlockCollection(key *parse.CST) bool {
	return key != nil && (key.Kind == parse.KindBlockMap || key.Kind == parse.KindBlockSeq)
}

// resolveTagHandle expands a CST tag token ("!!str", "!<uri>", "!local",
// bare "!") against the active %TAG directives into a canonical tag URI.
// Returns "" if n has no tag.
func resolveTagHandle(raw string, dirs *parse.Directives) string {
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "!<") && strings.HasSuffix(raw, ">") {
		return raw[2 : len(raw)-1]
	}
	if raw == "!" {
		return dirs.Tags["!"]
	}
	for handle, prefix := range dirs.Tags {
		if handle == "!" || handle == "!!" {
			continue
		}
		if strings.HasPrefix(raw, handle) {
			return prefix + raw[len(handle):]
		}
	}
	if strings.HasPrefix(raw, "!!") {
		return dirs.Tags["!!"] + raw[2:]
	}
	if strings.HasPrefix(raw, "!") {
		return dirs.Tags["!"] + raw[1:]
	}
	return raw
}

// checkAliasLimits implements the count * intrinsic-alias-subtree-size
// guard: for every anchor that was actually referenced, the product of
// its reference count and its own alias-subtree size must not exceed
// MaxAliasCount, catching exponential-blowup ("billion laughs") inputs
// without needing to ever materialize the expansion.
func (c *Composer) checkAliasLimits() {
	if c.opts.MaxAliasCount < 0 {
		return
	}
	visiting := map[ast.Node]bool{}
	for _, label := range c.order {
		entry := c.anchors[label]
		if entry.count == 0 {
			continue
		}
		size := aliasSubtreeSize(entry.node, c.anchors, visiting)
		if size == 0 && c.opts.MaxAliasCount == 0 {
			continue
		}
		if size < 1 {
			size = 1
		}
		if entry.count*size > c.opts.MaxAliasCount {
			c.errorf(errcode.ExcessAliasCount, entry.node.Common().Mark,
				"anchor %q expands past the maximum alias count (%d)", label, c.opts.MaxAliasCount)
		}
	}
}

func aliasSubtreeSize(n ast.Node, anchors map[string]*anchorEntry, visiting map[ast.Node]bool) int {
	switch v := n.(type) {
	case *ast.Alias:
		entry, ok := anchors[v.Source]
		if !ok {
			return 1
		}
		if visiting[entry.node] {
			return 1
		}
		visiting[entry.node] = true
		size := aliasSubtreeSize(entry.node, anchors, visiting)
		delete(visiting, entry.node)
		return 1 + size
	case *ast.Mapping:
		total := 0
		for _, p := range v.Items {
			total += aliasSubtreeSize(p.Key, anchors, visiting)
			total += aliasSubtreeSize(p.Value, anchors, visiting)
		}
		return total
	case *ast.Sequence:
		total := 0
		for _, item := range v.Items {
			total += aliasSubtreeSize(item, anchors, visiting)
		}
		return total
	default:
		return 0
	}
}
