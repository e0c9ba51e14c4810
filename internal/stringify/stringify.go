package stringify

import (
	"sort"
	"strings"

	"github.com/fearthecowboy/yaml/internal/ast"
	"github.com/fearthecowboy/yaml/internal/errcode"
)

type stringifier struct {
	opts Options
	plan *plan
}

// Stringify renders doc's content tree to YAML source text. The result
// always ends with exactly one trailing newline; per spec.md section 8
// property 2, the caller-facing "undefined root" sentinel is handled one
// layer up, in the public facade, since a nil native Go value and an
// explicit YAML null are not the same thing at this layer.
func Stringify(doc *ast.Document, opts Options) (string, error) {
	opts = opts.WithDefaults()
	s := &stringifier{opts: opts}

	var root ast.Node = doc.Contents
	if root == nil {
		root = &ast.Scalar{Value: nil}
	}
	s.plan = planAnchors(root, opts.AnchorPrefix)

	if opts.VerifyAliasOrder {
		if err := s.verifyAliasOrder(root, map[string]bool{}); err != nil {
			return "", err
		}
	}

	var b strings.Builder
	if opts.DirectivesEndMarker || doc.DirectivesEndMarker {
		b.WriteString("---\n")
	}

	text, err := s.emitNode(root, scalarCtx{topLevel: true}, 0)
	if err != nil {
		return "", err
	}

	// The promotion must key off the scalar's own unquoted source text,
	// not the already-rendered (and by then necessarily quoted, since
	// canBePlain already rejects "---"/"...") output: by the time text
	// is computed above, a doc-marker value has already been quoted and
	// no longer looks like one.
	if sc, ok := root.(*ast.Scalar); ok && sc.Style == ast.StylePlain {
		if raw, okRaw := s.renderValue(sc); okRaw && isTopLevelDocMarker(raw) {
			text, err = s.blockScalarFor(raw, scalarCtx{topLevel: true})
			if err != nil {
				return "", err
			}
		}
	}

	b.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		b.WriteString("\n")
	}
	return b.String(), nil
}

// isTopLevelDocMarker reports whether a stringified top-level scalar
// would itself be misread as a document marker ("---"/"...") on reload,
// per spec.md section 4.5's "top-level document-marker strings" rule.
func isTopLevelDocMarker(text string) bool {
	return text == "---" || text == "..." || strings.HasPrefix(text, "--- ") || strings.HasPrefix(text, "... ")
}

func (s *stringifier) blockScalarFor(plain string, ctx scalarCtx) (string, error) {
	return s.blockScalar(plain, ctx, false), nil
}

// verifyAliasOrder walks root in document order, failing fast the first
// time an Alias references an anchor that has not yet been introduced.
// This is the default-on behavior decided for Open Question (a) in
// spec.md section 9; DESIGN.md records the rationale.
func (s *stringifier) verifyAliasOrder(n ast.Node, seen map[string]bool) error {
	// A node's own anchor becomes visible to later aliases the instant
	// it is reached, including the root itself — not just when a parent
	// notices it on a child before recursing.
	if a := n.Common().Anchor; a != "" {
		seen[a] = true
	}
	switch v := n.(type) {
	case *ast.Alias:
		if v.Target == nil || !seen[v.Source] {
			return errcode.New(errcode.AliasResolutionError, v.Common().Mark,
				"alias %q has no preceding anchor in document order", v.Source)
		}
	case *ast.Mapping:
		for _, p := range v.Items {
			if p.Key != nil {
				if a := p.Key.Common().Anchor; a != "" {
					seen[a] = true
				}
				if err := s.verifyAliasOrder(p.Key, seen); err != nil {
					return err
				}
			}
			if p.Value != nil {
				if a := p.Value.Common().Anchor; a != "" {
					seen[a] = true
				}
				if err := s.verifyAliasOrder(p.Value, seen); err != nil {
					return err
				}
			}
		}
	case *ast.Sequence:
		for _, item := range v.Items {
			if item != nil {
				if a := item.Common().Anchor; a != "" {
					seen[a] = true
				}
				if err := s.verifyAliasOrder(item, seen); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s *stringifier) emitNode(n ast.Node, ctx scalarCtx, indent int) (string, error) {
	if n == nil {
		return s.opts.NullStr, nil
	}
	switch v := n.(type) {
	case *ast.Alias:
		return "*" + v.Source, nil
	case *ast.Scalar:
		return s.emitScalar(v, ctx), nil
	case *ast.Mapping:
		return s.emitMapping(v, ctx, indent)
	case *ast.Sequence:
		return s.emitSequence(v, ctx, indent)
	}
	return "", errcode.New(errcode.Impossible, errcode.Mark{}, "unrecognized node kind in stringifier")
}

func (s *stringifier) emitScalar(sc *ast.Scalar, ctx scalarCtx) string {
	text := s.scalarText(sc, ctx)
	tag := s.desolveScalarTag(sc.Props.Tag, sc.Style, text)
	if tag != "" {
		text = tag + " " + text
	}
	if label, needsAnchor, _ := s.plan.label(sc); needsAnchor {
		return "&" + label + " " + text
	}
	return text
}

// emitMapping renders m in block or flow style depending on m.Flow,
// honoring anchor introduction, sort order, and the SimpleKeys /
// explicit-key ("? key") rules for keys that cannot render as a single
// implicit line.
func (s *stringifier) emitMapping(m *ast.Mapping, ctx scalarCtx, indent int) (string, error) {
	label, needsAnchor, alreadyEmitted := s.plan.label(m)
	if alreadyEmitted {
		return "*" + label, nil
	}
	s.plan.markEmitted(m)

	items := m.Items
	if s.opts.SortMapEntries {
		items = append([]*ast.Pair(nil), items...)
		sort.SliceStable(items, func(i, j int) bool {
			if s.opts.Sort != nil {
				return s.opts.Sort(items[i], items[j])
			}
			return sortKeyText(items[i]) < sortKeyText(items[j])
		})
	}

	tagText := desolveCollectionTag(m.Props.Tag, s.opts.Schema.MapTag)

	if len(items) == 0 {
		flat := s.withAnchorPrefix("{}", label, needsAnchor, ctx.flow)
		if tagText != "" {
			flat = tagText + " " + flat
		}
		return flat, nil
	}

	if m.Flow || ctx.flow {
		return s.emitFlowMapping(items, ctx, indent, label, needsAnchor, tagText)
	}
	return s.emitBlockMapping(items, indent, label, needsAnchor, tagText)
}

func (s *stringifier) emitBlockMapping(items []*ast.Pair, indent int, label string, needsAnchor bool, tagText string) (string, error) {
	childIndent := indent + s.opts.Indent
	var b strings.Builder
	if tagText != "" {
		b.WriteString(tagText + "\n" + strings.Repeat(" ", indent))
	}
	if needsAnchor {
		b.WriteString("&" + label + "\n" + strings.Repeat(" ", indent))
	}
	for i, pair := range items {
		if i > 0 {
			b.WriteByte('\n')
			b.WriteString(strings.Repeat(" ", indent))
		}
		line, err := s.emitPairBlock(pair, indent, childIndent)
		if err != nil {
			return "", err
		}
		b.WriteString(line)
	}
	return b.String(), nil
}

func (s *stringifier) emitPairBlock(pair *ast.Pair, indent, childIndent int) (string, error) {
	var b strings.Builder
	if pair.Props.HeadComment != "" {
		writeComment(&b, pair.Props.HeadComment, indent)
	}

	keyText, explicit, err := s.keyText(pair.Key, indent)
	if err != nil {
		return "", err
	}

	// A source key parsed with the "?" indicator is honored on
	// re-emission, but not under SimpleKeys: that mode's whole point is
	// collapsing every key to its shortest legal implicit form, and
	// keyText above already confirmed this key fits one.
	explicitForm := explicit || (pair.Explicit && !s.opts.SimpleKeys)
	if explicitForm {
		b.WriteString("? ")
		b.WriteString(indentContinuation(keyText, indent+2))
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(" ", indent))
		b.WriteString(": ")
	} else {
		b.WriteString(keyText)
		b.WriteString(":")
		// A value explicitly written as null ("key: ~") blanks to just
		// "key:", the conventional YAML rendering for a null value. A
		// value that was never written at all ("? key" with no following
		// ": value" line) is a distinct case — spec.md section 3 calls
		// it out as "explicit-key with absent value" — and still prints
		// its resolved null text rather than disappearing silently.
		if isNullScalar(pair.Value) {
			return b.String(), nil
		}
	}

	valIndent := childIndent
	if seq, ok := pair.Value.(*ast.Sequence); ok && !seq.Flow && !s.opts.IndentSeq {
		valIndent = indent
	}
	valCtx := scalarCtx{indent: valIndent}
	valText, err := s.emitNode(pair.Value, valCtx, valIndent)
	if err != nil {
		return "", err
	}
	if needsOwnLine(pair.Value, valText) {
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(" ", valIndent))
	} else if !explicitForm {
		b.WriteByte(' ')
	}
	b.WriteString(valText)
	if pair.Props.LineComment != "" {
		b.WriteString(" # ")
		b.WriteString(pair.Props.LineComment)
	}
	return b.String(), nil
}

// needsOwnLine reports whether a value's already-rendered text must
// start on the line after its key rather than directly after "key: " —
// true for non-empty block collections, but not for a collection that
// rendered as a bare alias reference (a second occurrence of a shared
// node, just "*label") since that is scalar-shaped text regardless of
// what kind of node it points to.
func needsOwnLine(n ast.Node, rendered string) bool {
	if strings.HasPrefix(rendered, "*") {
		return false
	}
	switch v := n.(type) {
	case *ast.Mapping:
		return !v.Flow && len(v.Items) > 0
	case *ast.Sequence:
		return !v.Flow && len(v.Items) > 0
	}
	return false
}

func isNullScalar(n ast.Node) bool {
	s, ok := n.(*ast.Scalar)
	return ok && s.Value == nil && s.Style == ast.StylePlain
}

// keyText renders a mapping key, reporting whether it must be emitted
// as an explicit "? key" form: simple-key length/newline/complex-value
// violations, or SimpleKeys rejecting anything that can't be a one-line
// implicit key at all.
func (s *stringifier) keyText(key ast.Node, indent int) (text string, explicit bool, err error) {
	if key == nil {
		return s.opts.NullStr, false, nil
	}
	ctx := scalarCtx{isKey: true, indent: indent}
	text, emitErr := s.emitNode(key, ctx, indent)
	if emitErr != nil {
		return "", false, emitErr
	}

	_, isScalar := key.(*ast.Scalar)
	complex := !isScalar || strings.Contains(text, "\n")
	tooLong := len(text) > 1024

	if s.opts.SimpleKeys && (complex || tooLong) {
		return "", false, errcode.New(errcode.KeyOver1024Chars, key.Common().Mark,
			"simpleKeys forbids a key that cannot render as a short implicit line")
	}
	if complex || tooLong {
		return text, true, nil
	}
	return text, false, nil
}

func indentContinuation(text string, indent int) string {
	if !strings.Contains(text, "\n") {
		return text
	}
	pad := strings.Repeat(" ", indent)
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n")
}

func (s *stringifier) emitFlowMapping(items []*ast.Pair, ctx scalarCtx, indent int, label string, needsAnchor bool, tagText string) (string, error) {
	parts := make([]string, len(items))
	childCtx := scalarCtx{flow: true, indent: indent}
	for i, pair := range items {
		keyText, _, err := s.keyText(pair.Key, indent)
		if err != nil {
			return "", err
		}
		valText := s.opts.NullStr
		if pair.Value != nil {
			valText, err = s.emitNode(pair.Value, childCtx, indent)
			if err != nil {
				return "", err
			}
		}
		parts[i] = keyText + ": " + valText
	}
	body := "{ " + strings.Join(parts, ", ") + " }"
	body = s.withAnchorPrefix(body, label, needsAnchor, true)
	if tagText != "" {
		body = tagText + " " + body
	}
	return body, nil
}

func (s *stringifier) emitSequence(seq *ast.Sequence, ctx scalarCtx, indent int) (string, error) {
	label, needsAnchor, alreadyEmitted := s.plan.label(seq)
	if alreadyEmitted {
		return "*" + label, nil
	}
	s.plan.markEmitted(seq)

	tagText := desolveCollectionTag(seq.Props.Tag, s.opts.Schema.SeqTag)

	if len(seq.Items) == 0 {
		flat := s.withAnchorPrefix("[]", label, needsAnchor, ctx.flow)
		if tagText != "" {
			flat = tagText + " " + flat
		}
		return flat, nil
	}

	if seq.Flow || ctx.flow {
		return s.emitFlowSequence(seq, indent, label, needsAnchor, tagText)
	}
	return s.emitBlockSequence(seq, indent, label, needsAnchor, tagText)
}

func (s *stringifier) emitBlockSequence(seq *ast.Sequence, indent int, label string, needsAnchor bool, tagText string) (string, error) {
	childIndent := indent
	var b strings.Builder
	if tagText != "" {
		b.WriteString(tagText + "\n" + strings.Repeat(" ", indent))
	}
	if needsAnchor {
		b.WriteString("&" + label + "\n" + strings.Repeat(" ", indent))
	}
	for i, item := range seq.Items {
		if i > 0 {
			b.WriteByte('\n')
			b.WriteString(strings.Repeat(" ", indent))
		}
		b.WriteString("- ")
		itemCtx := scalarCtx{indent: childIndent + 2}
		text, err := s.emitNode(item, itemCtx, childIndent+2)
		if err != nil {
			return "", err
		}
		if needsOwnLine(item, text) {
			b.WriteByte('\n')
			b.WriteString(strings.Repeat(" ", childIndent+2))
		}
		b.WriteString(text)
	}
	return b.String(), nil
}

func (s *stringifier) emitFlowSequence(seq *ast.Sequence, indent int, label string, needsAnchor bool, tagText string) (string, error) {
	parts := make([]string, len(seq.Items))
	childCtx := scalarCtx{flow: true, indent: indent}
	for i, item := range seq.Items {
		text, err := s.emitNode(item, childCtx, indent)
		if err != nil {
			return "", err
		}
		parts[i] = text
	}
	body := "[ " + strings.Join(parts, ", ") + " ]"
	body = s.withAnchorPrefix(body, label, needsAnchor, true)
	if tagText != "" {
		body = tagText + " " + body
	}
	return body, nil
}

func (s *stringifier) withAnchorPrefix(body, label string, needsAnchor, flow bool) string {
	if !needsAnchor {
		return body
	}
	if flow {
		return "&" + label + " " + body
	}
	return "&" + label + "\n" + body
}

func sortKeyText(p *ast.Pair) string {
	if s, ok := p.Key.(*ast.Scalar); ok {
		if str, ok := s.Value.(string); ok {
			return str
		}
	}
	return ""
}

func writeComment(b *strings.Builder, comment string, indent int) {
	pad := strings.Repeat(" ", indent)
	for _, line := range strings.Split(comment, "\n") {
		b.WriteString(pad)
		b.WriteString("# ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
}
