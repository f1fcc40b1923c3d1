package render

import (
	"strconv"
	"strings"

	"github.com/tsawler/tagdiff/align"
	"github.com/tsawler/tagdiff/atom"
)

// WhitespaceMode selects how whitespace runs inside change wrappers are
// made visible.
type WhitespaceMode int

const (
	// WhitespaceMarker substitutes a no-break space for each space or tab
	// inside a change wrapper; newlines pass through so indentation
	// survives.
	WhitespaceMarker WhitespaceMode = iota

	// WhitespaceLiteral passes whitespace runs through unchanged.
	WhitespaceLiteral
)

// Options configures rendering.
type Options struct {
	// LineBreakMarker is emitted before a changed line-break element so an
	// empty-line-only change stays perceivable. Empty disables the marker.
	LineBreakMarker string

	// Whitespace selects the visibility strategy for whitespace runs
	// inside change wrappers.
	Whitespace WhitespaceMode

	// WrapperElement and WrapperClass describe the single root container
	// the output is wrapped in.
	WrapperElement string
	WrapperClass   string

	// ChangeIDs assigns each change a sequential identifier, emitted as
	// ChangeIDAttr on its wrappers. A replace's <del> and <ins> share one
	// identifier.
	ChangeIDs    bool
	ChangeIDAttr string
}

// DefaultOptions returns the default rendering options.
func DefaultOptions() Options {
	return Options{
		LineBreakMarker: "¶",
		Whitespace:      WhitespaceMarker,
		WrapperElement:  "div",
		WrapperClass:    "diff",
		ChangeIDAttr:    "data-diff-id",
	}
}

// ReplacedClass is the class added to the surviving element of a visual
// replace.
const ReplacedClass = "tagdiff_replaced"

// Render serializes the edit script into the final merged HTML fragment.
func Render(spans []align.Span, old, new []atom.Atom, opts Options) string {
	r := renderer{opts: opts}
	for _, s := range spans {
		switch s.Op {
		case align.Equal:
			r.plain(rawConcat(new[s.NewStart:s.NewEnd]))
		case align.Delete:
			id := r.nextID()
			r.change("del", id, s.Isolated, old[s.OldStart:s.OldEnd])
		case align.Insert:
			id := r.nextID()
			r.change("ins", id, s.Isolated, new[s.NewStart:s.NewEnd])
		case align.Replace:
			id := r.nextID()
			// Delete-before-insert is a hard invariant.
			r.change("del", id, s.Isolated, old[s.OldStart:s.OldEnd])
			r.change("ins", id, s.Isolated, new[s.NewStart:s.NewEnd])
		case align.VisualReplace:
			r.plain(r.visualReplace(old[s.OldStart:s.OldEnd], new[s.NewStart:s.NewEnd]))
		}
	}
	return r.finish()
}

// chunk is a run of output either passing through plainly or wrapped in a
// single change element.
type chunk struct {
	wrap     string // "", "del" or "ins"
	id       string
	isolated bool
	content  strings.Builder
}

type renderer struct {
	opts   Options
	chunks []*chunk
	ids    int
}

func (r *renderer) nextID() string {
	if !r.opts.ChangeIDs {
		return ""
	}
	r.ids++
	return strconv.Itoa(r.ids)
}

func (r *renderer) plain(s string) {
	if s == "" {
		return
	}
	if n := len(r.chunks); n > 0 && r.chunks[n-1].wrap == "" {
		r.chunks[n-1].content.WriteString(s)
		return
	}
	c := &chunk{}
	c.content.WriteString(s)
	r.chunks = append(r.chunks, c)
}

// change serializes a change span, applying the whitespace and line-break
// visibility strategies. Tag atoms unbalanced within the span never go
// inside the wrapper, where they would let its nesting cross the
// surrounding structure. On the insert side they are emitted plainly
// instead: the new-side atoms across all spans form the complete new
// document, so emitting every one of them, wrapped or not, keeps the output
// balanced. Deleted unbalanced tags are dropped, since the new-side stream
// already carries the structure around them.
func (r *renderer) change(wrap, id string, isolated bool, seq []atom.Atom) {
	skip := unbalancedTags(seq)
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			r.wrapped(wrap, id, isolated, b.String())
			b.Reset()
		}
	}
	for i, a := range seq {
		switch a.Kind {
		case atom.Text, atom.Comment:
			b.WriteString(a.Raw)
		case atom.Whitespace:
			if r.opts.Whitespace == WhitespaceMarker {
				b.WriteString(visibleWhitespace(a.Text))
			} else {
				b.WriteString(a.Raw)
			}
		case atom.LineBreak:
			b.WriteString(atom.EscapeText(r.opts.LineBreakMarker))
			b.WriteString(a.Raw)
		case atom.TagOpen, atom.TagClose:
			if !skip[i] {
				b.WriteString(a.Raw)
			} else if wrap == "ins" {
				flush()
				r.plain(a.Raw)
			}
		case atom.VoidTag:
			b.WriteString(a.Raw)
		}
	}
	flush()
}

// wrapped appends wrapper content as a chunk. Adjacent wrappers of the same
// kind and identifier merge into one, except around isolated void-tag spans
// which stay separate on purpose.
func (r *renderer) wrapped(wrap, id string, isolated bool, content string) {
	if n := len(r.chunks); n > 0 && !isolated {
		last := r.chunks[n-1]
		if last.wrap == wrap && last.id == id && !last.isolated {
			last.content.WriteString(content)
			return
		}
	}
	c := &chunk{wrap: wrap, id: id, isolated: isolated}
	c.content.WriteString(content)
	r.chunks = append(r.chunks, c)
}

// unbalancedTags marks the tag-open and tag-close atoms that have no match
// within the span.
func unbalancedTags(seq []atom.Atom) map[int]bool {
	skip := make(map[int]bool)
	type open struct {
		idx  int
		name string
	}
	var stack []open
	for i, a := range seq {
		switch a.Kind {
		case atom.TagOpen:
			stack = append(stack, open{i, a.TagName})
		case atom.TagClose:
			if n := len(stack); n > 0 && stack[n-1].name == a.TagName {
				stack = stack[:n-1]
			} else {
				skip[i] = true
			}
		}
	}
	for _, o := range stack {
		skip[o.idx] = true
	}
	return skip
}

// visibleWhitespace substitutes a no-break space for each space or tab so a
// whitespace-only change is visibly non-empty, while keeping newlines (and
// the indentation they carry) literal.
func visibleWhitespace(run string) string {
	var b strings.Builder
	for _, ch := range run {
		if ch == '\n' || ch == '\r' {
			b.WriteRune(ch)
		} else {
			b.WriteRune('\u00a0')
		}
	}
	return b.String()
}

// visualReplace emits the new content once, annotating its first element
// with the replaced class and data-old-* attributes describing the old
// wrapper, instead of duplicating identical text in a <del>/<ins> pair.
func (r *renderer) visualReplace(oldAtoms, newAtoms []atom.Atom) string {
	target := -1
	for i, a := range newAtoms {
		if a.Kind == atom.TagOpen || a.Kind == atom.VoidTag {
			target = i
			break
		}
	}

	var oldElem *atom.Atom
	for i, a := range oldAtoms {
		if a.Kind == atom.TagOpen || a.Kind == atom.VoidTag {
			oldElem = &oldAtoms[i]
			break
		}
	}

	var b strings.Builder
	for i, a := range newAtoms {
		if i == target {
			b.WriteString(annotatedStartTag(a, oldElem))
		} else {
			b.WriteString(a.Raw)
		}
	}
	return b.String()
}

// annotatedStartTag rebuilds the start tag of a with tagdiff_replaced merged
// into its class and data-old-* attributes capturing how the old element
// differed.
func annotatedStartTag(a atom.Atom, oldElem *atom.Atom) string {
	attrs := make([]atom.Attr, 0, len(a.Attrs)+3)
	hadClass := false
	for _, at := range a.Attrs {
		if at.Name == "class" {
			hadClass = true
			at.Value = strings.TrimSpace(at.Value + " " + ReplacedClass)
		}
		attrs = append(attrs, at)
	}
	if !hadClass {
		attrs = append(attrs, atom.Attr{Name: "class", Value: ReplacedClass})
	}

	if oldElem != nil {
		if oldElem.TagName != a.TagName {
			attrs = append(attrs, atom.Attr{Name: "data-old-tag", Value: oldElem.TagName})
		}
		for _, at := range oldElem.Attrs {
			if v, ok := a.Attr(at.Name); ok && v == at.Value {
				continue
			}
			attrs = append(attrs, atom.Attr{Name: "data-old-" + at.Name, Value: at.Value})
		}
	}
	return atom.StartTag(a.TagName, attrs)
}

func rawConcat(atoms []atom.Atom) string {
	var b strings.Builder
	for _, a := range atoms {
		b.WriteString(a.Raw)
	}
	return b.String()
}

// finish merges and serializes the accumulated chunks inside the root
// container element.
func (r *renderer) finish() string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(r.opts.WrapperElement)
	if r.opts.WrapperClass != "" {
		b.WriteString(` class="`)
		b.WriteString(atom.EscapeAttr(r.opts.WrapperClass))
		b.WriteByte('"')
	}
	b.WriteByte('>')

	for _, c := range r.chunks {
		if c.wrap == "" {
			b.WriteString(c.content.String())
			continue
		}
		b.WriteByte('<')
		b.WriteString(c.wrap)
		if c.id != "" {
			b.WriteByte(' ')
			b.WriteString(r.opts.ChangeIDAttr)
			b.WriteString(`="`)
			b.WriteString(atom.EscapeAttr(c.id))
			b.WriteByte('"')
		}
		b.WriteByte('>')
		b.WriteString(c.content.String())
		b.WriteString("</")
		b.WriteString(c.wrap)
		b.WriteByte('>')
	}

	b.WriteString("</")
	b.WriteString(r.opts.WrapperElement)
	b.WriteByte('>')
	return b.String()
}
