package atom

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
	htmlatom "golang.org/x/net/html/atom"
)

// Options configures atomization.
type Options struct {
	// VoidTags lists element names classified as void (no close pair).
	VoidTags []string

	// LineBreakTags lists element names atomized as line breaks rather
	// than ordinary void tags.
	LineBreakTags []string
}

// DefaultOptions returns the default atomization options: the HTML void
// element set, with <br> treated as a line break.
func DefaultOptions() Options {
	return Options{
		VoidTags: []string{
			"area", "base", "br", "col", "embed", "hr", "img", "input",
			"link", "meta", "param", "source", "track", "wbr",
		},
		LineBreakTags: []string{"br"},
	}
}

// Atomize converts an HTML fragment into an ordered sequence of atoms.
// The fragment is parsed leniently; malformed markup is repaired by the
// parser before atomization. Atomize fails only if the parser fails, in
// which case it returns a *ParseError.
func Atomize(fragment string, opts Options) ([]Atom, error) {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), contextNode(fragment))
	if err != nil {
		return nil, &ParseError{Fragment: fragment, Err: err}
	}

	w := walker{
		voidTags:      toSet(opts.VoidTags),
		lineBreakTags: toSet(opts.LineBreakTags),
	}
	for _, n := range nodes {
		w.walk(n, StyleSignature{})
	}
	return w.atoms, nil
}

// contextNode picks the parsing context for a fragment. Table elements are
// only legal inside their parents; parsed in a <div> context the HTML5
// algorithm would silently drop a leading <td> or <tr> tag, so fragments
// starting with one get the matching enclosing context instead.
func contextNode(fragment string) *html.Node {
	name := firstTagName(fragment)
	var ctx string
	switch name {
	case "td", "th":
		ctx = "tr"
	case "tr":
		ctx = "tbody"
	case "tbody", "thead", "tfoot", "caption", "colgroup", "col":
		ctx = "table"
	default:
		ctx = "div"
	}
	return &html.Node{Type: html.ElementNode, Data: ctx, DataAtom: htmlatom.Lookup([]byte(ctx))}
}

// firstTagName returns the lowercase name of the first start tag in the
// fragment, or "" if the fragment does not begin with markup.
func firstTagName(fragment string) string {
	s := strings.TrimSpace(fragment)
	if len(s) < 2 || s[0] != '<' {
		return ""
	}
	i := 1
	for i < len(s) {
		ch := s[i]
		if ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9' {
			i++
			continue
		}
		break
	}
	return strings.ToLower(s[1:i])
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = true
	}
	return set
}

type walker struct {
	voidTags      map[string]bool
	lineBreakTags map[string]bool
	atoms         []Atom
}

func (w *walker) emit(a Atom) {
	a.Pos = len(w.atoms)
	w.atoms = append(w.atoms, a)
}

// walk emits atoms for n and its subtree in document order. style is the
// inline formatting accumulated from ancestors of n.
func (w *walker) walk(n *html.Node, style StyleSignature) {
	switch n.Type {
	case html.TextNode:
		w.emitTextRuns(n.Data, style)

	case html.ElementNode:
		name := strings.ToLower(n.Data)
		attrs := convertAttrs(n.Attr)

		if w.lineBreakTags[name] {
			w.emit(Atom{Kind: LineBreak, Raw: StartTag(name, attrs), TagName: name, Attrs: attrs})
			return
		}
		if w.voidTags[name] {
			w.emit(Atom{Kind: VoidTag, Raw: StartTag(name, attrs), TagName: name, Attrs: attrs})
			return
		}

		w.emit(Atom{Kind: TagOpen, Raw: StartTag(name, attrs), TagName: name, Attrs: attrs})
		child := applyTag(style, name, attrs)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			w.walk(c, child)
		}
		w.emit(Atom{Kind: TagClose, Raw: "</" + name + ">", TagName: name})

	case html.CommentNode:
		w.emit(Atom{Kind: Comment, Raw: "<!--" + n.Data + "-->", Text: n.Data})

	default:
		// Doctypes carry no comparable content.
	}
}

// emitTextRuns splits decoded text into alternating whitespace and text
// runs. Whitespace runs record their exact character composition so that
// leading, trailing, and repeated spaces stay distinguishable in the diff.
func (w *walker) emitTextRuns(text string, style StyleSignature) {
	runes := []rune(text)
	for i := 0; i < len(runes); {
		ws := unicode.IsSpace(runes[i])
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) == ws {
			j++
		}
		run := string(runes[i:j])
		if ws {
			w.emit(Atom{Kind: Whitespace, Raw: EscapeText(run), Text: run})
		} else {
			w.emit(Atom{Kind: Text, Raw: EscapeText(run), Text: run, Style: style})
		}
		i = j
	}
}

func convertAttrs(attrs []html.Attribute) []Attr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]Attr, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, Attr{Name: strings.ToLower(a.Key), Value: a.Val})
	}
	return out
}

// StartTag serializes an opening (or void) tag in canonical form: lowercase
// name, attributes in source order, double-quoted values.
func StartTag(name string, attrs []Attr) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(name)
	for _, a := range attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(EscapeAttr(a.Value))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	return b.String()
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", `"`, "&quot;", "<", "&lt;")
)

// EscapeText escapes decoded text for use in HTML content.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// EscapeAttr escapes a value for use inside a double-quoted attribute.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
