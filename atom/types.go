package atom

import (
	"fmt"
	"strings"
)

// Kind classifies an atom.
type Kind int

const (
	// TagOpen is the opening boundary of an ordinary element.
	TagOpen Kind = iota

	// TagClose is the closing boundary of an ordinary element.
	TagClose

	// VoidTag is a complete void element (img, hr, ...) with no close pair.
	VoidTag

	// Text is a run of non-whitespace text.
	Text

	// Whitespace is a run of whitespace characters, preserved exactly.
	Whitespace

	// LineBreak is a line-break element (<br> by default), kept distinct
	// from ordinary void tags because breaks need visibility handling
	// when they change.
	LineBreak

	// Comment is an HTML comment, carried through so reconstruction stays
	// lossless.
	Comment
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case TagOpen:
		return "TagOpen"
	case TagClose:
		return "TagClose"
	case VoidTag:
		return "VoidTag"
	case Text:
		return "Text"
	case Whitespace:
		return "Whitespace"
	case LineBreak:
		return "LineBreak"
	case Comment:
		return "Comment"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Attr is a single attribute as parsed, in source order.
type Attr struct {
	Name  string
	Value string
}

// StyleSignature is the accumulated inline formatting state inherited by a
// text run from its ancestor tags.
type StyleSignature struct {
	Bold      bool
	Italic    bool
	Underline bool
	FontSize  string
	Color     string
}

// IsZero reports whether no formatting is active.
func (s StyleSignature) IsZero() bool {
	return s == StyleSignature{}
}

// Key returns a canonical string form of the signature, suitable for
// embedding in comparison keys.
func (s StyleSignature) Key() string {
	if s.IsZero() {
		return ""
	}
	var b strings.Builder
	if s.Bold {
		b.WriteString("b")
	}
	if s.Italic {
		b.WriteString("i")
	}
	if s.Underline {
		b.WriteString("u")
	}
	if s.FontSize != "" {
		b.WriteString(";fs=")
		b.WriteString(s.FontSize)
	}
	if s.Color != "" {
		b.WriteString(";c=")
		b.WriteString(s.Color)
	}
	return b.String()
}

// Atom is the smallest comparison and reconstruction unit extracted from an
// HTML fragment. Atoms are immutable once produced.
type Atom struct {
	// Kind classifies the atom.
	Kind Kind

	// Raw is the exact substring needed to reconstruct output.
	Raw string

	// TagName is the lowercase element name (tag kinds only).
	TagName string

	// Attrs holds the element attributes in source order (tag kinds only).
	Attrs []Attr

	// Text is the decoded content (Text, Whitespace, and Comment kinds).
	Text string

	// Style is the inline formatting active at this atom (Text kind only).
	Style StyleSignature

	// Pos is the index in the owning sequence.
	Pos int
}

// IsTag reports whether the atom is a tag boundary or void element.
func (a Atom) IsTag() bool {
	return a.Kind == TagOpen || a.Kind == TagClose || a.Kind == VoidTag || a.Kind == LineBreak
}

// Attr returns the value of the named attribute and whether it is present.
func (a Atom) Attr(name string) (string, bool) {
	for _, at := range a.Attrs {
		if at.Name == name {
			return at.Value, true
		}
	}
	return "", false
}

// Reconstruct concatenates the raw content of atoms in order. For a full
// sequence produced by Atomize this reproduces the parsed fragment exactly.
func Reconstruct(atoms []Atom) string {
	var b strings.Builder
	for _, a := range atoms {
		b.WriteString(a.Raw)
	}
	return b.String()
}

// ParseError reports that the HTML parser could not produce a token stream
// for a fragment.
type ParseError struct {
	Fragment string
	Err      error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("atom: parse fragment: %v", e.Err)
}

// Unwrap returns the underlying parser error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
