package tagdiff

import (
	"fmt"

	"github.com/tsawler/tagdiff/align"
	"github.com/tsawler/tagdiff/atom"
	"github.com/tsawler/tagdiff/render"
)

// Differ provides a fluent interface for diffing two HTML fragments.
// Each configuration method returns a new Differ instance, making it safe
// for concurrent use and allowing method chaining.
type Differ struct {
	old, new string
	cfg      Config
}

// Compare prepares a diff of two HTML fragments for fluent configuration.
//
// Example:
//
//	html, err := tagdiff.Compare(oldFragment, newFragment).
//	    CaseFold().
//	    ChangeIDs().
//	    Render()
func Compare(old, new string) *Differ {
	return &Differ{old: old, new: new, cfg: defaultConfig()}
}

// Render diffs two HTML fragments with the default policy and returns the
// merged fragment.
//
// Example:
//
//	html, err := tagdiff.Render("Foo <b>bar</b> baz", "Foo <i>bar</i> baz")
func Render(old, new string) (string, error) {
	return Compare(old, new).Render()
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	html := tagdiff.Must(tagdiff.Render(oldFragment, newFragment))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// clone creates a copy of the Differ with a deep copy of its Config.
// This ensures immutability - each chain method returns a new instance.
func (d *Differ) clone() *Differ {
	return &Differ{old: d.old, new: d.new, cfg: d.cfg.clone()}
}

// VoidTags replaces the set of element names atomized as void elements.
func (d *Differ) VoidTags(names ...string) *Differ {
	nd := d.clone()
	nd.cfg.voidTags = append([]string(nil), names...)
	return nd
}

// LineBreakTags replaces the set of element names treated as line breaks.
func (d *Differ) LineBreakTags(names ...string) *Differ {
	nd := d.clone()
	nd.cfg.lineBreakTags = append([]string(nil), names...)
	return nd
}

// TrackAttributes sets the attributes participating in the comparison key
// of the given tag. Use tag "*" for attributes tracked on every tag.
func (d *Differ) TrackAttributes(tag string, names ...string) *Differ {
	nd := d.clone()
	nd.cfg.trackedAttrs[tag] = append([]string(nil), names...)
	return nd
}

// TrackedVoidTags replaces the set of void tags whose insertion or deletion
// is wrapped individually (default: img).
func (d *Differ) TrackedVoidTags(names ...string) *Differ {
	nd := d.clone()
	nd.cfg.trackedVoidTags = append([]string(nil), names...)
	return nd
}

// StyleEquivalent replaces the groups of tag names considered
// interchangeable during matching (default: {b, strong} and {i, em}).
func (d *Differ) StyleEquivalent(groups ...[]string) *Differ {
	nd := d.clone()
	nd.cfg.styleEquivalent = make([][]string, len(groups))
	for i, group := range groups {
		nd.cfg.styleEquivalent[i] = append([]string(nil), group...)
	}
	return nd
}

// CaseFold folds text case before comparison, so case-only rewrites do not
// show up as changes.
func (d *Differ) CaseFold() *Differ {
	nd := d.clone()
	nd.cfg.caseFold = true
	return nd
}

// TableAwareCollapse enables or disables collapsing same-text replaces
// inside table cells into a single annotated occurrence (default on).
func (d *Differ) TableAwareCollapse(enabled bool) *Differ {
	nd := d.clone()
	nd.cfg.tableAwareCollapse = enabled
	return nd
}

// BulkReplaceThreshold sets the minimum match ratio below which the whole
// diff renders as one delete plus one insert instead of a shredded
// interleaving. Zero disables the collapse. The default is 0.3.
func (d *Differ) BulkReplaceThreshold(ratio float64) *Differ {
	nd := d.clone()
	nd.cfg.bulkThreshold = ratio
	return nd
}

// LineBreakMarker sets the glyph rendered next to a changed <br> (default
// "¶"). An empty marker disables it.
func (d *Differ) LineBreakMarker(marker string) *Differ {
	nd := d.clone()
	nd.cfg.lineBreakMarker = marker
	return nd
}

// WhitespaceLiteral renders whitespace inside change wrappers literally
// instead of substituting visible no-break spaces.
func (d *Differ) WhitespaceLiteral() *Differ {
	nd := d.clone()
	nd.cfg.whitespaceLiteral = true
	return nd
}

// ChangeIDs assigns each change a sequential identifier emitted as a
// data-diff-id attribute on its wrappers; a replace's <del> and <ins> share
// one identifier, which lets a frontend apply or reject changes pairwise.
func (d *Differ) ChangeIDs() *Differ {
	nd := d.clone()
	nd.cfg.changeIDs = true
	return nd
}

// ChangeIDAttribute sets the attribute used for change identifiers and
// enables them. The attribute must be a data-* attribute: a paired del/ins
// sharing a real HTML id would be invalid markup.
func (d *Differ) ChangeIDAttribute(attr string) *Differ {
	nd := d.clone()
	nd.cfg.changeIDs = true
	nd.cfg.changeIDAttr = attr
	return nd
}

// Wrapper sets the root container element and class of the output
// (default: div, diff). An empty class omits the attribute.
func (d *Differ) Wrapper(element, class string) *Differ {
	nd := d.clone()
	nd.cfg.wrapperElement = element
	nd.cfg.wrapperClass = class
	return nd
}

// Render runs the diff and returns the merged HTML fragment. The
// configuration is validated before any work begins; a failure in any stage
// aborts the diff with an error identifying the stage.
func (d *Differ) Render() (string, error) {
	if err := d.cfg.validate(); err != nil {
		return "", err
	}

	oldAtoms, err := atom.Atomize(d.old, d.cfg.atomOptions())
	if err != nil {
		return "", fmt.Errorf("tagdiff: atomize old fragment: %w", err)
	}
	newAtoms, err := atom.Atomize(d.new, d.cfg.atomOptions())
	if err != nil {
		return "", fmt.Errorf("tagdiff: atomize new fragment: %w", err)
	}

	spans, err := align.Align(oldAtoms, newAtoms, d.cfg.alignOptions())
	if err != nil {
		return "", fmt.Errorf("tagdiff: align fragments: %w", err)
	}

	return render.Render(spans, oldAtoms, newAtoms, d.cfg.renderOptions()), nil
}
