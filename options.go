package tagdiff

import (
	"strings"

	"github.com/tsawler/tagdiff/align"
	"github.com/tsawler/tagdiff/atom"
	"github.com/tsawler/tagdiff/render"
)

// Config holds the diff policy: which tags are void, which attributes and
// void elements are tracked, which tag names are style-equivalent, and how
// changes are made visible. A Config is read-only once a Differ carries it.
type Config struct {
	// Atomization
	voidTags      []string
	lineBreakTags []string

	// Matching
	trackedAttrs    map[string][]string
	trackedVoidTags []string
	styleEquivalent [][]string
	caseFold        bool

	// Span policy
	tableAwareCollapse bool
	bulkThreshold      float64

	// Rendering
	lineBreakMarker   string
	whitespaceLiteral bool
	changeIDs         bool
	changeIDAttr      string
	wrapperElement    string
	wrapperClass      string
}

// defaultConfig returns the default diff policy.
func defaultConfig() Config {
	aopts := atom.DefaultOptions()
	lopts := align.DefaultOptions()
	ropts := render.DefaultOptions()
	return Config{
		voidTags:           aopts.VoidTags,
		lineBreakTags:      aopts.LineBreakTags,
		trackedAttrs:       lopts.TrackedAttrs,
		trackedVoidTags:    lopts.TrackedVoidTags,
		styleEquivalent:    lopts.StyleEquivalent,
		tableAwareCollapse: lopts.TableAwareCollapse,
		bulkThreshold:      lopts.BulkThreshold,
		lineBreakMarker:    ropts.LineBreakMarker,
		changeIDAttr:       ropts.ChangeIDAttr,
		wrapperElement:     ropts.WrapperElement,
		wrapperClass:       ropts.WrapperClass,
	}
}

// clone creates a deep copy of the Config.
func (c Config) clone() Config {
	out := c
	out.voidTags = append([]string(nil), c.voidTags...)
	out.lineBreakTags = append([]string(nil), c.lineBreakTags...)
	out.trackedVoidTags = append([]string(nil), c.trackedVoidTags...)

	out.trackedAttrs = make(map[string][]string, len(c.trackedAttrs))
	for tag, names := range c.trackedAttrs {
		out.trackedAttrs[tag] = append([]string(nil), names...)
	}
	out.styleEquivalent = make([][]string, len(c.styleEquivalent))
	for i, group := range c.styleEquivalent {
		out.styleEquivalent[i] = append([]string(nil), group...)
	}
	return out
}

// atomOptions maps the Config onto atomization options.
func (c Config) atomOptions() atom.Options {
	return atom.Options{
		VoidTags:      c.voidTags,
		LineBreakTags: c.lineBreakTags,
	}
}

// alignOptions maps the Config onto alignment options.
func (c Config) alignOptions() align.Options {
	return align.Options{
		TrackedAttrs:       c.trackedAttrs,
		TrackedVoidTags:    c.trackedVoidTags,
		StyleEquivalent:    c.styleEquivalent,
		CaseFold:           c.caseFold,
		TableAwareCollapse: c.tableAwareCollapse,
		BulkThreshold:      c.bulkThreshold,
	}
}

// renderOptions maps the Config onto rendering options.
func (c Config) renderOptions() render.Options {
	mode := render.WhitespaceMarker
	if c.whitespaceLiteral {
		mode = render.WhitespaceLiteral
	}
	return render.Options{
		LineBreakMarker: c.lineBreakMarker,
		Whitespace:      mode,
		WrapperElement:  c.wrapperElement,
		WrapperClass:    c.wrapperClass,
		ChangeIDs:       c.changeIDs,
		ChangeIDAttr:    c.changeIDAttr,
	}
}

// validate rejects a conflicting or malformed configuration before any
// atomization work begins.
func (c Config) validate() error {
	if !isName(c.wrapperElement) {
		return &ConfigurationError{Option: "wrapper element", Reason: "must be a valid element name"}
	}
	if c.bulkThreshold < 0 || c.bulkThreshold >= 1 {
		return &ConfigurationError{Option: "bulk replace threshold", Reason: "must be in [0, 1)"}
	}
	if c.changeIDs {
		// A shared HTML id on a paired del/ins would be invalid HTML, so
		// identifiers must live in a data-* attribute.
		if !strings.HasPrefix(c.changeIDAttr, "data-") || len(c.changeIDAttr) == len("data-") {
			return &ConfigurationError{Option: "change id attribute", Reason: "must be a data-* attribute"}
		}
	}
	for _, set := range [][]string{c.voidTags, c.lineBreakTags, c.trackedVoidTags} {
		for _, name := range set {
			if !isName(name) {
				return &ConfigurationError{Option: "tag set", Reason: "empty or malformed tag name"}
			}
		}
	}
	for _, group := range c.styleEquivalent {
		if len(group) < 2 {
			return &ConfigurationError{Option: "style equivalent tags", Reason: "each group needs at least two tag names"}
		}
		for _, name := range group {
			if !isName(name) {
				return &ConfigurationError{Option: "style equivalent tags", Reason: "empty or malformed tag name"}
			}
		}
	}
	return nil
}

func isName(s string) bool {
	if s == "" {
		return false
	}
	for i, ch := range s {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z':
		case i > 0 && (ch >= '0' && ch <= '9' || ch == '-'):
		default:
			return false
		}
	}
	return true
}
