package align

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/tagdiff/atom"
)

// Options configures key computation and span post-processing.
type Options struct {
	// TrackedAttrs maps a tag name to the attributes that participate in
	// its comparison key. The "*" entry applies to every tag.
	TrackedAttrs map[string][]string

	// StyleEquivalent lists groups of tag names treated as the same
	// category during matching (e.g. {"b", "strong"}).
	StyleEquivalent [][]string

	// TrackedVoidTags lists void tags whose insertion or deletion is kept
	// as its own span so it wraps individually.
	TrackedVoidTags []string

	// CaseFold folds text case before comparison.
	CaseFold bool

	// TableAwareCollapse enables collapsing same-text replaces inside
	// table cells into VisualReplace spans.
	TableAwareCollapse bool

	// BulkThreshold is the minimum match ratio below which the whole edit
	// script collapses into one Replace. Zero disables the collapse.
	BulkThreshold float64
}

// DefaultOptions returns alignment options matching the default diff policy.
func DefaultOptions() Options {
	return Options{
		TrackedAttrs: map[string][]string{
			"*": {"style", "class", "src", "href", "ref", "data-ref", "id"},
		},
		StyleEquivalent:    [][]string{{"b", "strong"}, {"i", "em"}},
		TrackedVoidTags:    []string{"img"},
		TableAwareCollapse: true,
		BulkThreshold:      0.3,
	}
}

var foldCaser = cases.Fold()

// Keys computes the comparison key for every atom in the sequence. Keys are
// used only for equality testing during alignment; they are never rendered.
func Keys(atoms []atom.Atom, opts Options) []string {
	categories := styleCategories(opts.StyleEquivalent)
	keys := make([]string, len(atoms))
	for i, a := range atoms {
		keys[i] = keyOf(a, categories, opts)
	}
	return keys
}

func keyOf(a atom.Atom, categories map[string]string, opts Options) string {
	switch a.Kind {
	case atom.Text:
		text := norm.NFC.String(a.Text)
		if opts.CaseFold {
			text = foldCaser.String(text)
		}
		return "t:" + text + "\x00" + a.Style.Key()
	case atom.Whitespace:
		// Literal, uncollapsed: whitespace visibility is a design goal.
		return "w:" + a.Text
	case atom.LineBreak:
		return "br"
	case atom.Comment:
		return "!:" + a.Text
	case atom.TagOpen:
		return "o:" + category(a.TagName, categories) + "\x00" + attrSignature(a, opts)
	case atom.TagClose:
		return "c:" + category(a.TagName, categories)
	case atom.VoidTag:
		return "v:" + category(a.TagName, categories) + "\x00" + attrSignature(a, opts)
	}
	return "?:" + a.Raw
}

// styleCategories flattens equivalence groups into a tag -> category map.
// The category name is the lexicographically smallest member of the group,
// so grouping is symmetric regardless of declaration order.
func styleCategories(groups [][]string) map[string]string {
	categories := make(map[string]string)
	for _, group := range groups {
		if len(group) == 0 {
			continue
		}
		rep := group[0]
		for _, name := range group[1:] {
			if name < rep {
				rep = name
			}
		}
		for _, name := range group {
			categories[strings.ToLower(name)] = strings.ToLower(rep)
		}
	}
	return categories
}

func category(tag string, categories map[string]string) string {
	if rep, ok := categories[tag]; ok {
		return rep
	}
	return tag
}

// attrSignature produces a stable signature over the attributes tracked for
// the atom's tag. Untracked attributes do not affect matching, so purely
// cosmetic attribute drift never forces a text-level diff.
func attrSignature(a atom.Atom, opts Options) string {
	tracked := trackedFor(a.TagName, opts)
	if len(tracked) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(tracked))
	for _, name := range tracked {
		if v, ok := a.Attr(name); ok {
			pairs = append(pairs, name+"="+v)
		}
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "\x00")
}

func trackedFor(tag string, opts Options) []string {
	names := append([]string(nil), opts.TrackedAttrs["*"]...)
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	for _, n := range opts.TrackedAttrs[tag] {
		if !seen[n] {
			names = append(names, n)
		}
	}
	return names
}
