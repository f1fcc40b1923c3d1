package align

import (
	"strings"

	"github.com/tsawler/tagdiff/atom"
)

// collapseVisual turns Replace spans whose visible text is identical on
// both sides into VisualReplace spans, so the text is emitted once and only
// the wrapper change is annotated. Three shapes qualify:
//
//   - a replace lying entirely within a <td>/<th> cell (table-aware mode),
//   - a single void tag swapped for a same-named void tag (e.g. an <img>
//     whose src changed), and
//   - a tag-only replace carrying no text at all (attribute-only change).
func collapseVisual(spans []Span, old, new []atom.Atom, opts Options) []Span {
	var oldInCell, newInCell []bool
	if opts.TableAwareCollapse {
		oldInCell = cellContainment(old)
		newInCell = cellContainment(new)
	}

	for i, s := range spans {
		if s.Op != Replace {
			continue
		}
		oldAtoms := old[s.OldStart:s.OldEnd]
		newAtoms := new[s.NewStart:s.NewEnd]

		// The annotation needs an element on the new side to attach to.
		if firstElement(newAtoms) < 0 {
			continue
		}
		oldText := visibleText(oldAtoms)
		if oldText != visibleText(newAtoms) {
			continue
		}

		switch {
		case isVoidSwap(oldAtoms, newAtoms):
			spans[i].Op = VisualReplace
		case oldText == "" && firstElement(oldAtoms) >= 0:
			spans[i].Op = VisualReplace
		case opts.TableAwareCollapse &&
			allTrue(oldInCell, s.OldStart, s.OldEnd) &&
			allTrue(newInCell, s.NewStart, s.NewEnd):
			spans[i].Op = VisualReplace
		}
	}
	return spans
}

// cellContainment reports, per atom, whether it lies strictly inside a
// <td> or <th> cell. The cell boundary tags themselves do not count as
// inside.
func cellContainment(atoms []atom.Atom) []bool {
	inCell := make([]bool, len(atoms))
	depth := 0
	for i, a := range atoms {
		switch {
		case a.Kind == atom.TagOpen && isCellTag(a.TagName):
			inCell[i] = depth > 0
			depth++
		case a.Kind == atom.TagClose && isCellTag(a.TagName):
			if depth > 0 {
				depth--
			}
			inCell[i] = depth > 0
		default:
			inCell[i] = depth > 0
		}
	}
	return inCell
}

func isCellTag(name string) bool {
	return name == "td" || name == "th"
}

func allTrue(flags []bool, start, end int) bool {
	if start >= end {
		return false
	}
	for i := start; i < end; i++ {
		if !flags[i] {
			return false
		}
	}
	return true
}

// firstElement returns the index of the first tag-open or void atom, or -1.
func firstElement(atoms []atom.Atom) int {
	for i, a := range atoms {
		if a.Kind == atom.TagOpen || a.Kind == atom.VoidTag {
			return i
		}
	}
	return -1
}

func isVoidSwap(oldAtoms, newAtoms []atom.Atom) bool {
	return len(oldAtoms) == 1 && len(newAtoms) == 1 &&
		oldAtoms[0].Kind == atom.VoidTag && newAtoms[0].Kind == atom.VoidTag &&
		oldAtoms[0].TagName == newAtoms[0].TagName
}

// visibleText is the whitespace-collapsed, case-folded text content of a
// range, the normalization under which "only the wrapping changed" is
// judged.
func visibleText(atoms []atom.Atom) string {
	var parts []string
	for _, a := range atoms {
		if a.Kind == atom.Text {
			parts = append(parts, a.Text)
		}
	}
	return strings.ToLower(strings.Join(strings.Fields(strings.Join(parts, " ")), " "))
}
