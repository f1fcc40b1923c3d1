package align

import (
	"fmt"

	"znkr.io/diff"

	"github.com/tsawler/tagdiff/atom"
)

// Align matches the old and new atom sequences and returns an ordered edit
// script of spans covering both sequences completely. It returns an
// *AlignmentError if the alignment primitive violates its coverage contract.
func Align(old, new []atom.Atom, opts Options) ([]Span, error) {
	oldKeys := Keys(old, opts)
	newKeys := Keys(new, opts)

	edits := diff.Edits(oldKeys, newKeys)

	spans, err := groupEdits(edits, oldKeys, newKeys)
	if err != nil {
		return nil, err
	}
	spans = slideChanges(spans, oldKeys, newKeys)
	spans = mergeReplaces(spans)
	spans = isolateVoidTags(spans, old, new, opts)
	spans = collapseVisual(spans, old, new, opts)
	spans = bulkCollapse(spans, old, new, opts)
	return spans, nil
}

// groupEdits folds the per-element edit stream into maximal same-operation
// spans, verifying along the way that every index of both sequences is
// consumed exactly once and in order.
func groupEdits(edits []diff.Edit[string], oldKeys, newKeys []string) ([]Span, error) {
	var spans []Span
	i, j := 0, 0

	push := func(op Op, oldLen, newLen int) {
		if n := len(spans); n > 0 && spans[n-1].Op == op {
			spans[n-1].OldEnd += oldLen
			spans[n-1].NewEnd += newLen
		} else {
			spans = append(spans, Span{
				Op:       op,
				OldStart: i, OldEnd: i + oldLen,
				NewStart: j, NewEnd: j + newLen,
			})
		}
		i += oldLen
		j += newLen
	}

	for _, e := range edits {
		switch e.Op {
		case diff.Match:
			if i >= len(oldKeys) || j >= len(newKeys) {
				return nil, &AlignmentError{Reason: "match edit past end of input"}
			}
			if oldKeys[i] != newKeys[j] {
				return nil, &AlignmentError{
					Reason: fmt.Sprintf("matched elements differ at old[%d]/new[%d]", i, j),
				}
			}
			push(Equal, 1, 1)
		case diff.Delete:
			if i >= len(oldKeys) {
				return nil, &AlignmentError{Reason: "delete edit past end of old input"}
			}
			push(Delete, 1, 0)
		case diff.Insert:
			if j >= len(newKeys) {
				return nil, &AlignmentError{Reason: "insert edit past end of new input"}
			}
			push(Insert, 0, 1)
		default:
			return nil, &AlignmentError{Reason: fmt.Sprintf("unknown edit op %v", e.Op)}
		}
	}
	if i != len(oldKeys) || j != len(newKeys) {
		return nil, &AlignmentError{
			Reason: fmt.Sprintf("edit script covers %d/%d old and %d/%d new elements",
				i, len(oldKeys), j, len(newKeys)),
		}
	}
	return spans, nil
}

// slideChanges shifts each pure delete or insert run as far right as the
// surrounding equal atoms allow. The placement of a minimal change run is
// otherwise an arbitrary choice of the alignment primitive; sliding makes it
// deterministic and keeps the deleted "bar " of ("Foo bar baz", "Foo baz")
// attached to its trailing space rather than its leading one.
func slideChanges(spans []Span, oldKeys, newKeys []string) []Span {
	var out []Span
	for idx := 0; idx < len(spans); idx++ {
		s := spans[idx]
		if (s.Op != Delete && s.Op != Insert) || idx+1 >= len(spans) || spans[idx+1].Op != Equal {
			out = append(out, s)
			continue
		}
		next := spans[idx+1]

		shift := 0
		for shift < next.OldLen() {
			if s.Op == Delete {
				if oldKeys[s.OldStart+shift] != oldKeys[s.OldEnd+shift] {
					break
				}
			} else {
				if newKeys[s.NewStart+shift] != newKeys[s.NewEnd+shift] {
					break
				}
			}
			shift++
		}
		if shift == 0 {
			out = append(out, s)
			continue
		}

		// The first shift atoms of the following equal run move in front
		// of the change run; extend the preceding equal span or start one.
		if n := len(out); n > 0 && out[n-1].Op == Equal {
			out[n-1].OldEnd += shift
			out[n-1].NewEnd += shift
		} else {
			out = append(out, Span{
				Op:       Equal,
				OldStart: s.OldStart, OldEnd: s.OldStart + shift,
				NewStart: s.NewStart, NewEnd: s.NewStart + shift,
			})
		}
		s.OldStart += shift
		s.OldEnd += shift
		s.NewStart += shift
		s.NewEnd += shift
		out = append(out, s)

		next.OldStart += shift
		next.NewStart += shift
		if next.OldLen() > 0 {
			out = append(out, next)
		}
		idx++ // consumed the following equal span
	}
	return out
}

// mergeReplaces combines an adjacent delete and insert run (either order)
// into a single Replace span, guaranteeing they render as one ordered
// delete-then-insert unit.
func mergeReplaces(spans []Span) []Span {
	var out []Span
	for _, s := range spans {
		if n := len(out); n > 0 {
			last := out[n-1]
			if (last.Op == Delete && s.Op == Insert) || (last.Op == Insert && s.Op == Delete) {
				out[n-1] = Span{
					Op:       Replace,
					OldStart: min(last.OldStart, s.OldStart),
					OldEnd:   max(last.OldEnd, s.OldEnd),
					NewStart: min(last.NewStart, s.NewStart),
					NewEnd:   max(last.NewEnd, s.NewEnd),
				}
				continue
			}
		}
		out = append(out, s)
	}
	return out
}

// isolateVoidTags splits a tracked void tag out of a larger delete or insert
// run into its own span, so an added or removed <img> wraps individually
// instead of being merged into surrounding text changes.
func isolateVoidTags(spans []Span, old, new []atom.Atom, opts Options) []Span {
	tracked := toSet(opts.TrackedVoidTags)
	if len(tracked) == 0 {
		return spans
	}
	var out []Span
	for _, s := range spans {
		switch {
		case s.Op == Delete && s.OldLen() > 1:
			out = append(out, splitRun(s, old[s.OldStart:s.OldEnd], tracked, true)...)
		case s.Op == Insert && s.NewLen() > 1:
			out = append(out, splitRun(s, new[s.NewStart:s.NewEnd], tracked, false)...)
		default:
			out = append(out, s)
		}
	}
	return out
}

func splitRun(s Span, atoms []atom.Atom, tracked map[string]bool, oldSide bool) []Span {
	var out []Span
	start := 0
	emit := func(from, to int, isolated bool) {
		if from >= to {
			return
		}
		part := s
		part.Isolated = isolated
		if oldSide {
			part.OldStart = s.OldStart + from
			part.OldEnd = s.OldStart + to
		} else {
			part.NewStart = s.NewStart + from
			part.NewEnd = s.NewStart + to
		}
		out = append(out, part)
	}
	for i, a := range atoms {
		if a.Kind == atom.VoidTag && tracked[a.TagName] {
			emit(start, i, false)
			emit(i, i+1, true)
			start = i + 1
		}
	}
	emit(start, len(atoms), false)
	return out
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// bulkCollapse replaces a heavily shredded edit script with a single
// whole-document Replace when the two fragments share too little content
// for an interleaved diff to be readable. The ratio is computed over
// non-whitespace atoms only: whitespace matches between unrelated texts
// carry no similarity signal.
func bulkCollapse(spans []Span, old, new []atom.Atom, opts Options) []Span {
	if opts.BulkThreshold <= 0 || len(old) == 0 || len(new) == 0 {
		return spans
	}
	matched := 0
	changed := false
	for _, s := range spans {
		switch s.Op {
		case Equal:
			matched += countSolid(old[s.OldStart:s.OldEnd]) + countSolid(new[s.NewStart:s.NewEnd])
		case VisualReplace:
			// Visually identical content counts as shared: an <img> whose
			// src changed is not an unrelated document.
			matched += countSolid(old[s.OldStart:s.OldEnd]) + countSolid(new[s.NewStart:s.NewEnd])
		default:
			changed = true
		}
	}
	total := countSolid(old) + countSolid(new)
	if !changed || total == 0 {
		return spans
	}
	if float64(matched)/float64(total) >= opts.BulkThreshold {
		return spans
	}
	return []Span{{Op: Replace, OldStart: 0, OldEnd: len(old), NewStart: 0, NewEnd: len(new)}}
}

func countSolid(atoms []atom.Atom) int {
	n := 0
	for _, a := range atoms {
		if a.Kind != atom.Whitespace {
			n++
		}
	}
	return n
}
