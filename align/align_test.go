package align

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/diff"

	"github.com/tsawler/tagdiff/atom"
)

func mustAlign(t *testing.T, old, new string, opts Options) ([]Span, []atom.Atom, []atom.Atom) {
	t.Helper()
	oldAtoms := mustAtomize(t, old)
	newAtoms := mustAtomize(t, new)
	spans, err := Align(oldAtoms, newAtoms, opts)
	if err != nil {
		t.Fatalf("Align(%q, %q) failed: %v", old, new, err)
	}
	return spans, oldAtoms, newAtoms
}

func ops(spans []Span) []Op {
	out := make([]Op, 0, len(spans))
	for _, s := range spans {
		out = append(out, s.Op)
	}
	return out
}

// checkCoverage verifies the span partition invariant: contiguous,
// non-overlapping, and jointly covering both sequences completely.
func checkCoverage(t *testing.T, spans []Span, oldLen, newLen int) {
	t.Helper()
	i, j := 0, 0
	for _, s := range spans {
		if s.OldStart != i || s.NewStart != j {
			t.Fatalf("span %+v does not start at cursor (%d, %d)", s, i, j)
		}
		if s.OldEnd < s.OldStart || s.NewEnd < s.NewStart {
			t.Fatalf("span %+v has a negative range", s)
		}
		i, j = s.OldEnd, s.NewEnd
	}
	if i != oldLen || j != newLen {
		t.Fatalf("spans cover (%d, %d) of (%d, %d) atoms", i, j, oldLen, newLen)
	}
}

func TestAlign_Coverage(t *testing.T) {
	pairs := [][2]string{
		{"Foo bar baz", "Foo baz"},
		{"Foo baz", "Foo blah baz"},
		{"Foo <b>bar</b> baz", "Foo <i>bar</i> baz"},
		{"<td><span>x</span></td>", "<td><b>x</b></td>"},
		{"", "something new"},
		{"all gone", ""},
		{"same on both sides", "same on both sides"},
	}
	for _, pair := range pairs {
		spans, oldAtoms, newAtoms := mustAlign(t, pair[0], pair[1], DefaultOptions())
		checkCoverage(t, spans, len(oldAtoms), len(newAtoms))
	}
}

func TestAlign_Identity(t *testing.T) {
	spans, oldAtoms, _ := mustAlign(t, "Foo <b>bar</b> baz", "Foo <b>bar</b> baz", DefaultOptions())
	want := []Op{Equal}
	if diff := cmp.Diff(want, ops(spans)); diff != "" {
		t.Errorf("identity span ops mismatch (-want +got):\n%s", diff)
	}
	checkCoverage(t, spans, len(oldAtoms), len(oldAtoms))
}

func TestAlign_MergesDeleteInsertIntoReplace(t *testing.T) {
	spans, _, _ := mustAlign(t, "Foo <b>bar</b> baz", "Foo <i>bar</i> baz", DefaultOptions())
	want := []Op{Equal, Replace, Equal}
	if diff := cmp.Diff(want, ops(spans)); diff != "" {
		t.Errorf("span ops mismatch (-want +got):\n%s", diff)
	}
}

func TestAlign_SlidesDeletionRight(t *testing.T) {
	// Both minimal alignments delete "bar" plus one space; sliding pins
	// the deletion to the trailing space.
	spans, oldAtoms, _ := mustAlign(t, "Foo bar baz", "Foo baz", DefaultOptions())
	var del *Span
	for i, s := range spans {
		if s.Op == Delete {
			if del != nil {
				t.Fatalf("multiple delete spans: %+v", spans)
			}
			del = &spans[i]
		}
	}
	if del == nil {
		t.Fatalf("no delete span in %+v", spans)
	}
	got := atom.Reconstruct(oldAtoms[del.OldStart:del.OldEnd])
	if got != "bar " {
		t.Errorf("deleted content = %q, want %q", got, "bar ")
	}
}

func TestAlign_TableCellCollapse(t *testing.T) {
	spans, _, _ := mustAlign(t, "<td><span>x</span></td>", "<td><b>x</b></td>", DefaultOptions())
	want := []Op{Equal, VisualReplace, Equal}
	if diff := cmp.Diff(want, ops(spans)); diff != "" {
		t.Errorf("span ops mismatch (-want +got):\n%s", diff)
	}
}

func TestAlign_TableCellCollapseDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.TableAwareCollapse = false
	opts.BulkThreshold = 0
	spans, _, _ := mustAlign(t, "<td><span>x</span></td>", "<td><b>x</b></td>", opts)
	for _, s := range spans {
		if s.Op == VisualReplace {
			t.Errorf("got VisualReplace with table collapse disabled: %+v", spans)
		}
	}
}

func TestAlign_VoidTagSwapCollapses(t *testing.T) {
	spans, _, _ := mustAlign(t, `<img src="pic0.jpg">`, `<img src="pic1.jpg">`, DefaultOptions())
	want := []Op{VisualReplace}
	if diff := cmp.Diff(want, ops(spans)); diff != "" {
		t.Errorf("span ops mismatch (-want +got):\n%s", diff)
	}
}

func TestAlign_AttributeOnlyChangeCollapses(t *testing.T) {
	// margin does not contribute to the style signature, so the text
	// still matches and only the open tag is replaced.
	spans, _, _ := mustAlign(t, `<p style="margin: 0">x</p>`, `<p style="margin: 4px">x</p>`, DefaultOptions())
	want := []Op{VisualReplace, Equal}
	if diff := cmp.Diff(want, ops(spans)); diff != "" {
		t.Errorf("span ops mismatch (-want +got):\n%s", diff)
	}
}

func TestAlign_IsolatesTrackedVoidTags(t *testing.T) {
	spans, oldAtoms, _ := mustAlign(t, `before <img src="a.png"> after`, "", DefaultOptions())
	checkCoverage(t, spans, len(oldAtoms), 0)

	var isolated []Span
	for _, s := range spans {
		if s.Isolated {
			isolated = append(isolated, s)
		}
	}
	if len(isolated) != 1 {
		t.Fatalf("isolated spans = %d, want 1 (%+v)", len(isolated), spans)
	}
	s := isolated[0]
	if s.OldLen() != 1 || oldAtoms[s.OldStart].TagName != "img" {
		t.Errorf("isolated span = %+v, want single <img> atom", s)
	}
}

func TestAlign_BulkReplaceBelowThreshold(t *testing.T) {
	spans, oldAtoms, newAtoms := mustAlign(t,
		"completely different original words",
		"nothing shared with before",
		DefaultOptions())
	want := []Op{Replace}
	if diff := cmp.Diff(want, ops(spans)); diff != "" {
		t.Errorf("span ops mismatch (-want +got):\n%s", diff)
	}
	checkCoverage(t, spans, len(oldAtoms), len(newAtoms))
}

func TestAlign_BulkReplaceDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.BulkThreshold = 0
	spans, _, _ := mustAlign(t,
		"completely different original words",
		"nothing shared with before",
		opts)
	if len(spans) == 1 && spans[0].Op == Replace && spans[0].OldLen() > 1 {
		// A single whole-input replace is exactly what disabling should prevent,
		// unless the matcher genuinely found nothing to share. Whitespace atoms
		// always match, so something must survive.
		t.Errorf("bulk replace fired while disabled: %+v", spans)
	}
}

func TestGroupEdits_RejectsContractViolations(t *testing.T) {
	oldKeys := []string{"a", "b"}
	newKeys := []string{"a", "c"}

	tests := []struct {
		name  string
		edits []diff.Edit[string]
	}{
		{"missing coverage", []diff.Edit[string]{{Op: diff.Match, X: "a", Y: "a"}}},
		{"mismatched match", []diff.Edit[string]{
			{Op: diff.Match, X: "a", Y: "a"},
			{Op: diff.Match, X: "b", Y: "c"},
		}},
		{"overlong script", []diff.Edit[string]{
			{Op: diff.Match, X: "a", Y: "a"},
			{Op: diff.Delete, X: "b"},
			{Op: diff.Insert, Y: "c"},
			{Op: diff.Delete, X: "b"},
		}},
	}
	for _, tt := range tests {
		_, err := groupEdits(tt.edits, oldKeys, newKeys)
		var alignErr *AlignmentError
		if !errors.As(err, &alignErr) {
			t.Errorf("%s: groupEdits() error = %v, want *AlignmentError", tt.name, err)
		}
	}
}
