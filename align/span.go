package align

import "fmt"

// Op is the edit operation of a span.
type Op int

const (
	// Equal marks a range present in both sequences.
	Equal Op = iota

	// Delete marks a range present only in the old sequence.
	Delete

	// Insert marks a range present only in the new sequence.
	Insert

	// Replace marks a delete paired with an insert, rendered as one
	// delete-then-insert unit.
	Replace

	// VisualReplace marks a replace whose visible text is identical on
	// both sides; it renders the new content once, annotated, instead of
	// duplicating the text.
	VisualReplace
)

// String returns the operation name.
func (op Op) String() string {
	switch op {
	case Equal:
		return "Equal"
	case Delete:
		return "Delete"
	case Insert:
		return "Insert"
	case Replace:
		return "Replace"
	case VisualReplace:
		return "VisualReplace"
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// Span is a contiguous range in one or both atom sequences, labeled with an
// edit operation. Ranges are half-open. Spans produced by Align are
// contiguous, non-overlapping, and jointly cover both sequences completely.
type Span struct {
	Op       Op
	OldStart int
	OldEnd   int
	NewStart int
	NewEnd   int

	// Isolated marks a span split out around a tracked void tag; the
	// renderer keeps its wrappers separate instead of merging them into
	// neighboring change wrappers.
	Isolated bool
}

// OldLen returns the number of old-side atoms covered.
func (s Span) OldLen() int { return s.OldEnd - s.OldStart }

// NewLen returns the number of new-side atoms covered.
func (s Span) NewLen() int { return s.NewEnd - s.NewStart }

// AlignmentError reports that the sequence-alignment primitive violated its
// coverage contract. It indicates an internal invariant violation, not a
// user error.
type AlignmentError struct {
	Reason string
}

// Error implements the error interface.
func (e *AlignmentError) Error() string {
	return "align: " + e.Reason
}
