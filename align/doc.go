// Package align matches two atom sequences and produces an ordered edit
// script of spans.
//
// Each atom is reduced to a comparison key (see [Keys]); two atoms are equal
// for alignment purposes iff their keys are equal. Keys fold away purely
// cosmetic differences (style-equivalent tag names, untracked attributes)
// while keeping meaningful ones first-class: a text run carries its inherited
// style signature, so the same words under different formatting do not match.
//
// The longest-common-subsequence computation itself is delegated to
// znkr.io/diff; this package consumes only its documented contract (one edit
// per input element, complete coverage, in order) and verifies it, failing
// with *AlignmentError on violation.
//
// The raw edit stream is then post-processed into spans:
//
//   - change runs are slid rightward over equal atoms for deterministic
//     placement,
//   - adjacent delete+insert runs merge into a single Replace span so they
//     render as one ordered delete-then-insert unit,
//   - tracked void tags are isolated into their own spans,
//   - replaces whose visible text is identical on both sides collapse into
//     VisualReplace spans (table cells, attribute-only changes, void tag
//     swaps), and
//   - when the two sequences share too little content, the whole script
//     collapses into one bulk Replace.
package align
