// Package render walks an edit script and the two atom sequences it covers
// and emits a single merged HTML fragment with change markup.
//
// Equal spans pass through verbatim from the new sequence. Deleted content
// is wrapped in <del>, inserted content in <ins>, and a replace always emits
// the <del> immediately followed by its paired <ins> regardless of the order
// the edit script reported, so insert-before-delete artifacts cannot occur.
// Visual replaces (same text, different wrapping) emit the new content once,
// annotated with class="tagdiff_replaced" and data-old-* attributes instead
// of duplicating the text.
//
// Inside change wrappers, spaces and tabs become no-break spaces so a pure
// whitespace change still produces visibly non-empty markup, and a changed
// line break is preceded by a marker glyph (¶ by default). Tag atoms left
// unbalanced within a change span are never emitted inside the wrapper:
// inserted ones are emitted plainly so the new document's structure stays
// intact around the wrapper, and deleted ones are dropped. The merged
// fragment therefore never acquires crossing or unclosed tags, and an <ins>
// never ends up inside a <del>.
//
// The output is always rooted in a single container element
// (<div class="diff"> by default), safe to insert into a larger document.
package render
