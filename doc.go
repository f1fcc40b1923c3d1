// Package tagdiff renders a human-readable inline diff between two HTML
// fragments: one merged fragment showing what text, formatting, and
// structural markup changed, with <del>/<ins> wrappers and visual-replace
// annotations, while suppressing noise from cosmetic-only rewrites.
//
// Basic usage:
//
//	html, err := tagdiff.Render("Foo bar baz", "Foo baz")
//	if err != nil {
//	    // handle error
//	}
//	// <div class="diff">Foo <del>bar&nbsp;</del>baz</div>
//
// Whitespace inside change wrappers renders as no-break spaces so a
// whitespace-only change stays visible; WhitespaceLiteral turns that off.
//
// With options:
//
//	html, err := tagdiff.Compare(oldFragment, newFragment).
//	    CaseFold().
//	    TableAwareCollapse(false).
//	    ChangeIDs().
//	    Render()
//
// Formatting changes are first-class: the same words wrapped in different
// inline formatting render as a delete of the old styling followed by an
// insert of the new one, never as unchanged text.
//
//	tagdiff.Render("Foo <b>bar</b> baz", "Foo <i>bar</i> baz")
//	// <div class="diff">Foo <del><b>bar</b></del><ins><i>bar</i></ins> baz</div>
//
// When only the wrapping changes and the visible text is identical (a
// restyled table cell, an <img> whose src changed), the text is emitted once
// and the surviving element is annotated with class="tagdiff_replaced" and
// data-old-* attributes instead of being duplicated.
//
// The engine is a pure function from (old, new, configuration) to an output
// string: no I/O, no shared mutable state. A Differ is immutable, so
// concurrent Render calls need no coordination.
//
// For advanced use cases the lower-level atom, align, and render packages
// are also available.
package tagdiff
