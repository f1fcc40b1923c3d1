// Package atom decomposes an HTML fragment into a flat, order-preserving
// sequence of atoms: tag boundaries, text runs, whitespace runs, line-break
// markers, and comments.
//
// Atoms are the unit of comparison and reconstruction for the diff engine.
// Atomization is lossless: concatenating the Raw field of every atom in
// order reproduces the parsed fragment exactly, which is what allows the
// renderer to re-emit unchanged regions byte-for-byte.
//
//	atoms, err := atom.Atomize(`Foo <b>bar</b> baz`, atom.DefaultOptions())
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(atom.Reconstruct(atoms)) // Foo <b>bar</b> baz
//
// Structural parsing (tag boundaries, attribute parsing, entity handling,
// repair of malformed markup) is delegated to golang.org/x/net/html. The
// atomizer never rejects input itself; it fails only if the parser fails.
//
// While walking the fragment the atomizer maintains a [StyleSignature]
// accumulator describing the inline formatting (bold, italic, underline,
// font size, color) inherited from enclosing tags. Each text atom snapshots
// the active signature, which is how formatting-only changes later surface
// as real diffs instead of being silently dropped.
package atom
