package atom

import "testing"

func textAtom(t *testing.T, atoms []Atom, text string) Atom {
	t.Helper()
	for _, a := range atoms {
		if a.Kind == Text && a.Text == text {
			return a
		}
	}
	t.Fatalf("no text atom %q in %v", text, atoms)
	return Atom{}
}

func TestStyleSignature_InheritedFromAncestors(t *testing.T) {
	frag := `<b><i>x</i></b> <u>y</u> <span style="font-size: 12px; color: Red">z</span> plain`
	atoms, err := Atomize(frag, DefaultOptions())
	if err != nil {
		t.Fatalf("Atomize() failed: %v", err)
	}

	x := textAtom(t, atoms, "x")
	if !x.Style.Bold || !x.Style.Italic {
		t.Errorf("style of x = %+v, want bold italic", x.Style)
	}

	y := textAtom(t, atoms, "y")
	if !y.Style.Underline || y.Style.Bold {
		t.Errorf("style of y = %+v, want underline only", y.Style)
	}

	z := textAtom(t, atoms, "z")
	if z.Style.FontSize != "12px" || z.Style.Color != "red" {
		t.Errorf("style of z = %+v, want font-size 12px, color red", z.Style)
	}

	plain := textAtom(t, atoms, "plain")
	if !plain.Style.IsZero() {
		t.Errorf("style of plain = %+v, want zero", plain.Style)
	}
}

func TestStyleSignature_StrongAndEmAliases(t *testing.T) {
	atoms, err := Atomize("<strong>a</strong><em>b</em>", DefaultOptions())
	if err != nil {
		t.Fatalf("Atomize() failed: %v", err)
	}
	if a := textAtom(t, atoms, "a"); !a.Style.Bold {
		t.Errorf("style of a = %+v, want bold", a.Style)
	}
	if b := textAtom(t, atoms, "b"); !b.Style.Italic {
		t.Errorf("style of b = %+v, want italic", b.Style)
	}
}

func TestStyleSignature_CSSDeclarations(t *testing.T) {
	frag := `<span style="font-weight: bold">a</span>` +
		`<span style="font-style: italic">b</span>` +
		`<span style="text-decoration: underline dotted">c</span>`
	atoms, err := Atomize(frag, DefaultOptions())
	if err != nil {
		t.Fatalf("Atomize() failed: %v", err)
	}
	if a := textAtom(t, atoms, "a"); !a.Style.Bold {
		t.Errorf("style of a = %+v, want bold", a.Style)
	}
	if b := textAtom(t, atoms, "b"); !b.Style.Italic {
		t.Errorf("style of b = %+v, want italic", b.Style)
	}
	if c := textAtom(t, atoms, "c"); !c.Style.Underline {
		t.Errorf("style of c = %+v, want underline", c.Style)
	}
}

func TestStyleSignature_Key(t *testing.T) {
	tests := []struct {
		sig  StyleSignature
		want string
	}{
		{StyleSignature{}, ""},
		{StyleSignature{Bold: true}, "b"},
		{StyleSignature{Bold: true, Italic: true, Underline: true}, "biu"},
		{StyleSignature{FontSize: "12px", Color: "red"}, ";fs=12px;c=red"},
	}
	for _, tt := range tests {
		if got := tt.sig.Key(); got != tt.want {
			t.Errorf("Key(%+v) = %q, want %q", tt.sig, got, tt.want)
		}
	}
}
