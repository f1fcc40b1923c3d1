package tagdiff_test

import (
	"fmt"

	"github.com/tsawler/tagdiff"
)

func ExampleRender() {
	html, err := tagdiff.Render("Foo <b>bar</b> baz", "Foo <i>bar</i> baz")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(html)
	// Output:
	// <div class="diff">Foo <del><b>bar</b></del><ins><i>bar</i></ins> baz</div>
}

func ExampleRender_imageSource() {
	html := tagdiff.Must(tagdiff.Render(
		`<img src="pic0.jpg">`,
		`<img src="pic1.jpg">`,
	))
	fmt.Println(html)
	// Output:
	// <div class="diff"><img src="pic1.jpg" class="tagdiff_replaced" data-old-src="pic0.jpg"></div>
}

func ExampleCompare() {
	html := tagdiff.Must(
		tagdiff.Compare("<td><span>x</span></td>", "<td><b>x</b></td>").
			ChangeIDs().
			Render(),
	)
	fmt.Println(html)
	// Output:
	// <div class="diff"><td><b class="tagdiff_replaced" data-old-tag="span">x</b></td></div>
}

func ExampleDiffer_Wrapper() {
	html := tagdiff.Must(
		tagdiff.Compare("same text", "same text").
			Wrapper("section", "revision").
			Render(),
	)
	fmt.Println(html)
	// Output:
	// <section class="revision">same text</section>
}
