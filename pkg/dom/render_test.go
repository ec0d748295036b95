package dom

import (
	"strings"
	"testing"
)

func TestRenderString(t *testing.T) {
	div := NewElement("div")
	div.SetAttr("id", "main")
	div.SetAttr("hidden", "")
	div.AppendChild(NewText("a < b & c"))
	img := NewElement("img")
	img.SetAttr("alt", `say "hi"`)
	div.AppendChild(img)
	div.AppendChild(NewComment("x"))

	got := RenderString(div)
	want := `<div id="main" hidden>a &lt; b &amp; c<img alt="say &quot;hi&quot;"><!--x--></div>`
	if got != want {
		t.Errorf("RenderString() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderRawText(t *testing.T) {
	script := NewElement("script")
	script.AppendChild(NewText("if (a < b) {}"))
	if got := RenderString(script); got != "<script>if (a < b) {}</script>" {
		t.Errorf("script rendered as %q", got)
	}
}

func TestRoundTrip(t *testing.T) {
	markup := `<ul><li class="x">one</li><li>two</li></ul>`
	root, err := ParseFragment(strings.NewReader(markup), "div")
	if err != nil {
		t.Fatal(err)
	}
	if got := InnerHTML(root); got != markup {
		t.Errorf("InnerHTML() = %q, want %q", got, markup)
	}
}
