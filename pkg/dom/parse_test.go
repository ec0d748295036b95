package dom

import (
	"strings"
	"testing"

	"github.com/vango-dev/hydrate/internal/errors"
)

func TestParseFragment(t *testing.T) {
	root, err := ParseFragment(strings.NewReader(`<div id="a">hi</div><!--c--><span>x</span>`), "body")
	if err != nil {
		t.Fatalf("ParseFragment error: %v", err)
	}
	if root.Tag != "body" {
		t.Errorf("container tag = %q, want body", root.Tag)
	}

	children := root.ChildNodes()
	if len(children) != 3 {
		t.Fatalf("children = %d, want 3", len(children))
	}
	if children[0].Tag != "div" || children[1].Type != CommentNode || children[2].Tag != "span" {
		t.Errorf("unexpected children: %v", tags(root))
	}
	if v, _ := children[0].Attr("id"); v != "a" {
		t.Errorf("id = %q, want a", v)
	}
}

func TestParseDocument(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<!doctype html><html><head><title>t</title></head><body><p>x</p></body></html>`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if doc.Type != DocumentNode {
		t.Errorf("root type = %v, want Document", doc.Type)
	}
	if Find(doc, "head") == nil || Find(doc, "p") == nil {
		t.Error("head and p should be present")
	}
}

func TestParseSVGNamespace(t *testing.T) {
	root, err := ParseFragment(strings.NewReader(`<svg><circle r="1"></circle></svg>`), "div")
	if err != nil {
		t.Fatal(err)
	}
	circle := Find(root, "circle")
	if circle == nil || circle.Namespace != SVGNamespace {
		t.Errorf("circle namespace = %v", circle)
	}
}

func TestApplyClaimAttr(t *testing.T) {
	root, err := ParseFragment(strings.NewReader(
		`<p data-claim="2">c</p><p data-claim="0">a</p><p>free</p><p data-claim="1">b</p>`), "div")
	if err != nil {
		t.Fatal(err)
	}

	n, err := ApplyClaimAttr(root, "data-claim")
	if err != nil {
		t.Fatalf("ApplyClaimAttr error: %v", err)
	}
	if n != 3 {
		t.Errorf("stamped = %d, want 3", n)
	}

	children := root.ChildNodes()
	if order, ok := children[0].ClaimOrder(); !ok || order != 2 {
		t.Errorf("first claim = %d,%v, want 2,true", order, ok)
	}
	if _, ok := children[2].ClaimOrder(); ok {
		t.Error("element without attribute should stay unstamped")
	}
	if children[0].HasAttr("data-claim") {
		t.Error("claim attribute should be removed")
	}
}

func TestApplyClaimAttrInvalid(t *testing.T) {
	root, _ := ParseFragment(strings.NewReader(`<p data-claim="x"></p>`), "div")
	_, err := ApplyClaimAttr(root, "data-claim")
	if !errors.HasCode(err, "H201") {
		t.Errorf("err = %v, want H201", err)
	}
}
