package hydrate

import (
	"testing"

	"github.com/vango-dev/hydrate/pkg/dom"
)

type countingObserver struct {
	reorders int
	moves    int
	reused   int
	created  int
}

func (o *countingObserver) ObserveReorder(children, moves int) {
	o.reorders++
	o.moves += moves
}

func (o *countingObserver) ObserveClaim(reused bool) {
	if reused {
		o.reused++
	} else {
		o.created++
	}
}

func TestClaimElementStripsUnknownAttributes(t *testing.T) {
	obs := &countingObserver{}
	h := New(WithObserver(obs))

	server := dom.NewElement("div")
	server.SetAttr("id", "main")
	server.SetAttr("data-x", "1")
	list := NewNodeList([]*dom.Node{server})

	got := h.ClaimElement(list, "DIV", []string{"id"})
	if got != server {
		t.Fatal("matching candidate should be reused")
	}
	if got.HasAttr("data-x") {
		t.Error("data-x should be stripped")
	}
	if v, _ := got.Attr("id"); v != "main" {
		t.Errorf("id = %q, want main", v)
	}
	if list.Len() != 0 {
		t.Errorf("list.Len() = %d, want 0", list.Len())
	}
	if order, ok := got.ClaimOrder(); !ok || order != 0 {
		t.Errorf("claim order = %d,%v, want 0,true", order, ok)
	}
	if obs.reused != 1 || obs.created != 0 {
		t.Errorf("observer reused=%d created=%d, want 1/0", obs.reused, obs.created)
	}
}

func TestClaimMoreThanAvailableCreates(t *testing.T) {
	obs := &countingObserver{}
	h := New(WithObserver(obs))
	list := NewNodeList([]*dom.Node{dom.NewText("only text")})

	for i := 0; i < 3; i++ {
		n := h.ClaimElement(list, "p", nil)
		if n == nil || n.Tag != "p" || n.Parent() != nil {
			t.Fatalf("claim %d: expected a fresh detached <p>, got %+v", i, n)
		}
		if order, _ := n.ClaimOrder(); order != i {
			t.Errorf("claim %d: order = %d", i, order)
		}
	}
	if obs.created != 3 {
		t.Errorf("created = %d, want 3", obs.created)
	}
	if list.Len() != 1 || list.Claimed() != 3 {
		t.Errorf("Len=%d Claimed=%d, want 1/3", list.Len(), list.Claimed())
	}
}

func TestClaimSVGElement(t *testing.T) {
	h := New()
	htmlCircle := dom.NewElement("circle")
	svgCircle := dom.NewElementNS(dom.SVGNamespace, "circle")
	list := NewNodeList([]*dom.Node{htmlCircle, svgCircle})

	if got := h.ClaimSVGElement(list, "circle", nil); got != svgCircle {
		t.Error("ClaimSVGElement should only match SVG-namespaced nodes")
	}
	created := h.ClaimSVGElement(list, "rect", nil)
	if created.Namespace != dom.SVGNamespace {
		t.Error("created SVG element should carry the namespace")
	}
}

func TestClaimTextSplitsLongerCandidate(t *testing.T) {
	h := New()
	parent := dom.NewElement("p")
	server := dom.NewText("hello world")
	parent.AppendChild(server)
	list := Children(parent)

	head := h.ClaimText(list, "hello")
	if head != server || head.Data != "hello" {
		t.Fatalf("head = %q, want reused node with data hello", head.Data)
	}
	if list.Len() != 1 {
		t.Fatalf("remainder should stay claimable, Len = %d", list.Len())
	}

	tail := h.ClaimText(list, " world")
	if tail.Data != " world" || tail.Parent() != parent {
		t.Errorf("tail = %q (parent %v), want split remainder", tail.Data, tail.Parent())
	}
	if list.Len() != 0 {
		t.Errorf("list.Len() = %d, want 0", list.Len())
	}
	if o, _ := tail.ClaimOrder(); o != 1 {
		t.Errorf("tail order = %d, want 1", o)
	}
}

func TestClaimTextOverwritesMismatch(t *testing.T) {
	h := New()
	server := dom.NewText("stale")
	list := NewNodeList([]*dom.Node{server})

	got := h.ClaimText(list, "fresh")
	if got != server || got.Data != "fresh" {
		t.Errorf("got %q, want reused node with fresh data", got.Data)
	}
}

func TestClaimSpace(t *testing.T) {
	h := New()
	list := NewNodeList(nil)
	n := h.ClaimSpace(list)
	if n.Type != dom.TextNode || n.Data != " " {
		t.Errorf("ClaimSpace() = %+v", n)
	}
}

func TestClaimNodeSearchOrder(t *testing.T) {
	h := New()
	span1 := dom.NewElement("span")
	div := dom.NewElement("div")
	span2 := dom.NewElement("span")
	list := NewNodeList([]*dom.Node{span1, div, span2})

	if got := h.ClaimElement(list, "div", nil); got != div {
		t.Fatal("expected div")
	}
	// Search resumes at the div's old index and finds the later span first.
	if got := h.ClaimElement(list, "span", nil); got != span2 {
		t.Error("forward search should find span2 first")
	}
	// Nothing left forward, so the backward scan finds span1.
	if got := h.ClaimElement(list, "span", nil); got != span1 {
		t.Error("backward search should find span1")
	}
}

func TestClaimNodeKeepIndexBackward(t *testing.T) {
	h := New()
	a, b, c := dom.NewText("a"), dom.NewElement("b"), dom.NewElement("c")
	list := NewNodeList([]*dom.Node{a, b, c})

	h.ClaimElement(list, "c", nil) // lastIndex = 2
	if list.lastIndex != 2 {
		t.Fatalf("lastIndex = %d, want 2", list.lastIndex)
	}
	// Backward hit with keepIndex removes the entry and shifts the index.
	h.ClaimText(list, "a")
	if list.lastIndex != 1 {
		t.Errorf("lastIndex = %d, want 1", list.lastIndex)
	}
	if got := h.ClaimElement(list, "b", nil); got != b {
		t.Error("b should still be claimable")
	}
}

func TestDetachRemaining(t *testing.T) {
	parent := dom.NewElement("div")
	parent.AppendChild(dom.NewElement("a"))
	parent.AppendChild(dom.NewElement("b"))
	list := Children(parent)

	New().ClaimElement(list, "a", nil)
	list.DetachRemaining()

	if got := len(parent.ChildNodes()); got != 1 {
		t.Errorf("children = %d, want 1", got)
	}
}

func TestHeadSelector(t *testing.T) {
	head := dom.NewElement("head")
	head.AppendChild(dom.NewElement("meta"))
	head.AppendChild(dom.NewComment("HEAD_app_START"))
	title := dom.NewElement("title")
	head.AppendChild(title)
	head.AppendChild(dom.NewComment(" HEAD_app_END "))
	head.AppendChild(dom.NewElement("link"))

	list := HeadSelector("app", head)
	nodes := list.Nodes()
	if len(nodes) != 3 {
		t.Fatalf("selected %d nodes, want 3", len(nodes))
	}
	if nodes[1] != title {
		t.Error("title should be selected between the markers")
	}
	if got := New().ClaimElement(list, "title", nil); got != title {
		t.Error("title should be claimable from the head list")
	}
}

func TestHelpers(t *testing.T) {
	el := Element("DIV")
	Attr(el, "count", 3)
	if v, _ := el.Attr("count"); v != "3" {
		t.Errorf("count = %q, want 3", v)
	}
	Attr(el, "count", nil)
	if el.HasAttr("count") {
		t.Error("nil value should remove the attribute")
	}

	txt := Text("a")
	SetData(txt, "b")
	if txt.Data != "b" {
		t.Errorf("Data = %q, want b", txt.Data)
	}
	if Space().Data != " " || Empty().Data != "" {
		t.Error("Space/Empty content wrong")
	}
	if SVGElement("g").Namespace != dom.SVGNamespace {
		t.Error("SVGElement namespace wrong")
	}

	clicks := 0
	off := Listen(el, "click", func(dom.Event) { clicks++ })
	el.Dispatch(dom.Event{Type: "click"})
	off()
	el.Dispatch(dom.Event{Type: "click"})
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}
