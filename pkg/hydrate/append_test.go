package hydrate

import (
	"strings"
	"testing"

	"github.com/vango-dev/hydrate/pkg/dom"
)

func TestAppendOutsideHydration(t *testing.T) {
	h := New()
	parent := dom.NewElement("div")
	a, b := dom.NewElement("a"), dom.NewElement("b")

	h.Append(parent, a)
	h.Append(parent, b)
	h.Append(parent, b) // already last: no move
	h.Append(parent, a) // moves to the end

	if got := orderTags(parent); got != "b,a" {
		t.Errorf("children = %s, want b,a", got)
	}
}

func TestInsertOutsideHydration(t *testing.T) {
	h := New()
	parent := dom.NewElement("div")
	anchor := dom.NewElement("hr")
	parent.AppendChild(anchor)

	x := dom.NewElement("x")
	h.Insert(parent, x, anchor)
	if x.NextSibling() != anchor {
		t.Error("x should be before the anchor")
	}
	h.Insert(parent, x, nil)
	if parent.LastChild() != x {
		t.Error("nil anchor outside hydration should append")
	}
}

func orderTags(n *dom.Node) string {
	var parts []string
	for _, c := range n.ChildNodes() {
		if c.Type == dom.TextNode {
			parts = append(parts, "#"+c.Data)
		} else {
			parts = append(parts, c.Tag)
		}
	}
	return strings.Join(parts, ",")
}

// TestHydrateClaimThenMount walks the full claim + mount cycle on server
// markup whose children are out of the claim order.
func TestHydrateClaimThenMount(t *testing.T) {
	obs := &countingObserver{}
	h := New(WithObserver(obs))

	target := dom.NewElement("body")
	serverB := dom.NewElement("b")
	serverA := dom.NewElement("a")
	target.AppendChild(serverB)
	target.AppendChild(serverA)

	h.Start()
	nodes := Children(target)
	a := h.ClaimElement(nodes, "a", nil)
	b := h.ClaimElement(nodes, "b", nil)
	c := h.ClaimElement(nodes, "c", nil) // server omitted it
	nodes.DetachRemaining()

	if a != serverA || b != serverB {
		t.Fatal("server nodes should be reused")
	}

	h.Append(target, a)
	h.Append(target, b)
	h.Append(target, c)
	h.End()

	if got := orderTags(target); got != "a,b,c" {
		t.Errorf("children = %s, want a,b,c", got)
	}
	if obs.reorders != 1 || obs.moves != 1 {
		t.Errorf("reorders=%d moves=%d, want 1/1", obs.reorders, obs.moves)
	}
	if obs.reused != 2 || obs.created != 1 {
		t.Errorf("reused=%d created=%d, want 2/1", obs.reused, obs.created)
	}
	if h.Hydrating() {
		t.Error("hydration should have ended")
	}
}

func TestAppendHydratingSkipsUnstampedNodes(t *testing.T) {
	h := New()
	target := dom.NewElement("body")
	injected := dom.NewElement("script")
	a := dom.NewElement("a")
	a.SetClaimOrder(0)
	target.AppendChild(injected)
	target.AppendChild(a)

	h.Start()
	defer h.End()

	h.Append(target, a)
	if target.FirstChild() != injected || target.LastChild() != a {
		t.Errorf("children = %s, want script,a", orderTags(target))
	}

	// A fresh node lands after the cursor, not before foreign content.
	b := dom.NewElement("b")
	b.SetClaimOrder(1)
	h.Append(target, b)
	if got := orderTags(target); got != "script,a,b" {
		t.Errorf("children = %s, want script,a,b", got)
	}
}

func TestInsertHydratingWithoutAnchorAppends(t *testing.T) {
	h := New()
	target := dom.NewElement("div")
	first := dom.NewElement("i")
	first.SetClaimOrder(0)
	target.AppendChild(first)

	h.Start()
	second := dom.NewElement("u")
	second.SetClaimOrder(1)
	h.Insert(target, first, nil)
	h.Insert(target, second, nil)
	h.End()

	if got := orderTags(target); got != "i,u" {
		t.Errorf("children = %s, want i,u", got)
	}
}

func TestHydrationNesting(t *testing.T) {
	h := New()
	h.Start()
	h.Start()
	h.End()
	if !h.Hydrating() {
		t.Error("inner End should not leave hydration")
	}
	h.End()
	h.End()
	if h.Hydrating() {
		t.Error("outer End should leave hydration")
	}
}

func TestDetach(t *testing.T) {
	parent := dom.NewElement("div")
	child := dom.NewElement("span")
	parent.AppendChild(child)
	Detach(child)
	Detach(nil)
	if child.Parent() != nil {
		t.Error("child should be detached")
	}
}
