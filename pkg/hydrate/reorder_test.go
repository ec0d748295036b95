package hydrate

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/vango-dev/hydrate/pkg/dom"
)

// stampedParent builds a parent whose children carry the given claim orders
// in document order.
func stampedParent(orders ...int) *dom.Node {
	parent := dom.NewElement("div")
	for _, o := range orders {
		child := dom.NewElement("p")
		child.SetAttr("data-o", strconv.Itoa(o))
		child.SetClaimOrder(o)
		parent.AppendChild(child)
	}
	return parent
}

func orderOf(parent *dom.Node) []int {
	var out []int
	for _, c := range parent.ChildNodes() {
		if o, ok := c.ClaimOrder(); ok {
			out = append(out, o)
		} else {
			out = append(out, -1)
		}
	}
	return out
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// lisLength is the quadratic reference for the longest non-decreasing subsequence.
func lisLength(orders []int) int {
	best := 0
	dp := make([]int, len(orders))
	for i := range orders {
		dp[i] = 1
		for j := 0; j < i; j++ {
			if orders[j] <= orders[i] && dp[j]+1 > dp[i] {
				dp[i] = dp[j] + 1
			}
		}
		if dp[i] > best {
			best = dp[i]
		}
	}
	return best
}

func TestReorderScenario(t *testing.T) {
	parent := stampedParent(2, 0, 1)
	h := New()

	moves := h.Reorder(parent)
	if moves != 1 {
		t.Errorf("moves = %d, want 1", moves)
	}
	if got := orderOf(parent); !intsEqual(got, []int{0, 1, 2}) {
		t.Errorf("order = %v, want [0 1 2]", got)
	}
}

func TestReorderSortedIsNoop(t *testing.T) {
	parent := stampedParent(0, 1, 2, 3, 4)
	first := parent.FirstChild()

	if moves := New().Reorder(parent); moves != 0 {
		t.Errorf("moves = %d, want 0", moves)
	}
	if parent.FirstChild() != first {
		t.Error("sorted children should not move")
	}
}

func TestReorderRunsOncePerParent(t *testing.T) {
	parent := stampedParent(1, 0)
	h := New()
	if moves := h.Reorder(parent); moves != 1 {
		t.Fatalf("first Reorder moves = %d, want 1", moves)
	}

	// Shuffle again: a second call in the same hydration must not touch it.
	parent.InsertBefore(parent.LastChild(), parent.FirstChild())
	if moves := h.Reorder(parent); moves != 0 {
		t.Errorf("second Reorder moves = %d, want 0", moves)
	}

	h.Start()
	h.End()
	if moves := h.Reorder(parent); moves != 1 {
		t.Errorf("Reorder after hydration reset moves = %d, want 1", moves)
	}
}

func TestReorderRandomPermutations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(30)
		orders := rng.Perm(n)
		parent := stampedParent(orders...)

		moves := New().Reorder(parent)

		got := orderOf(parent)
		for i := 1; i < len(got); i++ {
			if got[i-1] > got[i] {
				t.Fatalf("trial %d: %v not ascending (input %v)", trial, got, orders)
			}
		}
		if want := n - lisLength(orders); moves != want {
			t.Fatalf("trial %d: moves = %d, want %d (input %v)", trial, moves, want, orders)
		}
	}
}

func TestReorderEqualStampsExtendChain(t *testing.T) {
	// Two text nodes split from one run share a stamp.
	parent := stampedParent(0, 1, 1, 2)
	if moves := New().Reorder(parent); moves != 0 {
		t.Errorf("moves = %d, want 0", moves)
	}

	keep := longestIncreasing([]int{3, 1, 1, 1, 2})
	want := []bool{false, true, true, true, true}
	for i := range want {
		if keep[i] != want[i] {
			t.Errorf("keep = %v, want %v", keep, want)
			break
		}
	}
}

func TestReorderLeavesUnstampedNodes(t *testing.T) {
	parent := dom.NewElement("body")
	a := dom.NewElement("a")
	a.SetClaimOrder(1)
	injected := dom.NewElement("script")
	b := dom.NewElement("b")
	b.SetClaimOrder(0)
	parent.AppendChild(a)
	parent.AppendChild(injected)
	parent.AppendChild(b)

	if moves := New().Reorder(parent); moves != 1 {
		t.Errorf("moves = %d, want 1", moves)
	}
	if injected.Parent() != parent {
		t.Fatal("unstamped node should stay attached")
	}

	var stampedOrder []int
	for _, c := range parent.ChildNodes() {
		if o, ok := c.ClaimOrder(); ok {
			stampedOrder = append(stampedOrder, o)
		}
	}
	if !intsEqual(stampedOrder, []int{0, 1}) {
		t.Errorf("stamped order = %v, want [0 1]", stampedOrder)
	}
}

func TestReorderHeadOnlyStamped(t *testing.T) {
	head := dom.NewElement("head")
	meta := dom.NewElement("meta")
	title := dom.NewElement("title")
	title.SetClaimOrder(1)
	link := dom.NewElement("link")
	link.SetClaimOrder(0)
	head.AppendChild(meta)
	head.AppendChild(title)
	head.AppendChild(link)

	New().Reorder(head)
	if head.FirstChild() != meta {
		t.Error("unstamped head content should not move")
	}
	if link.NextSibling() != title {
		t.Error("stamped head entries should be in claim order")
	}
}

func TestPlan(t *testing.T) {
	tests := []struct {
		name   string
		orders []int
		want   []Move
	}{
		{"empty", nil, []Move{}},
		{"sorted", []int{0, 1, 2}, []Move{}},
		{"last first", []int{2, 0, 1}, []Move{{Order: 2, Before: -1}}},
		{"first last", []int{1, 2, 0}, []Move{{Order: 0, Before: 1}}},
		{"reversed", []int{2, 1, 0}, []Move{{Order: 1, Before: -1}, {Order: 2, Before: -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Plan(tt.orders)
			if len(got) != len(tt.want) {
				t.Fatalf("Plan(%v) = %v, want %v", tt.orders, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Plan(%v)[%d] = %v, want %v", tt.orders, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestReorderTree(t *testing.T) {
	root := dom.NewElement("body")
	outer := stampedParent(1, 0)
	outer.SetClaimOrder(0)
	inner := stampedParent(2, 0, 1)
	inner.SetClaimOrder(1)
	root.AppendChild(inner)
	root.AppendChild(outer)

	h := New()
	h.Start()
	moves := h.ReorderTree(root)
	h.End()

	// root [1,0] -> 1 move, outer [1,0] -> 1 move, inner [2,0,1] -> 1 move.
	if moves != 3 {
		t.Errorf("ReorderTree() = %d, want 3", moves)
	}
	if root.FirstChild() != outer {
		t.Error("root children should be in claim order")
	}
	for _, p := range []*dom.Node{outer, inner} {
		got := orderOf(p)
		for i := 1; i < len(got); i++ {
			if got[i-1] > got[i] {
				t.Errorf("children = %v, want ascending", got)
			}
		}
	}
}
