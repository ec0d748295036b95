package hydrate

import (
	"sort"

	"github.com/vango-dev/hydrate/pkg/dom"
)

// longestIncreasing returns, for every position in orders, whether it is part
// of the longest non-decreasing subsequence. Equal values extend a chain, so
// text nodes split from one run (and sharing a stamp) are kept together.
func longestIncreasing(orders []int) []bool {
	n := len(orders)
	keep := make([]bool, n)
	if n == 0 {
		return keep
	}

	// tails[k] is the index of the smallest tail of a chain of length k;
	// tails[0] is a sentinel. prev[i] is the predecessor index of i plus one.
	tails := make([]int, n+1)
	prev := make([]int, n)
	tails[0] = -1
	longest := 0

	for i, cur := range orders {
		var length int
		if longest > 0 && orders[tails[longest]] <= cur {
			length = longest + 1
		} else {
			length = upperBound(1, longest, cur, func(k int) int { return orders[tails[k]] })
		}
		prev[i] = tails[length-1] + 1
		tails[length] = i
		if length > longest {
			longest = length
		}
	}

	for cur := tails[longest] + 1; cur != 0; cur = prev[cur-1] {
		keep[cur-1] = true
	}
	return keep
}

// upperBound returns the first k in [low, high) whose key is greater than
// value, or high when there is none.
func upperBound(low, high, value int, key func(int) int) int {
	for low < high {
		mid := low + (high-low)/2
		if key(mid) <= value {
			low = mid + 1
		} else {
			high = mid
		}
	}
	return low
}

// Move is a single relocation in a reorder plan: the node stamped Order is
// inserted before the node stamped Before, or appended when Before is -1.
type Move struct {
	Order  int `json:"order"`
	Before int `json:"before"`
}

// Plan computes the moves that bring nodes stamped with orders (given in
// document order) into ascending order. Nodes on the longest increasing
// subsequence stay; every other node moves exactly once.
func Plan(orders []int) []Move {
	keep := longestIncreasing(orders)

	var kept, moved []int
	for i, o := range orders {
		if keep[i] {
			kept = append(kept, o)
		} else {
			moved = append(moved, o)
		}
	}
	sort.SliceStable(moved, func(i, j int) bool { return moved[i] < moved[j] })

	moves := make([]Move, 0, len(moved))
	a := 0
	for _, o := range moved {
		for a < len(kept) && o >= kept[a] {
			a++
		}
		before := -1
		if a < len(kept) {
			before = kept[a]
		}
		moves = append(moves, Move{Order: o, Before: before})
	}
	return moves
}

// Reorder matches parent's stamped children against their claim order with
// the minimum number of moves. It runs once per parent per hydration and
// returns the number of nodes moved. Unstamped children (content injected
// after server render) are not considered and keep their position.
func (h *Hydrator) Reorder(parent *dom.Node) int {
	st := h.state(parent)
	if st.reordered {
		return 0
	}
	st.reordered = true

	var children []*dom.Node
	var orders []int
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		if order, ok := c.ClaimOrder(); ok {
			children = append(children, c)
			orders = append(orders, order)
		}
	}

	keep := longestIncreasing(orders)

	var kept, moved []*dom.Node
	for i, c := range children {
		if keep[i] {
			kept = append(kept, c)
		} else {
			moved = append(moved, c)
		}
	}
	sort.SliceStable(moved, func(i, j int) bool {
		return claimOrder(moved[i]) < claimOrder(moved[j])
	})

	a := 0
	for _, node := range moved {
		order := claimOrder(node)
		for a < len(kept) && order >= claimOrder(kept[a]) {
			a++
		}
		var anchor *dom.Node
		if a < len(kept) {
			anchor = kept[a]
		}
		parent.InsertBefore(node, anchor)
	}

	h.observer.ObserveReorder(len(children), len(moved))
	if len(moved) > 0 {
		h.logger.Debug("hydration reorder",
			"parent", parent.NodeName(),
			"children", len(children),
			"moves", len(moved))
	}
	return len(moved)
}

func claimOrder(n *dom.Node) int {
	order, _ := n.ClaimOrder()
	return order
}

func stamped(n *dom.Node) bool {
	_, ok := n.ClaimOrder()
	return ok
}

// ReorderTree reorders every element in root's subtree, root included, and
// returns the total number of moves.
func (h *Hydrator) ReorderTree(root *dom.Node) int {
	moves := 0
	var walk func(*dom.Node)
	walk = func(n *dom.Node) {
		if n.Type != dom.ElementNode && n.Type != dom.DocumentNode {
			return
		}
		moves += h.Reorder(n)
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			walk(c)
		}
	}
	walk(root)
	return moves
}
