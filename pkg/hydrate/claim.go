package hydrate

import (
	"strings"

	"github.com/vango-dev/hydrate/pkg/dom"
)

// NodeList is the candidate list a fragment claims nodes from, together with
// its claim info: where the next search resumes and how many claims have
// been issued.
type NodeList struct {
	nodes        []*dom.Node
	lastIndex    int
	totalClaimed int
}

// NewNodeList wraps nodes as a candidate list.
func NewNodeList(nodes []*dom.Node) *NodeList {
	return &NodeList{nodes: nodes}
}

// Children snapshots the children of n as a candidate list.
func Children(n *dom.Node) *NodeList {
	return NewNodeList(n.ChildNodes())
}

// Len returns the number of unclaimed candidates.
func (l *NodeList) Len() int {
	return len(l.nodes)
}

// Nodes returns a copy of the unclaimed candidates.
func (l *NodeList) Nodes() []*dom.Node {
	return append([]*dom.Node(nil), l.nodes...)
}

// Claimed returns the number of claims issued from this list.
func (l *NodeList) Claimed() int {
	return l.totalClaimed
}

// DetachRemaining removes every unclaimed candidate from the DOM.
func (l *NodeList) DetachRemaining() {
	for _, n := range l.nodes {
		Detach(n)
	}
}

// splice removes or replaces candidate i. A nil replacement removes it.
func (l *NodeList) splice(i int, replacement *dom.Node) {
	if replacement == nil {
		l.nodes = append(l.nodes[:i], l.nodes[i+1:]...)
		return
	}
	l.nodes[i] = replacement
}

// ClaimNode returns the first candidate accepted by match, searching forward
// from the last claim position and then backward. transform runs on the hit
// and returns the node that takes its place in the list (nil removes the
// entry). When nothing matches, create supplies a new node. With keepIndex
// set, a hit does not move the search position.
//
// Every returned node is stamped with the next claim order, so created nodes
// interleave correctly with server-rendered ones when the parent is later
// reordered.
func (h *Hydrator) ClaimNode(
	list *NodeList,
	match func(*dom.Node) bool,
	transform func(*dom.Node) *dom.Node,
	create func() *dom.Node,
	keepIndex bool,
) *dom.Node {
	node := list.find(match, transform, keepIndex)
	h.observer.ObserveClaim(node != nil)
	if node == nil {
		node = create()
	}
	node.SetClaimOrder(list.totalClaimed)
	list.totalClaimed++
	return node
}

func (l *NodeList) find(match func(*dom.Node) bool, transform func(*dom.Node) *dom.Node, keepIndex bool) *dom.Node {
	for i := l.lastIndex; i < len(l.nodes); i++ {
		node := l.nodes[i]
		if !match(node) {
			continue
		}
		l.splice(i, transform(node))
		if !keepIndex {
			l.lastIndex = i
		}
		return node
	}

	for i := l.lastIndex - 1; i >= 0; i-- {
		node := l.nodes[i]
		if !match(node) {
			continue
		}
		replacement := transform(node)
		l.splice(i, replacement)
		if keepIndex {
			if replacement == nil {
				l.lastIndex--
			}
		} else {
			l.lastIndex = i
		}
		return node
	}

	return nil
}

// ClaimElement claims an HTML element by tag, removing any attribute not in
// attrs. It creates the element when no candidate matches.
func (h *Hydrator) ClaimElement(list *NodeList, tag string, attrs []string) *dom.Node {
	tag = strings.ToLower(tag)
	return h.claimElement(list, tag, attrs, "", func() *dom.Node { return dom.NewElement(tag) })
}

// ClaimSVGElement is ClaimElement for elements in the SVG namespace.
func (h *Hydrator) ClaimSVGElement(list *NodeList, tag string, attrs []string) *dom.Node {
	return h.claimElement(list, tag, attrs, dom.SVGNamespace, func() *dom.Node {
		return dom.NewElementNS(dom.SVGNamespace, tag)
	})
}

func (h *Hydrator) claimElement(list *NodeList, tag string, attrs []string, ns string, create func() *dom.Node) *dom.Node {
	expected := make(map[string]struct{}, len(attrs))
	for _, a := range attrs {
		expected[a] = struct{}{}
	}

	return h.ClaimNode(list,
		func(n *dom.Node) bool {
			return n.Type == dom.ElementNode && n.Tag == tag && n.Namespace == ns
		},
		func(n *dom.Node) *dom.Node {
			for _, a := range n.Attributes() {
				if _, ok := expected[a.Name]; !ok {
					n.RemoveAttr(a.Name)
				}
			}
			return nil
		},
		create,
		false,
	)
}

// ClaimText claims a text node holding data. A candidate that starts with
// data but is longer is split, and its remainder stays claimable. A
// candidate with different content is overwritten.
func (h *Hydrator) ClaimText(list *NodeList, data string) *dom.Node {
	return h.ClaimNode(list,
		func(n *dom.Node) bool { return n.Type == dom.TextNode },
		func(n *dom.Node) *dom.Node {
			if strings.HasPrefix(n.Data, data) {
				if len(n.Data) != len(data) {
					return n.SplitText(len(data))
				}
				return nil
			}
			n.Data = data
			return nil
		},
		func() *dom.Node { return dom.NewText(data) },
		true,
	)
}

// ClaimSpace claims a single-space text node.
func (h *Hydrator) ClaimSpace(list *NodeList) *dom.Node {
	return h.ClaimText(list, " ")
}
