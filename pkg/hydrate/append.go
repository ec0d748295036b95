package hydrate

import "github.com/vango-dev/hydrate/pkg/dom"

// Append attaches node as the next child of target.
//
// While hydrating, target's children are first reordered to match their
// claim order, then a cursor walks the stamped children: a node already at
// the cursor is left in place, anything else is inserted before it. Outside
// hydration the node is appended unless it already is the last child.
func (h *Hydrator) Append(target, node *dom.Node) {
	if !h.Hydrating() {
		if node.Parent() != target || node.NextSibling() != nil {
			target.AppendChild(node)
		}
		return
	}

	h.Reorder(target)
	st := h.state(target)

	if !st.endSet || (st.endChild != nil && st.endChild.Parent() != target) {
		st.endChild = target.FirstChild()
		st.endSet = true
	}
	for st.endChild != nil && !stamped(st.endChild) {
		st.endChild = st.endChild.NextSibling()
	}

	if node != st.endChild {
		if stamped(node) || node.Parent() != target {
			target.InsertBefore(node, st.endChild)
		}
	} else {
		st.endChild = node.NextSibling()
	}
}

// Insert attaches node to target before anchor. A nil anchor while
// hydrating is an Append, so the node lands at the hydration cursor.
func (h *Hydrator) Insert(target, node, anchor *dom.Node) {
	if h.Hydrating() && anchor == nil {
		h.Append(target, node)
		return
	}
	if node.Parent() != target || node.NextSibling() != anchor {
		target.InsertBefore(node, anchor)
	}
}

// Detach removes node from its parent.
func Detach(node *dom.Node) {
	if node != nil {
		node.Remove()
	}
}
