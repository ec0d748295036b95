// Package hydrate re-attaches components to server-rendered DOM.
//
// During hydration a fragment does not create its nodes; it claims them from
// the children the server already rendered. Claims search a NodeList
// (forward from the last hit, then backward) and fall back to creating the
// node when the server omitted it. Every returned node is stamped with its
// claim order.
//
// When the fragment mounts, Append reorders each parent's stamped children
// once: nodes on the longest increasing subsequence of claim orders stay in
// place and every other node moves exactly once, so the number of DOM moves
// is the number of children minus the length of that subsequence.
//
// # Usage
//
//	h := hydrate.New()
//	h.Start()
//	nodes := hydrate.Children(target)
//	div := h.ClaimElement(nodes, "div", []string{"id"})
//	label := h.ClaimText(hydrate.Children(div), "hello")
//	...
//	h.Append(target, div)
//	h.End()
//
// Missing or mismatched nodes are never errors.
package hydrate
