// Package dom provides the mutable node tree the hydrate runtime works on.
//
// It models the small part of the browser DOM the runtime consumes:
// element/text/comment creation, attribute get/set/remove, event listener
// registration, child traversal and the InsertBefore/RemoveChild mutations.
// Every node can additionally carry a claim order, the hydration stamp that
// records where the node sits in the order components claim it.
//
// # Parsing and Rendering
//
// Parse and ParseFragment load server-rendered markup (via golang.org/x/net/html)
// so it can be hydrated. Render and RenderString serialize a tree back to HTML.
//
//	root, err := dom.ParseFragment(strings.NewReader(markup), "body")
//	...
//	fmt.Println(dom.InnerHTML(root))
package dom
