package hydrate

import (
	"fmt"

	"github.com/vango-dev/hydrate/pkg/dom"
)

// Element creates an HTML element.
func Element(tag string) *dom.Node {
	return dom.NewElement(tag)
}

// SVGElement creates an element in the SVG namespace.
func SVGElement(tag string) *dom.Node {
	return dom.NewElementNS(dom.SVGNamespace, tag)
}

// Text creates a text node.
func Text(data string) *dom.Node {
	return dom.NewText(data)
}

// Space creates a single-space text node.
func Space() *dom.Node {
	return Text(" ")
}

// Empty creates an empty text node, used as an anchor.
func Empty() *dom.Node {
	return Text("")
}

// Listen attaches fn to node and returns the detach function.
func Listen(node *dom.Node, event string, fn dom.Listener) func() {
	return node.AddEventListener(event, fn)
}

// Attr sets the attribute to value's string form, skipping the write when
// unchanged. A nil value removes the attribute.
func Attr(node *dom.Node, name string, value any) {
	if value == nil {
		node.RemoveAttr(name)
		return
	}
	s := fmt.Sprint(value)
	if current, ok := node.Attr(name); !ok || current != s {
		node.SetAttr(name, s)
	}
}

// SetData updates a text node's content when it differs.
func SetData(text *dom.Node, data string) {
	if text.Data != data {
		text.Data = data
	}
}
