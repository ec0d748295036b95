package dom

import "strings"

// NodeType is the node type discriminator.
type NodeType uint8

const (
	ElementNode  NodeType = iota + 1 // <div>, <span>, etc.
	TextNode                         // Character data
	CommentNode                      // <!-- ... -->
	DocumentNode                     // Tree root
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case CommentNode:
		return "Comment"
	case DocumentNode:
		return "Document"
	default:
		return "Unknown"
	}
}

// SVGNamespace is the namespace for elements created inside <svg>.
const SVGNamespace = "http://www.w3.org/2000/svg"

// Attr is a single element attribute.
type Attr struct {
	Name  string
	Value string
}

// Node is a mutable DOM node.
//
// Sibling and parent links are maintained by the tree operations
// (AppendChild, InsertBefore, RemoveChild); callers never set them directly.
type Node struct {
	Type      NodeType
	Tag       string // Lower-case element name
	Namespace string // Empty for HTML elements
	Data      string // For TextNode and CommentNode

	attrs []Attr

	parent     *Node
	firstChild *Node
	lastChild  *Node
	prev       *Node
	next       *Node

	// claimOrder is the hydration stamp; valid only when stamped is set.
	claimOrder int
	stamped    bool

	listeners map[string][]*listener
}

// NewElement creates a detached HTML element.
func NewElement(tag string) *Node {
	return &Node{Type: ElementNode, Tag: strings.ToLower(tag)}
}

// NewElementNS creates a detached element in the given namespace.
func NewElementNS(namespace, tag string) *Node {
	return &Node{Type: ElementNode, Tag: tag, Namespace: namespace}
}

// NewText creates a detached text node.
func NewText(data string) *Node {
	return &Node{Type: TextNode, Data: data}
}

// NewComment creates a detached comment node.
func NewComment(data string) *Node {
	return &Node{Type: CommentNode, Data: data}
}

// NewDocument creates an empty document root.
func NewDocument() *Node {
	return &Node{Type: DocumentNode}
}

// NodeName mirrors the browser nodeName: upper-case tag for HTML elements,
// "#text", "#comment" or "#document" otherwise.
func (n *Node) NodeName() string {
	switch n.Type {
	case ElementNode:
		if n.Namespace == "" {
			return strings.ToUpper(n.Tag)
		}
		return n.Tag
	case TextNode:
		return "#text"
	case CommentNode:
		return "#comment"
	case DocumentNode:
		return "#document"
	default:
		return ""
	}
}

// Parent returns the parent node, or nil when detached.
func (n *Node) Parent() *Node { return n.parent }

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node { return n.firstChild }

// LastChild returns the last child, or nil.
func (n *Node) LastChild() *Node { return n.lastChild }

// NextSibling returns the next sibling, or nil.
func (n *Node) NextSibling() *Node { return n.next }

// PrevSibling returns the previous sibling, or nil.
func (n *Node) PrevSibling() *Node { return n.prev }

// ChildNodes returns a snapshot of the children in document order.
func (n *Node) ChildNodes() []*Node {
	var out []*Node
	for c := n.firstChild; c != nil; c = c.next {
		out = append(out, c)
	}
	return out
}

// AppendChild moves child to the end of n's children.
func (n *Node) AppendChild(child *Node) {
	n.InsertBefore(child, nil)
}

// InsertBefore moves child directly before ref. A nil ref appends.
// A child already attached elsewhere is detached first.
func (n *Node) InsertBefore(child, ref *Node) {
	if child == nil || child == ref {
		return
	}
	if ref != nil && ref.parent != n {
		ref = nil
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}

	child.parent = n
	if ref == nil {
		child.prev = n.lastChild
		child.next = nil
		if n.lastChild != nil {
			n.lastChild.next = child
		} else {
			n.firstChild = child
		}
		n.lastChild = child
		return
	}

	child.next = ref
	child.prev = ref.prev
	if ref.prev != nil {
		ref.prev.next = child
	} else {
		n.firstChild = child
	}
	ref.prev = child
}

// RemoveChild detaches child from n. It reports false when child
// is not one of n's children.
func (n *Node) RemoveChild(child *Node) bool {
	if child == nil || child.parent != n {
		return false
	}
	if child.prev != nil {
		child.prev.next = child.next
	} else {
		n.firstChild = child.next
	}
	if child.next != nil {
		child.next.prev = child.prev
	} else {
		n.lastChild = child.prev
	}
	child.parent, child.prev, child.next = nil, nil, nil
	return true
}

// Remove detaches n from its parent, if any.
func (n *Node) Remove() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// SplitText splits a text node at the byte offset. n keeps the leading
// part; the trailing part is returned as a new sibling inserted after n.
func (n *Node) SplitText(offset int) *Node {
	if offset < 0 {
		offset = 0
	}
	if offset > len(n.Data) {
		offset = len(n.Data)
	}
	tail := NewText(n.Data[offset:])
	n.Data = n.Data[:offset]
	if n.parent != nil {
		n.parent.InsertBefore(tail, n.next)
	}
	return tail
}

// TextContent concatenates the data of all descendant text nodes.
func (n *Node) TextContent() string {
	if n.Type == TextNode || n.Type == CommentNode {
		return n.Data
	}
	var b strings.Builder
	var walk func(*Node)
	walk = func(p *Node) {
		for c := p.firstChild; c != nil; c = c.next {
			switch c.Type {
			case TextNode:
				b.WriteString(c.Data)
			case ElementNode:
				walk(c)
			}
		}
	}
	walk(n)
	return b.String()
}

// ClaimOrder returns the hydration stamp and whether one is set.
func (n *Node) ClaimOrder() (int, bool) {
	return n.claimOrder, n.stamped
}

// SetClaimOrder stamps n with its position in the expected claim order.
func (n *Node) SetClaimOrder(order int) {
	n.claimOrder = order
	n.stamped = true
}

// ClearClaimOrder removes the hydration stamp.
func (n *Node) ClearClaimOrder() {
	n.claimOrder = 0
	n.stamped = false
}

// Find returns the first element in n's subtree (n included) with the tag.
func Find(n *Node, tag string) *Node {
	if n == nil {
		return nil
	}
	if n.Type == ElementNode && n.Tag == tag {
		return n
	}
	for c := n.firstChild; c != nil; c = c.next {
		if found := Find(c, tag); found != nil {
			return found
		}
	}
	return nil
}
