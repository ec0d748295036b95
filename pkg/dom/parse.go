package dom

import (
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/hydrate/internal/errors"
)

// Parse reads a complete server-rendered document.
func Parse(r io.Reader) (*Node, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.New("H200").Wrap(err)
	}
	return convert(root), nil
}

// ParseFragment reads markup as the content of a context element (e.g. "body"
// or "div") and returns a detached element of that tag holding the result.
func ParseFragment(r io.Reader, context string) (*Node, error) {
	context = strings.ToLower(context)
	ctxNode := &html.Node{
		Type:     html.ElementNode,
		Data:     context,
		DataAtom: atom.Lookup([]byte(context)),
	}
	nodes, err := html.ParseFragment(r, ctxNode)
	if err != nil {
		return nil, errors.New("H200").Wrap(err)
	}

	container := NewElement(context)
	for _, n := range nodes {
		if c := convert(n); c != nil {
			container.AppendChild(c)
		}
	}
	return container, nil
}

// convert copies an x/net/html tree into a Node tree. Doctype and error
// nodes are dropped.
func convert(src *html.Node) *Node {
	var n *Node
	switch src.Type {
	case html.DocumentNode:
		n = NewDocument()
	case html.ElementNode:
		if src.Namespace == "svg" {
			n = NewElementNS(SVGNamespace, src.Data)
		} else {
			n = NewElement(src.Data)
		}
		for _, a := range src.Attr {
			name := a.Key
			if a.Namespace != "" {
				name = a.Namespace + ":" + a.Key
			}
			n.SetAttr(name, a.Val)
		}
	case html.TextNode:
		return NewText(src.Data)
	case html.CommentNode:
		return NewComment(src.Data)
	default:
		return nil
	}

	for c := src.FirstChild; c != nil; c = c.NextSibling {
		if child := convert(c); child != nil {
			n.AppendChild(child)
		}
	}
	return n
}

// ApplyClaimAttr stamps every element in root's subtree that carries the
// named attribute with its integer value as claim order, then removes the
// attribute. It returns the number of stamped elements.
func ApplyClaimAttr(root *Node, attr string) (int, error) {
	count := 0
	var walk func(*Node) error
	walk = func(n *Node) error {
		if n.Type == ElementNode {
			if v, ok := n.Attr(attr); ok {
				order, err := strconv.Atoi(strings.TrimSpace(v))
				if err != nil || order < 0 {
					return errors.New("H201").
						WithDetail(attr + `="` + v + `" on <` + n.Tag + `> is not a non-negative integer`)
				}
				n.SetClaimOrder(order)
				n.RemoveAttr(attr)
				count++
			}
		}
		for c := n.firstChild; c != nil; c = c.next {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root); err != nil {
		return count, err
	}
	return count, nil
}
