package dom

import (
	"bufio"
	"io"
	"strings"
)

// voidElements are elements that cannot have children and have no closing tag.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// rawTextElements hold text that is written without escaping.
var rawTextElements = map[string]bool{
	"script": true,
	"style":  true,
}

// Render serializes n and its subtree as HTML. Attributes are written in
// insertion order.
func Render(w io.Writer, n *Node) error {
	bw := bufio.NewWriter(w)
	if err := renderNode(bw, n, false); err != nil {
		return err
	}
	return bw.Flush()
}

// RenderString serializes n to a string.
func RenderString(n *Node) string {
	var b strings.Builder
	_ = Render(&b, n)
	return b.String()
}

// InnerHTML serializes only the children of n.
func InnerHTML(n *Node) string {
	var b strings.Builder
	bw := bufio.NewWriter(&b)
	raw := n.Type == ElementNode && rawTextElements[n.Tag]
	for c := n.firstChild; c != nil; c = c.next {
		_ = renderNode(bw, c, raw)
	}
	_ = bw.Flush()
	return b.String()
}

func renderNode(w *bufio.Writer, n *Node, raw bool) error {
	if n == nil {
		return nil
	}

	switch n.Type {
	case DocumentNode:
		for c := n.firstChild; c != nil; c = c.next {
			if err := renderNode(w, c, false); err != nil {
				return err
			}
		}
		return nil
	case TextNode:
		if raw {
			_, err := w.WriteString(n.Data)
			return err
		}
		_, err := w.WriteString(escapeHTML(n.Data))
		return err
	case CommentNode:
		_, err := w.WriteString("<!--" + n.Data + "-->")
		return err
	case ElementNode:
		return renderElement(w, n)
	default:
		return nil
	}
}

// renderElement renders an element with its attributes and children.
func renderElement(w *bufio.Writer, n *Node) error {
	w.WriteByte('<')
	w.WriteString(n.Tag)
	for _, a := range n.attrs {
		w.WriteByte(' ')
		w.WriteString(a.Name)
		if a.Value != "" {
			w.WriteString(`="`)
			w.WriteString(escapeAttr(a.Value))
			w.WriteByte('"')
		}
	}
	if _, err := w.WriteString(">"); err != nil {
		return err
	}

	if voidElements[n.Tag] && n.Namespace == "" {
		return nil
	}

	raw := rawTextElements[n.Tag]
	for c := n.firstChild; c != nil; c = c.next {
		if err := renderNode(w, c, raw); err != nil {
			return err
		}
	}

	_, err := w.WriteString("</" + n.Tag + ">")
	return err
}

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

// escapeAttr escapes text for safe inclusion in a double-quoted attribute value.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}
