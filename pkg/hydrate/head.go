package hydrate

import (
	"strings"

	"github.com/vango-dev/hydrate/pkg/dom"
)

// HeadSelector collects the <head> nodes a component rendered on the server.
// They sit between <!--HEAD_id_START--> and <!--HEAD_id_END--> comments; the
// markers are included so they are detached with the other unclaimed nodes.
func HeadSelector(id string, head *dom.Node) *NodeList {
	start := "HEAD_" + id + "_START"
	end := "HEAD_" + id + "_END"

	var result []*dom.Node
	started := 0
	for _, n := range head.ChildNodes() {
		if n.Type == dom.CommentNode {
			switch strings.TrimSpace(n.Data) {
			case end:
				started--
				result = append(result, n)
			case start:
				started++
				result = append(result, n)
			}
			continue
		}
		if started > 0 {
			result = append(result, n)
		}
	}
	return NewNodeList(result)
}
