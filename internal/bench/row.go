package bench

import (
	"strconv"

	"github.com/vango-dev/hydrate/pkg/bitset"
	"github.com/vango-dev/hydrate/pkg/component"
	"github.com/vango-dev/hydrate/pkg/dom"
	"github.com/vango-dev/hydrate/pkg/hydrate"
)

const (
	slotLabel = iota
	slotCount
)

// row renders <b>{label}</b><span>{count}</span>.
type row struct {
	h   *hydrate.Hydrator
	ctx []any

	b, label, span, count *dom.Node
}

func (f *row) Create() {
	f.b = hydrate.Element("b")
	f.label = hydrate.Text(f.ctx[slotLabel].(string))
	f.span = hydrate.Element("span")
	f.count = hydrate.Text(strconv.Itoa(f.ctx[slotCount].(int)))
}

func (f *row) Claim(nodes *hydrate.NodeList) {
	f.b = f.h.ClaimElement(nodes, "b", nil)
	inner := hydrate.Children(f.b)
	f.label = f.h.ClaimText(inner, f.ctx[slotLabel].(string))
	inner.DetachRemaining()

	f.span = f.h.ClaimElement(nodes, "span", nil)
	inner = hydrate.Children(f.span)
	f.count = f.h.ClaimText(inner, strconv.Itoa(f.ctx[slotCount].(int)))
	inner.DetachRemaining()
}

func (f *row) Mount(target, anchor *dom.Node) {
	f.h.Insert(target, f.b, anchor)
	f.h.Append(f.b, f.label)
	f.h.Insert(target, f.span, anchor)
	f.h.Append(f.span, f.count)
}

func (f *row) Update(ctx []any, dirty bitset.Set) {
	if dirty.Has(slotLabel) {
		hydrate.SetData(f.label, ctx[slotLabel].(string))
	}
	if dirty.Has(slotCount) {
		hydrate.SetData(f.count, strconv.Itoa(ctx[slotCount].(int)))
	}
}

func (f *row) Destroy(detach bool) {
	if detach {
		hydrate.Detach(f.b)
		hydrate.Detach(f.span)
	}
}

func rowDefinition(h *hydrate.Hydrator) *component.Definition {
	return &component.Definition{
		Name:  "Row",
		Slots: 2,
		Props: map[string]int{"label": slotLabel, "count": slotCount},
		Instance: func(c *component.Instance, props map[string]any, invalidate component.Invalidate) []any {
			label, _ := props["label"].(string)
			count, _ := props["count"].(int)
			return []any{label, count}
		},
		Fragment: func(ctx []any) component.Fragment {
			return &row{h: h, ctx: ctx}
		},
	}
}
