package dot

import "fmt"

// nonceResolver assigns concrete identifiers to nonces for one
// serialization pass. The avoid set holds every literal identifier
// reachable from the graph and its merged view, so generated
// identifiers can never collide with application text or each other.
type nonceResolver struct {
	avoid       map[string]bool
	nonceID     map[*Nonce]string
	prefixSeqno map[string]int
}

func newNonceResolver(g *Graph, view *themeView) *nonceResolver {
	r := &nonceResolver{
		avoid:       make(map[string]bool),
		nonceID:     make(map[*Nonce]string),
		prefixSeqno: make(map[string]int),
	}

	add := func(id normID) {
		if id.nonce == nil && !id.isZero() {
			r.avoid[id.text] = true
		}
	}
	addAttrs := func(a *attrs) {
		for _, k := range a.keys {
			add(a.vals[k])
		}
	}
	addRoles := func(t *roleTable) {
		for _, name := range t.names {
			addAttrs(t.roles[name])
		}
	}

	add(g.id)
	addAttrs(view.dGraph)
	addAttrs(view.dNode)
	addAttrs(view.dEdge)
	addAttrs(view.graph)
	addRoles(&view.graphRoles)
	addRoles(&view.nodeRoles)
	addRoles(&view.edgeRoles)

	for key, na := range g.nodeAttrs {
		add(key)
		addAttrs(na)
	}
	for _, e := range g.edgeIndex {
		add(e.p1.node)
		add(e.p1.name)
		add(e.p2.node)
		add(e.p2.name)
		addAttrs(&e.attrs)
	}

	var walk func(b *Block)
	walk = func(b *Block) {
		add(b.id)
		addAttrs(&b.dGraph)
		addAttrs(&b.dNode)
		addAttrs(&b.dEdge)
		addAttrs(&b.graph)
		for _, sub := range b.subs {
			walk(sub)
		}
	}
	for _, sub := range g.subs {
		walk(sub)
	}
	return r
}

// resolve returns the literal text of an identifier, assigning
// prefix_N text to a nonce on first sight. Seqno counters run per
// prefix and skip over avoided identifiers.
func (r *nonceResolver) resolve(id normID) string {
	if id.nonce == nil {
		return id.text
	}
	if resolved, ok := r.nonceID[id.nonce]; ok {
		return resolved
	}
	prefix := id.nonce.prefix
	seqno := r.prefixSeqno[prefix]
	for {
		seqno++
		candidate := normText(fmt.Sprintf("%s_%d", prefix, seqno))
		if !r.avoid[candidate] {
			r.avoid[candidate] = true
			r.nonceID[id.nonce] = candidate
			r.prefixSeqno[prefix] = seqno
			return candidate
		}
	}
}
