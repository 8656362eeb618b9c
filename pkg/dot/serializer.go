package dot

import "strings"

// DOT returns the graph's DOT language representation.
//
// Serialization is read-only and repeatable. It fails only when an
// assigned role was never defined or, transitively, when the theme
// chain produces such a role.
func (g *Graph) DOT() (string, error) {
	var lines []string

	if g.comment != "" {
		c := strings.ReplaceAll(g.comment, "\r\n", "\n")
		c = strings.TrimSuffix(c, "\n")
		for _, l := range strings.Split(c, "\n") {
			lines = append(lines, "// "+l)
		}
		lines = append(lines, "")
	}

	view := newThemeView(g)
	resolver := newNonceResolver(g, view)

	header := ""
	if g.strict {
		header += "strict "
	}
	if g.directed {
		header += "digraph "
	} else {
		header += "graph "
	}
	if !g.id.isZero() {
		header += resolver.resolve(g.id) + " "
	}
	lines = append(lines, header+"{")

	if err := g.statements(&lines, 1, view, resolver); err != nil {
		return "", err
	}

	lines = append(lines, "}\n")
	return strings.Join(lines, "\n"), nil
}

// statements appends the block's statements to lines at the given
// indent. Statement groups are separated by blank lines, except that
// short blocks, and blocks where only one separator survives, collapse
// to no blank lines at all.
func (b *Block) statements(lines *[]string, indent int, view *themeView, resolver *nonceResolver) error {
	prefix := strings.Repeat("    ", indent)
	base := len(*lines)
	blanklines := 0

	statement := func(s string, a *attrs) {
		s = prefix + s
		if a != nil && a.len() > 0 {
			pieces := make([]string, 0, a.len())
			for _, k := range a.keys {
				v := resolver.resolve(a.vals[k])
				if textAttrs[k] {
					v = preferQuoted(v)
				}
				pieces = append(pieces, k+"="+v)
			}
			s += " [" + strings.Join(pieces, " ") + "]"
		}
		*lines = append(*lines, s)
	}

	blankline := func() {
		if (*lines)[len(*lines)-1] != "" {
			*lines = append(*lines, "")
			blanklines++
		}
	}

	blankline()

	// The root block serializes the merged view; subgraph defaults and
	// graph attributes never inherit.
	dGraph, dNode, dEdge, graphAttrs := &b.dGraph, &b.dNode, &b.dEdge, &b.graph
	if b.parent == nil {
		dGraph, dNode, dEdge, graphAttrs = view.dGraph, view.dNode, view.dEdge, view.graph
	}

	if dGraph.len() > 0 {
		statement("graph", dGraph)
	}
	if dNode.len() > 0 {
		statement("node", dNode)
	}
	if dEdge.len() > 0 {
		statement("edge", dEdge)
	}

	identity := ""
	if !b.id.isZero() {
		identity = debugID(b.id)
	}
	merged, err := mergeRole(graphAttrs, &view.graphRoles, "graph", identity)
	if err != nil {
		return err
	}

	blankline()
	for _, k := range merged.keys {
		if k == "label" {
			continue
		}
		v := resolver.resolve(merged.vals[k])
		if textAttrs[k] {
			v = preferQuoted(v)
		}
		statement(k+"="+v, nil)
	}

	blankline()
	for _, key := range b.nodes {
		na, err := mergeRole(b.root.nodeAttrs[key], &view.nodeRoles, "node", debugID(key))
		if err != nil {
			return err
		}
		statement(resolver.resolve(key), na)
	}

	blankline()
	for _, e := range b.edges {
		ea, err := mergeRole(&e.attrs, &view.edgeRoles, "edge", e.describe())
		if err != nil {
			return err
		}
		statement(e.render(resolver), ea)
	}

	for _, sub := range b.subs {
		blankline()
		head := prefix + "subgraph "
		if !sub.id.isZero() {
			head += resolver.resolve(sub.id) + " "
		}
		*lines = append(*lines, head+"{")
		if err := sub.statements(lines, indent+1, view, resolver); err != nil {
			return err
		}
		*lines = append(*lines, prefix+"}")
	}

	// A label on the block goes last so it reads as a caption.
	if v, ok := merged.get("label"); ok {
		blankline()
		statement("label="+preferQuoted(resolver.resolve(v)), nil)
	}

	if (*lines)[len(*lines)-1] == "" {
		*lines = (*lines)[:len(*lines)-1]
		blanklines--
	}

	if len(*lines)-base-blanklines <= 8 || blanklines == 1 {
		kept := (*lines)[:base]
		for _, l := range (*lines)[base:] {
			if l != "" {
				kept = append(kept, l)
			}
		}
		*lines = kept
	}
	return nil
}
