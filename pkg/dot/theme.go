package dot

// themeView is the merged heritable state of a graph and its theme
// chain: the root defaults, direct graph attributes, and role tables.
// Nodes, edges, and subgraphs never inherit.
type themeView struct {
	dGraph *attrs
	dNode  *attrs
	dEdge  *attrs
	graph  *attrs

	graphRoles roleTable
	nodeRoles  roleTable
	edgeRoles  roleTable
}

// newThemeView merges the theme chain farthest ancestor first, so
// nearer graphs win per attribute and per role attribute. Without a
// theme the view aliases the graph's own tables; serialization only
// reads them.
func newThemeView(g *Graph) *themeView {
	if g.theme == nil {
		return &themeView{
			dGraph:     &g.dGraph,
			dNode:      &g.dNode,
			dEdge:      &g.dEdge,
			graph:      &g.graph,
			graphRoles: g.graphRoles,
			nodeRoles:  g.nodeRoles,
			edgeRoles:  g.edgeRoles,
		}
	}

	chain := []*Graph{g}
	for t := g.theme; t != nil; t = t.theme {
		chain = append(chain, t)
	}

	v := &themeView{
		dGraph: &attrs{},
		dNode:  &attrs{},
		dEdge:  &attrs{},
		graph:  &attrs{},
	}
	for i := len(chain) - 1; i >= 0; i-- {
		t := chain[i]
		v.dGraph.update(&t.dGraph)
		v.dNode.update(&t.dNode)
		v.dEdge.update(&t.dEdge)
		v.graph.update(&t.graph)
		v.graphRoles.update(&t.graphRoles)
		v.nodeRoles.update(&t.nodeRoles)
		v.edgeRoles.update(&t.edgeRoles)
	}
	return v
}
