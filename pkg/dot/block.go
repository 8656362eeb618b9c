package dot

import (
	"fmt"
	"slices"
)

// Block is a scope for graph and default attribute assignments and a
// container for node, edge, and subgraph definitions. Graph embeds
// Block; the other Block values are the ones Subgraph returns.
//
// There is a one-to-one correspondence between Block values and the
// graph and subgraph statements of the serialized output. A node or
// edge is emitted inside the block that first defined it, but node,
// edge, and subgraph identity is tracked at the root, so entities may
// be amended through any block of the same graph.
type Block struct {
	id     normID
	dGraph attrs
	dNode  attrs
	dEdge  attrs
	graph  attrs
	nodes  []normID
	edges  []*edge
	subs   []*Block
	subIDs map[normID]*Block
	parent *Block
	root   *Graph
}

// Root returns the enveloping graph.
func (b *Block) Root() *Graph { return b.root }

// Parent returns the parent block, or nil for the root graph.
func (b *Block) Parent() *Block { return b.parent }

// GraphDefault establishes or amends default graph attributes.
func (b *Block) GraphDefault(list ...Attr) error {
	return b.dGraph.apply(list, false)
}

// NodeDefault establishes or amends default node attributes.
func (b *Block) NodeDefault(list ...Attr) error {
	return b.dNode.apply(list, false)
}

// EdgeDefault establishes or amends default edge attributes.
func (b *Block) EdgeDefault(list ...Attr) error {
	return b.dEdge.apply(list, false)
}

// AllDefault establishes or amends default graph, node, and edge
// attributes all at once.
func (b *Block) AllDefault(list ...Attr) error {
	if err := b.dGraph.apply(list, false); err != nil {
		return err
	}
	if err := b.dNode.apply(list, false); err != nil {
		return err
	}
	return b.dEdge.apply(list, false)
}

// GraphAttrs establishes or amends attributes of the graph or subgraph
// itself, as opposed to defaults for contained entities.
func (b *Block) GraphAttrs(list ...Attr) error {
	return b.graph.apply(list, true)
}

// Node defines a node or amends its attributes. Node identity is global
// to the graph; the block determines only where the node statement
// appears.
func (b *Block) Node(id any, list ...Attr) error {
	_, err := b.node(id, list, false, false)
	return err
}

// DefineNode is Node, except the node must not already be defined.
func (b *Block) DefineNode(id any, list ...Attr) error {
	_, err := b.node(id, list, false, true)
	return err
}

// UpdateNode is Node, except the node must already be defined.
func (b *Block) UpdateNode(id any, list ...Attr) error {
	_, err := b.node(id, list, true, false)
	return err
}

// HasNode reports whether the identified node is defined.
func (b *Block) HasNode(id any) (bool, error) {
	key, err := normalizeID(id, "node identifier")
	if err != nil {
		return false, err
	}
	_, ok := b.root.nodeAttrs[key]
	return ok, nil
}

func (b *Block) node(id any, list []Attr, mustExist, mustNotExist bool) (normID, error) {
	key, err := normalizeID(id, "node identifier")
	if err != nil {
		return normID{}, err
	}
	na, ok := b.root.nodeAttrs[key]
	if !ok {
		if mustExist {
			return normID{}, fmt.Errorf("node %s: %w", debugID(key), ErrNotDefined)
		}
		na = &attrs{}
		b.root.nodeAttrs[key] = na
		b.nodes = append(b.nodes, key)
	} else if mustNotExist {
		return normID{}, fmt.Errorf("node %s: %w", debugID(key), ErrAlreadyDefined)
	}
	return key, na.apply(list, true)
}

// Edge defines an edge or amends its attributes and endpoints. The
// endpoints may be identifier values or Ports; only the node portion of
// a Port participates in edge identity. For non-directed graphs the
// endpoint pair is unordered, and amending with reversed endpoints
// swaps the emitted order. On multigraphs Edge always defines a new
// edge; use EdgeDisc to amend a specific one.
func (b *Block) Edge(point1, point2 any, list ...Attr) error {
	return b.edge(point1, point2, nil, list, false, false)
}

// EdgeDisc is Edge with an explicit discriminant distinguishing
// parallel edges between the same endpoints. Discriminants require a
// multigraph and never appear in the output. A nil discriminant means
// none was given.
func (b *Block) EdgeDisc(point1, point2, discriminant any, list ...Attr) error {
	return b.edge(point1, point2, discriminant, list, false, false)
}

// DefineEdge is Edge, except the edge must not already be defined.
func (b *Block) DefineEdge(point1, point2 any, list ...Attr) error {
	return b.edge(point1, point2, nil, list, false, true)
}

// DefineEdgeDisc is EdgeDisc, except the edge must not already be
// defined.
func (b *Block) DefineEdgeDisc(point1, point2, discriminant any, list ...Attr) error {
	return b.edge(point1, point2, discriminant, list, false, true)
}

// UpdateEdge is Edge, except the edge must already be defined.
func (b *Block) UpdateEdge(point1, point2 any, list ...Attr) error {
	return b.edge(point1, point2, nil, list, true, false)
}

// UpdateEdgeDisc is EdgeDisc, except the edge must already be defined.
func (b *Block) UpdateEdgeDisc(point1, point2, discriminant any, list ...Attr) error {
	return b.edge(point1, point2, discriminant, list, true, false)
}

// HasEdge reports whether the identified edge is defined. On a
// multigraph an omitted discriminant can never match, since edges
// defined without one received a private discriminant.
func (b *Block) HasEdge(point1, point2 any) (bool, error) {
	return b.HasEdgeDisc(point1, point2, nil)
}

// HasEdgeDisc reports whether the edge identified with a discriminant
// is defined.
func (b *Block) HasEdgeDisc(point1, point2, discriminant any) (bool, error) {
	key, _, _, _, err := b.edgePreamble(point1, point2, discriminant)
	if err != nil {
		return false, err
	}
	_, ok := b.root.edgeIndex[key]
	return ok, nil
}

// edgePreamble normalizes endpoints and discriminant and forms the
// global edge key. Multigraph edges without a discriminant get a fresh
// nonce one, so every such definition is a distinct edge.
func (b *Block) edgePreamble(point1, point2, discriminant any) (edgeKey, normPort, normPort, normID, error) {
	g := b.root
	np1, err := normalizePort(point1)
	if err != nil {
		return edgeKey{}, normPort{}, normPort{}, normID{}, err
	}
	np2, err := normalizePort(point2)
	if err != nil {
		return edgeKey{}, normPort{}, normPort{}, normID{}, err
	}

	var disc normID
	if discriminant != nil {
		if !g.multigraph {
			return edgeKey{}, normPort{}, normPort{}, normID{}, ErrNeedsMultigraph
		}
		if disc, err = normalizeID(discriminant, "edge discriminant"); err != nil {
			return edgeKey{}, normPort{}, normPort{}, normID{}, err
		}
	} else if g.multigraph {
		disc = normID{nonce: NewNoncePrefix("__D")}
	}

	key := edgeKey{np1.node, np2.node, disc}
	if !g.directed && compareIDs(np1.node, np2.node) > 0 {
		key = edgeKey{np2.node, np1.node, disc}
	}
	return key, np1, np2, disc, nil
}

func (b *Block) edge(point1, point2, discriminant any, list []Attr, mustExist, mustNotExist bool) error {
	g := b.root
	key, np1, np2, disc, err := b.edgePreamble(point1, point2, discriminant)
	if err != nil {
		return err
	}

	e, ok := g.edgeIndex[key]
	if !ok {
		e = &edge{p1: np1, p2: np2, disc: disc, directed: g.directed}
		if mustExist {
			advice := ""
			if g.multigraph {
				advice = " (missing or wrong discriminant?)"
			}
			return fmt.Errorf("edge %s%s: %w", e.describe(), advice, ErrNotDefined)
		}
		g.edgeIndex[key] = e
		b.edges = append(b.edges, e)
	} else {
		if mustNotExist {
			return fmt.Errorf("edge %s: %w", e.describe(), ErrAlreadyDefined)
		}
		e.updatePorts(np1, np2)
	}
	return e.attrs.apply(list, true)
}

// Subgraph returns the identified subgraph block, defining it first if
// needed. A nil id makes a fresh anonymous subgraph on every call.
// Subgraph identities are scoped to their parent block, so nesting
// same-named subgraphs is legal.
func (b *Block) Subgraph(id any) (*Block, error) {
	if id == nil {
		return b.addSubgraph(normID{}), nil
	}
	key, err := normalizeID(id, "subgraph identifier")
	if err != nil {
		return nil, err
	}
	if sub, ok := b.subIDs[key]; ok {
		return sub, nil
	}
	return b.addSubgraph(key), nil
}

// DefineSubgraph is Subgraph, except the subgraph must not already be
// defined.
func (b *Block) DefineSubgraph(id any) (*Block, error) {
	key, err := normalizeID(id, "subgraph identifier")
	if err != nil {
		return nil, err
	}
	if _, ok := b.subIDs[key]; ok {
		return nil, fmt.Errorf("subgraph %s: %w", debugID(key), ErrAlreadyDefined)
	}
	return b.addSubgraph(key), nil
}

// UpdateSubgraph is Subgraph, except the subgraph must already be
// defined.
func (b *Block) UpdateSubgraph(id any) (*Block, error) {
	key, err := normalizeID(id, "subgraph identifier")
	if err != nil {
		return nil, err
	}
	sub, ok := b.subIDs[key]
	if !ok {
		return nil, fmt.Errorf("subgraph %s: %w", debugID(key), ErrNotDefined)
	}
	return sub, nil
}

// HasSubgraph reports whether the identified subgraph is defined in
// this block.
func (b *Block) HasSubgraph(id any) (bool, error) {
	key, err := normalizeID(id, "subgraph identifier")
	if err != nil {
		return false, err
	}
	_, ok := b.subIDs[key]
	return ok, nil
}

func (b *Block) addSubgraph(key normID) *Block {
	sub := &Block{id: key, parent: b, root: b.root}
	b.subs = append(b.subs, sub)
	if !key.isZero() {
		if b.subIDs == nil {
			b.subIDs = make(map[normID]*Block)
		}
		b.subIDs[key] = sub
	}
	return sub
}

// cloneInto deep copies the block into dst. Edges are shared across the
// root index and block lists, so the caller supplies the old-to-new
// edge mapping.
func (b *Block) cloneInto(dst *Block, root *Graph, parent *Block, edgeCopies map[*edge]*edge) {
	dst.id = b.id
	dst.dGraph = *b.dGraph.clone()
	dst.dNode = *b.dNode.clone()
	dst.dEdge = *b.dEdge.clone()
	dst.graph = *b.graph.clone()
	dst.nodes = slices.Clone(b.nodes)
	dst.parent = parent
	dst.root = root
	for _, e := range b.edges {
		dst.edges = append(dst.edges, edgeCopies[e])
	}
	for _, sub := range b.subs {
		c := &Block{}
		sub.cloneInto(c, root, dst, edgeCopies)
		dst.subs = append(dst.subs, c)
		if !c.id.isZero() {
			if dst.subIDs == nil {
				dst.subIDs = make(map[normID]*Block)
			}
			dst.subIDs[c.id] = c
		}
	}
}
