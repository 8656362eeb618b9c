// Package dot builds Graphviz DOT language text.
//
// A Graph collects graph, node, and edge definitions through an
// amendable API and serializes them with DOT. Identifier values may be
// strings, numbers, bools, Markup, or Nonce placeholders; they are
// validated eagerly and quoted or escaped as the DOT grammar requires.
// Roles and themes let attribute values be assigned indirectly and
// shared between graphs.
package dot

import "fmt"

// Options configures a new Graph. The zero value is a plain non-strict,
// non-directed graph with no identifier and no comment.
type Options struct {
	// ID is the optional graph identifier.
	ID any

	// Directed selects a digraph.
	Directed bool

	// Strict includes the strict keyword. It is rarely useful here
	// since edge identity already guarantees uniqueness outside
	// multigraphs.
	Strict bool

	// Multigraph permits parallel edges between the same endpoint
	// pair. It changes edge amendment behavior only; the output
	// language is unaffected.
	Multigraph bool

	// Comment is possibly multiline text emitted before the graph as
	// // comments.
	Comment string
}

// Graph is the root block of a DOT document plus everything global to
// it: graph options, role definitions, node and edge identity, and the
// theme link.
type Graph struct {
	Block

	directed   bool
	strict     bool
	multigraph bool
	comment    string

	graphRoles roleTable
	nodeRoles  roleTable
	edgeRoles  roleTable

	nodeAttrs map[normID]*attrs
	edgeIndex map[edgeKey]*edge

	theme *Graph
}

// New returns an empty graph.
func New(opts Options) (*Graph, error) {
	if opts.Strict && opts.Multigraph {
		return nil, ErrStrictMultigraph
	}
	g := &Graph{
		directed:   opts.Directed,
		strict:     opts.Strict,
		multigraph: opts.Multigraph,
		comment:    opts.Comment,
		nodeAttrs:  make(map[normID]*attrs),
		edgeIndex:  make(map[edgeKey]*edge),
	}
	g.root = g
	if opts.ID != nil {
		id, err := normalizeID(opts.ID, "graph identifier")
		if err != nil {
			return nil, err
		}
		g.id = id
	}
	return g, nil
}

// Directed reports whether the graph is a digraph.
func (g *Graph) Directed() bool { return g.directed }

// Strict reports whether the graph carries the strict keyword.
func (g *Graph) Strict() bool { return g.strict }

// Multigraph reports whether the graph permits parallel edges.
func (g *Graph) Multigraph() bool { return g.multigraph }

// Comment returns the comment text emitted before the graph.
func (g *Graph) Comment() string { return g.comment }

// GraphRole defines a graph role or amends its attributes. Entities
// assign roles through the reserved "role" attribute; during
// serialization the role's attributes fill in values the entity did not
// assign explicitly. Roles may be assigned before they are defined, but
// serialization fails on roles never defined.
func (g *Graph) GraphRole(name any, list ...Attr) error {
	return g.defineRole(&g.graphRoles, name, list)
}

// NodeRole defines a node role or amends its attributes.
func (g *Graph) NodeRole(name any, list ...Attr) error {
	return g.defineRole(&g.nodeRoles, name, list)
}

// EdgeRole defines an edge role or amends its attributes.
func (g *Graph) EdgeRole(name any, list ...Attr) error {
	return g.defineRole(&g.edgeRoles, name, list)
}

// AllRole defines or amends same-named graph, node, and edge roles all
// at once.
func (g *Graph) AllRole(name any, list ...Attr) error {
	key, err := normalizeID(name, "role name")
	if err != nil {
		return err
	}
	if err := g.graphRoles.role(key).apply(list, false); err != nil {
		return err
	}
	if err := g.nodeRoles.role(key).apply(list, false); err != nil {
		return err
	}
	return g.edgeRoles.role(key).apply(list, false)
}

// Role names are normalized like any identifier, since that is the form
// they take when assigned as attribute values.
func (g *Graph) defineRole(t *roleTable, name any, list []Attr) error {
	key, err := normalizeID(name, "role name")
	if err != nil {
		return err
	}
	return t.role(key).apply(list, false)
}

// UseTheme makes the graph inherit default, graph, and role attribute
// values from theme, replacing any previous theme. A nil theme clears
// inheritance.
//
// Inheritance chains: themes may use themes, and serialization merges
// the whole chain with nearer links winning. Theme use is dynamic; a
// later change to any graph in the chain shows up in the next
// serialization.
func (g *Graph) UseTheme(theme *Graph) error {
	for t := theme; t != nil; t = t.theme {
		if t == g {
			return fmt.Errorf("%s: %w", debugID(g.id), ErrThemeCycle)
		}
	}
	g.theme = theme
	return nil
}

// Theme returns the graph the receiver inherits from, or nil.
func (g *Graph) Theme() *Graph { return g.theme }

// Clone returns a deep copy of the graph. The copy shares nothing
// mutable with the original except the theme, which both reference
// identically, and any Nonce placeholders, which keep their identity so
// they still resolve consistently inside the copy.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		directed:   g.directed,
		strict:     g.strict,
		multigraph: g.multigraph,
		comment:    g.comment,
		graphRoles: g.graphRoles.clone(),
		nodeRoles:  g.nodeRoles.clone(),
		edgeRoles:  g.edgeRoles.clone(),
		nodeAttrs:  make(map[normID]*attrs, len(g.nodeAttrs)),
		edgeIndex:  make(map[edgeKey]*edge, len(g.edgeIndex)),
		theme:      g.theme,
	}
	for key, na := range g.nodeAttrs {
		c.nodeAttrs[key] = na.clone()
	}
	edgeCopies := make(map[*edge]*edge, len(g.edgeIndex))
	for key, e := range g.edgeIndex {
		ec := e.clone()
		edgeCopies[e] = ec
		c.edgeIndex[key] = ec
	}
	g.Block.cloneInto(&c.Block, c, nil, edgeCopies)
	return c
}

// CloneWith is Clone with a replacement identifier and comment. A nil
// id keeps the original identifier. The comment must be a string or
// nil: nil keeps the original comment, and an empty string clears it.
func (g *Graph) CloneWith(id, comment any) (*Graph, error) {
	c := g.Clone()
	if id != nil {
		nid, err := normalizeID(id, "graph identifier")
		if err != nil {
			return nil, err
		}
		c.id = nid
	}
	if comment != nil {
		s, ok := comment.(string)
		if !ok {
			return nil, fmt.Errorf("graph comment %v: %w", comment, ErrInvalidID)
		}
		c.comment = s
	}
	return c, nil
}
