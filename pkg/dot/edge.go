package dot

// edgeKey identifies an edge globally. For non-directed graphs node1
// sorts at or before node2, so endpoint order does not matter to
// identity. The discriminant distinguishes parallel multigraph edges and
// is zero otherwise.
type edgeKey struct {
	node1 normID
	node2 normID
	disc  normID
}

type edge struct {
	p1, p2   normPort
	disc     normID
	directed bool
	attrs    attrs
}

func (e *edge) clone() *edge {
	c := *e
	c.attrs = *e.attrs.clone()
	return &c
}

// updatePorts applies an amendment's endpoints. Implicit endpoints leave
// the stored ports alone; explicit Ports replace them. For non-directed
// edges amended with reversed endpoint order, the stored sides swap.
func (e *edge) updatePorts(o1, o2 normPort) {
	p1, p2 := e.p1, e.p2
	if o1.node != p1.node {
		p1, p2 = p2, p1
	}
	if !o1.implicit {
		p1 = o1
	}
	if !o2.implicit {
		p2 = o2
	}
	e.p1, e.p2 = p1, p2
}

func (e *edge) connector() string {
	if e.directed {
		return " -> "
	}
	return " -- "
}

func (e *edge) render(r *nonceResolver) string {
	return e.p1.render(r) + e.connector() + e.p2.render(r)
}

// describe names the edge for error messages.
func (e *edge) describe() string {
	s := debugID(e.p1.node) + e.connector() + debugID(e.p2.node)
	if !e.disc.isZero() {
		s += " / " + debugID(e.disc)
	}
	return s
}
