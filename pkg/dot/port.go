package dot

import "fmt"

// Port is an edge endpoint. Graphviz lets endpoints name a node, an
// optional port within the node, and an optional compass point. The DOT
// grammar calls only the latter two the port; this type bundles all
// three for convenience.
//
// Compass must be one of "n", "ne", "e", "se", "s", "sw", "w", "nw",
// "c", or "_". The empty string and "_" both mean no compass point.
type Port struct {
	Node    any
	Name    any
	Compass string
}

var compassPoints = map[string]bool{
	"n": true, "ne": true, "e": true, "se": true,
	"s": true, "sw": true, "w": true, "nw": true, "c": true,
}

// normPort is the normalized, mutation-safe form of an endpoint.
// implicit means the caller supplied a bare identifier rather than a
// Port, so an amendment with it must not clobber a stored port.
type normPort struct {
	node     normID
	name     normID
	compass  string
	implicit bool
}

func normalizePort(point any) (normPort, error) {
	p, ok := point.(Port)
	if !ok {
		node, err := normalizeID(point, "endpoint node identifier")
		if err != nil {
			return normPort{}, err
		}
		return normPort{node: node, implicit: true}, nil
	}

	np := normPort{}
	var err error
	if np.node, err = normalizeID(p.Node, "endpoint node identifier"); err != nil {
		return normPort{}, err
	}
	if p.Name != nil {
		if np.name, err = normalizeID(p.Name, "endpoint port field"); err != nil {
			return normPort{}, err
		}
	}
	switch {
	case p.Compass == "" || p.Compass == "_":
	case compassPoints[p.Compass]:
		np.compass = p.Compass
	default:
		return normPort{}, fmt.Errorf("%q: %w", p.Compass, ErrInvalidCompass)
	}
	return np, nil
}

// render produces the endpoint's DOT text. A port name that happens to
// spell a compass point must be quoted to keep its meaning.
func (p normPort) render(r *nonceResolver) string {
	s := r.resolve(p.node)
	if !p.name.isZero() {
		name := r.resolve(p.name)
		if compassPoints[name] {
			name = `"` + name + `"`
		}
		s += ":" + name
	}
	if p.compass != "" {
		s += ":" + p.compass
	}
	return s
}
