package dot

import "sync/atomic"

// Creation order gives nonces a stable total order, which keeps
// non-directed edge keys deterministic.
var nonceSeq atomic.Uint64

// Nonce is an opaque identifier placeholder. Two Nonce pointers refer to
// the same identifier exactly when they are the same pointer, no matter
// where they appear in a graph or its themes.
//
// Each serialization resolves every reachable nonce to a concrete
// identifier of the form prefix_N, choosing N so the result collides
// neither with any literal identifier in the graph and its theme chain
// nor with another resolved nonce. Resolution is not sticky: a nonce may
// resolve differently once the surrounding graph changes.
type Nonce struct {
	prefix string
	seq    uint64
}

// NewNonce returns a fresh placeholder with the default prefix "_nonce".
func NewNonce() *Nonce {
	return NewNoncePrefix("_nonce")
}

// NewNoncePrefix returns a fresh placeholder whose resolved identifiers
// start with the given prefix.
func NewNoncePrefix(prefix string) *Nonce {
	return &Nonce{prefix: prefix, seq: nonceSeq.Add(1)}
}

// Prefix returns the prefix resolved identifiers will start with.
func (n *Nonce) Prefix() string {
	return n.prefix
}
