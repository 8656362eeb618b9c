package dot

import "errors"

// Sentinel errors returned by graph construction and serialization.
// Wrapped errors carry context about the offending entity; use errors.Is
// to classify.
var (
	// ErrInvalidID indicates a value that cannot serve as a DOT identifier.
	ErrInvalidID = errors.New("not a valid identifier")

	// ErrInvalidCompass indicates a compass point outside the DOT grammar.
	ErrInvalidCompass = errors.New("invalid compass point")

	// ErrRoleReserved indicates a "role" attribute assignment where roles
	// are not allowed (defaults and role definitions).
	ErrRoleReserved = errors.New(`attribute "role" is not allowed here`)

	// ErrRoleNotDefined indicates serialization found a role assignment
	// with no matching role definition.
	ErrRoleNotDefined = errors.New("role not defined")

	// ErrNeedsMultigraph indicates an edge discriminant on a graph that
	// was not constructed as a multigraph.
	ErrNeedsMultigraph = errors.New("discriminant requires a multigraph")

	// ErrAlreadyDefined indicates a define-only operation on an existing
	// entity.
	ErrAlreadyDefined = errors.New("already defined")

	// ErrNotDefined indicates an update-only operation on a missing
	// entity.
	ErrNotDefined = errors.New("not defined")

	// ErrThemeCycle indicates a UseTheme call that would make the theme
	// chain circular.
	ErrThemeCycle = errors.New("theme chain would form a cycle")

	// ErrStrictMultigraph indicates a graph constructed as both strict
	// and multigraph.
	ErrStrictMultigraph = errors.New("cannot be both strict and multigraph")
)
