package render

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnknownFormat indicates an output format that is neither given
	// nor inferable from a file extension.
	ErrUnknownFormat = errors.New("cannot infer output format")

	// ErrNoDisplayer indicates a Show call with no Displayer.
	ErrNoDisplayer = errors.New("no displayer configured")

	// ErrShowFailed indicates Show rendered an explanation instead of
	// the graph. The returned error also wraps the underlying render
	// failure.
	ErrShowFailed = errors.New("could not show graph")
)

// InvocationError reports that a Graphviz program could not be started,
// most often because it was not found.
type InvocationError struct {
	Program string
	Err     error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("could not run program %s: %v", e.Program, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

// ExitError reports that a Graphviz program exited with a non-zero
// status.
type ExitError struct {
	Program string
	Status  int
	Stderr  string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("program %s exited with status %d", e.Program, e.Status)
}

// TimeoutError reports that a Graphviz program exceeded the configured
// timeout and was killed. Stderr holds whatever the program wrote
// before it died.
type TimeoutError struct {
	Program string
	Timeout time.Duration
	Stderr  string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("program %s timed out after %s", e.Program, e.Timeout)
}
