package render

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// invoke runs a Graphviz program with the DOT text on stdin and returns
// its stdout. Failures map onto the package error types; stderr is
// captured for ExitError and TimeoutError even when the process was
// killed mid-write.
func invoke(ctx context.Context, program string, args []string, input []byte, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, program, args...)
	cmd.Stdin = bytes.NewReader(input)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}

	if timeout > 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, &TimeoutError{Program: program, Timeout: timeout, Stderr: stderr.String()}
	}

	var exit *exec.ExitError
	if errors.As(err, &exit) {
		return nil, &ExitError{Program: program, Status: exit.ExitCode(), Stderr: stderr.String()}
	}
	return nil, &InvocationError{Program: program, Err: err}
}
