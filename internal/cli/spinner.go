package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a progress indicator on one terminal line while a
// render is in flight, and tracks how long the render took so the
// completion log can report it. The animation stops on its own when
// the context is cancelled, so Ctrl+C leaves no stray frames behind.
type spinner struct {
	message string
	out     io.Writer
	started time.Time
	ctx     context.Context
	cancel  context.CancelFunc
	halt    chan struct{}
	parked  chan struct{}
	stop    sync.Once
	mu      sync.Mutex
}

// newSpinner creates a spinner writing to stderr.
func newSpinner(ctx context.Context, message string) *spinner {
	return newSpinnerTo(ctx, os.Stderr, message)
}

func newSpinnerTo(ctx context.Context, out io.Writer, message string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &spinner{
		message: message,
		out:     out,
		started: time.Now(),
		ctx:     ctx,
		cancel:  cancel,
		halt:    make(chan struct{}),
		parked:  make(chan struct{}),
	}
}

// Start begins the animation. Call Stop before writing anything else
// to the spinner's line.
func (s *spinner) Start() {
	go func() {
		defer close(s.parked)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.halt:
				return
			case <-ticker.C:
				frame := spinnerFrames[i%len(spinnerFrames)]
				s.mu.Lock()
				fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
				s.mu.Unlock()
			}
		}
	}()
}

// Stop halts the animation and clears the line. Safe to call more
// than once.
func (s *spinner) Stop() {
	s.stop.Do(func() {
		s.cancel()
		close(s.halt)
	})
	<-s.parked
	s.clearLine()
}

// Elapsed reports how long the spinner has been running, rounded to
// the nearest millisecond.
func (s *spinner) Elapsed() time.Duration {
	return time.Since(s.started).Round(time.Millisecond)
}

func (s *spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}
