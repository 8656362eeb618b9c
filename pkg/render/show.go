package render

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dotforge/dotforge/pkg/dot"
)

// Displayer presents rendered artifacts to the user. Implementations
// back ends such as notebook kernels, terminal image protocols, or a
// browser preview.
type Displayer interface {
	// DisplaySVG presents an SVG document.
	DisplaySVG(svg string) error

	// DisplayImage presents a binary raster image.
	DisplayImage(data []byte) error

	// DisplayMarkdown presents explanatory markdown text.
	DisplayMarkdown(text string) error

	// DisplayCode presents source code, such as DOT text.
	DisplayCode(code string) error
}

// Show renders the graph and hands the result to the displayer. SVG
// formats display as SVG, everything else as an image; the default
// format is svg.
//
// When the Graphviz invocation fails, Show displays a markdown
// explanation instead and returns an error wrapping both ErrShowFailed
// and the underlying invocation failure. Serialization errors pass
// through untouched.
func Show(ctx context.Context, g *dot.Graph, d Displayer, opts Options) error {
	if d == nil {
		return ErrNoDisplayer
	}

	format := strings.ToLower(opts.Format)
	if format == "" {
		format = "svg"
	}
	opts.Format = format

	data, err := Render(ctx, g, opts)
	if err != nil {
		if msg, ok := explainFailure(err); ok {
			_ = d.DisplayMarkdown(msg)
			return fmt.Errorf("%w: %w", ErrShowFailed, err)
		}
		return err
	}

	if format == "svg" || format == "svg_inline" {
		return d.DisplaySVG(string(data))
	}
	return d.DisplayImage(data)
}

// ShowSource hands the graph's DOT text to the displayer as code.
func ShowSource(g *dot.Graph, d Displayer) error {
	if d == nil {
		return ErrNoDisplayer
	}
	text, err := g.DOT()
	if err != nil {
		return err
	}
	return d.DisplayCode(text)
}

// explainFailure renders invocation failures as user-facing markdown.
func explainFailure(err error) (string, bool) {
	var inv *InvocationError
	var exit *ExitError
	var timeout *TimeoutError
	switch {
	case errors.As(err, &inv):
		return fmt.Sprintf("**The program `%s` could not be invoked:**\n\n```\n%v\n```",
			inv.Program, inv.Err), true
	case errors.As(err, &exit):
		return fmt.Sprintf("**The program `%s` exited with status `%d`:**\n\n```\n%s\n```",
			exit.Program, exit.Status, exit.Stderr), true
	case errors.As(err, &timeout):
		return fmt.Sprintf("**The program `%s` timed out after %s.**",
			timeout.Program, timeout.Timeout), true
	}
	return "", false
}
