package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/dotforge/dotforge/pkg/dot"
)

// Embedded renders the graph with the bundled WASM build of Graphviz,
// so no external installation is needed. The engine supports a smaller
// format set than the command line programs: svg, png, jpg, and dot.
func Embedded(ctx context.Context, g *dot.Graph, format string) ([]byte, error) {
	text, err := g.DOT()
	if err != nil {
		return nil, err
	}
	return EmbeddedSource(ctx, text, format)
}

// EmbeddedSource renders already-serialized DOT text with the bundled
// WASM engine.
func EmbeddedSource(ctx context.Context, text string, format string) ([]byte, error) {
	var gvFormat graphviz.Format
	switch strings.ToLower(format) {
	case "", "svg":
		gvFormat = graphviz.SVG
	case "png":
		gvFormat = graphviz.PNG
	case "jpg", "jpeg":
		gvFormat = graphviz.JPG
	case "dot", "xdot":
		gvFormat = graphviz.XDOT
	default:
		return nil, fmt.Errorf("%s: %w", format, ErrUnknownFormat)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
