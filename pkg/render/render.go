// Package render turns dot.Graph values into images by invoking
// Graphviz, either as an external program or through the embedded WASM
// engine.
package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dotforge/dotforge/pkg/dot"
)

// Options configures a Graphviz invocation. The zero value runs "dot"
// from PATH producing PNG output with no size constraints and no
// timeout.
type Options struct {
	// Program is the Graphviz layout program, "dot" when empty.
	Program string

	// Dir, when set, makes Program a path relative to it. Useful for
	// pinning a specific Graphviz installation.
	Dir string

	// Format is the output format, lowercased to form the -T argument.
	// Defaults to "png".
	Format string

	// DPI sets -Gdpi when positive.
	DPI float64

	// Size sets -Gsize when non-empty, for example "5,5".
	Size string

	// Ratio sets -Gratio when non-empty.
	Ratio string

	// Timeout kills the program after this long when positive.
	Timeout time.Duration
}

func (o Options) program() string {
	p := o.Program
	if p == "" {
		p = "dot"
	}
	if o.Dir != "" {
		p = filepath.Join(o.Dir, p)
	}
	return p
}

func (o Options) args() []string {
	format := o.Format
	if format == "" {
		format = "png"
	}
	args := []string{"-T" + strings.ToLower(format)}
	if o.DPI > 0 {
		args = append(args, "-Gdpi="+strconv.FormatFloat(o.DPI, 'g', -1, 64))
	}
	if o.Size != "" {
		args = append(args, "-Gsize="+o.Size)
	}
	if o.Ratio != "" {
		args = append(args, "-Gratio="+o.Ratio)
	}
	return args
}

// Render serializes the graph and pipes it through a Graphviz program,
// returning the program's output bytes.
func Render(ctx context.Context, g *dot.Graph, opts Options) ([]byte, error) {
	text, err := g.DOT()
	if err != nil {
		return nil, err
	}
	return Source(ctx, text, opts)
}

// Source renders DOT text that has already been serialized.
func Source(ctx context.Context, text string, opts Options) ([]byte, error) {
	return invoke(ctx, opts.program(), opts.args(), []byte(text), opts.Timeout)
}

// SVG renders the graph as an SVG document string. With inline set it
// requests svg_inline output, which omits the XML header; note that
// older Graphviz releases do not support it.
func SVG(ctx context.Context, g *dot.Graph, inline bool, opts Options) (string, error) {
	opts.Format = "svg"
	if inline {
		opts.Format = "svg_inline"
	}
	data, err := Render(ctx, g, opts)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Extensions from which Save infers the output format.
var saveFormats = map[string]bool{
	"svg": true, "png": true, "jpg": true,
	"jpeg": true, "gif": true, "pdf": true,
}

// Save renders the graph and writes the result to filename. When
// opts.Format is empty the format is inferred from the file extension
// by case-insensitive comparison; an unrecognized extension is an
// ErrUnknownFormat error. With exclusive set, Save fails if the file
// already exists.
//
// The data is rendered fully before the file is opened, so a render
// failure leaves no partial file behind.
func Save(ctx context.Context, g *dot.Graph, filename string, exclusive bool, opts Options) error {
	if opts.Format == "" {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
		if !saveFormats[ext] {
			return fmt.Errorf("%s: %w", filename, ErrUnknownFormat)
		}
		opts.Format = ext
	}

	data, err := Render(ctx, g, opts)
	if err != nil {
		return err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if exclusive {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(filename, flags, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
