package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dotforge/dotforge/pkg/cache"
	"github.com/dotforge/dotforge/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string  // output file path, derived from the input when empty
	format   string  // output format, inferred from the output extension when empty
	program  string  // Graphviz layout program
	dir      string  // Graphviz installation directory
	dpi      float64 // -Gdpi value
	size     string  // -Gsize value
	ratio    string  // -Gratio value
	timeout  int     // invocation timeout in seconds
	embedded bool    // use the bundled WASM engine
	noCache  bool    // bypass the render cache
}

// renderCommand creates the render command for turning DOT files into
// images. Flags override config values; config values override the
// built-in defaults (program "dot", format inferred from the output).
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <file.dot>",
		Short: "Render a DOT file to an image",
		Long:  `Render reads DOT text from a file (or stdin with "-") and pipes it through a Graphviz layout program. Repeated renders of unchanged input are served from the cache.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, &opts)
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with the format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg, png, jpg, jpeg, gif, pdf")
	cmd.Flags().StringVar(&opts.program, "program", "", "Graphviz layout program (default: dot)")
	cmd.Flags().StringVar(&opts.dir, "program-dir", "", "directory holding the Graphviz programs")
	cmd.Flags().Float64Var(&opts.dpi, "dpi", 0, "output resolution (-Gdpi)")
	cmd.Flags().StringVar(&opts.size, "size", "", "maximum size in inches, e.g. 5,5 (-Gsize)")
	cmd.Flags().StringVar(&opts.ratio, "ratio", "", "aspect ratio (-Gratio)")
	cmd.Flags().IntVar(&opts.timeout, "timeout", 0, "timeout in seconds for the layout program")
	cmd.Flags().BoolVar(&opts.embedded, "embedded", false, "render with the bundled engine, no Graphviz installation needed")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the render cache")

	return cmd
}

// applyConfig fills in flag values the user did not set from the config
// file.
func (c *CLI) applyConfig(cmd *cobra.Command, opts *renderOpts) {
	cfg := c.Config
	set := cmd.Flags().Changed
	if !set("format") && cfg.Format != "" {
		opts.format = cfg.Format
	}
	if !set("program") && cfg.Program != "" {
		opts.program = cfg.Program
	}
	if !set("program-dir") && cfg.Dir != "" {
		opts.dir = cfg.Dir
	}
	if !set("dpi") && cfg.DPI > 0 {
		opts.dpi = cfg.DPI
	}
	if !set("size") && cfg.Size != "" {
		opts.size = cfg.Size
	}
	if !set("ratio") && cfg.Ratio != "" {
		opts.ratio = cfg.Ratio
	}
	if !set("timeout") && cfg.TimeoutSeconds > 0 {
		opts.timeout = cfg.TimeoutSeconds
	}
	if !set("embedded") && cfg.Embedded {
		opts.embedded = true
	}
}

func (o *renderOpts) renderOptions() render.Options {
	return render.Options{
		Program: o.program,
		Dir:     o.dir,
		Format:  o.format,
		DPI:     o.dpi,
		Size:    o.size,
		Ratio:   o.ratio,
		Timeout: time.Duration(o.timeout) * time.Second,
	}
}

// resolveFormat settles the output format from the flag and the output
// file extension, defaulting to svg when neither decides.
func (o *renderOpts) resolveFormat() string {
	if o.format != "" {
		return strings.ToLower(o.format)
	}
	if o.output != "" {
		if ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(o.output), ".")); ext != "" {
			return ext
		}
	}
	return "svg"
}

// outputPath derives the output file from the input name when no
// explicit output was given.
func (o *renderOpts) outputPath(input, format string) string {
	if o.output != "" {
		return o.output
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if input == "-" {
		base = "graph"
	}
	return base + "." + format
}

// runRender reads the DOT input, renders it (from the cache when
// possible), and writes the output file.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	text, err := readInput(input)
	if err != nil {
		return err
	}

	format := opts.resolveFormat()
	opts.format = format
	ropts := opts.renderOptions()

	store := cache.NewScopedCache(c.newCache(ctx, opts.noCache), "render")
	defer store.Close()
	key := cache.RenderKey(text, ropts.Program, format, ropts.Size, ropts.Ratio, ropts.DPI)
	if opts.embedded {
		key = cache.RenderKey(text, "embedded", format, ropts.Size, ropts.Ratio, ropts.DPI)
	}

	data, cached, err := store.Get(ctx, key)
	if err != nil {
		c.Logger.Warnf("Cache read failed: %v", err)
		cached = false
	}

	if !cached {
		spin := newSpinner(ctx, "Rendering "+input)
		spin.Start()
		data, err = c.renderText(ctx, text, format, opts, ropts)
		spin.Stop()
		if err != nil {
			return err
		}
		c.Logger.Infof("Rendered %s (%s)", input, spin.Elapsed())
		if err := store.Set(ctx, key, data, c.Config.Cache.ttl()); err != nil {
			c.Logger.Warnf("Cache write failed: %v", err)
		}
	}

	path := opts.outputPath(input, format)
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}

	printSuccess("Rendered %s", input)
	printFile(path)
	printRenderStats(len(data), format, cached)
	return nil
}

// renderText dispatches between the external program and the embedded
// engine.
func (c *CLI) renderText(ctx context.Context, text, format string, opts *renderOpts, ropts render.Options) ([]byte, error) {
	if opts.embedded {
		return render.EmbeddedSource(ctx, text, format)
	}
	return render.Source(ctx, text, ropts)
}

// readInput reads DOT text from a file, or from stdin when the name is
// "-".
func readInput(name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
