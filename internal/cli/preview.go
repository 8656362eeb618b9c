package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dotforge/dotforge/pkg/render"
)

// previewCommand creates the preview command, which serves a DOT file
// as a live-updating SVG in the browser.
func (c *CLI) previewCommand() *cobra.Command {
	var opts renderOpts
	var addr string

	cmd := &cobra.Command{
		Use:   "preview <file.dot>",
		Short: "Serve a live browser preview of a DOT file",
		Long:  `Preview starts a local HTTP server rendering the DOT file as SVG. The page polls for changes and reloads the image whenever the file is saved.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, &opts)
			return c.runPreview(cmd.Context(), args[0], addr, &opts)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:7878", "address to listen on")
	cmd.Flags().StringVar(&opts.program, "program", "", "Graphviz layout program (default: dot)")
	cmd.Flags().StringVar(&opts.dir, "program-dir", "", "directory holding the Graphviz programs")
	cmd.Flags().IntVar(&opts.timeout, "timeout", 0, "timeout in seconds for the layout program")
	cmd.Flags().BoolVar(&opts.embedded, "embedded", false, "render with the bundled engine")

	return cmd
}

// previewServer renders one DOT file on demand. Each distinct version
// of the file gets a fresh asset token so browsers never serve a stale
// image from their cache.
type previewServer struct {
	input    string
	embedded bool
	opts     render.Options

	mu      sync.Mutex
	token   string
	modTime time.Time
}

// currentToken returns the asset token for the file's present state,
// minting a new one whenever the file changed.
func (s *previewServer) currentToken() (string, error) {
	info, err := os.Stat(s.input)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" || info.ModTime().After(s.modTime) {
		s.token = uuid.NewString()
		s.modTime = info.ModTime()
	}
	return s.token, nil
}

const previewPage = `<!DOCTYPE html>
<html>
<head><title>dotforge preview</title>
<style>body { margin: 2rem; font-family: sans-serif; } img { max-width: 100%%; }</style>
</head>
<body>
<img id="graph" src="/image.svg?v=%s">
<script>
let token = %q;
setInterval(async () => {
  const res = await fetch("/token");
  if (!res.ok) return;
  const next = await res.text();
  if (next !== token) {
    token = next;
    document.getElementById("graph").src = "/image.svg?v=" + token;
  }
}, 1000);
</script>
</body>
</html>
`

func (s *previewServer) handlePage(w http.ResponseWriter, r *http.Request) {
	token, err := s.currentToken()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, previewPage, token, token)
}

func (s *previewServer) handleToken(w http.ResponseWriter, r *http.Request) {
	token, err := s.currentToken()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprint(w, token)
}

func (s *previewServer) handleImage(w http.ResponseWriter, r *http.Request) {
	text, err := readInput(s.input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var data []byte
	if s.embedded {
		data, err = render.EmbeddedSource(r.Context(), text, "svg")
	} else {
		data, err = render.Source(r.Context(), text, s.opts)
	}
	if err != nil {
		loggerFromContext(r.Context()).Errorf("Render failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(data)
}

// runPreview serves the preview until the context is cancelled.
func (c *CLI) runPreview(ctx context.Context, input, addr string, opts *renderOpts) error {
	if _, err := os.Stat(input); err != nil {
		return err
	}

	opts.format = "svg"
	srv := &previewServer{
		input:    input,
		embedded: opts.embedded,
		opts:     opts.renderOptions(),
	}

	r := chi.NewRouter()
	r.Get("/", srv.handlePage)
	r.Get("/token", srv.handleToken)
	r.Get("/image.svg", srv.handleImage)

	httpSrv := &http.Server{
		Addr:    addr,
		Handler: r,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	printSuccess("Previewing %s", input)
	printKeyValue("Address", "http://"+addr)
	printNextStep("Stop the server", "Ctrl+C")

	err := httpSrv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
