package cli

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name string
		opts renderOpts
		want string
	}{
		{"default svg", renderOpts{}, "svg"},
		{"explicit flag", renderOpts{format: "PNG"}, "png"},
		{"from extension", renderOpts{output: "out.pdf"}, "pdf"},
		{"flag beats extension", renderOpts{format: "gif", output: "out.pdf"}, "gif"},
		{"no extension", renderOpts{output: "out"}, "svg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.resolveFormat(); got != tt.want {
				t.Errorf("resolveFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		opts   renderOpts
		input  string
		format string
		want   string
	}{
		{"explicit output", renderOpts{output: "x.svg"}, "in.dot", "svg", "x.svg"},
		{"derived from input", renderOpts{}, "diagram.dot", "png", "diagram.png"},
		{"stdin input", renderOpts{}, "-", "svg", "graph.svg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.outputPath(tt.input, tt.format); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.dot")
	if err := os.WriteFile(path, []byte("graph {\n}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	text, err := readInput(path)
	if err != nil {
		t.Fatalf("readInput: %v", err)
	}
	if text != "graph {\n}\n" {
		t.Errorf("readInput = %q", text)
	}

	if _, err := readInput(filepath.Join(t.TempDir(), "missing.dot")); err == nil {
		t.Error("missing file should be an error")
	}
}

// fakeProgramDir writes a stand-in layout program that echoes its
// command line, so tests can observe the arguments without Graphviz.
func fakeProgramDir(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake program is a shell script")
	}
	dir := t.TempDir()
	script := "#!/bin/sh\necho \"$0 $*\"\n"
	if err := os.WriteFile(filepath.Join(dir, "dotecho"), []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func testCLI(t *testing.T, cfg Config) *CLI {
	t.Helper()
	t.Setenv("DOTFORGE_CONFIG", filepath.Join(t.TempDir(), "none.toml"))
	c := New(os.Stderr, LogInfo)
	c.Config = cfg
	return c
}

func TestRenderCommandUsesConfigDefaults(t *testing.T) {
	progDir := fakeProgramDir(t)
	input := filepath.Join(t.TempDir(), "in.dot")
	if err := os.WriteFile(input, []byte("graph { a -- b }\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(t.TempDir(), "out.bin")

	c := testCLI(t, Config{
		Program: "dotecho",
		Dir:     progDir,
		Format:  "png",
		Cache:   CacheConfig{Disabled: true},
	})

	cmd := c.renderCommand()
	cmd.SetArgs([]string{input, "-o", output, "-f", "png"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("render: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), "-Tpng") {
		t.Errorf("output %q should carry the configured format", data)
	}
}

func TestRenderCommandFlagOverridesConfig(t *testing.T) {
	progDir := fakeProgramDir(t)
	input := filepath.Join(t.TempDir(), "in.dot")
	if err := os.WriteFile(input, []byte("graph { a -- b }\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(t.TempDir(), "out.bin")

	c := testCLI(t, Config{
		Program: "dotecho",
		Dir:     progDir,
		Format:  "png",
		Cache:   CacheConfig{Disabled: true},
	})

	cmd := c.renderCommand()
	cmd.SetArgs([]string{input, "-o", output, "--format", "gif"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("render: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), "-Tgif") {
		t.Errorf("output %q should carry the flag format, not the config format", data)
	}
}

func TestRenderCommandCaches(t *testing.T) {
	progDir := fakeProgramDir(t)
	cacheDir := t.TempDir()
	input := filepath.Join(t.TempDir(), "in.dot")
	if err := os.WriteFile(input, []byte("graph { a -- b }\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(t.TempDir(), "out.svg")

	c := testCLI(t, Config{
		Program: "dotecho",
		Dir:     progDir,
		Cache:   CacheConfig{Dir: cacheDir},
	})

	cmd := c.renderCommand()
	cmd.SetArgs([]string{input, "-o", output})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("render: %v", err)
	}

	// Break the fake program. The second run must come from the cache.
	if err := os.Remove(filepath.Join(progDir, "dotecho")); err != nil {
		t.Fatal(err)
	}
	cmd = c.renderCommand()
	cmd.SetArgs([]string{input, "-o", output})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("cached render: %v", err)
	}
}
