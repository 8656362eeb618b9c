package cli

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dotforge/dotforge/pkg/render"
)

func writeDOTFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.dot")
	if err := os.WriteFile(path, []byte("graph { a -- b }\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPreviewTokenStableUntilChange(t *testing.T) {
	input := writeDOTFile(t)
	srv := &previewServer{input: input}

	tok1, err := srv.currentToken()
	if err != nil {
		t.Fatalf("currentToken: %v", err)
	}
	if _, err := uuid.Parse(tok1); err != nil {
		t.Errorf("token %q should be a uuid: %v", tok1, err)
	}

	tok2, err := srv.currentToken()
	if err != nil {
		t.Fatalf("currentToken: %v", err)
	}
	if tok2 != tok1 {
		t.Error("token should be stable while the file is unchanged")
	}

	// Bump the mtime to simulate a save.
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(input, future, future); err != nil {
		t.Fatal(err)
	}
	tok3, err := srv.currentToken()
	if err != nil {
		t.Fatalf("currentToken: %v", err)
	}
	if tok3 == tok1 {
		t.Error("token should change when the file changes")
	}
}

func TestPreviewTokenMissingFile(t *testing.T) {
	srv := &previewServer{input: filepath.Join(t.TempDir(), "gone.dot")}
	if _, err := srv.currentToken(); err == nil {
		t.Error("missing input should be an error")
	}
}

func TestPreviewPage(t *testing.T) {
	srv := &previewServer{input: writeDOTFile(t)}

	rec := httptest.NewRecorder()
	srv.handlePage(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "/image.svg?v=") {
		t.Error("page should reference the image endpoint")
	}
	token, _ := srv.currentToken()
	if !strings.Contains(body, token) {
		t.Error("page should embed the current asset token")
	}
}

func TestPreviewImage(t *testing.T) {
	progDir := fakeProgramDir(t)
	srv := &previewServer{
		input: writeDOTFile(t),
		opts:  render.Options{Program: "dotecho", Dir: progDir, Format: "svg"},
	}

	rec := httptest.NewRecorder()
	srv.handleImage(rec, httptest.NewRequest("GET", "/image.svg", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "no-store" {
		t.Errorf("Cache-Control = %q", cc)
	}
	if !strings.Contains(rec.Body.String(), "-Tsvg") {
		t.Errorf("body %q should come from an svg invocation", rec.Body.String())
	}
}

func TestPreviewImageRenderFailure(t *testing.T) {
	srv := &previewServer{
		input: writeDOTFile(t),
		opts:  render.Options{Program: "doesnotexist", Dir: t.TempDir()},
	}

	rec := httptest.NewRecorder()
	srv.handleImage(rec, httptest.NewRequest("GET", "/image.svg", nil))

	if rec.Code != 500 {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
