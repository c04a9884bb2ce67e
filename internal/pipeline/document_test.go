package pipeline

import (
	"path/filepath"
	"strings"
	"testing"
)

const sampleDocument = `<!DOCTYPE html>
<html>
<head><title>CV</title></head>
<body><h1>Ada Lovelace</h1><img src="photo.jpg"></body>
</html>`

// ---------------------------------------------------------------------------
// TestPrepareDocument - Stylesheet and base injection
// ---------------------------------------------------------------------------

func TestPrepareDocument_InjectsStyleInHead(t *testing.T) {
	t.Parallel()

	got, err := PrepareDocument(sampleDocument, "h1 { color: navy; }", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	styleIdx := strings.Index(got, "<style>h1 { color: navy; }</style>")
	headEnd := strings.Index(got, "</head>")
	if styleIdx == -1 {
		t.Fatalf("style block not found in %q", got)
	}
	if styleIdx > headEnd {
		t.Error("style block should be inside <head>")
	}
	if !strings.Contains(got, "<h1>Ada Lovelace</h1>") {
		t.Error("body content lost")
	}
	if !strings.HasPrefix(strings.ToLower(got), "<!doctype html>") {
		t.Errorf("doctype lost: %q", got[:min(20, len(got))])
	}
}

func TestPrepareDocument_EscapesStyleClose(t *testing.T) {
	t.Parallel()

	got, err := PrepareDocument(sampleDocument, "a{}</style><script>x()</script>", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Count(got, "</style>") != 1 || strings.Contains(got, "</script>") {
		t.Errorf("stylesheet escaped its style element: %q", got)
	}
}

func TestPrepareDocument_NoCSSLeavesHeadAlone(t *testing.T) {
	t.Parallel()

	got, err := PrepareDocument(sampleDocument, "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(got, "<style>") {
		t.Error("unexpected style block")
	}
	if strings.Contains(got, "<base") {
		t.Error("unexpected base element")
	}
}

func TestPrepareDocument_AddsBase(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	got, err := PrepareDocument(sampleDocument, "", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantHref := "file://" + filepath.ToSlash(dir)
	if !strings.Contains(got, `<base href="`) {
		t.Fatalf("base element missing: %q", got)
	}
	if !strings.Contains(got, strings.TrimPrefix(wantHref, "file://")) {
		t.Errorf("base href should point at %q: %q", wantHref, got)
	}
	if strings.Index(got, "<base") > strings.Index(got, "<title>") {
		t.Error("base must precede other head elements")
	}
}

func TestPrepareDocument_KeepsExistingBase(t *testing.T) {
	t.Parallel()

	doc := `<html><head><base href="https://cdn.example.com/"></head><body></body></html>`
	got, err := PrepareDocument(doc, "", t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Count(got, "<base") != 1 {
		t.Errorf("expected exactly one base element: %q", got)
	}
	if !strings.Contains(got, "https://cdn.example.com/") {
		t.Error("existing base href was replaced")
	}
}

func TestPrepareDocument_Fragment(t *testing.T) {
	t.Parallel()

	got, err := PrepareDocument("<p>no document shell</p>", "p{margin:0}", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "<head><style>p{margin:0}</style></head>") {
		t.Errorf("style should land in the synthesized head: %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestDirURL - Directory to file URL
// ---------------------------------------------------------------------------

func TestDirURL(t *testing.T) {
	t.Parallel()

	got, err := dirURL(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "file:///") {
		t.Errorf("dirURL() = %q, want file:/// prefix", got)
	}
	if !strings.HasSuffix(got, "/") {
		t.Errorf("dirURL() = %q, want trailing slash", got)
	}
}
