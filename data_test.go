package cv2pdf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestLoadData - Input parsing and failure taxonomy
// ---------------------------------------------------------------------------

func TestLoadData(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, t.TempDir(), "cv.yaml", `
name: Jane Doe
skills: [Go, SQL]
contact:
  email: jane@example.com
experience:
  - role: Engineer
    years: 3
`)

	data, err := LoadData(path)
	if err != nil {
		t.Fatalf("LoadData() unexpected error: %v", err)
	}

	if data["name"] != "Jane Doe" {
		t.Errorf("name = %v, want Jane Doe", data["name"])
	}
	contact, ok := data["contact"].(map[string]any)
	if !ok {
		t.Fatalf("contact = %T, want map[string]any", data["contact"])
	}
	if contact["email"] != "jane@example.com" {
		t.Errorf("contact.email = %v", contact["email"])
	}
	skills, ok := data["skills"].([]any)
	if !ok || len(skills) != 2 {
		t.Errorf("skills = %#v, want two items", data["skills"])
	}
}

func TestLoadData_DuplicateKeyLastWins(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, t.TempDir(), "cv.yaml", "a: 1\na: 2\n")

	data, err := LoadData(path)
	if err != nil {
		t.Fatalf("LoadData() unexpected error: %v", err)
	}
	if got := fmt.Sprint(data["a"]); got != "2" {
		t.Errorf("a = %s, want 2", got)
	}
}

func TestLoadData_NullDocument(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, t.TempDir(), "cv.yaml", "# nothing yet\n~\n")

	data, err := LoadData(path)
	if err != nil {
		t.Fatalf("LoadData() unexpected error: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("LoadData() = %v, want empty mapping", data)
	}
}

func TestLoadData_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name     string
		path     string
		wantErr  error
		contains string
	}{
		{
			name:     "missing file",
			path:     filepath.Join(dir, "missing.yaml"),
			wantErr:  ErrInputNotFound,
			contains: "missing.yaml",
		},
		{
			name:    "invalid syntax",
			path:    writeFixture(t, dir, "broken.yaml", "name: [unclosed\n"),
			wantErr: ErrInputMalformed,
		},
		{
			name:    "empty file",
			path:    writeFixture(t, dir, "empty.yaml", ""),
			wantErr: ErrInputMalformed,
		},
		{
			name:     "top level is a list",
			path:     writeFixture(t, dir, "list.yaml", "- one\n- two\n"),
			wantErr:  ErrInputMalformed,
			contains: "not a mapping",
		},
		{
			name:    "top level is a scalar",
			path:    writeFixture(t, dir, "scalar.yaml", "just text\n"),
			wantErr: ErrInputMalformed,
		},
		{
			name:    "directory",
			path:    dir,
			wantErr: ErrInputMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadData(tt.path)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("LoadData() error = %v, want %v", err, tt.wantErr)
			}
			if tt.contains != "" && !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q should contain %q", err, tt.contains)
			}
		})
	}
}

func TestLoadData_SyntaxErrorPointsAtLine(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, t.TempDir(), "cv.yaml", "name: Jane\ntitle: \"unterminated\n")

	_, err := LoadData(path)
	if !errors.Is(err, ErrInputMalformed) {
		t.Fatalf("error = %v, want ErrInputMalformed", err)
	}
	if !strings.Contains(err.Error(), "cv.yaml") {
		t.Errorf("error should name the file: %v", err)
	}
}
