package assets

import (
	"embed"
	"fmt"
	"path/filepath"

	"github.com/alnah/go-cv2pdf/internal/fileutil"
)

//go:embed starter/*
var starter embed.FS

// Starter file names. They match the CLI defaults, so a freshly initialized
// directory converts without any flag.
const (
	DataFile     = "cv_data.yaml"
	TemplateFile = "cv_template.html"
	StyleFile    = "style.css"
)

// starterOrder is the order files are listed and written in.
var starterOrder = []string{DataFile, TemplateFile, StyleFile}

// File is a named starter file.
type File struct {
	Name    string
	Content []byte
}

// ReadStarter returns the content of one starter file by name.
func ReadStarter(name string) ([]byte, error) {
	content, err := starter.ReadFile("starter/" + name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrStarterNotFound, name)
	}
	return content, nil
}

// StarterFiles returns every starter file in a stable order.
func StarterFiles() ([]File, error) {
	files := make([]File, 0, len(starterOrder))
	for _, name := range starterOrder {
		content, err := ReadStarter(name)
		if err != nil {
			return nil, err
		}
		files = append(files, File{Name: name, Content: content})
	}
	return files, nil
}

// WriteStarter writes the starter kit into dir and returns the written paths.
// Without force, an existing file aborts the whole operation before anything
// is written, and the error names the first conflicting path.
func WriteStarter(dir string, force bool) ([]string, error) {
	files, err := StarterFiles()
	if err != nil {
		return nil, err
	}

	if !force {
		for _, f := range files {
			path := filepath.Join(dir, f.Name)
			if fileutil.FileExists(path) {
				return nil, fmt.Errorf("%w: %s", ErrStarterExists, path)
			}
		}
	}

	if err := fileutil.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStarterWrite, err)
	}

	written := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.Name)
		if err := fileutil.WriteFile(path, f.Content); err != nil {
			return written, fmt.Errorf("%w: %v", ErrStarterWrite, err)
		}
		written = append(written, path)
	}
	return written, nil
}
