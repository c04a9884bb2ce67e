package main

import (
	"io"
	"os"
	"time"

	cv2pdf "github.com/alnah/go-cv2pdf"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, and the PDF engine.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	Engine cv2pdf.PDFEngine // nil selects the configured engine
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}
