package assets

import "errors"

// Sentinel errors for starter kit operations.
var (
	// ErrStarterNotFound indicates the requested starter file does not exist.
	ErrStarterNotFound = errors.New("starter file not found")

	// ErrStarterExists indicates a starter file is already present on disk
	// and overwriting was not requested.
	ErrStarterExists = errors.New("file already exists")

	// ErrStarterWrite indicates an I/O error while writing a starter file.
	ErrStarterWrite = errors.New("failed to write starter file")
)
