package cv2pdf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/alnah/go-cv2pdf/internal/yamlutil"
)

// Data is the CV content loaded from the input file. No schema is enforced:
// every key is passed to the template untouched.
type Data map[string]any

// LoadData reads and parses the YAML file at path.
// A missing file wraps ErrInputNotFound. Unparseable, empty or oversized
// files, and documents whose top level is not a mapping, wrap
// ErrInputMalformed with the parser diagnostic.
func LoadData(path string) (Data, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- input path is user-provided
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("%w: reading %s: %v", ErrInputMalformed, path, err)
	}

	m, err := yamlutil.DecodeMapping(content)
	if err != nil {
		var syntaxErr *yamlutil.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, fmt.Errorf("%w: %s:\n%s", ErrInputMalformed, path, syntaxErr.Diagnostic)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrInputMalformed, path, err)
	}

	return Data(m), nil
}
