package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader loads a font file given by path.
// Implements Loader interface.
type FilesystemLoader struct{}

// NewFilesystemLoader creates a FilesystemLoader.
func NewFilesystemLoader() *FilesystemLoader {
	return &FilesystemLoader{}
}

// Load reads and validates the font at path.
func (f *FilesystemLoader) Load(path string) (Font, error) {
	if path == "" {
		return Font{}, fmt.Errorf("%w: empty path", ErrInvalidFontName)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-selected font file
	if err != nil {
		if os.IsNotExist(err) {
			return Font{}, fmt.Errorf("%w: %s", ErrFontNotFound, path)
		}
		return Font{}, fmt.Errorf("%w: %v", ErrFontRead, err)
	}
	if err := validateTrueType(path, data); err != nil {
		return Font{}, err
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Font{Name: stem, Data: data}, nil
}

// Compile-time interface check.
var _ Loader = (*FilesystemLoader)(nil)
