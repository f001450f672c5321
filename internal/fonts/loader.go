package fonts

import (
	"bytes"
	"fmt"

	"golang.org/x/image/font/sfnt"
)

// Font is a loaded TrueType font.
type Font struct {
	Name string // display name (file stem or embedded name)
	Data []byte // raw TTF bytes
}

// Loader defines the contract for loading a font by name or path.
type Loader interface {
	// Load returns the font for name.
	// Returns ErrFontNotFound if no font matches.
	Load(name string) (Font, error)
}

// validateTrueType parses data and rejects fonts that cannot be embedded.
func validateTrueType(name string, data []byte) error {
	if bytes.HasPrefix(data, []byte("OTTO")) {
		return fmt.Errorf("%w: %s: CFF outlines are not supported", ErrFontParse, name)
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrFontParse, name, err)
	}
	if f.NumGlyphs() == 0 {
		return fmt.Errorf("%w: %s: no glyphs", ErrFontParse, name)
	}
	return nil
}
