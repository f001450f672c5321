package fonts

import "errors"

// Sentinel errors for font operations.
var (
	// ErrFontNotFound indicates no font matches the requested name or path.
	ErrFontNotFound = errors.New("font not found")

	// ErrInvalidFontName indicates the name is empty or contains path characters.
	ErrInvalidFontName = errors.New("invalid font name")

	// ErrFontRead indicates an I/O error occurred while reading a font file.
	ErrFontRead = errors.New("failed to read font")

	// ErrFontParse indicates the font data is not a usable TrueType font.
	ErrFontParse = errors.New("failed to parse font")
)
