package code2pdf

import "errors"

// Sentinel errors for library operations.
var (
	// Configuration validation errors.
	ErrInvalidDimensions  = errors.New("invalid page dimensions")
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")
	ErrInvalidFontSize    = errors.New("invalid font size")
	ErrInvalidWorkers     = errors.New("invalid worker count")
	ErrInvalidTabWidth    = errors.New("invalid tab width")
	ErrInvalidQuality     = errors.New("invalid image quality")

	// Resource errors.
	ErrFontParse   = errors.New("failed to parse font")
	ErrHighlighter = errors.New("failed to initialize highlighter")
	ErrNoInput     = errors.New("input path not found")

	// Per-file errors, logged and skipped during conversion.
	ErrReadFile    = errors.New("failed to read file")
	ErrDecodeImage = errors.New("failed to decode image")
	ErrFilePanic   = errors.New("internal error while processing file")

	// Output errors.
	ErrWritePDF = errors.New("failed to write PDF")
)
