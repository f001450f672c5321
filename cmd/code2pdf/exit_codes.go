package main

import (
	"errors"
	"os"

	code2pdf "github.com/alnah/go-code2pdf"
	"github.com/alnah/go-code2pdf/internal/config"
	"github.com/alnah/go-code2pdf/internal/dateutil"
	"github.com/alnah/go-code2pdf/internal/fileutil"
	"github.com/alnah/go-code2pdf/internal/walk"
)

// Exit codes for code2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Input not found, output not writable
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, code2pdf.ErrNoInput) ||
		errors.Is(err, code2pdf.ErrWritePDF) ||
		errors.Is(err, fileutil.ErrOutputIsDir) ||
		errors.Is(err, fileutil.ErrOutputDirMiss) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, code2pdf.ErrInvalidDimensions) ||
		errors.Is(err, code2pdf.ErrInvalidPageSize) ||
		errors.Is(err, code2pdf.ErrInvalidOrientation) ||
		errors.Is(err, code2pdf.ErrInvalidMargin) ||
		errors.Is(err, code2pdf.ErrInvalidFontSize) ||
		errors.Is(err, code2pdf.ErrInvalidWorkers) ||
		errors.Is(err, code2pdf.ErrInvalidTabWidth) ||
		errors.Is(err, code2pdf.ErrInvalidQuality) ||
		errors.Is(err, code2pdf.ErrFontParse) ||
		errors.Is(err, code2pdf.ErrHighlighter) ||
		errors.Is(err, walk.ErrInvalidPattern) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, ErrMissingInput) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
