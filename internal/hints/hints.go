// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-code2pdf/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForFontNotFound returns hints for a font that could not be loaded.
// Lists the bundled fonts and, in containers, suggests passing a file path
// since minimal images ship without system fonts.
func ForFontNotFound(bundled []string) string {
	var hints []string

	if len(bundled) > 0 {
		hints = append(hints, "bundled fonts: "+strings.Join(bundled, ", "))
	}
	if IsInContainer() {
		hints = append(hints, "containers rarely ship system fonts, pass a .ttf path")
	}
	if os.Getenv("CODE2PDF_FONT_DIRS") == "" {
		hints = append(hints, "use --font-dir or CODE2PDF_FONT_DIRS to search other directories")
	}

	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains go-code2pdf) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, "go-code2pdf") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output file creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for unknown highlighting styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForInvalidPattern returns hints for malformed include/exclude globs.
func ForInvalidPattern() string {
	return format("globs support *, **, ?, [a-z] and {a,b}; quote them to stop shell expansion")
}

// ForNoInput returns hints for a missing input directory.
func ForNoInput() string {
	return format("pass an existing directory or file, e.g. code2pdf ./src -o src.pdf")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
