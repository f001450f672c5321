package fonts

import (
	"fmt"
	"strings"
	"unicode"
)

// ValidateFontName checks that a font name is a bare name, not a path.
// Returns ErrInvalidFontName if the name is empty or contains path separators.
func ValidateFontName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidFontName)
	}
	if strings.ContainsAny(name, "/\\\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidFontName, name)
	}
	return nil
}

// normalizeName folds case and drops separators so that "Fira Code",
// "fira-code" and "FiraCode" compare equal.
func normalizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r == ' ' || r == '-' || r == '_' {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
