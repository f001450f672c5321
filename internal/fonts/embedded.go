package fonts

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultName is the embedded font used when none is requested or the
// requested one cannot be loaded.
const DefaultName = "go-mono"

var embedded = map[string][]byte{
	"go-mono":      gomono.TTF,
	"go-mono-bold": gomonobold.TTF,
	"go":           goregular.TTF,
}

// EmbeddedLoader loads the Go fonts bundled with the binary.
// Implements Loader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// Load returns an embedded font. Names are case-insensitive.
func (e *EmbeddedLoader) Load(name string) (Font, error) {
	if err := ValidateFontName(name); err != nil {
		return Font{}, err
	}
	key := strings.ToLower(name)
	data, ok := embedded[key]
	if !ok {
		return Font{}, fmt.Errorf("%w: %q", ErrFontNotFound, name)
	}
	return Font{Name: key, Data: data}, nil
}

// EmbeddedNames lists the bundled font names, sorted.
func EmbeddedNames() []string {
	names := make([]string, 0, len(embedded))
	for n := range embedded {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Default returns the bundled fallback font.
func Default() Font {
	return Font{Name: DefaultName, Data: gomono.TTF}
}

// Compile-time interface check.
var _ Loader = (*EmbeddedLoader)(nil)
