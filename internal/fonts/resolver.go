package fonts

import (
	"errors"

	"github.com/alnah/go-code2pdf/internal/fileutil"
)

// Status reports how a font request was satisfied.
type Status int

const (
	// NoneProvided means no font was requested; the default was used.
	NoneProvided Status = iota
	// Provided means the requested font was loaded.
	Provided
	// FailProvided means the requested font could not be loaded; the
	// default was used instead.
	FailProvided
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Provided:
		return "provided"
	case FailProvided:
		return "fail-provided"
	default:
		return "none-provided"
	}
}

// Resolution is the outcome of Resolver.Resolve. Font is always usable.
type Resolution struct {
	Font   Font
	Status Status
	Err    error // why the requested font was rejected (FailProvided only)
}

// Resolver combines the path, embedded and system loaders with fallback
// to the default embedded font.
type Resolver struct {
	files    Loader
	embedded Loader
	system   Loader
}

// NewResolver creates a Resolver searching the OS font directories.
func NewResolver() *Resolver {
	return NewResolverWithDirs()
}

// NewResolverWithDirs creates a Resolver searching dirs for system fonts.
// With no dirs, the OS font directories are used.
func NewResolverWithDirs(dirs ...string) *Resolver {
	return &Resolver{
		files:    NewFilesystemLoader(),
		embedded: NewEmbeddedLoader(),
		system:   NewSystemLoader(dirs...),
	}
}

// Resolve loads the font for nameOrPath. An empty request yields the default
// font with NoneProvided.
func (r *Resolver) Resolve(nameOrPath string) Resolution {
	if nameOrPath == "" {
		return Resolution{Font: Default(), Status: NoneProvided}
	}

	f, err := r.load(nameOrPath)
	if err != nil {
		return Resolution{Font: Default(), Status: FailProvided, Err: err}
	}
	return Resolution{Font: f, Status: Provided}
}

func (r *Resolver) load(nameOrPath string) (Font, error) {
	if fileutil.LooksLikeFontPath(nameOrPath) {
		return r.files.Load(nameOrPath)
	}

	f, err := r.embedded.Load(nameOrPath)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, ErrFontNotFound) {
		return Font{}, err
	}
	return r.system.Load(nameOrPath)
}
