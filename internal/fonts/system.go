package fonts

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// SystemLoader searches font directories for a .ttf file whose normalized
// file stem equals the normalized requested name.
// Implements Loader interface.
type SystemLoader struct {
	dirs []string
}

// NewSystemLoader creates a SystemLoader over dirs.
// With no dirs, the OS font directories are used.
func NewSystemLoader(dirs ...string) *SystemLoader {
	if len(dirs) == 0 {
		dirs = SystemFontDirs()
	}
	return &SystemLoader{dirs: dirs}
}

// Load finds and validates the font named name.
func (s *SystemLoader) Load(name string) (Font, error) {
	if err := ValidateFontName(name); err != nil {
		return Font{}, err
	}
	want := normalizeName(name)

	for _, dir := range s.dirs {
		path, ok := findFont(dir, want)
		if !ok {
			continue
		}
		data, err := os.ReadFile(path) // #nosec G304 -- path found under a font directory
		if err != nil {
			return Font{}, fmt.Errorf("%w: %v", ErrFontRead, err)
		}
		if err := validateTrueType(path, data); err != nil {
			return Font{}, err
		}
		return Font{Name: name, Data: data}, nil
	}
	return Font{}, fmt.Errorf("%w: %q", ErrFontNotFound, name)
}

// findFont walks dir for a matching .ttf file. Unreadable subdirectories are
// skipped.
func findFont(dir, want string) (string, bool) {
	var found string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".ttf") {
			return nil
		}
		stem := strings.TrimSuffix(d.Name(), filepath.Ext(path))
		if normalizeName(stem) == want {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	return found, found != ""
}

// SystemFontDirs returns the conventional font directories for the current OS.
func SystemFontDirs() []string {
	home, _ := os.UserHomeDir()

	switch runtime.GOOS {
	case "windows":
		var dirs []string
		if windir := os.Getenv("WINDIR"); windir != "" {
			dirs = append(dirs, filepath.Join(windir, "Fonts"))
		}
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			dirs = append(dirs, filepath.Join(local, "Microsoft", "Windows", "Fonts"))
		}
		return dirs
	case "darwin":
		dirs := []string{"/System/Library/Fonts", "/Library/Fonts"}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
		}
		return dirs
	default:
		dirs := []string{"/usr/share/fonts", "/usr/local/share/fonts"}
		if home != "" {
			dirs = append(dirs,
				filepath.Join(home, ".local", "share", "fonts"),
				filepath.Join(home, ".fonts"),
			)
		}
		return dirs
	}
}

// Compile-time interface check.
var _ Loader = (*SystemLoader)(nil)
