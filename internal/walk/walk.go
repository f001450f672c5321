// Package walk enumerates a directory tree in a deterministic order with
// include/exclude globs and .gitignore support.
package walk

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// Sentinel errors for walking.
var (
	ErrInvalidPattern = errors.New("invalid glob pattern")
	ErrRootNotFound   = errors.New("input path not found")
)

// Entry is one item of the walk.
type Entry struct {
	Path   string // filesystem path (root joined with Rel)
	Rel    string // slash-separated path relative to the root; "." for a root file
	IsFile bool   // regular file (symlinks resolved)
}

// Options controls which entries are produced.
type Options struct {
	Include   []string // file globs; empty = all files
	Exclude   []string // file and directory globs
	Hidden    bool     // include dot-prefixed entries
	GitIgnore bool     // honour .gitignore files at every level
}

// Walker walks one root.
type Walker struct {
	root string
	opts Options
}

// ignoreScope is a compiled .gitignore and the directory it lives in,
// relative to the root ("" for the root itself).
type ignoreScope struct {
	base string
	gi   *ignore.GitIgnore
}

// New validates the options and prepares a walker for root.
func New(root string, opts Options) (*Walker, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
	}
	for _, p := range slices.Concat(opts.Include, opts.Exclude) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, p)
		}
	}

	return &Walker{root: root, opts: opts}, nil
}

// Entries yields every entry depth-first. At each level regular files come
// first, sorted by name, then directories, sorted by name. A directory that
// cannot be read yields an error and its subtree is skipped.
func (w *Walker) Entries() iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		info, err := os.Stat(w.root)
		if err != nil {
			yield(Entry{Path: w.root}, err)
			return
		}
		if !info.IsDir() {
			yield(Entry{Path: w.root, Rel: ".", IsFile: info.Mode().IsRegular()}, nil)
			return
		}
		w.walkDir(w.root, "", nil, yield)
	}
}

// walkDir reports whether the walk should continue. ignores holds the
// .gitignore scopes of the ancestors of dir; its own is added here.
func (w *Walker) walkDir(dir, rel string, ignores []ignoreScope, yield func(Entry, error) bool) bool {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return yield(Entry{Path: dir, Rel: relOrDot(rel)}, err)
	}
	if w.opts.GitIgnore {
		if gi, err := ignore.CompileIgnoreFile(filepath.Join(dir, ".gitignore")); err == nil {
			ignores = append(slices.Clip(ignores), ignoreScope{base: rel, gi: gi})
		}
	}

	var files, dirs []Entry
	for _, de := range dirents {
		name := de.Name()
		if !w.opts.Hidden && strings.HasPrefix(name, ".") {
			continue
		}
		e := Entry{Path: filepath.Join(dir, name), Rel: path.Join(rel, name)}

		isDir, isFile := classify(e.Path, de)
		switch {
		case isDir:
			if w.excluded(e.Rel, true, ignores) {
				continue
			}
			dirs = append(dirs, e)
		default:
			e.IsFile = isFile
			if w.excluded(e.Rel, false, ignores) || !w.included(e.Rel) {
				continue
			}
			files = append(files, e)
		}
	}

	byName := func(a, b Entry) int { return strings.Compare(a.Rel, b.Rel) }
	slices.SortFunc(files, byName)
	slices.SortFunc(dirs, byName)

	for _, f := range files {
		if !yield(f, nil) {
			return false
		}
	}
	for _, d := range dirs {
		if !yield(d, nil) {
			return false
		}
		if !w.walkDir(d.Path, d.Rel, ignores, yield) {
			return false
		}
	}
	return true
}

// classify resolves symlinks to files. Symlinked directories are not
// followed and are reported as neither.
func classify(p string, de fs.DirEntry) (isDir, isFile bool) {
	if de.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(p)
		if err != nil {
			return false, false
		}
		return false, info.Mode().IsRegular()
	}
	return de.IsDir(), de.Type().IsRegular()
}

// excluded tests rel against every enclosing .gitignore, each relative to
// its own directory, then against the exclude globs. A negation in a deeper
// .gitignore cannot re-include what an outer one ignores.
func (w *Walker) excluded(rel string, isDir bool, ignores []ignoreScope) bool {
	for _, sc := range ignores {
		candidate := rel
		if sc.base != "" {
			candidate = strings.TrimPrefix(rel, sc.base+"/")
		}
		if isDir {
			candidate += "/"
		}
		if sc.gi.MatchesPath(candidate) {
			return true
		}
	}
	return matchAny(w.opts.Exclude, rel)
}

func (w *Walker) included(rel string) bool {
	return len(w.opts.Include) == 0 || matchAny(w.opts.Include, rel)
}

// matchAny matches gitignore-style: a pattern without a slash is tested
// against the base name, any other pattern against the relative path.
func matchAny(patterns []string, rel string) bool {
	base := path.Base(rel)
	for _, p := range patterns {
		target := rel
		if !strings.Contains(p, "/") {
			target = base
		}
		if ok, _ := doublestar.Match(strings.TrimPrefix(p, "/"), target); ok {
			return true
		}
	}
	return false
}

func relOrDot(rel string) string {
	if rel == "" {
		return "."
	}
	return rel
}
