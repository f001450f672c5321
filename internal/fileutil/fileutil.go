// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Sentinel errors for file utility operations.
var (
	ErrOutputIsDir   = errors.New("output path is a directory")
	ErrOutputDirMiss = errors.New("output directory does not exist")
)

// fontNameMaxRunes is the longest string still treated as a font name.
const fontNameMaxRunes = 31

// WriteFileAtomic writes data to a temporary file in the destination
// directory, then renames it over path. A failed write leaves no file at path.
func WriteFileAtomic(path string, data []byte) (err error) {
	if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
		return fmt.Errorf("%w: %s", ErrOutputIsDir, path)
	}
	dir := filepath.Dir(path)
	if info, statErr := os.Stat(dir); statErr != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrOutputDirMiss, dir)
	}

	tmpFile, err := os.CreateTemp(dir, ".code2pdf-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, writeErr := tmpFile.Write(data); writeErr != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("writing temp file: %w", writeErr)
	}
	if closeErr := tmpFile.Close(); closeErr != nil {
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if chmodErr := os.Chmod(tmpPath, 0o644); chmodErr != nil {
		return fmt.Errorf("setting permissions: %w", chmodErr)
	}
	if renameErr := os.Rename(tmpPath, path); renameErr != nil {
		return fmt.Errorf("renaming temp file: %w", renameErr)
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// LooksLikeFontPath reports whether a --font value should be read from disk
// instead of searched by name.
//
// Examples:
//   - "Fira Code" -> false (name)
//   - "go-mono" -> false (name)
//   - "fonts/mono.ttf" -> true (separator)
//   - "mono.ttf" -> true (extension)
//   - ".fonts" -> true (leading dot)
//   - a 32-rune string -> true (too long for a name)
func LooksLikeFontPath(s string) bool {
	return IsFilePath(s) ||
		strings.HasPrefix(s, ".") ||
		filepath.Ext(s) != "" ||
		utf8.RuneCountInString(s) > fontNameMaxRunes
}

// imageExtensions are rendered as full image pages.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".ico":  true,
	".bmp":  true,
	".webp": true,
}

// IsImageFile reports whether path has a supported image extension.
// The check is case-insensitive.
func IsImageFile(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}
