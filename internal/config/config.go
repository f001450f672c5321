// Package config loads YAML configuration files for the code2pdf CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-code2pdf/internal/fileutil"
	"github.com/alnah/go-code2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDir is the directory under os.UserConfigDir searched for config names.
const AppDir = "go-code2pdf"

// Field length limits.
const (
	MaxPathLength        = 4096 // Output path, font path
	MaxTitleLength       = 200  // Document title
	MaxTextLength        = 500  // Page caption text
	MaxDateLength        = 30   // "2025-12-31" or "auto:DD/MM/YYYY"
	MaxPageSizeLength    = 10   // "letter", "a4", "legal"
	MaxOrientationLength = 10   // "portrait", "landscape"
	MaxStyleLength       = 50   // Chroma style name
	MaxPatternLength     = 1024 // Include/exclude glob
)

// Config holds all configuration for a conversion.
// Pointer fields distinguish "not set" from an explicit zero or false.
type Config struct {
	Output    OutputConfig    `yaml:"output"`
	Input     InputConfig     `yaml:"input"`
	Document  DocumentConfig  `yaml:"document"`
	Page      PageConfig      `yaml:"page"`
	Font      FontConfig      `yaml:"font"`
	Highlight HighlightConfig `yaml:"highlight"`
	Images    ImagesConfig    `yaml:"images"`
	Workers   int             `yaml:"workers"` // 0 = GOMAXPROCS
}

// OutputConfig defines the output destination.
type OutputConfig struct {
	Path string `yaml:"path"` // Empty = output.pdf
}

// InputConfig defines which files of the tree are converted.
type InputConfig struct {
	Include   []string `yaml:"include"`   // Only files matching these globs
	Exclude   []string `yaml:"exclude"`   // Skip files and directories matching these globs
	Hidden    bool     `yaml:"hidden"`    // Include dot-prefixed entries
	GitIgnore *bool    `yaml:"gitignore"` // Honour .gitignore files (default: true)
}

// DocumentConfig defines document-wide settings.
type DocumentConfig struct {
	Name        string `yaml:"name"`        // Title metadata (default: "Project Code")
	IncludePath *bool  `yaml:"includePath"` // File path banner in page headers (default: true)
}

// PageConfig defines page geometry and the header caption.
type PageConfig struct {
	Size        string        `yaml:"size"`        // "a4", "letter", "legal" (default: "a4")
	Orientation string        `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margins     MarginsConfig `yaml:"margins"`
	Text        string        `yaml:"text"` // Caption text, may span lines
	Date        string        `yaml:"date"` // "auto", "auto:FORMAT" or literal
}

// MarginsConfig holds page margins in millimetres.
type MarginsConfig struct {
	Top    *float64 `yaml:"top"`
	Bottom *float64 `yaml:"bottom"`
	Left   *float64 `yaml:"left"`
	Right  *float64 `yaml:"right"`
}

// FontConfig defines the body font.
type FontConfig struct {
	Name string   `yaml:"name"` // Bundled name, system name or .ttf path
	Size float64  `yaml:"size"` // Points (default: 12)
	Dirs []string `yaml:"dirs"` // Replace the OS font directories
}

// HighlightConfig defines syntax highlighting.
type HighlightConfig struct {
	Style         string `yaml:"style"`         // Chroma style (default: "github")
	MaxLineLength int    `yaml:"maxLineLength"` // Longer lines are not highlighted
	TabWidth      *int   `yaml:"tabWidth"`      // 0 keeps tabs (default: 4)
}

// ImagesConfig defines image page encoding.
type ImagesConfig struct {
	Quality      int `yaml:"quality"`      // JPEG quality 1-100 (default: 85)
	MaxDimension int `yaml:"maxDimension"` // Downscale above this many pixels (0 = never)
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"output.path", c.Output.Path, MaxPathLength},
		{"document.name", c.Document.Name, MaxTitleLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
		{"page.text", c.Page.Text, MaxTextLength},
		{"page.date", c.Page.Date, MaxDateLength},
		{"font.name", c.Font.Name, MaxPathLength},
		{"highlight.style", c.Highlight.Style, MaxStyleLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}
	for i, p := range c.Input.Include {
		if err := validateFieldLength(fmt.Sprintf("input.include[%d]", i), p, MaxPatternLength); err != nil {
			return err
		}
	}
	for i, p := range c.Input.Exclude {
		if err := validateFieldLength(fmt.Sprintf("input.exclude[%d]", i), p, MaxPatternLength); err != nil {
			return err
		}
	}

	if c.Page.Size != "" {
		switch strings.ToLower(c.Page.Size) {
		case "a4", "letter", "legal":
		default:
			return fmt.Errorf("%w: page.size %q (must be a4, letter, or legal)", ErrInvalidValue, c.Page.Size)
		}
	}
	if c.Page.Orientation != "" {
		switch strings.ToLower(c.Page.Orientation) {
		case "portrait", "landscape":
		default:
			return fmt.Errorf("%w: page.orientation %q (must be portrait or landscape)", ErrInvalidValue, c.Page.Orientation)
		}
	}

	margins := []struct {
		field string
		value *float64
	}{
		{"page.margins.top", c.Page.Margins.Top},
		{"page.margins.bottom", c.Page.Margins.Bottom},
		{"page.margins.left", c.Page.Margins.Left},
		{"page.margins.right", c.Page.Margins.Right},
	}
	for _, m := range margins {
		if m.value != nil && *m.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %.2f", ErrInvalidValue, m.field, *m.value)
		}
	}

	if c.Font.Size < 0 {
		return fmt.Errorf("%w: font.size must not be negative, got %.2f", ErrInvalidValue, c.Font.Size)
	}
	if c.Highlight.MaxLineLength < 0 {
		return fmt.Errorf("%w: highlight.maxLineLength must not be negative, got %d", ErrInvalidValue, c.Highlight.MaxLineLength)
	}
	if c.Highlight.TabWidth != nil && *c.Highlight.TabWidth < 0 {
		return fmt.Errorf("%w: highlight.tabWidth must not be negative, got %d", ErrInvalidValue, *c.Highlight.TabWidth)
	}
	if c.Images.Quality < 0 || c.Images.Quality > 100 {
		return fmt.Errorf("%w: images.quality must be between 1 and 100, got %d", ErrInvalidValue, c.Images.Quality)
	}
	if c.Images.MaxDimension < 0 {
		return fmt.Errorf("%w: images.maxDimension must not be negative, got %d", ErrInvalidValue, c.Images.MaxDimension)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidValue, c.Workers)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns an empty configuration: every field unset, so the
// CLI defaults apply.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := yamlutil.DecodeFile(configPath, &cfg); err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		case errors.Is(err, yamlutil.ErrDecode),
			errors.Is(err, yamlutil.ErrEmptyDocument),
			errors.Is(err, yamlutil.ErrInputTooLarge):
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths lists the files tried for a config name, in order:
// current directory then the user config directory, .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
