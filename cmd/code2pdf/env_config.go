package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alnah/go-code2pdf/internal/config"
)

// envPrefix marks the environment variables read by the CLI.
const envPrefix = "CODE2PDF_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string // CODE2PDF_CONFIG: config file name or path
	Output     string // CODE2PDF_OUTPUT: output PDF path
	Style      string // CODE2PDF_STYLE: highlighting style

	// Tier 2 - Font
	Font     string   // CODE2PDF_FONT: font name or path
	FontDirs []string // CODE2PDF_FONT_DIRS: font directories, OS list separated
	FontSize float64  // CODE2PDF_FONT_SIZE: font size in points

	// Tier 3 - Page and document
	PageSize    string // CODE2PDF_PAGE_SIZE: a4, letter, legal
	Orientation string // CODE2PDF_ORIENTATION: portrait, landscape
	PageText    string // CODE2PDF_PAGE_TEXT: header caption
	PageDate    string // CODE2PDF_PAGE_DATE: header date
	Name        string // CODE2PDF_NAME: document title
	Workers     int    // CODE2PDF_WORKERS: parallel workers
}

// knownEnvVars lists valid CODE2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"CODE2PDF_CONFIG": true,
	"CODE2PDF_OUTPUT": true,
	"CODE2PDF_STYLE":  true,
	// Tier 2 - Font
	"CODE2PDF_FONT":      true,
	"CODE2PDF_FONT_DIRS": true,
	"CODE2PDF_FONT_SIZE": true,
	// Tier 3 - Page and document
	"CODE2PDF_PAGE_SIZE":   true,
	"CODE2PDF_ORIENTATION": true,
	"CODE2PDF_PAGE_TEXT":   true,
	"CODE2PDF_PAGE_DATE":   true,
	"CODE2PDF_NAME":        true,
	"CODE2PDF_WORKERS":     true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable numbers are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		// Tier 1
		ConfigPath: os.Getenv("CODE2PDF_CONFIG"),
		Output:     os.Getenv("CODE2PDF_OUTPUT"),
		Style:      os.Getenv("CODE2PDF_STYLE"),
		// Tier 2
		Font: os.Getenv("CODE2PDF_FONT"),
		// Tier 3
		PageSize:    os.Getenv("CODE2PDF_PAGE_SIZE"),
		Orientation: os.Getenv("CODE2PDF_ORIENTATION"),
		PageText:    os.Getenv("CODE2PDF_PAGE_TEXT"),
		PageDate:    os.Getenv("CODE2PDF_PAGE_DATE"),
		Name:        os.Getenv("CODE2PDF_NAME"),
	}

	if dirs := os.Getenv("CODE2PDF_FONT_DIRS"); dirs != "" {
		cfg.FontDirs = filepath.SplitList(dirs)
	}

	if size := os.Getenv("CODE2PDF_FONT_SIZE"); size != "" {
		if s, err := strconv.ParseFloat(size, 64); err == nil && s > 0 {
			cfg.FontSize = s
		}
	}

	if workers := os.Getenv("CODE2PDF_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized CODE2PDF_* variables.
// Helps catch typos like CODE2PDF_FONTSIZE instead of CODE2PDF_FONT_SIZE.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Set env vars override the config file; CLI flags are applied later via
// mergeFlags. This ensures: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	// Tier 1
	if env.Output != "" {
		cfg.Output.Path = env.Output
	}
	if env.Style != "" {
		cfg.Highlight.Style = env.Style
	}

	// Tier 2 - Font
	if env.Font != "" {
		cfg.Font.Name = env.Font
	}
	if len(env.FontDirs) > 0 {
		cfg.Font.Dirs = env.FontDirs
	}
	if env.FontSize > 0 {
		cfg.Font.Size = env.FontSize
	}

	// Tier 3 - Page
	if env.PageSize != "" {
		cfg.Page.Size = env.PageSize
	}
	if env.Orientation != "" {
		cfg.Page.Orientation = env.Orientation
	}
	if env.PageText != "" {
		cfg.Page.Text = env.PageText
	}
	if env.PageDate != "" {
		cfg.Page.Date = env.PageDate
	}

	// Tier 3 - Document
	if env.Name != "" {
		cfg.Document.Name = env.Name
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
}
