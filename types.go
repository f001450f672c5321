package code2pdf

import (
	"io"
	"log/slog"
	"time"
)

// Defaults applied by NewConverter.
const (
	DefaultFontSize      = 12.0
	DefaultTitle         = "Project Code"
	DefaultTabWidth      = 4
	DefaultImageQuality  = 85
	DefaultMaxLineLength = 20_000
	DefaultStyle         = "github"
)

// DefaultExcludes are lock files that bloat a code listing without adding
// value. The CLI applies them unless --exclude is given.
var DefaultExcludes = []string{"pnpm-lock.yaml", "Cargo.lock"}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds the configuration assembled from options.
type converterConfig struct {
	dims              Dimensions
	fontSize          float64
	font              string // name or path; empty = bundled Go Mono
	fontDirs          []string
	pageText          string
	pageDate          string
	includePath       bool
	workers           int
	logger            *slog.Logger
	include           []string
	exclude           []string
	hidden            bool
	gitIgnore         bool
	style             string
	maxLineLength     int
	tabWidth          int
	title             string
	imageQuality      int
	maxImageDimension int
	now               func() time.Time
}

func defaultConfig() converterConfig {
	return converterConfig{
		dims:          DefaultDimensions(),
		fontSize:      DefaultFontSize,
		includePath:   true,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		gitIgnore:     true,
		style:         DefaultStyle,
		maxLineLength: DefaultMaxLineLength,
		tabWidth:      DefaultTabWidth,
		title:         DefaultTitle,
		imageQuality:  DefaultImageQuality,
		now:           time.Now,
	}
}

// WithDimensions sets the page size and margins.
func WithDimensions(d Dimensions) Option {
	return func(c *Converter) {
		c.cfg.dims = d
	}
}

// WithFontSize sets the font size in points.
func WithFontSize(size float64) Option {
	return func(c *Converter) {
		c.cfg.fontSize = size
	}
}

// WithFont selects the font by bundled name, system font name or file path.
// A font that cannot be loaded is replaced by the bundled Go Mono with a
// warning.
func WithFont(nameOrPath string) Option {
	return func(c *Converter) {
		c.cfg.font = nameOrPath
	}
}

// WithFontDirs replaces the OS font directories searched for font names.
func WithFontDirs(dirs ...string) Option {
	return func(c *Converter) {
		c.cfg.fontDirs = dirs
	}
}

// WithPageText sets text shown right-aligned in every page header.
// Newlines start new caption lines.
func WithPageText(text string) Option {
	return func(c *Converter) {
		c.cfg.pageText = text
	}
}

// WithPageDate adds a date line under the page text.
// Accepts "auto", "auto:FORMAT", "auto:PRESET" or a literal value.
func WithPageDate(value string) Option {
	return func(c *Converter) {
		c.cfg.pageDate = value
	}
}

// WithIncludePath toggles the file path banner in page headers.
func WithIncludePath(include bool) Option {
	return func(c *Converter) {
		c.cfg.includePath = include
	}
}

// WithWorkers sets the number of concurrent workers (0 = GOMAXPROCS).
func WithWorkers(n int) Option {
	return func(c *Converter) {
		c.cfg.workers = n
	}
}

// WithLogger sets the logger for progress and skipped files.
// A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.cfg.logger = l
		}
	}
}

// WithInclude restricts conversion to files matching any of the globs.
func WithInclude(globs ...string) Option {
	return func(c *Converter) {
		c.cfg.include = append(c.cfg.include, globs...)
	}
}

// WithExclude skips files and directories matching any of the globs.
func WithExclude(globs ...string) Option {
	return func(c *Converter) {
		c.cfg.exclude = append(c.cfg.exclude, globs...)
	}
}

// WithHidden includes dot-prefixed files and directories.
func WithHidden(hidden bool) Option {
	return func(c *Converter) {
		c.cfg.hidden = hidden
	}
}

// WithGitIgnore toggles honouring .gitignore files in the walked tree.
func WithGitIgnore(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.gitIgnore = enabled
	}
}

// WithStyle selects the syntax highlighting style.
func WithStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.style = name
	}
}

// WithMaxLineLength sets the line length, in bytes, above which lines are
// drawn without highlighting.
func WithMaxLineLength(n int) Option {
	return func(c *Converter) {
		c.cfg.maxLineLength = n
	}
}

// WithTabWidth sets the number of columns between tab stops (0 keeps tabs).
func WithTabWidth(n int) Option {
	return func(c *Converter) {
		c.cfg.tabWidth = n
	}
}

// WithTitle sets the document title metadata.
func WithTitle(title string) Option {
	return func(c *Converter) {
		c.cfg.title = title
	}
}

// WithImageQuality sets the JPEG quality (1-100) for re-encoded images.
func WithImageQuality(q int) Option {
	return func(c *Converter) {
		c.cfg.imageQuality = q
	}
}

// WithMaxImageDimension downscales images larger than px on either side
// (0 = keep original size).
func WithMaxImageDimension(px int) Option {
	return func(c *Converter) {
		c.cfg.maxImageDimension = px
	}
}

// withClock fixes the time used to resolve page dates.
func withClock(now func() time.Time) Option {
	return func(c *Converter) {
		c.cfg.now = now
	}
}
