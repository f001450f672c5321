package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	flag "github.com/spf13/pflag"
	"golang.org/x/term"

	code2pdf "github.com/alnah/go-code2pdf"
	"github.com/alnah/go-code2pdf/internal/config"
	"github.com/alnah/go-code2pdf/internal/dateutil"
	"github.com/alnah/go-code2pdf/internal/fileutil"
	"github.com/alnah/go-code2pdf/internal/fonts"
	"github.com/alnah/go-code2pdf/internal/highlight"
	"github.com/alnah/go-code2pdf/internal/hints"
	"github.com/alnah/go-code2pdf/internal/walk"
)

// Sentinel errors for CLI operations.
var (
	ErrInvalidFlags = errors.New("invalid flags")
	ErrMissingInput = errors.New("no input specified")
	ErrWriteOutput  = errors.New("failed to write output")
)

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}

	root, err := resolveInputPath(positional)
	if err != nil {
		return err
	}

	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	// Load configuration
	cfg := config.DefaultConfig()
	if name := resolveConfigName(flags, envCfg); name != "" {
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return withHint(fmt.Errorf("loading config: %w", err), hintFor(err, name))
		}
	}

	// Environment, then CLI flags, override the file
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Resolve "auto" date once for the whole document
	pageDate, err := dateutil.ResolveDate(cfg.Page.Date, env.Now())
	if err != nil {
		return fmt.Errorf("invalid page date: %w", err)
	}
	cfg.Page.Date = pageDate

	opts, err := buildOptions(flags, cfg)
	if err != nil {
		return err
	}
	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	opts = append(opts, code2pdf.WithLogger(logger))

	conv, err := code2pdf.NewConverter(opts...)
	if err != nil {
		return withHint(err, hintFor(err, ""))
	}

	result, err := conv.Convert(ctx, root)
	if err != nil {
		return withHint(err, hintFor(err, ""))
	}

	// Render before touching the output so failures leave no partial file
	pdf, err := result.Bytes()
	if err != nil {
		return err
	}

	outputPath := orString(cfg.Output.Path, flags.output)
	if err := fileutil.WriteFileAtomic(outputPath, pdf); err != nil {
		return withHint(fmt.Errorf("%w: %w", ErrWriteOutput, err), hints.ForOutputDirectory())
	}

	printSummary(env.Stdout, result, outputPath, flags.common)
	return nil
}

// resolveInputPath returns the single positional argument.
func resolveInputPath(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", ErrMissingInput
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%w: expected one input, got %d", ErrInvalidFlags, len(args))
	}
}

// resolveConfigName picks the config from --config, then CODE2PDF_CONFIG.
func resolveConfigName(flags *convertFlags, env *envConfig) string {
	if flags.common.config != "" {
		return flags.common.config
	}
	return env.ConfigPath
}

// mergeFlags merges CLI flags into config. Only flags given on the command
// line override config values, so flag defaults never mask the file.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	changed := flags.changed
	if changed == nil {
		changed = func(string) bool { return false }
	}

	// I/O flags
	if changed("output") {
		cfg.Output.Path = flags.output
	}
	if changed("workers") {
		cfg.Workers = flags.workers
	}

	// Input flags
	if changed("include") {
		cfg.Input.Include = flags.input.include
	}
	if changed("exclude") {
		cfg.Input.Exclude = flags.input.exclude
	}
	if changed("hidden") {
		cfg.Input.Hidden = flags.input.hidden
	}
	if changed("no-gitignore") {
		cfg.Input.GitIgnore = ptr(!flags.input.noGitIgnore)
	}

	// Document flags
	if changed("name") {
		cfg.Document.Name = flags.document.name
	}
	if changed("include-path") {
		cfg.Document.IncludePath = ptr(flags.document.includePath)
	}

	// Page flags
	if changed("page-size") {
		cfg.Page.Size = flags.page.size
	}
	if changed("orientation") {
		cfg.Page.Orientation = flags.page.orientation
	}
	if changed("margin-top") {
		cfg.Page.Margins.Top = ptr(flags.page.marginTop)
	}
	if changed("margin-bottom") {
		cfg.Page.Margins.Bottom = ptr(flags.page.marginBottom)
	}
	if changed("margin-left") {
		cfg.Page.Margins.Left = ptr(flags.page.marginLeft)
	}
	if changed("margin-right") {
		cfg.Page.Margins.Right = ptr(flags.page.marginRight)
	}
	if changed("page-text") {
		cfg.Page.Text = flags.page.text
	}
	if changed("page-date") {
		cfg.Page.Date = flags.page.date
	}

	// Font flags
	if changed("font") {
		cfg.Font.Name = flags.font.name
	}
	if changed("font-dir") {
		cfg.Font.Dirs = flags.font.dirs
	}
	if changed("font-size") {
		cfg.Font.Size = flags.font.size
	}

	// Highlight flags
	if changed("style") {
		cfg.Highlight.Style = flags.highlight.style
	}
	if changed("max-line-length") {
		cfg.Highlight.MaxLineLength = flags.highlight.maxLineLength
	}
	if changed("tab-width") {
		cfg.Highlight.TabWidth = ptr(flags.highlight.tabWidth)
	}

	// Image flags
	if changed("image-quality") {
		cfg.Images.Quality = flags.images.quality
	}
	if changed("max-image-dimension") {
		cfg.Images.MaxDimension = flags.images.maxDimension
	}
}

// buildOptions turns the merged config into converter options.
// Unset config values fall back to the flag defaults.
func buildOptions(flags *convertFlags, cfg *config.Config) ([]code2pdf.Option, error) {
	margins := code2pdf.Margins{
		Top:    orFloat(cfg.Page.Margins.Top, flags.page.marginTop),
		Bottom: orFloat(cfg.Page.Margins.Bottom, flags.page.marginBottom),
		Left:   orFloat(cfg.Page.Margins.Left, flags.page.marginLeft),
		Right:  orFloat(cfg.Page.Margins.Right, flags.page.marginRight),
	}
	dims, err := code2pdf.NewPageDimensions(
		orString(cfg.Page.Size, flags.page.size),
		orString(cfg.Page.Orientation, flags.page.orientation),
		margins,
	)
	if err != nil {
		return nil, err
	}

	exclude := flags.input.exclude
	if cfg.Input.Exclude != nil {
		exclude = cfg.Input.Exclude
	}

	opts := []code2pdf.Option{
		code2pdf.WithDimensions(dims),
		code2pdf.WithFontSize(orFloat(nonZero(cfg.Font.Size), flags.font.size)),
		code2pdf.WithFont(cfg.Font.Name),
		code2pdf.WithPageText(cfg.Page.Text),
		code2pdf.WithPageDate(cfg.Page.Date),
		code2pdf.WithIncludePath(orBool(cfg.Document.IncludePath, flags.document.includePath)),
		code2pdf.WithTitle(orString(cfg.Document.Name, flags.document.name)),
		code2pdf.WithWorkers(cfg.Workers),
		code2pdf.WithInclude(cfg.Input.Include...),
		code2pdf.WithExclude(exclude...),
		code2pdf.WithHidden(cfg.Input.Hidden),
		code2pdf.WithGitIgnore(orBool(cfg.Input.GitIgnore, !flags.input.noGitIgnore)),
		code2pdf.WithStyle(orString(cfg.Highlight.Style, flags.highlight.style)),
		code2pdf.WithMaxLineLength(orInt(cfg.Highlight.MaxLineLength, flags.highlight.maxLineLength)),
		code2pdf.WithTabWidth(orIntPtr(cfg.Highlight.TabWidth, flags.highlight.tabWidth)),
		code2pdf.WithImageQuality(orInt(cfg.Images.Quality, flags.images.quality)),
		code2pdf.WithMaxImageDimension(orInt(cfg.Images.MaxDimension, flags.images.maxDimension)),
	}
	if len(cfg.Font.Dirs) > 0 {
		opts = append(opts, code2pdf.WithFontDirs(cfg.Font.Dirs...))
	}

	return opts, nil
}

// newLogger builds the stderr logger: text on a terminal, JSON otherwise.
// --quiet keeps errors only, --verbose adds debug records.
func newLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// printSummary reports the processed files, pages and elapsed time.
func printSummary(w io.Writer, r *code2pdf.Result, outputPath string, common commonFlags) {
	if common.quiet {
		return
	}
	if common.verbose {
		fmt.Fprintf(w, "%d files, %d pages -> %s (%v)\n",
			r.ProcessedFiles, r.Pages, outputPath, r.Elapsed.Round(time.Millisecond))
		return
	}
	fmt.Fprintf(w, "Created %s (%d files, %d pages)\n", outputPath, r.ProcessedFiles, r.Pages)
}

// hintFor returns an actionable hint for known error kinds.
func hintFor(err error, configName string) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		if fileutil.IsFilePath(configName) {
			return hints.ForConfigNotFound(nil)
		}
		return hints.ForConfigNotFound(config.SearchPaths(configName))
	case errors.Is(err, code2pdf.ErrFontParse):
		return hints.ForFontNotFound(fonts.EmbeddedNames())
	case errors.Is(err, code2pdf.ErrHighlighter):
		return hints.ForStyleNotFound(highlight.StyleNames())
	case errors.Is(err, walk.ErrInvalidPattern):
		return hints.ForInvalidPattern()
	case errors.Is(err, code2pdf.ErrNoInput):
		return hints.ForNoInput()
	}
	return ""
}

// withHint appends hint to the error message, keeping the error chain.
func withHint(err error, hint string) error {
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}

func ptr[T any](v T) *T {
	return &v
}

func orString(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func orInt(v, def int) int {
	if v != 0 {
		return v
	}
	return def
}

func orIntPtr(v *int, def int) int {
	if v != nil {
		return *v
	}
	return def
}

func orFloat(v *float64, def float64) float64 {
	if v != nil {
		return *v
	}
	return def
}

func orBool(v *bool, def bool) bool {
	if v != nil {
		return *v
	}
	return def
}

// nonZero maps 0 to unset.
func nonZero(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}
