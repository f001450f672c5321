package main

import (
	"io"

	flag "github.com/spf13/pflag"

	code2pdf "github.com/alnah/go-code2pdf"
)

// defaultOutput is the PDF written when neither flag, env nor config names one.
const defaultOutput = "output.pdf"

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// inputFlags selects which entries of the tree are converted.
type inputFlags struct {
	include     []string
	exclude     []string
	hidden      bool
	noGitIgnore bool
}

// documentFlags holds document-wide flags.
type documentFlags struct {
	name        string
	includePath bool
}

// pageFlags holds page geometry and header caption flags.
type pageFlags struct {
	size         string
	orientation  string
	marginTop    float64
	marginBottom float64
	marginLeft   float64
	marginRight  float64
	text         string
	date         string
}

// fontFlags holds body font flags.
type fontFlags struct {
	name string
	dirs []string
	size float64
}

// highlightFlags holds syntax highlighting flags.
type highlightFlags struct {
	style         string
	maxLineLength int
	tabWidth      int
}

// imageFlags holds image page flags.
type imageFlags struct {
	quality      int
	maxDimension int
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common    commonFlags
	output    string
	workers   int
	input     inputFlags
	document  documentFlags
	page      pageFlags
	font      fontFlags
	highlight highlightFlags
	images    imageFlags

	// changed reports whether a flag was given on the command line.
	changed func(name string) bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show skipped files and timing")
}

// addInputFlags adds file selection flags to a FlagSet.
func addInputFlags(fs *flag.FlagSet, f *inputFlags) {
	fs.StringSliceVar(&f.include, "include", nil, "only convert files matching these globs")
	fs.StringSliceVar(&f.exclude, "exclude", code2pdf.DefaultExcludes, "skip files and directories matching these globs")
	fs.BoolVar(&f.hidden, "hidden", false, "include dot-prefixed files and directories")
	fs.BoolVar(&f.noGitIgnore, "no-gitignore", false, "ignore .gitignore files")
}

// addDocumentFlags adds document flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.name, "name", code2pdf.DefaultTitle, "document title metadata")
	fs.BoolVar(&f.includePath, "include-path", true, "show the file path in page headers")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", code2pdf.PageSizeA4, "page size: a4, letter, legal")
	fs.StringVar(&f.orientation, "orientation", code2pdf.OrientationPortrait, "page orientation: portrait, landscape")
	fs.Float64Var(&f.marginTop, "margin-top", code2pdf.DefaultMarginTop, "top margin in mm")
	fs.Float64Var(&f.marginBottom, "margin-bottom", code2pdf.DefaultMarginBottom, "bottom margin in mm")
	fs.Float64Var(&f.marginLeft, "margin-left", code2pdf.DefaultMarginLeft, "left margin in mm")
	fs.Float64Var(&f.marginRight, "margin-right", code2pdf.DefaultMarginRight, "right margin in mm")
	fs.StringVar(&f.text, "page-text", "", "text in the top right corner of every page")
	fs.StringVar(&f.date, "page-date", "", "date under the page text: \"auto\", \"auto:FORMAT\", or literal")
}

// addFontFlags adds font flags to a FlagSet.
func addFontFlags(fs *flag.FlagSet, f *fontFlags) {
	fs.StringVar(&f.name, "font", "", "bundled font name, system font name or .ttf path")
	fs.StringSliceVar(&f.dirs, "font-dir", nil, "directories searched for font names")
	fs.Float64Var(&f.size, "font-size", code2pdf.DefaultFontSize, "font size in points")
}

// addHighlightFlags adds syntax highlighting flags to a FlagSet.
func addHighlightFlags(fs *flag.FlagSet, f *highlightFlags) {
	fs.StringVar(&f.style, "style", code2pdf.DefaultStyle, "syntax highlighting style")
	fs.IntVar(&f.maxLineLength, "max-line-length", code2pdf.DefaultMaxLineLength, "longer lines are drawn without highlighting")
	fs.IntVar(&f.tabWidth, "tab-width", code2pdf.DefaultTabWidth, "columns per tab stop (0 = keep tabs)")
}

// addImageFlags adds image page flags to a FlagSet.
func addImageFlags(fs *flag.FlagSet, f *imageFlags) {
	fs.IntVar(&f.quality, "image-quality", code2pdf.DefaultImageQuality, "JPEG quality for re-encoded images (1-100)")
	fs.IntVar(&f.maxDimension, "max-image-dimension", 0, "downscale images larger than this many pixels (0 = never)")
}

// newConvertFlagSet registers every convert flag on a new FlagSet bound to f.
// Shared by parseConvertFlags and completion generation.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", defaultOutput, "output PDF file")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addInputFlags(fs, &f.input)
	addDocumentFlags(fs, &f.document)
	addPageFlags(fs, &f.page)
	addFontFlags(fs, &f.font)
	addHighlightFlags(fs, &f.highlight)
	addImageFlags(fs, &f.images)

	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
// Usage output goes to w when parsing fails or --help is given.
func parseConvertFlags(args []string, w io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { printConvertUsage(w) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.changed = fs.Changed

	return f, fs.Args(), nil
}
