// Package code2pdf renders a directory tree of source files into a single
// paginated PDF with syntax coloring.
//
// # Quick Start
//
// Create a converter, lay out a directory, and write the result:
//
//	conv, err := code2pdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(context.Background(), "./myproject")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	f, err := os.Create("project.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//	if err := result.Write(f); err != nil {
//	    log.Fatal(err)
//	}
//
// Convert also accepts a single file as root.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Directory walk in depth-first order (files before subdirectories,
//     each sorted by name), filtered by .gitignore, hidden-file and glob rules
//  2. Per-file layout: text files are highlighted with Chroma and wrapped
//     into pages; images (jpg, png, bmp, ico, webp) get a page of their own
//  3. Page collection into a shared document subset, tagged with the file's
//     walk ordinal
//  4. PDF serialization via fpdf with the TrueType font embedded
//
// Files that cannot be read or decoded are logged and skipped; they never
// abort a conversion.
//
// # Page Layout
//
// Every text page carries a header above the top margin: the file path on
// the left, and an optional caption (free text plus a date line) aligned to
// the right margin. Body lines wrap at the right margin; when a page holds
// as many lines as fit between the margins, layout continues on a new page
// of the same file.
//
// Image pages scale the image to fill the page. Images more than 1.25 times
// wider than tall are turned sideways.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	dims, err := code2pdf.NewPageDimensions("letter", "landscape", code2pdf.DefaultMargins())
//	conv, err := code2pdf.NewConverter(
//	    code2pdf.WithDimensions(dims),
//	    code2pdf.WithFontSize(10),
//	    code2pdf.WithFont("DejaVu Sans Mono"),
//	    code2pdf.WithPageText("Acme Corp"),
//	    code2pdf.WithPageDate("auto"),
//	    code2pdf.WithExclude("vendor", "*.min.js"),
//	    code2pdf.WithStyle("monokai"),
//	)
//
// A font is looked up by path, then among the bundled Go fonts, then in
// the system font directories. When none matches, the bundled Go Mono is
// used and a warning is logged.
//
// # Parallel Processing
//
// Files are laid out by a fixed set of goroutines (WithWorkers, default
// GOMAXPROCS). Each goroutine owns its page builder, glyph width cache and
// lexer state; only the document subset is shared. Pages are reassembled
// in walk order, so the output does not depend on the worker count.
package code2pdf
