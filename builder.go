package code2pdf

import (
	"bytes"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/alnah/go-code2pdf/internal/fileutil"
	"github.com/alnah/go-code2pdf/internal/highlight"
	"github.com/alnah/go-code2pdf/internal/pdfdoc"
	"github.com/alnah/go-code2pdf/internal/textwrap"
)

// lineHeightFactor is the line height as a multiple of the font size.
const lineHeightFactor = 1.2

// captionGap separates the caption from the path banner.
var captionGap = MM(5)

// builderConfig is shared, read-only configuration for page builders.
type builderConfig struct {
	dims        Dimensions
	caption     *caption // nil = no caption
	includePath bool
	tabWidth    int
	logger      *slog.Logger
}

// pageBuilder lays out one file at a time into pages. Each worker owns one;
// only the subset is shared.
//
// States: idle -> empty page -> accumulating -> (page full -> empty page)* -> idle.
type pageBuilder struct {
	cfg     builderConfig
	wrapper *textwrap.Wrapper
	subset  *documentSubset

	ops       []pdfdoc.Op
	lineCount int
	lineWidth float64
	color     pdfdoc.RGB
	path      string
	ordinal   int
	dirty     bool // page carries body content since its last init
	processed int
}

func newPageBuilder(cfg builderConfig, wrapper *textwrap.Wrapper, subset *documentSubset) *pageBuilder {
	return &pageBuilder{cfg: cfg, wrapper: wrapper, subset: subset}
}

// maxLinesPerPage is how many body lines fit between the top and bottom
// margins. At least one line is always allowed.
func (b *pageBuilder) maxLinesPerPage() int {
	n := int(math.Floor(b.cfg.dims.MaxTextHeight() / b.lineHeight()))
	return max(n, 1)
}

func (b *pageBuilder) lineHeight() float64 {
	return b.wrapper.FontSize() * lineHeightFactor
}

// processedFileCount is the number of files handed to processFile.
func (b *pageBuilder) processedFileCount() int {
	return b.processed
}

// beginFile starts the first page of a file.
func (b *pageBuilder) beginFile(path string, ordinal int) {
	b.path, b.ordinal = path, ordinal
	b.lineCount, b.lineWidth = 0, 0
	b.color = pdfdoc.RGB{}
	b.initPage()
}

// initPage writes the page header and moves the cursor to the body origin.
func (b *pageBuilder) initPage() {
	d := b.cfg.dims
	b.ops = make([]pdfdoc.Op, 0, 64)
	b.dirty = false
	b.ops = append(b.ops,
		pdfdoc.SetFont{Size: b.wrapper.FontSize(), LineHeight: b.lineHeight()},
		pdfdoc.SetFillColor{},
	)

	pathWidth := d.MaxTextWidth()
	if c := b.cfg.caption; c != nil {
		b.ops = append(b.ops, pdfdoc.SetCursor{X: d.Width - d.MarginRight - c.width, Y: headerBaseline})
		for _, line := range c.lines {
			b.ops = append(b.ops, pdfdoc.WriteText{Text: line}, pdfdoc.LineBreak{})
		}
		pathWidth -= c.width + captionGap
	}

	if b.cfg.includePath {
		b.ops = append(b.ops, pdfdoc.SetCursor{X: d.MarginLeft, Y: headerBaseline})
		for _, line := range b.wrapper.Split(b.path, func(int) float64 { return pathWidth }) {
			b.ops = append(b.ops, pdfdoc.WriteText{Text: line.Text}, pdfdoc.LineBreak{})
		}
	}

	b.ops = append(b.ops, pdfdoc.SetCursor{X: d.MarginLeft, Y: d.MarginTop})
}

// pushRun appends a colored run to the current line, wrapping it onto
// following lines (and pages) when it does not fit.
func (b *pageBuilder) pushRun(run highlight.Run) {
	b.dirty = true
	b.color = pdfdoc.RGB{R: run.Color.R, G: run.Color.G, B: run.Color.B}
	b.ops = append(b.ops, pdfdoc.SetFillColor{Color: b.color})

	maxWidth := b.cfg.dims.MaxTextWidth()
	remaining := maxWidth - b.lineWidth
	lines := b.wrapper.Split(run.Text, func(i int) float64 {
		if i == 0 {
			return remaining
		}
		return maxWidth
	})

	if len(lines) == 1 {
		b.writeText(run.Text)
		b.lineWidth += b.wrapper.Width(run.Text)
		return
	}

	for i, l := range lines {
		if i > 0 {
			b.lineWidth = 0
			b.nextLine()
		}
		b.writeText(l.Text)
		b.lineWidth += l.Width
	}
}

// endSourceLine finishes a source line.
func (b *pageBuilder) endSourceLine() {
	b.dirty = true
	b.lineWidth = 0
	b.nextLine()
}

// nextLine advances the line counter. A full page is flushed and a new one
// started for the same file; otherwise the cursor moves down one line.
func (b *pageBuilder) nextLine() {
	b.lineCount++
	if b.lineCount < b.maxLinesPerPage() {
		b.ops = append(b.ops, pdfdoc.LineBreak{})
		return
	}
	b.flush()
	b.initPage()
	b.lineCount = 0
	b.ops = append(b.ops, pdfdoc.SetFillColor{Color: b.color})
}

// endFile saves the current page if it carries body content.
func (b *pageBuilder) endFile() {
	if b.dirty {
		b.flush()
	}
	b.ops = nil
	b.dirty = false
	b.path = ""
}

// abandonFile drops the partial state and the flushed pages of the file at
// ordinal, leaving the builder ready for the next file.
func (b *pageBuilder) abandonFile(ordinal int) {
	b.ops = nil
	b.dirty = false
	b.path = ""
	b.lineCount, b.lineWidth = 0, 0
	b.subset.discard(ordinal)
}

// emitImagePage produces one page showing img scaled to fit the page.
func (b *pageBuilder) emitImagePage(path string, ordinal int, img pdfdoc.Image) {
	b.beginFile(path, ordinal)
	bounds := img.Image.Bounds()
	op := placeImage(b.cfg.dims, bounds.Dx(), bounds.Dy())
	op.ID = b.subset.addImage(img)
	b.ops = append(b.ops, op)
	b.flush()
	b.ops = nil
	b.path = ""
}

func (b *pageBuilder) writeText(s string) {
	if s != "" {
		b.ops = append(b.ops, pdfdoc.WriteText{Text: s})
	}
}

func (b *pageBuilder) flush() {
	b.subset.addPage(pdfdoc.Page{
		Width:  b.cfg.dims.Width,
		Height: b.cfg.dims.Height,
		Ops:    b.ops,
	}, b.ordinal)
	b.ops = nil
	b.dirty = false
}

// processFile lays out one file: images become a single image page, any
// other file is read as text and highlighted. The file counts as processed
// even when it fails.
func (b *pageBuilder) processFile(path string, ordinal int, h *highlight.Highlighter) error {
	b.processed++
	if fileutil.IsImageFile(path) {
		return b.processImage(path, ordinal)
	}
	return b.processText(path, ordinal, h)
}

func (b *pageBuilder) processImage(path string, ordinal int) error {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the directory walk
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadFile, err)
	}
	img, err := decodeImage(data)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDecodeImage, path, err)
	}
	b.emitImagePage(path, ordinal, img)
	return nil
}

func (b *pageBuilder) processText(path string, ordinal int, h *highlight.Highlighter) error {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the directory walk
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadFile, err)
	}

	lines, truncated := splitLines(data, b.cfg.tabWidth)
	if truncated {
		b.cfg.logger.Debug("stopped at non UTF-8 content", slog.String("path", path), slog.Int("lines", len(lines)))
	}
	if len(lines) == 0 {
		return nil
	}

	if n := countLonger(lines, h.MaxLineLength()); n > 0 {
		b.cfg.logger.Debug("long lines left unhighlighted",
			slog.String("path", path), slog.Int("lines", n), slog.Int("max_length", h.MaxLineLength()))
	}

	runs, err := h.Highlight(path, lines)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHighlighter, err)
	}

	b.beginFile(path, ordinal)
	for _, lineRuns := range runs {
		for _, r := range lineRuns {
			b.pushRun(r)
		}
		b.endSourceLine()
	}
	b.endFile()
	return nil
}

func countLonger(lines []string, limit int) int {
	n := 0
	for _, l := range lines {
		if len(l) > limit {
			n++
		}
	}
	return n
}

// utf8BOM is stripped from the start of text files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// splitLines splits data into display lines: line terminators (LF, CRLF or
// a lone CR) removed, tabs expanded and text NFC-normalized. Reading stops at
// the first line that is not valid UTF-8, which is reported as truncated.
func splitLines(data []byte, tabWidth int) (lines []string, truncated bool) {
	data = bytes.TrimPrefix(data, utf8BOM)
	for len(data) > 0 {
		var raw []byte
		raw, data = cutLine(data)
		if !utf8.Valid(raw) {
			return lines, true
		}
		lines = append(lines, norm.NFC.String(expandTabs(string(raw), tabWidth)))
	}
	return lines, false
}

// cutLine returns the first line of data and the rest after its terminator.
func cutLine(data []byte) (line, rest []byte) {
	i := bytes.IndexAny(data, "\r\n")
	if i < 0 {
		return data, nil
	}
	if data[i] == '\r' && i+1 < len(data) && data[i+1] == '\n' {
		return data[:i], data[i+2:]
	}
	return data[:i], data[i+1:]
}

// expandTabs replaces tabs with spaces up to the next tab stop.
func expandTabs(s string, width int) string {
	if width <= 0 || !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := width - col%width
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}
