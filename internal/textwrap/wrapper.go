// Package textwrap measures text at a fixed font and size and splits it into
// width-bounded lines.
package textwrap

import (
	"strings"
	"unicode"
)

// wrapSlack is the remaining width (in points) under which a whitespace rune
// ends the current line. It makes the greedy wrap prefer breaking at spaces
// near the right edge without backtracking.
const wrapSlack = 30.0

// Line is one wrapped line and its rendered width in points.
type Line struct {
	Text  string
	Width float64
}

// Wrapper splits strings into lines not exceeding a maximum width.
// Advance widths are cached per rune for the lifetime of the Wrapper.
// A Wrapper is not safe for concurrent use; use Clone to give each goroutine its own.
type Wrapper struct {
	measurer Measurer
	fontSize float64
	cache    map[rune]float64
}

// New creates a Wrapper measuring with the font in data at fontSize points.
func New(data []byte, fontSize float64) (*Wrapper, error) {
	m, err := NewSFNTMeasurer(data, fontSize)
	if err != nil {
		return nil, err
	}
	return NewWithMeasurer(m, fontSize), nil
}

// NewWithMeasurer creates a Wrapper around an arbitrary Measurer.
func NewWithMeasurer(m Measurer, fontSize float64) *Wrapper {
	return &Wrapper{
		measurer: m,
		fontSize: fontSize,
		cache:    make(map[rune]float64),
	}
}

// Clone returns an independent Wrapper with its own cache.
// The parsed font is shared when the measurer supports it.
func (w *Wrapper) Clone() *Wrapper {
	m := w.measurer
	if sm, ok := m.(*SFNTMeasurer); ok {
		m = sm.Clone()
	}
	return NewWithMeasurer(m, w.fontSize)
}

// FontSize returns the font size in points.
func (w *Wrapper) FontSize() float64 {
	return w.fontSize
}

// advance returns the cached advance of r, measuring it on first use.
func (w *Wrapper) advance(r rune) float64 {
	if adv, ok := w.cache[r]; ok {
		return adv
	}
	adv := w.measurer.Advance(r)
	w.cache[r] = adv
	return adv
}

// Width returns the rendered width of text in points.
func (w *Wrapper) Width(text string) float64 {
	var total float64
	for _, r := range text {
		total += w.advance(r)
	}
	return total
}

// Split breaks text into lines. maxWidth is called with the index of the line
// being filled, so the first line may have a different bound than the rest.
//
// A line ends before a rune when the rune would reach the bound, or when the
// rune is whitespace and less than wrapSlack points would remain. Leading
// whitespace of continuation lines is trimmed, as is trailing whitespace of
// the last line. The result always has at least one element.
func (w *Wrapper) Split(text string, maxWidth func(line int) float64) []Line {
	var lines []Line
	var buf strings.Builder
	var current float64
	limit := maxWidth(0)

	for _, r := range text {
		adv := w.advance(r)
		next := current + adv
		full := next >= limit || (limit-next < wrapSlack && unicode.IsSpace(r))
		// An empty continuation line would never make progress.
		if full && (buf.Len() > 0 || len(lines) == 0) {
			lines = append(lines, Line{Text: trimContinuation(buf.String(), len(lines)), Width: current})
			limit = maxWidth(len(lines))
			buf.Reset()
			current = 0
		}
		buf.WriteRune(r)
		current += adv
	}

	last := strings.TrimRightFunc(buf.String(), unicode.IsSpace)
	lines = append(lines, Line{Text: trimContinuation(last, len(lines)), Width: current})
	return lines
}

// trimContinuation strips the leading whitespace of every line but the first.
func trimContinuation(s string, index int) string {
	if index == 0 {
		return s
	}
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}
