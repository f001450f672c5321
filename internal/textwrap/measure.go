package textwrap

import (
	"errors"
	"fmt"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ErrFontParse indicates the font bytes could not be parsed as SFNT.
var ErrFontParse = errors.New("failed to parse font")

// Measurer reports the advance width of a single rune in points.
type Measurer interface {
	Advance(r rune) float64
}

// SFNTMeasurer measures glyph advances of a TrueType/OpenType font at a fixed size.
// A SFNTMeasurer is not safe for concurrent use; Clone it per goroutine.
type SFNTMeasurer struct {
	font *sfnt.Font
	buf  sfnt.Buffer
	ppem fixed.Int26_6
}

// NewSFNTMeasurer parses data and prepares a measurer at the given size in points.
func NewSFNTMeasurer(data []byte, size float64) (*SFNTMeasurer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty font data", ErrFontParse)
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontParse, err)
	}
	return &SFNTMeasurer{
		font: f,
		ppem: fixed.Int26_6(size * 64),
	}, nil
}

// Advance returns the horizontal advance of r. Runes missing from the font
// measure as the .notdef glyph, which is what the PDF viewer will draw.
func (m *SFNTMeasurer) Advance(r rune) float64 {
	gi, err := m.font.GlyphIndex(&m.buf, r)
	if err != nil {
		gi = 0
	}
	adv, err := m.font.GlyphAdvance(&m.buf, gi, m.ppem, xfont.HintingNone)
	if err != nil {
		return 0
	}
	return float64(adv) / 64
}

// Clone returns a measurer sharing the parsed font with its own scratch buffer.
// sfnt.Font methods are safe for concurrent use with distinct buffers.
func (m *SFNTMeasurer) Clone() *SFNTMeasurer {
	return &SFNTMeasurer{font: m.font, ppem: m.ppem}
}

// Compile-time interface check.
var _ Measurer = (*SFNTMeasurer)(nil)
