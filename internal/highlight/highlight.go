// Package highlight turns source lines into colored runs using chroma lexers
// and styles.
package highlight

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Sentinel errors for highlighting.
var (
	ErrUnknownStyle = errors.New("unknown highlight style")
	ErrTokenise     = errors.New("failed to tokenise source")
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "github"

// DefaultMaxLineLength bounds the per-line highlighting cost.
// Longer lines are emitted as a single plain run.
const DefaultMaxLineLength = 20_000

// analyseSample is how many bytes of content are used to guess a language
// when the file name does not identify one.
const analyseSample = 4096

// RGB is an 8-bit per channel color.
type RGB struct {
	R, G, B uint8
}

// Black is the color of unstyled text.
var Black = RGB{}

// Run is a colored fragment of one source line. Text never contains a newline.
type Run struct {
	Color RGB
	Text  string
}

// Config selects the style and the per-line highlighting budget.
type Config struct {
	Style         string // chroma style name (empty = DefaultStyle)
	MaxLineLength int    // bytes; 0 = DefaultMaxLineLength
}

// Highlighter produces runs for the lines of a file.
// It caches token colors and is not safe for concurrent use.
type Highlighter struct {
	style      *chroma.Style
	maxLineLen int
	colors     map[chroma.TokenType]RGB
}

// New creates a Highlighter. Returns ErrUnknownStyle if the style does not exist.
func New(cfg Config) (*Highlighter, error) {
	name := cfg.Style
	if name == "" {
		name = DefaultStyle
	}
	style, ok := styles.Registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}

	maxLen := cfg.MaxLineLength
	if maxLen <= 0 {
		maxLen = DefaultMaxLineLength
	}

	return &Highlighter{
		style:      style,
		maxLineLen: maxLen,
		colors:     make(map[chroma.TokenType]RGB),
	}, nil
}

// StyleNames lists the available styles.
func StyleNames() []string {
	return styles.Names()
}

// MaxLineLength returns the length above which lines bypass the lexer.
func (h *Highlighter) MaxLineLength() int {
	return h.maxLineLen
}

// Highlight returns the runs of each line, in order. The result has exactly
// len(lines) entries; an empty line yields no runs.
//
// Lexer state carries from one line to the next, except across lines longer
// than MaxLineLength, which are emitted as one black run without touching the
// lexer.
func (h *Highlighter) Highlight(path string, lines []string) ([][]Run, error) {
	lexer := h.lexerFor(path, lines)
	out := make([][]Run, 0, len(lines))

	start := 0
	for i, line := range lines {
		if len(line) <= h.maxLineLen {
			continue
		}
		segment, err := h.tokenise(lexer, lines[start:i])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out = append(out, segment...)
		out = append(out, []Run{{Color: Black, Text: line}})
		start = i + 1
	}
	segment, err := h.tokenise(lexer, lines[start:])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return append(out, segment...), nil
}

// lexerFor picks a lexer by file name, then by content, then plaintext.
func (h *Highlighter) lexerFor(path string, lines []string) chroma.Lexer {
	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		lexer = lexers.Analyse(sample(lines))
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

// tokeniseOptions keeps carriage returns as text. Converting them to line
// feeds would shift every following line.
var tokeniseOptions = &chroma.TokeniseOptions{State: "root", EnsureLF: false}

// tokenise highlights a contiguous block of lines.
func (h *Highlighter) tokenise(lexer chroma.Lexer, lines []string) ([][]Run, error) {
	if len(lines) == 0 {
		return nil, nil
	}

	it, err := lexer.Tokenise(tokeniseOptions, strings.Join(lines, "\n")+"\n")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenise, err)
	}

	out := make([][]Run, 1, len(lines))
	for _, tok := range it.Tokens() {
		color := h.color(tok.Type)
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				out = append(out, nil)
			}
			if part == "" {
				continue
			}
			last := len(out) - 1
			out[last] = appendRun(out[last], color, part)
		}
	}

	// The trailing newline opens one extra empty line; lexers that drop or
	// add newlines must not shift line numbering.
	for len(out) < len(lines) {
		out = append(out, nil)
	}
	return out[:len(lines)], nil
}

// appendRun merges adjacent fragments of the same color.
func appendRun(runs []Run, color RGB, text string) []Run {
	if n := len(runs); n > 0 && runs[n-1].Color == color {
		runs[n-1].Text += text
		return runs
	}
	return append(runs, Run{Color: color, Text: text})
}

// color resolves and caches the foreground of a token type.
func (h *Highlighter) color(tt chroma.TokenType) RGB {
	if c, ok := h.colors[tt]; ok {
		return c
	}
	entry := h.style.Get(tt)
	c := Black
	if entry.Colour.IsSet() {
		c = RGB{R: entry.Colour.Red(), G: entry.Colour.Green(), B: entry.Colour.Blue()}
	}
	h.colors[tt] = c
	return c
}

// sample joins the first lines of a file for content-based detection.
func sample(lines []string) string {
	var b strings.Builder
	for _, l := range lines {
		if b.Len()+len(l) > analyseSample {
			break
		}
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}
