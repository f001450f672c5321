package code2pdf

import (
	"strings"
	"time"

	"github.com/alnah/go-code2pdf/internal/dateutil"
	"github.com/alnah/go-code2pdf/internal/textwrap"
)

// caption is the text drawn right-aligned in every page header.
// It is immutable once built and shared by all workers.
type caption struct {
	lines []string
	width float64 // widest line, in points
}

// newCaption joins the page text lines and the resolved date line.
// Returns nil when both are empty.
func newCaption(text, date string, now time.Time, w *textwrap.Wrapper) (*caption, error) {
	var lines []string
	if text != "" {
		text = strings.ReplaceAll(text, "\r\n", "\n")
		lines = append(lines, strings.Split(strings.TrimRight(text, "\n"), "\n")...)
	}
	if date != "" {
		resolved, err := dateutil.ResolveDate(date, now)
		if err != nil {
			return nil, err
		}
		lines = append(lines, resolved)
	}
	if len(lines) == 0 {
		return nil, nil
	}

	c := &caption{lines: lines}
	for _, l := range lines {
		c.width = max(c.width, w.Width(l))
	}
	return c, nil
}
