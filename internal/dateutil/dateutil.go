// Package dateutil resolves the date line of page headers: literal values
// pass through, "auto" values are stamped with the conversion time.
package dateutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length to prevent abuse.
const MaxDateFormatLength = 50

// DefaultDateFormat is used when "auto" is specified without a format.
const DefaultDateFormat = "YYYY-MM-DD"

// DatePresets provides named shortcuts for common date formats.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
	"datetime": "YYYY-MM-DD HH:mm",
	"time":     "HH:mm",
}

// field renders one date component.
type field struct {
	token  string
	render func(time.Time) string
}

// fields is ordered by token length descending for greedy matching. Clock
// tokens are two letters only so single letters in literal text stay put.
var fields = []field{
	{"YYYY", func(t time.Time) string { return fmt.Sprintf("%04d", t.Year()) }},
	{"MMMM", func(t time.Time) string { return t.Month().String() }},
	{"MMM", func(t time.Time) string { return t.Month().String()[:3] }},
	{"YY", func(t time.Time) string { return pad2(t.Year() % 100) }},
	{"MM", func(t time.Time) string { return pad2(int(t.Month())) }},
	{"DD", func(t time.Time) string { return pad2(t.Day()) }},
	{"HH", func(t time.Time) string { return pad2(t.Hour()) }},
	{"hh", func(t time.Time) string { return pad2(hour12(t.Hour())) }},
	{"mm", func(t time.Time) string { return pad2(t.Minute()) }},
	{"ss", func(t time.Time) string { return pad2(t.Second()) }},
	{"M", func(t time.Time) string { return strconv.Itoa(int(t.Month())) }},
	{"D", func(t time.Time) string { return strconv.Itoa(t.Day()) }},
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func hour12(h int) int {
	if h %= 12; h == 0 {
		return 12
	}
	return h
}

// segment is either literal text or a date field.
type segment struct {
	literal string
	render  func(time.Time) string
}

// Layout is a compiled date format. Literal text is never reinterpreted
// when formatting, so digits and month names outside tokens stay as typed.
type Layout struct {
	segments []segment
}

// Compile parses a user-friendly date format.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, HH (24h), hh (12h), mm, ss.
// Brackets escape literal text: [Date] keeps "Date" as is. Any other
// character is kept as a literal.
// Returns ErrInvalidDateFormat if the format is empty, too long, or has unclosed brackets.
func Compile(format string) (Layout, error) {
	if format == "" {
		return Layout{}, fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return Layout{}, fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var (
		l   Layout
		lit strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			l.segments = append(l.segments, segment{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(format); {
		if format[i] == '[' {
			end := strings.IndexByte(format[i+1:], ']')
			if end == -1 {
				return Layout{}, fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			lit.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		f, ok := matchField(format[i:])
		if !ok {
			lit.WriteByte(format[i])
			i++
			continue
		}
		flush()
		l.segments = append(l.segments, segment{render: f.render})
		i += len(f.token)
	}
	flush()

	return l, nil
}

func matchField(s string) (field, bool) {
	for _, f := range fields {
		if strings.HasPrefix(s, f.token) {
			return f, true
		}
	}
	return field{}, false
}

// Format renders t through the layout.
func (l Layout) Format(t time.Time) string {
	var b strings.Builder
	for _, s := range l.segments {
		if s.render != nil {
			b.WriteString(s.render(t))
			continue
		}
		b.WriteString(s.literal)
	}
	return b.String()
}

// ResolveDate handles "auto" and "auto:FORMAT" syntax for date values.
//   - "auto": t in YYYY-MM-DD
//   - "auto:FORMAT": t in a custom format, e.g. "auto:DD/MM/YYYY"
//   - "auto:preset": t in a named preset (iso, european, us, long, datetime, time)
//   - any other value is returned unchanged
//
// t is the conversion start, so every page shows the same stamp.
func ResolveDate(value string, t time.Time) (string, error) {
	lower := strings.ToLower(value)
	if !strings.HasPrefix(lower, "auto") {
		return value, nil
	}

	format := DefaultDateFormat
	switch {
	case lower == "auto":
	case strings.HasPrefix(lower, "auto:"):
		// Keep the original case: tokens are case sensitive
		format = value[len("auto:"):]
		if format == "" {
			return "", fmt.Errorf("%w: format cannot be empty after \"auto:\"", ErrInvalidDateFormat)
		}
		if preset, ok := DatePresets[strings.ToLower(format)]; ok {
			format = preset
		}
	default:
		return "", fmt.Errorf("%w: invalid auto syntax %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
	}

	layout, err := Compile(format)
	if err != nil {
		return "", err
	}
	return layout.Format(t), nil
}
