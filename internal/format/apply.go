package format

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Measure selects how widths are counted.
type Measure uint8

const (
	// Runes counts one per character (Unicode code point).
	Runes Measure = iota
	// Cells counts terminal cells: East Asian wide characters take two.
	Cells
)

func (m Measure) String() string {
	switch m {
	case Runes:
		return "runes"
	case Cells:
		return "cells"
	}
	return "unknown"
}

// ParseMeasure converts "runes" or "cells" into a Measure.
func ParseMeasure(s string) (Measure, error) {
	switch strings.ToLower(s) {
	case "", "runes":
		return Runes, nil
	case "cells":
		return Cells, nil
	}
	return Runes, fmt.Errorf("invalid width measure: %q (expected: runes|cells)", s)
}

func (m Measure) width(s string) int {
	if m == Cells {
		return runewidth.StringWidth(s)
	}
	return utf8.RuneCountInString(s)
}

// Apply truncates then pads s according to spec. Truncation runs first so one
// modifier can both cut long values and pad short ones.
func Apply(spec Spec, s string) string {
	if spec.IsZero() {
		return s
	}
	n := spec.Measure.width(s)
	if spec.HasMax && n > spec.Max {
		s = truncate(spec, s, n)
		n = spec.Measure.width(s)
	}
	if spec.HasMin && n < spec.Min {
		pad := strings.Repeat(" ", spec.Min-n)
		if spec.LeftAlign {
			return s + pad
		}
		return pad + s
	}
	return s
}

// Write appends Apply(spec, s) to buf.
func Write(buf *bytes.Buffer, spec Spec, s string) {
	if spec.IsZero() {
		buf.WriteString(s)
		return
	}
	buf.WriteString(Apply(spec, s))
}

func truncate(spec Spec, s string, n int) string {
	if spec.Measure == Cells {
		if spec.TruncateTail {
			return runewidth.Truncate(s, spec.Max, "")
		}
		return runewidth.TruncateLeft(s, n-spec.Max, "")
	}
	if spec.TruncateTail {
		return headRunes(s, spec.Max)
	}
	return tailRunes(s, n-spec.Max)
}

// headRunes оставляет первые k символов.
func headRunes(s string, k int) string {
	i := 0
	for k > 0 && i < len(s) {
		_, sz := utf8.DecodeRuneInString(s[i:])
		i += sz
		k--
	}
	return s[:i]
}

// tailRunes отбрасывает первые drop символов.
func tailRunes(s string, drop int) string {
	i := 0
	for drop > 0 && i < len(s) {
		_, sz := utf8.DecodeRuneInString(s[i:])
		i += sz
		drop--
	}
	return s[i:]
}
