package format

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// Spec is the width/precision modifier `[-]min[.[-]max]` of a conversion word
// or composite.
//
//   - Min: pad to at least Min characters; LeftAlign pads on the right.
//   - Max: cut to at most Max characters; by default the head is dropped and
//     the tail kept, TruncateTail keeps the head instead.
type Spec struct {
	Min          int
	Max          int
	HasMin       bool
	HasMax       bool
	LeftAlign    bool // '-' before min
	TruncateTail bool // '-' before max
	Measure      Measure
}

// ErrMalformed is wrapped by every error returned from Parse.
var ErrMalformed = errors.New("malformed format modifier")

// ParseError points at the offending byte inside the modifier text.
type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", ErrMalformed, e.Offset, e.Msg)
}

func (e *ParseError) Unwrap() error { return ErrMalformed }

// IsZero reports whether the spec neither pads nor truncates.
func (s Spec) IsZero() bool {
	return !s.HasMin && !s.HasMax
}

// String renders the spec in pattern syntax ("" for the zero spec).
func (s Spec) String() string {
	var b strings.Builder
	if s.HasMin {
		if s.LeftAlign {
			b.WriteByte('-')
		}
		b.WriteString(strconv.Itoa(s.Min))
	}
	if s.HasMax {
		b.WriteByte('.')
		if s.TruncateTail {
			b.WriteByte('-')
		}
		b.WriteString(strconv.Itoa(s.Max))
	}
	return b.String()
}

// Parse parses modifier text without the leading '%', e.g. "-4.10" or ".-3".
// The empty string yields the zero Spec.
func Parse(text string) (Spec, error) {
	var s Spec
	i := 0

	if i < len(text) && text[i] != '.' {
		if text[i] == '-' {
			s.LeftAlign = true
			i++
		}
		n, end, err := parseBound(text, i)
		if err != nil {
			return Spec{}, err
		}
		s.Min, s.HasMin, i = n, true, end
	}

	if i < len(text) && text[i] == '.' {
		i++
		if i < len(text) && text[i] == '-' {
			s.TruncateTail = true
			i++
		}
		n, end, err := parseBound(text, i)
		if err != nil {
			return Spec{}, err
		}
		s.Max, s.HasMax, i = n, true, end
	}

	if i != len(text) {
		return Spec{}, &ParseError{Offset: i, Msg: fmt.Sprintf("unexpected %q", text[i])}
	}
	return s, nil
}

// parseBound читает неотрицательное число, влезающее в 31 бит.
func parseBound(text string, start int) (n, end int, err error) {
	end = start
	for end < len(text) && text[end] >= '0' && text[end] <= '9' {
		end++
	}
	if end == start {
		return 0, start, &ParseError{Offset: start, Msg: "expected digits"}
	}
	u, perr := strconv.ParseUint(text[start:end], 10, 31)
	if perr != nil {
		return 0, start, &ParseError{Offset: start, Msg: "width out of range"}
	}
	v, cerr := safecast.Conv[int](u)
	if cerr != nil {
		return 0, start, &ParseError{Offset: start, Msg: cerr.Error()}
	}
	return v, end, nil
}
