package source

import (
	"fmt"
)

type Span struct {
	Pattern PatternID
	Start   uint32 // в байтах включительно
	End     uint32 // в байтах не включительно
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.Pattern, s.Start, s.End)
}

// Cover returns the smallest span containing both s and other.
// Spans of different patterns are not merged.
func (s Span) Cover(other Span) Span {
	if s.Pattern != other.Pattern {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Contains reports whether other lies entirely inside s.
func (s Span) Contains(other Span) bool {
	return s.Pattern == other.Pattern && other.Start >= s.Start && other.End <= s.End
}

func (s Span) ShiftRight(n uint32) Span {
	return Span{
		Pattern: s.Pattern,
		Start:   s.Start + n,
		End:     s.End + n,
	}
}
