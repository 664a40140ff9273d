package format

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Spec
	}{
		{"", Spec{}},
		{"7", Spec{Min: 7, HasMin: true}},
		{"-7", Spec{Min: 7, HasMin: true, LeftAlign: true}},
		{".3", Spec{Max: 3, HasMax: true}},
		{".-3", Spec{Max: 3, HasMax: true, TruncateTail: true}},
		{"4.10", Spec{Min: 4, Max: 10, HasMin: true, HasMax: true}},
		{"-3.-4", Spec{Min: 3, Max: 4, HasMin: true, HasMax: true, LeftAlign: true, TruncateTail: true}},
		{"0.0", Spec{HasMin: true, HasMax: true}},
		{"2147483647", Spec{Min: 2147483647, HasMin: true}},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		require.NoError(t, err, "Parse(%q)", tc.in)
		assert.Equal(t, tc.want, got, "Parse(%q)", tc.in)
		assert.Equal(t, tc.in, got.String(), "round trip of %q", tc.in)
	}
}

func TestParseMalformed(t *testing.T) {
	cases := map[string]int{
		"-":          1,
		".":          1,
		"5.":         2,
		".-":         2,
		"-.3":        1,
		"2147483648": 0,
		"4x":         1,
	}
	for in, offset := range cases {
		_, err := Parse(in)
		require.Error(t, err, "Parse(%q)", in)
		assert.True(t, errors.Is(err, ErrMalformed), "Parse(%q) must wrap ErrMalformed", in)
		var pe *ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, offset, pe.Offset, "offset for %q", in)
	}
}

func TestApply(t *testing.T) {
	mustParse := func(s string) Spec {
		spec, err := Parse(s)
		require.NoError(t, err)
		return spec
	}
	cases := []struct {
		spec string
		in   string
		want string
	}{
		{"", "Hello", "Hello"},
		{"7", "Hello", "  Hello"},
		{"-7", "Hello", "Hello  "},
		{".3", "Hello", "llo"},
		{".-3", "Hello", "Hel"},
		{"4.5", "123", " 123"},
		{"-4.5", "123", "123 "},
		{"3.4", "Hello", "ello"},
		{"-3.-4", "Hello", "Hell"},
		{"4.10", "ABC Hello", "ABC Hello"},
		{"4.10", "ABC", " ABC"},
		{".2", "ABC Hello", "lo"},
		{".0", "abc", ""},
		{"5", "", "     "},
		{".3", "h\u00e9llo", "llo"},
		{".-2", "h\u00e9llo", "h\u00e9"},
		{"4", "日本", "  日本"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Apply(mustParse(tc.spec), tc.in), "%%%s applied to %q", tc.spec, tc.in)
	}
}

func TestApplyCells(t *testing.T) {
	spec := Spec{Min: 6, HasMin: true, Measure: Cells}
	assert.Equal(t, "  日本", Apply(spec, "日本"))

	spec = Spec{Max: 4, HasMax: true, TruncateTail: true, Measure: Cells}
	assert.Equal(t, "日本", Apply(spec, "日本語"))

	spec = Spec{Max: 4, HasMax: true, Measure: Cells}
	assert.Equal(t, "本語", Apply(spec, "日本語"))

	// обрезка посередине широкого символа даёт ширину меньше max, затем паддинг
	spec = Spec{Min: 3, Max: 3, HasMin: true, HasMax: true, TruncateTail: true, Measure: Cells}
	assert.Equal(t, " 日", Apply(spec, "日本語"))
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	Write(&buf, Spec{}, "a")
	Write(&buf, Spec{Min: 3, HasMin: true, LeftAlign: true}, "b")
	Write(&buf, Spec{Max: 1, HasMax: true}, "cd")
	assert.Equal(t, "ab  d", buf.String())
}

func TestParseMeasure(t *testing.T) {
	m, err := ParseMeasure("CELLS")
	require.NoError(t, err)
	assert.Equal(t, Cells, m)
	m, err = ParseMeasure("")
	require.NoError(t, err)
	assert.Equal(t, Runes, m)
	_, err = ParseMeasure("bytes")
	assert.Error(t, err)
	assert.Equal(t, "cells", Cells.String())
}
