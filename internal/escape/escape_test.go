package escape_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patc/internal/escape"
)

func TestResolveFixedTable(t *testing.T) {
	cases := []struct {
		next rune
		want escape.Outcome
	}{
		{'_', escape.Outcome{}},
		{'\\', escape.Outcome{Char: '\\', Emit: true}},
		{'t', escape.Outcome{Char: '\t', Emit: true}},
		{'r', escape.Outcome{Char: '\r', Emit: true}},
		{'n', escape.Outcome{Char: '\n', Emit: true}},
	}
	for _, tc := range cases {
		got, err := escape.Resolve("()", tc.next, 1)
		require.NoError(t, err, "escape %q", tc.next)
		assert.Equal(t, tc.want, got, "escape %q", tc.next)
	}
}

func TestResolveExtraSet(t *testing.T) {
	for _, r := range "()%" {
		got, err := escape.Resolve("()%", r, 3)
		require.NoError(t, err)
		assert.Equal(t, escape.Outcome{Char: r, Emit: true}, got)
	}
	// extra set wins over the fixed table
	got, err := escape.Resolve("n", 'n', 1)
	require.NoError(t, err)
	assert.Equal(t, escape.Outcome{Char: 'n', Emit: true}, got)
}

func TestResolveIllegal(t *testing.T) {
	_, err := escape.Resolve("()", 'q', 7)
	require.Error(t, err)

	var illegal *escape.IllegalError
	require.True(t, errors.As(err, &illegal))
	assert.Equal(t, 'q', illegal.Char)
	assert.Equal(t, 7, illegal.Column)
	assert.Equal(t, "()", illegal.Valid)
	assert.Equal(t,
		`illegal char 'q' at column 7. Only \\, \_, \(, \), \t, \n, \r combinations are allowed as escape characters`,
		err.Error())
}

func TestListing(t *testing.T) {
	assert.Equal(t, "", escape.Listing(""))
	assert.Equal(t, `, \(, \)`, escape.Listing("()"))
}

func TestBasic(t *testing.T) {
	cases := map[string]string{
		`plain`:       "plain",
		`a\nb`:        "a\nb",
		`\r\t\f\b`:    "\r\t\f\b",
		`\"q\"`:       `"q"`,
		`it\'s`:       "it's",
		`back\\slash`: `back\slash`,
		`\x`:          "x",
		`trailing\`:   `trailing\`,
		`comma\,kept`: "comma,kept",
		`юникод\tтаб`: "юникод\tтаб",
	}
	for in, want := range cases {
		assert.Equal(t, want, escape.Basic(in), "Basic(%q)", in)
	}
}
