package builtin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patc/internal/convert"
)

func render(t *testing.T, reg *convert.Registry[Event], word string, opts []string, e Event) string {
	t.Helper()
	f, ok := reg.Lookup(word)
	require.True(t, ok, "word %q not registered", word)
	c, err := f(opts)
	require.NoError(t, err)
	return c.Convert(e)
}

func sampleEvent() Event {
	return Event{
		Time:    time.Date(2024, 3, 9, 14, 5, 7, 123_000_000, time.UTC),
		Level:   "warn",
		Logger:  "com.acme.billing.Invoice",
		Message: "payment declined",
		Fields:  map[string]string{"user": "ann", "req": "42"},
	}
}

func TestBuiltinWords(t *testing.T) {
	reg := NewRegistry()
	e := sampleEvent()
	tests := []struct {
		word string
		opts []string
		want string
	}{
		{"hello", nil, "Hello"},
		{"OTT", nil, "123"},
		{"msg", nil, "payment declined"},
		{"m", nil, "payment declined"},
		{"level", nil, "WARN"},
		{"p", nil, "WARN"},
		{"logger", nil, "com.acme.billing.Invoice"},
		{"c", []string{"0"}, "c.a.b.Invoice"},
		{"c", []string{"1"}, "c.a.b.Invoice"},
		{"c", []string{"2"}, "c.a.billing.Invoice"},
		{"c", []string{"10"}, "com.acme.billing.Invoice"},
		{"X", []string{"user"}, "ann"},
		{"X", []string{"trace", "-"}, "-"},
		{"mdc", nil, "req=42, user=ann"},
		{"lit", []string{"a", "b"}, "a,b"},
		{"date", nil, "2024-03-09 14:05:07,123"},
		{"d", []string{"HH:mm:ss.SSS", "UTC"}, "14:05:07.123"},
		{"d", []string{"yyyy-MM-dd", "UTC"}, "2024-03-09"},
		{"d", []string{"RFC3339", "UTC"}, "2024-03-09T14:05:07Z"},
		{"d", []string{"15:04", "UTC"}, "14:05"},
	}
	for _, tt := range tests {
		if tt.word == "date" {
			// локальная зона тестовой машины
			e.Time = e.Time.In(time.Local)
			tt.want = e.Time.Format(DefaultDateLayout)
		}
		assert.Equal(t, tt.want, render(t, reg, tt.word, tt.opts, e), "%s%v", tt.word, tt.opts)
	}
}

func TestBadOptions(t *testing.T) {
	reg := NewRegistry()
	for _, tc := range []struct {
		word string
		opts []string
	}{
		{"logger", []string{"x"}},
		{"logger", []string{"-1"}},
		{"date", []string{"", "Mars/Olympus"}},
	} {
		f, ok := reg.Lookup(tc.word)
		require.True(t, ok)
		_, err := f(tc.opts)
		var oe *convert.OptionError
		assert.ErrorAs(t, err, &oe, "%s%v", tc.word, tc.opts)
	}
}

func TestRegisterConstants(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, RegisterConstants(reg, map[string]string{"app": "billing", "hello": "Hi"}))
	assert.Equal(t, "billing", render(t, reg, "app", nil, Event{}))
	assert.Equal(t, "Hi", render(t, reg, "hello", nil, Event{}), "config constants override builtins")
	assert.Error(t, RegisterConstants(reg, map[string]string{"": "x"}))
}

func TestParseField(t *testing.T) {
	k, v, err := ParseField("user=ann=x")
	require.NoError(t, err)
	assert.Equal(t, "user", k)
	assert.Equal(t, "ann=x", v)

	_, _, err = ParseField("novalue")
	assert.Error(t, err)
	_, _, err = ParseField("=x")
	assert.Error(t, err)
}

func TestAbbreviateEdgeCases(t *testing.T) {
	assert.Equal(t, "", abbreviate("", 1))
	assert.Equal(t, "Main", abbreviate("Main", 0))
	assert.Equal(t, "ж.Main", abbreviate("жук.Main", 1))
}
