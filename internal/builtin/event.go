package builtin

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Event is the demonstration log record rendered by builtin converters.
type Event struct {
	Time    time.Time
	Level   string
	Logger  string
	Message string
	Fields  map[string]string
}

// FieldsString renders all fields as "k1=v1, k2=v2" in key order.
func (e Event) FieldsString() string {
	if len(e.Fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + e.Fields[k]
	}
	return strings.Join(parts, ", ")
}

// ParseField splits a "key=value" flag argument.
func ParseField(s string) (key, value string, err error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return "", "", fmt.Errorf("invalid field %q (expected key=value)", s)
	}
	return key, value, nil
}
