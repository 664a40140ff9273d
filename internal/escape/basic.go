package escape

import "strings"

// Basic decodes \n \r \t \f \b \" \' \\ in s. Any other escaped character is
// kept without its backslash; a trailing lone backslash is kept.
func Basic(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	rs := []rune(s)
	for i := 0; i < len(rs); i++ {
		c := rs[i]
		if c != '\\' || i+1 == len(rs) {
			b.WriteRune(c)
			continue
		}
		i++
		switch c = rs[i]; c {
		case 'n':
			c = '\n'
		case 'r':
			c = '\r'
		case 't':
			c = '\t'
		case 'f':
			c = '\f'
		case 'b':
			c = '\b'
		}
		b.WriteRune(c)
	}
	return b.String()
}
