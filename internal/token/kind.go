package token

// Kind represents the category of a pattern token.
type Kind uint8

const (
	// Invalid indicates an erroneous token; a diagnostic was reported for it.
	Invalid Kind = iota
	// EOF marks the end of the pattern.
	EOF
	// Literal is a run of plain text.
	Literal
	// Percent is '%' with its optional format modifier.
	Percent
	// Keyword is a conversion word.
	Keyword
	// Options is a brace-delimited option list following a keyword.
	Options
	// LParen opens a composite.
	LParen
	// RParen closes a composite.
	RParen
)

var kindNames = [...]string{
	Invalid: "Invalid",
	EOF:     "EOF",
	Literal: "Literal",
	Percent: "Percent",
	Keyword: "Keyword",
	Options: "Options",
	LParen:  "LParen",
	RParen:  "RParen",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsEOF reports whether k terminates the stream.
func (k Kind) IsEOF() bool { return k == EOF }
