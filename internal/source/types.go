package source

type (
	// PatternID uniquely identifies a pattern within a PatternSet.
	PatternID uint32
	// PatternFlags encodes metadata about how a pattern was loaded.
	PatternFlags uint8
)

const (
	// PatternVirtual marks a pattern added from memory (flag, test, config value).
	PatternVirtual PatternFlags = 1 << iota
	PatternHadBOM
	// PatternTrimmedNewline is set when trailing line breaks were dropped on load.
	PatternTrimmedNewline
	// PatternNormalizedNFC is set when the text was rewritten to Unicode NFC.
	PatternNormalizedNFC
)

// Pattern is a single conversion pattern and its provenance.
type Pattern struct {
	ID    PatternID
	Name  string // config key, file path or "<arg>"
	Text  string
	Flags PatternFlags
}

// Column is a 1-based character column inside a pattern.
type Column uint32
