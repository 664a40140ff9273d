package source

import (
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// PatternSet owns every pattern compiled during one CLI invocation or test,
// so diagnostics can refer to them by PatternID.
type PatternSet struct {
	patterns []Pattern
	index    map[string]PatternID // name -> latest id
}

// NewPatternSet creates an empty PatternSet.
func NewPatternSet() *PatternSet {
	return &PatternSet{
		patterns: make([]Pattern, 0),
		index:    make(map[string]PatternID),
	}
}

// Add stores a pattern and returns a new PatternID. Adding the same name twice
// creates a new version; Lookup returns the latest one.
func (ps *PatternSet) Add(name, text string, flags PatternFlags) PatternID {
	if _, err := safecast.Conv[uint32](len(text)); err != nil {
		panic(fmt.Errorf("pattern %q too long: %w", name, err))
	}
	n, err := safecast.Conv[uint32](len(ps.patterns))
	if err != nil {
		panic(fmt.Errorf("len patterns overflow: %w", err))
	}
	id := PatternID(n)
	ps.patterns = append(ps.patterns, Pattern{
		ID:    id,
		Name:  name,
		Text:  text,
		Flags: flags,
	})
	ps.index[name] = id
	return id
}

// AddVirtual adds an in-memory pattern (command-line argument, config value, test).
// The text is taken verbatim.
func (ps *PatternSet) AddVirtual(name, text string) PatternID {
	return ps.Add(name, text, PatternVirtual)
}

// AddNormalized adds an in-memory pattern after NFC normalization.
func (ps *PatternSet) AddNormalized(name, text string) PatternID {
	flags := PatternVirtual
	text, changed := normalizeNFC(text)
	if changed {
		flags |= PatternNormalizedNFC
	}
	return ps.Add(name, text, flags)
}

// Load reads a pattern file: BOM and trailing line breaks are dropped and the
// text is normalized to NFC.
func (ps *PatternSet) Load(path string) (PatternID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var flags PatternFlags
	content, hadBOM := removeBOM(content)
	if hadBOM {
		flags |= PatternHadBOM
	}
	text, trimmed := trimTrailingNewline(string(content))
	if trimmed {
		flags |= PatternTrimmedNewline
	}
	text, normalized := normalizeNFC(text)
	if normalized {
		flags |= PatternNormalizedNFC
	}
	return ps.Add(filepath.ToSlash(filepath.Clean(path)), text, flags), nil
}

// Get returns the pattern for the given ID.
func (ps *PatternSet) Get(id PatternID) *Pattern {
	return &ps.patterns[id]
}

// Lookup returns the latest pattern registered under name.
func (ps *PatternSet) Lookup(name string) (*Pattern, bool) {
	if id, ok := ps.index[name]; ok {
		return &ps.patterns[id], true
	}
	return nil, false
}

// Len returns the number of stored patterns.
func (ps *PatternSet) Len() int {
	return len(ps.patterns)
}

// Resolve converts a span into 1-based start/end columns.
func (ps *PatternSet) Resolve(span Span) (start, end Column) {
	p := ps.patterns[span.Pattern]
	return columnAt(p.Text, span.Start), columnAt(p.Text, span.End)
}

// SpanOf returns the span covering the whole text of a pattern.
func (p *Pattern) SpanOf() Span {
	end, err := safecast.Conv[uint32](len(p.Text))
	if err != nil {
		panic(fmt.Errorf("pattern length overflow: %w", err))
	}
	return Span{Pattern: p.ID, Start: 0, End: end}
}

// ColumnAt converts a byte offset of the pattern into a 1-based column.
func (p *Pattern) ColumnAt(off uint32) Column {
	return columnAt(p.Text, off)
}
