package fuzztests

import (
	"testing"

	"patc/internal/diag"
	"patc/internal/lexer"
	"patc/internal/source"
	"patc/internal/token"
)

const maxFuzzInput = 1 << 12

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input string) {
		input = clampInput(input)

		ps := source.NewPatternSet()
		p := ps.Get(ps.AddVirtual("fuzz", input))

		bag := diag.NewBag(64)
		lx := lexer.New(p, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		var prevEnd uint32
		// каждый токен продвигает курсор, иначе лексер зациклится
		for steps := 0; ; steps++ {
			tok := lx.Next()
			if tok.Kind.IsEOF() {
				break
			}
			if steps > len(input)+1 {
				t.Fatalf("lexer does not advance on %q", input)
			}
			if tok.Span.Start < prevEnd || int(tok.Span.End) > len(input) {
				t.Fatalf("token %v span %v out of order (prev end %d) in %q", tok.Kind, tok.Span, prevEnd, input)
			}
			if tok.Kind == token.Literal && tok.Text == "" {
				t.Fatalf("empty literal token in %q", input)
			}
			prevEnd = tok.Span.End
		}
	})
}

func clampInput(s string) string {
	if len(s) > maxFuzzInput {
		return s[:maxFuzzInput]
	}
	return s
}
