package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"patc/internal/source"
	"patc/internal/token"
)

type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Options []string    `json:"options,omitempty"`
	Span    source.Span `json:"span"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, ps *source.PatternSet) error {
	for i, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%3d: %-8s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		if tok.Kind == token.Options {
			quoted := make([]string, len(tok.Options))
			for j, opt := range tok.Options {
				quoted[j] = fmt.Sprintf("%q", opt)
			}
			fmt.Fprintf(w, " {%s}", strings.Join(quoted, ", "))
		}
		if validSpan(tok.Span, ps) {
			start, end := ps.Resolve(tok.Span)
			fmt.Fprintf(w, " at %d-%d", start, end)
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:    tok.Kind.String(),
			Text:    tok.Text,
			Options: tok.Options,
			Span:    tok.Span,
		})
		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
