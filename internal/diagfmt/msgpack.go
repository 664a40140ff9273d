package diagfmt

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"patc/internal/ast"
	"patc/internal/token"
)

// msgpack-дампы используют те же json-теги, что и JSON-вывод.
func newMsgpackEncoder(w io.Writer) *msgpack.Encoder {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	enc.UseCompactInts(true)
	return enc
}

// FormatTokensMsgPack пишет токены в MessagePack.
func FormatTokensMsgPack(w io.Writer, tokens []token.Token) error {
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
	return newMsgpackEncoder(w).Encode(output)
}

// FormatASTMsgPack пишет дерево в MessagePack.
func FormatASTMsgPack(w io.Writer, tree *ast.Tree) error {
	if tree == nil {
		return fmt.Errorf("nil tree")
	}
	return newMsgpackEncoder(w).Encode(ASTNodeOutput{
		Type:     "Pattern",
		Children: nodesJSON(tree, tree.Top),
	})
}
