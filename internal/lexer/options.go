package lexer

import (
	"patc/internal/diag"
	"patc/internal/source"
)

// LiteralEscapes are the characters that may be escaped in literal text in
// addition to the fixed table.
const LiteralEscapes = "()%"

// optionEscapes are legal escapes inside an unquoted option item.
const optionEscapes = ",}"

type Options struct {
	Reporter diag.Reporter // может быть nil — тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) report(code diag.Code, sev diag.Severity, sp source.Span, msg string, notes ...diag.Note) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, sev, sp, msg, notes)
	}
}
