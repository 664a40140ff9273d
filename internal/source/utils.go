package source

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}

// trimTrailingNewline убирает завершающие \n и \r\n, остальные пробелы
// являются частью шаблона и не трогаются.
func trimTrailingNewline(text string) (string, bool) {
	trimmed := strings.TrimRight(text, "\r\n")
	return trimmed, len(trimmed) != len(text)
}

// normalizeNFC приводит текст к NFC, чтобы комбинируемые последовательности
// считались одним символом при вычислении ширины.
func normalizeNFC(text string) (string, bool) {
	if norm.NFC.IsNormalString(text) {
		return text, false
	}
	return norm.NFC.String(text), true
}

// columnAt converts a byte offset into a 1-based rune column.
func columnAt(text string, off uint32) Column {
	if int(off) > len(text) {
		return Column(utf8.RuneCountInString(text) + 1)
	}
	return Column(utf8.RuneCountInString(text[:off]) + 1)
}
