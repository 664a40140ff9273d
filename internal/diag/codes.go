package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Escape-последовательности
	EscInfo     Code = 1000
	EscIllegal  Code = 1001
	EscDangling Code = 1002

	// Синтаксис шаблона
	SynInfo                  Code = 2000
	SynUnterminatedComposite Code = 2001
	SynUnbalancedParen       Code = 2002
	SynBadFormat             Code = 2003
	SynExpectKeyword         Code = 2004
	SynUnterminatedOptions   Code = 2005
	SynEmptyComposite        Code = 2006

	// Компиляция: поиск конвертеров
	ConvInfo          Code = 3000
	ConvUnknownWord   Code = 3001
	ConvFactoryFailed Code = 3002

	IOLoadPatternError Code = 4001

	CfgInfo           Code = 5000
	CfgUnknownPattern Code = 5001

	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:              "Unknown error",
		EscInfo:                  "Escape information",
		EscIllegal:               "Illegal escape sequence",
		EscDangling:              "Dangling escape character",
		SynInfo:                  "Syntax information",
		SynUnterminatedComposite: "Unterminated composite",
		SynUnbalancedParen:       "Unbalanced closing parenthesis",
		SynBadFormat:             "Malformed format modifier",
		SynExpectKeyword:         "Expected conversion word",
		SynUnterminatedOptions:   "Unterminated option list",
		SynEmptyComposite:        "Empty composite",
		ConvInfo:                 "Conversion information",
		ConvUnknownWord:          "Unknown conversion word",
		ConvFactoryFailed:        "Converter construction failed",
		IOLoadPatternError:       "I/O load pattern error",
		CfgInfo:                  "Configuration information",
		CfgUnknownPattern:        "Unknown named pattern",
		ObsInfo:                  "Observability information",
		ObsTimings:               "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("ESC%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("CNV%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

// IsSyntax reports whether the code belongs to the fatal syntax range.
func (c Code) IsSyntax() bool {
	return c >= SynInfo && c < ConvInfo
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
