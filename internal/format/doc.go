// Package format implements the width/precision modifiers of conversion
// words: parsing of `[-]min[.[-]max]` and applying it to rendered text.
//
// Назначение: чистые функции Parse/Apply без состояния, безопасны для
// конкурентного вызова.
// Не делает: разбора шаблона целиком (см. internal/lexer, internal/parser).
package format
