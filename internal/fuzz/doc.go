// Package fuzztests houses Go fuzz harnesses for the early pattern pipeline
// (escape -> lexer -> parser -> compiler). Its goal is to smoke test
// robustness and guard against panics or hangs on arbitrary patterns.
//
// Назначение: прогонять произвольные строки через лексер, парсер и
// компилятор и проверять инварианты span'ов (internal/testkit).
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
