// Package driver wires the pipeline phases together: lexing, parsing and
// compiling one pattern or a batch of named patterns.
//
// Назначение: единая точка входа для CLI и тестов; трассировка фаз
// (internal/trace), тайминги (internal/observ), сбор диагностик в diag.Bag.
// Не делает: вывода на терминал (см. internal/diagfmt) и загрузки конфигурации.
package driver
