// Package builtin provides a small converter set over a demonstration
// logging Event, used by the CLI and tests.
//
// Words: hello, OTT, msg|m|message, level|p|le, logger|c|lo{precision},
// date|d{layout,zone}, X|mdc{key,default}, lit{text}.
package builtin
