// Package convert defines converters, the registry that maps conversion
// words to converter factories, and the singly linked chain a compiled
// pattern is made of.
//
// A Chain is immutable once built and may be rendered from many goroutines
// at once as long as the plugged converters keep no per-call state.
// Composite links render their inner chain into a pooled private buffer,
// apply their own format.Spec to the whole concatenation, and only then
// append to the caller's buffer.
package convert
