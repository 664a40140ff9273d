package convert

import "fmt"

// Converter renders one piece of an event as text.
type Converter[E any] interface {
	Convert(event E) string
}

// ConverterFunc adapts a plain function to Converter.
type ConverterFunc[E any] func(event E) string

func (f ConverterFunc[E]) Convert(event E) string { return f(event) }

// Factory builds a converter from the option list of a conversion word,
// e.g. `%date{HH:mm,UTC}` passes ["HH:mm", "UTC"].
type Factory[E any] func(options []string) (Converter[E], error)

// Const returns a factory for a converter that always renders text.
func Const[E any](text string) Factory[E] {
	conv := ConverterFunc[E](func(E) string { return text })
	return func([]string) (Converter[E], error) { return conv, nil }
}

// Func returns a factory that ignores options and always yields f.
func Func[E any](f func(E) string) Factory[E] {
	conv := ConverterFunc[E](f)
	return func([]string) (Converter[E], error) { return conv, nil }
}

// OptionError is returned by factories that reject their options.
type OptionError struct {
	Option string
	Reason string
}

func (e *OptionError) Error() string {
	if e.Option == "" {
		return e.Reason
	}
	return fmt.Sprintf("option %q: %s", e.Option, e.Reason)
}
