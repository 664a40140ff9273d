package builtin

import (
	"strconv"
	"strings"
	"time"

	"patc/internal/convert"
)

// DefaultDateLayout matches the ISO8601 layout of classic logging frameworks.
const DefaultDateLayout = "2006-01-02 15:04:05,000"

// NewRegistry returns a registry with every builtin word.
func NewRegistry() *convert.Registry[Event] {
	reg := convert.NewRegistry[Event]()
	reg.MustRegister(convert.Const[Event]("Hello"), "hello")
	reg.MustRegister(convert.Const[Event]("123"), "OTT")
	reg.MustRegister(convert.Func(func(e Event) string { return e.Message }), "msg", "m", "message")
	reg.MustRegister(convert.Func(func(e Event) string { return strings.ToUpper(e.Level) }), "level", "p", "le")
	reg.MustRegister(newLogger, "logger", "c", "lo")
	reg.MustRegister(newDate, "date", "d")
	reg.MustRegister(newMDC, "X", "mdc")
	reg.MustRegister(newLit, "lit")
	return reg
}

// RegisterConstants adds words that render fixed text, e.g. from a config file.
func RegisterConstants(reg *convert.Registry[Event], constants map[string]string) error {
	for word, text := range constants {
		if err := reg.Register(convert.Const[Event](text), word); err != nil {
			return err
		}
	}
	return nil
}

func newLit(opts []string) (convert.Converter[Event], error) {
	return convert.Const[Event](strings.Join(opts, ","))(nil)
}

// %logger{n}: последние n сегментов целиком, остальные — по первой букве.
func newLogger(opts []string) (convert.Converter[Event], error) {
	keep := -1
	if len(opts) > 0 && opts[0] != "" {
		n, err := strconv.Atoi(opts[0])
		if err != nil || n < 0 {
			return nil, &convert.OptionError{Option: opts[0], Reason: "precision must be a non-negative integer"}
		}
		keep = n
	}
	return convert.ConverterFunc[Event](func(e Event) string {
		return abbreviate(e.Logger, keep)
	}), nil
}

func abbreviate(name string, keep int) string {
	if keep < 0 || name == "" {
		return name
	}
	segs := strings.Split(name, ".")
	keep = max(keep, 1)
	if keep >= len(segs) {
		return name
	}
	for i := 0; i < len(segs)-keep; i++ {
		if segs[i] != "" {
			_, size := firstRune(segs[i])
			segs[i] = segs[i][:size]
		}
	}
	return strings.Join(segs, ".")
}

func firstRune(s string) (string, int) {
	for i := range s {
		if i > 0 {
			return s[:i], i
		}
	}
	return s, len(s)
}

// %date{layout,zone}
func newDate(opts []string) (convert.Converter[Event], error) {
	layout := DefaultDateLayout
	loc := time.Local
	if len(opts) > 0 && opts[0] != "" {
		layout = dateLayout(opts[0])
	}
	if len(opts) > 1 && opts[1] != "" {
		l, err := time.LoadLocation(opts[1])
		if err != nil {
			return nil, &convert.OptionError{Option: opts[1], Reason: "unknown time zone"}
		}
		loc = l
	}
	return convert.ConverterFunc[Event](func(e Event) string {
		return e.Time.In(loc).Format(layout)
	}), nil
}

var javaLayout = strings.NewReplacer(
	"yyyy", "2006",
	"yy", "06",
	"MMM", "Jan",
	"MM", "01",
	"dd", "02",
	"HH", "15",
	"mm", "04",
	"ss", "05",
	"SSS", "000",
	"EEE", "Mon",
	"Z", "-0700",
)

// dateLayout понимает именованные layout'ы, Go-layout и простые java-шаблоны.
func dateLayout(s string) string {
	switch strings.ToUpper(s) {
	case "ISO8601":
		return DefaultDateLayout
	case "RFC3339":
		return time.RFC3339
	case "RFC3339NANO":
		return time.RFC3339Nano
	case "UNIX":
		return time.UnixDate
	}
	if strings.Contains(s, "2006") || strings.Contains(s, "15:04") {
		return s
	}
	return javaLayout.Replace(s)
}

// %X{key,default}; без ключа выводит все поля.
func newMDC(opts []string) (convert.Converter[Event], error) {
	if len(opts) == 0 || opts[0] == "" {
		return convert.ConverterFunc[Event](Event.FieldsString), nil
	}
	key := opts[0]
	def := ""
	if len(opts) > 1 {
		def = opts[1]
	}
	return convert.ConverterFunc[Event](func(e Event) string {
		if v, ok := e.Fields[key]; ok {
			return v
		}
		return def
	}), nil
}
