package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color bool
	// Width ограничивает ширину строки с шаблоном в колонках терминала;
	// 0 - не ограничено. Длинный шаблон показывается окном вокруг span.
	Width     int
	ShowNotes bool
}

// JSONOpts configures JSON and MessagePack output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить колонки
	Max              int  // обрезка вывода, не Bag
	IncludeNotes     bool
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
}
