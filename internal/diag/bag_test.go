package diag

import (
	"testing"

	"patc/internal/source"
)

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)
	for i := 0; i < 3; i++ {
		ok := bag.Add(NewWarning(ConvUnknownWord, source.Span{}, "x"))
		if i < 2 && !ok {
			t.Fatalf("Add #%d rejected below limit", i)
		}
		if i == 2 && ok {
			t.Fatal("Add accepted past the limit")
		}
	}
	if bag.Len() != 2 || bag.Cap() != 2 {
		t.Fatalf("Len=%d Cap=%d, want 2/2", bag.Len(), bag.Cap())
	}
}

func TestBagSeverityQueries(t *testing.T) {
	bag := NewBag(10)
	if bag.HasErrors() || bag.HasWarnings() {
		t.Fatal("empty bag reports findings")
	}
	bag.Add(NewWarning(EscIllegal, source.Span{}, "w"))
	if bag.HasErrors() || !bag.HasWarnings() {
		t.Fatal("warning not classified correctly")
	}
	bag.Add(NewError(SynUnterminatedComposite, source.Span{}, "e"))
	if !bag.HasErrors() {
		t.Fatal("error not detected")
	}
	if got := bag.CountCode(EscIllegal); got != 1 {
		t.Errorf("CountCode(EscIllegal) = %d, want 1", got)
	}
}

func TestBagSortDedupFilter(t *testing.T) {
	bag := NewBag(10)
	bag.Add(NewWarning(ConvUnknownWord, source.Span{Start: 5, End: 6}, "b"))
	bag.Add(NewError(SynBadFormat, source.Span{Start: 1, End: 2}, "a"))
	bag.Add(NewWarning(ConvUnknownWord, source.Span{Start: 5, End: 6}, "b"))
	bag.Add(NewWarning(EscIllegal, source.Span{Start: 1, End: 2}, "c"))

	bag.Sort()
	items := bag.Items()
	if items[0].Code != SynBadFormat || items[1].Code != EscIllegal {
		t.Fatalf("unexpected order: %v, %v", items[0].Code, items[1].Code)
	}

	bag.Dedup()
	if bag.Len() != 3 {
		t.Fatalf("Dedup left %d items, want 3", bag.Len())
	}

	bag.Filter(func(d Diagnostic) bool { return d.Severity == SevWarning })
	if bag.Len() != 2 {
		t.Fatalf("Filter left %d items, want 2", bag.Len())
	}
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a := NewBag(1)
	a.Add(NewWarning(EscIllegal, source.Span{}, "a"))
	b := NewBag(2)
	b.Add(NewWarning(EscIllegal, source.Span{}, "b"))
	b.Add(NewWarning(EscIllegal, source.Span{}, "c"))

	a.Merge(b)
	if a.Len() != 3 {
		t.Fatalf("Merge produced %d items, want 3", a.Len())
	}
	a.Merge(nil)
	if a.Len() != 3 {
		t.Fatal("Merge(nil) changed the bag")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Pattern: 1, Start: 0, End: 3}
	r.Report(ConvUnknownWord, SevWarning, sp, "[x] is not a valid conversion word", nil)
	r.Report(ConvUnknownWord, SevWarning, sp, "[x] is not a valid conversion word", nil)
	r.Report(ConvUnknownWord, SevWarning, sp.ShiftRight(1), "[x] is not a valid conversion word", nil)
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics after dedup, got %d", bag.Len())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(10)
	b := ReportError(BagReporter{Bag: bag}, SynUnterminatedComposite, source.Span{}, "unterminated").
		WithNote(source.Span{Start: 0, End: 1}, "opened here")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("Emit delivered %d diagnostics, want 1", bag.Len())
	}
	if len(bag.Items()[0].Notes) != 1 {
		t.Fatal("note lost")
	}
	var nilBuilder *ReportBuilder
	nilBuilder.Emit()
	if nilBuilder.WithNote(source.Span{}, "x") != nil {
		t.Fatal("nil builder must stay nil")
	}
}

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		EscIllegal:               "ESC1001",
		SynUnterminatedComposite: "SYN2001",
		ConvUnknownWord:          "CNV3001",
		IOLoadPatternError:       "IO4001",
		UnknownCode:              "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if !SynBadFormat.IsSyntax() || ConvUnknownWord.IsSyntax() || EscIllegal.IsSyntax() {
		t.Error("IsSyntax misclassifies codes")
	}
	if Code(9999).Title() != "Unknown error" {
		t.Error("unregistered code must fall back to the unknown title")
	}
}

func TestFormatShortDiagnostics(t *testing.T) {
	ps := source.NewPatternSet()
	id := ps.AddVirtual("access", "ab %zz\\q")

	diags := []Diagnostic{
		NewWarning(EscIllegal, source.Span{Pattern: id, Start: 6, End: 8}, "illegal escape '\\q'\nsecond line").
			WithNote(source.Span{Pattern: id, Start: 0, End: 1}, "pattern starts here"),
		NewWarning(ConvUnknownWord, source.Span{Pattern: id, Start: 3, End: 6}, "[zz] is not a valid conversion word"),
	}

	expected := "note ESC1001 access:1 pattern starts here\n" +
		"warning CNV3001 access:4 [zz] is not a valid conversion word\n" +
		"warning ESC1001 access:7 illegal escape '\\q' second line"

	if got := FormatShortDiagnostics(diags, ps, true); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
	if FormatShortDiagnostics(nil, ps, true) != "" {
		t.Fatal("no diagnostics must render as empty string")
	}
}
