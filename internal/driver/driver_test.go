package driver

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"patc/internal/builtin"
	"patc/internal/diag"
	"patc/internal/source"
	"patc/internal/token"
	"patc/internal/trace"
)

func addPattern(t *testing.T, text string) (*source.PatternSet, source.PatternID) {
	t.Helper()
	ps := source.NewPatternSet()
	return ps, ps.AddVirtual("test", text)
}

func TestTokenizeEndsWithEOF(t *testing.T) {
	ps, id := addPattern(t, "abc %-5.10hello(x)")
	res, err := Tokenize(context.Background(), ps, id, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Tokens) == 0 || res.Tokens[len(res.Tokens)-1].Kind != token.EOF {
		t.Fatalf("expected trailing EOF, got %v", res.Tokens)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %v", res.Bag.Items())
	}
}

func TestTokenizeReportsSyntaxError(t *testing.T) {
	ps, id := addPattern(t, "abc %(x")
	_, err := Tokenize(context.Background(), ps, id, Options{})
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("expected ErrSyntax, got %v", err)
	}
}

func TestParseKeepsTreeOnError(t *testing.T) {
	ps, id := addPattern(t, "a%hello)b")
	res, err := Parse(context.Background(), ps, id, Options{})
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SyntaxError, got %v", err)
	}
	if se.Errors != 1 || se.Pattern != "test" {
		t.Fatalf("unexpected syntax error: %+v", se)
	}
	if res == nil || res.Tree == nil {
		t.Fatal("expected tree even on error")
	}
	if res.Bag.CountCode(diag.SynUnbalancedParen) != 1 {
		t.Fatalf("expected SYN2002, got %v", res.Bag.Items())
	}
}

func TestCompileRenders(t *testing.T) {
	ps, id := addPattern(t, "%-4(%hello) [%level] %msg")
	res, err := Compile(context.Background(), ps, id, builtin.NewRegistry(), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := res.Chain.Render(builtin.Event{Level: "info", Message: "ok"})
	if got != "Hello [INFO] ok" {
		t.Fatalf("got %q", got)
	}
}

func TestCompileSyntaxErrorHasNoChain(t *testing.T) {
	ps, id := addPattern(t, "%unknownWord %(")
	res, err := Compile(context.Background(), ps, id, builtin.NewRegistry(), Options{})
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("expected ErrSyntax, got %v", err)
	}
	if res.Chain != nil {
		t.Fatal("chain must be nil after syntax errors")
	}
	// разбор упал раньше проверки слов
	if res.Bag.CountCode(diag.ConvUnknownWord) != 0 {
		t.Fatalf("unknown words must not be checked: %v", res.Bag.Items())
	}
}

func TestCompileUnknownWordIsWarning(t *testing.T) {
	ps, id := addPattern(t, "%helo")
	res, err := Compile(context.Background(), ps, id, builtin.NewRegistry(), Options{})
	if err != nil {
		t.Fatalf("unknown word must not fail: %v", err)
	}
	if res.Bag.CountCode(diag.ConvUnknownWord) != 1 {
		t.Fatalf("expected CNV3001, got %v", res.Bag.Items())
	}
	if got := res.Chain.Render(builtin.Event{}); got != "" {
		t.Fatalf("unknown word must render empty, got %q", got)
	}
}

func TestErrorsCountedPastBagLimit(t *testing.T) {
	// первые диагностики — предупреждения, ошибка уже не помещается в bag
	ps, id := addPattern(t, `\q\w %(`)
	_, err := Compile(context.Background(), ps, id, builtin.NewRegistry(), Options{MaxDiagnostics: 1})
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("expected ErrSyntax with a full bag, got %v", err)
	}
}

func TestTimingDiagnostic(t *testing.T) {
	ps, id := addPattern(t, "%hello")
	res, err := Compile(context.Background(), ps, id, builtin.NewRegistry(), Options{Timings: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Timing == nil || len(res.Timing.Phases) != 2 {
		t.Fatalf("expected parse and compile phases, got %+v", res.Timing)
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.ObsTimings || items[0].Severity != diag.SevInfo {
		t.Fatalf("expected one timing diagnostic, got %v", items)
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(items[0].Notes[0].Msg), &payload); err != nil {
		t.Fatalf("timing note is not json: %v", err)
	}
	if payload["kind"] != "compile" || payload["pattern"] != "test" {
		t.Fatalf("unexpected payload %v", payload)
	}
}

func TestUnknownPatternID(t *testing.T) {
	ps := source.NewPatternSet()
	if _, err := Parse(context.Background(), ps, 3, Options{}); err == nil {
		t.Fatal("expected error for unknown id")
	}
}

func TestCompileAllKeepsOrder(t *testing.T) {
	ps := source.NewPatternSet()
	texts := []string{"%hello", "%OTT", "bad %(", "%-3msg|", "x"}
	ids := make([]source.PatternID, len(texts))
	for i, text := range texts {
		ids[i] = ps.AddVirtual("p"+string(rune('a'+i)), text)
	}

	results, err := CompileAll(context.Background(), ps, ids, builtin.NewRegistry(), Options{Jobs: 2})
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("expected joined syntax error, got %v", err)
	}
	if !strings.Contains(err.Error(), `"pc"`) {
		t.Fatalf("error should name the failing pattern: %v", err)
	}
	if len(results) != len(texts) {
		t.Fatalf("expected %d results, got %d", len(texts), len(results))
	}
	want := []string{"Hello", "123", "", "ab |", "x"}
	for i, res := range results {
		if res.Pattern.Name != "p"+string(rune('a'+i)) {
			t.Fatalf("result %d out of order: %s", i, res.Pattern.Name)
		}
		if res.Chain == nil {
			if i != 2 {
				t.Fatalf("result %d: unexpected nil chain", i)
			}
			continue
		}
		if got := res.Chain.Render(builtin.Event{Message: "ab"}); got != want[i] {
			t.Fatalf("result %d: got %q, want %q", i, got, want[i])
		}
	}
}

func TestCompileAllCancelled(t *testing.T) {
	ps, id := addPattern(t, "%hello")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := CompileAll(ctx, ps, []source.PatternID{id}, builtin.NewRegistry(), Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCompileAllTracesPatterns(t *testing.T) {
	ring := trace.NewRingTracer(256, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)

	ps := source.NewPatternSet()
	ids := []source.PatternID{ps.AddVirtual("one", "%hello"), ps.AddVirtual("two", "%OTT")}
	if _, err := CompileAll(ctx, ps, ids, builtin.NewRegistry(), Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names := map[string]bool{}
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindSpanBegin {
			names[ev.Name] = true
		}
	}
	for _, want := range []string{"pattern:one", "pattern:two", "parse", "compile"} {
		if !names[want] {
			t.Fatalf("missing span %q in %v", want, names)
		}
	}
}
