package compiler_test

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patc/internal/ast"
	"patc/internal/compiler"
	"patc/internal/convert"
	"patc/internal/diag"
	"patc/internal/format"
	"patc/internal/lexer"
	"patc/internal/parser"
	"patc/internal/source"
	"patc/internal/trace"
)

type event struct {
	msg string
}

func testRegistry() *convert.Registry[event] {
	reg := convert.NewRegistry[event]()
	reg.MustRegister(convert.Const[event]("Hello"), "hello")
	reg.MustRegister(convert.Const[event]("123"), "OTT")
	reg.MustRegister(convert.Func(func(e event) string { return e.msg }), "msg", "m")
	reg.MustRegister(func(opts []string) (convert.Converter[event], error) {
		return nil, &convert.OptionError{Reason: "always fails"}
	}, "broken")
	reg.MustRegister(func(opts []string) (convert.Converter[event], error) {
		text := strings.Join(opts, "+")
		return convert.ConverterFunc[event](func(event) string { return text }), nil
	}, "join")
	return reg
}

func compile(t *testing.T, pattern string, opts compiler.Options) (*convert.Chain[event], *diag.Bag) {
	t.Helper()
	ps := source.NewPatternSet()
	p := ps.Get(ps.AddVirtual("test", pattern))
	bag := diag.NewBag(100)
	rep := &diag.BagReporter{Bag: bag}
	lx := lexer.New(p, lexer.Options{Reporter: rep})
	res := parser.ParsePattern(p, lx, ast.NewBuilder(ast.Hints{}), parser.Options{Reporter: rep})
	require.False(t, bag.HasErrors(), "syntax errors in %q", pattern)
	opts.Reporter = rep
	return compiler.Compile(res.Tree, testRegistry(), opts), bag
}

func TestCompileTable(t *testing.T) {
	pad := strings.Repeat
	tests := []struct {
		pattern string
		want    string
	}{
		{"abc", "abc"},
		{"%hello", "Hello"},
		{"%7hello", "  Hello"},
		{"%-7hello", "Hello  "},
		{"%.3hello", "llo"},
		{"%.-3hello", "Hel"},
		{"abc %hello", "abc Hello"},
		{"abc %hello %OTT", "abc Hello 123"},
		{"abc %4.5OTT", "abc  123"},
		{"abc %-4.5OTT", "abc 123 "},
		{"abc %3.4hello", "abc ello"},
		{"abc %-3.-4hello", "abc Hell"},
		{"%(ABC %hello)", "ABC Hello"},
		{"%4.10(ABC %hello)", "ABC Hello"},
		{"abc %-4.10(ABC %hello)", "abc ABC Hello"},
		{"xyz %4.10(ABC)", "xyz  ABC"},
		{"xyz %-4.10(ABC)", "xyz ABC "},
		{"xyz %.2(ABC %hello)", "xyz lo"},
		{"xyz %.-2(ABC)", "xyz AB"},
		{"%30.30(ABC %20hello)", pad(" ", 6) + "ABC " + pad(" ", 15) + "Hello"},
		{`hello\_world`, "helloworld"},
		{`%hello\_%OTT`, "Hello123"},
		{"%(A(B)C)", "ABC"},
		{`a\(b\) 100\%`, "a(b) 100%"},
		{"%join{a, 'b,c'}", "a+b,c"},
		{"[%-6m]", "[hi    ]"},
	}
	for _, tt := range tests {
		chain, bag := compile(t, tt.pattern, compiler.Options{})
		assert.Equal(t, 0, bag.Len(), "%q: unexpected diagnostics", tt.pattern)
		assert.Equal(t, tt.want, chain.Render(event{msg: "hi"}), "pattern %q", tt.pattern)
	}
}

func TestUnknownWordIsRecoverable(t *testing.T) {
	chain, bag := compile(t, "%unknown", compiler.Options{})
	require.NotNil(t, chain)
	assert.False(t, bag.HasErrors())
	require.Equal(t, 1, bag.Len())

	d := bag.Items()[0]
	assert.Equal(t, diag.ConvUnknownWord, d.Code)
	assert.Equal(t, diag.SevWarning, d.Severity)
	assert.Equal(t, "[unknown] is not a valid conversion word", d.Message)
	assert.Equal(t, "", chain.Render(event{}))
}

func TestUnknownWordKeepsRestOfPattern(t *testing.T) {
	chain, bag := compile(t, "a %-5nope b %hello", compiler.Options{})
	assert.Equal(t, 1, bag.CountCode(diag.ConvUnknownWord))
	assert.Equal(t, "a  b Hello", chain.Render(event{}))
}

func TestUnknownWordSuggestion(t *testing.T) {
	_, bag := compile(t, "%helo", compiler.Options{})
	require.Equal(t, 1, bag.Len())
	notes := bag.Items()[0].Notes
	require.Len(t, notes, 1)
	assert.Contains(t, notes[0].Msg, "hello")
}

func TestFactoryFailure(t *testing.T) {
	chain, bag := compile(t, "<%broken>", compiler.Options{})
	require.Equal(t, 1, bag.CountCode(diag.ConvFactoryFailed))
	assert.Contains(t, bag.Items()[0].Message, "always fails")
	assert.Equal(t, "<>", chain.Render(event{}))
}

func TestInnerChainsAreNotSpliced(t *testing.T) {
	chain, _ := compile(t, "x%(a%hello)y", compiler.Options{})
	assert.Equal(t, 3, chain.Len())
	assert.Equal(t, `literal("x") -> composite(literal("a") -> simple[hello]) -> literal("y")`, chain.String())
}

func TestPlainTextRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	alphabet := []rune("abcXYZ 019 .,;:{}[]-_=+\tжё日本")
	for i := 0; i < 200; i++ {
		var sb strings.Builder
		for n := rng.Intn(40); n > 0; n-- {
			sb.WriteRune(alphabet[rng.Intn(len(alphabet))])
		}
		text := sb.String()
		chain, bag := compile(t, text, compiler.Options{})
		assert.Equal(t, 0, bag.Len())
		assert.Equal(t, text, chain.Render(event{}))
		if text != "" {
			assert.Equal(t, 1, chain.Len(), "%q should compile to one literal", text)
		}
	}
}

func TestRecompileIsIdempotent(t *testing.T) {
	const pattern = "%-8.-3msg|%(%5hello %.2OTT)|%m"
	a, _ := compile(t, pattern, compiler.Options{})
	b, _ := compile(t, pattern, compiler.Options{})
	for _, msg := range []string{"", "x", "a much longer message"} {
		ev := event{msg: msg}
		assert.Equal(t, a.Render(ev), b.Render(ev))
	}
	assert.Equal(t, a.String(), b.String())
}

func TestCellMeasure(t *testing.T) {
	runes, _ := compile(t, "[%5m]", compiler.Options{Measure: format.Runes})
	cells, _ := compile(t, "[%5m]", compiler.Options{Measure: format.Cells})
	ev := event{msg: "日本"}
	assert.Equal(t, "[   日本]", runes.Render(ev))
	assert.Equal(t, "[ 日本]", cells.Render(ev))
}

func TestNilTreeAndRegistry(t *testing.T) {
	chain := compiler.Compile[event](nil, nil, compiler.Options{})
	assert.Equal(t, 0, chain.Len())

	ps := source.NewPatternSet()
	p := ps.Get(ps.AddVirtual("t", "%hello"))
	res := parser.ParsePattern(p, lexer.New(p, lexer.Options{}), ast.NewBuilder(ast.Hints{}), parser.Options{})
	bag := diag.NewBag(10)
	chain = compiler.Compile[event](res.Tree, nil, compiler.Options{Reporter: diag.BagReporter{Bag: bag}})
	assert.Equal(t, 1, bag.CountCode(diag.ConvUnknownWord))
	assert.Equal(t, "", chain.Render(event{}))
}

func TestNodeTracing(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelDebug)
	compile(t, "a%(b%hello)", compiler.Options{Tracer: ring})
	var names []string
	for _, ev := range ring.Snapshot() {
		names = append(names, ev.Name)
	}
	assert.Equal(t, []string{"literal", "composite", "literal", "simple"}, names)
}

func TestConcurrentRenderOfCompiledChain(t *testing.T) {
	chain, _ := compile(t, "%-10.-10(%msg:%hello) %5.5(%m)", compiler.Options{})
	var wg sync.WaitGroup
	var mu sync.Mutex
	var failures []error
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			msg := fmt.Sprintf("m%02d", i)
			want := fmt.Sprintf("%-10s %5s", msg+":Hello", msg)
			for j := 0; j < 500; j++ {
				if got := chain.Render(event{msg: msg}); got != want {
					mu.Lock()
					failures = append(failures, errors.New(got+" != "+want))
					mu.Unlock()
					return
				}
			}
		}(i)
	}
	wg.Wait()
	assert.Empty(t, failures)
}
