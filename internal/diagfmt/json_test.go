package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"patc/internal/ast"
	"patc/internal/diag"
	"patc/internal/format"
	"patc/internal/source"
	"patc/internal/token"
)

func sampleBag(ps *source.PatternSet) *diag.Bag {
	id := ps.AddVirtual("sample", "ab %(x")
	bag := diag.NewBag(10)
	d := diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynUnterminatedComposite,
		Message:  "unterminated composite",
		Primary:  source.Span{Pattern: id, Start: 4, End: 5},
	}
	bag.Add(d.WithNote(source.Span{Pattern: id, Start: 6, End: 6}, "pattern ends here"))
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.EscIllegal,
		Message:  "illegal escape",
		Primary:  source.Span{Pattern: id, Start: 0, End: 2},
	})
	return bag
}

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	ps := source.NewPatternSet()
	bag := sampleBag(ps)

	var buf bytes.Buffer
	if err := JSON(&buf, bag, ps, JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	if output.Count != 2 || len(output.Diagnostics) != 2 {
		t.Fatalf("Expected 2 diagnostics, got %d", output.Count)
	}

	d := output.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "SYN2001" || d.Title != "Unterminated composite" {
		t.Errorf("unexpected header: %+v", d)
	}
	if d.Location.Pattern != "sample" || d.Location.StartCol != 5 || d.Location.EndCol != 6 {
		t.Errorf("unexpected location: %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "pattern ends here" {
		t.Errorf("unexpected notes: %+v", d.Notes)
	}
}

func TestJSONMaxAndNotes(t *testing.T) {
	ps := source.NewPatternSet()
	bag := sampleBag(ps)

	output := BuildDiagnosticsOutput(bag, ps, JSONOpts{Max: 1})
	if output.Count != 1 {
		t.Fatalf("Max not applied: %d", output.Count)
	}
	if output.Diagnostics[0].Notes != nil {
		t.Errorf("notes must be omitted without IncludeNotes")
	}
	if output.Diagnostics[0].Location.StartCol != 0 {
		t.Errorf("positions must be omitted without IncludePositions")
	}
}

func TestMsgPackRoundTrip(t *testing.T) {
	ps := source.NewPatternSet()
	bag := sampleBag(ps)

	var buf bytes.Buffer
	if err := MsgPack(&buf, bag, ps, JSONOpts{IncludeNotes: true}); err != nil {
		t.Fatalf("MsgPack() error: %v", err)
	}
	var output DiagnosticsOutput
	if err := msgpack.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := BuildDiagnosticsOutput(bag, ps, JSONOpts{IncludeNotes: true})
	if output.Count != want.Count || output.Diagnostics[1].Code != "ESC1001" {
		t.Errorf("unexpected decoded output: %+v", output)
	}
}

func TestSarif(t *testing.T) {
	ps := source.NewPatternSet()
	bag := sampleBag(ps)

	var buf bytes.Buffer
	err := Sarif(&buf, bag, ps, SarifRunMeta{ToolName: "patc", ToolVersion: "dev", InvocationArgs: []string{"check"}})
	if err != nil {
		t.Fatalf("Sarif() error: %v", err)
	}
	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF: %v", err)
	}
	run := log.Runs[0]
	if len(run.Results) != 2 || len(run.Tool.Driver.Rules) != 2 {
		t.Fatalf("unexpected run: %+v", run)
	}
	if run.Tool.Driver.Rules[0].ID != "ESC1001" {
		t.Errorf("rules must be sorted by code: %+v", run.Tool.Driver.Rules)
	}
	if run.Results[0].Level != "error" || run.Invocations[0].ExecutionSuccessful {
		t.Errorf("error result must fail the invocation: %+v", run)
	}
}

func TestFormatTokens(t *testing.T) {
	ps := source.NewPatternSet()
	id := ps.AddVirtual("t", "%X{a}")
	tokens := []token.Token{
		{Kind: token.Percent, Span: source.Span{Pattern: id, Start: 0, End: 1}},
		{Kind: token.Keyword, Text: "X", Span: source.Span{Pattern: id, Start: 1, End: 2}},
		{Kind: token.Options, Options: []string{"a"}, Span: source.Span{Pattern: id, Start: 2, End: 5}},
		{Kind: token.EOF, Span: source.Span{Pattern: id, Start: 5, End: 5}},
	}

	var pretty bytes.Buffer
	if err := FormatTokensPretty(&pretty, tokens, ps); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(pretty.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %q", pretty.String())
	}
	if lines[2] != `  3: Options  {"a"} at 3-6` {
		t.Errorf("options line: %q", lines[2])
	}

	var js bytes.Buffer
	if err := FormatTokensJSON(&js, tokens); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(js.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 4 || out[1].Text != "X" || out[3].Kind != "EOF" {
		t.Errorf("unexpected tokens: %+v", out)
	}
}

func sampleTree(ps *source.PatternSet) *ast.Tree {
	id := ps.AddVirtual("tree", "a%-4(%hello)")
	b := ast.NewBuilder(ast.Hints{})
	lit := b.NewLiteral(source.Span{Pattern: id, Start: 0, End: 1}, "a")
	spec, _ := format.Parse("-4")
	comp := b.NewComposite(source.Span{Pattern: id, Start: 1, End: 12}, spec)
	b.PushChild(comp, b.NewSimple(source.Span{Pattern: id, Start: 5, End: 11}, "hello", format.Spec{}, nil))
	return b.Tree(id, []ast.NodeID{lit, comp})
}

func TestFormatASTPretty(t *testing.T) {
	ps := source.NewPatternSet()
	tree := sampleTree(ps)

	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, tree, ps); err != nil {
		t.Fatal(err)
	}
	want := "Pattern tree (span: 1-13)\n" +
		"├─ Literal \"a\" (span: 1-2)\n" +
		"└─ Composite %-4(...) (span: 2-13)\n" +
		"   └─ Simple %hello (span: 6-12)\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestFormatASTJSON(t *testing.T) {
	ps := source.NewPatternSet()
	tree := sampleTree(ps)

	var buf bytes.Buffer
	if err := FormatASTJSON(&buf, tree); err != nil {
		t.Fatal(err)
	}
	var out ASTNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Children) != 2 || out.Children[1].Format != "-4" || out.Children[1].Children[0].Keyword != "hello" {
		t.Errorf("unexpected tree: %+v", out)
	}
	if out.Span.Start != 0 || out.Span.End != 12 {
		t.Errorf("root span: %+v", out.Span)
	}
}

func TestFormatASTTree(t *testing.T) {
	ps := source.NewPatternSet()
	tree := sampleTree(ps)

	var buf bytes.Buffer
	if err := FormatASTTree(&buf, tree, ps); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Pattern tree", `Literal "a"`, "Composite %-4(...)", "Simple %hello", "/", "\\"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestMsgPackDumps(t *testing.T) {
	ps := source.NewPatternSet()
	tree := sampleTree(ps)

	var buf bytes.Buffer
	if err := FormatASTMsgPack(&buf, tree); err != nil {
		t.Fatal(err)
	}
	dec := msgpack.NewDecoder(&buf)
	dec.SetCustomStructTag("json")
	var out ASTNodeOutput
	if err := dec.Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out.Children) != 2 || out.Children[1].Type != "Composite" {
		t.Errorf("unexpected tree: %+v", out)
	}

	buf.Reset()
	tokens := []token.Token{{Kind: token.Literal, Text: "a"}, {Kind: token.EOF}}
	if err := FormatTokensMsgPack(&buf, tokens); err != nil {
		t.Fatal(err)
	}
	dec = msgpack.NewDecoder(&buf)
	dec.SetCustomStructTag("json")
	var toks []TokenOutput
	if err := dec.Decode(&toks); err != nil {
		t.Fatal(err)
	}
	if len(toks) != 2 || toks[0].Text != "a" {
		t.Errorf("unexpected tokens: %+v", toks)
	}
}
