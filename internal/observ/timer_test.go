package observ

import (
	"strings"
	"testing"
)

func TestTimerTrack(t *testing.T) {
	tm := NewTimer()
	done := tm.Track("parse")
	done("3 nodes")
	idx := tm.Begin("compile")
	tm.End(idx, "")
	tm.End(99, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("got %d phases, want 2", len(r.Phases))
	}
	if r.Phases[0].Name != "parse" || r.Phases[0].Note != "3 nodes" {
		t.Errorf("first phase = %+v", r.Phases[0])
	}
	if r.TotalMS < r.Phases[0].DurationMS {
		t.Errorf("total %.3f < phase %.3f", r.TotalMS, r.Phases[0].DurationMS)
	}
	s := tm.Summary()
	if !strings.Contains(s, "parse") || !strings.Contains(s, "// 3 nodes") || !strings.Contains(s, "total") {
		t.Errorf("summary = %q", s)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.Track("x")("")
	if len(tm.Report().Phases) != 0 {
		t.Error("nil timer must report nothing")
	}
}

func TestMerge(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{{Name: "parse", DurationMS: 1}, {Name: "compile", DurationMS: 2}}}
	b := Report{TotalMS: 4, Phases: []PhaseReport{{Name: "parse", DurationMS: 4}}}
	m := Merge(a, b)
	if m.TotalMS != 7 || len(m.Phases) != 2 || m.Phases[0].DurationMS != 5 || m.Phases[1].DurationMS != 2 {
		t.Errorf("merge = %+v", m)
	}
}
