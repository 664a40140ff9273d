package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"patc/internal/diag"
	"patc/internal/source"
)

// resolvePattern adds the pattern named by the command line to ps:
//
//	patc render '%msg'         pattern text
//	patc render @access.pat    pattern file
//	patc render --name access  [patterns] entry of the config
func (a *app) resolvePattern(ps *source.PatternSet, args []string, name string) (source.PatternID, error) {
	switch {
	case name != "" && len(args) > 0:
		return 0, fmt.Errorf("pass either a pattern or --name, not both")
	case name != "":
		text, ok := a.cfg.Patterns[name]
		if !ok {
			var notes []string
			if known := a.cfg.PatternNames(); len(known) > 0 {
				notes = append(notes, "known patterns: "+strings.Join(known, ", "))
			}
			if a.cfg.Path == "" {
				notes = append(notes, "no patc.toml or patc.yaml found")
			}
			return 0, a.reportProblem(ps, "--name", name, diag.CfgUnknownPattern,
				fmt.Sprintf("unknown pattern %q", name), notes...)
		}
		return ps.AddVirtual(name, text), nil
	case len(args) == 0:
		return 0, fmt.Errorf("missing pattern argument")
	}

	arg := args[0]
	if path, ok := strings.CutPrefix(arg, "@"); ok && path != "" {
		id, err := ps.Load(path)
		if err != nil {
			msg := "cannot read pattern file"
			if errors.Is(err, fs.ErrNotExist) {
				msg = "pattern file does not exist"
			}
			return 0, a.reportProblem(ps, "<arg>", arg, diag.IOLoadPatternError, msg, err.Error())
		}
		return id, nil
	}
	return ps.AddNormalized("<arg>", arg), nil
}
