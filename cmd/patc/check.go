package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"patc/internal/diag"
	"patc/internal/diagfmt"
	"patc/internal/driver"
	"patc/internal/observ"
	"patc/internal/source"
	"patc/internal/version"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] [name...]",
		Short: "Compile the patterns of the config file and report diagnostics",
		Long: `Check compiles every [patterns] entry of patc.toml / patc.yaml (or only the
named ones) concurrently and exits with status 1 if any of them has syntax errors`,
		RunE: runCheck,
	}
	cmd.Flags().String("format", "pretty", "diagnostics format (pretty|short|json|msgpack|sarif)")
	cmd.Flags().Int("jobs", 0, "max parallel compilations (0=auto)")
	cmd.Flags().Bool("strict", false, "treat warnings as failures")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	formatFlag, _ := cmd.Flags().GetString("format")
	outFormat, err := checkFormat(formatFlag, "pretty", "short", "json", "msgpack", "sarif")
	if err != nil {
		return a.fail(err)
	}
	opts := a.opts
	opts.Jobs, _ = cmd.Flags().GetInt("jobs")
	strict, _ := cmd.Flags().GetBool("strict")

	names := args
	if len(names) == 0 {
		names = a.cfg.PatternNames()
	}
	if len(names) == 0 {
		return a.fail(fmt.Errorf("no patterns to check: add a [patterns] table to patc.toml"))
	}

	ps := source.NewPatternSet()
	ids := make([]source.PatternID, 0, len(names))
	for _, name := range names {
		id, err := a.resolvePattern(ps, nil, name)
		if err != nil {
			return a.fail(err)
		}
		ids = append(ids, id)
	}

	reg, err := a.registry()
	if err != nil {
		return a.fail(err)
	}
	results, compileErr := driver.CompileAll(cmd.Context(), ps, ids, reg, opts)
	if compileErr != nil && !errors.Is(compileErr, driver.ErrSyntax) {
		return a.fail(compileErr)
	}

	bag := diag.NewBag(0)
	var timings []*observ.Report
	failed, warned := 0, 0
	for _, res := range results {
		if res == nil {
			continue
		}
		if res.Chain == nil {
			failed++
		}
		if res.Bag.HasWarnings() && !res.Bag.HasErrors() {
			warned++
		}
		bag.Merge(res.Bag)
		timings = append(timings, res.Timing)
	}

	out := cmd.OutOrStdout()
	switch outFormat {
	case "short":
		if s := diag.FormatShortDiagnostics(bag.Items(), ps, true); s != "" {
			err = writeString(out, s+"\n")
		}
	case "json":
		err = diagfmt.JSON(out, bag, ps, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true})
	case "msgpack":
		err = diagfmt.MsgPack(out, bag, ps, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true})
	case "sarif":
		err = diagfmt.Sarif(out, bag, ps, diagfmt.SarifRunMeta{
			ToolName:       "patc",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
		})
	default:
		a.printDiagnostics(bag, ps)
		a.printTimings(timings...)
		if !a.quiet {
			fmt.Fprintf(a.stderr, "checked %d patterns: %d failed, %d with warnings\n", len(results), failed, warned)
		}
	}
	if err != nil {
		return a.fail(err)
	}

	switch {
	case compileErr != nil:
		return a.fail(errReported)
	case strict && warned > 0:
		return a.fail(fmt.Errorf("%d patterns have warnings (--strict)", warned))
	}
	return nil
}
