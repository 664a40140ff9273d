package main

import (
	"github.com/spf13/cobra"

	"patc/internal/diagfmt"
	"patc/internal/driver"
	"patc/internal/source"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] <pattern|@file>",
		Short: "Parse a conversion pattern and print its tree",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|tree|json|msgpack)")
	cmd.Flags().String("name", "", "parse a named pattern from the config")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	formatFlag, _ := cmd.Flags().GetString("format")
	outFormat, err := checkFormat(formatFlag, "pretty", "tree", "json", "msgpack")
	if err != nil {
		return a.fail(err)
	}
	name, _ := cmd.Flags().GetString("name")

	ps := source.NewPatternSet()
	id, err := a.resolvePattern(ps, args, name)
	if err != nil {
		return a.fail(err)
	}

	result, syntaxErr := driver.Parse(cmd.Context(), ps, id, a.opts)
	if result == nil {
		return a.fail(syntaxErr)
	}
	a.printDiagnostics(result.Bag, ps)
	a.printTimings(result.Timing)

	out := cmd.OutOrStdout()
	switch outFormat {
	case "tree":
		err = diagfmt.FormatASTTree(out, result.Tree, ps)
	case "json":
		err = diagfmt.FormatASTJSON(out, result.Tree)
	case "msgpack":
		err = diagfmt.FormatASTMsgPack(out, result.Tree)
	default:
		err = diagfmt.FormatASTPretty(out, result.Tree, ps)
	}
	if err != nil {
		return a.fail(err)
	}
	if syntaxErr != nil {
		return a.fail(syntaxErr)
	}
	return nil
}
