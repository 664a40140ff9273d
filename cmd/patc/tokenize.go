package main

import (
	"github.com/spf13/cobra"

	"patc/internal/diagfmt"
	"patc/internal/driver"
	"patc/internal/source"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] <pattern|@file>",
		Short: "Tokenize a conversion pattern",
		Long:  `Tokenize breaks a conversion pattern into literal, percent, keyword, option and parenthesis tokens`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	cmd.Flags().String("name", "", "tokenize a named pattern from the config")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	formatFlag, _ := cmd.Flags().GetString("format")
	outFormat, err := checkFormat(formatFlag, "pretty", "json", "msgpack")
	if err != nil {
		return a.fail(err)
	}
	name, _ := cmd.Flags().GetString("name")

	ps := source.NewPatternSet()
	id, err := a.resolvePattern(ps, args, name)
	if err != nil {
		return a.fail(err)
	}

	result, syntaxErr := driver.Tokenize(cmd.Context(), ps, id, a.opts)
	if result == nil {
		return a.fail(syntaxErr)
	}
	a.printDiagnostics(result.Bag, ps)
	a.printTimings(result.Timing)

	out := cmd.OutOrStdout()
	switch outFormat {
	case "json":
		err = diagfmt.FormatTokensJSON(out, result.Tokens)
	case "msgpack":
		err = diagfmt.FormatTokensMsgPack(out, result.Tokens)
	default:
		err = diagfmt.FormatTokensPretty(out, result.Tokens, ps)
	}
	if err != nil {
		return a.fail(err)
	}
	if syntaxErr != nil {
		return a.fail(syntaxErr)
	}
	return nil
}
