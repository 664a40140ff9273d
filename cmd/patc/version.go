package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"patc/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show patc build information",
		Args:  cobra.NoArgs,
		// конфиг и трассировка для version не нужны
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE:              runVersion,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runVersion(cmd *cobra.Command, _ []string) error {
	formatFlag, _ := cmd.Flags().GetString("format")
	switch strings.ToLower(formatFlag) {
	case "json":
		return renderVersionJSON(cmd.OutOrStdout())
	case "pretty":
		colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
		colored := colorFlag == "on" || (colorFlag == "auto" && isTerminal(stdoutFile(cmd)))
		_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Line(colored))
		return err
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", formatFlag)
	}
}

func renderVersionJSON(out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(versionPayload{
		Tool:      "patc",
		Version:   version.Version,
		GitCommit: version.Commit(),
		BuildDate: version.BuildDate,
	})
}
