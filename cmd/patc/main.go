package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"patc/internal/version"
)

// newRootCmd builds the command tree; tests get a fresh tree with fresh flags.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "patc",
		Short: "Conversion-pattern compiler",
		Long: `patc compiles logging conversion patterns such as "%-5level [%logger{1}] %msg"
into converter chains, reports diagnostics and renders sample events`,
		Version:            version.Version,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  setupCommand,
		PersistentPostRunE: teardownCommand,
	}

	rootCmd.AddCommand(newTokenizeCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newVersionCmd())

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "path to patc.toml / patc.yaml (default: search upwards)")
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress warnings and non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 0, "maximum number of diagnostics per pattern (default from config)")
	pf.String("width", "", "width measure for format modifiers (runes|cells)")
	pf.String("trace", "", "write pipeline trace to file ('-' for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.Int("trace-ring-size", 4096, "ring buffer size for --trace-mode ring|both")
	pf.String("cpu-profile", "", "write CPU profile to file")
	pf.String("mem-profile", "", "write heap profile to file")
	pf.String("runtime-trace", "", "write Go runtime trace to file")
	return rootCmd
}

// main executes the root command. Any error exits with status 1; syntax
// errors have already been printed as diagnostics.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !isReported(err) {
			fmt.Fprintf(os.Stderr, "patc: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// stdoutFile returns the command output as *os.File, or nil when redirected
// to a buffer.
func stdoutFile(cmd *cobra.Command) *os.File {
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		return f
	}
	return nil
}

func stderrFile(cmd *cobra.Command) *os.File {
	if f, ok := cmd.ErrOrStderr().(*os.File); ok {
		return f
	}
	return nil
}
