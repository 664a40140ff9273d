package version

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/fatih/color"
)

// Version information for the patc CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var partColors = []*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

// Colored returns Version with major, minor and patch highlighted.
// A pre-release or build suffix is left uncoloured.
func Colored(enabled bool) string {
	core, suffix := Version, ""
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core, suffix = core[:i], core[i:]
	}
	parts := strings.SplitN(core, ".", 3)
	if !enabled || len(parts) != 3 {
		return Version
	}
	for i, p := range parts {
		c := *partColors[i]
		c.EnableColor()
		parts[i] = c.Sprint(p)
	}
	return strings.Join(parts, ".") + suffix
}

// Commit returns GitCommit, falling back to the VCS revision recorded by the
// Go toolchain.
func Commit() string {
	if GitCommit != "" {
		return GitCommit
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}

// Line renders the full "patc <version> (<commit>, <date>)" line.
func Line(colored bool) string {
	var extra []string
	if c := Commit(); c != "" {
		if len(c) > 12 {
			c = c[:12]
		}
		extra = append(extra, c)
	}
	if BuildDate != "" {
		extra = append(extra, BuildDate)
	}
	line := "patc " + Colored(colored)
	if len(extra) > 0 {
		line = fmt.Sprintf("%s (%s)", line, strings.Join(extra, ", "))
	}
	return line
}
