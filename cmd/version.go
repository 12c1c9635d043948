package cmd

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version and revision",
	Run: func(cmd *cobra.Command, args []string) {
		info, _ := debug.ReadBuildInfo()
		writeVersion(cmd.OutOrStdout(), version, info)
	},
}

// writeVersion prints the release version, falling back to the module
// version recorded by `go install`, plus the VCS revision when known.
func writeVersion(w io.Writer, v string, info *debug.BuildInfo) {
	var rev, goVersion string
	dirty := false
	if info != nil {
		if v == "(devel)" && info.Main.Version != "" {
			v = info.Main.Version
		}
		goVersion = info.GoVersion
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				rev = s.Value
			case "vcs.modified":
				dirty = s.Value == "true"
			}
		}
	}

	fmt.Fprintf(w, "hanzidrill %s", v)
	if rev != "" {
		if len(rev) > 12 {
			rev = rev[:12]
		}
		if dirty {
			rev += "-dirty"
		}
		fmt.Fprintf(w, " (%s)", rev)
	}
	if goVersion != "" {
		fmt.Fprintf(w, " %s", goVersion)
	}
	fmt.Fprintln(w)
}
