package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "quartz",
	Short: "Quanta runtime host CLI",
	Long: `quartz embeds the Quanta core runtime: a tagged Value union, a
prototype-based Object model, execution Contexts with lexical/variable
Environments, and a mark-and-sweep GC.

This binary does not ship a lexer/parser/bytecode-compiler of its own —
those are the pluggable collaborators pkg/engine expects a host to
supply. The "run" command here backs onto pkg/engine/minieval, a small
reference expression evaluator good enough to exercise the runtime end
to end, not a general-purpose language front end.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
