package cmd

import (
	"fmt"
	"os"

	"github.com/solarbrowser/quanta-go/pkg/engine"
	"github.com/solarbrowser/quanta-go/pkg/engine/minieval"
	"github.com/spf13/cobra"
)

var (
	evalExpr    string
	gcThreshold uint64
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a script file or expression against the runtime",
	Long: `Execute a program from a file or an inline expression.

Examples:
  # Run a script file
  quartz run script.qz

  # Evaluate an inline expression
  quartz run -e "1 + 2 * 3;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().Uint64Var(&gcThreshold, "gc-threshold", 0, "approximate allocated bytes (64 per object) that trigger automatic collection (0 disables it)")
}

func runScript(_ *cobra.Command, args []string) error {
	var source string
	var filename string

	switch {
	case evalExpr != "":
		source = evalExpr
		filename = "<eval>"
	case len(args) == 1:
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		source = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	opts := []engine.EngineOption{
		engine.WithParser(minieval.Parser{}),
		engine.WithInterpreter(minieval.Interpreter{}),
	}
	if gcThreshold > 0 {
		opts = append(opts, engine.WithGCThreshold(gcThreshold))
	}
	e := engine.New(opts...)

	if verbose {
		fmt.Fprintf(os.Stderr, "[running %s]\n", filename)
	}

	result := e.Evaluate(source, filename)
	if !result.Success {
		return fmt.Errorf("%s", result.ErrorMessage)
	}

	if verbose {
		stats := e.GCStats()
		fmt.Fprintf(os.Stderr, "[gc: %d allocations, %d collections]\n", stats.Allocations, stats.Collections)
	}

	fmt.Println(result.Value)
	return nil
}
