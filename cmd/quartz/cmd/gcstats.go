package cmd

import (
	"fmt"
	"os"

	"github.com/solarbrowser/quanta-go/pkg/engine"
	"github.com/solarbrowser/quanta-go/pkg/engine/minieval"
	"github.com/spf13/cobra"
)

var gcStatsCmd = &cobra.Command{
	Use:   "gc-stats [file]",
	Short: "Run a script and report collector counters afterward",
	Long: `Evaluates a file or inline expression the same way "run" does, then
forces a collection cycle and prints the resulting counters — a quick
way to see the mark-and-sweep collector at work without writing a host
program against pkg/engine directly.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGCStats,
}

func init() {
	rootCmd.AddCommand(gcStatsCmd)
	gcStatsCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
}

func runGCStats(_ *cobra.Command, args []string) error {
	var source string
	switch {
	case evalExpr != "":
		source = evalExpr
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		source = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	e := engine.New(
		engine.WithParser(minieval.Parser{}),
		engine.WithInterpreter(minieval.Interpreter{}),
	)
	result := e.Evaluate(source, "<gc-stats>")
	if !result.Success {
		return fmt.Errorf("%s", result.ErrorMessage)
	}

	stats := e.ForceGC()
	fmt.Printf("allocations:     %d\n", stats.Allocations)
	fmt.Printf("deallocations:   %d\n", stats.Deallocations)
	fmt.Printf("collections:     %d\n", stats.Collections)
	fmt.Printf("bytes allocated: %d\n", stats.BytesAllocated)
	fmt.Printf("bytes freed:     %d\n", stats.BytesFreed)
	fmt.Printf("peak memory:     %d\n", stats.PeakMemory)
	return nil
}
