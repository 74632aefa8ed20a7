package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ndelorme/conforma/internal/compare"
)

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare <old-file> <new-file>",
	Short: "Analyze two revisions of a datasheet and diff the verdicts",
	Long: `Compare analyzes two versions of the same document category and
reports every control point whose status or extracted value changed.

Example:
  conforma compare fiche_v1.png fiche_v2.png -t agro`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVarP(&templateCategory, "template", "t", "", "template category")
	_ = compareCmd.MarkFlagRequired("template")
	compareCmd.Flags().StringVar(&templatesDir, "templates-dir", "", "directory of extra YAML template definitions")
	compareCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "completion provider (openai, anthropic, ollama)")
	compareCmd.Flags().StringVar(&llmModel, "llm-model", "", "completion model name")
	compareCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable OCR cache")
	compareCmd.Flags().DurationVar(&docTimeout, "timeout", 0, "per-document timeout")
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()

	p, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.Concurrency.DocumentTimeout+time.Minute)
	defer cancel()

	oldRun, err := p.AnalyzeFile(ctx, templateCategory, args[0])
	if err != nil {
		return fmt.Errorf("analyze %s: %w", args[0], err)
	}
	newRun, err := p.AnalyzeFile(ctx, templateCategory, args[1])
	if err != nil {
		return fmt.Errorf("analyze %s: %w", args[1], err)
	}

	cmp, err := compare.Results(oldRun, newRun)
	if err != nil {
		return err
	}

	fmt.Printf("Comparing %s -> %s (%s)\n", cmp.OldDocument, cmp.NewDocument, cmp.Category)
	if cmp.OverallChanged {
		fmt.Printf("Overall status changed: %s -> %s\n", cmp.OldOverall, cmp.NewOverall)
	} else {
		fmt.Printf("Overall status unchanged: %s\n", cmp.OldOverall)
	}

	if len(cmp.Differences) == 0 {
		fmt.Println("No control point differences.")
		return nil
	}

	fmt.Printf("\n%d control point(s) changed:\n", len(cmp.Differences))
	for _, d := range cmp.Differences {
		fmt.Printf("- %s [%s]: %s -> %s", d.ControlPointName, d.Criticity, d.OldStatus, d.NewStatus)
		if d.OldValue != d.NewValue {
			fmt.Printf(" (value %q -> %q)", d.OldValue, d.NewValue)
		}
		fmt.Println()
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "\nBoth runs kept their full reports; re-run analyze to export them.\n")
	}
	return nil
}
