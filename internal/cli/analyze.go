package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ndelorme/conforma/internal/report"
)

var (
	outJSON string
	outMD   string
	outCSV  string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a single scanned datasheet against a template",
	Long: `Analyze runs one document through the full pipeline:
- OCR text extraction (cached per document + OCR settings)
- Lexical synonym matching for every control point
- AI extraction with a single batched prompt
- Reconciliation of both signals into confidence-annotated verdicts

Example:
  conforma analyze fiche.png -t agro
  conforma analyze sds.tiff -t chimie --json report.json --md report.md
  conforma analyze board.png -t electronique --llm-provider anthropic`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&templateCategory, "template", "t", "", "template category (agro, electronique, chimie, ...)")
	_ = analyzeCmd.MarkFlagRequired("template")
	analyzeCmd.Flags().StringVar(&templatesDir, "templates-dir", "", "directory of extra YAML template definitions")

	analyzeCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().StringVar(&outCSV, "csv", "", "output CSV path (optional)")

	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "completion provider (openai, anthropic, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "", "completion model name")
	analyzeCmd.Flags().DurationVar(&llmTimeout, "llm-timeout", 0, "completion call timeout")
	analyzeCmd.Flags().IntVar(&maxAttempts, "retries", 0, "completion retry attempts on transient failures")

	analyzeCmd.Flags().StringVar(&ocrLang, "ocr-lang", "", "OCR language (e.g. fra, eng)")
	analyzeCmd.Flags().IntVar(&ocrDPI, "ocr-dpi", 0, "OCR resolution, 150-600")

	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable OCR cache (force fresh extraction)")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	analyzeCmd.Flags().DurationVar(&docTimeout, "timeout", 0, "per-document timeout")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]
	cfg := buildConfig()

	p, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", path)
		fmt.Fprintf(os.Stderr, "Template: %s\n", templateCategory)
		fmt.Fprintf(os.Stderr, "Provider: %s\n\n", cfg.LLM.Provider)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Concurrency.DocumentTimeout+30*time.Second)
	defer cancel()

	result, err := p.AnalyzeFile(ctx, templateCategory, path)
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	if outJSON != "" {
		if err := report.WriteJSON(result, outJSON); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := report.WriteMarkdown(result, cfg.Output.IncludeFooter, outMD); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", outMD)
		}
	}
	if outCSV != "" {
		if err := report.WriteCSV(result, outCSV); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote CSV: %s\n", outCSV)
		}
	}

	report.Summary(os.Stdout, result)
	return nil
}
