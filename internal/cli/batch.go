package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ndelorme/conforma/internal/report"
	"github.com/ndelorme/conforma/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file-or-dir>",
	Short: "Analyze multiple documents in parallel",
	Long: `Batch processes documents concurrently:
- Accepts a directory of documents, or a list file (one path per line)
- Documents run through independent pipelines on a bounded worker pool
- One document failing (timeout, service error) never stops the others
- Writes per-document reports plus a consolidated batch report

Example:
  conforma batch ./fiches -t agro
  conforma batch docs.txt -t chimie --concurrency 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&templateCategory, "template", "t", "", "template category")
	_ = batchCmd.MarkFlagRequired("template")
	batchCmd.Flags().StringVar(&templatesDir, "templates-dir", "", "directory of extra YAML template definitions")

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./conforma-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "batch-timeout", 30*time.Minute, "total timeout for the batch")
	batchCmd.Flags().DurationVar(&docTimeout, "timeout", 0, "per-document timeout")

	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "completion provider (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "completion model name")
	batchCmd.Flags().IntVar(&maxAttempts, "retries", 0, "completion retry attempts on transient failures")

	batchCmd.Flags().StringVar(&ocrLang, "ocr-lang", "", "OCR language (e.g. fra, eng)")
	batchCmd.Flags().IntVar(&ocrDPI, "ocr-dpi", 0, "OCR resolution, 150-600")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable OCR cache")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runBatch(cmd *cobra.Command, args []string) error {
	input := args[0]
	cfg := buildConfig()
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}

	p, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "Batch: %s (template %s, %d workers)\n", input, templateCategory, cfg.Concurrency.Workers)

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)

	var results []*worker.DocumentResult
	info, err := os.Stat(input)
	switch {
	case err != nil:
		return fmt.Errorf("stat input: %w", err)
	case info.IsDir():
		results, err = processor.ProcessDir(ctx, templateCategory, input)
	default:
		results, err = processor.ProcessFile(ctx, templateCategory, input)
	}
	if err != nil {
		return err
	}

	for _, r := range results {
		if r.Error != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Path, r.Error)
			continue
		}

		slug := sanitizeFilename(r.Result.DocumentIdentifier)
		if err := report.WriteJSON(r.Result, filepath.Join(outputDir, slug+".json")); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: write report: %v\n", r.Path, err)
			continue
		}
		if err := report.WriteMarkdown(r.Result, cfg.Output.IncludeFooter, filepath.Join(outputDir, slug+".md")); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: write report: %v\n", r.Path, err)
			continue
		}
		fmt.Fprintf(os.Stderr, "✓ %s: %s\n", r.Result.DocumentIdentifier, r.Result.OverallStatus)
	}

	batchReport := worker.BuildReport(templateCategory, results)
	if err := report.WriteBatchJSON(batchReport, filepath.Join(outputDir, "batch.json")); err != nil {
		return err
	}
	mdPath := filepath.Join(outputDir, "batch.md")
	if err := os.WriteFile(mdPath, []byte(report.RenderBatchMarkdown(batchReport)), 0644); err != nil {
		return fmt.Errorf("write batch report: %w", err)
	}

	fmt.Fprintf(os.Stderr, "\nDone: %d succeeded, %d failed, conformity %.1f%%\n",
		batchReport.Succeeded, batchReport.Failed, batchReport.ConformityRate)
	fmt.Fprintf(os.Stderr, "Reports: %s\n", outputDir)
	return nil
}

// sanitizeFilename makes a document identifier safe as a file name.
func sanitizeFilename(s string) string {
	s = filepath.Base(s)
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_", " ", "-",
	)
	s = replacer.Replace(s)
	if ext := filepath.Ext(s); ext != "" {
		s = strings.TrimSuffix(s, ext)
	}
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}
