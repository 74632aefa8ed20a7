package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ndelorme/conforma/internal/model"
)

// Analyzer analyzes one document file against a template category.
type Analyzer interface {
	AnalyzeFile(ctx context.Context, category, path string) (*model.ExtractionResult, error)
}

// AnalyzeJob is one document analysis task.
type AnalyzeJob struct {
	Path     string
	Category string
	Analyzer Analyzer
}

// Execute runs the analysis. Errors are captured in the result, never
// propagated, so a failing document cannot abort its siblings.
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	result, err := j.Analyzer.AnalyzeFile(ctx, j.Category, j.Path)
	return &DocumentResult{
		Path:   j.Path,
		Result: result,
		Error:  err,
	}
}

// DocumentResult is the outcome for one document in a batch.
type DocumentResult struct {
	Path   string
	Result *model.ExtractionResult
	Error  error
}

// Err implements the pool Result interface.
func (r *DocumentResult) Err() error { return r.Error }

// BatchProcessor fans independent document analyses out over a bounded
// worker pool. Documents share nothing mutable; the template registry
// behind the analyzer is read-only.
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessPaths analyzes the given document files concurrently, one
// result per document.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, category string, paths []string) []*DocumentResult {
	if len(paths) == 0 {
		return []*DocumentResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&AnalyzeJob{
			Path:     path,
			Category: category,
			Analyzer: b.analyzer,
		})
	}

	results := pool.Wait()

	docResults := make([]*DocumentResult, len(results))
	for i, result := range results {
		docResults[i] = result.(*DocumentResult)
	}

	// Pool completion order is nondeterministic; reports read better in
	// a stable order.
	sort.Slice(docResults, func(i, j int) bool {
		return docResults[i].Path < docResults[j].Path
	})
	return docResults
}

// ProcessFile reads document paths from a list file (one per line,
// "#" comments and blanks skipped) and analyzes them.
func (b *BatchProcessor) ProcessFile(ctx context.Context, category, listPath string) ([]*DocumentResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read document list: %w", err)
	}
	return b.ProcessPaths(ctx, category, paths), nil
}

// ProcessDir analyzes every supported document file in a directory.
func (b *BatchProcessor) ProcessDir(ctx context.Context, category, dir string) ([]*DocumentResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if isDocumentFile(entry.Name()) {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return b.ProcessPaths(ctx, category, paths), nil
}

// BuildReport consolidates batch results: successes with their result,
// failures with a classified error, plus compliance counts and a rollup
// of critical issues across the batch.
func BuildReport(category string, results []*DocumentResult) *model.BatchReport {
	report := &model.BatchReport{
		StartedAt: time.Now().UTC(),
		Category:  category,
	}

	issueSet := make(map[string]bool)
	for _, r := range results {
		doc := model.BatchDocument{DocumentIdentifier: filepath.Base(r.Path)}

		if r.Error != nil {
			report.Failed++
			doc.ErrorKind = model.ErrorKind(r.Error)
			doc.ErrorMessage = r.Error.Error()
		} else {
			report.Succeeded++
			doc.Result = r.Result
			switch r.Result.OverallStatus {
			case model.OverallCompliant:
				report.Compliant++
			case model.OverallPartial:
				report.Partial++
			case model.OverallNonCompliant:
				report.NonCompliant++
			}
			for _, issue := range r.Result.CriticalIssues() {
				issueSet[issue] = true
			}
		}

		report.Documents = append(report.Documents, doc)
	}

	if report.Succeeded > 0 {
		report.ConformityRate = float64(report.Compliant) / float64(report.Succeeded) * 100
	}
	for issue := range issueSet {
		report.CriticalIssues = append(report.CriticalIssues, issue)
	}
	sort.Strings(report.CriticalIssues)

	return report
}

// ReadPathsFromFile reads document paths from a file, one per line.
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return paths, nil
}

// isDocumentFile reports whether a file looks like a scannable document.
func isDocumentFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp", ".pdf":
		return true
	default:
		return false
	}
}
