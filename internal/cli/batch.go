package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/soilgrade/soilgrade/internal/model"
	"github.com/soilgrade/soilgrade/internal/pipeline"
	"github.com/soilgrade/soilgrade/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	csvIndex     bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <samples.yaml>",
	Short: "Classify multiple samples from a file in parallel",
	Long: `Batch classifies many samples concurrently:
- Read samples from a YAML file (a "samples:" list)
- Classify in parallel with a configurable worker count
- Write an individual JSON and Markdown report per sample
- Optionally write a CSV index of the whole batch

Classification is pure and sub-millisecond per sample, so there is no
ordering between samples; each sample's own rule trace stays ordered.

Example:
  soilgrade batch samples.yaml
  soilgrade batch samples.yaml --concurrency 10 --output-dir ./reports
  soilgrade batch samples.yaml --csv`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./soilgrade-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&csvIndex, "csv", false, "write a CSV index of the batch")

	// Shared engine and output flags
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable report cache")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	batchCmd.Flags().Float64Var(&onLineEps, "on-line-epsilon", 0, "PI tolerance for on-the-line chart placements (0 = default)")
	batchCmd.Flags().StringVar(&finesTie, "fines-tie-break", "", "path for fines exactly at 50%: fine or coarse (default fine)")

	// LLM flags
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM narrative summaries")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  soilgrade Batch Classification\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency
	if llmEnabled {
		fmt.Fprintf(os.Stderr, "  LLM:          %s/%s\n\n", llmProvider, llmModel)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p := pipeline.NewPipeline(cfg)
	processor := worker.NewBatchProcessor(p, concurrency)

	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	fmt.Fprintf(os.Stderr, "⚙️  Classified %d samples with %d workers\n\n", len(results), concurrency)

	// Stable output regardless of completion order
	sort.Slice(results, func(i, j int) bool { return results[i].SampleID < results[j].SampleID })

	successCount := 0
	failureCount := 0
	indeterminateCount := 0
	var reports []*model.Report

	renderer := p.Renderer()
	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.SampleID, result.Error)
			continue
		}

		report := result.Report
		slug := sanitizeFilename(result.SampleID)
		if err := renderer.RenderJSON(report, filepath.Join(outputDir, slug+".json")); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.SampleID, err)
			continue
		}
		if err := renderer.RenderMarkdown(report, filepath.Join(outputDir, slug+".md")); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.SampleID, err)
			continue
		}

		successCount++
		reports = append(reports, report)

		cls := &report.Classification
		if cls.Indeterminate {
			indeterminateCount++
			fmt.Fprintf(os.Stderr, "• %s: indeterminate — %s\n", result.SampleID, cls.Reason)
		} else {
			fmt.Fprintf(os.Stderr, "✓ %s: %s — %s\n", result.SampleID, cls.SymbolString(), cls.GroupName)
		}
	}

	if csvIndex && len(reports) > 0 {
		csvPath := filepath.Join(outputDir, "index.csv")
		if err := renderer.RenderCSV(reports, csvPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ failed to write CSV index: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "\n✓ Wrote CSV index: %s\n", csvPath)
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:          %d samples\n", len(results))
	fmt.Fprintf(os.Stderr, "  Classified:     %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Indeterminate:  %d\n", indeterminateCount)
	fmt.Fprintf(os.Stderr, "  Rejected:       %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:         %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// sanitizeFilename sanitizes a sample ID for use as a filename.
func sanitizeFilename(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			out = append(out, r)
		case r == ' ':
			out = append(out, '-')
		default:
			out = append(out, '_')
		}
	}
	if len(out) > 100 {
		out = out[:100]
	}
	if len(out) == 0 {
		return "sample"
	}
	return string(out)
}
