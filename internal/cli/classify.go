package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/soilgrade/soilgrade/internal/llm"
	"github.com/soilgrade/soilgrade/internal/model"
	"github.com/soilgrade/soilgrade/internal/pipeline"
)

var (
	outJSON     string
	outMD       string
	timeout     time.Duration
	noCache     bool
	noFooter    bool
	onLineEps   float64
	finesTie    string
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify <sample.yaml>",
	Short: "Classify a single sample and generate a report",
	Long: `Classify reads one laboratory record and:
- Computes the plasticity, consistency, liquidity, shrinkage and activity indices
- Derives the grain-size distribution with D10/D30/D60 and Cu/Cc
- Places the sample on the plasticity chart (A-line, U-line, LL = 50)
- Walks the IS 1498:1970 decision tree to a group symbol, with a full rule trace

Example:
  soilgrade classify sample.yaml
  soilgrade classify sample.yaml --json report.json --md report.md
  soilgrade classify sample.yaml --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	// Output flags
	classifyCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	classifyCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	classifyCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Engine flags
	classifyCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall timeout (matters only with --llm)")
	classifyCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable report cache")
	classifyCmd.Flags().Float64Var(&onLineEps, "on-line-epsilon", 0, "PI tolerance for on-the-line chart placements (0 = default)")
	classifyCmd.Flags().StringVar(&finesTie, "fines-tie-break", "", "path for fines exactly at 50%: fine or coarse (default fine)")

	// LLM flags
	classifyCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM narrative summary")
	classifyCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	classifyCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

// buildConfig assembles the configuration from defaults, the config
// file/environment, and flags, in ascending priority.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if v := viper.GetFloat64("engine.on_line_epsilon_pi"); v > 0 {
		cfg.Engine.OnLineEpsilonPI = v
	}
	if v := viper.GetString("engine.fines_tie_break"); v != "" {
		cfg.Engine.FinesTieBreak = v
	}
	if v := viper.GetInt("concurrency.workers"); v > 0 {
		cfg.Concurrency.Workers = v
	}

	if onLineEps > 0 {
		cfg.Engine.OnLineEpsilonPI = onLineEps
	}
	if finesTie != "" {
		if finesTie != "fine" && finesTie != "coarse" {
			return nil, fmt.Errorf("invalid --fines-tie-break %q (want fine or coarse)", finesTie)
		}
		cfg.Engine.FinesTieBreak = finesTie
	}

	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama needs no API key
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	return cfg, nil
}

func runClassify(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	sample, err := readSampleFile(path)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Classifying: %s\n", sampleLabel(sample, path))
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg)
	report, err := p.ClassifySample(ctx, sample)
	if err != nil {
		return fmt.Errorf("classify failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Fractions: gravel %.1f%%, sand %.1f%%, fines %.1f%%\n",
			report.Gradation.GravelPct, report.Gradation.SandPct, report.Gradation.FinesPct)
		fmt.Fprintf(os.Stderr, "✓ Applied %d decision rules\n", len(report.Classification.Trace))
		if report.LLM != nil && report.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated narrative using %s/%s\n", report.LLM.Provider, report.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	// Narrative goes to its own file, apart from the deterministic report
	if report.LLM != nil && report.LLM.Enabled && outMD != "" {
		llmPath := strings.TrimSuffix(outMD, ".md") + ".llm.md"
		if err := p.Renderer().RenderLLMMarkdown(llm.RenderSeparateMarkdown(report.LLM), llmPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to write narrative: %v\n", err)
		} else if verbose {
			fmt.Printf("✓ Wrote narrative: %s\n", llmPath)
		}
	}

	return nil
}

// readSampleFile reads a single-sample YAML file. A batch-format file
// with exactly one entry also works.
func readSampleFile(path string) (*model.SampleInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open sample: %w", err)
	}

	var sample model.SampleInput
	if err := yaml.Unmarshal(data, &sample); err != nil {
		return nil, fmt.Errorf("parse sample: %w", err)
	}

	if len(sample.Curve) == 0 && sample.Fractions == nil {
		var file struct {
			Samples []*model.SampleInput `yaml:"samples"`
		}
		if err := yaml.Unmarshal(data, &file); err == nil {
			switch {
			case len(file.Samples) == 1:
				return file.Samples[0], nil
			case len(file.Samples) > 1:
				return nil, fmt.Errorf("%s contains %d samples; use soilgrade batch", path, len(file.Samples))
			}
		}
	}

	return &sample, nil
}

func sampleLabel(s *model.SampleInput, path string) string {
	if s.ID != "" {
		return s.ID
	}
	return path
}
