// Package pipeline wires the classification stages into an engine and
// renders its reports.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/soilgrade/soilgrade/internal/atterberg"
	"github.com/soilgrade/soilgrade/internal/cache"
	"github.com/soilgrade/soilgrade/internal/chart"
	"github.com/soilgrade/soilgrade/internal/classify"
	"github.com/soilgrade/soilgrade/internal/gradation"
	"github.com/soilgrade/soilgrade/internal/llm"
	"github.com/soilgrade/soilgrade/internal/model"
)

// Pipeline orchestrates the complete classification of one sample:
// validation, index calculation, grain-size analysis, chart placement,
// the decision tree, descriptors, and the optional narrative summary.
type Pipeline struct {
	indices    *atterberg.Calculator
	gradation  *gradation.Analyzer
	chart      *chart.Resolver
	classifier *classify.Classifier
	renderer   *Renderer
	cache      *cache.MemoryCache // nil when disabled
	summarizer *llm.Summarizer    // nil when disabled
	config     *model.Config
}

// NewPipeline creates a pipeline with the given configuration.
func NewPipeline(cfg *model.Config) *Pipeline {
	var memCache *cache.MemoryCache
	if cfg.Cache.Enabled {
		ttl := time.Duration(cfg.Cache.TTLMinutes) * time.Minute
		memCache = cache.NewMemoryCache(ttl, 2*ttl)
	}

	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM), cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	return &Pipeline{
		indices:    atterberg.NewCalculator(),
		gradation:  gradation.NewAnalyzer(),
		chart:      chart.NewResolver(cfg.Engine.OnLineEpsilonPI),
		classifier: classify.NewClassifier(cfg.Engine),
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		cache:      memCache,
		summarizer: summarizer,
		config:     cfg,
	}
}

// ClassifyResult wraps the report for batch collection.
type ClassifyResult struct {
	Report *model.Report
	Error  error
}

// ClassifySample classifies one sample. The only returned error is
// malformed input, rejected at the boundary; every downstream failure
// degrades to an unavailable or indeterminate field inside the report.
func (p *Pipeline) ClassifySample(ctx context.Context, s *model.SampleInput) (*model.Report, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	if p.cache != nil {
		if data, ok := p.cache.Get(cache.Key(p.config.Engine, s)); ok {
			var cached model.Report
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
			// Corrupt entry: fall through and recompute.
		}
	}

	// 1. Grain-size distribution
	grain := p.gradation.Analyze(s, p.config.Engine.FinesDominancePct)

	// 2. Derived indices (activity consumes the clay split)
	indices := p.indices.Calculate(s, grain.ClayPct)

	// 3. Chart placement, only when a plastic point exists
	var pos *model.ChartPosition
	if s.LiquidLimit != nil && indices.PlasticityIndex.Available && !indices.NonPlastic {
		pos = p.chart.Resolve(*s.LiquidLimit, indices.PlasticityIndex.Value)
	}

	// 4. Decision tree
	classification := p.classifier.Classify(indices, grain, pos, s.Organic)

	// 5. Descriptive classifications
	descriptors := classify.DeriveDescriptors(indices, s.LiquidLimit)

	report := &model.Report{
		SampleID:       s.ID,
		ClassifiedAt:   time.Now().UTC(),
		Input:          *s,
		Indices:        indices,
		Gradation:      grain,
		Chart:          pos,
		Classification: classification,
		Descriptors:    descriptors,
	}

	// 6. Narrative summary, after classification and never feeding back
	if p.summarizer != nil && p.summarizer.IsEnabled() {
		summary, err := p.summarizer.GenerateSummary(ctx, report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM summary generation failed: %v\n", err)
		} else if summary != nil {
			report.LLM = summary
		}
	}

	if p.cache != nil {
		if data, err := json.Marshal(report); err == nil {
			_ = p.cache.Set(cache.Key(p.config.Engine, s), data, 0)
		}
	}

	return report, nil
}

// RenderReport renders the report to the requested outputs and prints
// the terminal summary.
func (p *Pipeline) RenderReport(report *model.Report, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(report)
	return nil
}

// Renderer exposes the pipeline's renderer for batch output.
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}
