package llm

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/time/rate"

	"github.com/soilgrade/soilgrade/internal/model"
)

// Summarizer generates report narratives through a Provider, throttled
// so batch runs do not hammer the API.
type Summarizer struct {
	provider Provider
	config   Config
	limiter  *rate.Limiter
}

// NewSummarizer creates a summarizer. A configuration without a
// provider yields a disabled summarizer, not an error.
func NewSummarizer(config Config, requestsPerSecond float64, burst int) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}

	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}

	return &Summarizer{
		provider: provider,
		config:   config,
		limiter:  rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}, nil
}

// IsEnabled reports whether a provider is configured.
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// GenerateSummary produces the narrative for a report. Failures are
// returned to the caller to warn about; they never fail the
// classification itself.
func (s *Summarizer) GenerateSummary(ctx context.Context, report *model.Report) (*model.LLMSummary, error) {
	if !s.IsEnabled() {
		return nil, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Report:    report,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	summary := &model.LLMSummary{
		Enabled:   true,
		Provider:  s.provider.Name(),
		Model:     resp.Model,
		SummaryMD: resp.Summary,
	}
	summary.Warnings = checkSymbolDrift(report, resp.Summary)
	return summary, nil
}

var symbolToken = regexp.MustCompile(`\b(G[WPMC]|S[WPMC]|C[LH]|M[LH]|O[LH])\b`)

// checkSymbolDrift flags narratives that mention group symbols absent
// from the report, the closest analogue to citation enforcement for a
// numeric report.
func checkSymbolDrift(report *model.Report, summary string) []string {
	allowed := map[string]bool{}
	if report.Classification.Primary != "" {
		allowed[string(report.Classification.Primary)] = true
	}
	if report.Classification.Secondary != "" {
		allowed[string(report.Classification.Secondary)] = true
	}

	var warnings []string
	seen := map[string]bool{}
	for _, match := range symbolToken.FindAllString(summary, -1) {
		if !allowed[match] && !seen[match] {
			seen[match] = true
			warnings = append(warnings, fmt.Sprintf("summary mentions group symbol %s, which is not in the report", match))
		}
	}
	return warnings
}

// BuildPrompt renders the report facts the narrative may use.
func BuildPrompt(report *model.Report) string {
	var b strings.Builder

	b.WriteString("Write a short narrative (one or two paragraphs) for this IS 1498:1970 soil classification.\n\n")

	cls := &report.Classification
	if cls.Indeterminate {
		fmt.Fprintf(&b, "Result: indeterminate. Reason: %s\n", cls.Reason)
	} else {
		fmt.Fprintf(&b, "Result: %s (%s)\n", cls.SymbolString(), cls.GroupName)
	}

	fmt.Fprintf(&b, "Fractions: gravel %.1f%%, sand %.1f%%, fines %.1f%%\n",
		report.Gradation.GravelPct, report.Gradation.SandPct, report.Gradation.FinesPct)

	if report.Indices.NonPlastic {
		b.WriteString("The sample is non-plastic.\n")
	} else if report.Indices.PlasticityIndex.Available {
		fmt.Fprintf(&b, "Plasticity index: %.2f\n", report.Indices.PlasticityIndex.Value)
	}
	if report.Input.LiquidLimit != nil {
		fmt.Fprintf(&b, "Liquid limit: %.1f\n", *report.Input.LiquidLimit)
	}
	if report.Gradation.Cu.Available {
		fmt.Fprintf(&b, "Cu: %.2f\n", report.Gradation.Cu.Value)
	}
	if report.Gradation.Cc.Available {
		fmt.Fprintf(&b, "Cc: %.2f\n", report.Gradation.Cc.Value)
	}

	if d := report.Descriptors; d != (model.Descriptors{}) {
		if d.Consistency != "" {
			fmt.Fprintf(&b, "Consistency: %s\n", d.Consistency)
		}
		if d.Expansion != "" {
			fmt.Fprintf(&b, "Degree of expansion: %s\n", d.Expansion)
		}
	}

	for _, w := range cls.Warnings {
		fmt.Fprintf(&b, "Warning: %s\n", w)
	}

	b.WriteString("\nUse only these facts. Do not invent measurements or assign a different group symbol.\n")
	return b.String()
}

// RenderSeparateMarkdown renders the narrative for its own file.
func RenderSeparateMarkdown(summary *model.LLMSummary) string {
	if summary == nil || !summary.Enabled {
		return ""
	}

	var b strings.Builder
	b.WriteString("# Narrative Summary\n\n")
	fmt.Fprintf(&b, "_Generated by %s/%s. This narrative never affects the classification._\n\n", summary.Provider, summary.Model)
	b.WriteString(summary.SummaryMD)
	b.WriteString("\n")

	if len(summary.Warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, w := range summary.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}
	return b.String()
}
