package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/soilgrade/soilgrade/internal/model"
)

// Renderer writes reports as JSON, Markdown and CSV. Collaborators
// consume the records read-only; rendering never mutates a report.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report field-for-field as indented JSON.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report.
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	title := "Soil Classification Report"
	if report.SampleID != "" {
		title += " — " + report.SampleID
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	cls := &report.Classification
	if cls.Indeterminate {
		fmt.Fprintf(&b, "**Classification: indeterminate.** %s\n\n", cls.Reason)
	} else {
		fmt.Fprintf(&b, "**Classification: %s** — %s\n\n", cls.SymbolString(), cls.GroupName)
	}

	b.WriteString("## Grain-Size Distribution\n\n")
	fmt.Fprintf(&b, "| Fraction | Percent |\n|---|---|\n")
	fmt.Fprintf(&b, "| Gravel (> 4.75 mm) | %.1f |\n", report.Gradation.GravelPct)
	fmt.Fprintf(&b, "| Sand (4.75–0.075 mm) | %.1f |\n", report.Gradation.SandPct)
	fmt.Fprintf(&b, "| Fines (< 0.075 mm) | %.1f |\n", report.Gradation.FinesPct)
	if report.Gradation.SiltPct.Available {
		fmt.Fprintf(&b, "| — Silt | %.1f |\n", report.Gradation.SiltPct.Value)
		fmt.Fprintf(&b, "| — Clay | %.1f |\n", report.Gradation.ClayPct.Value)
	}
	b.WriteString("\n")

	if report.Gradation.Cu.Available || report.Gradation.Cc.Available {
		b.WriteString("## Gradation Coefficients\n\n")
		writeIndexLine(&b, "D10 (mm)", report.Gradation.D10, "%.4g")
		writeIndexLine(&b, "D30 (mm)", report.Gradation.D30, "%.4g")
		writeIndexLine(&b, "D60 (mm)", report.Gradation.D60, "%.4g")
		writeIndexLine(&b, "Cu", report.Gradation.Cu, "%.2f")
		writeIndexLine(&b, "Cc", report.Gradation.Cc, "%.2f")
		b.WriteString("\n")
	}

	b.WriteString("## Derived Indices\n\n")
	if report.Indices.NonPlastic {
		b.WriteString("Sample is **non-plastic (NP)**.\n\n")
	}
	writeIndexLine(&b, "Plasticity Index", report.Indices.PlasticityIndex, "%.2f")
	writeIndexLine(&b, "Consistency Index", report.Indices.ConsistencyIndex, "%.2f")
	writeIndexLine(&b, "Liquidity Index", report.Indices.LiquidityIndex, "%.2f")
	writeIndexLine(&b, "Shrinkage Index", report.Indices.ShrinkageIndex, "%.2f")
	writeIndexLine(&b, "Activity", report.Indices.Activity, "%.2f")
	b.WriteString("\n")

	if d := report.Descriptors; d != (model.Descriptors{}) {
		b.WriteString("## Descriptors\n\n")
		for _, row := range [][2]string{
			{"Consistency", d.Consistency},
			{"Toughness", d.Toughness},
			{"Compressibility", d.Compressibility},
			{"Degree of Expansion", d.Expansion},
			{"Activity Class", d.ActivityClass},
		} {
			if row[1] != "" {
				fmt.Fprintf(&b, "- %s: %s\n", row[0], row[1])
			}
		}
		b.WriteString("\n")
	}

	if pos := report.Chart; pos != nil {
		b.WriteString("## Plasticity Chart\n\n")
		fmt.Fprintf(&b, "Point (LL %.1f, PI %.2f): %s the A-line (A-line PI %.2f), %s the U-line.\n\n",
			pos.LiquidLimit, pos.PlasticityIndex, pos.ALine, pos.ALinePI, pos.ULine)
	}

	b.WriteString("## Decision Trace\n\n")
	for i, entry := range cls.Trace {
		fmt.Fprintf(&b, "%d. `%s` → %s (%s)\n", i+1, entry.Rule, entry.Outcome, entry.Detail)
	}
	b.WriteString("\n")

	if len(cls.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range cls.Warnings {
			fmt.Fprintf(&b, "- ⚠ %s\n", w)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\nGenerated by soilgrade — IS 1498:1970 soil classification.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func writeIndexLine(b *strings.Builder, label string, idx model.Index, format string) {
	if idx.Available {
		fmt.Fprintf(b, "- %s: "+format+"\n", label, idx.Value)
	} else {
		fmt.Fprintf(b, "- %s: not available (%s)\n", label, idx.Reason)
	}
}

// RenderSummary prints the one-screen terminal summary.
func (r *Renderer) RenderSummary(report *model.Report) {
	cls := &report.Classification
	id := report.SampleID
	if id == "" {
		id = "sample"
	}

	if cls.Indeterminate {
		fmt.Printf("%s: indeterminate — %s\n", id, cls.Reason)
	} else {
		fmt.Printf("%s: %s — %s\n", id, cls.SymbolString(), cls.GroupName)
	}
	for _, w := range cls.Warnings {
		fmt.Printf("  ⚠ %s\n", w)
	}
}

// RenderCSV writes one row per report, for spreadsheet-bound batch
// output.
func (r *Renderer) RenderCSV(reports []*model.Report, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	w := csv.NewWriter(f)
	header := []string{
		"sample_id", "symbol", "group_name", "indeterminate", "reason",
		"gravel_pct", "sand_pct", "fines_pct",
		"plasticity_index", "non_plastic", "cu", "cc", "warnings",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, report := range reports {
		cls := &report.Classification
		row := []string{
			report.SampleID,
			cls.SymbolString(),
			cls.GroupName,
			strconv.FormatBool(cls.Indeterminate),
			cls.Reason,
			formatFloat(report.Gradation.GravelPct),
			formatFloat(report.Gradation.SandPct),
			formatFloat(report.Gradation.FinesPct),
			formatIndex(report.Indices.PlasticityIndex),
			strconv.FormatBool(report.Indices.NonPlastic),
			formatIndex(report.Gradation.Cu),
			formatIndex(report.Gradation.Cc),
			strings.Join(cls.Warnings, "; "),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatIndex(idx model.Index) string {
	if !idx.Available {
		return ""
	}
	return strconv.FormatFloat(idx.Value, 'f', 4, 64)
}

// RenderLLMMarkdown writes the optional narrative to its own file, kept
// apart from the deterministic report.
func (r *Renderer) RenderLLMMarkdown(markdown, path string) error {
	if err := os.WriteFile(path, []byte(markdown), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
