package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soilgrade/soilgrade/internal/model"
)

func renderedReport(t *testing.T) *model.Report {
	t.Helper()
	report, err := NewPipeline(testConfig()).ClassifySample(context.Background(), claySample())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return report
}

func TestRenderer_RenderJSON_RoundTrips(t *testing.T) {
	report := renderedReport(t)
	path := filepath.Join(t.TempDir(), "report.json")

	if err := NewRenderer(true).RenderJSON(report, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var back model.Report
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if back.Classification.Primary != report.Classification.Primary {
		t.Errorf("classification lost in serialization: %s vs %s",
			back.Classification.Primary, report.Classification.Primary)
	}
	if len(back.Classification.Trace) != len(report.Classification.Trace) {
		t.Error("decision trace lost in serialization")
	}
}

func TestRenderer_RenderMarkdown_Sections(t *testing.T) {
	report := renderedReport(t)
	path := filepath.Join(t.TempDir(), "report.md")

	if err := NewRenderer(true).RenderMarkdown(report, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	md := string(data)

	for _, want := range []string{
		"# Soil Classification Report — BH-1/S-3",
		"**Classification: CL**",
		"## Grain-Size Distribution",
		"## Derived Indices",
		"## Plasticity Chart",
		"## Decision Trace",
		"Generated by soilgrade",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestRenderer_RenderMarkdown_NoFooter(t *testing.T) {
	report := renderedReport(t)
	path := filepath.Join(t.TempDir(), "report.md")

	if err := NewRenderer(false).RenderMarkdown(report, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "Generated by soilgrade") {
		t.Error("footer rendered despite being disabled")
	}
}

func TestRenderer_RenderCSV_OneRowPerReport(t *testing.T) {
	report := renderedReport(t)
	path := filepath.Join(t.TempDir(), "index.csv")

	if err := NewRenderer(true).RenderCSV([]*model.Report{report, report}, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "sample_id,symbol,group_name") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], "CL") || !strings.Contains(lines[1], "BH-1/S-3") {
		t.Errorf("unexpected row %q", lines[1])
	}
}
