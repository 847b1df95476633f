package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSampleFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadSampleFile_SingleSample(t *testing.T) {
	path := writeSampleFile(t, "sample.yaml", `id: BH-1
liquid_limit: 42
plastic_limit: 21
fractions:
  sand_pct: 35
  fines_pct: 65
`)

	sample, err := readSampleFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sample.ID != "BH-1" || sample.Fractions == nil {
		t.Errorf("unexpected sample %+v", sample)
	}
}

func TestReadSampleFile_SingleEntryBatchFile(t *testing.T) {
	path := writeSampleFile(t, "batch.yaml", `samples:
  - id: BH-1
    fractions:
      gravel_pct: 60
      sand_pct: 37
      fines_pct: 3
`)

	sample, err := readSampleFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sample.ID != "BH-1" {
		t.Errorf("unexpected sample %+v", sample)
	}
}

func TestReadSampleFile_MultiSampleBatchFile(t *testing.T) {
	path := writeSampleFile(t, "batch.yaml", `samples:
  - id: BH-1
    fractions:
      gravel_pct: 60
      sand_pct: 37
      fines_pct: 3
  - id: BH-2
    fractions:
      sand_pct: 35
      fines_pct: 65
`)

	_, err := readSampleFile(path)
	if err == nil {
		t.Fatal("a multi-sample file must be rejected by classify")
	}
	if !strings.Contains(err.Error(), "use soilgrade batch") {
		t.Errorf("error must point at the batch command, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "2 samples") {
		t.Errorf("error must name the sample count, got %q", err.Error())
	}
}
