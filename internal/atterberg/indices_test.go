package atterberg

import (
	"math"
	"testing"

	"github.com/soilgrade/soilgrade/internal/model"
)

func TestCalculator_Calculate_AllIndices(t *testing.T) {
	calc := NewCalculator()

	sample := &model.SampleInput{
		LiquidLimit:     model.Float(40),
		PlasticLimit:    model.Float(20),
		ShrinkageLimit:  model.Float(12),
		MoistureContent: model.Float(30),
	}

	got := calc.Calculate(sample, model.IndexOf(25))

	if got.NonPlastic {
		t.Fatal("expected plastic sample")
	}
	checkIndex(t, "PI", got.PlasticityIndex, 20)
	checkIndex(t, "CI", got.ConsistencyIndex, 0.5)
	checkIndex(t, "LI", got.LiquidityIndex, 0.5)
	checkIndex(t, "SI", got.ShrinkageIndex, 8)
	checkIndex(t, "Activity", got.Activity, 0.8)
}

func TestCalculator_Calculate_MissingPlasticLimit(t *testing.T) {
	calc := NewCalculator()

	// LL measured, PL absent: PI, CI, LI and Activity must all be
	// unavailable, and the sample is not non-plastic.
	sample := &model.SampleInput{
		LiquidLimit:     model.Float(35),
		MoistureContent: model.Float(28),
	}

	got := calc.Calculate(sample, model.IndexOf(30))

	if got.NonPlastic {
		t.Error("missing PL must not be flagged non-plastic")
	}
	for name, idx := range map[string]model.Index{
		"PI":       got.PlasticityIndex,
		"CI":       got.ConsistencyIndex,
		"LI":       got.LiquidityIndex,
		"Activity": got.Activity,
	} {
		if idx.Available {
			t.Errorf("%s: expected unavailable, got %v", name, idx.Value)
		}
		if idx.Reason == "" {
			t.Errorf("%s: expected a reason", name)
		}
	}
}

func TestCalculator_Calculate_NonPlastic(t *testing.T) {
	calc := NewCalculator()

	// LL == PL: LL - PL <= 0 is non-plastic, a distinct state from a
	// missing measurement.
	sample := &model.SampleInput{
		LiquidLimit:     model.Float(25),
		PlasticLimit:    model.Float(25),
		MoistureContent: model.Float(20),
	}

	got := calc.Calculate(sample, model.IndexOf(15))

	if !got.NonPlastic {
		t.Fatal("expected non-plastic sample")
	}
	if got.PlasticityIndex.Available {
		t.Error("PI must be unavailable for NP samples")
	}
	if got.ConsistencyIndex.Available || got.LiquidityIndex.Available || got.Activity.Available {
		t.Error("PI-derived indices must be unavailable for NP samples")
	}
	if got.PlasticityIndex.Reason != ReasonNonPlastic {
		t.Errorf("unexpected reason %q", got.PlasticityIndex.Reason)
	}
}

func TestCalculator_Calculate_LabReportedNP(t *testing.T) {
	calc := NewCalculator()

	sample := &model.SampleInput{
		LiquidLimit:    model.Float(22),
		PlasticLimitNP: true,
	}

	got := calc.Calculate(sample, model.IndexUnavailable("no hydrometer"))

	if !got.NonPlastic {
		t.Fatal("thread-test failure must be flagged non-plastic")
	}
}

func TestCalculator_Calculate_NoMoisture(t *testing.T) {
	calc := NewCalculator()

	sample := &model.SampleInput{
		LiquidLimit:  model.Float(40),
		PlasticLimit: model.Float(20),
	}

	got := calc.Calculate(sample, model.IndexOf(25))

	checkIndex(t, "PI", got.PlasticityIndex, 20)
	if got.ConsistencyIndex.Available || got.LiquidityIndex.Available {
		t.Error("CI and LI need the natural moisture content")
	}
	if got.ConsistencyIndex.Reason != ReasonNoMoisture {
		t.Errorf("unexpected reason %q", got.ConsistencyIndex.Reason)
	}
}

func TestCalculator_Calculate_ActivityNeedsClay(t *testing.T) {
	calc := NewCalculator()

	sample := &model.SampleInput{
		LiquidLimit:  model.Float(40),
		PlasticLimit: model.Float(20),
	}

	got := calc.Calculate(sample, model.IndexUnavailable("no hydrometer data reaching 0.002 mm"))
	if got.Activity.Available {
		t.Error("activity needs the clay fraction")
	}

	got = calc.Calculate(sample, model.IndexOf(0))
	if got.Activity.Available {
		t.Error("activity is undefined for zero clay fraction")
	}
	if got.Activity.Reason != ReasonZeroClay {
		t.Errorf("unexpected reason %q", got.Activity.Reason)
	}
}

func checkIndex(t *testing.T, name string, idx model.Index, want float64) {
	t.Helper()
	if !idx.Available {
		t.Errorf("%s: expected %v, got unavailable (%s)", name, want, idx.Reason)
		return
	}
	if math.Abs(idx.Value-want) > 1e-9 {
		t.Errorf("%s: expected %v, got %v", name, want, idx.Value)
	}
}
