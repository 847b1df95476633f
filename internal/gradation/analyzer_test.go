package gradation

import (
	"math"
	"testing"

	"github.com/soilgrade/soilgrade/internal/model"
)

const fineThreshold = 50.0

// logLinearCurve is linear in log10(aperture) by construction:
// percent = 25*log10(d) + 50, so D-values have closed forms.
func logLinearCurve() []model.SievePoint {
	return []model.SievePoint{
		{ApertureMM: 10, PercentPassing: 75},
		{ApertureMM: 1, PercentPassing: 50},
		{ApertureMM: 0.1, PercentPassing: 25},
		{ApertureMM: 0.01, PercentPassing: 0},
	}
}

func TestAnalyzer_Analyze_InterpolationMatchesAnalytic(t *testing.T) {
	analyzer := NewAnalyzer()

	sample := &model.SampleInput{Curve: logLinearCurve()}
	got := analyzer.Analyze(sample, fineThreshold)

	// Inverse of the construction: log10(D) = (p - 50) / 25.
	wantD10 := math.Pow(10, (10.0-50)/25)
	wantD30 := math.Pow(10, (30.0-50)/25)
	wantD60 := math.Pow(10, (60.0-50)/25)

	checkValue(t, "D10", got.D10, wantD10)
	checkValue(t, "D30", got.D30, wantD30)
	checkValue(t, "D60", got.D60, wantD60)
	checkValue(t, "Cu", got.Cu, wantD60/wantD10)
	checkValue(t, "Cc", got.Cc, wantD30*wantD30/(wantD10*wantD60))
}

func TestAnalyzer_Analyze_FractionsFromCurve(t *testing.T) {
	analyzer := NewAnalyzer()

	sample := &model.SampleInput{Curve: []model.SievePoint{
		{ApertureMM: 20, PercentPassing: 100},
		{ApertureMM: 4.75, PercentPassing: 70},
		{ApertureMM: 0.075, PercentPassing: 30},
		{ApertureMM: 0.002, PercentPassing: 10},
	}}
	got := analyzer.Analyze(sample, fineThreshold)

	if math.Abs(got.GravelPct-30) > 1e-9 {
		t.Errorf("gravel: expected 30, got %v", got.GravelPct)
	}
	if math.Abs(got.SandPct-40) > 1e-9 {
		t.Errorf("sand: expected 40, got %v", got.SandPct)
	}
	if math.Abs(got.FinesPct-30) > 1e-9 {
		t.Errorf("fines: expected 30, got %v", got.FinesPct)
	}
	sum := got.GravelPct + got.SandPct + got.FinesPct
	if math.Abs(sum-100) > 1e-9 {
		t.Errorf("fractions must sum to 100, got %v", sum)
	}

	// Hydrometer reaches 0.002 mm, so the fines split is available.
	checkValue(t, "clay", got.ClayPct, 10)
	checkValue(t, "silt", got.SiltPct, 20)
	if got.Source != model.GradationFromCurve {
		t.Errorf("unexpected source %q", got.Source)
	}
}

func TestAnalyzer_Analyze_ExplicitFractions(t *testing.T) {
	analyzer := NewAnalyzer()

	sample := &model.SampleInput{
		Fractions: &model.Fractions{GravelPct: 55, SandPct: 35, FinesPct: 10},
	}
	got := analyzer.Analyze(sample, fineThreshold)

	if got.GravelPct != 55 || got.SandPct != 35 || got.FinesPct != 10 {
		t.Errorf("unexpected fractions: %+v", got)
	}
	if got.Source != model.GradationFromFractions {
		t.Errorf("unexpected source %q", got.Source)
	}
	if got.Cu.Available || got.Cc.Available {
		t.Error("Cu/Cc cannot come from explicit fractions")
	}
	if got.Cu.Reason != ReasonNoCurve {
		t.Errorf("unexpected reason %q", got.Cu.Reason)
	}
}

func TestAnalyzer_Analyze_ReportedCoefficients(t *testing.T) {
	analyzer := NewAnalyzer()

	// Lab records often carry Cu/Cc alongside the fraction split
	// without the curve they were read from.
	sample := &model.SampleInput{
		Fractions: &model.Fractions{GravelPct: 10, SandPct: 87, FinesPct: 3},
		Cu:        model.Float(8),
		Cc:        model.Float(2),
	}
	got := analyzer.Analyze(sample, fineThreshold)

	checkValue(t, "Cu", got.Cu, 8)
	checkValue(t, "Cc", got.Cc, 2)
	if got.D10.Available {
		t.Error("D-values cannot come from reported coefficients")
	}
}

func TestAnalyzer_Analyze_CurveCoefficientsWinOverReported(t *testing.T) {
	analyzer := NewAnalyzer()

	sample := &model.SampleInput{
		Curve: logLinearCurve(),
		Cu:    model.Float(999),
		Cc:    model.Float(999),
	}
	got := analyzer.Analyze(sample, fineThreshold)

	wantD10 := math.Pow(10, (10.0-50)/25)
	wantD60 := math.Pow(10, (60.0-50)/25)
	checkValue(t, "Cu", got.Cu, wantD60/wantD10)
}

func TestAnalyzer_Analyze_ReportedCoefficientsFillCurveGaps(t *testing.T) {
	analyzer := NewAnalyzer()

	// Curve never drops to 10% passing, so D10 and hence Cu/Cc cannot
	// be interpolated; the reported values stand in.
	sample := &model.SampleInput{
		Curve: []model.SievePoint{
			{ApertureMM: 10, PercentPassing: 100},
			{ApertureMM: 1, PercentPassing: 60},
			{ApertureMM: 0.1, PercentPassing: 30},
		},
		Cu: model.Float(12),
		Cc: model.Float(1.5),
	}
	got := analyzer.Analyze(sample, fineThreshold)

	checkValue(t, "Cu", got.Cu, 12)
	checkValue(t, "Cc", got.Cc, 1.5)
}

func TestAnalyzer_Analyze_FineGrainedSkipsCoefficients(t *testing.T) {
	analyzer := NewAnalyzer()

	// Fines at exactly the threshold: gradation coefficients are not
	// classification facts for fine-grained samples, reported or not.
	sample := &model.SampleInput{
		Curve: []model.SievePoint{
			{ApertureMM: 4.75, PercentPassing: 100},
			{ApertureMM: 0.075, PercentPassing: 50},
			{ApertureMM: 0.01, PercentPassing: 20},
		},
		Cu: model.Float(8),
		Cc: model.Float(2),
	}
	got := analyzer.Analyze(sample, fineThreshold)

	if got.FinesPct != 50 {
		t.Fatalf("expected 50%% fines, got %v", got.FinesPct)
	}
	for name, idx := range map[string]model.Index{
		"D10": got.D10, "D30": got.D30, "D60": got.D60, "Cu": got.Cu, "Cc": got.Cc,
	} {
		if idx.Available {
			t.Errorf("%s: must not be computed for fine-grained samples", name)
		}
		if idx.Reason != ReasonFineGrained {
			t.Errorf("%s: unexpected reason %q", name, idx.Reason)
		}
	}
}

func TestAnalyzer_Analyze_PercentileOutsideRange(t *testing.T) {
	analyzer := NewAnalyzer()

	// Curve never drops to 10% passing: D10 needs extrapolation, which
	// is forbidden.
	sample := &model.SampleInput{Curve: []model.SievePoint{
		{ApertureMM: 10, PercentPassing: 100},
		{ApertureMM: 1, PercentPassing: 60},
		{ApertureMM: 0.1, PercentPassing: 30},
	}}
	got := analyzer.Analyze(sample, fineThreshold)

	if got.D10.Available {
		t.Error("D10 outside the measured range must be unavailable")
	}
	if got.D10.Reason != ReasonOutsideRange {
		t.Errorf("unexpected reason %q", got.D10.Reason)
	}
	if !got.D30.Available || !got.D60.Available {
		t.Error("D30 and D60 are bracketed and must be available")
	}
	if got.Cu.Available || got.Cc.Available {
		t.Error("Cu/Cc need D10")
	}
}

func TestAnalyzer_Analyze_NoHydrometerNoFinesSplit(t *testing.T) {
	analyzer := NewAnalyzer()

	sample := &model.SampleInput{Curve: []model.SievePoint{
		{ApertureMM: 4.75, PercentPassing: 100},
		{ApertureMM: 0.075, PercentPassing: 60},
	}}
	got := analyzer.Analyze(sample, fineThreshold)

	if got.ClayPct.Available || got.SiltPct.Available {
		t.Error("fines split needs hydrometer data reaching 0.002 mm")
	}
	if got.ClayPct.Reason != ReasonNoHydrometer {
		t.Errorf("unexpected reason %q", got.ClayPct.Reason)
	}
}

func TestAnalyzer_Analyze_ClayFractionOverride(t *testing.T) {
	analyzer := NewAnalyzer()

	sample := &model.SampleInput{
		Curve: []model.SievePoint{
			{ApertureMM: 4.75, PercentPassing: 100},
			{ApertureMM: 0.075, PercentPassing: 60},
		},
		ClayFraction: model.Float(25),
	}
	got := analyzer.Analyze(sample, fineThreshold)

	checkValue(t, "clay", got.ClayPct, 25)
	checkValue(t, "silt", got.SiltPct, 35)
}

func TestAnalyzer_Analyze_TooFewPoints(t *testing.T) {
	analyzer := NewAnalyzer()

	sample := &model.SampleInput{Curve: []model.SievePoint{
		{ApertureMM: 1, PercentPassing: 40},
	}}
	got := analyzer.Analyze(sample, fineThreshold)

	if got.D30.Available {
		t.Error("a single point cannot bracket a percentile")
	}
	if got.D30.Reason != ReasonTooFewPoints {
		t.Errorf("unexpected reason %q", got.D30.Reason)
	}
}

func checkValue(t *testing.T, name string, idx model.Index, want float64) {
	t.Helper()
	if !idx.Available {
		t.Errorf("%s: expected %v, got unavailable (%s)", name, want, idx.Reason)
		return
	}
	if math.Abs(idx.Value-want) > 1e-9 {
		t.Errorf("%s: expected %v, got %v", name, want, idx.Value)
	}
}
