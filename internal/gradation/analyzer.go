// Package gradation derives the grain-size distribution summary from a
// sieve/hydrometer curve: gravel/sand/fines split, silt/clay split, and
// the D10/D30/D60 coefficients. Interpolation is log-linear on aperture,
// the standard geotechnical convention.
package gradation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"

	"github.com/soilgrade/soilgrade/internal/model"
)

// Unavailability reasons shared with tests and the classifier.
const (
	ReasonNoCurve       = "no sieve curve: fractions were entered directly"
	ReasonNoHydrometer  = "no hydrometer data reaching 0.002 mm"
	ReasonFineGrained   = "fine-grained sample: gradation coefficients not applicable"
	ReasonTooFewPoints  = "fewer than two distinct curve points"
	ReasonOutsideRange  = "percentile outside measured range"
	ReasonNeedsD10D60   = "requires D10 and D60"
	ReasonNeedsAllDVals = "requires D10, D30 and D60"
)

// Analyzer converts a sample's grain-size data into a GrainSizeSummary.
// Pure; every invocation works on its own input.
type Analyzer struct{}

// NewAnalyzer creates a new grain-size analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze derives the summary. fineThreshold is the fines percentage at
// which the sample counts as fine-grained; at or beyond it the D-values
// and Cu/Cc are not computed, since they carry no classification weight
// for such samples.
func (a *Analyzer) Analyze(s *model.SampleInput, fineThreshold float64) model.GrainSizeSummary {
	var out model.GrainSizeSummary

	if len(s.Curve) > 0 {
		out.Source = model.GradationFromCurve
		p475 := percentAt(s.Curve, model.ApertureGravelMM)
		p075 := percentAt(s.Curve, model.ApertureFinesMM)
		out.GravelPct = 100 - p475
		out.SandPct = p475 - p075
		out.FinesPct = p075
	} else {
		out.Source = model.GradationFromFractions
		out.GravelPct = s.Fractions.GravelPct
		out.SandPct = s.Fractions.SandPct
		out.FinesPct = s.Fractions.FinesPct
	}

	out.ClayPct, out.SiltPct = a.finesSplit(s, out.FinesPct)

	if out.FinesPct >= fineThreshold {
		// Cu/Cc are irrelevant for fine-grained samples and must not be
		// reported as classification facts.
		for _, idx := range []*model.Index{&out.D10, &out.D30, &out.D60, &out.Cu, &out.Cc} {
			*idx = model.IndexUnavailable(ReasonFineGrained)
		}
		return out
	}

	if len(s.Curve) == 0 {
		for _, idx := range []*model.Index{&out.D10, &out.D30, &out.D60, &out.Cu, &out.Cc} {
			*idx = model.IndexUnavailable(ReasonNoCurve)
		}
		applyReportedCoefficients(s, &out)
		return out
	}

	out.D10 = diameterAt(s.Curve, 10)
	out.D30 = diameterAt(s.Curve, 30)
	out.D60 = diameterAt(s.Curve, 60)
	out.Cu, out.Cc = coefficients(out.D10, out.D30, out.D60)
	applyReportedCoefficients(s, &out)

	return out
}

// applyReportedCoefficients fills Cu/Cc from the lab record when the
// curve could not supply them. Curve-derived values win: they come from
// the same measurements the rest of the summary is built on.
func applyReportedCoefficients(s *model.SampleInput, out *model.GrainSizeSummary) {
	if !out.Cu.Available && s.Cu != nil {
		out.Cu = model.IndexOf(*s.Cu)
	}
	if !out.Cc.Available && s.Cc != nil {
		out.Cc = model.IndexOf(*s.Cc)
	}
}

// finesSplit resolves the silt/clay split within fines. An explicit
// clay-fraction entry wins; otherwise the hydrometer curve must reach
// 0.002 mm, since extrapolating below the measured range is forbidden.
func (a *Analyzer) finesSplit(s *model.SampleInput, finesPct float64) (clay, silt model.Index) {
	switch {
	case s.ClayFraction != nil:
		clay = model.IndexOf(*s.ClayFraction)
	case len(s.Curve) > 0 && s.Curve[len(s.Curve)-1].ApertureMM <= model.ApertureClayMM:
		clay = model.IndexOf(percentAt(s.Curve, model.ApertureClayMM))
	default:
		reason := ReasonNoHydrometer
		if len(s.Curve) == 0 {
			reason = ReasonNoCurve
		}
		return model.IndexUnavailable(reason), model.IndexUnavailable(reason)
	}

	silt = model.IndexOf(finesPct - clay.Value)
	if silt.Value < 0 {
		silt.Value = 0
	}
	return clay, silt
}

// coefficients computes Cu = D60/D10 and Cc = D30^2/(D10*D60) from the
// interpolated diameters, propagating unavailability.
func coefficients(d10, d30, d60 model.Index) (cu, cc model.Index) {
	if !d10.Available || !d60.Available {
		cu = model.IndexUnavailable(ReasonNeedsD10D60)
	} else {
		cu = model.IndexOf(d60.Value / d10.Value)
	}
	if !d10.Available || !d30.Available || !d60.Available {
		cc = model.IndexUnavailable(ReasonNeedsAllDVals)
	} else {
		cc = model.IndexOf(d30.Value * d30.Value / (d10.Value * d60.Value))
	}
	return cu, cc
}

// percentAt interpolates the cumulative percent passing at aperture d,
// linear in log10(aperture). Beyond the measured range the nearest
// endpoint value is used: the curve is taken as complete, so nothing
// passes above the top sieve that did not pass it.
func percentAt(curve []model.SievePoint, d float64) float64 {
	n := len(curve)
	if n == 1 {
		return curve[0].PercentPassing
	}
	// Curve is descending by aperture; walk it reversed so the xs are
	// strictly increasing as gonum requires.
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := n - 1; i >= 0; i-- {
		xs = append(xs, math.Log10(curve[i].ApertureMM))
		ys = append(ys, curve[i].PercentPassing)
	}

	x := math.Log10(d)
	if x <= xs[0] {
		return ys[0]
	}
	if x >= xs[len(xs)-1] {
		return ys[len(ys)-1]
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		// Apertures are validated strictly decreasing upstream.
		panic(fmt.Sprintf("gradation: unfittable curve: %v", err))
	}
	return pl.Predict(x)
}

// diameterAt interpolates the grain diameter (mm) at the given
// cumulative percent passing, log-linear between the two bracketing
// measured points. Unavailable when the percentile is outside the
// measured range or too few distinct points exist.
func diameterAt(curve []model.SievePoint, percent float64) model.Index {
	// Reversed curve: percent ascending with aperture. Duplicate percent
	// values (flat curve segments) collapse to the first occurrence so
	// the xs stay strictly increasing.
	n := len(curve)
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := n - 1; i >= 0; i-- {
		p := curve[i].PercentPassing
		if len(xs) > 0 && p <= xs[len(xs)-1] {
			continue
		}
		xs = append(xs, p)
		ys = append(ys, math.Log10(curve[i].ApertureMM))
	}

	if len(xs) < 2 {
		return model.IndexUnavailable(ReasonTooFewPoints)
	}
	if percent < xs[0] || percent > xs[len(xs)-1] {
		return model.IndexUnavailable(ReasonOutsideRange)
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		panic(fmt.Sprintf("gradation: unfittable inverse curve: %v", err))
	}
	return model.IndexOf(math.Pow(10, pl.Predict(percent)))
}
