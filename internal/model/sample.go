package model

import "fmt"

// Standard IS sieve boundaries (mm) used to split the grain-size curve
// into gravel, sand and fines fractions.
const (
	ApertureGravelMM = 4.75  // gravel/sand boundary
	ApertureFinesMM  = 0.075 // sand/fines boundary
	ApertureClayMM   = 0.002 // silt/clay boundary (hydrometer)
)

// FractionSumTolerance is the allowed deviation from 100% when
// gravel/sand/fines fractions are entered directly.
const FractionSumTolerance = 0.5

// SievePoint is one measured point on the grain-size curve.
type SievePoint struct {
	ApertureMM     float64 `json:"aperture_mm" yaml:"aperture_mm"`         // sieve or hydrometer particle size
	PercentPassing float64 `json:"percent_passing" yaml:"percent_passing"` // cumulative percent finer
}

// Fractions are directly measured gravel/sand/fines percentages,
// an alternative to a full sieve curve.
type Fractions struct {
	GravelPct float64 `json:"gravel_pct" yaml:"gravel_pct"` // > 4.75 mm
	SandPct   float64 `json:"sand_pct" yaml:"sand_pct"`     // 4.75 - 0.075 mm
	FinesPct  float64 `json:"fines_pct" yaml:"fines_pct"`   // < 0.075 mm
}

// SampleInput is the raw laboratory record for one soil sample.
// Percentages are in [0,100]; limits are percent moisture content;
// apertures are millimeters. Optional measurements are nil when absent.
type SampleInput struct {
	ID string `json:"id,omitempty" yaml:"id,omitempty"` // caller-assigned sample identifier

	Curve     []SievePoint `json:"curve,omitempty" yaml:"curve,omitempty"`         // ordered by descending aperture
	Fractions *Fractions   `json:"fractions,omitempty" yaml:"fractions,omitempty"` // alternative to Curve

	LiquidLimit     *float64 `json:"liquid_limit,omitempty" yaml:"liquid_limit,omitempty"`
	PlasticLimit    *float64 `json:"plastic_limit,omitempty" yaml:"plastic_limit,omitempty"`
	ShrinkageLimit  *float64 `json:"shrinkage_limit,omitempty" yaml:"shrinkage_limit,omitempty"`
	MoistureContent *float64 `json:"moisture_content,omitempty" yaml:"moisture_content,omitempty"` // natural moisture content w

	// PlasticLimitNP marks a sample whose plastic limit test failed
	// outright (thread test could not be performed). Distinct from
	// PlasticLimit being nil, which means the test was not run.
	PlasticLimitNP bool `json:"plastic_limit_np,omitempty" yaml:"plastic_limit_np,omitempty"`

	// ClayFraction overrides the hydrometer-derived percent finer than
	// 0.002 mm, for records where only the clay fraction was reported.
	ClayFraction *float64 `json:"clay_fraction,omitempty" yaml:"clay_fraction,omitempty"`

	// Cu and Cc are lab-reported gradation coefficients, for records
	// that carry the coefficients but not the full sieve curve. Used
	// only when the curve cannot supply them.
	Cu *float64 `json:"cu,omitempty" yaml:"cu,omitempty"`
	Cc *float64 `json:"cc,omitempty" yaml:"cc,omitempty"`

	// Organic is a caller-supplied flag (odour/colour/lab judgement);
	// the engine never infers it.
	Organic bool `json:"organic,omitempty" yaml:"organic,omitempty"`
}

// Validate checks the structural invariants of the record. A non-nil
// return is always a *MalformedInputError; nothing downstream runs on a
// sample that fails here.
func (s *SampleInput) Validate() error {
	if len(s.Curve) == 0 && s.Fractions == nil {
		return NewMalformedInput("curve", "no grain-size data: provide a sieve curve or explicit fractions")
	}

	for i, p := range s.Curve {
		if p.ApertureMM <= 0 {
			return NewMalformedInput("curve", fmt.Sprintf("point %d: aperture %.4g mm must be positive", i, p.ApertureMM))
		}
		if p.PercentPassing < 0 || p.PercentPassing > 100 {
			return NewMalformedInput("curve", fmt.Sprintf("point %d: percent passing %.4g outside [0,100]", i, p.PercentPassing))
		}
		if i > 0 {
			prev := s.Curve[i-1]
			if p.ApertureMM >= prev.ApertureMM {
				return NewMalformedInput("curve", fmt.Sprintf("point %d: apertures must strictly decrease (%.4g >= %.4g)", i, p.ApertureMM, prev.ApertureMM))
			}
			if p.PercentPassing > prev.PercentPassing {
				return NewMalformedInput("curve", fmt.Sprintf("point %d: percent passing must not increase as aperture decreases (%.4g > %.4g)", i, p.PercentPassing, prev.PercentPassing))
			}
		}
	}

	if f := s.Fractions; f != nil {
		for _, v := range []struct {
			name string
			pct  float64
		}{
			{"gravel_pct", f.GravelPct},
			{"sand_pct", f.SandPct},
			{"fines_pct", f.FinesPct},
		} {
			if v.pct < 0 || v.pct > 100 {
				return NewMalformedInput("fractions", fmt.Sprintf("%s %.4g outside [0,100]", v.name, v.pct))
			}
		}
		sum := f.GravelPct + f.SandPct + f.FinesPct
		if sum < 100-FractionSumTolerance || sum > 100+FractionSumTolerance {
			return NewMalformedInput("fractions", fmt.Sprintf("fractions sum to %.4g, expected 100 within ±%.1f", sum, FractionSumTolerance))
		}
	}

	for _, v := range []struct {
		name string
		val  *float64
	}{
		{"liquid_limit", s.LiquidLimit},
		{"plastic_limit", s.PlasticLimit},
		{"shrinkage_limit", s.ShrinkageLimit},
		{"moisture_content", s.MoistureContent},
	} {
		if v.val != nil && *v.val < 0 {
			return NewMalformedInput(v.name, fmt.Sprintf("%.4g must be non-negative", *v.val))
		}
	}

	if s.ClayFraction != nil && (*s.ClayFraction < 0 || *s.ClayFraction > 100) {
		return NewMalformedInput("clay_fraction", fmt.Sprintf("%.4g outside [0,100]", *s.ClayFraction))
	}

	if s.Cu != nil && *s.Cu <= 0 {
		return NewMalformedInput("cu", fmt.Sprintf("%.4g must be positive", *s.Cu))
	}
	if s.Cc != nil && *s.Cc <= 0 {
		return NewMalformedInput("cc", fmt.Sprintf("%.4g must be positive", *s.Cc))
	}

	// LL < PL is a lab error, not a non-plastic result. LL == PL is
	// legitimate and handled as non-plastic by the index calculator.
	if s.LiquidLimit != nil && s.PlasticLimit != nil && *s.LiquidLimit < *s.PlasticLimit {
		return NewMalformedInput("plastic_limit", fmt.Sprintf("plastic limit %.4g exceeds liquid limit %.4g", *s.PlasticLimit, *s.LiquidLimit))
	}

	return nil
}

// Float returns a pointer to v, for building SampleInput literals.
func Float(v float64) *float64 {
	return &v
}
