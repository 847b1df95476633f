// Package atterberg derives plasticity and consistency indices from raw
// Atterberg limit measurements, per IS 1498:1970 conventions.
package atterberg

import (
	"fmt"

	"github.com/soilgrade/soilgrade/internal/model"
)

// Unavailability reasons shared with tests and the classifier.
const (
	ReasonNoLiquidLimit  = "liquid limit not measured"
	ReasonNoPlasticLimit = "plastic limit not measured"
	ReasonNonPlastic     = "sample is non-plastic"
	ReasonNoMoisture     = "natural moisture content not measured"
	ReasonNoShrinkage    = "shrinkage limit not measured"
	ReasonNoClayFraction = "clay fraction not available"
	ReasonZeroPI         = "plasticity index is zero"
	ReasonZeroClay       = "clay fraction is zero"
)

// Calculator computes DerivedIndices from a sample. It is pure: every
// field is either a finite value or explicitly unavailable with a
// reason, and no precondition failure stops the remaining fields.
type Calculator struct{}

// NewCalculator creates a new index calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate derives the indices. clayPct is the percent finer than
// 0.002 mm as established by the grain-size analyzer; it only feeds
// Activity.
func (c *Calculator) Calculate(s *model.SampleInput, clayPct model.Index) model.DerivedIndices {
	var out model.DerivedIndices

	out.PlasticityIndex, out.NonPlastic = c.plasticityIndex(s)

	out.ConsistencyIndex = c.consistencyIndex(s, out)
	out.LiquidityIndex = c.liquidityIndex(s, out)
	out.ShrinkageIndex = c.shrinkageIndex(s)
	out.Activity = c.activity(out, clayPct)

	return out
}

// plasticityIndex computes PI = LL - PL. Non-plastic (NP) is a distinct
// state: the thread test failed, or LL - PL <= 0. A missing measurement
// is unavailable, not NP.
func (c *Calculator) plasticityIndex(s *model.SampleInput) (model.Index, bool) {
	if s.PlasticLimitNP {
		return model.IndexUnavailable(ReasonNonPlastic), true
	}
	if s.LiquidLimit == nil {
		return model.IndexUnavailable(ReasonNoLiquidLimit), false
	}
	if s.PlasticLimit == nil {
		return model.IndexUnavailable(ReasonNoPlasticLimit), false
	}

	pi := *s.LiquidLimit - *s.PlasticLimit
	if pi <= 0 {
		return model.IndexUnavailable(ReasonNonPlastic), true
	}
	return model.IndexOf(pi), false
}

// consistencyIndex computes CI = (LL - w) / PI.
func (c *Calculator) consistencyIndex(s *model.SampleInput, d model.DerivedIndices) model.Index {
	if reason, ok := requirePI(d); !ok {
		return model.IndexUnavailable(reason)
	}
	if s.MoistureContent == nil {
		return model.IndexUnavailable(ReasonNoMoisture)
	}
	return model.IndexOf((*s.LiquidLimit - *s.MoistureContent) / d.PlasticityIndex.Value)
}

// liquidityIndex computes LI = (w - PL) / PI.
func (c *Calculator) liquidityIndex(s *model.SampleInput, d model.DerivedIndices) model.Index {
	if reason, ok := requirePI(d); !ok {
		return model.IndexUnavailable(reason)
	}
	if s.MoistureContent == nil {
		return model.IndexUnavailable(ReasonNoMoisture)
	}
	return model.IndexOf((*s.MoistureContent - *s.PlasticLimit) / d.PlasticityIndex.Value)
}

// shrinkageIndex computes SI = PL - SL.
func (c *Calculator) shrinkageIndex(s *model.SampleInput) model.Index {
	if s.PlasticLimit == nil {
		return model.IndexUnavailable(ReasonNoPlasticLimit)
	}
	if s.ShrinkageLimit == nil {
		return model.IndexUnavailable(ReasonNoShrinkage)
	}
	return model.IndexOf(*s.PlasticLimit - *s.ShrinkageLimit)
}

// activity computes PI / % clay.
func (c *Calculator) activity(d model.DerivedIndices, clayPct model.Index) model.Index {
	if reason, ok := requirePI(d); !ok {
		return model.IndexUnavailable(reason)
	}
	if !clayPct.Available {
		reason := clayPct.Reason
		if reason == "" {
			reason = ReasonNoClayFraction
		}
		return model.IndexUnavailable(reason)
	}
	if clayPct.Value <= 0 {
		return model.IndexUnavailable(ReasonZeroClay)
	}
	return model.IndexOf(d.PlasticityIndex.Value / clayPct.Value)
}

// requirePI guards the PI divisions. Returns ok=false with the reason
// when PI cannot serve as a divisor.
func requirePI(d model.DerivedIndices) (string, bool) {
	if d.NonPlastic {
		return ReasonNonPlastic, false
	}
	if !d.PlasticityIndex.Available {
		return fmt.Sprintf("requires plasticity index (%s)", d.PlasticityIndex.Reason), false
	}
	if d.PlasticityIndex.Value == 0 {
		return ReasonZeroPI, false
	}
	return "", true
}
