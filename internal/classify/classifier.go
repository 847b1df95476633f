package classify

import (
	"fmt"

	"github.com/soilgrade/soilgrade/internal/model"
)

// Plasticity bounds of the borderline silty/clayey fines zone.
const (
	siltyFinesMaxPI  = 4.0
	clayeyFinesMinPI = 7.0
)

// Minimum uniformity coefficients for a well-graded gradation. IS 1498
// asks more spread of sands than of gravels.
const (
	wellGradedCuGravel = 4.0
	wellGradedCuSand   = 6.0
	wellGradedCcMin    = 1.0
	wellGradedCcMax    = 3.0
)

// Coarse fines band boundaries (percent fines).
const (
	cleanFinesMax    = 5.0
	dualBandFinesMax = 12.0
)

// Classifier applies the IS 1498:1970 decision tree. Deterministic and
// stateless: identical inputs always produce an identical result.
type Classifier struct {
	cfg model.EngineConfig
}

// NewClassifier creates a classifier with the given engine thresholds.
func NewClassifier(cfg model.EngineConfig) *Classifier {
	def := model.DefaultConfig().Engine
	if cfg.FinesDominancePct <= 0 {
		cfg.FinesDominancePct = def.FinesDominancePct
	}
	if cfg.FinesTieBreak == "" {
		cfg.FinesTieBreak = def.FinesTieBreak
	}
	return &Classifier{cfg: cfg}
}

// evaluation accumulates the trace while the tree is walked.
type evaluation struct {
	res model.ClassificationResult
}

func (e *evaluation) apply(rule model.RuleID, outcome, detail string) {
	e.res.Trace = append(e.res.Trace, model.TraceEntry{Rule: rule, Outcome: outcome, Detail: detail})
}

func (e *evaluation) warn(rule model.RuleID, outcome, detail, warning string) {
	e.apply(rule, outcome, detail)
	e.res.Warnings = append(e.res.Warnings, warning)
}

func (e *evaluation) indeterminate(reason string) model.ClassificationResult {
	e.apply(RuleIndeterminate, "indeterminate", reason)
	e.res.Primary = model.SymbolIndeterminate
	e.res.Indeterminate = true
	e.res.Reason = reason
	e.res.GroupName = "Indeterminate: " + reason
	return e.res
}

func (e *evaluation) conclude(primary, secondary model.Symbol, name string) model.ClassificationResult {
	e.res.Primary = primary
	e.res.Secondary = secondary
	e.res.GroupName = name
	return e.res
}

// Classify walks the tree. pos may be nil when the limits needed for a
// chart placement were unavailable; branches that need it terminate
// indeterminate rather than guessing.
func (c *Classifier) Classify(d model.DerivedIndices, g model.GrainSizeSummary, pos *model.ChartPosition, organic bool) model.ClassificationResult {
	e := &evaluation{}

	threshold := c.cfg.FinesDominancePct
	fine := g.FinesPct > threshold
	if g.FinesPct == threshold {
		fine = c.cfg.FinesTieBreak != "coarse"
		e.apply(RuleFinesDominance, tieOutcome(fine),
			fmt.Sprintf("fines %.1f%% exactly at the %.0f%% threshold, tie-break %q", g.FinesPct, threshold, c.cfg.FinesTieBreak))
	} else {
		e.apply(RuleFinesDominance, tieOutcome(fine),
			fmt.Sprintf("fines %.1f%% vs threshold %.0f%%", g.FinesPct, threshold))
	}

	if fine {
		return c.fineGrained(e, d, pos, organic)
	}
	return c.coarseGrained(e, d, g, pos)
}

func tieOutcome(fine bool) string {
	if fine {
		return "fine-grained"
	}
	return "coarse-grained"
}

// fineGrained resolves the CL/ML/CH/MH/OL/OH families.
func (c *Classifier) fineGrained(e *evaluation, d model.DerivedIndices, pos *model.ChartPosition, organic bool) model.ClassificationResult {
	if d.NonPlastic {
		// NP samples never face the A-line.
		e.apply(RuleFineNonPlastic, "ML", "sample is non-plastic; classified as silt without a chart placement")
		return e.conclude(model.SymbolML, "", model.SymbolML.Name()+" (non-plastic)")
	}
	if !d.PlasticityIndex.Available {
		return e.indeterminate("plasticity index unavailable: " + d.PlasticityIndex.Reason)
	}
	if pos == nil {
		return e.indeterminate("no plasticity chart placement: liquid limit not measured")
	}

	c.chartFlags(e, pos)

	rangeName := "low plasticity (LL < 50)"
	if pos.HighLL {
		rangeName = "high plasticity (LL >= 50)"
	}
	e.apply(RuleFineLLRange, rangeName, fmt.Sprintf("LL %.1f", pos.LiquidLimit))

	clay, silt := model.SymbolCL, model.SymbolML
	dualName := "Clayey silt of low plasticity (on the A-line)"
	if pos.HighLL {
		clay, silt = model.SymbolCH, model.SymbolMH
		dualName = "Clayey silt of high plasticity (on the A-line)"
	}

	switch pos.ALine {
	case model.PositionAbove:
		e.apply(RuleFineALine, string(clay), fmt.Sprintf("PI %.2f above A-line PI %.2f", pos.PlasticityIndex, pos.ALinePI))
		if organic {
			// Organic soils plot below the A-line; the flag does not
			// override a clay placement.
			e.warn(RuleFineOrganic, "ignored",
				"organic flag set but point plots above the A-line",
				"organic flag ignored: point plots above the A-line, which is inconsistent with organic soil")
		}
		return e.conclude(clay, "", clay.Name())

	case model.PositionOn:
		// The standard assigns on-the-line points a dual symbol rather
		// than forcing a side.
		e.apply(RuleFineALine, string(clay)+"-"+string(silt),
			fmt.Sprintf("PI %.2f on A-line PI %.2f (within epsilon)", pos.PlasticityIndex, pos.ALinePI))
		if organic {
			// Organic reclassification needs a below-the-line placement;
			// an on-the-line point does not provide one.
			e.warn(RuleFineOrganic, "ignored",
				"organic flag set but point sits on the A-line, not below it",
				"organic flag ignored: point sits on the A-line; organic soils plot below it")
		}
		return e.conclude(clay, silt, dualName)

	default: // below
		e.apply(RuleFineALine, string(silt), fmt.Sprintf("PI %.2f below A-line PI %.2f", pos.PlasticityIndex, pos.ALinePI))
		if organic {
			org := model.SymbolOL
			if pos.HighLL {
				org = model.SymbolOH
			}
			e.apply(RuleFineOrganic, string(org), "organic flag set; silt reclassified as organic")
			return e.conclude(org, "", org.Name())
		}
		return e.conclude(silt, "", silt.Name())
	}
}

// coarseGrained resolves the gravel/sand families and their gradation
// and fines subtypes.
func (c *Classifier) coarseGrained(e *evaluation, d model.DerivedIndices, g model.GrainSizeSummary, pos *model.ChartPosition) model.ClassificationResult {
	gravel := g.GravelPct > g.SandPct
	detail := fmt.Sprintf("gravel %.1f%% vs sand %.1f%%", g.GravelPct, g.SandPct)
	if g.GravelPct == g.SandPct {
		detail += " (tie goes to sand)"
	}
	family := "sand"
	if gravel {
		family = "gravel"
	}
	e.apply(RuleCoarseDominance, family, detail)

	switch {
	case g.FinesPct < cleanFinesMax:
		e.apply(RuleCoarseFinesBand, "clean", fmt.Sprintf("fines %.1f%% < %.0f%%", g.FinesPct, cleanFinesMax))
		grad, res, failed := c.gradationSymbol(e, g, gravel)
		if failed {
			return res
		}
		return e.conclude(grad, "", grad.Name())

	case g.FinesPct <= dualBandFinesMax:
		// The 5-12% band always yields a dual symbol.
		e.apply(RuleCoarseFinesBand, "dual", fmt.Sprintf("fines %.1f%% in [%.0f%%, %.0f%%]", g.FinesPct, cleanFinesMax, dualBandFinesMax))
		grad, res, failed := c.gradationSymbol(e, g, gravel)
		if failed {
			return res
		}
		fines, _, res, failed := c.finesSymbol(e, d, pos, gravel)
		if failed {
			return res
		}
		return e.conclude(grad, fines, dualBandName(grad, fines))

	default:
		e.apply(RuleCoarseFinesBand, "fines-bearing", fmt.Sprintf("fines %.1f%% > %.0f%%", g.FinesPct, dualBandFinesMax))
		primary, secondary, res, failed := c.finesSymbol(e, d, pos, gravel)
		if failed {
			return res
		}
		if secondary != "" {
			return e.conclude(primary, secondary, borderlineFinesName(gravel))
		}
		return e.conclude(primary, "", primary.Name())
	}
}

// gradationSymbol decides well- vs poorly graded from Cu/Cc. failed is
// true when the result is already terminal (indeterminate).
func (c *Classifier) gradationSymbol(e *evaluation, g model.GrainSizeSummary, gravel bool) (model.Symbol, model.ClassificationResult, bool) {
	if !g.Cu.Available || !g.Cc.Available {
		reason := g.Cu.Reason
		if g.Cu.Available {
			reason = g.Cc.Reason
		}
		return "", e.indeterminate("gradation coefficients unavailable: " + reason), true
	}

	cuMin := wellGradedCuSand
	if gravel {
		cuMin = wellGradedCuGravel
	}
	well := g.Cu.Value >= cuMin && g.Cc.Value >= wellGradedCcMin && g.Cc.Value <= wellGradedCcMax
	detail := fmt.Sprintf("Cu %.2f (min %.0f), Cc %.2f (range [%.0f,%.0f])", g.Cu.Value, cuMin, g.Cc.Value, wellGradedCcMin, wellGradedCcMax)

	var sym model.Symbol
	switch {
	case gravel && well:
		sym = model.SymbolGW
	case gravel:
		sym = model.SymbolGP
	case well:
		sym = model.SymbolSW
	default:
		sym = model.SymbolSP
	}
	e.apply(RuleCoarseGradation, string(sym), detail)
	return sym, model.ClassificationResult{}, false
}

// finesSymbol decides silty (M) vs clayey (C) fines from the plasticity
// of the fines. A borderline placement (on the A-line, or above it with
// PI in the 4-7 zone) returns both symbols.
func (c *Classifier) finesSymbol(e *evaluation, d model.DerivedIndices, pos *model.ChartPosition, gravel bool) (model.Symbol, model.Symbol, model.ClassificationResult, bool) {
	silty, clayey := model.SymbolSM, model.SymbolSC
	if gravel {
		silty, clayey = model.SymbolGM, model.SymbolGC
	}

	if d.NonPlastic {
		e.apply(RuleCoarseFinesType, string(silty), "fines are non-plastic")
		return silty, "", model.ClassificationResult{}, false
	}
	if !d.PlasticityIndex.Available {
		return "", "", e.indeterminate("fines plasticity unavailable: " + d.PlasticityIndex.Reason), true
	}
	if pos == nil {
		return "", "", e.indeterminate("no plasticity chart placement for the fines: liquid limit not measured"), true
	}

	c.chartFlags(e, pos)

	pi := d.PlasticityIndex.Value
	switch {
	case pi < siltyFinesMaxPI:
		e.apply(RuleCoarseFinesType, string(silty), fmt.Sprintf("PI %.2f < %.0f", pi, siltyFinesMaxPI))
		return silty, "", model.ClassificationResult{}, false

	case pos.ALine == model.PositionBelow:
		e.apply(RuleCoarseFinesType, string(silty), fmt.Sprintf("PI %.2f below A-line PI %.2f", pi, pos.ALinePI))
		return silty, "", model.ClassificationResult{}, false

	case pos.ALine == model.PositionOn || pi <= clayeyFinesMinPI:
		e.apply(RuleCoarseFinesType, string(silty)+"-"+string(clayey),
			fmt.Sprintf("borderline fines: PI %.2f, A-line position %q", pi, pos.ALine))
		return silty, clayey, model.ClassificationResult{}, false

	default: // above the A-line with PI > 7
		e.apply(RuleCoarseFinesType, string(clayey), fmt.Sprintf("PI %.2f above A-line PI %.2f", pi, pos.ALinePI))
		return clayey, "", model.ClassificationResult{}, false
	}
}

// chartFlags records the boundary-zone and U-line plausibility rules.
// They annotate, never redirect, the tree.
func (c *Classifier) chartFlags(e *evaluation, pos *model.ChartPosition) {
	if pos.BoundaryZone {
		e.warn(RuleChartBoundary, "boundary-zone",
			fmt.Sprintf("LL %.1f below %.0f", pos.LiquidLimit, 25.0),
			fmt.Sprintf("liquid limit %.1f is below 25: the A-line placement is a boundary-zone judgement", pos.LiquidLimit))
	}
	if pos.AboveULine {
		e.warn(RuleChartULine, "above-u-line",
			fmt.Sprintf("PI %.2f above U-line PI %.2f", pos.PlasticityIndex, pos.ULinePI),
			fmt.Sprintf("point (LL %.1f, PI %.2f) plots above the U-line; atypical for natural soils, check the limit tests", pos.LiquidLimit, pos.PlasticityIndex))
	}
}

func dualBandName(grad, fines model.Symbol) string {
	kind := "silty"
	if fines == model.SymbolSC || fines == model.SymbolGC {
		kind = "clayey"
	}
	return grad.Name() + " with " + kind + " fines"
}

func borderlineFinesName(gravel bool) string {
	if gravel {
		return "Silty to clayey gravel (borderline fines)"
	}
	return "Silty to clayey sand (borderline fines)"
}
