// Package classify walks the IS 1498:1970 decision tree from the
// derived records to a group symbol. The tree is an explicit ordered
// set of tagged rules; every rule that fires is appended to the result
// trace so a reader can see why a symbol was reached.
package classify

import "github.com/soilgrade/soilgrade/internal/model"

// Rule identifiers, in the order the tree consults them.
const (
	RuleFinesDominance  model.RuleID = "fines-dominance"   // fine- vs coarse-grained split at 50% fines
	RuleFineNonPlastic  model.RuleID = "fine-non-plastic"  // NP samples bypass the plasticity chart
	RuleFineLLRange     model.RuleID = "fine-ll-range"     // low (LL < 50) vs high plasticity
	RuleFineALine       model.RuleID = "fine-a-line"       // clay vs silt family by A-line position
	RuleFineOrganic     model.RuleID = "fine-organic"      // organic flag converts silt to OL/OH
	RuleCoarseDominance model.RuleID = "coarse-dominance"  // gravel vs sand by larger fraction
	RuleCoarseFinesBand model.RuleID = "coarse-fines-band" // <5% clean, 5-12% dual, >12% fines-bearing
	RuleCoarseGradation model.RuleID = "coarse-gradation"  // well- vs poorly graded by Cu/Cc
	RuleCoarseFinesType model.RuleID = "coarse-fines-type" // silty vs clayey fines by plasticity
	RuleChartBoundary   model.RuleID = "chart-boundary"    // LL below 25: A-line boundary zone
	RuleChartULine      model.RuleID = "chart-u-line"      // point above U-line: plausibility flag
	RuleIndeterminate   model.RuleID = "indeterminate"     // required branch input unavailable
)

// RuleInfo describes one rule variant for enumeration (the `rules`
// command and branch-coverage tests).
type RuleInfo struct {
	ID          model.RuleID `json:"id"`
	Description string       `json:"description"`
}

// AllRules returns every rule of the decision tree in consultation order.
func AllRules() []RuleInfo {
	return []RuleInfo{
		{RuleFinesDominance, "route to the fine-grained path when fines >= 50% (tie at exactly 50% is configurable, default fine)"},
		{RuleFineNonPlastic, "non-plastic fine-grained samples classify as ML without an A-line comparison"},
		{RuleFineLLRange, "split fine-grained samples at LL = 50 into low and high plasticity"},
		{RuleFineALine, "above the A-line is clay (C), below is silt (M) or organic (O); on the line is the designated dual symbol"},
		{RuleFineOrganic, "the caller-supplied organic flag turns a below-A-line silt into OL/OH"},
		{RuleCoarseDominance, "gravel fraction greater than sand is gravel (G), otherwise sand (S)"},
		{RuleCoarseFinesBand, "fines < 5% is clean, 5-12% always yields a dual symbol, > 12% is fines-bearing"},
		{RuleCoarseGradation, "well-graded needs Cu >= 4 (gravel) or >= 6 (sand) and Cc in [1,3]"},
		{RuleCoarseFinesType, "fines are silty (M) below the A-line or PI < 4, clayey (C) above it with PI > 7, borderline otherwise"},
		{RuleChartBoundary, "LL below 25 sits in the near-non-plastic boundary zone of the chart"},
		{RuleChartULine, "a point above the U-line is atypical and flagged, not reclassified"},
		{RuleIndeterminate, "a branch whose required input is unavailable terminates with an indeterminate result, never a guess"},
	}
}
