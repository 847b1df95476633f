package model

import "time"

// Symbol is an IS 1498:1970 group symbol.
type Symbol string

const (
	SymbolGW Symbol = "GW"
	SymbolGP Symbol = "GP"
	SymbolGM Symbol = "GM"
	SymbolGC Symbol = "GC"
	SymbolSW Symbol = "SW"
	SymbolSP Symbol = "SP"
	SymbolSM Symbol = "SM"
	SymbolSC Symbol = "SC"
	SymbolCL Symbol = "CL"
	SymbolCH Symbol = "CH"
	SymbolML Symbol = "ML"
	SymbolMH Symbol = "MH"
	SymbolOL Symbol = "OL"
	SymbolOH Symbol = "OH"

	// SymbolIndeterminate marks a sample the decision tree could not
	// classify because a required branch input was unavailable.
	SymbolIndeterminate Symbol = "indeterminate"
)

var groupNames = map[Symbol]string{
	SymbolGW: "Well-graded gravel",
	SymbolGP: "Poorly graded gravel",
	SymbolGM: "Silty gravel",
	SymbolGC: "Clayey gravel",
	SymbolSW: "Well-graded sand",
	SymbolSP: "Poorly graded sand",
	SymbolSM: "Silty sand",
	SymbolSC: "Clayey sand",
	SymbolCL: "Inorganic clay of low plasticity",
	SymbolCH: "Inorganic clay of high plasticity",
	SymbolML: "Inorganic silt of low plasticity",
	SymbolMH: "Inorganic silt of high plasticity",
	SymbolOL: "Organic silt or clay of low plasticity",
	SymbolOH: "Organic silt or clay of high plasticity",
}

// Name returns the descriptive group name for the symbol.
func (s Symbol) Name() string {
	if n, ok := groupNames[s]; ok {
		return n
	}
	return string(s)
}

// RuleID tags one rule variant of the classification decision tree.
type RuleID string

// TraceEntry records one decision-tree rule that fired, in order.
type TraceEntry struct {
	Rule    RuleID `json:"rule"`
	Outcome string `json:"outcome"`          // which way the branch went
	Detail  string `json:"detail,omitempty"` // the values that drove it
}

// ClassificationResult is the terminal output of the decision tree.
type ClassificationResult struct {
	Primary   Symbol `json:"primary"`             // group symbol, or SymbolIndeterminate
	Secondary Symbol `json:"secondary,omitempty"` // set for dual/borderline cases
	GroupName string `json:"group_name"`

	Indeterminate bool   `json:"indeterminate"`
	Reason        string `json:"reason,omitempty"` // why no leaf was reachable

	Trace    []TraceEntry `json:"trace"`
	Warnings []string     `json:"warnings,omitempty"` // U-line and similar plausibility flags
}

// SymbolString renders the combined symbol, e.g. "SW-SM" for duals.
func (r *ClassificationResult) SymbolString() string {
	if r.Secondary != "" {
		return string(r.Primary) + "-" + string(r.Secondary)
	}
	return string(r.Primary)
}

// Report bundles the classification with every intermediate record, so
// downstream renderers and exporters can show why a result was reached.
// All fields are read-only once built.
type Report struct {
	SampleID     string    `json:"sample_id,omitempty"`
	ClassifiedAt time.Time `json:"classified_at"`

	Input          SampleInput          `json:"input"`
	Indices        DerivedIndices       `json:"indices"`
	Gradation      GrainSizeSummary     `json:"gradation"`
	Chart          *ChartPosition       `json:"chart,omitempty"` // nil for non-plastic or limit-less samples
	Classification ClassificationResult `json:"classification"`
	Descriptors    Descriptors          `json:"descriptors"`

	LLM *LLMSummary `json:"llm,omitempty"` // optional narrative, never affects classification
}

// LLMSummary contains an optional LLM-generated narrative for a report.
// It is produced after classification and never feeds back into it.
type LLMSummary struct {
	Enabled   bool     `json:"enabled"`
	Provider  string   `json:"provider,omitempty"`
	Model     string   `json:"model,omitempty"`
	SummaryMD string   `json:"summary_md,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}
