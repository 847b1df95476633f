package model

// Index is a derived value that is either available or explicitly not,
// with the reason it could not be computed. Unavailable values are never
// silently zeroed.
type Index struct {
	Value     float64 `json:"value"`
	Available bool    `json:"available"`
	Reason    string  `json:"reason,omitempty"` // set only when unavailable
}

// IndexOf returns an available Index holding v.
func IndexOf(v float64) Index {
	return Index{Value: v, Available: true}
}

// IndexUnavailable returns an unavailable Index with the given reason.
func IndexUnavailable(reason string) Index {
	return Index{Available: false, Reason: reason}
}

// DerivedIndices holds the Atterberg-derived indices for a sample.
// NonPlastic is a distinct state from a plasticity index of zero: it is
// set when PL is missing or LL - PL <= 0, and routes the sample through
// the classifier's non-plastic branch.
type DerivedIndices struct {
	PlasticityIndex  Index `json:"plasticity_index"`  // PI = LL - PL
	NonPlastic       bool  `json:"non_plastic"`       // NP per IS convention
	ConsistencyIndex Index `json:"consistency_index"` // CI = (LL - w) / PI
	LiquidityIndex   Index `json:"liquidity_index"`   // LI = (w - PL) / PI
	ShrinkageIndex   Index `json:"shrinkage_index"`   // SI = PL - SL
	Activity         Index `json:"activity"`          // PI / % clay fraction
}

// Descriptors are descriptive classifications derived from the indices.
// They accompany the group symbol but never influence it.
type Descriptors struct {
	Consistency     string `json:"consistency,omitempty"`     // from CI: Very Soft .. Hard
	Toughness       string `json:"toughness,omitempty"`       // from PI
	Compressibility string `json:"compressibility,omitempty"` // from LL
	Expansion       string `json:"expansion,omitempty"`       // degree of expansion from LL and PI
	ActivityClass   string `json:"activity_class,omitempty"`  // Inactive / Normal / Active
}
