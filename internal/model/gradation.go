package model

// GradationSource records where the fraction split came from.
type GradationSource string

const (
	GradationFromCurve     GradationSource = "curve"     // interpolated from the sieve curve
	GradationFromFractions GradationSource = "fractions" // explicit gravel/sand/fines entry
)

// GrainSizeSummary is the derived grain-size distribution for a sample.
// D-values and Cu/Cc are unavailable when the needed percentile falls
// outside the measured range (extrapolation is forbidden), and are not
// computed at all for fine-grained samples (fines >= 50%), where they
// carry no classification weight.
type GrainSizeSummary struct {
	Source GradationSource `json:"source"`

	GravelPct float64 `json:"gravel_pct"` // > 4.75 mm
	SandPct   float64 `json:"sand_pct"`   // 4.75 - 0.075 mm
	FinesPct  float64 `json:"fines_pct"`  // < 0.075 mm

	// Silt/clay split within fines, available only with hydrometer data
	// reaching 0.002 mm (or an explicit clay-fraction entry).
	SiltPct Index `json:"silt_pct"`
	ClayPct Index `json:"clay_pct"`

	// Interpolated grain diameters (mm) at 10/30/60% cumulative passing.
	D10 Index `json:"d10"`
	D30 Index `json:"d30"`
	D60 Index `json:"d60"`

	Cu Index `json:"cu"` // coefficient of uniformity, D60/D10
	Cc Index `json:"cc"` // coefficient of curvature, D30^2/(D10*D60)
}

// FineGrained reports whether the fines fraction reaches the given
// dominance threshold (50% under IS 1498 convention).
func (g *GrainSizeSummary) FineGrained(threshold float64) bool {
	return g.FinesPct >= threshold
}
