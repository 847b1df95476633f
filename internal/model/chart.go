package model

// LinePosition is the tri-state placement of a point relative to a
// plasticity-chart line. On-the-line is a distinct outcome, never forced
// to one side.
type LinePosition string

const (
	PositionAbove LinePosition = "above"
	PositionOn    LinePosition = "on"
	PositionBelow LinePosition = "below"
)

// ChartPosition places a (LL, PI) point on the IS 1498 plasticity chart.
type ChartPosition struct {
	LiquidLimit     float64 `json:"liquid_limit"`
	PlasticityIndex float64 `json:"plasticity_index"`

	ALine   LinePosition `json:"a_line"`    // relative to PI = 0.73 (LL - 20)
	ALinePI float64      `json:"a_line_pi"` // A-line PI at this LL

	ULine   LinePosition `json:"u_line"`    // relative to PI = 0.9 (LL - 8)
	ULinePI float64      `json:"u_line_pi"` // U-line PI at this LL

	HighLL bool `json:"high_ll"` // LL >= 50

	// BoundaryZone marks LL below 25, where the A-line is not defined
	// and the sample sits in the near-non-plastic corner of the chart.
	BoundaryZone bool `json:"boundary_zone"`

	// AboveULine flags an atypical point plotting above the U-line. It
	// is a plausibility warning, not a reclassification.
	AboveULine bool `json:"above_u_line"`
}
