// Package chart places a (liquid limit, plasticity index) point on the
// IS 1498:1970 plasticity chart relative to the A-line and U-line.
package chart

import (
	"math"

	"github.com/soilgrade/soilgrade/internal/model"
)

// A-line: PI = ALineSlope * (LL - ALineOffset), defined for LL >= ALineMinLL.
// U-line: PI = ULineSlope * (LL - ULineOffset), an upper plausibility bound.
const (
	ALineSlope  = 0.73
	ALineOffset = 20.0
	ALineMinLL  = 25.0

	ULineSlope  = 0.9
	ULineOffset = 8.0

	HighLLThreshold = 50.0
)

// Resolver positions chart points. epsilon is the PI tolerance within
// which a point counts as on a line, mapping to the standard's
// on-the-line tie-break rather than an arbitrary side.
type Resolver struct {
	epsilon float64
}

// NewResolver creates a resolver with the given on-line epsilon (PI
// points). Non-positive epsilon falls back to the default.
func NewResolver(epsilon float64) *Resolver {
	if epsilon <= 0 {
		epsilon = model.DefaultConfig().Engine.OnLineEpsilonPI
	}
	return &Resolver{epsilon: epsilon}
}

// Resolve places the point. The A-line is never extrapolated below
// LL = 20 into negative PI; its value is floored at zero, and points
// with LL below 25 are flagged as boundary-zone cases.
func (r *Resolver) Resolve(ll, pi float64) *model.ChartPosition {
	alinePI := math.Max(ALineSlope*(ll-ALineOffset), 0)
	ulinePI := math.Max(ULineSlope*(ll-ULineOffset), 0)

	pos := &model.ChartPosition{
		LiquidLimit:     ll,
		PlasticityIndex: pi,
		ALinePI:         alinePI,
		ULinePI:         ulinePI,
		ALine:           r.relativeTo(pi, alinePI),
		ULine:           r.relativeTo(pi, ulinePI),
		HighLL:          ll >= HighLLThreshold,
		BoundaryZone:    ll < ALineMinLL,
	}
	pos.AboveULine = pos.ULine == model.PositionAbove
	return pos
}

// relativeTo classifies pi against a line value with the epsilon band.
func (r *Resolver) relativeTo(pi, linePI float64) model.LinePosition {
	switch {
	case math.Abs(pi-linePI) <= r.epsilon:
		return model.PositionOn
	case pi > linePI:
		return model.PositionAbove
	default:
		return model.PositionBelow
	}
}
