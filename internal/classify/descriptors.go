package classify

import "github.com/soilgrade/soilgrade/internal/model"

// DeriveDescriptors builds the descriptive classifications that
// accompany the group symbol: consistency, toughness, compressibility,
// degree of expansion and activity class. Each is empty when its inputs
// are unavailable, and none of them feeds back into the symbol decision.
func DeriveDescriptors(d model.DerivedIndices, ll *float64) model.Descriptors {
	var out model.Descriptors

	if d.ConsistencyIndex.Available {
		out.Consistency = consistencyClass(d.ConsistencyIndex.Value)
	}
	if d.PlasticityIndex.Available {
		out.Toughness = toughnessClass(d.PlasticityIndex.Value)
	}
	if ll != nil {
		out.Compressibility = compressibilityClass(*ll)
		if d.PlasticityIndex.Available {
			out.Expansion = expansionClass(*ll, d.PlasticityIndex.Value)
		}
	}
	if d.Activity.Available {
		out.ActivityClass = activityClass(d.Activity.Value)
	}

	return out
}

// consistencyClass maps CI to the field consistency scale.
func consistencyClass(ci float64) string {
	switch {
	case ci <= 0:
		return "Very Soft"
	case ci <= 0.25:
		return "Soft"
	case ci <= 0.50:
		return "Medium Soft"
	case ci <= 0.75:
		return "Stiff"
	case ci <= 1.00:
		return "Very Stiff"
	default:
		return "Hard"
	}
}

func toughnessClass(pi float64) string {
	switch {
	case pi < 7:
		return "Low"
	case pi <= 17:
		return "Medium"
	default:
		return "High"
	}
}

func compressibilityClass(ll float64) string {
	switch {
	case ll < 35:
		return "Low"
	case ll <= 50:
		return "Intermediate"
	default:
		return "High"
	}
}

// expansionClass is the degree-of-expansion judgement from LL and PI.
func expansionClass(ll, pi float64) string {
	switch {
	case ll < 35 && pi < 12:
		return "Low (Non-critical)"
	case ll <= 50 && pi <= 23:
		return "Medium (Marginal)"
	case ll <= 70 && pi <= 32:
		return "High (Critical)"
	default:
		return "Very High (Severe)"
	}
}

func activityClass(a float64) string {
	switch {
	case a < 0.75:
		return "Inactive"
	case a <= 1.25:
		return "Normal"
	default:
		return "Active"
	}
}
