package classify

import (
	"testing"

	"github.com/soilgrade/soilgrade/internal/model"
)

func TestDeriveDescriptors_AllScales(t *testing.T) {
	ll := model.Float(40)
	d := model.DerivedIndices{
		PlasticityIndex:  model.IndexOf(20),
		ConsistencyIndex: model.IndexOf(0.6),
		Activity:         model.IndexOf(1.0),
	}

	got := DeriveDescriptors(d, ll)

	if got.Consistency != "Stiff" {
		t.Errorf("consistency: expected Stiff, got %q", got.Consistency)
	}
	if got.Toughness != "High" {
		t.Errorf("toughness: expected High, got %q", got.Toughness)
	}
	if got.Compressibility != "Intermediate" {
		t.Errorf("compressibility: expected Intermediate, got %q", got.Compressibility)
	}
	if got.Expansion != "Medium (Marginal)" {
		t.Errorf("expansion: expected Medium (Marginal), got %q", got.Expansion)
	}
	if got.ActivityClass != "Normal" {
		t.Errorf("activity: expected Normal, got %q", got.ActivityClass)
	}
}

func TestDeriveDescriptors_UnavailableInputsStayEmpty(t *testing.T) {
	d := model.DerivedIndices{
		PlasticityIndex:  model.IndexUnavailable("plastic limit not measured"),
		ConsistencyIndex: model.IndexUnavailable("moisture content not measured"),
		Activity:         model.IndexUnavailable("clay fraction unavailable"),
	}

	got := DeriveDescriptors(d, nil)

	if got != (model.Descriptors{}) {
		t.Errorf("expected empty descriptors, got %+v", got)
	}
}

func TestConsistencyClass_Boundaries(t *testing.T) {
	cases := []struct {
		ci   float64
		want string
	}{
		{-0.2, "Very Soft"},
		{0, "Very Soft"},
		{0.25, "Soft"},
		{0.5, "Medium Soft"},
		{0.75, "Stiff"},
		{1.0, "Very Stiff"},
		{1.3, "Hard"},
	}
	for _, tc := range cases {
		if got := consistencyClass(tc.ci); got != tc.want {
			t.Errorf("CI %v: expected %q, got %q", tc.ci, tc.want, got)
		}
	}
}

func TestExpansionClass_Scales(t *testing.T) {
	cases := []struct {
		ll, pi float64
		want   string
	}{
		{30, 10, "Low (Non-critical)"},
		{45, 20, "Medium (Marginal)"},
		{65, 30, "High (Critical)"},
		{80, 45, "Very High (Severe)"},
	}
	for _, tc := range cases {
		if got := expansionClass(tc.ll, tc.pi); got != tc.want {
			t.Errorf("LL %v PI %v: expected %q, got %q", tc.ll, tc.pi, tc.want, got)
		}
	}
}

func TestActivityClass_Boundaries(t *testing.T) {
	if got := activityClass(0.74); got != "Inactive" {
		t.Errorf("expected Inactive, got %q", got)
	}
	if got := activityClass(1.25); got != "Normal" {
		t.Errorf("expected Normal, got %q", got)
	}
	if got := activityClass(1.26); got != "Active" {
		t.Errorf("expected Active, got %q", got)
	}
}
