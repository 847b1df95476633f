package model

import "testing"

func validCurveSample() *SampleInput {
	return &SampleInput{
		Curve: []SievePoint{
			{ApertureMM: 4.75, PercentPassing: 100},
			{ApertureMM: 0.425, PercentPassing: 70},
			{ApertureMM: 0.075, PercentPassing: 40},
		},
		LiquidLimit:  Float(42),
		PlasticLimit: Float(21),
	}
}

func TestSampleInput_Validate_Accepts(t *testing.T) {
	if err := validCurveSample().Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	fractions := &SampleInput{Fractions: &Fractions{GravelPct: 60, SandPct: 37, FinesPct: 3}}
	if err := fractions.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	// The sum tolerance absorbs rounding in lab records.
	rounded := &SampleInput{Fractions: &Fractions{GravelPct: 60.2, SandPct: 37.1, FinesPct: 3.1}}
	if err := rounded.Validate(); err != nil {
		t.Errorf("sum within tolerance must pass: %v", err)
	}

	// LL == PL is a legitimate non-plastic record, not an error.
	np := validCurveSample()
	np.LiquidLimit = Float(25)
	np.PlasticLimit = Float(25)
	if err := np.Validate(); err != nil {
		t.Errorf("LL == PL must pass: %v", err)
	}
}

func TestSampleInput_Validate_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*SampleInput)
		field  string
	}{
		{
			"no grain-size data",
			func(s *SampleInput) { s.Curve = nil },
			"curve",
		},
		{
			"non-positive aperture",
			func(s *SampleInput) { s.Curve[2].ApertureMM = 0 },
			"curve",
		},
		{
			"percent outside range",
			func(s *SampleInput) { s.Curve[0].PercentPassing = 101 },
			"curve",
		},
		{
			"apertures not decreasing",
			func(s *SampleInput) { s.Curve[1].ApertureMM = 4.75 },
			"curve",
		},
		{
			"percent increasing down the curve",
			func(s *SampleInput) { s.Curve[2].PercentPassing = 75 },
			"curve",
		},
		{
			"fractions off by more than tolerance",
			func(s *SampleInput) {
				s.Curve = nil
				s.Fractions = &Fractions{GravelPct: 60, SandPct: 37, FinesPct: 5}
			},
			"fractions",
		},
		{
			"negative limit",
			func(s *SampleInput) { s.LiquidLimit = Float(-1) },
			"liquid_limit",
		},
		{
			"plastic limit above liquid limit",
			func(s *SampleInput) {
				s.LiquidLimit = Float(20)
				s.PlasticLimit = Float(30)
			},
			"plastic_limit",
		},
		{
			"clay fraction outside range",
			func(s *SampleInput) { s.ClayFraction = Float(120) },
			"clay_fraction",
		},
		{
			"non-positive reported Cu",
			func(s *SampleInput) { s.Cu = Float(0) },
			"cu",
		},
		{
			"negative reported Cc",
			func(s *SampleInput) { s.Cc = Float(-1) },
			"cc",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := validCurveSample()
			tc.mutate(s)

			err := s.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !IsMalformedInput(err) {
				t.Fatalf("expected *MalformedInputError, got %T", err)
			}
			malformed, ok := err.(*MalformedInputError)
			if !ok {
				t.Fatalf("unexpected error type %T", err)
			}
			if malformed.Field != tc.field {
				t.Errorf("expected field %q, got %q", tc.field, malformed.Field)
			}
		})
	}
}

func TestClassificationResult_SymbolString(t *testing.T) {
	single := ClassificationResult{Primary: SymbolCL}
	if got := single.SymbolString(); got != "CL" {
		t.Errorf("expected CL, got %q", got)
	}

	dual := ClassificationResult{Primary: SymbolSW, Secondary: SymbolSM}
	if got := dual.SymbolString(); got != "SW-SM" {
		t.Errorf("expected SW-SM, got %q", got)
	}
}

func TestSymbol_Name(t *testing.T) {
	if got := SymbolCL.Name(); got == "" || got == string(SymbolCL) {
		t.Errorf("expected a descriptive group name, got %q", got)
	}
	if got := Symbol("XX").Name(); got != "XX" {
		t.Errorf("unknown symbols fall back to themselves, got %q", got)
	}
}
