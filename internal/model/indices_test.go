package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestIndex_MarshalKeepsZeroValue(t *testing.T) {
	// A legitimate zero (CI of a sample at its liquid limit, 0% silt)
	// must survive into the exported JSON alongside Available.
	data, err := json.Marshal(IndexOf(0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := string(data)
	if !strings.Contains(got, `"value":0`) {
		t.Errorf("zero value missing from JSON: %s", got)
	}
	if !strings.Contains(got, `"available":true`) {
		t.Errorf("availability missing from JSON: %s", got)
	}
}

func TestIndex_MarshalOmitsEmptyReason(t *testing.T) {
	data, err := json.Marshal(IndexOf(1.5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(data), "reason") {
		t.Errorf("available index must not carry a reason: %s", data)
	}
}
