package appraisal

import (
	"testing"
	"time"
)

func TestValidateCriteriaWeights(t *testing.T) {
	cases := []struct {
		name    string
		weights []float64
		wantErr bool
	}{
		{"sums to 100", []float64{50, 50}, false},
		{"sums to 100 with drift", []float64{33.33, 33.33, 33.34}, false},
		{"qualitative zero sum", []float64{0, 0, 0}, false},
		{"no criteria", nil, false},
		{"sums to 90", []float64{40, 50}, true},
		{"sums to 110", []float64{60, 50}, true},
		{"single partial weight", []float64{1}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			criteria := make([]CriterionWeight, len(tc.weights))
			for i, w := range tc.weights {
				criteria[i] = CriterionWeight{Name: "c", Weight: w}
			}
			err := ValidateCriteriaWeights(criteria)
			if tc.wantErr && err == nil {
				t.Fatalf("expected weight error for %v", tc.weights)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error for %v: %v", tc.weights, err)
			}
		})
	}
}

func TestResolveDueDate(t *testing.T) {
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	managerDue := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	override := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)

	if got := ResolveDueDate(&override, &managerDue, end); !got.Equal(override) {
		t.Fatalf("override should win, got %v", got)
	}
	if got := ResolveDueDate(nil, &managerDue, end); !got.Equal(managerDue) {
		t.Fatalf("manager due should win over cycle end, got %v", got)
	}
	if got := ResolveDueDate(nil, nil, end); !got.Equal(end) {
		t.Fatalf("cycle end is the fallback, got %v", got)
	}
}

func TestValidateCycleDates(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	if err := ValidateCycleDates(start, end); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateCycleDates(end, start); err == nil {
		t.Fatal("expected error for reversed dates")
	}
	if err := ValidateCycleDates(start, start); err == nil {
		t.Fatal("expected error for equal dates")
	}
}

func TestValidateResolutionStatus(t *testing.T) {
	if err := ValidateResolutionStatus(DisputeStatusResolved); err != nil {
		t.Fatalf("resolved should be accepted: %v", err)
	}
	if err := ValidateResolutionStatus(DisputeStatusRejected); err != nil {
		t.Fatalf("rejected should be accepted: %v", err)
	}
	if err := ValidateResolutionStatus(DisputeStatusOpen); err == nil {
		t.Fatal("open is not a terminal resolution")
	}
	if err := ValidateResolutionStatus("escalated"); err == nil {
		t.Fatal("unknown status must be rejected")
	}
}
