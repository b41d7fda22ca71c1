package subscriptions

import "testing"

func TestNormalizePlan(t *testing.T) {
	tests := []struct {
		in   string
		want Plan
	}{
		{in: "free", want: PlanFree},
		{in: "medium", want: PlanMedium},
		{in: "premium", want: PlanPremium},
		{in: "PREMIUM", want: PlanPremium},
		{in: " medium ", want: PlanMedium},
		{in: "invalid", want: PlanFree},
		{in: "", want: PlanFree},
	}

	for _, tt := range tests {
		if got := NormalizePlan(tt.in); got != tt.want {
			t.Fatalf("NormalizePlan(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHasFeaturePriceHistory(t *testing.T) {
	if HasFeature(PlanFree, FeaturePriceHistory) {
		t.Fatalf("free plan must not see price history")
	}
	if !HasFeature(PlanMedium, FeaturePriceHistory) {
		t.Fatalf("medium plan must see price history")
	}
	if !HasFeature(PlanPremium, FeaturePriceHistory) {
		t.Fatalf("premium plan must see price history")
	}
}

func TestAtLeast(t *testing.T) {
	if AtLeast(PlanFree, PlanMedium) {
		t.Fatalf("free must not rank at least medium")
	}
	if !AtLeast(PlanPremium, PlanMedium) {
		t.Fatalf("premium must rank at least medium")
	}
	if !AtLeast(PlanMedium, PlanMedium) {
		t.Fatalf("plan must rank at least itself")
	}
}
