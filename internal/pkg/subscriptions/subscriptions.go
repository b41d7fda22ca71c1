package subscriptions

import "strings"

// Plan is the subscription tier of a user account. It is independent of the
// pricing tier of a single listing.
type Plan string

const (
	PlanFree    Plan = "free"
	PlanMedium  Plan = "medium"
	PlanPremium Plan = "premium"
)

// Feature is a subscription-gated capability.
type Feature string

const (
	FeaturePriceHistory Feature = "price_history"
	FeatureSellerStats  Feature = "seller_stats"
)

// NormalizePlan maps arbitrary input to a known plan, defaulting to free.
func NormalizePlan(s string) Plan {
	switch Plan(strings.ToLower(strings.TrimSpace(s))) {
	case PlanMedium:
		return PlanMedium
	case PlanPremium:
		return PlanPremium
	default:
		return PlanFree
	}
}

// HasFeature reports whether the plan grants the given feature.
// Price history is available to Medium and Premium subscribers only.
func HasFeature(plan Plan, feature Feature) bool {
	switch feature {
	case FeaturePriceHistory:
		return plan == PlanMedium || plan == PlanPremium
	case FeatureSellerStats:
		return true
	default:
		return false
	}
}

func planRank(plan Plan) int {
	switch plan {
	case PlanPremium:
		return 2
	case PlanMedium:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether plan is the same or a higher tier than min.
func AtLeast(plan, min Plan) bool {
	return planRank(plan) >= planRank(min)
}
