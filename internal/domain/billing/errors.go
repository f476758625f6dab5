package billing

import "errors"

var (
	// ErrUnknownPlan means the requested plan id is not in the catalog.
	ErrUnknownPlan = errors.New("unknown subscription plan")

	// ErrFreePlanNotPurchasable rejects checkout for the free tier before
	// any gateway call is made.
	ErrFreePlanNotPurchasable = errors.New("the free plan cannot be purchased")
)
