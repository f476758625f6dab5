package stripewebhook

import (
	"fmt"
	"time"

	"thakirni-app/internal/domain/billing"
	"thakirni-app/internal/domain/users"

	"github.com/stripe/stripe-go/v79"
)

func (h *Handler) handleSubscriptionUpdated(sub *stripe.Subscription) error {
	if sub.ID == "" {
		return fmt.Errorf("subscription missing id")
	}

	periodEnd := time.Unix(sub.CurrentPeriodEnd, 0)
	status := string(sub.Status)

	user, ok := h.findUser(sub)
	if !ok {
		// Acknowledge to avoid gateway retries if the user is gone.
		return nil
	}

	updates := map[string]interface{}{
		"subscription_id":      sub.ID,
		"subscription_status":  status,
		"current_period_end":   periodEnd,
		"cancel_at_period_end": sub.CancelAtPeriodEnd,
	}

	if planID := sub.Metadata["plan_id"]; planID != "" {
		if plan, found := billing.LookupPlan(planID); found {
			updates["subscription_tier"] = plan.Tier
		}
	}

	return h.DB.Model(&users.User{}).
		Where("id = ?", user.ID).
		Updates(updates).Error
}

// findUser resolves the local account from subscription metadata, falling
// back to the stored subscription id.
func (h *Handler) findUser(sub *stripe.Subscription) (*users.User, bool) {
	var user users.User
	if userID, err := userIDFromMetadata(sub.Metadata); err == nil {
		if err := h.DB.Where("id = ?", userID).First(&user).Error; err == nil {
			return &user, true
		}
	}
	if err := h.DB.Where("subscription_id = ?", sub.ID).First(&user).Error; err == nil {
		return &user, true
	}
	return nil, false
}
