package stripewebhook

import (
	"time"

	"thakirni-app/internal/domain/billing"
	"thakirni-app/internal/domain/users"

	"github.com/stripe/stripe-go/v79"
)

func (h *Handler) handleSubscriptionDeleted(sub *stripe.Subscription) error {
	if sub.ID == "" {
		return nil
	}

	user, ok := h.findUser(sub)
	if !ok {
		return nil
	}

	periodEnd := time.Unix(sub.CurrentPeriodEnd, 0)

	return h.DB.Model(&users.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"subscription_tier":    billing.TierNone,
			"subscription_status":  string(sub.Status),
			"current_period_end":   periodEnd,
			"cancel_at_period_end": false,
		}).Error
}
