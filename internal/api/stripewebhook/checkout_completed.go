package stripewebhook

import (
	"errors"
	"fmt"
	"time"

	"thakirni-app/internal/domain/billing"
	"thakirni-app/internal/domain/users"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79"
	checkoutsession "github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/subscription"
)

func (h *Handler) handleCheckoutSessionCompleted(sess *stripe.CheckoutSession) error {
	fullSession, err := checkoutsession.Get(sess.ID, &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Expand: []*string{
				stripe.String("subscription"),
				stripe.String("customer"),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to fetch expanded checkout session: %w", err)
	}

	if fullSession.Subscription == nil || fullSession.Subscription.ID == "" {
		return errors.New("checkout session missing subscription")
	}
	subscriptionID := fullSession.Subscription.ID

	subData, err := subscription.Get(subscriptionID, nil)
	if err != nil || subData == nil {
		return fmt.Errorf("failed to fetch subscription: %w", err)
	}

	userID, err := userIDFromMetadata(subData.Metadata)
	if err != nil {
		// Anonymous checkout: nobody to reconcile against. Ack so the
		// gateway stops retrying; manual reconciliation picks these up.
		h.Log.WithField("session", sess.ID).Warn("checkout completed without user_id metadata")
		return nil
	}

	planID := subData.Metadata["plan_id"]
	plan, ok := billing.LookupPlan(planID)
	if !ok {
		return fmt.Errorf("plan not found for plan_id=%s", planID)
	}
	period := billing.NormalizePeriod(subData.Metadata["billing_period"])

	var user users.User
	if err := h.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	periodEnd := time.Unix(subData.CurrentPeriodEnd, 0)
	status := string(subData.Status)

	updates := map[string]interface{}{
		"subscription_tier":    plan.Tier,
		"subscription_id":      subscriptionID,
		"subscription_status":  status,
		"current_period_end":   periodEnd,
		"cancel_at_period_end": subData.CancelAtPeriodEnd,
	}
	if fullSession.Customer != nil && fullSession.Customer.ID != "" {
		updates["stripe_customer_id"] = fullSession.Customer.ID
	}

	// A new subscription replaces any previous one
	if user.SubscriptionID != nil && *user.SubscriptionID != "" && *user.SubscriptionID != subscriptionID {
		_, _ = subscription.Cancel(*user.SubscriptionID, nil)
	}

	if err := h.DB.Model(&users.User{}).
		Where("id = ?", user.ID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update user after checkout: %w", err)
	}

	sessionID := fullSession.ID
	payment := billing.Payment{
		UserID:               user.ID,
		PlanID:               plan.ID,
		BillingPeriod:        string(period),
		Gateway:              "stripe",
		StripeSessionID:      &sessionID,
		StripeSubscriptionID: &subscriptionID,
		AmountHalalas:        fullSession.AmountTotal,
		Currency:             string(fullSession.Currency),
		Status:               "paid",
	}
	if err := h.DB.Create(&payment).Error; err != nil {
		// Duplicate delivery of the same session is fine; anything else is
		// logged but the webhook still acks.
		h.Log.WithError(err).WithField("session", sessionID).Warn("payment record insert failed")
	}

	return nil
}

func userIDFromMetadata(md map[string]string) (uuid.UUID, error) {
	if md == nil || md["user_id"] == "" {
		return uuid.Nil, errors.New("missing user_id metadata")
	}
	return uuid.Parse(md["user_id"])
}
