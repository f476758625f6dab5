package billing

import (
	"errors"
	"net/http"
	"os"

	"thakirni-app/internal/domain/billing"
	"thakirni-app/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v79"
	checkoutsession "github.com/stripe/stripe-go/v79/checkout/session"
	"gorm.io/gorm"
)

type Handler struct {
	DB  *gorm.DB
	Log logrus.FieldLogger
}

// resolveCheckoutPlan validates the requested plan before anything reaches
// the gateway. The free tier is never purchasable.
func resolveCheckoutPlan(planID string) (billing.CatalogPlan, error) {
	plan, ok := billing.LookupPlan(planID)
	if !ok {
		return billing.CatalogPlan{}, billing.ErrUnknownPlan
	}
	if plan.ID == billing.FreePlanID {
		return billing.CatalogPlan{}, billing.ErrFreePlanNotPurchasable
	}
	return plan, nil
}

// buildCheckoutParams translates a catalog plan and billing period into an
// embedded-UI subscription checkout. The caller renders the returned client
// secret; Stripe never redirects. userID is empty for anonymous purchases
// and reconciled later through the webhook metadata.
func buildCheckoutParams(plan billing.CatalogPlan, period billing.BillingPeriod, userID string) *stripe.CheckoutSessionParams {
	interval := "month"
	if period == billing.PeriodYearly {
		interval = "year"
	}

	metadata := map[string]string{
		"plan_id":        plan.ID,
		"user_id":        userID,
		"billing_period": string(period),
	}

	return &stripe.CheckoutSessionParams{
		Mode:                 stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		UIMode:               stripe.String(string(stripe.CheckoutSessionUIModeEmbedded)),
		RedirectOnCompletion: stripe.String(string(stripe.CheckoutSessionRedirectOnCompletionNever)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String("sar"),
					UnitAmount: stripe.Int64(plan.Price(period)),
					Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
						Interval: stripe.String(interval),
					},
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(plan.Name),
						Description: stripe.String(plan.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: metadata,
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: metadata,
		},
	}
}

// StartCheckout creates the gateway checkout session for a subscription
// plan. billing_period defaults to monthly when omitted.
func (h *Handler) StartCheckout(c *gin.Context) {
	var body struct {
		PlanID        string `json:"plan_id"`
		BillingPeriod string `json:"billing_period"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.PlanID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid plan_id"})
		return
	}

	plan, err := resolveCheckoutPlan(body.PlanID)
	if err != nil {
		if errors.Is(err, billing.ErrFreePlanNotPurchasable) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "The free plan does not require checkout"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown plan_id"})
		return
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	userID := ""
	if sess, ok := session.FromContext(c.Request.Context()); ok {
		userID = sess.UserID.String()
	}

	period := billing.NormalizePeriod(body.BillingPeriod)
	s, err := checkoutsession.New(buildCheckoutParams(plan, period, userID))
	if err != nil {
		h.Log.WithError(err).WithField("plan", plan.ID).Error("checkout session creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"client_secret": s.ClientSecret})
}
