package billing

import (
	"net/http"
	"os"
	"time"

	"thakirni-app/config"
	"thakirni-app/internal/domain/users"
	"thakirni-app/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79"
	portalsession "github.com/stripe/stripe-go/v79/billingportal/session"
	stripesub "github.com/stripe/stripe-go/v79/subscription"
)

// CancelSubscription delegates directly to the gateway and returns its
// response verbatim. No local caching, no retry.
func (h *Handler) CancelSubscription(c *gin.Context) {
	var body struct {
		SubscriptionID string `json:"subscription_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.SubscriptionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid subscription_id"})
		return
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	sub, err := stripesub.Cancel(body.SubscriptionID, nil)
	if err != nil {
		h.Log.WithError(err).WithField("subscription", body.SubscriptionID).Error("subscription cancel failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel subscription", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sub)
}

// GetSubscriptionStatus projects the three fields the dashboard needs from
// the gateway's subscription object.
func (h *Handler) GetSubscriptionStatus(c *gin.Context) {
	subscriptionID := c.Param("id")
	if subscriptionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing subscription id"})
		return
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	sub, err := stripesub.Get(subscriptionID, nil)
	if err != nil {
		h.Log.WithError(err).WithField("subscription", subscriptionID).Error("subscription lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscription", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":               string(sub.Status),
		"current_period_end":   time.Unix(sub.CurrentPeriodEnd, 0),
		"cancel_at_period_end": sub.CancelAtPeriodEnd,
	})
}

// CreateBillingPortal opens the gateway-hosted billing portal for the
// caller's Stripe customer.
func (h *Handler) CreateBillingPortal(c *gin.Context) {
	sess, ok := session.FromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	var user users.User
	if err := h.DB.Where("id = ?", sess.UserID).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}
	if user.StripeCustomerID == nil || *user.StripeCustomerID == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "No Stripe customer yet (subscribe first)"})
		return
	}

	portal, err := portalsession.New(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(*user.StripeCustomerID),
		ReturnURL: stripe.String(config.APP_URL + "/dashboard"),
	})
	if err != nil {
		h.Log.WithError(err).WithField("user", sess.UserID).Error("billing portal creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create billing portal session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": portal.URL})
}
