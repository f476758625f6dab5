package middleware

import (
	"net/http"
	"time"

	"thakirni-app/internal/domain/billing"
	"thakirni-app/internal/domain/users"
	"thakirni-app/internal/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RequireActiveSubscription gates paid features on a live subscription
// period. The users table is the source of truth; it is kept current by the
// Stripe webhook.
func RequireActiveSubscription(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session.FromContext(c.Request.Context())
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var user users.User
		if err := db.Where("id = ?", sess.UserID).First(&user).Error; err != nil || user.CurrentPeriodEnd == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Subscription not found or expired",
			})
			return
		}

		if billing.NormalizeStripeStatus(user.SubscriptionStatus) != "active" ||
			time.Now().After(*user.CurrentPeriodEnd) {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
				"error": "Your subscription has expired",
			})
			return
		}

		c.Next()
	}
}
