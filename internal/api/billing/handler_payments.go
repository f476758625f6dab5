package billing

import (
	"net/http"

	"thakirni-app/internal/domain/billing"
	"thakirni-app/internal/session"

	"github.com/gin-gonic/gin"
)

// GetPaymentHistory lists the caller's confirmed gateway charges, newest
// first.
func (h *Handler) GetPaymentHistory(c *gin.Context) {
	sess, ok := session.FromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var payments []billing.Payment
	if err := h.DB.
		Where("user_id = ?", sess.UserID).
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}
