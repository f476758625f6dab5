package plans

import (
	"errors"
	"net/http"

	"thakirni-app/internal/domain/plans"
	"thakirni-app/internal/session"
	"thakirni-app/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Handler serves the vault plan records (the kanban tasks, not the pricing
// tiers).
type Handler struct {
	DB      *gorm.DB
	Mutator *store.Mutator
	Log     logrus.FieldLogger
}

func (h *Handler) ListPlans(c *gin.Context) {
	sess, ok := session.FromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var records []plans.Plan
	if err := h.DB.
		Where("user_id = ?", sess.UserID).
		Order("board_column, position ASC").
		Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plans"})
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *Handler) CreatePlan(c *gin.Context) {
	sess, ok := session.FromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		Column      string `json:"column"`
		Position    int    `json:"position"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record := plans.Plan{
		UserID:      sess.UserID,
		Title:       input.Title,
		Description: input.Description,
		Status:      plans.StatusPending,
		Column:      input.Column,
		Position:    input.Position,
	}
	if err := h.DB.Create(&record).Error; err != nil {
		h.Log.WithError(err).WithField("user", sess.UserID).Error("plan creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create plan"})
		return
	}

	c.JSON(http.StatusCreated, record)
}

// UpdatePlanStatus is the status-only mutation path. The status must be one
// of pending, in_progress, completed, cancelled.
func (h *Handler) UpdatePlanStatus(c *gin.Context) {
	sess, _ := session.FromContext(c.Request.Context())

	var input struct {
		Status plans.Status `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid status"})
		return
	}

	err := h.Mutator.UpdatePlanStatus(c.Request.Context(), sess, c.Param("id"), input.Status)
	if err != nil {
		h.respondMutationError(c, err, "Failed to update plan status")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdatePlan applies a typed partial update. Unknown fields are rejected at
// the boundary, before any storage call.
func (h *Handler) UpdatePlan(c *gin.Context) {
	sess, _ := session.FromContext(c.Request.Context())

	update, err := plans.DecodePlanUpdate(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Mutator.UpdatePlan(c.Request.Context(), sess, c.Param("id"), update); err != nil {
		h.respondMutationError(c, err, "Failed to update plan")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) DeletePlan(c *gin.Context) {
	sess, ok := session.FromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	res := h.DB.Where("id = ? AND user_id = ?", c.Param("id"), sess.UserID).Delete(&plans.Plan{})
	if res.Error != nil {
		h.Log.WithError(res.Error).WithField("plan", c.Param("id")).Error("plan deletion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete plan"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// respondMutationError maps mutator errors to HTTP. Storage-level detail
// never reaches the client on this path; it is already logged server-side.
func (h *Handler) respondMutationError(c *gin.Context, err error, generic string) {
	switch {
	case errors.Is(err, store.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, store.ErrInvalidStatus), errors.Is(err, store.ErrEmptyUpdate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": generic})
	}
}
