package admin

import (
	"net/http"
	"os"
	"time"

	"thakirni-app/internal/domain/billing"
	"thakirni-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Handler struct {
	DB  *gorm.DB
	Log logrus.FieldLogger
}

type AdminUser struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	Role             string     `json:"role"`
	Tier             string     `json:"tier"`
	StripeCustomerID *string    `json:"stripe_customer_id,omitempty"`
	SubscriptionID   *string    `json:"subscription_id,omitempty"`
	CurrentPeriodEnd *time.Time `json:"current_period_end,omitempty"`
	CreatedAt        string     `json:"created_at"`
}

type AdminStats struct {
	TotalUsers    int            `json:"total_users"`
	TotalRevenue  float64        `json:"total_revenue"`
	RecentRevenue float64        `json:"recent_revenue"`
	UsersPerTier  map[string]int `json:"users_per_tier"`
}

// CreateUser provisions an account. This is the only path that creates
// users; it requires the server-held service-role credential and fails fast
// without it.
func (h *Handler) CreateUser(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		IsAdmin  bool   `json:"isAdmin"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	if os.Getenv("SERVICE_ROLE_KEY") == "" {
		// Never degrade to an unauthenticated client; the credential's value
		// is never echoed.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Service role credential not configured"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	role := "user"
	if input.IsAdmin {
		role = "admin"
	}

	user := users.User{
		Email:        input.Email,
		PasswordHash: string(hashed),
		Role:         role,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		h.Log.WithError(err).WithField("email", input.Email).Error("user provisioning failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"user": gin.H{
			"id":      user.ID.String(),
			"email":   user.Email,
			"isAdmin": user.IsAdmin(),
		},
	})
}

func (h *Handler) ListAllUsers(c *gin.Context) {
	var all []users.User
	if err := h.DB.Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	var out []AdminUser
	for _, u := range all {
		out = append(out, AdminUser{
			ID:               u.ID.String(),
			Email:            u.Email,
			Role:             u.Role,
			Tier:             billing.NormalizeTier(u.SubscriptionTier),
			StripeCustomerID: u.StripeCustomerID,
			SubscriptionID:   u.SubscriptionID,
			CurrentPeriodEnd: u.CurrentPeriodEnd,
			CreatedAt:        u.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	c.JSON(http.StatusOK, out)
}

func (h *Handler) ListAllPayments(c *gin.Context) {
	var payments []billing.Payment
	if err := h.DB.Preload("User").Order("created_at DESC").Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}

func (h *Handler) GetStats(c *gin.Context) {
	var stats AdminStats

	var totalUsers int64
	var totalRevenue float64
	var recentRevenue float64

	h.DB.Model(&users.User{}).Count(&totalUsers)
	h.DB.Model(&billing.Payment{}).
		Where("status = ?", "paid").
		Select("COALESCE(SUM(amount_halalas), 0) / 100.0").Scan(&totalRevenue)

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	h.DB.Model(&billing.Payment{}).
		Where("status = ? AND created_at >= ?", "paid", thirtyDaysAgo).
		Select("COALESCE(SUM(amount_halalas), 0) / 100.0").Scan(&recentRevenue)

	stats.TotalUsers = int(totalUsers)
	stats.TotalRevenue = totalRevenue
	stats.RecentRevenue = recentRevenue

	type tierCount struct {
		Tier  string
		Count int
	}
	var counts []tierCount
	h.DB.Model(&users.User{}).
		Select("subscription_tier as tier, COUNT(id) as count").
		Group("subscription_tier").
		Scan(&counts)

	stats.UsersPerTier = map[string]int{}
	for _, tc := range counts {
		stats.UsersPerTier[billing.NormalizeTier(tc.Tier)] += tc.Count
	}

	c.JSON(http.StatusOK, stats)
}
