package auth

import (
	"net/http"
	"time"

	"thakirni-app/config"
	"thakirni-app/internal/domain/users"
	"thakirni-app/internal/session"
	"thakirni-app/internal/state"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Handler serves login, password changes and account deletion. Users are
// provisioned through the admin API, never here.
type Handler struct {
	DB    *gorm.DB
	State *state.Container
	Log   logrus.FieldLogger
}

// UserProfile is the cached profile object the client keeps under the fixed
// local-storage key. Plain JSON, no versioning.
type UserProfile struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Language string `json:"language"`
	Tier     string `json:"tier"`
}

func (h *Handler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user users.User
	if err := h.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(time.Hour * 24).Unix(),
	})

	tokenString, err := token.SignedString([]byte(config.JWT_SECRET))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	profile := UserProfile{
		ID:       user.ID.String(),
		Email:    user.Email,
		Role:     user.Role,
		Language: user.Language,
		Tier:     user.SubscriptionTier,
	}
	if err := h.State.Set(state.KeyUser, profile); err != nil {
		// The cached profile is a convenience; login still succeeds.
		h.Log.WithError(err).Warn("failed to cache user profile")
	}

	c.JSON(http.StatusOK, gin.H{"token": tokenString, "user": profile})
}

func (h *Handler) ChangePassword(c *gin.Context) {
	sess, ok := session.FromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user users.User
	if err := h.DB.Where("id = ?", sess.UserID).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	if err := h.DB.Model(&users.User{}).
		Where("id = ?", user.ID).
		Update("password_hash", string(hashed)).Error; err != nil {
		h.Log.WithError(err).WithField("user", user.ID).Error("password update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteAccount removes the caller's account, their plan records and the
// cached profile. No soft delete: the vault is gone after this.
func (h *Handler) DeleteAccount(c *gin.Context) {
	sess, ok := session.FromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM plans WHERE user_id = ?", sess.UserID).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", sess.UserID).Delete(&users.User{}).Error
	})
	if err != nil {
		h.Log.WithError(err).WithField("user", sess.UserID).Error("account deletion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		return
	}

	if err := h.State.Delete(state.KeyUser); err != nil {
		h.Log.WithError(err).Warn("failed to clear cached user profile")
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
