package dashboard

import (
	"context"

	"thakirni-app/internal/domain/users"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoreLookup resolves the subscription tier from the users table.
type StoreLookup struct {
	DB *gorm.DB
}

func (l *StoreLookup) Tier(ctx context.Context, userID uuid.UUID) (string, error) {
	var user users.User
	if err := l.DB.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return "", err
	}
	return user.SubscriptionTier, nil
}
