package users

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"not null;uniqueIndex:idx_users_email"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"type:varchar(20);not null;default:'user'"`
	Language     string    `gorm:"type:varchar(5);not null;default:'ar'"`

	SubscriptionTier   string  `gorm:"type:varchar(20);not null;default:'none'"`
	StripeCustomerID   *string `gorm:"column:stripe_customer_id;uniqueIndex:idx_users_stripe_customer_id"`
	SubscriptionID     *string `gorm:"column:subscription_id;uniqueIndex:idx_users_subscription_id"`
	SubscriptionStatus *string `gorm:"column:subscription_status"`
	CurrentPeriodEnd   *time.Time
	CancelAtPeriodEnd  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
