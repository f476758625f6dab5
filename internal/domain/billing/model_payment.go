package billing

import (
	"time"

	"thakirni-app/internal/domain/users"

	"github.com/google/uuid"
)

// Payment is the local record of a gateway charge, written by the Stripe
// webhook or the Moyasar handler after the gateway confirms it.
type Payment struct {
	ID     uint       `gorm:"primaryKey" json:"id"`
	UserID uuid.UUID  `gorm:"type:uuid;index" json:"user_id"`
	User   users.User `json:"-"`

	PlanID        string `gorm:"type:varchar(30)" json:"plan_id"`
	BillingPeriod string `gorm:"type:varchar(10)" json:"billing_period"`

	Gateway              string  `gorm:"type:varchar(20);not null" json:"gateway"` // "stripe" | "moyasar"
	StripeSessionID      *string `gorm:"uniqueIndex" json:"stripe_session_id,omitempty"`
	StripeSubscriptionID *string `json:"stripe_subscription_id,omitempty"`
	MoyasarPaymentID     *string `gorm:"uniqueIndex" json:"moyasar_payment_id,omitempty"`

	AmountHalalas int64  `json:"amount_halalas"`
	Currency      string `gorm:"type:varchar(3)" json:"currency"`
	Status        string `json:"status"`

	CreatedAt time.Time `json:"created_at"`
}
