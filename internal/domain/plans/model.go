package plans

import (
	"time"

	"github.com/google/uuid"
)

// Plan is a vault task/project record ("plan" in the product sense), not a
// subscription pricing tier. Those live in internal/domain/billing.
type Plan struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_plans_user_id" json:"user_id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Status      Status     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Column      string     `gorm:"column:board_column" json:"column"`
	Position    int        `json:"position"`
	DueDate     *time.Time `json:"due_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Plan) TableName() string {
	return "plans"
}
