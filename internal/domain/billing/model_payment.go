package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the receipt of a completed course checkout. StripeSessionID is
// unique so a replayed webhook cannot record the same purchase twice.
type Payment struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          string          `gorm:"type:uuid;not null;index" json:"user_id"`
	CourseID        string          `gorm:"type:uuid;not null;index" json:"course_id"`
	StripeSessionID string          `gorm:"not null;uniqueIndex" json:"stripe_session_id"`
	Amount          decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Currency        string          `gorm:"type:varchar(8)" json:"currency"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}
