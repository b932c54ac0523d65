package courses

import "time"

// Subscription is the entitlement ledger: one row per (user, course) pair.
// Its absence is the only representation of "not subscribed".
type Subscription struct {
	UserID   string `gorm:"type:uuid;primaryKey"`
	CourseID string `gorm:"type:uuid;primaryKey;index"`

	CreatedAt time.Time
}
