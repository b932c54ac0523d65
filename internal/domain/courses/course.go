package courses

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Course struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	OwnerTeacherID string `gorm:"type:uuid;not null;index" json:"owner_teacher_id"`

	Title       string          `gorm:"not null" json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`

	// NextOrderKey is the sequence that hands out Module.OrderKey values.
	NextOrderKey int64 `gorm:"not null;default:0" json:"-"`

	Modules []Module `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Summary is a course row plus its subscriber count, for the owner's listing.
type Summary struct {
	Course
	Subscribers int64
}
