package courses

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Module is one unit of a course. OrderKey is assigned from the course
// sequence at creation and is the only ordering source; titles never are.
type Module struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	CourseID string `gorm:"type:uuid;not null;uniqueIndex:idx_modules_course_order,priority:1" json:"course_id"`
	OrderKey int64  `gorm:"not null;uniqueIndex:idx_modules_course_order,priority:2" json:"order_key"`

	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`

	CreatedAt time.Time `json:"created_at"`
}

func (m *Module) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
