package users

import (
	"time"

	"github.com/shopspring/decimal"
)

type MeResponse struct {
	User          UserDTO  `json:"user"`
	Subscriptions []string `json:"subscriptions"`
	Capabilities  []string `json:"capabilities"`
}

type UserDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type SubscribedCourseDTO struct {
	ID             string          `json:"id"`
	OwnerTeacherID string          `json:"owner_teacher_id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	CreatedAt      time.Time       `json:"created_at"`
}
