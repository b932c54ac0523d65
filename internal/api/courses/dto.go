package courses

import (
	"encoding/json"
	"time"

	"course-gate/internal/content"
	"course-gate/internal/domain/access"
	"course-gate/internal/domain/courses"

	"github.com/shopspring/decimal"
)

// ---------- requests

type CreateCourseRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Price       json.RawMessage `json:"price"`
}

type AppendModuleRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// Price arrives either as a JSON number or a string; both are validated by
// the same parser so "10.999" and 10.999 are rejected alike.
type UpdatePriceRequest struct {
	Price json.RawMessage `json:"price" binding:"required"`
}

// ---------- responses

type CourseDTO struct {
	ID             string          `json:"id"`
	OwnerTeacherID string          `json:"owner_teacher_id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	CreatedAt      time.Time       `json:"created_at"`
}

type CourseViewDTO struct {
	CourseDTO
	Subscribed bool                     `json:"subscribed"`
	IsOwner    bool                     `json:"is_owner"`
	Modules    []access.ProjectedModule `json:"modules"`
}

type TeacherCourseDTO struct {
	CourseDTO
	Subscribers int64 `json:"subscribers"`
}

func toCourseDTO(c courses.Course) CourseDTO {
	return CourseDTO{
		ID:             c.ID,
		OwnerTeacherID: c.OwnerTeacherID,
		Title:          c.Title,
		Description:    c.Description,
		Price:          c.Price,
		CreatedAt:      c.CreatedAt,
	}
}

func toCourseViewDTO(v content.CourseView) CourseViewDTO {
	modules := v.Modules
	if modules == nil {
		modules = []access.ProjectedModule{}
	}
	return CourseViewDTO{
		CourseDTO:  toCourseDTO(v.Course),
		Subscribed: v.Subscribed,
		IsOwner:    v.IsOwner,
		Modules:    modules,
	}
}

func rawPrice(raw json.RawMessage) string {
	return string(raw)
}
