package entitlement

import (
	"context"
	"fmt"
	"strings"

	"course-gate/internal/domain/access"
	"course-gate/internal/domain/apperr"
	"course-gate/internal/domain/courses"

	"go.uber.org/zap"
)

type NewCourse struct {
	Title       string
	Description string
	Price       string
}

// CreateCourse creates a course owned by the requesting teacher.
func (s *Service) CreateCourse(ctx context.Context, requester access.Identity, in NewCourse) (courses.Course, error) {
	if !requester.IsTeacher() {
		return courses.Course{}, fmt.Errorf("create course: teachers only: %w", apperr.ErrForbidden)
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return courses.Course{}, fmt.Errorf("create course: title is required: %w", apperr.ErrInvalidArgument)
	}
	price, err := courses.ParsePrice(in.Price)
	if err != nil {
		return courses.Course{}, fmt.Errorf("create course: %w", err)
	}

	c := courses.Course{
		OwnerTeacherID: requester.SubjectID,
		Title:          title,
		Description:    strings.TrimSpace(in.Description),
		Price:          price,
	}
	if err := s.store.CreateCourse(ctx, &c); err != nil {
		return courses.Course{}, fmt.Errorf("create course: %w", err)
	}

	s.logger.Info("Course created",
		zap.String("course_id", c.ID),
		zap.String("teacher_id", requester.SubjectID),
	)
	return c, nil
}

type NewModule struct {
	Title       string
	Description string
	Link        string
}

// AppendModule adds a module at the end of the course's curriculum.
func (s *Service) AppendModule(ctx context.Context, requester access.Identity, courseID string, in NewModule) (courses.Module, error) {
	if courseID == "" {
		return courses.Module{}, fmt.Errorf("append module: course id is required: %w", apperr.ErrInvalidArgument)
	}

	course, err := s.store.GetCourse(ctx, courseID)
	if err != nil {
		return courses.Module{}, fmt.Errorf("append module: %w", err)
	}
	if !access.IsOwningTeacher(requester, course) {
		return courses.Module{}, fmt.Errorf("append module to %s: %w", courseID, apperr.ErrForbidden)
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return courses.Module{}, fmt.Errorf("append module: title is required: %w", apperr.ErrInvalidArgument)
	}

	m := courses.Module{
		Title:       title,
		Description: in.Description,
		Link:        strings.TrimSpace(in.Link),
	}
	if err := s.store.AppendModule(ctx, courseID, &m); err != nil {
		return courses.Module{}, fmt.Errorf("append module: %w", err)
	}
	return m, nil
}

// TeacherCourses lists the requesting teacher's own courses.
func (s *Service) TeacherCourses(ctx context.Context, requester access.Identity) ([]courses.Summary, error) {
	if !requester.IsTeacher() {
		return nil, fmt.Errorf("teacher courses: %w", apperr.ErrForbidden)
	}
	return s.store.ListCoursesByOwner(ctx, requester.SubjectID)
}
