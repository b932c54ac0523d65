package store

import (
	"context"
	"fmt"

	"course-gate/internal/domain/apperr"
	"course-gate/internal/domain/courses"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func (s *Store) GetCourse(ctx context.Context, id string) (courses.Course, error) {
	if err := checkID(id, "get course"); err != nil {
		return courses.Course{}, err
	}
	var c courses.Course
	if err := s.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return courses.Course{}, translate(err, "get course")
	}
	return c, nil
}

func (s *Store) GetModule(ctx context.Context, id string) (courses.Module, error) {
	if err := checkID(id, "get module"); err != nil {
		return courses.Module{}, err
	}
	var m courses.Module
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return courses.Module{}, translate(err, "get module")
	}
	return m, nil
}

// ListModulesOrdered returns the course's modules in canonical (order key)
// order. Index 0 of the result is the free first module.
func (s *Store) ListModulesOrdered(ctx context.Context, courseID string) ([]courses.Module, error) {
	var out []courses.Module
	if err := s.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("order_key ASC").
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, translate(err, "list modules")
	}
	return out, nil
}

func (s *Store) CreateCourse(ctx context.Context, c *courses.Course) error {
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return translate(err, "create course")
	}
	return nil
}

// AppendModule places m after every existing module of courseID. The order
// key comes from the course sequence, bumped in the same transaction, so
// concurrent appends never share a key.
func (s *Store) AppendModule(ctx context.Context, courseID string, m *courses.Module) error {
	if err := checkID(courseID, "append module"); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&courses.Course{}).
			Where("id = ?", courseID).
			UpdateColumn("next_order_key", gorm.Expr("next_order_key + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var c courses.Course
		if err := tx.Select("id", "next_order_key").First(&c, "id = ?", courseID).Error; err != nil {
			return err
		}

		m.CourseID = courseID
		m.OrderKey = c.NextOrderKey - 1
		return tx.Create(m).Error
	})
	return translate(err, "append module")
}

// UpdatePrice is last-write-wins; there is no version check.
func (s *Store) UpdatePrice(ctx context.Context, courseID string, price decimal.Decimal) (courses.Course, error) {
	if err := checkID(courseID, "update price"); err != nil {
		return courses.Course{}, err
	}
	res := s.db.WithContext(ctx).Model(&courses.Course{}).
		Where("id = ?", courseID).
		Update("price", price)
	if res.Error != nil {
		return courses.Course{}, translate(res.Error, "update price")
	}
	if res.RowsAffected == 0 {
		return courses.Course{}, fmt.Errorf("update price: %w", apperr.ErrNotFound)
	}
	return s.GetCourse(ctx, courseID)
}

// ListCoursesByOwner returns the teacher's courses, newest first, with the
// number of subscribers of each.
func (s *Store) ListCoursesByOwner(ctx context.Context, ownerID string) ([]courses.Summary, error) {
	var cs []courses.Course
	if err := s.db.WithContext(ctx).
		Where("owner_teacher_id = ?", ownerID).
		Order("created_at DESC").
		Find(&cs).Error; err != nil {
		return nil, translate(err, "list owner courses")
	}
	if len(cs) == 0 {
		return []courses.Summary{}, nil
	}

	ids := make([]string, 0, len(cs))
	for _, c := range cs {
		ids = append(ids, c.ID)
	}

	var counts []struct {
		CourseID    string
		Subscribers int64
	}
	if err := s.db.WithContext(ctx).
		Model(&courses.Subscription{}).
		Select("course_id, COUNT(*) AS subscribers").
		Where("course_id IN ?", ids).
		Group("course_id").
		Scan(&counts).Error; err != nil {
		return nil, translate(err, "count subscribers")
	}

	byCourse := make(map[string]int64, len(counts))
	for _, row := range counts {
		byCourse[row.CourseID] = row.Subscribers
	}

	out := make([]courses.Summary, 0, len(cs))
	for _, c := range cs {
		out = append(out, courses.Summary{Course: c, Subscribers: byCourse[c.ID]})
	}
	return out, nil
}
