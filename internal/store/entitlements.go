package store

import (
	"context"

	"course-gate/internal/domain/billing"
	"course-gate/internal/domain/courses"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) HasSubscription(ctx context.Context, userID, courseID string) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).
		Model(&courses.Subscription{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&n).Error; err != nil {
		return false, translate(err, "has subscription")
	}
	return n > 0, nil
}

// UpsertSubscription is idempotent: repeated or concurrent calls for the same
// pair leave exactly one row.
func (s *Store) UpsertSubscription(ctx context.Context, userID, courseID string) error {
	return translate(upsertSubscription(s.db.WithContext(ctx), userID, courseID), "upsert subscription")
}

func upsertSubscription(tx *gorm.DB, userID, courseID string) error {
	return tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&courses.Subscription{UserID: userID, CourseID: courseID}).Error
}

func (s *Store) SubscribedCourseIDs(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	if err := s.db.WithContext(ctx).
		Model(&courses.Subscription{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("course_id", &ids).Error; err != nil {
		return nil, translate(err, "list subscriptions")
	}
	return ids, nil
}

func (s *Store) ListSubscribedCourses(ctx context.Context, userID string) ([]courses.Course, error) {
	out := []courses.Course{}
	if err := s.db.WithContext(ctx).
		Joins("JOIN subscriptions ON subscriptions.course_id = courses.id").
		Where("subscriptions.user_id = ?", userID).
		Order("subscriptions.created_at DESC").
		Find(&out).Error; err != nil {
		return nil, translate(err, "list subscribed courses")
	}
	return out, nil
}

// RecordPurchase stores the receipt and grants the subscription atomically.
// created is false when the checkout session was already recorded.
func (s *Store) RecordPurchase(ctx context.Context, p *billing.Payment) (created bool, err error) {
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "stripe_session_id"}},
			DoNothing: true,
		}).Create(p)
		if res.Error != nil {
			return res.Error
		}
		created = res.RowsAffected > 0
		return upsertSubscription(tx, p.UserID, p.CourseID)
	})
	if err != nil {
		return false, translate(err, "record purchase")
	}
	return created, nil
}

func (s *Store) ListPayments(ctx context.Context, userID string) ([]billing.Payment, error) {
	out := []billing.Payment{}
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, translate(err, "list payments")
	}
	return out, nil
}
