// Package entitlement holds every write that changes what the access gate
// will later read: subscriptions, purchases, prices and the catalog itself.
package entitlement

import (
	"context"
	"fmt"
	"strings"

	"course-gate/internal/domain/access"
	"course-gate/internal/domain/apperr"
	"course-gate/internal/domain/billing"
	"course-gate/internal/domain/courses"
	"course-gate/internal/domain/users"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Store interface {
	FindUserByID(ctx context.Context, id string) (users.User, error)

	GetCourse(ctx context.Context, id string) (courses.Course, error)
	CreateCourse(ctx context.Context, c *courses.Course) error
	AppendModule(ctx context.Context, courseID string, m *courses.Module) error
	UpdatePrice(ctx context.Context, courseID string, price decimal.Decimal) (courses.Course, error)
	ListCoursesByOwner(ctx context.Context, ownerID string) ([]courses.Summary, error)

	HasSubscription(ctx context.Context, userID, courseID string) (bool, error)
	UpsertSubscription(ctx context.Context, userID, courseID string) error
	SubscribedCourseIDs(ctx context.Context, userID string) ([]string, error)
	ListSubscribedCourses(ctx context.Context, userID string) ([]courses.Course, error)
	RecordPurchase(ctx context.Context, p *billing.Payment) (bool, error)
	ListPayments(ctx context.Context, userID string) ([]billing.Payment, error)
}

type Service struct {
	store  Store
	logger *zap.Logger
}

func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// UpdatePrice lets the owning teacher reprice a course. Concurrent updates
// are last-write-wins.
func (s *Service) UpdatePrice(ctx context.Context, requester access.Identity, courseID, newPrice string) (courses.Course, error) {
	if courseID == "" {
		return courses.Course{}, fmt.Errorf("update price: course id is required: %w", apperr.ErrInvalidArgument)
	}

	course, err := s.store.GetCourse(ctx, courseID)
	if err != nil {
		return courses.Course{}, fmt.Errorf("update price: %w", err)
	}
	if !access.IsOwningTeacher(requester, course) {
		return courses.Course{}, fmt.Errorf("update price of %s: %w", courseID, apperr.ErrForbidden)
	}

	price, err := courses.ParsePrice(newPrice)
	if err != nil {
		return courses.Course{}, fmt.Errorf("update price: %w", err)
	}

	updated, err := s.store.UpdatePrice(ctx, courseID, price)
	if err != nil {
		return courses.Course{}, fmt.Errorf("update price: %w", err)
	}

	s.logger.Info("Course price updated",
		zap.String("course_id", courseID),
		zap.String("teacher_id", requester.SubjectID),
		zap.String("from", course.Price.StringFixed(2)),
		zap.String("to", updated.Price.StringFixed(2)),
	)
	return updated, nil
}

// Subscribe grants userID the course. Safe to retry: a second call is a no-op.
func (s *Service) Subscribe(ctx context.Context, userID, courseID string) error {
	if userID == "" || courseID == "" {
		return fmt.Errorf("subscribe: user and course ids are required: %w", apperr.ErrInvalidArgument)
	}
	if err := s.checkPair(ctx, userID, courseID); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	if err := s.store.UpsertSubscription(ctx, userID, courseID); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	return nil
}

// Purchase is a settled checkout as reported by the payment provider.
type Purchase struct {
	SessionID string
	UserID    string
	CourseID  string
	Amount    decimal.Decimal
	Currency  string
	Status    string
}

// RecordPurchase stores the receipt and grants the subscription. Delivery is
// at-least-once; a replay of the same session reports recorded == false.
func (s *Service) RecordPurchase(ctx context.Context, p Purchase) (recorded bool, err error) {
	if p.SessionID == "" || p.UserID == "" || p.CourseID == "" {
		return false, fmt.Errorf("record purchase: session, user and course ids are required: %w", apperr.ErrInvalidArgument)
	}
	if err := s.checkPair(ctx, p.UserID, p.CourseID); err != nil {
		return false, fmt.Errorf("record purchase %s: %w", p.SessionID, err)
	}

	payment := billing.Payment{
		UserID:          p.UserID,
		CourseID:        p.CourseID,
		StripeSessionID: p.SessionID,
		Amount:          p.Amount,
		Currency:        strings.ToLower(p.Currency),
		Status:          p.Status,
	}
	recorded, err = s.store.RecordPurchase(ctx, &payment)
	if err != nil {
		return false, fmt.Errorf("record purchase %s: %w", p.SessionID, err)
	}

	s.logger.Info("Course purchase processed",
		zap.String("session_id", p.SessionID),
		zap.String("user_id", p.UserID),
		zap.String("course_id", p.CourseID),
		zap.Bool("replay", !recorded),
	)
	return recorded, nil
}

func (s *Service) checkPair(ctx context.Context, userID, courseID string) error {
	if _, err := s.store.FindUserByID(ctx, userID); err != nil {
		return fmt.Errorf("user %s: %w", userID, err)
	}
	if _, err := s.store.GetCourse(ctx, courseID); err != nil {
		return fmt.Errorf("course %s: %w", courseID, err)
	}
	return nil
}

func (s *Service) SubscribedCourseIDs(ctx context.Context, requester access.Identity) ([]string, error) {
	if requester.IsAnonymous() {
		return nil, fmt.Errorf("subscriptions: %w", apperr.ErrUnauthenticated)
	}
	return s.store.SubscribedCourseIDs(ctx, requester.SubjectID)
}

func (s *Service) SubscribedCourses(ctx context.Context, requester access.Identity) ([]courses.Course, error) {
	if requester.IsAnonymous() {
		return nil, fmt.Errorf("subscribed courses: %w", apperr.ErrUnauthenticated)
	}
	return s.store.ListSubscribedCourses(ctx, requester.SubjectID)
}

func (s *Service) Payments(ctx context.Context, requester access.Identity) ([]billing.Payment, error) {
	if requester.IsAnonymous() {
		return nil, fmt.Errorf("payments: %w", apperr.ErrUnauthenticated)
	}
	return s.store.ListPayments(ctx, requester.SubjectID)
}
