package entitlement

import (
	"context"
	"fmt"

	"course-gate/internal/domain/access"
	"course-gate/internal/domain/apperr"
	"course-gate/internal/domain/courses"

	"go.uber.org/zap"
)

// Enrollment is the outcome of asking for a course.
type Enrollment struct {
	Course courses.Course
	// Granted is set when the caller is subscribed after the call. When it
	// is not, the course must be paid for, and the payment provider's
	// completion event ends in RecordPurchase.
	Granted bool
}

// Enroll subscribes requester to a free course, or reports that the course
// must be bought first.
func (s *Service) Enroll(ctx context.Context, requester access.Identity, courseID string) (Enrollment, error) {
	if requester.IsAnonymous() {
		return Enrollment{}, fmt.Errorf("enroll: %w", apperr.ErrUnauthenticated)
	}
	if courseID == "" {
		return Enrollment{}, fmt.Errorf("enroll: course id is required: %w", apperr.ErrInvalidArgument)
	}

	course, err := s.store.GetCourse(ctx, courseID)
	if err != nil {
		return Enrollment{}, fmt.Errorf("enroll %s: %w", courseID, err)
	}
	if access.IsOwningTeacher(requester, course) {
		return Enrollment{}, fmt.Errorf("enroll %s: owners cannot enroll in their own course: %w", courseID, apperr.ErrInvalidArgument)
	}

	subscribed, err := s.store.HasSubscription(ctx, requester.SubjectID, courseID)
	if err != nil {
		return Enrollment{}, fmt.Errorf("enroll %s: %w", courseID, err)
	}
	if subscribed {
		return Enrollment{Course: course, Granted: true}, nil
	}

	if course.Price.IsZero() {
		if err := s.Subscribe(ctx, requester.SubjectID, courseID); err != nil {
			return Enrollment{}, fmt.Errorf("enroll %s: %w", courseID, err)
		}
		s.logger.Info("Free course granted",
			zap.String("user_id", requester.SubjectID),
			zap.String("course_id", courseID),
		)
		return Enrollment{Course: course, Granted: true}, nil
	}

	return Enrollment{Course: course}, nil
}
