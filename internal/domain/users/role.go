package users

import (
	"fmt"
	"strings"

	"course-gate/internal/domain/apperr"
)

// Role is exclusive by construction: an account is a student, a teacher, or
// has not chosen yet.
type Role string

const (
	RoleUnset   Role = "unset"
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// ParseRole accepts only the roles a user may request for themselves.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent, nil
	case RoleTeacher:
		return RoleTeacher, nil
	default:
		return "", fmt.Errorf("role %q: %w", s, apperr.ErrInvalidArgument)
	}
}

func (r Role) IsStudent() bool { return r == RoleStudent }
func (r Role) IsTeacher() bool { return r == RoleTeacher }
