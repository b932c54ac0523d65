package access

import "course-gate/internal/domain/users"

const (
	CapChooseRole   = "choose_role"
	CapSubscribe    = "subscribe"
	CapCreateCourse = "create_course"
	CapEditCourse   = "edit_course"
)

// CapabilitiesFor lists what the UI may offer an identity. It is advisory:
// every operation re-checks on its own.
func CapabilitiesFor(id Identity) []string {
	if id.IsAnonymous() {
		return []string{}
	}

	switch id.Role {
	case users.RoleStudent:
		return []string{CapSubscribe}
	case users.RoleTeacher:
		return []string{CapCreateCourse, CapEditCourse}
	default:
		// role not picked yet
		return []string{CapChooseRole}
	}
}
