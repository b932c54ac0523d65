package access

import "course-gate/internal/domain/users"

// Identity is the caller as seen by the gate. The zero value is Anonymous.
type Identity struct {
	SubjectID string
	Email     string
	Role      users.Role
}

func Anonymous() Identity {
	return Identity{}
}

func FromUser(u users.User) Identity {
	return Identity{
		SubjectID: u.ID,
		Email:     u.Email,
		Role:      u.Role,
	}
}

func (i Identity) IsAnonymous() bool {
	return i.SubjectID == ""
}

func (i Identity) IsTeacher() bool {
	return !i.IsAnonymous() && i.Role.IsTeacher()
}

func (i Identity) IsStudent() bool {
	return !i.IsAnonymous() && i.Role.IsStudent()
}
