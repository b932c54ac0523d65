package access

import (
	"testing"

	"course-gate/internal/domain/users"

	"github.com/stretchr/testify/assert"
)

func TestCapabilitiesFor(t *testing.T) {
	assert.Empty(t, CapabilitiesFor(Anonymous()))
	assert.Equal(t, []string{CapChooseRole}, CapabilitiesFor(Identity{SubjectID: "u", Role: users.RoleUnset}))
	assert.Equal(t, []string{CapSubscribe}, CapabilitiesFor(Identity{SubjectID: "u", Role: users.RoleStudent}))
	assert.Equal(t, []string{CapCreateCourse, CapEditCourse}, CapabilitiesFor(Identity{SubjectID: "u", Role: users.RoleTeacher}))
}
