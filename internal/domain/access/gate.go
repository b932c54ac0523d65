package access

import (
	"fmt"

	"course-gate/internal/domain/courses"
)

// IsOwningTeacher reports whether id holds mutation and full-content rights
// over the course.
func IsOwningTeacher(id Identity, course courses.Course) bool {
	return id.IsTeacher() && course.OwnerTeacherID != "" && id.SubjectID == course.OwnerTeacherID
}

// Decide maps a caller and a module position to a visibility verdict.
//
// isFirstModule must be moduleIndex == 0 over the course's canonical module
// ordering and isSubscribed must come from the entitlement store; the gate
// performs no lookups itself. First matching rule wins:
//
//  1. owning teacher  -> Full (TeacherOwner)
//  2. subscribed      -> Full (Subscribed)
//  3. first module    -> Full (FirstModuleFree)
//  4. anything else   -> Redacted (Denied)
//
// A negative index, or an isFirstModule flag that disagrees with the index, is
// a caller bug and panics.
func Decide(id Identity, course courses.Course, moduleIndex int, isFirstModule, isSubscribed bool) GateDecision {
	if moduleIndex < 0 {
		panic(fmt.Sprintf("access: negative module index %d", moduleIndex))
	}
	if isFirstModule != (moduleIndex == 0) {
		panic(fmt.Sprintf("access: isFirstModule=%t for module index %d", isFirstModule, moduleIndex))
	}

	switch {
	case IsOwningTeacher(id, course):
		return GateDecision{Visibility: VisibilityFull, Reason: ReasonTeacherOwner}
	case isSubscribed:
		return GateDecision{Visibility: VisibilityFull, Reason: ReasonSubscribed}
	case isFirstModule:
		return GateDecision{Visibility: VisibilityFull, Reason: ReasonFirstModuleFree}
	default:
		return GateDecision{Visibility: VisibilityRedacted, Reason: ReasonDenied}
	}
}
