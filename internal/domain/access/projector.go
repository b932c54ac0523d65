package access

import "course-gate/internal/domain/courses"

// ProjectedModule is the only module shape that leaves the service.
// Description and Link are null unless the verdict was Full.
type ProjectedModule struct {
	ID          string  `json:"id"`
	CourseID    string  `json:"course_id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Link        *string `json:"link"`
	Locked      bool    `json:"locked"`
	Access      Reason  `json:"access"`
}

// Project copies an explicit allow-list of fields. New Module fields stay
// private until they are added here.
func Project(m courses.Module, d GateDecision) ProjectedModule {
	out := ProjectedModule{
		ID:       m.ID,
		CourseID: m.CourseID,
		Title:    m.Title,
		Locked:   true,
		Access:   d.Reason,
	}

	switch d.Visibility {
	case VisibilityFull:
		description, link := m.Description, m.Link
		out.Description = &description
		out.Link = &link
		out.Locked = false
	default:
		out.Access = ReasonDenied
	}
	return out
}
