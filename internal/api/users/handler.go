package users

import (
	"context"
	"net/http"

	"course-gate/internal/api/apierr"
	"course-gate/internal/app/http/middleware"
	"course-gate/internal/domain/access"
	"course-gate/internal/domain/courses"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Subscriptions interface {
	SubscribedCourseIDs(ctx context.Context, requester access.Identity) ([]string, error)
	SubscribedCourses(ctx context.Context, requester access.Identity) ([]courses.Course, error)
}

type Handler struct {
	subs Subscriptions
	log  *zap.Logger
}

func NewHandler(subs Subscriptions, log *zap.Logger) *Handler {
	return &Handler{subs: subs, log: log}
}

// GET /me
func (h *Handler) GetCurrentUser(c *gin.Context) {
	id := middleware.IdentityFrom(c)

	ids, err := h.subs.SubscribedCourseIDs(c.Request.Context(), id)
	if err != nil {
		apierr.Abort(c, h.log, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}

	c.JSON(http.StatusOK, MeResponse{
		User: UserDTO{
			ID:    id.SubjectID,
			Email: id.Email,
			Role:  string(id.Role),
		},
		Subscriptions: ids,
		Capabilities:  access.CapabilitiesFor(id),
	})
}

// GET /me/courses
func (h *Handler) GetMyCourses(c *gin.Context) {
	list, err := h.subs.SubscribedCourses(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		apierr.Abort(c, h.log, err)
		return
	}

	out := make([]SubscribedCourseDTO, 0, len(list))
	for _, course := range list {
		out = append(out, SubscribedCourseDTO{
			ID:             course.ID,
			OwnerTeacherID: course.OwnerTeacherID,
			Title:          course.Title,
			Description:    course.Description,
			Price:          course.Price,
			CreatedAt:      course.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}
