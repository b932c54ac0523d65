package courses

import (
	"context"
	"net/http"

	"course-gate/internal/api/apierr"
	"course-gate/internal/app/http/middleware"
	"course-gate/internal/content"
	"course-gate/internal/domain/access"
	"course-gate/internal/domain/courses"
	"course-gate/internal/entitlement"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Reader interface {
	ReadCourse(ctx context.Context, id access.Identity, courseID string) (content.CourseView, error)
	ReadModule(ctx context.Context, id access.Identity, moduleID string) (access.ProjectedModule, error)
}

type Authoring interface {
	CreateCourse(ctx context.Context, requester access.Identity, in entitlement.NewCourse) (courses.Course, error)
	AppendModule(ctx context.Context, requester access.Identity, courseID string, in entitlement.NewModule) (courses.Module, error)
	UpdatePrice(ctx context.Context, requester access.Identity, courseID, newPrice string) (courses.Course, error)
	TeacherCourses(ctx context.Context, requester access.Identity) ([]courses.Summary, error)
}

type Handler struct {
	reader    Reader
	authoring Authoring
	log       *zap.Logger
}

func NewHandler(reader Reader, authoring Authoring, log *zap.Logger) *Handler {
	return &Handler{reader: reader, authoring: authoring, log: log}
}

// GET /courses/:id
func (h *Handler) GetCourse(c *gin.Context) {
	view, err := h.reader.ReadCourse(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		apierr.Abort(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toCourseViewDTO(view))
}

// GET /modules/:id
func (h *Handler) GetModule(c *gin.Context) {
	module, err := h.reader.ReadModule(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		apierr.Abort(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, module)
}

// POST /courses
func (h *Handler) CreateCourse(c *gin.Context) {
	var req CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	course, err := h.authoring.CreateCourse(c.Request.Context(), middleware.IdentityFrom(c), entitlement.NewCourse{
		Title:       req.Title,
		Description: req.Description,
		Price:       rawPrice(req.Price),
	})
	if err != nil {
		apierr.Abort(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toCourseDTO(course))
}

// POST /courses/:id/modules
func (h *Handler) AppendModule(c *gin.Context) {
	var req AppendModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	module, err := h.authoring.AppendModule(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"), entitlement.NewModule{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
	})
	if err != nil {
		apierr.Abort(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, module)
}

// PUT /courses/:id/price
func (h *Handler) UpdatePrice(c *gin.Context) {
	var req UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	course, err := h.authoring.UpdatePrice(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"), rawPrice(req.Price))
	if err != nil {
		apierr.Abort(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toCourseDTO(course))
}

// GET /teacher/courses
func (h *Handler) TeacherCourses(c *gin.Context) {
	summaries, err := h.authoring.TeacherCourses(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		apierr.Abort(c, h.log, err)
		return
	}

	out := make([]TeacherCourseDTO, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, TeacherCourseDTO{CourseDTO: toCourseDTO(s.Course), Subscribers: s.Subscribers})
	}
	c.JSON(http.StatusOK, out)
}
