package routes

import (
	authapi "course-gate/internal/api/auth"
	"course-gate/internal/api/billing"
	coursesapi "course-gate/internal/api/courses"
	stripewebhooks "course-gate/internal/api/stripewebhook"
	"course-gate/internal/api/users"
	"course-gate/internal/app/http/middleware"
	domainusers "course-gate/internal/domain/users"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	Resolver middleware.IdentityResolver
	Auth     *authapi.Handler
	Courses  *coursesapi.Handler
	Users    *users.Handler
	Billing  *billing.Handler
	Webhook  *stripewebhooks.Handler
}

func RegisterRoutes(r *gin.Engine, h Handlers, log *zap.Logger) {
	// signature is computed over the raw body, so no sanitizing here
	r.POST("/webhook", h.Webhook.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/auth/google", h.Auth.GoogleStart)
	r.GET("/auth/google/callback", h.Auth.GoogleCallback)

	// Identity is optional: anonymous callers still see the course outline
	// and the first module.
	public := r.Group("/")
	public.Use(middleware.OptionalIdentity(h.Resolver, log))
	public.GET("/courses/:id", h.Courses.GetCourse)
	public.GET("/modules/:id", h.Courses.GetModule)

	// Authenticated
	auth := r.Group("/")
	auth.Use(
		middleware.OptionalIdentity(h.Resolver, log),
		middleware.RequireIdentity(log),
		middleware.SanitizeAndCleanInputMiddleware("link"),
	)
	auth.POST("/auth/role", h.Auth.AssignRole)
	auth.GET("/me", h.Users.GetCurrentUser)
	auth.GET("/me/courses", h.Users.GetMyCourses)
	auth.GET("/payments", h.Billing.GetPaymentHistory)
	auth.POST("/courses/:id/enroll", h.Billing.Enroll)

	// Ownership of a particular course is checked by the entitlement service.
	auth.POST("/courses", h.Courses.CreateCourse)
	auth.POST("/courses/:id/modules", h.Courses.AppendModule)
	auth.PUT("/courses/:id/price", h.Courses.UpdatePrice)

	// Teacher routes
	teacher := auth.Group("/teacher")
	teacher.Use(middleware.RequireRole(domainusers.RoleTeacher, log))
	teacher.GET("/courses", h.Courses.TeacherCourses)
}
