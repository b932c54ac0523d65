package billing

import (
	"net/http"

	"course-gate/internal/api/apierr"
	"course-gate/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

// POST /courses/:id/enroll
func (h *Handler) Enroll(c *gin.Context) {
	en, err := h.entitlements.Enroll(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		apierr.Abort(c, h.log, err)
		return
	}
	if !en.Granted {
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error": "Payment required",
			"price": en.Course.Price,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscribed": true, "course_id": en.Course.ID})
}
