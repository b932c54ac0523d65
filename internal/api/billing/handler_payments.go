package billing

import (
	"net/http"

	"course-gate/internal/api/apierr"
	"course-gate/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

// GET /payments
func (h *Handler) GetPaymentHistory(c *gin.Context) {
	payments, err := h.entitlements.Payments(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		apierr.Abort(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, payments)
}
