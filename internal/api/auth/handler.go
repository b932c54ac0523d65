package auth

import (
	"context"
	"net/http"

	"course-gate/internal/api/apierr"
	"course-gate/internal/app/http/middleware"
	"course-gate/internal/domain/access"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type IdentityService interface {
	AssignRole(ctx context.Context, caller access.Identity, email, requestedRole string) (access.Identity, error)
	SignInWithGoogle(ctx context.Context, sub, email string) (access.Identity, string, error)
	IssueFor(id access.Identity) (string, error)
}

type Handler struct {
	identities IdentityService
	google     *GoogleConfig
	log        *zap.Logger
}

// NewHandler wires the auth endpoints. google may be nil, which disables
// Google sign-in.
func NewHandler(identities IdentityService, google *GoogleConfig, log *zap.Logger) *Handler {
	return &Handler{identities: identities, google: google, log: log}
}

type AssignRoleRequest struct {
	Email string `json:"email" binding:"required"`
	Role  string `json:"role" binding:"required"`
}

type IdentityResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

// POST /auth/role
func (h *Handler) AssignRole(c *gin.Context) {
	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	id, err := h.identities.AssignRole(c.Request.Context(), middleware.IdentityFrom(c), req.Email, req.Role)
	if err != nil {
		apierr.Abort(c, h.log, err)
		return
	}

	// the old token still resolves, but hand out a fresh one so the client
	// never has to re-authenticate after picking a role
	token, err := h.identities.IssueFor(id)
	if err != nil {
		apierr.Abort(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, IdentityResponse{
		ID:    id.SubjectID,
		Email: id.Email,
		Role:  string(id.Role),
		Token: token,
	})
}
