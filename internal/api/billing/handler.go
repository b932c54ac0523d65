package billing

import (
	"context"

	"course-gate/internal/domain/access"
	"course-gate/internal/domain/billing"
	"course-gate/internal/entitlement"

	"go.uber.org/zap"
)

type Entitlements interface {
	Enroll(ctx context.Context, requester access.Identity, courseID string) (entitlement.Enrollment, error)
	Payments(ctx context.Context, requester access.Identity) ([]billing.Payment, error)
}

type Handler struct {
	entitlements Entitlements
	log          *zap.Logger
}

func NewHandler(entitlements Entitlements, log *zap.Logger) *Handler {
	return &Handler{entitlements: entitlements, log: log}
}
