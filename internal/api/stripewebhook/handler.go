package stripewebhooks

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"course-gate/internal/domain/apperr"
	"course-gate/internal/entitlement"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
	"go.uber.org/zap"
)

const maxBodyBytes = 65536

type PurchaseRecorder interface {
	RecordPurchase(ctx context.Context, p entitlement.Purchase) (bool, error)
}

type Handler struct {
	endpointSecret string
	purchases      PurchaseRecorder
	log            *zap.Logger
}

func NewHandler(endpointSecret string, purchases PurchaseRecorder, log *zap.Logger) *Handler {
	return &Handler{endpointSecret: endpointSecret, purchases: purchases, log: log}
}

// POST /webhook
//
// Stripe retries anything that is not 2xx, so only failures worth retrying
// (the store being down) answer 500. Events that can never succeed are
// acknowledged and logged.
func (h *Handler) StripeWebhook(c *gin.Context) {
	if h.endpointSecret == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "STRIPE_WEBHOOK_SECRET not configured"})
		return
	}

	payload, err := readStripeBody(c, maxBodyBytes)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		h.endpointSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		h.log.Warn("Stripe signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}

	switch event.Type {
	case "checkout.session.completed", "checkout.session.async_payment_succeeded":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse session"})
			return
		}
		c.JSON(h.handleCheckoutSessionCompleted(c.Request.Context(), event.ID, &session))
		return

	default:
		// acknowledge unknown events to avoid retries
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}
}

func (h *Handler) handleCheckoutSessionCompleted(ctx context.Context, eventID string, session *stripe.CheckoutSession) (int, gin.H) {
	log := h.log.With(zap.String("event_id", eventID), zap.String("session_id", session.ID))

	purchase, err := purchaseFromSession(session)
	if errors.Is(err, errPaymentPending) {
		log.Info("Checkout completed without settled payment", zap.String("payment_status", string(session.PaymentStatus)))
		return http.StatusOK, gin.H{"status": "pending"}
	}
	if err != nil {
		log.Warn("Ignoring checkout session", zap.Error(err))
		return http.StatusOK, gin.H{"status": "ignored"}
	}

	recorded, err := h.purchases.RecordPurchase(ctx, purchase)
	switch {
	case err == nil:
		if !recorded {
			return http.StatusOK, gin.H{"status": "duplicate"}
		}
		return http.StatusOK, gin.H{"status": "received"}
	case errors.Is(err, apperr.ErrInvalidArgument), errors.Is(err, apperr.ErrNotFound):
		log.Warn("Ignoring checkout session", zap.Error(err))
		return http.StatusOK, gin.H{"status": "ignored"}
	default:
		log.Error("Failed to record purchase", zap.Error(err))
		return http.StatusInternalServerError, gin.H{"error": "Failed to record purchase"}
	}
}

func readStripeBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
