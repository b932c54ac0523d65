package stripewebhooks

import (
	"errors"
	"fmt"
	"strings"

	"course-gate/internal/entitlement"
	stripeinfra "course-gate/internal/infra/stripe"

	"github.com/stripe/stripe-go/v75"
)

var errPaymentPending = errors.New("payment not settled")

// purchaseFromSession reads the purchase back out of a completed session.
// metadata.user_id is preferred, client_reference_id is the fallback.
func purchaseFromSession(session *stripe.CheckoutSession) (entitlement.Purchase, error) {
	if session == nil || session.ID == "" {
		return entitlement.Purchase{}, errors.New("checkout session missing id")
	}
	if !stripeinfra.PaymentSettled(session.PaymentStatus) {
		return entitlement.Purchase{}, errPaymentPending
	}

	userID := strings.TrimSpace(session.Metadata[stripeinfra.MetadataUserID])
	if userID == "" {
		userID = strings.TrimSpace(session.ClientReferenceID)
	}
	if userID == "" {
		return entitlement.Purchase{}, errors.New("missing user_id (metadata.user_id or client_reference_id)")
	}

	courseID := strings.TrimSpace(session.Metadata[stripeinfra.MetadataCourseID])
	if courseID == "" {
		return entitlement.Purchase{}, fmt.Errorf("session %s: missing metadata.course_id", session.ID)
	}

	return entitlement.Purchase{
		SessionID: session.ID,
		UserID:    userID,
		CourseID:  courseID,
		Amount:    stripeinfra.FromMinorUnits(session.AmountTotal),
		Currency:  string(session.Currency),
		Status:    stripeinfra.NormalizeStatus(session.PaymentStatus),
	}, nil
}
