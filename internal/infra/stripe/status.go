package stripe

import (
	"strings"

	stripeapi "github.com/stripe/stripe-go/v75"
)

// PaymentSettled reports whether a completed checkout actually paid for what
// it sold. Async methods complete the session with "unpaid" first.
func PaymentSettled(status stripeapi.CheckoutSessionPaymentStatus) bool {
	switch stripeapi.CheckoutSessionPaymentStatus(strings.TrimSpace(string(status))) {
	case stripeapi.CheckoutSessionPaymentStatusPaid,
		stripeapi.CheckoutSessionPaymentStatusNoPaymentRequired:
		return true
	default:
		return false
	}
}

// NormalizeStatus maps a payment status onto the values stored on receipts.
func NormalizeStatus(status stripeapi.CheckoutSessionPaymentStatus) string {
	s := strings.TrimSpace(string(status))
	if s == "" {
		return "none"
	}
	return s
}
