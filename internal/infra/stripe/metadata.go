package stripe

import "github.com/shopspring/decimal"

// Metadata keys a checkout session must carry for the purchase to be
// attributed to a user and a course.
const (
	MetadataUserID   = "user_id"
	MetadataCourseID = "course_id"
)

// FromMinorUnits converts Stripe's integer amounts (cents) to a price.
func FromMinorUnits(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
