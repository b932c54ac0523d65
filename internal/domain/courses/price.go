package courses

import (
	"encoding/json"
	"fmt"
	"strings"

	"course-gate/internal/domain/apperr"

	"github.com/shopspring/decimal"
)

// MaxPrice is the largest value the numeric(10,2) column holds.
var MaxPrice = decimal.RequireFromString("99999999.99")

const (
	maxPriceText = 32
	// Exponents outside this window cannot be a valid price, and rounding or
	// comparing them rescales through arbitrarily large big.Ints.
	minPriceExp = -12
	maxPriceExp = 8
)

// ParsePrice validates a price given as a JSON string ("49.99"), a JSON
// number or bare text.
func ParsePrice(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, `"`) {
		var text string
		if err := json.Unmarshal([]byte(s), &text); err != nil {
			return decimal.Decimal{}, fmt.Errorf("price is not a valid string: %w", apperr.ErrInvalidArgument)
		}
		s = strings.TrimSpace(text)
	}
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("price is required: %w", apperr.ErrInvalidArgument)
	}
	if len(s) > maxPriceText {
		return decimal.Decimal{}, fmt.Errorf("price is too long: %w", apperr.ErrInvalidArgument)
	}

	p, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("price %q is not a number: %w", s, apperr.ErrInvalidArgument)
	}
	return p, ValidatePrice(p)
}

func ValidatePrice(p decimal.Decimal) error {
	if exp := p.Exponent(); exp < minPriceExp || exp > maxPriceExp {
		return fmt.Errorf("price exponent %d is out of range: %w", exp, apperr.ErrInvalidArgument)
	}
	switch {
	case p.IsNegative():
		return fmt.Errorf("price %s is negative: %w", p, apperr.ErrInvalidArgument)
	case !p.Equal(p.Round(2)):
		return fmt.Errorf("price %s has more than two decimals: %w", p, apperr.ErrInvalidArgument)
	case p.GreaterThan(MaxPrice):
		return fmt.Errorf("price %s is too large: %w", p, apperr.ErrInvalidArgument)
	}
	return nil
}
