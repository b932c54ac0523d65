package courses

import (
	"strings"
	"testing"
	"time"

	"course-gate/internal/domain/apperr"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	for _, in := range []string{"49.99", `"49.99"`, "0", "12", " 7.5 ", "99999999.99", "1.000", "1e2", `" 3.50 "`} {
		p, err := ParsePrice(in)
		require.NoError(t, err, in)
		assert.False(t, p.IsNegative(), in)
	}

	p, err := ParsePrice("49.99")
	require.NoError(t, err)
	assert.True(t, p.Equal(decimal.RequireFromString("49.99")))
}

func TestParsePriceDecodesJSONString(t *testing.T) {
	for _, in := range []string{`"49.99"`, `"4\u0039.99"`, ` "49.99" `} {
		p, err := ParsePrice(in)
		require.NoError(t, err, in)
		assert.True(t, p.Equal(decimal.RequireFromString("49.99")), in)
	}

	_, err := ParsePrice(`"49.99`)
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestParsePriceRejects(t *testing.T) {
	for _, in := range []string{"", `""`, "-5", "abc", "1.999", "100000000", "NaN", "true", "1e9", "0e99"} {
		_, err := ParsePrice(in)
		assert.ErrorIs(t, err, apperr.ErrInvalidArgument, in)
	}
}

func TestParsePriceRejectsExtremeExponents(t *testing.T) {
	inputs := []string{
		"1e999999999", `"1e999999999"`,
		"1e-999999999", `"1e-999999999"`,
		"0e-999999999",
		strings.Repeat("9", 64),
	}
	for _, in := range inputs {
		done := make(chan error, 1)
		go func() {
			_, err := ParsePrice(in)
			done <- err
		}()

		select {
		case err := <-done:
			assert.ErrorIs(t, err, apperr.ErrInvalidArgument, in)
		case <-time.After(2 * time.Second):
			t.Fatalf("ParsePrice(%q) did not return", in)
		}
	}
}

func TestValidatePriceExponentWindow(t *testing.T) {
	assert.NoError(t, ValidatePrice(decimal.New(5, -2)))
	assert.ErrorIs(t, ValidatePrice(decimal.New(1, 9)), apperr.ErrInvalidArgument)
	assert.ErrorIs(t, ValidatePrice(decimal.New(1, -13)), apperr.ErrInvalidArgument)
}
