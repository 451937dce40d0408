package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"12.5", 1250},
		{"0.1", 10},
		{"19.999", 2000},
		{"100.005", 10001},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FromDecimal(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestParseRejectsAmountsBeyondRange(t *testing.T) {
	huge := decimal.RequireFromString("184467440737095516.17")

	_, err := Parse(huge)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = Parse(huge.Neg())
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = ParseNonNegative(huge)
	assert.ErrorIs(t, err, ErrOutOfRange)

	assert.Equal(t, MaxCents, FromDecimal(huge))
	assert.Equal(t, -MaxCents, FromDecimal(huge.Neg()))

	c, err := Parse(ToDecimal(MaxCents))
	require.NoError(t, err)
	assert.Equal(t, MaxCents, c)
	_, err = Parse(ToDecimal(MaxCents).Add(decimal.RequireFromString("0.01")))
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestTimesFitsAtBounds(t *testing.T) {
	line := Times(MaxCents, MaxQuantity)
	assert.Positive(t, line)
	assert.Equal(t, ToDecimal(MaxCents).Mul(decimal.NewFromInt(MaxQuantity)).Shift(2).IntPart(), line)
}

func TestFromFloatAvoidsBinaryDrift(t *testing.T) {
	assert.Equal(t, int64(30), FromFloat(0.1+0.2))
}

func TestParseNonNegative(t *testing.T) {
	_, err := ParseNonNegative(decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, ErrNegative)

	c, err := ParseNonNegative(decimal.RequireFromString("3.40"))
	require.NoError(t, err)
	assert.Equal(t, int64(340), c)
}

func TestFormatAndFloat(t *testing.T) {
	assert.Equal(t, "12.50", Format(1250))
	assert.Equal(t, "0.05", Format(5))
	assert.Equal(t, 12.5, ToFloat(1250))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, int64(150), Percent(1500, decimal.NewFromInt(10)))
	assert.Equal(t, int64(0), Percent(1500, decimal.Zero))
	assert.Equal(t, int64(1), Percent(5, decimal.NewFromInt(25)))
}
