package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatPLN(t *testing.T) {
	// Polish locale groups thousands with a no-break space.
	tests := []struct {
		amount string
		want   string
	}{
		{"12345.67", "12 345,67 zł"},
		{"34000", "34 000,00 zł"},
		{"999.5", "999,50 zł"},
		{"0", "0,00 zł"},
	}

	for _, tt := range tests {
		got := FormatPLN(decimal.RequireFromString(tt.amount))
		assert.Equal(t, tt.want, got)
	}
}

func TestFormatDatePolish(t *testing.T) {
	assert.Equal(t, "16 lutego 2026 r.",
		FormatDatePolish(time.Date(2026, time.February, 16, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "1 października 2025 r.",
		FormatDatePolish(time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)))
}

func TestAmountInWords(t *testing.T) {
	got := AmountInWords(decimal.RequireFromString("34000"))
	assert.Equal(t, "34 000,00 zł (34000 zł 00/100)", got)

	got = AmountInWords(decimal.RequireFromString("1234.56"))
	assert.Equal(t, "1 234,56 zł (1234 zł 56/100)", got)
}
