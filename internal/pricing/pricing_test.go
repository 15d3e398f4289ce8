package pricing

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecomposeGross(t *testing.T) {
	tests := []struct {
		name    string
		gross   float64
		vatRate int
		net     string
		vat     string
	}{
		{"whole net at 8%", 10800, 8, "10000", "800"},
		{"whole net at 23%", 12300, 23, "10000", "2300"},
		{"zero gross", 0, 8, "0", "0"},
		{"uneven gross at 23%", 34000, 23, "27642.28", "6357.72"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := DecomposeGross(tt.gross, tt.vatRate)
			require.NoError(t, err)
			assert.True(t, b.Net.Equal(decimal.RequireFromString(tt.net)), "net = %s", b.Net)
			assert.True(t, b.VAT.Equal(decimal.RequireFromString(tt.vat)), "vat = %s", b.VAT)
		})
	}
}

func TestDecomposeGross_SumWithinTolerance(t *testing.T) {
	tolerance := decimal.RequireFromString("0.01")
	for _, gross := range []float64{0.01, 0.03, 1, 99.99, 1234.56, 34000, 99999.97} {
		for _, rate := range []int{8, 23} {
			b, err := DecomposeGross(gross, rate)
			require.NoError(t, err)
			diff := b.Net.Add(b.VAT).Sub(b.Gross).Abs()
			assert.True(t, diff.LessThanOrEqual(tolerance),
				"gross=%v rate=%d diff=%s", gross, rate, diff)
		}
	}
}

func TestDecomposeGross_InvalidInput(t *testing.T) {
	_, err := DecomposeGross(-1, 23)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = DecomposeGross(math.NaN(), 23)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = DecomposeGross(math.Inf(1), 23)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = DecomposeGross(100, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = DecomposeGross(100, -8)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDecomposeGross_Idempotent(t *testing.T) {
	a, err := DecomposeGross(34567.89, 23)
	require.NoError(t, err)
	b, err := DecomposeGross(34567.89, 23)
	require.NoError(t, err)
	assert.True(t, a.Net.Equal(b.Net))
	assert.True(t, a.VAT.Equal(b.VAT))
}

func TestSplitTranches(t *testing.T) {
	tr, err := SplitTranches(1000)
	require.NoError(t, err)
	assert.Equal(t, "300.00", tr.T1.StringFixed(2))
	assert.Equal(t, "600.00", tr.T2.StringFixed(2))
	assert.Equal(t, "100.00", tr.T3.StringFixed(2))
}

func TestSplitTranches_SumExact(t *testing.T) {
	// The third tranche absorbs the rounding residual, so the sum must be
	// exact even for amounts where 30% and 60% round away a cent.
	for _, gross := range []float64{0, 0.01, 0.03, 0.05, 1, 33.33, 1234.55, 34000, 99999.97} {
		tr, err := SplitTranches(gross)
		require.NoError(t, err)
		sum := tr.T1.Add(tr.T2).Add(tr.T3)
		assert.True(t, sum.Equal(decimal.NewFromFloat(gross).Round(2)),
			"gross=%v sum=%s", gross, sum)
	}
}

func TestSplitTranches_InvalidInput(t *testing.T) {
	_, err := SplitTranches(-0.01)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = SplitTranches(math.NaN())
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestValidatePriceChange(t *testing.T) {
	tests := []struct {
		name      string
		reference float64
		candidate float64
		valid     bool
		pct       string
	}{
		{"at lower bound", 100000, 95000, true, "-5"},
		{"below lower bound", 100000, 94999, false, "-5"},
		{"at upper bound", 100000, 105000, true, "5"},
		{"just past upper bound", 100000, 105000.01, false, "5"},
		{"unchanged", 100000, 100000, true, "0"},
		{"small change", 34000, 34500, true, "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ValidatePriceChange(tt.reference, tt.candidate)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, v.Valid)
			assert.True(t, v.PercentChange.Equal(decimal.RequireFromString(tt.pct)),
				"pct = %s", v.PercentChange)
		})
	}
}

func TestValidatePriceChange_Bounds(t *testing.T) {
	v, err := ValidatePriceChange(100000, 95000)
	require.NoError(t, err)
	assert.Equal(t, "95000.00", v.Min.StringFixed(2))
	assert.Equal(t, "105000.00", v.Max.StringFixed(2))
}

func TestValidatePriceChange_ZeroReference(t *testing.T) {
	_, err := ValidatePriceChange(0, 100)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestClampPrice(t *testing.T) {
	tests := []struct {
		name      string
		candidate float64
		want      string
	}{
		{"below band clamps up", 80000, "95000.00"},
		{"above band clamps down", 120000, "105000.00"},
		{"inside band unchanged", 99500, "99500.00"},
		{"at bound unchanged", 95000, "95000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClampPrice(100000, tt.candidate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestClampPrice_ZeroReference(t *testing.T) {
	_, err := ClampPrice(0, 100)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
