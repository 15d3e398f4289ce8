// Package pricing implements the financial rules for energy-storage
// contracts: VAT decomposition of gross prices, the 30/60/10 payment
// tranche split and the ±5% price-change band around the catalog offer.
//
// All arithmetic is done on decimals to keep amounts exact; results are
// rounded half-up to 2 decimal places, which is the rounding the generated
// contract documents are legally bound to.
package pricing

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// ErrInvalidArgument is returned for inputs that violate the caller
// contract: negative or non-finite amounts, non-positive VAT rates,
// or a zero reference price for a percent change.
var ErrInvalidArgument = errors.New("pricing: invalid argument")

// Tranche percentages of the gross price. The third tranche is always
// computed as the residual so the three amounts sum to the gross exactly.
const (
	Tranche1Percent = 30
	Tranche2Percent = 60
	Tranche3Percent = 10
)

// MaxPriceDeviationPercent bounds how far the contract price may move
// from the catalog offer price, in either direction.
const MaxPriceDeviationPercent = 5

var (
	hundred = decimal.NewFromInt(100)

	tranche1Rate = decimal.NewFromFloat(0.30)
	tranche2Rate = decimal.NewFromFloat(0.60)

	minBandRate = decimal.NewFromFloat(0.95)
	maxBandRate = decimal.NewFromFloat(1.05)
)

// Breakdown is the VAT decomposition of a gross amount.
type Breakdown struct {
	Net   decimal.Decimal
	VAT   decimal.Decimal
	Gross decimal.Decimal
}

// Tranches is the three-part payment schedule of a gross amount.
type Tranches struct {
	T1 decimal.Decimal
	T2 decimal.Decimal
	T3 decimal.Decimal
}

// PriceValidation reports whether a candidate contract price lies inside
// the allowed band around the reference offer price.
type PriceValidation struct {
	Valid         bool
	Min           decimal.Decimal
	Max           decimal.Decimal
	PercentChange decimal.Decimal
}

// DecomposeGross splits a gross amount into its net and VAT parts for the
// given VAT rate (percent). Net and VAT are rounded half-up to 2 decimals
// independently of each other, so their sum matches the gross within one
// cent.
func DecomposeGross(gross float64, vatRate int) (Breakdown, error) {
	if err := checkAmount(gross); err != nil {
		return Breakdown{}, err
	}
	if vatRate <= 0 {
		return Breakdown{}, ErrInvalidArgument
	}

	g := decimal.NewFromFloat(gross)
	divisor := decimal.NewFromInt(1).Add(decimal.NewFromInt(int64(vatRate)).Div(hundred))

	netRaw := g.Div(divisor)
	return Breakdown{
		Net:   netRaw.Round(2),
		VAT:   g.Sub(netRaw).Round(2),
		Gross: g.Round(2),
	}, nil
}

// SplitTranches divides a gross amount into the 30/60/10 payment schedule.
// The first two tranches are rounded half-up to 2 decimals; the third is
// the residual, so the sum equals the gross exactly.
func SplitTranches(gross float64) (Tranches, error) {
	if err := checkAmount(gross); err != nil {
		return Tranches{}, err
	}

	g := decimal.NewFromFloat(gross).Round(2)
	t1 := g.Mul(tranche1Rate).Round(2)
	t2 := g.Mul(tranche2Rate).Round(2)
	return Tranches{
		T1: t1,
		T2: t2,
		T3: g.Sub(t1).Sub(t2),
	}, nil
}

// ValidatePriceChange checks a candidate contract price against the ±5%
// band around the reference offer price. The band edges are inclusive.
// A zero reference price makes the percent change undefined and is
// rejected with ErrInvalidArgument.
func ValidatePriceChange(reference, candidate float64) (PriceValidation, error) {
	if err := checkAmount(reference); err != nil {
		return PriceValidation{}, err
	}
	if err := checkAmount(candidate); err != nil {
		return PriceValidation{}, err
	}
	if reference == 0 {
		return PriceValidation{}, ErrInvalidArgument
	}

	ref := decimal.NewFromFloat(reference)
	cand := decimal.NewFromFloat(candidate)

	min := ref.Mul(minBandRate).Round(2)
	max := ref.Mul(maxBandRate).Round(2)

	return PriceValidation{
		Valid:         cand.GreaterThanOrEqual(min) && cand.LessThanOrEqual(max),
		Min:           min,
		Max:           max,
		PercentChange: cand.Sub(ref).Div(ref).Mul(hundred).Round(1),
	}, nil
}

// ClampPrice forces a candidate price into the allowed band around the
// reference price. Manual price entry goes through this before being
// accepted into a draft.
func ClampPrice(reference, candidate float64) (decimal.Decimal, error) {
	v, err := ValidatePriceChange(reference, candidate)
	if err != nil {
		return decimal.Decimal{}, err
	}

	cand := decimal.NewFromFloat(candidate)
	if cand.LessThan(v.Min) {
		return v.Min, nil
	}
	if cand.GreaterThan(v.Max) {
		return v.Max, nil
	}
	return cand, nil
}

func checkAmount(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return ErrInvalidArgument
	}
	return nil
}
