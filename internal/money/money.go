// Package money holds the platform's pricing arithmetic. Everything here is
// pure: amounts go in as cents, decimals are rounded half-up to two places,
// and no I/O happens. Storage keeps int64 cents; decimal.Decimal is only an
// intermediate.
package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrPriceBelowFees = errors.New("price does not cover platform fees")

var oneHundred = decimal.NewFromInt(100)

// Pricing are the platform's commission knobs. Percentages are fractions of
// the note price, FixedFee is in cents.
type Pricing struct {
	CommissionPercent decimal.Decimal
	PaymentPercent    decimal.Decimal
	FixedFee          int64
}

func NewPricing(commissionPercent, paymentPercent float64, fixedFeeCents int64) Pricing {
	return Pricing{
		CommissionPercent: decimal.NewFromFloat(commissionPercent),
		PaymentPercent:    decimal.NewFromFloat(paymentPercent),
		FixedFee:          fixedFeeCents,
	}
}

// SplitPrice divides a note price into seller payout and platform
// commission. commission = commissionPercent*price + fixedFee +
// paymentPercent*price; payout = price - commission. The invariant
// payout + commission == price holds exactly.
func (p Pricing) SplitPrice(priceCents int64) (payoutCents, commissionCents int64, err error) {
	price := decimal.New(priceCents, -2)
	commission := p.CommissionPercent.Mul(price).
		Add(p.PaymentPercent.Mul(price)).
		Add(decimal.New(p.FixedFee, -2)).
		Round(2)
	commissionCents = commission.Mul(oneHundred).IntPart()
	payoutCents = priceCents - commissionCents
	if payoutCents < 0 {
		return 0, 0, ErrPriceBelowFees
	}
	return payoutCents, commissionCents, nil
}

// Format renders cents as a fixed two-decimal string, e.g. 1500 -> "15.00".
func Format(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// Profit projects a seller's earnings: profit = balance * percent, total =
// balance + profit, both rounded half-up to cents.
func Profit(balanceCents int64, percent decimal.Decimal) (profitCents, totalCents int64) {
	balance := decimal.New(balanceCents, -2)
	profit := balance.Mul(percent).Round(2)
	total := balance.Add(profit)
	return profit.Mul(oneHundred).IntPart(), total.Mul(oneHundred).IntPart()
}
