package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPrice(t *testing.T) {
	// price=100, platformPercent=0.1, fixedFee=2, paymentPercent=0.03
	// => commission=15, payout=85
	p := NewPricing(0.10, 0.03, 200)

	payout, commission, err := p.SplitPrice(10000)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), commission)
	assert.Equal(t, int64(8500), payout)
}

func TestSplitPricePayoutPlusCommissionEqualsPrice(t *testing.T) {
	p := NewPricing(0.10, 0.03, 200)
	for _, price := range []int64{10000, 999, 12345, 100000001, 1550} {
		payout, commission, err := p.SplitPrice(price)
		require.NoError(t, err)
		assert.Equal(t, price, payout+commission, "price %d", price)
	}
}

func TestSplitPriceRoundsHalfUp(t *testing.T) {
	// 0.13 * 1.50 = 0.195 -> 0.20 after half-up rounding, plus 2.00 fee.
	p := NewPricing(0.10, 0.03, 200)
	payout, commission, err := p.SplitPrice(150)
	require.Error(t, err)
	assert.Zero(t, payout)
	assert.Zero(t, commission)

	// Same fractional cent without the fee dominating.
	p = NewPricing(0.10, 0.03, 0)
	_, commission, err = p.SplitPrice(150)
	require.NoError(t, err)
	assert.Equal(t, int64(20), commission)
}

func TestSplitPriceBelowFees(t *testing.T) {
	p := NewPricing(0.10, 0.03, 200)
	_, _, err := p.SplitPrice(100) // 1.00 note cannot cover the 2.00 fee
	assert.ErrorIs(t, err, ErrPriceBelowFees)
}

func TestSplitPriceFreeOfCharge(t *testing.T) {
	p := NewPricing(0.10, 0.03, 0)
	payout, commission, err := p.SplitPrice(0)
	require.NoError(t, err)
	assert.Zero(t, payout)
	assert.Zero(t, commission)
}

func TestProfit(t *testing.T) {
	profit, total := Profit(10000, decimal.NewFromFloat(0.10))
	assert.Equal(t, int64(1000), profit)
	assert.Equal(t, int64(11000), total)

	// 123.45 * 0.1 = 12.345 -> 12.35 half-up
	profit, total = Profit(12345, decimal.NewFromFloat(0.10))
	assert.Equal(t, int64(1235), profit)
	assert.Equal(t, int64(13580), total)
}

func TestProfitDeterministic(t *testing.T) {
	pct := decimal.NewFromFloat(0.07)
	p1, t1 := Profit(999999, pct)
	p2, t2 := Profit(999999, pct)
	assert.Equal(t, p1, p2)
	assert.Equal(t, t1, t2)
}
