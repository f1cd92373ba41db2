package promotion

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestPicksGreatestDiscount(t *testing.T) {
	subtotal := decimal.RequireFromString("100")
	tenPct := pct(t, 1, "10")
	fiveOff := fixed(t, 2, "5")

	applied, ok := Best(inWindow, subtotal, []Promotion{fiveOff, tenPct})
	require.True(t, ok)
	assert.Equal(t, int64(1), applied.Promotion.ID())
	assert.Equal(t, "10.00", applied.Discount.StringFixed(2))
	assert.Equal(t, "90.00", subtotal.Sub(applied.Discount).StringFixed(2))
}

func TestBestFixedWinsOnSmallSubtotal(t *testing.T) {
	// 10% of 30 is 3, fixed 5 is larger
	applied, ok := Best(inWindow, decimal.RequireFromString("30"), []Promotion{pct(t, 1, "10"), fixed(t, 2, "5")})
	require.True(t, ok)
	assert.Equal(t, int64(2), applied.Promotion.ID())
}

func TestBestIgnoresOrderOfPromotions(t *testing.T) {
	subtotal := decimal.RequireFromString("50")
	// both yield 5.00
	a := pct(t, 7, "10")
	b := fixed(t, 3, "5")

	first, ok := Best(inWindow, subtotal, []Promotion{a, b})
	require.True(t, ok)
	second, ok := Best(inWindow, subtotal, []Promotion{b, a})
	require.True(t, ok)

	assert.Equal(t, int64(3), first.Promotion.ID())
	assert.Equal(t, first.Promotion.ID(), second.Promotion.ID())
	assert.True(t, first.Discount.Equal(second.Discount))
}

func TestBestSkipsPromotionsOutsideWindow(t *testing.T) {
	expired, err := New(Params{
		ID: 9, Percentage: dec("50"),
		StartDate: windowStart.AddDate(0, -2, 0), EndDate: windowStart.Add(-time.Hour),
		Active: true,
	})
	require.NoError(t, err)

	applied, ok := Best(inWindow, decimal.RequireFromString("100"), []Promotion{expired, fixed(t, 2, "5")})
	require.True(t, ok)
	assert.Equal(t, int64(2), applied.Promotion.ID())
}

func TestBestNone(t *testing.T) {
	_, ok := Best(inWindow, decimal.RequireFromString("100"), nil)
	assert.False(t, ok)

	_, ok = Best(inWindow, decimal.Zero, []Promotion{fixed(t, 1, "5")})
	assert.False(t, ok)

	_, ok = Best(inWindow, decimal.RequireFromString("100"), []Promotion{pct(t, 1, "0")})
	assert.False(t, ok)
}
