package order

import (
	"context"
	"testing"
	"time"

	"github.com/kiwari-pos/digimenu/internal/promotion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func promo(t *testing.T, id int64, pct, amount string, active bool) promotion.Promotion {
	t.Helper()
	p := promotion.Params{
		ID:        id,
		Name:      "promo",
		StartDate: now.Add(-24 * time.Hour),
		EndDate:   now.Add(24 * time.Hour),
		Active:    active,
	}
	if pct != "" {
		d := dec(pct)
		p.Percentage = &d
	} else {
		d := dec(amount)
		p.Amount = &d
	}
	pr, err := promotion.New(p)
	require.NoError(t, err)
	return pr
}

func linesWithSubtotal(t *testing.T, subtotal string) []Line {
	t.Helper()
	return []Line{{Quantity: 1, UnitPrice: dec(subtotal), LineTotal: dec(subtotal)}}
}

func TestPriceTieBreakPicksGreatestDiscount(t *testing.T) {
	q := Price(linesWithSubtotal(t, "100"), now, []promotion.Promotion{
		promo(t, 2, "", "5", true),
		promo(t, 1, "10", "", true),
	})
	require.NotNil(t, q.Promotion)
	assert.Equal(t, int64(1), q.Promotion.ID())
	assert.Equal(t, "10.00", q.Discount.StringFixed(2))
	assert.Equal(t, "90.00", q.Total.StringFixed(2))
}

func TestPriceSkipsInactivePromotion(t *testing.T) {
	q := Price(linesWithSubtotal(t, "100"), now, []promotion.Promotion{promo(t, 1, "50", "", false)})
	assert.Nil(t, q.Promotion)
	assert.Equal(t, "100.00", q.Total.StringFixed(2))
}

func TestPriceClampsAtZero(t *testing.T) {
	q := Price(linesWithSubtotal(t, "44"), now, []promotion.Promotion{promo(t, 1, "", "500", true)})
	assert.Equal(t, "44.00", q.Discount.StringFixed(2))
	assert.True(t, q.Total.IsZero())
}

func TestPriceIndependentOfLineOrder(t *testing.T) {
	reqs := []LineRequest{
		{MenuItemID: 1, Quantity: 2, AddonIDs: []int64{5}},
		{MenuItemID: 2, Quantity: 3, AddonIDs: []int64{21, 7}},
		{MenuItemID: 4, Quantity: 1},
	}
	reversed := []LineRequest{reqs[2], reqs[1], reqs[0]}
	promos := []promotion.Promotion{promo(t, 1, "15", "", true)}

	c := NewComposer(testCatalog(t))
	a, err := c.Compose(context.Background(), reqs)
	require.NoError(t, err)
	b, err := c.Compose(context.Background(), reversed)
	require.NoError(t, err)

	qa, qb := Price(a, now, promos), Price(b, now, promos)
	assert.True(t, qa.Subtotal.Equal(qb.Subtotal))
	assert.True(t, qa.Total.Equal(qb.Total))

	// 44 + (35+1+3.5)*3 + 8 = 170.50, 15% = 25.575 -> 25.58
	assert.Equal(t, "170.50", qa.Subtotal.StringFixed(2))
	assert.Equal(t, "25.58", qa.Discount.StringFixed(2))
	assert.True(t, qa.Total.Equal(qa.Subtotal.Sub(qa.Discount)))
}
