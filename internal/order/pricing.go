package order

import (
	"time"

	"github.com/kiwari-pos/digimenu/internal/promotion"
	"github.com/shopspring/decimal"
)

// Quote is the priced result for a set of lines. It is computed once when
// the order is created and stored with it.
type Quote struct {
	Subtotal  decimal.Decimal
	Discount  decimal.Decimal
	Total     decimal.Decimal
	Promotion *promotion.Promotion
}

// Price sums the line totals and applies the best promotion valid at now.
// The total never goes below zero.
func Price(lines []Line, now time.Time, promos []promotion.Promotion) Quote {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.LineTotal)
	}

	q := Quote{Subtotal: subtotal, Discount: decimal.Zero}
	if applied, ok := promotion.Best(now, subtotal, promos); ok {
		p := applied.Promotion
		q.Promotion = &p
		q.Discount = applied.Discount
	}

	q.Total = subtotal.Sub(q.Discount)
	if q.Total.IsNegative() {
		q.Total = decimal.Zero
	}
	return q
}
