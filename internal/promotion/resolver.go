package promotion

import (
	"time"

	"github.com/shopspring/decimal"
)

// Applied is the promotion chosen for an order and the discount it yields.
type Applied struct {
	Promotion Promotion
	Discount  decimal.Decimal
}

// Best picks the promotion with the largest discount on subtotal among
// those valid at now. Equal discounts go to the lowest id, so the result
// does not depend on the order of promos. It returns false when nothing
// yields a positive discount.
func Best(now time.Time, subtotal decimal.Decimal, promos []Promotion) (Applied, bool) {
	var (
		best  Applied
		found bool
	)
	for _, p := range promos {
		if !p.ValidAt(now) {
			continue
		}
		d := p.Discount(subtotal)
		if !d.IsPositive() {
			continue
		}
		if !found || d.GreaterThan(best.Discount) ||
			(d.Equal(best.Discount) && p.ID() < best.Promotion.ID()) {
			best = Applied{Promotion: p, Discount: d}
			found = true
		}
	}
	return best, found
}
