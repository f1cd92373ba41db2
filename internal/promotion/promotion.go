// Package promotion models order-level discounts and picks the one that
// applies to an order.
package promotion

import (
	"errors"
	"fmt"
	"time"

	"github.com/kiwari-pos/digimenu/internal/enum"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Construction errors.
var (
	ErrDiscountRequired  = errors.New("promotion needs exactly one of percentage or amount")
	ErrInvalidPercentage = errors.New("percentage must be between 0 and 100")
	ErrInvalidAmount     = errors.New("amount must be >= 0")
	ErrInvalidWindow     = errors.New("end_date must not be before start_date")
)

// Params is the raw input for New. Exactly one of Percentage and Amount
// must be set.
type Params struct {
	ID         int64
	Name       string
	Percentage *decimal.Decimal
	Amount     *decimal.Decimal
	StartDate  time.Time
	EndDate    time.Time
	Active     bool
}

// Promotion is a validated discount. The zero value is not usable; build
// one with New.
type Promotion struct {
	id        int64
	name      string
	kind      string
	value     decimal.Decimal
	startDate time.Time
	endDate   time.Time
	active    bool
}

// New validates p and returns a Promotion.
func New(p Params) (Promotion, error) {
	if (p.Percentage == nil) == (p.Amount == nil) {
		return Promotion{}, fmt.Errorf("promotion %d: %w", p.ID, ErrDiscountRequired)
	}
	if p.EndDate.Before(p.StartDate) {
		return Promotion{}, fmt.Errorf("promotion %d: %w", p.ID, ErrInvalidWindow)
	}

	promo := Promotion{
		id:        p.ID,
		name:      p.Name,
		startDate: p.StartDate,
		endDate:   p.EndDate,
		active:    p.Active,
	}

	if p.Percentage != nil {
		pct := *p.Percentage
		if pct.IsNegative() || pct.GreaterThan(hundred) {
			return Promotion{}, fmt.Errorf("promotion %d: %w", p.ID, ErrInvalidPercentage)
		}
		promo.kind = enum.DiscountTypePercentage
		promo.value = pct
		return promo, nil
	}

	amt := *p.Amount
	if amt.IsNegative() {
		return Promotion{}, fmt.Errorf("promotion %d: %w", p.ID, ErrInvalidAmount)
	}
	promo.kind = enum.DiscountTypeFixed
	promo.value = amt
	return promo, nil
}

func (p Promotion) ID() int64              { return p.id }
func (p Promotion) Name() string           { return p.name }
func (p Promotion) Kind() string           { return p.kind }
func (p Promotion) Value() decimal.Decimal { return p.value }
func (p Promotion) StartDate() time.Time   { return p.startDate }
func (p Promotion) EndDate() time.Time     { return p.endDate }
func (p Promotion) Active() bool           { return p.active }

// ValidAt reports whether the promotion is active and now lies inside
// [StartDate, EndDate].
func (p Promotion) ValidAt(now time.Time) bool {
	return p.active && !now.Before(p.startDate) && !now.After(p.endDate)
}

// Discount returns the amount taken off subtotal, always in [0, subtotal].
// Percentage discounts are rounded to cents.
func (p Promotion) Discount(subtotal decimal.Decimal) decimal.Decimal {
	if !subtotal.IsPositive() {
		return decimal.Zero
	}

	var d decimal.Decimal
	switch p.kind {
	case enum.DiscountTypePercentage:
		d = subtotal.Mul(p.value).Div(hundred).Round(2)
	case enum.DiscountTypeFixed:
		d = decimal.Min(p.value, subtotal)
	default:
		return decimal.Zero
	}

	if d.GreaterThan(subtotal) {
		return subtotal
	}
	return d
}
