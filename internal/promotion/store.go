package promotion

import (
	"context"
	"fmt"
	"time"

	"github.com/kiwari-pos/digimenu/internal/database"
	"github.com/kiwari-pos/digimenu/internal/enum"
	"github.com/kiwari-pos/digimenu/internal/money"
)

// Reader lists promotions that are active at a point in time.
type Reader interface {
	ListActivePromotions(ctx context.Context, now time.Time) ([]Promotion, error)
}

// Queries defines the DB methods needed to read promotions.
// Satisfied by *database.Queries.
type Queries interface {
	ListActivePromotions(ctx context.Context, now time.Time) ([]database.Promotion, error)
}

// Store is a Reader backed by Postgres.
type Store struct {
	q Queries
}

var _ Reader = (*Store)(nil)

// NewStore creates a Store.
func NewStore(q Queries) *Store {
	return &Store{q: q}
}

// ListActivePromotions implements Reader. A row that violates the discount
// invariant is reported as an error rather than silently skipped.
func (s *Store) ListActivePromotions(ctx context.Context, now time.Time) ([]Promotion, error) {
	rows, err := s.q.ListActivePromotions(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("list active promotions: %w", err)
	}
	promos := make([]Promotion, 0, len(rows))
	for _, r := range rows {
		p, err := FromRow(r)
		if err != nil {
			return nil, err
		}
		promos = append(promos, p)
	}
	return promos, nil
}

// FromRow converts a database row, enforcing the same invariants as New.
func FromRow(r database.Promotion) (Promotion, error) {
	p := Params{
		ID:        r.ID,
		Name:      r.Name,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Active:    r.IsActive,
	}
	if r.Percentage.Valid {
		pct := money.FromNumeric(r.Percentage)
		p.Percentage = &pct
	}
	if r.Amount.Valid {
		amt := money.FromNumeric(r.Amount)
		p.Amount = &amt
	}
	return New(p)
}

// ToParams is the inverse of FromRow for inserts.
func ToParams(p Promotion) database.CreatePromotionParams {
	params := database.CreatePromotionParams{
		Name:      p.Name(),
		StartDate: p.StartDate(),
		EndDate:   p.EndDate(),
	}
	if p.Kind() == enum.DiscountTypePercentage {
		params.Percentage = money.ToNumeric(p.Value())
	} else {
		params.Amount = money.ToNumeric(p.Value())
	}
	return params
}
