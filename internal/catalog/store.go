package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kiwari-pos/digimenu/internal/database"
	"github.com/kiwari-pos/digimenu/internal/money"
)

// Queries defines the DB methods the catalog reader needs.
// Satisfied by *database.Queries; narrow interface for testability.
type Queries interface {
	GetMenuItem(ctx context.Context, id int64) (database.GetMenuItemRow, error)
	ListAddonCategoriesByMenuItem(ctx context.Context, menuItemID int64) ([]database.AddonCategory, error)
	GetAddonWithCategory(ctx context.Context, id int64) (database.GetAddonWithCategoryRow, error)
}

// Store is a Reader backed by Postgres. Every call hits the database; there
// is no cache that could go stale between validation and commit.
type Store struct {
	q Queries
}

var _ Reader = (*Store)(nil)

// NewStore creates a Store. Pass a tx-bound Queries to read inside the
// order transaction.
func NewStore(q Queries) *Store {
	return &Store{q: q}
}

// GetMenuItem implements Reader.
func (s *Store) GetMenuItem(ctx context.Context, id int64) (ResolvedMenuItem, error) {
	row, err := s.q.GetMenuItem(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ResolvedMenuItem{}, fmt.Errorf("menu item %d: %w", id, ErrNotFound)
		}
		return ResolvedMenuItem{}, fmt.Errorf("get menu item %d: %w", id, err)
	}
	// items in a hidden menu category are not orderable either
	if !row.IsAvailable || !row.CategoryIsActive {
		return ResolvedMenuItem{}, fmt.Errorf("menu item %d: %w", id, ErrUnavailable)
	}

	cats, err := s.q.ListAddonCategoriesByMenuItem(ctx, id)
	if err != nil {
		return ResolvedMenuItem{}, fmt.Errorf("list addon categories for menu item %d: %w", id, err)
	}

	res := ResolvedMenuItem{
		MenuItem: MenuItem{
			ID:         row.ID,
			CategoryID: row.CategoryID,
			Name:       row.Name,
			Price:      money.FromNumeric(row.Price),
			Available:  row.IsAvailable,
		},
		AddonCategories: make([]AddonCategory, 0, len(cats)),
	}
	for _, c := range cats {
		res.AddonCategoryIDs = append(res.AddonCategoryIDs, c.ID)
		res.AddonCategories = append(res.AddonCategories, AddonCategory{
			ID:           c.ID,
			Name:         c.Name,
			MinSelection: int(c.MinSelection),
			MaxSelection: int(c.MaxSelection),
			Active:       c.IsActive,
		})
	}
	return res, nil
}

// GetAddon implements Reader.
func (s *Store) GetAddon(ctx context.Context, id int64) (ResolvedAddon, error) {
	row, err := s.q.GetAddonWithCategory(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ResolvedAddon{}, fmt.Errorf("addon %d: %w", id, ErrNotFound)
		}
		return ResolvedAddon{}, fmt.Errorf("get addon %d: %w", id, err)
	}
	if !row.IsActive || !row.CategoryIsActive {
		return ResolvedAddon{}, fmt.Errorf("addon %d: %w", id, ErrUnavailable)
	}

	return ResolvedAddon{
		Addon: Addon{
			ID:              row.ID,
			AddonCategoryID: row.AddonCategoryID,
			Name:            row.Name,
			Price:           money.FromNumeric(row.Price),
			Active:          row.IsActive,
		},
		Category: AddonCategory{
			ID:           row.AddonCategoryID,
			Name:         row.CategoryName,
			MinSelection: int(row.MinSelection),
			MaxSelection: int(row.MaxSelection),
			Active:       row.CategoryIsActive,
		},
	}, nil
}
