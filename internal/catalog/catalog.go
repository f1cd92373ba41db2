// Package catalog is the read model of the menu: menu items, add-on
// categories and add-ons, looked up by id.
//
// Entities reference each other by id only. A menu item lists the ids of its
// add-on categories, an add-on names its owning category; there are no back
// pointers.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Lookup errors. Callers use errors.Is to tell them apart.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
)

// MenuItem is a sellable dish or drink.
type MenuItem struct {
	ID               int64
	CategoryID       int64
	Name             string
	Price            decimal.Decimal
	Available        bool
	AddonCategoryIDs []int64
}

// AddonCategory groups add-ons under a selection-count rule,
// e.g. "choose 1 sauce".
type AddonCategory struct {
	ID           int64
	Name         string
	MinSelection int
	MaxSelection int
	Active       bool
}

// Validate checks the selection bounds.
func (c AddonCategory) Validate() error {
	if c.MinSelection < 0 {
		return fmt.Errorf("addon category %d: min_selection must be >= 0", c.ID)
	}
	if c.MaxSelection < c.MinSelection {
		return fmt.Errorf("addon category %d: max_selection (%d) must be >= min_selection (%d)",
			c.ID, c.MaxSelection, c.MinSelection)
	}
	return nil
}

// Allows reports whether n selections are within [MinSelection, MaxSelection].
func (c AddonCategory) Allows(n int) bool {
	return n >= c.MinSelection && n <= c.MaxSelection
}

// Addon is a paid extra belonging to exactly one AddonCategory.
type Addon struct {
	ID              int64
	AddonCategoryID int64
	Name            string
	Price           decimal.Decimal
	Active          bool
}

// ResolvedMenuItem is a menu item together with its associated add-on
// categories, in the menu item's order. Inactive categories are included
// with Active=false.
type ResolvedMenuItem struct {
	MenuItem
	AddonCategories []AddonCategory
}

// ResolvedAddon is an add-on together with its owning category.
type ResolvedAddon struct {
	Addon
	Category AddonCategory
}

// Reader is the catalog lookup used while composing an order.
// GetMenuItem returns ErrNotFound for unknown ids and ErrUnavailable for
// unavailable items. GetAddon returns ErrUnavailable when either the addon
// or its category is inactive.
type Reader interface {
	GetMenuItem(ctx context.Context, id int64) (ResolvedMenuItem, error)
	GetAddon(ctx context.Context, id int64) (ResolvedAddon, error)
}
